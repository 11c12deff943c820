package types

// Unit identifies a measurement unit by its canonical token
type Unit string

const (
	// Length
	UnitInch       Unit = "in"
	UnitFoot       Unit = "ft"
	UnitYard       Unit = "yd"
	UnitMeter      Unit = "m"
	UnitCentimeter Unit = "cm"
	UnitMillimeter Unit = "mm"

	// Mass
	UnitPound    Unit = "lb"
	UnitKilogram Unit = "kg"

	// Ton
	UnitShortTon    Unit = "ton" // US short ton, 2000 lb
	UnitMetricTonne Unit = "t"

	// Area
	UnitSquareMeter Unit = "m2"
	UnitSquareFoot  Unit = "ft2"
	UnitSquareInch  Unit = "in2"
	UnitSquareYard  Unit = "yd2"
	UnitAcre        Unit = "acre"
)

// Dimension is a measurement category within which units convert linearly
type Dimension string

const (
	DimensionLength Dimension = "length"
	DimensionMass   Dimension = "mass"
	DimensionTon    Dimension = "ton"
	DimensionArea   Dimension = "area"
)

func (u Unit) String() string {
	return string(u)
}
