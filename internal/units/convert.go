package units

import (
	"fmt"
	"math"

	"github.com/dshills/tradecalc/pkg/types"
)

// ConversionKind records which path a conversion took
type ConversionKind string

const (
	KindIdentity  ConversionKind = "identity"
	KindLength    ConversionKind = "length"
	KindMass      ConversionKind = "mass"
	KindTon       ConversionKind = "ton"
	KindMassToTon ConversionKind = "mass-to-ton"
	KindTonToMass ConversionKind = "ton-to-mass"
	KindArea      ConversionKind = "area"
)

// Conversion is the outcome of Convert
type Conversion struct {
	Value float64
	Kind  ConversionKind
}

func LengthToMeters(v float64, u types.Unit) (float64, error) {
	return toBase(v, u, types.DimensionLength)
}

func MetersToLength(m float64, u types.Unit) (float64, error) {
	return fromBase(m, u, types.DimensionLength)
}

func MassToKg(v float64, u types.Unit) (float64, error) {
	return toBase(v, u, types.DimensionMass)
}

func KgToMass(kg float64, u types.Unit) (float64, error) {
	return fromBase(kg, u, types.DimensionMass)
}

func TonToKg(v float64, u types.Unit) (float64, error) {
	return toBase(v, u, types.DimensionTon)
}

func KgToTon(kg float64, u types.Unit) (float64, error) {
	return fromBase(kg, u, types.DimensionTon)
}

func AreaToM2(v float64, u types.Unit) (float64, error) {
	return toBase(v, u, types.DimensionArea)
}

func M2ToArea(m2 float64, u types.Unit) (float64, error) {
	return fromBase(m2, u, types.DimensionArea)
}

// ToSI converts v in unit u to its dimension's SI base and returns the base label
func ToSI(v float64, u types.Unit) (float64, string, error) {
	info, ok := unitTable[u]
	if !ok {
		return 0, "", unknownUnit(u)
	}
	si, err := toBase(v, u, info.Dimension)
	if err != nil {
		return 0, "", err
	}
	return si, siLabels[info.Dimension], nil
}

// Convert converts value between two units. Same-dimension pairs scale
// through the SI base; mass and ton units bridge through kilograms; any other
// pairing is rejected. Converting a unit to itself returns value untouched.
func Convert(value float64, from, to types.Unit) (Conversion, error) {
	if !isFinite(value) {
		return Conversion{}, types.InvalidNumber("value", value)
	}

	fromDim, ok := DimensionOf(from)
	if !ok {
		return Conversion{}, unknownUnit(from)
	}
	toDim, ok := DimensionOf(to)
	if !ok {
		return Conversion{}, unknownUnit(to)
	}

	if from == to {
		return Conversion{Value: value, Kind: KindIdentity}, nil
	}

	var kind ConversionKind
	switch {
	case fromDim == types.DimensionLength && toDim == types.DimensionLength:
		kind = KindLength
	case fromDim == types.DimensionMass && toDim == types.DimensionMass:
		kind = KindMass
	case fromDim == types.DimensionTon && toDim == types.DimensionTon:
		kind = KindTon
	case fromDim == types.DimensionMass && toDim == types.DimensionTon:
		kind = KindMassToTon
	case fromDim == types.DimensionTon && toDim == types.DimensionMass:
		kind = KindTonToMass
	case fromDim == types.DimensionArea && toDim == types.DimensionArea:
		kind = KindArea
	default:
		return Conversion{}, types.NewCalcError(types.CodeUnsupportedConversion,
			fmt.Sprintf("Incompatible units: %s -> %s", from, to),
			map[string]any{
				"from":          string(from),
				"to":            string(to),
				"fromDimension": string(fromDim),
				"toDimension":   string(toDim),
			})
	}

	base, err := toBase(value, from, fromDim)
	if err != nil {
		return Conversion{}, err
	}
	out, err := fromBase(base, to, toDim)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Value: out, Kind: kind}, nil
}

func toBase(v float64, u types.Unit, d types.Dimension) (float64, error) {
	info, err := expect(u, d)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, types.InvalidNumber("value", v)
	}
	return v * info.Factor, nil
}

func fromBase(v float64, u types.Unit, d types.Dimension) (float64, error) {
	info, err := expect(u, d)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, types.InvalidNumber("value", v)
	}
	return v / info.Factor, nil
}

func expect(u types.Unit, d types.Dimension) (Info, error) {
	info, ok := unitTable[u]
	if !ok {
		return Info{}, unknownUnit(u)
	}
	if info.Dimension != d {
		return Info{}, types.NewCalcError(types.CodeInvalidUnit,
			fmt.Sprintf("%s is not a %s unit", u, d),
			map[string]any{"unit": string(u), "expected": string(d), "actual": string(info.Dimension)})
	}
	return info, nil
}

func unknownUnit(u types.Unit) error {
	return types.NewCalcError(types.CodeInvalidUnit,
		fmt.Sprintf("unknown unit: %s", u),
		map[string]any{"unit": string(u), "known": Known()})
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
