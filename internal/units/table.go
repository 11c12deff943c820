package units

import (
	"sort"
	"strings"

	"github.com/dshills/tradecalc/pkg/types"
)

// Info describes one unit in the table
type Info struct {
	Unit      types.Unit
	Dimension types.Dimension
	Name      string
	Factor    float64 // Multiplier to the dimension's SI base
}

// Base unit labels per dimension. Ton units share the kilogram base with
// mass, which is what lets the two dimensions bridge.
var siLabels = map[types.Dimension]string{
	types.DimensionLength: "m",
	types.DimensionMass:   "kg",
	types.DimensionTon:    "kg",
	types.DimensionArea:   "m2",
}

// unitTable maps canonical units to their dimension and SI multiplier
var unitTable = map[types.Unit]Info{
	// Length (base: metre)
	types.UnitInch:       {types.UnitInch, types.DimensionLength, "inch", 0.0254},
	types.UnitFoot:       {types.UnitFoot, types.DimensionLength, "foot", 0.3048},
	types.UnitYard:       {types.UnitYard, types.DimensionLength, "yard", 0.9144},
	types.UnitMeter:      {types.UnitMeter, types.DimensionLength, "meter", 1},
	types.UnitCentimeter: {types.UnitCentimeter, types.DimensionLength, "centimeter", 0.01},
	types.UnitMillimeter: {types.UnitMillimeter, types.DimensionLength, "millimeter", 0.001},
	// Mass (base: kilogram)
	types.UnitPound:    {types.UnitPound, types.DimensionMass, "pound", 0.45359237},
	types.UnitKilogram: {types.UnitKilogram, types.DimensionMass, "kilogram", 1},
	// Ton (base: kilogram)
	types.UnitShortTon:    {types.UnitShortTon, types.DimensionTon, "short ton", 907.18474},
	types.UnitMetricTonne: {types.UnitMetricTonne, types.DimensionTon, "metric tonne", 1000},
	// Area (base: square metre)
	types.UnitSquareMeter: {types.UnitSquareMeter, types.DimensionArea, "square meter", 1},
	types.UnitSquareFoot:  {types.UnitSquareFoot, types.DimensionArea, "square foot", 0.09290304},
	types.UnitSquareInch:  {types.UnitSquareInch, types.DimensionArea, "square inch", 0.00064516},
	types.UnitSquareYard:  {types.UnitSquareYard, types.DimensionArea, "square yard", 0.83612736},
	types.UnitAcre:        {types.UnitAcre, types.DimensionArea, "acre", 4046.8564224},
}

// unitAliases maps accepted spellings to canonical units. Keys are lower case.
var unitAliases = map[string]types.Unit{
	"in": types.UnitInch, "inch": types.UnitInch, "inches": types.UnitInch, `"`: types.UnitInch,
	"ft": types.UnitFoot, "foot": types.UnitFoot, "feet": types.UnitFoot, "'": types.UnitFoot,
	"yd": types.UnitYard, "yard": types.UnitYard, "yards": types.UnitYard,
	"m": types.UnitMeter, "meter": types.UnitMeter, "meters": types.UnitMeter, "metre": types.UnitMeter, "metres": types.UnitMeter,
	"cm": types.UnitCentimeter, "centimeter": types.UnitCentimeter, "centimeters": types.UnitCentimeter, "centimetre": types.UnitCentimeter, "centimetres": types.UnitCentimeter,
	"mm": types.UnitMillimeter, "millimeter": types.UnitMillimeter, "millimeters": types.UnitMillimeter, "millimetre": types.UnitMillimeter, "millimetres": types.UnitMillimeter,
	"lb": types.UnitPound, "lbs": types.UnitPound, "pound": types.UnitPound, "pounds": types.UnitPound,
	"kg": types.UnitKilogram, "kilogram": types.UnitKilogram, "kilograms": types.UnitKilogram,
	"ton": types.UnitShortTon, "tons": types.UnitShortTon, "short_ton": types.UnitShortTon,
	"t": types.UnitMetricTonne, "tonne": types.UnitMetricTonne, "tonnes": types.UnitMetricTonne, "metric_ton": types.UnitMetricTonne,
	"m2": types.UnitSquareMeter, "sqm": types.UnitSquareMeter, "m^2": types.UnitSquareMeter,
	"ft2": types.UnitSquareFoot, "sqft": types.UnitSquareFoot, "ft^2": types.UnitSquareFoot,
	"in2": types.UnitSquareInch, "sqin": types.UnitSquareInch, "in^2": types.UnitSquareInch,
	"yd2": types.UnitSquareYard, "sqyd": types.UnitSquareYard, "yd^2": types.UnitSquareYard,
	"acre": types.UnitAcre, "acres": types.UnitAcre, "ac": types.UnitAcre,
}

// Parse resolves a unit token or alias to its canonical unit
func Parse(s string) (types.Unit, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	if u, ok := unitAliases[token]; ok {
		return u, nil
	}
	return "", types.NewCalcError(types.CodeInvalidUnit,
		"unknown unit: "+s,
		map[string]any{"unit": s, "known": Known()})
}

// Lookup returns the table entry for u
func Lookup(u types.Unit) (Info, bool) {
	info, ok := unitTable[u]
	return info, ok
}

// DimensionOf returns the dimension u belongs to
func DimensionOf(u types.Unit) (types.Dimension, bool) {
	info, ok := unitTable[u]
	return info.Dimension, ok
}

// SILabel returns the SI base unit label for a dimension
func SILabel(d types.Dimension) string {
	return siLabels[d]
}

// Known returns the canonical unit tokens, sorted
func Known() []string {
	out := make([]string, 0, len(unitTable))
	for u := range unitTable {
		out = append(out, string(u))
	}
	sort.Strings(out)
	return out
}

func IsLengthUnit(u types.Unit) bool { return is(u, types.DimensionLength) }
func IsMassUnit(u types.Unit) bool   { return is(u, types.DimensionMass) }
func IsTonUnit(u types.Unit) bool    { return is(u, types.DimensionTon) }
func IsAreaUnit(u types.Unit) bool   { return is(u, types.DimensionArea) }

func is(u types.Unit, d types.Dimension) bool {
	info, ok := unitTable[u]
	return ok && info.Dimension == d
}
