// Package geometry implements roof pitch, diagonal and stair layout
// calculations over length units.
package geometry

import (
	"math"

	"github.com/dshills/tradecalc/internal/units"
	"github.com/dshills/tradecalc/pkg/types"
)

// PitchBase is the run, in inches, that roof pitch is expressed against
const PitchBase = 12.0

// PitchFromRiseRun returns the roof pitch ("X per 12") of a rise over a run
func PitchFromRiseRun(rise, run float64, c types.CalcContext) (types.CalcResult, error) {
	c = c.WithDefaults()
	if err := checkFinite(param{"rise", rise}, param{"run", run}); err != nil {
		return types.CalcResult{}, err
	}
	if err := checkLengthContext(c); err != nil {
		return types.CalcResult{}, err
	}
	if run == 0 {
		return types.CalcResult{}, types.DivByZero("run")
	}

	riseM, runM, err := toMeters2(rise, run, c.InUnit)
	if err != nil {
		return types.CalcResult{}, err
	}

	slope := riseM / runM
	pitch := slope * PitchBase

	return types.CalcResult{
		Value:   pitch,
		Unit:    "in/12",
		Display: units.FormatDecimal(pitch, 2) + "/12",
		Meta: map[string]any{
			"angleDeg": angleDegrees(slope),
			"slope":    slope,
		},
	}, nil
}

// RiseFromPitchRun returns the rise produced by a pitch over a run
func RiseFromPitchRun(pitch, run float64, c types.CalcContext) (types.CalcResult, error) {
	c = c.WithDefaults()
	if err := checkFinite(param{"pitch", pitch}, param{"run", run}); err != nil {
		return types.CalcResult{}, err
	}
	if err := checkLengthContext(c); err != nil {
		return types.CalcResult{}, err
	}

	runM, err := units.LengthToMeters(run, c.InUnit)
	if err != nil {
		return types.CalcResult{}, err
	}

	slope := pitch / PitchBase
	riseM := slope * runM

	return lengthResult(riseM, c, map[string]any{
		"angleDeg": angleDegrees(slope),
		"slope":    slope,
	})
}

// RunFromPitchRise returns the run needed to reach a rise at a pitch
func RunFromPitchRise(pitch, rise float64, c types.CalcContext) (types.CalcResult, error) {
	c = c.WithDefaults()
	if err := checkFinite(param{"pitch", pitch}, param{"rise", rise}); err != nil {
		return types.CalcResult{}, err
	}
	if err := checkLengthContext(c); err != nil {
		return types.CalcResult{}, err
	}
	if pitch == 0 {
		return types.CalcResult{}, types.DivByZero("pitch")
	}

	riseM, err := units.LengthToMeters(rise, c.InUnit)
	if err != nil {
		return types.CalcResult{}, err
	}

	slope := pitch / PitchBase
	runM := (PitchBase / pitch) * riseM

	return lengthResult(runM, c, map[string]any{
		"angleDeg": angleDegrees(slope),
		"slope":    slope,
	})
}

// Diagonal returns the hypotenuse of a right triangle with legs rise and run.
// A single zero leg is a degenerate but valid triangle; both zero is rejected.
func Diagonal(rise, run float64, c types.CalcContext) (types.CalcResult, error) {
	c = c.WithDefaults()
	if err := checkFinite(param{"rise", rise}, param{"run", run}); err != nil {
		return types.CalcResult{}, err
	}
	if err := checkLengthContext(c); err != nil {
		return types.CalcResult{}, err
	}
	if rise == 0 && run == 0 {
		return types.CalcResult{}, types.NewCalcError(types.CodeInvalidParam,
			"rise and run cannot both be zero",
			map[string]any{"params": []string{"rise", "run"}})
	}

	riseM, runM, err := toMeters2(rise, run, c.InUnit)
	if err != nil {
		return types.CalcResult{}, err
	}

	return lengthResult(math.Hypot(riseM, runM), c, nil)
}

type param struct {
	name  string
	value float64
}

func checkFinite(params ...param) error {
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return types.InvalidNumber(p.name, p.value)
		}
	}
	return nil
}

func checkLengthContext(c types.CalcContext) error {
	for _, u := range []types.Unit{c.InUnit, c.OutUnit} {
		if !units.IsLengthUnit(u) {
			return types.NewCalcError(types.CodeInvalidUnit,
				"length units required, got "+string(u),
				map[string]any{"unit": string(u), "expected": string(types.DimensionLength)})
		}
	}
	return nil
}

func toMeters2(a, b float64, u types.Unit) (float64, float64, error) {
	am, err := units.LengthToMeters(a, u)
	if err != nil {
		return 0, 0, err
	}
	bm, err := units.LengthToMeters(b, u)
	if err != nil {
		return 0, 0, err
	}
	return am, bm, nil
}

// lengthResult converts a length in metres into the context's output unit
func lengthResult(meters float64, c types.CalcContext, meta map[string]any) (types.CalcResult, error) {
	out, display, err := inOutUnit(meters, c)
	if err != nil {
		return types.CalcResult{}, err
	}

	if meta == nil {
		meta = make(map[string]any, 2)
	}
	meta["si"] = meters
	meta["siUnit"] = units.SILabel(types.DimensionLength)

	return types.CalcResult{
		Value:   out,
		Unit:    string(c.OutUnit),
		Display: display,
		Meta:    meta,
	}, nil
}

func inOutUnit(meters float64, c types.CalcContext) (float64, string, error) {
	out, err := units.MetersToLength(meters, c.OutUnit)
	if err != nil {
		return 0, "", err
	}
	display, err := units.FormatValue(out, c.OutUnit, c.Precision)
	if err != nil {
		return 0, "", err
	}
	return out, display, nil
}

func angleDegrees(slope float64) float64 {
	return math.Atan(slope) * 180 / math.Pi
}
