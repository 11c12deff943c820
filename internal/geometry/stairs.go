package geometry

import (
	"fmt"
	"math"

	"github.com/dshills/tradecalc/internal/units"
	"github.com/dshills/tradecalc/pkg/types"
)

// Stair defaults and the comfort rule, in inches
const (
	DefaultRiserInches    = 7.75
	DefaultTreadInches    = 10.0
	StairRuleTargetInches = 63.0
	StairRuleSlackInches  = 3.0
)

// stepTolerance is relative to the riser count. It keeps a total rise that is
// an exact multiple of the desired riser from being bumped up a step by
// rounding error in the metre conversion.
const stepTolerance = 1e-9

// MaxSteps caps the riser count of a single stair.
const MaxSteps = 10000

// StairsInput holds the stair parameters, expressed in the context's InUnit.
// Nil optional fields fall back to the defaults.
type StairsInput struct {
	TotalRise   float64
	RisePerStep *float64
	Tread       *float64
}

// Stairs lays out a straight stair. The riser count is the total rise divided
// by the desired riser, rounded up, and the total rise is then spread evenly
// over that count. The comfort rule (2 x riser + tread within 3" of 63") is
// reported in the meta but never fails the calculation.
func Stairs(in StairsInput, c types.CalcContext) (types.CalcResult, error) {
	c = c.WithDefaults()

	params := []param{{"totalRise", in.TotalRise}}
	if in.RisePerStep != nil {
		params = append(params, param{"desiredRisePerStep", *in.RisePerStep})
	}
	if in.Tread != nil {
		params = append(params, param{"desiredTread", *in.Tread})
	}
	if err := checkFinite(params...); err != nil {
		return types.CalcResult{}, err
	}
	if err := checkLengthContext(c); err != nil {
		return types.CalcResult{}, err
	}

	totalRiseM, err := units.LengthToMeters(in.TotalRise, c.InUnit)
	if err != nil {
		return types.CalcResult{}, err
	}
	desiredRiseM, err := optionalLength(in.RisePerStep, DefaultRiserInches, c.InUnit)
	if err != nil {
		return types.CalcResult{}, err
	}
	treadM, err := optionalLength(in.Tread, DefaultTreadInches, c.InUnit)
	if err != nil {
		return types.CalcResult{}, err
	}

	if totalRiseM <= 0 {
		return types.CalcResult{}, types.InvalidParam("totalRise", "must be greater than zero")
	}
	if desiredRiseM <= 0 {
		return types.CalcResult{}, types.InvalidParam("desiredRisePerStep", "must be greater than zero")
	}
	if treadM <= 0 {
		return types.CalcResult{}, types.InvalidParam("desiredTread", "must be greater than zero")
	}

	ratio := totalRiseM / desiredRiseM
	steps := math.Ceil(ratio * (1 - stepTolerance))
	if steps > MaxSteps {
		return types.CalcResult{}, types.InvalidParam("desiredRisePerStep",
			fmt.Sprintf("yields too many steps (more than %d)", MaxSteps))
	}
	numSteps := int(steps)
	if numSteps <= 0 {
		return types.CalcResult{}, types.InvalidParam("numSteps", "must be greater than zero")
	}

	riseM := totalRiseM / float64(numSteps)
	numTreads := numSteps - 1
	totalRunM := treadM * float64(numTreads)
	stringerM := math.Hypot(totalRiseM, totalRunM)

	inchM := mustMeters(1, types.UnitInch)
	stairRuleM := 2*riseM + treadM
	stairRuleOk := math.Abs(stairRuleM-StairRuleTargetInches*inchM) <= StairRuleSlackInches*inchM+1e-12

	meta := map[string]any{
		"numSteps":     numSteps,
		"numTreads":    numTreads,
		"stairRuleOk":  stairRuleOk,
		"stairRuleIn":  stairRuleM / inchM,
		"riserHeightM": riseM,
		"treadDepthM":  treadM,
		"totalRunM":    totalRunM,
		"stringerM":    stringerM,
		"stairRuleM":   stairRuleM,
	}

	lengths := []struct {
		key    string
		meters float64
	}{
		{"riserHeight", riseM},
		{"treadDepth", treadM},
		{"totalRun", totalRunM},
		{"stringerLength", stringerM},
		{"stairRule", stairRuleM},
	}
	displays := make(map[string]string, len(lengths))
	for _, l := range lengths {
		v, d, err := inOutUnit(l.meters, c)
		if err != nil {
			return types.CalcResult{}, err
		}
		meta[l.key] = v
		displays[l.key] = d
	}
	meta["display"] = displays

	return types.CalcResult{
		Value: float64(numSteps),
		Unit:  "steps",
		Display: fmt.Sprintf("%d risers @ %s rise, %s tread",
			numSteps, displays["riserHeight"], displays["treadDepth"]),
		Meta: meta,
	}, nil
}

func optionalLength(v *float64, defaultInches float64, u types.Unit) (float64, error) {
	if v == nil {
		return units.LengthToMeters(defaultInches, types.UnitInch)
	}
	return units.LengthToMeters(*v, u)
}

func mustMeters(v float64, u types.Unit) float64 {
	m, err := units.LengthToMeters(v, u)
	if err != nil {
		panic(fmt.Sprintf("geometry: %s missing from unit table: %v", u, err))
	}
	return m
}
