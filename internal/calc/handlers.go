package calc

import (
	"github.com/dshills/tradecalc/internal/geometry"
	"github.com/dshills/tradecalc/internal/units"
	"github.com/dshills/tradecalc/pkg/types"
)

// Handler runs one function against an untyped parameter bag
type Handler interface {
	Call(p Params, c types.CalcContext) (types.CalcResult, error)
}

// typedHandler binds the parameter bag into In before running the calculation,
// so binding failures never reach the geometry code.
type typedHandler[In any] struct {
	bind func(Params) (In, error)
	run  func(In, types.CalcContext) (types.CalcResult, error)
}

func (h typedHandler[In]) Call(p Params, c types.CalcContext) (types.CalcResult, error) {
	in, err := h.bind(p)
	if err != nil {
		return types.CalcResult{}, err
	}
	return h.run(in, c)
}

func handle[In any](bind func(Params) (In, error), run func(In, types.CalcContext) (types.CalcResult, error)) Handler {
	return typedHandler[In]{bind: bind, run: run}
}

type riseRun struct{ Rise, Run float64 }
type pitchRun struct{ Pitch, Run float64 }
type pitchRise struct{ Pitch, Rise float64 }
type convertInput struct{ Value float64 }

// registry holds every implemented function. Catalog entries without a
// registry entry dispatch to NOT_IMPLEMENTED.
var registry = map[Function]Handler{
	FuncPitchFromRiseRun: handle(bindRiseRun, func(in riseRun, c types.CalcContext) (types.CalcResult, error) {
		return geometry.PitchFromRiseRun(in.Rise, in.Run, c)
	}),
	FuncRiseFromPitchRun: handle(bindPitchRun, func(in pitchRun, c types.CalcContext) (types.CalcResult, error) {
		return geometry.RiseFromPitchRun(in.Pitch, in.Run, c)
	}),
	FuncRunFromPitchRise: handle(bindPitchRise, func(in pitchRise, c types.CalcContext) (types.CalcResult, error) {
		return geometry.RunFromPitchRise(in.Pitch, in.Rise, c)
	}),
	FuncDiagonal: handle(bindRiseRun, func(in riseRun, c types.CalcContext) (types.CalcResult, error) {
		return geometry.Diagonal(in.Rise, in.Run, c)
	}),
	FuncConvert: handle(bindConvert, runConvert),
	FuncStairs:  handle(bindStairs, geometry.Stairs),
}

func bindRiseRun(p Params) (riseRun, error) {
	rise, err := p.Float("rise")
	if err != nil {
		return riseRun{}, err
	}
	run, err := p.Float("run")
	if err != nil {
		return riseRun{}, err
	}
	return riseRun{Rise: rise, Run: run}, nil
}

func bindPitchRun(p Params) (pitchRun, error) {
	pitch, err := p.Float("pitch")
	if err != nil {
		return pitchRun{}, err
	}
	run, err := p.Float("run")
	if err != nil {
		return pitchRun{}, err
	}
	return pitchRun{Pitch: pitch, Run: run}, nil
}

func bindPitchRise(p Params) (pitchRise, error) {
	pitch, err := p.Float("pitch")
	if err != nil {
		return pitchRise{}, err
	}
	rise, err := p.Float("rise")
	if err != nil {
		return pitchRise{}, err
	}
	return pitchRise{Pitch: pitch, Rise: rise}, nil
}

func bindConvert(p Params) (convertInput, error) {
	v, err := p.Float("value")
	if err != nil {
		return convertInput{}, err
	}
	return convertInput{Value: v}, nil
}

func bindStairs(p Params) (geometry.StairsInput, error) {
	total, err := p.Float("totalRise")
	if err != nil {
		return geometry.StairsInput{}, err
	}
	rise, err := p.OptionalFloat("desiredRisePerStep")
	if err != nil {
		return geometry.StairsInput{}, err
	}
	tread, err := p.OptionalFloat("desiredTread")
	if err != nil {
		return geometry.StairsInput{}, err
	}
	return geometry.StairsInput{TotalRise: total, RisePerStep: rise, Tread: tread}, nil
}

func runConvert(in convertInput, c types.CalcContext) (types.CalcResult, error) {
	c = c.WithDefaults()

	conv, err := units.Convert(in.Value, c.InUnit, c.OutUnit)
	if err != nil {
		return types.CalcResult{}, err
	}
	display, err := units.FormatValue(conv.Value, c.OutUnit, c.Precision)
	if err != nil {
		return types.CalcResult{}, err
	}
	si, siUnit, err := units.ToSI(conv.Value, c.OutUnit)
	if err != nil {
		return types.CalcResult{}, err
	}

	return types.CalcResult{
		Value:   conv.Value,
		Unit:    string(c.OutUnit),
		Display: display,
		Meta: map[string]any{
			"from":   string(c.InUnit),
			"to":     string(c.OutUnit),
			"kind":   string(conv.Kind),
			"si":     si,
			"siUnit": siUnit,
		},
	}, nil
}
