package calc

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/dshills/tradecalc/internal/fraction"
	"github.com/dshills/tradecalc/pkg/types"
)

// Params is the loosely typed parameter bag of a request
type Params map[string]any

// Float extracts a required numeric parameter. Numbers, json.Number values
// and numeric strings ("7.5", "3 1/2") are accepted; anything else, and any
// non-finite value, fails with INVALID_NUMBER.
func (p Params) Float(name string) (float64, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return 0, types.NewCalcError(types.CodeInvalidNumber,
			fmt.Sprintf("%s is required", name),
			map[string]any{"param": name, "reason": "missing"})
	}
	return toFloat(name, raw)
}

// OptionalFloat extracts a numeric parameter that may be absent
func (p Params) OptionalFloat(name string) (*float64, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return nil, nil
	}
	v, err := toFloat(name, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func toFloat(name string, raw any) (float64, error) {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, types.InvalidNumber(name, raw)
		}
		v = f
	case string:
		f, err := fraction.ParseMixed(x)
		if err != nil {
			return 0, types.InvalidNumber(name, raw)
		}
		v = f
	default:
		return 0, types.InvalidNumber(name, raw)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, types.InvalidNumber(name, raw)
	}
	return v, nil
}
