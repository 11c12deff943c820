package types

import (
	"errors"
	"math"
)

// Domain errors for result validation
var (
	ErrNonFiniteValue = errors.New("result value must be finite")
	ErrMissingUnit    = errors.New("result unit is required")
	ErrEmptyDisplay   = errors.New("result display cannot be empty")
)

// CalcResult is the output of a single calculation
type CalcResult struct {
	Value   float64        // Value expressed in the requested output unit
	Unit    string         // Label of Value's unit
	Display string         // Human-formatted rendering of Value
	Meta    map[string]any // Function-specific extra fields
}

// Validate checks if the result is well formed
func (r *CalcResult) Validate() error {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return ErrNonFiniteValue
	}

	if r.Unit == "" {
		return ErrMissingUnit
	}

	if r.Display == "" {
		return ErrEmptyDisplay
	}

	return nil
}

// CalcContext carries the unit and precision settings of one calculation.
// It is passed by value and never mutated.
type CalcContext struct {
	InUnit    Unit
	OutUnit   Unit
	Precision int // Fraction denominator for display rounding (16 = 1/16)
}

// DefaultPrecision is the display denominator used when none is supplied
const DefaultPrecision = 16

// WithDefaults fills in a missing output unit and precision
func (c CalcContext) WithDefaults() CalcContext {
	if c.OutUnit == "" {
		c.OutUnit = c.InUnit
	}
	if c.Precision <= 0 {
		c.Precision = DefaultPrecision
	}
	return c
}
