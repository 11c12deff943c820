package units

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/dshills/tradecalc/internal/fraction"
	"github.com/dshills/tradecalc/pkg/types"
)

// DecimalPlaces is the rounding applied to non-imperial display values
const DecimalPlaces = 6

// FormatValue renders value (expressed in unit) for display.
//
//	ft    -> 5' 6 1/2"   (inches quantised to 1/precisionDenom)
//	in    -> 3 1/2"
//	other -> 0.3048 m    (rounded to six decimal places)
func FormatValue(value float64, unit types.Unit, precisionDenom int) (string, error) {
	if !isFinite(value) {
		return "", types.InvalidNumber("value", value)
	}
	if _, ok := unitTable[unit]; !ok {
		return "", unknownUnit(unit)
	}
	if precisionDenom <= 0 {
		return "", types.InvalidParam("precision", "must be a positive integer")
	}

	switch unit {
	case types.UnitFoot:
		return formatFeetInches(value, precisionDenom)
	case types.UnitInch:
		s, err := fraction.ToMixedFractionString(value, precisionDenom)
		if err != nil {
			return "", err
		}
		return s + `"`, nil
	default:
		return FormatDecimal(value, DecimalPlaces) + " " + string(unit), nil
	}
}

// FormatDecimal rounds v to places decimal places and trims trailing zeros
func FormatDecimal(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

// formatFeetInches quantises the whole length in 1/denom inch steps, so an
// inch remainder that rounds up to 12 carries into the feet.
func formatFeetInches(feet float64, denom int) (string, error) {
	perFoot := int64(12 * denom)
	q := math.Round(math.Abs(feet) * float64(perFoot))
	if q > 1<<53 {
		return "", types.InvalidParam("value", "is too large to format")
	}

	total := int64(q)
	wholeFeet := total / perFoot
	rem := total % perFoot

	inches := "0"
	if rem != 0 {
		s, err := fraction.ToMixedFractionString(float64(rem)/float64(denom), denom)
		if err != nil {
			return "", err
		}
		inches = s
	}

	sign := ""
	if feet < 0 && total != 0 {
		sign = "-"
	}
	return fmt.Sprintf(`%s%d' %s"`, sign, wholeFeet, inches), nil
}
