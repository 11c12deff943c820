package fraction

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/tradecalc/pkg/types"
)

// maxExact is the largest magnitude a float64 holds without losing integer precision
const maxExact = 1 << 53

// ErrInvalidFraction is returned by ParseMixed for unparseable input
var ErrInvalidFraction = errors.New("invalid fraction")

// Rational is an exact fraction Num/Den
type Rational struct {
	Num int64
	Den int64
}

// String renders the fraction as "n/d", or "n" when the denominator is 1
func (r Rational) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Float64 returns the fraction's value
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Reduce returns r in lowest terms with a positive denominator; the sign is
// carried by the numerator and zero reduces to 0/1.
func Reduce(r Rational) (Rational, error) {
	if r.Den == 0 {
		return Rational{}, types.DivByZero("denominator")
	}
	if r.Num == 0 {
		return Rational{Num: 0, Den: 1}, nil
	}

	num, den := r.Num, r.Den
	if den < 0 {
		num = -num
		den = -den
	}

	g := gcd(num, den)
	return Rational{Num: num / g, Den: den / g}, nil
}

// FromFloats reduces a fraction whose components arrive as floats. Both
// components must be finite and integral.
func FromFloats(num, den float64) (Rational, error) {
	if !isFinite(num) || num != math.Trunc(num) || math.Abs(num) > maxExact {
		return Rational{}, types.InvalidNumber("numerator", num)
	}
	if !isFinite(den) || den != math.Trunc(den) || math.Abs(den) > maxExact {
		return Rational{}, types.InvalidNumber("denominator", den)
	}
	return Reduce(Rational{Num: int64(num), Den: int64(den)})
}

// ToRational quantises value to the nearest multiple of 1/denom and reduces
// the result. Halves round away from zero.
func ToRational(value float64, denom int) (Rational, error) {
	if err := checkQuantise(value, denom); err != nil {
		return Rational{}, err
	}

	q := math.Round(value * float64(denom))
	if math.Abs(q) > maxExact {
		return Rational{}, types.InvalidParam("value", "is too large to quantise")
	}
	return Reduce(Rational{Num: int64(q), Den: int64(denom)})
}

// ToMixedFractionString formats value as "W N/D", "N/D" or "W" at the given
// denominator. Quantisation happens on the whole magnitude, so a fractional
// part that rounds up to one carries into the whole part.
func ToMixedFractionString(value float64, denom int) (string, error) {
	if err := checkQuantise(value, denom); err != nil {
		return "", err
	}

	q := math.Round(math.Abs(value) * float64(denom))
	if q > maxExact {
		return "", types.InvalidParam("value", "is too large to format")
	}

	total := int64(q)
	d := int64(denom)
	whole := total / d
	rem := total % d

	var sb strings.Builder
	if value < 0 && total != 0 {
		sb.WriteByte('-')
	}

	if rem == 0 {
		sb.WriteString(strconv.FormatInt(whole, 10))
		return sb.String(), nil
	}

	frac, err := Reduce(Rational{Num: rem, Den: d})
	if err != nil {
		return "", err
	}

	if whole > 0 {
		sb.WriteString(strconv.FormatInt(whole, 10))
		sb.WriteByte(' ')
	}
	sb.WriteString(frac.String())
	return sb.String(), nil
}

// ParseMixed parses a decimal or mixed-fraction string: "3", "3.25",
// "3/4", "3 1/4", "-3 1/4".
func ParseMixed(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidFraction)
	}

	sign := 1.0
	body := s
	switch body[0] {
	case '-':
		sign = -1
		body = strings.TrimSpace(body[1:])
	case '+':
		body = strings.TrimSpace(body[1:])
	}

	fields := strings.Fields(body)
	var v float64
	switch len(fields) {
	case 1:
		if strings.Contains(fields[0], "/") {
			f, err := parseSimpleFraction(fields[0])
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
			}
			v = f
		} else {
			f, err := strconv.ParseFloat(fields[0], 64)
			if err != nil || f < 0 {
				return 0, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
			}
			v = f
		}
	case 2:
		whole, err := strconv.ParseUint(fields[0], 10, 53)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
		}
		f, err := parseSimpleFraction(fields[1])
		if err != nil || f >= 1 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
		}
		v = float64(whole) + f
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
	}

	if !isFinite(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
	}
	return sign * v, nil
}

// parseSimpleFraction parses "n/d" with non-negative integer parts and d > 0
func parseSimpleFraction(s string) (float64, error) {
	n, d, ok := strings.Cut(s, "/")
	if !ok {
		return 0, ErrInvalidFraction
	}
	num, err := strconv.ParseUint(n, 10, 53)
	if err != nil {
		return 0, err
	}
	den, err := strconv.ParseUint(d, 10, 53)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, ErrInvalidFraction
	}
	return float64(num) / float64(den), nil
}

func checkQuantise(value float64, denom int) error {
	if !isFinite(value) {
		return types.InvalidNumber("value", value)
	}
	if denom <= 0 {
		return types.InvalidParam("precision", "must be a positive integer")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
