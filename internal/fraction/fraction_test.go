package fraction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tradecalc/pkg/types"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name string
		in   Rational
		want Rational
	}{
		{"already reduced", Rational{3, 4}, Rational{3, 4}},
		{"common factor", Rational{6, 8}, Rational{3, 4}},
		{"negative numerator", Rational{-6, 8}, Rational{-3, 4}},
		{"negative denominator", Rational{3, -6}, Rational{-1, 2}},
		{"both negative", Rational{-3, -6}, Rational{1, 2}},
		{"zero numerator", Rational{0, 5}, Rational{0, 1}},
		{"zero over negative", Rational{0, -7}, Rational{0, 1}},
		{"whole number", Rational{32, 16}, Rational{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduceInvariants(t *testing.T) {
	for n := int64(-24); n <= 24; n++ {
		for d := int64(-24); d <= 24; d++ {
			if d == 0 {
				continue
			}
			r, err := Reduce(Rational{n, d})
			require.NoError(t, err)
			assert.Greater(t, r.Den, int64(0), "%d/%d", n, d)
			assert.Equal(t, int64(1), gcd(r.Num, r.Den), "%d/%d", n, d)
			assert.InDelta(t, float64(n)/float64(d), r.Float64(), 1e-12)
		}
	}
}

func TestReduceZeroDenominator(t *testing.T) {
	_, err := Reduce(Rational{1, 0})
	require.Error(t, err)
	assert.Equal(t, types.CodeDivByZero, types.CodeOf(err))
}

func TestFromFloats(t *testing.T) {
	r, err := FromFloats(-4, 8)
	require.NoError(t, err)
	assert.Equal(t, Rational{-1, 2}, r)

	_, err = FromFloats(math.NaN(), 2)
	assert.Equal(t, types.CodeInvalidNumber, types.CodeOf(err))

	_, err = FromFloats(1, math.Inf(1))
	assert.Equal(t, types.CodeInvalidNumber, types.CodeOf(err))

	_, err = FromFloats(1.5, 2)
	assert.Equal(t, types.CodeInvalidNumber, types.CodeOf(err))

	_, err = FromFloats(1, 0)
	assert.Equal(t, types.CodeDivByZero, types.CodeOf(err))
}

func TestToRational(t *testing.T) {
	tests := []struct {
		value float64
		denom int
		want  Rational
	}{
		{0.5, 16, Rational{1, 2}},
		{0.3, 16, Rational{5, 16}},
		{1.9999, 16, Rational{2, 1}},
		{-0.25, 8, Rational{-1, 4}},
		{2.03125, 16, Rational{33, 16}}, // 32.5 rounds away from zero
		{0, 16, Rational{0, 1}},
	}

	for _, tt := range tests {
		got, err := ToRational(tt.value, tt.denom)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ToRational(%v, %d)", tt.value, tt.denom)
	}

	_, err := ToRational(math.Inf(-1), 16)
	assert.Equal(t, types.CodeInvalidNumber, types.CodeOf(err))

	_, err = ToRational(1, 0)
	assert.Equal(t, types.CodeInvalidParam, types.CodeOf(err))

	_, err = ToRational(1, -4)
	assert.Equal(t, types.CodeInvalidParam, types.CodeOf(err))
}

func TestToMixedFractionString(t *testing.T) {
	tests := []struct {
		value float64
		denom int
		want  string
	}{
		{0, 16, "0"},
		{3, 16, "3"},
		{0.5, 16, "1/2"},
		{3.5, 16, "3 1/2"},
		{0.1875, 16, "3/16"},
		{1.9999, 16, "2"},
		{0.99, 16, "1"},
		{-2.25, 16, "-2 1/4"},
		{-0.125, 8, "-1/8"},
		{-0.01, 16, "0"},
		{12.34, 32, "12 11/32"},
		{5.3, 4, "5 1/4"},
	}

	for _, tt := range tests {
		got, err := ToMixedFractionString(tt.value, tt.denom)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ToMixedFractionString(%v, %d)", tt.value, tt.denom)
	}
}

func TestToMixedFractionStringErrors(t *testing.T) {
	_, err := ToMixedFractionString(math.NaN(), 16)
	assert.Equal(t, types.CodeInvalidNumber, types.CodeOf(err))

	_, err = ToMixedFractionString(1, 0)
	assert.Equal(t, types.CodeInvalidParam, types.CodeOf(err))

	_, err = ToMixedFractionString(1e300, 16)
	assert.Equal(t, types.CodeInvalidParam, types.CodeOf(err))
}

func TestParseMixed(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3", 3},
		{"3.25", 3.25},
		{"3/4", 0.75},
		{"3 1/4", 3.25},
		{"  -3 1/4 ", -3.25},
		{"+1/2", 0.5},
		{"-0.5", -0.5},
	}

	for _, tt := range tests {
		got, err := ParseMixed(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-12, tt.in)
	}

	for _, bad := range []string{"", "abc", "1/0", "3 5/4", "1 2 3", "1.5 1/2", "--3", "NaN", "Inf", "3 -1/4"} {
		_, err := ParseMixed(bad)
		assert.ErrorIs(t, err, ErrInvalidFraction, bad)
	}
}

// Formatting then re-quantising at the same denominator yields the same string
func TestMixedFractionReparseIdempotent(t *testing.T) {
	values := []float64{0, 0.03, 0.5, 1.9999, 2.71828, -3.14159, 7.75, 12.999, -0.49, 100.0625}
	for _, denom := range []int{2, 4, 8, 16, 32, 64} {
		for _, v := range values {
			s, err := ToMixedFractionString(v, denom)
			require.NoError(t, err)

			parsed, err := ParseMixed(s)
			require.NoError(t, err, s)

			again, err := ToMixedFractionString(parsed, denom)
			require.NoError(t, err)
			assert.Equal(t, s, again, "value %v denom %d", v, denom)
		}
	}
}
