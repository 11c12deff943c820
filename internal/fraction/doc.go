// Package fraction provides exact fractions and fractional-inch formatting.
//
// Tape measures read in binary fractions of an inch, so display values are
// quantised to the nearest 1/denom (16 by default) and rendered as mixed
// numbers:
//
//	fraction.ToMixedFractionString(3.5, 16)    // "3 1/2"
//	fraction.ToMixedFractionString(0.1875, 16) // "3/16"
//	fraction.ToMixedFractionString(1.9999, 16) // "2" (carry)
//	fraction.ToMixedFractionString(-2.25, 16)  // "-2 1/4"
//
// Rationals are always reduced with a positive denominator:
//
//	fraction.Reduce(fraction.Rational{Num: 3, Den: -6}) // -1/2
//
// ParseMixed reads the same notation back, which lets callers pass
// "3 1/2" wherever a number is expected.
package fraction
