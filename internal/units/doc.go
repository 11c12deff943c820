// Package units provides the unit table, converters and display formatting.
//
// Every unit belongs to one dimension and carries a fixed multiplier to that
// dimension's SI base (metre, kilogram, square metre). Ton units use the
// kilogram base too, which is how mass and ton convert into each other:
//
//	units.Convert(1, types.UnitFoot, types.UnitInch)      // {12, "length"}
//	units.Convert(2000, types.UnitPound, types.UnitShortTon) // {1, "mass-to-ton"}
//	units.Convert(1, types.UnitFoot, types.UnitKilogram)  // UNSUPPORTED_CONVERSION
//
// FormatValue renders feet as feet-inches-fraction, inches as a mixed
// fraction, and everything else as a six-place decimal with its label.
package units
