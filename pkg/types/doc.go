// Package types provides shared type definitions for the tradecalc engine.
//
// This package defines the domain types passed between the numeric core
// (fraction, units, geometry) and the surfaces that call it (calc dispatch,
// HTTP, MCP, CLI).
//
// # Core Types
//
// Unit is a canonical unit token; every unit belongs to one Dimension:
//
//	types.UnitFoot       // "ft", length
//	types.UnitPound      // "lb", mass
//	types.UnitShortTon   // "ton", ton
//	types.UnitAcre       // "acre", area
//
// CalcContext is the immutable settings bundle handed to every calculation:
//
//	ctx := types.CalcContext{
//	    InUnit:    types.UnitFoot,
//	    OutUnit:   types.UnitInch,
//	    Precision: 16, // nearest 1/16
//	}
//
// CalcResult is what a calculation returns:
//
//	result := types.CalcResult{
//	    Value:   5,
//	    Unit:    "ft",
//	    Display: "5' 0\"",
//	    Meta:    map[string]any{"si": 1.524, "siUnit": "m"},
//	}
//
// # Errors
//
// Failures are reported as *CalcError, which carries a machine-readable
// ErrorCode, a message, an HTTP-style status and optional details:
//
//	if ce := types.AsCalcError(err); ce.Code == types.CodeDivByZero {
//	    // run was zero
//	}
//
// Codes:
//   - INVALID_REQUEST: malformed envelope
//   - INVALID_NUMBER: missing, non-numeric or non-finite parameter
//   - INVALID_UNIT: unit not valid for the operation
//   - UNSUPPORTED_CONVERSION: units from unbridged dimensions
//   - DIV_BY_ZERO: a divisor parameter was zero
//   - INVALID_PARAM: positivity or domain violation
//   - NOT_IMPLEMENTED: documented but unbuilt function (status 501)
//   - CALC_ERROR: anything else
package types
