// Package mcp implements the Model Context Protocol (MCP) server for tradecalc.
//
// The MCP server exposes the calculation engine to AI assistants as tools:
//   - pitch_from_rise_run: Roof pitch and angle from rise and run
//   - rise_from_pitch_run: Rise from a pitch over a run
//   - run_from_pitch_rise: Run from a pitch and a rise
//   - diagonal: Hypotenuse from rise and run
//   - convert: Unit conversion across length, mass, ton and area
//   - stairs: Straight stair layout
//   - list_functions: Every documented function and its status
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// stdout is reserved for protocol messages, so logging goes to stderr.
//
// # Basic Usage
//
//	tradecalc mcp
//
// # Tool Arguments
//
// Calculation tools take their numeric inputs in snake_case plus three
// shared optional arguments:
//
//	{
//	  "name": "stairs",
//	  "arguments": {
//	    "total_rise": 8,
//	    "in_unit": "ft",
//	    "out_unit": "in",
//	    "precision": 16
//	  }
//	}
//
// Numbers may be sent as JSON numbers or as strings such as "3 1/2".
//
// Response:
//
//	{
//	  "result": 13,
//	  "unit": "steps",
//	  "display": "13 risers @ 7 3/8\" rise, 10\" tread",
//	  "meta": {...}
//	}
//
// # Error Handling
//
// Calculation failures are returned as MCPError values:
//
//	-32602: Invalid params (bad numbers, units, zero divisors, unsupported conversions)
//	-32010: Calculation failed
//	-32011: Function not implemented
//
// The error data carries the calculation error code and its details:
//
//	{"errorCode": "DIV_BY_ZERO", "details": {"param": "run"}}
package mcp
