package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/tradecalc/internal/calc"
)

// toolArg maps a snake_case tool argument onto a calculation param
type toolArg struct {
	name        string
	param       string
	description string
	required    bool
}

// calcTool describes a tool backed by one calculation function
type calcTool struct {
	name        string
	description string
	function    calc.Function
	args        []toolArg
}

var calcTools = []calcTool{
	{
		name:        "pitch_from_rise_run",
		description: "Roof pitch (X per 12) and angle from a rise and a run",
		function:    calc.FuncPitchFromRiseRun,
		args: []toolArg{
			{name: "rise", param: "rise", description: "Vertical rise", required: true},
			{name: "run", param: "run", description: "Horizontal run (non-zero)", required: true},
		},
	},
	{
		name:        "rise_from_pitch_run",
		description: "Rise produced by a pitch (X per 12) over a run",
		function:    calc.FuncRiseFromPitchRun,
		args: []toolArg{
			{name: "pitch", param: "pitch", description: "Pitch as inches of rise per 12 of run", required: true},
			{name: "run", param: "run", description: "Horizontal run", required: true},
		},
	},
	{
		name:        "run_from_pitch_rise",
		description: "Run needed to reach a rise at a pitch (X per 12)",
		function:    calc.FuncRunFromPitchRise,
		args: []toolArg{
			{name: "pitch", param: "pitch", description: "Pitch as inches of rise per 12 of run (non-zero)", required: true},
			{name: "rise", param: "rise", description: "Vertical rise", required: true},
		},
	},
	{
		name:        "diagonal",
		description: "Hypotenuse of a right triangle from rise and run",
		function:    calc.FuncDiagonal,
		args: []toolArg{
			{name: "rise", param: "rise", description: "First leg", required: true},
			{name: "run", param: "run", description: "Second leg", required: true},
		},
	},
	{
		name:        "convert",
		description: "Convert a value between length, mass, ton or area units",
		function:    calc.FuncConvert,
		args: []toolArg{
			{name: "value", param: "value", description: "Value expressed in in_unit", required: true},
		},
	},
	{
		name:        "stairs",
		description: "Riser count, riser height, total run and stringer length for a straight stair",
		function:    calc.FuncStairs,
		args: []toolArg{
			{name: "total_rise", param: "totalRise", description: "Floor-to-floor rise", required: true},
			{name: "desired_rise_per_step", param: "desiredRisePerStep", description: "Target riser height (default 7 3/4\")"},
			{name: "desired_tread", param: "desiredTread", description: "Tread depth (default 10\")"},
		},
	},
}

// calcToolSchema builds the tool definition, adding the shared unit and
// precision arguments
func calcToolSchema(t calcTool) mcp.Tool {
	props := make(map[string]interface{}, len(t.args)+3)
	var required []string

	for _, a := range t.args {
		props[a.name] = map[string]interface{}{
			"type":        []string{"number", "string"},
			"description": a.description + ". Numbers or strings such as \"3 1/2\"",
		}
		if a.required {
			required = append(required, a.name)
		}
	}

	props["in_unit"] = map[string]interface{}{
		"type":        "string",
		"description": "Unit of the inputs (in, ft, yd, m, cm, mm, lb, kg, ton, t, m2, ft2, in2, yd2, acre)",
	}
	props["out_unit"] = map[string]interface{}{
		"type":        "string",
		"description": "Unit of the result (defaults to in_unit)",
	}
	props["precision"] = map[string]interface{}{
		"type":        "integer",
		"description": "Fraction denominator for imperial display (16 = nearest 1/16)",
		"default":     16,
		"minimum":     1,
	}

	return mcp.Tool{
		Name:        t.name,
		Description: t.description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}

// listFunctionsTool returns the tool definition for list_functions
func listFunctionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_functions",
		Description: "List every calculation function and whether it is implemented",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
