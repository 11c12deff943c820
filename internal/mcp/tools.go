package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/tradecalc/internal/calc"
	"github.com/dshills/tradecalc/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodeCalcFailed     = -32010 // Calculation failed after validation
	ErrorCodeNotImplemented = -32011 // Function is documented but not built
)

// calcHandler returns the tool handler for a calculation-backed tool
func (s *Server) calcHandler(t calcTool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			if request.Params.Arguments != nil {
				return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
			}
			args = map[string]interface{}{}
		}

		params := make(calc.Params, len(t.args))
		for _, a := range t.args {
			if v, present := args[a.name]; present {
				params[a.param] = v
			}
		}

		req := calc.Request{
			Function: t.function,
			Params:   params,
			InUnit:   getStringDefault(args, "in_unit", ""),
			OutUnit:  getStringDefault(args, "out_unit", ""),
		}
		if _, present := args["precision"]; present {
			p, err := getInt(args, "precision")
			if err != nil {
				return nil, err
			}
			req.Precision = &p
		}

		res, err := s.calc.Evaluate(ctx, req)
		if err != nil {
			ce := types.AsCalcError(err)
			s.logger.Debug("tool call failed",
				zap.String("tool", t.name),
				zap.String("errorCode", string(ce.Code)),
				zap.String("message", ce.Message))
			return nil, toMCPError(ce)
		}

		response := map[string]interface{}{
			"result":  res.Value,
			"unit":    res.Unit,
			"display": res.Display,
		}
		if len(res.Meta) > 0 {
			response["meta"] = res.Meta
		}

		return mcp.NewToolResultText(formatJSON(response)), nil
	}
}

// handleListFunctions handles the list_functions tool invocation
func (s *Server) handleListFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	functions := calc.Catalog()

	implemented := 0
	for _, f := range functions {
		if f.Implemented {
			implemented++
		}
	}

	response := map[string]interface{}{
		"functions":    functions,
		"implemented":  implemented,
		"default_unit": string(s.calc.DefaultUnit()),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// toMCPError maps a calculation failure onto a protocol error
func toMCPError(ce *types.CalcError) *MCPError {
	code := ErrorCodeInvalidParams
	switch ce.Code {
	case types.CodeNotImplemented:
		code = ErrorCodeNotImplemented
	case types.CodeCalcError:
		code = ErrorCodeCalcFailed
	}

	return &MCPError{
		Code:    code,
		Message: ce.Message,
		Data: map[string]interface{}{
			"errorCode": string(ce.Code),
			"details":   ce.Details,
		},
	}
}

// newMCPError creates a new MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getInt extracts an integer parameter. JSON numbers arrive as float64, so
// only integral values within int range are accepted.
func getInt(args map[string]interface{}, key string) (int, error) {
	switch val := args[key].(type) {
	case int:
		return val, nil
	case float64:
		if val == math.Trunc(val) && math.Abs(val) <= math.MaxInt32 {
			return int(val), nil
		}
	}
	return 0, newMCPError(ErrorCodeInvalidParams, key+" must be an integer", map[string]interface{}{
		"errorCode": string(types.CodeInvalidRequest),
		"details":   map[string]interface{}{key: args[key]},
	})
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
