package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable kind of a calculation failure
type ErrorCode string

const (
	CodeInvalidRequest        ErrorCode = "INVALID_REQUEST"
	CodeInvalidNumber         ErrorCode = "INVALID_NUMBER"
	CodeInvalidUnit           ErrorCode = "INVALID_UNIT"
	CodeUnsupportedConversion ErrorCode = "UNSUPPORTED_CONVERSION"
	CodeDivByZero             ErrorCode = "DIV_BY_ZERO"
	CodeInvalidParam          ErrorCode = "INVALID_PARAM"
	CodeNotImplemented        ErrorCode = "NOT_IMPLEMENTED"
	CodeCalcError             ErrorCode = "CALC_ERROR"
)

// Status returns the HTTP-style status associated with the code
func (c ErrorCode) Status() int {
	if c == CodeNotImplemented {
		return http.StatusNotImplemented
	}
	return http.StatusBadRequest
}

// CalcError is a structured calculation failure. It is created where the
// failure is detected and travels to the boundary unchanged.
type CalcError struct {
	Code    ErrorCode
	Message string
	Status  int
	Details any
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCalcError creates a CalcError whose status is derived from the code
func NewCalcError(code ErrorCode, message string, details any) *CalcError {
	return &CalcError{
		Code:    code,
		Message: message,
		Status:  code.Status(),
		Details: details,
	}
}

// Errorf creates a CalcError without details using a format string
func Errorf(code ErrorCode, format string, args ...any) *CalcError {
	return NewCalcError(code, fmt.Sprintf(format, args...), nil)
}

// InvalidNumber reports a missing, non-numeric, or non-finite parameter
func InvalidNumber(param string, value any) *CalcError {
	return NewCalcError(CodeInvalidNumber,
		fmt.Sprintf("%s must be a finite number", param),
		map[string]any{"param": param, "value": fmt.Sprint(value)})
}

// InvalidParam reports a parameter outside its allowed domain
func InvalidParam(param, reason string) *CalcError {
	return NewCalcError(CodeInvalidParam,
		fmt.Sprintf("%s %s", param, reason),
		map[string]any{"param": param})
}

// DivByZero reports a parameter that must be non-zero
func DivByZero(param string) *CalcError {
	return NewCalcError(CodeDivByZero,
		fmt.Sprintf("%s cannot be zero", param),
		map[string]any{"param": param})
}

// AsCalcError unwraps err into a CalcError. Anything that is not already a
// CalcError becomes CALC_ERROR.
func AsCalcError(err error) *CalcError {
	if err == nil {
		return nil
	}
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce
	}
	return NewCalcError(CodeCalcError, err.Error(), nil)
}

// CodeOf returns the error code carried by err, or "" when err is nil
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return AsCalcError(err).Code
}
