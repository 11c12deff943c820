package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dshills/tradecalc/pkg/types"
)

// Request is one calculation request as it arrives over the wire
type Request struct {
	Function  Function `json:"function"`
	Params    Params   `json:"params,omitempty"`
	InUnit    string   `json:"inUnit,omitempty"`
	OutUnit   string   `json:"outUnit,omitempty"`
	Precision *int     `json:"precision,omitempty"`
}

// BatchRequest wraps several requests evaluated together
type BatchRequest struct {
	Requests []Request `json:"requests"`
}

// Response is the wire envelope for a single calculation
type Response struct {
	OK        bool            `json:"ok"`
	Result    *float64        `json:"result,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Display   string          `json:"display,omitempty"`
	Meta      map[string]any  `json:"meta,omitempty"`
	ErrorCode types.ErrorCode `json:"errorCode,omitempty"`
	Message   string          `json:"message,omitempty"`
	Details   any             `json:"details,omitempty"`

	// Status is the HTTP status matching this response
	Status int `json:"-"`
}

// BatchResponse holds per-request responses in request order
type BatchResponse struct {
	Results []Response `json:"results"`
}

// Decode parses a single request body. Malformed JSON, unknown fields and
// trailing data fail with INVALID_REQUEST.
func Decode(r io.Reader) (Request, error) {
	var req Request
	if err := decodeStrict(r, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// DecodeBatch parses a {"requests": [...]} body
func DecodeBatch(r io.Reader) (BatchRequest, error) {
	var batch BatchRequest
	if err := decodeStrict(r, &batch); err != nil {
		return BatchRequest{}, err
	}
	if batch.Requests == nil {
		return BatchRequest{}, types.NewCalcError(types.CodeInvalidRequest,
			"requests is required", nil)
	}
	return batch, nil
}

func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return types.NewCalcError(types.CodeInvalidRequest, "request body is empty", nil)
		}
		return types.NewCalcError(types.CodeInvalidRequest,
			fmt.Sprintf("malformed request: %v", err), nil)
	}
	if dec.More() {
		return types.NewCalcError(types.CodeInvalidRequest,
			"malformed request: unexpected data after JSON object", nil)
	}
	return nil
}

// Validate checks the request envelope. Parameters are checked by the
// function's binder.
func (r Request) Validate(maxPrecision int) error {
	if r.Function == "" {
		return types.NewCalcError(types.CodeInvalidRequest, "function is required", nil)
	}
	if r.Precision != nil && (*r.Precision < 1 || *r.Precision > maxPrecision) {
		return types.NewCalcError(types.CodeInvalidRequest,
			fmt.Sprintf("precision must be between 1 and %d", maxPrecision),
			map[string]any{"precision": *r.Precision})
	}
	return nil
}

// ErrorResponse builds the failure envelope for err
func ErrorResponse(err error) Response {
	ce := types.AsCalcError(err)
	return Response{
		OK:        false,
		ErrorCode: ce.Code,
		Message:   ce.Message,
		Details:   ce.Details,
		Status:    ce.Status,
	}
}

// ResultResponse builds the success envelope for res
func ResultResponse(res types.CalcResult) Response {
	v := res.Value
	return Response{
		OK:      true,
		Result:  &v,
		Unit:    res.Unit,
		Display: res.Display,
		Meta:    res.Meta,
		Status:  http.StatusOK,
	}
}
