package calc

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dshills/tradecalc/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newDispatcher(t *testing.T, opts Options) *Dispatcher {
	t.Helper()
	d, err := New(opts)
	require.NoError(t, err)
	return d
}

func decode(t *testing.T, body string) Request {
	t.Helper()
	req, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	return req
}

func TestDispatchScenarios(t *testing.T) {
	d := newDispatcher(t, Options{})
	ctx := context.Background()

	t.Run("convert feet to inches", func(t *testing.T) {
		resp := d.Dispatch(ctx, decode(t, `{"function":"convert","params":{"value":1},"inUnit":"ft","outUnit":"in"}`))
		require.True(t, resp.OK, resp.Message)
		assert.InDelta(t, 12, *resp.Result, 1e-9)
		assert.Equal(t, `12"`, resp.Display)
		assert.Equal(t, http.StatusOK, resp.Status)
	})

	t.Run("diagonal 3-4-5", func(t *testing.T) {
		resp := d.Dispatch(ctx, decode(t, `{"function":"diagonal","params":{"rise":3,"run":4},"inUnit":"ft"}`))
		require.True(t, resp.OK, resp.Message)
		assert.InDelta(t, 5, *resp.Result, 1e-9)
		assert.Equal(t, "ft", resp.Unit)
	})

	t.Run("default stairs", func(t *testing.T) {
		resp := d.Dispatch(ctx, decode(t, `{"function":"stairs","params":{"totalRise":10},"inUnit":"ft","outUnit":"in"}`))
		require.True(t, resp.OK, resp.Message)
		assert.Equal(t, 16, resp.Meta["numSteps"])
		assert.Equal(t, `16 risers @ 7 1/2" rise, 10" tread`, resp.Display)
	})

	t.Run("documented stub", func(t *testing.T) {
		resp := d.Dispatch(ctx, decode(t, `{"function":"hipRafterLength","params":{}}`))
		assert.False(t, resp.OK)
		assert.Equal(t, types.CodeNotImplemented, resp.ErrorCode)
		assert.Equal(t, http.StatusNotImplemented, resp.Status)
		assert.Nil(t, resp.Result)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"function":`))
		require.Error(t, err)
		resp := ErrorResponse(err)
		assert.Equal(t, types.CodeInvalidRequest, resp.ErrorCode)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})
}

func TestDispatchErrors(t *testing.T) {
	d := newDispatcher(t, Options{})

	tests := []struct {
		name string
		body string
		code types.ErrorCode
	}{
		{"missing function", `{"params":{}}`, types.CodeInvalidRequest},
		{"unknown function", `{"function":"teleport"}`, types.CodeNotImplemented},
		{"missing param", `{"function":"diagonal","params":{"rise":3}}`, types.CodeInvalidNumber},
		{"non-numeric param", `{"function":"diagonal","params":{"rise":"three","run":4}}`, types.CodeInvalidNumber},
		{"boolean param", `{"function":"diagonal","params":{"rise":true,"run":4}}`, types.CodeInvalidNumber},
		{"unknown unit", `{"function":"diagonal","params":{"rise":3,"run":4},"inUnit":"furlong"}`, types.CodeInvalidUnit},
		{"mass unit for geometry", `{"function":"diagonal","params":{"rise":3,"run":4},"inUnit":"kg"}`, types.CodeInvalidUnit},
		{"incompatible conversion", `{"function":"convert","params":{"value":1},"inUnit":"ft","outUnit":"kg"}`, types.CodeUnsupportedConversion},
		{"zero run", `{"function":"pitchFromRiseRun","params":{"rise":6,"run":0}}`, types.CodeDivByZero},
		{"zero pitch", `{"function":"runFromPitchRise","params":{"pitch":0,"rise":6}}`, types.CodeDivByZero},
		{"zero precision", `{"function":"convert","params":{"value":1},"precision":0}`, types.CodeInvalidRequest},
		{"huge precision", `{"function":"convert","params":{"value":1},"precision":100000}`, types.CodeInvalidRequest},
		{"negative stairs", `{"function":"stairs","params":{"totalRise":-1}}`, types.CodeInvalidParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Dispatch(context.Background(), decode(t, tt.body))
			assert.False(t, resp.OK)
			assert.Equal(t, tt.code, resp.ErrorCode, resp.Message)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	bodies := map[string]string{
		"empty":          ``,
		"not json":       `hello`,
		"unknown field":  `{"function":"convert","colour":"red"}`,
		"params array":   `{"function":"convert","params":[1,2]}`,
		"trailing data":  `{"function":"convert"} {"function":"convert"}`,
		"fractional int": `{"function":"convert","precision":1.5}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(body))
			assert.Equal(t, types.CodeInvalidRequest, types.CodeOf(err))
		})
	}
}

func TestDispatchNumericStrings(t *testing.T) {
	d := newDispatcher(t, Options{})

	resp := d.Dispatch(context.Background(), decode(t,
		`{"function":"diagonal","params":{"rise":"3","run":"4.0"},"inUnit":"in"}`))
	require.True(t, resp.OK, resp.Message)
	assert.InDelta(t, 5, *resp.Result, 1e-9)

	resp = d.Dispatch(context.Background(), decode(t,
		`{"function":"convert","params":{"value":"1 1/2"},"inUnit":"ft","outUnit":"in"}`))
	require.True(t, resp.OK, resp.Message)
	assert.InDelta(t, 18, *resp.Result, 1e-9)
}

func TestDispatchDefaults(t *testing.T) {
	d := newDispatcher(t, Options{DefaultUnit: types.UnitFoot})

	// No units: both default to feet
	resp := d.Dispatch(context.Background(), decode(t, `{"function":"diagonal","params":{"rise":3,"run":4}}`))
	require.True(t, resp.OK, resp.Message)
	assert.Equal(t, "ft", resp.Unit)
	assert.Equal(t, `5' 0"`, resp.Display)

	// Unit aliases are accepted
	resp = d.Dispatch(context.Background(), decode(t,
		`{"function":"convert","params":{"value":1},"inUnit":"Feet","outUnit":"INCHES"}`))
	require.True(t, resp.OK, resp.Message)
	assert.Equal(t, "in", resp.Unit)

	// Coarser precision changes only the display
	resp = d.Dispatch(context.Background(), decode(t,
		`{"function":"convert","params":{"value":1.3},"inUnit":"in","precision":4}`))
	require.True(t, resp.OK, resp.Message)
	assert.InDelta(t, 1.3, *resp.Result, 1e-12)
	assert.Equal(t, `1 1/4"`, resp.Display)
}

func TestDispatchConvertMeta(t *testing.T) {
	d := newDispatcher(t, Options{})

	resp := d.Dispatch(context.Background(), decode(t,
		`{"function":"convert","params":{"value":2000},"inUnit":"lb","outUnit":"ton"}`))
	require.True(t, resp.OK, resp.Message)

	assert.InDelta(t, 1, *resp.Result, 1e-9)
	assert.Equal(t, "1 ton", resp.Display)
	assert.Equal(t, "mass-to-ton", resp.Meta["kind"])
	assert.Equal(t, "kg", resp.Meta["siUnit"])
	assert.InDelta(t, 907.18474, resp.Meta["si"].(float64), 1e-9)
}

func TestDispatchCancelled(t *testing.T) {
	d := newDispatcher(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := d.Dispatch(ctx, decode(t, `{"function":"diagonal","params":{"rise":3,"run":4}}`))
	assert.False(t, resp.OK)
	assert.Equal(t, types.CodeCalcError, resp.ErrorCode)
}

func TestDispatchBatch(t *testing.T) {
	d := newDispatcher(t, Options{BatchWorkers: 3})

	var reqs []Request
	for i := 1; i <= 20; i++ {
		reqs = append(reqs, Request{
			Function: FuncConvert,
			Params:   Params{"value": float64(i)},
			InUnit:   "ft",
			OutUnit:  "in",
		})
	}
	reqs = append(reqs, Request{Function: FuncBoardFeet})

	out, err := d.DispatchBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))

	for i := 0; i < 20; i++ {
		require.True(t, out[i].OK, out[i].Message)
		assert.InDelta(t, float64(12*(i+1)), *out[i].Result, 1e-9, "response %d out of order", i)
	}
	assert.Equal(t, types.CodeNotImplemented, out[20].ErrorCode)

	stats := d.Stats()
	assert.EqualValues(t, 21, stats.Requests)
	assert.EqualValues(t, 1, stats.Failures)
}

func TestDispatchBatchLimits(t *testing.T) {
	d := newDispatcher(t, Options{MaxBatchSize: 2})

	_, err := d.DispatchBatch(context.Background(), nil)
	assert.Equal(t, types.CodeInvalidRequest, types.CodeOf(err))

	reqs := make([]Request, 3)
	_, err = d.DispatchBatch(context.Background(), reqs)
	assert.Equal(t, types.CodeInvalidRequest, types.CodeOf(err))
}

func TestDispatchCache(t *testing.T) {
	d := newDispatcher(t, Options{CacheSize: 8})
	ctx := context.Background()

	req := Request{Function: FuncDiagonal, Params: Params{"rise": 3.0, "run": 4.0}, InUnit: "ft"}

	first := d.Dispatch(ctx, req)
	require.True(t, first.OK)
	first.Meta["si"] = "tampered"

	second := d.Dispatch(ctx, req)
	require.True(t, second.OK)
	assert.InDelta(t, 1.524, second.Meta["si"].(float64), 1e-12)

	stats := d.Stats()
	assert.EqualValues(t, 1, stats.CacheHits)
	assert.Equal(t, 1, stats.CachedItems)

	// A different output unit is a different entry
	req.OutUnit = "in"
	third := d.Dispatch(ctx, req)
	require.True(t, third.OK)
	assert.InDelta(t, 60, *third.Result, 1e-9)
	assert.Equal(t, 2, d.Stats().CachedItems)

	// Nested meta is copied too
	stairs := Request{Function: FuncStairs, Params: Params{"totalRise": 10.0}, InUnit: "ft", OutUnit: "in"}
	r1 := d.Dispatch(ctx, stairs)
	require.True(t, r1.OK, r1.Message)
	r1.Meta["display"].(map[string]string)["riserHeight"] = "changed"

	r2 := d.Dispatch(ctx, stairs)
	require.True(t, r2.OK, r2.Message)
	assert.Equal(t, `7 1/2"`, r2.Meta["display"].(map[string]string)["riserHeight"])
	assert.Equal(t, 3, d.Stats().CachedItems)

	// Failures are never cached
	bad := Request{Function: FuncDiagonal, Params: Params{"rise": 0.0, "run": 0.0}}
	d.Dispatch(ctx, bad)
	d.Dispatch(ctx, bad)
	assert.Equal(t, 3, d.Stats().CachedItems)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{DefaultUnit: "furlong"})
	assert.Error(t, err)

	_, err = New(Options{DefaultPrecision: 64, MaxPrecision: 32})
	assert.Error(t, err)
}

func TestCatalogMatchesRegistry(t *testing.T) {
	for _, info := range Catalog() {
		_, registered := registry[info.Name]
		assert.Equal(t, info.Implemented, registered, "catalog and registry disagree on %s", info.Name)
	}
	for fn := range registry {
		_, ok := Lookup(fn)
		assert.True(t, ok, fmt.Sprintf("%s missing from catalog", fn))
	}

	want := []Function{
		FuncPitchFromRiseRun, FuncRiseFromPitchRun, FuncRunFromPitchRise,
		FuncDiagonal, FuncConvert, FuncStairs,
	}
	var got []Function
	for _, info := range Catalog() {
		if info.Implemented {
			got = append(got, info.Name)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("implemented functions mismatch (-want +got):\n%s", diff)
	}
}
