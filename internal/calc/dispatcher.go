package calc

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/tradecalc/internal/units"
	"github.com/dshills/tradecalc/pkg/types"
)

// Options configures a Dispatcher. Zero values fall back to the defaults.
type Options struct {
	DefaultUnit      types.Unit
	DefaultPrecision int
	MaxPrecision     int
	BatchWorkers     int
	MaxBatchSize     int
	CacheSize        int // 0 disables result caching
	Logger           *zap.Logger
}

const (
	defaultMaxPrecision = 256
	defaultBatchWorkers = 4
	defaultMaxBatchSize = 100
)

// Stats reports dispatcher counters
type Stats struct {
	Requests    int64 `json:"requests"`
	Failures    int64 `json:"failures"`
	CacheHits   int64 `json:"cacheHits"`
	CachedItems int   `json:"cachedItems"`
}

// Dispatcher routes requests to calculation handlers
type Dispatcher struct {
	opts   Options
	logger *zap.Logger
	cache  *resultCache

	requests  atomic.Int64
	failures  atomic.Int64
	cacheHits atomic.Int64
}

// New creates a Dispatcher
func New(opts Options) (*Dispatcher, error) {
	if opts.DefaultUnit == "" {
		opts.DefaultUnit = types.UnitInch
	}
	if _, err := units.Parse(string(opts.DefaultUnit)); err != nil {
		return nil, fmt.Errorf("default unit: %w", err)
	}
	if opts.DefaultPrecision <= 0 {
		opts.DefaultPrecision = types.DefaultPrecision
	}
	if opts.MaxPrecision <= 0 {
		opts.MaxPrecision = defaultMaxPrecision
	}
	if opts.DefaultPrecision > opts.MaxPrecision {
		return nil, fmt.Errorf("default precision %d exceeds max precision %d",
			opts.DefaultPrecision, opts.MaxPrecision)
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = defaultBatchWorkers
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = defaultMaxBatchSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	d := &Dispatcher{opts: opts, logger: opts.Logger}
	if opts.CacheSize > 0 {
		cache, err := newResultCache(opts.CacheSize)
		if err != nil {
			return nil, err
		}
		d.cache = cache
	}
	return d, nil
}

// Evaluate validates req, resolves its units and runs the matching handler.
// Every failure is a *types.CalcError.
func (d *Dispatcher) Evaluate(ctx context.Context, req Request) (types.CalcResult, error) {
	if err := ctx.Err(); err != nil {
		return types.CalcResult{}, types.Errorf(types.CodeCalcError, "request cancelled: %v", err)
	}
	if err := req.Validate(d.opts.MaxPrecision); err != nil {
		return types.CalcResult{}, err
	}

	h, ok := registry[req.Function]
	if !ok {
		return types.CalcResult{}, notImplemented(req.Function)
	}

	c, err := d.resolveContext(req)
	if err != nil {
		return types.CalcResult{}, err
	}

	var key [32]byte
	useCache := d.cache != nil
	if useCache {
		if key, err = computeKey(req.Function, req.Params, c); err != nil {
			useCache = false
		} else if res, hit := d.cache.get(key); hit {
			d.cacheHits.Add(1)
			return res, nil
		}
	}

	res, err := h.Call(req.Params, c)
	if err != nil {
		return types.CalcResult{}, types.AsCalcError(err)
	}
	if err := res.Validate(); err != nil {
		return types.CalcResult{}, types.Errorf(types.CodeCalcError, "%s: %v", req.Function, err)
	}

	if useCache {
		d.cache.add(key, res)
	}
	return res, nil
}

// Dispatch evaluates req and wraps the outcome in the wire envelope
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	d.requests.Add(1)

	res, err := d.Evaluate(ctx, req)
	if err != nil {
		d.failures.Add(1)
		ce := types.AsCalcError(err)
		d.logger.Debug("calculation failed",
			zap.String("function", string(req.Function)),
			zap.String("errorCode", string(ce.Code)),
			zap.String("message", ce.Message))
		return ErrorResponse(ce)
	}
	return ResultResponse(res)
}

// DispatchBatch evaluates reqs concurrently on a bounded worker pool.
// Responses keep request order and a failing request never affects the
// others. Only an oversized or empty batch fails as a whole.
func (d *Dispatcher) DispatchBatch(ctx context.Context, reqs []Request) ([]Response, error) {
	if len(reqs) == 0 {
		return nil, types.NewCalcError(types.CodeInvalidRequest, "batch is empty", nil)
	}
	if len(reqs) > d.opts.MaxBatchSize {
		return nil, types.NewCalcError(types.CodeInvalidRequest,
			fmt.Sprintf("batch of %d exceeds limit of %d", len(reqs), d.opts.MaxBatchSize),
			map[string]any{"size": len(reqs), "limit": d.opts.MaxBatchSize})
	}

	out := make([]Response, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.BatchWorkers)

	for i, req := range reqs {
		g.Go(func() error {
			out[i] = d.Dispatch(gctx, req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns a snapshot of the dispatcher counters
func (d *Dispatcher) Stats() Stats {
	s := Stats{
		Requests:  d.requests.Load(),
		Failures:  d.failures.Load(),
		CacheHits: d.cacheHits.Load(),
	}
	if d.cache != nil {
		s.CachedItems = d.cache.len()
	}
	return s
}

// DefaultUnit returns the unit applied when a request names none
func (d *Dispatcher) DefaultUnit() types.Unit {
	return d.opts.DefaultUnit
}

// MaxPrecision returns the largest accepted precision denominator
func (d *Dispatcher) MaxPrecision() int {
	return d.opts.MaxPrecision
}

func (d *Dispatcher) resolveContext(req Request) (types.CalcContext, error) {
	in := d.opts.DefaultUnit
	if req.InUnit != "" {
		u, err := units.Parse(req.InUnit)
		if err != nil {
			return types.CalcContext{}, err
		}
		in = u
	}

	out := in
	if req.OutUnit != "" {
		u, err := units.Parse(req.OutUnit)
		if err != nil {
			return types.CalcContext{}, err
		}
		out = u
	}

	precision := d.opts.DefaultPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	return types.CalcContext{InUnit: in, OutUnit: out, Precision: precision}, nil
}

func notImplemented(fn Function) *types.CalcError {
	if _, documented := Lookup(fn); documented {
		return types.NewCalcError(types.CodeNotImplemented,
			fmt.Sprintf("%s is not implemented yet", fn),
			map[string]any{"function": string(fn)})
	}
	return types.NewCalcError(types.CodeNotImplemented,
		fmt.Sprintf("unknown function: %s", fn),
		map[string]any{"function": string(fn)})
}
