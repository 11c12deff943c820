package calc

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/tradecalc/pkg/types"
)

// resultCache memoises successful results keyed by the resolved request
type resultCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[[32]byte, types.CalcResult]
}

func newResultCache(size int) (*resultCache, error) {
	c, err := lru.New[[32]byte, types.CalcResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &resultCache{cache: c}, nil
}

func (c *resultCache) get(key [32]byte) (types.CalcResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.cache.Get(key)
	if !ok {
		return types.CalcResult{}, false
	}
	return copyResult(res), true
}

func (c *resultCache) add(key [32]byte, res types.CalcResult) {
	c.mu.Lock()
	c.cache.Add(key, copyResult(res))
	c.mu.Unlock()
}

func (c *resultCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Len()
}

// copyResult deep-copies Meta so callers cannot mutate the cached entry
func copyResult(res types.CalcResult) types.CalcResult {
	if res.Meta == nil {
		return res
	}
	res.Meta = copyMeta(res.Meta)
	return res
}

func copyMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMeta(t)
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

type cacheIdentity struct {
	Function  Function   `json:"f"`
	Params    Params     `json:"p"`
	InUnit    types.Unit `json:"i"`
	OutUnit   types.Unit `json:"o"`
	Precision int        `json:"n"`
}

// computeKey hashes the function, params and resolved context. Map keys
// marshal sorted, so equal requests hash equally.
func computeKey(fn Function, p Params, c types.CalcContext) ([32]byte, error) {
	data, err := json.Marshal(cacheIdentity{
		Function:  fn,
		Params:    p,
		InUnit:    c.InUnit,
		OutUnit:   c.OutUnit,
		Precision: c.Precision,
	})
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}
