// Package calc routes calculation requests to their handlers.
//
// A request names a function, a bag of loosely typed params, optional input
// and output units, and an optional fraction precision:
//
//	{
//	  "function": "diagonal",
//	  "params": {"rise": 3, "run": "4"},
//	  "inUnit": "ft",
//	  "outUnit": "in",
//	  "precision": 16
//	}
//
// Each implemented function is registered as a typed handler: a binder turns
// the params into an input struct (numbers, numeric strings and mixed
// fractions such as "3 1/2" are all accepted) and a runner computes the
// result. inUnit falls back to the dispatcher's default unit and outUnit to
// inUnit.
//
// # Responses
//
// Success:
//
//	{"ok": true, "result": 60, "unit": "in", "display": "60\"", "meta": {...}}
//
// Failure:
//
//	{"ok": false, "errorCode": "DIV_BY_ZERO", "message": "run cannot be zero"}
//
// Failures carry status 400, except NOT_IMPLEMENTED (501), which covers both
// documented functions that are not built yet and unknown names.
//
// # Batches
//
// DispatchBatch evaluates many requests on a bounded worker pool and returns
// the responses in request order. Each response stands alone; one failing
// request never fails the batch.
//
// # Caching
//
// With Options.CacheSize > 0, successful results are kept in an LRU cache
// keyed by a SHA-256 of the function, params and resolved unit context.
package calc
