package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/dshills/tradecalc/internal/calc"
	"github.com/dshills/tradecalc/internal/units"
	"github.com/dshills/tradecalc/pkg/types"
)

const defaultMaxBodyBytes = 1 << 20

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}

	req, err := calc.Decode(s.limitBody(w, r))
	if err != nil {
		resp := calc.ErrorResponse(err)
		s.writeJSON(w, r, resp.Status, resp)
		return
	}

	resp := s.calc.Dispatch(r.Context(), req)
	s.writeJSON(w, r, resp.Status, resp)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}

	batch, err := calc.DecodeBatch(s.limitBody(w, r))
	if err != nil {
		resp := calc.ErrorResponse(err)
		s.writeJSON(w, r, resp.Status, resp)
		return
	}

	results, err := s.calc.DispatchBatch(r.Context(), batch.Requests)
	if err != nil {
		resp := calc.ErrorResponse(err)
		s.writeJSON(w, r, resp.Status, resp)
		return
	}

	s.writeJSON(w, r, http.StatusOK, calc.BatchResponse{Results: results})
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"functions":   calc.Catalog(),
		"units":       units.Known(),
		"defaultUnit": string(s.calc.DefaultUnit()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"stats":   s.calc.Stats(),
	})
}

// allowMethod writes a 405 envelope when r does not use method
func (s *Server) allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeJSON(w, r, http.StatusMethodNotAllowed, calc.Response{
		OK:        false,
		ErrorCode: types.CodeInvalidRequest,
		Message:   "method " + r.Method + " not allowed, use " + method,
	})
	return false
}

func (s *Server) limitBody(w http.ResponseWriter, r *http.Request) io.Reader {
	limit := s.cfg.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	return http.MaxBytesReader(w, r.Body, limit)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
	}
}
