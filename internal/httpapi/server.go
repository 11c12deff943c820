// Package httpapi serves the calculation engine over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/dshills/tradecalc/internal/calc"
	"github.com/dshills/tradecalc/internal/config"
)

// Server is the HTTP front end of a Dispatcher
type Server struct {
	cfg     config.ServerConfig
	calc    *calc.Dispatcher
	logger  *zap.Logger
	version string
	mux     *http.ServeMux
}

// New creates a Server and registers its routes
func New(cfg config.ServerConfig, d *calc.Dispatcher, logger *zap.Logger, version string) (*Server, error) {
	if d == nil {
		return nil, errors.New("dispatcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:     cfg,
		calc:    d,
		logger:  logger,
		version: version,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/calc", s.handleCalc)
	s.mux.HandleFunc("/api/calc/batch", s.handleBatch)
	s.mux.HandleFunc("/api/functions", s.handleFunctions)
	s.mux.HandleFunc("/healthz", s.handleHealth)
}

// Handler returns the routed handler wrapped in request-ID and access-log
// middleware
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = newAccessLogger(handler, s.logger)
	handler = withRequestID(handler)
	return handler
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
