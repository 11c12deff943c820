package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/tradecalc/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the calculation API over HTTP until interrupted.

Endpoints:
  POST /api/calc         single calculation
  POST /api/calc/batch   {"requests": [...]}
  GET  /api/functions    function catalog
  GET  /healthz          liveness

Examples:
  tradecalc serve
  tradecalc serve --addr :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	d, err := newDispatcher()
	if err != nil {
		return err
	}

	srv, err := httpapi.New(cfg.Server, d, logger.Named("http"), version)
	if err != nil {
		return err
	}

	logger.Info("tradecalc starting",
		zap.String("version", version),
		zap.String("build_time", buildTime),
		zap.String("addr", cfg.Server.Addr))

	if err := srv.Run(cmd.Context()); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
