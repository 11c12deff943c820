package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/tradecalc/internal/calc"
)

const (
	// ServerName is the MCP server name
	ServerName = "tradecalc"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	calc   *calc.Dispatcher
	logger *zap.Logger
}

// NewServer creates a new MCP server instance backed by d
func NewServer(d *calc.Dispatcher, logger *zap.Logger, version string) (*Server, error) {
	if d == nil {
		return nil, errors.New("dispatcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
	)

	s := &Server{
		mcp:    mcpServer,
		calc:   d,
		logger: logger,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP on stdio", zap.Int("tools", len(calcTools)+1))
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	for _, t := range calcTools {
		s.mcp.AddTool(calcToolSchema(t), s.calcHandler(t))
	}

	s.mcp.AddTool(listFunctionsTool(), s.handleListFunctions)
}
