package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/tradecalc/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC; logs go to stderr.

MCP client configuration:
  {
    "mcpServers": {
      "tradecalc": {
        "command": "/path/to/tradecalc",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(d, logger.Named("mcp"), version)
	if err != nil {
		return err
	}
	return server.Serve(cmd.Context())
}
