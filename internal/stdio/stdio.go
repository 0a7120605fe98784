// Package stdio serves the tool registry as an MCP server over stdin/stdout.
package stdio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"financetools/internal/tool"
)

// NewServer registers every tool in registry on a new MCP server.
func NewServer(name, version string, registry *tool.Registry) (*server.MCPServer, error) {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))

	for _, def := range registry.Definitions() {
		schema, err := json.Marshal(def.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("encode schema for %s: %w", def.Name, err)
		}
		s.AddTool(mcp.NewToolWithRawSchema(def.Name, def.Description, schema), Handler(registry, def.Name))
	}
	return s, nil
}

// Handler adapts a registry tool to an MCP tool handler. Tool failures are
// returned as error results so the host sees the envelope text.
func Handler(registry *tool.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := registry.Invoke(ctx, name, request.GetArguments())
		if res.IsError() {
			return mcp.NewToolResultError(res.String()), nil
		}
		return mcp.NewToolResultText(res.String()), nil
	}
}

// Serve reads JSON-RPC messages from in and writes responses to out until ctx
// is cancelled or in is closed. Library diagnostics go to logger at error level.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *slog.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	logger.Info("stdio_server_listening")
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}
