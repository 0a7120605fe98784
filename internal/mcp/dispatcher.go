package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"financetools/internal/tool"
)

// Dispatcher answers JSON-RPC requests from a tool registry.
type Dispatcher struct {
	registry *tool.Registry
	info     ServerInfo
	timeout  time.Duration
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTimeout bounds each tools/call invocation. Zero leaves the caller's context alone.
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// NewDispatcher creates a dispatcher serving the tools in registry.
func NewDispatcher(registry *tool.Registry, info ServerInfo, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		info:     info,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle answers one request. Notifications (methods under "notifications/")
// get no response and Handle returns nil.
func (d *Dispatcher) Handle(ctx context.Context, req *JSONRPCRequest, correlationID string) *JSONRPCResponse {
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      d.info,
		})
	case "ping":
		return resultResponse(req.ID, map[string]any{})
	case "tools/list", "list_tools":
		return resultResponse(req.ID, d.ListTools())
	case "tools/call", "call_tool":
		return d.callTool(ctx, req, correlationID)
	default:
		LogMCPError(ctx, d.logger, req.Method, "", correlationID, MethodNotFound, "unknown method")
		return errorResponse(req.ID, rpcError(MethodNotFound, "Unknown method", req.Method))
	}
}

// ListTools describes every registered tool.
func (d *Dispatcher) ListTools() ListToolsResult {
	defs := d.registry.Definitions()
	tools := make([]ToolDescriptor, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, ToolDescriptor{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		})
	}
	return ListToolsResult{Tools: tools}
}

func (d *Dispatcher) callTool(ctx context.Context, req *JSONRPCRequest, correlationID string) *JSONRPCResponse {
	start := time.Now()

	params, err := decodeCallParams(req.Params)
	if err != nil {
		rpcErr := FormatMCPError(err)
		LogMCPError(ctx, d.logger, req.Method, "", correlationID, rpcErr.Code, rpcErr.Message)
		return errorResponse(req.ID, rpcErr)
	}

	LogMCPRequest(ctx, d.logger, req.Method, params.Name, correlationID)

	if !d.registry.Has(params.Name) {
		LogMCPError(ctx, d.logger, req.Method, params.Name, correlationID, ToolNotFound, "tool not found")
		return errorResponse(req.ID, rpcError(ToolNotFound, "Tool not found", params.Name))
	}

	res, err := d.Invoke(ctx, params.Name, params.Arguments)
	if err != nil {
		rpcErr := FormatMCPError(err)
		LogMCPError(ctx, d.logger, req.Method, params.Name, correlationID, rpcErr.Code, rpcErr.Message)
		msg := fmt.Sprintf("%s cancelled: %v", params.Name, err)
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("%s timed out after %dms", params.Name, time.Since(start).Milliseconds())
		}
		res = tool.Err(tool.Failure{Error: msg})
	}

	LogMCPSuccess(ctx, d.logger, req.Method, params.Name, correlationID, res.IsError(), time.Since(start).Milliseconds())
	return resultResponse(req.ID, CallToolResult{
		Content: []TextContent{{Type: "text", Text: res.String()}},
		IsError: res.IsError(),
	})
}

// Invoke runs a tool, giving up with context.DeadlineExceeded once the
// configured timeout passes. The handler keeps running until it observes ctx.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (tool.Result, error) {
	if d.timeout <= 0 {
		return d.registry.Invoke(ctx, name, args), nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan tool.Result, 1)
	go func() {
		done <- d.registry.Invoke(ctx, name, args)
	}()

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return tool.Result{}, ctx.Err()
	}
}
