package mcp

import (
	"context"
	"log/slog"
)

// LogMCPRequest logs an MCP request with structured fields
func LogMCPRequest(ctx context.Context, logger *slog.Logger, method, tool, correlationID string) {
	logger.InfoContext(ctx, "mcp_request",
		"component", "mcp",
		"method", method,
		"tool_name", tool,
		"correlation_id", correlationID,
	)
}

// LogMCPSuccess logs a completed MCP request
func LogMCPSuccess(ctx context.Context, logger *slog.Logger, method, tool, correlationID string, toolError bool, latencyMS int64) {
	logger.InfoContext(ctx, "mcp_success",
		"component", "mcp",
		"method", method,
		"tool_name", tool,
		"correlation_id", correlationID,
		"tool_error", toolError,
		"latency_ms", latencyMS,
	)
}

// LogMCPError logs MCP request errors with context
func LogMCPError(ctx context.Context, logger *slog.Logger, method, tool, correlationID string, errorCode int, errorMsg string) {
	logger.ErrorContext(ctx, "mcp_error",
		"component", "mcp",
		"method", method,
		"tool_name", tool,
		"correlation_id", correlationID,
		"error_code", errorCode,
		"error_message", errorMsg,
	)
}
