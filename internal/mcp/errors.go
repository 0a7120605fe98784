package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// FormatMCPError formats various error types into MCP-compatible JSON-RPC errors
func FormatMCPError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &RPCError{
			Code:    TimeoutExceeded,
			Message: "Request timeout",
		}
	}

	return &RPCError{
		Code:    InternalError,
		Message: fmt.Sprintf("Internal error: %s", err.Error()),
	}
}

// HTTPStatusFromError maps MCP error codes to HTTP status codes
func HTTPStatusFromError(rpcErr *RPCError) int {
	if rpcErr == nil {
		return http.StatusOK
	}

	switch rpcErr.Code {
	case ParseError, InvalidRequest, InvalidParams:
		return http.StatusBadRequest
	case MethodNotFound, ToolNotFound:
		return http.StatusNotFound
	case TimeoutExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
