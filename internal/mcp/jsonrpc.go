package mcp

import (
	"encoding/json"
	"io"
	"strings"
)

// DecodeRequest reads one JSON-RPC 2.0 request. Failures are *RPCError values.
func DecodeRequest(r io.Reader) (*JSONRPCRequest, error) {
	var req JSONRPCRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, rpcError(ParseError, "Invalid JSON", err.Error())
	}
	switch {
	case req.JSONRPC != "2.0":
		return nil, rpcError(InvalidRequest, `jsonrpc must be "2.0"`, req.JSONRPC)
	case req.Method == "":
		return nil, rpcError(InvalidRequest, "method is required", nil)
	}
	return &req, nil
}

func decodeCallParams(raw json.RawMessage) (*CallToolParams, error) {
	if len(raw) == 0 {
		return nil, rpcError(InvalidParams, "params are required for tools/call", nil)
	}
	var p CallToolParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, rpcError(InvalidParams, "params must be an object with name and arguments", err.Error())
	}
	if p.Name == "" {
		return nil, rpcError(InvalidParams, "params.name is required", nil)
	}
	return &p, nil
}

// DecodeArguments parses a raw JSON object into tool arguments. An empty body is no arguments.
func DecodeArguments(raw []byte) (map[string]any, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, rpcError(InvalidParams, "Arguments must be a JSON object", err.Error())
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func rpcError(code int, message string, data any) *RPCError {
	return &RPCError{Code: code, Message: message, Data: data}
}

func resultResponse(id, result any) *JSONRPCResponse {
	return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id any, e *RPCError) *JSONRPCResponse {
	return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: e}
}
