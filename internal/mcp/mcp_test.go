package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetools/internal/tool"
)

func newTestDispatcher(t *testing.T, opts ...DispatcherOption) *Dispatcher {
	t.Helper()

	reg := tool.NewRegistry()
	reg.MustRegister(
		tool.Tool{
			Definition: tool.Definition{
				Name:        "get_nse_quote",
				Description: "Quote",
				InputSchema: map[string]any{
					"type":       "object",
					"properties": map[string]any{"ticker": map[string]any{"type": "string"}},
					"required":   []any{"ticker"},
				},
			},
			Handler: tool.Wrap("NSE quote", tool.Hints{}, func(ctx context.Context, args tool.Args) (tool.Fields, error) {
				ticker, err := args.Ticker("ticker")
				if err != nil {
					return nil, err
				}
				if ticker == "FAIL" {
					return nil, errors.New("connection reset")
				}
				return tool.Fields{"ticker": ticker, "last_price": 1500.5}, nil
			}),
		},
		tool.Tool{
			Definition: tool.Definition{Name: "slow", Description: "Blocks until cancelled"},
			Handler: func(ctx context.Context, args tool.Args) tool.Result {
				<-ctx.Done()
				return tool.Err(tool.Failure{Error: ctx.Err().Error()})
			},
		},
	)
	return NewDispatcher(reg, ServerInfo{Name: "financetools", Version: "test"}, opts...)
}

func request(t *testing.T, method string, params any) *JSONRPCRequest {
	t.Helper()

	req := &JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		req.Params = raw
	}
	return req
}

func TestDecodeRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "valid", body: `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`},
		{name: "not json", body: `{`, wantCode: ParseError},
		{name: "wrong version", body: `{"jsonrpc":"1.0","id":1,"method":"ping"}`, wantCode: InvalidRequest},
		{name: "missing method", body: `{"jsonrpc":"2.0","id":1}`, wantCode: InvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeRequest(strings.NewReader(tt.body))
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "tools/list", req.Method)
				return
			}
			var rpcErr *RPCError
			require.ErrorAs(t, err, &rpcErr)
			assert.Equal(t, tt.wantCode, rpcErr.Code)
		})
	}
}

func TestDecodeCallParams(t *testing.T) {
	t.Parallel()

	_, err := decodeCallParams(nil)
	require.Error(t, err)

	_, err = decodeCallParams(json.RawMessage(`{"arguments":{}}`))
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, InvalidParams, rpcErr.Code)

	p, err := decodeCallParams(json.RawMessage(`{"name":"get_nse_quote","arguments":{"ticker":"INFY"}}`))
	require.NoError(t, err)
	assert.Equal(t, "get_nse_quote", p.Name)
	assert.Equal(t, "INFY", p.Arguments["ticker"])
}

func TestDispatcher_Initialize(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t)
	resp := d.Handle(context.Background(), request(t, "initialize", map[string]any{}), "cid")
	require.Nil(t, resp.Error)

	initResult, ok := resp.Result.(InitializeResult)
	require.True(t, ok)
	assert.Equal(t, ProtocolVersion, initResult.ProtocolVersion)
	assert.Equal(t, "financetools", initResult.ServerInfo.Name)
	assert.Contains(t, initResult.Capabilities, "tools")
}

func TestDispatcher_ListTools(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t)
	for _, method := range []string{"tools/list", "list_tools"} {
		resp := d.Handle(context.Background(), request(t, method, nil), "cid")
		require.Nil(t, resp.Error, method)

		list, ok := resp.Result.(ListToolsResult)
		require.True(t, ok)
		require.Len(t, list.Tools, 2)
		assert.Equal(t, "get_nse_quote", list.Tools[0].Name)
		assert.Equal(t, "object", list.Tools[0].InputSchema["type"])
	}
}

func TestDispatcher_CallTool(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t)
	resp := d.Handle(context.Background(), request(t, "tools/call", CallToolParams{
		Name:      "get_nse_quote",
		Arguments: map[string]any{"ticker": "infy"},
	}), "cid")
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(CallToolResult)
	require.True(t, ok)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.False(t, result.IsError)
	assert.JSONEq(t, `{"ticker":"INFY","last_price":1500.5}`, result.Content[0].Text)
}

func TestDispatcher_ToolFailureIsInBand(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t)
	resp := d.Handle(context.Background(), request(t, "call_tool", CallToolParams{
		Name:      "get_nse_quote",
		Arguments: map[string]any{"ticker": "FAIL"},
	}), "cid")
	require.Nil(t, resp.Error)

	result := resp.Result.(CallToolResult)
	assert.True(t, result.IsError)
	assert.JSONEq(t, `{"error":"NSE quote failed: connection reset"}`, result.Content[0].Text)
}

func TestDispatcher_Errors(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t)

	tests := []struct {
		name     string
		req      *JSONRPCRequest
		wantCode int
	}{
		{name: "unknown method", req: request(t, "resources/list", nil), wantCode: MethodNotFound},
		{name: "missing params", req: request(t, "tools/call", nil), wantCode: InvalidParams},
		{name: "unknown tool", req: request(t, "tools/call", CallToolParams{Name: "nope"}), wantCode: ToolNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Handle(context.Background(), tt.req, "cid")
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Nil(t, resp.Result)
		})
	}
}

func TestDispatcher_TimeoutIsErrorResult(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, WithTimeout(20*time.Millisecond))
	resp := d.Handle(context.Background(), request(t, "tools/call", CallToolParams{Name: "slow"}), "cid")
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(CallToolResult)
	require.True(t, ok)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)

	var failure map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &failure))
	assert.Contains(t, failure["error"], "slow timed out after")
}

func TestDispatcher_InvokeReportsDeadline(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, WithTimeout(20*time.Millisecond))
	_, err := d.Invoke(context.Background(), "slow", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatusFromError(FormatMCPError(err)))
}

func TestDispatcher_NotificationHasNoResponse(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t)
	req := &JSONRPCRequest{JSONRPC: "2.0", Method: "notifications/initialized"}
	assert.Nil(t, d.Handle(context.Background(), req, "cid"))
}

func TestSSEWriter_SendResult(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := NewSSEWriter(rec)
	require.NoError(t, w.SendResult(7, map[string]any{"ok": true}))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.True(t, rec.Flushed)

	line, err := bufio.NewReader(rec.Body).ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, "data: "))

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &resp))
	assert.Equal(t, "2.0", resp["jsonrpc"])
	assert.Equal(t, float64(7), resp["id"])
	assert.Equal(t, map[string]any{"ok": true}, resp["result"])
}

func TestFormatMCPError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TimeoutExceeded, FormatMCPError(context.DeadlineExceeded).Code)
	assert.Equal(t, InternalError, FormatMCPError(errors.New("boom")).Code)

	orig := &RPCError{Code: InvalidParams, Message: "bad"}
	assert.Same(t, orig, FormatMCPError(orig))

	assert.Equal(t, http.StatusOK, HTTPStatusFromError(nil))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(&RPCError{Code: ParseError}))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(&RPCError{Code: ToolNotFound}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(&RPCError{Code: InternalError}))
}

func TestDecodeArguments(t *testing.T) {
	t.Parallel()

	args, err := DecodeArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = DecodeArguments([]byte(`{"ticker":"TCS"}`))
	require.NoError(t, err)
	assert.Equal(t, "TCS", args["ticker"])

	_, err = DecodeArguments([]byte(`[1,2]`))
	require.Error(t, err)
}
