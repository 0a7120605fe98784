package stdio

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetools/internal/tool"
)

func testRegistry(t *testing.T) *tool.Registry {
	t.Helper()

	reg := tool.NewRegistry()
	reg.MustRegister(tool.Tool{
		Definition: tool.Definition{
			Name:        "get_bse_quote",
			Description: "BSE quote",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{"scrip_code": map[string]any{"type": "integer"}},
				"required":   []any{"scrip_code"},
			},
		},
		Handler: tool.Wrap("BSE quote", tool.Hints{}, func(ctx context.Context, args tool.Args) (tool.Fields, error) {
			code, _ := args.Int("scrip_code", 0)
			if code == 1 {
				return nil, errors.New("scrip not found")
			}
			return tool.Fields{"scrip_code": code, "last_price": 2950.35}, nil
		}),
	})
	return reg
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = "get_bse_quote"
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func TestHandler_Success(t *testing.T) {
	reg := testRegistry(t)

	res, err := Handler(reg, "get_bse_quote")(context.Background(), callRequest(map[string]any{"scrip_code": 500325}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"scrip_code":500325,"last_price":2950.35}`, textOf(t, res))
}

func TestHandler_FailureIsErrorResult(t *testing.T) {
	reg := testRegistry(t)

	res, err := Handler(reg, "get_bse_quote")(context.Background(), callRequest(map[string]any{"scrip_code": 1}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.JSONEq(t, `{"error":"BSE quote failed: scrip not found"}`, textOf(t, res))
}

func TestHandler_SchemaRejection(t *testing.T) {
	reg := testRegistry(t)

	res, err := Handler(reg, "get_bse_quote")(context.Background(), callRequest(map[string]any{"scrip_code": "abc"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "invalid arguments for get_bse_quote")
}

func TestNewServer_RegistersTools(t *testing.T) {
	reg := testRegistry(t)

	s, err := NewServer("financetools", "test", reg)
	require.NoError(t, err)
	require.NotNil(t, s)
}
