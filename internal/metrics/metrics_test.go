package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"financetools/internal/tool"
)

func TestMetrics_ObserveThroughRegistry(t *testing.T) {
	m := New()
	reg := tool.NewRegistry(tool.WithObserver(m))
	reg.MustRegister(
		tool.Tool{
			Definition: tool.Definition{Name: "ok_tool"},
			Handler: tool.Wrap("OK", tool.Hints{}, func(context.Context, tool.Args) (tool.Fields, error) {
				return tool.Fields{"a": 1}, nil
			}),
		},
		tool.Tool{
			Definition: tool.Definition{Name: "bad_tool"},
			Handler: tool.Wrap("Bad", tool.Hints{}, func(context.Context, tool.Args) (tool.Fields, error) {
				return nil, errors.New("boom")
			}),
		},
	)

	reg.Invoke(context.Background(), "ok_tool", nil)
	reg.Invoke(context.Background(), "ok_tool", nil)
	reg.Invoke(context.Background(), "bad_tool", nil)
	reg.Invoke(context.Background(), "missing_tool", nil)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Invocations.WithLabelValues("ok_tool", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("bad_tool", "error")))
	require.Equal(t, 2, testutil.CollectAndCount(m.Invocations), "unknown tools are not recorded")
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveInvocation("get_stock_info", tool.Ok(nil), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `financetools_tool_invocations_total{outcome="success",tool="get_stock_info"} 1`), body)
	require.Contains(t, body, "go_goroutines")
}
