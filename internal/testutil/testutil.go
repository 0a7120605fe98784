// Package testutil holds fakes shared by package and integration tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"financetools/internal/tool"
)

// MockInvoker is a scripted tool invoker that records the calls it receives.
type MockInvoker struct {
	InvokeFunc func(ctx context.Context, name string, args tool.Args) tool.Result

	mu    sync.Mutex
	calls []string
}

// Invoke implements coordinator.Invoker.
func (m *MockInvoker) Invoke(ctx context.Context, name string, args tool.Args) tool.Result {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, name, args)
	}
	return tool.Ok(nil)
}

// Calls returns the tool names invoked so far, in arrival order.
func (m *MockInvoker) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// NewMockInvoker returns an invoker answering each tool name with a fixed result.
// Unlisted tools fail with "unknown tool".
func NewMockInvoker(results map[string]tool.Result) *MockInvoker {
	return &MockInvoker{
		InvokeFunc: func(ctx context.Context, name string, args tool.Args) tool.Result {
			if res, ok := results[name]; ok {
				return res
			}
			return tool.Err(tool.Failure{Error: "unknown tool " + name})
		},
	}
}

// JSONServer starts a server answering each path with a canned JSON body.
// Unknown paths get 404.
func JSONServer(t testing.TB, routes map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
