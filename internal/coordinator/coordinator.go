// Package coordinator runs a watchlist of tool calls concurrently.
package coordinator

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"financetools/internal/config"
	"financetools/internal/tool"
)

// Invoker runs a named tool. *tool.Registry satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, name string, args tool.Args) tool.Result
}

// Outcome is the result of one watchlist entry.
type Outcome struct {
	Key    string
	Result tool.Result
}

// Summary counts outcomes of a run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Coordinator manages concurrent tool calls and aggregates results
type Coordinator struct {
	invoker Invoker
	items   []config.WatchItem
	out     io.Writer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithOutput redirects printed results. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Coordinator) {
		c.out = w
	}
}

// New creates a new Coordinator for the given watchlist
func New(invoker Invoker, items []config.WatchItem, opts ...Option) *Coordinator {
	c := &Coordinator{
		invoker: invoker,
		items:   items,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes every watchlist entry in its own goroutine and prints results
// as they arrive:
//   - Success: "KEY: {json}"
//   - Error: "KEY: ERROR - message"
func (c *Coordinator) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	if len(c.items) == 0 {
		return summary, fmt.Errorf("no watchlist entries configured")
	}

	results := make(chan Outcome, len(c.items))

	var wg sync.WaitGroup
	for _, item := range c.items {
		wg.Add(1)
		go func(it config.WatchItem) {
			defer wg.Done()
			results <- Outcome{
				Key:    Key(it),
				Result: c.invoker.Invoke(ctx, it.Tool, it.Args),
			}
		}(item)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for o := range results {
		if o.Result.IsError() {
			summary.Failed++
			fmt.Fprintf(c.out, "%s: ERROR - %s\n", o.Key, o.Result.Failure().Error)
			continue
		}
		summary.Succeeded++
		fmt.Fprintf(c.out, "%s: %s\n", o.Key, o.Result.String())
	}

	return summary, nil
}

// Key renders a watchlist entry as "tool key=value ...", with args sorted.
func Key(it config.WatchItem) string {
	if len(it.Args) == 0 {
		return it.Tool
	}
	keys := make([]string, 0, len(it.Args))
	for k := range it.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(it.Tool)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, it.Args[k])
	}
	return b.String()
}
