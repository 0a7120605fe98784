package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Definition is the static description a host advertises for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Tool couples a definition with its handler.
type Tool struct {
	Definition
	Handler Handler
}

// Observer receives one callback per completed invocation.
type Observer interface {
	ObserveInvocation(tool string, res Result, elapsed time.Duration)
}

type entry struct {
	tool   Tool
	schema *jsonschema.Schema
}

// Registry holds the tools a host exposes and dispatches calls to them.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]entry
	order    []string
	observer Observer
	logger   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithObserver reports every invocation to o.
func WithObserver(o Observer) RegistryOption {
	return func(r *Registry) {
		r.observer = o
	}
}

// WithLogger sets the logger used for per-invocation records.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tools:  make(map[string]entry),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool, compiling its input schema. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return errors.New("cannot register tool with empty name")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %q has no handler", t.Name)
	}
	if t.InputSchema == nil {
		t.InputSchema = map[string]any{"type": "object", "properties": map[string]any{}}
	}

	schema, err := compileSchema(t.Name, t.InputSchema)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = entry{tool: t, schema: schema}
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister registers tools and panics on the first error. Tool sets are
// static, so a failure here is a programming error.
func (r *Registry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Definitions lists registered tools in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].tool.Definition)
	}
	return defs
}

// Has reports whether a tool is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Invoke validates args against the tool's schema and runs it. It always
// returns a Result; unknown tools and invalid arguments yield Error Results
// without reaching the handler.
func (r *Registry) Invoke(ctx context.Context, name string, args Args) Result {
	start := time.Now()

	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()

	var res Result
	switch {
	case !ok:
		res = Err(Failure{Error: fmt.Sprintf("unknown tool %q", name)})
	default:
		normalized, err := normalizeArgs(args)
		if err == nil {
			err = validate(e.schema, normalized)
		}
		if err != nil {
			res = Err(Failure{Error: fmt.Sprintf("invalid arguments for %s: %v", name, err)})
			break
		}
		res = e.tool.Handler(ctx, normalized)
	}

	elapsed := time.Since(start)
	if res.IsError() {
		r.logger.WarnContext(ctx, "tool_error",
			"tool_name", name,
			"error_message", res.Failure().Error,
			"latency_ms", elapsed.Milliseconds(),
		)
	} else {
		r.logger.InfoContext(ctx, "tool_success",
			"tool_name", name,
			"latency_ms", elapsed.Milliseconds(),
		)
	}
	if r.observer != nil && ok {
		r.observer.ObserveInvocation(name, res, elapsed)
	}
	return res
}

func compileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	schemaJSON, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema for %s: %w", name, err)
	}

	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource for %s: %w", name, err)
	}

	schema, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema for %s: %w", name, err)
	}
	return schema, nil
}

// normalizeArgs round-trips args through JSON so values have the shapes the
// schema validator and handlers expect regardless of which transport built them.
func normalizeArgs(args Args) (Args, error) {
	if len(args) == 0 {
		return Args{}, nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("arguments are not JSON-encodable: %w", err)
	}
	var out Args
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("arguments are not a JSON object: %w", err)
	}
	if out == nil {
		out = Args{}
	}
	return out, nil
}

func validate(schema *jsonschema.Schema, args Args) error {
	err := schema.Validate(map[string]any(args))
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		leaf := ve
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return fmt.Errorf("%s: %s", loc, leaf.Message)
	}
	return err
}
