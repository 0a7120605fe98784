package tool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Func is an adapter body: it returns normalized fields or an error.
type Func func(ctx context.Context, args Args) (Fields, error)

// TextFunc is an adapter body whose success value is plain text.
type TextFunc func(ctx context.Context, args Args) (string, error)

// Handler runs one invocation and always produces a Result.
type Handler func(ctx context.Context, args Args) Result

// Wrap converts fn into a Handler that never fails: errors and panics become
// a Failure labelled with the tool's label and carrying its static hints.
func Wrap(label string, hints Hints, fn Func) Handler {
	return func(ctx context.Context, args Args) (res Result) {
		defer recoverInto(label, hints, &res)

		fields, err := fn(ctx, args)
		if err != nil {
			return failure(label, hints, err)
		}
		return Ok(fields)
	}
}

// WrapText is Wrap for text-returning tools.
func WrapText(label string, hints Hints, fn TextFunc) Handler {
	return func(ctx context.Context, args Args) (res Result) {
		defer recoverInto(label, hints, &res)

		s, err := fn(ctx, args)
		if err != nil {
			return failure(label, hints, err)
		}
		return Text(s)
	}
}

func failure(label string, hints Hints, err error) Result {
	return Err(Failure{
		Error:         fmt.Sprintf("%s failed: %v", label, err),
		Resolution:    hints.Resolution,
		Documentation: hints.Documentation,
	})
}

func recoverInto(label string, hints Hints, res *Result) {
	rec := recover()
	if rec == nil {
		return
	}
	slog.Error("tool panic recovered",
		"tool_label", label,
		"panic", fmt.Sprint(rec),
		"stack", string(debug.Stack()))
	*res = failure(label, hints, fmt.Errorf("internal error: %v", rec))
}
