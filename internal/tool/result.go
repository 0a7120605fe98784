// Package tool defines the callable tool surface: the result union every tool
// returns, the error envelope that produces it, and the registry hosts dispatch through.
package tool

import "encoding/json"

// Fields is a Normalized Result: fixed keys per tool, nil for unresolved values.
type Fields map[string]any

// Failure is an Error Result.
type Failure struct {
	Error         string `json:"error"`
	Resolution    string `json:"resolution,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

// Hints are static per-tool remediation texts attached to failures.
type Hints struct {
	Resolution    string
	Documentation string
}

// Result is the outcome of one invocation: exactly one of fields, text or failure.
type Result struct {
	fields  Fields
	text    *string
	failure *Failure
}

// Ok wraps a Normalized Result.
func Ok(f Fields) Result {
	if f == nil {
		f = Fields{}
	}
	return Result{fields: f}
}

// Text wraps a plain string result (used by the note log tools).
func Text(s string) Result {
	return Result{text: &s}
}

// Err wraps an Error Result.
func Err(f Failure) Result {
	return Result{failure: &f}
}

// IsError reports whether r carries a Failure.
func (r Result) IsError() bool {
	return r.failure != nil
}

// Fields returns the normalized fields, or nil for text and error results.
func (r Result) Fields() Fields {
	return r.fields
}

// Failure returns the error result, or nil on success.
func (r Result) Failure() *Failure {
	return r.failure
}

// TextValue returns the text payload and whether r is a text result.
func (r Result) TextValue() (string, bool) {
	if r.text == nil {
		return "", false
	}
	return *r.text, true
}

// Value returns whichever variant is set, ready for encoding.
func (r Result) Value() any {
	switch {
	case r.failure != nil:
		return r.failure
	case r.text != nil:
		return *r.text
	default:
		return r.fields
	}
}

// MarshalJSON encodes only the active variant.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// String renders the result the way hosts pass it to agents: text results
// verbatim, everything else as JSON.
func (r Result) String() string {
	if s, ok := r.TextValue(); ok {
		return s
	}
	b, err := json.Marshal(r.Value())
	if err != nil {
		// Fields hold only decoded JSON values and primitives; this is unreachable
		// unless an adapter stores something exotic.
		return `{"error":"result could not be encoded"}`
	}
	return string(b)
}
