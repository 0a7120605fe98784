package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"financetools/internal/fetcher"
)

// Args are the scalar arguments of one invocation as decoded from JSON.
type Args map[string]any

// String returns the argument as a trimmed string, or def when absent or blank.
func (a Args) String(key, def string) string {
	switch v := a[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	}
	return def
}

// Ticker returns the named argument upper-cased, or a validation error when missing.
func (a Args) Ticker(key string) (string, error) {
	s := a.String(key, "")
	if s == "" {
		return "", fetcher.NewValidationError("", fmt.Sprintf("%s is required", key))
	}
	return strings.ToUpper(s), nil
}

// Int returns an integer-like argument. Whole floats and digit strings are
// accepted; anything else is a validation error.
func (a Args) Int(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return def, nil
	}
	n, err := IntegerLike(v)
	if err != nil {
		return 0, fetcher.NewValidationError("", fmt.Sprintf("%s %v", key, err))
	}
	return n, nil
}

// maxIntegerLike bounds integer-like arguments. Scrip codes and day counts
// both fit comfortably below it.
const maxIntegerLike = math.MaxInt32

// IntegerLike converts v to an int if it is a whole number or a string of
// digits in [0, math.MaxInt32].
func IntegerLike(v any) (int, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int64:
		n = t
	case float64:
		if t != math.Trunc(t) || t < 0 || t > maxIntegerLike {
			return 0, fmt.Errorf("must be integer-like, got %v", t)
		}
		n = int64(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, fmt.Errorf("must be integer-like, got %q", t.String())
		}
		n = i
	case string:
		s := strings.TrimSpace(t)
		if !IsDigits(s) {
			return 0, fmt.Errorf("must be integer-like, got %q", t)
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("must be integer-like, got %q", t)
		}
		n = i
	default:
		return 0, fmt.Errorf("must be integer-like, got %T", v)
	}

	if n < 0 || n > maxIntegerLike {
		return 0, fmt.Errorf("must be integer-like, got %v", v)
	}
	return int(n), nil
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
