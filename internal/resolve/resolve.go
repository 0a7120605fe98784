// Package resolve extracts fields from loosely-shaped provider responses.
//
// Providers rename fields between API versions and populate alternate fields
// inconsistently. Callers list the candidate names for one semantic field in
// order of preference and take the first one that carries a value. Absence is
// a normal outcome and is reported as nil, never as an error.
package resolve

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value returns the value of the first candidate key that is present and not
// empty. Zero numbers and false are values; nil, blank strings, empty maps and
// empty slices are not.
func Value(m map[string]any, keys ...string) (any, bool) {
	if m == nil {
		return nil, false
	}
	for _, k := range keys {
		v, ok := m[k]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

// Path walks nested maps and returns the map found at the end, or nil.
func Path(m map[string]any, keys ...string) map[string]any {
	cur := m
	for _, k := range keys {
		if cur == nil {
			return nil
		}
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// List returns the first candidate that holds a JSON array.
func List(m map[string]any, keys ...string) ([]any, bool) {
	if m == nil {
		return nil, false
	}
	for _, k := range keys {
		if l, ok := m[k].([]any); ok {
			return l, true
		}
	}
	return nil, false
}

// Maps filters a JSON array down to its object elements.
func Maps(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Merge flattens several maps into one. Keys from earlier maps win.
func Merge(ms ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range ms {
		for k, v := range m {
			if cur, ok := out[k]; ok && !isEmpty(cur) {
				continue
			}
			out[k] = v
		}
	}
	return out
}

// Float resolves the candidates and coerces the value to a float.
// It returns nil when nothing resolves or the value is not numeric.
func Float(m map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		v, ok := Value(m, k)
		if !ok {
			continue
		}
		if f, ok := ToFloat(v); ok {
			return &f
		}
	}
	return nil
}

// Int is Float truncated to an integer.
func Int(m map[string]any, keys ...string) *int64 {
	f := Float(m, keys...)
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

// String resolves the candidates and renders the value as a string.
func String(m map[string]any, keys ...string) *string {
	v, ok := Value(m, keys...)
	if !ok {
		return nil
	}
	s, ok := ToString(v)
	if !ok {
		return nil
	}
	return &s
}

// StringOr is String with a default for unresolved fields.
func StringOr(m map[string]any, def string, keys ...string) string {
	if s := String(m, keys...); s != nil {
		return *s
	}
	return def
}

// ToFloat coerces a decoded JSON value to a finite float64.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		s = strings.TrimSuffix(s, "%")
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	case map[string]any:
		// Yahoo wraps numbers as {"raw": 1.23, "fmt": "1.23"}.
		raw, ok := t["raw"]
		if !ok {
			return 0, false
		}
		return ToFloat(raw)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToString renders scalars as strings; Yahoo wrappers yield their "fmt" text.
func ToString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any:
		if s, ok := t["fmt"].(string); ok && s != "" {
			return s, true
		}
		if raw, ok := t["raw"]; ok {
			return ToString(raw)
		}
	}
	return "", false
}

// Optional returns nil for a nil pointer and the pointed-to value otherwise,
// so unresolved fields encode as JSON null inside untyped result maps.
func Optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
