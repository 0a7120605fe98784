package tool

// Schema helpers keep tool definitions short. The maps are plain JSON Schema
// (draft 7) so they can be served to hosts as-is.

// Object builds an object schema from properties and required names.
func Object(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// StringProp describes a string argument.
func StringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// StringPropDefault describes an optional string argument with a default.
func StringPropDefault(description, def string) map[string]any {
	return map[string]any{"type": "string", "description": description, "default": def}
}

// IntegerProp describes an integer argument with an optional default.
func IntegerProp(description string, def ...int) map[string]any {
	s := map[string]any{"type": "integer", "description": description}
	if len(def) > 0 {
		s["default"] = def[0]
	}
	return s
}

// CodeProp describes a numeric identifier that hosts may send as a number or
// as a string of digits.
func CodeProp(description string) map[string]any {
	return map[string]any{
		"type":        []string{"integer", "string"},
		"pattern":     "^[0-9]+$",
		"description": description,
	}
}
