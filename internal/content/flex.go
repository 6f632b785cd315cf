package content

import (
	"encoding/json"
	"strings"
)

// FlexSlice normalizes the historical accepted input shapes for list fields
// into a single []any. Accepted shapes, in order:
//
//   - a JSON array
//   - a string holding a JSON array
//   - a comma-separated string
//   - a {"set": [...]} or {"value": [...]} wrapper object
//
// Returns ok=false when the value is absent or matches none of the shapes.
// Element-level validation is the caller's job.
func FlexSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, false
		}
		var parsed []any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed, true
		}
		var segments []any
		for _, seg := range strings.Split(trimmed, ",") {
			if seg = strings.TrimSpace(seg); seg != "" {
				segments = append(segments, seg)
			}
		}
		if len(segments) > 0 {
			return segments, true
		}
		return nil, false
	case map[string]any:
		if set, ok := v["set"].([]any); ok {
			return set, true
		}
		if val, ok := v["value"].([]any); ok {
			return val, true
		}
	}
	return nil, false
}

// FlexStrings is FlexSlice for fields whose elements must be strings, such as
// include_difficulties. A non-string element fails the whole field.
func FlexStrings(field string, value any) ([]string, bool, error) {
	raw, ok := FlexSlice(value)
	if !ok {
		return nil, false, nil
	}
	out := make([]string, 0, len(raw))
	for i, entry := range raw {
		s, ok := entry.(string)
		if !ok {
			return nil, true, validationf(field, "entry %d must be a string", i+1)
		}
		out = append(out, s)
	}
	return out, true, nil
}
