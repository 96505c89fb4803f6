// Package handlers executes the assistant's tool calls against the store on
// behalf of one authenticated user. Every handler returns a human-readable
// result string; failures become error messages, never panics.
package handlers

import (
	"encoding/json"
	"strconv"
	"strings"
)

// handlerFunc is the uniform shape of every tool handler. The returned
// string is what the model sees as the function result.
type handlerFunc func(args map[string]any) (string, error)

// stringArg extracts a trimmed string argument, or def when absent.
func stringArg(args map[string]any, key, def string) string {
	value, ok := args[key]
	if !ok || value == nil {
		return def
	}
	s, ok := value.(string)
	if !ok {
		return def
	}
	return strings.TrimSpace(s)
}

// optionalStringArg reports whether the argument was present along with its
// trimmed value.
func optionalStringArg(args map[string]any, key string) (string, bool) {
	value, ok := args[key]
	if !ok || value == nil {
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// intArg extracts an integer argument. Model-produced arguments arrive as
// JSON numbers (float64) but occasionally as strings, so both are accepted.
func intArg(args map[string]any, key string, def int) int {
	value, ok := args[key]
	if !ok || value == nil {
		return def
	}
	switch v := value.(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// idArg extracts a positive identifier argument. The second return is false
// when the argument is missing or not a usable ID.
func idArg(args map[string]any, key string) (uint, bool) {
	n := intArg(args, key, -1)
	if n <= 0 {
		return 0, false
	}
	return uint(n), true
}
