// Package tools defines the Mealie operations exposed over MCP. Each tool
// wraps one or a few backend calls behind a JSON-schema-described interface;
// the registry filters them into the core and full profiles.
package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool is one callable operation. Run takes decoded JSON arguments and
// returns a JSON-ready map; transport concerns stay outside.
type Tool struct {
	Name        string
	Title       string
	Description string

	// Core marks tools that belong to the trimmed core profile. The full
	// profile carries every registered tool.
	Core bool

	// InputSchema is required. OutputSchema is set only where the shape is
	// this server's own; passthrough tools answer with whatever the backend
	// sent.
	InputSchema  *jsonschema.Schema
	OutputSchema *jsonschema.Schema

	Run func(ctx context.Context, input map[string]any) (map[string]any, error)
}

func (t *Tool) validate() error {
	switch {
	case t.Name == "":
		return fmt.Errorf("tool with empty name")
	case t.Description == "":
		return fmt.Errorf("tool %q has no description", t.Name)
	case t.InputSchema == nil:
		return fmt.Errorf("tool %q has no input schema", t.Name)
	case t.Run == nil:
		return fmt.Errorf("tool %q has no run function", t.Name)
	}
	return nil
}

// InputError marks a tool failure caused by the caller's arguments rather
// than the backend.
type InputError struct{ msg string }

func (e *InputError) Error() string { return e.msg }

func inputErr(format string, args ...any) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// Argument helpers. Inputs arrive as decoded JSON, so numbers are float64
// and lists are []any.

func strArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}

func requireStr(input map[string]any, key string) (string, error) {
	s := strArg(input, key)
	if s == "" {
		return "", inputErr("%s is required", key)
	}
	return s, nil
}

func intArg(input map[string]any, key string, def int) int {
	switch v := input[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func floatArg(input map[string]any, key string, def float64) float64 {
	switch v := input[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func boolArg(input map[string]any, key string, def bool) bool {
	if v, ok := input[key].(bool); ok {
		return v
	}
	return def
}

func hasArg(input map[string]any, key string) bool {
	_, ok := input[key]
	return ok
}

func strsArg(input map[string]any, key string) []string {
	switch v := input[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func mapArg(input map[string]any, key string) map[string]any {
	m, _ := input[key].(map[string]any)
	return m
}

func mapsArg(input map[string]any, key string) []map[string]any {
	switch v := input[key].(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// Result helpers. Object responses from the backend pass through untouched;
// these wrap everything else in a stable envelope.

func slugResult(slug string) map[string]any {
	return map[string]any{"slug": slug}
}

func deletedResult(key, id string) map[string]any {
	return map[string]any{"status": "deleted", key: id}
}

func listResult(key string, items []map[string]any) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}
	return map[string]any{key: items}
}

// Schema helpers.

func objSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}

func strSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func intSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc}
}

func numSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: desc}
}

func boolSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: desc}
}

func arrSchema(items *jsonschema.Schema, desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items, Description: desc}
}
