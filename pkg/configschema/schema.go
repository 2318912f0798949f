package configschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Node is a single schema node. The closed set of shapes a node can take
// (object with properties, array with items, primitive with a default, or a
// reference into the $defs table) is dispatched by the traversal functions
// in this package rather than by open-ended type switches at call sites.
type Node struct {
	Ref         string
	Type        string
	Title       string
	Description string
	Default     any
	HasDefault  bool
	Enum        []any
	Properties  map[string]Node
	Items       *Node
	Required    []string

	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	Pattern   string
}

// PropertyNames returns the node's property keys in sorted order so
// traversals are deterministic.
func (n Node) PropertyNames() []string {
	if len(n.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema is a parsed schema document: the root node plus the raw payload the
// root was built from, kept for $ref pointer resolution.
type Schema struct {
	Root Node

	raw map[string]any
}

// Parse decodes a raw JSON Schema payload.
func Parse(raw []byte) (*Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("configschema: payload is empty")
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("configschema: parse schema: %w", err)
	}
	return &Schema{Root: buildNode(payload), raw: payload}, nil
}

// FromValue builds a Schema from an already-decoded JSON value, as delivered
// inside a service envelope.
func FromValue(value map[string]any) (*Schema, error) {
	if value == nil {
		return nil, errors.New("configschema: schema value is nil")
	}
	return &Schema{Root: buildNode(value), raw: value}, nil
}

// Resolve looks up a local reference ("#/$defs/Name" or any other local JSON
// Pointer) against the schema root. The second result reports whether the
// pointer resolved to a schema object.
func (s *Schema) Resolve(ref string) (Node, bool) {
	target, ok := s.resolveRaw(ref)
	if !ok {
		return Node{}, false
	}
	return buildNode(target), true
}

func (s *Schema) resolveRaw(ref string) (map[string]any, bool) {
	if s == nil || s.raw == nil {
		return nil, false
	}
	pointer, ok := strings.CutPrefix(ref, "#")
	if !ok {
		// Only local references are supported; remote documents are the
		// service's responsibility to inline.
		return nil, false
	}
	if pointer == "" {
		return s.raw, true
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, false
	}

	var current any = s.raw
	for _, segment := range strings.Split(pointer[1:], "/") {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	target, ok := current.(map[string]any)
	return target, ok
}

func buildNode(payload map[string]any) Node {
	node := Node{
		Ref:         stringField(payload, "$ref"),
		Type:        stringField(payload, "type"),
		Title:       stringField(payload, "title"),
		Description: stringField(payload, "description"),
		Pattern:     stringField(payload, "pattern"),
	}

	if value, ok := payload["default"]; ok {
		node.Default = value
		node.HasDefault = true
	}

	if values, ok := payload["enum"].([]any); ok && len(values) > 0 {
		node.Enum = append([]any(nil), values...)
	}

	if props, ok := payload["properties"].(map[string]any); ok && len(props) > 0 {
		node.Properties = make(map[string]Node, len(props))
		for name, raw := range props {
			child, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			node.Properties[name] = buildNode(child)
		}
	}

	if items, ok := payload["items"].(map[string]any); ok {
		child := buildNode(items)
		node.Items = &child
	}

	if required, ok := payload["required"].([]any); ok {
		for _, item := range required {
			if name, ok := item.(string); ok {
				node.Required = append(node.Required, name)
			}
		}
	}

	node.Minimum = floatField(payload, "minimum")
	node.Maximum = floatField(payload, "maximum")
	node.MinLength = intField(payload, "minLength")
	node.MaxLength = intField(payload, "maxLength")

	return node
}

func stringField(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

func floatField(payload map[string]any, key string) *float64 {
	value, ok := payload[key].(float64)
	if !ok {
		return nil
	}
	return &value
}

func intField(payload map[string]any, key string) *int {
	value, ok := payload[key].(float64)
	if !ok {
		return nil
	}
	truncated := int(value)
	return &truncated
}
