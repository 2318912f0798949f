package configdoc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document is a configuration document: an opaque mapping of configuration
// keys to JSON-shaped values. The zero value (nil) is a valid empty document.
type Document map[string]any

// Parse decodes a raw JSON payload into a Document.
func Parse(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("configdoc: payload is empty")
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("configdoc: parse document: %w", err)
	}
	return doc, nil
}

// Clone returns a deep copy of the document. Nested maps and slices are
// copied; no value in the result aliases a value in the receiver.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for key, value := range d {
		out[key] = cloneValue(value)
	}
	return out
}

// Merge deep-merges overlay into a copy of the document and returns the
// result. Nested maps merge recursively; any other overlay value replaces the
// base value wholesale. Neither operand is mutated.
func (d Document) Merge(overlay Document) Document {
	merged := d.Clone()
	if merged == nil {
		merged = make(Document, len(overlay))
	}
	for key, value := range overlay {
		baseChild, baseOK := merged[key].(map[string]any)
		overlayChild, overlayOK := value.(map[string]any)
		if baseOK && overlayOK {
			merged[key] = map[string]any(Document(baseChild).Merge(overlayChild))
			continue
		}
		merged[key] = cloneValue(value)
	}
	return merged
}

// ValueAt walks the path of nested keys and returns the value found there.
func (d Document) ValueAt(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var current any = map[string]any(d)
	for _, segment := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// WithValue returns a copy of the document with value written at the nested
// path, creating intermediate objects as needed. Every level along the path
// is freshly copied before being written into, so writes at sibling paths
// never alias each other's subtrees. The receiver is not mutated.
func (d Document) WithValue(path []string, value any) (Document, error) {
	if len(path) == 0 {
		return nil, errors.New("configdoc: write path is empty")
	}
	out := make(Document, len(d)+1)
	for key, existing := range d {
		out[key] = existing
	}
	writeAt(out, path, value)
	return out, nil
}

func writeAt(node map[string]any, path []string, value any) {
	key := path[0]
	if len(path) == 1 {
		node[key] = value
		return
	}
	child := make(map[string]any)
	if existing, ok := node[key].(map[string]any); ok {
		for k, v := range existing {
			child[k] = v
		}
	}
	node[key] = child
	writeAt(child, path[1:], value)
}

// CloneValue deep-copies a single JSON-shaped value.
func CloneValue(value any) any {
	return cloneValue(value)
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
