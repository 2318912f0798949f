// Package openapiadapter lets a service publish its configuration schema as
// a named component inside an OpenAPI document instead of raw JSON Schema.
// The adapter converts the component (and every schema it can reference)
// into the configschema representation, so defaults extraction and form
// building behave identically for both sources.
package openapiadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-configform/pkg/configschema"
)

const componentRefPrefix = "#/components/schemas/"

// SchemaFromDocument loads an OpenAPI document and converts the named
// component schema. Component references are rewritten into a local $defs
// table so the configschema resolver can follow them.
func SchemaFromDocument(ctx context.Context, raw []byte, component string) (*configschema.Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapiadapter: document payload is empty")
	}
	if strings.TrimSpace(component) == "" {
		return nil, errors.New("openapiadapter: component name is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapiadapter: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapiadapter: document has no component schemas")
	}

	target, ok := spec.Components.Schemas[component]
	if !ok {
		return nil, fmt.Errorf("openapiadapter: component schema %q not found", component)
	}

	root, err := schemaRefToMap(target)
	if err != nil {
		return nil, err
	}

	defs := make(map[string]any, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		converted, err := schemaRefToMap(ref)
		if err != nil {
			return nil, err
		}
		defs[name] = rewriteRefs(converted)
	}

	rewritten, _ := rewriteRefs(root).(map[string]any)
	if rewritten == nil {
		return nil, errors.New("openapiadapter: component schema is not an object")
	}
	rewritten["$defs"] = defs

	return configschema.FromValue(rewritten)
}

func schemaRefToMap(ref *openapi3.SchemaRef) (map[string]any, error) {
	if ref == nil {
		return nil, errors.New("openapiadapter: schema reference is nil")
	}
	payload, err := ref.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapiadapter: encode schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("openapiadapter: decode schema: %w", err)
	}
	return out, nil
}

// rewriteRefs rewrites "#/components/schemas/X" references to "#/$defs/X"
// throughout a decoded schema value.
func rewriteRefs(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			if key == "$ref" {
				if ref, ok := item.(string); ok && strings.HasPrefix(ref, componentRefPrefix) {
					v[key] = "#/$defs/" + strings.TrimPrefix(ref, componentRefPrefix)
					continue
				}
			}
			v[key] = rewriteRefs(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = rewriteRefs(item)
		}
		return v
	default:
		return value
	}
}
