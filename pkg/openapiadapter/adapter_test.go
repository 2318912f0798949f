package openapiadapter

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-configform/pkg/configdoc"
)

const openapiDoc = `{
	"openapi": "3.0.0",
	"info": {"title": "assistant service", "version": "1.0.0"},
	"paths": {},
	"components": {
		"schemas": {
			"AssistantConfig": {
				"type": "object",
				"properties": {
					"name": {"type": "string", "default": "assistant"},
					"llm": {"$ref": "#/components/schemas/LLMConfig"}
				}
			},
			"LLMConfig": {
				"type": "object",
				"properties": {
					"provider": {"type": "string", "default": "openai"},
					"temperature": {"type": "number", "default": 0.7}
				}
			}
		}
	}
}`

func TestSchemaFromDocument(t *testing.T) {
	schema, err := SchemaFromDocument(context.Background(), []byte(openapiDoc), "AssistantConfig")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	defaults, diagnostics := schema.Defaults()
	if len(diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diagnostics)
	}

	want := configdoc.Document{
		"name": "assistant",
		"llm": map[string]any{
			"provider":    "openai",
			"temperature": 0.7,
		},
	}
	if diff := cmp.Diff(want, defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFromDocument_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := SchemaFromDocument(ctx, nil, "AssistantConfig"); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if _, err := SchemaFromDocument(ctx, []byte(openapiDoc), ""); err == nil {
		t.Fatal("expected error for empty component name")
	}
	if _, err := SchemaFromDocument(ctx, []byte(openapiDoc), "Missing"); err == nil {
		t.Fatal("expected error for unknown component")
	}
	if _, err := SchemaFromDocument(ctx, []byte(`{"openapi": "3.0.0", "info": {"title": "t", "version": "1"}, "paths": {}}`), "X"); err == nil {
		t.Fatal("expected error for document without components")
	}
}
