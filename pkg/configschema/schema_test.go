package configschema

import "testing"

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if _, err := Parse([]byte("not a schema")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParse_NodeShape(t *testing.T) {
	schema := mustParse(t, `{
		"type": "object",
		"title": "Assistant Configuration",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 64},
			"temperature": {"type": "number", "minimum": 0, "maximum": 2, "default": 0.7},
			"mode": {"type": "string", "enum": ["draft", "final"]},
			"rules": {"type": "array", "items": {"type": "string"}}
		}
	}`)

	root := schema.Root
	if root.Type != "object" || root.Title != "Assistant Configuration" {
		t.Fatalf("unexpected root node: %+v", root)
	}
	if len(root.Required) != 1 || root.Required[0] != "name" {
		t.Fatalf("unexpected required list: %v", root.Required)
	}

	name := root.Properties["name"]
	if name.MinLength == nil || *name.MinLength != 1 || name.MaxLength == nil || *name.MaxLength != 64 {
		t.Fatalf("unexpected length bounds: %+v", name)
	}

	temperature := root.Properties["temperature"]
	if !temperature.HasDefault || temperature.Default != 0.7 {
		t.Fatalf("expected default 0.7, got %+v", temperature)
	}
	if temperature.Minimum == nil || *temperature.Minimum != 0 || temperature.Maximum == nil || *temperature.Maximum != 2 {
		t.Fatalf("unexpected numeric bounds: %+v", temperature)
	}

	mode := root.Properties["mode"]
	if len(mode.Enum) != 2 {
		t.Fatalf("unexpected enum: %v", mode.Enum)
	}

	rules := root.Properties["rules"]
	if rules.Items == nil || rules.Items.Type != "string" {
		t.Fatalf("unexpected items: %+v", rules.Items)
	}
}

func TestResolve(t *testing.T) {
	schema := mustParse(t, `{
		"$defs": {
			"Model": {"type": "object", "properties": {"provider": {"type": "string"}}},
			"odd~name/with-slash": {"type": "string"}
		}
	}`)

	node, ok := schema.Resolve("#/$defs/Model")
	if !ok || node.Type != "object" {
		t.Fatalf("expected Model definition, got %+v (ok=%v)", node, ok)
	}

	if _, ok := schema.Resolve("#/$defs/Missing"); ok {
		t.Fatal("expected miss for absent definition")
	}
	if _, ok := schema.Resolve("https://example.com/schema.json#/$defs/Model"); ok {
		t.Fatal("expected miss for non-local reference")
	}

	// JSON Pointer escapes: ~0 is "~", ~1 is "/".
	if _, ok := schema.Resolve("#/$defs/odd~0name~1with-slash"); !ok {
		t.Fatal("expected escaped pointer to resolve")
	}
}

func TestPropertyNames_Sorted(t *testing.T) {
	schema := mustParse(t, `{"properties": {"b": {}, "a": {}, "c": {}}}`)
	names := schema.Root.PropertyNames()
	want := []string{"a", "b", "c"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("unexpected order: %v", names)
		}
	}
}
