package formmodel

import (
	"errors"
	"strings"

	"github.com/goliatone/go-configform/pkg/configschema"
	"github.com/goliatone/go-configform/pkg/uischema"
)

// Option customises the builder.
type Option func(*Builder)

// WithLabeler overrides how field names become human-friendly labels.
func WithLabeler(labeler func(string) string) Option {
	return func(b *Builder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// Builder converts schemas into form models.
type Builder struct {
	labeler func(string) string
}

// NewBuilder constructs a Builder with the supplied options.
func NewBuilder(options ...Option) *Builder {
	b := &Builder{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Build flattens the schema into a Form, applying UI hints field by field.
// Reference problems are reported as the same non-fatal diagnostics the
// defaults extraction emits; the affected field is rendered as an opaque
// object with no children.
func (b *Builder) Build(schema *configschema.Schema, hints uischema.Hints) (Form, []configschema.Diagnostic, error) {
	if schema == nil {
		return Form{}, nil, errors.New("formmodel: schema is required")
	}

	walker := &formWalker{
		schema:  schema,
		hints:   hints,
		labeler: b.labeler,
		active:  make(map[string]struct{}),
	}

	var acquired []string
	root := walker.resolveNode(nil, schema.Root, &acquired)
	form := Form{
		Title:       root.Title,
		Description: root.Description,
		SubmitLabel: hints.Submit.Label,
		HideSubmit:  hints.Submit.Hide,
		Fields:      walker.childFields(nil, root),
	}
	walker.release(acquired)
	return form, walker.diagnostics, nil
}

type formWalker struct {
	schema      *configschema.Schema
	hints       uischema.Hints
	labeler     func(string) string
	diagnostics []configschema.Diagnostic
	active      map[string]struct{}
}

// resolveNode follows a node's $ref chain, layering each resolved definition
// under the referring node so refs behave like inlined definitions. Resolved
// refs stay in the active set until the caller releases them after the whole
// subtree is built, so a definition that references itself through its own
// properties terminates with a diagnostic instead of expanding forever.
func (w *formWalker) resolveNode(path []string, node configschema.Node, acquired *[]string) configschema.Node {
	for node.Ref != "" {
		ref := node.Ref
		node.Ref = ""

		if _, onChain := w.active[ref]; onChain {
			w.report(path, ref, "cyclic reference")
			break
		}
		resolved, ok := w.schema.Resolve(ref)
		if !ok {
			w.report(path, ref, "unresolved reference")
			break
		}

		w.active[ref] = struct{}{}
		*acquired = append(*acquired, ref)

		next := resolved.Ref
		node = overlayNode(resolved, node)
		node.Ref = next
	}
	return node
}

func (w *formWalker) release(acquired []string) {
	for _, ref := range acquired {
		delete(w.active, ref)
	}
}

func (w *formWalker) childFields(path []string, node configschema.Node) []Field {
	var fields []Field
	requiredSet := make(map[string]struct{}, len(node.Required))
	for _, name := range node.Required {
		requiredSet[name] = struct{}{}
	}

	for _, name := range node.PropertyNames() {
		childPath := append(append([]string(nil), path...), name)
		_, required := requiredSet[name]
		fields = append(fields, w.field(childPath, node.Properties[name], required))
	}
	return fields
}

func (w *formWalker) field(path []string, node configschema.Node, required bool) Field {
	var acquired []string
	node = w.resolveNode(path, node, &acquired)
	defer w.release(acquired)

	name := path[len(path)-1]
	field := Field{
		Name:        name,
		Path:        append([]string(nil), path...),
		Kind:        kindOf(node),
		Label:       w.labeler(name),
		Description: node.Description,
		Required:    required,
		Default:     node.Default,
		HasDefault:  node.HasDefault,
		Minimum:     node.Minimum,
		Maximum:     node.Maximum,
		MinLength:   node.MinLength,
		MaxLength:   node.MaxLength,
		Pattern:     node.Pattern,
	}
	if node.Title != "" {
		field.Label = node.Title
	}
	if len(node.Enum) > 0 {
		field.Enum = append([]any(nil), node.Enum...)
	}

	switch field.Kind {
	case FieldKindObject:
		field.Fields = w.childFields(path, node)
	case FieldKindArray:
		if node.Items != nil {
			itemPath := append(append([]string(nil), path...), "items")
			item := w.field(itemPath, *node.Items, false)
			field.Items = &item
		}
	}

	w.applyHints(&field)
	return field
}

func (w *formWalker) applyHints(field *Field) {
	hints, ok := w.hints.Field(strings.Join(field.Path, "."))
	if !ok {
		return
	}
	if hints.Widget != "" {
		field.Widget = hints.Widget
	}
	if hints.Label != "" {
		field.Label = hints.Label
	}
	if hints.Help != "" {
		field.Help = hints.Help
	}
	if hints.Placeholder != "" {
		field.Placeholder = hints.Placeholder
	}
	field.Hidden = field.Hidden || hints.Hidden
	field.ReadOnly = field.ReadOnly || hints.ReadOnly
}

func (w *formWalker) report(path []string, ref, message string) {
	w.diagnostics = append(w.diagnostics, configschema.Diagnostic{
		Path:    append([]string(nil), path...),
		Ref:     ref,
		Message: message,
	})
}

func kindOf(node configschema.Node) FieldKind {
	switch node.Type {
	case "integer":
		return FieldKindInteger
	case "number":
		return FieldKindNumber
	case "boolean":
		return FieldKindBoolean
	case "array":
		return FieldKindArray
	case "object":
		return FieldKindObject
	case "string":
		return FieldKindString
	default:
		if len(node.Properties) > 0 {
			return FieldKindObject
		}
		if node.Items != nil {
			return FieldKindArray
		}
		return FieldKindString
	}
}

// overlayNode layers the referring node's direct declarations over the
// resolved definition.
func overlayNode(base, over configschema.Node) configschema.Node {
	out := base
	out.Ref = ""
	if over.Type != "" {
		out.Type = over.Type
	}
	if over.Title != "" {
		out.Title = over.Title
	}
	if over.Description != "" {
		out.Description = over.Description
	}
	// Defaults keep the extraction precedence: a ref-supplied default wins
	// over one declared on the referring node.
	if over.HasDefault && !base.HasDefault {
		out.Default = over.Default
		out.HasDefault = true
	}
	if len(over.Enum) > 0 {
		out.Enum = over.Enum
	}
	if len(over.Properties) > 0 {
		// Same precedence for colliding property names: the referenced
		// definition's child wins.
		merged := make(map[string]configschema.Node, len(base.Properties)+len(over.Properties))
		for name, child := range over.Properties {
			merged[name] = child
		}
		for name, child := range base.Properties {
			merged[name] = child
		}
		out.Properties = merged
	}
	if over.Items != nil {
		out.Items = over.Items
	}
	if len(over.Required) > 0 {
		out.Required = over.Required
	}
	if over.Minimum != nil {
		out.Minimum = over.Minimum
	}
	if over.Maximum != nil {
		out.Maximum = over.Maximum
	}
	if over.MinLength != nil {
		out.MinLength = over.MinLength
	}
	if over.MaxLength != nil {
		out.MaxLength = over.MaxLength
	}
	if over.Pattern != "" {
		out.Pattern = over.Pattern
	}
	return out
}
