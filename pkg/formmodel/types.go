package formmodel

// FieldKind is the simplified enum for form-friendly field kinds.
type FieldKind string

const (
	FieldKindString  FieldKind = "string"
	FieldKindInteger FieldKind = "integer"
	FieldKindNumber  FieldKind = "number"
	FieldKindBoolean FieldKind = "boolean"
	FieldKindArray   FieldKind = "array"
	FieldKindObject  FieldKind = "object"
)

// Field models one editable input.
type Field struct {
	// Name is the last path segment; Path is the full location in the
	// configuration document.
	Name string
	Path []string

	Kind        FieldKind
	Label       string
	Description string
	Help        string
	Placeholder string
	Widget      string
	Required    bool
	Hidden      bool
	ReadOnly    bool

	Default    any
	HasDefault bool
	Enum       []any

	// Fields holds the children of an object field; Items describes the
	// element shape of an array field.
	Fields []Field
	Items  *Field

	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	Pattern   string
}

// Form is the flattened model an edit surface renders.
type Form struct {
	Title       string
	Description string
	SubmitLabel string
	HideSubmit  bool
	Fields      []Field
}
