package uischema

import "strings"

// Hints is a parsed UI schema document.
type Hints struct {
	Submit SubmitOptions         `json:"submit" yaml:"submit"`
	Fields map[string]FieldHints `json:"fields" yaml:"fields"`
}

// SubmitOptions controls the submit affordance rendered with the form.
type SubmitOptions struct {
	Hide  bool   `json:"hide,omitempty" yaml:"hide,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// FieldHints customises how a single field is presented. Fields are keyed by
// their dotted document path ("model.provider").
type FieldHints struct {
	Widget      string `json:"widget,omitempty" yaml:"widget,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Help        string `json:"help,omitempty" yaml:"help,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Hidden      bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// Field returns the hints registered for the dotted path.
func (h Hints) Field(path string) (FieldHints, bool) {
	if len(h.Fields) == 0 {
		return FieldHints{}, false
	}
	hints, ok := h.Fields[strings.TrimSpace(path)]
	return hints, ok
}

// Merge layers overrides on top of the receiver and returns the result.
// Override values win attribute by attribute; boolean hints are combined with
// OR so an override can hide a field but not force one visible again (the
// service's decision to hide stands). Neither operand is mutated.
func (h Hints) Merge(overrides Hints) Hints {
	merged := Hints{
		Submit: h.Submit,
		Fields: make(map[string]FieldHints, len(h.Fields)+len(overrides.Fields)),
	}
	for path, hints := range h.Fields {
		merged.Fields[path] = hints
	}

	if overrides.Submit.Label != "" {
		merged.Submit.Label = overrides.Submit.Label
	}
	merged.Submit.Hide = merged.Submit.Hide || overrides.Submit.Hide

	for path, override := range overrides.Fields {
		base := merged.Fields[path]
		if override.Widget != "" {
			base.Widget = override.Widget
		}
		if override.Label != "" {
			base.Label = override.Label
		}
		if override.Help != "" {
			base.Help = override.Help
		}
		if override.Placeholder != "" {
			base.Placeholder = override.Placeholder
		}
		base.Hidden = base.Hidden || override.Hidden
		base.ReadOnly = base.ReadOnly || override.ReadOnly
		merged.Fields[path] = base
	}

	if len(merged.Fields) == 0 {
		merged.Fields = nil
	}
	return merged
}
