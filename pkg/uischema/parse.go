package uischema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a UI schema document from JSON or YAML. Label, help, and
// placeholder strings are sanitized so hint documents cannot smuggle markup
// into whatever surface renders them.
func Parse(raw []byte) (Hints, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Hints{}, errors.New("uischema: document is empty")
	}

	var hints Hints
	if err := json.Unmarshal(raw, &hints); err != nil {
		if yamlErr := yaml.Unmarshal(raw, &hints); yamlErr != nil {
			return Hints{}, fmt.Errorf("uischema: parse document: invalid JSON or YAML")
		}
	}

	return sanitizeHints(hints), nil
}

// FromValue builds Hints from an already-decoded JSON value, as delivered
// inside a service envelope. Unknown keys are ignored.
func FromValue(value map[string]any) (Hints, error) {
	if value == nil {
		return Hints{}, nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return Hints{}, fmt.Errorf("uischema: encode hint value: %w", err)
	}
	var hints Hints
	if err := json.Unmarshal(payload, &hints); err != nil {
		return Hints{}, fmt.Errorf("uischema: decode hint value: %w", err)
	}
	return sanitizeHints(hints), nil
}

func sanitizeHints(hints Hints) Hints {
	hints.Submit.Label = sanitizeText(hints.Submit.Label)
	for path, field := range hints.Fields {
		field.Label = sanitizeText(field.Label)
		field.Help = sanitizeText(field.Help)
		field.Placeholder = sanitizeText(field.Placeholder)
		hints.Fields[path] = field
	}
	return hints
}
