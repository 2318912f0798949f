package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-configform/pkg/editor"
	"github.com/goliatone/go-configform/pkg/formmodel"
)

// EditForm walks the form model and prompts for each editable field, writing
// accepted values into the edit session. Hidden and read-only fields are
// skipped; object fields recurse; arrays beyond string lists are reported
// and left unchanged.
func EditForm(ctx context.Context, driver Driver, form formmodel.Form, session *editor.Editor) error {
	if driver == nil {
		return fmt.Errorf("prompt: driver is required")
	}
	if session == nil {
		return fmt.Errorf("prompt: session is required")
	}
	return editFields(ctx, driver, form.Fields, session)
}

func editFields(ctx context.Context, driver Driver, fields []formmodel.Field, session *editor.Editor) error {
	for _, field := range fields {
		if field.Hidden || field.ReadOnly {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := editField(ctx, driver, field, session); err != nil {
			return err
		}
	}
	return nil
}

func editField(ctx context.Context, driver Driver, field formmodel.Field, session *editor.Editor) error {
	switch field.Kind {
	case formmodel.FieldKindObject:
		return editFields(ctx, driver, field.Fields, session)
	case formmodel.FieldKindBoolean:
		return editBoolean(ctx, driver, field, session)
	case formmodel.FieldKindArray:
		return editArray(ctx, driver, field, session)
	default:
		if len(field.Enum) > 0 {
			return editEnum(ctx, driver, field, session)
		}
		return editScalar(ctx, driver, field, session)
	}
}

func editBoolean(ctx context.Context, driver Driver, field formmodel.Field, session *editor.Editor) error {
	current, _ := session.FormState().ValueAt(field.Path...)
	defaultValue, _ := current.(bool)

	value, err := driver.Confirm(ctx, ConfirmConfig{
		Message: field.Label,
		Default: defaultValue,
		Help:    helpText(field),
	})
	if err != nil {
		return err
	}
	return session.SetValue(field.Path, value)
}

func editEnum(ctx context.Context, driver Driver, field formmodel.Field, session *editor.Editor) error {
	options := make([]string, len(field.Enum))
	for i, option := range field.Enum {
		options[i] = fmt.Sprintf("%v", option)
	}

	current, _ := session.FormState().ValueAt(field.Path...)
	defaultIndex := 0
	for i, option := range field.Enum {
		if option == current {
			defaultIndex = i
			break
		}
	}

	index, err := driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         helpText(field),
	})
	if err != nil {
		return err
	}
	return session.SetValue(field.Path, field.Enum[index])
}

func editArray(ctx context.Context, driver Driver, field formmodel.Field, session *editor.Editor) error {
	if field.Items == nil || field.Items.Kind != formmodel.FieldKindString {
		return driver.Info(ctx, fmt.Sprintf("skipping %s: only string lists are editable here", field.Label))
	}

	current, _ := session.FormState().ValueAt(field.Path...)
	var existing []string
	if items, ok := current.([]any); ok {
		for _, item := range items {
			existing = append(existing, fmt.Sprintf("%v", item))
		}
	}

	raw, err := driver.Input(ctx, InputConfig{
		Message: field.Label + " (comma-separated)",
		Default: strings.Join(existing, ", "),
		Help:    helpText(field),
	})
	if err != nil {
		return err
	}

	var values []any
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return session.SetValue(field.Path, values)
}

func editScalar(ctx context.Context, driver Driver, field formmodel.Field, session *editor.Editor) error {
	current, _ := session.FormState().ValueAt(field.Path...)
	defaultText := ""
	if current != nil {
		defaultText = fmt.Sprintf("%v", current)
	}

	raw, err := driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: defaultText,
		Help:    helpText(field),
	})
	if err != nil {
		return err
	}

	value, err := convertScalar(field, raw)
	if err != nil {
		return err
	}
	return session.SetValue(field.Path, value)
}

// convertScalar parses prompt text into the JSON-shaped value the document
// stores. Numbers become float64 to match encoding/json decoding, so a
// round-trip through the service compares clean.
func convertScalar(field formmodel.Field, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	switch field.Kind {
	case formmodel.FieldKindInteger:
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("prompt: %s expects an integer: %w", field.Name, err)
		}
		return float64(parsed), nil
	case formmodel.FieldKindNumber:
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("prompt: %s expects a number: %w", field.Name, err)
		}
		return parsed, nil
	default:
		return raw, nil
	}
}

func helpText(field formmodel.Field) string {
	if field.Help != "" {
		return field.Help
	}
	return field.Description
}
