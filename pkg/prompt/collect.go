package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/formspec"
	"github.com/goliatone/go-htfield/pkg/param"
	"github.com/goliatone/go-htfield/pkg/widgets"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrTooManyAttempts is returned when a field stays invalid after
	// MaxAttempts answers.
	ErrTooManyAttempts = errors.New("prompt: too many invalid answers")
)

// MaxAttempts bounds how often a single field is asked again after an
// invalid answer.
const MaxAttempts = 5

// Collect asks the driver for a value per widget of form, in order, and
// returns the answers as a nested context keyed by qualified names. Each
// answer is checked with the field's own filters before moving on; invalid
// answers are reported through Info and asked again. Hidden fields are
// skipped.
func Collect(ctx context.Context, driver Driver, form *formspec.Form) (param.Context, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}
	answers := make(param.Context)
	for _, widget := range form.Widgets() {
		if _, hidden := widget.(*widgets.Hidden); hidden {
			continue
		}
		if err := collectField(ctx, driver, widget, answers); err != nil {
			return nil, err
		}
	}
	return answers, nil
}

func collectField(ctx context.Context, driver Driver, widget field.Widget, answers param.Context) error {
	base := widget.Base()
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		answer, err := ask(ctx, driver, widget)
		if err != nil {
			return err
		}

		trial := cloneContext(answers)
		param.Assign(trial, base.Name(), answer)
		result := base.Param().ProcessWith(trial)
		if result.Valid() {
			param.Assign(answers, base.Name(), answer)
			return nil
		}
		if err := driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", base.Name(), result.Error)); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, base.Name())
}

func ask(ctx context.Context, driver Driver, widget field.Widget) (any, error) {
	switch typed := widget.(type) {
	case *widgets.Checkbox:
		checked, err := driver.Confirm(ctx, ConfirmConfig{Message: message(typed.Field, typed.LabelText())})
		if err != nil {
			return nil, err
		}
		if checked {
			return typed.Attrs().Text("value"), nil
		}
		return "", nil
	case *widgets.Select:
		options := typed.OptionList()
		labels := make([]string, len(options))
		for idx, option := range options {
			labels[idx] = option.Label
		}
		idx, err := driver.Select(ctx, SelectConfig{
			Message: message(typed.Field, typed.LabelText()),
			Options: labels,
			Help:    typed.HelpText(),
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		return options[idx].Value, nil
	case *widgets.Textarea:
		return driver.TextArea(ctx, InputConfig{
			Message: message(typed.Field, typed.LabelText()),
			Help:    typed.HelpText(),
		})
	case *widgets.Input:
		cfg := InputConfig{
			Message: message(typed.Field, typed.LabelText()),
			Help:    typed.HelpText(),
		}
		if typed.Attrs().Text("type") == "password" {
			return driver.Password(ctx, cfg)
		}
		return driver.Input(ctx, cfg)
	default:
		base := widget.Base()
		return driver.Input(ctx, InputConfig{Message: message(base, "")})
	}
}

func message(f *field.Field, label string) string {
	if label = strings.TrimSpace(label); label != "" {
		return label
	}
	return f.Name()
}

func cloneContext(src param.Context) param.Context {
	out := make(param.Context, len(src))
	for key, value := range src {
		if nested, ok := value.(map[string]any); ok {
			out[key] = cloneContext(nested)
			continue
		}
		out[key] = value
	}
	return out
}
