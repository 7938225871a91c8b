package htfield

import (
	"bytes"
	"net/url"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/formspec"
	"github.com/goliatone/go-htfield/pkg/param"
	"github.com/goliatone/go-htfield/pkg/widgets"
)

// Field aliases field.Field, the state shared by every control.
type Field = field.Field

// Widget aliases field.Widget, the contract concrete controls implement.
type Widget = field.Widget

// Context aliases param.Context, the input data fields resolve against.
type Context = param.Context

// Result aliases param.Result.
type Result = param.Result

// Input creates a text input; see widgets.NewInput.
func Input(name string, opts ...field.Option) *widgets.Input {
	return widgets.NewInput(name, opts...)
}

// Textarea creates a textarea; see widgets.NewTextarea.
func Textarea(name string, opts ...field.Option) *widgets.Textarea {
	return widgets.NewTextarea(name, opts...)
}

// Select creates a select; see widgets.NewSelect.
func Select(name string, opts ...field.Option) *widgets.Select {
	return widgets.NewSelect(name, opts...)
}

// Checkbox creates a checkbox; see widgets.NewCheckbox.
func Checkbox(name string, opts ...field.Option) *widgets.Checkbox {
	return widgets.NewCheckbox(name, opts...)
}

// Submission is the outcome of RenderSubmission.
type Submission struct {
	HTML   []byte
	Values Context
	Errors map[string]string
}

// RenderSubmission parses a YAML form spec, binds the submitted values (when
// non-nil) and renders the form. It is the simplest entry point for request
// handlers that want markup plus validation outcome.
func RenderSubmission(spec []byte, submitted url.Values, opts ...field.Option) (Submission, error) {
	doc, err := formspec.Parse(spec)
	if err != nil {
		return Submission{}, err
	}
	form, err := doc.Build(widgets.NewRegistry(), opts...)
	if err != nil {
		return Submission{}, err
	}

	var out Submission
	if submitted != nil {
		form.BindContext(param.FromValues(submitted))
		out.Errors = form.Validate()
		out.Values = form.Values()
	}

	var buf bytes.Buffer
	if err := form.Render(&buf); err != nil {
		return Submission{}, err
	}
	out.HTML = buf.Bytes()
	return out, nil
}
