package widgets

import (
	"fmt"
	"io"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/param"
)

// Input renders an <input> control. The type attribute defaults to "text".
// Password inputs never echo their value back.
type Input struct {
	*field.Field
	chrome
}

var _ field.Widget = (*Input)(nil)

// NewInput creates a text input for the qualified name.
func NewInput(name string, opts ...field.Option) *Input {
	in := &Input{Field: field.New(name, opts...)}
	if !in.Attrs().Has("type") {
		in.Attrs().Set("type", "text")
	}
	return in
}

// Type sets the input type (email, number, password, ...).
func (i *Input) Type(kind string) *Input {
	i.MergeAttributes(map[string]any{"type": kind})
	return i
}

// Bind binds the input context.
func (i *Input) Bind(ctx param.Context) *Input {
	i.BindContext(ctx)
	return i
}

// With merges attributes.
func (i *Input) With(attrs map[string]any) *Input {
	i.MergeAttributes(attrs)
	return i
}

// Required adds the required filter and attribute.
func (i *Input) Required(message string) *Input {
	i.Filters().Required(message)
	i.Attrs().Set("required", true)
	return i
}

// Label sets the label text.
func (i *Input) Label(label string) *Input {
	i.setLabel(label)
	return i
}

// Help sets sanitised help markup.
func (i *Input) Help(markup string) *Input {
	i.setHelp(markup)
	return i
}

// ShowErrors renders the validation message after the control.
func (i *Input) ShowErrors(show bool) *Input {
	i.showErrors = show
	return i
}

// Render writes the label, the control and its footer.
func (i *Input) Render(w io.Writer) error {
	if err := i.renderLabel(w, i.Field); err != nil {
		return err
	}
	overrides := map[string]any{}
	if i.Attrs().Text("type") != "password" {
		if value, ok := boundValue(i.Field); ok {
			overrides["value"] = textOf(value)
		}
	}
	if _, err := fmt.Fprintf(w, "<input %s />", renderAttrs(i.Field, overrides)); err != nil {
		return err
	}
	return i.renderFooter(w, i.Field)
}

func (i *Input) String() string {
	return field.String(i)
}

// Hidden renders an <input type="hidden"> without label or footer.
type Hidden struct {
	*field.Field
}

var _ field.Widget = (*Hidden)(nil)

// NewHidden creates a hidden input.
func NewHidden(name string, opts ...field.Option) *Hidden {
	h := &Hidden{Field: field.New(name, opts...)}
	h.Attrs().Set("type", "hidden")
	return h
}

// Bind binds the input context.
func (h *Hidden) Bind(ctx param.Context) *Hidden {
	h.BindContext(ctx)
	return h
}

// With merges attributes.
func (h *Hidden) With(attrs map[string]any) *Hidden {
	h.MergeAttributes(attrs)
	return h
}

// Render writes the hidden control.
func (h *Hidden) Render(w io.Writer) error {
	overrides := map[string]any{}
	if value, ok := boundValue(h.Field); ok {
		overrides["value"] = textOf(value)
	}
	_, err := fmt.Fprintf(w, "<input %s />", renderAttrs(h.Field, overrides))
	return err
}

func (h *Hidden) String() string {
	return field.String(h)
}
