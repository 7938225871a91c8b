package widgets

import (
	"fmt"
	"html"
	"io"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/param"
)

// Textarea renders a <textarea> whose body is the escaped field value.
type Textarea struct {
	*field.Field
	chrome
}

var _ field.Widget = (*Textarea)(nil)

// NewTextarea creates a textarea for the qualified name.
func NewTextarea(name string, opts ...field.Option) *Textarea {
	return &Textarea{Field: field.New(name, opts...)}
}

// Bind binds the textarea context.
func (t *Textarea) Bind(ctx param.Context) *Textarea {
	t.BindContext(ctx)
	return t
}

// With merges attributes.
func (t *Textarea) With(attrs map[string]any) *Textarea {
	t.MergeAttributes(attrs)
	return t
}

// Required adds the required filter and attribute.
func (t *Textarea) Required(message string) *Textarea {
	t.Filters().Required(message)
	t.Attrs().Set("required", true)
	return t
}

// Label sets the label text.
func (t *Textarea) Label(label string) *Textarea {
	t.setLabel(label)
	return t
}

// Help sets sanitised help markup.
func (t *Textarea) Help(markup string) *Textarea {
	t.setHelp(markup)
	return t
}

// ShowErrors renders the validation message after the control.
func (t *Textarea) ShowErrors(show bool) *Textarea {
	t.showErrors = show
	return t
}

func (t *Textarea) Render(w io.Writer) error {
	if err := t.renderLabel(w, t.Field); err != nil {
		return err
	}
	value, _ := boundValue(t.Field)
	if _, err := fmt.Fprintf(w, "<textarea %s>%s</textarea>", t.Attrs(), html.EscapeString(textOf(value))); err != nil {
		return err
	}
	return t.renderFooter(w, t.Field)
}

func (t *Textarea) String() string {
	return field.String(t)
}
