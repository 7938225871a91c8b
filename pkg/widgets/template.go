package widgets

import (
	"fmt"
	"io"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/param"
)

// Template renders a field through a pongo2 template. The template sees:
//
//	attrs  the attribute text, already escaped
//	value  the processed value (nil when unbound)
//	error  the validation message
//	id, name, label, help
type Template struct {
	*field.Field
	chrome
	tpl *pongo2.Template
}

var _ field.Widget = (*Template)(nil)

// NewTemplate compiles source and returns a widget rendering it.
func NewTemplate(name, source string, opts ...field.Option) (*Template, error) {
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("widgets: compile template for %q: %w", name, err)
	}
	return &Template{Field: field.New(name, opts...), tpl: tpl}, nil
}

// Bind binds the widget context.
func (t *Template) Bind(ctx param.Context) *Template {
	t.BindContext(ctx)
	return t
}

// With merges attributes.
func (t *Template) With(attrs map[string]any) *Template {
	t.MergeAttributes(attrs)
	return t
}

// Required adds the required filter.
func (t *Template) Required(message string) *Template {
	t.Filters().Required(message)
	return t
}

// Label sets the label exposed to the template.
func (t *Template) Label(label string) *Template {
	t.setLabel(label)
	return t
}

// Help sets the sanitised help markup exposed to the template.
func (t *Template) Help(markup string) *Template {
	t.setHelp(markup)
	return t
}

func (t *Template) Render(w io.Writer) error {
	value, _ := boundValue(t.Field)
	errMsg := ""
	if t.Context() != nil {
		errMsg = t.Validate()
	}
	ctx := pongo2.Context{
		"attrs": pongo2.AsSafeValue(t.Attrs().String()),
		"value": value,
		"error": errMsg,
		"id":    t.ID(),
		"name":  t.Name(),
		"label": t.label,
		"help":  pongo2.AsSafeValue(t.help),
	}
	if err := t.tpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("widgets: execute template: %w", err)
	}
	return nil
}

func (t *Template) String() string {
	return field.String(t)
}
