package widgets

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/param"
)

// Checkbox renders <input type="checkbox">. It is checked when the field
// value is truthy ("", "0", "false", "off" and nil are not).
type Checkbox struct {
	*field.Field
	chrome
}

var _ field.Widget = (*Checkbox)(nil)

// NewCheckbox creates a checkbox submitting "1" when checked.
func NewCheckbox(name string, opts ...field.Option) *Checkbox {
	c := &Checkbox{Field: field.New(name, opts...)}
	c.Attrs().Set("type", "checkbox")
	if !c.Attrs().Has("value") {
		c.Attrs().Set("value", "1")
	}
	return c
}

// Bind binds the checkbox context.
func (c *Checkbox) Bind(ctx param.Context) *Checkbox {
	c.BindContext(ctx)
	return c
}

// With merges attributes.
func (c *Checkbox) With(attrs map[string]any) *Checkbox {
	c.MergeAttributes(attrs)
	return c
}

// Required demands the box is checked.
func (c *Checkbox) Required(message string) *Checkbox {
	c.Filters().Required(message)
	c.Attrs().Set("required", true)
	return c
}

// Label sets the label text.
func (c *Checkbox) Label(label string) *Checkbox {
	c.setLabel(label)
	return c
}

// ShowErrors renders the validation message after the control.
func (c *Checkbox) ShowErrors(show bool) *Checkbox {
	c.showErrors = show
	return c
}

// Checked reports whether the current value checks the box.
func (c *Checkbox) Checked() bool {
	value, ok := boundValue(c.Field)
	if !ok {
		return false
	}
	if flag, isBool := value.(bool); isBool {
		return flag
	}
	switch strings.ToLower(strings.TrimSpace(textOf(value))) {
	case "", "0", "false", "off":
		return false
	default:
		return true
	}
}

func (c *Checkbox) Render(w io.Writer) error {
	overrides := map[string]any{}
	if c.Checked() {
		overrides["checked"] = true
	}
	if _, err := fmt.Fprintf(w, "<input %s />", renderAttrs(c.Field, overrides)); err != nil {
		return err
	}
	if err := c.renderLabel(w, c.Field); err != nil {
		return err
	}
	return c.renderFooter(w, c.Field)
}

func (c *Checkbox) String() string {
	return field.String(c)
}
