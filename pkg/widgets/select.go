package widgets

import (
	"fmt"
	"html"
	"io"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/param"
)

// Option is a single <option> of a Select.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Select renders a <select> with ordered options. The option whose value
// matches the field value is marked selected; list values select every
// matching option.
type Select struct {
	*field.Field
	chrome
	options []Option
}

var _ field.Widget = (*Select)(nil)

// NewSelect creates a select for the qualified name.
func NewSelect(name string, opts ...field.Option) *Select {
	return &Select{Field: field.New(name, opts...)}
}

// Options appends options. An empty label falls back to the value.
func (s *Select) Options(options ...Option) *Select {
	for _, option := range options {
		if option.Label == "" {
			option.Label = option.Value
		}
		s.options = append(s.options, option)
	}
	return s
}

// OptionList returns a copy of the configured options.
func (s *Select) OptionList() []Option {
	return append([]Option(nil), s.options...)
}

// Strict rejects submitted values that are not one of the options.
func (s *Select) Strict(message string) *Select {
	allowed := make([]any, 0, len(s.options))
	for _, option := range s.options {
		allowed = append(allowed, option.Value)
	}
	s.Filters().OneOf(message, allowed...)
	return s
}

// Bind binds the select context.
func (s *Select) Bind(ctx param.Context) *Select {
	s.BindContext(ctx)
	return s
}

// With merges attributes.
func (s *Select) With(attrs map[string]any) *Select {
	s.MergeAttributes(attrs)
	return s
}

// Required adds the required filter and attribute.
func (s *Select) Required(message string) *Select {
	s.Filters().Required(message)
	s.Attrs().Set("required", true)
	return s
}

// Label sets the label text.
func (s *Select) Label(label string) *Select {
	s.setLabel(label)
	return s
}

// Help sets sanitised help markup.
func (s *Select) Help(markup string) *Select {
	s.setHelp(markup)
	return s
}

// ShowErrors renders the validation message after the control.
func (s *Select) ShowErrors(show bool) *Select {
	s.showErrors = show
	return s
}

func (s *Select) Render(w io.Writer) error {
	if err := s.renderLabel(w, s.Field); err != nil {
		return err
	}
	value, _ := boundValue(s.Field)
	selected := selectedSet(value)

	if _, err := fmt.Fprintf(w, "<select %s>", s.Attrs()); err != nil {
		return err
	}
	for _, option := range s.options {
		mark := ""
		if _, ok := selected[option.Value]; ok {
			mark = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			html.EscapeString(option.Value), mark, html.EscapeString(option.Label)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</select>"); err != nil {
		return err
	}
	return s.renderFooter(w, s.Field)
}

func (s *Select) String() string {
	return field.String(s)
}

func selectedSet(value any) map[string]struct{} {
	out := make(map[string]struct{})
	switch typed := value.(type) {
	case nil:
	case []any:
		for _, item := range typed {
			out[textOf(item)] = struct{}{}
		}
	case []string:
		for _, item := range typed {
			out[item] = struct{}{}
		}
	default:
		out[textOf(value)] = struct{}{}
	}
	return out
}
