package widgets

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-htfield/pkg/attrs"
	"github.com/goliatone/go-htfield/pkg/field"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// chrome carries the markup rendered around a control: label, help text and
// the validation message.
type chrome struct {
	label      string
	help       string
	showErrors bool
}

// LabelText returns the label rendered before the control.
func (c *chrome) LabelText() string {
	return c.label
}

// HelpText returns the sanitised help markup rendered after the control.
func (c *chrome) HelpText() string {
	return c.help
}

func (c *chrome) setLabel(label string) {
	c.label = strings.TrimSpace(label)
}

// setHelp sanitises markup; scripts, handlers and unknown elements are
// dropped.
func (c *chrome) setHelp(markup string) {
	c.help = sanitizeHelp(markup)
}

func (c *chrome) renderLabel(w io.Writer, f *field.Field) error {
	if c.label == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<label for="%s">%s</label>`, html.EscapeString(f.ID()), html.EscapeString(c.label))
	return err
}

func (c *chrome) renderFooter(w io.Writer, f *field.Field) error {
	if c.help != "" {
		if _, err := fmt.Fprintf(w, `<small class="help">%s</small>`, c.help); err != nil {
			return err
		}
	}
	if !c.showErrors || f.Context() == nil {
		return nil
	}
	if msg := f.Validate(); msg != "" {
		if _, err := fmt.Fprintf(w, `<small class="error">%s</small>`, html.EscapeString(msg)); err != nil {
			return err
		}
	}
	return nil
}

func sanitizeHelp(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	helpPolicyOnce.Do(func() {
		helpPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(helpPolicy.Sanitize(trimmed))
}

// renderAttrs returns the field attributes with per-render overrides
// applied, leaving the field's own store untouched.
func renderAttrs(f *field.Field, overrides map[string]any) *attrs.Store {
	store := f.Attrs().Clone()
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		store.Set(key, overrides[key])
	}
	return store
}

// boundValue returns the processed value. It reports false when the value is
// nil or the field was never bound nor processed, so untouched forms render
// empty.
func boundValue(f *field.Field) (any, bool) {
	if f.Context() == nil && !f.Processed() {
		return nil, false
	}
	value := f.Value()
	return value, value != nil
}

func textOf(value any) string {
	if value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return text
	}
	return fmt.Sprint(value)
}
