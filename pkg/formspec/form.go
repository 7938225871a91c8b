package formspec

import (
	"fmt"
	"io"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/param"
)

// Form is an ordered set of widgets sharing one input context. Like its
// fields, a Form is meant for a single owner and is not safe for concurrent
// use.
type Form struct {
	Name    string
	widgets []field.Widget
	byName  map[string]field.Widget
}

func (f *Form) add(widget field.Widget) {
	if f.byName == nil {
		f.byName = make(map[string]field.Widget)
	}
	f.widgets = append(f.widgets, widget)
	f.byName[widget.Base().Name()] = widget
}

// Widgets returns the widgets in declaration order.
func (f *Form) Widgets() []field.Widget {
	return append([]field.Widget(nil), f.widgets...)
}

// Widget looks a widget up by qualified name.
func (f *Form) Widget(name string) (field.Widget, bool) {
	widget, ok := f.byName[name]
	return widget, ok
}

// BindContext binds ctx to every field, dropping their cached results.
func (f *Form) BindContext(ctx param.Context) *Form {
	for _, widget := range f.widgets {
		widget.Base().BindContext(ctx)
	}
	return f
}

// Validate returns the validation message of every invalid field keyed by
// qualified name, or nil when all fields are valid.
func (f *Form) Validate() map[string]string {
	var errs map[string]string
	for _, widget := range f.widgets {
		base := widget.Base()
		if msg := base.Validate(); msg != "" {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[base.Name()] = msg
		}
	}
	return errs
}

// Values collects the processed value of every field into a nested context.
func (f *Form) Values() param.Context {
	out := make(param.Context, len(f.widgets))
	for _, widget := range f.widgets {
		base := widget.Base()
		param.Assign(out, base.Name(), base.Value())
	}
	return out
}

// Render writes every widget, one per line.
func (f *Form) Render(w io.Writer) error {
	for _, widget := range f.widgets {
		if err := widget.Render(w); err != nil {
			return fmt.Errorf("formspec: render %q: %w", widget.Base().Name(), err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
