package widgets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-htfield/pkg/field"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput    = "input"
	WidgetHidden   = "hidden"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
	WidgetTemplate = "template"
)

// ErrUnknownWidget is returned by Build when no factory is registered for the
// resolved widget name.
var ErrUnknownWidget = errors.New("widgets: unknown widget")

// Spec declares a widget independently of its Go type. It is what form
// documents decode into.
type Spec struct {
	Name       string         `yaml:"name"`
	Widget     string         `yaml:"widget"`
	Type       string         `yaml:"type"`
	Label      string         `yaml:"label"`
	Help       string         `yaml:"help"`
	Multiline  bool           `yaml:"multiline"`
	ShowErrors bool           `yaml:"show_errors"`
	Template   string         `yaml:"template"`
	Attrs      map[string]any `yaml:"attrs"`
	Options    []Option       `yaml:"options"`
}

// Factory builds a widget from a spec.
type Factory func(spec Spec, opts ...field.Option) (field.Widget, error)

// Matcher decides whether a widget should handle a spec without an explicit
// widget name.
type Matcher func(spec Spec) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry maps widget names to factories and picks a widget for specs that
// do not name one. Higher priority matchers win; ties fall back to
// registration order.
type Registry struct {
	mu        sync.RWMutex
	rules     []rule
	factories map[string]Factory
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{factories: make(map[string]Factory)}
	reg.registerBuiltins()
	return reg
}

// Register adds a factory under name and, when matcher is non-nil, a matcher
// with the given priority. Registering an existing name replaces its factory.
func (r *Registry) Register(name string, priority int, factory Factory, matcher Matcher) {
	if r == nil || factory == nil {
		return
	}
	trimmed := normalize(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[trimmed] = factory
	if matcher != nil {
		r.rules = append(r.rules, rule{
			name:     trimmed,
			priority: priority,
			match:    matcher,
			order:    len(r.rules),
		})
	}
}

// Names returns the registered widget names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the widget name for a spec. An explicit Widget is honoured
// before matcher evaluation.
func (r *Registry) Resolve(spec Spec) (string, bool) {
	if explicit := normalize(spec.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(spec) {
			return entry.name, true
		}
	}
	return "", false
}

// Build resolves and constructs the widget for spec, then merges spec.Attrs.
func (r *Registry) Build(spec Spec, opts ...field.Option) (field.Widget, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, errors.New("widgets: spec name is required")
	}
	name, ok := r.Resolve(spec)
	if !ok {
		return nil, fmt.Errorf("%w for field %q", ErrUnknownWidget, spec.Name)
	}

	r.mu.RLock()
	factory := r.factories[name]
	r.mu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("%w %q for field %q", ErrUnknownWidget, name, spec.Name)
	}

	widget, err := factory(spec, opts...)
	if err != nil {
		return nil, fmt.Errorf("widgets: build %q for field %q: %w", name, spec.Name, err)
	}
	if len(spec.Attrs) > 0 {
		widget.Base().MergeAttributes(spec.Attrs)
	}
	return widget, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetTemplate, 100, func(spec Spec, opts ...field.Option) (field.Widget, error) {
		tpl, err := NewTemplate(spec.Name, spec.Template, opts...)
		if err != nil {
			return nil, err
		}
		return tpl.Label(spec.Label).Help(spec.Help), nil
	}, func(spec Spec) bool {
		return strings.TrimSpace(spec.Template) != ""
	})

	r.Register(WidgetCheckbox, 90, func(spec Spec, opts ...field.Option) (field.Widget, error) {
		return NewCheckbox(spec.Name, opts...).Label(spec.Label).ShowErrors(spec.ShowErrors), nil
	}, func(spec Spec) bool {
		kind := normalize(spec.Type)
		return kind == "checkbox" || kind == "bool" || kind == "boolean"
	})

	r.Register(WidgetSelect, 80, func(spec Spec, opts ...field.Option) (field.Widget, error) {
		return NewSelect(spec.Name, opts...).
			Options(spec.Options...).
			Label(spec.Label).
			Help(spec.Help).
			ShowErrors(spec.ShowErrors), nil
	}, func(spec Spec) bool {
		return len(spec.Options) > 0
	})

	r.Register(WidgetTextarea, 70, func(spec Spec, opts ...field.Option) (field.Widget, error) {
		return NewTextarea(spec.Name, opts...).
			Label(spec.Label).
			Help(spec.Help).
			ShowErrors(spec.ShowErrors), nil
	}, func(spec Spec) bool {
		return spec.Multiline
	})

	r.Register(WidgetHidden, 60, func(spec Spec, opts ...field.Option) (field.Widget, error) {
		return NewHidden(spec.Name, opts...), nil
	}, func(spec Spec) bool {
		return normalize(spec.Type) == "hidden"
	})

	r.Register(WidgetInput, 0, func(spec Spec, opts ...field.Option) (field.Widget, error) {
		in := NewInput(spec.Name, opts...)
		if kind := normalize(spec.Type); kind != "" && kind != "text" {
			in.Type(kind)
		}
		return in.Label(spec.Label).Help(spec.Help).ShowErrors(spec.ShowErrors), nil
	}, func(Spec) bool {
		return true
	})
}
