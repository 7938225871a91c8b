package widgets

import (
	"errors"
	"testing"

	"github.com/goliatone/go-htfield/pkg/field"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	spec := Spec{Name: "agree", Type: "checkbox", Widget: " Custom-Toggle "}

	if got, ok := reg.Resolve(spec); !ok || got != "custom-toggle" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		spec   Spec
		expect string
	}{
		{name: "plain input", spec: Spec{Name: "email"}, expect: WidgetInput},
		{name: "checkbox by type", spec: Spec{Name: "agree", Type: "bool"}, expect: WidgetCheckbox},
		{name: "select by options", spec: Spec{Name: "size", Options: []Option{{Value: "s"}}}, expect: WidgetSelect},
		{name: "textarea", spec: Spec{Name: "bio", Multiline: true}, expect: WidgetTextarea},
		{name: "hidden", spec: Spec{Name: "token", Type: "hidden"}, expect: WidgetHidden},
		{name: "template beats options", spec: Spec{Name: "x", Template: "<b></b>", Options: []Option{{Value: "a"}}}, expect: WidgetTemplate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.spec)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	factory := func(spec Spec, opts ...field.Option) (field.Widget, error) {
		return NewInput(spec.Name, opts...), nil
	}
	always := func(Spec) bool { return true }

	reg.Register("first", 10, factory, always)
	reg.Register("second", 10, factory, always)
	if got, _ := reg.Resolve(Spec{Name: "x"}); got != "first" {
		t.Fatalf("tie should resolve to first registration, got %q", got)
	}

	reg.Register("urgent", 20, factory, always)
	if got, _ := reg.Resolve(Spec{Name: "x"}); got != "urgent" {
		t.Fatalf("higher priority should win, got %q", got)
	}
}

func TestBuild_AppliesAttrsAndType(t *testing.T) {
	reg := NewRegistry()
	widget, err := reg.Build(Spec{
		Name:  "email",
		Type:  "email",
		Attrs: map[string]any{"id": "email_field", "style": map[string]any{"width": "100%"}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	input, ok := widget.(*Input)
	if !ok {
		t.Fatalf("expected *Input, got %T", widget)
	}
	if input.ID() != "email_field" || input.Attrs().Text("type") != "email" {
		t.Fatalf("unexpected attributes %v", input.Attrs().Map())
	}
}

func TestBuild_Errors(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Build(Spec{Name: "x", Widget: "nope"}); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
	if _, err := reg.Build(Spec{}); err == nil {
		t.Fatalf("expected missing name error")
	}
	if _, err := reg.Build(Spec{Name: "x", Template: "{% if %}"}); err == nil {
		t.Fatalf("expected template compile error")
	}
}

func TestNames(t *testing.T) {
	names := NewRegistry().Names()
	if len(names) != 6 || names[0] != WidgetCheckbox {
		t.Fatalf("unexpected names %v", names)
	}
}
