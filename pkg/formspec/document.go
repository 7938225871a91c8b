package formspec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/widgets"
)

// ErrNoFields is returned when a document declares no fields.
var ErrNoFields = errors.New("formspec: document declares no fields")

// Document is a declarative form: an ordered list of field specs.
type Document struct {
	Name   string      `yaml:"name"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec is a widget spec plus the filters configuring its Param.
type FieldSpec struct {
	widgets.Spec `yaml:",inline"`
	Filters      []FilterSpec `yaml:"filters"`
}

// Parse decodes a YAML document. Unknown keys are rejected so typos in field
// specs do not silently drop configuration.
func Parse(raw []byte) (Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, ErrNoFields
		}
		return Document{}, fmt.Errorf("formspec: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("formspec: read %s: %w", path, err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks the document for structural problems: missing or duplicate
// names, unknown filter kinds and filters missing their required argument.
func (d Document) Validate() error {
	if len(d.Fields) == 0 {
		return ErrNoFields
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, spec := range d.Fields {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return fmt.Errorf("formspec: field #%d has no name", idx+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("formspec: duplicate field %q", name)
		}
		seen[name] = struct{}{}
		for _, filter := range spec.Filters {
			if _, ok := filterKinds[filter.Kind]; !ok {
				return fmt.Errorf("formspec: field %q: unknown filter %q", name, filter.Kind)
			}
			if err := filter.check(); err != nil {
				return fmt.Errorf("formspec: field %q: %w", name, err)
			}
		}
	}
	return nil
}

// Build creates the widgets of the document through reg, applying each
// field's filters in declaration order. A nil registry uses the built-ins.
func (d Document) Build(reg *widgets.Registry, opts ...field.Option) (*Form, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = widgets.NewRegistry()
	}
	form := &Form{Name: d.Name}
	for _, spec := range d.Fields {
		widget, err := reg.Build(spec.Spec, opts...)
		if err != nil {
			return nil, fmt.Errorf("formspec: %w", err)
		}
		for _, filter := range spec.Filters {
			filter.apply(widget.Base())
		}
		form.add(widget)
	}
	return form, nil
}
