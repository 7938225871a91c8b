package formspec

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htfield/pkg/field"
)

var filterKinds = map[string]struct{}{
	"trim":       {},
	"required":   {},
	"default":    {},
	"min_length": {},
	"max_length": {},
	"match":      {},
	"one_of":     {},
	"rule":       {},
}

// FilterSpec declares one filter. In YAML a filter is either a bare kind
// ("trim", "required") or a single-key mapping whose value is the filter's
// main argument or a mapping of its settings:
//
//	filters:
//	  - trim
//	  - required: Provide an email
//	  - min_length: 3
//	  - match: {pattern: '^[^@]+@[^@]+$', message: Invalid email}
//	  - one_of: {values: [s, m, l]}
//	  - rule: {expr: 'value != context.user.name', message: Pick another}
type FilterSpec struct {
	Kind    string `yaml:"-"`
	Message string `yaml:"message"`
	Pattern string `yaml:"pattern"`
	Expr    string `yaml:"expr"`
	N       int    `yaml:"n"`
	Value   any    `yaml:"value"`
	Values  []any  `yaml:"values"`
}

type filterSettings FilterSpec

var settingKeys = map[string]struct{}{
	"message": {},
	"pattern": {},
	"expr":    {},
	"n":       {},
	"value":   {},
	"values":  {},
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FilterSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		f.Kind = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: filter mapping must have exactly one key", node.Line)
		}
		f.Kind = node.Content[0].Value
		return f.decodeArgument(node.Content[1])
	default:
		return fmt.Errorf("line %d: filter must be a name or a single-key mapping", node.Line)
	}
}

func (f *FilterSpec) decodeArgument(arg *yaml.Node) error {
	if arg.Kind == yaml.MappingNode {
		for idx := 0; idx+1 < len(arg.Content); idx += 2 {
			key := arg.Content[idx]
			if _, ok := settingKeys[key.Value]; !ok {
				return fmt.Errorf("line %d: %s: unknown setting %q", key.Line, f.Kind, key.Value)
			}
		}
		var settings filterSettings
		if err := arg.Decode(&settings); err != nil {
			return err
		}
		kind := f.Kind
		*f = FilterSpec(settings)
		f.Kind = kind
		return nil
	}
	if arg.Kind == yaml.SequenceNode {
		return arg.Decode(&f.Values)
	}

	switch f.Kind {
	case "required":
		f.Message = arg.Value
	case "match":
		f.Pattern = arg.Value
	case "rule":
		f.Expr = arg.Value
	case "min_length", "max_length":
		n, err := strconv.Atoi(arg.Value)
		if err != nil {
			return fmt.Errorf("line %d: %s expects an integer: %w", arg.Line, f.Kind, err)
		}
		f.N = n
	default:
		return arg.Decode(&f.Value)
	}
	return nil
}

// check reports a filter whose required argument is missing.
func (f FilterSpec) check() error {
	switch f.Kind {
	case "match":
		if f.Pattern == "" {
			return fmt.Errorf("match needs a pattern")
		}
	case "rule":
		if f.Expr == "" {
			return fmt.Errorf("rule needs an expr")
		}
	case "one_of":
		if len(f.Values) == 0 {
			return fmt.Errorf("one_of needs values")
		}
	}
	return nil
}

func (f FilterSpec) apply(target *field.Field) {
	filters := target.Filters()
	switch f.Kind {
	case "trim":
		filters.Trim()
	case "required":
		filters.Required(f.Message)
		target.Attrs().Set("required", true)
	case "default":
		filters.Default(f.Value)
	case "min_length":
		filters.MinLength(f.N, f.Message)
	case "max_length":
		filters.MaxLength(f.N, f.Message)
		target.Attrs().Set("maxlength", f.N)
	case "match":
		filters.Match(f.Pattern, f.Message)
	case "one_of":
		filters.OneOf(f.Message, f.Values...)
	case "rule":
		filters.Rule(f.Expr, f.Message)
	}
}
