package param

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultRequiredMessage is used by Required when no message is given.
const DefaultRequiredMessage = "This field is required."

// FilterFunc transforms or validates a value. Returning a non-empty message
// stops the pipeline; the returned value becomes the result output.
type FilterFunc func(value any, ctx Context) (any, string)

type filter struct {
	name string
	fn   FilterFunc
}

// Filters is an ordered pipeline applied to a resolved value. Filters run in
// registration order and the first validation message wins.
type Filters struct {
	steps []filter
}

// Len reports the number of registered filters.
func (f *Filters) Len() int {
	return len(f.steps)
}

// Names lists the registered filters in order.
func (f *Filters) Names() []string {
	names := make([]string, 0, len(f.steps))
	for _, step := range f.steps {
		names = append(names, step.name)
	}
	return names
}

// Func appends a custom filter.
func (f *Filters) Func(name string, fn FilterFunc) *Filters {
	if fn == nil {
		return f
	}
	f.steps = append(f.steps, filter{name: name, fn: fn})
	return f
}

// Required fails when the value is empty (nil, "", or an empty list/map).
// The empty value is kept as output.
func (f *Filters) Required(message string) *Filters {
	if strings.TrimSpace(message) == "" {
		message = DefaultRequiredMessage
	}
	return f.Func("required", func(value any, _ Context) (any, string) {
		if isEmpty(value) {
			return value, message
		}
		return value, ""
	})
}

// Trim strips surrounding whitespace from strings and string lists.
func (f *Filters) Trim() *Filters {
	return f.Func("trim", func(value any, _ Context) (any, string) {
		switch typed := value.(type) {
		case string:
			return strings.TrimSpace(typed), ""
		case []string:
			out := make([]string, len(typed))
			for idx, item := range typed {
				out[idx] = strings.TrimSpace(item)
			}
			return out, ""
		default:
			return value, ""
		}
	})
}

// Default substitutes fallback when the value is empty.
func (f *Filters) Default(fallback any) *Filters {
	return f.Func("default", func(value any, _ Context) (any, string) {
		if isEmpty(value) {
			return fallback, ""
		}
		return value, ""
	})
}

// MinLength fails when a non-empty string is shorter than n runes.
func (f *Filters) MinLength(n int, message string) *Filters {
	if message == "" {
		message = fmt.Sprintf("Must be at least %d characters long.", n)
	}
	return f.Func("min_length", func(value any, _ Context) (any, string) {
		text, ok := value.(string)
		if !ok || text == "" {
			return value, ""
		}
		if utf8.RuneCountInString(text) < n {
			return value, message
		}
		return value, ""
	})
}

// MaxLength fails when a string is longer than n runes.
func (f *Filters) MaxLength(n int, message string) *Filters {
	if message == "" {
		message = fmt.Sprintf("Must be at most %d characters long.", n)
	}
	return f.Func("max_length", func(value any, _ Context) (any, string) {
		text, ok := value.(string)
		if !ok {
			return value, ""
		}
		if utf8.RuneCountInString(text) > n {
			return value, message
		}
		return value, ""
	})
}

// Match fails when a non-empty value does not match pattern. An invalid
// pattern reports itself as the validation message.
func (f *Filters) Match(pattern, message string) *Filters {
	re, err := regexp.Compile(pattern)
	if message == "" {
		message = "Invalid format."
	}
	return f.Func("match", func(value any, _ Context) (any, string) {
		if err != nil {
			return value, "match: " + err.Error()
		}
		if isEmpty(value) {
			return value, ""
		}
		if !re.MatchString(fmt.Sprint(value)) {
			return value, message
		}
		return value, ""
	})
}

// OneOf fails when a non-empty value (or any item of a list value) is not
// one of allowed, compared by their string form.
func (f *Filters) OneOf(message string, allowed ...any) *Filters {
	if message == "" {
		message = "Invalid option."
	}
	set := make(map[string]struct{}, len(allowed))
	for _, option := range allowed {
		set[fmt.Sprint(option)] = struct{}{}
	}
	return f.Func("one_of", func(value any, _ Context) (any, string) {
		if isEmpty(value) {
			return value, ""
		}
		for _, item := range listItems(value) {
			if _, ok := set[fmt.Sprint(item)]; !ok {
				return value, message
			}
		}
		return value, ""
	})
}

func listItems(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = item
		}
		return out
	default:
		return []any{value}
	}
}

// Rule fails when the boolean expression evaluates to false. The expression
// sees the current value as `value` and the whole context as `context`, e.g.
// `value == context.user.password`. Compile and evaluation problems are
// reported as validation messages prefixed with "rule:".
func (f *Filters) Rule(expression, message string) *Filters {
	program, err := expr.Compile(expression, expr.AsBool())
	if message == "" {
		message = "Invalid value."
	}
	return f.Func("rule", func(value any, ctx Context) (any, string) {
		if err != nil {
			return value, "rule: " + err.Error()
		}
		ok, runErr := runRule(program, value, ctx)
		if runErr != nil {
			return value, "rule: " + runErr.Error()
		}
		if !ok {
			return value, message
		}
		return value, ""
	})
}

func runRule(program *vm.Program, value any, ctx Context) (bool, error) {
	if ctx == nil {
		ctx = Context{}
	}
	out, err := expr.Run(program, map[string]any{
		"value":   value,
		"context": ctx,
	})
	if err != nil {
		return false, err
	}
	ok, _ := out.(bool)
	return ok, nil
}

func (f *Filters) apply(value any, ctx Context) Result {
	for _, step := range f.steps {
		next, message := step.fn(value, ctx)
		value = next
		if message != "" {
			return Result{Output: value, Error: message}
		}
	}
	return Result{Output: value}
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
