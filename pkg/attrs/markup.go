package attrs

import (
	"html"
	"strings"
)

// String renders the store as attribute text suitable for embedding in a tag,
// e.g. `id="field_1" name="email"`.
//
//   - true renders a bare attribute, false and nil are omitted;
//   - a nested "style" group renders as CSS declarations;
//   - nested "data" and "aria" groups expand into prefixed attributes;
//   - any other nested group renders the keys whose values are truthy as a
//     space separated token list (class maps).
func (s *Store) String() string {
	if s == nil || len(s.keys) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.keys))
	for _, key := range s.keys {
		parts = appendAttribute(parts, key, s.values[key])
	}
	return strings.Join(parts, " ")
}

func appendAttribute(parts []string, key string, value any) []string {
	switch typed := value.(type) {
	case nil:
		return parts
	case bool:
		if typed {
			parts = append(parts, html.EscapeString(key))
		}
		return parts
	case *Store:
		return appendGroup(parts, key, typed)
	default:
		return append(parts, formatPair(key, scalarText(value)))
	}
}

func appendGroup(parts []string, key string, group *Store) []string {
	switch strings.ToLower(key) {
	case "style":
		if css := styleText(group); css != "" {
			parts = append(parts, formatPair(key, css))
		}
		return parts
	case "data", "aria":
		for _, inner := range group.keys {
			parts = appendAttribute(parts, key+"-"+inner, group.values[inner])
		}
		return parts
	default:
		if tokens := tokenList(group); tokens != "" {
			parts = append(parts, formatPair(key, tokens))
		}
		return parts
	}
}

func styleText(group *Store) string {
	declarations := make([]string, 0, len(group.keys))
	for _, property := range group.keys {
		value := group.values[property]
		if _, nested := value.(*Store); nested {
			continue
		}
		if flag, ok := value.(bool); ok && !flag {
			continue
		}
		text := strings.TrimSpace(scalarText(value))
		if text == "" {
			continue
		}
		declarations = append(declarations, property+":"+text)
	}
	if len(declarations) == 0 {
		return ""
	}
	return strings.Join(declarations, ";") + ";"
}

func tokenList(group *Store) string {
	tokens := make([]string, 0, len(group.keys))
	for _, token := range group.keys {
		if truthy(group.values[token]) {
			tokens = append(tokens, token)
		}
	}
	return strings.Join(tokens, " ")
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != "" && typed != "0" && typed != "false"
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case float64:
		return typed != 0
	case *Store:
		return typed.Len() > 0
	default:
		return true
	}
}

func formatPair(key, value string) string {
	var builder strings.Builder
	builder.Grow(len(key) + len(value) + 3)
	builder.WriteString(html.EscapeString(key))
	builder.WriteString(`="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteByte('"')
	return builder.String()
}
