package param

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ParseName splits a qualified field name into its path segments:
// "user[contact][email]" yields ["user", "contact", "email"]. A trailing
// "[]" yields an empty final segment, which resolves to the whole list.
// Text following a closing bracket that does not open another one is
// dropped, as PHP form decoding does ("a[b]c[d]" yields ["a", "b"]). An
// unclosed bracket is kept verbatim in the segment that holds it.
func ParseName(name string) []string {
	open := strings.IndexByte(name, '[')
	if open <= 0 {
		return []string{name}
	}

	segments := []string{name[:open]}
	rest := name[open:]
	for len(rest) > 0 && rest[0] == '[' {
		closing := strings.IndexByte(rest, ']')
		if closing < 0 {
			segments[len(segments)-1] += rest
			break
		}
		segments = append(segments, rest[1:closing])
		rest = rest[closing+1:]
	}
	return segments
}

// FromValues decodes a flat form submission whose keys use the bracket
// notation ("user[contact][email]", "tags[]") into a nested context. Plain
// keys keep their last value; "[]" keys collect every value in order.
// Keys are applied in sorted order, so when a submission carries both "a"
// and "a[b]" the nested key wins and replaces the scalar.
func FromValues(values url.Values) Context {
	out := make(Context, len(values))
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		submitted := values[key]
		if len(submitted) == 0 {
			continue
		}
		segments := ParseName(key)
		if segments[len(segments)-1] == "" {
			list := make([]any, 0, len(submitted))
			for _, value := range submitted {
				list = append(list, value)
			}
			assign(out, segments[:len(segments)-1], list)
			continue
		}
		assign(out, segments, submitted[len(submitted)-1])
	}
	return out
}

// Assign stores value in ctx at the path of the qualified name, creating
// intermediate maps as needed. A trailing "[]" is ignored.
func Assign(ctx Context, name string, value any) {
	if ctx == nil {
		return
	}
	segments := ParseName(name)
	if len(segments) > 1 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	assign(ctx, segments, value)
}

func assign(root map[string]any, segments []string, value any) {
	if len(segments) == 0 {
		return
	}
	current := root
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

func resolve(value any, segments []string) (any, bool) {
	current := value
	for _, segment := range segments {
		if segment == "" {
			return current, current != nil
		}
		next, ok := step(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(current any, segment string) (any, bool) {
	switch typed := current.(type) {
	case Context:
		next, ok := typed[segment]
		return next, ok
	case map[string]string:
		next, ok := typed[segment]
		return next, ok
	case url.Values:
		return step(FromValues(typed), segment)
	case map[string][]string:
		return step(FromValues(url.Values(typed)), segment)
	case []any:
		idx, ok := index(segment, len(typed))
		if !ok {
			return nil, false
		}
		return typed[idx], true
	case []string:
		idx, ok := index(segment, len(typed))
		if !ok {
			return nil, false
		}
		return typed[idx], true
	case []map[string]any:
		idx, ok := index(segment, len(typed))
		if !ok {
			return nil, false
		}
		return typed[idx], true
	default:
		return nil, false
	}
}

func index(segment string, length int) (int, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}
