package attrs

import (
	"fmt"
	"sort"
)

// Store is an ordered set of tag attributes. Values are scalars (string,
// bool, numbers, fmt.Stringer) or nested stores for grouped attributes such as
// inline styles and data-* maps. Keys keep their first insertion order so the
// rendered markup is stable.
//
// A Store is not safe for concurrent mutation; it belongs to the field that
// owns it.
type Store struct {
	keys      []string
	values    map[string]any
	protected map[string]struct{}
}

type entry struct {
	key   string
	value any
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// Protect marks keys that Merge must never alter. Protected keys can still be
// written through Set by the owner of the store.
func (s *Store) Protect(keys ...string) *Store {
	if s.protected == nil {
		s.protected = make(map[string]struct{}, len(keys))
	}
	for _, key := range keys {
		s.protected[key] = struct{}{}
	}
	return s
}

// IsProtected reports whether key is shielded from Merge.
func (s *Store) IsProtected(key string) bool {
	_, ok := s.protected[key]
	return ok
}

// Set stores value under key, replacing any previous value wholesale. Nested
// maps are converted into stores.
func (s *Store) Set(key string, value any) *Store {
	if entries, ok := nestedEntries(value); ok {
		nested := New()
		nested.mergeEntries(entries)
		s.put(key, nested)
		return s
	}
	s.put(key, value)
	return s
}

// Get returns the value stored under key, or nil. Nested groups are returned
// as *Store.
func (s *Store) Get(key string) any {
	return s.values[key]
}

// Lookup is Get with a presence flag.
func (s *Store) Lookup(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Text returns the scalar stored under key formatted as a string. Missing,
// nil and nested values yield "".
func (s *Store) Text(key string) string {
	value, ok := s.values[key]
	if !ok {
		return ""
	}
	if _, nested := value.(*Store); nested {
		return ""
	}
	return scalarText(value)
}

// Nested returns the nested store under key, if any.
func (s *Store) Nested(key string) (*Store, bool) {
	nested, ok := s.values[key].(*Store)
	return nested, ok
}

// Delete removes key. Protected keys are left in place.
func (s *Store) Delete(key string) *Store {
	if s.IsProtected(key) {
		return s
	}
	if _, ok := s.values[key]; !ok {
		return s
	}
	delete(s.values, key)
	for idx, existing := range s.keys {
		if existing == key {
			s.keys = append(s.keys[:idx], s.keys[idx+1:]...)
			break
		}
	}
	return s
}

// Keys returns the attribute names in insertion order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len reports the number of top-level attributes.
func (s *Store) Len() int {
	return len(s.keys)
}

// Merge applies attrs on top of the store. A nested map merges key by key
// into the nested group stored at that key, creating it (or replacing a
// scalar) when needed and leaving sibling keys untouched. Any other value
// replaces the stored value wholesale. Keys new to the store are appended in
// sorted order. Protected keys are skipped.
func (s *Store) Merge(attrs map[string]any) *Store {
	entries, _ := nestedEntries(attrs)
	for _, item := range entries {
		if s.IsProtected(item.key) {
			continue
		}
		s.mergeEntry(item)
	}
	return s
}

// MergeStore merges another store, honouring its key order.
func (s *Store) MergeStore(other *Store) *Store {
	if other == nil {
		return s
	}
	for _, item := range other.entries() {
		if s.IsProtected(item.key) {
			continue
		}
		s.mergeEntry(item)
	}
	return s
}

// Map returns a deep copy of the store as plain Go maps.
func (s *Store) Map() map[string]any {
	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		value := s.values[key]
		if nested, ok := value.(*Store); ok {
			out[key] = nested.Map()
			continue
		}
		out[key] = value
	}
	return out
}

// Clone returns a deep copy, protected keys included.
func (s *Store) Clone() *Store {
	cloned := New()
	for _, key := range s.keys {
		value := s.values[key]
		if nested, ok := value.(*Store); ok {
			value = nested.Clone()
		}
		cloned.put(key, value)
	}
	for key := range s.protected {
		cloned.Protect(key)
	}
	return cloned
}

func (s *Store) mergeEntries(entries []entry) {
	for _, item := range entries {
		s.mergeEntry(item)
	}
}

func (s *Store) mergeEntry(item entry) {
	incoming, ok := nestedEntries(item.value)
	if !ok {
		s.put(item.key, item.value)
		return
	}
	nested, exists := s.values[item.key].(*Store)
	if !exists {
		nested = New()
		s.put(item.key, nested)
	}
	nested.mergeEntries(incoming)
}

func (s *Store) put(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *Store) entries() []entry {
	out := make([]entry, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, entry{key: key, value: s.values[key]})
	}
	return out
}

func nestedEntries(value any) ([]entry, bool) {
	switch typed := value.(type) {
	case map[string]any:
		out := make([]entry, 0, len(typed))
		for _, key := range sortedKeys(typed) {
			out = append(out, entry{key: key, value: typed[key]})
		}
		return out, true
	case map[string]string:
		out := make([]entry, 0, len(typed))
		for _, key := range sortedKeys(typed) {
			out = append(out, entry{key: key, value: typed[key]})
		}
		return out, true
	case *Store:
		if typed == nil {
			return nil, false
		}
		return typed.entries(), true
	default:
		return nil, false
	}
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func scalarText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(value)
	}
}
