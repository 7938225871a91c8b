package attrs_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htfield/pkg/attrs"
)

func TestMergePreservesNestedSiblings(t *testing.T) {
	store := attrs.New().Merge(map[string]any{
		"style": map[string]any{"color": "red", "size": "10px"},
	})

	store.Merge(map[string]any{
		"style": map[string]any{"color": "blue"},
	})

	want := map[string]any{
		"style": map[string]any{"color": "blue", "size": "10px"},
	}
	if diff := cmp.Diff(want, store.Map()); diff != "" {
		t.Fatalf("merged attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeReplacesScalars(t *testing.T) {
	store := attrs.New().Set("id", "field_1").Set("class", "a")
	store.Merge(map[string]any{"id": "custom"})

	if got := store.Text("id"); got != "custom" {
		t.Fatalf("id = %q, want custom", got)
	}
	if diff := cmp.Diff([]string{"id", "class"}, store.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestMergePromotesAndDemotesShape(t *testing.T) {
	store := attrs.New().Set("data", "flat")

	store.Merge(map[string]any{"data": map[string]string{"role": "picker"}})
	if _, ok := store.Nested("data"); !ok {
		t.Fatalf("expected scalar to be promoted to a nested group")
	}

	store.Merge(map[string]any{"data": "flat-again"})
	if _, ok := store.Nested("data"); ok {
		t.Fatalf("expected nested group to be replaced by scalar")
	}
	if got := store.Text("data"); got != "flat-again" {
		t.Fatalf("data = %q", got)
	}
}

func TestMergeIsDeepAcrossLevels(t *testing.T) {
	store := attrs.New().Merge(map[string]any{
		"data": map[string]any{
			"config": map[string]any{"a": 1, "b": 2},
		},
	})
	store.Merge(map[string]any{
		"data": map[string]any{
			"config": map[string]any{"b": 3},
			"extra":  "x",
		},
	})

	want := map[string]any{
		"data": map[string]any{
			"config": map[string]any{"a": 1, "b": 3},
			"extra":  "x",
		},
	}
	if diff := cmp.Diff(want, store.Map()); diff != "" {
		t.Fatalf("deep merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSkipsProtectedKeys(t *testing.T) {
	store := attrs.New().Set("name", "email").Protect("name")
	store.Merge(map[string]any{"name": "other", "type": "email"})
	store.Delete("name")

	if got := store.Text("name"); got != "email" {
		t.Fatalf("protected name changed to %q", got)
	}
	if got := store.Text("type"); got != "email" {
		t.Fatalf("type = %q", got)
	}
}

func TestMergeEmptyMapIsNoop(t *testing.T) {
	store := attrs.New().Set("id", "x")
	store.Merge(nil)
	store.Merge(map[string]any{})
	if store.Len() != 1 {
		t.Fatalf("expected 1 attribute, got %d", store.Len())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	store := attrs.New().Merge(map[string]any{"style": map[string]any{"color": "red"}})
	cloned := store.Clone()
	cloned.Merge(map[string]any{"style": map[string]any{"color": "blue"}})

	style, _ := store.Nested("style")
	if got := style.Text("color"); got != "red" {
		t.Fatalf("original mutated through clone: %q", got)
	}
}

func TestDeleteKeepsOrder(t *testing.T) {
	store := attrs.New().Set("a", 1).Set("b", 2).Set("c", 3)
	store.Delete("b")
	if diff := cmp.Diff([]string{"a", "c"}, store.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}
