package attrs_test

import (
	"testing"

	"github.com/goliatone/go-htfield/pkg/attrs"
)

func TestStringRendering(t *testing.T) {
	cases := []struct {
		name  string
		build func() *attrs.Store
		want  string
	}{
		{
			name:  "empty",
			build: attrs.New,
			want:  "",
		},
		{
			name: "scalars in insertion order",
			build: func() *attrs.Store {
				return attrs.New().Set("id", "field_1").Set("name", "email").Set("maxlength", 40)
			},
			want: `id="field_1" name="email" maxlength="40"`,
		},
		{
			name: "booleans",
			build: func() *attrs.Store {
				return attrs.New().Set("required", true).Set("disabled", false).Set("placeholder", nil)
			},
			want: `required`,
		},
		{
			name: "escaping",
			build: func() *attrs.Store {
				return attrs.New().Set("value", `"quoted" <b>`)
			},
			want: `value="&#34;quoted&#34; &lt;b&gt;"`,
		},
		{
			name: "style group",
			build: func() *attrs.Store {
				store := attrs.New().Set("style", map[string]any{"color": "red"})
				return store.Merge(map[string]any{"style": map[string]any{"size": "10px"}})
			},
			want: `style="color:red;size:10px;"`,
		},
		{
			name: "data and aria groups",
			build: func() *attrs.Store {
				return attrs.New().
					Set("data", map[string]any{"role": "picker", "active": true}).
					Set("aria", map[string]string{"label": "Email"})
			},
			want: `data-active data-role="picker" aria-label="Email"`,
		},
		{
			name: "class map",
			build: func() *attrs.Store {
				return attrs.New().Set("class", map[string]any{"input": true, "error": false, "wide": "1"})
			},
			want: `class="input wide"`,
		},
		{
			name: "empty groups are omitted",
			build: func() *attrs.Store {
				return attrs.New().Set("style", map[string]any{}).Set("class", map[string]any{"x": false})
			},
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.build().String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
