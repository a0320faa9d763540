package codec

import "testing"

func TestBindingName(t *testing.T) {
	tests := map[string]string{
		"User":    "User",
		"yield":   "yield_",
		"package": "package_",
		"type":    "type",
		"$ref":    "$ref",
	}
	for in, want := range tests {
		if got := BindingName(in); got != want {
			t.Errorf("BindingName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"foo", "foo"},
		{"_private", "_private"},
		{"$id", "$id"},
		{"a1", "a1"},
		{"1a", `"1a"`},
		{"content-type", `"content-type"`},
		{"with space", `"with space"`},
		{"", `""`},
		{"default", "default"},
		{`say "x"`, `"say \"x\""`},
	}
	for _, tt := range tests {
		if got := PropertyName(tt.in); got != tt.want {
			t.Errorf("PropertyName(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
