package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get home directory")
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "just tilde", input: "~", expected: home},
		{name: "tilde with path", input: "~/foo/bar", expected: filepath.Join(home, "foo", "bar")},
		{name: "absolute path unchanged", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path unchanged", input: "relative/path", expected: "relative/path"},
		{name: "tilde not at start unchanged", input: "/foo/~/bar", expected: "/foo/~/bar"},
		{name: "empty string unchanged", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTilde(tt.input); got != tt.expected {
				t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveConfig(t *testing.T) {
	if got := ResolveConfig("", "/repo"); got != filepath.Join("/repo", "refit.yml") {
		t.Errorf("ResolveConfig default = %q", got)
	}
	if got := ResolveConfig("/explicit/conf.yml", "/repo"); got != "/explicit/conf.yml" {
		t.Errorf("ResolveConfig explicit = %q", got)
	}
}
