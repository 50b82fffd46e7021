package cli

import (
	"io"
	"strings"
	"testing"
)

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := map[string][]string{
		"render":     {"output", "format", "label", "and-tag", "or-tag", "color", "doc-ext", "watch", "no-cache", "config"},
		"serve":      {"addr", "redis", "no-cache", "config"},
		"cache":      nil,
		"completion": nil,
	}
	for name, flags := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
			continue
		}
		for _, f := range flags {
			if cmd.Flags().Lookup(f) == nil {
				t.Errorf("%s: missing --%s", name, f)
			}
		}
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "alpsviz") {
		t.Error("bash completion should mention the program name")
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "localhost:8080",
		"0.0.0.0:80":     "0.0.0.0:80",
		"localhost:8080": "localhost:8080",
	}
	for in, want := range tests {
		if got := displayAddr(in); got != want {
			t.Errorf("displayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}
