package cli

import (
	"slices"
	"strings"
	"testing"
)

func TestExtractSourceArgsOrder(t *testing.T) {
	args := []string{
		"-b", "alpine:3.20",
		"--patch", "a.patch", "b.patch", "/app",
		"-c", "apt update",
		"--copy", "./conf", "/etc/app.conf",
		"-g", "../repo", "v1..v2", "/src",
		"-r", "patched",
	}

	sources, rest, err := extractSourceArgs(args)
	if err != nil {
		t.Fatal(err)
	}

	wantKinds := []sourceKind{patchSource, copySource, gitSource}
	if len(sources) != len(wantKinds) {
		t.Fatalf("len(sources) = %d, want %d", len(sources), len(wantKinds))
	}
	for i, want := range wantKinds {
		if sources[i].kind != want {
			t.Errorf("sources[%d].kind = %d, want %d", i, sources[i].kind, want)
		}
	}

	if !slices.Equal(sources[0].tokens, []string{"a.patch", "b.patch", "/app"}) {
		t.Errorf("patch tokens = %v", sources[0].tokens)
	}
	if !slices.Equal(sources[1].tokens, []string{"./conf", "/etc/app.conf"}) {
		t.Errorf("copy tokens = %v", sources[1].tokens)
	}
	if !slices.Equal(sources[2].tokens, []string{"../repo", "v1..v2", "/src"}) {
		t.Errorf("git tokens = %v", sources[2].tokens)
	}

	wantRest := []string{"-b", "alpine:3.20", "-c", "apt update", "-r", "patched"}
	if !slices.Equal(rest, wantRest) {
		t.Errorf("rest = %v, want %v", rest, wantRest)
	}
}

func TestExtractSourceArgsInterleaved(t *testing.T) {
	args := []string{
		"--git", "/app",
		"--patch", "fix.patch", "/app",
		"--git", "../other", "/app",
	}

	sources, _, err := extractSourceArgs(args)
	if err != nil {
		t.Fatal(err)
	}

	wantKinds := []sourceKind{gitSource, patchSource, gitSource}
	for i, want := range wantKinds {
		if sources[i].kind != want {
			t.Errorf("sources[%d].kind = %d, want %d", i, sources[i].kind, want)
		}
	}
}

func TestExtractSourceArgsTokenCounts(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"patch one token", []string{"--patch", "/app"}},
		{"patch no tokens", []string{"--patch"}},
		{"git no tokens", []string{"--git", "-r", "out"}},
		{"git four tokens", []string{"--git", "a", "b", "c", "d"}},
		{"copy one token", []string{"--copy", "src"}},
		{"copy three tokens", []string{"--copy", "a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := extractSourceArgs(tt.args); err == nil {
				t.Errorf("extractSourceArgs(%v): expected error", tt.args)
			}
		})
	}
}

func TestExtractSourceArgsRejectsEqualsForm(t *testing.T) {
	_, _, err := extractSourceArgs([]string{"--patch=fix.patch"})
	if err == nil {
		t.Fatal("expected error for --patch= form")
	}
	if !strings.Contains(err.Error(), "space-separated") {
		t.Errorf("error = %v", err)
	}
}

func TestExtractSourceArgsDashIsValue(t *testing.T) {
	sources, _, err := extractSourceArgs([]string{"--patch", "-", "/app"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(sources[0].tokens, []string{"-", "/app"}) {
		t.Errorf("tokens = %v", sources[0].tokens)
	}
}

func TestExtractSourceArgsNoSources(t *testing.T) {
	args := []string{"-b", "alpine", "-r", "out", "--tags", "v1"}

	sources, rest, err := extractSourceArgs(args)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 0 {
		t.Errorf("sources = %v, want none", sources)
	}
	if !slices.Equal(rest, args) {
		t.Errorf("rest = %v, want %v", rest, args)
	}
}
