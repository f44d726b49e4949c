package build

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cruciblehq/imgpatch/internal/runtime"
)

// Captures the tar stream handed to CopyTo so tests can inspect it.
type captureInstance struct {
	destDir string
	entries map[string]string
	modes   map[string]os.FileMode
}

func (c *captureInstance) MkdirAll(ctx context.Context, path string) error { return nil }

func (c *captureInstance) ApplyPatch(ctx context.Context, diff io.Reader, workdir string) error {
	return nil
}

func (c *captureInstance) CopyTo(ctx context.Context, r io.Reader, destDir string) error {
	c.destDir = destDir
	c.entries = make(map[string]string)
	c.modes = make(map[string]os.FileMode)

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			return err
		}
		c.entries[header.Name] = string(content)
		c.modes[header.Name] = header.FileInfo().Mode()
	}
}

func (c *captureInstance) Exec(ctx context.Context, argv, env []string) (*runtime.ExecResult, error) {
	return &runtime.ExecResult{}, nil
}

func (c *captureInstance) Stop(ctx context.Context) error { return nil }

func (c *captureInstance) Commit(ctx context.Context, opts runtime.CommitOptions) (*runtime.CommitResult, error) {
	return &runtime.CommitResult{}, nil
}

func (c *captureInstance) Destroy(ctx context.Context) {}

func TestCopyIntoInstanceFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(src, []byte("color = \"red\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	inst := &captureInstance{}
	if err := copyIntoInstance(context.Background(), inst, src, "/etc/my-app/app.toml"); err != nil {
		t.Fatal(err)
	}

	if inst.destDir != "/etc/my-app" {
		t.Errorf("destDir = %q, want /etc/my-app", inst.destDir)
	}
	if got := inst.entries["app.toml"]; got != "color = \"red\"\n" {
		t.Errorf("content = %q", got)
	}
	if mode := inst.modes["app.toml"]; mode.Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", mode.Perm())
	}
}

func TestCopyIntoInstanceTrailingSeparator(t *testing.T) {
	src := filepath.Join(t.TempDir(), "conf")
	if err := os.WriteFile(src, []byte("color = red\n"), 0644); err != nil {
		t.Fatal(err)
	}

	inst := &captureInstance{}
	if err := copyIntoInstance(context.Background(), inst, src, "/etc/"); err != nil {
		t.Fatal(err)
	}

	// "/etc/" names the directory to copy into; the file keeps its name.
	if inst.destDir != "/etc" {
		t.Errorf("destDir = %q, want /etc", inst.destDir)
	}
	if got := inst.entries["conf"]; got != "color = red\n" {
		t.Errorf("entries = %v, want conf in /etc", inst.entries)
	}
}

func TestCopyIntoInstanceDirectoryTrailingSeparator(t *testing.T) {
	srcDir := filepath.Join(t.TempDir(), "assets")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "index.html"), []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	inst := &captureInstance{}
	if err := copyIntoInstance(context.Background(), inst, srcDir, "/srv/"); err != nil {
		t.Fatal(err)
	}

	if inst.destDir != "/srv" {
		t.Errorf("destDir = %q, want /srv", inst.destDir)
	}
	if got := inst.entries["assets/index.html"]; got != "<html></html>" {
		t.Errorf("entries = %v, want assets/index.html in /srv", inst.entries)
	}
}

func TestCopyIntoInstanceDirectory(t *testing.T) {
	srcDir := filepath.Join(t.TempDir(), "assets")
	if err := os.MkdirAll(filepath.Join(srcDir, "css"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.html":   "<html></html>",
		"css/site.css": "body {}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	inst := &captureInstance{}
	if err := copyIntoInstance(context.Background(), inst, srcDir, "/srv/www"); err != nil {
		t.Fatal(err)
	}

	if inst.destDir != "/srv" {
		t.Errorf("destDir = %q, want /srv", inst.destDir)
	}
	for name, want := range map[string]string{
		"www/index.html":   "<html></html>",
		"www/css/site.css": "body {}",
	} {
		if got := inst.entries[name]; got != want {
			t.Errorf("entry %q = %q, want %q", name, got, want)
		}
	}
	if mode, ok := inst.modes["www"]; !ok || !mode.IsDir() {
		t.Errorf("www dir entry missing or not a dir: %v", mode)
	}
}

func TestCopyIntoInstanceMissingSource(t *testing.T) {
	inst := &captureInstance{}
	err := copyIntoInstance(context.Background(), inst, filepath.Join(t.TempDir(), "gone"), "/etc/x")
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
