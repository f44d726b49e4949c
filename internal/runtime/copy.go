package runtime

import (
	"context"
	"fmt"
	"io"
)

// Creates a directory inside the instance, including parents.
func (c *Container) MkdirAll(ctx context.Context, path string) error {
	return c.mustExec(ctx, "mkdir", nil, nil, "", "mkdir", "-p", path)
}

// Copies a tar stream into the instance's filesystem.
//
// The contents of r are extracted into destDir by piping them to "tar xf - -C
// destDir" inside the instance. Tar preserves permissions and directory
// structure, so copied trees arrive exactly as they exist on the host.
func (c *Container) CopyTo(ctx context.Context, r io.Reader, destDir string) error {
	return c.mustExec(ctx, "tar extract", r, nil, "", "tar", "xf", "-", "-C", destDir)
}

// Applies a unified diff inside the instance.
//
// The diff is streamed to "git apply -p1 -" with the working directory set
// to workdir, so hunks are rooted there with the standard -p1 strip level.
// git apply matches context exactly (no fuzz); a context mismatch or a
// missing target file surfaces as a non-zero exit.
func (c *Container) ApplyPatch(ctx context.Context, diff io.Reader, workdir string) error {
	return c.mustExec(ctx, "git apply", diff, nil, workdir, "git", "apply", "-p1", "-")
}

// Helper method that runs a command inside the instance, returning an error
// that includes desc if the process exits with a non-zero code.
func (c *Container) mustExec(ctx context.Context, desc string, stdin io.Reader, stdout io.Writer, workdir string, args ...string) error {
	exitCode, stderr, err := c.execCommand(ctx, stdin, stdout, workdir, args...)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return fmt.Errorf("%w: %s failed with exit code %d (%s)", ErrRuntime, desc, exitCode, stderr)
	}
	return nil
}
