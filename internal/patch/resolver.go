package patch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// A resolved patch: a unified diff plus the directory inside the image it
// must be applied under (strip level -p1).
type Patch struct {
	Name    string // Short label for logs and error messages.
	Source  []byte // Unified diff content.
	Workdir string // Directory inside the image the diff is rooted at.
}

// Resolves a pregenerated patch file.
//
// The file is read verbatim. A missing, unreadable, or empty file is a
// [ResolutionError].
func FromFile(path, workdir string) (*Patch, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResolutionError{Source: path, Err: err}
	}

	if len(bytes.TrimSpace(source)) == 0 {
		return nil, &ResolutionError{Source: path, Err: errors.New("patch file is empty")}
	}

	slog.Debug("resolved patch file", "path", path, "workdir", workdir, "bytes", len(source))

	return &Patch{
		Name:    filepath.Base(path),
		Source:  source,
		Workdir: workdir,
	}, nil
}

// Resolves a git locator into a patch.
//
// The repo path must be inside a git work tree. A single ref produces the
// diff between that ref and the working tree (staged and unstaged changes
// included); a range "a..b" produces the diff between the two endpoints.
// The diff is restricted to files under the repo path. An unresolvable
// ref or an empty diff is a [ResolutionError].
func FromGit(ctx context.Context, loc GitLocator) (*Patch, error) {
	if err := checkWorkTree(ctx, loc.RepoPath); err != nil {
		return nil, &ResolutionError{Source: loc.String(), Err: err}
	}

	diff, err := gitOutput(ctx, loc.RepoPath, "diff", loc.Ref, "--", ".")
	if err != nil {
		return nil, &ResolutionError{Source: loc.String(), Err: err}
	}

	if len(bytes.TrimSpace(diff)) == 0 {
		return nil, &ResolutionError{Source: loc.String(), Err: fmt.Errorf("diff for ref %q is empty", loc.Ref)}
	}

	slog.Debug("resolved git diff", "repo", loc.RepoPath, "ref", loc.Ref, "workdir", loc.Workdir, "bytes", len(diff))

	return &Patch{
		Name:    patchName(loc.Ref),
		Source:  diff,
		Workdir: loc.Workdir,
	}, nil
}

// Verifies that the given path lies inside a git work tree.
func checkWorkTree(ctx context.Context, repoPath string) error {
	if _, err := os.Stat(repoPath); err != nil {
		return err
	}

	if _, err := gitOutput(ctx, repoPath, "rev-parse", "--is-inside-work-tree"); err != nil {
		return fmt.Errorf("not a git work tree: %w", err)
	}
	return nil
}

// Runs a git subcommand with the work tree selected via -C and returns its
// standard output. Failures carry git's stderr.
func gitOutput(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoPath}, args...)...)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// Derives a short patch label from a ref.
//
// Slashes are flattened so the label stays path-safe. A single ref is
// suffixed with "-HEAD+staged" since the diff includes working-tree
// changes; a range is used as-is.
func patchName(ref string) string {
	name := strings.ReplaceAll(ref, "/", "_")
	if !strings.Contains(name, "..") {
		name += "-HEAD+staged"
	}
	return name
}
