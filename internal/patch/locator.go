package patch

import (
	"fmt"
)

const (
	defaultRepoPath = "."
	defaultRef      = "HEAD"
)

// Identifies a git work tree, a ref or ref range to diff against, and the
// directory inside the image where the resulting patch is rooted.
type GitLocator struct {
	RepoPath string // Path to the git work tree on the host.
	Ref      string // Single ref (diff vs. working tree) or range "a..b".
	Workdir  string // Directory inside the image the diff applies under.
}

// Parses a git locator from 1-3 positional tokens.
//
// The workdir is always the rightmost token. With two tokens the first is
// the ref; with three the first two are repo path and ref. Missing tokens
// default to repo path "." and ref "HEAD".
func ParseGitLocator(tokens []string) (GitLocator, error) {
	loc := GitLocator{
		RepoPath: defaultRepoPath,
		Ref:      defaultRef,
	}

	switch len(tokens) {
	case 1:
		loc.Workdir = tokens[0]
	case 2:
		loc.Ref = tokens[0]
		loc.Workdir = tokens[1]
	case 3:
		loc.RepoPath = tokens[0]
		loc.Ref = tokens[1]
		loc.Workdir = tokens[2]
	default:
		return GitLocator{}, fmt.Errorf("git locator takes 1-3 arguments ([repo] [ref] <workdir>), got %d", len(tokens))
	}

	if loc.Workdir == "" {
		return GitLocator{}, fmt.Errorf("git locator workdir must not be empty")
	}

	return loc, nil
}

// Returns a "repo (ref)" label for logs and error messages.
func (l GitLocator) String() string {
	return fmt.Sprintf("%s (%s)", l.RepoPath, l.Ref)
}
