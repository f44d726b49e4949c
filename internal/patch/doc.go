// Package patch resolves patch sources into applicable diffs.
//
// A patch is a unified diff plus the directory inside the image it is
// rooted at. Sources are either pregenerated patch files read from disk
// or diffs produced from a git work tree via a [GitLocator]. Git diffs
// are generated by invoking the git CLI, so ref resolution and range
// semantics match what `git diff` does on the command line.
//
// Resolution is strict: a missing or empty patch file, a path that is not
// a git work tree, an unresolvable ref, and an empty diff are all errors.
// An empty diff is never silently skipped, since the caller asked for a
// change that does not exist.
package patch
