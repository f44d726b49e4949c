package build

import (
	"fmt"
	"strings"
)

// A patch that did not apply cleanly (context mismatch, missing target).
type ApplyError struct {
	Index   int
	Name    string
	Workdir string
	Err     error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("operation %d: patch %q does not apply at %s: %s", e.Index, e.Name, e.Workdir, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// A copy whose source could not be read or destination could not be written.
type CopyError struct {
	Index int
	Src   string
	Dst   string
	Err   error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("operation %d: copy %s to %s: %s", e.Index, e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// An in-instance command that exited non-zero or could not be started.
//
// ExitCode and Output are meaningful when Err is nil; otherwise the command
// never ran to completion.
type ExecError struct {
	Index    int
	Argv     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *ExecError) Error() string {
	cmd := strings.Join(e.Argv, " ")
	if e.Err != nil {
		return fmt.Sprintf("operation %d: command %q: %s", e.Index, cmd, e.Err)
	}
	return fmt.Sprintf("operation %d: command %q exited with code %d: %s", e.Index, cmd, e.ExitCode, strings.TrimSpace(e.Output))
}

func (e *ExecError) Unwrap() error { return e.Err }

// A commit that failed fully or partially.
//
// Tagged lists the refs that exist despite the failure; a non-empty Tagged
// means the run is a partial success, not a plain failure: the image was
// created and those refs point at it.
type CommitError struct {
	Tagged []string
	Failed []string
	Err    error
}

func (e *CommitError) Error() string {
	if len(e.Tagged) == 0 {
		return fmt.Sprintf("commit failed: %s", e.Err)
	}
	return fmt.Sprintf("commit partially succeeded (tagged %s; failed %s): %s",
		strings.Join(e.Tagged, ", "), strings.Join(e.Failed, ", "), e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
