package cli

import (
	"errors"

	"github.com/cruciblehq/imgpatch/internal/build"
	"github.com/cruciblehq/imgpatch/internal/patch"
)

// Process exit codes, one per failure class.
const (
	ExitOK         = 0
	ExitFailure    = 1 // Usage errors and anything not covered below.
	ExitResolution = 2 // A patch source could not be resolved.
	ExitApply      = 3 // A patch did not apply cleanly.
	ExitExec       = 4 // An in-instance command failed.
	ExitCopy       = 5 // A copy could not be performed.
	ExitCommit     = 6 // The image or one of its tags could not be created.
)

// Maps a pipeline error to its process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, patch.ErrResolution) {
		return ExitResolution
	}

	var (
		applyErr  *build.ApplyError
		execErr   *build.ExecError
		copyErr   *build.CopyError
		commitErr *build.CommitError
	)
	switch {
	case errors.As(err, &applyErr):
		return ExitApply
	case errors.As(err, &execErr):
		return ExitExec
	case errors.As(err, &copyErr):
		return ExitCopy
	case errors.As(err, &commitErr):
		return ExitCommit
	}

	return ExitFailure
}
