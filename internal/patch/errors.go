package patch

import (
	"errors"
	"fmt"
)

var ErrResolution = errors.New("patch resolution failed")

// Describes why a patch source could not be resolved.
//
// Source identifies the offending input: the patch file path for file
// sources, or "repo (ref)" for git sources.
type ResolutionError struct {
	Source string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrResolution, e.Source, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Allows errors.Is(err, ErrResolution) to match any resolution failure.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}
