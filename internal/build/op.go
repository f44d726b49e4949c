package build

import (
	"github.com/cruciblehq/imgpatch/internal/patch"
)

// A single step of a pipeline run.
//
// Operation is a closed variant: the only implementations are [ApplyPatch],
// [CopyFile], and [RunCommand], so the session executor can dispatch
// exhaustively. Adding a kind means adding a case to the executor.
type Operation interface {
	// Short operation kind for logs and error messages.
	Kind() string

	isOperation()
}

// Applies a resolved patch inside the instance, rooted at its workdir.
type ApplyPatch struct {
	Patch patch.Patch
}

// Copies a host path into the instance.
type CopyFile struct {
	Src string // Host path (file or directory).
	Dst string // Absolute destination path inside the instance.
}

// Executes an argv inside the instance.
type RunCommand struct {
	Argv []string
}

func (ApplyPatch) Kind() string { return "patch" }
func (CopyFile) Kind() string   { return "copy" }
func (RunCommand) Kind() string { return "run" }

func (ApplyPatch) isOperation() {}
func (CopyFile) isOperation()   {}
func (RunCommand) isOperation() {}
