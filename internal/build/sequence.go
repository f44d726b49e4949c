package build

import (
	"fmt"
)

// The strictly ordered list of operations for one pipeline run.
//
// The order is a user contract, never reordered or parallelized: later
// operations may depend on filesystem changes made by earlier ones.
type Sequence []Operation

// Builds the operation sequence for a run.
//
// ops holds the patch and copy operations in the literal order their
// originating flags appeared on the command line. Run-before commands are
// pinned ahead of the first of them and run-after commands behind the
// last, each group keeping its own relative order.
//
// Every [ApplyPatch] must carry a workdir; the resolver guarantees this,
// so a violation here indicates a wiring bug, not bad user input.
func NewSequence(ops []Operation, runBefore, runAfter []RunCommand) (Sequence, error) {
	seq := make(Sequence, 0, len(ops)+len(runBefore)+len(runAfter))

	for _, cmd := range runBefore {
		seq = append(seq, cmd)
	}
	seq = append(seq, ops...)
	for _, cmd := range runAfter {
		seq = append(seq, cmd)
	}

	for i, op := range seq {
		if err := validateOperation(op); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Kind(), err)
		}
	}

	return seq, nil
}

// Rejects operations with empty payloads.
func validateOperation(op Operation) error {
	switch op := op.(type) {
	case ApplyPatch:
		if op.Patch.Workdir == "" {
			return fmt.Errorf("patch %q has no workdir", op.Patch.Name)
		}
		if len(op.Patch.Source) == 0 {
			return fmt.Errorf("patch %q has no content", op.Patch.Name)
		}
	case CopyFile:
		if op.Src == "" || op.Dst == "" {
			return fmt.Errorf("copy needs a source and a destination")
		}
	case RunCommand:
		if len(op.Argv) == 0 {
			return fmt.Errorf("run command is empty")
		}
	}
	return nil
}
