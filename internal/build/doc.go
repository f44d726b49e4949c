// Package build executes ordered operation sequences against a writable
// image instance and commits the result.
//
// An operation sequence is the strictly ordered list of patch, copy, and
// run steps for one pipeline run. The sequence is built once, reflecting
// the literal command-line order of the originating flags, with run-before
// commands pinned ahead of the first patch/copy operation and run-after
// commands pinned behind the last.
//
// A session drives the sequence against an instance acquired from an
// [Engine]. Execution is strictly sequential and fail-fast: the first
// failing operation discards the run, the instance is destroyed on every
// exit path, and nothing is committed unless every operation succeeded.
// On full success the instance's filesystem state is committed to the
// image store under the requested tags.
//
// Example usage:
//
//	seq, err := build.NewSequence(ops, before, after)
//	if err != nil {
//	    return err
//	}
//	result, err := build.Run(ctx, engine, seq, build.Options{
//	    BaseImage:  "foo:latest",
//	    InstanceID: "imgpatch-bar",
//	    Commit:     build.NewCommitRequest("bar", []string{"special-fix"}),
//	})
package build
