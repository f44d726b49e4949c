package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cruciblehq/imgpatch/internal/build"
	"github.com/cruciblehq/imgpatch/internal/patch"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil",
			err:  nil,
			want: ExitOK,
		},
		{
			name: "generic",
			err:  errors.New("boom"),
			want: ExitFailure,
		},
		{
			name: "resolution",
			err:  &patch.ResolutionError{Source: "fix.patch", Err: errors.New("empty")},
			want: ExitResolution,
		},
		{
			name: "wrapped resolution",
			err:  fmt.Errorf("resolving sources: %w", &patch.ResolutionError{Source: "x", Err: errors.New("no such file")}),
			want: ExitResolution,
		},
		{
			name: "apply",
			err:  &build.ApplyError{Index: 1, Name: "fix.patch", Err: errors.New("rejected")},
			want: ExitApply,
		},
		{
			name: "exec",
			err:  &build.ExecError{Index: 0, Argv: []string{"sh", "-c", "x"}, ExitCode: 1},
			want: ExitExec,
		},
		{
			name: "copy",
			err:  &build.CopyError{Index: 2, Src: "a", Dst: "b", Err: errors.New("missing")},
			want: ExitCopy,
		},
		{
			name: "commit",
			err:  &build.CommitError{Err: errors.New("store full")},
			want: ExitCommit,
		},
		{
			name: "wrapped commit",
			err:  fmt.Errorf("pipeline: %w", &build.CommitError{Err: errors.New("x")}),
			want: ExitCommit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
