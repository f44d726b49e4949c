package build

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/cruciblehq/imgpatch/internal/runtime"
)

// A writable instance of the base image.
//
// *runtime.Container satisfies this; tests substitute a fake. Accepting the
// interface here keeps the session free of any process-wide runtime client.
type Instance interface {
	MkdirAll(ctx context.Context, path string) error
	ApplyPatch(ctx context.Context, diff io.Reader, workdir string) error
	CopyTo(ctx context.Context, r io.Reader, destDir string) error
	Exec(ctx context.Context, argv, env []string) (*runtime.ExecResult, error)
	Stop(ctx context.Context) error
	Commit(ctx context.Context, opts runtime.CommitOptions) (*runtime.CommitResult, error)
	Destroy(ctx context.Context)
}

// Materializes base images into writable instances.
type Engine interface {
	StartInstance(ctx context.Context, image, id string) (Instance, error)
}

// Controls one pipeline run.
type Options struct {
	BaseImage  string        // Base image ref to patch.
	InstanceID string        // Containerd ID for the transient instance.
	Env        []string      // KEY=VALUE entries merged into every run command's environment.
	Commit     CommitRequest // Image to create on success.
}

// Returned after a fully committed run.
type Result struct {
	Digest string   // Digest of the committed image target.
	Tags   []string // Fully-qualified refs created.
}

// Lifecycle of a session.
type sessionState int

const (
	stateCreated sessionState = iota
	stateRunning
	stateCommitted
	stateDiscarded
)

// One pipeline run: a transient instance plus its execution state.
//
// The session moves Created -> Running -> Committed on full success, or
// Running -> Discarded on the first failure. The instance is destroyed on
// every exit path.
type session struct {
	engine Engine
	opts   Options
	state  sessionState
	index  int // Index of the operation currently executing.
}

// Executes the sequence against a fresh instance of the base image and
// commits the result.
//
// Operations run strictly sequentially in sequence order; no operation
// begins until the previous one completed. The first failure aborts the
// run with an error identifying the failing index, and nothing is
// committed. Cancelling ctx aborts between operations with the same
// cleanup guarantees as a failure.
func Run(ctx context.Context, engine Engine, seq Sequence, opts Options) (*Result, error) {
	slog.Info("executing pipeline",
		"base", opts.BaseImage,
		"repository", opts.Commit.Repository,
		"tags", opts.Commit.Tags,
		"operations", len(seq),
	)

	s := &session{engine: engine, opts: opts}
	return s.run(ctx, seq)
}

func (s *session) run(ctx context.Context, seq Sequence) (*Result, error) {
	inst, err := s.engine.StartInstance(ctx, s.opts.BaseImage, s.opts.InstanceID)
	if err != nil {
		s.state = stateDiscarded
		return nil, err
	}

	// Teardown must run even when ctx was cancelled mid-pipeline; a
	// cancelled context would make the containerd delete calls fail and
	// leak the instance.
	defer inst.Destroy(context.WithoutCancel(ctx))

	s.state = stateRunning

	for i, op := range seq {
		s.index = i

		if err := ctx.Err(); err != nil {
			s.state = stateDiscarded
			return nil, err
		}

		if err := s.execute(ctx, inst, i, op); err != nil {
			s.state = stateDiscarded
			return nil, err
		}
	}

	result, err := s.commit(ctx, inst)
	if err != nil {
		s.state = stateDiscarded
		return nil, err
	}

	s.state = stateCommitted
	return result, nil
}

// Executes a single operation, returning a taxonomy error on failure.
func (s *session) execute(ctx context.Context, inst Instance, index int, op Operation) error {
	switch op := op.(type) {
	case ApplyPatch:
		slog.Info("applying patch", "index", index, "name", op.Patch.Name, "workdir", op.Patch.Workdir)

		// The workdir is created if missing, mirroring Dockerfile WORKDIR.
		if err := inst.MkdirAll(ctx, op.Patch.Workdir); err != nil {
			return &ApplyError{Index: index, Name: op.Patch.Name, Workdir: op.Patch.Workdir, Err: err}
		}
		if err := inst.ApplyPatch(ctx, bytes.NewReader(op.Patch.Source), op.Patch.Workdir); err != nil {
			return &ApplyError{Index: index, Name: op.Patch.Name, Workdir: op.Patch.Workdir, Err: err}
		}

	case CopyFile:
		slog.Info("copying", "index", index, "src", op.Src, "dst", op.Dst)

		if err := copyIntoInstance(ctx, inst, op.Src, op.Dst); err != nil {
			return &CopyError{Index: index, Src: op.Src, Dst: op.Dst, Err: err}
		}

	case RunCommand:
		slog.Info("running command", "index", index, "command", strings.Join(op.Argv, " "))

		result, err := inst.Exec(ctx, op.Argv, s.opts.Env)
		if err != nil {
			return &ExecError{Index: index, Argv: op.Argv, Err: err}
		}
		// Shell pipelines often print their diagnostics to stdout, so the
		// error carries both streams.
		if result.ExitCode != 0 {
			return &ExecError{Index: index, Argv: op.Argv, ExitCode: result.ExitCode, Output: result.Stdout + result.Stderr}
		}
	}

	return nil
}

// Stops the instance and commits its filesystem state.
//
// The task is stopped first so the snapshot is quiescent when the diff is
// taken. A partial tag failure surfaces as a [CommitError] that names both
// the created and the failed refs.
func (s *session) commit(ctx context.Context, inst Instance) (*Result, error) {
	if err := inst.Stop(ctx); err != nil {
		return nil, &CommitError{Err: err}
	}

	result, err := inst.Commit(ctx, runtime.CommitOptions{
		Repository: s.opts.Commit.Repository,
		Tags:       s.opts.Commit.Tags,
		User:       s.opts.Commit.User,
		Workdir:    s.opts.Commit.Workdir,
	})
	if err != nil {
		cerr := &CommitError{Err: err}
		if result != nil {
			cerr.Tagged = result.Tagged
			for _, f := range result.Failed {
				cerr.Failed = append(cerr.Failed, f.Ref)
			}
		}
		return nil, cerr
	}

	return &Result{
		Digest: result.Digest.String(),
		Tags:   result.Tagged,
	}, nil
}
