package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cruciblehq/imgpatch/internal"
	"github.com/cruciblehq/imgpatch/internal/build"
	"github.com/cruciblehq/imgpatch/internal/patch"
	"github.com/cruciblehq/imgpatch/internal/paths"
	"github.com/cruciblehq/imgpatch/internal/runtime"
)

// Shell used to wrap --run-before and --run-after commands.
const runShell = "/bin/sh"

// Timestamp layout for --tag-time tags.
const timeTagLayout = "20060102150405"

// Resolves all patch sources, builds the operation sequence, and executes
// it against the container runtime.
func run(ctx context.Context, sources []sourceArg) error {
	if err := checkRequest(sources); err != nil {
		return err
	}

	ops, err := resolveSources(ctx, sources)
	if err != nil {
		return err
	}

	seq, err := build.NewSequence(ops, shellCommands(RootCmd.RunBefore), shellCommands(RootCmd.RunAfter))
	if err != nil {
		return err
	}

	commit := build.NewCommitRequest(RootCmd.Repository, requestedTags())
	commit.User = RootCmd.ImageUser
	commit.Workdir = RootCmd.ImageWorkdir

	rt, err := runtime.New(address(), RootCmd.Namespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := build.Run(ctx, engine{rt: rt}, seq, build.Options{
		BaseImage:  RootCmd.BaseImage,
		InstanceID: instanceID(RootCmd.Repository),
		Env:        RootCmd.Env,
		Commit:     commit,
	})
	if err != nil {
		return err
	}

	slog.Info("image committed", "digest", result.Digest)

	fmt.Println("Image successfully patched:")
	for _, ref := range result.Tags {
		fmt.Println(" -", ref)
	}

	return nil
}

// Rejects runs with nothing to do or an untagged base image.
func checkRequest(sources []sourceArg) error {
	if len(sources) == 0 && len(RootCmd.RunBefore) == 0 && len(RootCmd.RunAfter) == 0 {
		return fmt.Errorf("neither --patch, --git, --copy, --run-before, nor --run-after specified - nothing to do")
	}

	base := RootCmd.BaseImage
	if strings.LastIndex(base, ":") <= strings.LastIndex(base, "/") {
		return fmt.Errorf("base image %q must include a tag", base)
	}

	return nil
}

// Turns the ordered source flag groups into patch and copy operations.
//
// The operation order equals the literal command-line order of the flags.
// A --patch group with several files yields one operation per file, in
// token order, all sharing the group's workdir.
func resolveSources(ctx context.Context, sources []sourceArg) ([]build.Operation, error) {
	var ops []build.Operation

	for _, source := range sources {
		switch source.kind {
		case patchSource:
			workdir := source.tokens[len(source.tokens)-1]
			for _, file := range source.tokens[:len(source.tokens)-1] {
				p, err := patch.FromFile(file, workdir)
				if err != nil {
					return nil, err
				}
				ops = append(ops, build.ApplyPatch{Patch: *p})
			}

		case gitSource:
			loc, err := patch.ParseGitLocator(source.tokens)
			if err != nil {
				return nil, err
			}
			p, err := patch.FromGit(ctx, loc)
			if err != nil {
				return nil, err
			}
			ops = append(ops, build.ApplyPatch{Patch: *p})

		case copySource:
			ops = append(ops, build.CopyFile{Src: source.tokens[0], Dst: source.tokens[1]})
		}
	}

	return ops, nil
}

// Wraps shell command strings as run operations.
func shellCommands(commands []string) []build.RunCommand {
	ops := make([]build.RunCommand, 0, len(commands))
	for _, cmd := range commands {
		ops = append(ops, build.RunCommand{Argv: []string{runShell, "-c", cmd}})
	}
	return ops
}

// Returns the requested tags, with the timestamp tag appended when
// --tag-time is set.
func requestedTags() []string {
	tags := RootCmd.Tags
	if RootCmd.TagTime {
		tags = append(tags, time.Now().UTC().Format(timeTagLayout))
	}
	return tags
}

// Returns the containerd socket address, preferring the flag.
func address() string {
	if RootCmd.Address != "" {
		return RootCmd.Address
	}
	return paths.ContainerdSocket()
}

// Returns a containerd container ID scoped to the target repository.
func instanceID(repository string) string {
	slug := strings.NewReplacer("/", "-", ":", "-", ".", "-").Replace(repository)
	return internal.Name + "-" + slug
}

// Adapts the containerd runtime to the build engine interface.
type engine struct {
	rt *runtime.Runtime
}

func (e engine) StartInstance(ctx context.Context, image, id string) (build.Instance, error) {
	return e.rt.StartInstance(ctx, image, id)
}
