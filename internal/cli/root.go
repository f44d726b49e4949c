package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/imgpatch/internal"
)

// Represents the imgpatch command.
//
// The --patch, --git, and --copy fields are never filled by kong; their
// token groups are extracted from the raw arguments by extractSourceArgs
// before parsing. The fields exist so the flags appear in the usage text.
var RootCmd struct {
	BaseImage  string   `short:"b" required:"" help:"Image to base the patched image onto. Must include a tag." placeholder:"REF"`
	Repository string   `short:"r" required:"" help:"Name of the patched image." placeholder:"NAME"`
	Tags       []string `short:"t" help:"Tags to assign to the patched image. Defaults to \"latest\"." placeholder:"TAG"`
	TagTime    bool     `help:"Additionally tag the image with the current UTC time."`

	Patch []string `short:"p" help:"Apply pregenerated patch files: <file>... <workdir>. Repeatable; order relative to --git and --copy is preserved." placeholder:"ARG"`
	Git   []string `short:"g" help:"Generate and apply a patch from git: [repo] [ref] <workdir>. Repo defaults to \".\", ref to HEAD. Repeatable." placeholder:"ARG"`
	Copy  []string `help:"Copy a host file or directory into the image: <src> <dst>. Repeatable." placeholder:"ARG"`

	RunBefore []string `short:"c" help:"Command to run inside the image before patching (via sh -c). Repeatable." placeholder:"COMMAND"`
	RunAfter  []string `help:"Command to run inside the image after patching (via sh -c). Repeatable." placeholder:"COMMAND"`
	Env       []string `short:"e" help:"Environment variable for --run-before and --run-after commands. Repeatable." placeholder:"KEY=VALUE"`

	ImageWorkdir string `help:"Workdir to set in the final image. Defaults to the base image's." placeholder:"PATH"`
	ImageUser    string `help:"User to set in the final image. Defaults to the base image's." placeholder:"USER"`

	Address   string `help:"Containerd socket address." env:"IMGPATCH_ADDRESS" placeholder:"PATH"`
	Namespace string `help:"Containerd namespace." env:"IMGPATCH_NAMESPACE" default:"imgpatch"`

	Quiet   bool             `short:"q" help:"Suppress informational output."`
	Verbose bool             `short:"v" help:"Enable verbose output."`
	Debug   bool             `short:"d" help:"Enable debug output."`
	Version kong.VersionFlag `help:"Show version information."`
}

// Parses arguments, configures logging, and runs the pipeline.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sources, rest, err := extractSourceArgs(os.Args[1:])
	if err != nil {
		return err
	}

	parser, err := kong.New(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Patches a container image.\n\nApplies patches, file copies, and commands to a base image and commits the result as a new image."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
	)
	if err != nil {
		return err
	}

	if _, err := parser.Parse(rest); err != nil {
		return err
	}

	configureLogger()

	return run(ctx, sources)
}

// Reconfigures the global logger based on CLI flags.
//
// Flags are layered over the build-time defaults set via linker flags.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	internal.SetDebug(debug)
	internal.SetQuiet(quiet)
	internal.SetVerbose(verbose)

	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	if debug || verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(handler).WithGroup(internal.Name))
}
