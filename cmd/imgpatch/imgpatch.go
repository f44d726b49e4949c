package main

import (
	"log/slog"
	"os"

	"github.com/cruciblehq/imgpatch/internal"
	"github.com/cruciblehq/imgpatch/internal/cli"
	"github.com/joho/godotenv"
)

// The entry point for the imgpatch CLI.
//
// Loads the optional .env file, initializes logging, and executes the
// pipeline. On failure the exit code identifies the failing stage.
func main() {
	// A missing .env file is fine; it only feeds the IMGPATCH_* env flags.
	godotenv.Load()

	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("imgpatch is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(cli.ExitCode(err))
	}
}

// Creates a logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})
	return slog.New(handler).WithGroup(internal.Name)
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
