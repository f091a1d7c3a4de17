// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package quell

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/matt-FFFFFF/quell/internal/config"
	"github.com/matt-FFFFFF/quell/internal/console"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/matt-FFFFFF/quell/internal/runner"
)

// childEnvVar marks the re-executed test binary that Main filters.
const childEnvVar = "QUELL_CHILD"

// Runner runs a test binary and returns its exit code. *testing.M satisfies it.
type Runner interface {
	Run() int
}

// Writer is the process-wide console returned by Stdout.
type Writer interface {
	io.Writer
	// Flush flushes the active sink if it buffers output.
	Flush() error
	// Fd returns the descriptor behind the active sink, or ^uintptr(0).
	Fd() uintptr
}

// executable locates the running test binary. Replaced in tests.
var executable = os.Executable

var (
	stdOnce    sync.Once
	stdConsole *console.Console
)

// newStdConsole builds the process-wide console. Replaced in tests.
var newStdConsole = func(ctx context.Context) *console.Console {
	return console.New(os.Stdout, patternsFromWorkingDir(ctx))
}

func std(ctx context.Context) *console.Console {
	stdOnce.Do(func() {
		stdConsole = newStdConsole(ctx)
	})

	return stdConsole
}

// patternsFromWorkingDir loads the project config, falling back to the
// default noise table when it is missing or invalid.
func patternsFromWorkingDir(ctx context.Context) noise.Set {
	wd, err := os.Getwd()
	if err != nil {
		ctxlog.Warn(ctx, "cannot determine working directory, using default patterns", "error", err)
		return noise.Default()
	}

	cfg, err := config.Load(ctx, wd)
	if err != nil {
		ctxlog.Warn(ctx, "cannot load config, using default patterns", "error", err)
		return noise.Default()
	}

	set, err := cfg.PatternSet()
	if err != nil {
		ctxlog.Warn(ctx, "invalid patterns in config, using default patterns", "source", cfg.Source, "error", err)
		return noise.Default()
	}

	return set
}

// OnRunStart installs the output filter on the process-wide console.
// Calling it again before OnRunEnd has no effect.
func OnRunStart(ctx context.Context) {
	std(ctx).OnRunStart(ctx)
}

// OnRunEnd flushes the output filter and restores the original sink.
// Calling it without a filter installed has no effect.
func OnRunEnd(ctx context.Context) {
	std(ctx).OnRunEnd(ctx)
}

// Stdout returns a writer that always targets the console's active sink,
// filtered between OnRunStart and OnRunEnd.
func Stdout() Writer {
	return std(ctxlog.New(context.Background(), ctxlog.DefaultLogger))
}

// Main filters everything a test binary writes to stdout and returns its exit
// code unchanged.
//
//	func TestMain(m *testing.M) {
//		os.Exit(quell.Main(m))
//	}
//
// The binary is run again as a child process with the same arguments, and
// the child's stdout is filtered by this process. Output written before a
// panic, a test timeout or os.Exit in the child is therefore never lost. In
// the child, Main just runs m.
//
// If the child cannot be started, m runs in this process with os.Stdout
// redirected through the filter.
func Main(m Runner) int {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	if os.Getenv(childEnvVar) != "" {
		return m.Run()
	}

	c := std(ctx)

	exe, err := executable()
	if err != nil {
		ctxlog.Warn(ctx, "cannot locate test binary, filtering in process", "error", err)
		return runFiltered(ctx, c, m)
	}

	code, err := runChild(ctx, c, &runner.Command{
		Path: exe,
		Args: os.Args[1:],
		Env:  map[string]string{childEnvVar: "1"},
	})

	switch {
	case err == nil:
	case errors.Is(err, runner.ErrCommandNotFound),
		errors.Is(err, runner.ErrFailedToCreatePipe),
		errors.Is(err, runner.ErrCouldNotStartProcess):
		ctxlog.Warn(ctx, "cannot start test binary, filtering in process", "error", err)
		return runFiltered(ctx, c, m)
	default:
		ctxlog.Error(ctx, "test binary did not finish cleanly", "error", err)
	}

	if code < 0 {
		return 1
	}

	return code
}

// runChild runs cmd with its stdout passing through the filter on c.
// The child's stderr goes to os.Stderr unchanged.
func runChild(ctx context.Context, c *console.Console, cmd *runner.Command) (int, error) {
	code := -1

	err := c.Scope(ctx, func(ctx context.Context, out io.Writer) error {
		var err error

		code, err = cmd.Run(ctx, out, os.Stderr)

		return err
	})

	return code, err
}

// runFiltered runs m in this process with os.Stdout redirected through c.
// Output still buffered when the process exits abruptly is lost.
func runFiltered(ctx context.Context, c *console.Console, m Runner) int {
	code := 0

	_ = c.Scope(ctx, func(ctx context.Context, out io.Writer) error {
		restore, err := console.RedirectStdout(ctx, out)
		if err != nil {
			ctxlog.Warn(ctx, "cannot redirect stdout, output is not filtered", "error", err)

			code = m.Run()

			return nil
		}

		defer func() {
			if err := restore(); err != nil {
				ctxlog.Warn(ctx, "failed to write filtered output", "error", err)
			}
		}()

		code = m.Run()

		return nil
	})

	return code
}
