// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/quell/cmd/quell/cliconfig"
	"github.com/matt-FFFFFF/quell/internal/console"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/outputfilter"
	"github.com/matt-FFFFFF/quell/internal/runner"
	"github.com/urfave/cli/v3"
)

const (
	stderrFlag = "stderr"
	cwdFlag    = "cwd"
	cliExitStr = ""
)

// RunCmd runs a test command with its output passed through the filter.
var RunCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a test command and filter its output",
		ArgsUsage: "-- COMMAND [ARGS...]",
		Description: `Run a test command with its standard output passed through the noise filter.
Timing annotations, session banners and cache or root directory lines are dropped
and runs of blank lines collapse to one. Everything else is passed through unchanged.

The exit code of quell is the exit code of the command.
Use -- to separate quell's flags from the command's own.
`,
		Flags: []cli.Flag{
			cliconfig.Flag(),
			&cli.BoolFlag{
				Name:        stderrFlag,
				Usage:       "Also filter the command's standard error",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.StringFlag{
				Name:      cwdFlag,
				Usage:     "Run the command in this directory",
				TakesFile: true,
				OnlyOnce:  true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		logger.Error("Please specify the command to run after --, for example: quell run -- go test ./...")
		return cli.Exit(cliExitStr, 1)
	}

	cfg, set, err := cliconfig.Resolve(ctx, cmd)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	stdout := cmd.Root().Writer
	stderr := cmd.Root().ErrWriter

	c := &runner.Command{
		Path: args[0],
		Args: args[1:],
		Cwd:  cmd.String(cwdFlag),
	}

	var code int

	runErr := console.New(stdout, set).Scope(ctx, func(ctx context.Context, out io.Writer) error {
		errOut := stderr

		if cmd.Bool(stderrFlag) || cfg.FilterStderr {
			f := outputfilter.New(stderr, set)
			defer f.Flush() //nolint:errcheck

			errOut = f
		}

		var err error

		code, err = c.Run(ctx, out, errOut)

		return err
	})

	switch {
	case runErr == nil:
	case errors.Is(runErr, runner.ErrOutput):
		logger.Warn("some output could not be written", "error", runErr)
	default:
		logger.Error(fmt.Sprintf("Failed to run %s: %s", c.Path, runErr.Error()))
	}

	// Negative codes cannot be passed to os.Exit faithfully.
	if code < 0 {
		code = 1
	}

	logger.Debug("command finished", "exitCode", code)

	if code != 0 {
		return cli.Exit(cliExitStr, code)
	}

	return nil
}
