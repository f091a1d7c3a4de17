// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the quell command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/quell"
	"github.com/matt-FFFFFF/quell/cmd/quell/check"
	"github.com/matt-FFFFFF/quell/cmd/quell/filter"
	"github.com/matt-FFFFFF/quell/cmd/quell/patterns"
	"github.com/matt-FFFFFF/quell/cmd/quell/run"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		filter.FilterCmd,
		patterns.PatternsCmd,
		check.CheckCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "quell",
	Description: `Quell removes noise from test runner output so CI logs stay deterministic
and easy to diff. Timing annotations, session banners and cache or root directory
lines are dropped, runs of blank lines collapse to one, and everything else passes
through byte for byte. The exit code of the test command is never changed.`,
	Usage:     "quell run -- go test ./...",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", quell.Version, quell.Commit)

	// Exit codes returned with cli.Exit, including the child's, are handled by the cli framework.
	err := rootCmd.Run(ctx, os.Args)

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Info("command completed successfully")
}
