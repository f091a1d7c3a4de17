// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package patterns

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/quell/cmd/quell/cliconfig"
	"github.com/matt-FFFFFF/quell/internal/color"
	"github.com/matt-FFFFFF/quell/internal/config"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/urfave/cli/v3"
)

// ErrWritePatterns is returned when the pattern list cannot be written.
var ErrWritePatterns = errors.New("failed to write patterns")

// PatternsCmd lists the active noise patterns.
var PatternsCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:  "patterns",
		Usage: "List the active noise patterns",
		Description: `List the noise patterns in the order they are tested,
including any added by the config file.`,
		Flags: []cli.Flag{
			cliconfig.Flag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, set, err := cliconfig.Resolve(ctx, cmd)
			if err != nil {
				ctxlog.Logger(ctx).Error(err.Error())
				return cli.Exit("", 1)
			}

			if err := Write(cmd.Root().Writer, cfg, set); err != nil {
				ctxlog.Logger(ctx).Error(err.Error())
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

// Write lists set, one pattern per line, labelling each with where it came from.
func Write(w io.Writer, cfg *config.Config, set noise.Set) error {
	builtin := 0
	if !cfg.DisableDefaults {
		builtin = noise.Default().Len()
	}

	for i, expr := range set.Strings() {
		origin := color.Colorize("default", color.Faint)
		if i >= builtin {
			origin = color.Colorize(cfg.Source, color.FgCyan)
		}

		if _, err := fmt.Fprintf(w, "%2d  %s  %s\n", i, color.Colorize(expr, color.Bold), origin); err != nil {
			return errors.Join(ErrWritePatterns, err)
		}
	}

	return nil
}
