// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filter

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/matt-FFFFFF/quell/cmd/quell/cliconfig"
	"github.com/matt-FFFFFF/quell/internal/console"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/outputfilter"
	"github.com/urfave/cli/v3"
)

// ErrCopy is returned when standard input cannot be copied to the output.
var ErrCopy = errors.New("failed to filter input")

// FilterCmd filters standard input to standard output.
var FilterCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Filter standard input to standard output",
		Description: `Read test output from standard input and write it to standard output
with noise lines dropped and runs of blank lines collapsed.

	pytest 2>&1 | quell filter
`,
		Flags: []cli.Flag{
			cliconfig.Flag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := ctxlog.Logger(ctx).With("command", cmd.Name)

			_, set, err := cliconfig.Resolve(ctx, cmd)
			if err != nil {
				logger.Error(err.Error())
				return cli.Exit("", 1)
			}

			in := cmd.Root().Reader
			if in == nil {
				in = os.Stdin
			}

			err = console.New(cmd.Root().Writer, set).Scope(ctx, func(_ context.Context, out io.Writer) error {
				lw := outputfilter.NewLineWriter(out)

				_, err := io.Copy(lw, in)

				return errors.Join(err, lw.Flush())
			})
			if err != nil {
				logger.Error(errors.Join(ErrCopy, err).Error())
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}
