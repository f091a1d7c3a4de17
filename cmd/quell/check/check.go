// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/quell/cmd/quell/cliconfig"
	"github.com/matt-FFFFFF/quell/internal/color"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const (
	interactiveFlag = "interactive"
	prompt          = "check> "
)

// ErrReadLine is returned when the interactive prompt fails.
var ErrReadLine = errors.New("failed to read line")

// CheckCmd reports whether lines would be dropped by the filter.
var CheckCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report whether lines would be dropped as noise",
		ArgsUsage: "[LINE...]",
		Description: `Test each line against the active noise patterns and print NOISE, with the
matching pattern, or KEEP.

With --interactive, lines are read from a prompt until quit, exit or Ctrl+C.`,
		Flags: []cli.Flag{
			cliconfig.Flag(),
			&cli.BoolFlag{
				Name:        interactiveFlag,
				Aliases:     []string{"i"},
				Usage:       "Read lines from an interactive prompt",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, set, err := cliconfig.Resolve(ctx, cmd)
			if err != nil {
				ctxlog.Logger(ctx).Error(err.Error())
				return cli.Exit("", 1)
			}

			w := cmd.Root().Writer

			for _, line := range cmd.Args().Slice() {
				Report(w, set, line)
			}

			if !cmd.Bool(interactiveFlag) {
				return nil
			}

			line := liner.NewLiner()

			defer func() {
				_ = line.Close()
			}()

			line.SetCtrlCAborts(true)

			if err := Interactive(w, line, set); err != nil {
				ctxlog.Logger(ctx).Error(err.Error())
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

// Prompter reads lines from a user. *liner.State implements it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Interactive reports on lines read from p until the user quits.
func Interactive(w io.Writer, p Prompter, set noise.Set) error {
	fmt.Fprintln(w, "Enter a line of test output to check, `quit` or `exit` or Ctrl+C to quit.") //nolint:errcheck

	for {
		input, err := p.Prompt(prompt)

		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return errors.Join(ErrReadLine, err)
		}

		if input == "quit" || input == "exit" {
			return nil
		}

		p.AppendHistory(input)
		Report(w, set, input)
	}
}

// Report writes whether line is noise under set and which pattern matched.
func Report(w io.Writer, set noise.Set, line string) {
	idx := set.Index(strings.TrimSpace(line))
	if idx < 0 {
		fmt.Fprintf(w, "%s\t%q\n", color.Colorize("KEEP ", color.FgGreen), line) //nolint:errcheck
		return
	}

	fmt.Fprintf(w, "%s\t%q\t[%d] %s\n", //nolint:errcheck
		color.Colorize("NOISE", color.FgYellow), line, idx, set.Strings()[idx])
}
