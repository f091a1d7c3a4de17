// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cliconfig holds the --config flag shared by every quell subcommand
// and resolves it into a pattern set.
package cliconfig

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/quell/internal/config"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/urfave/cli/v3"
)

// FlagName is the name of the config flag.
const FlagName = "config"

// ErrResolveConfig is returned when the configuration cannot be loaded or is invalid.
var ErrResolveConfig = errors.New("failed to resolve config")

// Flag returns a new --config flag.
func Flag() cli.Flag {
	return &cli.StringFlag{
		Name:    FlagName,
		Aliases: []string{"c"},
		Usage: "Path or URL of the config file. " +
			"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
			"Defaults to .quell.yaml, .quell.yml or .quell.hcl in the working directory.",
		TakesFile: true,
		OnlyOnce:  true,
		Sources:   cli.EnvVars("QUELL_CONFIG"),
	}
}

// Resolve loads the config named by the flag, or the one in the working
// directory, and compiles its pattern set.
func Resolve(ctx context.Context, cmd *cli.Command) (*config.Config, noise.Set, error) {
	var (
		cfg *config.Config
		err error
	)

	if url := cmd.String(FlagName); url != "" {
		cfg, err = config.LoadURL(ctx, url)
	} else {
		var wd string

		wd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Load(ctx, wd)
		}
	}

	if err != nil {
		return nil, noise.Set{}, errors.Join(ErrResolveConfig, err)
	}

	set, err := cfg.PatternSet()
	if err != nil {
		return nil, noise.Set{}, errors.Join(ErrResolveConfig, err)
	}

	ctxlog.Debug(ctx, "config resolved", "source", cfg.Source, "patterns", set.Len())

	return cfg, set, nil
}
