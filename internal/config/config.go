// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrReadConfig is returned when a config file exists but cannot be read.
	ErrReadConfig = errors.New("failed to read config")
	// ErrDecodeConfig is returned when a config file is not valid YAML or HCL.
	ErrDecodeConfig = errors.New("failed to decode config")
	// ErrUnsupportedFormat is returned for file extensions other than .yaml, .yml and .hcl.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrEmptyPattern is returned for a pattern that would match every message.
	ErrEmptyPattern = errors.New("empty pattern matches all output")
)

// FileNames are the config files looked up in a directory, in order.
var FileNames = []string{".quell.yaml", ".quell.yml", ".quell.hcl"}

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Config is the optional project configuration.
type Config struct {
	// Patterns are extra noise expressions, matched after the defaults.
	Patterns []string `yaml:"patterns" hcl:"patterns,optional"`
	// DisableDefaults drops the built-in noise table.
	DisableDefaults bool `yaml:"disable_defaults" hcl:"disable_defaults,optional"`
	// FilterStderr also filters a child command's stderr.
	FilterStderr bool `yaml:"filter_stderr" hcl:"filter_stderr,optional"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// Load reads the first config file found in dir.
// A directory without a config file yields an empty Config.
func Load(ctx context.Context, dir string) (*Config, error) {
	fs := FsFactory()

	for _, name := range FileNames {
		path := filepath.Join(dir, name)

		ok, err := afero.Exists(fs, path)
		if err != nil {
			return nil, errors.Join(ErrReadConfig, err)
		}

		if !ok {
			continue
		}

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Join(ErrReadConfig, err)
		}

		ctxlog.Debug(ctx, "config file found", "path", path)

		return Decode(path, data)
	}

	ctxlog.Debug(ctx, "no config file found, using defaults", "dir", dir)

	return &Config{}, nil
}

// Decode parses data in the format given by the extension of name.
func Decode(name string, data []byte) (*Config, error) {
	cfg := &Config{Source: name}

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecodeConfig, name, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(name, data, evalContext(), cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecodeConfig, name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return cfg, nil
}

// Validate reports every problem with the configured patterns at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	for i, p := range c.Patterns {
		if p == "" {
			result = multierror.Append(result, fmt.Errorf("%w: pattern %d", ErrEmptyPattern, i))
		}
	}

	if _, err := noise.Compile(c.Patterns...); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// PatternSet returns the defaults (unless disabled) followed by the configured patterns.
func (c *Config) PatternSet() (noise.Set, error) {
	if err := c.Validate(); err != nil {
		return noise.Set{}, err
	}

	extra := noise.MustCompile(c.Patterns...)

	if c.DisableDefaults {
		return extra, nil
	}

	return noise.Default().Append(extra), nil
}

// evalContext exposes the process environment to HCL expressions as env.NAME.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
