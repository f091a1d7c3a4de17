// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package run

import (
	"bytes"
	"context"
	"errors"
	"syscall"
	"testing"

	"github.com/matt-FFFFFF/quell/internal/config"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runQuell(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	stubs := gostub.Stub(&config.FsFactory, afero.NewMemMapFs)
	defer stubs.Reset()

	var out, errOut bytes.Buffer

	root := &cli.Command{
		Name:           "quell",
		Commands:       []*cli.Command{newCmd()},
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"quell", "run"}, args...))

	code := 0

	if err != nil {
		var ec cli.ExitCoder
		require.True(t, errors.As(err, &ec), "unexpected error: %v", err)

		code = ec.ExitCode()
	}

	return out.String(), errOut.String(), code
}

func TestRun_FiltersStdout(t *testing.T) {
	out, errOut, code := runQuell(t, "--", "sh", "-c",
		`printf 'cachedir: .pytest_cache\ntest_a PASSED\n\n\n\ntest_b PASSED\n'; printf 'rootdir: /src\n' >&2`)

	assert.Equal(t, 0, code)
	assert.Equal(t, "test_a PASSED\n\ntest_b PASSED\n", out)
	assert.Equal(t, "rootdir: /src\n", errOut)
}

func TestRun_FiltersStderrWhenAsked(t *testing.T) {
	_, errOut, code := runQuell(t, "--stderr", "--", "sh", "-c",
		`printf 'rootdir: /src\nboom\n' >&2`)

	assert.Equal(t, 0, code)
	assert.Equal(t, "boom\n", errOut)
}

func TestRun_ExitCodePassesThrough(t *testing.T) {
	out, _, code := runQuell(t, "--", "sh", "-c", "echo 'FAILED in 1.23s'; echo FAIL; exit 7")

	assert.Equal(t, 7, code)
	assert.Equal(t, "FAIL\n", out)
}

func TestRun_SignalledChildExitCode(t *testing.T) {
	out, _, code := runQuell(t, "--", "sh", "-c", "echo started; kill -TERM $$")

	assert.Equal(t, 128+int(syscall.SIGTERM), code)
	assert.Equal(t, "started\n", out)
}

func TestRun_Cwd(t *testing.T) {
	dir := t.TempDir()

	out, _, code := runQuell(t, "--cwd", dir, "--", "sh", "-c", "basename \"$(pwd)\"")

	assert.Equal(t, 0, code)
	assert.NotEmpty(t, out)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "no command",
			args: nil,
		},
		{
			name: "command not found",
			args: []string{"--", "quell-definitely-not-a-command"},
		},
		{
			name: "config not found",
			args: []string{"--config", "/nope/.quell.yaml", "--", "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, code := runQuell(t, tt.args...)
			assert.Equal(t, 1, code)
		})
	}
}
