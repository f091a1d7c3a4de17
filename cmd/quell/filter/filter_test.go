// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/quell/internal/config"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestFilterCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ci/quell.yaml", []byte("patterns: ['^ok\\s']\n"), 0o644))

	stubs := gostub.Stub(&config.FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{
			name: "defaults",
			in:   "============ test session starts ============\nplatform linux -- Python 3.12, pytest-8.0 -- /usr/local/bin/python\n\n\ntest_a.py::test_a PASSED\n1 passed in 0.01s\n",
			want: "\ntest_a.py::test_a PASSED\n",
		},
		{
			name: "config adds patterns",
			args: []string{"--config", "/ci/quell.yaml"},
			in:   "ok  \tpkg\t(cached)\n--- FAIL: TestX\n",
			want: "--- FAIL: TestX\n",
		},
		{
			name: "partial last line",
			in:   "no newline",
			want: "no newline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			root := &cli.Command{
				Name:     "quell",
				Commands: []*cli.Command{newCmd()},
				Reader:   strings.NewReader(tt.in),
				Writer:   &out,
			}

			err := root.Run(context.Background(), append([]string{"quell", "filter"}, tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
