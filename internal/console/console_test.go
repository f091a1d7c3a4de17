// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/matt-FFFFFF/quell/internal/outputfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_StartsUnfiltered(t *testing.T) {
	var buf bytes.Buffer

	c := New(&buf, noise.Default())

	assert.False(t, c.Filtered())
	assert.Same(t, &buf, c.Stdout())
}

func TestConsole_OnRunStartIsIdempotent(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer

	c := New(&buf, noise.Default())

	c.OnRunStart(ctx)
	first, ok := c.Stdout().(*outputfilter.Filter)
	require.True(t, ok)

	c.OnRunStart(ctx)
	second, ok := c.Stdout().(*outputfilter.Filter)
	require.True(t, ok)

	assert.Same(t, first, second, "second start must not wrap again")
	assert.Same(t, &buf, second.Original())
}

func TestConsole_SymmetricTeardown(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer

	c := New(&buf, noise.Default())

	c.OnRunStart(ctx)
	assert.True(t, c.Filtered())

	c.OnRunEnd(ctx)
	assert.False(t, c.Filtered())
	assert.Same(t, &buf, c.Stdout())

	c.OnRunEnd(ctx)
	assert.Same(t, &buf, c.Stdout(), "second end is a no-op")
}

func TestConsole_OnRunEndWithoutStart(t *testing.T) {
	var buf bytes.Buffer

	c := New(&buf, noise.Default())
	c.OnRunEnd(context.Background())

	assert.Same(t, &buf, c.Stdout())
}

func TestConsole_WriteFollowsState(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer

	c := New(&buf, noise.Default())

	_, err := io.WriteString(c, "rootdir: /a\n")
	require.NoError(t, err)

	c.OnRunStart(ctx)
	_, err = io.WriteString(c, "rootdir: /b\n")
	require.NoError(t, err)
	_, err = io.WriteString(c, "kept\n")
	require.NoError(t, err)
	c.OnRunEnd(ctx)

	_, err = io.WriteString(c, "rootdir: /c\n")
	require.NoError(t, err)

	assert.Equal(t, "rootdir: /a\nkept\nrootdir: /c\n", buf.String())
}

func TestConsole_Scope(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer

	c := New(&buf, noise.Default())

	err := c.Scope(ctx, func(_ context.Context, out io.Writer) error {
		assert.True(t, c.Filtered())

		_, _ = io.WriteString(out, "=== test session starts ===\n")
		_, _ = io.WriteString(out, "ok\n")

		return assert.AnError
	})

	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, c.Filtered())
	assert.Equal(t, "ok\n", buf.String())
}

func TestConsole_ScopeRestoresOnPanic(t *testing.T) {
	var buf bytes.Buffer

	c := New(&buf, noise.Default())

	assert.Panics(t, func() {
		_ = c.Scope(context.Background(), func(context.Context, io.Writer) error {
			panic("boom")
		})
	})

	assert.False(t, c.Filtered())
	assert.Same(t, &buf, c.Stdout())
}

func TestConsole_FdFollowsActiveSink(t *testing.T) {
	ctx := context.Background()

	f, err := os.CreateTemp(t.TempDir(), "sink")
	require.NoError(t, err)

	defer f.Close() //nolint:errcheck

	c := New(f, noise.Default())
	assert.Equal(t, f.Fd(), c.Fd())

	c.OnRunStart(ctx)
	assert.Equal(t, f.Fd(), c.Fd(), "the filter exposes the descriptor it wraps")
	c.OnRunEnd(ctx)

	assert.Equal(t, outputfilter.InvalidFd, New(&bytes.Buffer{}, noise.Default()).Fd())
}

func TestConsole_FlushReachesBufferedSink(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer

	bw := bufio.NewWriter(&buf)
	c := New(bw, noise.Default())

	c.OnRunStart(ctx)
	defer c.OnRunEnd(ctx)

	_, err := io.WriteString(c, "--- FAIL: TestX\n")
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	require.NoError(t, c.Flush())
	assert.Equal(t, "--- FAIL: TestX\n", buf.String())

	assert.NoError(t, New(&bytes.Buffer{}, noise.Default()).Flush())
}
