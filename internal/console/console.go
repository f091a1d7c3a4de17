// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"context"
	"io"
	"sync"

	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/matt-FFFFFF/quell/internal/outputfilter"
)

var (
	_ io.Writer            = (*Console)(nil)
	_ outputfilter.Flusher = (*Console)(nil)
)

// Console is a swappable output sink. Between OnRunStart and OnRunEnd the
// active sink is an *outputfilter.Filter wrapping the original one.
// It is safe for concurrent use.
type Console struct {
	current  io.Writer
	patterns noise.Set
	mu       sync.Mutex
}

// New creates an unfiltered Console writing to sink.
// The patterns are used by every filter the Console installs.
func New(sink io.Writer, patterns noise.Set) *Console {
	return &Console{
		current:  sink,
		patterns: patterns,
	}
}

// Stdout returns the active sink.
func (c *Console) Stdout() io.Writer {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

// Filtered reports whether a filter is installed.
func (c *Console) Filtered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.current.(*outputfilter.Filter)

	return ok
}

// Write sends p to the active sink.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current.Write(p) //nolint:wrapcheck
}

// Flush flushes the active sink if it buffers output.
func (c *Console) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.current.(outputfilter.Flusher); ok {
		return f.Flush() //nolint:wrapcheck
	}

	return nil
}

// Fd returns the file descriptor behind the active sink, so terminal
// detection works on the console. It returns outputfilter.InvalidFd when
// the sink is not a file.
func (c *Console) Fd() uintptr {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.current.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}

	return outputfilter.InvalidFd
}

// OnRunStart wraps the active sink in a filter.
// It does nothing if a filter is already installed.
func (c *Console) OnRunStart(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.current.(*outputfilter.Filter); ok {
		ctxlog.Debug(ctx, "output filter already installed")
		return
	}

	c.current = outputfilter.New(c.current, c.patterns)
	ctxlog.Debug(ctx, "output filter installed", "patterns", c.patterns.Len())
}

// OnRunEnd flushes the installed filter and restores the sink it wrapped.
// It does nothing if no filter is installed.
func (c *Console) OnRunEnd(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.current.(*outputfilter.Filter)
	if !ok {
		ctxlog.Debug(ctx, "output filter not installed")
		return
	}

	if err := f.Flush(); err != nil {
		ctxlog.Warn(ctx, "failed to flush output", "error", err)
	}

	c.current = f.Original()
	ctxlog.Debug(ctx, "output filter removed")
}

// Scope runs fn with the filter installed and removes it again on every
// exit path, including panics. fn receives the filtered sink.
func (c *Console) Scope(ctx context.Context, fn func(ctx context.Context, out io.Writer) error) error {
	c.OnRunStart(ctx)
	defer c.OnRunEnd(ctx)

	return fn(ctx, c.Stdout())
}
