// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package outputfilter

import (
	"io"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/quell/internal/noise"
)

// InvalidFd is returned by Filter.Fd when the sink has no file descriptor.
const InvalidFd = ^uintptr(0)

var (
	_ io.Writer       = (*Filter)(nil)
	_ io.StringWriter = (*Filter)(nil)
	_ Flusher         = (*Filter)(nil)
)

// Flusher is implemented by sinks that buffer output, such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

type fder interface {
	Fd() uintptr
}

// Filter wraps an output sink and drops messages that match a noise.Set.
// Runs of blank messages are collapsed into a single blank message.
// It is safe for concurrent use.
type Filter struct {
	sink      io.Writer
	patterns  noise.Set
	lastBlank bool
	mu        sync.Mutex
}

// New creates a Filter that forwards surviving messages to sink.
// The filter does not take ownership of sink.
func New(sink io.Writer, patterns noise.Set) *Filter {
	return &Filter{
		sink:     sink,
		patterns: patterns,
	}
}

// Write implements io.Writer. Each call is treated as one message.
//
// Suppressed messages report len(p) and a nil error. Forwarded messages
// return whatever the sink returned.
func (f *Filter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.admit(string(p)) {
		return len(p), nil
	}

	return f.sink.Write(p) //nolint:wrapcheck
}

// WriteString implements io.StringWriter with the same rules as Write.
func (f *Filter) WriteString(s string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.admit(s) {
		return len(s), nil
	}

	return io.WriteString(f.sink, s) //nolint:wrapcheck
}

// admit decides whether msg reaches the sink and updates the blank flag.
// Must be called with the lock held.
func (f *Filter) admit(msg string) bool {
	trimmed := strings.TrimSpace(msg)

	if f.patterns.Match(trimmed) {
		return false
	}

	if trimmed != "" {
		f.lastBlank = false
		return true
	}

	forward := !f.lastBlank
	f.lastBlank = true

	return forward
}

// Flush forwards to the sink's Flush method, if it has one.
func (f *Filter) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if fl, ok := f.sink.(Flusher); ok {
		return fl.Flush() //nolint:wrapcheck
	}

	return nil
}

// Fd returns the sink's file descriptor so terminal detection keeps working
// through the wrapper. It returns InvalidFd if the sink is not a file.
func (f *Filter) Fd() uintptr {
	if fd, ok := f.sink.(fder); ok {
		return fd.Fd()
	}

	return InvalidFd
}

// Original returns the sink the filter was created with.
func (f *Filter) Original() io.Writer {
	return f.sink
}

// Patterns returns the noise patterns in use.
func (f *Filter) Patterns() noise.Set {
	return f.patterns
}
