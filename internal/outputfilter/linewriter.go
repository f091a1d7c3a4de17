// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package outputfilter

import (
	"bytes"
	"io"
	"sync"
)

var (
	_ io.Writer = (*LineWriter)(nil)
	_ Flusher   = (*LineWriter)(nil)
)

// LineWriter buffers incoming bytes and writes them to the wrapped writer one
// complete line (including its trailing newline) at a time.
// Data after the last newline is held until more data arrives or Flush is called.
// It is safe for concurrent use.
type LineWriter struct {
	w       io.Writer
	partial bytes.Buffer // incomplete line
	mu      sync.Mutex
}

// NewLineWriter creates a LineWriter that writes whole lines to w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// Write implements io.Writer. It always accepts all of p; the returned error
// is the first error from the wrapped writer, if any.
func (lw *LineWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	lw.partial.Write(p)

	var firstErr error

	for {
		data := lw.partial.Bytes()

		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}

		if _, err := lw.w.Write(data[:i+1]); err != nil && firstErr == nil {
			firstErr = err
		}

		lw.partial.Next(i + 1)
	}

	return len(p), firstErr
}

// Flush writes any buffered partial line as a message of its own and then
// flushes the wrapped writer if it is a Flusher.
func (lw *LineWriter) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.partial.Len() > 0 {
		_, err := lw.w.Write(lw.partial.Bytes())
		lw.partial.Reset()

		if err != nil {
			return err //nolint:wrapcheck
		}
	}

	if fl, ok := lw.w.(Flusher); ok {
		return fl.Flush() //nolint:wrapcheck
	}

	return nil
}

// Buffered returns the partial line currently held back.
func (lw *LineWriter) Buffered() string {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	return lw.partial.String()
}
