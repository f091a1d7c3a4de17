// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/outputfilter"
)

// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
var ErrFailedToCreatePipe = errors.New("failed to create pipe")

// pipe allows the pipe constructor to be replaced in tests.
var pipe = os.Pipe

// RedirectStdout points os.Stdout at a pipe and copies everything written to
// it, one line at a time, into dst.
//
// The returned restore function puts the previous os.Stdout back, waits for
// the copy to drain and reports any error from dst. Calling it again returns
// the same result.
func RedirectStdout(ctx context.Context, dst io.Writer) (func() error, error) {
	r, w, err := pipe()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	orig := os.Stdout
	os.Stdout = w

	ctxlog.Debug(ctx, "stdout redirected")

	done := make(chan error, 1)

	go func() {
		lw := outputfilter.NewLineWriter(dst)

		_, copyErr := io.Copy(lw, r)
		if copyErr != nil {
			// Keep draining so writers to the pipe never block.
			_, _ = io.Copy(io.Discard, r)
		}

		done <- errors.Join(copyErr, lw.Flush())
	}()

	var (
		once       sync.Once
		restoreErr error
	)

	restore := func() error {
		once.Do(func() {
			os.Stdout = orig
			_ = w.Close()
			restoreErr = <-done
			_ = r.Close()

			ctxlog.Debug(ctx, "stdout restored")
		})

		return restoreErr
	}

	return restore, nil
}
