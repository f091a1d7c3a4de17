// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/quell/internal/ctxlog"
)

var (
	// ErrDuplicateSignal is returned by Relay when a repeated signal killed the target.
	ErrDuplicateSignal = errors.New("duplicate signal received, process forcefully terminated")
	// ErrContextDone is returned by Relay when the context ended before the target did.
	ErrContextDone = errors.New("context done, process killed")
)

// Target is a process that signals are relayed to. *os.Process implements it.
type Target interface {
	Signal(sig os.Signal) error
	Kill() error
}

// Relay passes the first signal of each type read from sigCh on to target.
// A repeated signal, or the end of ctx, kills target instead and Relay returns
// ErrDuplicateSignal or ErrContextDone. Relay returns nil once done is closed.
func Relay(ctx context.Context, sigCh <-chan os.Signal, target Target, done <-chan struct{}) error {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case sig, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Info(ctx, "received duplicate signal, killing process", "signal", sig.String())
				kill(ctx, target)

				return ErrDuplicateSignal
			}

			seen[sig] = struct{}{}

			ctxlog.Info(ctx, "forwarding signal", "signal", sig.String())

			if err := target.Signal(sig); err != nil {
				ctxlog.Info(ctx, "failed to send signal", "signal", sig.String(), "error", err)
			}

		case <-ctx.Done():
			ctxlog.Info(ctx, "context done, killing process")
			kill(ctx, target)

			return ErrContextDone

		case <-done:
			return nil
		}
	}
}

func kill(ctx context.Context, target Target) {
	err := target.Kill()

	switch {
	case err == nil:
		ctxlog.Debug(ctx, "process killed")
	case errors.Is(err, os.ErrProcessDone):
		ctxlog.Debug(ctx, "process already done")
	default:
		ctxlog.Error(ctx, "process kill error", "error", err)
	}
}
