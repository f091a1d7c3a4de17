// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/quell/internal/ctxlog"
)

// Watch reads sigCh until it is closed and calls cancel on the second signal
// of the same type, after which it stops reading.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, cancelling", "signal", sig.String())
			cancel()

			return
		}

		ctxlog.Debug(ctx, "watchdog", "detail", "received first signal of type, passing to child", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}
