// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestWatch(t *testing.T) {
	tests := []struct {
		name       string
		signals    []os.Signal
		wantCancel bool
	}{
		{
			name:    "first signal is left to the child",
			signals: []os.Signal{os.Interrupt},
		},
		{
			name:    "different signals do not cancel",
			signals: []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT},
		},
		{
			name:       "repeated signal cancels",
			signals:    []os.Signal{syscall.SIGTERM, os.Interrupt, syscall.SIGTERM},
			wantCancel: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, len(tt.signals))
			for _, s := range tt.signals {
				sigCh <- s
			}

			done := make(chan struct{})

			go func() {
				defer close(done)
				Watch(ctx, sigCh, cancel)
			}()

			if tt.wantCancel {
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("Watch did not return after a repeated signal")
				}

				assert.ErrorIs(t, ctx.Err(), context.Canceled)

				return
			}

			time.Sleep(50 * time.Millisecond)
			assert.NoError(t, ctx.Err())

			// Watch leaves the channel to its owner and stops once it is closed.
			close(sigCh)
			<-done
		})
	}
}
