// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTarget struct {
	mu       sync.Mutex
	received []os.Signal
	kills    int
	killErr  error
}

func (f *fakeTarget) Signal(sig os.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.received = append(f.received, sig)

	return nil
}

func (f *fakeTarget) Kill() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.kills++

	return f.killErr
}

func TestRelay(t *testing.T) {
	tests := []struct {
		name         string
		signals      []os.Signal
		killErr      error
		wantErr      error
		wantReceived []os.Signal
		wantKills    int
	}{
		{
			name:         "distinct signals are forwarded",
			signals:      []os.Signal{os.Interrupt, syscall.SIGTERM},
			wantReceived: []os.Signal{os.Interrupt, syscall.SIGTERM},
		},
		{
			name:         "repeated signal kills",
			signals:      []os.Signal{syscall.SIGTERM, syscall.SIGTERM, os.Interrupt},
			wantErr:      ErrDuplicateSignal,
			wantReceived: []os.Signal{syscall.SIGTERM},
			wantKills:    1,
		},
		{
			name:         "kill after exit is not an error",
			signals:      []os.Signal{os.Interrupt, os.Interrupt},
			killErr:      os.ErrProcessDone,
			wantErr:      ErrDuplicateSignal,
			wantReceived: []os.Signal{os.Interrupt},
			wantKills:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sigCh := make(chan os.Signal, len(tt.signals))
			for _, s := range tt.signals {
				sigCh <- s
			}

			close(sigCh)

			target := &fakeTarget{killErr: tt.killErr}
			done := make(chan struct{})
			errCh := make(chan error, 1)

			go func() {
				errCh <- Relay(context.Background(), sigCh, target, done)
			}()

			if tt.wantErr == nil {
				assert.Eventually(t, func() bool {
					target.mu.Lock()
					defer target.mu.Unlock()

					return len(target.received) == len(tt.wantReceived)
				}, time.Second, 10*time.Millisecond)

				close(done)
			}

			err := <-errCh
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantReceived, target.received)
			assert.Equal(t, tt.wantKills, target.kills)
		})
	}
}

func TestRelay_ContextDoneKills(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target := &fakeTarget{}

	err := Relay(ctx, make(chan os.Signal), target, make(chan struct{}))
	assert.ErrorIs(t, err, ErrContextDone)
	assert.Equal(t, 1, target.kills)
}
