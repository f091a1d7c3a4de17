// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os/signal"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	ch := New(context.Background())
	defer signal.Stop(ch)

	assert.NotNil(t, ch)
	assert.Equal(t, 1, cap(ch), "signal channels must be buffered")
	assert.Len(t, termSignals, 4)
}
