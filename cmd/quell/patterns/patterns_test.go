// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package patterns

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/quell/internal/config"
	"github.com/matt-FFFFFF/quell/internal/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantLines int
		wantLast  string
	}{
		{
			name:      "defaults only",
			cfg:       &config.Config{},
			wantLines: noise.Default().Len(),
			wantLast:  "default",
		},
		{
			name:      "extra pattern is attributed to the config file",
			cfg:       &config.Config{Patterns: []string{`^ok\s`}, Source: ".quell.yaml"},
			wantLines: noise.Default().Len() + 1,
			wantLast:  ".quell.yaml",
		},
		{
			name:      "defaults disabled",
			cfg:       &config.Config{Patterns: []string{`^ok\s`}, DisableDefaults: true, Source: ".quell.hcl"},
			wantLines: 1,
			wantLast:  ".quell.hcl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := tt.cfg.PatternSet()
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, Write(&out, tt.cfg, set))

			lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
			require.Len(t, lines, tt.wantLines)
			assert.True(t, strings.HasSuffix(lines[len(lines)-1], tt.wantLast), lines[len(lines)-1])
		})
	}
}
