// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package runner

import "os"

// exitCodeOf returns the exit code of a finished process. A nil state gives -1.
func exitCodeOf(state *os.ProcessState) int {
	if state == nil {
		return -1
	}

	return state.ExitCode()
}
