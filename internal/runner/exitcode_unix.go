// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package runner

import (
	"os"
	"syscall"
)

const signalExitBase = 128

// exitCodeOf returns the exit code of a finished process, or 128 plus the
// signal number when a signal ended it. A nil state gives -1.
func exitCodeOf(state *os.ProcessState) int {
	if state == nil {
		return -1
	}

	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}

	return state.ExitCode()
}
