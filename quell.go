// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package quell filters test-runner noise out of standard output.
//
// Call Main from TestMain to filter everything a test binary prints:
//
//	func TestMain(m *testing.M) {
//		os.Exit(quell.Main(m))
//	}
//
// OnRunStart and OnRunEnd expose the same lifecycle for harnesses that write
// through Stdout instead of os.Stdout.
package quell

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)
