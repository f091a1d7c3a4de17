// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package console owns the process-wide output sink for a test run.
//
// A Console starts unfiltered. OnRunStart installs an output filter in front
// of the sink and OnRunEnd removes it; both are idempotent, so the filter is
// never stacked twice and the original sink is never lost. Scope pairs the two
// calls with defer.
//
// RedirectStdout covers code that prints straight to os.Stdout, such as a Go
// test binary, by swapping os.Stdout for a pipe that drains into a Console.
package console
