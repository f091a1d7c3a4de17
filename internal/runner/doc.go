// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner starts a child command and streams its output, one complete
// line per write, into caller-supplied writers.
//
// The child's exit code is reported unchanged. Termination signals received
// by quell are forwarded to the child; a repeated signal kills it.
package runner
