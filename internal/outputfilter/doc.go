// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package outputfilter provides a Filter, an io.Writer decorator that drops
// test-runner noise and collapses runs of blank lines, and a LineWriter that
// cuts an arbitrary byte stream into whole lines before they reach the Filter.
//
// Every message that is neither noise nor a repeated blank line reaches the
// underlying sink byte for byte, in the order it was written.
package outputfilter
