// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package noise holds the ordered set of regular expressions that identify
// test-runner output lines which are safe to drop: elapsed-time annotations,
// session and collection banners, and platform, cache and root directory
// headers.
//
// A Set is built once, before any output is filtered, and is never modified
// afterwards.
package noise
