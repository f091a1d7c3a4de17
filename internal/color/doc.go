// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI color codes.
// NO_COLOR disables color, FORCE_COLOR enables it, and otherwise color is used
// only when the destination is a terminal (golang.org/x/term).
package color
