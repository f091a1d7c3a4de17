// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	reset     = "\033[0m"
	prefix    = "\033["
	suffix    = "m"
	sbPadding = 16
)

// Code represents an ANSI control code for text formatting.
type Code int

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled bool

func init() {
	enabled = EnabledFor(os.Stdout.Fd())
}

// Enabled reports whether color output to stdout is enabled.
// It is computed once, in package init().
func Enabled() bool {
	return enabled
}

// EnabledFor reports whether color output to the given file descriptor should
// be used. NO_COLOR always wins; otherwise FORCE_COLOR or a terminal enables it.
func EnabledFor(fd uintptr) bool {
	if isColorCapable() {
		return true
	}

	if os.Getenv(NoColor) != "" {
		return false
	}

	return term.IsTerminal(int(fd))
}

// isColorCapable reports the decision made by the environment alone.
func isColorCapable() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	return os.Getenv(ForceColor) != ""
}

// Colorize wraps str in the given codes when stdout color is enabled.
func Colorize(str string, colorCodes ...Code) string {
	if !enabled {
		return str
	}

	return Force(str, colorCodes...)
}

// Force wraps str in the given codes unconditionally and appends a reset.
func Force(str string, colorCodes ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range colorCodes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}
