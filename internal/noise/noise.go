// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package noise

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidPattern is returned when an expression does not compile.
var ErrInvalidPattern = errors.New("invalid noise pattern")

// Expressions of the default noise table.
// Anchors apply to the whole (trimmed) message, not to individual lines.
const (
	// ElapsedTime matches timing annotations such as "1 passed in 0.12s".
	ElapsedTime = `in \d+\.\d+s`
	// SessionBanner matches the "===== test session starts =====" header.
	SessionBanner = `test session starts`
	// CollectingBanner matches the collection progress line.
	CollectingBanner = `collecting\.\.\.`
	// PlatformBanner matches the platform header naming the interpreter path.
	PlatformBanner = `^platform .*/usr/local/bin/python$`
	// CacheDirBanner matches the cache directory header.
	CacheDirBanner = `^cachedir:`
	// RootDirBanner matches the root directory header.
	RootDirBanner = `^rootdir:`
)

var defaultExpressions = []string{
	ElapsedTime,
	SessionBanner,
	CollectingBanner,
	PlatformBanner,
	CacheDirBanner,
	RootDirBanner,
}

var defaultSet = MustCompile(defaultExpressions...)

// Set is an ordered, immutable sequence of noise patterns.
// The zero value is an empty set that matches nothing.
type Set struct {
	patterns []*regexp.Regexp
}

// Default returns the built-in noise table.
func Default() Set {
	return defaultSet
}

// DefaultExpressions returns a copy of the expressions in the built-in table.
func DefaultExpressions() []string {
	return slices.Clone(defaultExpressions)
}

// Compile builds a Set from the given expressions, preserving their order.
// Every invalid expression is reported, not only the first one.
func Compile(exprs ...string) (Set, error) {
	var result *multierror.Error

	patterns := make([]*regexp.Regexp, 0, len(exprs))

	for i, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: pattern %d %q: %v", ErrInvalidPattern, i, expr, err))
			continue
		}

		patterns = append(patterns, re)
	}

	if err := result.ErrorOrNil(); err != nil {
		return Set{}, err
	}

	return Set{patterns: patterns}, nil
}

// MustCompile is like Compile but panics if any expression is invalid.
func MustCompile(exprs ...string) Set {
	s, err := Compile(exprs...)
	if err != nil {
		panic(err)
	}

	return s
}

// Append returns a new Set holding the patterns of s followed by those of other.
// Neither s nor other is modified.
func (s Set) Append(other Set) Set {
	return Set{patterns: slices.Concat(s.patterns, other.patterns)}
}

// Match reports whether any pattern finds a match anywhere in text.
func (s Set) Match(text string) bool {
	return s.Index(text) >= 0
}

// Index returns the position of the first pattern that matches text, or -1.
func (s Set) Index(text string) int {
	for i, re := range s.patterns {
		if re.MatchString(text) {
			return i
		}
	}

	return -1
}

// Len returns the number of patterns in the set.
func (s Set) Len() int {
	return len(s.patterns)
}

// Strings returns the source expressions in match order.
func (s Set) Strings() []string {
	out := make([]string, len(s.patterns))
	for i, re := range s.patterns {
		out[i] = re.String()
	}

	return out
}
