// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrCommandNotFound is returned when an executable cannot be found in PATH.
var ErrCommandNotFound = errors.New("command not found")

// LookPath resolves command against PATH.
// Commands containing a path separator are returned unchanged.
func LookPath(command string) (string, error) {
	if strings.ContainsRune(command, os.PathSeparator) || strings.ContainsRune(command, '/') {
		return command, nil
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}

		for _, candidate := range candidates(command) {
			path := filepath.Join(dir, candidate)

			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}

			if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
				continue
			}

			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, command)
}

func candidates(command string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(command) != "" {
		return []string{command}
	}

	return []string{command + ".exe", command + ".bat", command + ".cmd", command}
}
