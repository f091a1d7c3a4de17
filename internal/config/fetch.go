// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrGetConfigFile is returned when a config file cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// LoadURL reads a config from a local path or a go-getter URL,
// e.g. "git::https://github.com/org/repo//ci/.quell.yaml?ref=main".
func LoadURL(ctx context.Context, url string) (*Config, error) {
	data, name, err := fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return Decode(name, data)
}

// fetch returns the file content and the file name used to pick the decoder.
// Paths present on the FsFactory filesystem are read directly.
func fetch(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", ErrGetConfigFile
	}

	fs := FsFactory()
	if ok, _ := afero.Exists(fs, url); ok {
		data, err := afero.ReadFile(fs, url)
		if err != nil {
			return nil, "", errors.Join(ErrGetConfigFile, err)
		}

		return data, filepath.Base(url), nil
	}

	ctxlog.Debug(ctx, "fetching config", "url", url)

	data, name, err := getURL(ctx, url)
	if err != nil {
		return nil, "", err
	}

	return data, name, nil
}

// getterScratchDir is the parent of the download directory. go-getter writes
// to the real disk, so downloads never go through FsFactory.
var getterScratchDir = os.TempDir

// getURL downloads the directory holding the file named by url into a
// scratch directory, reads the file and removes the directory again.
func getURL(ctx context.Context, url string) ([]byte, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	src, fileName, err := sourceDir(url, wd)
	if err != nil {
		return nil, "", err
	}

	scratch := afero.NewOsFs()

	tmpDir, err := afero.TempDir(scratch, getterScratchDir(), "quell-getter-")
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	defer scratch.RemoveAll(tmpDir) //nolint:errcheck

	res, err := (&getter.Client{DisableSymlinks: true}).Get(ctx, &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	})
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	data, err := afero.ReadFile(afero.NewBasePathFs(scratch, res.Dst), fileName)
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	return data, fileName, nil
}

// sourceDir returns the go-getter source of the directory holding the file
// named by url, and the file name. go-getter cannot fetch a single file from
// a repository, so remote sources always name a directory.
// https://github.com/hashicorp/go-getter/issues/98
func sourceDir(url, wd string) (string, string, error) {
	local, err := getter.Detect(&getter.Request{Src: url, Pwd: wd}, &getter.FileGetter{})
	if err != nil {
		return "", "", errors.Join(ErrGetConfigFile, err)
	}

	if local {
		return filepath.Dir(url), filepath.Base(url), nil
	}

	src, fileName := splitFileNameFromGetterURL(url)
	if src == "" || fileName == "" {
		return "", "", fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, url)
	}

	return src, fileName, nil
}

// splitFileNameFromGetterURL splits a go-getter URL into the directory URL and
// the file name. A "?ref=" query on the last segment is kept on the new URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		ref = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	dir := filepath.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
