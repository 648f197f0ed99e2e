// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseOutputDir parses an output directory argument and returns the
// absolute directory. It returns an error if the fs entry does not exist,
// is empty or is not a directory.
func ParseOutputDir(outputDir string) (string, error) {

	if outputDir == "" {
		return "", os.ErrInvalid
	}

	var dir string

	// Determine if the directory is absolute or relative. If it is relative,
	// make it absolute.
	if !strings.HasPrefix(outputDir, "/") {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, outputDir)
	} else {
		dir = outputDir
	}

	// If the outputDir is not a directory, return an error.
	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return dir, nil
}
