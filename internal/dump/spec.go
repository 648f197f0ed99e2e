// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
)

// FetchFunc downloads the dump of a named database. It decouples spec
// resolution from the HTTP client.
type FetchFunc func(ctx context.Context, database string) ([]byte, error)

// Resolve turns a dump spec into raw dump bytes. A spec is checked in this
// order:
//
//	-       read stdin
//	path    read an existing file
//	name    download the named database
func Resolve(ctx context.Context, spec string, fetch FetchFunc) ([]byte, error) {
	switch {
	case spec == "-":
		log.Debugf("resolving dump spec %q from stdin", spec)
		return Read(spec)

	case isFilePath(spec):
		log.Debugf("resolving dump spec %q from file", spec)
		return Read(spec)

	default:
		log.Debugf("resolving dump spec %q as a database name", spec)
		if fetch == nil {
			return nil, fmt.Errorf("dump spec is not a file and no server fetch is available: %s", spec)
		}
		return fetch(ctx, spec)
	}
}

// isFilePath determines if the spec refers to an existing file.
func isFilePath(spec string) bool {
	_, err := os.Stat(spec)
	return err == nil
}
