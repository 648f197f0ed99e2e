// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/apex/log"

	"github.com/pesto-garden/pestoctl/internal/cacheutil"
	"github.com/pesto-garden/pestoctl/internal/config"
)

// DumpURL builds the sync endpoint URL serving the full document dump of a
// database.
func DumpURL(serverURL, database string) string {
	if !strings.HasSuffix(serverURL, "/") {
		serverURL += "/"
	}

	return fmt.Sprintf("%ssync/db/%s/documents", serverURL, database)
}

// Hit GETs url with a bearer access key, reading from and refreshing the
// local cache when it is enabled.
func Hit(ctx context.Context, url string, accessKey string) ([]byte, error) {

	if err := purgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	if entry, ok := cacheutil.Read([]string{"dumps"}, url); ok {
		log.Debugf("cache hit: %s", entry.Path)
		return entry.Data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if accessKey != "" {
		req.Header.Set("Authorization", "Bearer "+accessKey)
	}

	http := &http.Client{}
	resp, err := http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	if err := cacheutil.Write([]string{"dumps"}, url, doc.Bytes()); err != nil {
		log.WithError(err).Warn("failed to write dump to cache")
	}

	return doc.Bytes(), nil
}

func purgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean")
	return cacheutil.Purge(cleanHours)
}
