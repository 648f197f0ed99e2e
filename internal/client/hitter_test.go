// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpURL(t *testing.T) {
	tests := []struct {
		name     string
		server   string
		database string
		want     string
	}{
		{
			name:     "trailing slash on the server",
			server:   "https://app.pesto.garden/",
			database: "journal",
			want:     "https://app.pesto.garden/sync/db/journal/documents",
		},
		{
			name:     "no trailing slash",
			server:   "https://app.pesto.garden",
			database: "journal",
			want:     "https://app.pesto.garden/sync/db/journal/documents",
		},
		{
			name:     "self-hosted with port",
			server:   "http://localhost:8000",
			database: "scratch",
			want:     "http://localhost:8000/sync/db/scratch/documents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DumpURL(tt.server, tt.database))
		})
	}
}

func TestHit(t *testing.T) {
	t.Setenv("PESTO_CACHE", "false")

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[{"_id":"a"}]`))
	}))
	defer srv.Close()

	data, err := Hit(context.Background(), srv.URL+"/sync/db/journal/documents", "sekrit")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"a"}]`, string(data))
	assert.Equal(t, "Bearer sekrit", gotAuth)
}

func TestHit_NoKeyNoHeader(t *testing.T) {
	t.Setenv("PESTO_CACHE", "false")

	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := Hit(context.Background(), srv.URL, "")
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestHit_Status(t *testing.T) {
	t.Setenv("PESTO_CACHE", "false")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := Hit(context.Background(), srv.URL, "bad")
	require.Error(t, err)

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusUnauthorized, status.Code)
}

func TestHit_CacheRoundTrip(t *testing.T) {
	t.Setenv("PESTO_CACHE_DIR", t.TempDir())
	t.Setenv("PESTO_CACHE", "true")

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[{"_id":"cached"}]`))
	}))

	url := srv.URL + "/sync/db/journal/documents"

	first, err := Hit(context.Background(), url, "key")
	require.NoError(t, err)

	// The server is gone, so only the cache can answer now.
	srv.Close()

	second, err := Hit(context.Background(), url, "key")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
}
