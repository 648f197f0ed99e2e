// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendly(t *testing.T) {
	ctx := ErrorContext{
		Server:    "https://app.pesto.garden/",
		Database:  "journal",
		Operation: "download dump",
	}

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, Friendly(nil, ctx))
	})

	t.Run("unauthorized", func(t *testing.T) {
		err := Friendly(&StatusError{Code: 401, URL: "u"}, ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed (401)")
		assert.Contains(t, err.Error(), "PESTO_ACCESS_KEY")
	})

	t.Run("forbidden", func(t *testing.T) {
		err := Friendly(&StatusError{Code: 403, URL: "u"}, ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed (403)")
	})

	t.Run("not found", func(t *testing.T) {
		err := Friendly(&StatusError{Code: 404, URL: "u"}, ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `database "journal" not found`)
	})

	t.Run("anything else stays wrapped", func(t *testing.T) {
		inner := &StatusError{Code: 500, URL: "u"}
		err := Friendly(inner, ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download dump")

		var status *StatusError
		require.ErrorAs(t, err, &status)
		assert.Equal(t, 500, status.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		err := Friendly(fmt.Errorf("connection refused"), ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `for database "journal"`)
	})

	t.Run("missing context falls back to placeholders", func(t *testing.T) {
		err := Friendly(&StatusError{Code: 404, URL: "u"}, ErrorContext{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `database "<unknown>" not found on <unknown>`)
	})
}
