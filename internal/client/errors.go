// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response from a Pesto server.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d for %s", e.Code, e.URL)
}

// ErrorContext carries input context for improving API error messages.
type ErrorContext struct {
	Server    string
	Database  string
	Operation string // e.g., "download dump"
}

// Friendly wraps a server error with a contextual, user-friendly message
// while preserving the original error for further inspection via
// errors.Is/As.
func Friendly(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	server := nonEmpty(ctx.Server, "<unknown>")

	// Map well-known response codes to friendly text.
	var status *StatusError
	if errors.As(err, &status) {
		switch status.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s on %s: authentication failed (%d). Set PESTO_ACCESS_KEY or pass --access-key",
				nonEmpty(ctx.Operation, "request"), server, status.Code)

		case http.StatusNotFound:
			return fmt.Errorf("%s: database %q not found on %s (404)",
				nonEmpty(ctx.Operation, "request"), nonEmpty(ctx.Database, "<unknown>"), server)
		}
	}

	// Unknown error: provide generic context and wrap
	return fmt.Errorf("%s on %s for database %q: %w",
		nonEmpty(ctx.Operation, "request"), server, ctx.Database, err)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
