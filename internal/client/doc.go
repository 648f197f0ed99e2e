// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package client talks to a Pesto server's sync API and maps its failures
// to messages a human can act on.
package client
