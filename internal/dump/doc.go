// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dump loads and reshapes Pesto database dumps. A dump is the JSON
// array of CouchDB-style documents served by a Pesto server's sync endpoint,
// or the same array previously saved to a file.
package dump
