// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller traverses Pesto documents to resolve dotted field paths,
// fanning out across arrays of typed sub-objects where needed.
package driller
