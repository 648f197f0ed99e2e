// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package markdown renders database documents into markdown files.
//
// Each document is flattened into a template context (nested keys joined
// with underscores), optionally enriched with aliases, defaults, overrides
// and a front matter sub-map, then rendered through a text/template and
// written to one file per document.
package markdown
