// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServerURLFlag_Bare(t *testing.T) {
	flag := NewServerURLFlag()

	assert.Equal(t, "server-url", flag.Name)
	assert.Empty(t, flag.Aliases)
	assert.Equal(t, "https://db.pesto.garden/", flag.Value)
	// Just the PESTO_SERVER_URL env source.
	assert.Len(t, flag.Sources.Chain, 1)
}

func TestNewServerURLFlag_ConfigChained(t *testing.T) {
	flag := NewServerURLFlag("download", "/tmp/pestoctl.yaml")

	// env var, then download.server-url, then bare server-url.
	assert.Len(t, flag.Sources.Chain, 3)
}

func TestNewAccessKeyFlag_ConfigChained(t *testing.T) {
	flag := NewAccessKeyFlag("diff", "/tmp/pestoctl.yaml")

	assert.Equal(t, "access-key", flag.Name)
	assert.Len(t, flag.Sources.Chain, 3)
}

func TestNewGlobalFlags_Names(t *testing.T) {
	want := []string{
		"attrs", "color", "empty-value", "local",
		"output", "padding", "sort", "titles",
	}

	flags := NewGlobalFlags()

	got := make([]string, 0, len(flags))
	for _, f := range flags {
		got = append(got, f.Names()[0])
	}
	assert.Equal(t, want, got)
}
