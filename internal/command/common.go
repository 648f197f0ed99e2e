// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/pesto-garden/pestoctl/internal/attrs"
	"github.com/pesto-garden/pestoctl/internal/config"
	"github.com/pesto-garden/pestoctl/internal/meta"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ApplyCacheToggle resolves the effective cache setting and disables the
// response cache for this process when it is off. An explicit --cache flag
// wins; otherwise the "cache" config key is consulted. A nested cache:
// mapping (the cache.clean form) is not a bool and leaves the flag default
// in charge.
func ApplyCacheToggle(cmd *cli.Command) {
	on := cmd.Bool("cache")
	if !cmd.IsSet("cache") {
		if v, err := config.GetBool("cache"); err == nil {
			on = v
		}
	}
	if !on {
		os.Setenv("PESTO_CACHE", "false")
	}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr pestoctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "pestoctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
