// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/pesto-garden/pestoctl/internal/meta"
)

// DumpCommandBuilder is a helper that constructs a cli.Command for
// subcommands that emit document sets (download, filter) using a consistent
// pattern. It accepts the command name, usage text, optional UsageText,
// custom flags, the action handler, and meta. The builder automatically
// wires metadata, adds the tldr flag, applies global flags, and sets up
// validators.
type DumpCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (dcb *DumpCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      dcb.Name,
		Usage:     dcb.Usage,
		UsageText: dcb.UsageText,
		Metadata: map[string]any{
			"meta": dcb.Meta,
		},
		Flags: append(dcb.Flags, append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags(dcb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: dcb.Action,
	}
}
