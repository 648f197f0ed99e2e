// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/pesto-garden/pestoctl/internal/client"
	"github.com/pesto-garden/pestoctl/internal/config"
	"github.com/pesto-garden/pestoctl/internal/differ"
	"github.com/pesto-garden/pestoctl/internal/dump"
	"github.com/pesto-garden/pestoctl/internal/meta"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// resolves two dump specs (stdin, file path or database name), optionally
// parses the content field of each document, and prints a structural diff.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	config.Config.Namespace = "diff"

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("diff requires exactly two arguments: pestoctl diff A B")
	}

	specs := []string{cmd.Args().Get(0), cmd.Args().Get(1)}
	if specs[0] == "-" && specs[1] == "-" {
		return fmt.Errorf("only one diff side can come from stdin")
	}

	ApplyCacheToggle(cmd)

	serverURL := cmd.String("server-url")
	fetch := func(ctx context.Context, database string) ([]byte, error) {
		accessKey, err := client.AccessKey(cmd)
		if err != nil {
			return nil, err
		}

		url := client.DumpURL(serverURL, database)
		raw, err := client.Hit(ctx, url, accessKey)
		if err != nil {
			return nil, client.Friendly(err, client.ErrorContext{
				Server:    serverURL,
				Database:  database,
				Operation: "download dump",
			})
		}
		return raw, nil
	}

	dumps := make([][]byte, 0, len(specs))
	for _, spec := range specs {
		raw, err := dump.Resolve(ctx, spec, fetch)
		if err != nil {
			return err
		}

		if cmd.Bool("parse-content") {
			docs, err := dump.Documents(raw)
			if err != nil {
				return err
			}
			raw = dump.Render(dump.ParseContent(docs))
		}

		dumps = append(dumps, raw)
	}

	return differ.Diff(ctx, cmd, dumps, os.Stdout)
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and action handlers. Diff renders change hunks rather than document
// sets, so it takes only the flags it reads instead of the global output
// flags.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two database dumps",
		UsageText: "pestoctl diff A B [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			tldrFlag,
			parseContentFlag,
			cacheFlag,
			NewAccessKeyFlag("diff", meta.Config.Source),
			NewServerURLFlag("diff", meta.Config.Source),
			&cli.StringFlag{
				Name:  "diff-filter",
				Usage: "comma-separated fields to drop from both sides before comparing",
				Value: "_rev",
			},
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output",
				Value:   false,
			},
		},
		Action: diffCommandAction,
	}
}
