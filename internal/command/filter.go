// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/pesto-garden/pestoctl/internal/config"
	"github.com/pesto-garden/pestoctl/internal/dump"
	"github.com/pesto-garden/pestoctl/internal/filters"
	"github.com/pesto-garden/pestoctl/internal/meta"
	"github.com/pesto-garden/pestoctl/internal/output"
)

// filterCommandAction is the action handler for the "filter" subcommand. It
// reads a dump from a file or stdin, keeps the documents matching every
// --filter predicate and none of the --exclude predicates, and emits the
// survivors.
func filterCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "filter") {
		return nil
	}

	config.Config.Namespace = "filter"

	input := cmd.Args().First()
	if input == "" {
		input = "-"
	}

	docs, err := dump.Load(input)
	if err != nil {
		return err
	}

	include, err := filters.ParseFilterSet(cmd.StringSlice("filter"))
	if err != nil {
		return err
	}

	exclude, err := filters.ParseFilterSet(cmd.StringSlice("exclude"))
	if err != nil {
		return err
	}

	docs = filters.Apply(docs, include, exclude)

	attrList := BuildAttrs(cmd)

	output.SliceDiceSpit(docs, attrList, cmd, os.Stdout, nil)

	fmt.Fprintf(os.Stderr, "%d matching documents\n", len(docs))

	return nil
}

// filterCommandBuilder constructs the cli.Command for "filter", wiring
// metadata, flags, and action handlers.
func filterCommandBuilder(meta meta.Meta) *cli.Command {
	return (&DumpCommandBuilder{
		Name:      "filter",
		Usage:     "filter documents from a dump",
		UsageText: "pestoctl filter [INPUT] [options]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "keep documents matching the given field/value predicate",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "drop documents matching the given field/value predicate",
			},
		},
		Action: filterCommandAction,
		Meta:   meta,
	}).Build()
}
