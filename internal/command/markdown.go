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
	"github.com/pesto-garden/pestoctl/internal/markdown"
	"github.com/pesto-garden/pestoctl/internal/meta"
	"github.com/pesto-garden/pestoctl/internal/util"
)

// markdownCommandAction is the action handler for the "build-markdown"
// subcommand. It reads a dump from a file or stdin and renders one markdown
// file per document into OUTPUT_DIR.
func markdownCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "build-markdown") {
		return nil
	}

	config.Config.Namespace = "build-markdown"

	input := cmd.Args().First()
	if input == "" {
		input = "-"
	}

	outputDir := cmd.Args().Get(1)
	if outputDir == "" {
		return fmt.Errorf("build-markdown requires an OUTPUT_DIR argument")
	}
	outputDir, err := util.ParseOutputDir(outputDir)
	if err != nil {
		return err
	}

	docs, err := dump.Load(input)
	if err != nil {
		return err
	}

	if cmd.Bool("parse-content") {
		docs = dump.ParseContent(docs)
	}

	var tmpl string
	if path := cmd.String("template"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		tmpl = string(b)
	}

	opts := markdown.Options{
		OutputDir:         outputDir,
		FileName:          cmd.String("file-name"),
		Template:          tmpl,
		Aliases:           cmd.StringSlice("aliases"),
		Defaults:          cmd.StringSlice("defaults"),
		Overrides:         cmd.StringSlice("overrides"),
		FrontMatter:       cmd.Bool("front-matter"),
		FrontMatterFields: cmd.String("front-matter-fields"),
		Annotations:       cmd.Bool("annotations"),
		DryRun:            cmd.Bool("dry-run"),
		Force:             cmd.Bool("force"),
	}

	return markdown.Build(dump.Maps(docs), opts, os.Stderr)
}

// markdownCommandBuilder constructs the cli.Command for "build-markdown",
// wiring metadata, flags, and action handlers. The command writes files
// rather than emitting a document set, so it takes its own flags instead of
// the global output flags (whose -a and -o shorthands it reuses).
func markdownCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "build-markdown",
		Usage:     "build markdown posts from a database dump",
		UsageText: "pestoctl build-markdown INPUT OUTPUT_DIR [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			tldrFlag,
			parseContentFlag,
			&cli.StringFlag{
				Name:  "file-name",
				Usage: "file name pattern with {key} placeholders",
				Value: "{created_at}.md",
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "path to a custom template, replacing the built-in one",
			},
			&cli.BoolFlag{
				Name:  "annotations",
				Usage: "keep @annotations in the rendered body",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "front-matter",
				Usage: "expose a front_matter map to the template",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "front-matter-fields",
				Usage: "title,date,layout,category",
			},
			&cli.StringSliceFlag{
				Name:    "aliases",
				Aliases: []string{"a"},
				Usage:   "date=created_at",
			},
			&cli.StringSliceFlag{
				Name:    "defaults",
				Aliases: []string{"d"},
				Usage:   "layout=something.html",
			},
			&cli.StringSliceFlag{
				Name:    "overrides",
				Aliases: []string{"o"},
				Usage:   "category=Posts",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report what would be written without writing",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite existing files",
				Value: false,
			},
		},
		Action: markdownCommandAction,
	}
}
