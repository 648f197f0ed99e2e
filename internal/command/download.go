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
	"github.com/pesto-garden/pestoctl/internal/dump"
	"github.com/pesto-garden/pestoctl/internal/meta"
	"github.com/pesto-garden/pestoctl/internal/output"
)

// downloadCommandAction is the action handler for the "download" subcommand.
// It fetches the full document dump of a database from the server and emits
// the documents on stdout.
func downloadCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "download") {
		return nil
	}

	config.Config.Namespace = "download"

	database := cmd.Args().First()
	if database == "" {
		return fmt.Errorf("download requires a DATABASE argument")
	}

	ApplyCacheToggle(cmd)

	accessKey, err := client.AccessKey(cmd)
	if err != nil {
		return err
	}

	serverURL := cmd.String("server-url")
	url := client.DumpURL(serverURL, database)

	raw, err := client.Hit(ctx, url, accessKey)
	if err != nil {
		return client.Friendly(err, client.ErrorContext{
			Server:    serverURL,
			Database:  database,
			Operation: "download dump",
		})
	}

	docs, err := dump.Documents(raw)
	if err != nil {
		return err
	}

	if cmd.Bool("parse-content") {
		docs = dump.ParseContent(docs)
	}

	attrList := BuildAttrs(cmd)

	output.SliceDiceSpit(docs, attrList, cmd, os.Stdout, nil)

	fmt.Fprintf(os.Stderr, "%d documents found\n", len(docs))

	return nil
}

// downloadCommandBuilder constructs the cli.Command for "download", wiring
// metadata, flags, and action handlers.
func downloadCommandBuilder(meta meta.Meta) *cli.Command {
	return (&DumpCommandBuilder{
		Name:      "download",
		Usage:     "download a database dump",
		UsageText: "pestoctl download DATABASE [options]",
		Flags: []cli.Flag{
			NewAccessKeyFlag("download", meta.Config.Source),
			NewServerURLFlag("download", meta.Config.Source),
			parseContentFlag,
			cacheFlag,
		},
		Action: downloadCommandAction,
		Meta:   meta,
	}).Build()
}
