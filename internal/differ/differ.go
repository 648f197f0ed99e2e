// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares two dumps and renders the delta. Output is written to w.
// If w is nil, os.Stdout is used.
func Diff(ctx context.Context, cmd *cli.Command, dumps [][]byte, w io.Writer) error {
	log.Debugf(">> differ()")

	if w == nil {
		w = os.Stdout
	}

	if len(dumps[0]) == 0 || len(dumps[1]) == 0 {
		return nil
	}

	log.Debugf("len(dumps): %d %d", len(dumps[0]), len(dumps[1]))

	filter := cmd.String("diff-filter")

	left, err := wrap(dumps[0], filter)
	if err != nil {
		return err
	}

	right, err := wrap(dumps[1], filter)
	if err != nil {
		return err
	}

	differ := gojsondiff.New()

	delta, err := differ.Compare(left, right)
	if err != nil {
		return fmt.Errorf("failed to compare dumps: %w", err)
	}

	if delta.Modified() {
		var jdoc map[string]interface{}
		if err := json.Unmarshal(left, &jdoc); err != nil {
			return fmt.Errorf("failed to unmarshal dump: %w", err)
		}

		config := formatter.AsciiFormatterConfig{
			ShowArrayIndex: true,
			Coloring:       cmd.Bool("color"),
		}

		formatter := formatter.NewAsciiFormatter(jdoc, config)
		diffString, err := formatter.Format(delta)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, diffString)
		return nil
	}

	fmt.Fprintln(w, "The dumps are identical.")
	return nil
}

// wrap normalizes a dump into a single JSON object keyed by "documents" so
// the differ has an object to compare. Dumps carry no ordering guarantee,
// so both sides are aligned by _id first, and any filtered fields are
// dropped from every document.
func wrap(raw []byte, filter string) ([]byte, error) {
	docs := make([]map[string]interface{}, 0)
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dump: %w", err)
	}

	for key := range strings.SplitSeq(filter, ",") {
		if key == "" {
			continue
		}
		for _, doc := range docs {
			delete(doc, key)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		one, _ := docs[i]["_id"].(string)
		two, _ := docs[j]["_id"].(string)
		return one < two
	})

	return json.Marshal(map[string]interface{}{"documents": docs})
}
