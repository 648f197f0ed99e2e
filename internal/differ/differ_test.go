// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
)

func diffCommand(filter string) *cli.Command {
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "diff-filter", Value: filter},
			&cli.BoolFlag{Name: "color"},
		},
	}
	cmd.Metadata = make(map[string]interface{})
	return cmd
}

func TestDiff_Identical(t *testing.T) {
	a := []byte(`[{"_id":"one","type":"note"}]`)
	b := []byte(`[{"_id":"one","type":"note"}]`)

	var buf bytes.Buffer
	require.NoError(t, Diff(context.Background(), diffCommand(""), [][]byte{a, b}, &buf))
	assert.Contains(t, buf.String(), "The dumps are identical.")
}

// Sync order is not stable between downloads, so two dumps holding the same
// documents in a different order must compare as identical.
func TestDiff_OrderDoesNotMatter(t *testing.T) {
	a := []byte(`[{"_id":"a","n":1},{"_id":"b","n":2}]`)
	b := []byte(`[{"_id":"b","n":2},{"_id":"a","n":1}]`)

	var buf bytes.Buffer
	require.NoError(t, Diff(context.Background(), diffCommand(""), [][]byte{a, b}, &buf))
	assert.Contains(t, buf.String(), "The dumps are identical.")
}

func TestDiff_Modified(t *testing.T) {
	a := []byte(`[{"_id":"one","title":"Old"}]`)
	b := []byte(`[{"_id":"one","title":"New"}]`)

	var buf bytes.Buffer
	require.NoError(t, Diff(context.Background(), diffCommand(""), [][]byte{a, b}, &buf))

	assert.Contains(t, buf.String(), "Old")
	assert.Contains(t, buf.String(), "New")
}

func TestDiff_AddedDocument(t *testing.T) {
	a := []byte(`[{"_id":"one"}]`)
	b := []byte(`[{"_id":"one"},{"_id":"two","title":"Fresh"}]`)

	var buf bytes.Buffer
	require.NoError(t, Diff(context.Background(), diffCommand(""), [][]byte{a, b}, &buf))
	assert.Contains(t, buf.String(), "Fresh")
}

func TestDiff_FilterSuppressesChurn(t *testing.T) {
	a := []byte(`[{"_id":"one","_rev":"1-abc","title":"Same"}]`)
	b := []byte(`[{"_id":"one","_rev":"2-def","title":"Same"}]`)

	var buf bytes.Buffer
	require.NoError(t, Diff(context.Background(), diffCommand("_rev"), [][]byte{a, b}, &buf))
	assert.Contains(t, buf.String(), "The dumps are identical.")
}

func TestDiff_EmptySideIsNoop(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Diff(context.Background(), diffCommand(""), [][]byte{nil, []byte("[]")}, &buf))
	assert.Zero(t, buf.Len())
}

func TestDiff_BrokenDump(t *testing.T) {
	a := []byte(`{"not":"an array"}`)
	b := []byte(`[]`)

	var buf bytes.Buffer
	err := Diff(context.Background(), diffCommand(""), [][]byte{a, b}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal dump")
}

func TestWrap(t *testing.T) {
	raw := []byte(`[{"_id":"b","_rev":"2","x":1},{"_id":"a","_rev":"1","x":2}]`)

	wrapped, err := wrap(raw, "_rev,x")
	require.NoError(t, err)

	parsed := gjson.ParseBytes(wrapped)
	docs := parsed.Get("documents").Array()
	require.Len(t, docs, 2)

	// Sorted by _id with the filtered fields gone.
	assert.Equal(t, "a", docs[0].Get("_id").String())
	assert.Equal(t, "b", docs[1].Get("_id").String())
	assert.False(t, docs[0].Get("_rev").Exists())
	assert.False(t, docs[0].Get("x").Exists())
}
