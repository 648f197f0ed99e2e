// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// Read returns the raw bytes of a dump read from path, or from stdin when
// path is "-".
func Read(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read dump from stdin: %w", err)
		}
		return data, nil
	}

	if info, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dump file does not exist: %s", path)
	} else if info.IsDir() {
		return nil, fmt.Errorf("dump input cannot be a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump file: %w", err)
	}

	return data, nil
}

// Documents parses raw dump bytes into individual documents. The top level
// of a dump must be a JSON array.
func Documents(raw []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid dump: not well-formed JSON")
	}

	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("invalid dump: expected a top-level JSON array of documents")
	}

	return parsed.Array(), nil
}

// Load reads and parses a dump in one shot.
func Load(path string) ([]gjson.Result, error) {
	raw, err := Read(path)
	if err != nil {
		return nil, err
	}

	return Documents(raw)
}

// ParseContent merges each document's encoded "content" member into the
// document itself. Pesto servers store the interesting fields of a document
// as a JSON string under "content"; merging it up makes those fields
// addressable by filter paths and templates. Documents without a usable
// content member pass through unchanged.
func ParseContent(docs []gjson.Result) []gjson.Result {
	out := make([]gjson.Result, 0, len(docs))
	for _, doc := range docs {
		out = append(out, mergeContent(doc))
	}

	return out
}

func mergeContent(doc gjson.Result) gjson.Result {
	if !doc.IsObject() {
		return doc
	}

	fields, err := decodeObject([]byte(doc.Raw))
	if err != nil {
		return doc
	}

	encoded, ok := fields["content"].(string)
	if !ok {
		return doc
	}

	payload, err := decodeObject([]byte(encoded))
	if err != nil {
		log.Warnf("failed to parse document content, leaving it encoded: %v", err)
		return doc
	}

	// Merge first and drop the envelope second, so that a "content" key
	// inside the payload itself is removed as well.
	for key, value := range payload {
		fields[key] = value
	}
	delete(fields, "content")

	merged, err := json.Marshal(fields)
	if err != nil {
		log.Warnf("failed to rebuild document: %v", err)
		return doc
	}

	return gjson.ParseBytes(merged)
}

// Maps decodes documents into generic maps for rendering and templating.
// Anything that is not a JSON object is skipped.
func Maps(docs []gjson.Result) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		fields, err := decodeObject([]byte(doc.Raw))
		if err != nil {
			log.Warnf("skipping non-object document: %v", err)
			continue
		}
		out = append(out, fields)
	}

	return out
}

// Render rebuilds a compact dump from individual documents, preserving each
// document's raw bytes.
func Render(docs []gjson.Result) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, doc := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(doc.Raw)
	}
	buf.WriteByte(']')

	return buf.Bytes()
}

// decodeObject decodes a JSON object keeping numbers as json.Number so that
// values round-trip without losing precision.
func decodeObject(raw []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}

	return fields, nil
}
