// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package driller

import (
	"embed"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// drillTestCase represents a single test case for TestDrill.
type drillTestCase struct {
	Name      string                 `yaml:"name"`
	JSON      map[string]interface{} `yaml:"json"`
	Path      string                 `yaml:"path"`
	Want      []string               `yaml:"want"`
	WantArray bool                   `yaml:"wantArray"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestDrill(t *testing.T) {
	var tests []drillTestCase
	err := loadTestData("drill_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			// Convert map to JSON for Drill.
			jsonBytes, err := json.Marshal(tt.JSON)
			require.NoError(t, err)
			doc := gjson.ParseBytes(jsonBytes)

			got := Drill(doc, strings.Split(tt.Path, "."))

			if tt.WantArray {
				require.Len(t, got, 1)
				assert.True(t, got[0].IsArray(), "expected an array value, got %v", got[0].Value())
				return
			}

			if len(tt.Want) == 0 {
				assert.Empty(t, got)
				return
			}

			gotStrs := make([]string, 0, len(got))
			for _, v := range got {
				gotStrs = append(gotStrs, v.String())
			}
			assert.Equal(t, tt.Want, gotStrs)
		})
	}
}

func TestDrill_DoesNotMutate(t *testing.T) {
	raw := `{"fragments":[{"type":"text","text":{"content":"hello"}}]}`
	doc := gjson.Parse(raw)

	_ = Drill(doc, []string{"fragments", "text", "content"})
	_ = Drill(doc, []string{"fragments", "content"})

	assert.Equal(t, raw, doc.Raw)
}

func TestDrill_LiteralSegments(t *testing.T) {
	// Segments with gjson pattern characters must be treated literally.
	doc := gjson.Parse(`{"a*":"star","a?":"question","ab":"plain"}`)

	got := Drill(doc, []string{"a*"})
	require.Len(t, got, 1)
	assert.Equal(t, "star", got[0].String())

	got = Drill(doc, []string{"a?"})
	require.Len(t, got, 1)
	assert.Equal(t, "question", got[0].String())
}
