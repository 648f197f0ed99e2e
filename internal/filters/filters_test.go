// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// parseCase represents a single test case for TestParsePredicate.
type parseCase struct {
	Name        string   `yaml:"name"`
	Expr        string   `yaml:"expr"`
	WantPath    []string `yaml:"wantPath"`
	WantOp      string   `yaml:"wantOp"`
	WantOperand string   `yaml:"wantOperand"`
	WantErr     bool     `yaml:"wantErr"`
	ErrReason   string   `yaml:"errReason"`
}

// matchCase represents a single test case for TestPredicate_Match.
type matchCase struct {
	Name string                 `yaml:"name"`
	Doc  map[string]interface{} `yaml:"doc"`
	Expr string                 `yaml:"expr"`
	Want bool                   `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// parseDoc marshals a YAML-shaped document into a gjson result.
func parseDoc(t *testing.T, doc map[string]interface{}) gjson.Result {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return gjson.ParseBytes(b)
}

func TestParsePredicate(t *testing.T) {
	var tests []parseCase
	err := loadTestData("parse_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			p, err := ParsePredicate(tt.Expr)

			if tt.WantErr {
				require.Error(t, err)
				var perr *ParseError
				require.True(t, errors.As(err, &perr), "want a ParseError, got %T", err)
				assert.Equal(t, tt.Expr, perr.Expr)
				if tt.ErrReason != "" {
					assert.Contains(t, perr.Reason, tt.ErrReason)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.WantPath, p.Path)
			assert.Equal(t, Operator(tt.WantOp), p.Op)
			assert.Equal(t, tt.WantOperand, p.Operand)
		})
	}
}

func TestPredicate_Match(t *testing.T) {
	var tests []matchCase
	err := loadTestData("match_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			p, err := ParsePredicate(tt.Expr)
			require.NoError(t, err)

			got := p.Match(parseDoc(t, tt.Doc))
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestParseFilterSet(t *testing.T) {
	set, err := ParseFilterSet([]string{"type=note", "created_at>=2021-01-12"})
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, OpEQ, set[0].Op)
	assert.Equal(t, OpGTE, set[1].Op)

	// First malformed expression aborts the whole parse.
	_, err = ParseFilterSet([]string{"type=note", "justsometext"})
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "justsometext", perr.Expr)

	// No expressions at all is a valid, empty set.
	set, err = ParseFilterSet(nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestPredicate_String(t *testing.T) {
	for _, expr := range []string{
		"type=setting",
		"tags__in=sleep",
		"fragments.form.data.animal=Cat",
		"created_at>=2021-01-12",
	} {
		p, err := ParsePredicate(expr)
		require.NoError(t, err)
		assert.Equal(t, expr, p.String())
	}
}

// mustDocs builds a gjson slice from raw JSON documents.
func mustDocs(t *testing.T, raws ...string) []gjson.Result {
	t.Helper()
	docs := make([]gjson.Result, 0, len(raws))
	for _, raw := range raws {
		require.True(t, gjson.Valid(raw), "bad test document: %s", raw)
		docs = append(docs, gjson.Parse(raw))
	}
	return docs
}

// mustSet parses filter expressions that the test requires to be valid.
func mustSet(t *testing.T, exprs ...string) FilterSet {
	t.Helper()
	set, err := ParseFilterSet(exprs)
	require.NoError(t, err)
	return set
}

func TestApply_TypeEquality(t *testing.T) {
	docs := mustDocs(t,
		`{"type":"setting"}`,
		`{"type":"collection"}`,
	)

	kept := Apply(docs, mustSet(t, "type=setting"), nil)

	require.Len(t, kept, 1)
	assert.Equal(t, "setting", kept[0].Get("type").String())
}

func TestApply_TagMembership(t *testing.T) {
	docs := mustDocs(t, `{"tags":["sleep","work"]}`)

	kept := Apply(docs, mustSet(t, "tags__in=sleep"), nil)

	assert.Len(t, kept, 1)
}

func TestApply_CreatedAtRange(t *testing.T) {
	in := `{"created_at":"2021-06-01"}`
	out := `{"created_at":"2020-01-01"}`
	set := mustSet(t, "created_at>=2021-01-12", "created_at<=2022-01-01")

	kept := Apply(mustDocs(t, in, out), set, nil)

	require.Len(t, kept, 1)
	assert.Equal(t, "2021-06-01", kept[0].Get("created_at").String())
}

func TestApply_FragmentPath(t *testing.T) {
	docs := mustDocs(t,
		`{"fragments":[{"type":"form","form":{"data":{"animal":"Cat"}}}]}`,
		`{"fragments":[{"type":"form","form":{"data":{"animal":"Dog"}}}]}`,
	)

	kept := Apply(docs, mustSet(t, "fragments.form.data.animal=Cat"), nil)

	assert.Len(t, kept, 1)
}

func TestApply_EmptySetIsIdentity(t *testing.T) {
	docs := mustDocs(t,
		`{"type":"note","n":1}`,
		`{"type":"setting","n":2}`,
		`{"type":"note","n":3}`,
	)

	kept := Apply(docs, nil, nil)

	require.Len(t, kept, len(docs))
	for i := range docs {
		assert.Equal(t, docs[i].Raw, kept[i].Raw, "order must be preserved")
	}
}

func TestApply_Excludes(t *testing.T) {
	docs := mustDocs(t,
		`{"type":"note","tags":["sleep"]}`,
		`{"type":"note","tags":["work"]}`,
		`{"type":"setting"}`,
	)

	// Keep notes, drop the ones tagged work.
	kept := Apply(docs, mustSet(t, "type=note"), mustSet(t, "tags__in=work"))

	require.Len(t, kept, 1)
	assert.Equal(t, `["sleep"]`, kept[0].Get("tags").Raw)

	// Excludes alone still see every document.
	kept = Apply(docs, nil, mustSet(t, "type=setting"))
	assert.Len(t, kept, 2)
}

func TestApply_Composes(t *testing.T) {
	docs := mustDocs(t,
		`{"type":"note","created_at":"2021-06-01"}`,
		`{"type":"note","created_at":"2019-02-03"}`,
		`{"type":"setting","created_at":"2021-07-11"}`,
		`{"type":"note"}`,
	)
	f1 := mustSet(t, "type=note")
	f2 := mustSet(t, "created_at>=2021-01-12")

	sequential := Apply(Apply(docs, f1, nil), f2, nil)
	combined := Apply(docs, append(append(FilterSet{}, f1...), f2...), nil)

	require.Len(t, sequential, 1)
	require.Len(t, combined, 1)
	assert.Equal(t, sequential[0].Raw, combined[0].Raw)
}

// TestApply_MatchesConjunction cross-checks Apply against a direct
// every-predicate scan over randomized documents and filter sets.
func TestApply_MatchesConjunction(t *testing.T) {
	rng := rand.New(rand.NewSource(20260825))

	types := []string{"note", "setting", "collection"}
	tags := []string{"sleep", "work", "mood", "dream"}
	dates := []string{"2019-05-01", "2020-01-01", "2021-06-01", "2022-01-31"}
	exprPool := []string{
		"type=note",
		"type=setting",
		"tags__in=sleep",
		"tags__in=work",
		"created_at>=2021-01-12",
		"created_at<=2021-12-31",
		"created_at>2019-12-31",
		"fragments.form.data.mood>=3",
	}

	randomDoc := func() string {
		doc := map[string]interface{}{
			"type":       types[rng.Intn(len(types))],
			"created_at": dates[rng.Intn(len(dates))],
			"tags":       []string{tags[rng.Intn(len(tags))], tags[rng.Intn(len(tags))]},
		}
		if rng.Intn(2) == 0 {
			doc["fragments"] = []interface{}{
				map[string]interface{}{
					"type": "form",
					"form": map[string]interface{}{
						"data": map[string]interface{}{"mood": rng.Intn(5) + 1},
					},
				},
			}
		}
		b, err := json.Marshal(doc)
		require.NoError(t, err)
		return string(b)
	}

	for round := 0; round < 50; round++ {
		var raws []string
		for i := 0; i < 20; i++ {
			raws = append(raws, randomDoc())
		}
		docs := mustDocs(t, raws...)

		var exprs []string
		for i := 0; i < rng.Intn(4); i++ {
			exprs = append(exprs, exprPool[rng.Intn(len(exprPool))])
		}
		set := mustSet(t, exprs...)

		kept := Apply(docs, set, nil)

		var want []gjson.Result
		for _, doc := range docs {
			all := true
			for _, p := range set {
				if !p.Match(doc) {
					all = false
					break
				}
			}
			if all {
				want = append(want, doc)
			}
		}

		require.Len(t, kept, len(want), "round %d: exprs=%v", round, exprs)
		for i := range want {
			assert.Equal(t, want[i].Raw, kept[i].Raw)
		}
	}
}

func TestFilterSet_AnyMatch(t *testing.T) {
	doc := parseDoc(t, map[string]interface{}{"type": "note"})

	assert.False(t, FilterSet(nil).AnyMatch(doc))
	assert.True(t, mustSet(t, "type=setting", "type=note").AnyMatch(doc))
	assert.False(t, mustSet(t, "type=setting").AnyMatch(doc))
}

func BenchmarkApply(b *testing.B) {
	var raws []string
	for i := 0; i < 1000; i++ {
		raws = append(raws, fmt.Sprintf(
			`{"type":"note","created_at":"2021-%02d-01","tags":["t%d"],"fragments":[{"type":"form","form":{"data":{"mood":%d}}}]}`,
			i%12+1, i%7, i%5+1))
	}
	docs := make([]gjson.Result, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, gjson.Parse(raw))
	}
	set, err := ParseFilterSet([]string{"type=note", "fragments.form.data.mood>=3", "created_at<=2021-06-30"})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Apply(docs, set, nil)
	}
}
