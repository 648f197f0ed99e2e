// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pesto-garden/pestoctl/internal/driller"
)

// Operator is a comparison operator recognized in a filter expression. The
// constant values are the literal tokens as they appear on the command line.
type Operator string

const (
	OpEQ  Operator = "="
	OpIN  Operator = "__in="
	OpGTE Operator = ">="
	OpLTE Operator = "<="
	OpGT  Operator = ">"
	OpLT  Operator = "<"
)

// opScanOrder is the order in which operator tokens are probed while parsing.
// Longer tokens come before their ambiguous prefixes: ">=" and "<=" before
// ">" and "<", and "__in=" before "=", so neither is misparsed.
var opScanOrder = []Operator{OpGTE, OpLTE, OpIN, OpGT, OpLT, OpEQ}

// Predicate is a single parsed --filter expression: a dotted field path, an
// operator and the raw operand. The operand stays a string; typed
// interpretation happens at match time because document fields are
// heterogeneous.
type Predicate struct {
	Path    []string `yaml:"path" json:"Path"`
	Op      Operator `yaml:"op" json:"Op"`
	Operand string   `yaml:"operand" json:"Operand"`
}

// String reassembles the predicate into its expression form.
func (p Predicate) String() string {
	return strings.Join(p.Path, ".") + string(p.Op) + p.Operand
}

// ParseError reports a malformed filter expression. Parsing is the only
// phase that can fail; matching never does.
type ParseError struct {
	Expr   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Expr, e.Reason)
}

// ParsePredicate parses one filter expression of the form
// <dotted.field.path><op><operand>. The first operator token found in scan
// order splits the expression at that token's leftmost occurrence.
func ParsePredicate(expr string) (Predicate, error) {
	if expr == "" {
		return Predicate{}, &ParseError{Expr: expr, Reason: "empty expression"}
	}

	for _, op := range opScanOrder {
		idx := strings.Index(expr, string(op))
		if idx < 0 {
			continue
		}

		lhs := expr[:idx]
		rhs := expr[idx+len(op):]

		if lhs == "" {
			return Predicate{}, &ParseError{Expr: expr, Reason: "empty field path"}
		}
		if rhs == "" {
			return Predicate{}, &ParseError{Expr: expr, Reason: "empty operand"}
		}

		path := strings.Split(lhs, ".")
		for _, segment := range path {
			if segment == "" {
				return Predicate{}, &ParseError{Expr: expr, Reason: "empty field path segment"}
			}
		}

		return Predicate{Path: path, Op: op, Operand: rhs}, nil
	}

	return Predicate{}, &ParseError{Expr: expr, Reason: "no comparison operator"}
}

// Match reports whether the document satisfies the predicate. The field path
// may resolve to several values; one satisfying value is enough. A path that
// resolves to nothing never matches.
func (p Predicate) Match(doc gjson.Result) bool {
	for _, v := range driller.Drill(doc, p.Path) {
		if p.matchValue(v) {
			return true
		}
	}
	return false
}

// matchValue checks a single resolved value against the operator and operand.
func (p Predicate) matchValue(v gjson.Result) bool {
	switch p.Op {
	case OpEQ:
		return v.String() == p.Operand

	case OpIN:
		// Equality, widened by one level of membership when the value is a
		// list (tags__in=sleep against tags: [sleep, work]).
		if v.String() == p.Operand {
			return true
		}
		if v.IsArray() {
			for _, elem := range v.Array() {
				if elem.String() == p.Operand {
					return true
				}
			}
		}
		return false

	case OpGTE:
		return compare(v.String(), p.Operand) >= 0
	case OpLTE:
		return compare(v.String(), p.Operand) <= 0
	case OpGT:
		return compare(v.String(), p.Operand) > 0
	case OpLT:
		return compare(v.String(), p.Operand) < 0
	}

	return false
}

// compare orders a resolved value against the operand, returning <0, 0 or >0.
// Both sides numeric compares numerically, both sides ISO-8601 compares
// chronologically, anything else falls back to a lexicographic compare. The
// fallback means a mismatched comparison can never fail a whole scan.
func compare(value, operand string) int {
	if vn, ok := toFloat64(value); ok {
		if on, ok := toFloat64(operand); ok {
			switch {
			case vn < on:
				return -1
			case vn > on:
				return 1
			}
			return 0
		}
	}

	if vt, ok := toTime(value); ok {
		if ot, ok := toTime(operand); ok {
			switch {
			case vt.Before(ot):
				return -1
			case vt.After(ot):
				return 1
			}
			return 0
		}
	}

	return strings.Compare(value, operand)
}

// toFloat64 attempts to read a string as a number.
func toFloat64(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}

// dateLayouts are the accepted ISO-8601 shapes, from most to least specific.
// Pesto timestamps look like "2022-01-31T14:53:41.768Z"; plain dates come
// from hand-written filter operands.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// toTime attempts to read a string as an ISO-8601 date or timestamp.
func toTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterSet is an ordered collection of predicates combined with logical
// AND. The zero value matches every document.
type FilterSet []Predicate

// ParseFilterSet parses each expression in order. The first malformed
// expression aborts with its ParseError.
func ParseFilterSet(exprs []string) (FilterSet, error) {
	if len(exprs) == 0 {
		return nil, nil
	}

	set := make(FilterSet, 0, len(exprs))
	for _, expr := range exprs {
		p, err := ParsePredicate(expr)
		if err != nil {
			return nil, err
		}
		set = append(set, p)
	}
	return set, nil
}

// Match reports whether the document satisfies every predicate in the set.
func (s FilterSet) Match(doc gjson.Result) bool {
	for _, p := range s {
		if !p.Match(doc) {
			return false
		}
	}
	return true
}

// AnyMatch reports whether the document satisfies at least one predicate.
// An empty set matches nothing, so an absent --exclude excludes nothing.
func (s FilterSet) AnyMatch(doc gjson.Result) bool {
	for _, p := range s {
		if p.Match(doc) {
			return true
		}
	}
	return false
}

// Apply returns the documents that satisfy every include predicate and no
// exclude predicate. Input order is preserved and documents are never
// mutated, so Apply(Apply(docs, f1, nil), f2, nil) is Apply(docs, f1+f2, nil).
func Apply(docs []gjson.Result, include, exclude FilterSet) []gjson.Result {
	// Don't prealloc because we don't know what len will be and performance is
	// not critical.
	//nolint:prealloc
	var kept []gjson.Result

	for _, doc := range docs {
		if !include.Match(doc) {
			continue
		}
		if exclude.AnyMatch(doc) {
			continue
		}
		kept = append(kept, doc)
	}

	return kept
}
