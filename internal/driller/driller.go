// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"github.com/tidwall/gjson"
)

// Drill resolves a dotted field path against a document and returns every
// value the path reaches. A path may fan out when it crosses an array of
// sub-objects (a fragments list, say), so the result can hold zero, one or
// many values. A miss is not an error; it just contributes nothing.
//
// The walk keeps a set of candidate values, starting with the document
// itself. Each segment advances every candidate:
//
//   - an object containing the segment descends into that member;
//   - an array descends into each element that is an object, either through
//     the element's own member of that name, or through the element's typed
//     child. Pesto nests typed children one level deep, as in
//     {"type": "form", "form": {...}}, so an element without the segment is
//     given a second chance via the sub-object named by its "type" field;
//   - everything else drops out of the candidate set.
func Drill(doc gjson.Result, path []string) []gjson.Result {
	candidates := []gjson.Result{doc}

	for _, segment := range path {
		next := make([]gjson.Result, 0, len(candidates))
		for _, candidate := range candidates {
			next = append(next, descend(candidate, segment)...)
		}

		candidates = next

		// Every candidate missed, so go home early.
		if len(candidates) == 0 {
			break
		}
	}

	return candidates
}

// descend advances a single candidate value through one path segment.
func descend(v gjson.Result, segment string) []gjson.Result {
	switch {
	case v.IsObject():
		if m, ok := member(v, segment); ok {
			return []gjson.Result{m}
		}

	case v.IsArray():
		var matched []gjson.Result
		for _, elem := range v.Array() {
			if !elem.IsObject() {
				continue
			}

			// A direct member wins over the typed-child convention.
			if m, ok := member(elem, segment); ok {
				matched = append(matched, m)
				continue
			}

			// Typed child: the "type" field names a same-named sub-object
			// holding the details.
			tag, ok := member(elem, "type")
			if !ok || tag.Type != gjson.String {
				continue
			}
			if sub, ok := member(elem, tag.Str); ok && sub.IsObject() {
				if m, ok := member(sub, segment); ok {
					matched = append(matched, m)
				}
			}
		}
		return matched
	}

	return nil
}

// member looks up an object member by its exact name. Segments are field
// names, not queries, so gjson path syntax (which gives '*' and '?' pattern
// meaning) is deliberately bypassed.
func member(v gjson.Result, name string) (gjson.Result, bool) {
	var out gjson.Result
	var found bool
	v.ForEach(func(key, value gjson.Result) bool {
		if key.Str == name {
			out = value
			found = true
			return false
		}
		return true
	})
	return out, found
}
