// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters parses and evaluates the predicate expressions behind the
// --filter and --exclude flags.
//
// An expression is <dotted.field.path><op><operand>. Operators, probed in
// the order shown so that longer tokens win over their prefixes:
//
//   - >=    : at least (numeric, then date, then string ordering)
//   - <=    : at most
//   - __in= : membership; the operand equals the value or one of its elements
//   - >     : greater than
//   - <     : less than
//   - =     : exact match on the value's string form
//
// Examples:
//
//   - "type=setting" : documents whose type is exactly "setting"
//   - "tags__in=sleep" : documents whose tags list contains "sleep"
//   - "created_at>=2021-01-12" : documents created on or after that date
//   - "fragments.form.data.animal=Cat" : dotted paths descend into nested
//     objects and across arrays of typed sub-objects
//
// Field paths resolve through the driller package and may land on several
// values at once; a predicate holds when any resolved value satisfies it. A
// path that resolves to nothing fails the predicate without error.
//
// Ordering comparisons normalize both sides first: two numbers compare
// numerically, two ISO-8601 dates compare chronologically, anything else
// compares lexicographically. Matching never fails; only parsing can, with a
// ParseError.
//
// A FilterSet is a flat conjunction. There is no OR and no grouping, which
// keeps a repeated --filter flag unambiguous.
package filters
