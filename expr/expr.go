// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expr implements the expression AST (C4), its build-time id
// assignment, its evaluator (C6) and its bound derivation (C7). Node
// types are a closed sum — NumericCompare, Equality, the four Boolean
// shapes, Set, List and the four Special shapes — dispatched through the
// Expression interface rather than a type hierarchy (spec.md §9: "do not
// use inheritance — operator semantics are closed").
package expr

import (
	"github.com/sirupsen/logrus"

	"github.com/adserving/betree"
	"github.com/adserving/betree/event"
)

const noID = -1

// Expression is the closed-sum node interface every AST shape
// implements. Eval and BoundOver are C6/C7; the assign* methods back the
// build-time API in build.go; PredicateID exposes the id the predicate
// interner assigned (C8).
type Expression interface {
	// Eval recursively matches the node against ev, consulting memo when
	// non-nil and recording hits on report (spec.md §4.2). topLevel is
	// true only for the expression's root call.
	Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool

	// BoundOver threads a running (accumulator, touched) pair through the
	// tree, widening it whenever a leaf references domain's attribute
	// (spec.md §4.3). reversed flips under NOT.
	BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool)

	// Children returns the node's direct children, for validation walks.
	Children() []Expression

	// PredicateID returns the dense id the predicate interner assigned,
	// or noID before AssignPredicateID has run.
	PredicateID() int

	String() string

	assignVariableID(rs *betree.RuleSet)
	assignStringID(rs *betree.RuleSet)
	assignPredicateID(rs *betree.RuleSet)
}

// CompareOp is the operator set for NumericCompare nodes.
type CompareOp int

const (
	LT CompareOp = iota
	LE
	GT
	GE
)

func (o CompareOp) String() string {
	switch o {
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	default:
		return "?"
	}
}

// complement returns the operator NOT(op v) is equivalent to, used by
// bound derivation's reversed flag (spec.md §4.3: "reversed swaps each
// case").
func (o CompareOp) complement() CompareOp {
	switch o {
	case LT:
		return GE
	case GE:
		return LT
	case LE:
		return GT
	case GT:
		return LE
	default:
		return o
	}
}

// EqOp is the operator set for Equality nodes.
type EqOp int

const (
	EQ EqOp = iota
	NE
)

func (o EqOp) String() string {
	if o == EQ {
		return "=="
	}
	return "!="
}

func (o EqOp) complement() EqOp {
	if o == EQ {
		return NE
	}
	return EQ
}

// SetOp is the operator set for Set nodes.
type SetOp int

const (
	IN SetOp = iota
	NOT_IN
)

// ListOp is the operator set for List nodes.
type ListOp int

const (
	ONE_OF ListOp = iota
	NONE_OF
	ALL_OF
)

// SegOp is the operator set for Segment special nodes.
type SegOp int

const (
	WITHIN SegOp = iota
	BEFORE
)

// StrOp is the operator set for StringPredicate special nodes.
type StrOp int

const (
	CONTAINS StrOp = iota
	STARTS_WITH
	ENDS_WITH
)

// withMemo is the shared memoization wrapper every node's Eval uses
// (spec.md §4.2): on a memo hit, record the hit and return the cached
// bit; on a miss, evaluate, store exactly one of pass/fail, and return.
func withMemo(e Expression, memo *betree.Memo, report *betree.Report, topLevel bool, compute func() bool) bool {
	if memo != nil {
		if result, hit := memo.Lookup(e.PredicateID()); hit {
			report.RecordMemoHit(topLevel)
			return result
		}
	}
	result := compute()
	if memo != nil {
		memo.Store(e.PredicateID(), result)
	}
	return result
}

// lookupValue resolves the three-valued semantics of spec.md §4.2:
// DEFINED returns (value, true); UNDEFINED returns (zero, false);
// MISSING raises a fatal programming error.
func lookupValue(rs *betree.RuleSet, ev *event.Event, attrID int) (betree.Value, bool) {
	v, present := ev.Lookup(attrID)
	if present {
		return v, true
	}
	if rs.Registry().IsVariableAllowUndefined(attrID) {
		return betree.Value{}, false
	}
	name := rs.Registry().Name(attrID)
	betree.Raise(betree.ErrAttributeMissing.New(name), logrus.Fields{"attribute_id": attrID, "attribute": name})
	panic("unreachable")
}

// requireKind raises ErrTypeMismatch when the event's bound value kind
// does not match what the expression literal was built with (spec.md
// Property 1: type strictness).
func requireKind(rs *betree.RuleSet, attrID int, want, got betree.ValueKind) {
	if want == got {
		return
	}
	name := rs.Registry().Name(attrID)
	betree.Raise(betree.ErrTypeMismatch.New(name, want, got), logrus.Fields{"attribute_id": attrID, "attribute": name})
}

// resolveAttr looks up name in the registry and raises ErrUnknownAttribute
// when the build-time API references an attribute nobody registered
// (spec.md §4.2).
func resolveAttr(rs *betree.RuleSet, name string) int {
	id, ok := rs.Registry().GetIDForAttr(name)
	if !ok {
		betree.Raise(betree.ErrUnknownAttribute.New(name), logrus.Fields{"attribute": name})
	}
	return id
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minF64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
