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

package expr

import (
	"fmt"

	"github.com/adserving/betree"
	"github.com/adserving/betree/event"
)

// Variable is a bare bool-kind attribute reference used as a leaf on
// its own (spec.md §4.1: "a bool attribute may appear unadorned").
type Variable struct {
	AttrName string

	attrID      int
	predicateID int
}

func NewVariable(attr string) *Variable {
	return &Variable{AttrName: attr, attrID: noID, predicateID: noID}
}

func (n *Variable) PredicateID() int       { return n.predicateID }
func (n *Variable) Children() []Expression { return nil }
func (n *Variable) String() string         { return n.AttrName }

func (n *Variable) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		v, defined := lookupValue(rs, ev, n.attrID)
		if !defined {
			return false
		}
		requireKind(rs, n.attrID, betree.KindBool, v.Kind)
		return v.Bool
	})
}

func (n *Variable) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	if n.attrID != domain.AttributeID {
		return acc, touched
	}
	want := !reversed
	if want {
		acc.BLo, acc.BHi = true, true
	} else {
		acc.BLo, acc.BHi = false, false
	}
	return acc, true
}

func (n *Variable) assignVariableID(rs *betree.RuleSet) {
	if n.attrID != noID {
		return
	}
	n.attrID = resolveAttr(rs, n.AttrName)
}

func (n *Variable) assignStringID(rs *betree.RuleSet) {}

func (n *Variable) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(struct {
		Tag    string
		AttrID int
	}{"var", n.attrID})
}

// Not negates its child and flips reversed for bound derivation
// (spec.md §4.1, §4.3).
type Not struct {
	Child Expression

	predicateID int
}

func NewNot(child Expression) *Not {
	return &Not{Child: child, predicateID: noID}
}

func (n *Not) PredicateID() int       { return n.predicateID }
func (n *Not) Children() []Expression { return []Expression{n.Child} }
func (n *Not) String() string         { return fmt.Sprintf("NOT (%s)", n.Child.String()) }

func (n *Not) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		return !n.Child.Eval(rs, ev, memo, report, false)
	})
}

func (n *Not) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	return n.Child.BoundOver(domain, !reversed, acc, touched)
}

func (n *Not) assignVariableID(rs *betree.RuleSet) { n.Child.assignVariableID(rs) }
func (n *Not) assignStringID(rs *betree.RuleSet)   { n.Child.assignStringID(rs) }

func (n *Not) assignPredicateID(rs *betree.RuleSet) {
	n.Child.assignPredicateID(rs)
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(struct {
		Tag    string
		ChildID int
	}{"not", n.Child.PredicateID()})
}

// And is a binary, short-circuiting conjunction (spec.md §4.1). Longer
// conjunctions are built binary-nested (And{A, And{B, C}}) rather than
// flattened — matching the AST shape the build-time API hands the
// predicate interner.
type And struct {
	Left, Right Expression

	predicateID int
}

func NewAnd(left, right Expression) *And {
	return &And{Left: left, Right: right, predicateID: noID}
}

func (n *And) PredicateID() int       { return n.predicateID }
func (n *And) Children() []Expression { return []Expression{n.Left, n.Right} }
func (n *And) String() string         { return fmt.Sprintf("(%s AND %s)", n.Left.String(), n.Right.String()) }

func (n *And) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		return n.Left.Eval(rs, ev, memo, report, false) && n.Right.Eval(rs, ev, memo, report, false)
	})
}

// BoundOver threads the accumulator through both children in sequence —
// NOT a union-merge of two independently derived subtree bounds. A
// compound AND/OR widens progressively as each leaf referencing domain's
// attribute is visited, matching the single-accumulator walk the rest
// of the tree uses (spec.md §4.3).
func (n *And) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	acc, touched = n.Left.BoundOver(domain, reversed, acc, touched)
	return n.Right.BoundOver(domain, reversed, acc, touched)
}

func (n *And) assignVariableID(rs *betree.RuleSet) {
	n.Left.assignVariableID(rs)
	n.Right.assignVariableID(rs)
}

func (n *And) assignStringID(rs *betree.RuleSet) {
	n.Left.assignStringID(rs)
	n.Right.assignStringID(rs)
}

func (n *And) assignPredicateID(rs *betree.RuleSet) {
	n.Left.assignPredicateID(rs)
	n.Right.assignPredicateID(rs)
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(struct {
		Tag              string
		LeftID, RightID int
	}{"and", n.Left.PredicateID(), n.Right.PredicateID()})
}

// Or is a binary, short-circuiting disjunction (spec.md §4.1).
type Or struct {
	Left, Right Expression

	predicateID int
}

func NewOr(left, right Expression) *Or {
	return &Or{Left: left, Right: right, predicateID: noID}
}

func (n *Or) PredicateID() int       { return n.predicateID }
func (n *Or) Children() []Expression { return []Expression{n.Left, n.Right} }
func (n *Or) String() string         { return fmt.Sprintf("(%s OR %s)", n.Left.String(), n.Right.String()) }

func (n *Or) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		return n.Left.Eval(rs, ev, memo, report, false) || n.Right.Eval(rs, ev, memo, report, false)
	})
}

func (n *Or) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	acc, touched = n.Left.BoundOver(domain, reversed, acc, touched)
	return n.Right.BoundOver(domain, reversed, acc, touched)
}

func (n *Or) assignVariableID(rs *betree.RuleSet) {
	n.Left.assignVariableID(rs)
	n.Right.assignVariableID(rs)
}

func (n *Or) assignStringID(rs *betree.RuleSet) {
	n.Left.assignStringID(rs)
	n.Right.assignStringID(rs)
}

func (n *Or) assignPredicateID(rs *betree.RuleSet) {
	n.Left.assignPredicateID(rs)
	n.Right.assignPredicateID(rs)
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(struct {
		Tag              string
		LeftID, RightID int
	}{"or", n.Left.PredicateID(), n.Right.PredicateID()})
}
