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
	"sort"

	"github.com/adserving/betree"
	"github.com/adserving/betree/event"
)

// SetOperand is one side of a Set expression: either a scalar/list
// variable (an attribute reference) or a literal. Exactly one side of a
// Set must be a variable (spec.md §4.1); NewSet enforces this.
type SetOperand struct {
	IsVariable bool
	AttrName   string

	IsString bool
	IntLit   int64
	StrLit   string

	IntList []int64
	StrList []string
}

// VarOperand builds a variable-side SetOperand referencing attr.
func VarOperand(attr string) SetOperand { return SetOperand{IsVariable: true, AttrName: attr} }

// IntOperand builds a literal int scalar SetOperand.
func IntOperand(v int64) SetOperand { return SetOperand{IntLit: v} }

// StringOperand builds a literal string scalar SetOperand.
func StringOperand(v string) SetOperand { return SetOperand{IsString: true, StrLit: v} }

// IntListOperand builds a literal integer-list SetOperand.
func IntListOperand(vs []int64) SetOperand { return SetOperand{IntList: vs} }

// StringListOperand builds a literal string-list SetOperand.
func StringListOperand(vs []string) SetOperand { return SetOperand{IsString: true, StrList: vs} }

// Set is IN/NOT_IN membership between a scalar side and a list side
// (spec.md §4.1, §4.4). Exactly one of Left/Right is a variable.
type Set struct {
	Op          SetOp
	Left, Right SetOperand

	leftAttrID     int
	rightAttrID    int
	leftStringID   int
	rightStringIDs []int
	predicateID    int
}

// NewSet builds a Set expression. It panics via ErrInvalidSetShape if
// neither or both sides are variables.
func NewSet(op SetOp, left, right SetOperand) *Set {
	if left.IsVariable == right.IsVariable {
		betree.Raise(betree.ErrInvalidSetShape.New(), nil)
	}
	return &Set{Op: op, Left: left, Right: right, leftAttrID: noID, rightAttrID: noID, leftStringID: noID, predicateID: noID}
}

func (n *Set) PredicateID() int       { return n.predicateID }
func (n *Set) Children() []Expression { return nil }

func (n *Set) String() string {
	op := "IN"
	if n.Op == NOT_IN {
		op = "NOT IN"
	}
	return fmt.Sprintf("(%s %s %s)", operandString(n.Left), op, operandString(n.Right))
}

func operandString(o SetOperand) string {
	if o.IsVariable {
		return o.AttrName
	}
	if o.IsString {
		if len(o.StrList) > 0 {
			return fmt.Sprintf("%v", o.StrList)
		}
		return fmt.Sprintf("%q", o.StrLit)
	}
	return fmt.Sprintf("%v", o.IntLit)
}

func (n *Set) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		member := n.member(rs, ev)
		if n.Op == NOT_IN {
			return !member
		}
		return member
	})
}

// member reports whether the scalar side's event value is present in
// the list side's event value, resolving whichever side is the literal
// at build time and whichever is the variable against ev at eval time.
func (n *Set) member(rs *betree.RuleSet, ev *event.Event) bool {
	if n.Left.IsVariable {
		v, defined := lookupValue(rs, ev, n.leftAttrID)
		if !defined {
			return false
		}
		if n.Right.IsString {
			requireKind(rs, n.leftAttrID, betree.KindString, v.Kind)
		} else {
			requireKind(rs, n.leftAttrID, betree.KindInteger, v.Kind)
		}
		return n.scalarInLiteralList(v)
	}
	v, defined := lookupValue(rs, ev, n.rightAttrID)
	if !defined {
		return false
	}
	if n.Left.IsString {
		requireKind(rs, n.rightAttrID, betree.KindStringList, v.Kind)
	} else {
		requireKind(rs, n.rightAttrID, betree.KindIntegerList, v.Kind)
	}
	return n.literalInEventList(v)
}

func (n *Set) scalarInLiteralList(v betree.Value) bool {
	if n.Right.IsString {
		for _, id := range n.rightStringIDs {
			if id >= 0 && v.Str.StringID == id {
				return true
			}
		}
		return false
	}
	for _, x := range n.Right.IntList {
		if v.Int == x {
			return true
		}
	}
	return false
}

func (n *Set) literalInEventList(v betree.Value) bool {
	if n.Left.IsString {
		for _, sv := range v.StringList {
			if n.leftStringID >= 0 && sv.StringID == n.leftStringID {
				return true
			}
		}
		return false
	}
	for _, x := range v.IntList {
		if x == n.Left.IntLit {
			return true
		}
	}
	return false
}

// BoundOver narrows a scalar variable side's interval to the literal
// list's [min, max] on IN; NOT_IN falls back to the full domain since
// "not one of these values" does not produce a useful contiguous range.
// When the variable side is the list, the accumulator is left unchanged.
func (n *Set) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	if !n.Left.IsVariable || n.leftAttrID != domain.AttributeID {
		return acc, touched
	}
	op := n.Op
	if reversed {
		if op == IN {
			op = NOT_IN
		} else {
			op = IN
		}
	}
	if op == NOT_IN || len(n.Right.IntList) == 0 && len(n.rightStringIDs) == 0 {
		return betree.Full(domain), true
	}
	switch domain.Kind {
	case betree.KindInteger:
		ints := append([]int64(nil), n.Right.IntList...)
		sort.Slice(ints, func(i, j int) bool { return ints[i] < ints[j] })
		acc.ILo = minI64(acc.ILo, ints[0])
		acc.IHi = maxI64(acc.IHi, ints[len(ints)-1])
	case betree.KindString:
		ids := append([]int(nil), n.rightStringIDs...)
		sort.Ints(ids)
		acc.SLo = minInt(acc.SLo, ids[0])
		acc.SHi = maxInt(acc.SHi, ids[len(ids)-1])
	}
	return acc, true
}

func (n *Set) assignVariableID(rs *betree.RuleSet) {
	if n.Left.IsVariable && n.leftAttrID == noID {
		n.leftAttrID = resolveAttr(rs, n.Left.AttrName)
	}
	if n.Right.IsVariable && n.rightAttrID == noID {
		n.rightAttrID = resolveAttr(rs, n.Right.AttrName)
	}
}

// assignStringID interns whichever side is the string literal, scoped
// to the variable side's attribute (the Set predicate only ever compares
// values drawn from one attribute's string dictionary).
func (n *Set) assignStringID(rs *betree.RuleSet) {
	if n.Left.IsVariable {
		if !n.Right.IsString || len(n.Right.StrList) == 0 || n.rightStringIDs != nil {
			return
		}
		n.rightStringIDs = make([]int, 0, len(n.Right.StrList))
		for _, s := range n.Right.StrList {
			if id, ok := rs.InternString(n.leftAttrID, s); ok {
				n.rightStringIDs = append(n.rightStringIDs, id)
			} else {
				n.rightStringIDs = append(n.rightStringIDs, -1)
			}
		}
		return
	}
	if !n.Left.IsString || n.leftStringID != noID {
		return
	}
	if id, ok := rs.InternString(n.rightAttrID, n.Left.StrLit); ok {
		n.leftStringID = id
	} else {
		n.leftStringID = -1
	}
}

type setKey struct {
	Op          SetOp
	LeftAttr    int
	RightAttr   int
	LeftInt     int64
	LeftStrID   int
	RightInts   []int64
	RightStrIDs []int
}

func (n *Set) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(setKey{
		Op: n.Op, LeftAttr: n.leftAttrID, RightAttr: n.rightAttrID,
		LeftInt: n.Left.IntLit, LeftStrID: n.leftStringID,
		RightInts:   n.Right.IntList,
		RightStrIDs: n.rightStringIDs,
	})
}
