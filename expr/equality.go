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

	"github.com/spf13/cast"

	"github.com/adserving/betree"
	"github.com/adserving/betree/event"
)

// Equality is EQ/NE against an integer, float or string literal
// (spec.md §4.1). String equality resolves its literal to an interned
// string id at build time rather than comparing bytes at eval time.
type Equality struct {
	Op       EqOp
	AttrName string
	Kind     betree.ValueKind

	IntLit    int64
	FloatLit  float64
	StringLit string

	attrID         int
	stringID       int
	hasStringID    bool
	stringAssigned bool
	predicateID    int
}

// NewEquality builds an Equality node. kind selects which literal field
// lit is coerced into.
func NewEquality(op EqOp, attr string, kind betree.ValueKind, lit interface{}) *Equality {
	n := &Equality{Op: op, AttrName: attr, Kind: kind, attrID: noID, predicateID: noID}
	var err error
	switch kind {
	case betree.KindInteger:
		n.IntLit, err = cast.ToInt64E(lit)
	case betree.KindFloat:
		n.FloatLit, err = cast.ToFloat64E(lit)
	case betree.KindString:
		n.StringLit, err = cast.ToStringE(lit)
	default:
		err = fmt.Errorf("unsupported equality kind %s", kind)
	}
	if err != nil {
		panic(fmt.Errorf("betree: equality literal for %q: %w", attr, err))
	}
	return n
}

func (n *Equality) PredicateID() int       { return n.predicateID }
func (n *Equality) Children() []Expression { return nil }

func (n *Equality) String() string {
	switch n.Kind {
	case betree.KindInteger:
		return fmt.Sprintf("%s %s %d", n.AttrName, n.Op, n.IntLit)
	case betree.KindFloat:
		return fmt.Sprintf("%s %s %v", n.AttrName, n.Op, n.FloatLit)
	default:
		return fmt.Sprintf("%s %s %q", n.AttrName, n.Op, n.StringLit)
	}
}

func (n *Equality) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		v, defined := lookupValue(rs, ev, n.attrID)
		if !defined {
			return false
		}
		requireKind(rs, n.attrID, n.Kind, v.Kind)

		var eq bool
		switch n.Kind {
		case betree.KindInteger:
			eq = v.Int == n.IntLit
		case betree.KindFloat:
			eq = betree.FEqTol(v.Float, n.FloatLit, rs.Config.Epsilon)
		case betree.KindString:
			eq = n.hasStringID && v.Str.StringID == n.stringID
		}
		if n.Op == NE {
			return !eq
		}
		return eq
	})
}

// BoundOver narrows a scalar interval to the single literal value on
// EQ, or widens to the full domain on NE (there is no useful bound for
// "not exactly one value" besides the domain itself).
func (n *Equality) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	if n.attrID != domain.AttributeID {
		return acc, touched
	}
	op := n.Op
	if reversed {
		op = op.complement()
	}
	switch n.Kind {
	case betree.KindInteger:
		if op == EQ {
			acc.ILo = minI64(acc.ILo, n.IntLit)
			acc.IHi = maxI64(acc.IHi, n.IntLit)
		} else {
			acc.ILo = domain.Bounds.IMin
			acc.IHi = domain.Bounds.IMax
		}
	case betree.KindFloat:
		if op == EQ {
			acc.FLo = minF64(acc.FLo, n.FloatLit)
			acc.FHi = maxF64(acc.FHi, n.FloatLit)
		} else {
			acc.FLo = domain.Bounds.FMin
			acc.FHi = domain.Bounds.FMax
		}
	case betree.KindString:
		if op == EQ && n.hasStringID {
			acc.SLo = minInt(acc.SLo, n.stringID)
			acc.SHi = maxInt(acc.SHi, n.stringID)
		} else if domain.Bounds.StringBounded {
			acc.SLo = domain.Bounds.SMin
			acc.SHi = domain.Bounds.SMax
		}
	}
	return acc, true
}

func (n *Equality) assignVariableID(rs *betree.RuleSet) {
	if n.attrID != noID {
		return
	}
	n.attrID = resolveAttr(rs, n.AttrName)
}

func (n *Equality) assignStringID(rs *betree.RuleSet) {
	if n.Kind != betree.KindString || n.stringAssigned {
		return
	}
	n.stringAssigned = true
	id, ok := rs.InternString(n.attrID, n.StringLit)
	if ok {
		n.stringID = id
		n.hasStringID = true
	} else {
		n.stringID = -1
	}
}

type equalityKey struct {
	Op        EqOp
	AttrID    int
	Kind      betree.ValueKind
	IntLit    int64
	FloatLit  float64
	StringID  int
}

func (n *Equality) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(equalityKey{
		Op: n.Op, AttrID: n.attrID, Kind: n.Kind, IntLit: n.IntLit, FloatLit: n.FloatLit, StringID: n.stringID,
	})
}
