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

// NumericCompare is LT/LE/GT/GE against an int64 or float64 literal
// (spec.md §4.1).
type NumericCompare struct {
	Op       CompareOp
	AttrName string
	IsFloat  bool
	IntLit   int64
	FloatLit float64

	attrID      int
	predicateID int
}

// NewNumericCompare builds a NumericCompare node. lit is coerced to the
// literal kind declared by isFloat via spf13/cast, matching the
// build-time API's contract that the external parser hands it whatever
// numeric representation it parsed the literal as.
func NewNumericCompare(op CompareOp, attr string, isFloat bool, lit interface{}) *NumericCompare {
	n := &NumericCompare{Op: op, AttrName: attr, IsFloat: isFloat, attrID: noID, predicateID: noID}
	if isFloat {
		v, err := cast.ToFloat64E(lit)
		if err != nil {
			panic(fmt.Errorf("betree: numeric compare literal for %q is not a float: %w", attr, err))
		}
		n.FloatLit = v
	} else {
		v, err := cast.ToInt64E(lit)
		if err != nil {
			panic(fmt.Errorf("betree: numeric compare literal for %q is not an integer: %w", attr, err))
		}
		n.IntLit = v
	}
	return n
}

func (n *NumericCompare) PredicateID() int      { return n.predicateID }
func (n *NumericCompare) Children() []Expression { return nil }

func (n *NumericCompare) String() string {
	if n.IsFloat {
		return fmt.Sprintf("%s %s %v", n.AttrName, n.Op, n.FloatLit)
	}
	return fmt.Sprintf("%s %s %v", n.AttrName, n.Op, n.IntLit)
}

func (n *NumericCompare) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		v, defined := lookupValue(rs, ev, n.attrID)
		if !defined {
			return false
		}
		if n.IsFloat {
			requireKind(rs, n.attrID, betree.KindFloat, v.Kind)
			return compareFloat(n.Op, v.Float, n.FloatLit)
		}
		requireKind(rs, n.attrID, betree.KindInteger, v.Kind)
		return compareInt(n.Op, v.Int, n.IntLit)
	})
}

func compareInt(op CompareOp, a, b int64) bool {
	switch op {
	case LT:
		return a < b
	case LE:
		return a <= b
	case GT:
		return a > b
	case GE:
		return a >= b
	default:
		return false
	}
}

func compareFloat(op CompareOp, a, b float64) bool {
	switch op {
	case LT:
		return a < b
	case LE:
		return a <= b
	case GT:
		return a > b
	case GE:
		return a >= b
	default:
		return false
	}
}

func (n *NumericCompare) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	if n.attrID != domain.AttributeID {
		return acc, touched
	}
	op := n.Op
	if reversed {
		op = op.complement()
	}
	if n.IsFloat {
		return widenFloatCompare(op, acc, n.FloatLit, domain), true
	}
	return widenIntCompare(op, acc, n.IntLit, domain), true
}

func widenIntCompare(op CompareOp, acc betree.Interval, v int64, domain betree.AttributeDomain) betree.Interval {
	switch op {
	case LT:
		acc.ILo = domain.Bounds.IMin
		acc.IHi = maxI64(acc.IHi, v-1)
	case LE:
		acc.ILo = domain.Bounds.IMin
		acc.IHi = maxI64(acc.IHi, v)
	case GT:
		acc.ILo = minI64(acc.ILo, v+1)
		acc.IHi = domain.Bounds.IMax
	case GE:
		acc.ILo = minI64(acc.ILo, v)
		acc.IHi = domain.Bounds.IMax
	}
	return acc
}

// boundFloatEpsilon is the machine-epsilon stand-in bound derivation
// uses to open float LT/GT intervals (spec.md §4.3/§9).
const boundFloatEpsilon = 1e-12

func widenFloatCompare(op CompareOp, acc betree.Interval, v float64, domain betree.AttributeDomain) betree.Interval {
	switch op {
	case LT:
		acc.FLo = domain.Bounds.FMin
		acc.FHi = maxF64(acc.FHi, v-boundFloatEpsilon)
	case LE:
		acc.FLo = domain.Bounds.FMin
		acc.FHi = maxF64(acc.FHi, v)
	case GT:
		acc.FLo = minF64(acc.FLo, v+boundFloatEpsilon)
		acc.FHi = domain.Bounds.FMax
	case GE:
		acc.FLo = minF64(acc.FLo, v)
		acc.FHi = domain.Bounds.FMax
	}
	return acc
}

func (n *NumericCompare) assignVariableID(rs *betree.RuleSet) {
	if n.attrID != noID {
		return
	}
	n.attrID = resolveAttr(rs, n.AttrName)
}

func (n *NumericCompare) assignStringID(rs *betree.RuleSet) {}

type numericCompareKey struct {
	Op      CompareOp
	AttrID  int
	IsFloat bool
	IntLit  int64
	FloatLit float64
}

func (n *NumericCompare) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(numericCompareKey{
		Op: n.Op, AttrID: n.attrID, IsFloat: n.IsFloat, IntLit: n.IntLit, FloatLit: n.FloatLit,
	})
}
