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

// List tests the relationship between an event's list-valued attribute
// and a literal list (spec.md §4.1, §4.4): ONE_OF is non-empty
// intersection, NONE_OF is empty intersection, ALL_OF is literal subset
// of the event list.
type List struct {
	Op       ListOp
	AttrName string
	IsString bool

	IntLits []int64
	StrLits []string

	attrID      int
	strIDs      []int
	predicateID int
}

func NewIntList(op ListOp, attr string, lits []int64) *List {
	return &List{Op: op, AttrName: attr, IntLits: lits, attrID: noID, predicateID: noID}
}

func NewStringList(op ListOp, attr string, lits []string) *List {
	return &List{Op: op, AttrName: attr, IsString: true, StrLits: lits, attrID: noID, predicateID: noID}
}

func (n *List) PredicateID() int       { return n.predicateID }
func (n *List) Children() []Expression { return nil }

func (n *List) String() string {
	switch n.Op {
	case ONE_OF:
		return fmt.Sprintf("%s ONE_OF %v", n.AttrName, n.literalsForDisplay())
	case NONE_OF:
		return fmt.Sprintf("%s NONE_OF %v", n.AttrName, n.literalsForDisplay())
	default:
		return fmt.Sprintf("%s ALL_OF %v", n.AttrName, n.literalsForDisplay())
	}
}

func (n *List) literalsForDisplay() interface{} {
	if n.IsString {
		return n.StrLits
	}
	return n.IntLits
}

func (n *List) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		v, defined := lookupValue(rs, ev, n.attrID)
		if !defined {
			return false
		}
		switch n.Op {
		case ONE_OF:
			return n.intersects(v)
		case NONE_OF:
			return !n.intersects(v)
		default:
			return n.literalIsSubsetOf(v)
		}
	})
}

func (n *List) intersects(v betree.Value) bool {
	if n.IsString {
		for _, id := range n.strIDs {
			if id < 0 {
				continue
			}
			for _, sv := range v.StringList {
				if sv.StringID == id {
					return true
				}
			}
		}
		return false
	}
	set := make(map[int64]struct{}, len(v.IntList))
	for _, x := range v.IntList {
		set[x] = struct{}{}
	}
	for _, x := range n.IntLits {
		if _, ok := set[x]; ok {
			return true
		}
	}
	return false
}

// literalIsSubsetOf reports whether every literal in n appears in the
// event's list (ALL_OF).
func (n *List) literalIsSubsetOf(v betree.Value) bool {
	if n.IsString {
		for _, id := range n.strIDs {
			if id < 0 {
				return false
			}
			found := false
			for _, sv := range v.StringList {
				if sv.StringID == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	set := make(map[int64]struct{}, len(v.IntList))
	for _, x := range v.IntList {
		set[x] = struct{}{}
	}
	for _, x := range n.IntLits {
		if _, ok := set[x]; !ok {
			return false
		}
	}
	return true
}

// BoundOver is a no-op: List tests are over collection-kind attributes,
// which have no scalar bound to narrow (spec.md §4.3 scopes bound
// derivation to scalar domains).
func (n *List) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	return acc, touched
}

func (n *List) assignVariableID(rs *betree.RuleSet) {
	if n.attrID != noID {
		return
	}
	n.attrID = resolveAttr(rs, n.AttrName)
}

func (n *List) assignStringID(rs *betree.RuleSet) {
	if !n.IsString || n.strIDs != nil {
		return
	}
	n.strIDs = make([]int, 0, len(n.StrLits))
	for _, s := range n.StrLits {
		if id, ok := rs.InternString(n.attrID, s); ok {
			n.strIDs = append(n.strIDs, id)
		} else {
			n.strIDs = append(n.strIDs, -1)
		}
	}
}

type listKey struct {
	Op       ListOp
	AttrID   int
	IsString bool
	IntLits  []int64
	StrIDs   []int
}

func (n *List) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(listKey{
		Op: n.Op, AttrID: n.attrID, IsString: n.IsString, IntLits: n.IntLits, StrIDs: n.strIDs,
	})
}
