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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adserving/betree"
	"github.com/adserving/betree/event"
)

func newTestRuleSet() *betree.RuleSet {
	rs := betree.New(betree.Config{}, nil)
	rs.Registry().RegisterDomain("age", betree.KindInteger, betree.Bounds{IMin: 0, IMax: 130}, false)
	rs.Registry().RegisterDomain("country", betree.KindString, betree.Bounds{}, false)
	rs.Registry().RegisterDomain("clicks", betree.KindInteger, betree.Bounds{IMin: 0, IMax: 100}, false)
	return rs
}

func build(t *testing.T, rs *betree.RuleSet, e Expression) {
	t.Helper()
	require.NoError(t, AssignVariableID(rs, e))
	require.NoError(t, AssignStringID(rs, e))
	require.NoError(t, AssignPredicateID(rs, e))
}

// TestScenario1 is spec.md §8 scenario 1:
// age>=18 AND country IN ("US","CA").
func TestScenario1(t *testing.T) {
	rs := newTestRuleSet()
	e := NewAnd(
		NewNumericCompare(GE, "age", false, 18),
		NewSet(IN, VarOperand("country"), StringListOperand([]string{"US", "CA"})),
	)
	build(t, rs, e)

	ev1 := event.New(4).Bind(mustAttr(rs, "age"), betree.IntValue(25))
	bindCountry(t, rs, ev1, "CA")
	require.True(t, Match(rs, ev1, e, nil, nil))

	ev2 := event.New(4).Bind(mustAttr(rs, "age"), betree.IntValue(17))
	bindCountry(t, rs, ev2, "CA")
	require.False(t, Match(rs, ev2, e, nil, nil))
}

// TestScenario2BoundOfNegatedCompare is spec.md §8 scenario 2:
// NOT(clicks<3) over domain [0,100] derives bound [3,100].
func TestScenario2BoundOfNegatedCompare(t *testing.T) {
	rs := newTestRuleSet()
	e := NewNot(NewNumericCompare(LT, "clicks", false, 3))
	build(t, rs, e)

	domain := rs.Registry().Domain(mustAttr(rs, "clicks"))
	iv := Bound(domain, e)
	require.Equal(t, int64(3), iv.ILo)
	require.Equal(t, int64(100), iv.IHi)
}

// TestScenario6SharedPredicateMemoizedOnce is spec.md §8 scenario 6:
// two rules sharing a hash-consed `a=1` leaf evaluate it once per event
// when both go through the same Memo.
func TestScenario6SharedPredicateMemoizedOnce(t *testing.T) {
	rs := newTestRuleSet()
	leafA := NewEquality(EQ, "age", betree.KindInteger, 1)
	leafB := NewEquality(EQ, "age", betree.KindInteger, 1)
	rule1 := NewAnd(leafA, NewNumericCompare(GE, "clicks", false, 0))
	rule2 := NewOr(leafB, NewNumericCompare(LT, "clicks", false, 0))
	build(t, rs, rule1)
	build(t, rs, rule2)

	require.Equal(t, leafA.PredicateID(), leafB.PredicateID(), "structurally identical leaves must share a predicate id")

	ev := event.New(2).Bind(mustAttr(rs, "age"), betree.IntValue(1)).Bind(mustAttr(rs, "clicks"), betree.IntValue(5))
	memo := rs.NewMemo()
	report := betree.NewReport()

	require.True(t, Match(rs, ev, rule1, memo, report))
	require.True(t, Match(rs, ev, rule2, memo, report))
	require.Equal(t, int64(1), report.SubExpressionsMemoized(), "second rule's shared leaf must hit the memo table")
}

// TestEqualityHonorsConfiguredEpsilon verifies a non-default
// Config.Epsilon actually changes float-equality matching, rather than
// every float comparison falling back to the package default tolerance.
func TestEqualityHonorsConfiguredEpsilon(t *testing.T) {
	rs := betree.New(betree.Config{Epsilon: 0.01}, nil)
	rs.Registry().RegisterDomain("price", betree.KindFloat, betree.Bounds{FMin: 0, FMax: 1000}, false)
	e := NewEquality(EQ, "price", betree.KindFloat, 9.995)
	build(t, rs, e)

	ev := event.New(1).Bind(mustAttr(rs, "price"), betree.FloatValue(10.0))
	require.True(t, Match(rs, ev, e, nil, nil), "0.005 difference must match under a 0.01 configured epsilon")

	rsTight := betree.New(betree.Config{Epsilon: 1e-9}, nil)
	rsTight.Registry().RegisterDomain("price", betree.KindFloat, betree.Bounds{FMin: 0, FMax: 1000}, false)
	eTight := NewEquality(EQ, "price", betree.KindFloat, 9.995)
	build(t, rsTight, eTight)

	evTight := event.New(1).Bind(mustAttr(rsTight, "price"), betree.FloatValue(10.0))
	require.False(t, Match(rsTight, evTight, eTight, nil, nil), "0.005 difference must not match under the tight default epsilon")
}

func TestUndefinedAttributeReturnsFalseNotPanic(t *testing.T) {
	rs := betree.New(betree.Config{}, nil)
	rs.Registry().RegisterDomain("age", betree.KindInteger, betree.Bounds{IMin: 0, IMax: 130}, true)
	e := NewNumericCompare(GE, "age", false, 18)
	build(t, rs, e)

	ev := event.New(0)
	require.False(t, Match(rs, ev, e, nil, nil))
}

func TestMissingAttributeRaises(t *testing.T) {
	rs := betree.New(betree.Config{}, nil)
	rs.Registry().RegisterDomain("age", betree.KindInteger, betree.Bounds{IMin: 0, IMax: 130}, false)
	e := NewNumericCompare(GE, "age", false, 18)
	build(t, rs, e)

	ev := event.New(0)
	require.Panics(t, func() { Match(rs, ev, e, nil, nil) })
}

func mustAttr(rs *betree.RuleSet, name string) int {
	id, _ := rs.Registry().GetIDForAttr(name)
	return id
}

func bindCountry(t *testing.T, rs *betree.RuleSet, ev *event.Event, v string) {
	t.Helper()
	id, ok := rs.InternString(mustAttr(rs, "country"), v)
	require.True(t, ok)
	ev.Bind(mustAttr(rs, "country"), betree.Value{Kind: betree.KindString, Str: betree.StringValue{Text: v, StringID: id}})
}
