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

package betree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRuleSetDefaults(t *testing.T) {
	rs := New(Config{}, nil)
	require.Equal(t, Epsilon, rs.Config.Epsilon)
	require.Equal(t, DefaultFrequencyTypes, rs.FrequencyTypes)
	require.NotEmpty(t, rs.BuildID)
}

func TestRuleSetPredicateIDAssignment(t *testing.T) {
	rs := New(Config{}, nil)

	id1 := rs.AssignPredicateID(struct{ X int }{1})
	id2 := rs.AssignPredicateID(struct{ X int }{1})
	id3 := rs.AssignPredicateID(struct{ X int }{2})

	require.Equal(t, id1, id2)
	require.NotEqual(t, id1, id3)
	require.Equal(t, 2, rs.PredicateCount())
}

func TestRuleSetNewMemoHonorsPredicateCountHint(t *testing.T) {
	rs := New(Config{PredicateCountHint: 256}, nil)
	rs.AssignPredicateID(struct{ X int }{1})

	m := rs.NewMemo()
	require.False(t, m.pass.get(255), "hint should pre-size the bitset without panicking on a late index")
	m.Store(255, true)
	result, hit := m.Lookup(255)
	require.True(t, hit)
	require.True(t, result)
}

func TestRuleSetStringInterning(t *testing.T) {
	rs := New(Config{}, nil)
	rs.Registry().RegisterDomain("country", KindString, Bounds{}, true)
	id, _ := rs.Registry().GetIDForAttr("country")

	sid1, ok := rs.InternString(id, "US")
	require.True(t, ok)
	sid2, ok := rs.InternString(id, "US")
	require.True(t, ok)
	require.Equal(t, sid1, sid2)
}
