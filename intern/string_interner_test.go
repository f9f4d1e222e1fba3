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

package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringInternerUnboundedAssignsStableIDs(t *testing.T) {
	si := NewStringInterner()

	id1, ok := si.Intern(5, "US")
	require.True(t, ok)
	id2, ok := si.Intern(5, "CA")
	require.True(t, ok)
	id1Again, ok := si.Intern(5, "US")
	require.True(t, ok)

	require.Equal(t, id1, id1Again)
	require.NotEqual(t, id1, id2)
}

func TestStringInternerScopedPerAttribute(t *testing.T) {
	si := NewStringInterner()

	idA, _ := si.Intern(1, "x")
	idB, _ := si.Intern(2, "y")

	// Ids are dense per attribute, so unrelated attributes may coincide
	// without implying the strings are equal.
	require.Equal(t, 0, idA)
	require.Equal(t, 0, idB)
}

func TestStringInternerBoundedRejectsOutsideDictionary(t *testing.T) {
	si := NewStringInterner()
	si.DeclareBounded(7, []string{"gold", "silver", "bronze"})

	id, ok := si.Intern(7, "gold")
	require.True(t, ok)

	_, ok = si.Intern(7, "platinum")
	require.False(t, ok)

	idAgain, ok := si.Intern(7, "gold")
	require.True(t, ok)
	require.Equal(t, id, idAgain)
}

func TestStringInternerMinMaxID(t *testing.T) {
	si := NewStringInterner()
	si.DeclareBounded(3, []string{"b", "a", "c"})

	min, max, ok := si.MinMaxID(3)
	require.True(t, ok)
	require.Equal(t, 0, min)
	require.Equal(t, 2, max)
}

func TestStringInternerLookupIsNonMutating(t *testing.T) {
	si := NewStringInterner()

	_, ok := si.Lookup(9, "never-interned")
	require.False(t, ok)

	id, _ := si.Intern(9, "seen")
	lookedUp, ok := si.Lookup(9, "seen")
	require.True(t, ok)
	require.Equal(t, id, lookedUp)
}
