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

type leafKey struct {
	Op     string
	AttrID int
	IntLit int64
}

func TestPredicateInternerStructuralSharing(t *testing.T) {
	pi := NewPredicateInterner()

	id1 := pi.Assign(leafKey{Op: "EQ", AttrID: 1, IntLit: 1})
	id2 := pi.Assign(leafKey{Op: "EQ", AttrID: 1, IntLit: 1})
	id3 := pi.Assign(leafKey{Op: "EQ", AttrID: 1, IntLit: 2})

	require.Equal(t, id1, id2)
	require.NotEqual(t, id1, id3)
	require.Equal(t, 2, pi.Count())
}

func TestPredicateInternerDistinctKindsNeverShare(t *testing.T) {
	pi := NewPredicateInterner()

	idEQ := pi.Assign(leafKey{Op: "EQ", AttrID: 1, IntLit: 1})
	idNE := pi.Assign(leafKey{Op: "NE", AttrID: 1, IntLit: 1})

	require.NotEqual(t, idEQ, idNE)
}

func TestPredicateInternerIdempotentOnRepeatedAssign(t *testing.T) {
	pi := NewPredicateInterner()
	key := leafKey{Op: "GT", AttrID: 9, IntLit: 18}

	first := pi.Assign(key)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, pi.Assign(key))
	}
	require.Equal(t, 1, pi.Count())
}
