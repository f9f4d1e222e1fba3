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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFeqFneEpsilonTolerance(t *testing.T) {
	require.True(t, feq(1.0, 1.0+Epsilon/2))
	require.True(t, fne(1.0, 1.1))
	require.False(t, fne(1.0, 1.0))
}

func TestIntervalContainsInteger(t *testing.T) {
	iv := Interval{Kind: KindInteger, ILo: 3, IHi: 100}
	require.True(t, iv.Contains(IntValue(3)))
	require.True(t, iv.Contains(IntValue(100)))
	require.False(t, iv.Contains(IntValue(2)))
}

func TestIntervalContainsFloatWithEpsilon(t *testing.T) {
	iv := Interval{Kind: KindFloat, FLo: 0, FHi: 10}
	require.True(t, iv.Contains(FloatValue(10.0)))
	require.False(t, iv.Contains(FloatValue(10.5)))
}

func TestFullAndEmptyAreInverses(t *testing.T) {
	d := AttributeDomain{Kind: KindInteger, Bounds: Bounds{IMin: 0, IMax: 100}}

	full := Full(d)
	empty := Empty(d)

	if diff := cmp.Diff(Interval{Kind: KindInteger, ILo: 0, IHi: 100}, full); diff != "" {
		t.Fatalf("full mismatch: %s", diff)
	}
	require.Equal(t, int64(100), empty.ILo)
	require.Equal(t, int64(0), empty.IHi)
}
