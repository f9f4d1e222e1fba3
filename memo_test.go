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

func TestMemoLookupMissThenStoreThenHit(t *testing.T) {
	m := NewMemo(0)

	_, hit := m.Lookup(5)
	require.False(t, hit)

	m.Store(5, true)
	result, hit := m.Lookup(5)
	require.True(t, hit)
	require.True(t, result)
}

func TestMemoStoreFalseIsDistinctFromMiss(t *testing.T) {
	m := NewMemo(0)
	m.Store(3, false)

	result, hit := m.Lookup(3)
	require.True(t, hit)
	require.False(t, result)
}

func TestMemoResetClearsBothBitsets(t *testing.T) {
	m := NewMemo(10)
	m.Store(1, true)
	m.Store(2, false)

	m.Reset()

	_, hit := m.Lookup(1)
	require.False(t, hit)
	_, hit = m.Lookup(2)
	require.False(t, hit)
}

func TestMemoGrowsLazilyPastInitialHint(t *testing.T) {
	m := NewMemo(1)
	m.Store(200, true)

	result, hit := m.Lookup(200)
	require.True(t, hit)
	require.True(t, result)
}
