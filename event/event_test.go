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

package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adserving/betree"
)

func TestEventLookupPresentAndAbsent(t *testing.T) {
	ev := New(2)
	ev.Bind(3, betree.IntValue(25))

	v, ok := ev.Lookup(3)
	require.True(t, ok)
	require.Equal(t, int64(25), v.Int)

	_, ok = ev.Lookup(99)
	require.False(t, ok)
}

func TestEventLookupFirstMatchWins(t *testing.T) {
	ev := New(0)
	ev.Bind(1, betree.IntValue(1))
	ev.Bind(1, betree.IntValue(2))

	v, ok := ev.Lookup(1)
	require.True(t, ok)
	require.Equal(t, int64(1), v.Int)
}
