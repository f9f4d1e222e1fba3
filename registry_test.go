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

func TestAttributeRegistryIdempotentRegistration(t *testing.T) {
	r := NewAttributeRegistry()

	id1 := r.RegisterDomain("age", KindInteger, Bounds{IMin: 0, IMax: 120}, false)
	id2 := r.RegisterDomain("age", KindInteger, Bounds{IMin: 0, IMax: 120}, false)

	require.Equal(t, id1, id2)
	require.Equal(t, 1, r.Count())
}

func TestAttributeRegistryGetIDForAttr(t *testing.T) {
	r := NewAttributeRegistry()
	r.RegisterDomain("country", KindString, Bounds{}, true)

	id, ok := r.GetIDForAttr("country")
	require.True(t, ok)

	_, ok = r.GetIDForAttr("missing")
	require.False(t, ok)

	require.True(t, r.IsVariableAllowUndefined(id))
}

func TestAttributeRegistryDomainAndName(t *testing.T) {
	r := NewAttributeRegistry()
	id := r.RegisterDomain("clicks", KindInteger, Bounds{IMin: 0, IMax: 100}, false)

	d := r.Domain(id)
	require.Equal(t, KindInteger, d.Kind)
	require.Equal(t, int64(100), d.Bounds.IMax)
	require.Equal(t, "clicks", r.Name(id))
}
