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
	"fmt"
	"sync"
)

// AttributeRegistry maps attribute names to dense ids and records each
// attribute's declared domain. get_id_for_attr is idempotent: the first
// call for a name must be preceded by a RegisterDomain call declaring its
// shape; later calls just return the existing id.
//
// Mirrors the allocate-on-miss, mutex-guarded map pattern the teacher
// uses for its per-session PreparedDataCache (engine.go).
type AttributeRegistry struct {
	mu      sync.Mutex
	nameID  map[string]int
	domains []AttributeDomain
	names   []string
}

// NewAttributeRegistry creates an empty registry.
func NewAttributeRegistry() *AttributeRegistry {
	return &AttributeRegistry{
		nameID: make(map[string]int),
	}
}

// RegisterDomain declares the domain for an attribute name. It is
// idempotent: registering the same name twice with an identical domain
// is a no-op (spec.md Property 6, interner idempotence, applies equally
// to registry declarations); registering it with a different domain is a
// programming error.
func (r *AttributeRegistry) RegisterDomain(name string, kind ValueKind, bounds Bounds, allowUndefined bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.nameID[name]; ok {
		d := r.domains[id]
		if d.Kind != kind || d.Bounds != bounds || d.AllowUndefined != allowUndefined {
			panic(fmt.Errorf("betree: attribute %q re-registered with a different domain", name))
		}
		return id
	}

	id := len(r.domains)
	r.nameID[name] = id
	r.names = append(r.names, name)
	r.domains = append(r.domains, AttributeDomain{
		AttributeID:    id,
		Kind:           kind,
		Bounds:         bounds,
		AllowUndefined: allowUndefined,
	})
	return id
}

// GetIDForAttr resolves a registered attribute name to its id. ok is
// false when the name was never registered via RegisterDomain — the
// build-time API (assign_variable_id) treats that as a fatal programming
// error since the parser is contractually required to register domains
// before referencing them.
func (r *AttributeRegistry) GetIDForAttr(name string) (id int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok = r.nameID[name]
	return id, ok
}

// Domain returns the declared domain for an attribute id.
func (r *AttributeRegistry) Domain(id int) AttributeDomain {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.domains[id]
}

// Name returns the attribute name an id was allocated for.
func (r *AttributeRegistry) Name(id int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names[id]
}

// IsVariableAllowUndefined reports whether a missing lookup of this
// attribute is permitted to resolve to UNDEFINED rather than MISSING.
func (r *AttributeRegistry) IsVariableAllowUndefined(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.domains[id].AllowUndefined
}

// Count returns the number of distinct attributes registered.
func (r *AttributeRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.domains)
}
