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
	"reflect"
	"sync"

	"github.com/mitchellh/hashstructure"
)

// PredicateInterner is a structural hash-cons map from a predicate's
// structural key to a dense predicate id (C8). The key is whatever the
// caller (package expr) builds to represent "operator + resolved
// attribute id + literal payload" for a leaf, or "operator + children
// ids" for a compound boolean node — the interner itself is agnostic to
// what a key means, it only needs it to be a hashstructure-hashable
// value that reflect.DeepEqual can compare (keys may hold slices).
//
// Hash collisions are resolved by falling back to reflect.DeepEqual
// within a bucket, so a bad hash never causes two structurally different
// predicates to share an id.
type PredicateInterner struct {
	mu      sync.Mutex
	buckets map[uint64][]entry
	nextID  int
}

type entry struct {
	key interface{}
	id  int
}

// NewPredicateInterner creates an empty interner.
func NewPredicateInterner() *PredicateInterner {
	return &PredicateInterner{buckets: make(map[uint64][]entry)}
}

// Assign returns the dense id for key, minting a fresh one the first
// time a structurally-equal key is seen. Two calls with structurally
// equal keys (per reflect.DeepEqual) always return the same id,
// regardless of call order — the hash-cons property spec.md Property 7
// requires.
func (p *PredicateInterner) Assign(key interface{}) int {
	h, err := hashstructure.Hash(key, nil)
	if err != nil {
		// key is guaranteed to be a plain, exported-field struct built by
		// package expr; a hash failure means a programming error in that
		// construction, not a runtime condition to recover from.
		panic(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, e := range p.buckets[h] {
		if reflect.DeepEqual(e.key, key) {
			return e.id
		}
	}

	id := p.nextID
	p.nextID++
	p.buckets[h] = append(p.buckets[h], entry{key: key, id: id})
	return id
}

// Count returns the number of distinct predicate ids assigned so far —
// used to size Memo bitsets.
func (p *PredicateInterner) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nextID
}
