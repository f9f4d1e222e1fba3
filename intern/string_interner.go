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

// Package intern holds the two hash-consing substrates a rule set needs
// at build time: the per-attribute scoped string interner (C3) and the
// structural predicate interner (C8). Neither type depends on the
// expression AST or value model — they are kept generic on purpose so
// the owning package (betree) can embed both without an import cycle.
package intern

import (
	"sort"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/cespare/xxhash/v2"
)

// fastDict is the unordered, unbounded fast path: a hand-rolled
// hash-bucketed dictionary keyed by xxhash of the string, used for
// attributes whose string domain has no declared dictionary bound.
type fastDict struct {
	buckets map[uint64][]fastEntry
	nextID  int
}

type fastEntry struct {
	text string
	id   int
}

func newFastDict() *fastDict {
	return &fastDict{buckets: make(map[uint64][]fastEntry)}
}

func (d *fastDict) intern(s string) int {
	h := xxhash.Sum64String(s)
	for _, e := range d.buckets[h] {
		if e.text == s {
			return e.id
		}
	}
	id := d.nextID
	d.nextID++
	d.buckets[h] = append(d.buckets[h], fastEntry{text: s, id: id})
	return id
}

func (d *fastDict) lookup(s string) (int, bool) {
	h := xxhash.Sum64String(s)
	for _, e := range d.buckets[h] {
		if e.text == s {
			return e.id, true
		}
	}
	return 0, false
}

// boundedDict is the ordered, bounded path: an immutable radix tree over
// an admitted dictionary, used for attributes whose domain declares a
// bounded string range (so bound derivation can compute smin_id/smax_id
// by ordered iteration).
type boundedDict struct {
	tree *iradix.Tree
}

func newBoundedDict(admitted []string) *boundedDict {
	sorted := append([]string(nil), admitted...)
	sort.Strings(sorted)
	tree := iradix.New()
	for i, s := range sorted {
		tree, _, _ = tree.Insert([]byte(s), i)
	}
	return &boundedDict{tree: tree}
}

func (d *boundedDict) lookup(s string) (int, bool) {
	v, ok := d.tree.Get([]byte(s))
	if !ok {
		return 0, false
	}
	return v.(int), true
}

func (d *boundedDict) minMax() (min, max int, ok bool) {
	if _, v, found := d.tree.Root().Minimum(); found {
		min = v.(int)
	} else {
		return 0, 0, false
	}
	_, v, _ := d.tree.Root().Maximum()
	max = v.(int)
	return min, max, true
}

// StringInterner maps (attribute_id, string) pairs to dense, per-attribute
// string ids (spec.md §4.5). String ids are unique within an attribute
// only — two different attributes may reuse the same id for unrelated
// strings.
type StringInterner struct {
	mu       sync.Mutex
	fast     map[int]*fastDict
	bounded  map[int]*boundedDict
}

// NewStringInterner creates an empty interner.
func NewStringInterner() *StringInterner {
	return &StringInterner{
		fast:    make(map[int]*fastDict),
		bounded: make(map[int]*boundedDict),
	}
}

// DeclareBounded pre-populates attributeID's admitted dictionary. Once
// declared bounded, Intern for that attribute only ever returns ids for
// strings present in admitted — others are rejected (ok=false).
func (si *StringInterner) DeclareBounded(attributeID int, admitted []string) {
	si.mu.Lock()
	defer si.mu.Unlock()
	si.bounded[attributeID] = newBoundedDict(admitted)
}

// Intern returns the dense id for (attributeID, s), assigning a fresh one
// on first sight for unbounded attributes. For bounded attributes it
// only looks up — literals outside the admitted dictionary are rejected
// (ok=false), matching spec.md §4.5 ("Bounded string domains ... MAY
// reject literals outside the admitted dictionary").
func (si *StringInterner) Intern(attributeID int, s string) (id int, ok bool) {
	si.mu.Lock()
	defer si.mu.Unlock()

	if bd, isBounded := si.bounded[attributeID]; isBounded {
		id, ok = bd.lookup(s)
		return id, ok
	}

	fd, ok := si.fast[attributeID]
	if !ok {
		fd = newFastDict()
		si.fast[attributeID] = fd
	}
	return fd.intern(s), true
}

// Lookup is a non-mutating probe: it reports whether s is already
// interned for attributeID without assigning a fresh id when it is not.
func (si *StringInterner) Lookup(attributeID int, s string) (id int, ok bool) {
	si.mu.Lock()
	defer si.mu.Unlock()

	if bd, isBounded := si.bounded[attributeID]; isBounded {
		return bd.lookup(s)
	}
	if fd, has := si.fast[attributeID]; has {
		return fd.lookup(s)
	}
	return 0, false
}

// IsBounded reports whether attributeID has a declared bounded
// dictionary.
func (si *StringInterner) IsBounded(attributeID int) bool {
	si.mu.Lock()
	defer si.mu.Unlock()
	_, ok := si.bounded[attributeID]
	return ok
}

// MinMaxID returns the admitted dictionary's [smin_id, smax_id] range for
// a bounded attribute.
func (si *StringInterner) MinMaxID(attributeID int) (min, max int, ok bool) {
	si.mu.Lock()
	defer si.mu.Unlock()
	bd, isBounded := si.bounded[attributeID]
	if !isBounded {
		return 0, 0, false
	}
	return bd.minMax()
}
