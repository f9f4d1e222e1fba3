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

// Package event holds the per-query event bindings an expression is
// matched against (C5).
package event

import "github.com/adserving/betree"

// binding is one (attribute_id -> value) pair.
type binding struct {
	attributeID int
	value       betree.Value
}

// Event is a list of attribute bindings. Lookup is a linear scan over
// the list rather than a hash map — spec.md §4.8 notes this beats
// hashing at the small attribute counts typical of a single ad request,
// and it keeps an Event cheap to build and throw away per query
// (spec.md §3, "Events ... are per-query, created and destroyed
// together").
type Event struct {
	bindings []binding
	now      int64
}

// New creates an empty Event, optionally pre-sizing its backing slice.
func New(sizeHint int) *Event {
	return &Event{bindings: make([]binding, 0, sizeHint)}
}

// At sets the query's current time (unix seconds), consulted by the
// Frequency and Segment special predicates (spec.md §4.7). Defaults to
// zero when never called.
func (e *Event) At(now int64) *Event {
	e.now = now
	return e
}

// Now returns the query's current time as set by At.
func (e *Event) Now() int64 {
	return e.now
}

// Bind appends an attribute binding. Binding the same attribute id twice
// is the caller's error to avoid — Lookup returns the first match.
func (e *Event) Bind(attributeID int, v betree.Value) *Event {
	e.bindings = append(e.bindings, binding{attributeID: attributeID, value: v})
	return e
}

// Lookup returns the bound value for attributeID and whether it was
// present at all. The evaluator layers three-valued DEFINED/UNDEFINED/
// MISSING semantics on top of this boolean using the attribute's
// registered allow_undefined flag (spec.md §4.2).
func (e *Event) Lookup(attributeID int) (betree.Value, bool) {
	for _, b := range e.bindings {
		if b.attributeID == attributeID {
			return b.value, true
		}
	}
	return betree.Value{}, false
}

// Len returns the number of bindings in the event.
func (e *Event) Len() int {
	return len(e.bindings)
}
