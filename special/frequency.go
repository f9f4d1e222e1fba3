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

// Package special implements the three domain-specific predicates
// (C9): frequency-cap check, segment containment/before, and
// great-circle geo-radius, plus the raw-text string predicates. Every
// function here is pure — no attribute registry, no interning, no event
// — so the expr package can call them directly from a leaf's Eval.
package special

import "github.com/adserving/betree"

// WithinFrequencyCaps implements within_frequency_caps (spec.md §4.7).
// caps is walked linearly; now and length are seconds, cap timestamps
// are microseconds.
func WithinFrequencyCaps(caps []betree.FrequencyCap, capType uint32, id int64, namespaceStringID int, value uint32, length int64, now int64) bool {
	for _, cap := range caps {
		if cap.Type != capType || cap.ID != id || cap.NamespaceStringID != namespaceStringID {
			continue
		}

		if length <= 0 {
			return value > cap.Value
		}
		if !cap.TimestampDefined {
			return true
		}
		if now-(cap.Timestamp/1_000_000) > length {
			return true
		}
		return value > cap.Value
	}

	// No matching cap constrains this ad.
	return true
}
