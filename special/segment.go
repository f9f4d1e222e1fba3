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

package special

import "github.com/adserving/betree"

// SegmentWithin implements segment_within (spec.md §4.7): true iff
// segID is present and was stamped within afterSeconds of now. segments
// must be sorted by SegmentID ascending (spec.md §3): the linear scan
// stops at the first id greater than segID, so an unmatched id or a scan
// that passes it without a match is false.
func SegmentWithin(segID int64, afterSeconds int64, segments []betree.Segment, now int64) bool {
	for _, s := range segments {
		if s.SegmentID == segID {
			return (now - afterSeconds) <= (s.TimestampMicros / 1_000_000)
		}
		if s.SegmentID > segID {
			break
		}
	}
	return false
}

// SegmentBefore implements segment_before (spec.md §4.7): true iff
// segID is present and was stamped more than beforeSeconds before now.
func SegmentBefore(segID int64, beforeSeconds int64, segments []betree.Segment, now int64) bool {
	for _, s := range segments {
		if s.SegmentID == segID {
			return (now - beforeSeconds) > (s.TimestampMicros / 1_000_000)
		}
		if s.SegmentID > segID {
			break
		}
	}
	return false
}
