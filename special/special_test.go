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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adserving/betree"
)

// TestWithinFrequencyCapsWindowExpired is spec.md §8 scenario 4.
func TestWithinFrequencyCapsWindowExpired(t *testing.T) {
	caps := []betree.FrequencyCap{
		{Type: 20, ID: 20, NamespaceStringID: 1, Value: 3, Timestamp: 1_700_000_000_000_000, TimestampDefined: true},
	}

	ok := WithinFrequencyCaps(caps, 20, 20, 1, 5, 3600, 1_700_003_700)
	require.True(t, ok)
}

func TestWithinFrequencyCapsNoMatch(t *testing.T) {
	caps := []betree.FrequencyCap{
		{Type: 30, ID: 1, NamespaceStringID: 0, Value: 3, Timestamp: 0, TimestampDefined: false},
	}
	require.True(t, WithinFrequencyCaps(caps, 20, 20, 1, 5, 3600, 1_700_000_000))
}

func TestWithinFrequencyCapsZeroLength(t *testing.T) {
	caps := []betree.FrequencyCap{
		{Type: 20, ID: 20, NamespaceStringID: 1, Value: 3, Timestamp: 1_700_000_000_000_000, TimestampDefined: true},
	}
	require.False(t, WithinFrequencyCaps(caps, 20, 20, 1, 2, 0, 1_700_000_000))
	require.True(t, WithinFrequencyCaps(caps, 20, 20, 1, 5, 0, 1_700_000_000))
}

func TestWithinFrequencyCapsUndefinedTimestamp(t *testing.T) {
	caps := []betree.FrequencyCap{
		{Type: 20, ID: 20, NamespaceStringID: 1, Value: 3, TimestampDefined: false},
	}
	require.True(t, WithinFrequencyCaps(caps, 20, 20, 1, 1, 3600, 1_700_000_000))
}

func TestWithinFrequencyCapsStillCapped(t *testing.T) {
	caps := []betree.FrequencyCap{
		{Type: 20, ID: 20, NamespaceStringID: 1, Value: 3, Timestamp: 1_700_000_000_000_000, TimestampDefined: true},
	}
	require.False(t, WithinFrequencyCaps(caps, 20, 20, 1, 2, 3600, 1_700_000_100))
}

// TestSegmentWithin is spec.md §8 scenario 5.
func TestSegmentWithin(t *testing.T) {
	segs := []betree.Segment{{SegmentID: 42, TimestampMicros: 1_699_999_700_000_000}}
	require.True(t, SegmentWithin(42, 600, segs, 1_700_000_000))
	require.False(t, SegmentWithin(42, 100, segs, 1_700_000_000))
}

func TestSegmentWithinUnmatchedID(t *testing.T) {
	segs := []betree.Segment{{SegmentID: 1, TimestampMicros: 0}, {SegmentID: 7, TimestampMicros: 0}}
	require.False(t, SegmentWithin(5, 600, segs, 1_700_000_000))
}

func TestSegmentBefore(t *testing.T) {
	segs := []betree.Segment{{SegmentID: 42, TimestampMicros: 1_699_990_000_000_000}}
	require.True(t, SegmentBefore(42, 600, segs, 1_700_000_000))
	require.False(t, SegmentBefore(42, 1_000_000, segs, 1_700_000_000))
}

// TestGeoWithinRadius is spec.md §8 scenario 3.
func TestGeoWithinRadiusNearby(t *testing.T) {
	ok := GeoWithinRadius(45.5017, -73.5673, 45.5048, -73.5772, 10, DefaultEarthRadiusKM)
	require.True(t, ok)
}

func TestGeoWithinRadiusFar(t *testing.T) {
	ok := GeoWithinRadius(45.5017, -73.5673, 40.7128, -74.0060, 10, DefaultEarthRadiusKM)
	require.False(t, ok)
}

func TestStringPredicates(t *testing.T) {
	require.True(t, StringContains("hello world", "wor"))
	require.False(t, StringContains("hello world", "xyz"))
	require.True(t, StringStartsWith("hello world", "hello"))
	require.False(t, StringStartsWith("hello world", "world"))
	require.True(t, StringEndsWith("hello world", "world"))
	require.False(t, StringEndsWith("hello world", "hello"))
}
