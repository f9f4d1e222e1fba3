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

package expr

import (
	"fmt"

	"github.com/adserving/betree"
	"github.com/adserving/betree/event"
	"github.com/adserving/betree/special"
)

// implicitFrequencyCaps, implicitSegments, implicitLatitude and
// implicitLongitude are the well-known attribute names the Special
// nodes read when the caller does not override them with an explicit
// attribute (spec.md §4.1).
const (
	implicitFrequencyCaps = "frequency_caps"
	implicitSegments      = "segments_with_timestamp"
	implicitLatitude      = "latitude"
	implicitLongitude     = "longitude"
)

// Frequency tests an event's frequency_caps list against a rule's
// (type, namespace, value, length) tuple (spec.md §4.7, C9).
type Frequency struct {
	CapType    uint32
	CapID      int64
	Namespace  string
	Value      uint32
	LengthSecs int64
	AttrName   string

	attrID       int
	namespaceID  int
	hasNamespace bool
	predicateID  int
}

// NewFrequency builds a Frequency node. attr overrides the implicit
// "frequency_caps" attribute when non-empty. capID identifies which
// cap entry (e.g. a campaign or flight id) this predicate targets.
func NewFrequency(capType uint32, capID int64, namespace string, value uint32, lengthSecs int64, attr string) *Frequency {
	if attr == "" {
		attr = implicitFrequencyCaps
	}
	return &Frequency{CapType: capType, CapID: capID, Namespace: namespace, Value: value, LengthSecs: lengthSecs, AttrName: attr, attrID: noID, predicateID: noID}
}

func (n *Frequency) PredicateID() int       { return n.predicateID }
func (n *Frequency) Children() []Expression { return nil }
func (n *Frequency) String() string {
	return fmt.Sprintf("within_frequency_cap(type=%d, id=%d, ns=%q, value=%d, length=%ds)", n.CapType, n.CapID, n.Namespace, n.Value, n.LengthSecs)
}

func (n *Frequency) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		v, defined := lookupValue(rs, ev, n.attrID)
		if !defined {
			return false
		}
		requireKind(rs, n.attrID, betree.KindFrequencyCaps, v.Kind)
		return special.WithinFrequencyCaps(v.FreqCaps, n.CapType, n.CapID, n.namespaceID, n.Value, n.LengthSecs, ev.Now())
	})
}

// BoundOver never narrows: frequency caps are a collection attribute,
// outside the scalar domains C7 bounds.
func (n *Frequency) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	return acc, touched
}

func (n *Frequency) assignVariableID(rs *betree.RuleSet) {
	if n.attrID != noID {
		return
	}
	n.attrID = resolveAttr(rs, n.AttrName)
}

func (n *Frequency) assignStringID(rs *betree.RuleSet) {
	if n.hasNamespace {
		return
	}
	if id, ok := rs.InternString(n.attrID, n.Namespace); ok {
		n.namespaceID = id
	} else {
		n.namespaceID = -1
	}
	n.hasNamespace = true
}

type frequencyKey struct {
	CapType     uint32
	CapID       int64
	NamespaceID int
	Value       uint32
	LengthSecs  int64
	AttrID      int
}

func (n *Frequency) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(frequencyKey{n.CapType, n.CapID, n.namespaceID, n.Value, n.LengthSecs, n.attrID})
}

// Segment tests an event's segments_with_timestamp list for a
// segment's membership being recent (WITHIN) or stale (BEFORE),
// spec.md §4.7.
type Segment struct {
	Op        SegOp
	SegmentID int64
	Seconds   int64
	AttrName  string

	attrID      int
	predicateID int
}

func NewSegment(op SegOp, segmentID, seconds int64, attr string) *Segment {
	if attr == "" {
		attr = implicitSegments
	}
	return &Segment{Op: op, SegmentID: segmentID, Seconds: seconds, AttrName: attr, attrID: noID, predicateID: noID}
}

func (n *Segment) PredicateID() int       { return n.predicateID }
func (n *Segment) Children() []Expression { return nil }
func (n *Segment) String() string {
	op := "WITHIN"
	if n.Op == BEFORE {
		op = "BEFORE"
	}
	return fmt.Sprintf("segment(%d) %s %ds", n.SegmentID, op, n.Seconds)
}

func (n *Segment) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		v, defined := lookupValue(rs, ev, n.attrID)
		if !defined {
			return false
		}
		requireKind(rs, n.attrID, betree.KindSegments, v.Kind)
		if n.Op == WITHIN {
			return special.SegmentWithin(n.SegmentID, n.Seconds, v.Segments, ev.Now())
		}
		return special.SegmentBefore(n.SegmentID, n.Seconds, v.Segments, ev.Now())
	})
}

func (n *Segment) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	return acc, touched
}

func (n *Segment) assignVariableID(rs *betree.RuleSet) {
	if n.attrID != noID {
		return
	}
	n.attrID = resolveAttr(rs, n.AttrName)
}

func (n *Segment) assignStringID(rs *betree.RuleSet) {}

type segmentKey struct {
	Op        SegOp
	SegmentID int64
	Seconds   int64
	AttrID    int
}

func (n *Segment) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(segmentKey{n.Op, n.SegmentID, n.Seconds, n.attrID})
}

// Geo tests a great-circle distance between a rule's fixed point and the
// event's implicit latitude/longitude attributes (spec.md §4.7).
type Geo struct {
	Lat, Lon  float64
	RadiusKM  float64

	latAttrID   int
	lonAttrID   int
	predicateID int
}

func NewGeo(lat, lon, radiusKM float64) *Geo {
	return &Geo{Lat: lat, Lon: lon, RadiusKM: radiusKM, latAttrID: noID, lonAttrID: noID, predicateID: noID}
}

func (n *Geo) PredicateID() int       { return n.predicateID }
func (n *Geo) Children() []Expression { return nil }
func (n *Geo) String() string {
	return fmt.Sprintf("within_radius(%v, %v, %vkm)", n.Lat, n.Lon, n.RadiusKM)
}

func (n *Geo) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		latV, latDefined := lookupValue(rs, ev, n.latAttrID)
		lonV, lonDefined := lookupValue(rs, ev, n.lonAttrID)
		if !latDefined || !lonDefined {
			return false
		}
		requireKind(rs, n.latAttrID, betree.KindFloat, latV.Kind)
		requireKind(rs, n.lonAttrID, betree.KindFloat, lonV.Kind)
		return special.GeoWithinRadius(n.Lat, n.Lon, latV.Float, lonV.Float, n.RadiusKM, rs.Config.EarthRadiusKM)
	})
}

func (n *Geo) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	return acc, touched
}

func (n *Geo) assignVariableID(rs *betree.RuleSet) {
	if n.latAttrID == noID {
		n.latAttrID = resolveAttr(rs, implicitLatitude)
	}
	if n.lonAttrID == noID {
		n.lonAttrID = resolveAttr(rs, implicitLongitude)
	}
}

func (n *Geo) assignStringID(rs *betree.RuleSet) {}

type geoKey struct {
	Lat, Lon, RadiusKM float64
	LatAttrID, LonAttrID int
}

func (n *Geo) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(geoKey{n.Lat, n.Lon, n.RadiusKM, n.latAttrID, n.lonAttrID})
}

// StringPredicate tests raw-text CONTAINS/STARTS_WITH/ENDS_WITH against
// an event string attribute (spec.md §4.7). Unlike Equality, this
// compares raw text, not interned ids.
type StringPredicate struct {
	Op       StrOp
	AttrName string
	Pattern  string

	attrID      int
	predicateID int
}

func NewStringPredicate(op StrOp, attr, pattern string) *StringPredicate {
	return &StringPredicate{Op: op, AttrName: attr, Pattern: pattern, attrID: noID, predicateID: noID}
}

func (n *StringPredicate) PredicateID() int       { return n.predicateID }
func (n *StringPredicate) Children() []Expression { return nil }
func (n *StringPredicate) String() string {
	return fmt.Sprintf("%s %s %q", n.AttrName, n.opName(), n.Pattern)
}

func (n *StringPredicate) opName() string {
	switch n.Op {
	case CONTAINS:
		return "CONTAINS"
	case STARTS_WITH:
		return "STARTS_WITH"
	default:
		return "ENDS_WITH"
	}
}

func (n *StringPredicate) Eval(rs *betree.RuleSet, ev *event.Event, memo *betree.Memo, report *betree.Report, topLevel bool) bool {
	return withMemo(n, memo, report, topLevel, func() bool {
		v, defined := lookupValue(rs, ev, n.attrID)
		if !defined {
			return false
		}
		requireKind(rs, n.attrID, betree.KindString, v.Kind)
		switch n.Op {
		case CONTAINS:
			return special.StringContains(v.Str.Text, n.Pattern)
		case STARTS_WITH:
			return special.StringStartsWith(v.Str.Text, n.Pattern)
		default:
			return special.StringEndsWith(v.Str.Text, n.Pattern)
		}
	})
}

func (n *StringPredicate) BoundOver(domain betree.AttributeDomain, reversed bool, acc betree.Interval, touched bool) (betree.Interval, bool) {
	return acc, touched
}

func (n *StringPredicate) assignVariableID(rs *betree.RuleSet) {
	if n.attrID != noID {
		return
	}
	n.attrID = resolveAttr(rs, n.AttrName)
}

func (n *StringPredicate) assignStringID(rs *betree.RuleSet) {}

type stringPredicateKey struct {
	Op      StrOp
	AttrID  int
	Pattern string
}

func (n *StringPredicate) assignPredicateID(rs *betree.RuleSet) {
	if n.predicateID != noID {
		return
	}
	n.predicateID = rs.AssignPredicateID(stringPredicateKey{n.Op, n.attrID, n.Pattern})
}
