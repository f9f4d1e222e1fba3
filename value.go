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

import "math"

// Epsilon is the tolerance used by feq/fne and Interval.Contains for
// floats, and the default for Config.Epsilon. Equality evaluation uses
// the rule set's Config.Epsilon; bound derivation opens float LT/GT with
// its own smaller constant.
const Epsilon = 1e-9

// ValueKind is the closed set of scalar and collection kinds an attribute
// or literal may carry.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindIntegerList
	KindStringList
	KindSegments
	KindFrequencyCaps
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindIntegerList:
		return "integer_list"
	case KindStringList:
		return "string_list"
	case KindSegments:
		return "segments"
	case KindFrequencyCaps:
		return "frequency_caps"
	default:
		return "invalid"
	}
}

// Segment is a single timestamped segment membership, part of a
// Segments-kind value. Segments are sorted by SegmentID ascending.
type Segment struct {
	SegmentID     int64
	TimestampMicros int64
}

// FrequencyCap is one entry of a FrequencyCaps-kind value.
type FrequencyCap struct {
	Type             uint32
	ID               int64
	Namespace        string
	NamespaceStringID int
	Value            uint32
	Timestamp        int64 // microseconds
	TimestampDefined bool
}

// StringValue carries both the raw text of a string literal/attribute
// value and its interned (attribute, string) id. StringID is -1 until
// interning has assigned one.
type StringValue struct {
	Text     string
	StringID int
}

// Value is a tagged union over the scalar and collection kinds an event
// attribute or expression literal can hold.
type Value struct {
	Kind ValueKind

	Bool  bool
	Int   int64
	Float float64
	Str   StringValue

	IntList    []int64
	StringList []StringValue

	Segments []Segment
	FreqCaps []FrequencyCap
}

// BoolValue, IntValue, FloatValue and StringVal construct scalar values.
func BoolValue(b bool) Value                 { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int64) Value                 { return Value{Kind: KindInteger, Int: i} }
func FloatValue(f float64) Value             { return Value{Kind: KindFloat, Float: f} }
func StringVal(text string) Value            { return Value{Kind: KindString, Str: StringValue{Text: text, StringID: -1}} }
func IntListValue(xs []int64) Value          { return Value{Kind: KindIntegerList, IntList: xs} }
func StringListValue(xs []string) Value {
	sv := make([]StringValue, len(xs))
	for i, x := range xs {
		sv[i] = StringValue{Text: x, StringID: -1}
	}
	return Value{Kind: KindStringList, StringList: sv}
}
func SegmentsValue(segs []Segment) Value         { return Value{Kind: KindSegments, Segments: segs} }
func FrequencyCapsValue(caps []FrequencyCap) Value { return Value{Kind: KindFrequencyCaps, FreqCaps: caps} }

// feq and fne are the float comparisons at the fixed Epsilon tolerance.
func feq(a, b float64) bool { return math.Abs(a-b) <= Epsilon }
func fne(a, b float64) bool { return !feq(a, b) }

// FEq and FNE export feq/fne: the fixed-tolerance form, for callers
// with no RuleSet-scoped tolerance to consult.
func FEq(a, b float64) bool { return feq(a, b) }
func FNE(a, b float64) bool { return fne(a, b) }

// FEqTol and FNETol are the RuleSet-scoped variants: eps is normally
// rs.Config.Epsilon, letting a caller's configured tolerance actually
// reach the comparison instead of silently falling back to Epsilon.
func FEqTol(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
func FNETol(a, b, eps float64) bool { return !FEqTol(a, b, eps) }

// Bounds records the permitted interval for an attribute's scalar
// domain. Only the fields matching the attribute's ValueKind are
// meaningful.
type Bounds struct {
	IMin, IMax int64
	FMin, FMax float64
	BMin, BMax bool

	// StringBounded is true when the string domain declares an admitted
	// dictionary range [SMin, SMax] of interned ids.
	StringBounded bool
	SMin, SMax    int
}

// AttributeDomain is the declared shape of one attribute: its dense id,
// its value kind, its permitted bounds and whether lookups of this
// attribute are allowed to come back UNDEFINED.
type AttributeDomain struct {
	AttributeID    int
	Kind           ValueKind
	Bounds         Bounds
	AllowUndefined bool
}

// Interval is the tightest enclosing range bound derivation can infer for
// an attribute, tagged by the attribute's value kind.
type Interval struct {
	Kind ValueKind

	ILo, IHi int64
	FLo, FHi float64
	BLo, BHi bool
	SLo, SHi int
}

// Full returns the interval spanning an attribute domain's entire
// permitted range — what bound derivation returns when no leaf
// constrains the attribute.
func Full(d AttributeDomain) Interval {
	switch d.Kind {
	case KindInteger:
		return Interval{Kind: KindInteger, ILo: d.Bounds.IMin, IHi: d.Bounds.IMax}
	case KindFloat:
		return Interval{Kind: KindFloat, FLo: d.Bounds.FMin, FHi: d.Bounds.FMax}
	case KindBool:
		return Interval{Kind: KindBool, BLo: d.Bounds.BMin, BHi: d.Bounds.BMax}
	case KindString:
		return Interval{Kind: KindString, SLo: d.Bounds.SMin, SHi: d.Bounds.SMax}
	default:
		return Interval{Kind: d.Kind}
	}
}

// Empty returns the inverted (empty) interval bound derivation widens
// from as it visits leaves: [domain.max, domain.min].
func Empty(d AttributeDomain) Interval {
	switch d.Kind {
	case KindInteger:
		return Interval{Kind: KindInteger, ILo: d.Bounds.IMax, IHi: d.Bounds.IMin}
	case KindFloat:
		return Interval{Kind: KindFloat, FLo: d.Bounds.FMax, FHi: d.Bounds.FMin}
	case KindBool:
		return Interval{Kind: KindBool, BLo: d.Bounds.BMax, BHi: d.Bounds.BMin}
	case KindString:
		return Interval{Kind: KindString, SLo: d.Bounds.SMax, SHi: d.Bounds.SMin}
	default:
		return Interval{Kind: d.Kind}
	}
}

// Contains reports whether v lies within the interval, per spec.md
// Property 5 (bound containment).
func (iv Interval) Contains(v Value) bool {
	switch iv.Kind {
	case KindInteger:
		return v.Int >= iv.ILo && v.Int <= iv.IHi
	case KindFloat:
		return v.Float >= iv.FLo-Epsilon && v.Float <= iv.FHi+Epsilon
	case KindBool:
		return (!iv.BLo || v.Bool) && (iv.BHi || !v.Bool)
	case KindString:
		return v.Str.StringID >= iv.SLo && v.Str.StringID <= iv.SHi
	default:
		return true
	}
}
