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
	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"github.com/adserving/betree/intern"
)

// RuleSet is the composition root a built collection of rules shares:
// the attribute registry, the string and predicate interners, engine
// config and the frequency-type table. It lives for the lifetime of the
// rule set and is read-only once building is complete — safe for
// concurrent Match calls (spec.md §5). Mirrors the role engine.go's
// Engine plays for the teacher: a long-lived struct gluing together the
// subsystems a query needs, built once via New.
type RuleSet struct {
	registry   *AttributeRegistry
	strings    *intern.StringInterner
	predicates *intern.PredicateInterner

	Config         Config
	FrequencyTypes FrequencyTypeConfig
	BuildID        string
}

// New creates an empty RuleSet. Zero fields of cfg take DefaultConfig's
// values, so the zero value yields DefaultConfig; freqTypes defaults to
// DefaultFrequencyTypes when nil (spec.md §9 REDESIGN FLAG).
func New(cfg Config, freqTypes FrequencyTypeConfig) *RuleSet {
	def := DefaultConfig()
	if cfg.Epsilon == 0 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.EarthRadiusKM == 0 {
		cfg.EarthRadiusKM = def.EarthRadiusKM
	}
	if freqTypes == nil {
		freqTypes = DefaultFrequencyTypes
	}

	id, err := uuid.NewV4()
	buildID := "unknown"
	if err == nil {
		buildID = id.String()
	}

	return &RuleSet{
		registry:       NewAttributeRegistry(),
		strings:        intern.NewStringInterner(),
		predicates:     intern.NewPredicateInterner(),
		Config:         cfg,
		FrequencyTypes: freqTypes,
		BuildID:        buildID,
	}
}

// Registry returns the rule set's attribute registry (C2).
func (rs *RuleSet) Registry() *AttributeRegistry { return rs.registry }

// InternString interns a (attribute, string) literal under its attribute
// scope (C3). ok is false when the attribute has a bounded string
// dictionary and s is not in it.
func (rs *RuleSet) InternString(attributeID int, s string) (id int, ok bool) {
	return rs.strings.Intern(attributeID, s)
}

// LookupString is a non-mutating probe: it returns the id already
// interned for s without assigning a new one.
func (rs *RuleSet) LookupString(attributeID int, s string) (id int, ok bool) {
	return rs.strings.Lookup(attributeID, s)
}

// StringDomainBounded reports whether attributeID has a declared bounded
// string dictionary.
func (rs *RuleSet) StringDomainBounded(attributeID int) bool {
	return rs.strings.IsBounded(attributeID)
}

// DeclareBoundedStrings pre-populates an attribute's admitted string
// dictionary.
func (rs *RuleSet) DeclareBoundedStrings(attributeID int, admitted []string) {
	rs.strings.DeclareBounded(attributeID, admitted)
}

// StringDomainMinMax returns a bounded attribute's [smin_id, smax_id].
func (rs *RuleSet) StringDomainMinMax(attributeID int) (min, max int, ok bool) {
	return rs.strings.MinMaxID(attributeID)
}

// AssignPredicateID hash-conses a leaf or compound-boolean structural
// key (C8), returning the dense predicate id it should adopt.
func (rs *RuleSet) AssignPredicateID(key interface{}) int {
	return rs.predicates.Assign(key)
}

// PredicateCount returns the number of distinct predicate ids assigned
// so far — used to size a Memo.
func (rs *RuleSet) PredicateCount() int {
	return rs.predicates.Count()
}

// NewMemo creates a Memo pre-sized for this rule set: the larger of the
// actual predicate count and Config.PredicateCountHint, so a hint set
// ahead of a build that still has predicates left to assign can avoid
// the bitsets' later lazy regrowth. Callers that already know their
// exact predicate count can still size a Memo directly via NewMemo.
func (rs *RuleSet) NewMemo() *Memo {
	n := rs.PredicateCount()
	if rs.Config.PredicateCountHint > n {
		n = rs.Config.PredicateCountHint
	}
	return NewMemo(n)
}

// Log returns a logrus entry tagged with this rule set's build id, for
// callers that want to attach their own fields before logging.
func (rs *RuleSet) Log() *logrus.Entry {
	return buildLogger(rs.BuildID)
}
