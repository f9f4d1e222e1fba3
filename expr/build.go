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

	"github.com/hashicorp/go-multierror"

	"github.com/adserving/betree"
)

// AssignVariableID walks e and resolves every attribute-name reference
// to its registry id, via each node's assignVariableID hook (spec.md
// §4.9, C2). An unknown attribute name raises ErrUnknownAttribute
// (programming error, not a collected validation error) since build-time
// id assignment is expected to run only after registration; the panic is
// recovered here and returned as the error, and the walk stops there.
func AssignVariableID(rs *betree.RuleSet, e Expression) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("betree/expr: assign variable id: %v", r)
		}
	}()
	e.assignVariableID(rs)
	return nil
}

// AssignStringID walks e and interns every string literal under its
// attribute's scope, via each node's assignStringID hook (C3).
// AssignVariableID must have run first so attribute ids are resolved.
func AssignStringID(rs *betree.RuleSet, e Expression) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("betree/expr: assign string id: %v", r)
		}
	}()
	e.assignStringID(rs)
	return nil
}

// AssignPredicateID walks e bottom-up, hash-consing each node's
// structural key into the rule set's predicate interner (C8). Children
// are assigned before their parents so compound-boolean keys can
// reference already-resolved child predicate ids.
func AssignPredicateID(rs *betree.RuleSet, e Expression) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("betree/expr: assign predicate id: %v", r)
		}
	}()
	e.assignPredicateID(rs)
	return nil
}

// AllVariablesInConfig walks e and collects every attribute reference
// that the registry never had declared for it, via a dry-run probe
// rather than the fatal assignVariableID path, returning every failure
// as one combined error (spec.md §4.9).
func AllVariablesInConfig(rs *betree.RuleSet, e Expression) error {
	var result *multierror.Error
	walkAttrNames(e, func(name string) {
		if _, ok := rs.Registry().GetIDForAttr(name); !ok {
			result = multierror.Append(result, fmt.Errorf("attribute %q is not registered", name))
		}
	})
	return result.ErrorOrNil()
}

// walkAttrNames visits every attribute name a node's leaf shape
// references, recursing into compound children.
func walkAttrNames(e Expression, visit func(name string)) {
	switch n := e.(type) {
	case *NumericCompare:
		visit(n.AttrName)
	case *Equality:
		visit(n.AttrName)
	case *Variable:
		visit(n.AttrName)
	case *Set:
		if n.Left.IsVariable {
			visit(n.Left.AttrName)
		}
		if n.Right.IsVariable {
			visit(n.Right.AttrName)
		}
	case *List:
		visit(n.AttrName)
	case *Frequency:
		visit(n.AttrName)
	case *Segment:
		visit(n.AttrName)
	case *Geo:
		visit(implicitLatitude)
		visit(implicitLongitude)
	case *StringPredicate:
		visit(n.AttrName)
	}
	for _, c := range e.Children() {
		walkAttrNames(c, visit)
	}
}

// AllBoundedStringsValid walks e and collects every string literal that
// was rejected by its attribute's bounded dictionary (spec.md §4.9,
// Property 4). AssignVariableID and AssignStringID must have run first.
func AllBoundedStringsValid(rs *betree.RuleSet, e Expression) error {
	var result *multierror.Error
	walkStringLiterals(e, func(attrID int, literal string, ok bool) {
		if !ok && rs.StringDomainBounded(attrID) {
			result = multierror.Append(result, fmt.Errorf(
				"string literal %q is not in the declared dictionary for attribute %q", literal, rs.Registry().Name(attrID)))
		}
	})
	return result.ErrorOrNil()
}

func walkStringLiterals(e Expression, visit func(attrID int, literal string, ok bool)) {
	switch n := e.(type) {
	case *Equality:
		if n.Kind == betree.KindString {
			visit(n.attrID, n.StringLit, n.hasStringID)
		}
	case *Set:
		if n.Left.IsVariable && n.Right.IsString {
			for i, s := range n.Right.StrList {
				ok := i < len(n.rightStringIDs) && n.rightStringIDs[i] >= 0
				visit(n.leftAttrID, s, ok)
			}
		} else if !n.Left.IsVariable && n.Left.IsString {
			visit(n.rightAttrID, n.Left.StrLit, n.leftStringID >= 0)
		}
	case *List:
		if n.IsString {
			for i, s := range n.StrLits {
				ok := i < len(n.strIDs) && n.strIDs[i] >= 0
				visit(n.attrID, s, ok)
			}
		}
	}
	for _, c := range e.Children() {
		walkStringLiterals(c, visit)
	}
}
