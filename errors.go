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
	errors "gopkg.in/src-d/go-errors.v1"
)

// Fatal error kinds. These represent programming errors — invalid AST
// shapes, type mismatches against the declared domain, missing
// attributes without allow_undefined, bounds requested on a non-bounded
// kind — that the parser/build layer should have prevented. They are
// raised with Raise, which logs a diagnostic and panics; there is no
// recoverable path for these inside the core (spec.md §7).
var (
	// ErrTypeMismatch is raised when an event binds an attribute to a
	// value kind that does not match the expression literal's kind.
	ErrTypeMismatch = errors.NewKind("type mismatch: attribute %q expected %s, got %s")
	// ErrAttributeMissing is raised when an attribute is absent from an
	// event and its domain does not declare allow_undefined.
	ErrAttributeMissing = errors.NewKind("attribute %q is missing and does not allow undefined")
	// ErrInvalidSetShape is raised when a Set expression does not have
	// exactly one variable side.
	ErrInvalidSetShape = errors.NewKind("set expression must have exactly one variable side")
	// ErrUnboundedDomain is raised when Bound is requested against a
	// domain kind that has no scalar bound (lists, segments, frequency
	// caps, unbounded strings).
	ErrUnboundedDomain = errors.NewKind("bound requested on non-bounded domain kind %s for attribute %q")
	// ErrUnknownAttribute is raised when build-time attribute resolution
	// (AssignVariableID) is asked to resolve an attribute name that was
	// never declared via RegisterDomain.
	ErrUnknownAttribute = errors.NewKind("attribute %q has no declared domain")
)

// Raise logs the violated invariant at Error severity (not Fatal, which
// would call os.Exit — embedding applications choose whether to recover) and panics
// with err. Use for the fatal/programming-error class only; UNDEFINED
// stays an in-band bool (spec.md §7).
func Raise(err error, fields logrus.Fields) {
	logrus.WithFields(fields).WithError(err).Error("betree: fatal programming error")
	panic(err)
}
