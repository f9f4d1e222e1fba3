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

// Package betree implements a predicate-expression matching engine: a
// large set of boolean rules over typed attributes is evaluated against
// an incoming event. This package holds the value model, the attribute
// registry and the rule set that glue the expression AST (package expr),
// the string/predicate interners (package intern), the event bindings
// (package event) and the domain-specific predicates (package special)
// together.
package betree
