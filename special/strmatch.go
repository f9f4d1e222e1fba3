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

import "strings"

// StringContains, StringStartsWith and StringEndsWith implement the
// three raw-text string predicates (spec.md §4.7): CONTAINS,
// STARTS_WITH and ENDS_WITH. They operate on raw text, never on interned
// string ids, since the pattern is a substring/prefix/suffix test rather
// than an equality test.
func StringContains(value, pattern string) bool   { return strings.Contains(value, pattern) }
func StringStartsWith(value, pattern string) bool { return strings.HasPrefix(value, pattern) }
func StringEndsWith(value, pattern string) bool    { return strings.HasSuffix(value, pattern) }
