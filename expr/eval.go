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
	"github.com/opentracing/opentracing-go"

	"github.com/adserving/betree"
	"github.com/adserving/betree/event"
)

// Match is the top-level evaluator entry point (C6, spec.md §4.2). It
// opens an opentracing span around the recursive walk when a tracer is
// active in ctx-free form — embedding applications that want span
// parenting should wrap Match themselves; this span is a leaf.
func Match(rs *betree.RuleSet, ev *event.Event, e Expression, memo *betree.Memo, report *betree.Report) bool {
	span := opentracing.StartSpan("betree.Match")
	defer span.Finish()

	result := e.Eval(rs, ev, memo, report, true)
	span.SetTag("result", result)
	return result
}
