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
)

// Bound is the top-level bound-derivation entry point (C7, spec.md
// §4.3). It starts from the domain's empty (inverted) interval, widens
// it by walking e with reversed=false, and falls back to the domain's
// full interval when no leaf ever touched the attribute.
//
// Requesting a bound on a non-bounded domain kind (lists, segments,
// frequency caps, unbounded strings) is a caller error, reported via
// ErrUnboundedDomain rather than silently returning a meaningless
// interval.
func Bound(domain betree.AttributeDomain, e Expression) betree.Interval {
	attrLabel := fmt.Sprintf("attribute#%d", domain.AttributeID)
	switch domain.Kind {
	case betree.KindInteger, betree.KindFloat, betree.KindBool:
	case betree.KindString:
		if !domain.Bounds.StringBounded {
			betree.Raise(betree.ErrUnboundedDomain.New(domain.Kind, attrLabel), nil)
		}
	default:
		betree.Raise(betree.ErrUnboundedDomain.New(domain.Kind, attrLabel), nil)
	}

	acc := betree.Empty(domain)
	acc, touched := e.BoundOver(domain, false, acc, false)
	if !touched {
		return betree.Full(domain)
	}
	return acc
}
