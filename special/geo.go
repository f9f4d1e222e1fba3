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

import "math"

// DefaultEarthRadiusKM is the mean earth radius used by GeoWithinRadius
// when the caller does not override it via betree.Config.EarthRadiusKM.
const DefaultEarthRadiusKM = 6372.8

// GeoWithinRadius implements within_radius (spec.md §4.7): a chord-to-arc
// great-circle distance between the rule's (latRule, lonRule) and the
// event's (latEvent, lonEvent), compared against radiusKM.
func GeoWithinRadius(latRule, lonRule, latEvent, lonEvent, radiusKM, earthRadiusKM float64) bool {
	if earthRadiusKM == 0 {
		earthRadiusKM = DefaultEarthRadiusKM
	}

	dlon := (lonRule - lonEvent) * math.Pi / 180
	lat1 := latRule * math.Pi / 180
	lat2 := latEvent * math.Pi / 180

	dz := math.Sin(lat1) - math.Sin(lat2)
	dx := math.Cos(dlon)*math.Cos(lat1) - math.Cos(lat2)
	dy := math.Sin(dlon) * math.Cos(lat1)

	chord := math.Sqrt(dx*dx+dy*dy+dz*dz) / 2
	d := 2 * earthRadiusKM * math.Asin(chord)

	return d <= radiusKM
}
