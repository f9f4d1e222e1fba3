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
	airbrake "gopkg.in/gemnasium/logrus-airbrake-hook.v2"
	"github.com/sirupsen/logrus"
)

// EnableAirbrakeReporting wires an Airbrake/Errbit hook into the default
// logrus logger so fatal programming-error diagnostics (errors.go, Raise)
// are shipped to an error-tracking backend in production. Off by default;
// mirrors the optional AuditMethod hook pattern in auth/audit.go, but for
// error reporting rather than query auditing.
func EnableAirbrakeReporting(projectID int64, apiKey, environment string) {
	hook := airbrake.NewHook(projectID, apiKey, environment)
	logrus.AddHook(hook)
}

// buildLogger returns a logrus entry pre-populated with the rule set's
// build id, the way auth/audit.go tags every audit line with "system".
func buildLogger(buildID string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"system":   "betree",
		"build_id": buildID,
	})
}
