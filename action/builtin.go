/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package action

import (
	"context"
	"time"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/event"
	"dirpx.dev/apierrors/rule"
)

// Body fields consulted for the end of a maintenance window.
var estimatedEndFields = []string{"estimatedEnd", "estimated_end", "until"}

// SessionExpiredHandler emits event.SessionExpired on bus.
func SessionExpiredHandler(bus *event.Bus[event.Event]) Handler {
	return func(_ context.Context, _ apierrors.ClassifiedError, _ rule.Rule) error {
		bus.Emit(event.SessionExpired{})
		return nil
	}
}

// MaintenanceModeHandler emits event.MaintenanceMode on bus. The estimated
// end is read from the response body when it carries an RFC 3339 time.
func MaintenanceModeHandler(bus *event.Bus[event.Event]) Handler {
	return func(_ context.Context, err apierrors.ClassifiedError, _ rule.Rule) error {
		bus.Emit(event.MaintenanceMode{EstimatedEnd: estimatedEnd(err)})
		return nil
	}
}

func estimatedEnd(err apierrors.ClassifiedError) time.Time {
	body, ok := err.BodyMap()
	if !ok {
		return time.Time{}
	}
	for _, f := range estimatedEndFields {
		s, ok := body[f].(string)
		if !ok || s == "" {
			continue
		}
		if t, perr := time.Parse(time.RFC3339, s); perr == nil {
			return t
		}
	}
	return time.Time{}
}
