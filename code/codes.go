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

package code

// Codes produced by the classification layer.
const (
	// Timeout marks a request that the transport abandoned because it ran
	// out of time. The status of such a request is the network sentinel (0),
	// so this code is the only way to tell a timeout from a lost connection.
	Timeout Code = "TIMEOUT"
)

// Access and entitlement codes
//
// These codes are sent by the backend alongside 401/402/403 responses when
// the generic status is not precise enough to pick the right UI response.
const (
	// FeatureGated indicates that the caller is authenticated and allowed in
	// principle, but the feature is not enabled for their plan or tenant.
	// Paired with 403; must be checked before the generic forbidden rule.
	FeatureGated Code = "FEATURE_GATED"

	// SubscriptionRequired indicates that the action needs an active
	// subscription. Paired with 403.
	SubscriptionRequired Code = "SUBSCRIPTION_REQUIRED"

	// SessionExpired indicates that the session behind the credentials has
	// ended. Usually paired with 401.
	SessionExpired Code = "SESSION_EXPIRED"
)

// Request and state codes
const (
	// ValidationFailed indicates that the payload failed server-side
	// validation. Paired with 400 or 422.
	ValidationFailed Code = "VALIDATION_ERROR"

	// Conflict indicates a concurrent modification or a duplicate resource.
	// Paired with 409.
	Conflict Code = "CONFLICT"

	// RateLimited indicates that the caller exceeded a rate limit.
	// Paired with 429.
	RateLimited Code = "RATE_LIMITED"

	// Maintenance indicates planned downtime. Paired with 503.
	Maintenance Code = "MAINTENANCE"
)
