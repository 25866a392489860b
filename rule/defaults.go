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

package rule

import (
	"net/http"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
	"dirpx.dev/apierrors/msgkey"
)

// Names of the handlers referenced by the default custom actions. The
// executor package registers implementations under these names.
const (
	HandlerSessionExpired  = "sessionExpired"
	HandlerMaintenanceMode = "maintenanceMode"
)

// Component names of the modals opened by the default rules.
const (
	ModalFeatureGate     = "FeatureGateModal"
	ModalSubscription    = "SubscriptionModal"
	ModalPaymentRequired = "PaymentRequiredModal"
)

// authPaths are the endpoints whose own 401 responses must not be treated
// as an expired session; redirecting from them would loop.
var authPaths = []string{"/auth/login", "/auth/refresh", "/auth/otp"}

// Defaults returns a fresh copy of the default rule set, in declaration
// order. Registries sort it by priority.
//
// The tiers are load-bearing:
//
//	100 session-expired         (route-specific: auth endpoints are skipped)
//	 50 feature-gated, subscription-required, payment-required
//	 25 maintenance-mode        (above the generic 5xx rule)
//	 10 request-timeout, bad-gateway
//	  0 forbidden, not-found, validation-error, conflict, rate-limited,
//	    server-error, network-offline
func Defaults() []Rule {
	return []Rule{
		{
			Name:            "session-expired",
			Match:           Matcher{Status: Status(http.StatusUnauthorized)},
			Action:          Custom(HandlerSessionExpired).Suppressed(),
			MessageKey:      msgkey.MustParse("errors.session_expired"),
			FallbackMessage: "Your session has expired. Please sign in again.",
			Priority:        PriorityRoute,
			SkipIf:          SkipPaths(authPaths...),
		},
		{
			Name:            "feature-gated",
			Match:           Matcher{Status: Status(http.StatusForbidden), ErrorCode: Codes(code.FeatureGated)},
			Action:          Modal(ModalFeatureGate, apierrors.SeverityInfo).Suppressed(),
			MessageKey:      msgkey.MustParse("errors.billing.feature_gated"),
			FallbackMessage: "This feature is not available on your current plan.",
			Priority:        PriorityFeature,
		},
		{
			Name:            "subscription-required",
			Match:           Matcher{Status: Status(http.StatusForbidden), ErrorCode: Codes(code.SubscriptionRequired)},
			Action:          Modal(ModalSubscription, apierrors.SeverityWarning).Suppressed(),
			MessageKey:      msgkey.MustParse("errors.billing.subscription_required"),
			FallbackMessage: "An active subscription is required.",
			Priority:        PriorityFeature,
		},
		{
			Name:            "payment-required",
			Match:           Matcher{Status: Status(http.StatusPaymentRequired)},
			Action:          Modal(ModalPaymentRequired, apierrors.SeverityWarning).Suppressed(),
			MessageKey:      msgkey.MustParse("errors.billing.payment_required"),
			FallbackMessage: "A payment is required to continue.",
			Priority:        PriorityFeature,
		},
		{
			Name:            "maintenance-mode",
			Match:           Matcher{Status: Status(http.StatusServiceUnavailable)},
			Action:          Custom(HandlerMaintenanceMode).Suppressed(),
			MessageKey:      msgkey.MustParse("errors.maintenance"),
			FallbackMessage: "The service is down for maintenance.",
			Priority:        PriorityMaintenance,
		},
		{
			Name:            "request-timeout",
			Match:           Matcher{ErrorCode: Codes(code.Timeout)},
			Action:          Toast(apierrors.SeverityWarning),
			MessageKey:      msgkey.MustParse("errors.network.timeout"),
			FallbackMessage: "The request timed out. Please try again.",
			Priority:        PrioritySpecific,
		},
		{
			Name:            "bad-gateway",
			Match:           Matcher{Status: StatusIn(http.StatusBadGateway, http.StatusGatewayTimeout)},
			Action:          Toast(apierrors.SeverityError).Reported(),
			MessageKey:      msgkey.MustParse("errors.server.bad_gateway"),
			FallbackMessage: "The service is temporarily unreachable.",
			Priority:        PrioritySpecific,
		},
		{
			Name:            "forbidden",
			Match:           Matcher{Status: Status(http.StatusForbidden)},
			Action:          Toast(apierrors.SeverityError),
			MessageKey:      msgkey.MustParse("errors.forbidden"),
			FallbackMessage: "You do not have permission to do this.",
		},
		{
			Name:            "not-found",
			Match:           Matcher{Status: Status(http.StatusNotFound)},
			Action:          Toast(apierrors.SeverityWarning),
			MessageKey:      msgkey.MustParse("errors.not_found"),
			FallbackMessage: "The requested resource was not found.",
		},
		{
			Name:   "validation-error",
			Match:  Matcher{Status: StatusIn(http.StatusBadRequest, http.StatusUnprocessableEntity)},
			Action: Toast(apierrors.SeverityWarning),
			// No message key: the server's validation message is more useful
			// than any generic text.
		},
		{
			Name:            "conflict",
			Match:           Matcher{Status: Status(http.StatusConflict)},
			Action:          Toast(apierrors.SeverityWarning),
			MessageKey:      msgkey.MustParse("errors.conflict"),
			FallbackMessage: "The resource was changed by someone else.",
		},
		{
			Name:            "rate-limited",
			Match:           Matcher{Status: Status(http.StatusTooManyRequests)},
			Action:          Toast(apierrors.SeverityWarning),
			MessageKey:      msgkey.MustParse("errors.rate_limited"),
			FallbackMessage: "Too many requests. Please slow down.",
		},
		{
			Name:            "server-error",
			Match:           Matcher{Status: StatusBetween(500, 599)},
			Action:          Toast(apierrors.SeverityError).Reported(),
			MessageKey:      msgkey.MustParse("errors.server"),
			FallbackMessage: "Something went wrong on our side.",
		},
		{
			Name:            "network-offline",
			Match:           Matcher{Status: Status(apierrors.StatusNetwork)},
			Action:          Toast(apierrors.SeverityWarning),
			MessageKey:      msgkey.MustParse("errors.network.offline"),
			FallbackMessage: "You appear to be offline.",
		},
	}
}
