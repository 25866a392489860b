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
	"fmt"
	"time"

	"dirpx.dev/apierrors"
)

// ActionKind discriminates the Action union.
type ActionKind string

// Known action kinds.
const (
	// KindToast shows a transient notification.
	KindToast ActionKind = "toast"
	// KindModal opens a blocking dialog identified by a component name.
	KindModal ActionKind = "modal"
	// KindRedirect navigates to another location.
	KindRedirect ActionKind = "redirect"
	// KindSilent only acknowledges the error in the logs.
	KindSilent ActionKind = "silent"
	// KindRetry is reserved. No retry scheduling is performed; executing it
	// logs a warning and emits nothing.
	KindRetry ActionKind = "retry"
	// KindCustom invokes a handler registered by name.
	KindCustom ActionKind = "custom"
)

// Valid reports whether k is a known kind.
func (k ActionKind) Valid() bool {
	switch k {
	case KindToast, KindModal, KindRedirect, KindSilent, KindRetry, KindCustom:
		return true
	}
	return false
}

// String returns the kind name.
func (k ActionKind) String() string { return string(k) }

// Action is the response a matched rule requests.
//
// Which payload fields are meaningful depends on Kind:
//
//	toast:    Severity, Duration
//	modal:    Modal, Severity, Data
//	redirect: Target
//	retry:    MaxRetries
//	custom:   Handler
//
// ReportToMonitoring and SuppressError apply to every kind.
type Action struct {
	Kind ActionKind

	// Severity of a toast or modal. Empty means the executor default.
	Severity apierrors.Severity

	// Duration of a toast. Zero means the executor default.
	Duration time.Duration

	// Modal is the component name of the dialog to open.
	Modal string

	// Data is passed through to the modal as-is.
	Data map[string]any

	// Target is the redirect destination.
	Target string

	// Handler names the custom handler to invoke.
	Handler string

	// MaxRetries is carried for retry actions.
	MaxRetries int

	// ReportToMonitoring forwards the error to the monitoring reporter after
	// the primary action.
	ReportToMonitoring bool

	// SuppressError tells the call site that the UI response fully covers
	// the failure, so no additional caller-level error display is needed.
	// The original error is still returned to the caller.
	SuppressError bool
}

// Toast returns a toast action with the given severity.
func Toast(sev apierrors.Severity) Action {
	return Action{Kind: KindToast, Severity: sev}
}

// Modal returns a modal action for the given component.
func Modal(component string, sev apierrors.Severity) Action {
	return Action{Kind: KindModal, Modal: component, Severity: sev}
}

// Redirect returns a redirect action to target.
func Redirect(target string) Action {
	return Action{Kind: KindRedirect, Target: target}
}

// Silent returns an action that only logs.
func Silent() Action {
	return Action{Kind: KindSilent}
}

// Retry returns the reserved retry action.
func Retry(maxRetries int) Action {
	return Action{Kind: KindRetry, MaxRetries: maxRetries}
}

// Custom returns an action invoking the named handler.
func Custom(handler string) Action {
	return Action{Kind: KindCustom, Handler: handler}
}

// Reported returns a copy of a with ReportToMonitoring set.
func (a Action) Reported() Action {
	a.ReportToMonitoring = true
	return a
}

// Suppressed returns a copy of a with SuppressError set.
func (a Action) Suppressed() Action {
	a.SuppressError = true
	return a
}

// WithDuration returns a copy of a with the toast duration set.
func (a Action) WithDuration(d time.Duration) Action {
	a.Duration = d
	return a
}

// WithData returns a copy of a carrying modal data.
func (a Action) WithData(data map[string]any) Action {
	if len(data) == 0 {
		return a
	}
	cp := make(map[string]any, len(data))
	for k, v := range data {
		cp[k] = v
	}
	a.Data = cp
	return a
}

// Validate checks that the payload required by Kind is present.
func (a Action) Validate() error {
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	if a.Severity != "" && !a.Severity.Valid() {
		return fmt.Errorf("unknown severity %q", a.Severity)
	}
	switch a.Kind {
	case KindModal:
		if a.Modal == "" {
			return fmt.Errorf("modal action without component")
		}
	case KindRedirect:
		if a.Target == "" {
			return fmt.Errorf("redirect action without target")
		}
	case KindCustom:
		if a.Handler == "" {
			return fmt.Errorf("custom action without handler")
		}
	case KindRetry:
		if a.MaxRetries < 0 {
			return fmt.Errorf("retry action with negative max retries")
		}
	}
	if a.Duration < 0 {
		return fmt.Errorf("negative toast duration")
	}
	return nil
}
