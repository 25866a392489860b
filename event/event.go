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

package event

import (
	"time"

	"dirpx.dev/apierrors"
)

// Kind discriminates the Event union.
type Kind string

// Event kinds.
const (
	KindToast           Kind = "toast"
	KindModal           Kind = "modal"
	KindRedirect        Kind = "redirect"
	KindSessionExpired  Kind = "session_expired"
	KindMaintenanceMode Kind = "maintenance_mode"
)

// Event is one of Toast, Modal, Redirect, SessionExpired or MaintenanceMode.
// Each carries only what the presentation layer needs.
type Event interface {
	Kind() Kind
}

// Toast asks the presentation layer to show a transient notification.
type Toast struct {
	Severity apierrors.Severity `json:"severity"`
	Message  string             `json:"message"`
	// Duration is optional; zero lets the presentation layer decide.
	Duration time.Duration `json:"duration,omitempty"`
}

// Modal asks the presentation layer to open a dialog.
type Modal struct {
	Component string             `json:"modalComponent"`
	Message   string             `json:"message"`
	Severity  apierrors.Severity `json:"severity"`
	Data      map[string]any     `json:"data,omitempty"`
}

// Redirect asks the presentation layer to navigate to Target.
type Redirect struct {
	Target  string `json:"target"`
	Message string `json:"message,omitempty"`
}

// SessionExpired asks the presentation layer to tear the session down and
// send the user to sign in again.
type SessionExpired struct{}

// MaintenanceMode tells the presentation layer the backend is down for
// planned maintenance.
type MaintenanceMode struct {
	// EstimatedEnd is optional; the zero time means unknown.
	EstimatedEnd time.Time `json:"estimatedEnd,omitzero"`
}

func (Toast) Kind() Kind           { return KindToast }
func (Modal) Kind() Kind           { return KindModal }
func (Redirect) Kind() Kind        { return KindRedirect }
func (SessionExpired) Kind() Kind  { return KindSessionExpired }
func (MaintenanceMode) Kind() Kind { return KindMaintenanceMode }
