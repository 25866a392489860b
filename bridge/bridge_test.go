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

package bridge

import (
	"testing"
	"time"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	toasts   []event.Toast
	targets  []string
	expiries int
}

func newBridge(bus *event.Bus[event.Event], rec *recorder, opts ...Option) *Bridge {
	base := []Option{
		WithToaster(ToasterFunc(func(t event.Toast) { rec.toasts = append(rec.toasts, t) })),
		WithNavigator(NavigatorFunc(func(s string) { rec.targets = append(rec.targets, s) })),
		WithSession(SessionFunc(func() { rec.expiries++ })),
	}
	return New(bus, append(base, opts...)...)
}

func TestBridge_TranslatesEvents(t *testing.T) {
	bus := event.NewBus[event.Event]()
	rec := &recorder{}
	b := newBridge(bus, rec)
	b.Mount()

	toast := event.Toast{Severity: apierrors.SeverityWarning, Message: "offline"}
	bus.Emit(toast)
	bus.Emit(event.Redirect{Target: "/login"})
	bus.Emit(event.SessionExpired{})
	bus.Emit(event.MaintenanceMode{})
	bus.Emit(event.MaintenanceMode{EstimatedEnd: time.Date(2025, 6, 1, 4, 0, 0, 0, time.UTC)})

	assert.Equal(t, []event.Toast{toast}, rec.toasts)
	assert.Equal(t, []string{
		"/login",
		"/maintenance",
		"/maintenance?until=2025-06-01T04%3A00%3A00Z",
	}, rec.targets)
	assert.Equal(t, 1, rec.expiries)
	_, ok := b.ActiveModal()
	assert.False(t, ok)
}

func TestBridge_ModalReplacesAndDismisses(t *testing.T) {
	bus := event.NewBus[event.Event]()
	b := newBridge(bus, &recorder{})
	b.Mount()

	bus.Emit(event.Modal{Component: "FeatureGateModal", Message: "upgrade"})
	bus.Emit(event.Modal{Component: "SubscriptionModal", Message: "subscribe"})

	m, ok := b.ActiveModal()
	require.True(t, ok)
	assert.Equal(t, "SubscriptionModal", m.Component, "modals replace, never stack")

	b.Dismiss()
	_, ok = b.ActiveModal()
	assert.False(t, ok)

	b.Dismiss()
	_, ok = b.ActiveModal()
	assert.False(t, ok)
}

func TestBridge_MountUnmountDoesNotLeak(t *testing.T) {
	bus := event.NewBus[event.Event]()
	rec := &recorder{}
	b := newBridge(bus, rec)

	for i := 0; i < 5; i++ {
		b.Mount()
		b.Mount()
		assert.True(t, b.Mounted())
		assert.Equal(t, 1, bus.Len())

		b.Unmount()
		b.Unmount()
		assert.False(t, b.Mounted())
		assert.Equal(t, 0, bus.Len())
	}

	bus.Emit(event.Toast{Message: "unheard"})
	assert.Empty(t, rec.toasts)

	b.Mount()
	bus.Emit(event.Toast{Message: "heard"})
	require.Len(t, rec.toasts, 1, "exactly one delivery after remount")
}

func TestBridge_MissingCollaboratorsAreTolerated(t *testing.T) {
	bus := event.NewBus[event.Event]()
	b := New(bus, WithMaintenancePath("/down"))
	b.Mount()

	assert.NotPanics(t, func() {
		bus.Emit(event.Toast{Message: "x"})
		bus.Emit(event.Redirect{Target: "/"})
		bus.Emit(event.SessionExpired{})
		bus.Emit(event.MaintenanceMode{})
	})
}

func TestBridge_NilBus(t *testing.T) {
	b := New(nil)
	assert.NotPanics(t, func() {
		b.Mount()
		b.Unmount()
	})
}

func TestMaintenanceTarget(t *testing.T) {
	assert.Equal(t, "/down", MaintenanceTarget("/down", time.Time{}))
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, "/down?until=2025-06-01T03%3A00%3A00Z",
		MaintenanceTarget("/down", time.Date(2025, 6, 1, 4, 0, 0, 0, loc)))
}
