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
	"log/slog"
	"net/url"
	"sync"
	"time"

	"dirpx.dev/apierrors/event"
)

// DefaultMaintenancePath is where MaintenanceMode events navigate to.
const DefaultMaintenancePath = "/maintenance"

// Bridge maps bus events to collaborator calls.
type Bridge struct {
	bus             *event.Bus[event.Event]
	toaster         Toaster
	navigator       Navigator
	session         Session
	maintenancePath string
	logger          *slog.Logger

	mu          sync.Mutex
	active      *event.Modal
	unsubscribe func()
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithToaster sets the toast collaborator.
func WithToaster(t Toaster) Option { return func(b *Bridge) { b.toaster = t } }

// WithNavigator sets the navigation collaborator.
func WithNavigator(n Navigator) Option { return func(b *Bridge) { b.navigator = n } }

// WithSession sets the session collaborator.
func WithSession(s Session) Option { return func(b *Bridge) { b.session = s } }

// WithMaintenancePath sets the maintenance page path.
func WithMaintenancePath(p string) Option {
	return func(b *Bridge) {
		if p != "" {
			b.maintenancePath = p
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns an unmounted Bridge for bus.
func New(bus *event.Bus[event.Event], opts ...Option) *Bridge {
	b := &Bridge{
		bus:             bus,
		maintenancePath: DefaultMaintenancePath,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.logger = b.logger.With("component", "EventBridge")
	return b
}

// Mount subscribes to the bus. Mounting a mounted Bridge is a no-op.
func (b *Bridge) Mount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unsubscribe != nil {
		return
	}
	b.unsubscribe = b.bus.Subscribe(b.handle)
}

// Unmount unsubscribes from the bus. Unmounting twice is a no-op. The
// active modal is kept so a remount shows it again.
func (b *Bridge) Unmount() {
	b.mu.Lock()
	unsub := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Mounted reports whether the Bridge is subscribed.
func (b *Bridge) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unsubscribe != nil
}

// ActiveModal returns the modal currently shown, if any.
func (b *Bridge) ActiveModal() (event.Modal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return event.Modal{}, false
	}
	return *b.active, true
}

// Dismiss clears the active modal.
func (b *Bridge) Dismiss() {
	b.mu.Lock()
	b.active = nil
	b.mu.Unlock()
}

func (b *Bridge) handle(ev event.Event) {
	switch e := ev.(type) {
	case event.Toast:
		if b.toaster == nil {
			b.skip(ev)
			return
		}
		b.toaster.ShowToast(e)

	case event.Modal:
		b.mu.Lock()
		b.active = &e
		b.mu.Unlock()

	case event.Redirect:
		b.navigate(ev, e.Target)

	case event.SessionExpired:
		if b.session == nil {
			b.skip(ev)
			return
		}
		b.session.Expire()

	case event.MaintenanceMode:
		b.navigate(ev, MaintenanceTarget(b.maintenancePath, e.EstimatedEnd))

	default:
		b.logger.Warn("unknown event ignored", "event", ev)
	}
}

func (b *Bridge) navigate(ev event.Event, target string) {
	if b.navigator == nil {
		b.skip(ev)
		return
	}
	b.navigator.Navigate(target)
}

func (b *Bridge) skip(ev event.Event) {
	b.logger.Debug("no collaborator for event", "kind", string(ev.Kind()))
}

// MaintenanceTarget returns path, with the estimated end appended as an
// RFC 3339 "until" query parameter when known.
func MaintenanceTarget(path string, end time.Time) string {
	if end.IsZero() {
		return path
	}
	q := url.Values{}
	q.Set("until", end.UTC().Format(time.RFC3339))
	return path + "?" + q.Encode()
}
