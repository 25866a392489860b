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
	"fmt"
	"log/slog"
	"sync"
)

// Listener receives events from a Bus.
type Listener[T any] func(T)

// Bus is a synchronous, unbuffered publish/subscribe channel.
//
// The zero value is not usable; construct with NewBus. A Bus is safe for
// concurrent use: the listener list is guarded, and Emit calls listeners
// outside the lock so a listener may subscribe or unsubscribe re-entrantly.
type Bus[T any] struct {
	mu     sync.Mutex
	subs   []*subscription[T]
	nextID uint64
	logger *slog.Logger
}

type subscription[T any] struct {
	id uint64
	fn Listener[T]
}

// BusOption configures a Bus at construction.
type BusOption func(*busConfig)

type busConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report listener panics.
func WithLogger(l *slog.Logger) BusOption {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewBus constructs an empty bus.
func NewBus[T any](opts ...BusOption) *Bus[T] {
	cfg := busConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bus[T]{logger: cfg.logger.With("component", "EventBus")}
}

// Subscribe adds fn to the end of the listener list and returns a function
// that removes it. The returned function is idempotent.
// A nil fn or a nil Bus yields a no-op unsubscribe.
func (b *Bus[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, &subscription[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			next := make([]*subscription[T], 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			b.subs = append(next, b.subs[i+1:]...)
			return
		}
	}
}

// Emit delivers ev to every current listener, in subscription order, before
// returning. A panicking listener is recovered and logged; delivery continues
// with the next listener. Emit on a nil Bus is a no-op.
func (b *Bus[T]) Emit(ev T) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, s := range subs {
		b.deliver(s, ev)
	}
}

func (b *Bus[T]) deliver(s *subscription[T], ev T) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("event listener panicked",
				"listener", s.id,
				"event", fmt.Sprintf("%T", ev),
				"panic", fmt.Sprint(r),
			)
		}
	}()
	s.fn(ev)
}

// Clear removes every listener. Intended for tests and resets.
func (b *Bus[T]) Clear() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}

// Len returns the number of current listeners; 0 for a nil Bus.
func (b *Bus[T]) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
