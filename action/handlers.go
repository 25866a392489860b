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
	"errors"
	"sort"
	"sync"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/rule"
)

// Handler is the callback behind a custom action.
type Handler func(ctx context.Context, err apierrors.ClassifiedError, r rule.Rule) error

// ErrInvalidHandler is returned when registering a handler without a name
// or without a function.
var ErrInvalidHandler = errors.New("apierrors: invalid handler")

// Handlers is the name -> handler registry consulted by custom actions.
// Names are global within one registry; registering an existing name
// replaces the previous handler.
type Handlers struct {
	mu sync.RWMutex
	m  map[string]Handler
}

// NewHandlers returns an empty registry.
func NewHandlers() *Handlers {
	return &Handlers{m: make(map[string]Handler)}
}

// Register binds name to fn.
func (h *Handlers) Register(name string, fn Handler) error {
	if name == "" || fn == nil {
		return ErrInvalidHandler
	}
	h.mu.Lock()
	h.m[name] = fn
	h.mu.Unlock()
	return nil
}

// registerIfAbsent binds name to fn unless name is taken.
func (h *Handlers) registerIfAbsent(name string, fn Handler) {
	h.mu.Lock()
	if _, ok := h.m[name]; !ok {
		h.m[name] = fn
	}
	h.mu.Unlock()
}

// Unregister removes name and reports whether it was present.
func (h *Handlers) Unregister(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.m[name]
	delete(h.m, name)
	return ok
}

// Lookup returns the handler bound to name.
func (h *Handlers) Lookup(name string) (Handler, bool) {
	h.mu.RLock()
	fn, ok := h.m[name]
	h.mu.RUnlock()
	return fn, ok
}

// Names returns the registered names in sorted order.
func (h *Handlers) Names() []string {
	h.mu.RLock()
	out := make([]string, 0, len(h.m))
	for name := range h.m {
		out = append(out, name)
	}
	h.mu.RUnlock()
	sort.Strings(out)
	return out
}
