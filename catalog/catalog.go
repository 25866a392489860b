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

package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/internal/segmenttrie"
	"dirpx.dev/apierrors/msgkey"
)

// ErrInvalidEntry is returned for entries with a malformed key or empty text.
var ErrInvalidEntry = errors.New("catalog: invalid entry")

var _ apis.Translator = (*Catalog)(nil)

// Catalog maps message keys to display text. It is safe for concurrent use.
type Catalog struct {
	mu          sync.RWMutex
	entries     *segmenttrie.Trie[string]
	prefixMatch bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithPrefixMatch lets keys without an entry resolve to their deepest
// ancestor entry.
func WithPrefixMatch() Option {
	return func(c *Catalog) { c.prefixMatch = true }
}

// New returns an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{entries: segmenttrie.New[string]()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Add stores text under key. Keys are normalized with msgkey.Normalize.
func (c *Catalog) Add(key, text string) error {
	k, err := parseEntryKey(key)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidEntry, key, err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %q: empty text", ErrInvalidEntry, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.entries.Insert(k, text); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidEntry, key, err)
	}
	return nil
}

// AddAll stores every entry of m. It stops at the first invalid entry.
func (c *Catalog) AddAll(m map[string]string) error {
	for k, v := range m {
		if err := c.Add(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries.Len()
}

// Translate implements apis.Translator.
func (c *Catalog) Translate(key string) (string, bool) {
	k := msgkey.Normalize(key)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.entries.Get(k); ok {
		return s, true
	}
	if !c.prefixMatch {
		return "", false
	}
	return c.entries.Match(k)
}

// parseEntryKey validates keys, allowing "*" segments.
func parseEntryKey(raw string) (string, error) {
	k := msgkey.Normalize(raw)
	if !strings.Contains(k, segmenttrie.Wildcard) {
		parsed, err := msgkey.Parse(k)
		if err != nil {
			return "", err
		}
		if parsed == msgkey.Empty {
			return "", errors.New("empty key")
		}
		return parsed.String(), nil
	}
	probe := strings.ReplaceAll(k, segmenttrie.Wildcard, "x")
	if _, err := msgkey.Parse(probe); err != nil {
		return "", err
	}
	return k, nil
}
