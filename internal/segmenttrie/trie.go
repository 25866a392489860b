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

// Package segmenttrie indexes dot-separated message keys by segment so the
// catalog can resolve the most specific entry for a key it has no exact
// translation for.
package segmenttrie

import (
	"errors"
	"strings"
)

// Wildcard matches exactly one segment.
const Wildcard = "*"

// ErrInvalidPrefix is returned by Insert for prefixes that are empty, have
// empty or malformed segments, or consist only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// Trie maps key prefixes to values. Lookups pick the deepest prefix that
// matches on segment boundaries; at equal depth an exact segment beats the
// wildcard.
type Trie[T any] struct {
	root *node[T]
	size int
}

type node[T any] struct {
	children map[string]*node[T]
	set      bool
	val      T
	prefix   string
}

// New returns an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{root: newNode[T]()}
}

func newNode[T any]() *node[T] {
	return &node[T]{children: make(map[string]*node[T])}
}

// Len reports the number of stored prefixes.
func (t *Trie[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Insert associates val with prefix, replacing any earlier value.
//
//	"errors.network"
//	"errors.*.title"
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil {
		return ErrInvalidPrefix
	}
	segs, ok := split(prefix)
	if !ok {
		return ErrInvalidPrefix
	}
	concrete := false
	for _, s := range segs {
		if s != Wildcard {
			concrete = true
			break
		}
	}
	if !concrete {
		return ErrInvalidPrefix
	}

	cur := t.root
	for _, s := range segs {
		next, exists := cur.children[s]
		if !exists {
			next = newNode[T]()
			cur.children[s] = next
		}
		cur = next
	}
	if !cur.set {
		t.size++
	}
	cur.set = true
	cur.val = val
	cur.prefix = prefix
	return nil
}

// Get returns the value stored for exactly key. Wildcards in key are literal.
func (t *Trie[T]) Get(key string) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}
	segs, ok := split(key)
	if !ok {
		return zero, false
	}
	cur := t.root
	for _, s := range segs {
		next, exists := cur.children[s]
		if !exists {
			return zero, false
		}
		cur = next
	}
	if !cur.set {
		return zero, false
	}
	return cur.val, true
}

// Match returns the value of the deepest prefix of key.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also returns the stored prefix that won.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	segs, ok := split(key)
	if !ok || len(segs) == 0 {
		return zero, false, ""
	}
	best, depth := t.root.deepest(segs, 0)
	if best == nil || depth == 0 {
		return zero, false, ""
	}
	return best.val, true, best.prefix
}

// deepest walks segs from n and returns the deepest node holding a value
// along with its depth. The exact branch is tried first so it keeps ties.
func (n *node[T]) deepest(segs []string, depth int) (*node[T], int) {
	var best *node[T]
	bestDepth := -1
	if n.set {
		best, bestDepth = n, depth
	}
	if len(segs) == 0 {
		return best, bestDepth
	}
	for _, label := range [2]string{segs[0], Wildcard} {
		child, ok := n.children[label]
		if !ok {
			continue
		}
		if got, d := child.deepest(segs[1:], depth+1); got != nil && d > bestDepth {
			best, bestDepth = got, d
		}
		if segs[0] == Wildcard {
			break
		}
	}
	return best, bestDepth
}

func split(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if !validSegment(seg) {
			return nil, false
		}
	}
	return segs, true
}

// validSegment accepts "*" or [a-z][a-z0-9_]*.
func validSegment(seg string) bool {
	if seg == Wildcard {
		return true
	}
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
