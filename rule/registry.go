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
	"log/slog"
	"sort"
	"sync"

	"dirpx.dev/apierrors"
)

// Registry is the ordered, mutable rule collection consulted by the matcher.
//
// It is seeded with a fixed default set at construction. Callers may append
// rules at any time; every append re-sorts the working copy by Priority
// (descending), stable on insertion order. Reset discards everything that
// was registered at runtime and restores exactly the seed set.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// seed is the immutable default set, already sorted.
	seed []Rule

	// rules is the working copy, always sorted.
	rules []Rule

	logger *slog.Logger
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry constructs a registry seeded with defaults. The slice is
// copied; later changes to it are not observed.
func NewRegistry(defaults []Rule, opts ...RegistryOption) *Registry {
	r := &Registry{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "RuleRegistry")

	r.seed = sortRules(append([]Rule(nil), defaults...))
	r.rules = append([]Rule(nil), r.seed...)
	return r
}

// NewDefaultRegistry constructs a registry seeded with Defaults().
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	return NewRegistry(Defaults(), opts...)
}

// Rules returns a copy of the working rule list, sorted by Priority
// descending and stable on insertion order for ties.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Rule(nil), r.rules...)
}

// Len returns the number of rules currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Register validates rule, appends it and re-sorts. Duplicate names are
// permitted; both rules are kept and the first by position wins.
func (r *Registry) Register(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	next := make([]Rule, len(r.rules), len(r.rules)+1)
	copy(next, r.rules)
	r.rules = sortRules(append(next, rule))
	n := len(r.rules)
	r.mu.Unlock()

	r.logger.Debug("rule registered", "rule", rule.Name, "priority", rule.Priority, "rules", n)
	return nil
}

// Reset discards runtime-registered rules and restores the seed set.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.rules = append([]Rule(nil), r.seed...)
	r.mu.Unlock()

	r.logger.Debug("rules reset to defaults", "rules", len(r.seed))
}

// Match evaluates the current rules against e. See the package
// documentation for the resolution order.
func (r *Registry) Match(e apierrors.ClassifiedError) MatchResult {
	r.mu.RLock()
	rules := r.rules
	r.mu.RUnlock()
	// rules is never mutated in place: Register and Reset always swap in a
	// fresh slice, so scanning outside the lock is safe.
	return Match(rules, e)
}

// Explain renders the match trace for e against the current rules.
func (r *Registry) Explain(e apierrors.ClassifiedError) string {
	r.mu.RLock()
	rules := r.rules
	r.mu.RUnlock()
	return Explain(rules, e)
}

// sortRules stable-sorts rules in place by Priority descending and returns
// the slice.
func sortRules(rules []Rule) []Rule {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules
}
