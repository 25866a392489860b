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
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/msgkey"
)

// Priority tiers used by the default rule set. Higher is evaluated first.
const (
	PriorityRoute       = 100
	PriorityFeature     = 50
	PriorityMaintenance = 25
	PrioritySpecific    = 10
	PriorityDefault     = 0
)

// ErrInvalidRule is returned by Validate and Registry.Register for rules
// that cannot be evaluated or executed.
var ErrInvalidRule = errors.New("apierrors: invalid rule")

// Rule pairs a Matcher with an Action.
//
// Rules are value objects. A Registry keeps its own working copy, so
// mutating a Rule after registering it has no effect on the registry.
type Rule struct {
	// Name identifies the rule in logs and diagnostics. Names are expected
	// to be unique, but duplicates are accepted: both are evaluated and the
	// first by position wins.
	Name string

	// Match is the predicate set. The zero Matcher matches everything.
	Match Matcher

	// Action is what to do when the rule wins.
	Action Action

	// MessageKey is an optional localization key for the display message.
	MessageKey msgkey.Key

	// FallbackMessage is used when there is no message key, or when the key
	// cannot be resolved.
	FallbackMessage string

	// Priority orders evaluation; higher first. Default 0.
	Priority int

	// SkipIf, when set and returning true, makes the rule pass over e.
	SkipIf func(e apierrors.ClassifiedError) bool
}

// Validate reports whether r is well-formed. The returned error wraps
// ErrInvalidRule.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRule)
	}
	if err := msgkey.Validate(r.MessageKey); err != nil {
		return fmt.Errorf("%w %q: message key: %w", ErrInvalidRule, r.Name, err)
	}
	if sm := r.Match.Status; sm != nil && sm.Range != nil && sm.Range.Min > sm.Range.Max {
		return fmt.Errorf("%w %q: status range %d-%d is inverted", ErrInvalidRule, r.Name, sm.Range.Min, sm.Range.Max)
	}
	if bf := r.Match.BodyField; bf != nil && bf.Key == "" {
		return fmt.Errorf("%w %q: body field without key", ErrInvalidRule, r.Name)
	}
	if err := r.Action.Validate(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidRule, r.Name, err)
	}
	return nil
}

// Applies reports whether r is not skipped for e and its Matcher holds.
func (r Rule) Applies(e apierrors.ClassifiedError) bool {
	if r.skipped(e) {
		return false
	}
	return r.Match.Matches(e)
}

// skipped evaluates SkipIf. A panicking predicate counts as "skip": a rule
// whose guard cannot be evaluated is not applied.
func (r Rule) skipped(e apierrors.ClassifiedError) (skip bool) {
	if r.SkipIf == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			skip = true
		}
	}()
	return r.SkipIf(e)
}

// SkipPaths returns a SkipIf predicate that passes over errors whose URL
// contains any of the given substrings.
func SkipPaths(substrs ...string) func(apierrors.ClassifiedError) bool {
	list := append([]string(nil), substrs...)
	return func(e apierrors.ClassifiedError) bool {
		for _, s := range list {
			if s != "" && strings.Contains(e.URL, s) {
				return true
			}
		}
		return false
	}
}

// MatchResult is the outcome of one matching attempt. It is never persisted.
type MatchResult struct {
	// Matched is false when no rule applied.
	Matched bool

	// Rule is the winning rule, nil when Matched is false.
	Rule *Rule

	// Error is the classified error the attempt was made for.
	Error apierrors.ClassifiedError
}

// Suppressed reports whether a rule matched and asked for the error to be
// considered fully handled by the UI response.
func (m MatchResult) Suppressed() bool {
	return m.Matched && m.Rule != nil && m.Rule.Action.SuppressError
}

// RuleName returns the winning rule's name, or "" when nothing matched.
func (m MatchResult) RuleName() string {
	if !m.Matched || m.Rule == nil {
		return ""
	}
	return m.Rule.Name
}

// Match scans rules in order and returns the first one that applies to e.
// rules are expected to be priority-sorted already (see Registry.Rules).
func Match(rules []Rule, e apierrors.ClassifiedError) MatchResult {
	for i := range rules {
		if rules[i].Applies(e) {
			r := rules[i]
			return MatchResult{Matched: true, Rule: &r, Error: e}
		}
	}
	return MatchResult{Error: e}
}
