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
	"sync"
	"testing"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}

func TestRegistry_DefaultOrder(t *testing.T) {
	r := NewDefaultRegistry()

	want := []string{
		"session-expired",
		"feature-gated", "subscription-required", "payment-required",
		"maintenance-mode",
		"request-timeout", "bad-gateway",
		"forbidden", "not-found", "validation-error", "conflict", "rate-limited", "server-error", "network-offline",
	}
	assert.Equal(t, want, names(r.Rules()))
	assert.Equal(t, len(want), r.Len())
}

func TestRegistry_RulesSortedAndStable(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(Rule{Name: "a", Action: Silent(), Priority: 1}))
	require.NoError(t, r.Register(Rule{Name: "b", Action: Silent(), Priority: 5}))
	require.NoError(t, r.Register(Rule{Name: "c", Action: Silent(), Priority: 1}))
	require.NoError(t, r.Register(Rule{Name: "d", Action: Silent(), Priority: 5}))
	require.NoError(t, r.Register(Rule{Name: "e", Action: Silent()}))

	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names(r.Rules()))
}

func TestRegistry_RulesReturnsCopy(t *testing.T) {
	r := NewDefaultRegistry()
	rules := r.Rules()
	rules[0].Name = "mutated"
	assert.Equal(t, "session-expired", r.Rules()[0].Name)
}

func TestRegistry_HigherPriorityWins(t *testing.T) {
	r := NewDefaultRegistry()
	e := apierrors.New(500, "/orders", "boom", apierrors.WithMethodOption(apierrors.MethodPost))

	require.Equal(t, "server-error", r.Match(e).RuleName())

	require.NoError(t, r.Register(Rule{
		Name:     "orders-outage",
		Match:    Matcher{Path: PathContains("/orders")},
		Action:   Redirect("/status"),
		Priority: PriorityRoute + 1,
	}))
	assert.Equal(t, "orders-outage", r.Match(e).RuleName())
}

func TestRegistry_DuplicateNamesFirstByPositionWins(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(Rule{Name: "dup", Action: Toast(apierrors.SeverityInfo)}))
	require.NoError(t, r.Register(Rule{Name: "dup", Action: Toast(apierrors.SeverityError)}))

	assert.Equal(t, 2, r.Len())
	res := r.Match(apierrors.New(400, "/x", "bad"))
	require.True(t, res.Matched)
	assert.Equal(t, apierrors.SeverityInfo, res.Rule.Action.Severity)
}

func TestRegistry_ResetRestoresDefaults(t *testing.T) {
	r := NewDefaultRegistry()
	want := names(r.Rules())

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Register(Rule{Name: "extra", Action: Silent(), Priority: i * 40}))
	}
	require.Equal(t, len(want)+5, r.Len())

	r.Reset()
	assert.Equal(t, len(want), r.Len())
	assert.Equal(t, want, names(r.Rules()))

	// Reset is repeatable and does not share state with later registrations.
	require.NoError(t, r.Register(Rule{Name: "again", Action: Silent()}))
	r.Reset()
	assert.Equal(t, want, names(r.Rules()))
}

func TestRegistry_SeedIsCopied(t *testing.T) {
	seed := []Rule{{Name: "only", Action: Silent()}}
	r := NewRegistry(seed)
	seed[0].Name = "changed"

	r.Reset()
	assert.Equal(t, []string{"only"}, names(r.Rules()))
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry(nil)
	tests := []struct {
		name string
		rule Rule
	}{
		{"empty name", Rule{Action: Silent()}},
		{"unknown kind", Rule{Name: "x", Action: Action{Kind: "popup"}}},
		{"modal without component", Rule{Name: "x", Action: Modal("", apierrors.SeverityInfo)}},
		{"redirect without target", Rule{Name: "x", Action: Redirect("")}},
		{"custom without handler", Rule{Name: "x", Action: Custom("")}},
		{"inverted range", Rule{Name: "x", Match: Matcher{Status: StatusBetween(599, 500)}, Action: Silent()}},
		{"bad message key", Rule{Name: "x", MessageKey: "Not A Key", Action: Silent()}},
		{"bad severity", Rule{Name: "x", Action: Toast("loud")}},
		{"body field without key", Rule{Name: "x", Match: Matcher{BodyField: Field("", 1)}, Action: Silent()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, r.Register(tt.rule), ErrInvalidRule)
		})
	}
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ConcurrentRegisterAndMatch(t *testing.T) {
	r := NewDefaultRegistry()
	e := apierrors.New(403, "/api/reports", "gated", apierrors.WithCodeOption(code.FeatureGated))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = r.Register(Rule{Name: "noise", Match: Matcher{Status: Status(999)}, Action: Silent(), Priority: j})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := r.Match(e).RuleName(); got != "feature-gated" {
					t.Errorf("Match = %q, want feature-gated", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
