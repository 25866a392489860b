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

package segmenttrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrie_MatchDeepestPrefix(t *testing.T) {
	tr := New[string]()
	require.NoError(t, tr.Insert("errors", "generic"))
	require.NoError(t, tr.Insert("errors.network", "network"))
	require.NoError(t, tr.Insert("errors.billing.payment_required", "payment"))
	assert.Equal(t, 3, tr.Len())

	tests := []struct {
		key     string
		want    string
		pattern string
	}{
		{"errors.network.offline", "network", "errors.network"},
		{"errors.network", "network", "errors.network"},
		{"errors.billing.payment_required.card", "payment", "errors.billing.payment_required"},
		{"errors.billing.subscription", "generic", "errors"},
		{"errors", "generic", "errors"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok, p := tr.MatchWithPattern(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.pattern, p)
		})
	}

	_, ok := tr.Match("auth.login")
	assert.False(t, ok)
}

func TestTrie_WildcardOneSegment(t *testing.T) {
	tr := New[int]()
	require.NoError(t, tr.Insert("errors.*.title", 1))
	require.NoError(t, tr.Insert("errors.auth.title", 2))

	v, ok, p := tr.MatchWithPattern("errors.auth.title")
	require.True(t, ok)
	assert.Equal(t, 2, v, "exact segment wins at equal depth")
	assert.Equal(t, "errors.auth.title", p)

	v, ok, p = tr.MatchWithPattern("errors.billing.title.short")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, "errors.*.title", p)

	_, ok = tr.Match("errors.title")
	assert.False(t, ok, "wildcard never matches zero segments")
}

func TestTrie_WildcardCanBeDeeperThanExactBranch(t *testing.T) {
	tr := New[int]()
	require.NoError(t, tr.Insert("a.*.c", 7))
	require.NoError(t, tr.Insert("a.b", 1))

	v, ok, p := tr.MatchWithPattern("a.b.c")
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, "a.*.c", p)
}

func TestTrie_InsertReplaces(t *testing.T) {
	tr := New[int]()
	require.NoError(t, tr.Insert("errors.network", 1))
	require.NoError(t, tr.Insert("errors.network", 2))
	assert.Equal(t, 1, tr.Len())

	v, ok := tr.Get("errors.network")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = tr.Get("errors")
	assert.False(t, ok, "intermediate nodes carry no value")
}

func TestTrie_InvalidInput(t *testing.T) {
	tr := New[int]()
	for _, p := range []string{"", "UPPER.case", "a..b", "*", "*.*", "errors.", "1abc"} {
		assert.ErrorIs(t, tr.Insert(p, 1), ErrInvalidPrefix, p)
	}
	assert.Equal(t, 0, tr.Len())

	require.NoError(t, tr.Insert("a.b", 1))
	for _, k := range []string{"", "A.b", "a..b"} {
		_, ok := tr.Match(k)
		assert.False(t, ok, k)
	}

	var nilTrie *Trie[int]
	assert.ErrorIs(t, nilTrie.Insert("a", 1), ErrInvalidPrefix)
	_, ok := nilTrie.Match("a")
	assert.False(t, ok)
	assert.Equal(t, 0, nilTrie.Len())
}
