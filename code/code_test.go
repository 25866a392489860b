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

package code

import (
	"encoding"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  TIMEOUT  ", "TIMEOUT"},
		{"case kept", "Feature_Gated", "Feature_Gated"},
		{"dash kept", "not-found", "not-found"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Code
	}{
		{"upper snake", "FEATURE_GATED", FeatureGated},
		{"with spaces", "  TIMEOUT ", Timeout},
		{"dotted", "auth.token_expired", Code("auth.token_expired")},
		{"numeric", "E1001", Code("E1001")},
		{"colon and dash", "billing:quota-exceeded", Code("billing:quota-exceeded")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"inner space", "FEATURE GATED"},
		{"leading underscore", "_X"},
		{"slash", "a/b"},
		{"too long", string(make([]byte, MaxLength+1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.ErrorIs(t, err, ErrCodeInvalid)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
	assert.NotPanics(t, func() { MustParse("OK") })
}

func TestCode_In(t *testing.T) {
	assert.True(t, FeatureGated.In(Timeout, FeatureGated))
	assert.False(t, Empty.In(Timeout, FeatureGated))
	assert.False(t, Timeout.In())
}

func TestText_RoundTrip(t *testing.T) {
	var _ encoding.TextMarshaler = FeatureGated

	b, err := FeatureGated.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "FEATURE_GATED", string(b))

	var c Code
	require.NoError(t, c.UnmarshalText([]byte("  RATE_LIMITED\n")))
	assert.Equal(t, RateLimited, c)

	require.Error(t, c.UnmarshalText([]byte("bad code")))
	_, err = Empty.MarshalText()
	require.ErrorIs(t, err, ErrCodeInvalid)
}

func TestWellKnownCodesAreValid(t *testing.T) {
	for _, c := range []Code{Timeout, FeatureGated, SubscriptionRequired, SessionExpired,
		ValidationFailed, Conflict, RateLimited, Maintenance} {
		assert.NoError(t, Validate(c), c)
	}
}
