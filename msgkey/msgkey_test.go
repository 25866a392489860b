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

package msgkey

import (
	"encoding"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim+lower", "  Errors.Session_Expired  ", "errors.session_expired"},
		{"slash to dot", "errors/billing/feature_gated", "errors.billing.feature_gated"},
		{"dash to underscore", "errors.rate-limited", "errors.rate_limited"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Key
	}{
		{"simple", "errors.session_expired", Key("errors.session_expired")},
		{"deep", "errors.billing.plan.feature_gated", Key("errors.billing.plan.feature_gated")},
		{"path form", "errors/network-offline", Key("errors.network_offline")},
		{"empty is ok", "", Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"errors..offline",
		"1errors.offline",
		"errors.offline.",
		".errors",
		"a.b.c.d.e.f.g", // seven segments
		"ab",            // too short
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", in, got)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", in, got)
			}
			if err != ErrKeyInvalidFormat && err != ErrKeyInvalidLength {
				t.Fatalf("Parse(%q) error = %v", in, err)
			}
		})
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse(\"\") must panic")
		}
	}()
	if k := MustParse("errors.conflict"); k != "errors.conflict" {
		t.Fatalf("MustParse = %q", k)
	}
	_ = MustParse("")
}

func TestParent(t *testing.T) {
	tests := []struct {
		in   Key
		want Key
	}{
		{"errors.billing.feature_gated", "errors.billing"},
		{"errors.billing", "errors"},
		{"errors", Empty},
		{Empty, Empty},
	}
	for _, tt := range tests {
		if got := tt.in.Parent(); got != tt.want {
			t.Fatalf("Parent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	var _ encoding.TextUnmarshaler = (*Key)(nil)

	var k Key
	if err := k.UnmarshalText([]byte("  Errors/Conflict ")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if k != "errors.conflict" {
		t.Fatalf("UnmarshalText = %q", k)
	}
	b, err := Empty.MarshalText()
	if err != nil || len(b) != 0 {
		t.Fatalf("MarshalText(Empty) = %q, %v", b, err)
	}
	if _, err := Key("Bad Key").MarshalText(); err == nil {
		t.Fatal("MarshalText must reject invalid keys")
	}
}
