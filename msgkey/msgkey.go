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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Key is the canonical, validated representation of a localization message
// key.
//
// Keys are dot-separated hierarchical identifiers. The first segment is
// usually a namespace, the last one names the message:
//
//   - "errors.session_expired"
//   - "errors.billing.feature_gated"
//   - "errors.network.offline"
//
// A Key is an opaque token for the classification layer: it is carried from a
// rule to the localization step, which may resolve it to display text. The
// hierarchy lets a catalog fall back from "errors.billing.feature_gated" to
// "errors.billing" when the specific entry is missing.
type Key string

// MinLength and MaxLength define the allowed length range for a non-empty key.
const (
	MinLength = 3
	MaxLength = 128
)

const (
	// keyFmt accepts 1 to 6 dot-separated segments, each segment:
	//
	//   - starts with a lowercase ASCII letter [a-z]
	//   - continues with lowercase letters, digits, or underscore [a-z0-9_]*
	//
	// NOTE: empty string ("") is treated separately as "no key" and does not
	// go through this regexp.
	keyFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,5}$`
)

var keyRe = regexp.MustCompile(keyFmt)

var (
	// ErrKeyInvalidFormat is returned when a key does not conform to the
	// expected format.
	ErrKeyInvalidFormat = errors.New("apierrors: invalid message key format")
	// ErrKeyInvalidLength is returned when a key is too short or too long.
	ErrKeyInvalidLength = errors.New("apierrors: invalid message key length")
)

var (
	_ encoding.TextMarshaler   = (*Key)(nil)
	_ encoding.TextUnmarshaler = (*Key)(nil)
)

// Empty is the zero-value key. It means "no key provided" and is valid.
var Empty Key = ""

// Normalize brings an arbitrary string closer to the canonical key form:
//
//   - trim spaces
//   - lower-case
//   - convert "/" to "." (keys are sometimes written as paths)
//   - replace "-" with "_"
//
// It does NOT guarantee validity; callers should still call Parse/Validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Parse normalizes and validates s. The empty string yields Empty without
// error, which is what makes a message key optional on a rule.
func Parse(s string) (Key, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Key(s), nil
}

// MustParse is the panic-on-error variant of Parse, for package-level
// values. Unlike Parse, it rejects the empty string.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if k == Empty {
		panic("apierrors: empty message key in MustParse")
	}
	return k
}

// Validate checks whether k is in canonical form. Empty is valid.
func Validate(k Key) error {
	if k == Empty {
		return nil
	}
	return validate(string(k))
}

// Parent returns the key with its last segment removed, or Empty for a
// single-segment key.
func (k Key) Parent() Key {
	i := strings.LastIndexByte(string(k), '.')
	if i < 0 {
		return Empty
	}
	return k[:i]
}

// String returns the key as a string.
func (k Key) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty or whitespace-only input produces Empty.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrKeyInvalidLength
	}
	if !keyRe.MatchString(s) {
		return ErrKeyInvalidFormat
	}
	return nil
}
