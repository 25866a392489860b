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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the machine-readable error code attached to a classified error,
// e.g. "FEATURE_GATED" or "TIMEOUT".
//
// Codes come from two places: the response body of a failed call (whatever
// the server chose to send) and the classifier itself (code.Timeout). They
// are compared verbatim; this package never changes the case of a code so
// that rule tables and servers agree byte for byte.
type Code string

// MaxLength is the maximum length for a valid code.
const MaxLength = 128

const (
	// codeFmt is the regular expression used to validate codes.
	//
	// Pattern breakdown:
	//
	//	^ - start of string;
	//	[A-Za-z0-9] - first character is an ASCII letter or digit;
	//	[A-Za-z0-9_.:-]* - followed by letters, digits, '_', '.', ':' or '-';
	//	$ - end of string.
	codeFmt = `^[A-Za-z0-9][A-Za-z0-9_.:\-]*$`
)

// codeRe is the compiled form of codeFmt.
//
// Examples of valid codes:
//   - "FEATURE_GATED"
//   - "auth.token_expired"
//   - "E1001"
//
// Examples of invalid codes:
//   - ""             (empty)
//   - "has space"    (whitespace)
//   - "_LEADING"     (does not start with a letter or digit)
var codeRe = regexp.MustCompile(codeFmt)

// ErrCodeInvalid is returned when a value cannot be parsed or validated
// as an error code.
var ErrCodeInvalid = errors.New("apierrors: invalid code")

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It means "no code provided".
var Empty Code = ""

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a Code value. The empty string is rejected.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// declaring package-level values.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims surrounding whitespace. Case and separators are kept as-is
// because codes are matched verbatim.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Validate checks whether the provided Code is well-formed.
// The empty code is considered invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// String returns the code as a string.
func (c Code) String() string {
	return string(c)
}

// In reports whether c equals any of the candidates.
func (c Code) In(candidates ...Code) bool {
	for _, x := range candidates {
		if c == x {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if s == "" || len(s) > MaxLength {
		return ErrCodeInvalid
	}
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
