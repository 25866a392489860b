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

package mapper

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/apierrors/code"
	"google.golang.org/grpc/codes"
)

// ErrInvalidStatus is returned by New when a table entry is outside 100..599.
var ErrInvalidStatus = errors.New("mapper: invalid HTTP status")

// Mapper is an immutable gRPC-to-HTTP status table.
type Mapper struct {
	defaults  map[codes.Code]int
	overrides map[codes.Code]int
	reasons   map[code.Code]int
	fallback  int
}

// New seeds the library defaults, applies opts and freezes the result.
func New(opts ...Option) (*Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	if err := checkStatus("fallback", b.fallback); err != nil {
		return nil, err
	}
	for c, v := range b.defaults {
		if err := checkStatus("default "+c.String(), v); err != nil {
			return nil, err
		}
	}
	for c, v := range b.overrides {
		if err := checkStatus("override "+c.String(), v); err != nil {
			return nil, err
		}
	}
	for r, v := range b.reasons {
		if err := code.Validate(r); err != nil {
			return nil, fmt.Errorf("mapper: reason %q: %w", r, err)
		}
		if err := checkStatus("reason "+string(r), v); err != nil {
			return nil, err
		}
	}

	return &Mapper{
		defaults:  freezeCodes(b.defaults),
		overrides: freezeCodes(b.overrides),
		reasons:   freezeReasons(b.reasons),
		fallback:  b.fallback,
	}, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Default returns a Mapper holding only the library defaults.
func Default() *Mapper {
	return MustNew()
}

func checkStatus(what string, v int) error {
	if v < 100 || v > 599 {
		return fmt.Errorf("%w: %s -> %d", ErrInvalidStatus, what, v)
	}
	return nil
}

// HTTPStatus resolves the HTTP status for a gRPC code and an optional reason.
func (m *Mapper) HTTPStatus(c codes.Code, reason code.Code) int {
	_, v := m.resolve(c, reason)
	return v
}

func (m *Mapper) resolve(c codes.Code, reason code.Code) (source string, status int) {
	if m == nil {
		return "fallback", 500
	}
	if v, ok := m.overrides[c]; ok {
		return "override", v
	}
	if reason != code.Empty {
		if v, ok := m.reasons[reason]; ok {
			return "reason", v
		}
	}
	if v, ok := m.defaults[c]; ok {
		return "default", v
	}
	return "fallback", m.fallback
}

// Explain reports which tier produced the status.
//
//	grpc=UNAVAILABLE(14) reason="MAINTENANCE"
//	http: source=reason -> 503
func (m *Mapper) Explain(c codes.Code, reason code.Code) string {
	src, v := m.resolve(c, reason)
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "grpc=%s(%d) reason=%q\n", CodeName(c), int(c), reason)
	_, _ = fmt.Fprintf(&b, "http: source=%s -> %d", src, v)
	return b.String()
}

// canonical gRPC code names as they appear in the protocol and in JSON.
var codeNames = [...]string{
	codes.OK:                 "OK",
	codes.Canceled:           "CANCELLED",
	codes.Unknown:            "UNKNOWN",
	codes.InvalidArgument:    "INVALID_ARGUMENT",
	codes.DeadlineExceeded:   "DEADLINE_EXCEEDED",
	codes.NotFound:           "NOT_FOUND",
	codes.AlreadyExists:      "ALREADY_EXISTS",
	codes.PermissionDenied:   "PERMISSION_DENIED",
	codes.ResourceExhausted:  "RESOURCE_EXHAUSTED",
	codes.FailedPrecondition: "FAILED_PRECONDITION",
	codes.Aborted:            "ABORTED",
	codes.OutOfRange:         "OUT_OF_RANGE",
	codes.Unimplemented:      "UNIMPLEMENTED",
	codes.Internal:           "INTERNAL",
	codes.Unavailable:        "UNAVAILABLE",
	codes.DataLoss:           "DATA_LOSS",
	codes.Unauthenticated:    "UNAUTHENTICATED",
}

// CodeName returns the canonical name of c (NOT_FOUND, DEADLINE_EXCEEDED),
// or CODE(n) for codes outside the known set.
func CodeName(c codes.Code) string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("CODE(%d)", uint32(c))
}
