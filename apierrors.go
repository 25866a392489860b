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

package apierrors

import (
	"fmt"
	"strings"
	"time"

	"dirpx.dev/apierrors/code"
)

// StatusNetwork is the status sentinel for failures where no response
// reached the caller. Client-side timeouts share the same sentinel and are
// told apart by ErrorCode (see code.Timeout).
const StatusNetwork = 0

// ClassifiedError is the normalized, transport-independent record of a
// failed network call.
//
// It carries:
//   - Status: response status, or StatusNetwork when none was received;
//   - URL / Method: the request that failed;
//   - Message: human-oriented description taken from the response body or
//     the transport;
//   - ErrorCode: optional machine-readable code (body code or code.Timeout);
//   - Body: the decoded response body, opaque to this package;
//   - RequestID: optional correlation id taken from response headers;
//   - Timestamp: wall-clock time of classification;
//   - Original: the raw transport error, kept for unwrapping.
//
// A ClassifiedError is created once per failed call and treated as
// read-only downstream. All WithX helpers return a shallow copy.
type ClassifiedError struct {
	// Status is the HTTP status code, or StatusNetwork (0).
	Status int

	// URL is the request URL (or the full method name for gRPC calls).
	URL string

	// Method is one of the supported verbs; anything else is GET.
	Method Method

	// Message is never empty after classification.
	Message string

	// ErrorCode is the machine-readable code. Empty means "not provided".
	ErrorCode code.Code

	// Body is the decoded response body. Object bodies are map[string]any.
	Body any

	// RequestID is the correlation id echoed by the server. Empty means
	// "not provided".
	RequestID string

	// Timestamp is when the error was classified.
	Timestamp time.Time

	// Original is the raw error produced by the transport.
	Original error
}

// New is a convenience constructor for ClassifiedError, mostly useful in
// tests and in transports that already know the outcome of a call.
//
// Usage:
//
//	e := apierrors.New(403, "/api/reports", "feature disabled",
//	    apierrors.WithMethodOption(apierrors.MethodPost),
//	    apierrors.WithCodeOption(code.FeatureGated),
//	)
func New(status int, url, msg string, opts ...Option) ClassifiedError {
	e := ClassifiedError{Status: status, URL: url, Method: MethodGet, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<method> <url>: <status>: <message>
//
// or, when ErrorCode is present:
//
//	<method> <url>: <status> <code>: <message>
func (e ClassifiedError) Error() string {
	if e.ErrorCode != code.Empty {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.Status, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.URL, e.Status, e.Message)
}

// Unwrap returns the original transport error, enabling errors.Is / errors.As
// chains back to the rejection that produced this record.
func (e ClassifiedError) Unwrap() error { return e.Original }

// IsNetwork reports whether no response reached the caller.
func (e ClassifiedError) IsNetwork() bool { return e.Status == StatusNetwork }

// IsTimeout reports whether the transport reported a timeout condition.
func (e ClassifiedError) IsTimeout() bool { return e.ErrorCode == code.Timeout }

// BodyMap returns the body as an object, or (nil, false) for any other shape.
func (e ClassifiedError) BodyMap() (map[string]any, bool) {
	m, ok := e.Body.(map[string]any)
	return m, ok
}

// WithStatus returns a copy of e with a replaced status.
func (e ClassifiedError) WithStatus(status int) ClassifiedError {
	e.Status = status
	return e
}

// WithMethod returns a copy of e with the given method.
func (e ClassifiedError) WithMethod(m Method) ClassifiedError {
	e.Method = m
	return e
}

// WithMessage returns a copy of e with a replaced human message.
func (e ClassifiedError) WithMessage(msg string) ClassifiedError {
	e.Message = msg
	return e
}

// WithCode returns a copy of e with the given error code set.
func (e ClassifiedError) WithCode(c code.Code) ClassifiedError {
	e.ErrorCode = c
	return e
}

// WithBody returns a copy of e with the given body attached.
//
// Object bodies are copied one level deep so later changes to the caller's
// map are not observed through the record.
func (e ClassifiedError) WithBody(body any) ClassifiedError {
	if m, ok := body.(map[string]any); ok {
		cp := make(map[string]any, len(m))
		for k, v := range m {
			cp[k] = v
		}
		body = cp
	}
	e.Body = body
	return e
}

// WithRequestID returns a copy of e with the correlation id set.
func (e ClassifiedError) WithRequestID(id string) ClassifiedError {
	e.RequestID = id
	return e
}

// WithTimestamp returns a copy of e with the classification time set.
func (e ClassifiedError) WithTimestamp(t time.Time) ClassifiedError {
	e.Timestamp = t
	return e
}

// WithOriginal returns a copy of e with the original error attached.
// If err is nil, e is returned unchanged.
func (e ClassifiedError) WithOriginal(err error) ClassifiedError {
	if err == nil {
		return e
	}
	e.Original = err
	return e
}

// Method is an HTTP verb supported by the classification layer.
type Method string

// Supported methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// ParseMethod upper-cases s and returns the matching Method. Anything that is
// not one of the five supported verbs falls back to MethodGet.
func ParseMethod(s string) Method {
	switch m := Method(strings.ToUpper(strings.TrimSpace(s))); m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return m
	default:
		return MethodGet
	}
}

// String returns the verb.
func (m Method) String() string { return string(m) }
