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

package classify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestClassifier(opts ...Option) *Classifier {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestClassify_ServerErrorResponse(t *testing.T) {
	c := newTestClassifier()
	raw := &TransportError{
		Response: &Response{Status: 500, Body: map[string]any{"message": "Upstream failure"}},
		Request:  &Request{URL: "/orders", Method: "post"},
		Message:  "Request failed with status code 500",
	}

	e := c.Classify(raw)

	assert.Equal(t, 500, e.Status)
	assert.Equal(t, apierrors.MethodPost, e.Method)
	assert.Equal(t, "/orders", e.URL)
	assert.Equal(t, "Upstream failure", e.Message)
	assert.Equal(t, code.Empty, e.ErrorCode)
	assert.Equal(t, fixedNow, e.Timestamp)
	assert.Same(t, raw, e.Original)
}

func TestClassify_NoResponse(t *testing.T) {
	c := newTestClassifier()
	e := c.Classify(&TransportError{
		Request: &Request{URL: "/orders", Method: "GET"},
		Message: "Network Error",
	})

	assert.Equal(t, apierrors.StatusNetwork, e.Status)
	assert.True(t, e.IsNetwork())
	assert.Equal(t, "Network Error", e.Message)
	assert.Equal(t, code.Empty, e.ErrorCode)
	assert.Nil(t, e.Body)
}

func TestClassify_Timeout(t *testing.T) {
	c := newTestClassifier()

	for _, tc := range []string{CodeConnAborted, CodeTimedOut, "etimedout"} {
		t.Run(tc, func(t *testing.T) {
			e := c.Classify(&TransportError{Code: tc, Message: "timeout of 5000ms exceeded"})
			assert.Equal(t, apierrors.StatusNetwork, e.Status)
			assert.Equal(t, code.Timeout, e.ErrorCode)
			assert.True(t, e.IsTimeout())
		})
	}

	t.Run("deadline cause", func(t *testing.T) {
		e := c.Classify(&TransportError{Err: context.DeadlineExceeded})
		assert.Equal(t, code.Timeout, e.ErrorCode)
		assert.Equal(t, context.DeadlineExceeded.Error(), e.Message)
	})

	t.Run("body code wins", func(t *testing.T) {
		e := c.Classify(&TransportError{
			Code:     CodeTimedOut,
			Response: &Response{Status: 504, Body: map[string]any{"code": "GATEWAY_TIMEOUT"}},
		})
		assert.Equal(t, code.Code("GATEWAY_TIMEOUT"), e.ErrorCode)
	})
}

func TestClassify_MessageFields(t *testing.T) {
	c := newTestClassifier()
	tests := []struct {
		name string
		body any
		want string
	}{
		{"message", map[string]any{"message": "m", "detail": "d"}, "m"},
		{"detail", map[string]any{"message": "", "detail": "d", "title": "t"}, "d"},
		{"error", map[string]any{"error": "e", "title": "t"}, "e"},
		{"title", map[string]any{"title": "t"}, "t"},
		{"non string", map[string]any{"message": 42}, "transport says"},
		{"array body", []any{"x"}, "transport says"},
		{"string body", "plain", "transport says"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := c.Classify(&TransportError{
				Response: &Response{Status: 400, Body: tt.body},
				Message:  "transport says",
			})
			assert.Equal(t, tt.want, e.Message)
		})
	}
}

func TestClassify_CodeFields(t *testing.T) {
	c := newTestClassifier()
	tests := []struct {
		name string
		body map[string]any
		want code.Code
	}{
		{"code", map[string]any{"code": "CONFLICT", "errorCode": "X"}, code.Conflict},
		{"errorCode", map[string]any{"errorCode": "FEATURE_GATED"}, code.FeatureGated},
		{"error", map[string]any{"error": "RATE_LIMITED"}, code.RateLimited},
		{"blank skipped", map[string]any{"code": " ", "errorCode": "MAINTENANCE"}, code.Maintenance},
		{"none", map[string]any{"message": "x"}, code.Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := c.Classify(&TransportError{Response: &Response{Status: 409, Body: tt.body}})
			assert.Equal(t, tt.want, e.ErrorCode)
		})
	}
}

func TestClassify_RawBody(t *testing.T) {
	c := newTestClassifier()

	e := c.Classify(&TransportError{Response: &Response{
		Status: 422,
		Body:   []byte(`{"message":"invalid","code":"VALIDATION_ERROR","fields":{"email":"required"}}`),
	}})
	assert.Equal(t, "invalid", e.Message)
	assert.Equal(t, code.ValidationFailed, e.ErrorCode)
	m, ok := e.BodyMap()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"email": "required"}, m["fields"])

	e = c.Classify(&TransportError{Response: &Response{Status: 502, Body: []byte("<html>bad gateway</html>")}})
	assert.Equal(t, "<html>bad gateway</html>", e.Body)
	assert.Equal(t, UnknownMessage, e.Message)
}

func TestClassify_RequestID(t *testing.T) {
	c := newTestClassifier()
	h := http.Header{}
	h.Set("x-correlation-id", "corr-1")
	h.Set("Request-Id", "req-2")

	e := c.Classify(&TransportError{Response: &Response{Status: 500, Header: h}})
	assert.Equal(t, "corr-1", e.RequestID)

	e = c.Classify(&TransportError{Response: &Response{Status: 500, Header: http.Header{}}})
	assert.Empty(t, e.RequestID)

	custom := newTestClassifier(WithRequestIDHeaders("x-amzn-trace-id"))
	h = http.Header{}
	h.Set("X-Amzn-Trace-Id", "amzn")
	h.Set("X-Request-Id", "ignored")
	assert.Equal(t, "amzn", custom.Classify(&TransportError{Response: &Response{Status: 500, Header: h}}).RequestID)
}

func TestClassify_Method(t *testing.T) {
	c := newTestClassifier()
	for in, want := range map[string]apierrors.Method{
		"delete":  apierrors.MethodDelete,
		" Patch ": apierrors.MethodPatch,
		"OPTIONS": apierrors.MethodGet,
		"":        apierrors.MethodGet,
	} {
		e := c.Classify(&TransportError{Request: &Request{URL: "/x", Method: in}})
		assert.Equal(t, want, e.Method, in)
	}
	assert.Equal(t, apierrors.MethodGet, c.Classify(&TransportError{}).Method)
}

func TestClassify_OtherErrors(t *testing.T) {
	c := newTestClassifier()

	t.Run("nil", func(t *testing.T) {
		e := c.Classify(nil)
		assert.Equal(t, apierrors.StatusNetwork, e.Status)
		assert.Equal(t, UnknownMessage, e.Message)
		assert.Nil(t, e.Original)
	})

	t.Run("plain", func(t *testing.T) {
		boom := errors.New("boom")
		e := c.Classify(boom)
		assert.Equal(t, apierrors.StatusNetwork, e.Status)
		assert.Equal(t, "boom", e.Message)
		assert.ErrorIs(t, e, boom)
	})

	t.Run("url error", func(t *testing.T) {
		e := c.Classify(&url.Error{Op: "Post", URL: "https://api.example.com/orders", Err: context.DeadlineExceeded})
		assert.Equal(t, "https://api.example.com/orders", e.URL)
		assert.Equal(t, apierrors.MethodPost, e.Method)
		assert.Equal(t, code.Timeout, e.ErrorCode)
	})

	t.Run("wrapped transport error", func(t *testing.T) {
		e := c.Classify(fmt.Errorf("load orders: %w", &TransportError{Response: &Response{Status: 404}}))
		assert.Equal(t, 404, e.Status)
	})

	t.Run("typed nil rpc error", func(t *testing.T) {
		var re *RPCError
		err := fmt.Errorf("wrap: %w", re)
		var e apierrors.ClassifiedError
		require.NotPanics(t, func() { e = c.Classify(err) })
		assert.Equal(t, apierrors.StatusNetwork, e.Status)
		assert.ErrorIs(t, e, err)
	})

	t.Run("already classified", func(t *testing.T) {
		in := apierrors.New(409, "/orders", "dup")
		e := c.Classify(in)
		assert.Equal(t, in.WithTimestamp(fixedNow), e)
	})
}

func TestTransportError_Error(t *testing.T) {
	assert.Equal(t, "transport GET /x: down", (&TransportError{Request: &Request{URL: "/x", Method: "get"}, Message: "down"}).Error())
	assert.Equal(t, "transport: ETIMEDOUT", (&TransportError{Code: "ETIMEDOUT"}).Error())
	assert.Equal(t, "transport: request failed", (&TransportError{}).Error())
}
