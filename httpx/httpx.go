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

// Package httpx connects net/http clients and servers to the classification
// pipeline.
//
// On the client side, Transport wraps an http.RoundTripper: transport
// failures and responses with status >= 400 are handed to a
// dispatch.Dispatcher, and the caller still sees exactly what the wrapped
// RoundTripper returned. On the server side, WriteError writes error bodies
// in the shape the classifier reads.
package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"dirpx.dev/apierrors/classify"
	"dirpx.dev/apierrors/code"
	"dirpx.dev/apierrors/dispatch"
)

// DefaultMaxBodyBytes caps how much of an error body is buffered.
const DefaultMaxBodyBytes = 64 << 10

// Transport dispatches failed round trips.
type Transport struct {
	// Base performs the request. Nil means http.DefaultTransport.
	Base http.RoundTripper
	// Dispatcher receives failures. Nil disables dispatching.
	Dispatcher *dispatch.Dispatcher
	// MaxBodyBytes caps the buffered error body. Zero means
	// DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// NewClient returns an *http.Client whose transport dispatches failures to d.
func NewClient(d *dispatch.Dispatcher, base http.RoundTripper) *http.Client {
	return &http.Client{Transport: &Transport{Base: base, Dispatcher: d}}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if t.Dispatcher == nil {
		return resp, err
	}

	if err != nil {
		t.Dispatcher.Handle(req.Context(), &classify.TransportError{
			Request: requestOf(req),
			Message: err.Error(),
			Err:     err,
		})
		return resp, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	body := t.bufferBody(resp)
	t.Dispatcher.Handle(req.Context(), &classify.TransportError{
		Response: &classify.Response{
			Status: resp.StatusCode,
			Header: resp.Header.Clone(),
			Body:   body,
		},
		Request: requestOf(req),
		Message: http.StatusText(resp.StatusCode),
	})
	return resp, nil
}

// bufferBody reads up to the limit and puts the bytes back in front of the
// rest of the body, so the caller can still read all of it.
func (t *Transport) bufferBody(resp *http.Response) []byte {
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil
	}
	limit := t.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	buf, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	resp.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(buf), resp.Body),
		Closer: resp.Body,
	}
	if err != nil || !json.Valid(buf) {
		return nil
	}
	return buf
}

type readCloser struct {
	io.Reader
	io.Closer
}

func requestOf(req *http.Request) *classify.Request {
	return &classify.Request{
		URL:    req.URL.String(),
		Method: req.Method,
		Header: req.Header,
	}
}

// ErrorBody is the JSON error document written by WriteError.
type ErrorBody struct {
	Message string    `json:"message"`
	Code    code.Code `json:"code,omitempty"`
}

// WriteError writes an error response with the given status. A non-empty
// requestID is echoed in X-Request-Id.
func WriteError(w http.ResponseWriter, status int, c code.Code, msg, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Message: msg, Code: c})
}
