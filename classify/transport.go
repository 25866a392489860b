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
	"net/http"
	"strings"
)

// Transport codes that signal a client-side timeout.
const (
	CodeConnAborted = "ECONNABORTED"
	CodeTimedOut    = "ETIMEDOUT"
)

// Response is what the transport received, if anything.
type Response struct {
	Status int
	Header http.Header
	// Body is the decoded body. Raw []byte or json.RawMessage bodies are
	// decoded as JSON during classification.
	Body any
}

// Request is the configuration of the call that failed.
type Request struct {
	URL    string
	Method string
	Header http.Header
}

// TransportError is the raw rejection produced by a transport. Every field
// is optional.
type TransportError struct {
	Response *Response
	Request  *Request
	// Code is the transport's machine-readable failure code, e.g. ETIMEDOUT.
	Code    string
	Message string
	Err     error
}

// Error implements error.
func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("transport")
	if e.Request != nil && e.Request.URL != "" {
		b.WriteString(" ")
		if e.Request.Method != "" {
			b.WriteString(strings.ToUpper(e.Request.Method))
			b.WriteString(" ")
		}
		b.WriteString(e.Request.URL)
	}
	b.WriteString(": ")
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case e.Code != "":
		b.WriteString(e.Code)
	default:
		b.WriteString("request failed")
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Timeout reports whether the transport code marks a timeout.
func (e *TransportError) Timeout() bool {
	if e == nil {
		return false
	}
	switch strings.ToUpper(e.Code) {
	case CodeConnAborted, CodeTimedOut:
		return true
	}
	return false
}

// RPCError binds a gRPC status error to the full method that produced it.
type RPCError struct {
	FullMethod string
	Err        error
}

// Error implements error.
func (e *RPCError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return e.FullMethod
	}
	return e.FullMethod + ": " + e.Err.Error()
}

// Unwrap returns the status error.
func (e *RPCError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
