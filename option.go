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
	"time"

	"dirpx.dev/apierrors/code"
)

// Option is a functional option for constructing or transforming a
// ClassifiedError. It always takes a ClassifiedError and returns a
// (possibly modified) copy.
type Option func(ClassifiedError) ClassifiedError

// WithMethodOption sets the request method on the record being constructed.
func WithMethodOption(m Method) Option {
	return func(e ClassifiedError) ClassifiedError {
		return e.WithMethod(m)
	}
}

// WithCodeOption sets the error code on construction.
func WithCodeOption(c code.Code) Option {
	return func(e ClassifiedError) ClassifiedError {
		return e.WithCode(c)
	}
}

// WithBodyOption attaches a decoded response body on construction.
func WithBodyOption(body any) Option {
	return func(e ClassifiedError) ClassifiedError {
		return e.WithBody(body)
	}
}

// WithRequestIDOption sets the correlation id on construction.
func WithRequestIDOption(id string) Option {
	return func(e ClassifiedError) ClassifiedError {
		return e.WithRequestID(id)
	}
}

// WithTimestampOption sets the classification time on construction.
func WithTimestampOption(t time.Time) Option {
	return func(e ClassifiedError) ClassifiedError {
		return e.WithTimestamp(t)
	}
}

// WithOriginalOption attaches the original transport error on construction.
func WithOriginalOption(err error) Option {
	return func(e ClassifiedError) ClassifiedError {
		return e.WithOriginal(err)
	}
}
