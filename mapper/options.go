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
	"dirpx.dev/apierrors/code"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
type Option func(*builder)

// WithHTTPDefault replaces the library default for a gRPC code.
func WithHTTPDefault(c codes.Code, status int) Option {
	return func(b *builder) { b.defaults[c] = status }
}

// WithHTTPOverride pins the HTTP status for a gRPC code regardless of the
// reason carried by the status.
func WithHTTPOverride(c codes.Code, status int) Option {
	return func(b *builder) { b.overrides[c] = status }
}

// WithReason maps an ErrorInfo reason to an HTTP status. Reason rules apply
// to every gRPC code that has no override.
func WithReason(reason code.Code, status int) Option {
	return func(b *builder) { b.reasons[code.Code(code.Normalize(string(reason)))] = status }
}

// WithFallback sets the status used for gRPC codes with no default.
func WithFallback(status int) Option {
	return func(b *builder) { b.fallback = status }
}
