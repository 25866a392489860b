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
	"time"

	"dirpx.dev/apierrors/mapper"
)

// Option configures a Classifier.
type Option func(*Classifier)

// WithClock sets the time source used for ClassifiedError.Timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMapper sets the table used to turn gRPC codes into HTTP statuses.
func WithMapper(m *mapper.Mapper) Option {
	return func(c *Classifier) {
		if m != nil {
			c.mapper = m
		}
	}
}

// WithRequestIDHeaders replaces the correlation headers consulted, in order.
func WithRequestIDHeaders(names ...string) Option {
	return func(c *Classifier) {
		out := make([]string, 0, len(names))
		for _, n := range names {
			if n != "" {
				out = append(out, http.CanonicalHeaderKey(n))
			}
		}
		c.requestIDHeaders = out
	}
}
