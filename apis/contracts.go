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

package apis

import "context"

// Reporter forwards error reports to a monitoring or telemetry sink.
//
// Implementations must be quick: Report is called synchronously from the
// dispatch path. Sinks that talk to the network should hand the report off
// (buffer, async publish) rather than wait for delivery. A returned error is
// logged by the caller and otherwise ignored.
type Reporter interface {
	Report(ctx context.Context, r Report) error
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(ctx context.Context, r Report) error

// Report calls f(ctx, r).
func (f ReporterFunc) Report(ctx context.Context, r Report) error { return f(ctx, r) }

// Translator resolves a message key to display text.
//
// Translate returns ("", false) when the key is unknown, which lets the
// caller fall back to the next message source.
type Translator interface {
	Translate(key string) (string, bool)
}

// TranslatorFunc adapts a plain function to the Translator interface.
type TranslatorFunc func(key string) (string, bool)

// Translate calls f(key).
func (f TranslatorFunc) Translate(key string) (string, bool) { return f(key) }
