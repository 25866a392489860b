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

package monitor

import (
	"context"
	"errors"
	"log/slog"

	"dirpx.dev/apierrors/apis"
)

// LogReporter writes reports to a structured logger at error level.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter returns a LogReporter. A nil logger means slog.Default().
func NewLogReporter(l *slog.Logger) *LogReporter {
	if l == nil {
		l = slog.Default()
	}
	return &LogReporter{logger: l.With("component", "Monitoring")}
}

// Report implements apis.Reporter.
func (r *LogReporter) Report(ctx context.Context, rep apis.Report) error {
	attrs := []any{
		"status", rep.Status,
		"method", rep.Method,
		"url", rep.URL,
		"message", rep.Message,
	}
	if rep.ErrorCode != "" {
		attrs = append(attrs, "error_code", rep.ErrorCode)
	}
	if rep.RequestID != "" {
		attrs = append(attrs, "request_id", rep.RequestID)
	}
	r.logger.ErrorContext(ctx, "api error", attrs...)
	return nil
}

// Nop discards reports.
var Nop apis.Reporter = apis.ReporterFunc(func(context.Context, apis.Report) error { return nil })

type multi []apis.Reporter

// Multi reports to every non-nil reporter in order. Every reporter runs even
// if an earlier one fails; the failures are joined.
func Multi(reporters ...apis.Reporter) apis.Reporter {
	out := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) Report(ctx context.Context, rep apis.Report) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, rep); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
