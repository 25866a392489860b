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

package dispatch

import (
	"context"
	"log/slog"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/action"
	"dirpx.dev/apierrors/classify"
	"dirpx.dev/apierrors/event"
	"dirpx.dev/apierrors/rule"
)

// Dispatcher runs classify -> match -> execute for failed calls.
type Dispatcher struct {
	classifier *classify.Classifier
	registry   *rule.Registry
	executor   *action.Executor
	logger     *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.classifier = c
		}
	}
}

// WithRegistry replaces the default rule registry.
func WithRegistry(r *rule.Registry) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithExecutor replaces the default executor.
func WithExecutor(x *action.Executor) Option {
	return func(d *Dispatcher) {
		if x != nil {
			d.executor = x
		}
	}
}

// WithLogger sets the base logger. It is also handed to the defaults built
// by New.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a Dispatcher whose executor emits on bus. Parts not supplied
// through options get defaults: a fresh classifier, a registry seeded with
// rule.Defaults and an executor without a reporter.
func New(bus *event.Bus[event.Event], opts ...Option) *Dispatcher {
	d := &Dispatcher{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.classifier == nil {
		d.classifier = classify.New()
	}
	if d.registry == nil {
		d.registry = rule.NewDefaultRegistry(rule.WithLogger(d.logger))
	}
	if d.executor == nil {
		d.executor = action.NewExecutor(bus, action.WithLogger(d.logger))
	}
	d.logger = d.logger.With("component", "Dispatcher")
	return d
}

// Registry returns the rule registry consulted by Handle.
func (d *Dispatcher) Registry() *rule.Registry { return d.registry }

// Executor returns the executor used by Handle.
func (d *Dispatcher) Executor() *action.Executor { return d.executor }

// Handle classifies err, matches it and executes the winning rule. A nil
// err yields an unmatched result.
func (d *Dispatcher) Handle(ctx context.Context, err error) rule.MatchResult {
	if err == nil {
		return rule.MatchResult{}
	}
	return d.HandleClassified(ctx, d.classifier.Classify(err))
}

// HandleRPC is Handle for the outcome of the gRPC call fullMethod.
func (d *Dispatcher) HandleRPC(ctx context.Context, fullMethod string, err error) rule.MatchResult {
	if err == nil {
		return rule.MatchResult{}
	}
	return d.HandleClassified(ctx, d.classifier.ClassifyRPC(fullMethod, err))
}

// HandleClassified matches e and executes the winning rule. Failures that
// never got a response are logged at warn.
func (d *Dispatcher) HandleClassified(ctx context.Context, e apierrors.ClassifiedError) rule.MatchResult {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.IsNetwork() {
		d.logger.WarnContext(ctx, "transport failure",
			"method", e.Method.String(), "url", e.URL, "code", e.ErrorCode.String(), "message", e.Message)
	}
	res := d.registry.Match(e)
	if !res.Matched {
		d.logger.DebugContext(ctx, "no rule matched",
			"status", e.Status, "method", e.Method.String(), "url", e.URL)
		return res
	}
	d.executor.Execute(ctx, *res.Rule, e)
	return res
}
