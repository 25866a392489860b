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

package action

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/adapter"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/event"
	"dirpx.dev/apierrors/rule"
)

// Defaults applied to unset action fields.
const (
	DefaultToastSeverity  = apierrors.SeverityError
	DefaultToastDuration  = 5 * time.Second
	DefaultModalSeverity  = apierrors.SeverityError
	DefaultRedirectTarget = "/"
)

// Executor performs the action of a matched rule.
type Executor struct {
	bus        *event.Bus[event.Event]
	handlers   *Handlers
	reporter   apis.Reporter
	translator apis.Translator
	metrics    *Metrics
	logger     *slog.Logger

	toastDuration  time.Duration
	redirectTarget string
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the base logger. The executor tags it with its component.
func WithLogger(l *slog.Logger) Option {
	return func(x *Executor) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithHandlers sets the custom handler registry.
func WithHandlers(h *Handlers) Option {
	return func(x *Executor) {
		if h != nil {
			x.handlers = h
		}
	}
}

// WithReporter sets the monitoring reporter.
func WithReporter(r apis.Reporter) Option {
	return func(x *Executor) { x.reporter = r }
}

// WithTranslator sets the message key translator.
func WithTranslator(t apis.Translator) Option {
	return func(x *Executor) { x.translator = t }
}

// WithMetrics sets the counters updated by the executor.
func WithMetrics(m *Metrics) Option {
	return func(x *Executor) { x.metrics = m }
}

// WithToastDuration sets the duration of toasts whose action has none.
func WithToastDuration(d time.Duration) Option {
	return func(x *Executor) {
		if d > 0 {
			x.toastDuration = d
		}
	}
}

// WithRedirectTarget sets the target of redirects whose action has none.
func WithRedirectTarget(target string) Option {
	return func(x *Executor) {
		if target != "" {
			x.redirectTarget = target
		}
	}
}

// NewExecutor returns an Executor emitting on bus. The session-expired and
// maintenance-mode handlers are registered unless the registry already has
// handlers under those names.
func NewExecutor(bus *event.Bus[event.Event], opts ...Option) *Executor {
	x := &Executor{
		bus:            bus,
		logger:         slog.Default(),
		toastDuration:  DefaultToastDuration,
		redirectTarget: DefaultRedirectTarget,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(x)
		}
	}
	if x.handlers == nil {
		x.handlers = NewHandlers()
	}
	x.logger = x.logger.With("component", "ActionExecutor")

	x.handlers.registerIfAbsent(rule.HandlerSessionExpired, SessionExpiredHandler(bus))
	x.handlers.registerIfAbsent(rule.HandlerMaintenanceMode, MaintenanceModeHandler(bus))
	return x
}

// Handlers returns the registry consulted by custom actions.
func (x *Executor) Handlers() *Handlers { return x.handlers }

// ResolveMessage resolves the display message with the executor's
// translator.
func (x *Executor) ResolveMessage(r rule.Rule, err apierrors.ClassifiedError) string {
	return resolveMessage(r, err, x.translator, x.logger)
}

// Execute performs r.Action for err, then reports err to monitoring if the
// action asks for it. It never panics and never returns an error.
func (x *Executor) Execute(ctx context.Context, r rule.Rule, err apierrors.ClassifiedError) {
	if ctx == nil {
		ctx = context.Background()
	}
	a := r.Action
	msg := x.ResolveMessage(r, err)
	x.metrics.action(a.Kind.String(), r.Name)

	switch a.Kind {
	case rule.KindToast:
		sev := a.Severity
		if sev == "" {
			sev = DefaultToastSeverity
		}
		d := a.Duration
		if d <= 0 {
			d = x.toastDuration
		}
		x.bus.Emit(event.Toast{Severity: sev, Message: msg, Duration: d})

	case rule.KindModal:
		sev := a.Severity
		if sev == "" {
			sev = DefaultModalSeverity
		}
		x.bus.Emit(event.Modal{Component: a.Modal, Message: msg, Severity: sev, Data: copyData(a.Data)})

	case rule.KindRedirect:
		target := a.Target
		if target == "" {
			target = x.redirectTarget
		}
		x.bus.Emit(event.Redirect{Target: target, Message: msg})

	case rule.KindSilent:
		x.logger.InfoContext(ctx, "error handled silently", errorAttrs(r, err)...)

	case rule.KindRetry:
		x.logger.WarnContext(ctx, "retry action is reserved; no retry scheduled",
			append(errorAttrs(r, err), "max_retries", a.MaxRetries)...)

	case rule.KindCustom:
		x.runHandler(ctx, r, err)

	default:
		x.logger.WarnContext(ctx, "unknown action kind ignored",
			append(errorAttrs(r, err), "kind", string(a.Kind))...)
	}

	if a.ReportToMonitoring {
		x.report(ctx, r, err)
	}
}

func (x *Executor) runHandler(ctx context.Context, r rule.Rule, err apierrors.ClassifiedError) {
	name := r.Action.Handler
	fn, ok := x.handlers.Lookup(name)
	if !ok {
		x.metrics.handlerFailure(name)
		x.logger.WarnContext(ctx, "custom handler not registered",
			append(errorAttrs(r, err), "handler", name)...)
		return
	}
	if herr := callHandler(ctx, fn, r, err); herr != nil {
		x.metrics.handlerFailure(name)
		x.logger.ErrorContext(ctx, "custom handler failed",
			append(errorAttrs(r, err), "handler", name, "error", herr)...)
	}
}

func callHandler(ctx context.Context, fn Handler, r rule.Rule, err apierrors.ClassifiedError) (herr error) {
	defer func() {
		if p := recover(); p != nil {
			herr = fmt.Errorf("handler panicked: %v", p)
		}
	}()
	return fn(ctx, err, r)
}

func (x *Executor) report(ctx context.Context, r rule.Rule, err apierrors.ClassifiedError) {
	x.logger.ErrorContext(ctx, "server error reported", errorAttrs(r, err)...)
	if x.reporter == nil {
		return
	}
	x.metrics.report()
	if rerr := safeReport(ctx, x.reporter, adapter.ToReport(err)); rerr != nil {
		x.logger.WarnContext(ctx, "monitoring report failed",
			append(errorAttrs(r, err), "error", rerr)...)
	}
}

func safeReport(ctx context.Context, rep apis.Reporter, report apis.Report) (rerr error) {
	defer func() {
		if p := recover(); p != nil {
			rerr = fmt.Errorf("reporter panicked: %v", p)
		}
	}()
	return rep.Report(ctx, report)
}

func errorAttrs(r rule.Rule, err apierrors.ClassifiedError) []any {
	attrs := []any{
		"rule", r.Name,
		"status", err.Status,
		"method", err.Method.String(),
		"url", err.URL,
	}
	if err.ErrorCode != "" {
		attrs = append(attrs, "error_code", err.ErrorCode.String())
	}
	if err.RequestID != "" {
		attrs = append(attrs, "request_id", err.RequestID)
	}
	return attrs
}

func copyData(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
