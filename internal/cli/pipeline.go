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

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/apierrors/action"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/bridge"
	"dirpx.dev/apierrors/catalog"
	"dirpx.dev/apierrors/config"
	"dirpx.dev/apierrors/dispatch"
	"dirpx.dev/apierrors/event"
	"dirpx.dev/apierrors/monitor"
	"dirpx.dev/apierrors/rule"
)

// pipeline is the fully wired consumer side: classifier, rules, executor,
// bus and bridge.
type pipeline struct {
	logger     *slog.Logger
	bus        *event.Bus[event.Event]
	registry   *rule.Registry
	translator apis.Translator
	metrics    *prometheus.Registry
	dispatcher *dispatch.Dispatcher
	bridge     *bridge.Bridge

	closers []func()
}

// buildRegistry seeds a registry with the default table (unless disabled)
// followed by every configured rule file.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*rule.Registry, error) {
	var seed []rule.Rule
	if cfg.Rules.IncludeDefaults {
		seed = append(seed, rule.Defaults()...)
	}
	for _, f := range cfg.Rules.Files {
		rules, err := config.LoadRules(f)
		if err != nil {
			return nil, err
		}
		seed = append(seed, rules...)
	}
	return rule.NewRegistry(seed, rule.WithLogger(logger)), nil
}

// buildTranslator loads the configured catalog. It returns nil when no
// catalog is configured.
func buildTranslator(cfg *config.Config) (apis.Translator, error) {
	if cfg.Catalog.File == "" {
		return nil, nil
	}
	var opts []catalog.Option
	if cfg.Catalog.PrefixMatch {
		opts = append(opts, catalog.WithPrefixMatch())
	}
	c, err := catalog.LoadFile(cfg.Catalog.File, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newPipeline(cfg *config.Config, logger *slog.Logger, ui *console) (_ *pipeline, err error) {
	p := &pipeline{logger: logger}
	defer func() {
		if err != nil {
			p.close()
		}
	}()

	if p.registry, err = buildRegistry(cfg, logger); err != nil {
		return nil, err
	}
	if p.translator, err = buildTranslator(cfg); err != nil {
		return nil, err
	}

	var reporters []apis.Reporter
	if cfg.Monitor.Log {
		reporters = append(reporters, monitor.NewLogReporter(logger))
	}
	if cfg.Monitor.NATSURL != "" {
		nr, closeFn, err := monitor.ConnectNATS(cfg.Monitor.NATSURL,
			monitor.WithSubject(cfg.Monitor.NATSSubject),
			monitor.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("monitor: %w", err)
		}
		p.closers = append(p.closers, closeFn)
		reporters = append(reporters, nr)
	}

	p.metrics = prometheus.NewRegistry()
	metrics, err := action.NewMetrics(p.metrics)
	if err != nil {
		return nil, err
	}

	p.bus = event.NewBus[event.Event](event.WithLogger(logger))

	xopts := []action.Option{
		action.WithLogger(logger),
		action.WithReporter(monitor.Multi(reporters...)),
		action.WithMetrics(metrics),
		action.WithToastDuration(cfg.Executor.ToastDuration),
		action.WithRedirectTarget(cfg.Executor.RedirectTarget),
	}
	if p.translator != nil {
		xopts = append(xopts, action.WithTranslator(p.translator))
	}

	p.dispatcher = dispatch.New(p.bus,
		dispatch.WithRegistry(p.registry),
		dispatch.WithExecutor(action.NewExecutor(p.bus, xopts...)),
		dispatch.WithLogger(logger),
	)

	p.bridge = bridge.New(p.bus,
		bridge.WithToaster(ui),
		bridge.WithNavigator(ui),
		bridge.WithSession(ui),
		bridge.WithMaintenancePath(cfg.Bridge.MaintenancePath),
		bridge.WithLogger(logger),
	)
	p.bridge.Mount()
	p.closers = append(p.closers, p.bridge.Unmount)

	return p, nil
}

func (p *pipeline) close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
	p.closers = nil
}

// console is the terminal presentation layer used by simulate.
type console struct {
	w io.Writer
}

func (c *console) ShowToast(t event.Toast) {
	if t.Duration > 0 {
		fmt.Fprintf(c.w, "toast %s: %s (%s)\n", t.Severity, t.Message, t.Duration)
		return
	}
	fmt.Fprintf(c.w, "toast %s: %s\n", t.Severity, t.Message)
}

func (c *console) Navigate(target string) {
	fmt.Fprintf(c.w, "navigate %s\n", target)
}

func (c *console) Expire() {
	fmt.Fprintln(c.w, "session expired")
}
