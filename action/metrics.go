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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts executor activity. A nil *Metrics records nothing.
type Metrics struct {
	actions         *prometheus.CounterVec
	handlerFailures *prometheus.CounterVec
	reports         prometheus.Counter
}

// NewMetrics creates the executor counters and registers them with reg.
// A nil reg disables metrics and returns (nil, nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apierrors",
			Name:      "actions_total",
			Help:      "Actions executed for matched rules",
		}, []string{"kind", "rule"}),

		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apierrors",
			Name:      "handler_failures_total",
			Help:      "Custom handlers that were missing, returned an error or panicked",
		}, []string{"handler"}),

		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "apierrors",
			Name:      "monitoring_reports_total",
			Help:      "Errors forwarded to the monitoring reporter",
		}),
	}
	for _, c := range []prometheus.Collector{m.actions, m.handlerFailures, m.reports} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) action(kind, ruleName string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind, ruleName).Inc()
}

func (m *Metrics) handlerFailure(name string) {
	if m == nil {
		return
	}
	m.handlerFailures.WithLabelValues(name).Inc()
}

func (m *Metrics) report() {
	if m == nil {
		return
	}
	m.reports.Inc()
}
