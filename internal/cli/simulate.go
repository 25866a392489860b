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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"dirpx.dev/apierrors/classify"
)

func newSimulateCmd(o *rootOptions) *cobra.Command {
	var (
		f           errorFlags
		timeout     bool
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a failed call through classification, rules and the event bridge",
		Long: `simulate feeds the described failure through the same pipeline an
application uses: the transport error is classified, the winning rule is
executed, and the resulting events are printed by a console presentation
layer. Monitoring reports go to the configured sinks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			logger := o.cfg.Log.NewLogger(cmd.ErrOrStderr())

			terr, err := f.transportError(timeout)
			if err != nil {
				return err
			}

			p, err := newPipeline(o.cfg, logger, &console{w: out})
			if err != nil {
				return err
			}
			defer p.close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res := p.dispatcher.Handle(ctx, terr)
			if !res.Matched {
				fmt.Fprintln(out, "no rule matched")
			} else {
				fmt.Fprintf(out, "rule %s suppressed=%t\n", res.RuleName(), res.Suppressed())
			}
			if m, ok := p.bridge.ActiveModal(); ok {
				fmt.Fprintf(out, "modal %s %s: %s\n", m.Component, m.Severity, m.Message)
			}

			if showMetrics {
				return writeMetrics(out, p.metrics)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&timeout, "timeout", false, "Mark the failure as a client-side timeout")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print the counters recorded while handling")
	return cmd
}

// transportError builds the raw failure a transport would have produced.
// A --code is merged into a JSON object body under "code".
func (f *errorFlags) transportError(timeout bool) (*classify.TransportError, error) {
	if f.status < 0 {
		return nil, fmt.Errorf("--status must not be negative, got %d", f.status)
	}
	c, err := f.errorCode()
	if err != nil {
		return nil, err
	}

	te := &classify.TransportError{
		Request: &classify.Request{URL: f.url, Method: f.method},
		Message: f.message,
	}
	if timeout {
		te.Code = classify.CodeTimedOut
	}
	if f.status == 0 {
		return te, nil
	}

	body := f.decodedBody()
	if c != "" {
		m, ok := body.(map[string]any)
		if !ok {
			if body != nil {
				return nil, fmt.Errorf("--code needs a JSON object body, got %T", body)
			}
			m = map[string]any{}
		}
		m["code"] = c.String()
		body = m
	}
	resp := &classify.Response{Status: f.status, Header: http.Header{}}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		resp.Body = json.RawMessage(raw)
	}
	if f.requestID != "" {
		resp.Header.Set("X-Request-Id", f.requestID)
	}
	te.Response = resp
	return te, nil
}

// writeMetrics prints every non-zero counter as name{labels} value.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), formatLabels(m.GetLabel()), v))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
