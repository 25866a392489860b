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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dirpx.dev/apierrors/apis"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is the subject prefix reports are published under. The
// status class is appended: apierrors.reports.5xx, apierrors.reports.network.
const DefaultSubject = "apierrors.reports"

// ErrNotConnected is returned when the NATS connection is closed.
var ErrNotConnected = errors.New("monitor: not connected")

// Publisher is the subset of *nats.Conn used by NATSReporter.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// Envelope is the JSON payload published for each report.
type Envelope struct {
	apis.Report
	ReportedAt time.Time `json:"reportedAt"`
}

// NATSReporter publishes reports as JSON to NATS.
type NATSReporter struct {
	pub     Publisher
	subject string
	now     func() time.Time
	logger  *slog.Logger
}

// NATSOption configures a NATSReporter.
type NATSOption func(*NATSReporter)

// WithSubject sets the subject prefix.
func WithSubject(s string) NATSOption {
	return func(r *NATSReporter) {
		if s != "" {
			r.subject = s
		}
	}
}

// WithClock sets the time source for Envelope.ReportedAt.
func WithClock(now func() time.Time) NATSOption {
	return func(r *NATSReporter) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger used for connection events.
func WithLogger(l *slog.Logger) NATSOption {
	return func(r *NATSReporter) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewNATSReporter returns a reporter publishing through pub.
func NewNATSReporter(pub Publisher, opts ...NATSOption) *NATSReporter {
	r := &NATSReporter{
		pub:     pub,
		subject: DefaultSubject,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = r.logger.With("component", "Monitoring")
	return r
}

// ConnectNATS dials url and returns a reporter owning the connection. The
// returned close function drains and closes it.
func ConnectNATS(url string, opts ...NATSOption) (*NATSReporter, func(), error) {
	r := NewNATSReporter(nil, opts...)
	conn, err := nats.Connect(url,
		nats.Name("apierrors-monitor"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				r.logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			r.logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("monitor: connect to NATS: %w", err)
	}
	r.pub = conn
	return r, func() {
		if err := conn.Drain(); err != nil {
			conn.Close()
		}
	}, nil
}

// Report implements apis.Reporter.
func (r *NATSReporter) Report(ctx context.Context, rep apis.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.pub == nil {
		return ErrNotConnected
	}
	if c, ok := r.pub.(*nats.Conn); ok && c.IsClosed() {
		return ErrNotConnected
	}
	data, err := json.Marshal(Envelope{Report: rep, ReportedAt: r.now().UTC()})
	if err != nil {
		return fmt.Errorf("monitor: encode report: %w", err)
	}
	if err := r.pub.Publish(r.Subject(rep), data); err != nil {
		return fmt.Errorf("monitor: publish report: %w", err)
	}
	return nil
}

// Subject returns the subject rep is published on.
func (r *NATSReporter) Subject(rep apis.Report) string {
	return r.subject + "." + statusClass(rep.Status)
}

func statusClass(status int) string {
	switch {
	case status <= 0:
		return "network"
	case status >= 100 && status <= 599:
		return fmt.Sprintf("%dxx", status/100)
	default:
		return "other"
	}
}
