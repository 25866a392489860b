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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"dirpx.dev/apierrors/apis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{subject, append([]byte(nil), data...)})
	return nil
}

var sample = apis.Report{
	Status:    502,
	URL:       "/orders",
	Method:    "POST",
	ErrorCode: "UPSTREAM",
	Message:   "bad gateway",
	RequestID: "req-1",
}

func TestNATSReporter_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewNATSReporter(pub, WithClock(func() time.Time { return at }))

	require.NoError(t, r.Report(context.Background(), sample))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "apierrors.reports.5xx", pub.msgs[0].subject)

	var got Envelope
	require.NoError(t, json.Unmarshal(pub.msgs[0].data, &got))
	assert.Equal(t, sample, got.Report)
	assert.True(t, at.Equal(got.ReportedAt))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(pub.msgs[0].data, &raw))
	assert.Equal(t, "/orders", raw["url"], "report fields are flattened into the envelope")
}

func TestNATSReporter_Subject(t *testing.T) {
	r := NewNATSReporter(&fakePublisher{}, WithSubject("ops.errors"))
	assert.Equal(t, "ops.errors.network", r.Subject(apis.Report{Status: 0}))
	assert.Equal(t, "ops.errors.4xx", r.Subject(apis.Report{Status: 429}))
	assert.Equal(t, "ops.errors.5xx", r.Subject(apis.Report{Status: 503}))
	assert.Equal(t, "ops.errors.other", r.Subject(apis.Report{Status: 999}))
}

func TestNATSReporter_Errors(t *testing.T) {
	boom := errors.New("nats: connection closed")
	r := NewNATSReporter(&fakePublisher{err: boom})
	assert.ErrorIs(t, r.Report(context.Background(), sample), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewNATSReporter(&fakePublisher{}).Report(ctx, sample), context.Canceled)

	assert.ErrorIs(t, NewNATSReporter(nil).Report(context.Background(), sample), ErrNotConnected)
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, r.Report(context.Background(), sample))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=Monitoring")
	assert.Contains(t, out, "error_code=UPSTREAM")
	assert.Contains(t, out, "request_id=req-1")
}

func TestMulti(t *testing.T) {
	a, b := &fakePublisher{}, &fakePublisher{err: errors.New("down")}
	c := &fakePublisher{}
	m := Multi(NewNATSReporter(a), nil, NewNATSReporter(b), NewNATSReporter(c), Nop)

	err := m.Report(context.Background(), sample)
	assert.ErrorContains(t, err, "down")
	assert.Len(t, a.msgs, 1)
	assert.Len(t, c.msgs, 1, "later reporters still run after a failure")

	assert.NoError(t, Multi().Report(context.Background(), sample))
}
