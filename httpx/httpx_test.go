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

package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
	"dirpx.dev/apierrors/dispatch"
	"dirpx.dev/apierrors/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T) (*dispatch.Dispatcher, *[]event.Event) {
	t.Helper()
	bus := event.NewBus[event.Event]()
	var got []event.Event
	bus.Subscribe(func(e event.Event) { got = append(got, e) })
	return dispatch.New(bus), &got
}

func TestTransport_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusTooManyRequests, code.RateLimited, "slow down", "req-7")
	}))
	t.Cleanup(srv.Close)

	d, got := newDispatcher(t)
	resp, err := NewClient(d, nil).Post(srv.URL+"/orders", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"slow down","code":"RATE_LIMITED"}`, string(body), "caller still reads the full body")

	require.Len(t, *got, 1)
	toast, ok := (*got)[0].(event.Toast)
	require.True(t, ok)
	assert.Equal(t, apierrors.SeverityWarning, toast.Severity)
}

func TestTransport_SuccessIsIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	d, got := newDispatcher(t)
	resp, err := NewClient(d, nil).Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, *got)
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, f.err }

func TestTransport_NetworkFailure(t *testing.T) {
	d, got := newDispatcher(t)
	boom := errors.New("dial tcp: connection refused")
	c := NewClient(d, failingTransport{err: boom})

	_, err := c.Get("http://api.invalid/orders")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	require.Len(t, *got, 1)
	assert.Equal(t, apierrors.SeverityWarning, (*got)[0].(event.Toast).Severity)
}

func TestTransport_Timeout(t *testing.T) {
	d, got := newDispatcher(t)
	c := NewClient(d, failingTransport{err: context.DeadlineExceeded})

	_, err := c.Get("http://api.invalid/orders")
	require.Error(t, err)

	res := d.Handle(context.Background(), err)
	assert.Equal(t, "request-timeout", res.RuleName())
	assert.Len(t, *got, 2)
}

func TestTransport_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	t.Cleanup(srv.Close)

	d, got := newDispatcher(t)
	resp, err := NewClient(d, nil).Get(srv.URL)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, "<html>bad gateway</html>", string(body))
	require.Len(t, *got, 1)
	assert.Equal(t, apierrors.SeverityError, (*got)[0].(event.Toast).Severity)
}

func TestTransport_NoDispatcher(t *testing.T) {
	tr := &Transport{Base: failingTransport{err: io.ErrUnexpectedEOF}}
	req := httptest.NewRequest(http.MethodGet, "http://x/", nil)
	_, err := tr.RoundTrip(req)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusConflict, code.Empty, "changed", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("X-Request-Id"))
	assert.JSONEq(t, `{"message":"changed"}`, rec.Body.String())
}
