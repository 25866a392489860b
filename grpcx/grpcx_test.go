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

package grpcx

import (
	"context"
	"net"
	"testing"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
	"dirpx.dev/apierrors/dispatch"
	"dirpx.dev/apierrors/event"
	"dirpx.dev/apierrors/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newDispatcher(t *testing.T) (*dispatch.Dispatcher, *[]event.Event) {
	t.Helper()
	bus := event.NewBus[event.Event]()
	var got []event.Event
	bus.Subscribe(func(e event.Event) { got = append(got, e) })
	return dispatch.New(bus), &got
}

func TestUnaryClientInterceptor_ReturnsOriginalError(t *testing.T) {
	d, got := newDispatcher(t)
	want := Error(codes.PermissionDenied, "gated", Detail{Reason: code.FeatureGated, RequestID: "r-9"})

	interceptor := UnaryClientInterceptor(d)
	err := interceptor(context.Background(), "/reports.v1.Reports/Export", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return want })

	assert.Same(t, want, err)
	require.Len(t, *got, 1)
	modal, ok := (*got)[0].(event.Modal)
	require.True(t, ok)
	assert.Equal(t, rule.ModalFeatureGate, modal.Component)
}

func TestUnaryClientInterceptor_Success(t *testing.T) {
	d, got := newDispatcher(t)
	err := UnaryClientInterceptor(d)(context.Background(), "/m", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return nil })
	assert.NoError(t, err)
	assert.Empty(t, *got)
}

func TestStreamClientInterceptor(t *testing.T) {
	d, got := newDispatcher(t)
	want := status.Error(codes.Unavailable, "connection refused")
	_, err := StreamClientInterceptor(d)(context.Background(), &grpc.StreamDesc{}, nil, "/m",
		func(context.Context, *grpc.StreamDesc, *grpc.ClientConn, string, ...grpc.CallOption) (grpc.ClientStream, error) {
			return nil, want
		})
	assert.Equal(t, want, err)
	require.Len(t, *got, 1)
	assert.Equal(t, apierrors.SeverityWarning, (*got)[0].(event.Toast).Severity, "no response means offline")
}

func TestError_Details(t *testing.T) {
	err := Error(codes.FailedPrecondition, "read only", Detail{
		Reason:    code.Maintenance,
		Domain:    "orders.example.com",
		RequestID: "req-1",
		Body:      map[string]any{"estimatedEnd": "2025-06-01T04:00:00Z"},
	})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Len(t, st.Details(), 3)

	plain := Error(codes.NotFound, "missing", Detail{})
	st, _ = status.FromError(plain)
	assert.Empty(t, st.Details())
}

func TestUnaryClientInterceptor_OverBufconn(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, health.NewServer())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	d, got := newDispatcher(t)
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(UnaryClientInterceptor(d)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: "missing"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.Len(t, *got, 1)
	toast, ok := (*got)[0].(event.Toast)
	require.True(t, ok, "not-found maps to the not-found toast")
	assert.Equal(t, apierrors.SeverityWarning, toast.Severity)
}
