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

// Package grpcx feeds failed gRPC client calls into a dispatch.Dispatcher
// and provides the server-side counterpart that attaches the details the
// classifier reads.
package grpcx

import (
	"context"

	"dirpx.dev/apierrors/code"
	"dirpx.dev/apierrors/dispatch"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/structpb"
)

// UnaryClientInterceptor hands every failed unary call to d. The call's
// error is returned unchanged.
func UnaryClientInterceptor(d *dispatch.Dispatcher) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err != nil {
			d.HandleRPC(ctx, method, err)
		}
		return err
	}
}

// StreamClientInterceptor hands failures to open a stream to d. Errors
// returned later by the stream itself are left to the caller.
func StreamClientInterceptor(d *dispatch.Dispatcher) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			d.HandleRPC(ctx, method, err)
		}
		return cs, err
	}
}

// Detail describes the optional details of a server-side error status.
type Detail struct {
	// Reason becomes ErrorInfo.Reason, read back as the error code.
	Reason code.Code
	// Domain is the ErrorInfo domain.
	Domain string
	// RequestID becomes RequestInfo.RequestId.
	RequestID string
	// Body is attached as a Struct and read back as the response body.
	Body map[string]any
}

// Error builds a status error carrying d. If a detail cannot be encoded
// the status is returned without details.
func Error(c codes.Code, msg string, d Detail) error {
	st := status.New(c, msg)
	var details []protoadapt.MessageV1
	if d.Reason != code.Empty {
		details = append(details, &errdetails.ErrorInfo{Reason: d.Reason.String(), Domain: d.Domain})
	}
	if d.RequestID != "" {
		details = append(details, &errdetails.RequestInfo{RequestId: d.RequestID})
	}
	if len(d.Body) > 0 {
		if s, err := structpb.NewStruct(d.Body); err == nil {
			details = append(details, s)
		}
	}
	if len(details) == 0 {
		return st.Err()
	}
	with, err := st.WithDetails(details...)
	if err != nil {
		return st.Err()
	}
	return with.Err()
}
