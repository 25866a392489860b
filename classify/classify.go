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

package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
	"dirpx.dev/apierrors/mapper"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// UnknownMessage is used when neither the body nor the transport supplied
// a message.
const UnknownMessage = "Unknown error"

var (
	messageFields = []string{"message", "detail", "error", "title"}
	codeFields    = []string{"code", "errorCode", "error"}

	defaultRequestIDHeaders = []string{
		"X-Request-Id",
		"X-Correlation-Id",
		"X-Trace-Id",
		"Request-Id",
	}
)

// Classifier normalizes raw failures. The zero value is not usable; call New.
type Classifier struct {
	now              func() time.Time
	mapper           *mapper.Mapper
	requestIDHeaders []string
}

// New returns a Classifier with the wall clock and the default gRPC mapper.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		now:              time.Now,
		mapper:           mapper.Default(),
		requestIDHeaders: defaultRequestIDHeaders,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Classify converts err into a ClassifiedError. An error that already is a
// ClassifiedError is returned unchanged, with a timestamp filled in if it
// had none.
func (c *Classifier) Classify(err error) apierrors.ClassifiedError {
	if err == nil {
		return c.fallback(nil, UnknownMessage)
	}

	var ce apierrors.ClassifiedError
	if errors.As(err, &ce) {
		if ce.Timestamp.IsZero() {
			ce.Timestamp = c.now()
		}
		return ce
	}

	var te *TransportError
	if errors.As(err, &te) && te != nil {
		return c.fromTransport(err, te)
	}

	var re *RPCError
	if errors.As(err, &re) && re != nil {
		if st, ok := status.FromError(re.Err); ok && st.Code() != codes.OK {
			return c.fromStatus(err, re.FullMethod, st)
		}
		e := c.fallback(err, errorMessage(re.Err))
		e.URL = re.FullMethod
		e.Method = apierrors.MethodPost
		return e
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.OK {
		return c.fromStatus(err, "", st)
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		e := c.fallback(err, err.Error())
		e.URL = ue.URL
		e.Method = apierrors.ParseMethod(ue.Op)
		return e
	}

	return c.fallback(err, err.Error())
}

// ClassifyRPC classifies err as the outcome of the gRPC call fullMethod.
func (c *Classifier) ClassifyRPC(fullMethod string, err error) apierrors.ClassifiedError {
	if err == nil {
		return c.Classify(nil)
	}
	return c.Classify(&RPCError{FullMethod: fullMethod, Err: err})
}

func (c *Classifier) fallback(err error, msg string) apierrors.ClassifiedError {
	e := apierrors.ClassifiedError{
		Status:    apierrors.StatusNetwork,
		Method:    apierrors.MethodGet,
		Message:   firstNonEmpty(msg, UnknownMessage),
		Timestamp: c.now(),
		Original:  err,
	}
	if isTimeout(err) {
		e.ErrorCode = code.Timeout
	}
	return e
}

func (c *Classifier) fromTransport(err error, te *TransportError) apierrors.ClassifiedError {
	e := apierrors.ClassifiedError{
		Status:    apierrors.StatusNetwork,
		Method:    apierrors.MethodGet,
		Timestamp: c.now(),
		Original:  err,
	}

	var header http.Header
	if req := te.Request; req != nil {
		e.URL = req.URL
		e.Method = apierrors.ParseMethod(req.Method)
	}
	if resp := te.Response; resp != nil {
		e.Status = resp.Status
		e.Body = decodeBody(resp.Body)
		header = resp.Header
	}

	transportMsg := te.Message
	if transportMsg == "" && te.Err != nil {
		transportMsg = te.Err.Error()
	}
	e.Message = firstNonEmpty(bodyString(e.Body, messageFields), transportMsg, UnknownMessage)

	if s := bodyString(e.Body, codeFields); s != "" {
		e.ErrorCode = code.Code(code.Normalize(s))
	} else if te.Timeout() || isTimeout(te.Err) {
		e.ErrorCode = code.Timeout
	}

	e.RequestID = c.requestID(header)
	return e
}

func (c *Classifier) fromStatus(err error, fullMethod string, st *status.Status) apierrors.ClassifiedError {
	e := apierrors.ClassifiedError{
		URL:       fullMethod,
		Method:    apierrors.MethodPost,
		Timestamp: c.now(),
		Original:  err,
	}

	var reason code.Code
	details := st.Details()
	for _, d := range details {
		switch v := d.(type) {
		case *errdetails.ErrorInfo:
			if reason == code.Empty && v.GetReason() != "" {
				reason = code.Code(code.Normalize(v.GetReason()))
			}
		case *errdetails.RequestInfo:
			if e.RequestID == "" {
				e.RequestID = v.GetRequestId()
			}
		case *structpb.Struct:
			if e.Body == nil {
				e.Body = v.AsMap()
			}
		}
	}

	if st.Code() == codes.Unavailable && len(details) == 0 {
		e.Status = apierrors.StatusNetwork
	} else {
		e.Status = c.mapper.HTTPStatus(st.Code(), reason)
	}

	e.Message = firstNonEmpty(bodyString(e.Body, messageFields), st.Message(), UnknownMessage)

	switch {
	case bodyString(e.Body, codeFields) != "":
		e.ErrorCode = code.Code(code.Normalize(bodyString(e.Body, codeFields)))
	case reason != code.Empty:
		e.ErrorCode = reason
	case st.Code() == codes.DeadlineExceeded:
		e.ErrorCode = code.Timeout
	}
	return e
}

func (c *Classifier) requestID(h http.Header) string {
	if h == nil {
		return ""
	}
	for _, name := range c.requestIDHeaders {
		if v := strings.TrimSpace(h.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

// decodeBody decodes raw JSON payloads. Undecodable bytes are kept as a
// string so the record still carries them.
func decodeBody(body any) any {
	var raw []byte
	switch v := body.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		return body
	}
	if len(raw) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return string(raw)
	}
	return out
}

func bodyString(body any, fields []string) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	for _, f := range fields {
		if s, ok := m[f].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var te *TransportError
	if errors.As(err, &te) && te.Timeout() {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
