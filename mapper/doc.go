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

// Package mapper turns gRPC status codes into the HTTP statuses the rule
// table matches on, so failures from gRPC clients classify the same way as
// failures from plain HTTP calls.
//
// # Resolution model
//
// A Mapper resolves a (grpc code, reason) pair in this order:
//
//  1. exact override for the gRPC code;
//  2. reason rule, keyed by the ErrorInfo reason carried in status details;
//  3. per-code default (library or user-adjusted);
//  4. fallback (500 unless changed with WithFallback).
//
// Reasons are application error codes (see dirpx.dev/apierrors/code), for
// example "RATE_LIMITED" or "MAINTENANCE".
//
// # Immutability
//
// New copies every table it is given. The returned *Mapper is never mutated
// afterwards and is safe for concurrent use.
//
// # Example
//
//	m, err := mapper.New(
//		mapper.WithHTTPOverride(codes.Canceled, 408),
//		mapper.WithReason(code.Maintenance, http.StatusServiceUnavailable),
//	)
//	if err != nil {
//		return err
//	}
//	st := m.HTTPStatus(codes.FailedPrecondition, code.Maintenance) // 503
//	fmt.Println(m.Explain(codes.FailedPrecondition, code.Maintenance))
package mapper
