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

// Package adapter converts classified errors into the flat shapes expected
// by external collaborators.
package adapter

import (
	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
)

// ToReport converts a classified error into the flat monitoring record.
//
// The record carries exactly what the monitoring contract allows: status,
// url, method, optional code, message and optional request id. The body and
// the original error are deliberately left out; they may hold user data.
func ToReport(e apierrors.ClassifiedError) apis.Report {
	return apis.Report{
		Status:    e.Status,
		URL:       e.URL,
		Method:    string(e.Method),
		ErrorCode: string(e.ErrorCode),
		Message:   e.Message,
		RequestID: e.RequestID,
	}
}
