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

package apis

// Report is the flat, serializable record sent to the monitoring sink for a
// classified error whose rule asked for monitoring.
//
// Fields are plain strings rather than code.Code and apierrors.Method.
type Report struct {
	// Status is the response status, 0 for network failures.
	Status int `json:"status"`

	// URL is the request URL.
	URL string `json:"url"`

	// Method is the upper-case request method.
	Method string `json:"method"`

	// ErrorCode is the machine-readable code, omitted when absent.
	ErrorCode string `json:"errorCode,omitempty"`

	// Message is the classified message.
	Message string `json:"message"`

	// RequestID is the server correlation id, omitted when absent.
	RequestID string `json:"requestId,omitempty"`
}
