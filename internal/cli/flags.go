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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
)

// errorFlags describes a failed call on the command line.
type errorFlags struct {
	status    int
	url       string
	method    string
	code      string
	body      string
	message   string
	requestID string
}

func (f *errorFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.status, "status", 0, "HTTP status; 0 means the request never got a response")
	fs.StringVar(&f.url, "url", "", "Request URL")
	fs.StringVar(&f.method, "method", "GET", "Request method")
	fs.StringVar(&f.code, "code", "", "Machine-readable error code, e.g. FEATURE_GATED")
	fs.StringVar(&f.body, "body", "", "Response body as JSON")
	fs.StringVar(&f.message, "message", "", "Error message")
	fs.StringVar(&f.requestID, "request-id", "", "Request correlation id")
}

func (f *errorFlags) errorCode() (code.Code, error) {
	if strings.TrimSpace(f.code) == "" {
		return "", nil
	}
	c, err := code.Parse(f.code)
	if err != nil {
		return "", fmt.Errorf("--code: %w", err)
	}
	return c, nil
}

// decodedBody returns the --body value decoded as JSON. Text that is not
// JSON is kept as a string.
func (f *errorFlags) decodedBody() any {
	if strings.TrimSpace(f.body) == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(f.body), &v); err != nil {
		return f.body
	}
	return v
}

// classified builds the ClassifiedError the flags describe.
func (f *errorFlags) classified() (apierrors.ClassifiedError, error) {
	c, err := f.errorCode()
	if err != nil {
		return apierrors.ClassifiedError{}, err
	}
	if f.status < 0 {
		return apierrors.ClassifiedError{}, fmt.Errorf("--status must not be negative, got %d", f.status)
	}
	return apierrors.New(f.status, f.url, f.message,
		apierrors.WithMethodOption(apierrors.ParseMethod(f.method)),
		apierrors.WithCodeOption(c),
		apierrors.WithBodyOption(f.decodedBody()),
		apierrors.WithRequestIDOption(f.requestID),
	), nil
}
