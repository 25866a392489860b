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

package mapper

import (
	"net/http"

	"dirpx.dev/apierrors/code"
	"google.golang.org/grpc/codes"
)

type builder struct {
	defaults  map[codes.Code]int
	overrides map[codes.Code]int
	reasons   map[code.Code]int
	fallback  int
}

func newBuilder() *builder {
	b := &builder{
		defaults:  make(map[codes.Code]int, len(defaultHTTP)),
		overrides: make(map[codes.Code]int),
		reasons:   make(map[code.Code]int),
		fallback:  http.StatusInternalServerError,
	}
	for k, v := range defaultHTTP {
		b.defaults[k] = v
	}
	return b
}

func freezeCodes(src map[codes.Code]int) map[codes.Code]int {
	out := make(map[codes.Code]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func freezeReasons(src map[code.Code]int) map[code.Code]int {
	out := make(map[code.Code]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
