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

// Package classify turns raw transport failures into
// apierrors.ClassifiedError records.
//
// A Classifier understands three families of input:
//
//   - *TransportError, the generic shape a transport fills in when a call
//     fails (optional response, request config, transport code, message);
//   - gRPC status errors, including ErrorInfo, RequestInfo and Struct details;
//   - everything else, such as *url.Error from net/http or context errors.
//
// Classification is pure. It performs no I/O, never logs and never panics;
// every output field has a defined fallback.
package classify
