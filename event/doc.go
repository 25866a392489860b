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

// Package event defines the UI-facing events produced by action execution
// and the synchronous bus that carries them to the presentation layer.
//
// The bus decouples the detection pipeline (where failed calls are
// intercepted) from whatever renders the response. Delivery is:
//
//   - synchronous: Emit returns after every listener has run;
//   - ordered: listeners run in subscription order;
//   - isolated: a panicking listener is recovered and logged, later
//     listeners still run, and Emit never panics;
//   - at-most-once: there is no buffering, queueing, retry or replay. A
//     listener that is not subscribed when an event is emitted never sees it.
package event
