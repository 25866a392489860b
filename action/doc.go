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

// Package action executes the action a matched rule requests.
//
// The Executor is a leaf in the control flow: whatever happens while
// executing (a missing handler, a handler error or panic, an unknown
// action kind, a failing monitoring reporter) is logged and swallowed.
// The call site that produced the error never sees a failure from here.
//
// Toast, Modal and Redirect actions emit the matching event on the bus.
// Silent actions only log. Retry is reserved: it logs a warning and emits
// nothing. Custom actions call a handler looked up by name in Handlers.
// When the rule asks for monitoring, the error is reported after the
// primary action, whatever its kind.
package action
