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

// Package dispatch wires classification, matching and execution into one
// call made from a transport's failure path:
//
//	err := doCall(ctx)
//	if err != nil {
//		d.Handle(ctx, err)
//		return err
//	}
//
// Handle never fails and never replaces the caller's error. Errors that
// match no rule produce no action.
package dispatch
