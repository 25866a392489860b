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

// Package bridge consumes events from the bus and turns them into calls on
// presentation collaborators.
//
// The Bridge owns one piece of state: the active modal. A Modal event
// replaces the active modal; Dismiss clears it. Every other event becomes
// an immediate call: Toast shows a toast, Redirect navigates, SessionExpired
// tears the session down and MaintenanceMode navigates to the maintenance
// page.
//
// Mount subscribes once; Unmount unsubscribes. Both are idempotent, so a
// Bridge survives any number of mount/unmount cycles without leaking
// listeners.
package bridge
