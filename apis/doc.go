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

// Package apis defines the contracts between the error-dispatch layer and
// the collaborators it does not implement itself: the monitoring sink and
// the localization step.
//
// The goal of this package is to provide *small* interfaces that the
// executor can depend on without importing any concrete sink. Concrete
// implementations live in other subpackages (monitor, catalog) or in the
// application.
//
// This package must remain lightweight: it only contains interfaces and
// very small, serializable value types.
package apis
