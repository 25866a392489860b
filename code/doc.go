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

// Package code provides parsing and validation for the machine-readable
// error codes carried by classified errors.
//
// A code is the most specific, server-chosen marker of what went wrong:
// "FEATURE_GATED", "SUBSCRIPTION_REQUIRED", "VALIDATION_ERROR". Codes are
// taken verbatim from response bodies by the classifier, and matched
// verbatim by rules. The only code the classification layer itself
// produces is Timeout.
//
// This package defines the representation, the well-known values used by
// the default rule set, and the validation applied to codes that come from
// configuration files.
package code
