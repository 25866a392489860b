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

// Package rule holds the declarative error-rule table and the engine that
// evaluates it against classified errors.
//
// # Overview
//
// A Rule pairs a Matcher (predicates over a classified error) with an Action
// (the UI-facing or diagnostic response). Rules are plain data: they can be
// declared in Go, loaded from YAML/TOML (see package config), listed and
// explained.
//
// # Resolution model
//
// Rules are evaluated in the order kept by a Registry:
//
//  1. higher Priority first;
//  2. on equal Priority, earlier registration first (stable sort);
//  3. a rule whose SkipIf returns true is passed over;
//  4. the first rule whose every specified predicate holds wins.
//
// Evaluation short-circuits on the first match. When nothing matches the
// result is a MatchResult with Matched=false, which is a normal outcome:
// callers that need guaranteed feedback register their own lowest-priority
// rule with an empty Matcher.
//
// # Predicates
//
// All predicates are optional and AND together; an empty Matcher matches
// anything:
//
//   - Status: exact value, set membership, or inclusive range;
//   - Path: substring containment or a regular expression;
//   - Method: one or more verbs, case-insensitive;
//   - ErrorCode: one or more codes (an error without a code never matches);
//   - BodyField: deep equality of one top-level field of an object body.
//
// A predicate that cannot apply to the error (for instance a BodyField
// against a string body) evaluates to false. Matching never panics.
//
// # Priorities
//
// The default set relies on the ordering route-specific > feature-gated >
// maintenance > default. Without it a 403 carrying FEATURE_GATED would be
// answered by the generic forbidden rule. See Defaults.
//
// # Diagnostics
//
// Explain renders a human-readable trace of which rules were checked, why
// each one was passed over, and which one won.
package rule
