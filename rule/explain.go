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

package rule

import (
	"fmt"
	"strings"

	"dirpx.dev/apierrors"
)

// Explain produces a textual trace of how rules resolve for e.
//
// Each rule is listed in evaluation order until the first match, with one
// of three outcomes:
//
//	skip          SkipIf returned true
//	miss <pred>   the named predicate (status|path|method|code|body) failed
//	match         the rule wins; evaluation stops
//
// Example output:
//
//	error: method=GET url="/api/reports" status=403 code="FEATURE_GATED"
//	rule "session-expired" priority=100: miss status
//	rule "feature-gated" priority=50: match -> modal
//	result: feature-gated
//
// This is intended for inspection and logging, not for stable machine
// parsing.
func Explain(rules []Rule, e apierrors.ClassifiedError) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "error: method=%s url=%q status=%d code=%q\n", e.Method, e.URL, e.Status, e.ErrorCode)

	for i := range rules {
		r := &rules[i]
		_, _ = fmt.Fprintf(&b, "rule %q priority=%d: ", r.Name, r.Priority)
		if r.skipped(e) {
			_, _ = fmt.Fprintln(&b, "skip")
			continue
		}
		if miss := r.Match.firstMiss(e); miss != "" {
			_, _ = fmt.Fprintf(&b, "miss %s\n", miss)
			continue
		}
		_, _ = fmt.Fprintf(&b, "match -> %s\n", r.Action.Kind)
		_, _ = fmt.Fprintf(&b, "result: %s", r.Name)
		return b.String()
	}

	_, _ = fmt.Fprint(&b, "result: none")
	return b.String()
}
