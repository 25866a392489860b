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
	"encoding/json"
	"reflect"
	"regexp"
	"strings"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
)

// Matcher is the set of predicates a classified error must satisfy for a
// rule to apply. Nil or empty fields are not checked. The zero Matcher
// matches every error.
type Matcher struct {
	// Status constrains the response status.
	Status *StatusMatch

	// Path constrains the request URL.
	Path *PathMatch

	// Method lists the accepted verbs.
	Method []apierrors.Method

	// ErrorCode lists the accepted codes.
	ErrorCode []code.Code

	// BodyField requires one top-level body field to equal a value.
	BodyField *BodyField
}

// StatusMatch constrains a status to an exact value, a set, or an inclusive
// range. Exactly one of Values and Range is expected to be populated; when
// both are, both must hold.
type StatusMatch struct {
	// Values holds one exact status or a set of accepted statuses.
	Values []int

	// Range is an inclusive [Min, Max] interval.
	Range *StatusRange
}

// StatusRange is an inclusive status interval.
type StatusRange struct {
	Min int
	Max int
}

// PathMatch constrains the request URL by substring or by pattern.
// When Pattern is set, Contains is ignored.
type PathMatch struct {
	Contains string
	Pattern  *regexp.Regexp
}

// BodyField requires body[Key] to deep-equal Value.
type BodyField struct {
	Key   string
	Value any
}

// Status returns a StatusMatch for a single exact status.
func Status(n int) *StatusMatch { return &StatusMatch{Values: []int{n}} }

// StatusIn returns a StatusMatch accepting any of the given statuses.
// With no statuses it matches nothing.
func StatusIn(ns ...int) *StatusMatch { return &StatusMatch{Values: append([]int{}, ns...)} }

// StatusBetween returns a StatusMatch for the inclusive range [lo, hi].
func StatusBetween(lo, hi int) *StatusMatch {
	return &StatusMatch{Range: &StatusRange{Min: lo, Max: hi}}
}

// PathContains returns a PathMatch testing substring containment.
func PathContains(s string) *PathMatch { return &PathMatch{Contains: s} }

// PathPattern returns a PathMatch testing re against the URL.
func PathPattern(re *regexp.Regexp) *PathMatch { return &PathMatch{Pattern: re} }

// MustPathPattern compiles expr and returns a PathMatch for it.
// It panics if expr is not a valid regular expression.
func MustPathPattern(expr string) *PathMatch {
	return &PathMatch{Pattern: regexp.MustCompile(expr)}
}

// Methods returns a method predicate accepting the given verbs.
func Methods(ms ...apierrors.Method) []apierrors.Method {
	return append([]apierrors.Method(nil), ms...)
}

// Codes returns a code predicate accepting the given codes.
func Codes(cs ...code.Code) []code.Code { return append([]code.Code(nil), cs...) }

// Field returns a BodyField predicate.
func Field(key string, value any) *BodyField { return &BodyField{Key: key, Value: value} }

// Empty reports whether m has no predicates and therefore matches anything.
func (m Matcher) Empty() bool {
	return m.Status == nil && m.Path == nil && len(m.Method) == 0 &&
		len(m.ErrorCode) == 0 && m.BodyField == nil
}

// Matches reports whether every specified predicate holds for e.
func (m Matcher) Matches(e apierrors.ClassifiedError) bool {
	return m.firstMiss(e) == ""
}

// firstMiss returns the name of the first predicate that does not hold,
// or "" when all of them do. The order is fixed: status, path, method,
// code, body.
func (m Matcher) firstMiss(e apierrors.ClassifiedError) string {
	if m.Status != nil && !MatchesStatus(m.Status, e.Status) {
		return "status"
	}
	if m.Path != nil && !MatchesPath(m.Path, e.URL) {
		return "path"
	}
	if len(m.Method) > 0 && !MatchesMethod(m.Method, e.Method) {
		return "method"
	}
	if len(m.ErrorCode) > 0 && !MatchesCode(m.ErrorCode, e.ErrorCode) {
		return "code"
	}
	if m.BodyField != nil && !MatchesBodyField(m.BodyField, e.Body) {
		return "body"
	}
	return ""
}

// MatchesStatus reports whether status satisfies sm. Both range bounds are
// inclusive. A nil sm matches any status; a non-nil empty Values set
// matches none.
func MatchesStatus(sm *StatusMatch, status int) bool {
	if sm == nil {
		return true
	}
	if sm.Values != nil {
		found := false
		for _, v := range sm.Values {
			if v == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if sm.Range != nil && (status < sm.Range.Min || status > sm.Range.Max) {
		return false
	}
	return true
}

// MatchesPath reports whether url satisfies pm. A nil pm matches any URL.
func MatchesPath(pm *PathMatch, url string) bool {
	if pm == nil {
		return true
	}
	if pm.Pattern != nil {
		return pm.Pattern.MatchString(url)
	}
	return strings.Contains(url, pm.Contains)
}

// MatchesMethod reports whether m is one of accepted, ignoring case.
// An empty accepted list matches any method.
func MatchesMethod(accepted []apierrors.Method, m apierrors.Method) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, a := range accepted {
		if strings.EqualFold(string(a), string(m)) {
			return true
		}
	}
	return false
}

// MatchesCode reports whether c is one of accepted. An error without a code
// never matches a non-empty list.
func MatchesCode(accepted []code.Code, c code.Code) bool {
	if len(accepted) == 0 {
		return true
	}
	if c == code.Empty {
		return false
	}
	return c.In(accepted...)
}

// MatchesBodyField reports whether body is an object whose bf.Key field
// deep-equals bf.Value. Numbers are compared by value regardless of their Go
// type, since decoded JSON bodies carry float64. Non-object bodies and
// missing keys never match.
func MatchesBodyField(bf *BodyField, body any) bool {
	if bf == nil {
		return true
	}
	obj, ok := body.(map[string]any)
	if !ok {
		return false
	}
	got, ok := obj[bf.Key]
	if !ok {
		return false
	}
	return reflect.DeepEqual(normalizeValue(got), normalizeValue(bf.Value))
}

// normalizeValue rewrites numbers (at any depth) to float64 and typed
// maps/slices to their JSON-decoded shapes, so that values written in Go and
// values decoded from JSON compare equal.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = normalizeValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, vv := range x {
			out[i] = normalizeValue(vv)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32:
		return rv.Float()
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalizeValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalizeValue(iter.Value().Interface())
		}
		return out
	}
	return v
}
