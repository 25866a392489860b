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

package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/code"
	"dirpx.dev/apierrors/msgkey"
	"dirpx.dev/apierrors/rule"
)

// RuleFile is the document layout of a rule file.
type RuleFile struct {
	Rules []RuleSpec `yaml:"rules" toml:"rules"`
}

// RuleSpec is the serializable form of rule.Rule. SkipIf is limited to
// path exclusions.
type RuleSpec struct {
	Name            string     `yaml:"name" toml:"name"`
	Priority        int        `yaml:"priority" toml:"priority"`
	Match           MatchSpec  `yaml:"match" toml:"match"`
	Action          ActionSpec `yaml:"action" toml:"action"`
	MessageKey      string     `yaml:"messageKey" toml:"messageKey"`
	FallbackMessage string     `yaml:"fallbackMessage" toml:"fallbackMessage"`
	SkipPaths       []string   `yaml:"skipPaths" toml:"skipPaths"`
}

// MatchSpec is the serializable form of rule.Matcher.
type MatchSpec struct {
	Status       []int          `yaml:"status" toml:"status"`
	StatusRange  *RangeSpec     `yaml:"statusRange" toml:"statusRange"`
	PathContains string         `yaml:"pathContains" toml:"pathContains"`
	PathPattern  string         `yaml:"pathPattern" toml:"pathPattern"`
	Methods      []string       `yaml:"methods" toml:"methods"`
	Codes        []string       `yaml:"codes" toml:"codes"`
	BodyField    *BodyFieldSpec `yaml:"bodyField" toml:"bodyField"`
}

// RangeSpec is an inclusive status range.
type RangeSpec struct {
	Min int `yaml:"min" toml:"min"`
	Max int `yaml:"max" toml:"max"`
}

// BodyFieldSpec matches one top-level body field.
type BodyFieldSpec struct {
	Key   string `yaml:"key" toml:"key"`
	Value any    `yaml:"value" toml:"value"`
}

// ActionSpec is the serializable form of rule.Action.
type ActionSpec struct {
	Kind               string         `yaml:"kind" toml:"kind"`
	Severity           string         `yaml:"severity" toml:"severity"`
	Duration           string         `yaml:"duration" toml:"duration"`
	Modal              string         `yaml:"modal" toml:"modal"`
	Data               map[string]any `yaml:"data" toml:"data"`
	Target             string         `yaml:"target" toml:"target"`
	Handler            string         `yaml:"handler" toml:"handler"`
	MaxRetries         int            `yaml:"maxRetries" toml:"maxRetries"`
	ReportToMonitoring bool           `yaml:"reportToMonitoring" toml:"reportToMonitoring"`
	SuppressError      bool           `yaml:"suppressError" toml:"suppressError"`
}

// LoadRules reads and parses the rule file at path.
func LoadRules(path string) ([]rule.Rule, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read rules: %w", err)
	}
	rules, err := ParseRules(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes a rule document and converts every entry.
func ParseRules(data []byte, f Format) ([]rule.Rule, error) {
	var doc RuleFile
	if err := Decode(data, f, &doc); err != nil {
		return nil, err
	}
	out := make([]rule.Rule, 0, len(doc.Rules))
	for i, spec := range doc.Rules {
		r, err := spec.Rule()
		if err != nil {
			return nil, fmt.Errorf("rules[%d] %q: %w", i, spec.Name, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Rule converts s to a rule.Rule and validates it.
func (s RuleSpec) Rule() (rule.Rule, error) {
	m, err := s.Match.matcher()
	if err != nil {
		return rule.Rule{}, err
	}
	a, err := s.Action.action()
	if err != nil {
		return rule.Rule{}, err
	}
	key, err := msgkey.Parse(s.MessageKey)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("messageKey: %w", err)
	}
	r := rule.Rule{
		Name:            s.Name,
		Match:           m,
		Action:          a,
		MessageKey:      key,
		FallbackMessage: s.FallbackMessage,
		Priority:        s.Priority,
	}
	if len(s.SkipPaths) > 0 {
		r.SkipIf = rule.SkipPaths(s.SkipPaths...)
	}
	if err := r.Validate(); err != nil {
		return rule.Rule{}, err
	}
	return r, nil
}

func (s MatchSpec) matcher() (rule.Matcher, error) {
	var m rule.Matcher
	switch {
	case len(s.Status) > 0 && s.StatusRange != nil:
		return m, fmt.Errorf("match: status and statusRange are exclusive")
	case len(s.Status) > 0:
		m.Status = rule.StatusIn(s.Status...)
	case s.StatusRange != nil:
		if s.StatusRange.Min > s.StatusRange.Max {
			return m, fmt.Errorf("match: statusRange min %d > max %d", s.StatusRange.Min, s.StatusRange.Max)
		}
		m.Status = rule.StatusBetween(s.StatusRange.Min, s.StatusRange.Max)
	}

	switch {
	case s.PathContains != "" && s.PathPattern != "":
		return m, fmt.Errorf("match: pathContains and pathPattern are exclusive")
	case s.PathContains != "":
		m.Path = rule.PathContains(s.PathContains)
	case s.PathPattern != "":
		re, err := regexp.Compile(s.PathPattern)
		if err != nil {
			return m, fmt.Errorf("match: pathPattern: %w", err)
		}
		m.Path = rule.PathPattern(re)
	}

	for _, name := range s.Methods {
		method := apierrors.ParseMethod(name)
		if string(method) != strings.ToUpper(strings.TrimSpace(name)) {
			return m, fmt.Errorf("match: unsupported method %q", name)
		}
		m.Method = append(m.Method, method)
	}

	for _, raw := range s.Codes {
		c, err := code.Parse(raw)
		if err != nil {
			return m, fmt.Errorf("match: code %q: %w", raw, err)
		}
		m.ErrorCode = append(m.ErrorCode, c)
	}

	if s.BodyField != nil {
		if s.BodyField.Key == "" {
			return m, fmt.Errorf("match: bodyField without key")
		}
		m.BodyField = rule.Field(s.BodyField.Key, s.BodyField.Value)
	}
	return m, nil
}

func (s ActionSpec) action() (rule.Action, error) {
	a := rule.Action{
		Kind:               rule.ActionKind(s.Kind),
		Severity:           apierrors.Severity(s.Severity),
		Modal:              s.Modal,
		Target:             s.Target,
		Handler:            s.Handler,
		MaxRetries:         s.MaxRetries,
		ReportToMonitoring: s.ReportToMonitoring,
		SuppressError:      s.SuppressError,
	}
	a = a.WithData(s.Data)
	if s.Duration != "" {
		d, err := time.ParseDuration(s.Duration)
		if err != nil {
			return a, fmt.Errorf("action: duration: %w", err)
		}
		a.Duration = d
	}
	return a, nil
}
