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

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirpx.dev/apierrors/rule"
)

func newRulesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the effective rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := o.cfg.Log.NewLogger(cmd.ErrOrStderr())
			reg, err := buildRegistry(o.cfg, logger)
			if err != nil {
				return err
			}
			return writeRules(cmd.OutOrStdout(), reg.Rules())
		},
	}
}

func writeRules(w io.Writer, rules []rule.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tNAME\tACTION\tMESSAGE KEY")
	for _, r := range rules {
		key := r.MessageKey.String()
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Priority, r.Name, describeAction(r.Action), key)
	}
	return tw.Flush()
}

// describeAction renders an action as kind(payload)[+report][+suppress].
func describeAction(a rule.Action) string {
	var b strings.Builder
	b.WriteString(a.Kind.String())

	var arg string
	switch a.Kind {
	case rule.KindToast:
		arg = string(a.Severity)
	case rule.KindModal:
		arg = a.Modal
	case rule.KindRedirect:
		arg = a.Target
	case rule.KindRetry:
		arg = fmt.Sprintf("%d", a.MaxRetries)
	case rule.KindCustom:
		arg = a.Handler
	}
	if arg != "" {
		b.WriteString("(" + arg + ")")
	}
	if a.ReportToMonitoring {
		b.WriteString("+report")
	}
	if a.SuppressError {
		b.WriteString("+suppress")
	}
	return b.String()
}
