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
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"

	"dirpx.dev/apierrors/action"
	"dirpx.dev/apierrors/mapper"
)

func newExplainCmd(o *rootOptions) *cobra.Command {
	var (
		f        errorFlags
		grpcCode string
	)
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Trace how an error is matched against the rules",
		Long: `explain prints, rule by rule, why each rule did or did not match the
described error, followed by the winning rule and its display message.

With --grpc-code it also shows how that gRPC code maps to an HTTP status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			logger := o.cfg.Log.NewLogger(cmd.ErrOrStderr())

			e, err := f.classified()
			if err != nil {
				return err
			}

			if grpcCode != "" {
				c, err := parseGRPCCode(grpcCode)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, mapper.Default().Explain(c, e.ErrorCode))
				if f.status == 0 {
					e = e.WithStatus(mapper.Default().HTTPStatus(c, e.ErrorCode))
				}
			}

			reg, err := buildRegistry(o.cfg, logger)
			if err != nil {
				return err
			}
			tr, err := buildTranslator(o.cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, reg.Explain(e))
			res := reg.Match(e)
			if !res.Matched {
				return nil
			}
			fmt.Fprintf(out, "action: %s\n", describeAction(res.Rule.Action))
			fmt.Fprintf(out, "message: %s\n", action.ResolveMessage(*res.Rule, e, tr))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&grpcCode, "grpc-code", "", "gRPC status code name or number, e.g. NOT_FOUND or 5")
	return cmd
}

// parseGRPCCode accepts a canonical name (NOT_FOUND, not_found) or a number.
func parseGRPCCode(s string) (codes.Code, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return codes.Code(n), nil
	}
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(strconv.Quote(strings.ToUpper(s)))); err != nil {
		return 0, fmt.Errorf("--grpc-code: %w", err)
	}
	return c, nil
}
