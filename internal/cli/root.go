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

// Package cli implements the apierrctl command tree.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/apierrors/config"
)

// EnvPrefix prefixes environment overrides, e.g. APIERRORS_LOG_LEVEL.
const EnvPrefix = "APIERRORS"

type rootOptions struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCmd builds a fresh command tree. Every call owns its own viper
// instance, so trees can be built and executed independently.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "apierrctl",
		Short: "Inspect and exercise API error handling rules",
		Long: `apierrctl loads the error rule table, message catalog and monitoring
sinks described by the configuration and lets you list the rules, trace
how an error would be matched, and simulate its handling end to end.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.load()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "config file (default: ./apierrors.{yaml,toml} or ./configs/)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")
	pf.StringSlice("rules", nil, "Rule files layered on top of the defaults")
	pf.Bool("defaults", true, "Include the built-in rule table")
	pf.String("catalog", "", "Message catalog file")
	pf.String("nats-url", "", "Publish monitoring reports to this NATS server")

	for key, flag := range map[string]string{
		"log.level":              "log-level",
		"log.format":             "log-format",
		"rules.files":            "rules",
		"rules.include_defaults": "defaults",
		"catalog.file":           "catalog",
		"monitor.nats_url":       "nats-url",
	} {
		if err := o.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", flag, err))
		}
	}

	root.AddCommand(
		newRulesCmd(o),
		newExplainCmd(o),
		newSimulateCmd(o),
	)
	return root
}

func (o *rootOptions) load() error {
	v := o.v
	config.SetDefaults(v)

	if o.cfgFile != "" {
		v.SetConfigFile(o.cfgFile)
	} else {
		v.SetConfigName("apierrors")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.New(v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
