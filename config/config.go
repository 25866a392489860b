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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete pipeline configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Executor ExecutorConfig `mapstructure:"executor"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RulesConfig lists rule files layered on top of the default table.
type RulesConfig struct {
	Files           []string `mapstructure:"files"`
	IncludeDefaults bool     `mapstructure:"include_defaults"`
}

// CatalogConfig points at the message catalog.
type CatalogConfig struct {
	File        string `mapstructure:"file"`
	PrefixMatch bool   `mapstructure:"prefix_match"`
}

// MonitorConfig selects the monitoring sinks.
type MonitorConfig struct {
	Log         bool   `mapstructure:"log"`
	NATSURL     string `mapstructure:"nats_url"`
	NATSSubject string `mapstructure:"nats_subject"`
}

// ExecutorConfig holds action defaults.
type ExecutorConfig struct {
	ToastDuration  time.Duration `mapstructure:"toast_duration"`
	RedirectTarget string        `mapstructure:"redirect_target"`
}

// BridgeConfig holds navigation targets used by the event bridge.
type BridgeConfig struct {
	MaintenancePath string `mapstructure:"maintenance_path"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("rules.include_defaults", true)

	v.SetDefault("catalog.prefix_match", false)

	v.SetDefault("monitor.log", true)
	v.SetDefault("monitor.nats_subject", "apierrors.reports")

	v.SetDefault("executor.toast_duration", "5s")
	v.SetDefault("executor.redirect_target", "/")

	v.SetDefault("bridge.maintenance_path", "/maintenance")
}

// New decodes and validates the configuration held by v.
func New(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Executor.ToastDuration < 0 {
		return errors.New("executor.toast_duration must not be negative")
	}
	if c.Executor.RedirectTarget != "" && !strings.HasPrefix(c.Executor.RedirectTarget, "/") {
		return errors.New("executor.redirect_target must be an absolute path")
	}
	if c.Bridge.MaintenancePath != "" && !strings.HasPrefix(c.Bridge.MaintenancePath, "/") {
		return errors.New("bridge.maintenance_path must be an absolute path")
	}
	for _, f := range c.Rules.Files {
		if _, err := FormatOf(f); err != nil {
			return fmt.Errorf("rules.files: %w", err)
		}
	}
	if c.Catalog.File != "" {
		if _, err := FormatOf(c.Catalog.File); err != nil {
			return fmt.Errorf("catalog.file: %w", err)
		}
	}
	return nil
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
	}
}

// NewLogger builds the logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
