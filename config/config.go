// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads cmd/soiactl's settings from flags and
// environment variables through viper.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the full set of settings a soiactl invocation can take.
type Config struct {
	SchemaPath string
	LogLevel   string
}

// Bind registers Config's flags onto flags and returns a loader that
// resolves the final values once flags have been parsed, letting
// SOIACTL_*-prefixed environment variables override the defaults and an
// explicit flag override either.
func Bind(flags *pflag.FlagSet) func() (Config, error) {
	flags.String("schema", "", "path to a YAML schema document")
	flags.String("log-level", "info", "zap log level (debug, info, warn, error)")

	v := viper.New()
	v.SetEnvPrefix("soiactl")
	v.AutomaticEnv()

	return func() (Config, error) {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		schemaPath := v.GetString("schema")
		if schemaPath == "" {
			return Config{}, fmt.Errorf("config: --schema is required")
		}
		return Config{
			SchemaPath: schemaPath,
			LogLevel:   v.GetString("log-level"),
		}, nil
	}
}
