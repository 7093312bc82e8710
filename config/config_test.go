// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestBindRequiresSchemaFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	load := Bind(flags)
	require.NoError(t, flags.Parse(nil))

	_, err := load()
	require.Error(t, err)
}

func TestBindResolvesFlagValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	load := Bind(flags)
	require.NoError(t, flags.Parse([]string{"--schema", "doc.yaml", "--log-level", "debug"}))

	cfg, err := load()
	require.NoError(t, err)
	require.Equal(t, "doc.yaml", cfg.SchemaPath)
	require.Equal(t, "debug", cfg.LogLevel)
}
