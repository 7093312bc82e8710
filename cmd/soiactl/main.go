// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command soiactl is a demo CLI over the core: given a YAML schema
// document, it can encode a JSON value to the binary wire format,
// decode bytes back to JSON, list the records, methods and constants the
// document resolves to, or smoke-test every record's default value.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/solidcoredata/soiacore/config"
	"github.com/solidcoredata/soiacore/internal/schemadoc"
	"github.com/solidcoredata/soiacore/internal/start"
	"github.com/solidcoredata/soiacore/module"
	"github.com/solidcoredata/soiacore/serializer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "soiactl",
		Short: "inspect and exercise a schema document against the soiacore runtime",
	}
	loadConfig := config.Bind(root.PersistentFlags())

	root.AddCommand(newEncodeCmd(loadConfig))
	root.AddCommand(newDecodeCmd(loadConfig))
	root.AddCommand(newInspectCmd(loadConfig))
	root.AddCommand(newSmokeCmd(loadConfig))
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

// buildModule loads the schema document and builds its module, tagging
// the run with a correlation id so a multi-command session can be
// traced through the logs.
func buildModule(cfg config.Config, log *zap.Logger) (*module.Module, zap.Field, error) {
	corrID := uuid.New().String()
	field := zap.String("correlation_id", corrID)
	log.Info("loading schema document", field, zap.String("path", cfg.SchemaPath))

	doc, err := schemadoc.Load(cfg.SchemaPath)
	if err != nil {
		return nil, field, fmt.Errorf("loading schema: %w", err)
	}
	mod, err := module.Build(doc)
	if err != nil {
		return nil, field, fmt.Errorf("building module: %w", err)
	}
	return mod, field, nil
}

func newEncodeCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var recordID, value string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "encode a JSON value to the binary wire format, printed as base64",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			return start.Run(context.Background(), log, 0, func(ctx context.Context) error {
				mod, field, err := buildModule(cfg, log)
				if err != nil {
					return err
				}
				a, err := mod.Adapter(recordID)
				if err != nil {
					return err
				}
				s := serializer.New(a)
				v, err := s.FromJSON(value)
				if err != nil {
					return err
				}
				bin, err := s.ToBytes(v)
				if err != nil {
					return err
				}
				log.Info("encoded", field, zap.Int("bytes", len(bin)))
				fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(bin))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&recordID, "record", "", "record id to encode as")
	cmd.Flags().StringVar(&value, "value", "", "JSON value to encode")
	cmd.MarkFlagRequired("record")
	cmd.MarkFlagRequired("value")
	return cmd
}

func newDecodeCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var recordID, data string
	var readable bool
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "decode base64-encoded wire bytes to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			return start.Run(context.Background(), log, 0, func(ctx context.Context) error {
				mod, field, err := buildModule(cfg, log)
				if err != nil {
					return err
				}
				a, err := mod.Adapter(recordID)
				if err != nil {
					return err
				}
				bin, err := base64.StdEncoding.DecodeString(data)
				if err != nil {
					return fmt.Errorf("decoding base64: %w", err)
				}
				s := serializer.New(a)
				v, err := s.FromBytes(bin)
				if err != nil {
					return err
				}
				out, err := s.ToJSON(v, readable)
				if err != nil {
					return err
				}
				log.Info("decoded", field, zap.Int("bytes", len(bin)))
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&recordID, "record", "", "record id to decode as")
	cmd.Flags().StringVar(&data, "bytes", "", "base64-encoded wire bytes")
	cmd.Flags().BoolVar(&readable, "readable", false, "print the named-field JSON flavor instead of dense")
	cmd.MarkFlagRequired("record")
	cmd.MarkFlagRequired("bytes")
	return cmd
}

func newInspectCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "list the records, methods, and constants a schema document resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			doc, err := schemadoc.Load(cfg.SchemaPath)
			if err != nil {
				return err
			}
			mod, err := module.Build(doc)
			if err != nil {
				return err
			}
			for _, rec := range doc.Records {
				fmt.Fprintln(cmd.OutOrStdout(), rec.RecordID())
			}
			for name := range mod.Methods {
				fmt.Fprintln(cmd.OutOrStdout(), "method:", name)
			}
			for name := range mod.Constants {
				fmt.Fprintln(cmd.OutOrStdout(), "constant:", name)
			}
			return nil
		},
	}
	return cmd
}

// newSmokeCmd round-trips every struct and enum record's default value
// through both the binary wire format and the dense JSON flavor,
// fanning the per-record checks out across start.Group so a document
// with many records is validated concurrently.
func newSmokeCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "round-trip every record's default value through wire and JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			mod, field, err := buildModule(cfg, log)
			if err != nil {
				return err
			}
			doc, err := schemadoc.Load(cfg.SchemaPath)
			if err != nil {
				return err
			}

			checks := make([]start.Func, len(doc.Records))
			for i, rec := range doc.Records {
				rec := rec
				checks[i] = func(ctx context.Context) error {
					a, err := mod.Adapter(rec.RecordID())
					if err != nil {
						return err
					}
					s := serializer.New(a)
					def := a.Default()
					bin, err := s.ToBytes(def)
					if err != nil {
						return fmt.Errorf("%s: wire encode: %w", rec.RecordID(), err)
					}
					if _, err := s.FromBytes(bin); err != nil {
						return fmt.Errorf("%s: wire decode: %w", rec.RecordID(), err)
					}
					code, err := s.ToJSONCode(def)
					if err != nil {
						return fmt.Errorf("%s: json encode: %w", rec.RecordID(), err)
					}
					if _, err := s.FromJSONCode(code); err != nil {
						return fmt.Errorf("%s: json decode: %w", rec.RecordID(), err)
					}
					return nil
				}
			}
			if err := start.Group(context.Background(), checks...); err != nil {
				return err
			}
			log.Info("smoke test passed", field, zap.Int("records", len(doc.Records)))
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	return cmd
}
