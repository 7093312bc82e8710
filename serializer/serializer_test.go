// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serializer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soiacore/module"
	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/schema"
)

func buildPointModule(t *testing.T) *module.Module {
	t.Helper()
	point := &schema.Struct{
		ID: "m:Point",
		Fields: []schema.Field{
			{Name: "x", Number: 0, Type: schema.PrimitiveType{Kind: schema.Int64}},
			{Name: "y", Number: 1, Type: schema.PrimitiveType{Kind: schema.Int64}},
		},
	}
	m, err := module.Build(&schema.Document{Records: []schema.Record{point}})
	require.NoError(t, err)
	return m
}

func TestSerializerBinaryRoundTrip(t *testing.T) {
	m := buildPointModule(t)
	a, err := m.Adapter("m:Point")
	require.NoError(t, err)
	s := New(a)

	b := record.NewStructBuilder(a.Default().(*record.Struct).Layout)
	require.NoError(t, b.Set("x", int64(3)))
	require.NoError(t, b.Set("y", int64(4)))
	frozen, err := b.ToFrozen()
	require.NoError(t, err)

	bin, err := s.ToBytes(frozen)
	require.NoError(t, err)

	decoded, err := s.FromBytes(bin)
	require.NoError(t, err)
	require.True(t, decoded.(*record.Struct).Equal(frozen))
}

func TestSerializerJSONBothFlavors(t *testing.T) {
	m := buildPointModule(t)
	a, err := m.Adapter("m:Point")
	require.NoError(t, err)
	s := New(a)

	b := record.NewStructBuilder(a.Default().(*record.Struct).Layout)
	require.NoError(t, b.Set("x", int64(3)))
	frozen, err := b.ToFrozen()
	require.NoError(t, err)

	dense, err := s.ToJSON(frozen, false)
	require.NoError(t, err)
	require.Equal(t, `[3]`, dense)

	readable, err := s.ToJSON(frozen, true)
	require.NoError(t, err)
	require.JSONEq(t, `{"x":3}`, readable)

	back, err := s.FromJSON(dense)
	require.NoError(t, err)
	require.True(t, back.(*record.Struct).Equal(frozen))

	back2, err := s.FromJSON(readable)
	require.NoError(t, err)
	require.True(t, back2.(*record.Struct).Equal(frozen))
}

func TestSerializerJSONCodeAliases(t *testing.T) {
	m := buildPointModule(t)
	a, err := m.Adapter("m:Point")
	require.NoError(t, err)
	s := New(a)

	code, err := s.ToJSONCode(a.Default())
	require.NoError(t, err)
	require.Equal(t, `[]`, code)

	back, err := s.FromJSONCode(code)
	require.NoError(t, err)
	require.True(t, back.(*record.Struct).Equal(a.Default().(*record.Struct)))
}
