// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soiacore/module"
	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/schema"
	"github.com/solidcoredata/soiacore/serializer"
)

func buildEchoModule(t *testing.T) *module.Module {
	t.Helper()
	point := &schema.Struct{
		ID: "m:Point",
		Fields: []schema.Field{
			{Name: "x", Number: 0, Type: schema.PrimitiveType{Kind: schema.Int64}},
		},
	}
	doc := &schema.Document{
		Records: []schema.Record{point},
		Methods: []schema.Method{{Name: "Echo", Number: 1, RequestType: "m:Point", ResponseType: "m:Point"}},
	}
	m, err := module.Build(doc)
	require.NoError(t, err)
	return m
}

func TestRegistryInvokeBytes(t *testing.T) {
	m := buildEchoModule(t)
	reg := New(m)
	reg.Handle("Echo", func(_ context.Context, req any) (any, error) {
		return req, nil
	})

	meth := m.Methods["Echo"]
	b := record.NewStructBuilder(meth.Request.Default().(*record.Struct).Layout)
	require.NoError(t, b.Set("x", int64(42)))
	frozen, err := b.ToFrozen()
	require.NoError(t, err)

	reqBytes, err := serializer.New(meth.Request).ToBytes(frozen)
	require.NoError(t, err)

	respBytes, err := reg.InvokeBytes(context.Background(), "Echo", reqBytes)
	require.NoError(t, err)
	require.Equal(t, reqBytes, respBytes)
}

func TestRegistryHandleUnknownMethodPanics(t *testing.T) {
	m := buildEchoModule(t)
	reg := New(m)
	require.Panics(t, func() {
		reg.Handle("Nope", func(context.Context, any) (any, error) { return nil, nil })
	})
}

func TestRegistryInvokeUnknownMethod(t *testing.T) {
	m := buildEchoModule(t)
	reg := New(m)
	_, err := reg.InvokeBytes(context.Background(), "Nope", nil)
	require.Error(t, err)
}
