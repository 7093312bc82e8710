// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soiacore/adapter"
	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/schema"
	"github.com/solidcoredata/soiacore/wire"
)

func TestBuildSelfReferentialRecord(t *testing.T) {
	node := &schema.Struct{
		ID: "m:Node",
		Fields: []schema.Field{
			{Name: "value", Number: 0, Type: schema.PrimitiveType{Kind: schema.Int64}},
			{Name: "next", Number: 1, Type: schema.OptionalType{Inner: schema.RefType{RecordID: "m:Node"}}},
		},
	}
	doc := &schema.Document{Records: []schema.Record{node}}

	m, err := Build(doc)
	require.NoError(t, err)

	a, err := m.Adapter("m:Node")
	require.NoError(t, err)

	s := a.Default().(*record.Struct)
	require.NotNil(t, s.Layout)
	nextSlot := s.Layout.ByName["next"]
	require.Equal(t, 1, nextSlot)
}

func TestBuildMutuallyRecursiveRecords(t *testing.T) {
	a := &schema.Struct{
		ID: "m:A",
		Fields: []schema.Field{
			{Name: "b", Number: 0, Type: schema.OptionalType{Inner: schema.RefType{RecordID: "m:B"}}},
		},
	}
	b := &schema.Struct{
		ID: "m:B",
		Fields: []schema.Field{
			{Name: "a", Number: 0, Type: schema.OptionalType{Inner: schema.RefType{RecordID: "m:A"}}},
		},
	}
	doc := &schema.Document{Records: []schema.Record{a, b}}

	m, err := Build(doc)
	require.NoError(t, err)

	adapterA, err := m.Adapter("m:A")
	require.NoError(t, err)
	adapterB, err := m.Adapter("m:B")
	require.NoError(t, err)
	require.NotNil(t, adapterA)
	require.NotNil(t, adapterB)

	// Build an A containing a B containing an A, then check that freezing
	// it again through A's adapter returns the same instance.
	structA := adapterA.Default().(*record.Struct).ToMutable()
	structB := adapterB.Default().(*record.Struct).ToMutable()
	innerA, err := structA.ToFrozen()
	require.NoError(t, err)
	require.NoError(t, structB.Set("a", innerA))
	frozenB, err := structB.ToFrozen()
	require.NoError(t, err)
	require.NoError(t, structA.Set("b", frozenB))
	frozenA, err := structA.ToFrozen()
	require.NoError(t, err)

	roundTripped, err := adapterA.ToFrozen(frozenA)
	require.NoError(t, err)
	require.Same(t, frozenA, roundTripped)
}

func TestBuildMethodsAndConstants(t *testing.T) {
	point := &schema.Struct{
		ID: "m:Point",
		Fields: []schema.Field{
			{Name: "x", Number: 0, Type: schema.PrimitiveType{Kind: schema.Int64}},
		},
	}
	doc := &schema.Document{
		Records: []schema.Record{point},
		Methods: []schema.Method{
			{Name: "Echo", Number: 1, RequestType: "m:Point", ResponseType: "m:Point"},
		},
		Constants: []schema.Constant{
			{Name: "Origin", Type: schema.RefType{RecordID: "m:Point"}, JSONCode: `[0]`},
		},
	}

	m, err := Build(doc)
	require.NoError(t, err)

	echo, ok := m.Methods["Echo"]
	require.True(t, ok)
	require.Equal(t, int32(1), echo.Number)
	require.NotNil(t, echo.Request)
	require.NotNil(t, echo.Response)

	origin, ok := m.Constants["Origin"]
	require.True(t, ok)
	_, ok = origin.(*record.Struct)
	require.True(t, ok)
}

// TestBuildJsonValueRecursiveArrayRoundTrip covers a JsonValue-shaped
// enum whose ARRAY variant's payload is Array<JsonValue>: building it
// must resolve the self-reference inside the array item type, and
// encoding/decoding a deeply nested value and a large flat one must
// round-trip without overflowing the stack.
func TestBuildJsonValueRecursiveArrayRoundTrip(t *testing.T) {
	jsonValue := &schema.Enum{
		ID:             "m:JsonValue",
		ConstantFields: []schema.ConstantField{{Name: "NULL", Number: 1}},
		ValueFields: []schema.ValueField{
			{Name: "NUMBER", Number: 2, Type: schema.PrimitiveType{Kind: schema.Float64}},
			{Name: "ARRAY", Number: 3, Type: schema.ArrayType{Item: schema.RefType{RecordID: "m:JsonValue"}}},
		},
	}
	doc := &schema.Document{Records: []schema.Record{jsonValue}}

	m, err := Build(doc)
	require.NoError(t, err)

	adapterAny, err := m.Adapter("m:JsonValue")
	require.NoError(t, err)
	a := adapterAny.(*adapter.EnumAdapter)

	number := func(n float64) *record.Enum {
		frozen, err := a.NewValue("NUMBER", n)
		require.NoError(t, err)
		return frozen
	}
	array := func(items ...*record.Enum) *record.Enum {
		anyItems := make([]any, len(items))
		for i, it := range items {
			anyItems[i] = it
		}
		frozen, err := a.NewValue("ARRAY", anyItems)
		require.NoError(t, err)
		return frozen
	}

	// 3-deep nested array: [[[1.0]]]
	nested := array(array(array(number(1))))
	roundTripped, err := a.ToFrozen(nested)
	require.NoError(t, err)
	require.True(t, roundTripped.(*record.Enum).Equal(nested))

	w := wire.NewWriter()
	require.NoError(t, a.EncodeBinary(w, nested))
	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	decodedNested, err := a.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.True(t, decodedNested.(*record.Enum).Equal(nested))

	code := a.EncodeJSON(nested, false)
	decodedFromJSON, err := a.DecodeJSON(code)
	require.NoError(t, err)
	require.True(t, decodedFromJSON.(*record.Enum).Equal(nested))

	// 1000-element flat array must not overflow the stack, through both
	// the binary wire format and dense JSON.
	flatItems := make([]*record.Enum, 1000)
	for i := range flatItems {
		flatItems[i] = number(float64(i))
	}
	flat := array(flatItems...)

	wFlat := wire.NewWriter()
	require.NoError(t, a.EncodeBinary(wFlat, flat))
	rFlat := wire.NewReader(wFlat.Bytes())
	flatTag, err := rFlat.ReadByte()
	require.NoError(t, err)
	decodedFlat, err := a.DecodeBinary(rFlat, flatTag)
	require.NoError(t, err)
	require.True(t, decodedFlat.(*record.Enum).Equal(flat))

	flatCode := a.EncodeJSON(flat, false)
	decodedFlatFromJSON, err := a.DecodeJSON(flatCode)
	require.NoError(t, err)
	require.True(t, decodedFlatFromJSON.(*record.Enum).Equal(flat))
}

func TestBuildRejectsUnknownRef(t *testing.T) {
	bad := &schema.Struct{
		ID: "m:Bad",
		Fields: []schema.Field{
			{Name: "missing", Number: 0, Type: schema.RefType{RecordID: "m:Nonexistent"}},
		},
	}
	_, err := Build(&schema.Document{Records: []schema.Record{bad}})
	require.Error(t, err)
}
