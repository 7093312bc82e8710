// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/schema"
	"github.com/solidcoredata/soiacore/wire"
)

func TestPrimitiveEncodeDecodeBinaryRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	require.NoError(t, Int32.EncodeBinary(w, int32(-1000)))
	require.NoError(t, String.EncodeBinary(w, "hello"))
	require.NoError(t, Bytes.EncodeBinary(w, []byte{1, 2, 3}))

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	v, err := Int32.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.Equal(t, int32(-1000), v)

	tag, err = r.ReadByte()
	require.NoError(t, err)
	s, err := String.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	tag, err = r.ReadByte()
	require.NoError(t, err)
	b, err := Bytes.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
}

func TestInt64JSONUsesStringEncoding(t *testing.T) {
	code := Int64.EncodeJSON(int64(9007199254740993), false)
	require.Equal(t, "9007199254740993", code)

	v, err := Int64.DecodeJSON("9007199254740993")
	require.NoError(t, err)
	require.Equal(t, int64(9007199254740993), v)
}

func TestInt64JSONUsesNumberWhenExact(t *testing.T) {
	code := Int64.EncodeJSON(int64(42), false)
	require.Equal(t, float64(42), code)

	v, err := Int64.DecodeJSON(float64(42))
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestTimestampJSONDenseIsBareNumber(t *testing.T) {
	ms := int64(1577836800000)
	dense := Timestamp.EncodeJSON(ms, false)
	require.Equal(t, float64(ms), dense)

	v, err := Timestamp.DecodeJSON(dense)
	require.NoError(t, err)
	require.Equal(t, ms, v)
}

func TestTimestampJSONReadableCarriesFormattedString(t *testing.T) {
	ms := int64(1577836800000)
	readable := Timestamp.EncodeJSON(ms, true).(map[string]any)
	require.Equal(t, float64(ms), readable["unix_millis"])
	require.Equal(t, "2020-01-01T00:00:00.000Z", readable["_formatted"])

	v, err := Timestamp.DecodeJSON(readable)
	require.NoError(t, err)
	require.Equal(t, ms, v)
}

func TestOptionalAdapterPassesThroughPresentValue(t *testing.T) {
	opt := NewOptional(Int32)
	require.Nil(t, opt.Default())
	require.False(t, opt.IsNotDefault(nil))
	require.True(t, opt.IsNotDefault(int32(1)))

	frozen, err := opt.ToFrozen(int32(5))
	require.NoError(t, err)
	require.Equal(t, int32(5), frozen)

	frozenNil, err := opt.ToFrozen(nil)
	require.NoError(t, err)
	require.Nil(t, frozenNil)
}

func TestOptionalAdapterDecodesSandwichedAbsentAsNil(t *testing.T) {
	opt := NewOptional(Int32)

	w := wire.NewWriter()
	require.NoError(t, Int32.EncodeBinary(w, int32(1)))
	require.NoError(t, opt.EncodeBinary(w, nil))
	require.NoError(t, Int32.EncodeBinary(w, int32(2)))

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	first, err := Int32.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.Equal(t, int32(1), first)

	tag, err = r.ReadByte()
	require.NoError(t, err)
	mid, err := opt.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.Nil(t, mid)

	tag, err = r.ReadByte()
	require.NoError(t, err)
	last, err := Int32.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.Equal(t, int32(2), last)
}

func TestArrayAdapterIdentitySharing(t *testing.T) {
	a1 := NewArrayAdapter(Int32, []string{"x"})
	a2 := NewArrayAdapter(Int32, []string{"x"})
	require.Same(t, a1, a2)

	a3 := NewArrayAdapter(Int32, nil)
	require.NotSame(t, a1, a3)
}

func TestArrayAdapterEncodeDecodeBinary(t *testing.T) {
	arr := NewArrayAdapter(Int32, nil)
	items := []any{int32(1), int32(2), int32(3)}

	w := wire.NewWriter()
	require.NoError(t, arr.EncodeBinary(w, items))

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	v, err := arr.DecodeBinary(r, tag)
	require.NoError(t, err)
	got := v.(*record.Array)
	require.Equal(t, items, got.Items)
}

func pointFields() []schema.Field {
	return []schema.Field{
		{Name: "x", Number: 0, Type: schema.PrimitiveType{Kind: schema.Int64}},
		{Name: "y", Number: 1, Type: schema.PrimitiveType{Kind: schema.Int64}},
	}
}

type staticResolver map[string]Adapter

func (r staticResolver) Resolve(id string) (Adapter, error) {
	a, ok := r[id]
	if !ok {
		return nil, wrongType("registered record "+id, nil)
	}
	return a, nil
}

func buildPointAdapter(t *testing.T) *StructAdapter {
	t.Helper()
	sa := NewStructAdapter("m:Point")
	s := &schema.Struct{ID: "m:Point", Fields: pointFields()}
	require.NoError(t, sa.Finalize(s, staticResolver{}))
	return sa
}

func TestStructAdapterDefaultIsNotDefault(t *testing.T) {
	sa := buildPointAdapter(t)
	def := sa.Default()
	require.False(t, sa.IsNotDefault(def))

	b := record.NewStructBuilder(sa.Layout)
	require.NoError(t, b.Set("x", int64(1)))
	frozen, err := b.ToFrozen()
	require.NoError(t, err)
	require.True(t, sa.IsNotDefault(frozen))
}

func TestStructAdapterBinaryRoundTripTrimsDefaults(t *testing.T) {
	sa := buildPointAdapter(t)
	b := record.NewStructBuilder(sa.Layout)
	require.NoError(t, b.Set("x", int64(7)))
	frozen, err := b.ToFrozen()
	require.NoError(t, err)

	w := wire.NewWriter()
	require.NoError(t, sa.EncodeBinary(w, frozen))

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	decoded, err := sa.DecodeBinary(r, tag)
	require.NoError(t, err)
	got := decoded.(*record.Struct)
	require.True(t, got.Equal(frozen))

	yVal, _ := got.Get("y")
	require.Equal(t, int64(0), yVal)
}

func TestStructAdapterPreservesRemovedSlotOnRoundTrip(t *testing.T) {
	// Build with three live slots, then simulate an older schema that
	// still has field "mid" at slot 1 where the current schema has
	// removed it.
	oldSA := NewStructAdapter("m:Triple")
	oldSchema := &schema.Struct{ID: "m:Triple", Fields: []schema.Field{
		{Name: "a", Number: 0, Type: schema.PrimitiveType{Kind: schema.Int64}},
		{Name: "mid", Number: 1, Type: schema.PrimitiveType{Kind: schema.Int64}},
		{Name: "c", Number: 2, Type: schema.PrimitiveType{Kind: schema.Int64}},
	}}
	require.NoError(t, oldSA.Finalize(oldSchema, staticResolver{}))

	b := record.NewStructBuilder(oldSA.Layout)
	require.NoError(t, b.Set("a", int64(1)))
	require.NoError(t, b.Set("mid", int64(99)))
	require.NoError(t, b.Set("c", int64(3)))
	frozen, err := b.ToFrozen()
	require.NoError(t, err)

	w := wire.NewWriter()
	require.NoError(t, oldSA.EncodeBinary(w, frozen))

	newSA := NewStructAdapter("m:Triple")
	newSchema := &schema.Struct{ID: "m:Triple", Fields: []schema.Field{
		{Name: "a", Number: 0, Type: schema.PrimitiveType{Kind: schema.Int64}},
		{Name: "c", Number: 2, Type: schema.PrimitiveType{Kind: schema.Int64}},
	}, RemovedNumbers: []int32{1}}
	require.NoError(t, newSA.Finalize(newSchema, staticResolver{}))

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	decodedAny, err := newSA.DecodeBinary(r, tag)
	require.NoError(t, err)
	decoded := decodedAny.(*record.Struct)
	require.False(t, decoded.Tail.IsEmpty())

	w2 := wire.NewWriter()
	require.NoError(t, newSA.EncodeBinary(w2, decoded))
	require.Equal(t, w.Bytes(), w2.Bytes())
}

func TestStructAdapterJSONReadableOmitsDefaults(t *testing.T) {
	sa := buildPointAdapter(t)
	b := record.NewStructBuilder(sa.Layout)
	require.NoError(t, b.Set("x", int64(5)))
	frozen, err := b.ToFrozen()
	require.NoError(t, err)

	readable := sa.EncodeJSON(frozen, true).(map[string]any)
	_, hasY := readable["y"]
	require.False(t, hasY)
	require.Equal(t, float64(5), readable["x"])
}

func buildColorEnum(t *testing.T) *EnumAdapter {
	t.Helper()
	ea := NewEnumAdapter("m:Color")
	e := &schema.Enum{
		ID:             "m:Color",
		ConstantFields: []schema.ConstantField{{Name: "RED", Number: 1}, {Name: "BLUE", Number: 2}},
		ValueFields:    []schema.ValueField{{Name: "CUSTOM", Number: 3, Type: schema.PrimitiveType{Kind: schema.String}}},
	}
	require.NoError(t, ea.Finalize(e, staticResolver{}))
	return ea
}

func TestEnumAdapterConstantRoundTrip(t *testing.T) {
	ea := buildColorEnum(t)
	red, err := ea.ConstantByName("RED")
	require.NoError(t, err)

	w := wire.NewWriter()
	require.NoError(t, ea.EncodeBinary(w, red))

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	decoded, err := ea.DecodeBinary(r, tag)
	require.NoError(t, err)
	require.Same(t, red, decoded)
}

func TestEnumAdapterValueVariantRoundTrip(t *testing.T) {
	ea := buildColorEnum(t)
	custom, err := ea.NewValue("CUSTOM", "teal")
	require.NoError(t, err)

	w := wire.NewWriter()
	require.NoError(t, ea.EncodeBinary(w, custom))

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	decodedAny, err := ea.DecodeBinary(r, tag)
	require.NoError(t, err)
	decoded := decodedAny.(*record.Enum)
	require.Equal(t, "CUSTOM", decoded.Kind)
	require.Equal(t, "teal", decoded.Payload)
}

func TestEnumAdapterUnknownNumberRoundTrip(t *testing.T) {
	ea := buildColorEnum(t)

	w := wire.NewWriter()
	w.EncodeInt32(77)

	r := wire.NewReader(w.Bytes())
	tag, err := r.ReadByte()
	require.NoError(t, err)
	decodedAny, err := ea.DecodeBinary(r, tag)
	require.NoError(t, err)
	decoded := decodedAny.(*record.Enum)
	require.True(t, decoded.IsUnknown())
	require.Equal(t, int32(77), decoded.Number)

	w2 := wire.NewWriter()
	require.NoError(t, ea.EncodeBinary(w2, decoded))
	require.Equal(t, w.Bytes(), w2.Bytes())
}

func TestEnumAdapterUnknownJSONRoundTrip(t *testing.T) {
	ea := buildColorEnum(t)

	readable := ea.EncodeJSON(ea.Default(), true)
	require.Equal(t, record.UnknownKind, readable)
	back, err := ea.DecodeJSON(readable)
	require.NoError(t, err)
	require.True(t, back.(*record.Enum).IsUnknown())

	dense := ea.EncodeJSON(ea.Default(), false)
	back2, err := ea.DecodeJSON(dense)
	require.NoError(t, err)
	require.True(t, back2.(*record.Enum).IsUnknown())
}

func TestEnumAdapterJSONRoundTrip(t *testing.T) {
	ea := buildColorEnum(t)
	custom, err := ea.NewValue("CUSTOM", "teal")
	require.NoError(t, err)

	dense := ea.EncodeJSON(custom, false)
	back, err := ea.DecodeJSON(dense)
	require.NoError(t, err)
	require.True(t, back.(*record.Enum).Equal(custom))

	readable := ea.EncodeJSON(custom, true)
	back2, err := ea.DecodeJSON(readable)
	require.NoError(t, err)
	require.True(t, back2.(*record.Enum).Equal(custom))
}
