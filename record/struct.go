// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import "fmt"

// FieldAdapter is the capability a record value needs from a field's
// type adapter: normalize an arbitrary value into its canonical frozen
// form and report the type's default.
type FieldAdapter interface {
	Default() any
	ToFrozen(x any) (any, error)
	IsNotDefault(x any) bool
}

// FieldSlot describes one live field's position in a struct's layout.
// Lookups in this package use Name throughout; Attribute is carried only
// for fidelity with the schema surface (see DESIGN.md).
type FieldSlot struct {
	Name             string
	Attribute        string
	Number           int32
	Slot             int
	Adapter          FieldAdapter
	HasMutableGetter bool
}

// StructLayout is the finalized, schema-derived shape of one struct
// record, built once by the struct adapter's Finalize.
type StructLayout struct {
	RecordID  string
	SlotCount int
	SlotKind  []SlotKind   // len == SlotCount
	Live      []*FieldSlot // fields only, ascending number order
	ByName    map[string]int
}

// SlotKind says whether a struct's positional slot holds a live field or
// a removed number.
type SlotKind int

const (
	SlotRemoved SlotKind = iota
	SlotLive
)

// Struct is a frozen product-record value: immutable, canonical,
// ==-comparable via Equal. Its field storage is exclusively owned; its
// Tail may be shared by reference with values derived from it.
type Struct struct {
	Layout *StructLayout
	Values []any // parallel to Layout.Live
	Tail   *Tail
}

// NewFrozenStruct builds a frozen struct from already-frozen field
// values. Callers (the struct adapter) are responsible for having run
// each value through its field's ToFrozen.
func NewFrozenStruct(layout *StructLayout, values []any, tail *Tail) *Struct {
	return &Struct{Layout: layout, Values: values, Tail: tail}
}

// Get returns the current value of the named live field.
func (s *Struct) Get(name string) (any, bool) {
	i, ok := s.Layout.ByName[name]
	if !ok {
		return nil, false
	}
	return s.Values[i], true
}

// ToFrozen is idempotent: a frozen struct's to_frozen is itself.
func (s *Struct) ToFrozen() *Struct { return s }

// ToMutable produces a builder seeded with this struct's current values,
// copying the value slice but sharing the Tail by reference.
func (s *Struct) ToMutable() *StructBuilder {
	values := make([]any, len(s.Values))
	copy(values, s.Values)
	return &StructBuilder{Layout: s.Layout, Values: values, Tail: s.Tail}
}

// Equal reports whether s and o have the same record id, equal fields
// pairwise (recursively), and equal unrecognized tails.
func (s *Struct) Equal(o *Struct) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	if s.Layout.RecordID != o.Layout.RecordID || len(s.Values) != len(o.Values) {
		return false
	}
	for i := range s.Values {
		if !ValueEqual(s.Values[i], o.Values[i]) {
			return false
		}
	}
	return s.Tail.Equal(o.Tail)
}

// StructBuilder is the mutable builder face of a struct record. Values
// may hold non-frozen intermediates (nested builders, raw slices) until
// ToFrozen is called.
type StructBuilder struct {
	Layout *StructLayout
	Values []any
	Tail   *Tail

	mutableCache map[int]any
}

// NewStructBuilder creates an empty builder with every live field set to
// its type's default.
func NewStructBuilder(layout *StructLayout) *StructBuilder {
	values := make([]any, len(layout.Live))
	for i, f := range layout.Live {
		values[i] = f.Adapter.Default()
	}
	return &StructBuilder{Layout: layout, Values: values}
}

// Set stores v for the named field without normalizing it; normalization
// happens when the builder is frozen.
func (b *StructBuilder) Set(name string, v any) error {
	i, ok := b.Layout.ByName[name]
	if !ok {
		return fmt.Errorf("record: %s has no field %q", b.Layout.RecordID, name)
	}
	b.Values[i] = v
	delete(b.mutableCache, i)
	return nil
}

// Get returns the named field's current (possibly non-frozen) value.
func (b *StructBuilder) Get(name string) (any, bool) {
	i, ok := b.Layout.ByName[name]
	if !ok {
		return nil, false
	}
	return b.Values[i], true
}

// MutableField lazily upgrades the named field's current value to its
// mutable form and caches it so repeated calls return the same instance.
// It is only valid for fields declared HasMutableGetter.
func (b *StructBuilder) MutableField(name string) (any, error) {
	i, ok := b.Layout.ByName[name]
	if !ok {
		return nil, fmt.Errorf("record: %s has no field %q", b.Layout.RecordID, name)
	}
	if !b.Layout.Live[i].HasMutableGetter {
		return nil, fmt.Errorf("record: %s.%s has no mutable getter", b.Layout.RecordID, name)
	}
	if b.mutableCache == nil {
		b.mutableCache = make(map[int]any)
	}
	if cached, ok := b.mutableCache[i]; ok {
		return cached, nil
	}
	mutable, err := toMutableValue(b.Values[i])
	if err != nil {
		return nil, fmt.Errorf("record: %s.%s: %w", b.Layout.RecordID, name, err)
	}
	b.mutableCache[i] = mutable
	b.Values[i] = mutable
	return mutable, nil
}

func toMutableValue(cur any) (any, error) {
	switch v := cur.(type) {
	case *Struct:
		return v.ToMutable(), nil
	case *StructBuilder:
		return v, nil
	case *Array:
		return v.ToMutableSlice(), nil
	case *MutableArray:
		return v, nil
	default:
		return nil, fmt.Errorf("expected: T or T.Mutable; found: %T", cur)
	}
}

// ToFrozen promotes the builder to a frozen struct, running every live
// field's current value through its adapter's ToFrozen.
func (b *StructBuilder) ToFrozen() (*Struct, error) {
	values := make([]any, len(b.Values))
	for i, f := range b.Layout.Live {
		fv, err := f.Adapter.ToFrozen(b.Values[i])
		if err != nil {
			return nil, fmt.Errorf("record: %s.%s: %w", b.Layout.RecordID, f.Name, err)
		}
		values[i] = fv
	}
	return &Struct{Layout: b.Layout, Values: values, Tail: b.Tail}, nil
}
