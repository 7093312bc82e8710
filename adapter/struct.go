// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"sort"

	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/schema"
	"github.com/solidcoredata/soiacore/wire"
)

// StructAdapter adapts a product-record type. It is built once by
// NewStructAdapter and finalized by Finalize once every field's own
// adapter (including RefType placeholders for records still being
// resolved) is ready.
type StructAdapter struct {
	Layout *record.StructLayout
}

// NewStructAdapter allocates an unfinalized adapter for id. It exists
// before Finalize so a Resolver can hand it out (wrapped as needed) to
// sibling records that reference id before id's own fields are ready.
func NewStructAdapter(id string) *StructAdapter {
	return &StructAdapter{Layout: &record.StructLayout{RecordID: id}}
}

// Finalize builds the slot layout from s, resolving each field's type
// through resolver.
func (a *StructAdapter) Finalize(s *schema.Struct, resolver Resolver) error {
	if err := s.Validate(); err != nil {
		return err
	}
	slotCount := s.SlotCount()
	slotKind := make([]record.SlotKind, slotCount)
	for _, n := range s.RemovedNumbers {
		slotKind[n] = record.SlotRemoved
	}
	fields := make([]schema.Field, len(s.Fields))
	copy(fields, s.Fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Number < fields[j].Number })
	live := make([]*record.FieldSlot, 0, len(fields))
	byName := make(map[string]int, len(fields))
	for _, f := range fields {
		fa, err := ResolveType(f.Type, resolver)
		if err != nil {
			return err
		}
		slotKind[f.Number] = record.SlotLive
		slot := &record.FieldSlot{
			Name:             f.Name,
			Attribute:        f.AttributeName(),
			Number:           f.Number,
			Slot:             int(f.Number),
			Adapter:          fa,
			HasMutableGetter: f.HasMutableGetter,
		}
		live = append(live, slot)
		byName[f.Name] = len(live) - 1
	}
	a.Layout.SlotCount = slotCount
	a.Layout.SlotKind = slotKind
	a.Layout.Live = live
	a.Layout.ByName = byName
	return nil
}

func (a *StructAdapter) Default() any {
	return record.NewFrozenStruct(a.Layout, defaultValues(a.Layout), nil)
}

func defaultValues(layout *record.StructLayout) []any {
	values := make([]any, len(layout.Live))
	for i, f := range layout.Live {
		values[i] = f.Adapter.Default()
	}
	return values
}

// fieldAdapter returns a live slot's adapter as the full Adapter that
// Finalize stored there.
func fieldAdapter(f *record.FieldSlot) Adapter { return f.Adapter.(Adapter) }

func (a *StructAdapter) IsNotDefault(x any) bool {
	s, ok := x.(*record.Struct)
	if !ok {
		return x != nil
	}
	if !s.Tail.IsEmpty() {
		return true
	}
	for i, f := range a.Layout.Live {
		if f.Adapter.IsNotDefault(s.Values[i]) {
			return true
		}
	}
	return false
}

func (a *StructAdapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case *record.Struct:
		if v.Layout == a.Layout {
			return v, nil
		}
		return nil, wrongType(a.Layout.RecordID, x)
	case *record.StructBuilder:
		if v.Layout != a.Layout {
			return nil, wrongType(a.Layout.RecordID, x)
		}
		return v.ToFrozen()
	case nil:
		return a.Default(), nil
	default:
		return nil, wrongType(a.Layout.RecordID, x)
	}
}

// slotPayload is what's at one position of a struct's positional
// encoding before trimming: either a live field's current value, or
// (for a removed slot) whatever raw data decoding previously captured.
type slotPayload struct {
	live     *record.FieldSlot
	value    any
	rawBytes []byte
	rawJSON  any
	hasRaw   bool
}

func (a *StructAdapter) slotPayloads(s *record.Struct) []slotPayload {
	slots := make([]slotPayload, a.Layout.SlotCount)
	for i, f := range a.Layout.Live {
		slots[f.Slot] = slotPayload{live: f, value: s.Values[i]}
	}
	if s.Tail != nil {
		for slot, raw := range s.Tail.BinaryBySlot {
			if slot >= 0 && slot < len(slots) {
				slots[slot].rawBytes = raw
				slots[slot].hasRaw = true
			}
		}
		for slot, raw := range s.Tail.JSONBySlot {
			if slot >= 0 && slot < len(slots) {
				slots[slot].rawJSON = raw
				slots[slot].hasRaw = true
			}
		}
	}
	return slots
}

func trimLength(slots []slotPayload) int {
	last := -1
	for i, sl := range slots {
		switch {
		case sl.live != nil && sl.live.Adapter.IsNotDefault(sl.value):
			last = i
		case sl.live == nil && sl.hasRaw:
			last = i
		}
	}
	return last + 1
}

// EncodeBinary writes s as a positional, trailing-default-trimmed array,
// re-emitting any unrecognized removed-slot bytes captured at decode
// time and appending preserved trailing tokens past the known slots.
func (a *StructAdapter) EncodeBinary(w *wire.Writer, v any) error {
	s, ok := v.(*record.Struct)
	if !ok {
		return wrongType(a.Layout.RecordID, v)
	}
	slots := a.slotPayloads(s)
	trimmed := trimLength(slots)
	var trailing [][]byte
	if s.Tail != nil {
		trailing = s.Tail.BinaryTrailing
	}
	if len(trailing) > 0 {
		trimmed = a.Layout.SlotCount
	}
	if err := w.EncodeArrayHeader(trimmed + len(trailing)); err != nil {
		return err
	}
	for i := 0; i < trimmed; i++ {
		sl := slots[i]
		switch {
		case sl.live != nil:
			if err := fieldAdapter(sl.live).EncodeBinary(w, sl.value); err != nil {
				return err
			}
		case sl.rawBytes != nil:
			w.WriteRaw(sl.rawBytes)
		default:
			w.WriteTag(0)
		}
	}
	for _, raw := range trailing {
		w.WriteRaw(raw)
	}
	return nil
}

// DecodeBinary reads a positional array back into a frozen struct,
// capturing data at removed slots and past the known slot range into the
// result's Tail so it survives a later re-encode.
func (a *StructAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeArrayHeader(tag)
	if err != nil {
		return nil, err
	}
	values := defaultValues(a.Layout)
	var tail *record.Tail
	for i := 0; i < n; i++ {
		itemTag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch {
		case i < a.Layout.SlotCount && a.Layout.SlotKind[i] == record.SlotLive:
			slotIdx := -1
			for li, f := range a.Layout.Live {
				if f.Slot == i {
					slotIdx = li
					break
				}
			}
			val, err := fieldAdapter(a.Layout.Live[slotIdx]).DecodeBinary(r, itemTag)
			if err != nil {
				return nil, err
			}
			values[slotIdx] = val
		case i < a.Layout.SlotCount:
			raw, err := r.ReadRawToken(itemTag)
			if err != nil {
				return nil, err
			}
			if len(raw) == 1 && raw[0] == 0 {
				continue
			}
			if tail == nil {
				tail = &record.Tail{}
			}
			if tail.BinaryBySlot == nil {
				tail.BinaryBySlot = map[int][]byte{}
			}
			tail.BinaryBySlot[i] = raw
		default:
			raw, err := r.ReadRawToken(itemTag)
			if err != nil {
				return nil, err
			}
			if tail == nil {
				tail = &record.Tail{}
			}
			tail.BinaryTrailing = append(tail.BinaryTrailing, raw)
		}
	}
	return record.NewFrozenStruct(a.Layout, values, tail), nil
}

func (a *StructAdapter) EncodeJSON(v any, readable bool) any {
	s, ok := v.(*record.Struct)
	if !ok {
		return nil
	}
	if readable {
		return a.encodeReadable(s)
	}
	return a.encodeDense(s)
}

func (a *StructAdapter) encodeDense(s *record.Struct) any {
	slots := a.slotPayloads(s)
	trimmed := trimLength(slots)
	var trailing []any
	if s.Tail != nil {
		trailing = s.Tail.JSONTrailing
	}
	if len(trailing) > 0 {
		trimmed = a.Layout.SlotCount
	}
	out := make([]any, 0, trimmed+len(trailing))
	for i := 0; i < trimmed; i++ {
		sl := slots[i]
		switch {
		case sl.live != nil:
			out = append(out, fieldAdapter(sl.live).EncodeJSON(sl.value, false))
		case sl.hasRaw:
			out = append(out, sl.rawJSON)
		default:
			out = append(out, float64(0))
		}
	}
	out = append(out, trailing...)
	return out
}

func (a *StructAdapter) encodeReadable(s *record.Struct) any {
	out := make(map[string]any, len(a.Layout.Live))
	for i, f := range a.Layout.Live {
		if !f.Adapter.IsNotDefault(s.Values[i]) {
			continue
		}
		out[f.Name] = fieldAdapter(f).EncodeJSON(s.Values[i], true)
	}
	return out
}

func (a *StructAdapter) DecodeJSON(v any) (any, error) {
	switch vv := v.(type) {
	case []any:
		return a.decodeDense(vv)
	case map[string]any:
		return a.decodeReadable(vv)
	case nil:
		return a.Default(), nil
	default:
		return nil, wrongType(a.Layout.RecordID+" (array or object)", v)
	}
}

func (a *StructAdapter) decodeDense(list []any) (any, error) {
	values := defaultValues(a.Layout)
	var tail *record.Tail
	for i, raw := range list {
		switch {
		case i < a.Layout.SlotCount && a.Layout.SlotKind[i] == record.SlotLive:
			slotIdx := -1
			for li, f := range a.Layout.Live {
				if f.Slot == i {
					slotIdx = li
					break
				}
			}
			val, err := fieldAdapter(a.Layout.Live[slotIdx]).DecodeJSON(raw)
			if err != nil {
				return nil, err
			}
			values[slotIdx] = val
		case i < a.Layout.SlotCount:
			if tail == nil {
				tail = &record.Tail{}
			}
			if tail.JSONBySlot == nil {
				tail.JSONBySlot = map[int]any{}
			}
			tail.JSONBySlot[i] = raw
		default:
			if tail == nil {
				tail = &record.Tail{}
			}
			tail.JSONTrailing = append(tail.JSONTrailing, raw)
		}
	}
	return record.NewFrozenStruct(a.Layout, values, tail), nil
}

func (a *StructAdapter) decodeReadable(obj map[string]any) (any, error) {
	values := defaultValues(a.Layout)
	for i, f := range a.Layout.Live {
		raw, ok := obj[f.Name]
		if !ok {
			continue
		}
		val, err := fieldAdapter(f).DecodeJSON(raw)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}
	return record.NewFrozenStruct(a.Layout, values, nil), nil
}
