// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/schema"
	"github.com/solidcoredata/soiacore/wire"
)

type enumValueField struct {
	Name    string
	Number  int32
	Adapter Adapter
}

// EnumAdapter adapts a tagged-sum record. Constant variants are
// singleton *record.Enum instances shared across every occurrence of
// that constant in a process; value variants are constructed per value.
type EnumAdapter struct {
	RecordID string

	constantsByNumber map[int32]*record.Enum
	constantsByName   map[string]*record.Enum
	valuesByNumber    map[int32]*enumValueField
	valuesByName      map[string]*enumValueField

	unknown *record.Enum
}

// NewEnumAdapter allocates an unfinalized adapter for id.
func NewEnumAdapter(id string) *EnumAdapter {
	return &EnumAdapter{RecordID: id, unknown: &record.Enum{Kind: record.UnknownKind}}
}

// Finalize builds the constant and value-variant tables from e.
func (a *EnumAdapter) Finalize(e *schema.Enum, resolver Resolver) error {
	if err := e.Validate(); err != nil {
		return err
	}
	a.constantsByNumber = make(map[int32]*record.Enum, len(e.ConstantFields))
	a.constantsByName = make(map[string]*record.Enum, len(e.ConstantFields))
	for _, c := range e.ConstantFields {
		inst := &record.Enum{Kind: c.Name, Number: c.Number}
		a.constantsByNumber[c.Number] = inst
		a.constantsByName[c.Name] = inst
	}
	a.valuesByNumber = make(map[int32]*enumValueField, len(e.ValueFields))
	a.valuesByName = make(map[string]*enumValueField, len(e.ValueFields))
	for _, v := range e.ValueFields {
		fa, err := ResolveType(v.Type, resolver)
		if err != nil {
			return err
		}
		field := &enumValueField{Name: v.Name, Number: v.Number, Adapter: fa}
		a.valuesByNumber[v.Number] = field
		a.valuesByName[v.Name] = field
	}
	return nil
}

func (a *EnumAdapter) Default() any { return a.unknown }

func (a *EnumAdapter) IsNotDefault(x any) bool {
	e, ok := x.(*record.Enum)
	if !ok {
		return x != nil
	}
	return !(e.Kind == record.UnknownKind && e.Number == 0 && len(e.RawPayload) == 0)
}

func (a *EnumAdapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case *record.Enum:
		return v, nil
	case nil:
		return a.unknown, nil
	case string:
		return a.ConstantByName(v)
	default:
		return nil, wrongType(a.RecordID, x)
	}
}

// ConstantByName returns the shared instance for a named constant, or an
// error if name is not a declared constant of this enum.
func (a *EnumAdapter) ConstantByName(name string) (*record.Enum, error) {
	if inst, ok := a.constantsByName[name]; ok {
		return inst, nil
	}
	return nil, &Error{Kind: ErrWrongType, Msg: a.RecordID + " has no constant " + name}
}

// NewValue constructs a value-variant instance for the named field,
// freezing payload through that field's adapter.
func (a *EnumAdapter) NewValue(name string, payload any) (*record.Enum, error) {
	f, ok := a.valuesByName[name]
	if !ok {
		return nil, &Error{Kind: ErrWrongType, Msg: a.RecordID + " has no value field " + name}
	}
	frozen, err := f.Adapter.ToFrozen(payload)
	if err != nil {
		return nil, err
	}
	return &record.Enum{Kind: f.Name, Number: f.Number, Payload: frozen}, nil
}

func (a *EnumAdapter) EncodeBinary(w *wire.Writer, v any) error {
	e, ok := v.(*record.Enum)
	if !ok {
		return wrongType(a.RecordID, v)
	}
	if e.IsUnknown() {
		if len(e.RawPayload) != 0 {
			if err := w.EncodeArrayHeader(2); err != nil {
				return err
			}
			w.EncodeInt32(e.Number)
			w.WriteRaw(e.RawPayload)
			return nil
		}
		w.EncodeInt32(e.Number)
		return nil
	}
	if f, ok := a.valuesByNumber[e.Number]; ok {
		if err := w.EncodeArrayHeader(2); err != nil {
			return err
		}
		w.EncodeInt32(e.Number)
		return f.Adapter.EncodeBinary(w, e.Payload)
	}
	// constant
	w.EncodeInt32(e.Number)
	return nil
}

func (a *EnumAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	if n, ok := wire.EnumPackedNumber(tag); ok {
		payloadTag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return a.decodeValue(r, n, payloadTag)
	}
	switch tag {
	case wire.TagArray2:
		numTag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		num, err := r.DecodeNumber(numTag)
		if err != nil {
			return nil, err
		}
		payloadTag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return a.decodeValue(r, num.Int32(), payloadTag)
	case wire.TagArrayN:
		n, err := r.DecodeArrayHeader(wire.TagArrayN)
		if err != nil {
			return nil, err
		}
		if n != 2 {
			// Not a recognized enum shape; skip and report unknown.
			for i := 0; i < n; i++ {
				t, err := r.ReadByte()
				if err != nil {
					return nil, err
				}
				if err := r.SkipUnused(t); err != nil {
					return nil, err
				}
			}
			return a.unknown, nil
		}
		numTag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		num, err := r.DecodeNumber(numTag)
		if err != nil {
			return nil, err
		}
		payloadTag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return a.decodeValue(r, num.Int32(), payloadTag)
	default:
		num, err := r.DecodeNumber(tag)
		if err != nil {
			return nil, err
		}
		return a.decodeConstant(num.Int32()), nil
	}
}

func (a *EnumAdapter) decodeConstant(number int32) *record.Enum {
	if inst, ok := a.constantsByNumber[number]; ok {
		return inst
	}
	if number == 0 {
		return a.unknown
	}
	return &record.Enum{Kind: record.UnknownKind, Number: number}
}

func (a *EnumAdapter) decodeValue(r *wire.Reader, number int32, payloadTag byte) (any, error) {
	f, ok := a.valuesByNumber[number]
	if !ok {
		raw, err := r.ReadRawToken(payloadTag)
		if err != nil {
			return nil, err
		}
		return &record.Enum{Kind: record.UnknownKind, Number: number, RawPayload: raw}, nil
	}
	payload, err := f.Adapter.DecodeBinary(r, payloadTag)
	if err != nil {
		return nil, err
	}
	return &record.Enum{Kind: f.Name, Number: number, Payload: payload}, nil
}

func (a *EnumAdapter) EncodeJSON(v any, readable bool) any {
	e, ok := v.(*record.Enum)
	if !ok {
		return nil
	}
	if e.IsUnknown() {
		if readable {
			if len(e.RawPayload) == 0 {
				return record.UnknownKind
			}
			return map[string]any{"kind": record.UnknownKind}
		}
		return float64(e.Number)
	}
	if f, ok := a.valuesByNumber[e.Number]; ok {
		payload := f.Adapter.EncodeJSON(e.Payload, readable)
		if readable {
			return map[string]any{"kind": f.Name, "value": payload}
		}
		return []any{float64(e.Number), payload}
	}
	if readable {
		return e.Kind
	}
	return float64(e.Number)
}

func (a *EnumAdapter) DecodeJSON(v any) (any, error) {
	switch vv := v.(type) {
	case nil:
		return a.unknown, nil
	case float64:
		return a.decodeConstant(int32(vv)), nil
	case string:
		if inst, ok := a.constantsByName[vv]; ok {
			return inst, nil
		}
		return &record.Enum{Kind: record.UnknownKind}, nil
	case []any:
		if len(vv) != 2 {
			return a.unknown, nil
		}
		numF, ok := vv[0].(float64)
		if !ok {
			return nil, wrongType("enum variant number", vv[0])
		}
		number := int32(numF)
		f, ok := a.valuesByNumber[number]
		if !ok {
			return &record.Enum{Kind: record.UnknownKind, Number: number}, nil
		}
		payload, err := f.Adapter.DecodeJSON(vv[1])
		if err != nil {
			return nil, err
		}
		return &record.Enum{Kind: f.Name, Number: number, Payload: payload}, nil
	case map[string]any:
		kind, _ := vv["kind"].(string)
		if inst, ok := a.constantsByName[kind]; ok {
			return inst, nil
		}
		if f, ok := a.valuesByName[kind]; ok {
			payload, err := f.Adapter.DecodeJSON(vv["value"])
			if err != nil {
				return nil, err
			}
			return &record.Enum{Kind: f.Name, Number: f.Number, Payload: payload}, nil
		}
		return &record.Enum{Kind: record.UnknownKind}, nil
	default:
		return nil, wrongType(a.RecordID, v)
	}
}
