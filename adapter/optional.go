// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"github.com/solidcoredata/soiacore/wire"
)

// OptionalAdapter wraps Inner with a nullable contract. The absent case
// is carried as the Go nil at the value level; on the wire it is the
// zero tag (see EncodeBinary), and in JSON it is null. Present values
// are delegated to Inner.
type OptionalAdapter struct {
	Inner Adapter
}

// NewOptional wraps inner with optional-presence semantics.
func NewOptional(inner Adapter) *OptionalAdapter {
	return &OptionalAdapter{Inner: inner}
}

func (o *OptionalAdapter) Default() any { return nil }

func (o *OptionalAdapter) IsNotDefault(x any) bool { return x != nil }

func (o *OptionalAdapter) ToFrozen(x any) (any, error) {
	if x == nil {
		return nil, nil
	}
	return o.Inner.ToFrozen(x)
}

// EncodeBinary writes tag 0 for an absent value. A trailing absent
// struct field is elided from the slot stream entirely rather than
// reaching here, but a field sandwiched between two present ones still
// needs its own wire token, so the zero tag is this adapter's to own.
func (o *OptionalAdapter) EncodeBinary(w *wire.Writer, v any) error {
	if v == nil {
		w.WriteTag(0)
		return nil
	}
	return o.Inner.EncodeBinary(w, v)
}

func (o *OptionalAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	if tag == 0 {
		return nil, nil
	}
	return o.Inner.DecodeBinary(r, tag)
}

func (o *OptionalAdapter) EncodeJSON(v any, readable bool) any {
	if v == nil {
		return nil
	}
	return o.Inner.EncodeJSON(v, readable)
}

func (o *OptionalAdapter) DecodeJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return o.Inner.DecodeJSON(v)
}
