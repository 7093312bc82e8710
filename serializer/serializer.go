// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package serializer exposes the four operations a caller actually
// needs once a schema has been finalized: encode/decode a value to the
// binary wire format, and encode/decode it to either JSON flavor. It is
// a thin facade over an adapter.Adapter; all the type-specific logic
// lives there.
package serializer

import (
	"encoding/json"

	"github.com/solidcoredata/soiacore/adapter"
	"github.com/solidcoredata/soiacore/wire"
)

// Serializer binds one Adapter to the four encode/decode operations.
// JSON here means encoding/json, used purely as the textual
// number/string/array/object syntax the wire's JSON flavors are
// expressed in; none of this package's own types ever pass through
// encoding/json's struct-tag machinery (see DESIGN.md).
type Serializer struct {
	Adapter adapter.Adapter
}

// New returns a Serializer bound to a.
func New(a adapter.Adapter) *Serializer {
	return &Serializer{Adapter: a}
}

// ToBytes encodes v to the binary wire format.
func (s *Serializer) ToBytes(v any) ([]byte, error) {
	w := wire.NewWriter()
	if err := s.Adapter.EncodeBinary(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// FromBytes decodes one binary-wire value.
func (s *Serializer) FromBytes(b []byte) (any, error) {
	r := wire.NewReader(b)
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return s.Adapter.DecodeBinary(r, tag)
}

// ToJSON renders v as a JSON document in the dense (array-positional) or
// readable (named-field) flavor.
func (s *Serializer) ToJSON(v any, readable bool) (string, error) {
	tree := s.Adapter.EncodeJSON(v, readable)
	out, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FromJSON parses a JSON document produced by either flavor of ToJSON.
// The adapter tree tells dense and readable shapes apart structurally
// (array vs object for struct and enum payloads), so the caller does not
// need to say which flavor it is.
func (s *Serializer) FromJSON(data string) (any, error) {
	var tree any
	if err := json.Unmarshal([]byte(data), &tree); err != nil {
		return nil, err
	}
	return s.Adapter.DecodeJSON(tree)
}

// ToJSONCode is ToJSON in the dense flavor, matching the representation
// used for pre-rendered schema.Constant bodies.
func (s *Serializer) ToJSONCode(v any) (string, error) {
	return s.ToJSON(v, false)
}

// FromJSONCode is FromJSON, named to mirror ToJSONCode at call sites
// that decode a schema.Constant's JSONCode.
func (s *Serializer) FromJSONCode(code string) (any, error) {
	return s.FromJSON(code)
}
