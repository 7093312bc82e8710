// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package adapter implements the type-adapter system: one Adapter per
// schema type term, each knowing how to produce the type's default, to
// freeze an arbitrary Go value into that type's canonical form, and to
// encode/decode that value to the binary wire format and to both JSON
// flavors. Adapters are built once per schema.Document by package module
// and are safe for concurrent use after that (spec.md §5).
package adapter

import (
	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/wire"
)

// Adapter is the capability set every schema type term provides. It is a
// superset of record.FieldAdapter so that struct and enum field slots,
// which only need the narrower capability, can hold an Adapter directly.
type Adapter interface {
	record.FieldAdapter

	// EncodeBinary writes v's wire representation, including its
	// leading tag byte, to w.
	EncodeBinary(w *wire.Writer, v any) error

	// DecodeBinary reads one value given its already-consumed leading
	// tag byte.
	DecodeBinary(r *wire.Reader, tag byte) (any, error)

	// EncodeJSON renders v as a JSON-marshalable value tree. readable
	// selects the named-field flavor for struct/enum payloads; among
	// primitive adapters only Timestamp uses it.
	EncodeJSON(v any, readable bool) any

	// DecodeJSON parses a JSON-marshalable value tree (as produced by
	// encoding/json.Unmarshal into any) back into the type's canonical
	// form. It accepts both JSON flavors without being told which one
	// produced the input.
	DecodeJSON(v any) (any, error)
}

// Resolver resolves a schema record id to its finalized Adapter. Package
// module implements Resolver; it is the only consumer-facing way a RefType
// is turned into an Adapter, since doing so may require working through a
// cycle of mutually referential records.
type Resolver interface {
	Resolve(recordID string) (Adapter, error)
}

// LazyAdapter defers to another Adapter that may not exist yet when the
// LazyAdapter is first wired into a struct or enum field slot. It exists
// to let package module build field layouts for mutually recursive
// records before every record in the cycle has been finalized: a RefType
// that names a record still being finalized gets a *LazyAdapter, and
// package module calls Set on each one once its target's real Adapter is
// ready (spec.md §4.10, finalize).
type LazyAdapter struct {
	target Adapter
}

// Set wires the real adapter in. Calling it more than once, or calling
// any other method before it's called, is a programming error in the
// finalize algorithm.
func (l *LazyAdapter) Set(a Adapter) { l.target = a }

func (l *LazyAdapter) Default() any { return l.target.Default() }

func (l *LazyAdapter) ToFrozen(x any) (any, error) { return l.target.ToFrozen(x) }

func (l *LazyAdapter) IsNotDefault(x any) bool { return l.target.IsNotDefault(x) }

func (l *LazyAdapter) EncodeBinary(w *wire.Writer, v any) error {
	return l.target.EncodeBinary(w, v)
}

func (l *LazyAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	return l.target.DecodeBinary(r, tag)
}

func (l *LazyAdapter) EncodeJSON(v any, readable bool) any {
	return l.target.EncodeJSON(v, readable)
}

func (l *LazyAdapter) DecodeJSON(v any) (any, error) {
	return l.target.DecodeJSON(v)
}
