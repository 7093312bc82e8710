// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

// ErrorKind classifies a schema validation failure. Apart from
// ParseRecordID's malformed-record-id error, schema errors are raised by
// the Validate methods while a module is being built; once a module has
// finished initializing, its serializers carry no schema errors at
// runtime.
type ErrorKind int

const (
	ErrDuplicateRecordID ErrorKind = iota
	ErrMissingRecordRef
	ErrFieldNumberCollision
	ErrRemovedNumberCollision
	ErrMalformedRecordID
)

func (k ErrorKind) String() string {
	switch k {
	case ErrDuplicateRecordID:
		return "duplicate record id"
	case ErrMissingRecordRef:
		return "missing record reference"
	case ErrFieldNumberCollision:
		return "field number collision"
	case ErrRemovedNumberCollision:
		return "removed number collision"
	case ErrMalformedRecordID:
		return "malformed record id"
	default:
		return "schema error"
	}
}

// Error is the typed error raised for every schema problem.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "schema: " + e.Kind.String()
	}
	return "schema: " + e.Kind.String() + ": " + e.Msg
}
