// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import "fmt"

// ErrorKind classifies adapter-level failures.
type ErrorKind int

const (
	// ErrWrongType means ToFrozen or DecodeJSON was handed a Go value
	// that does not match the adapter's type.
	ErrWrongType ErrorKind = iota
	// ErrUnresolvedRef means a RefType's target record id was never
	// registered with the module that finalized this adapter tree.
	ErrUnresolvedRef
	// ErrMalformedJSON means a JSON value tree had the wrong shape for
	// the adapter decoding it (wrong array length, missing key, etc).
	ErrMalformedJSON
)

func (k ErrorKind) String() string {
	switch k {
	case ErrWrongType:
		return "wrong type"
	case ErrUnresolvedRef:
		return "unresolved ref"
	case ErrMalformedJSON:
		return "malformed json"
	default:
		return "unknown"
	}
}

// Error is the error type every adapter in this package returns.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Msg }

func wrongType(want string, got any) error {
	return &Error{Kind: ErrWrongType, Msg: fmt.Sprintf("expected %s; found %T", want, got)}
}
