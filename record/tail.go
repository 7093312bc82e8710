// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record holds the frozen/mutable value shapes produced by the
// adapter package: structs, enums, and keyed arrays. It has no knowledge
// of the wire codec or JSON; it is driven entirely by the adapter tree,
// which is why its only dependency back onto a type adapter is the
// narrow FieldAdapter capability below (kept here, rather than importing
// package adapter, to avoid a cycle — adapter constructs and manipulates
// record values).
package record

import "reflect"

// Tail holds data an adapter decoded but did not recognize: either
// removed-slot payloads within a struct's known slot range, or entries
// past the end of it. It is produced only by decode paths and is never
// mutated after construction, which is what lets a frozen value and any
// value derived from it through an untouched mutable builder share the
// same *Tail by reference (spec.md §3, Ownership).
type Tail struct {
	BinaryBySlot   map[int][]byte
	BinaryTrailing [][]byte
	JSONBySlot     map[int]any
	JSONTrailing   []any
}

// IsEmpty reports whether t carries no unrecognized data at all,
// treating a nil *Tail as empty.
func (t *Tail) IsEmpty() bool {
	return t == nil ||
		(len(t.BinaryBySlot) == 0 && len(t.BinaryTrailing) == 0 &&
			len(t.JSONBySlot) == 0 && len(t.JSONTrailing) == 0)
}

// Equal compares two tails, including nil ones, for the purposes of
// frozen-value equality.
func (t *Tail) Equal(o *Tail) bool {
	if t.IsEmpty() || o.IsEmpty() {
		return t.IsEmpty() == o.IsEmpty()
	}
	return reflect.DeepEqual(t.BinaryBySlot, o.BinaryBySlot) &&
		reflect.DeepEqual(t.BinaryTrailing, o.BinaryTrailing) &&
		reflect.DeepEqual(t.JSONBySlot, o.JSONBySlot) &&
		reflect.DeepEqual(t.JSONTrailing, o.JSONTrailing)
}
