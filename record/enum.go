// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

// Enum is a frozen tagged-sum value: either one of the record's declared
// constants or value-variants, or UNKNOWN. Kind is the variant's
// declared name ("?" for UNKNOWN); Number is its wire number. Payload is
// nil for constants and for the canonical UNKNOWN sentinel.
//
// An UNKNOWN decoded from the binary wire with a number or payload the
// schema doesn't recognize keeps that number in Number and the raw
// payload token in RawPayload, so re-encoding it to binary reproduces the
// original bytes instead of collapsing to the generic sentinel (spec.md
// §4.8, Unrecognized-data preservation). JSON does not carry RawPayload:
// dense JSON emits only Number, readable JSON only the "?" kind, and
// decoding an unrecognized JSON variant keeps at most its number, never
// its payload.
type Enum struct {
	Kind    string
	Number  int32
	Payload any

	RawPayload []byte // set only for a preserved-unknown value variant
}

// UnknownKind is the reserved variant name every enum carries at wire
// number 0.
const UnknownKind = "?"

// IsUnknown reports whether e is the UNKNOWN variant, recognized or not.
func (e *Enum) IsUnknown() bool {
	return e == nil || e.Kind == UnknownKind
}

// Equal compares two enum values by kind, number, and payload. Two
// UNKNOWN values are equal only when they preserve the same raw number
// and payload; the canonical zero-value UNKNOWN (no preserved data)
// compares equal to itself and to any other unknown carrying no data.
func (e *Enum) Equal(o *Enum) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	if e.Kind != o.Kind || e.Number != o.Number {
		return false
	}
	if len(e.RawPayload) != 0 || len(o.RawPayload) != 0 {
		return bytesEqual(e.RawPayload, o.RawPayload)
	}
	return ValueEqual(e.Payload, o.Payload)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
