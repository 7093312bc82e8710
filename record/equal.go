// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import "bytes"

// ValueEqual compares two field values the way frozen equality requires:
// recursively for structs, enums and arrays, by content for byte slices,
// and by == for everything else. Interface values holding []byte are not
// Go-comparable with ==, which is why this helper exists instead of a
// plain a == b.
func ValueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case *Struct:
		bv, ok := b.(*Struct)
		return ok && av.Equal(bv)
	case *Enum:
		bv, ok := b.(*Enum)
		return ok && av.Equal(bv)
	case *Array:
		bv, ok := b.(*Array)
		return ok && av.Equal(bv)
	default:
		return a == b
	}
}
