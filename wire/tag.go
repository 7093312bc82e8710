// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements the single-byte-tagged, variable-length binary
// codec shared by every binding of the serialization framework. Every
// value on the wire starts with one tag byte that selects how the
// remaining bytes (if any) are to be read.
package wire

// Tag bytes. The first byte of every token selects its encoding; the
// comment on each constant below gives its meaning.
const (
	// TagLiteralMax is the largest tag value that is itself the decoded
	// integer (tags 0..TagLiteralMax are literal small non-negative ints).
	TagLiteralMax = 231

	TagUint16      = 232 // uint16 little-endian follows
	TagUint32      = 233 // uint32 little-endian follows
	TagUint64      = 234 // uint64 little-endian follows
	TagNegUint8    = 235 // uint8 follows, value = byte-256, range -256..-1
	TagNegUint16   = 236 // uint16 follows, value = value-65536, range -65536..-1
	TagInt32       = 237 // int32 little-endian follows
	TagInt64       = 238 // int64 little-endian follows
	TagTimestamp64 = 239 // int64 little-endian follows, used for timestamps

	TagFloat32 = 240 // float32 little-endian
	TagFloat64 = 241 // float64 little-endian

	TagEmptyString = 242
	TagString      = 243 // length prefix + UTF-8 bytes
	TagEmptyBytes  = 244
	TagBytes       = 245 // length prefix + raw bytes

	TagEmptyArray = 246
	TagArray1     = 247 // one element follows, no length prefix
	TagArray2     = 248 // two elements follow
	TagArray3     = 249 // three elements follow
	TagArrayN     = 250 // length prefix + N elements

	// TagEnumPacked1..TagEnumPacked4 embed a small value-variant number
	// (1..4) directly in the tag byte; the payload token follows. The
	// writer in this package never emits these (it always uses the
	// two-element array form for value variants, per the reference
	// behavior), but the reader tolerates them for cross-implementation
	// compatibility.
	TagEnumPacked1 = 251
	TagEnumPacked2 = 252
	TagEnumPacked3 = 253
	TagEnumPacked4 = 254
)

// EnumPackedNumber reports the variant number embedded in a compact enum
// tag, if tag is one of TagEnumPacked1..TagEnumPacked4.
func EnumPackedNumber(tag byte) (int32, bool) {
	switch tag {
	case TagEnumPacked1:
		return 1, true
	case TagEnumPacked2:
		return 2, true
	case TagEnumPacked3:
		return 3, true
	case TagEnumPacked4:
		return 4, true
	default:
		return 0, false
	}
}
