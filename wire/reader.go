// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// NumberKind classifies the value held in a Number.
type NumberKind int

const (
	IntKind NumberKind = iota
	UintKind
	FloatKind
)

// Number is a decoded numeric token before it has been clamped or
// converted to a particular target type. Wire tokens 234 (uint64) can
// exceed the range of int64, so the raw kind is kept separate from the
// other integer tags instead of always widening to int64.
type Number struct {
	Kind NumberKind
	I    int64
	U    uint64
	F    float64
}

func floatToInt64Saturating(f float64) int64 {
	f = math.Trunc(f)
	switch {
	case math.IsNaN(f):
		return 0
	case f <= math.MinInt64:
		return math.MinInt64
	case f >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(f)
	}
}

func clampToInt32(i64 int64) int32 {
	switch {
	case i64 > math.MaxInt32:
		return math.MaxInt32
	case i64 < math.MinInt32:
		return math.MinInt32
	default:
		return int32(i64)
	}
}

// Int32 truncates floats toward zero and clamps to the int32 range.
func (n Number) Int32() int32 {
	return clampToInt32(n.Int64())
}

// Int64 truncates floats toward zero and clamps uint64 values that
// overflow int64.
func (n Number) Int64() int64 {
	switch n.Kind {
	case IntKind:
		return n.I
	case UintKind:
		if n.U > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(n.U)
	case FloatKind:
		return floatToInt64Saturating(n.F)
	default:
		return 0
	}
}

// Uint64 clamps negative values to 0 and saturates floats outside range.
func (n Number) Uint64() uint64 {
	switch n.Kind {
	case IntKind:
		if n.I < 0 {
			return 0
		}
		return uint64(n.I)
	case UintKind:
		return n.U
	case FloatKind:
		f := math.Trunc(n.F)
		if f <= 0 || math.IsNaN(f) {
			return 0
		}
		if f >= math.MaxUint64 {
			return math.MaxUint64
		}
		return uint64(f)
	default:
		return 0
	}
}

// Float64 converts integers to float64 with IEEE-754 rounding.
func (n Number) Float64() float64 {
	switch n.Kind {
	case IntKind:
		return float64(n.I)
	case UintKind:
		return float64(n.U)
	case FloatKind:
		return n.F
	default:
		return 0
	}
}

// Float32 is Float64 narrowed to float32.
func (n Number) Float32() float32 {
	return float32(n.Float64())
}

// Reader decodes wire-tagged tokens from an in-memory buffer supplied by
// the caller; the core never performs its own I/O.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for decoding. The Reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// ReadByte reads and consumes the next raw byte, typically a tag.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, &Error{Kind: ErrEOF}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, &Error{Kind: ErrEOF}
	}
	return r.buf[r.pos], nil
}

func (r *Reader) readN(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, &Error{Kind: ErrEOF}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadLengthPrefix reads the variable-width length prefix written by
// Writer.WriteLengthPrefix.
func (r *Reader) ReadLengthPrefix() (int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b <= TagLiteralMax:
		return int(b), nil
	case b == TagUint16:
		raw, err := r.readN(2)
		if err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint16(raw)), nil
	case b == TagUint32:
		raw, err := r.readN(4)
		if err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint32(raw)), nil
	default:
		return 0, &Error{Kind: ErrUnsupportedTag, Msg: fmt.Sprintf("invalid length-prefix tag %d", b)}
	}
}

// DecodeNumber reads the remaining bytes of a numeric token whose tag has
// already been consumed by the caller.
func (r *Reader) DecodeNumber(tag byte) (Number, error) {
	switch {
	case tag <= TagLiteralMax:
		return Number{Kind: IntKind, I: int64(tag)}, nil
	case tag == TagUint16:
		raw, err := r.readN(2)
		if err != nil {
			return Number{}, err
		}
		return Number{Kind: IntKind, I: int64(binary.LittleEndian.Uint16(raw))}, nil
	case tag == TagUint32:
		raw, err := r.readN(4)
		if err != nil {
			return Number{}, err
		}
		return Number{Kind: IntKind, I: int64(binary.LittleEndian.Uint32(raw))}, nil
	case tag == TagUint64:
		raw, err := r.readN(8)
		if err != nil {
			return Number{}, err
		}
		return Number{Kind: UintKind, U: binary.LittleEndian.Uint64(raw)}, nil
	case tag == TagNegUint8:
		b, err := r.ReadByte()
		if err != nil {
			return Number{}, err
		}
		return Number{Kind: IntKind, I: int64(b) - 256}, nil
	case tag == TagNegUint16:
		raw, err := r.readN(2)
		if err != nil {
			return Number{}, err
		}
		return Number{Kind: IntKind, I: int64(binary.LittleEndian.Uint16(raw)) - 65536}, nil
	case tag == TagInt32:
		raw, err := r.readN(4)
		if err != nil {
			return Number{}, err
		}
		return Number{Kind: IntKind, I: int64(int32(binary.LittleEndian.Uint32(raw)))}, nil
	case tag == TagInt64 || tag == TagTimestamp64:
		raw, err := r.readN(8)
		if err != nil {
			return Number{}, err
		}
		return Number{Kind: IntKind, I: int64(binary.LittleEndian.Uint64(raw))}, nil
	case tag == TagFloat32:
		raw, err := r.readN(4)
		if err != nil {
			return Number{}, err
		}
		bits := binary.LittleEndian.Uint32(raw)
		return Number{Kind: FloatKind, F: float64(math.Float32frombits(bits))}, nil
	case tag == TagFloat64:
		raw, err := r.readN(8)
		if err != nil {
			return Number{}, err
		}
		bits := binary.LittleEndian.Uint64(raw)
		return Number{Kind: FloatKind, F: math.Float64frombits(bits)}, nil
	default:
		return Number{}, &Error{Kind: ErrUnsupportedTag, Msg: fmt.Sprintf("tag %d is not a number token", tag)}
	}
}

// DecodeBool interprets any number token as a boolean: non-zero is true.
func (r *Reader) DecodeBool(tag byte) (bool, error) {
	n, err := r.DecodeNumber(tag)
	if err != nil {
		return false, err
	}
	return n.Int64() != 0, nil
}

// DecodeString reads the remaining bytes of a string token.
func (r *Reader) DecodeString(tag byte) (string, error) {
	switch tag {
	case TagEmptyString:
		return "", nil
	case TagString:
		n, err := r.ReadLengthPrefix()
		if err != nil {
			return "", err
		}
		raw, err := r.readN(n)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		return "", &Error{Kind: ErrUnsupportedTag, Msg: fmt.Sprintf("tag %d is not a string token", tag)}
	}
}

// DecodeBytes reads the remaining bytes of a bytes token. The returned
// slice is a copy; it does not alias the Reader's backing buffer.
func (r *Reader) DecodeBytes(tag byte) ([]byte, error) {
	switch tag {
	case TagEmptyBytes:
		return []byte{}, nil
	case TagBytes:
		n, err := r.ReadLengthPrefix()
		if err != nil {
			return nil, err
		}
		raw, err := r.readN(n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, raw)
		return out, nil
	default:
		return nil, &Error{Kind: ErrUnsupportedTag, Msg: fmt.Sprintf("tag %d is not a bytes token", tag)}
	}
}

// DecodeArrayHeader returns the element count of an array token.
func (r *Reader) DecodeArrayHeader(tag byte) (int, error) {
	switch tag {
	case TagEmptyArray:
		return 0, nil
	case TagArray1:
		return 1, nil
	case TagArray2:
		return 2, nil
	case TagArray3:
		return 3, nil
	case TagArrayN:
		return r.ReadLengthPrefix()
	default:
		return 0, &Error{Kind: ErrUnsupportedTag, Msg: fmt.Sprintf("tag %d is not an array token", tag)}
	}
}

// SkipUnused consumes exactly one token whose tag has already been read,
// recursing across composite (array) tags. It is used to keep the stream
// aligned past fields the current schema no longer knows about.
func (r *Reader) SkipUnused(tag byte) error {
	if tag <= TagLiteralMax {
		return nil
	}
	switch tag {
	case TagUint16, TagNegUint16:
		_, err := r.readN(2)
		return err
	case TagUint32, TagInt32:
		_, err := r.readN(4)
		return err
	case TagUint64, TagInt64, TagTimestamp64:
		_, err := r.readN(8)
		return err
	case TagNegUint8:
		_, err := r.readN(1)
		return err
	case TagFloat32:
		_, err := r.readN(4)
		return err
	case TagFloat64:
		_, err := r.readN(8)
		return err
	case TagEmptyString, TagEmptyBytes, TagEmptyArray:
		return nil
	case TagString, TagBytes:
		n, err := r.ReadLengthPrefix()
		if err != nil {
			return err
		}
		_, err = r.readN(n)
		return err
	case TagArray1:
		return r.skipOneToken()
	case TagArray2:
		if err := r.skipOneToken(); err != nil {
			return err
		}
		return r.skipOneToken()
	case TagArray3:
		for i := 0; i < 3; i++ {
			if err := r.skipOneToken(); err != nil {
				return err
			}
		}
		return nil
	case TagArrayN:
		n, err := r.ReadLengthPrefix()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := r.skipOneToken(); err != nil {
				return err
			}
		}
		return nil
	case TagEnumPacked1, TagEnumPacked2, TagEnumPacked3, TagEnumPacked4:
		return r.skipOneToken()
	default:
		return &Error{Kind: ErrUnsupportedTag, Msg: fmt.Sprintf("unsupported wire tag %d", tag)}
	}
}

func (r *Reader) skipOneToken() error {
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}
	return r.SkipUnused(tag)
}

// ReadRawToken returns the raw bytes of one token, including the tag
// byte which the caller must already have consumed via ReadByte. Used to
// preserve unrecognized data for lossless re-emission.
func (r *Reader) ReadRawToken(tag byte) ([]byte, error) {
	start := r.pos - 1
	if start < 0 {
		return nil, &Error{Kind: ErrEOF}
	}
	if err := r.SkipUnused(tag); err != nil {
		return nil, err
	}
	out := make([]byte, r.pos-start)
	copy(out, r.buf[start:r.pos])
	return out, nil
}
