// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Writer accumulates wire-tagged tokens into a byte buffer. It has no
// notion of record or enum shape; callers (the adapter package) decide
// which Encode* method to call for a given schema type.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated wire bytes. The slice is owned by the
// Writer; copy it before mutating if the Writer will be reused.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteTag appends a single raw tag byte.
func (w *Writer) WriteTag(tag byte) {
	w.buf.WriteByte(tag)
}

// WriteRaw appends a previously captured raw token verbatim, used to
// re-emit unrecognized tail data.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.Write(b)
}

// WriteLengthPrefix writes the variable-width length prefix: a single
// byte for n <= TagLiteralMax, TagUint16 + a
// uint16 for n < 1<<16, TagUint32 + a uint32 for n < 1<<32, and an error
// beyond that.
func (w *Writer) WriteLengthPrefix(n int) error {
	switch {
	case n < 0:
		return &Error{Kind: ErrLengthOverflow, Msg: fmt.Sprintf("negative length %d", n)}
	case n <= TagLiteralMax:
		w.buf.WriteByte(byte(n))
	case n <= math.MaxUint16:
		w.buf.WriteByte(TagUint16)
		w.putUint16(uint16(n))
	case int64(n) <= math.MaxUint32:
		w.buf.WriteByte(TagUint32)
		w.putUint32(uint32(n))
	default:
		return &Error{Kind: ErrLengthOverflow, Msg: fmt.Sprintf("length %d does not fit in 32 bits", n)}
	}
	return nil
}

func (w *Writer) putUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) putUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) putUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// EncodeInt32 writes v using the narrowest tag range that represents it.
func (w *Writer) EncodeInt32(v int32) {
	switch {
	case v >= 0 && v <= TagLiteralMax:
		w.buf.WriteByte(byte(v))
	case v >= 0 && v <= math.MaxUint16:
		w.buf.WriteByte(TagUint16)
		w.putUint16(uint16(v))
	case v >= 0:
		w.buf.WriteByte(TagUint32)
		w.putUint32(uint32(v))
	case v >= -256:
		w.buf.WriteByte(TagNegUint8)
		w.buf.WriteByte(byte(v + 256))
	case v >= -65536:
		w.buf.WriteByte(TagNegUint16)
		w.putUint16(uint16(v + 65536))
	default:
		w.buf.WriteByte(TagInt32)
		w.putUint32(uint32(v))
	}
}

// EncodeInt64 writes v, falling back to the raw 8-byte int64 tag only
// when it does not fit in the int32 encoding.
func (w *Writer) EncodeInt64(v int64) {
	w.encodeInt64Tagged(v, TagInt64)
}

// EncodeTimestamp writes v (Unix milliseconds) like EncodeInt64, but uses
// TagTimestamp64 instead of TagInt64 for the raw 8-byte fallback.
func (w *Writer) EncodeTimestamp(v int64) {
	w.encodeInt64Tagged(v, TagTimestamp64)
}

func (w *Writer) encodeInt64Tagged(v int64, rawTag byte) {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		w.EncodeInt32(int32(v))
		return
	}
	w.buf.WriteByte(rawTag)
	w.putUint64(uint64(v))
}

// EncodeUint64 writes v using the narrowest tag range that represents it.
func (w *Writer) EncodeUint64(v uint64) {
	switch {
	case v <= TagLiteralMax:
		w.buf.WriteByte(byte(v))
	case v <= math.MaxUint16:
		w.buf.WriteByte(TagUint16)
		w.putUint16(uint16(v))
	case v <= math.MaxUint32:
		w.buf.WriteByte(TagUint32)
		w.putUint32(uint32(v))
	default:
		w.buf.WriteByte(TagUint64)
		w.putUint64(v)
	}
}

// EncodeBool writes v as the literal integer 1 or 0.
func (w *Writer) EncodeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// EncodeFloat32 writes v. Exact zero (either sign) is written as the
// single byte literal zero, matching EncodeFloat64.
func (w *Writer) EncodeFloat32(v float32) {
	if v == 0 {
		w.buf.WriteByte(0)
		return
	}
	w.buf.WriteByte(TagFloat32)
	w.putUint32(math.Float32bits(v))
}

// EncodeFloat64 writes v. Exact zero (either sign) is written as the
// single byte literal zero.
func (w *Writer) EncodeFloat64(v float64) {
	if v == 0 {
		w.buf.WriteByte(0)
		return
	}
	w.buf.WriteByte(TagFloat64)
	w.putUint64(math.Float64bits(v))
}

// EncodeString writes s.
func (w *Writer) EncodeString(s string) error {
	if len(s) == 0 {
		w.buf.WriteByte(TagEmptyString)
		return nil
	}
	w.buf.WriteByte(TagString)
	if err := w.WriteLengthPrefix(len(s)); err != nil {
		return err
	}
	w.buf.WriteString(s)
	return nil
}

// EncodeBytes writes b.
func (w *Writer) EncodeBytes(b []byte) error {
	if len(b) == 0 {
		w.buf.WriteByte(TagEmptyBytes)
		return nil
	}
	w.buf.WriteByte(TagBytes)
	if err := w.WriteLengthPrefix(len(b)); err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

// EncodeArrayHeader writes the tag (and, for n >= 4, the length prefix)
// for an array of n elements. The caller is responsible for writing the
// n element tokens that follow.
func (w *Writer) EncodeArrayHeader(n int) error {
	switch n {
	case 0:
		w.buf.WriteByte(TagEmptyArray)
		return nil
	case 1:
		w.buf.WriteByte(TagArray1)
		return nil
	case 2:
		w.buf.WriteByte(TagArray2)
		return nil
	case 3:
		w.buf.WriteByte(TagArray3)
		return nil
	default:
		w.buf.WriteByte(TagArrayN)
		return w.WriteLengthPrefix(n)
	}
}
