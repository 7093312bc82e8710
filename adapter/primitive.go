// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"time"

	"github.com/solidcoredata/soiacore/wire"
)

// Bool, Int32, Int64, Uint64, Float32, Float64, String, Bytes, and
// Timestamp are the shared singleton adapters for the nine primitive
// kinds. They carry no state, so one instance covers every field of a
// given kind across every schema.Document a process loads.
var (
	Bool      Adapter = boolAdapter{}
	Int32     Adapter = int32Adapter{}
	Int64     Adapter = int64Adapter{}
	Uint64    Adapter = uint64Adapter{}
	Float32   Adapter = float32Adapter{}
	Float64   Adapter = float64Adapter{}
	String    Adapter = stringAdapter{}
	Bytes     Adapter = bytesAdapter{}
	Timestamp Adapter = timestampAdapter{}
)

type boolAdapter struct{}

func (boolAdapter) Default() any            { return false }
func (boolAdapter) IsNotDefault(x any) bool { return x != false }
func (boolAdapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case bool:
		return v, nil
	case nil:
		return false, nil
	default:
		return nil, wrongType("bool", x)
	}
}
func (boolAdapter) EncodeBinary(w *wire.Writer, v any) error {
	w.EncodeBool(v.(bool))
	return nil
}
func (boolAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	return r.DecodeBool(tag)
}
func (boolAdapter) EncodeJSON(v any, _ bool) any { return v.(bool) }
func (boolAdapter) DecodeJSON(v any) (any, error) {
	switch n := v.(type) {
	case bool:
		return n, nil
	case float64:
		return n != 0, nil
	case nil:
		return false, nil
	default:
		return nil, wrongType("bool", v)
	}
}

type int32Adapter struct{}

func (int32Adapter) Default() any            { return int32(0) }
func (int32Adapter) IsNotDefault(x any) bool { return x != int32(0) }
func (int32Adapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case int32:
		return v, nil
	case int:
		return int32(v), nil
	case nil:
		return int32(0), nil
	default:
		return nil, wrongType("int32", x)
	}
}
func (int32Adapter) EncodeBinary(w *wire.Writer, v any) error {
	w.EncodeInt32(v.(int32))
	return nil
}
func (int32Adapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeNumber(tag)
	if err != nil {
		return nil, err
	}
	return n.Int32(), nil
}
func (int32Adapter) EncodeJSON(v any, _ bool) any { return float64(v.(int32)) }
func (int32Adapter) DecodeJSON(v any) (any, error) {
	f, ok := v.(float64)
	if !ok {
		if v == nil {
			return int32(0), nil
		}
		return nil, wrongType("number", v)
	}
	return int32(f), nil
}

type int64Adapter struct{}

func (int64Adapter) Default() any            { return int64(0) }
func (int64Adapter) IsNotDefault(x any) bool { return x != int64(0) }
func (int64Adapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case nil:
		return int64(0), nil
	default:
		return nil, wrongType("int64", x)
	}
}
func (int64Adapter) EncodeBinary(w *wire.Writer, v any) error {
	w.EncodeInt64(v.(int64))
	return nil
}
func (int64Adapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeNumber(tag)
	if err != nil {
		return nil, err
	}
	return n.Int64(), nil
}

// EncodeJSON renders int64 as a JSON number when it fits a float64
// without losing precision, and as a decimal string otherwise, since
// 64-bit integers outside that range don't round-trip losslessly through
// a float64 JSON decoder.
func (int64Adapter) EncodeJSON(v any, _ bool) any {
	n := v.(int64)
	if n >= -maxExactFloat64Int && n <= maxExactFloat64Int {
		return float64(n)
	}
	return formatInt64(n)
}
func (int64Adapter) DecodeJSON(v any) (any, error) {
	switch n := v.(type) {
	case string:
		return parseInt64(n)
	case float64:
		return int64(n), nil
	case nil:
		return int64(0), nil
	default:
		return nil, wrongType("int64", v)
	}
}

type uint64Adapter struct{}

func (uint64Adapter) Default() any            { return uint64(0) }
func (uint64Adapter) IsNotDefault(x any) bool { return x != uint64(0) }
func (uint64Adapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case uint64:
		return v, nil
	case int:
		return uint64(v), nil
	case nil:
		return uint64(0), nil
	default:
		return nil, wrongType("uint64", x)
	}
}
func (uint64Adapter) EncodeBinary(w *wire.Writer, v any) error {
	w.EncodeUint64(v.(uint64))
	return nil
}
func (uint64Adapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeNumber(tag)
	if err != nil {
		return nil, err
	}
	return n.Uint64(), nil
}

// EncodeJSON renders uint64 as a JSON number when it fits a float64
// without losing precision, and as a decimal string otherwise.
func (uint64Adapter) EncodeJSON(v any, _ bool) any {
	n := v.(uint64)
	if n <= maxExactFloat64Int {
		return float64(n)
	}
	return formatUint64(n)
}
func (uint64Adapter) DecodeJSON(v any) (any, error) {
	switch n := v.(type) {
	case string:
		return parseUint64(n)
	case float64:
		return uint64(n), nil
	case nil:
		return uint64(0), nil
	default:
		return nil, wrongType("uint64", v)
	}
}

type float32Adapter struct{}

func (float32Adapter) Default() any            { return float32(0) }
func (float32Adapter) IsNotDefault(x any) bool { return x != float32(0) }
func (float32Adapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	case nil:
		return float32(0), nil
	default:
		return nil, wrongType("float32", x)
	}
}
func (float32Adapter) EncodeBinary(w *wire.Writer, v any) error {
	w.EncodeFloat32(v.(float32))
	return nil
}
func (float32Adapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeNumber(tag)
	if err != nil {
		return nil, err
	}
	return n.Float32(), nil
}
func (float32Adapter) EncodeJSON(v any, _ bool) any { return float64(v.(float32)) }
func (float32Adapter) DecodeJSON(v any) (any, error) {
	f, ok := v.(float64)
	if !ok {
		if v == nil {
			return float32(0), nil
		}
		return nil, wrongType("number", v)
	}
	return float32(f), nil
}

type float64Adapter struct{}

func (float64Adapter) Default() any            { return float64(0) }
func (float64Adapter) IsNotDefault(x any) bool { return x != float64(0) }
func (float64Adapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case nil:
		return float64(0), nil
	default:
		return nil, wrongType("float64", x)
	}
}
func (float64Adapter) EncodeBinary(w *wire.Writer, v any) error {
	w.EncodeFloat64(v.(float64))
	return nil
}
func (float64Adapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeNumber(tag)
	if err != nil {
		return nil, err
	}
	return n.Float64(), nil
}
func (float64Adapter) EncodeJSON(v any, _ bool) any { return v.(float64) }
func (float64Adapter) DecodeJSON(v any) (any, error) {
	f, ok := v.(float64)
	if !ok {
		if v == nil {
			return float64(0), nil
		}
		return nil, wrongType("number", v)
	}
	return f, nil
}

type stringAdapter struct{}

func (stringAdapter) Default() any            { return "" }
func (stringAdapter) IsNotDefault(x any) bool { return x != "" }
func (stringAdapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return nil, wrongType("string", x)
	}
}
func (stringAdapter) EncodeBinary(w *wire.Writer, v any) error {
	return w.EncodeString(v.(string))
}
func (stringAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	return r.DecodeString(tag)
}
func (stringAdapter) EncodeJSON(v any, _ bool) any { return v.(string) }
func (stringAdapter) DecodeJSON(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	default:
		return nil, wrongType("string", v)
	}
}

type bytesAdapter struct{}

func (bytesAdapter) Default() any            { return []byte{} }
func (bytesAdapter) IsNotDefault(x any) bool { return len(x.([]byte)) != 0 }
func (bytesAdapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case []byte:
		if v == nil {
			return []byte{}, nil
		}
		return v, nil
	case nil:
		return []byte{}, nil
	default:
		return nil, wrongType("[]byte", x)
	}
}
func (bytesAdapter) EncodeBinary(w *wire.Writer, v any) error {
	return w.EncodeBytes(v.([]byte))
}
func (bytesAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	return r.DecodeBytes(tag)
}

// EncodeJSON renders bytes as standard base64, matching the textual
// flavor used by both JSON flavors for byte payloads.
func (bytesAdapter) EncodeJSON(v any, _ bool) any {
	return encodeBase64(v.([]byte))
}
func (bytesAdapter) DecodeJSON(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return decodeBase64(s)
	case nil:
		return []byte{}, nil
	default:
		return nil, wrongType("base64 string", v)
	}
}

type timestampAdapter struct{}

func (timestampAdapter) Default() any            { return int64(0) }
func (timestampAdapter) IsNotDefault(x any) bool { return x != int64(0) }
func (timestampAdapter) ToFrozen(x any) (any, error) {
	switch v := x.(type) {
	case int64:
		return v, nil
	case nil:
		return int64(0), nil
	default:
		return nil, wrongType("int64 (unix millis)", x)
	}
}
func (timestampAdapter) EncodeBinary(w *wire.Writer, v any) error {
	w.EncodeTimestamp(v.(int64))
	return nil
}
func (timestampAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeNumber(tag)
	if err != nil {
		return nil, err
	}
	return n.Int64(), nil
}
// EncodeJSON renders a timestamp as the bare unix-millis integer in
// dense mode, and as an object carrying both the unix-millis integer and
// an ISO 8601 UTC rendering for human readability in readable mode.
func (timestampAdapter) EncodeJSON(v any, readable bool) any {
	n := v.(int64)
	if readable {
		return map[string]any{
			"unix_millis": float64(n),
			"_formatted":  time.UnixMilli(n).UTC().Format("2006-01-02T15:04:05.000Z"),
		}
	}
	return float64(n)
}
func (timestampAdapter) DecodeJSON(v any) (any, error) {
	switch n := v.(type) {
	case map[string]any:
		ms, ok := n["unix_millis"].(float64)
		if !ok {
			return nil, wrongType("unix_millis", n["unix_millis"])
		}
		return int64(ms), nil
	case string:
		return parseInt64(n)
	case float64:
		return int64(n), nil
	case nil:
		return int64(0), nil
	default:
		return nil, wrongType("int64 (unix millis)", v)
	}
}
