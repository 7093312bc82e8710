// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"encoding/base64"
	"strconv"
)

// maxExactFloat64Int is the largest magnitude a float64 can hold without
// losing integer precision (2^53 - 1); int64/uint64 values within
// [-maxExactFloat64Int, maxExactFloat64Int] round-trip exactly through a
// JSON number, so only values outside that range need string encoding.
const maxExactFloat64Int = 1<<53 - 1

func formatInt64(v int64) string   { return strconv.FormatInt(v, 10) }
func formatUint64(v uint64) string { return strconv.FormatUint(v, 10) }

func parseInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &Error{Kind: ErrMalformedJSON, Msg: "not an int64: " + s}
	}
	return v, nil
}

func parseUint64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &Error{Kind: ErrMalformedJSON, Msg: "not a uint64: " + s}
	}
	return v, nil
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &Error{Kind: ErrMalformedJSON, Msg: "not base64: " + s}
	}
	return b, nil
}
