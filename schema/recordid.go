// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"strings"
)

// RecordID is a parsed record identifier of the form
// "<module-path>:<Local>(.<Local>)*". The portion before the last '.' (if
// any) identifies the parent record.
type RecordID struct {
	ModulePath string
	Qualified  string
	Parts      []string
}

// ParseRecordID parses id per the record-id grammar in the schema surface
// documentation (§6). It fails with a malformed-record-id error rather
// than panicking, since ids arrive from outside the core.
func ParseRecordID(id string) (RecordID, error) {
	colon := strings.IndexByte(id, ':')
	if colon < 0 {
		return RecordID{}, &Error{Kind: ErrMalformedRecordID, Msg: fmt.Sprintf("%q is missing the module-path separator ':'", id)}
	}
	modulePath := id[:colon]
	qualified := id[colon+1:]
	if qualified == "" {
		return RecordID{}, &Error{Kind: ErrMalformedRecordID, Msg: fmt.Sprintf("%q has an empty qualified name", id)}
	}
	parts := strings.Split(qualified, ".")
	for _, p := range parts {
		if p == "" {
			return RecordID{}, &Error{Kind: ErrMalformedRecordID, Msg: fmt.Sprintf("%q has an empty path segment", id)}
		}
	}
	return RecordID{ModulePath: modulePath, Qualified: qualified, Parts: parts}, nil
}

// LocalName is the final path segment, e.g. "Value" in "a.b:Json.Value".
func (r RecordID) LocalName() string {
	return r.Parts[len(r.Parts)-1]
}

// ParentID returns the enclosing record's id and true, or ("", false) if
// this record id names a top-level record.
func (r RecordID) ParentID() (string, bool) {
	if len(r.Parts) <= 1 {
		return "", false
	}
	parent := strings.Join(r.Parts[:len(r.Parts)-1], ".")
	return r.ModulePath + ":" + parent, true
}

// String reconstructs the original record id text.
func (r RecordID) String() string {
	return r.ModulePath + ":" + r.Qualified
}
