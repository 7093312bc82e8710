// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRecordID(t *testing.T) {
	id, err := ParseRecordID("my.module:Json.Value")
	require.NoError(t, err)
	require.Equal(t, "my.module", id.ModulePath)
	require.Equal(t, "Json.Value", id.Qualified)
	require.Equal(t, []string{"Json", "Value"}, id.Parts)
	require.Equal(t, "Value", id.LocalName())

	parent, ok := id.ParentID()
	require.True(t, ok)
	require.Equal(t, "my.module:Json", parent)
}

func TestParseRecordIDTopLevel(t *testing.T) {
	id, err := ParseRecordID("my.module:Point")
	require.NoError(t, err)
	_, ok := id.ParentID()
	require.False(t, ok)
}

func TestParseRecordIDRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"NoColon", "mod:", "mod:a..b", "mod:."} {
		_, err := ParseRecordID(bad)
		require.Error(t, err, bad)
	}
}

func TestStructSlotCount(t *testing.T) {
	s := &Struct{
		ID:             "m:Point",
		Fields:         []Field{{Name: "x", Number: 0}, {Name: "y", Number: 2}},
		RemovedNumbers: []int32{1},
	}
	require.Equal(t, 3, s.SlotCount())
	require.NoError(t, s.Validate())
}

func TestStructValidateRejectsNumberCollision(t *testing.T) {
	s := &Struct{
		ID:     "m:Bad",
		Fields: []Field{{Name: "a", Number: 0}, {Name: "b", Number: 0}},
	}
	err := s.Validate()
	require.Error(t, err)
	var schemaErr *Error
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, ErrFieldNumberCollision, schemaErr.Kind)
}

func TestStructValidateRejectsRemovedCollision(t *testing.T) {
	s := &Struct{
		ID:             "m:Bad",
		Fields:         []Field{{Name: "a", Number: 1}},
		RemovedNumbers: []int32{1},
	}
	err := s.Validate()
	require.Error(t, err)
	var schemaErr *Error
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, ErrRemovedNumberCollision, schemaErr.Kind)
}

func TestEnumValidateReservesUnknown(t *testing.T) {
	e := &Enum{
		ID:             "m:Status",
		ConstantFields: []ConstantField{{Name: "OK", Number: 0}},
	}
	err := e.Validate()
	require.Error(t, err)
	var schemaErr *Error
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, ErrFieldNumberCollision, schemaErr.Kind)
}

func TestEnumValidateAcceptsDisjointNumbers(t *testing.T) {
	e := &Enum{
		ID:             "m:Status",
		ConstantFields: []ConstantField{{Name: "OK", Number: 1}},
		ValueFields:    []ValueField{{Name: "Error", Number: 2, Type: PrimitiveType{Kind: String}}},
	}
	require.NoError(t, e.Validate())
}
