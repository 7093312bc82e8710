// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema defines the schema surface the core consumes: record
// definitions, typed field/method/constant signatures, and type terms.
// The source-to-schema compilation step is out of scope (§1 of
// spec.md) — values of this package's types are expected to arrive
// already built, typically parsed from a schema document by a loader
// such as internal/schemadoc.
package schema

import "strconv"

// PrimitiveKind enumerates the primitive wire types.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	Int32
	Int64
	Uint64
	Float32
	Float64
	String
	Bytes
	Timestamp
)

func (k PrimitiveKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Timestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Type is a schema type term: PrimitiveType, ArrayType, OptionalType, or
// RefType. It is a closed set (the unexported marker method prevents
// other packages from adding variants), matching the four type terms
// spec.md §6 allows the schema surface to carry.
type Type interface {
	isType()
}

// PrimitiveType names a primitive kind.
type PrimitiveType struct {
	Kind PrimitiveKind
}

func (PrimitiveType) isType() {}

// ArrayType is an ordered sequence of Item. KeyAttributes, if non-empty,
// is the dotted attribute chain (already split into segments) that makes
// the array a keyed sequence.
type ArrayType struct {
	Item          Type
	KeyAttributes []string
}

func (ArrayType) isType() {}

// OptionalType wraps another type with a nullable contract.
type OptionalType struct {
	Inner Type
}

func (OptionalType) isType() {}

// RefType refers to another record by id, resolved against the registry
// at finalize time.
type RefType struct {
	RecordID string
}

func (RefType) isType() {}

// Field describes one numbered product-record field.
type Field struct {
	Name             string
	Attribute        string // defaults to Name when empty
	Number           int32
	Type             Type
	HasMutableGetter bool
}

// AttributeName returns Attribute, falling back to Name.
func (f Field) AttributeName() string {
	if f.Attribute != "" {
		return f.Attribute
	}
	return f.Name
}

// ConstantField describes one payloadless numbered sum-type variant.
type ConstantField struct {
	Name      string
	Number    int32
	Attribute string
}

// AttributeName returns Attribute, falling back to Name.
func (c ConstantField) AttributeName() string {
	if c.Attribute != "" {
		return c.Attribute
	}
	return c.Name
}

// ValueField describes one payload-carrying numbered sum-type variant.
type ValueField struct {
	Name   string
	Number int32
	Type   Type
}

// Record is implemented by *Struct and *Enum.
type Record interface {
	RecordID() string
	isRecord()
}

// Struct is a product-type record definition.
type Struct struct {
	ID             string
	Fields         []Field
	RemovedNumbers []int32
	ClassName      string
	ClassQualName  string
}

func (s *Struct) RecordID() string { return s.ID }
func (*Struct) isRecord()          {}

// SlotCount is max(reserved)+1 across fields and removed numbers, or 0
// when the record has neither.
func (s *Struct) SlotCount() int {
	max := -1
	for _, f := range s.Fields {
		if int(f.Number) > max {
			max = int(f.Number)
		}
	}
	for _, n := range s.RemovedNumbers {
		if int(n) > max {
			max = int(n)
		}
	}
	return max + 1
}

// Validate checks the invariants in spec.md §3: field numbers are unique
// within the record, and no field number intersects RemovedNumbers.
func (s *Struct) Validate() error {
	seen := make(map[int32]string, len(s.Fields))
	for _, f := range s.Fields {
		if prev, ok := seen[f.Number]; ok {
			return &Error{Kind: ErrFieldNumberCollision, Msg: "record " + s.ID + ": fields " + prev + " and " + f.Name + " both claim number " + strconv.Itoa(int(f.Number))}
		}
		seen[f.Number] = f.Name
	}
	removed := make(map[int32]bool, len(s.RemovedNumbers))
	for _, n := range s.RemovedNumbers {
		removed[n] = true
	}
	for _, f := range s.Fields {
		if removed[f.Number] {
			return &Error{Kind: ErrRemovedNumberCollision, Msg: "record " + s.ID + ": field " + f.Name + " reuses removed number " + strconv.Itoa(int(f.Number))}
		}
	}
	return nil
}

// Enum is a sum-type record definition. Every enum implicitly carries an
// UNKNOWN constant at wire number 0, textual tag "?"; it is not listed in
// ConstantFields.
type Enum struct {
	ID             string
	ConstantFields []ConstantField
	ValueFields    []ValueField
	RemovedNumbers []int32
}

func (e *Enum) RecordID() string { return e.ID }
func (*Enum) isRecord()          {}

// Validate checks the invariants in spec.md §3: constant and value
// numbers share one space and must be unique, and RemovedNumbers must not
// collide with live numbers. Number 0 is reserved for UNKNOWN.
func (e *Enum) Validate() error {
	seen := map[int32]string{0: "UNKNOWN"}
	for _, c := range e.ConstantFields {
		if prev, ok := seen[c.Number]; ok {
			return &Error{Kind: ErrFieldNumberCollision, Msg: "enum " + e.ID + ": variants " + prev + " and " + c.Name + " both claim number " + strconv.Itoa(int(c.Number))}
		}
		seen[c.Number] = c.Name
	}
	for _, v := range e.ValueFields {
		if prev, ok := seen[v.Number]; ok {
			return &Error{Kind: ErrFieldNumberCollision, Msg: "enum " + e.ID + ": variants " + prev + " and " + v.Name + " both claim number " + strconv.Itoa(int(v.Number))}
		}
		seen[v.Number] = v.Name
	}
	for _, n := range e.RemovedNumbers {
		if name, ok := seen[n]; ok {
			return &Error{Kind: ErrRemovedNumberCollision, Msg: "enum " + e.ID + ": removed number " + strconv.Itoa(int(n)) + " collides with live variant " + name}
		}
	}
	return nil
}

// Method describes one typed RPC method signature. The core resolves
// RequestType/ResponseType to serializers; the RPC transport that would
// invoke a Method is out of scope (§1).
type Method struct {
	Name         string
	Number       int32
	RequestType  string
	ResponseType string
	VarName      string
}

// Constant describes one typed, pre-encoded constant value.
type Constant struct {
	Name     string
	Type     Type
	JSONCode string
}

// Document bundles everything a module initializer needs: every record
// definition, method, and constant that make up one schema.
type Document struct {
	Records   []Record
	Methods   []Method
	Constants []Constant
}

