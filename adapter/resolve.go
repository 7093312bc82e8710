// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import "github.com/solidcoredata/soiacore/schema"

// ResolveType builds the Adapter for a schema type term. RefType
// resolution is delegated to resolver, which package module implements;
// this function does not need to know whether the target record has
// finished finalizing yet, since a Resolver is free to hand back a
// *LazyAdapter placeholder for a record still in progress.
func ResolveType(t schema.Type, resolver Resolver) (Adapter, error) {
	switch v := t.(type) {
	case schema.PrimitiveType:
		return primitiveFor(v.Kind), nil
	case schema.OptionalType:
		inner, err := ResolveType(v.Inner, resolver)
		if err != nil {
			return nil, err
		}
		return NewOptional(inner), nil
	case schema.ArrayType:
		item, err := ResolveType(v.Item, resolver)
		if err != nil {
			return nil, err
		}
		return NewArrayAdapter(item, v.KeyAttributes), nil
	case schema.RefType:
		return resolver.Resolve(v.RecordID)
	default:
		return nil, wrongType("schema.Type", t)
	}
}

func primitiveFor(k schema.PrimitiveKind) Adapter {
	switch k {
	case schema.Bool:
		return Bool
	case schema.Int32:
		return Int32
	case schema.Int64:
		return Int64
	case schema.Uint64:
		return Uint64
	case schema.Float32:
		return Float32
	case schema.Float64:
		return Float64
	case schema.String:
		return String
	case schema.Bytes:
		return Bytes
	case schema.Timestamp:
		return Timestamp
	default:
		return nil
	}
}
