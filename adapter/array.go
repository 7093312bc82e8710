// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"strings"
	"sync"

	"github.com/solidcoredata/soiacore/record"
	"github.com/solidcoredata/soiacore/wire"
)

// arrayCacheKey identifies an array shape: a given item adapter and key
// path always produce an ArrayAdapter that behaves identically, so the
// module builder hands out the same *ArrayAdapter instance for repeated
// occurrences of the same (item, key path) pair instead of allocating a
// fresh one per field (spec.md §4.6, identity sharing).
type arrayCacheKey struct {
	item    Adapter
	keyPath string
}

var (
	arrayCacheMu sync.Mutex
	arrayCache   = map[arrayCacheKey]*ArrayAdapter{}

	// emptyArray is the single shared instance every ArrayAdapter returns
	// for Default(), since an empty array has no item type dependent
	// state.
	emptyArray = record.NewArray(nil, nil)
)

// NewArrayAdapter returns the shared ArrayAdapter for the (item, keyPath)
// pair, constructing one on first use.
func NewArrayAdapter(item Adapter, keyPath []string) *ArrayAdapter {
	key := arrayCacheKey{item: item, keyPath: strings.Join(keyPath, ".")}
	arrayCacheMu.Lock()
	defer arrayCacheMu.Unlock()
	if a, ok := arrayCache[key]; ok {
		return a
	}
	a := &ArrayAdapter{Item: item, KeyPath: keyPath}
	arrayCache[key] = a
	return a
}

// ArrayAdapter adapts an ordered, optionally keyed sequence of Item
// values. Frozen values are *record.Array; mutable values in flight
// before ToFrozen are *record.MutableArray or a plain []any.
type ArrayAdapter struct {
	Item    Adapter
	KeyPath []string
}

func (a *ArrayAdapter) Default() any { return emptyArray }

func (a *ArrayAdapter) IsNotDefault(x any) bool {
	switch v := x.(type) {
	case *record.Array:
		return len(v.Items) != 0
	case *record.MutableArray:
		return len(v.Items) != 0
	case []any:
		return len(v) != 0
	default:
		return x != nil
	}
}

func (a *ArrayAdapter) items(x any) ([]any, error) {
	switch v := x.(type) {
	case *record.Array:
		return v.Items, nil
	case *record.MutableArray:
		return v.Items, nil
	case []any:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, wrongType("array", x)
	}
}

// ToFrozen freezes every item through Item's ToFrozen and wraps the
// result in the keyed-view record.Array.
func (a *ArrayAdapter) ToFrozen(x any) (any, error) {
	items, err := a.items(x)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return emptyArray, nil
	}
	frozen := make([]any, len(items))
	for i, item := range items {
		fv, err := a.Item.ToFrozen(item)
		if err != nil {
			return nil, err
		}
		frozen[i] = fv
	}
	return record.NewArray(frozen, a.KeyPath), nil
}

func (a *ArrayAdapter) EncodeBinary(w *wire.Writer, v any) error {
	items, err := a.items(v)
	if err != nil {
		return err
	}
	if err := w.EncodeArrayHeader(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := a.Item.EncodeBinary(w, item); err != nil {
			return err
		}
	}
	return nil
}

func (a *ArrayAdapter) DecodeBinary(r *wire.Reader, tag byte) (any, error) {
	n, err := r.DecodeArrayHeader(tag)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return emptyArray, nil
	}
	items := make([]any, n)
	for i := 0; i < n; i++ {
		itemTag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		item, err := a.Item.DecodeBinary(r, itemTag)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return record.NewArray(items, a.KeyPath), nil
}

func (a *ArrayAdapter) EncodeJSON(v any, readable bool) any {
	items, err := a.items(v)
	if err != nil || len(items) == 0 {
		return []any{}
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = a.Item.EncodeJSON(item, readable)
	}
	return out
}

func (a *ArrayAdapter) DecodeJSON(v any) (any, error) {
	if v == nil {
		return emptyArray, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, wrongType("json array", v)
	}
	if len(list) == 0 {
		return emptyArray, nil
	}
	items := make([]any, len(list))
	for i, raw := range list {
		item, err := a.Item.DecodeJSON(raw)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return record.NewArray(items, a.KeyPath), nil
}
