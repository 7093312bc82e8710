// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"fmt"
	"sync"
)

// Array is a frozen, possibly-keyed sequence of values. Unkeyed arrays
// carry a nil KeyPath and never build an index. The index is built
// lazily on first lookup, last-wins on duplicate keys (spec.md §4.6).
type Array struct {
	Items   []any
	KeyPath []string

	once  sync.Once
	index map[any]int
}

// NewArray wraps items as a frozen array, keyed by keyPath when non-empty.
func NewArray(items []any, keyPath []string) *Array {
	return &Array{Items: items, KeyPath: keyPath}
}

func (a *Array) ensureIndex() {
	a.once.Do(func() {
		a.index = make(map[any]int, len(a.Items))
		for i, item := range a.Items {
			k, err := a.keyOf(item)
			if err != nil {
				continue
			}
			a.index[k] = i // last wins
		}
	})
}

// Find looks up the item whose key equals key, building the index on
// first use.
func (a *Array) Find(key any) (any, bool) {
	if len(a.KeyPath) == 0 {
		return nil, false
	}
	a.ensureIndex()
	i, ok := a.index[key]
	if !ok {
		return nil, false
	}
	return a.Items[i], true
}

// FindOrDefault is Find with a fallback value.
func (a *Array) FindOrDefault(key any, def any) any {
	if v, ok := a.Find(key); ok {
		return v
	}
	return def
}

// keyOf walks KeyPath through item's nested struct fields. A terminal
// *Enum value contributes its Kind string as the effective key, matching
// how keyed arrays over enum-keyed records compare keys by variant name.
func (a *Array) keyOf(item any) (any, error) {
	cur := item
	for _, field := range a.KeyPath {
		s, ok := cur.(*Struct)
		if !ok {
			return nil, fmt.Errorf("record: key path %v: %T is not a struct", a.KeyPath, cur)
		}
		v, ok := s.Get(field)
		if !ok {
			return nil, fmt.Errorf("record: key path %v: no field %q", a.KeyPath, field)
		}
		cur = v
	}
	if e, ok := cur.(*Enum); ok {
		return e.Kind, nil
	}
	if b, ok := cur.([]byte); ok {
		return string(b), nil
	}
	return cur, nil
}

// Equal compares two arrays element-wise, ignoring KeyPath (two arrays
// holding equal items but built with different key paths are still
// considered the same value; the key path is a view, not content).
func (a *Array) Equal(o *Array) bool {
	if a == o {
		return true
	}
	if a == nil || o == nil {
		return false
	}
	if len(a.Items) != len(o.Items) {
		return false
	}
	for i := range a.Items {
		if !ValueEqual(a.Items[i], o.Items[i]) {
			return false
		}
	}
	return true
}

// ToMutableSlice returns a MutableArray seeded with a's current items, a
// shallow copy so appends to the mutable view don't alias a's backing
// array.
func (a *Array) ToMutableSlice() *MutableArray {
	items := make([]any, len(a.Items))
	copy(items, a.Items)
	return &MutableArray{Items: items, KeyPath: a.KeyPath}
}

// MutableArray is the growable builder face of a keyed or unkeyed array.
// It carries no index; key lookups are only available after ToFrozen.
type MutableArray struct {
	Items   []any
	KeyPath []string
}

// ToFrozen freezes m into an Array. Item normalization (running each
// item through its element adapter's ToFrozen) is the array adapter's
// job, not this type's; by the time ToFrozen is called here items are
// expected to already be frozen.
func (m *MutableArray) ToFrozen() *Array {
	items := make([]any, len(m.Items))
	copy(items, m.Items)
	return &Array{Items: items, KeyPath: m.KeyPath}
}
