// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package module builds the finalized adapter tree for one
// schema.Document: it resolves every RefType to the adapter it names,
// working through cycles of mutually referential records with a
// three-state (pending, in-progress, done) depth-first walk, then
// publishes the document's methods and constants against the result.
package module

import (
	"github.com/solidcoredata/soiacore/adapter"
	"github.com/solidcoredata/soiacore/schema"
)

type finalizeState int

const (
	pending finalizeState = iota
	inProgress
	done
)

// Module is the finalized result of building a schema.Document: a
// registry of record adapters plus resolved method and constant tables.
// A *Module is safe for concurrent reads once Build has returned it
// (spec.md §5); it is never mutated afterward.
type Module struct {
	records map[string]schema.Record
	structs map[string]*adapter.StructAdapter
	enums   map[string]*adapter.EnumAdapter
	state   map[string]finalizeState
	lazies  map[string][]*adapter.LazyAdapter

	Methods   map[string]Method
	Constants map[string]any
}

// Method is a finalized RPC signature: Request/Response name the
// adapters resolved for the schema method's request and response types.
type Method struct {
	Name     string
	Number   int32
	Request  adapter.Adapter
	Response adapter.Adapter
}

// Build finalizes every record, method, and constant in doc.
func Build(doc *schema.Document) (*Module, error) {
	m := &Module{
		records: make(map[string]schema.Record, len(doc.Records)),
		structs: make(map[string]*adapter.StructAdapter),
		enums:   make(map[string]*adapter.EnumAdapter),
		state:   make(map[string]finalizeState, len(doc.Records)),
		lazies:  make(map[string][]*adapter.LazyAdapter),
	}
	for _, rec := range doc.Records {
		m.records[rec.RecordID()] = rec
		m.state[rec.RecordID()] = pending
		switch rec.(type) {
		case *schema.Struct:
			m.structs[rec.RecordID()] = adapter.NewStructAdapter(rec.RecordID())
		case *schema.Enum:
			m.enums[rec.RecordID()] = adapter.NewEnumAdapter(rec.RecordID())
		}
	}
	for id := range m.records {
		if err := m.finalize(id); err != nil {
			return nil, err
		}
	}

	m.Methods = make(map[string]Method, len(doc.Methods))
	for _, meth := range doc.Methods {
		req, err := m.Resolve(meth.RequestType)
		if err != nil {
			return nil, err
		}
		resp, err := m.Resolve(meth.ResponseType)
		if err != nil {
			return nil, err
		}
		m.Methods[meth.Name] = Method{Name: meth.Name, Number: meth.Number, Request: req, Response: resp}
	}

	m.Constants = make(map[string]any, len(doc.Constants))
	for _, c := range doc.Constants {
		a, err := adapter.ResolveType(c.Type, m)
		if err != nil {
			return nil, err
		}
		var raw any
		if c.JSONCode != "" {
			if err := decodeJSONCode(c.JSONCode, &raw); err != nil {
				return nil, &Error{Kind: ErrRecordValidation, Msg: "constant " + c.Name + ": " + err.Error()}
			}
		}
		val, err := a.DecodeJSON(raw)
		if err != nil {
			return nil, &Error{Kind: ErrRecordValidation, Msg: "constant " + c.Name + ": " + err.Error()}
		}
		m.Constants[c.Name] = val
	}

	return m, nil
}

func (m *Module) finalize(id string) error {
	switch m.state[id] {
	case done, inProgress:
		return nil
	}
	m.state[id] = inProgress
	rec, ok := m.records[id]
	if !ok {
		return &Error{Kind: ErrUnknownRecord, Msg: id}
	}
	var err error
	switch r := rec.(type) {
	case *schema.Struct:
		err = m.structs[id].Finalize(r, m)
	case *schema.Enum:
		err = m.enums[id].Finalize(r, m)
	}
	if err != nil {
		return err
	}
	m.state[id] = done
	real, _ := m.realAdapter(id)
	for _, lazy := range m.lazies[id] {
		lazy.Set(real)
	}
	delete(m.lazies, id)
	return nil
}

func (m *Module) realAdapter(id string) (adapter.Adapter, bool) {
	if s, ok := m.structs[id]; ok {
		return s, true
	}
	if e, ok := m.enums[id]; ok {
		return e, true
	}
	return nil, false
}

// Resolve implements adapter.Resolver. A reference to a record still
// being finalized higher up the call stack (state inProgress, meaning a
// reference cycle) is satisfied with a *adapter.LazyAdapter that gets
// wired to the real adapter once that record's Finalize returns.
func (m *Module) Resolve(recordID string) (adapter.Adapter, error) {
	switch m.state[recordID] {
	case done:
		a, ok := m.realAdapter(recordID)
		if !ok {
			return nil, &Error{Kind: ErrUnknownRecord, Msg: recordID}
		}
		return a, nil
	case inProgress:
		lazy := &adapter.LazyAdapter{}
		m.lazies[recordID] = append(m.lazies[recordID], lazy)
		return lazy, nil
	default: // pending: resolve it now, depth-first
		if _, ok := m.records[recordID]; !ok {
			return nil, &Error{Kind: ErrUnknownRecord, Msg: recordID}
		}
		if err := m.finalize(recordID); err != nil {
			return nil, err
		}
		return m.Resolve(recordID)
	}
}

// Adapter returns the finalized adapter for a record id.
func (m *Module) Adapter(recordID string) (adapter.Adapter, error) {
	return m.Resolve(recordID)
}
