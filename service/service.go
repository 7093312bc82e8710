// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package service binds a finalized module.Module's methods to
// application-supplied handler functions. It deliberately carries no
// transport: dispatching a decoded request over HTTP, gRPC, or an
// in-process channel is the caller's concern (spec.md §1, Non-goals);
// this package only owns the request/response serialization boundary
// around a handler.
package service

import (
	"context"
	"fmt"

	"github.com/solidcoredata/soiacore/module"
	"github.com/solidcoredata/soiacore/serializer"
)

// Handler processes one decoded request value and returns the response
// value to serialize back.
type Handler func(ctx context.Context, req any) (any, error)

// Registry dispatches by method name against a module.Module's resolved
// method table.
type Registry struct {
	mod      *module.Module
	handlers map[string]Handler
}

// New creates an empty registry bound to mod.
func New(mod *module.Module) *Registry {
	return &Registry{mod: mod, handlers: make(map[string]Handler)}
}

// Handle registers the handler for a named method. It panics if name is
// not a method mod resolved, which is a wiring bug rather than a runtime
// condition to recover from.
func (r *Registry) Handle(name string, h Handler) {
	if _, ok := r.mod.Methods[name]; !ok {
		panic(fmt.Sprintf("service: module has no method %q", name))
	}
	r.handlers[name] = h
}

// InvokeBytes decodes reqBytes per the named method's request type, runs
// its handler, and encodes the response back to the binary wire format.
func (r *Registry) InvokeBytes(ctx context.Context, name string, reqBytes []byte) ([]byte, error) {
	meth, req, err := r.decodeBinary(name, reqBytes)
	if err != nil {
		return nil, err
	}
	resp, err := r.dispatch(ctx, name, req)
	if err != nil {
		return nil, err
	}
	return serializer.New(meth.Response).ToBytes(resp)
}

// InvokeJSON is InvokeBytes for either JSON flavor.
func (r *Registry) InvokeJSON(ctx context.Context, name string, reqJSON string, readable bool) (string, error) {
	meth, ok := r.mod.Methods[name]
	if !ok {
		return "", fmt.Errorf("service: unknown method %q", name)
	}
	req, err := serializer.New(meth.Request).FromJSON(reqJSON)
	if err != nil {
		return "", err
	}
	resp, err := r.dispatch(ctx, name, req)
	if err != nil {
		return "", err
	}
	return serializer.New(meth.Response).ToJSON(resp, readable)
}

func (r *Registry) decodeBinary(name string, reqBytes []byte) (module.Method, any, error) {
	meth, ok := r.mod.Methods[name]
	if !ok {
		return module.Method{}, nil, fmt.Errorf("service: unknown method %q", name)
	}
	req, err := serializer.New(meth.Request).FromBytes(reqBytes)
	if err != nil {
		return module.Method{}, nil, err
	}
	return meth, req, nil
}

func (r *Registry) dispatch(ctx context.Context, name string, req any) (any, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("service: no handler registered for method %q", name)
	}
	return h(ctx, req)
}
