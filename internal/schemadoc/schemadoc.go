// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemadoc loads a schema.Document from a YAML schema-document
// file, the convenience input format described in SPEC_FULL.md. It is a
// caller-side concern: the core packages never import this package, they
// consume schema.Document values directly however a caller produced them.
package schemadoc

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/solidcoredata/soiacore/schema"
)

type yamlDocument struct {
	Records   []yamlRecord   `yaml:"records"`
	Methods   []yamlMethod   `yaml:"methods"`
	Constants []yamlConstant `yaml:"constants"`
}

type yamlRecord struct {
	ID             string             `yaml:"id"`
	Kind           string             `yaml:"kind"`
	Fields         []yamlField        `yaml:"fields,omitempty"`
	RemovedNumbers []int32            `yaml:"removed_numbers,omitempty"`
	Constants      []yamlEnumConstant `yaml:"constants,omitempty"`
	Values         []yamlEnumValue    `yaml:"values,omitempty"`
}

type yamlField struct {
	Name      string   `yaml:"name"`
	Number    int32    `yaml:"number"`
	Type      yamlType `yaml:"type"`
	Attribute string   `yaml:"attribute,omitempty"`
	Mutable   bool     `yaml:"mutable,omitempty"`
}

type yamlType struct {
	Primitive string         `yaml:"primitive,omitempty"`
	Optional  *yamlType      `yaml:"optional,omitempty"`
	Array     *yamlArrayType `yaml:"array,omitempty"`
	Ref       string         `yaml:"ref,omitempty"`
}

type yamlArrayType struct {
	Item *yamlType `yaml:"item"`
	Key  []string  `yaml:"key,omitempty"`
}

type yamlEnumConstant struct {
	Name   string `yaml:"name"`
	Number int32  `yaml:"number"`
}

type yamlEnumValue struct {
	Name   string   `yaml:"name"`
	Number int32    `yaml:"number"`
	Type   yamlType `yaml:"type"`
}

type yamlMethod struct {
	Name     string `yaml:"name"`
	Number   int32  `yaml:"number"`
	Request  string `yaml:"request"`
	Response string `yaml:"response"`
}

type yamlConstant struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	JSONCode string `yaml:"json_code"`
}

// Load reads and parses the YAML schema document at path.
func Load(path string) (*schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a YAML schema document already in memory.
func Parse(data []byte) (*schema.Document, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemadoc: %w", err)
	}
	return doc.toSchema()
}

func (d *yamlDocument) toSchema() (*schema.Document, error) {
	out := &schema.Document{}
	for _, r := range d.Records {
		rec, err := r.toSchema()
		if err != nil {
			return nil, fmt.Errorf("schemadoc: record %s: %w", r.ID, err)
		}
		out.Records = append(out.Records, rec)
	}
	for _, m := range d.Methods {
		out.Methods = append(out.Methods, schema.Method{
			Name: m.Name, Number: m.Number, RequestType: m.Request, ResponseType: m.Response,
		})
	}
	for _, c := range d.Constants {
		out.Constants = append(out.Constants, schema.Constant{
			Name: c.Name, Type: parseConstantType(c.Type), JSONCode: c.JSONCode,
		})
	}
	return out, nil
}

func (r *yamlRecord) toSchema() (schema.Record, error) {
	switch r.Kind {
	case "struct", "":
		fields := make([]schema.Field, len(r.Fields))
		for i, f := range r.Fields {
			t, err := f.Type.toSchema()
			if err != nil {
				return nil, err
			}
			fields[i] = schema.Field{
				Name: f.Name, Number: f.Number, Type: t,
				Attribute: f.Attribute, HasMutableGetter: f.Mutable,
			}
		}
		return &schema.Struct{ID: r.ID, Fields: fields, RemovedNumbers: r.RemovedNumbers}, nil
	case "enum":
		consts := make([]schema.ConstantField, len(r.Constants))
		for i, c := range r.Constants {
			consts[i] = schema.ConstantField{Name: c.Name, Number: c.Number}
		}
		values := make([]schema.ValueField, len(r.Values))
		for i, v := range r.Values {
			t, err := v.Type.toSchema()
			if err != nil {
				return nil, err
			}
			values[i] = schema.ValueField{Name: v.Name, Number: v.Number, Type: t}
		}
		return &schema.Enum{ID: r.ID, ConstantFields: consts, ValueFields: values, RemovedNumbers: r.RemovedNumbers}, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", r.Kind)
	}
}

func (t *yamlType) toSchema() (schema.Type, error) {
	switch {
	case t.Primitive != "":
		k, ok := primitiveKindByName(t.Primitive)
		if !ok {
			return nil, fmt.Errorf("unknown primitive type %q", t.Primitive)
		}
		return schema.PrimitiveType{Kind: k}, nil
	case t.Optional != nil:
		inner, err := t.Optional.toSchema()
		if err != nil {
			return nil, err
		}
		return schema.OptionalType{Inner: inner}, nil
	case t.Array != nil:
		if t.Array.Item == nil {
			return nil, fmt.Errorf("array type missing item")
		}
		item, err := t.Array.Item.toSchema()
		if err != nil {
			return nil, err
		}
		return schema.ArrayType{Item: item, KeyAttributes: t.Array.Key}, nil
	case t.Ref != "":
		return schema.RefType{RecordID: t.Ref}, nil
	default:
		return nil, fmt.Errorf("empty type term")
	}
}

func primitiveKindByName(name string) (schema.PrimitiveKind, bool) {
	switch name {
	case "bool":
		return schema.Bool, true
	case "int32":
		return schema.Int32, true
	case "int64":
		return schema.Int64, true
	case "uint64":
		return schema.Uint64, true
	case "float32":
		return schema.Float32, true
	case "float64":
		return schema.Float64, true
	case "string":
		return schema.String, true
	case "bytes":
		return schema.Bytes, true
	case "timestamp":
		return schema.Timestamp, true
	default:
		return 0, false
	}
}

// parseConstantType accepts either a bare primitive name or a
// "module.path:Record" reference, the same convenience shorthand the
// example in SPEC_FULL.md uses for a constant's type.
func parseConstantType(s string) schema.Type {
	if k, ok := primitiveKindByName(s); ok {
		return schema.PrimitiveType{Kind: k}
	}
	return schema.RefType{RecordID: s}
}
