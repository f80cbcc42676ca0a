// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package kerneljson reads and writes kernel.KernelDefinition as JSON.
// The kernel package's own tagged-union types carry no json tags and
// no enum names, since those belong to the IR's in-memory shape, not
// its wire format; this package owns the on-disk schema, translating
// every enum to a short lower_snake_case name so definitions are
// readable and diffable outside Go.
package kerneljson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gogpu/kernelc/kernel"
)

// Decode reads a JSON-encoded kernel definition from r.
func Decode(r io.Reader) (*kernel.KernelDefinition, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("kerneljson: decode: %w", err)
	}
	return doc.toKernel()
}

// Encode writes def to w as JSON.
func Encode(w io.Writer, def *kernel.KernelDefinition) error {
	doc, err := fromKernel(def)
	if err != nil {
		return fmt.Errorf("kerneljson: encode: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("kerneljson: encode: %w", err)
	}
	return nil
}

// document is the root JSON shape.
type document struct {
	Inputs  []binding          `json:"inputs"`
	Outputs []binding          `json:"outputs"`
	Named   map[string]binding `json:"named,omitempty"`
	CubeDim [3]uint32          `json:"cube_dim"`
	Body    *scope             `json:"body"`
}

type binding struct {
	Visibility      string `json:"visibility"`
	Location        string `json:"location"`
	Elem            elem   `json:"elem"`
	Vectorization   uint8  `json:"vectorization"`
	Size            uint32 `json:"size"`
	HasExtendedMeta bool   `json:"has_extended_meta,omitempty"`
}

type elem struct {
	Tag   string `json:"tag"`
	Width string `json:"width,omitempty"`
}

type item struct {
	Elem          elem  `json:"elem"`
	Vectorization uint8 `json:"vectorization"`
}

type constValue struct {
	Elem elem   `json:"elem"`
	Bits uint64 `json:"bits"`
}

// variable is a flat union of every kernel.Variable field. Item, ID,
// Depth and Length are copied for every Kind; Value is written only for
// constant scalars and Builtin is read and written only for built-ins.
type variable struct {
	Kind    string      `json:"kind"`
	Item    item        `json:"item,omitempty"`
	ID      uint32      `json:"id,omitempty"`
	Depth   uint32      `json:"depth,omitempty"`
	Length  uint32      `json:"length,omitempty"`
	Value   *constValue `json:"value,omitempty"`
	Builtin string      `json:"builtin,omitempty"`
}

// op mirrors kernel.Op field-for-field: Out is the only pointer-typed
// operand (kernel.Op.Out is itself *kernel.Variable, nil where the
// operation names no destination); the remaining operand slots are
// always present, unused ones simply carrying the zero variable.
type op struct {
	Kind    string    `json:"kind"`
	Out     *variable `json:"out,omitempty"`
	Lhs     variable  `json:"lhs,omitempty"`
	Rhs     variable  `json:"rhs,omitempty"`
	A       variable  `json:"a,omitempty"`
	B       variable  `json:"b,omitempty"`
	C       variable  `json:"c,omitempty"`
	Var     variable  `json:"var,omitempty"`
	Dim     variable  `json:"dim,omitempty"`
	Checked bool      `json:"checked,omitempty"`
}

type switchCase struct {
	Value variable `json:"value"`
	Scope *scope   `json:"scope"`
}

type constArrayDecl struct {
	ID     uint32     `json:"id"`
	Item   item       `json:"item"`
	Values []variable `json:"values"`
}

type statement struct {
	Stmt string `json:"stmt"`

	Op *op `json:"op,omitempty"`

	Cond variable `json:"cond,omitempty"`

	Then    *scope `json:"then,omitempty"`
	Else    *scope `json:"else,omitempty"`
	Default *scope `json:"default,omitempty"`

	Cases []switchCase `json:"cases,omitempty"`

	RangeI     variable `json:"range_i,omitempty"`
	RangeStart variable `json:"range_start,omitempty"`
	RangeEnd   variable `json:"range_end,omitempty"`
	RangeStep  variable `json:"range_step,omitempty"`
	HasStep    bool     `json:"has_step,omitempty"`
	Inclusive  bool     `json:"inclusive,omitempty"`
}

type scope struct {
	Depth        uint32           `json:"depth"`
	Declarations []variable       `json:"declarations,omitempty"`
	ConstArrays  []constArrayDecl `json:"const_arrays,omitempty"`
	Operations   []statement      `json:"operations,omitempty"`
}

func (doc document) toKernel() (*kernel.KernelDefinition, error) {
	inputs := make([]kernel.Binding, len(doc.Inputs))
	for i, b := range doc.Inputs {
		kb, err := b.toKernel()
		if err != nil {
			return nil, fmt.Errorf("inputs[%d]: %w", i, err)
		}
		inputs[i] = kb
	}
	outputs := make([]kernel.Binding, len(doc.Outputs))
	for i, b := range doc.Outputs {
		kb, err := b.toKernel()
		if err != nil {
			return nil, fmt.Errorf("outputs[%d]: %w", i, err)
		}
		outputs[i] = kb
	}
	var named map[string]kernel.Binding
	if len(doc.Named) > 0 {
		named = make(map[string]kernel.Binding, len(doc.Named))
		for name, b := range doc.Named {
			kb, err := b.toKernel()
			if err != nil {
				return nil, fmt.Errorf("named[%s]: %w", name, err)
			}
			named[name] = kb
		}
	}
	if doc.Body == nil {
		return nil, fmt.Errorf("missing body")
	}
	body, err := doc.Body.toKernel()
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	return &kernel.KernelDefinition{
		Inputs:  inputs,
		Outputs: outputs,
		Named:   named,
		CubeDim: kernel.CubeDim{X: doc.CubeDim[0], Y: doc.CubeDim[1], Z: doc.CubeDim[2]},
		Body:    body,
	}, nil
}

func fromKernel(def *kernel.KernelDefinition) (*document, error) {
	inputs := make([]binding, len(def.Inputs))
	for i, b := range def.Inputs {
		inputs[i] = fromKernelBinding(b)
	}
	outputs := make([]binding, len(def.Outputs))
	for i, b := range def.Outputs {
		outputs[i] = fromKernelBinding(b)
	}
	var named map[string]binding
	if len(def.Named) > 0 {
		named = make(map[string]binding, len(def.Named))
		for name, b := range def.Named {
			named[name] = fromKernelBinding(b)
		}
	}
	return &document{
		Inputs:  inputs,
		Outputs: outputs,
		Named:   named,
		CubeDim: [3]uint32{def.CubeDim.X, def.CubeDim.Y, def.CubeDim.Z},
		Body:    fromKernelScope(def.Body),
	}, nil
}
