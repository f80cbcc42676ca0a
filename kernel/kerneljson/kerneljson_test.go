// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kerneljson

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/kernelc/kernel"
)

func sampleDefinition() *kernel.KernelDefinition {
	item := kernel.Scalar(kernel.Float(kernel.FloatF32))
	body := kernel.NewScope(0)
	body.Declarations = append(body.Declarations, kernel.Local(0, 0, item))
	out := kernel.Local(0, 0, item)
	body.Operations = append(body.Operations, kernel.Statement{
		Stmt: kernel.StmtOp,
		Op: kernel.Op{
			Kind: kernel.OpAdd,
			Out:  &out,
			Lhs:  kernel.GlobalInputArray(0, item),
			Rhs:  kernel.GlobalInputArray(1, item),
		},
	})
	body.Operations = append(body.Operations, kernel.Statement{Stmt: kernel.StmtReturn})

	return &kernel.KernelDefinition{
		Inputs: []kernel.Binding{
			{Visibility: kernel.VisibilityRead, Location: kernel.MemoryStorage, Elem: kernel.Float(kernel.FloatF32), Vectorization: 1, Size: 4},
			{Visibility: kernel.VisibilityRead, Location: kernel.MemoryStorage, Elem: kernel.Float(kernel.FloatF32), Vectorization: 1, Size: 4, HasExtendedMeta: true},
		},
		Outputs: []kernel.Binding{
			{Visibility: kernel.VisibilityReadWrite, Location: kernel.MemoryStorage, Elem: kernel.Float(kernel.FloatF32), Vectorization: 1, Size: 4},
		},
		CubeDim: kernel.CubeDim{X: 64, Y: 1, Z: 1},
		Body:    body,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	def := sampleDefinition()

	var buf bytes.Buffer
	if err := Encode(&buf, def); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(got.Inputs) != len(def.Inputs) || len(got.Outputs) != len(def.Outputs) {
		t.Fatalf("binding counts changed: inputs %d->%d outputs %d->%d",
			len(def.Inputs), len(got.Inputs), len(def.Outputs), len(got.Outputs))
	}
	if got.Inputs[1].HasExtendedMeta != true {
		t.Error("HasExtendedMeta did not round-trip")
	}
	if got.CubeDim != def.CubeDim {
		t.Errorf("CubeDim = %+v, want %+v", got.CubeDim, def.CubeDim)
	}
	if len(got.Body.Operations) != 2 {
		t.Fatalf("Operations = %d, want 2", len(got.Body.Operations))
	}
	addStmt := got.Body.Operations[0]
	if addStmt.Stmt != kernel.StmtOp || addStmt.Op.Kind != kernel.OpAdd {
		t.Errorf("first operation = %+v, want an Add op", addStmt)
	}
	if addStmt.Op.Out == nil || addStmt.Op.Out.Kind != kernel.KindLocal {
		t.Errorf("Out did not round-trip: %+v", addStmt.Op.Out)
	}
	if got.Body.Operations[1].Stmt != kernel.StmtReturn {
		t.Errorf("second operation = %+v, want Return", got.Body.Operations[1])
	}
}

func TestEncodeUsesReadableNames(t *testing.T) {
	def := sampleDefinition()

	var buf bytes.Buffer
	if err := Encode(&buf, def); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := buf.String()
	for _, want := range []string{`"kind": "add"`, `"tag": "float"`, `"width": "f32"`, `"location": "storage"`} {
		if !strings.Contains(text, want) {
			t.Errorf("encoded JSON missing %q:\n%s", want, text)
		}
	}
}

func TestDecodeRejectsUnknownVariableKind(t *testing.T) {
	const doc = `{
		"inputs": [], "outputs": [],
		"cube_dim": [1, 1, 1],
		"body": {
			"depth": 0,
			"declarations": [{"kind": "not_a_real_kind", "item": {"elem": {"tag": "bool"}, "vectorization": 1}}]
		}
	}`
	if _, err := Decode(strings.NewReader(doc)); err == nil {
		t.Error("expected an error for an unrecognized variable kind")
	}
}

func TestDecodeRejectsMissingBody(t *testing.T) {
	const doc = `{"inputs": [], "outputs": [], "cube_dim": [1, 1, 1]}`
	if _, err := Decode(strings.NewReader(doc)); err == nil {
		t.Error("expected an error for a missing body")
	}
}

func TestBuiltinVariableRoundTrip(t *testing.T) {
	item := kernel.Scalar(kernel.UInt(kernel.UIntU32))
	def := sampleDefinition()
	def.Body.Declarations = append(def.Body.Declarations, kernel.BuiltinVar(kernel.AbsolutePos, item))

	var buf bytes.Buffer
	if err := Encode(&buf, def); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	last := got.Body.Declarations[len(got.Body.Declarations)-1]
	if last.Kind != kernel.KindBuiltin || last.Builtin != kernel.AbsolutePos {
		t.Errorf("builtin declaration = %+v, want AbsolutePos builtin", last)
	}
}
