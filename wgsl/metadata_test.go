// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"testing"

	"github.com/gogpu/kernelc/kernel"
)

func TestMetadataIndexLayout(t *testing.T) {
	const numMeta, numExt = 4, 2
	if got, want := LenIndex(1), uint32(1); got != want {
		t.Errorf("LenIndex(1) = %d, want %d", got, want)
	}
	if got, want := BufferLenIndex(numMeta, 1), uint32(5); got != want {
		t.Errorf("BufferLenIndex = %d, want %d", got, want)
	}
	if got, want := RankIndex(numMeta, 1), uint32(9); got != want {
		t.Errorf("RankIndex = %d, want %d", got, want)
	}
	shapeOff := ShapeOffsetIndex(numMeta, numExt, 1)
	if got, want := shapeOff, uint32(11); got != want {
		t.Errorf("ShapeOffsetIndex = %d, want %d", got, want)
	}
	strideOff := StrideOffsetIndex(numMeta, numExt, 1)
	if got, want := strideOff, uint32(13); got != want {
		t.Errorf("StrideOffsetIndex = %d, want %d", got, want)
	}
	// The fixed prefix ends at 2*numMeta+3*numExt; variable-length
	// shape/stride data is appended starting there.
	if strideOff >= 2*numMeta+3*numExt {
		t.Errorf("StrideOffsetIndex %d falls outside the fixed prefix (ends at %d)", strideOff, 2*numMeta+3*numExt)
	}
}

func compilerWithMeta(t *testing.T, numInputs, numOutputs int, extended ...bool) *Compiler {
	t.Helper()
	c := newCompiler(DefaultOptions())
	c.numInputs = numInputs
	c.numOutputs = numOutputs
	numMeta := uint32(numInputs + numOutputs)
	c.extMetaPos = make([]uint32, 0, numMeta)
	var numExt uint32
	for i := 0; i < numInputs+numOutputs; i++ {
		c.extMetaPos = append(c.extMetaPos, numExt)
		if i < len(extended) && extended[i] {
			numExt++
		}
	}
	c.numMeta = numMeta
	c.numExt = numExt
	return c
}

func TestLowerMetadataOpRank(t *testing.T) {
	c := compilerWithMeta(t, 2, 1, true, false, true)
	out := kernel.Local(0, 0, kernel.Scalar(kernel.UInt(kernel.UIntU32)))
	inst, err := c.lowerMetadataOp(kernel.Op{
		Kind: kernel.OpMetaRank, Out: &out, Var: kernel.GlobalInputArray(0, f32Item()),
	})
	if err != nil {
		t.Fatalf("lowerMetadataOp() error = %v", err)
	}
	if inst.Kind != InstMetadata {
		t.Errorf("Kind = %v, want InstMetadata", inst.Kind)
	}
}

func TestLowerMetadataOpShapeIsDoubleIndirection(t *testing.T) {
	c := compilerWithMeta(t, 1, 1, true, false)
	out := kernel.Local(0, 0, kernel.Scalar(kernel.UInt(kernel.UIntU32)))
	dim := kernel.ConstantScalar(kernel.ConstantValue{Elem: kernel.UInt(kernel.UIntU32), Bits: 0})
	inst, err := c.lowerMetadataOp(kernel.Op{
		Kind: kernel.OpMetaShape, Out: &out, Var: kernel.GlobalInputArray(0, f32Item()), Dim: dim,
	})
	if err != nil {
		t.Fatalf("lowerMetadataOp() error = %v", err)
	}
	if inst.Kind != InstExtendedMeta {
		t.Errorf("Kind = %v, want InstExtendedMeta (base offset load + dim offset load)", inst.Kind)
	}
}

func TestLowerMetadataOpRequiresOut(t *testing.T) {
	c := compilerWithMeta(t, 1, 1)
	_, err := c.lowerMetadataOp(kernel.Op{Kind: kernel.OpMetaLength, Var: kernel.GlobalInputArray(0, f32Item())})
	if err == nil || !err.(*kernel.CompileError).IsInvariantViolation() {
		t.Errorf("error = %v, want InvariantViolation", err)
	}
}

func TestLowerMetadataOpLengthLocalArrayIsNotMetadataLoad(t *testing.T) {
	c := compilerWithMeta(t, 1, 1)
	out := kernel.Local(0, 0, kernel.Scalar(kernel.UInt(kernel.UIntU32)))
	local := kernel.LocalArrayVar(0, 0, f32Item(), 8)
	inst, err := c.lowerMetadataOp(kernel.Op{Kind: kernel.OpMetaLength, Out: &out, Var: local})
	if err != nil {
		t.Fatalf("lowerMetadataOp() error = %v", err)
	}
	if inst.Kind != InstLength {
		t.Errorf("Kind = %v, want InstLength for a non-global array", inst.Kind)
	}
}

func TestLowerMetadataOpBufferLengthLocalArrayIsNotMetadataLoad(t *testing.T) {
	c := compilerWithMeta(t, 1, 1)
	out := kernel.Local(0, 0, kernel.Scalar(kernel.UInt(kernel.UIntU32)))
	local := kernel.LocalArrayVar(0, 0, f32Item(), 8)
	inst, err := c.lowerMetadataOp(kernel.Op{Kind: kernel.OpMetaBufferLength, Out: &out, Var: local})
	if err != nil {
		t.Fatalf("lowerMetadataOp() error = %v", err)
	}
	if inst.Kind != InstLength {
		t.Errorf("Kind = %v, want InstLength for a non-global array", inst.Kind)
	}
}

func TestLowerMetadataOpBufferLengthGlobalArrayIsMetadataLoad(t *testing.T) {
	c := compilerWithMeta(t, 1, 1)
	out := kernel.Local(0, 0, kernel.Scalar(kernel.UInt(kernel.UIntU32)))
	inst, err := c.lowerMetadataOp(kernel.Op{Kind: kernel.OpMetaBufferLength, Out: &out, Var: kernel.GlobalInputArray(0, f32Item())})
	if err != nil {
		t.Fatalf("lowerMetadataOp() error = %v", err)
	}
	if inst.Kind != InstMetadata {
		t.Errorf("Kind = %v, want InstMetadata for a global array", inst.Kind)
	}
}

func TestLowerMetadataOpLengthGlobalArrayIsMetadataLoad(t *testing.T) {
	c := compilerWithMeta(t, 1, 1)
	out := kernel.Local(0, 0, kernel.Scalar(kernel.UInt(kernel.UIntU32)))
	inst, err := c.lowerMetadataOp(kernel.Op{Kind: kernel.OpMetaLength, Out: &out, Var: kernel.GlobalInputArray(0, f32Item())})
	if err != nil {
		t.Fatalf("lowerMetadataOp() error = %v", err)
	}
	if inst.Kind != InstMetadata {
		t.Errorf("Kind = %v, want InstMetadata for a global array", inst.Kind)
	}
}
