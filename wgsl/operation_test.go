// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"testing"

	"github.com/gogpu/kernelc/kernel"
)

func TestLowerOpDispatchesByFamily(t *testing.T) {
	c := newCompiler(DefaultOptions())
	out := kernel.Local(0, 0, f32Item())
	tests := []struct {
		name string
		op   kernel.Op
		want InstructionKind
	}{
		{"arithmetic", kernel.Op{Kind: kernel.OpAdd, Out: &out, Lhs: kernel.Local(1, 0, f32Item()), Rhs: kernel.Local(2, 0, f32Item())}, InstArith},
		{"atomic", kernel.Op{Kind: kernel.OpAtomicLoad, Out: &out, Var: kernel.Local(1, 0, f32Item())}, InstAtomic},
		{"subgroup", kernel.Op{Kind: kernel.OpSubgroupSum, Out: &out, Var: kernel.Local(1, 0, f32Item())}, InstSubgroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := c.lowerOp(tt.op)
			if err != nil {
				t.Fatalf("lowerOp() error = %v", err)
			}
			if inst.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", inst.Kind, tt.want)
			}
		})
	}
}

func TestLowerArithOpRequiresOut(t *testing.T) {
	c := newCompiler(DefaultOptions())
	_, err := c.lowerArithOp(kernel.Op{Kind: kernel.OpAdd, Lhs: kernel.Local(0, 0, f32Item()), Rhs: kernel.Local(1, 0, f32Item())})
	if err == nil || !err.(*kernel.CompileError).IsInvariantViolation() {
		t.Errorf("error = %v, want InvariantViolation", err)
	}
}

func TestLowerArithOpIndexAssignAllowsNilOut(t *testing.T) {
	c := newCompiler(DefaultOptions())
	_, err := c.lowerArithOp(kernel.Op{
		Kind: kernel.OpIndexAssign,
		Var:  kernel.GlobalOutputArray(0, f32Item()),
		Lhs:  kernel.Local(0, 0, f32Item()),
		Rhs:  kernel.Local(1, 0, f32Item()),
	})
	if err != nil {
		t.Errorf("IndexAssign with nil Out error = %v, want nil", err)
	}
}

func TestLowerAtomicOpStoreAllowsNilOut(t *testing.T) {
	c := newCompiler(DefaultOptions())
	inst, err := c.lowerAtomicOp(kernel.Op{
		Kind: kernel.OpAtomicStore,
		Var:  kernel.Local(0, 0, kernel.Scalar(kernel.AtomicUInt(kernel.UIntU32))),
		Rhs:  kernel.Local(1, 0, f32Item()),
	})
	if err != nil {
		t.Fatalf("AtomicStore error = %v", err)
	}
	if inst.Out != nil {
		t.Errorf("Out = %v, want nil for AtomicStore", inst.Out)
	}
}

func TestLowerAtomicOpRequiresOutExceptStore(t *testing.T) {
	c := newCompiler(DefaultOptions())
	_, err := c.lowerAtomicOp(kernel.Op{Kind: kernel.OpAtomicLoad, Var: kernel.Local(0, 0, f32Item())})
	if err == nil || !err.(*kernel.CompileError).IsInvariantViolation() {
		t.Errorf("error = %v, want InvariantViolation", err)
	}
}

func TestLowerSubgroupOpRequiresOut(t *testing.T) {
	c := newCompiler(DefaultOptions())
	_, err := c.lowerSubgroupOp(kernel.Op{Kind: kernel.OpSubgroupAll, Var: kernel.Local(0, 0, f32Item())})
	if err == nil || !err.(*kernel.CompileError).IsInvariantViolation() {
		t.Errorf("error = %v, want InvariantViolation", err)
	}
}

func TestLowerOptionalOutNilPassthrough(t *testing.T) {
	c := newCompiler(DefaultOptions())
	out, err := c.lowerOptionalOut(nil)
	if err != nil {
		t.Fatalf("lowerOptionalOut(nil) error = %v", err)
	}
	if out != nil {
		t.Errorf("lowerOptionalOut(nil) = %v, want nil", out)
	}
}
