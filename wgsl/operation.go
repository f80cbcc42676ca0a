// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"fmt"

	"github.com/gogpu/kernelc/kernel"
)

// lowerOp is the Operation Lowerer (C3): one target instruction per
// input operation, across the arithmetic/logical, atomic, metadata,
// and subgroup families. Branch and sync forms are handled
// by the Control-Flow Lowerer (control_flow.go), not here.
func (c *Compiler) lowerOp(op kernel.Op) (Instruction, error) {
	switch {
	case op.Kind.IsMetadata():
		return c.lowerMetadataOp(op)
	case op.Kind.IsAtomic():
		return c.lowerAtomicOp(op)
	case op.Kind.IsSubgroup():
		return c.lowerSubgroupOp(op)
	default:
		return c.lowerArithOp(op)
	}
}

// requireOut enforces the "out required" invariant shared by nearly
// every operation family.
func requireOut(op kernel.Op) (Variable, error) {
	return Variable{}, kernel.NewError(kernel.ErrInvariantViolation,
		fmt.Sprintf("operation %d requires an out variable", op.Kind))
}

func (c *Compiler) lowerArithOp(op kernel.Op) (Instruction, error) {
	if op.Out == nil {
		switch op.Kind {
		case kernel.OpIndexAssign, kernel.OpUncheckedIndexAssign, kernel.OpCopy, kernel.OpCopyBulk:
			// These write through Var/Lhs rather than Out; no violation.
		default:
			if _, err := requireOut(op); err != nil {
				return Instruction{}, err
			}
		}
	}

	out, err := c.lowerOptionalOut(op.Out)
	if err != nil {
		return Instruction{}, err
	}
	lhs, err := c.lowerVariable(op.Lhs)
	if err != nil {
		return Instruction{}, err
	}
	rhs, err := c.lowerVariable(op.Rhs)
	if err != nil {
		return Instruction{}, err
	}
	a, err := c.lowerVariable(op.A)
	if err != nil {
		return Instruction{}, err
	}
	b, err := c.lowerVariable(op.B)
	if err != nil {
		return Instruction{}, err
	}
	cc, err := c.lowerVariable(op.C)
	if err != nil {
		return Instruction{}, err
	}
	v, err := c.lowerVariable(op.Var)
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Kind: InstArith,
		Op:   ArithOp(op.Kind),
		Out:  out,
		Lhs:  lhs,
		Rhs:  rhs,
		A:    a,
		B:    b,
		C:    cc,
		Var:  v,
	}, nil
}

func (c *Compiler) lowerAtomicOp(op kernel.Op) (Instruction, error) {
	out, err := c.lowerOptionalOut(op.Out)
	if err != nil {
		return Instruction{}, err
	}
	v, err := c.lowerVariable(op.Var)
	if err != nil {
		return Instruction{}, err
	}
	lhs, err := c.lowerVariable(op.Lhs)
	if err != nil {
		return Instruction{}, err
	}
	rhs, err := c.lowerVariable(op.Rhs)
	if err != nil {
		return Instruction{}, err
	}
	if op.Kind != kernel.OpAtomicStore && out == nil {
		return Instruction{}, kernel.NewError(kernel.ErrInvariantViolation,
			"atomic operation requires an out variable")
	}
	return Instruction{
		Kind: InstAtomic,
		Op:   ArithOp(op.Kind),
		Out:  out,
		Var:  v,
		Lhs:  lhs,
		Rhs:  rhs,
	}, nil
}

func (c *Compiler) lowerSubgroupOp(op kernel.Op) (Instruction, error) {
	out, err := c.lowerOptionalOut(op.Out)
	if err != nil {
		return Instruction{}, err
	}
	if out == nil {
		return Instruction{}, kernel.NewError(kernel.ErrInvariantViolation,
			"subgroup operation requires an out variable")
	}
	v, err := c.lowerVariable(op.Var)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Kind: InstSubgroup,
		Op:   ArithOp(op.Kind),
		Out:  out,
		Var:  v,
	}, nil
}

// lowerOptionalOut lowers op.Out when non-nil, leaving Out nil
// otherwise (e.g. AtomicStore, IndexAssign write through an operand
// rather than naming an output).
func (c *Compiler) lowerOptionalOut(v *kernel.Variable) (*Variable, error) {
	if v == nil {
		return nil, nil
	}
	lowered, err := c.lowerVariable(*v)
	if err != nil {
		return nil, err
	}
	return &lowered, nil
}
