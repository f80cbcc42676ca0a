// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kerneljson

import (
	"fmt"

	"github.com/gogpu/kernelc/kernel"
)

var operationKindNames = map[string]kernel.OperationKind{
	"add": kernel.OpAdd, "sub": kernel.OpSub, "mul": kernel.OpMul, "div": kernel.OpDiv,
	"modulo": kernel.OpModulo, "remainder": kernel.OpRemainder, "fma": kernel.OpFma,
	"eq": kernel.OpEq, "ne": kernel.OpNe, "lt": kernel.OpLt, "le": kernel.OpLe,
	"gt": kernel.OpGt, "ge": kernel.OpGe, "and": kernel.OpAnd, "or": kernel.OpOr,
	"not": kernel.OpNot, "bitwise_and": kernel.OpBitwiseAnd, "bitwise_or": kernel.OpBitwiseOr,
	"bitwise_xor": kernel.OpBitwiseXor, "shift_left": kernel.OpShiftLeft,
	"shift_right": kernel.OpShiftRight, "abs": kernel.OpAbs, "neg": kernel.OpNeg,
	"max": kernel.OpMax, "min": kernel.OpMin, "sin": kernel.OpSin, "cos": kernel.OpCos,
	"tan": kernel.OpTan, "tanh": kernel.OpTanh, "exp": kernel.OpExp, "log": kernel.OpLog,
	"log1p": kernel.OpLog1p, "powf": kernel.OpPowf, "sqrt": kernel.OpSqrt,
	"round": kernel.OpRound, "floor": kernel.OpFloor, "ceil": kernel.OpCeil,
	"erf": kernel.OpErf, "recip": kernel.OpRecip, "clamp": kernel.OpClamp,
	"dot": kernel.OpDot, "magnitude": kernel.OpMagnitude, "normalize": kernel.OpNormalize,
	"cast": kernel.OpCast, "bitcast": kernel.OpBitcast, "select": kernel.OpSelect,
	"init_line": kernel.OpInitLine, "slice": kernel.OpSlice, "index": kernel.OpIndex,
	"unchecked_index": kernel.OpUncheckedIndex, "index_assign": kernel.OpIndexAssign,
	"unchecked_index_assign": kernel.OpUncheckedIndexAssign, "copy": kernel.OpCopy,
	"copy_bulk": kernel.OpCopyBulk,

	"atomic_add": kernel.OpAtomicAdd, "atomic_sub": kernel.OpAtomicSub,
	"atomic_max": kernel.OpAtomicMax, "atomic_min": kernel.OpAtomicMin,
	"atomic_and": kernel.OpAtomicAnd, "atomic_or": kernel.OpAtomicOr,
	"atomic_xor": kernel.OpAtomicXor, "atomic_load": kernel.OpAtomicLoad,
	"atomic_store": kernel.OpAtomicStore, "atomic_swap": kernel.OpAtomicSwap,
	"atomic_compare_and_swap": kernel.OpAtomicCompareAndSwap,

	"meta_rank": kernel.OpMetaRank, "meta_shape": kernel.OpMetaShape,
	"meta_stride": kernel.OpMetaStride, "meta_length": kernel.OpMetaLength,
	"meta_buffer_length": kernel.OpMetaBufferLength,

	"subgroup_elect": kernel.OpSubgroupElect, "subgroup_all": kernel.OpSubgroupAll,
	"subgroup_any": kernel.OpSubgroupAny, "subgroup_broadcast": kernel.OpSubgroupBroadcast,
	"subgroup_sum": kernel.OpSubgroupSum, "subgroup_prod": kernel.OpSubgroupProd,
	"subgroup_min": kernel.OpSubgroupMin, "subgroup_max": kernel.OpSubgroupMax,
}

var operationKindJSONNames = func() map[kernel.OperationKind]string {
	m := make(map[kernel.OperationKind]string, len(operationKindNames))
	for name, k := range operationKindNames {
		m[k] = name
	}
	return m
}()

func (o op) toKernel() (kernel.Op, error) {
	kind, ok := operationKindNames[o.Kind]
	if !ok {
		return kernel.Op{}, fmt.Errorf("unknown operation kind %q", o.Kind)
	}
	out, err := toKernelVarPtrOut(o.Out)
	if err != nil {
		return kernel.Op{}, err
	}
	lhs, err := o.Lhs.toKernel()
	if err != nil {
		return kernel.Op{}, err
	}
	rhs, err := o.Rhs.toKernel()
	if err != nil {
		return kernel.Op{}, err
	}
	a, err := o.A.toKernel()
	if err != nil {
		return kernel.Op{}, err
	}
	b, err := o.B.toKernel()
	if err != nil {
		return kernel.Op{}, err
	}
	c, err := o.C.toKernel()
	if err != nil {
		return kernel.Op{}, err
	}
	v, err := o.Var.toKernel()
	if err != nil {
		return kernel.Op{}, err
	}
	dim, err := o.Dim.toKernel()
	if err != nil {
		return kernel.Op{}, err
	}
	return kernel.Op{
		Kind: kind, Out: out, Lhs: lhs, Rhs: rhs, A: a, B: b, C: c, Var: v, Dim: dim,
		Checked: o.Checked,
	}, nil
}

func fromKernelOp(o kernel.Op) op {
	return op{
		Kind:    operationKindJSONNames[o.Kind],
		Out:     fromKernelVarPtrOut(o.Out),
		Lhs:     fromKernelVariable(o.Lhs),
		Rhs:     fromKernelVariable(o.Rhs),
		A:       fromKernelVariable(o.A),
		B:       fromKernelVariable(o.B),
		C:       fromKernelVariable(o.C),
		Var:     fromKernelVariable(o.Var),
		Dim:     fromKernelVariable(o.Dim),
		Checked: o.Checked,
	}
}
