// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kernel

// OperationKind enumerates every primitive the Operation Lowerer (C3)
// must translate to a target instruction. A table-driven tag is used
// in preference to one Go type per operator, keeping the dispatch a
// single exhaustive match.
type OperationKind uint16

const (
	// Arithmetic / logical family.
	OpAdd OperationKind = iota
	OpSub
	OpMul
	OpDiv
	OpModulo
	OpRemainder
	OpFma
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpNot
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
	OpAbs
	OpNeg
	OpMax
	OpMin
	OpSin
	OpCos
	OpTan
	OpTanh
	OpExp
	OpLog
	OpLog1p
	OpPowf
	OpSqrt
	OpRound
	OpFloor
	OpCeil
	OpErf
	OpRecip
	OpClamp
	OpDot
	OpMagnitude
	OpNormalize
	OpCast
	OpBitcast
	OpSelect
	OpInitLine
	OpSlice
	OpIndex
	OpUncheckedIndex
	OpIndexAssign
	OpUncheckedIndexAssign
	OpCopy
	OpCopyBulk

	// Atomic family.
	OpAtomicAdd
	OpAtomicSub
	OpAtomicMax
	OpAtomicMin
	OpAtomicAnd
	OpAtomicOr
	OpAtomicXor
	OpAtomicLoad
	OpAtomicStore
	OpAtomicSwap
	OpAtomicCompareAndSwap

	// Metadata family.
	OpMetaRank
	OpMetaShape
	OpMetaStride
	OpMetaLength
	OpMetaBufferLength

	// Subgroup family.
	OpSubgroupElect
	OpSubgroupAll
	OpSubgroupAny
	OpSubgroupBroadcast
	OpSubgroupSum
	OpSubgroupProd
	OpSubgroupMin
	OpSubgroupMax
)

// IsAtomic reports whether k belongs to the atomic operation family.
func (k OperationKind) IsAtomic() bool {
	return k >= OpAtomicAdd && k <= OpAtomicCompareAndSwap
}

// IsMetadata reports whether k belongs to the metadata operation family.
func (k OperationKind) IsMetadata() bool {
	return k >= OpMetaRank && k <= OpMetaBufferLength
}

// IsSubgroup reports whether k belongs to the subgroup operation family.
func (k OperationKind) IsSubgroup() bool {
	return k >= OpSubgroupElect && k <= OpSubgroupMax
}

// Op is a single operation within a Scope. Out is required
// for every kind except the ones noted at each call site; a nil Out
// where one is required is an ErrInvariantViolation.
type Op struct {
	Kind OperationKind

	// Out is the destination variable, when the operation's semantics
	// name one.
	Out *Variable

	// Lhs/Rhs/A/B/C are generic operand slots. Binary ops use Lhs/Rhs;
	// Fma uses A (multiplicand), B (multiplicand), C (addend); Clamp
	// uses Lhs (value), A (lo), B (hi); Select uses Lhs (cond), A
	// (if-true), B (if-false); atomic compare-and-swap uses Lhs
	// (expected) and Rhs (new value) against Var (the atomic target).
	Lhs Variable
	Rhs Variable
	A   Variable
	B   Variable
	C   Variable

	// Var is the single-operand subject: the unary input for
	// Abs/Neg/Sin/.../Cast/Bitcast/Erf/Recip/Sqrt/Round/Floor/Ceil, the
	// atomic target for the atomic family, the metadata subject for the
	// metadata family, and the collective input for subgroup
	// All/Any/Sum/Prod/Min/Max.
	Var Variable

	// Dim is the dimension index for Metadata Shape/Stride.
	Dim Variable

	// Checked distinguishes Index (true) from UncheckedIndex (false).
	// Both lower to the identical target instruction; the flag is
	// carried for completeness only.
	Checked bool
}
