// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

// BuiltinTarget enumerates the WGSL-side built-in parameters a compute
// entry point may need to declare.
type BuiltinTarget uint8

const (
	BuiltinID BuiltinTarget = iota
	BuiltinLocalInvocationIndex
	BuiltinLocalInvocationIDX
	BuiltinLocalInvocationIDY
	BuiltinLocalInvocationIDZ
	BuiltinWorkgroupIDX
	BuiltinWorkgroupIDY
	BuiltinWorkgroupIDZ
	BuiltinGlobalInvocationIDX
	BuiltinGlobalInvocationIDY
	BuiltinGlobalInvocationIDZ
	BuiltinWorkgroupSizeX
	BuiltinWorkgroupSizeY
	BuiltinWorkgroupSizeZ
	BuiltinNumWorkgroupsX
	BuiltinNumWorkgroupsY
	BuiltinNumWorkgroupsZ
	BuiltinWorkgroupID
	BuiltinWorkgroupSize
	BuiltinNumWorkgroups
	BuiltinSubgroupSize
)

// VarKind discriminates the target Variable tagged union.
type VarKind uint8

const (
	VarGlobalInputArray VarKind = iota
	VarGlobalOutputArray
	VarGlobalScalar
	VarLocal
	VarLocalBinding
	VarSlice
	VarConstantScalar
	VarConstantArray
	VarSharedMemory
	VarLocalArray
	VarBuiltinRef
)

// ConstValue mirrors kernel.ConstantValue for the target side.
type ConstValue struct {
	Elem Elem
	Bits uint64
}

// Variable is the target-dialect form of a kernel.Variable.
type Variable struct {
	Kind    VarKind
	ID      uint32
	Depth   uint32
	Length  uint32
	Item    Item
	Value   ConstValue
	Builtin BuiltinTarget
}

// InstructionKind enumerates the target instruction forms the Operation
// and Control-Flow Lowerers produce.
type InstructionKind uint16

const (
	InstAssign InstructionKind = iota
	InstArith // generic arithmetic/logical/transcendental op, see Instruction.Op
	InstAtomic
	InstMetadata     // a load from a fixed metadata-table offset (Rank, Length, BufferLength)
	InstExtendedMeta // a load from info[info_offset]+dim (Shape, Stride)
	InstLength       // length-of-local-array/slice, not resolved against metadata
	InstIf
	InstIfElse
	InstSwitch
	InstRangeLoop
	InstLoop
	InstReturn
	InstBreak
	InstWorkgroupBarrier
	InstStorageBarrier
	InstSubgroup
	InstDeclareVariable
)

// ArithOp names the specific arithmetic/logical/atomic/subgroup
// operation an InstArith/InstAtomic/InstSubgroup instruction performs.
// It is copied from kernel.OperationKind at lowering time.
type ArithOp uint16

// Instruction is one lowered target instruction.
type Instruction struct {
	Kind InstructionKind
	Op   ArithOp

	Out *Variable
	Lhs Variable
	Rhs Variable
	A   Variable
	B   Variable
	C   Variable
	Var Variable
	Dim Variable

	// DeclareVariable / Assign.
	DeclaredVar Variable

	// If / IfElse / Switch.
	Cond              Variable
	Then              []Instruction
	Else              []Instruction
	SwitchCases       []SwitchCaseInst
	SwitchDefault     []Instruction

	// RangeLoop.
	RangeI     Variable
	RangeStart Variable
	RangeEnd   Variable
	RangeStep  Variable
	HasStep    bool
	Inclusive  bool

	// Metadata offset for InstMetadata/InstExtendedMeta.
	InfoOffset Variable
}

// SwitchCaseInst is one lowered Switch arm.
type SwitchCaseInst struct {
	Value        Variable
	Instructions []Instruction
}
