// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kernel

// VariableKind discriminates the Variable tagged union.
type VariableKind uint8

const (
	KindGlobalInputArray VariableKind = iota
	KindGlobalOutputArray
	KindGlobalScalar
	KindLocal
	KindVersioned
	KindLocalBinding
	KindSlice
	KindConstantScalar
	KindConstantArray
	KindSharedMemory
	KindLocalArray
	KindBuiltin
	// KindMatrix is a cooperative-matrix reference. It is never valid
	// input to the compiler: any reference triggers ErrUnsupportedFeature.
	KindMatrix
)

// ConstantValue is a literal scalar value carried by a ConstantScalar
// variable or a ConstantArray element.
type ConstantValue struct {
	Elem Elem
	// Bits holds the value's bit pattern. Float values are stored via
	// math.Float32bits by the caller; integers are sign/zero-extended
	// into the low bits. Only the low 32 bits are emitted.
	Bits uint64
}

// Variable is a tagged reference into the kernel IR. Exactly the fields relevant to Kind are meaningful.
type Variable struct {
	Kind VariableKind
	Item Item

	// ID identifies GlobalInputArray/GlobalOutputArray/GlobalScalar/
	// Local/Versioned/LocalBinding/Slice/ConstantArray/SharedMemory/
	// LocalArray variables.
	ID uint32

	// Depth is the nesting depth of the declaring scope, for
	// Local/Versioned/Slice/LocalArray variables.
	Depth uint32

	// Length is the element count of ConstantArray/SharedMemory/
	// LocalArray variables.
	Length uint32

	// Value holds the literal for ConstantScalar variables.
	Value ConstantValue

	// Builtin identifies the built-in kind for KindBuiltin variables.
	Builtin Builtin
}

// GlobalInputArray builds a Variable referencing input binding id.
func GlobalInputArray(id uint32, item Item) Variable {
	return Variable{Kind: KindGlobalInputArray, ID: id, Item: item}
}

// GlobalOutputArray builds a Variable referencing output binding id.
func GlobalOutputArray(id uint32, item Item) Variable {
	return Variable{Kind: KindGlobalOutputArray, ID: id, Item: item}
}

// GlobalScalar builds a Variable referencing a push-constant-like value.
func GlobalScalar(id uint32, item Item) Variable {
	return Variable{Kind: KindGlobalScalar, ID: id, Item: item}
}

// Local builds a mutable local Variable at a given scope depth.
func Local(id, depth uint32, item Item) Variable {
	return Variable{Kind: KindLocal, ID: id, Depth: depth, Item: item}
}

// Versioned builds an SSA-versioned mutable local Variable.
func Versioned(id, depth uint32, item Item) Variable {
	return Variable{Kind: KindVersioned, ID: id, Depth: depth, Item: item}
}

// LocalBinding builds an immutable SSA-like local Variable.
func LocalBinding(id uint32, item Item) Variable {
	return Variable{Kind: KindLocalBinding, ID: id, Item: item}
}

// Slice builds a Variable referencing into an array without being
// physically declared.
func Slice(id, depth uint32, item Item) Variable {
	return Variable{Kind: KindSlice, ID: id, Depth: depth, Item: item}
}

// ConstantScalar builds a literal-valued Variable.
func ConstantScalar(v ConstantValue) Variable {
	return Variable{Kind: KindConstantScalar, Item: Scalar(v.Elem), Value: v}
}

// ConstantArrayVar builds a Variable referencing a declared constant
// array.
func ConstantArrayVar(id uint32, item Item, length uint32) Variable {
	return Variable{Kind: KindConstantArray, ID: id, Item: item, Length: length}
}

// SharedMemoryVar builds a Variable referencing workgroup-shared memory.
func SharedMemoryVar(id uint32, item Item, length uint32) Variable {
	return Variable{Kind: KindSharedMemory, ID: id, Item: item, Length: length}
}

// LocalArrayVar builds a Variable referencing a function-local array.
func LocalArrayVar(id, depth uint32, item Item, length uint32) Variable {
	return Variable{Kind: KindLocalArray, ID: id, Depth: depth, Item: item, Length: length}
}

// BuiltinVar builds a Variable referencing a GPU built-in.
func BuiltinVar(b Builtin, item Item) Variable {
	return Variable{Kind: KindBuiltin, Builtin: b, Item: item}
}

// MatrixVar builds the unsupported cooperative-matrix Variable.
func MatrixVar(item Item) Variable {
	return Variable{Kind: KindMatrix, Item: item}
}

// IsGlobalArray reports whether v addresses a global input or output
// array — the only variables with an ext_meta_pos.
func (v Variable) IsGlobalArray() bool {
	return v.Kind == KindGlobalInputArray || v.Kind == KindGlobalOutputArray
}
