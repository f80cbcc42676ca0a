// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kernel

import "fmt"

// FloatKind enumerates floating-point element widths.
type FloatKind uint8

const (
	FloatF16 FloatKind = iota
	FloatBF16
	FloatTF32
	FloatFlex32
	FloatF32
	FloatF64
)

func (k FloatKind) String() string {
	switch k {
	case FloatF16:
		return "f16"
	case FloatBF16:
		return "bf16"
	case FloatTF32:
		return "tf32"
	case FloatFlex32:
		return "flex32"
	case FloatF32:
		return "f32"
	case FloatF64:
		return "f64"
	default:
		return "float?"
	}
}

// IntKind enumerates signed-integer element widths.
type IntKind uint8

const (
	IntI8 IntKind = iota
	IntI16
	IntI32
	IntI64
)

func (k IntKind) String() string {
	switch k {
	case IntI8:
		return "i8"
	case IntI16:
		return "i16"
	case IntI32:
		return "i32"
	case IntI64:
		return "i64"
	default:
		return "int?"
	}
}

// UIntKind enumerates unsigned-integer element widths.
type UIntKind uint8

const (
	UIntU8 UIntKind = iota
	UIntU16
	UIntU32
	UIntU64
)

func (k UIntKind) String() string {
	switch k {
	case UIntU8:
		return "u8"
	case UIntU16:
		return "u16"
	case UIntU32:
		return "u32"
	case UIntU64:
		return "u64"
	default:
		return "uint?"
	}
}

// ElemTag distinguishes the variants of Elem.
type ElemTag uint8

const (
	ElemFloat ElemTag = iota
	ElemInt
	ElemUInt
	ElemBool
	ElemAtomicInt
	ElemAtomicUInt
)

// Elem is the closed set of source element kinds. At most one of the
// Float/Int/UInt/AtomicI/AtomicU fields is meaningful, selected by Tag
// (none for Bool).
type Elem struct {
	Tag     ElemTag
	Float   FloatKind
	Int     IntKind
	UInt    UIntKind
	AtomicI IntKind
	AtomicU UIntKind
}

func (e Elem) String() string {
	switch e.Tag {
	case ElemFloat:
		return e.Float.String()
	case ElemInt:
		return e.Int.String()
	case ElemUInt:
		return e.UInt.String()
	case ElemBool:
		return "bool"
	case ElemAtomicInt:
		return fmt.Sprintf("atomic<%s>", e.AtomicI)
	case ElemAtomicUInt:
		return fmt.Sprintf("atomic<%s>", e.AtomicU)
	default:
		return "elem?"
	}
}

// Float builds an Elem of kind Float(k).
func Float(k FloatKind) Elem { return Elem{Tag: ElemFloat, Float: k} }

// Int builds an Elem of kind Int(k).
func Int(k IntKind) Elem { return Elem{Tag: ElemInt, Int: k} }

// UInt builds an Elem of kind UInt(k).
func UInt(k UIntKind) Elem { return Elem{Tag: ElemUInt, UInt: k} }

// Bool is the Elem of kind Bool.
var Bool = Elem{Tag: ElemBool}

// AtomicInt builds an Elem of kind AtomicInt(k).
func AtomicInt(k IntKind) Elem { return Elem{Tag: ElemAtomicInt, AtomicI: k} }

// AtomicUInt builds an Elem of kind AtomicUInt(k).
func AtomicUInt(k UIntKind) Elem { return Elem{Tag: ElemAtomicUInt, AtomicU: k} }

// Item pairs an element kind with a vectorization factor. Valid
// vectorization is 1 (scalar), 2, 3, or 4 lanes.
type Item struct {
	Elem          Elem
	Vectorization uint8
}

// Scalar builds an Item with vectorization 1.
func Scalar(e Elem) Item { return Item{Elem: e, Vectorization: 1} }
