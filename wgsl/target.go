// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"fmt"

	"github.com/gogpu/kernelc/kernel"
)

// Elem is the target-dialect scalar element.
type Elem uint8

const (
	ElemF32 Elem = iota
	ElemI32
	ElemU32
	ElemBool
	ElemAtomicI32
	ElemAtomicU32
)

// WGSLName returns the literal WGSL spelling of e.
func (e Elem) WGSLName() string {
	switch e {
	case ElemF32:
		return "f32"
	case ElemI32:
		return "i32"
	case ElemU32:
		return "u32"
	case ElemBool:
		return "bool"
	case ElemAtomicI32:
		return "atomic<i32>"
	case ElemAtomicU32:
		return "atomic<u32>"
	default:
		return "?"
	}
}

// Size returns the byte size of e's target-dialect representation.
func (e Elem) Size() int {
	switch e {
	case ElemF32, ElemI32, ElemU32, ElemAtomicI32, ElemAtomicU32:
		return 4
	case ElemBool:
		return 4 // WGSL has no storable bool; hosts pack it as u32.
	default:
		return 0
	}
}

// Item is a target Elem paired with a vectorization factor of 1-4.
type Item struct {
	Elem          Elem
	Vectorization uint8
}

// WGSLName returns the literal WGSL spelling of it (e.g. "f32",
// "vec4<f32>").
func (it Item) WGSLName() string {
	if it.Vectorization == 1 {
		return it.Elem.WGSLName()
	}
	return fmt.Sprintf("vec%d<%s>", it.Vectorization, it.Elem.WGSLName())
}

// MapElem is the Type Mapper (C1): it maps a source element kind to its
// WGSL counterpart, or fails with ErrUnsupportedType for anything
// outside the accepted subset.
//
// Flex32 collapses to 32-bit float — it is a host-side hint only.
func MapElem(e kernel.Elem) (Elem, error) {
	switch e.Tag {
	case kernel.ElemFloat:
		switch e.Float {
		case kernel.FloatFlex32, kernel.FloatF32:
			return ElemF32, nil
		default:
			return 0, kernel.NewError(kernel.ErrUnsupportedType,
				fmt.Sprintf("%s is not a valid WGSL element", e))
		}
	case kernel.ElemInt:
		if e.Int == kernel.IntI32 {
			return ElemI32, nil
		}
		return 0, kernel.NewError(kernel.ErrUnsupportedType,
			fmt.Sprintf("%s is not a valid WGSL element", e))
	case kernel.ElemUInt:
		if e.UInt == kernel.UIntU32 {
			return ElemU32, nil
		}
		return 0, kernel.NewError(kernel.ErrUnsupportedType,
			fmt.Sprintf("%s is not a valid WGSL element", e))
	case kernel.ElemBool:
		return ElemBool, nil
	case kernel.ElemAtomicInt:
		if e.AtomicI == kernel.IntI32 {
			return ElemAtomicI32, nil
		}
		return 0, kernel.NewError(kernel.ErrUnsupportedType,
			fmt.Sprintf("atomic<%s> is not a valid WGSL element", e.AtomicI))
	case kernel.ElemAtomicUInt:
		if e.AtomicU == kernel.UIntU32 {
			return ElemAtomicU32, nil
		}
		return 0, kernel.NewError(kernel.ErrUnsupportedType,
			fmt.Sprintf("atomic<%s> is not a valid WGSL element", e.AtomicU))
	default:
		return 0, kernel.NewError(kernel.ErrUnsupportedType, "unrecognized element kind")
	}
}

// MapItem is the Type Mapper (C1) applied to an (Elem, vectorization)
// pair. Vectorization outside 1-4 fails with ErrUnsupportedVectorization.
func MapItem(it kernel.Item) (Item, error) {
	elem, err := MapElem(it.Elem)
	if err != nil {
		return Item{}, err
	}
	switch it.Vectorization {
	case 1, 2, 3, 4:
		return Item{Elem: elem, Vectorization: it.Vectorization}, nil
	default:
		return Item{}, kernel.NewError(kernel.ErrUnsupportedVectorization,
			fmt.Sprintf("unsupported vectorization scheme %d", it.Vectorization))
	}
}

// ElemSize returns the byte size of a source Elem's target-dialect
// representation.
func ElemSize(e kernel.Elem) (int, error) {
	target, err := MapElem(e)
	if err != nil {
		return 0, err
	}
	return target.Size(), nil
}

// MaxSharedMemorySize is the shared-memory capacity query:
// the maximum total declared shared-memory size per kernel, in bytes.
const MaxSharedMemorySize = 32768
