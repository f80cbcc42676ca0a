// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kerneljson

import (
	"fmt"

	"github.com/gogpu/kernelc/kernel"
)

var floatWidths = map[string]kernel.FloatKind{
	"f16": kernel.FloatF16, "bf16": kernel.FloatBF16, "tf32": kernel.FloatTF32,
	"flex32": kernel.FloatFlex32, "f32": kernel.FloatF32, "f64": kernel.FloatF64,
}

var intWidths = map[string]kernel.IntKind{
	"i8": kernel.IntI8, "i16": kernel.IntI16, "i32": kernel.IntI32, "i64": kernel.IntI64,
}

var uintWidths = map[string]kernel.UIntKind{
	"u8": kernel.UIntU8, "u16": kernel.UIntU16, "u32": kernel.UIntU32, "u64": kernel.UIntU64,
}

func (e elem) toKernel() (kernel.Elem, error) {
	switch e.Tag {
	case "float":
		k, ok := floatWidths[e.Width]
		if !ok {
			return kernel.Elem{}, fmt.Errorf("unknown float width %q", e.Width)
		}
		return kernel.Float(k), nil
	case "int":
		k, ok := intWidths[e.Width]
		if !ok {
			return kernel.Elem{}, fmt.Errorf("unknown int width %q", e.Width)
		}
		return kernel.Int(k), nil
	case "uint":
		k, ok := uintWidths[e.Width]
		if !ok {
			return kernel.Elem{}, fmt.Errorf("unknown uint width %q", e.Width)
		}
		return kernel.UInt(k), nil
	case "bool":
		return kernel.Bool, nil
	case "atomic_int":
		k, ok := intWidths[e.Width]
		if !ok {
			return kernel.Elem{}, fmt.Errorf("unknown atomic int width %q", e.Width)
		}
		return kernel.AtomicInt(k), nil
	case "atomic_uint":
		k, ok := uintWidths[e.Width]
		if !ok {
			return kernel.Elem{}, fmt.Errorf("unknown atomic uint width %q", e.Width)
		}
		return kernel.AtomicUInt(k), nil
	default:
		return kernel.Elem{}, fmt.Errorf("unknown elem tag %q", e.Tag)
	}
}

func fromKernelElem(e kernel.Elem) elem {
	switch e.Tag {
	case kernel.ElemFloat:
		return elem{Tag: "float", Width: e.Float.String()}
	case kernel.ElemInt:
		return elem{Tag: "int", Width: e.Int.String()}
	case kernel.ElemUInt:
		return elem{Tag: "uint", Width: e.UInt.String()}
	case kernel.ElemBool:
		return elem{Tag: "bool"}
	case kernel.ElemAtomicInt:
		return elem{Tag: "atomic_int", Width: e.AtomicI.String()}
	case kernel.ElemAtomicUInt:
		return elem{Tag: "atomic_uint", Width: e.AtomicU.String()}
	default:
		return elem{Tag: "?"}
	}
}

func (it item) toKernel() (kernel.Item, error) {
	e, err := it.Elem.toKernel()
	if err != nil {
		return kernel.Item{}, err
	}
	return kernel.Item{Elem: e, Vectorization: it.Vectorization}, nil
}

func fromKernelItem(it kernel.Item) item {
	return item{Elem: fromKernelElem(it.Elem), Vectorization: it.Vectorization}
}

var visibilities = map[string]kernel.Visibility{
	"read": kernel.VisibilityRead, "read_write": kernel.VisibilityReadWrite,
}
var visibilityNames = map[kernel.Visibility]string{
	kernel.VisibilityRead: "read", kernel.VisibilityReadWrite: "read_write",
}

var locations = map[string]kernel.MemoryLocation{
	"storage": kernel.MemoryStorage, "shared": kernel.MemoryShared,
}
var locationNames = map[kernel.MemoryLocation]string{
	kernel.MemoryStorage: "storage", kernel.MemoryShared: "shared",
}

func (b binding) toKernel() (kernel.Binding, error) {
	vis, ok := visibilities[b.Visibility]
	if !ok {
		return kernel.Binding{}, fmt.Errorf("unknown visibility %q", b.Visibility)
	}
	loc, ok := locations[b.Location]
	if !ok {
		return kernel.Binding{}, fmt.Errorf("unknown location %q", b.Location)
	}
	e, err := b.Elem.toKernel()
	if err != nil {
		return kernel.Binding{}, err
	}
	return kernel.Binding{
		Visibility:      vis,
		Location:        loc,
		Elem:            e,
		Vectorization:   b.Vectorization,
		Size:            b.Size,
		HasExtendedMeta: b.HasExtendedMeta,
	}, nil
}

func fromKernelBinding(b kernel.Binding) binding {
	return binding{
		Visibility:      visibilityNames[b.Visibility],
		Location:        locationNames[b.Location],
		Elem:            fromKernelElem(b.Elem),
		Vectorization:   b.Vectorization,
		Size:            b.Size,
		HasExtendedMeta: b.HasExtendedMeta,
	}
}

var builtinNames = map[string]kernel.Builtin{
	"absolute_pos": kernel.AbsolutePos, "absolute_pos_x": kernel.AbsolutePosX,
	"absolute_pos_y": kernel.AbsolutePosY, "absolute_pos_z": kernel.AbsolutePosZ,
	"unit_pos": kernel.UnitPos, "unit_pos_x": kernel.UnitPosX,
	"unit_pos_y": kernel.UnitPosY, "unit_pos_z": kernel.UnitPosZ,
	"cube_pos_x": kernel.CubePosX, "cube_pos_y": kernel.CubePosY,
	"cube_pos_z": kernel.CubePosZ, "cube_pos": kernel.CubePos,
	"cube_dim_x": kernel.CubeDimX, "cube_dim_y": kernel.CubeDimY,
	"cube_dim_z": kernel.CubeDimZ, "cube_dim": kernel.CubeDim,
	"cube_count_x": kernel.CubeCountX, "cube_count_y": kernel.CubeCountY,
	"cube_count_z": kernel.CubeCountZ, "cube_count": kernel.CubeCount,
	"subcube_dim": kernel.SubcubeDim,
}

var builtinJSONNames = func() map[kernel.Builtin]string {
	m := make(map[kernel.Builtin]string, len(builtinNames))
	for name, b := range builtinNames {
		m[b] = name
	}
	return m
}()

var variableKindNames = map[string]kernel.VariableKind{
	"global_input_array": kernel.KindGlobalInputArray, "global_output_array": kernel.KindGlobalOutputArray,
	"global_scalar": kernel.KindGlobalScalar, "local": kernel.KindLocal, "versioned": kernel.KindVersioned,
	"local_binding": kernel.KindLocalBinding, "slice": kernel.KindSlice,
	"constant_scalar": kernel.KindConstantScalar, "constant_array": kernel.KindConstantArray,
	"shared_memory": kernel.KindSharedMemory, "local_array": kernel.KindLocalArray,
	"builtin": kernel.KindBuiltin, "matrix": kernel.KindMatrix,
}

var variableKindJSONNames = func() map[kernel.VariableKind]string {
	m := make(map[kernel.VariableKind]string, len(variableKindNames))
	for name, k := range variableKindNames {
		m[k] = name
	}
	return m
}()

func (v variable) toKernel() (kernel.Variable, error) {
	kind, ok := variableKindNames[v.Kind]
	if !ok {
		return kernel.Variable{}, fmt.Errorf("unknown variable kind %q", v.Kind)
	}
	it, err := v.Item.toKernel()
	if err != nil {
		return kernel.Variable{}, err
	}
	out := kernel.Variable{Kind: kind, Item: it, ID: v.ID, Depth: v.Depth, Length: v.Length}
	if v.Value != nil {
		ve, err := v.Value.Elem.toKernel()
		if err != nil {
			return kernel.Variable{}, err
		}
		out.Value = kernel.ConstantValue{Elem: ve, Bits: v.Value.Bits}
	}
	if kind == kernel.KindBuiltin {
		b, ok := builtinNames[v.Builtin]
		if !ok {
			return kernel.Variable{}, fmt.Errorf("unknown builtin %q", v.Builtin)
		}
		out.Builtin = b
	}
	return out, nil
}

func fromKernelVariable(v kernel.Variable) variable {
	out := variable{
		Kind: variableKindJSONNames[v.Kind], Item: fromKernelItem(v.Item),
		ID: v.ID, Depth: v.Depth, Length: v.Length,
	}
	if v.Kind == kernel.KindConstantScalar {
		out.Value = &constValue{Elem: fromKernelElem(v.Value.Elem), Bits: v.Value.Bits}
	}
	if v.Kind == kernel.KindBuiltin {
		out.Builtin = builtinJSONNames[v.Builtin]
	}
	return out
}

func toKernelVarPtrOut(v *variable) (*kernel.Variable, error) {
	if v == nil {
		return nil, nil
	}
	out, err := v.toKernel()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func fromKernelVarPtrOut(v *kernel.Variable) *variable {
	if v == nil {
		return nil
	}
	out := fromKernelVariable(*v)
	return &out
}
