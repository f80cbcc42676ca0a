// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"fmt"

	"github.com/gogpu/kernelc/kernel"
)

// lowerVariable is the Variable Lowerer (C2): a pure translation for
// scalars, constants, globals, locals, and slices, and a side-effecting
// one for shared memory (records a declaration keyed by id on first
// sight), local arrays (same), and built-ins (sets the relevant "used"
// flag).
func (c *Compiler) lowerVariable(v kernel.Variable) (Variable, error) {
	// An operand slot an operation does not use holds the zero Variable;
	// it lowers to the zero target Variable without type checking.
	if v == (kernel.Variable{}) {
		return Variable{}, nil
	}
	item, err := MapItem(v.Item)
	if err != nil {
		return Variable{}, err
	}

	switch v.Kind {
	case kernel.KindGlobalInputArray:
		return Variable{Kind: VarGlobalInputArray, ID: v.ID, Item: item}, nil
	case kernel.KindGlobalOutputArray:
		return Variable{Kind: VarGlobalOutputArray, ID: v.ID, Item: item}, nil
	case kernel.KindGlobalScalar:
		return Variable{Kind: VarGlobalScalar, ID: v.ID, Item: item}, nil
	case kernel.KindLocal, kernel.KindVersioned:
		return Variable{Kind: VarLocal, ID: v.ID, Depth: v.Depth, Item: item}, nil
	case kernel.KindLocalBinding:
		return Variable{Kind: VarLocalBinding, ID: v.ID, Item: item}, nil
	case kernel.KindSlice:
		return Variable{Kind: VarSlice, ID: v.ID, Depth: v.Depth, Item: item}, nil
	case kernel.KindConstantScalar:
		return Variable{
			Kind:  VarConstantScalar,
			Item:  item,
			Value: ConstValue{Elem: item.Elem, Bits: v.Value.Bits},
		}, nil
	case kernel.KindSharedMemory:
		if !c.hasSharedMemory(v.ID) {
			c.sharedMemories = append(c.sharedMemories, SharedMemoryDecl{
				Index: v.ID, Item: item, Length: v.Length,
			})
		}
		return Variable{Kind: VarSharedMemory, ID: v.ID, Item: item, Length: v.Length}, nil
	case kernel.KindConstantArray:
		return Variable{Kind: VarConstantArray, ID: v.ID, Item: item, Length: v.Length}, nil
	case kernel.KindLocalArray:
		if !c.hasLocalArray(v.ID) {
			c.localArrays = append(c.localArrays, LocalArrayDecl{
				Index: v.ID, Item: item, Depth: v.Depth, Length: v.Length,
			})
		}
		return Variable{Kind: VarLocalArray, ID: v.ID, Depth: v.Depth, Item: item, Length: v.Length}, nil
	case kernel.KindBuiltin:
		return c.lowerBuiltin(v.Builtin, item)
	case kernel.KindMatrix:
		return Variable{}, kernel.NewError(kernel.ErrUnsupportedFeature,
			"cooperative matrix-multiply and accumulate not supported")
	default:
		return Variable{}, kernel.NewError(kernel.ErrInvariantViolation,
			fmt.Sprintf("unrecognized variable kind %d", v.Kind))
	}
}

func (c *Compiler) hasSharedMemory(id uint32) bool {
	for _, s := range c.sharedMemories {
		if s.Index == id {
			return true
		}
	}
	return false
}

func (c *Compiler) hasLocalArray(id uint32) bool {
	for _, l := range c.localArrays {
		if l.Index == id {
			return true
		}
	}
	return false
}

// lowerBuiltin implements the built-in mapping table: each entry sets
// exactly the flag(s) named in the table.
func (c *Compiler) lowerBuiltin(b kernel.Builtin, item Item) (Variable, error) {
	switch b {
	case kernel.AbsolutePos:
		c.id = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinID, Item: item}, nil
	case kernel.UnitPos:
		c.localInvocationIndex = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinLocalInvocationIndex, Item: item}, nil
	case kernel.UnitPosX:
		c.localInvocationID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinLocalInvocationIDX, Item: item}, nil
	case kernel.UnitPosY:
		c.localInvocationID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinLocalInvocationIDY, Item: item}, nil
	case kernel.UnitPosZ:
		c.localInvocationID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinLocalInvocationIDZ, Item: item}, nil
	case kernel.CubePosX:
		c.workgroupID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupIDX, Item: item}, nil
	case kernel.CubePosY:
		c.workgroupID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupIDY, Item: item}, nil
	case kernel.CubePosZ:
		c.workgroupID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupIDZ, Item: item}, nil
	case kernel.AbsolutePosX:
		c.globalInvocationID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinGlobalInvocationIDX, Item: item}, nil
	case kernel.AbsolutePosY:
		c.globalInvocationID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinGlobalInvocationIDY, Item: item}, nil
	case kernel.AbsolutePosZ:
		c.globalInvocationID = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinGlobalInvocationIDZ, Item: item}, nil
	case kernel.CubeDimX:
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupSizeX, Item: item}, nil
	case kernel.CubeDimY:
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupSizeY, Item: item}, nil
	case kernel.CubeDimZ:
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupSizeZ, Item: item}, nil
	case kernel.CubeCountX:
		c.numWorkgroups = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinNumWorkgroupsX, Item: item}, nil
	case kernel.CubeCountY:
		c.numWorkgroups = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinNumWorkgroupsY, Item: item}, nil
	case kernel.CubeCountZ:
		c.numWorkgroups = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinNumWorkgroupsZ, Item: item}, nil
	case kernel.CubePos:
		c.workgroupIDNoAxis = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupID, Item: item}, nil
	case kernel.CubeDim:
		c.workgroupSizeNoAxis = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinWorkgroupSize, Item: item}, nil
	case kernel.CubeCount:
		c.numWorkgroupNoAxis = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinNumWorkgroups, Item: item}, nil
	case kernel.SubcubeDim:
		c.subgroupSize = true
		return Variable{Kind: VarBuiltinRef, Builtin: BuiltinSubgroupSize, Item: item}, nil
	default:
		return Variable{}, kernel.NewError(kernel.ErrInvariantViolation,
			fmt.Sprintf("unrecognized builtin %d", b))
	}
}

// extMetaPos is valid only for global input/output arrays; it returns
// ErrInvariantViolation otherwise.
func (c *Compiler) extMetaPos(v kernel.Variable) (uint32, error) {
	var pos int
	switch v.Kind {
	case kernel.KindGlobalInputArray:
		pos = int(v.ID)
	case kernel.KindGlobalOutputArray:
		pos = c.numInputs + int(v.ID)
	default:
		return 0, kernel.NewError(kernel.ErrInvariantViolation,
			"only global arrays have metadata")
	}
	if pos < 0 || pos >= len(c.extMetaPos) {
		return 0, kernel.NewError(kernel.ErrInvariantViolation,
			fmt.Sprintf("metadata position %d out of range", pos))
	}
	return c.extMetaPos[pos], nil
}

// globalIndex implements the global_index(var) rule: id for input
// arrays, num_inputs+id for output arrays.
func (c *Compiler) globalIndex(v kernel.Variable) (uint32, error) {
	switch v.Kind {
	case kernel.KindGlobalInputArray:
		return v.ID, nil
	case kernel.KindGlobalOutputArray:
		return uint32(c.numInputs) + v.ID, nil
	default:
		return 0, kernel.NewError(kernel.ErrInvariantViolation,
			"only global arrays have a metadata index")
	}
}
