// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import "github.com/gogpu/kernelc/kernel"

// TargetBinding is a lowered input/output/named binding.
type TargetBinding struct {
	Visibility      kernel.Visibility
	Location        kernel.MemoryLocation
	Item            Item
	Size            uint32
	HasExtendedMeta bool
}

// SharedMemoryDecl is a workgroup-shared-memory declaration, emitted
// exactly once per unique id.
type SharedMemoryDecl struct {
	Index  uint32
	Item   Item
	Length uint32
}

// LocalArrayDecl is a function-local array declaration, emitted exactly
// once per unique id.
type LocalArrayDecl struct {
	Index  uint32
	Item   Item
	Depth  uint32
	Length uint32
}

// ConstantArrayDecl is a constant-array literal declaration.
type ConstantArrayDecl struct {
	Index  uint32
	Item   Item
	Size   uint32
	Values []Variable
}

// Body is the lowered instruction tree plus whether the composite "id"
// (absolute position) built-in was referenced.
type Body struct {
	Instructions []Instruction
	ID           bool
}

// CompiledShader is the compiler's output record.
type CompiledShader struct {
	Inputs  []TargetBinding
	Outputs []TargetBinding
	Named   map[string]TargetBinding

	SharedMemories []SharedMemoryDecl
	ConstArrays    []ConstantArrayDecl
	LocalArrays    []LocalArrayDecl

	WorkgroupSize kernel.CubeDim

	GlobalInvocationID  bool
	LocalInvocationIndex bool
	LocalInvocationID   bool
	WorkgroupID         bool
	NumWorkgroups       bool
	SubgroupSize        bool

	WorkgroupIDNoAxis   bool
	WorkgroupSizeNoAxis bool
	NumWorkgroupsNoAxis bool

	Body       Body
	Extensions []Extension

	// Mode is the execution mode Compile was called with. The lowering
	// never reads it.
	Mode kernel.ExecutionMode
}

// TotalSharedMemoryBytes sums the declared shared-memory size, for the
// caller to check against MaxSharedMemorySize.
func (s *CompiledShader) TotalSharedMemoryBytes() int {
	total := 0
	for _, sm := range s.SharedMemories {
		total += int(sm.Length) * sm.Item.Elem.Size() * int(sm.Item.Vectorization)
	}
	return total
}

func compileBinding(b kernel.Binding) (TargetBinding, error) {
	item, err := MapItem(b.Item())
	if err != nil {
		return TargetBinding{}, err
	}
	return TargetBinding{
		Visibility:      b.Visibility,
		Location:        b.Location,
		Item:            item,
		Size:            b.Size,
		HasExtendedMeta: b.HasExtendedMeta,
	}, nil
}

// Compile is the compile entry point: lowering def's body
// once and assembling the CompiledShader record plus its WGSL source
// text. ExecutionMode is not consumed by the lowering — it is carried
// through unchanged for the caller to use at pipeline-construction time.
func Compile(def *kernel.KernelDefinition, mode kernel.ExecutionMode, opts *Options) (*CompiledShader, string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	c := newCompiler(opts)

	shader, err := c.compileShader(def)
	if err != nil {
		return nil, "", err
	}
	shader.Mode = mode
	source, err := Emit(shader)
	if err != nil {
		return nil, "", err
	}
	return shader, source, nil
}

// compileShader is C7, the Shader Assembler: it drives the single
// recursive descent (C2-C6) and composes the final record.
func (c *Compiler) compileShader(def *kernel.KernelDefinition) (*CompiledShader, error) {
	c.numInputs = len(def.Inputs)
	c.numOutputs = len(def.Outputs)
	numMeta := uint32(len(def.Inputs) + len(def.Outputs))

	c.extMetaPos = make([]uint32, 0, numMeta)
	var numExt uint32
	for _, b := range def.Inputs {
		c.extMetaPos = append(c.extMetaPos, numExt)
		if b.HasExtendedMeta {
			numExt++
		}
	}
	for _, b := range def.Outputs {
		c.extMetaPos = append(c.extMetaPos, numExt)
		if b.HasExtendedMeta {
			numExt++
		}
	}
	c.numMeta = numMeta
	c.numExt = numExt

	instructions, err := c.compileScope(def.Body)
	if err != nil {
		return nil, err
	}
	extensions := collectExtensions(instructions, c.options.Apple)

	inputs := make([]TargetBinding, 0, len(def.Inputs))
	for _, b := range def.Inputs {
		tb, err := compileBinding(b)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, tb)
	}
	outputs := make([]TargetBinding, 0, len(def.Outputs))
	for _, b := range def.Outputs {
		tb, err := compileBinding(b)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, tb)
	}
	var named map[string]TargetBinding
	if len(def.Named) > 0 {
		named = make(map[string]TargetBinding, len(def.Named))
		for name, b := range def.Named {
			tb, err := compileBinding(b)
			if err != nil {
				return nil, err
			}
			named[name] = tb
		}
	}

	return &CompiledShader{
		Inputs:  inputs,
		Outputs: outputs,
		Named:   named,

		SharedMemories: c.sharedMemories,
		ConstArrays:    c.constArrays,
		LocalArrays:    c.localArrays,

		WorkgroupSize: def.CubeDim,

		// Flag-composition rules.
		GlobalInvocationID:   c.globalInvocationID || c.id,
		LocalInvocationIndex: c.localInvocationIndex,
		LocalInvocationID:    c.localInvocationID,
		NumWorkgroups:        c.id || c.numWorkgroups || c.numWorkgroupNoAxis || c.workgroupIDNoAxis,
		WorkgroupID:          c.workgroupID || c.workgroupIDNoAxis,
		SubgroupSize:         c.subgroupSize,

		WorkgroupIDNoAxis:   c.workgroupIDNoAxis,
		WorkgroupSizeNoAxis: c.workgroupSizeNoAxis,
		NumWorkgroupsNoAxis: c.numWorkgroupNoAxis,

		Body:       Body{Instructions: instructions, ID: c.id},
		Extensions: extensions,
	}, nil
}
