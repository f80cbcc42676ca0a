// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"sort"

	"github.com/gogpu/kernelc/wgsl"
	"github.com/gogpu/wgpu/types"
)

// BindGroupLayout builds the bind-group-layout descriptor a compiled
// shader requires: one storage-buffer entry per input, output, and
// named binding (in the same order writer.go assigns @binding numbers
// to them), plus the trailing metadata buffer. Named bindings are
// visited in sorted-name order, matching the WGSL emitted for the same
// shader — both must agree on binding numbers for the descriptor to
// describe the module it accompanies. Every entry is
// Storage{ReadOnly:false}, regardless of the binding's own visibility:
// read-only storage bindings are still declared read_write at the
// pipeline-layout level, with WGSL's own var<storage, read> annotation
// enforcing the narrower access.
func BindGroupLayout(label string, shader *wgsl.CompiledShader) *types.BindGroupLayoutDescriptor {
	entries := make([]types.BindGroupLayoutEntry, 0, len(shader.Inputs)+len(shader.Outputs)+len(shader.Named)+1)
	binding := uint32(0)

	addEntry := func(b wgsl.TargetBinding) {
		entries = append(entries, types.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: types.ShaderStageCompute,
			Buffer: &types.BufferBindingLayout{
				Type: types.BufferBindingTypeStorage,
			},
		})
		binding++
	}

	for _, b := range shader.Inputs {
		addEntry(b)
	}
	for _, b := range shader.Outputs {
		addEntry(b)
	}
	names := make([]string, 0, len(shader.Named))
	for name := range shader.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		addEntry(shader.Named[name])
	}

	if len(entries) > 0 {
		entries = append(entries, types.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: types.ShaderStageCompute,
			Buffer:     &types.BufferBindingLayout{Type: types.BufferBindingTypeStorage},
		})
	}

	return &types.BindGroupLayoutDescriptor{Label: label, Entries: entries}
}
