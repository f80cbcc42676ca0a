// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import "github.com/gogpu/wgpu/types"

// ShaderModule builds the shader-module descriptor for a compiled
// shader's WGSL source.
func ShaderModule(label, source string) *types.ShaderModuleDescriptor {
	return &types.ShaderModuleDescriptor{
		Label:  label,
		Source: types.ShaderSourceWGSL{Code: source},
	}
}

// ComputePipeline is the descriptor bundle a caller submits to a real
// device to create the compute pipeline for a compiled shader: the
// bind-group layout, the shader module, and the entry point name.
// EntryPoint is always "main" — the Shader Assembler (C7) emits a
// single fixed entry function per compiled shader.
type ComputePipeline struct {
	Label            string
	BindGroupLayout  *types.BindGroupLayoutDescriptor
	ShaderModule     *types.ShaderModuleDescriptor
	EntryPoint       string
	RequiredFeatures types.Features

	// RegisteredFeatures is the full runtime feature-support list this
	// pipeline was built against (base scalar/atomic types plus, when
	// applicable, "subgroup") — see RegisterFeatures.
	RegisteredFeatures []string
}

const entryPointName = "main"
