// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/go-logr/logr"

	"github.com/gogpu/kernelc/wgsl"
	"github.com/gogpu/wgpu/types"
)

// baseTypeFeatures is the fixed set of scalar and atomic types every
// compiled shader relies on. types.Features has no bits for these —
// it's a WebGPU adapter-capability bitset (texture formats, query
// types, and the like), not a WGSL type system — so the runtime must
// report this list through its own capability-negotiation path rather
// than through types.Features.
var baseTypeFeatures = []string{"u32", "i32", "atomic<i32>", "atomic<u32>", "f32", "flex32", "bool"}

// RegisterFeatures reports the full feature set the surrounding
// runtime must support to run compiled shaders: the fixed base-type
// list plus, when subgroupCapable reports the adapter exposes
// subgroup operations and is not a CPU adapter, "subgroup". Whether a
// given shader actually uses subgroup built-ins is a separate
// question, answered by requiredFeatures for that shader's
// device-feature request.
func RegisterFeatures(log logr.Logger, subgroupCapable bool) []string {
	features := make([]string, 0, len(baseTypeFeatures)+1)
	features = append(features, baseTypeFeatures...)
	if subgroupCapable {
		features = append(features, "subgroup")
		log.V(1).Info("requiring feature", "feature", "subgroup", "reason", "adapter is subgroup-capable")
	}
	return features
}

// requiredFeatures computes the types.Features bitset a specific
// compiled shader needs from the device: subgroup operations only
// when both the shader references a subgroup built-in and the adapter
// reports subgroup capability.
func requiredFeatures(log logr.Logger, shader *wgsl.CompiledShader, subgroupCapable bool) types.Features {
	var features types.Features
	if shader.SubgroupSize && subgroupCapable {
		features.Insert(types.FeatureSubgroupOperations)
		log.V(1).Info("requiring device feature", "feature", "SubgroupOperations", "reason", "subgroup built-in referenced")
	}
	return features
}

// Build assembles the full descriptor bundle for a compiled shader:
// bind-group layout, shader module, and required feature set.
// subgroupCapable reports whether the target adapter exposes subgroup
// operations and is not a CPU adapter.
func Build(log logr.Logger, label string, shader *wgsl.CompiledShader, source string, subgroupCapable bool) *ComputePipeline {
	registered := RegisterFeatures(log, subgroupCapable)
	features := requiredFeatures(log, shader, subgroupCapable)
	layout := BindGroupLayout(label, shader)
	log.Info("built bind group layout", "label", label, "entries", len(layout.Entries))
	return &ComputePipeline{
		Label:              label,
		BindGroupLayout:    layout,
		ShaderModule:       ShaderModule(label, source),
		EntryPoint:         entryPointName,
		RequiredFeatures:   features,
		RegisteredFeatures: registered,
	}
}
