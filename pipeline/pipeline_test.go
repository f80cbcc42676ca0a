// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/gogpu/kernelc/kernel"
	"github.com/gogpu/kernelc/wgsl"
	"github.com/gogpu/wgpu/types"
)

func compileSample(t *testing.T) *wgsl.CompiledShader {
	t.Helper()
	item := kernel.Scalar(kernel.Float(kernel.FloatF32))
	body := kernel.NewScope(0)
	out := kernel.GlobalOutputArray(0, item)
	body.Operations = append(body.Operations, kernel.Statement{
		Stmt: kernel.StmtOp,
		Op: kernel.Op{
			Kind: kernel.OpAdd, Out: &out,
			Lhs: kernel.GlobalInputArray(0, item), Rhs: kernel.GlobalInputArray(1, item),
		},
	})
	body.Operations = append(body.Operations, kernel.Statement{Stmt: kernel.StmtReturn})

	def := &kernel.KernelDefinition{
		Inputs: []kernel.Binding{
			{Visibility: kernel.VisibilityRead, Location: kernel.MemoryStorage, Elem: kernel.Float(kernel.FloatF32), Vectorization: 1, Size: 4},
			{Visibility: kernel.VisibilityRead, Location: kernel.MemoryStorage, Elem: kernel.Float(kernel.FloatF32), Vectorization: 1, Size: 4},
		},
		Outputs: []kernel.Binding{
			{Visibility: kernel.VisibilityReadWrite, Location: kernel.MemoryStorage, Elem: kernel.Float(kernel.FloatF32), Vectorization: 1, Size: 4},
		},
		CubeDim: kernel.CubeDim{X: 64, Y: 1, Z: 1},
		Body:    body,
	}
	shader, _, err := wgsl.Compile(def, kernel.Checked, wgsl.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return shader
}

func TestBindGroupLayoutEntryCount(t *testing.T) {
	shader := compileSample(t)
	layout := BindGroupLayout("sample", shader)
	// 2 inputs + 1 output + 1 trailing metadata buffer.
	if got, want := len(layout.Entries), 4; got != want {
		t.Fatalf("len(Entries) = %d, want %d", got, want)
	}
	for i, e := range layout.Entries {
		if e.Binding != uint32(i) {
			t.Errorf("Entries[%d].Binding = %d, want %d", i, e.Binding, i)
		}
		if e.Buffer == nil {
			t.Errorf("Entries[%d].Buffer is nil", i)
		}
		if e.Buffer.Type != types.BufferBindingTypeStorage {
			t.Errorf("Entries[%d].Buffer.Type = %v, want Storage{read_only:false} regardless of binding visibility", i, e.Buffer.Type)
		}
	}
}

func TestBindGroupLayoutEmptyShaderHasNoMetadataBuffer(t *testing.T) {
	empty := &wgsl.CompiledShader{}
	layout := BindGroupLayout("empty", empty)
	if len(layout.Entries) != 0 {
		t.Errorf("len(Entries) = %d, want 0 for a shader with no bindings", len(layout.Entries))
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestRegisterFeaturesBaseTypesAlwaysReported(t *testing.T) {
	features := RegisterFeatures(logr.Discard(), false)
	for _, want := range []string{"u32", "i32", "atomic<i32>", "atomic<u32>", "f32", "flex32", "bool"} {
		if !containsString(features, want) {
			t.Errorf("RegisterFeatures() = %v, missing base type %q", features, want)
		}
	}
	if containsString(features, "subgroup") {
		t.Errorf("RegisterFeatures(subgroupCapable=false) = %v, want no subgroup entry", features)
	}
}

func TestRegisterFeaturesSubgroupCapable(t *testing.T) {
	features := RegisterFeatures(logr.Discard(), true)
	if !containsString(features, "subgroup") {
		t.Errorf("RegisterFeatures(subgroupCapable=true) = %v, want subgroup entry", features)
	}
}

func TestBuildRequiredFeaturesNeedsBothShaderUseAndAdapterCapability(t *testing.T) {
	shader := compileSample(t)
	shader.SubgroupSize = true

	capable := Build(logr.Discard(), "sample", shader, "", true)
	if !capable.RequiredFeatures.Contains(types.FeatureSubgroupOperations) {
		t.Error("expected FeatureSubgroupOperations when the shader uses it and the adapter is capable")
	}

	notCapable := Build(logr.Discard(), "sample", shader, "", false)
	if notCapable.RequiredFeatures.Contains(types.FeatureSubgroupOperations) {
		t.Error("expected no FeatureSubgroupOperations when the adapter is not subgroup-capable")
	}
}

func TestBuild(t *testing.T) {
	shader := compileSample(t)
	_, source, err := wgsl.Compile(&kernel.KernelDefinition{
		Inputs: []kernel.Binding{{Visibility: kernel.VisibilityRead, Location: kernel.MemoryStorage,
			Elem: kernel.Float(kernel.FloatF32), Vectorization: 1, Size: 4}},
		Body: kernel.NewScope(0),
	}, kernel.Checked, wgsl.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	pl := Build(logr.Discard(), "sample", shader, source, false)
	if pl.EntryPoint != "main" {
		t.Errorf("EntryPoint = %q, want %q", pl.EntryPoint, "main")
	}
	if pl.ShaderModule == nil {
		t.Fatal("ShaderModule is nil")
	}
	wgslSrc, ok := pl.ShaderModule.Source.(types.ShaderSourceWGSL)
	if !ok {
		t.Fatalf("Source is %T, want types.ShaderSourceWGSL", pl.ShaderModule.Source)
	}
	if wgslSrc.Code != source {
		t.Error("ShaderModule source does not match the compiled WGSL text")
	}
	if !containsString(pl.RegisteredFeatures, "u32") {
		t.Errorf("RegisteredFeatures = %v, missing base type u32", pl.RegisteredFeatures)
	}
}
