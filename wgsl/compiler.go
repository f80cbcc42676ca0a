// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

// Compiler is the mutable per-compile object. A fresh Compiler backs
// every Compile call; instances must never be shared across
// concurrent compiles.
type Compiler struct {
	options *Options

	numInputs  int
	numOutputs int

	// extMetaPos[i] is the number of extended-meta bindings strictly
	// before metadata position i.
	extMetaPos []uint32
	numMeta    uint32
	numExt     uint32

	// Built-in usage flags.
	localInvocationIndex bool
	localInvocationID    bool
	globalInvocationID   bool
	workgroupID          bool
	subgroupSize         bool
	id                   bool
	numWorkgroups        bool
	workgroupIDNoAxis    bool
	workgroupSizeNoAxis  bool
	numWorkgroupNoAxis   bool

	sharedMemories []SharedMemoryDecl
	constArrays    []ConstantArrayDecl
	localArrays    []LocalArrayDecl
}

func newCompiler(opts *Options) *Compiler {
	return &Compiler{options: opts}
}

// String implements fmt.Stringer by printing only the type name, never
// the in-progress compile state, to avoid leaking half-compiled
// internals into logs.
func (c *Compiler) String() string {
	return "wgsl.Compiler"
}
