// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package wgsl compiles a kernel.KernelDefinition to WGSL (the WebGPU
// Shading Language).
//
// The compiler is a single-pass structural lowering from the kernel IR
// (package kernel) to a CompiledShader record, followed by trivial
// textual emission. It is organized as seven components, leaves first:
//
//   - Type Mapper: kernel.Elem/Item -> Elem/Item (this package), total
//     over the supported subset, fatal otherwise.
//   - Variable Lowerer: kernel.Variable -> Variable, side-effecting on
//     shared memory, local arrays, constant arrays, and built-in usage
//     flags.
//   - Operation Lowerer: one Instruction per kernel.Op, across the
//     arithmetic, atomic, metadata, branch, synchronization, and
//     subgroup families.
//   - Control-Flow Lowerer: recursive descent over If/IfElse/Switch/
//     Loop/RangeLoop scopes.
//   - Metadata Lowerer: Rank/Shape/Stride/Length/BufferLength resolved
//     to offsets into the host-built metadata side-table.
//   - Extension Collector: a second, read-only pass gathering the
//     helper-function extensions the emitted instructions require.
//   - Shader Assembler: the CompiledShader record plus the flag
//     composition rules, handed to Writer for text emission.
//
// # Usage
//
//	shader, source, err := wgsl.Compile(def, kernel.Checked, wgsl.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A Compiler instance is mutable and carries per-compile bookkeeping
// (built-in usage flags, declared shared/local/constant array lists); a
// fresh instance backs every Compile call, and a KernelDefinition must
// not be reused across compiles (its scopes are drained in place).
package wgsl
