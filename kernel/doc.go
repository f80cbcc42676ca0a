// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package kernel defines the device-independent kernel intermediate
// representation compiled by package wgsl.
//
// The IR is designed to be:
//   - Target-agnostic: not tied to WGSL or any other shading language
//   - Dynamically shaped: scopes, branches, and loops nest arbitrarily
//   - Host-reproducible: the metadata layout it implies can be rebuilt
//     bit-for-bit by the code that launches the compiled kernel
//
// # Structure
//
// A KernelDefinition holds:
//   - Inputs and Outputs: ordered bindings with visibility, memory
//     location, element type, vectorization, and size
//   - Named: auxiliary bindings addressed by name
//   - CubeDim: the workgroup dimension triple
//   - Body: the root Scope
//
// Scopes nest through the Branch family (If, IfElse, Switch, Loop,
// RangeLoop); Variable is a closed tagged union covering global arrays,
// locals, slices, shared/local/constant memory, and built-ins.
package kernel
