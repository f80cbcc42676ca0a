// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

// Options configures WGSL code generation.
type Options struct {
	// Apple enables the SafeTanh workaround extension for Tanh
	// instructions.
	Apple bool
}

// DefaultOptions returns sensible default options for WGSL generation.
func DefaultOptions() *Options {
	return &Options{Apple: false}
}
