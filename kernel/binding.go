// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kernel

// Visibility is the access mode a binding grants to the kernel body.
type Visibility uint8

const (
	// VisibilityRead grants read-only access.
	VisibilityRead Visibility = iota
	// VisibilityReadWrite grants read-write access.
	VisibilityReadWrite
)

// MemoryLocation is where a binding's storage physically lives.
type MemoryLocation uint8

const (
	// MemoryStorage is device storage (a driver-visible buffer).
	MemoryStorage MemoryLocation = iota
	// MemoryShared is workgroup-shared memory.
	MemoryShared
)

// Binding describes one input, output, or named resource.
type Binding struct {
	Visibility      Visibility
	Location        MemoryLocation
	Elem            Elem
	Vectorization   uint8
	Size            uint32
	HasExtendedMeta bool
}

// Item returns the binding's element/vectorization pair.
func (b Binding) Item() Item {
	return Item{Elem: b.Elem, Vectorization: b.Vectorization}
}
