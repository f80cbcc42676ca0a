// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kernel

import "testing"

func TestElemString(t *testing.T) {
	tests := []struct {
		name string
		elem Elem
		want string
	}{
		{"f32", Float(FloatF32), "f32"},
		{"flex32", Float(FloatFlex32), "flex32"},
		{"i32", Int(IntI32), "i32"},
		{"u32", UInt(UIntU32), "u32"},
		{"bool", Bool, "bool"},
		{"atomic i32", AtomicInt(IntI32), "atomic<i32>"},
		{"atomic u32", AtomicUInt(UIntU32), "atomic<u32>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.elem.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScalarItem(t *testing.T) {
	item := Scalar(Float(FloatF32))
	if item.Vectorization != 1 {
		t.Errorf("Scalar() vectorization = %d, want 1", item.Vectorization)
	}
}
