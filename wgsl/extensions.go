// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import "github.com/gogpu/kernelc/kernel"

// ExtensionKind names a helper routine the emitted shader preamble may
// need because the target dialect lacks a native form.
type ExtensionKind uint8

const (
	ExtPowfPrimitive ExtensionKind = iota
	ExtPowfScalar
	ExtPowf
	ExtErf
	ExtSafeTanh
)

// Extension is one entry of a CompiledShader's extension list: a
// helper kind parameterized by the target Item it must be generated
// for (powf/erf/safe_tanh are generated per concrete vector width).
type Extension struct {
	Kind ExtensionKind
	Item Item
}

// collectExtensions is the Extension Collector (C6): a second,
// read-only pass over the lowered instruction tree that accumulates
// the minimal helper-routine set, preserving first-occurrence order
// and deduplicating.
func collectExtensions(instructions []Instruction, apple bool) []Extension {
	var exts []Extension
	seen := make(map[Extension]bool)
	add := func(e Extension) {
		if !seen[e] {
			seen[e] = true
			exts = append(exts, e)
		}
	}
	var walk func([]Instruction)
	walk = func(list []Instruction) {
		for _, inst := range list {
			switch inst.Kind {
			case InstArith:
				switch kernel.OperationKind(inst.Op) {
				case kernel.OpPowf:
					if inst.Out != nil {
						add(Extension{Kind: ExtPowfPrimitive, Item: inst.Out.Item})
						if inst.Rhs.Item.Vectorization == 1 {
							add(Extension{Kind: ExtPowfScalar, Item: inst.Out.Item})
						} else {
							add(Extension{Kind: ExtPowf, Item: inst.Out.Item})
						}
					}
				case kernel.OpErf:
					add(Extension{Kind: ExtErf, Item: inst.Var.Item})
				case kernel.OpTanh:
					if apple {
						add(Extension{Kind: ExtSafeTanh, Item: inst.Var.Item})
					}
				}
			case InstIf:
				walk(inst.Then)
			case InstIfElse:
				walk(inst.Then)
				walk(inst.Else)
			case InstLoop, InstRangeLoop:
				walk(inst.Then)
			}
		}
	}
	walk(instructions)
	return exts
}
