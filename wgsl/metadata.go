// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import "github.com/gogpu/kernelc/kernel"

// Metadata table layout, for N = num_inputs +
// num_outputs bindings and E of them marked has_extended_meta:
//
//	[0, N)        length[i]
//	[N, 2N)       buffer_length[i]
//	[2N, 2N+E)    rank[e]
//	[2N+E, 2N+2E) shape_offset[e]  — position of shape[e][0] below
//	[2N+2E,2N+3E) stride_offset[e] — position of stride[e][0] below
//	[2N+3E, ...)  shape/stride arrays, host-appended per extended binding
//
// shape_offset[e] and stride_offset[e] are themselves metadata entries,
// written by the host at launch time once actual tensor ranks are
// known; resolving Shape/Stride is therefore a double indirection: one
// load to fetch the base, one more (offset by dim) to fetch the value.

// LenIndex is the len_index(i) resolver.
func LenIndex(i uint32) uint32 { return i }

// BufferLenIndex is the buffer_len_index(i) resolver.
func BufferLenIndex(numMeta, i uint32) uint32 { return numMeta + i }

// RankIndex is the rank_index(e) resolver.
func RankIndex(numMeta, e uint32) uint32 { return 2*numMeta + e }

// ShapeOffsetIndex is the shape_offset_index(e) resolver: the fixed-
// prefix position holding the runtime base offset of binding e's shape
// array.
func ShapeOffsetIndex(numMeta, numExt, e uint32) uint32 { return 2*numMeta + numExt + e }

// StrideOffsetIndex is the stride_offset_index(e) resolver: the fixed-
// prefix position holding the runtime base offset of binding e's
// stride array.
func StrideOffsetIndex(numMeta, numExt, e uint32) uint32 { return 2*numMeta + 2*numExt + e }

func constU32(v uint32) Variable {
	return Variable{
		Kind:  VarConstantScalar,
		Item:  Item{Elem: ElemU32, Vectorization: 1},
		Value: ConstValue{Elem: ElemU32, Bits: uint64(v)},
	}
}

// lowerMetadataOp is the Metadata Lowerer (C5): it resolves Rank,
// Shape, Stride, Length, and BufferLength requests into target loads
// against the metadata table.
func (c *Compiler) lowerMetadataOp(op kernel.Op) (Instruction, error) {
	out, err := c.lowerOptionalOut(op.Out)
	if err != nil {
		return Instruction{}, err
	}
	if out == nil {
		return Instruction{}, kernel.NewError(kernel.ErrInvariantViolation,
			"metadata operation requires an out variable")
	}

	switch op.Kind {
	case kernel.OpMetaRank:
		pos, err := c.extMetaPos(op.Var)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{
			Kind:       InstMetadata,
			Op:         ArithOp(op.Kind),
			Out:        out,
			InfoOffset: constU32(RankIndex(c.numMeta, pos)),
		}, nil

	case kernel.OpMetaShape:
		pos, err := c.extMetaPos(op.Var)
		if err != nil {
			return Instruction{}, err
		}
		dim, err := c.lowerVariable(op.Dim)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{
			Kind:       InstExtendedMeta,
			Op:         ArithOp(op.Kind),
			Out:        out,
			InfoOffset: constU32(ShapeOffsetIndex(c.numMeta, c.numExt, pos)),
			Dim:        dim,
		}, nil

	case kernel.OpMetaStride:
		pos, err := c.extMetaPos(op.Var)
		if err != nil {
			return Instruction{}, err
		}
		dim, err := c.lowerVariable(op.Dim)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{
			Kind:       InstExtendedMeta,
			Op:         ArithOp(op.Kind),
			Out:        out,
			InfoOffset: constU32(StrideOffsetIndex(c.numMeta, c.numExt, pos)),
			Dim:        dim,
		}, nil

	case kernel.OpMetaLength:
		if op.Var.IsGlobalArray() {
			idx, err := c.globalIndex(op.Var)
			if err != nil {
				return Instruction{}, err
			}
			return Instruction{
				Kind:       InstMetadata,
				Op:         ArithOp(op.Kind),
				Out:        out,
				InfoOffset: constU32(LenIndex(idx)),
			}, nil
		}
		v, err := c.lowerVariable(op.Var)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: InstLength, Op: ArithOp(op.Kind), Out: out, Var: v}, nil

	case kernel.OpMetaBufferLength:
		if op.Var.IsGlobalArray() {
			idx, err := c.globalIndex(op.Var)
			if err != nil {
				return Instruction{}, err
			}
			return Instruction{
				Kind:       InstMetadata,
				Op:         ArithOp(op.Kind),
				Out:        out,
				InfoOffset: constU32(BufferLenIndex(c.numMeta, idx)),
			}, nil
		}
		v, err := c.lowerVariable(op.Var)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: InstLength, Op: ArithOp(op.Kind), Out: out, Var: v}, nil

	default:
		return Instruction{}, kernel.NewError(kernel.ErrInvariantViolation,
			"not a metadata operation")
	}
}
