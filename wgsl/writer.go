// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/kernelc/kernel"
)

// Writer generates WGSL source text from a CompiledShader. Emission is
// a separate, trivial pass over the already-lowered record: nothing
// here can fail for reasons the lowering itself didn't already catch.
type Writer struct {
	out    strings.Builder
	indent int
	shader *CompiledShader
}

// Emit renders shader as a complete WGSL compute-shader source string.
func Emit(shader *CompiledShader) (string, error) {
	w := &Writer{shader: shader}
	w.writeBindings(shader)
	w.writeSharedMemories(shader)
	w.writeConstArrays(shader)
	w.writeLocalArrays(shader)
	w.writeEntryPoint(shader)
	return w.out.String(), nil
}

func (w *Writer) line(format string, args ...any) {
	w.out.WriteString(strings.Repeat("  ", w.indent))
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

func (w *Writer) writeBindings(shader *CompiledShader) {
	group := uint32(0)
	binding := uint32(0)
	writeOne := func(label string, b TargetBinding) {
		access := "read"
		if b.Visibility == kernel.VisibilityReadWrite {
			access = "read_write"
		}
		w.line("@group(%d) @binding(%d) var<storage, %s> %s: array<%s>;",
			group, binding, access, label, b.Item.WGSLName())
		binding++
	}
	for i, b := range shader.Inputs {
		writeOne(fmt.Sprintf("input_%d", i), b)
	}
	for i, b := range shader.Outputs {
		writeOne(fmt.Sprintf("output_%d", i), b)
	}
	names := make([]string, 0, len(shader.Named))
	for name := range shader.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeOne(sanitizeName(name), shader.Named[name])
	}
	if len(shader.Inputs) > 0 || len(shader.Outputs) > 0 || len(shader.Named) > 0 {
		w.line("@group(%d) @binding(%d) var<storage, read> info: array<u32>;", group, binding)
	}
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)
}

func (w *Writer) writeSharedMemories(shader *CompiledShader) {
	for _, sm := range shader.SharedMemories {
		w.line("var<workgroup> shared_%d: array<%s, %d>;", sm.Index, sm.Item.WGSLName(), sm.Length)
	}
}

func (w *Writer) writeConstArrays(shader *CompiledShader) {
	for _, ca := range shader.ConstArrays {
		w.line("const const_%d: array<%s, %d> = array<%s, %d>(%s);",
			ca.Index, ca.Item.WGSLName(), ca.Size, ca.Item.WGSLName(), ca.Size, w.constValues(ca.Values))
	}
}

func (w *Writer) constValues(vars []Variable) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = w.literal(v)
	}
	return strings.Join(parts, ", ")
}

func (w *Writer) literal(v Variable) string {
	switch v.Item.Elem {
	case ElemF32:
		return fmt.Sprintf("bitcast<f32>(%du)", uint32(v.Value.Bits))
	case ElemI32:
		return fmt.Sprintf("bitcast<i32>(%du)", uint32(v.Value.Bits))
	default:
		return fmt.Sprintf("%du", uint32(v.Value.Bits))
	}
}

func (w *Writer) writeLocalArrays(shader *CompiledShader) {
	// Local arrays are declared inline, at their point of use in the
	// function body (writeBody), since WGSL function-local arrays must
	// live inside the function they're used in.
	_ = shader
}

func (w *Writer) writeEntryPoint(shader *CompiledShader) {
	w.line("@compute @workgroup_size(%d, %d, %d)", shader.WorkgroupSize.X, shader.WorkgroupSize.Y, shader.WorkgroupSize.Z)
	w.line("fn main(")
	w.indent++
	params := w.builtinParams(shader)
	for i, p := range params {
		sep := ","
		if i == len(params)-1 {
			sep = ""
		}
		w.line("%s%s", p, sep)
	}
	w.indent--
	w.line(") {")
	w.indent++
	w.writeBody(shader.Body.Instructions)
	w.indent--
	w.line("}")
}

func (w *Writer) builtinParams(shader *CompiledShader) []string {
	var params []string
	if shader.GlobalInvocationID {
		params = append(params, "@builtin(global_invocation_id) global_id: vec3<u32>")
	}
	if shader.LocalInvocationIndex {
		params = append(params, "@builtin(local_invocation_index) local_index: u32")
	}
	if shader.LocalInvocationID {
		params = append(params, "@builtin(local_invocation_id) local_id: vec3<u32>")
	}
	if shader.WorkgroupID {
		params = append(params, "@builtin(workgroup_id) workgroup_id: vec3<u32>")
	}
	if shader.NumWorkgroups {
		params = append(params, "@builtin(num_workgroups) num_workgroups: vec3<u32>")
	}
	if shader.SubgroupSize {
		params = append(params, "@builtin(subgroup_size) subgroup_size: u32")
	}
	return params
}

func (w *Writer) writeBody(instructions []Instruction) {
	for _, inst := range instructions {
		w.writeInstruction(inst)
	}
}

func (w *Writer) writeInstruction(inst Instruction) {
	switch inst.Kind {
	case InstDeclareVariable:
		w.line("var %s: %s;", w.ref(inst.DeclaredVar), inst.DeclaredVar.Item.WGSLName())
	case InstArith:
		w.writeArith(inst)
	case InstAtomic:
		w.writeAtomic(inst)
	case InstSubgroup:
		w.writeSubgroup(inst)
	case InstMetadata:
		w.line("%s = info[%s];", w.refOut(inst), w.ref(inst.InfoOffset))
	case InstExtendedMeta:
		w.line("%s = info[info[%s] + %s];", w.refOut(inst), w.ref(inst.InfoOffset), w.ref(inst.Dim))
	case InstLength:
		w.line("%s = arrayLength(&%s);", w.refOut(inst), w.ref(inst.Var))
	case InstIf:
		w.line("if (%s) {", w.ref(inst.Cond))
		w.indent++
		w.writeBody(inst.Then)
		w.indent--
		w.line("}")
	case InstIfElse:
		w.line("if (%s) {", w.ref(inst.Cond))
		w.indent++
		w.writeBody(inst.Then)
		w.indent--
		w.line("} else {")
		w.indent++
		w.writeBody(inst.Else)
		w.indent--
		w.line("}")
	case InstSwitch:
		w.line("switch %s {", w.ref(inst.Cond))
		w.indent++
		for _, cs := range inst.SwitchCases {
			w.line("case %s: {", w.ref(cs.Value))
			w.indent++
			w.writeBody(cs.Instructions)
			w.indent--
			w.line("}")
		}
		w.line("default: {")
		w.indent++
		w.writeBody(inst.SwitchDefault)
		w.indent--
		w.line("}")
		w.indent--
		w.line("}")
	case InstRangeLoop:
		op := "<"
		if inst.Inclusive {
			op = "<="
		}
		step := "1u"
		if inst.HasStep {
			step = w.ref(inst.RangeStep)
		}
		w.line("for (var %s = %s; %s %s %s; %s += %s) {",
			w.ref(inst.RangeI), w.ref(inst.RangeStart), w.ref(inst.RangeI), op, w.ref(inst.RangeEnd), w.ref(inst.RangeI), step)
		w.indent++
		w.writeBody(inst.Then)
		w.indent--
		w.line("}")
	case InstLoop:
		w.line("loop {")
		w.indent++
		w.writeBody(inst.Then)
		w.indent--
		w.line("}")
	case InstReturn:
		w.line("return;")
	case InstBreak:
		w.line("break;")
	case InstWorkgroupBarrier:
		w.line("workgroupBarrier();")
	case InstStorageBarrier:
		w.line("storageBarrier();")
	}
}

func (w *Writer) refOut(inst Instruction) string {
	if inst.Out != nil {
		return w.ref(*inst.Out)
	}
	return "_"
}

func (w *Writer) writeArith(inst Instruction) {
	name := arithFuncName(kernel.OperationKind(inst.Op))
	out := w.refOut(inst)
	switch kernel.OperationKind(inst.Op) {
	case kernel.OpAdd:
		w.line("%s = %s + %s;", out, w.ref(inst.Lhs), w.ref(inst.Rhs))
	case kernel.OpSub:
		w.line("%s = %s - %s;", out, w.ref(inst.Lhs), w.ref(inst.Rhs))
	case kernel.OpMul:
		w.line("%s = %s * %s;", out, w.ref(inst.Lhs), w.ref(inst.Rhs))
	case kernel.OpDiv:
		w.line("%s = %s / %s;", out, w.ref(inst.Lhs), w.ref(inst.Rhs))
	case kernel.OpFma:
		w.line("%s = fma(%s, %s, %s);", out, w.ref(inst.A), w.ref(inst.B), w.ref(inst.C))
	case kernel.OpClamp:
		w.line("%s = clamp(%s, %s, %s);", out, w.ref(inst.Lhs), w.ref(inst.A), w.ref(inst.B))
	case kernel.OpSelect:
		w.line("%s = select(%s, %s, %s);", out, w.ref(inst.B), w.ref(inst.A), w.ref(inst.Lhs))
	case kernel.OpIndex, kernel.OpUncheckedIndex:
		w.line("%s = %s[%s];", out, w.ref(inst.Lhs), w.ref(inst.Rhs))
	case kernel.OpIndexAssign, kernel.OpUncheckedIndexAssign:
		w.line("%s[%s] = %s;", w.ref(inst.Lhs), w.ref(inst.Rhs), w.ref(inst.A))
	case kernel.OpCopy:
		w.line("%s = %s;", w.ref(inst.Lhs), w.ref(inst.Rhs))
	default:
		w.line("%s = %s(%s, %s);", out, name, w.ref(inst.Lhs), w.ref(inst.Var))
	}
}

func (w *Writer) writeAtomic(inst Instruction) {
	name := arithFuncName(kernel.OperationKind(inst.Op))
	switch kernel.OperationKind(inst.Op) {
	case kernel.OpAtomicLoad:
		w.line("%s = atomicLoad(&%s);", w.refOut(inst), w.ref(inst.Var))
	case kernel.OpAtomicStore:
		w.line("atomicStore(&%s, %s);", w.ref(inst.Var), w.ref(inst.Lhs))
	case kernel.OpAtomicCompareAndSwap:
		w.line("%s = atomicCompareExchangeWeak(&%s, %s, %s).old_value;", w.refOut(inst), w.ref(inst.Var), w.ref(inst.Lhs), w.ref(inst.Rhs))
	default:
		w.line("%s = %s(&%s, %s);", w.refOut(inst), name, w.ref(inst.Var), w.ref(inst.Lhs))
	}
}

func (w *Writer) writeSubgroup(inst Instruction) {
	name := arithFuncName(kernel.OperationKind(inst.Op))
	w.line("%s = %s(%s);", w.refOut(inst), name, w.ref(inst.Var))
}

// arithFuncName gives the WGSL-ish spelling of an operation kind, used
// as a fallback name for the families not given bespoke syntax above.
func arithFuncName(k kernel.OperationKind) string {
	names := map[kernel.OperationKind]string{
		kernel.OpModulo: "modulo", kernel.OpRemainder: "remainder",
		kernel.OpEq: "eq", kernel.OpNe: "ne", kernel.OpLt: "lt", kernel.OpLe: "le",
		kernel.OpGt: "gt", kernel.OpGe: "ge", kernel.OpAnd: "and", kernel.OpOr: "or",
		kernel.OpNot: "not", kernel.OpBitwiseAnd: "bitwiseAnd", kernel.OpBitwiseOr: "bitwiseOr",
		kernel.OpBitwiseXor: "bitwiseXor", kernel.OpShiftLeft: "shiftLeft", kernel.OpShiftRight: "shiftRight",
		kernel.OpAbs: "abs", kernel.OpNeg: "neg", kernel.OpMax: "max", kernel.OpMin: "min",
		kernel.OpSin: "sin", kernel.OpCos: "cos", kernel.OpTan: "tan", kernel.OpTanh: "tanh",
		kernel.OpExp: "exp", kernel.OpLog: "log", kernel.OpLog1p: "log1p", kernel.OpPowf: "powf",
		kernel.OpSqrt: "sqrt", kernel.OpRound: "round", kernel.OpFloor: "floor", kernel.OpCeil: "ceil",
		kernel.OpErf: "erf", kernel.OpRecip: "recip", kernel.OpDot: "dot",
		kernel.OpMagnitude: "length", kernel.OpNormalize: "normalize",
		kernel.OpCast: "cast", kernel.OpBitcast: "bitcast", kernel.OpInitLine: "initLine",
		kernel.OpSlice: "slice", kernel.OpCopyBulk: "copyBulk",
		kernel.OpAtomicAdd: "atomicAdd", kernel.OpAtomicSub: "atomicSub",
		kernel.OpAtomicMax: "atomicMax", kernel.OpAtomicMin: "atomicMin",
		kernel.OpAtomicAnd: "atomicAnd", kernel.OpAtomicOr: "atomicOr", kernel.OpAtomicXor: "atomicXor",
		kernel.OpAtomicSwap: "atomicExchange",
		kernel.OpSubgroupElect: "subgroupElect", kernel.OpSubgroupAll: "subgroupAll",
		kernel.OpSubgroupAny: "subgroupAny", kernel.OpSubgroupBroadcast: "subgroupBroadcast",
		kernel.OpSubgroupSum: "subgroupAdd", kernel.OpSubgroupProd: "subgroupMul",
		kernel.OpSubgroupMin: "subgroupMin", kernel.OpSubgroupMax: "subgroupMax",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "op"
}

// ref renders a Variable's WGSL reference expression.
func (w *Writer) ref(v Variable) string {
	switch v.Kind {
	case VarGlobalInputArray:
		return fmt.Sprintf("input_%d", v.ID)
	case VarGlobalOutputArray:
		return fmt.Sprintf("output_%d", v.ID)
	case VarGlobalScalar:
		return fmt.Sprintf("scalar_%d", v.ID)
	case VarLocal:
		return fmt.Sprintf("local_%d_%d", v.Depth, v.ID)
	case VarLocalBinding:
		return fmt.Sprintf("binding_%d", v.ID)
	case VarSlice:
		return fmt.Sprintf("slice_%d_%d", v.Depth, v.ID)
	case VarConstantScalar:
		return w.literal(v)
	case VarConstantArray:
		return fmt.Sprintf("const_%d", v.ID)
	case VarSharedMemory:
		return fmt.Sprintf("shared_%d", v.ID)
	case VarLocalArray:
		return fmt.Sprintf("local_array_%d_%d", v.Depth, v.ID)
	case VarBuiltinRef:
		return w.builtinRef(v.Builtin)
	default:
		return "?"
	}
}

// linearID synthesizes the composite absolute-position index: the
// invocation's flat offset across the entire dispatch, not just its
// x-axis component. workgroup_size is compile-time known, so its
// factors are baked in as literals rather than referencing an
// undeclared symbol.
func (w *Writer) linearID() string {
	ws := w.shader.WorkgroupSize
	return fmt.Sprintf(
		"(global_id.x + global_id.y * (num_workgroups.x * %du) + global_id.z * (num_workgroups.x * %du) * (num_workgroups.y * %du))",
		ws.X, ws.X, ws.Y,
	)
}

func (w *Writer) builtinRef(b BuiltinTarget) string {
	switch b {
	case BuiltinID:
		return w.linearID()
	case BuiltinLocalInvocationIndex:
		return "local_index"
	case BuiltinLocalInvocationIDX:
		return "local_id.x"
	case BuiltinLocalInvocationIDY:
		return "local_id.y"
	case BuiltinLocalInvocationIDZ:
		return "local_id.z"
	case BuiltinWorkgroupIDX:
		return "workgroup_id.x"
	case BuiltinWorkgroupIDY:
		return "workgroup_id.y"
	case BuiltinWorkgroupIDZ:
		return "workgroup_id.z"
	case BuiltinGlobalInvocationIDX:
		return "global_id.x"
	case BuiltinGlobalInvocationIDY:
		return "global_id.y"
	case BuiltinGlobalInvocationIDZ:
		return "global_id.z"
	case BuiltinWorkgroupSizeX:
		return fmt.Sprintf("%du", w.shader.WorkgroupSize.X)
	case BuiltinWorkgroupSizeY:
		return fmt.Sprintf("%du", w.shader.WorkgroupSize.Y)
	case BuiltinWorkgroupSizeZ:
		return fmt.Sprintf("%du", w.shader.WorkgroupSize.Z)
	case BuiltinNumWorkgroupsX:
		return "num_workgroups.x"
	case BuiltinNumWorkgroupsY:
		return "num_workgroups.y"
	case BuiltinNumWorkgroupsZ:
		return "num_workgroups.z"
	case BuiltinWorkgroupID:
		return "workgroup_id"
	case BuiltinWorkgroupSize:
		ws := w.shader.WorkgroupSize
		return fmt.Sprintf("vec3<u32>(%du, %du, %du)", ws.X, ws.Y, ws.Z)
	case BuiltinNumWorkgroups:
		return "num_workgroups"
	case BuiltinSubgroupSize:
		return "subgroup_size"
	default:
		return "?"
	}
}
