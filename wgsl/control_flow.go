// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import "github.com/gogpu/kernelc/kernel"

// compileScope is the Control-Flow Lowerer's (C4) scope-lowering
// procedure: drain constant-array declarations, declare
// scope-local variables (Slice variables are skipped), then lower each
// statement in source order.
func (c *Compiler) compileScope(s *kernel.Scope) ([]Instruction, error) {
	for _, decl := range s.ConstArrays {
		item, err := MapItem(decl.Item)
		if err != nil {
			return nil, err
		}
		values := make([]Variable, 0, len(decl.Values))
		for _, v := range decl.Values {
			lv, err := c.lowerVariable(v)
			if err != nil {
				return nil, err
			}
			values = append(values, lv)
		}
		c.constArrays = append(c.constArrays, ConstantArrayDecl{
			Index: decl.ID, Item: item, Size: uint32(len(decl.Values)), Values: values,
		})
	}
	s.ConstArrays = nil

	instructions := make([]Instruction, 0, len(s.Declarations)+len(s.Operations))
	for _, decl := range s.Declarations {
		if decl.Kind == kernel.KindSlice {
			continue
		}
		lowered, err := c.lowerVariable(decl)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, Instruction{
			Kind:        InstDeclareVariable,
			DeclaredVar: lowered,
		})
	}

	for _, stmt := range s.Operations {
		inst, err := c.lowerStatement(stmt)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}
	return instructions, nil
}

func (c *Compiler) lowerStatement(stmt kernel.Statement) (Instruction, error) {
	switch stmt.Stmt {
	case kernel.StmtOp:
		return c.lowerOp(stmt.Op)

	case kernel.StmtIf:
		cond, err := c.lowerVariable(stmt.Cond)
		if err != nil {
			return Instruction{}, err
		}
		then, err := c.compileScope(stmt.Then)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: InstIf, Cond: cond, Then: then}, nil

	case kernel.StmtIfElse:
		cond, err := c.lowerVariable(stmt.Cond)
		if err != nil {
			return Instruction{}, err
		}
		then, err := c.compileScope(stmt.Then)
		if err != nil {
			return Instruction{}, err
		}
		els, err := c.compileScope(stmt.Else)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: InstIfElse, Cond: cond, Then: then, Else: els}, nil

	case kernel.StmtSwitch:
		cond, err := c.lowerVariable(stmt.Cond)
		if err != nil {
			return Instruction{}, err
		}
		cases := make([]SwitchCaseInst, 0, len(stmt.Cases))
		for _, cs := range stmt.Cases {
			value, err := c.lowerVariable(cs.Value)
			if err != nil {
				return Instruction{}, err
			}
			body, err := c.compileScope(cs.Scope)
			if err != nil {
				return Instruction{}, err
			}
			cases = append(cases, SwitchCaseInst{Value: value, Instructions: body})
		}
		def, err := c.compileScope(stmt.Default)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: InstSwitch, Cond: cond, SwitchCases: cases, SwitchDefault: def}, nil

	case kernel.StmtRangeLoop:
		i, err := c.lowerVariable(stmt.RangeI)
		if err != nil {
			return Instruction{}, err
		}
		start, err := c.lowerVariable(stmt.RangeStart)
		if err != nil {
			return Instruction{}, err
		}
		end, err := c.lowerVariable(stmt.RangeEnd)
		if err != nil {
			return Instruction{}, err
		}
		var step Variable
		if stmt.HasStep {
			step, err = c.lowerVariable(stmt.RangeStep)
			if err != nil {
				return Instruction{}, err
			}
		}
		body, err := c.compileScope(stmt.Then)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{
			Kind:       InstRangeLoop,
			RangeI:     i,
			RangeStart: start,
			RangeEnd:   end,
			RangeStep:  step,
			HasStep:    stmt.HasStep,
			Inclusive:  stmt.Inclusive,
			Then:       body,
		}, nil

	case kernel.StmtLoop:
		body, err := c.compileScope(stmt.Then)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: InstLoop, Then: body}, nil

	case kernel.StmtReturn:
		return Instruction{Kind: InstReturn}, nil

	case kernel.StmtBreak:
		return Instruction{Kind: InstBreak}, nil

	case kernel.StmtSyncWorkgroup:
		return Instruction{Kind: InstWorkgroupBarrier}, nil

	case kernel.StmtSyncStorage:
		return Instruction{Kind: InstStorageBarrier}, nil

	default:
		return Instruction{}, kernel.NewError(kernel.ErrInvariantViolation,
			"unrecognized statement kind")
	}
}
