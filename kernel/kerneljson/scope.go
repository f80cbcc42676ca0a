// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package kerneljson

import (
	"fmt"

	"github.com/gogpu/kernelc/kernel"
)

var statementKindNames = map[string]kernel.StatementKind{
	"op": kernel.StmtOp, "if": kernel.StmtIf, "if_else": kernel.StmtIfElse,
	"switch": kernel.StmtSwitch, "range_loop": kernel.StmtRangeLoop, "loop": kernel.StmtLoop,
	"return": kernel.StmtReturn, "break": kernel.StmtBreak,
	"sync_workgroup": kernel.StmtSyncWorkgroup, "sync_storage": kernel.StmtSyncStorage,
}

var statementKindJSONNames = func() map[kernel.StatementKind]string {
	m := make(map[kernel.StatementKind]string, len(statementKindNames))
	for name, k := range statementKindNames {
		m[k] = name
	}
	return m
}()

func (sc switchCase) toKernel() (kernel.SwitchCase, error) {
	v, err := sc.Value.toKernel()
	if err != nil {
		return kernel.SwitchCase{}, err
	}
	s, err := sc.Scope.toKernel()
	if err != nil {
		return kernel.SwitchCase{}, err
	}
	return kernel.SwitchCase{Value: v, Scope: s}, nil
}

func fromKernelSwitchCase(sc kernel.SwitchCase) switchCase {
	return switchCase{Value: fromKernelVariable(sc.Value), Scope: fromKernelScope(sc.Scope)}
}

func (cd constArrayDecl) toKernel() (kernel.ConstArrayDecl, error) {
	it, err := cd.Item.toKernel()
	if err != nil {
		return kernel.ConstArrayDecl{}, err
	}
	values := make([]kernel.Variable, len(cd.Values))
	for i, jv := range cd.Values {
		v, err := jv.toKernel()
		if err != nil {
			return kernel.ConstArrayDecl{}, err
		}
		values[i] = v
	}
	return kernel.ConstArrayDecl{ID: cd.ID, Item: it, Values: values}, nil
}

func fromKernelConstArrayDecl(cd kernel.ConstArrayDecl) constArrayDecl {
	values := make([]variable, len(cd.Values))
	for i, v := range cd.Values {
		values[i] = fromKernelVariable(v)
	}
	return constArrayDecl{ID: cd.ID, Item: fromKernelItem(cd.Item), Values: values}
}

func optionalScope(s *scope) (*kernel.Scope, error) {
	if s == nil {
		return nil, nil
	}
	return s.toKernel()
}

func fromOptionalScope(s *kernel.Scope) *scope {
	if s == nil {
		return nil
	}
	return fromKernelScope(s)
}

func (st statement) toKernel() (kernel.Statement, error) {
	kind, ok := statementKindNames[st.Stmt]
	if !ok {
		return kernel.Statement{}, fmt.Errorf("unknown statement kind %q", st.Stmt)
	}
	out := kernel.Statement{Stmt: kind, HasStep: st.HasStep, Inclusive: st.Inclusive}

	if st.Op != nil {
		o, err := st.Op.toKernel()
		if err != nil {
			return kernel.Statement{}, err
		}
		out.Op = o
	}
	cond, err := st.Cond.toKernel()
	if err != nil {
		return kernel.Statement{}, err
	}
	out.Cond = cond

	if out.Then, err = optionalScope(st.Then); err != nil {
		return kernel.Statement{}, err
	}
	if out.Else, err = optionalScope(st.Else); err != nil {
		return kernel.Statement{}, err
	}
	if out.Default, err = optionalScope(st.Default); err != nil {
		return kernel.Statement{}, err
	}

	if len(st.Cases) > 0 {
		out.Cases = make([]kernel.SwitchCase, len(st.Cases))
		for i, jc := range st.Cases {
			c, err := jc.toKernel()
			if err != nil {
				return kernel.Statement{}, err
			}
			out.Cases[i] = c
		}
	}

	for _, pair := range []struct {
		src variable
		dst *kernel.Variable
	}{
		{st.RangeI, &out.RangeI}, {st.RangeStart, &out.RangeStart},
		{st.RangeEnd, &out.RangeEnd}, {st.RangeStep, &out.RangeStep},
	} {
		v, err := pair.src.toKernel()
		if err != nil {
			return kernel.Statement{}, err
		}
		*pair.dst = v
	}
	return out, nil
}

func fromKernelStatement(st kernel.Statement) statement {
	out := statement{
		Stmt: statementKindJSONNames[st.Stmt], Cond: fromKernelVariable(st.Cond),
		Then: fromOptionalScope(st.Then), Else: fromOptionalScope(st.Else),
		Default: fromOptionalScope(st.Default),
		RangeI: fromKernelVariable(st.RangeI), RangeStart: fromKernelVariable(st.RangeStart),
		RangeEnd: fromKernelVariable(st.RangeEnd), RangeStep: fromKernelVariable(st.RangeStep),
		HasStep: st.HasStep, Inclusive: st.Inclusive,
	}
	if st.Stmt == kernel.StmtOp {
		o := fromKernelOp(st.Op)
		out.Op = &o
	}
	if len(st.Cases) > 0 {
		out.Cases = make([]switchCase, len(st.Cases))
		for i, c := range st.Cases {
			out.Cases[i] = fromKernelSwitchCase(c)
		}
	}
	return out
}

func (s *scope) toKernel() (*kernel.Scope, error) {
	out := kernel.NewScope(s.Depth)
	if len(s.Declarations) > 0 {
		out.Declarations = make([]kernel.Variable, len(s.Declarations))
		for i, jv := range s.Declarations {
			v, err := jv.toKernel()
			if err != nil {
				return nil, err
			}
			out.Declarations[i] = v
		}
	}
	if len(s.ConstArrays) > 0 {
		out.ConstArrays = make([]kernel.ConstArrayDecl, len(s.ConstArrays))
		for i, jd := range s.ConstArrays {
			d, err := jd.toKernel()
			if err != nil {
				return nil, err
			}
			out.ConstArrays[i] = d
		}
	}
	if len(s.Operations) > 0 {
		out.Operations = make([]kernel.Statement, len(s.Operations))
		for i, js := range s.Operations {
			st, err := js.toKernel()
			if err != nil {
				return nil, err
			}
			out.Operations[i] = st
		}
	}
	return out, nil
}

func fromKernelScope(s *kernel.Scope) *scope {
	out := &scope{Depth: s.Depth}
	if len(s.Declarations) > 0 {
		out.Declarations = make([]variable, len(s.Declarations))
		for i, v := range s.Declarations {
			out.Declarations[i] = fromKernelVariable(v)
		}
	}
	if len(s.ConstArrays) > 0 {
		out.ConstArrays = make([]constArrayDecl, len(s.ConstArrays))
		for i, d := range s.ConstArrays {
			out.ConstArrays[i] = fromKernelConstArrayDecl(d)
		}
	}
	if len(s.Operations) > 0 {
		out.Operations = make([]statement, len(s.Operations))
		for i, st := range s.Operations {
			out.Operations[i] = fromKernelStatement(st)
		}
	}
	return out
}
