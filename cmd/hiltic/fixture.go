//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/hilti"
)

// fixtureFile is a deliberately small JSON shape for hand-writing a
// test module without a real front end. It is not a specified wire
// format (spec.md §6: "persisted state: none") — it exists purely so
// `hiltic run` has something to load for a manual smoke test.
type fixtureFile struct {
	Module     string               `json:"module"`
	Statements []fixtureInstruction `json:"statements"`
}

type fixtureInstruction struct {
	Target   string `json:"target"`
	Mnemonic string `json:"mnemonic"`
	Op1      *int64 `json:"op1"`
	Op2      *int64 `json:"op2"`
	Op3      *int64 `json:"op3"`
}

// loadFixture reads path and builds a one-block module out of it: every
// statement becomes an unresolved hilti.InstructionStatement over
// 32-bit integer constants, with a fresh int32 local declared for any
// named target.
func loadFixture(path string) (*hilti.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %q: %w", path, err)
	}

	var f fixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture %q: %w", path, err)
	}

	decls := []*hilti.Declaration{}
	vars := map[string]*hilti.Variable{}
	stmts := make([]hilti.Statement, 0, len(f.Statements))

	for _, fi := range f.Statements {
		// target is left as a nil interface (not a typed nil pointer)
		// when fi.Target is empty, so NewInstructionStatement's `e !=
		// nil` child-registration check behaves correctly.
		var target coerce.Expression
		if fi.Target != "" {
			v, ok := vars[fi.Target]
			if !ok {
				v = hilti.NewVariable(fi.Target, hilti.NewInteger(32, true, ast.NoLocation), nil, hilti.LocalVariable, ast.NoLocation)
				vars[fi.Target] = v
				decls = append(decls, hilti.NewVariableDeclaration(fi.Target, v, hilti.LocalLinkage, ast.NoLocation))
			}
			target = hilti.NewVariableExpression(v, ast.NoLocation)
		}

		stmts = append(stmts, hilti.NewInstructionStatement(
			fi.Mnemonic, target, fixtureOperand(fi.Op1), fixtureOperand(fi.Op2), fixtureOperand(fi.Op3), ast.NoLocation))
	}

	body := hilti.NewBlock(nil, nil, decls, stmts, ast.NoLocation)
	name := f.Module
	if name == "" {
		name = "fixture"
	}
	return hilti.NewModule(name, path, body, ast.NoLocation), nil
}

// fixtureOperand returns a nil coerce.Expression (not a typed nil
// pointer) for an absent operand, so NewInstructionStatement's nil
// check behaves correctly.
func fixtureOperand(v *int64) coerce.Expression {
	if v == nil {
		return nil
	}
	return hilti.NewConstantExpression(hilti.NewIntegerConstant(*v, hilti.NewInteger(32, true, ast.NoLocation), ast.NoLocation), ast.NoLocation)
}
