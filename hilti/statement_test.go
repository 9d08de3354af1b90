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

package hilti_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/ast/scope"
	"github.com/rsmmr/hilti-sub004/hilti"
)

func TestEmptyBlockIsNotTerminated(t *testing.T) {
	b := hilti.NewBlock(nil, nil, nil, nil, ast.NoLocation)
	assert.False(t, b.Terminated())
}

func TestBlockWithUnresolvedInstructionIsNotTerminated(t *testing.T) {
	stmt := hilti.NewInstructionStatement("flow.return_void", nil, nil, nil, nil, ast.NoLocation)
	b := hilti.NewBlock(nil, nil, nil, []hilti.Statement{stmt}, ast.NoLocation)
	assert.False(t, b.Terminated())
}

func TestBlockTerminationDefersToResolvedInstruction(t *testing.T) {
	instr := &hilti.Instruction{Namespace: "flow", Name: "return_void", Terminator: true}
	stmt := hilti.NewInstructionStatement("flow.return_void", nil, nil, nil, nil, ast.NoLocation)
	stmt.SetResolved(instr)
	b := hilti.NewBlock(nil, nil, nil, []hilti.Statement{stmt}, ast.NoLocation)
	assert.True(t, b.Terminated())
}

func TestNestedBlockTerminationRecurses(t *testing.T) {
	instr := &hilti.Instruction{Namespace: "flow", Name: "return_void", Terminator: true}
	inner := hilti.NewInstructionStatement("flow.return_void", nil, nil, nil, nil, ast.NoLocation)
	inner.SetResolved(instr)
	innerBlock := hilti.NewBlock(nil, nil, nil, []hilti.Statement{inner}, ast.NoLocation)
	outer := hilti.NewBlock(nil, nil, nil, []hilti.Statement{innerBlock}, ast.NoLocation)
	assert.True(t, outer.Terminated())
}

func TestAddStatementAppendsAndAddsChild(t *testing.T) {
	b := hilti.NewBlock(nil, nil, nil, nil, ast.NoLocation)
	noop := hilti.NewNoopStatement(ast.NoLocation)
	b.AddStatement(noop)
	assert.Len(t, b.Statements, 1)
	assert.Contains(t, b.Children(false), ast.Node(noop))
}

func TestCatchAllHasNoTypeOrName(t *testing.T) {
	catchAll := hilti.NewCatch(nil, nil, nil, ast.NoLocation)
	assert.True(t, catchAll.CatchAll())

	name := scope.New("e")
	typed := hilti.NewCatch(hilti.NewInteger(8, true, ast.NoLocation), &name, nil, ast.NoLocation)
	assert.False(t, typed.CatchAll())
}

func TestForEachStatementWiresSequenceAndBody(t *testing.T) {
	body := hilti.NewBlock(nil, nil, nil, nil, ast.NoLocation)
	seqType := hilti.NewList(hilti.NewInteger(8, true, ast.NoLocation), ast.NoLocation)
	seq := hilti.NewVariableExpression(hilti.NewVariable("items", seqType, nil, hilti.LocalVariable, ast.NoLocation), ast.NoLocation)
	fe := hilti.NewForEachStatement(scope.New("item"), seq, body, ast.NoLocation)
	assert.Same(t, body, fe.Body)
	assert.Equal(t, coerce.Expression(seq), fe.Sequence)
}
