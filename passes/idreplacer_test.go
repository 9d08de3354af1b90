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

package passes_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/scope"
	"github.com/rsmmr/hilti-sub004/hilti"
	"github.com/rsmmr/hilti-sub004/passes"
)

func TestIDReplacerRewritesMatchingIdentifierExpressions(t *testing.T) {
	oldID := scope.New("loop-next")
	newID := scope.New("@__loop_next_1")

	ref := hilti.NewIdentifierExpression(oldID, ast.NoLocation)
	stmt := hilti.NewInstructionStatement("flow.jump", nil, ref, nil, nil, ast.NoLocation)
	body := hilti.NewBlock(nil, nil, nil, []hilti.Statement{stmt}, ast.NoLocation)

	p := passes.NewIDReplacer(oldID, newID, io.Discard)
	ok, err := p.Run(ast.Node(body))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, p.Changed())

	children := stmt.Children(false)
	require.Len(t, children, 1)
	replaced, isIdent := children[0].(*hilti.IdentifierExpression)
	require.True(t, isIdent)
	assert.True(t, replaced.ID.Equal(newID))

	// The instruction statement's own typed Op1 field (what the printer
	// actually reads) must be patched too, not just the generic graph.
	op1, isIdent := stmt.Op1.(*hilti.IdentifierExpression)
	require.True(t, isIdent)
	assert.True(t, op1.ID.Equal(newID))
}

func TestIDReplacerShortCircuitsWhenOldEqualsNew(t *testing.T) {
	id := scope.New("loop-break")
	ref := hilti.NewIdentifierExpression(id, ast.NoLocation)
	stmt := hilti.NewInstructionStatement("flow.jump", nil, ref, nil, nil, ast.NoLocation)
	body := hilti.NewBlock(nil, nil, nil, []hilti.Statement{stmt}, ast.NoLocation)

	p := passes.NewIDReplacer(id, id, io.Discard)
	ok, err := p.Run(ast.Node(body))
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, p.Changed())
}

func TestIDReplacerIgnoresNonMatchingIdentifiers(t *testing.T) {
	ref := hilti.NewIdentifierExpression(scope.New("other"), ast.NoLocation)
	stmt := hilti.NewInstructionStatement("flow.jump", nil, ref, nil, nil, ast.NoLocation)
	body := hilti.NewBlock(nil, nil, nil, []hilti.Statement{stmt}, ast.NoLocation)

	p := passes.NewIDReplacer(scope.New("loop-break"), scope.New("@__loop_end_1"), io.Discard)
	ok, err := p.Run(ast.Node(body))
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, p.Changed())
}
