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
	"github.com/rsmmr/hilti-sub004/hilti"
	"github.com/rsmmr/hilti-sub004/passes"
)

func globalDecl(name string) *hilti.Declaration {
	v := hilti.NewVariable(name, hilti.NewInteger(32, true, ast.NoLocation), nil, hilti.GlobalVariable, ast.NoLocation)
	return hilti.NewVariableDeclaration(name, v, hilti.ExportedLinkage, ast.NoLocation)
}

func localDecl(name string) *hilti.Declaration {
	v := hilti.NewVariable(name, hilti.NewInteger(32, true, ast.NoLocation), nil, hilti.LocalVariable, ast.NoLocation)
	return hilti.NewVariableDeclaration(name, v, hilti.LocalLinkage, ast.NoLocation)
}

func TestCollectorSortsGlobalsByIdentifier(t *testing.T) {
	body := hilti.NewBlock(nil, nil, []*hilti.Declaration{
		globalDecl("zebra"), localDecl("notme"), globalDecl("apple"),
	}, nil, ast.NoLocation)
	mod := hilti.NewModule("m", "m.hlt", body, ast.NoLocation)

	c := passes.NewCollector(io.Discard)
	ok, err := c.Run(ast.Node(mod))
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, c.Globals, 2)
	assert.Equal(t, "apple", c.Globals[0].Name)
	assert.Equal(t, "zebra", c.Globals[1].Name)
}

func TestCollectorResetClearsAccumulatedGlobals(t *testing.T) {
	body := hilti.NewBlock(nil, nil, []*hilti.Declaration{globalDecl("g")}, nil, ast.NoLocation)
	mod := hilti.NewModule("m", "m.hlt", body, ast.NoLocation)

	c := passes.NewCollector(io.Discard)
	_, err := c.Run(ast.Node(mod))
	require.NoError(t, err)
	require.Len(t, c.Globals, 1)

	c.Reset()
	assert.Empty(t, c.Globals)
}

func TestCollectorIgnoresLocalVariables(t *testing.T) {
	body := hilti.NewBlock(nil, nil, []*hilti.Declaration{localDecl("x")}, nil, ast.NoLocation)
	mod := hilti.NewModule("m", "m.hlt", body, ast.NoLocation)

	c := passes.NewCollector(io.Discard)
	_, err := c.Run(ast.Node(mod))
	require.NoError(t, err)
	assert.Empty(t, c.Globals)
}
