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

package instructions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/hilti"
	_ "github.com/rsmmr/hilti-sub004/hilti/instructions"
)

func intConst(v int64, width int) coerce.Expression {
	typ := hilti.NewInteger(width, true, ast.NoLocation)
	return hilti.NewConstantExpression(hilti.NewIntegerConstant(v, typ, ast.NoLocation), ast.NoLocation)
}

func boolConst(v bool) coerce.Expression {
	return hilti.NewConstantExpression(hilti.NewBoolConstant(v, hilti.NewBool(ast.NoLocation), ast.NoLocation), ast.NoLocation)
}

func varOfType(name string, typ coerce.Type) coerce.Expression {
	return hilti.NewVariableExpression(hilti.NewVariable(name, typ, nil, hilti.LocalVariable, ast.NoLocation), ast.NoLocation)
}

func TestIntegerAddResolves(t *testing.T) {
	target := varOfType("sum", hilti.NewInteger(64, true, ast.NoLocation))
	op1 := intConst(1, 64)
	op2 := intConst(2, 64)
	matches := hilti.DefaultRegistry.GetMatching("integer.add", target, op1, op2, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "integer.add", matches[0].Mnemonic)
}

func TestIntegerEqualReturnsBool(t *testing.T) {
	target := varOfType("eq", hilti.NewBool(ast.NoLocation))
	op1 := intConst(1, 64)
	op2 := intConst(1, 64)
	matches := hilti.DefaultRegistry.GetMatching("integer.equal", target, op1, op2, nil)
	require.Len(t, matches, 1)
}

func TestBoolNotResolves(t *testing.T) {
	target := varOfType("r", hilti.NewBool(ast.NoLocation))
	op1 := boolConst(true)
	matches := hilti.DefaultRegistry.GetMatching("bool.not", target, op1, nil, nil)
	require.Len(t, matches, 1)
}

func TestStringLengthTargetsInt64(t *testing.T) {
	target := varOfType("n", hilti.NewInteger(64, true, ast.NoLocation))
	op1 := hilti.NewConstantExpression(hilti.NewStringConstant("hi", hilti.NewString(ast.NoLocation), ast.NoLocation), ast.NoLocation)
	matches := hilti.DefaultRegistry.GetMatching("string.length", target, op1, nil, nil)
	require.Len(t, matches, 1)
}

func TestListSizeMatchesAnyElementType(t *testing.T) {
	target := varOfType("n", hilti.NewInteger(64, true, ast.NoLocation))
	listType := hilti.NewList(hilti.NewInteger(8, true, ast.NoLocation), ast.NoLocation)
	ref := hilti.NewReference(listType, ast.NoLocation)
	v := hilti.NewVariable("items", ref, nil, hilti.LocalVariable, ast.NoLocation)
	op1 := hilti.NewVariableExpression(v, ast.NoLocation)
	matches := hilti.DefaultRegistry.GetMatching("list.size", target, op1, nil, nil)
	require.Len(t, matches, 1)
}

func TestFlowReturnVoidIsRegisteredAsTerminator(t *testing.T) {
	matches := hilti.DefaultRegistry.GetMatching("flow.return_void", nil, nil, nil, nil)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Terminator)
}

func TestFlowReturnResultAcceptsAnyValue(t *testing.T) {
	op1 := intConst(5, 8)
	matches := hilti.DefaultRegistry.GetMatching("flow.return_result", nil, op1, nil, nil)
	require.Len(t, matches, 1)
}
