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

func intConstExpr(v int64, width int) *hilti.ConstantExpression {
	typ := hilti.NewInteger(width, true, ast.NoLocation)
	return hilti.NewConstantExpression(hilti.NewIntegerConstant(v, typ, ast.NoLocation), ast.NoLocation)
}

func TestListExpressionTypeIsLastElement(t *testing.T) {
	a := intConstExpr(1, 8)
	b := intConstExpr(2, 64)
	list := hilti.NewListExpression([]coerce.Expression{a, b}, ast.NoLocation)
	assert.True(t, list.ExprType().Equals(hilti.NewInteger(64, true, ast.NoLocation)))
}

func TestEmptyListExpressionHasNilType(t *testing.T) {
	list := hilti.NewListExpression(nil, ast.NoLocation)
	assert.Nil(t, list.ExprType())
}

func TestListExpressionIsConstantOnlyWhenAllElementsAre(t *testing.T) {
	a := intConstExpr(1, 8)
	nonConst := newFakeVariableRef(hilti.NewInteger(8, true, ast.NoLocation))
	assert.True(t, hilti.NewListExpression([]coerce.Expression{a}, ast.NoLocation).IsConstant())
	assert.False(t, hilti.NewListExpression([]coerce.Expression{a, nonConst}, ast.NoLocation).IsConstant())
}

func TestConstantExpressionCoercesThroughConstantCoercerFirst(t *testing.T) {
	src := intConstExpr(5, 8)
	dst := hilti.NewInteger(64, true, ast.NoLocation)
	coerced, ok := src.CoerceTo(dst)
	assert.True(t, ok)
	assert.True(t, coerced.ExprType().Equals(dst))
}

func TestTypeExpressionIsAlwaysConstant(t *testing.T) {
	te := hilti.NewTypeExpression(hilti.NewInteger(8, true, ast.NoLocation), ast.NoLocation)
	assert.True(t, te.IsConstant())
}

func TestTypeExpressionCanCoerceOnlyToItsOwnMetaType(t *testing.T) {
	te := hilti.NewTypeExpression(hilti.NewInteger(8, true, ast.NoLocation), ast.NoLocation)
	assert.True(t, te.CanCoerceTo(te.ExprType()))
	assert.False(t, te.CanCoerceTo(hilti.NewBool(ast.NoLocation)))
}

func TestIdentifierExpressionIsNeverConstantOrCoercible(t *testing.T) {
	id := hilti.NewIdentifierExpression(scope.New("foo"), ast.NoLocation)
	assert.False(t, id.IsConstant())
	assert.False(t, id.CanCoerceTo(hilti.NewBool(ast.NoLocation)))
	_, ok := id.CoerceTo(hilti.NewBool(ast.NoLocation))
	assert.False(t, ok)
}

func TestCodegenExpressionCoercesOnlyByExactType(t *testing.T) {
	typ := hilti.NewInteger(8, true, ast.NoLocation)
	ce := hilti.NewCodegenExpression("cookie", typ, ast.NoLocation)
	assert.True(t, ce.CanCoerceTo(typ))
	assert.False(t, ce.CanCoerceTo(hilti.NewInteger(64, true, ast.NoLocation)))
}

func TestVariableExpressionDelegatesTypeToVariable(t *testing.T) {
	typ := hilti.NewInteger(16, true, ast.NoLocation)
	v := hilti.NewVariable("x", typ, nil, hilti.LocalVariable, ast.NoLocation)
	ve := hilti.NewVariableExpression(v, ast.NoLocation)
	assert.True(t, ve.ExprType().Equals(typ))
}
