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
	"github.com/stretchr/testify/require"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/hilti"
)

func TestEmptyListCtorYieldsWildcardType(t *testing.T) {
	c := hilti.NewListCtor(nil, nil, ast.NoLocation)
	typ := c.ExprType()
	assert.True(t, typ.IsWildcard())
	assert.Equal(t, "list", typ.Kind())
}

func TestNonEmptyListCtorYieldsConcreteElementType(t *testing.T) {
	i32 := hilti.NewInteger(32, true, ast.NoLocation)
	elem := hilti.NewIntegerConstant(1, i32, ast.NoLocation)
	c := hilti.NewListCtor([]coerce.Expression{elem}, i32, ast.NoLocation)

	list, ok := c.ExprType().(*hilti.List)
	require.True(t, ok)
	assert.False(t, list.IsWildcard())
	assert.True(t, i32.Equals(list.ElementType()))
}

func TestListCtorIsConstantOnlyWhenAllElementsAre(t *testing.T) {
	i32 := hilti.NewInteger(32, true, ast.NoLocation)
	constElem := hilti.NewIntegerConstant(1, i32, ast.NoLocation)
	nonConstElem := newFakeVariableRef(i32)

	allConst := hilti.NewListCtor([]coerce.Expression{constElem}, i32, ast.NoLocation)
	assert.True(t, allConst.IsConstant())

	mixed := hilti.NewListCtor([]coerce.Expression{constElem, nonConstElem}, i32, ast.NoLocation)
	assert.False(t, mixed.IsConstant())
}

func TestVectorCtorIsMutableContainerType(t *testing.T) {
	boolT := hilti.NewBool(ast.NoLocation)
	elem := hilti.NewBoolConstant(true, boolT, ast.NoLocation)
	c := hilti.NewVectorCtor([]coerce.Expression{elem}, boolT, ast.NoLocation)

	v, ok := c.ExprType().(*hilti.Vector)
	require.True(t, ok)
	assert.True(t, v.IsMutable())
}

func TestMapCtorEmptyYieldsWildcard(t *testing.T) {
	c := hilti.NewMapCtor(nil, nil, nil, ast.NoLocation)
	assert.True(t, c.ExprType().IsWildcard())
}

func TestMapCtorConstantRollup(t *testing.T) {
	i32 := hilti.NewInteger(32, true, ast.NoLocation)
	strT := hilti.NewString(ast.NoLocation)
	key := hilti.NewStringConstant("a", strT, ast.NoLocation)
	val := hilti.NewIntegerConstant(1, i32, ast.NoLocation)

	c := hilti.NewMapCtor([]hilti.MapEntry{{Key: key, Value: val}}, strT, i32, ast.NoLocation)
	assert.True(t, c.IsConstant())
}

func TestBytesCtorReportsConstant(t *testing.T) {
	bytesT := hilti.NewBytes(ast.NoLocation)
	c := hilti.NewBytesCtor([]byte("hi"), bytesT, ast.NoLocation)
	assert.True(t, c.IsConstant())
	assert.Equal(t, "bytes", c.CtorKind())
}

func TestRegexpCtorHoldsPatternList(t *testing.T) {
	c := hilti.NewRegexpCtor([]string{"a.*b", "c+"}, nil, ast.NoLocation)
	assert.Len(t, c.Patterns, 2)
	assert.True(t, c.IsConstant())
}
