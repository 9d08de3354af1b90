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

func TestIntegerCoercesToBoolAlways(t *testing.T) {
	i8 := hilti.NewInteger(8, true, ast.NoLocation)
	b := hilti.NewBool(ast.NoLocation)
	assert.True(t, hilti.DefaultTypeCoercer.CanCoerce(i8, b))
}

func TestIntegerWidensButDoesNotNarrow(t *testing.T) {
	i8 := hilti.NewInteger(8, true, ast.NoLocation)
	i64 := hilti.NewInteger(64, true, ast.NoLocation)
	assert.True(t, hilti.DefaultTypeCoercer.CanCoerce(i8, i64))
	assert.False(t, hilti.DefaultTypeCoercer.CanCoerce(i64, i8))
}

func TestReferenceCoercesWhenReferencedTypesCoerce(t *testing.T) {
	src := hilti.NewReference(hilti.NewInteger(8, true, ast.NoLocation), ast.NoLocation)
	dst := hilti.NewReference(hilti.NewInteger(64, true, ast.NoLocation), ast.NoLocation)
	assert.True(t, hilti.DefaultTypeCoercer.CanCoerce(src, dst))
}

func TestTupleTypeCoercesElementWise(t *testing.T) {
	src := hilti.NewTuple([]coerce.Type{
		hilti.NewInteger(8, true, ast.NoLocation),
		hilti.NewBool(ast.NoLocation),
	}, ast.NoLocation)
	dst := hilti.NewTuple([]coerce.Type{
		hilti.NewInteger(64, true, ast.NoLocation),
		hilti.NewBool(ast.NoLocation),
	}, ast.NoLocation)
	assert.True(t, hilti.DefaultTypeCoercer.CanCoerce(src, dst))
}

func TestTupleTypeCoercionFailsOnSizeMismatch(t *testing.T) {
	src := hilti.NewTuple([]coerce.Type{hilti.NewInteger(8, true, ast.NoLocation)}, ast.NoLocation)
	dst := hilti.NewTuple([]coerce.Type{
		hilti.NewInteger(8, true, ast.NoLocation),
		hilti.NewBool(ast.NoLocation),
	}, ast.NoLocation)
	assert.False(t, hilti.DefaultTypeCoercer.CanCoerce(src, dst))
}

func TestUnsetCoercesIntoAnything(t *testing.T) {
	u := hilti.NewUnset(ast.NoLocation)
	assert.True(t, hilti.DefaultTypeCoercer.CanCoerce(u, hilti.NewString(ast.NoLocation)))
}

func TestIntegerConstantNarrowsWhenInRange(t *testing.T) {
	i32 := hilti.NewInteger(32, true, ast.NoLocation)
	i8 := hilti.NewInteger(8, true, ast.NoLocation)
	c := hilti.NewIntegerConstant(10, i32, ast.NoLocation)

	narrowed, ok := hilti.DefaultConstantCoercer.Coerce(c, i8)
	require.True(t, ok)
	assert.Equal(t, int64(10), narrowed.(*hilti.IntegerConstant).Value)
}

func TestIntegerConstantNarrowingFailsOutOfRange(t *testing.T) {
	i32 := hilti.NewInteger(32, true, ast.NoLocation)
	i8 := hilti.NewInteger(8, true, ast.NoLocation)
	c := hilti.NewIntegerConstant(1000, i32, ast.NoLocation)

	_, ok := hilti.DefaultConstantCoercer.Coerce(c, i8)
	assert.False(t, ok)
}

func TestIntegerConstantToBoolUsesNonzeroTest(t *testing.T) {
	i32 := hilti.NewInteger(32, true, ast.NoLocation)
	b := hilti.NewBool(ast.NoLocation)

	nonzero := hilti.NewIntegerConstant(7, i32, ast.NoLocation)
	out, ok := hilti.DefaultConstantCoercer.Coerce(nonzero, b)
	require.True(t, ok)
	assert.True(t, out.(*hilti.BoolConstant).Value)

	zero := hilti.NewIntegerConstant(0, i32, ast.NoLocation)
	out, ok = hilti.DefaultConstantCoercer.Coerce(zero, b)
	require.True(t, ok)
	assert.False(t, out.(*hilti.BoolConstant).Value)
}

// TestTupleConstantCoercionRoundTrip exercises spec.md scenario S6: a
// tuple constant coerces element-wise into a destination tuple type whose
// element types are themselves coercible, and the round trip preserves
// per-element values.
func TestTupleConstantCoercionRoundTrip(t *testing.T) {
	i8 := hilti.NewInteger(8, true, ast.NoLocation)
	i64 := hilti.NewInteger(64, true, ast.NoLocation)
	boolT := hilti.NewBool(ast.NoLocation)

	srcTupleType := hilti.NewTuple([]coerce.Type{i8, i8}, ast.NoLocation)
	dstTupleType := hilti.NewTuple([]coerce.Type{i64, boolT}, ast.NoLocation)

	src := hilti.NewTupleConstant([]coerce.Constant{
		hilti.NewIntegerConstant(3, i8, ast.NoLocation),
		hilti.NewIntegerConstant(1, i8, ast.NoLocation),
	}, srcTupleType, ast.NoLocation)

	out, ok := hilti.DefaultConstantCoercer.Coerce(src, dstTupleType)
	require.True(t, ok)

	tc := out.(*hilti.TupleConstant)
	require.Len(t, tc.Elements, 2)
	assert.Equal(t, int64(3), tc.Elements[0].(*hilti.IntegerConstant).Value)
	assert.True(t, tc.Elements[1].(*hilti.BoolConstant).Value)
}

func TestTupleConstantCoercionFailsWhenElementCannotCoerce(t *testing.T) {
	i8 := hilti.NewInteger(8, true, ast.NoLocation)
	i32 := hilti.NewInteger(32, true, ast.NoLocation)

	srcTupleType := hilti.NewTuple([]coerce.Type{i32}, ast.NoLocation)
	dstTupleType := hilti.NewTuple([]coerce.Type{i8}, ast.NoLocation)

	src := hilti.NewTupleConstant([]coerce.Constant{
		hilti.NewIntegerConstant(1000, i32, ast.NoLocation),
	}, srcTupleType, ast.NoLocation)

	_, ok := hilti.DefaultConstantCoercer.Coerce(src, dstTupleType)
	assert.False(t, ok)
}

func TestNonConstantExpressionCoercionWrapsResult(t *testing.T) {
	i8 := hilti.NewInteger(8, true, ast.NoLocation)
	i64 := hilti.NewInteger(64, true, ast.NoLocation)
	variable := newFakeVariableRef(i8)

	out, ok := hilti.DefaultExpressionCoercer.Coerce(variable, i64, ast.NoLocation)
	require.True(t, ok)
	_, wrapped := out.(*coerce.CoercedExpression)
	assert.True(t, wrapped)
}

// fakeVariableRef is a minimal non-constant Expression fixture whose type
// is set directly, without building a Variable.
type fakeVariableRef struct {
	ast.NodeBase
	typ coerce.Type
}

func newFakeVariableRef(typ coerce.Type) *fakeVariableRef {
	e := &fakeVariableRef{typ: typ}
	e.Init(ast.Node(e), ast.NoLocation)
	return e
}

func (e *fakeVariableRef) ExprType() coerce.Type           { return e.typ }
func (e *fakeVariableRef) IsConstant() bool                { return false }
func (e *fakeVariableRef) CanCoerceTo(dst coerce.Type) bool { return e.typ.Equals(dst) }
func (e *fakeVariableRef) CoerceTo(coerce.Type) (coerce.Expression, bool) {
	return nil, false
}
