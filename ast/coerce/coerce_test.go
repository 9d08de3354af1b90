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

package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/ast/scope"
)

// testType is a minimal fixture Type standing in for a concrete hilti
// kind (e.g. "integer"), parameterised by bit width.
type testType struct {
	ast.NodeBase
	kind      string
	width     int
	wildcard  bool
	any       bool
	valueType bool
}

func newTestType(kind string, width int) *testType {
	t := &testType{kind: kind, width: width, valueType: true}
	t.Init(ast.Node(t), ast.NoLocation)
	return t
}

func (t *testType) Kind() string { return t.kind }
func (t *testType) Equals(other coerce.Type) bool {
	if t.any || other.IsAny() {
		return true
	}
	o, ok := other.(*testType)
	if !ok || o.kind != t.kind {
		return false
	}
	if t.wildcard || o.wildcard {
		return true
	}
	return t.width == o.width
}
func (t *testType) IsWildcard() bool  { return t.wildcard }
func (t *testType) IsAny() bool       { return t.any }
func (t *testType) IsValueType() bool { return t.valueType }
func (t *testType) ID() (scope.Identifier, bool) {
	return scope.Identifier{}, false
}

// testConstant is a minimal fixture Constant+Expression standing in for
// e.g. an integer constant.
type testConstant struct {
	ast.NodeBase
	typ   *testType
	value int64
}

func newTestConstant(typ *testType, value int64) *testConstant {
	c := &testConstant{typ: typ, value: value}
	c.Init(ast.Node(c), ast.NoLocation)
	return c
}

func (c *testConstant) ConstantKind() string     { return c.typ.kind }
func (c *testConstant) ConstantType() coerce.Type { return c.typ }
func (c *testConstant) ExprType() coerce.Type     { return c.typ }
func (c *testConstant) IsConstant() bool          { return true }
func (c *testConstant) CanCoerceTo(dst coerce.Type) bool {
	return c.typ.Equals(dst)
}
func (c *testConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	if c.CanCoerceTo(dst) {
		return c, true
	}
	return nil, false
}

func boolType() *testType { return newTestType("bool", 1) }
func intType(width int) *testType { return newTestType("integer", width) }

func newIntToBoolTypeCoercer() *coerce.TypeCoercer {
	tc := coerce.NewTypeCoercer()
	tc.Register("integer", func(_ *coerce.TypeCoercer, src, dst coerce.Type) bool {
		if dst.Kind() == "bool" {
			return true
		}
		if dst.Kind() != "integer" {
			return false
		}
		srcW := src.(*testType).width
		dstW := dst.(*testType).width
		return srcW <= dstW
	})
	return tc
}

func TestTypeCoercerEqualityShortCircuit(t *testing.T) {
	tc := coerce.NewTypeCoercer()
	i32 := intType(32)
	assert.True(t, tc.CanCoerce(i32, i32))
}

func TestTypeCoercerAnyShortCircuit(t *testing.T) {
	tc := coerce.NewTypeCoercer()
	any := newTestType("anything", 0)
	any.any = true
	i32 := intType(32)
	assert.True(t, tc.CanCoerce(any, i32))
	assert.True(t, tc.CanCoerce(i32, any))
}

func TestTypeCoercerIntegerToBoolAlways(t *testing.T) {
	tc := newIntToBoolTypeCoercer()
	assert.True(t, tc.CanCoerce(intType(8), boolType()))
}

func TestTypeCoercerIntegerWidening(t *testing.T) {
	tc := newIntToBoolTypeCoercer()
	assert.True(t, tc.CanCoerce(intType(8), intType(32)))
	assert.False(t, tc.CanCoerce(intType(32), intType(8)))
}

func TestTypeCoercerUnregisteredKindDefaultsFalse(t *testing.T) {
	tc := coerce.NewTypeCoercer()
	assert.False(t, tc.CanCoerce(intType(8), boolType()))
}

func newNarrowingConstantCoercer() *coerce.ConstantCoercer {
	cc := coerce.NewConstantCoercer()
	cc.Register("integer", func(_ *coerce.ConstantCoercer, src coerce.Constant, dst coerce.Type) (coerce.Constant, bool) {
		c := src.(*testConstant)
		if dst.Kind() == "bool" {
			return newTestConstant(boolType(), boolToInt(c.value != 0)), true
		}
		if dst.Kind() != "integer" {
			return nil, false
		}
		width := dst.(*testType).width
		if !fitsWidth(c.value, width) {
			return nil, false
		}
		return newTestConstant(dst.(*testType), c.value), true
	})
	return cc
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func fitsWidth(v int64, width int) bool {
	if width >= 63 {
		return true
	}
	max := int64(1) << uint(width-1)
	return v >= -max && v < max
}

// TestConstantCoercerNarrowing covers spec.md scenario S6's spirit at
// the scalar level: narrowing succeeds within range and fails out of it.
func TestConstantCoercerNarrowing(t *testing.T) {
	cc := newNarrowingConstantCoercer()
	src := newTestConstant(intType(32), 10)

	narrowed, ok := cc.Coerce(src, intType(8))
	require.True(t, ok)
	assert.Equal(t, int64(10), narrowed.(*testConstant).value)

	_, ok = cc.Coerce(newTestConstant(intType(32), 1000), intType(8))
	assert.False(t, ok)
}

func TestConstantCoercerIntegerToBool(t *testing.T) {
	cc := newNarrowingConstantCoercer()
	nonzero := newTestConstant(intType(32), 7)
	c, ok := cc.Coerce(nonzero, boolType())
	require.True(t, ok)
	assert.Equal(t, int64(1), c.(*testConstant).value)

	zero := newTestConstant(intType(32), 0)
	c, ok = cc.Coerce(zero, boolType())
	require.True(t, ok)
	assert.Equal(t, int64(0), c.(*testConstant).value)
}

func TestConstantCoercerSameTypeReturnsUnchanged(t *testing.T) {
	cc := newNarrowingConstantCoercer()
	i32 := intType(32)
	src := newTestConstant(i32, 5)
	c, ok := cc.Coerce(src, i32)
	require.True(t, ok)
	assert.Same(t, src, c)
}

func TestExpressionCoercerWrapsNonConstant(t *testing.T) {
	tc := newIntToBoolTypeCoercer()
	cc := newNarrowingConstantCoercer()
	ec := coerce.NewExpressionCoercer(tc, cc)

	// A non-constant expression (IsConstant() == false) must go through
	// the type coercer and come back wrapped, not coerced in place.
	nonConst := newNonConstExpr(intType(8))
	dst := boolType()
	out, ok := ec.Coerce(nonConst, dst, ast.NoLocation)
	require.True(t, ok)

	wrapped, isWrapped := out.(*coerce.CoercedExpression)
	require.True(t, isWrapped)
	assert.Same(t, coerce.Expression(nonConst), wrapped.Inner())
	assert.Same(t, coerce.Type(dst), wrapped.Target())
}

func TestExpressionCoercerUsesConstantCoercerForConstants(t *testing.T) {
	tc := newIntToBoolTypeCoercer()
	cc := newNarrowingConstantCoercer()
	ec := coerce.NewExpressionCoercer(tc, cc)

	src := newTestConstant(intType(32), 1)
	out, ok := ec.Coerce(src, intType(8), ast.NoLocation)
	require.True(t, ok)
	_, isCoercedWrapper := out.(*coerce.CoercedExpression)
	assert.False(t, isCoercedWrapper, "constant coercion must not be wrapped, per spec.md §3.5")
}

func TestExpressionCoercerSameTypeIsNoOp(t *testing.T) {
	tc := coerce.NewTypeCoercer()
	cc := coerce.NewConstantCoercer()
	ec := coerce.NewExpressionCoercer(tc, cc)

	i32 := intType(32)
	src := newTestConstant(i32, 1)
	out, ok := ec.Coerce(src, i32, ast.NoLocation)
	require.True(t, ok)
	assert.Same(t, coerce.Expression(src), out)
}

// nonConstExpr is a fixture Expression that is never constant-valued, to
// exercise the type-coercer-plus-wrapper path of ExpressionCoercer.Coerce.
type nonConstExpr struct {
	ast.NodeBase
	typ *testType
}

func newNonConstExpr(typ *testType) *nonConstExpr {
	e := &nonConstExpr{typ: typ}
	e.Init(ast.Node(e), ast.NoLocation)
	return e
}

func (e *nonConstExpr) ExprType() coerce.Type { return e.typ }
func (e *nonConstExpr) IsConstant() bool      { return false }
func (e *nonConstExpr) CanCoerceTo(dst coerce.Type) bool {
	return e.typ.Equals(dst)
}
func (e *nonConstExpr) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return nil, false
}
