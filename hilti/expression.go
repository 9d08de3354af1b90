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

package hilti

import (
	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/ast/scope"
)

// baseExpr carries the fields every expression-kind node shares: the
// originating scope name, when the expression was imported from another
// module (original_source/ast/expression.h's `setScope`/`scope`).
type baseExpr struct {
	ast.NodeBase
	scopeName string
}

func (e *baseExpr) SetScope(name string) { e.scopeName = name }
func (e *baseExpr) Scope() string        { return e.scopeName }

// ListExpression is a comma-separated list of sub-expressions; its
// evaluation type is that of its last element, or nil if empty
// (original_source/ast/expression.h's expression::mixin::List).
type ListExpression struct {
	baseExpr
	Elements []coerce.Expression
}

func NewListExpression(elements []coerce.Expression, loc ast.Location) *ListExpression {
	e := &ListExpression{Elements: append([]coerce.Expression(nil), elements...)}
	e.Init(ast.Node(e), loc)
	for _, el := range elements {
		if el != nil {
			e.AddChild(ast.Node(el))
		}
	}
	return e
}
func (e *ListExpression) ExprType() coerce.Type {
	if len(e.Elements) == 0 {
		return nil
	}
	return e.Elements[len(e.Elements)-1].ExprType()
}
func (e *ListExpression) IsConstant() bool { return allConstant(e.Elements) }
func (e *ListExpression) CanCoerceTo(dst coerce.Type) bool {
	return canCoerceExpr(e, dst)
}
func (e *ListExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(e, dst, e.Location())
}

// CtorExpression wraps a Ctor as an expression.
type CtorExpression struct {
	baseExpr
	ctor Ctor
}

func NewCtorExpression(ctor Ctor, loc ast.Location) *CtorExpression {
	e := &CtorExpression{ctor: ctor}
	e.Init(ast.Node(e), loc)
	if ctor != nil {
		e.AddChild(ast.Node(ctor))
	}
	return e
}
func (e *CtorExpression) Ctor() Ctor             { return e.ctor }
func (e *CtorExpression) ExprType() coerce.Type  { return e.ctor.ExprType() }
func (e *CtorExpression) IsConstant() bool       { return e.ctor.IsConstant() }
func (e *CtorExpression) CanCoerceTo(dst coerce.Type) bool {
	return canCoerceExpr(e, dst)
}
func (e *CtorExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(e, dst, e.Location())
}

// ConstantExpression wraps a Constant as an expression, preferring the
// constant coercer over the type coercer (original_source/ast/expression.h's
// expression::mixin::Constant::_canCoerceTo/_coerceTo).
type ConstantExpression struct {
	baseExpr
	constant coerce.Constant
}

func NewConstantExpression(constant coerce.Constant, loc ast.Location) *ConstantExpression {
	e := &ConstantExpression{constant: constant}
	e.Init(ast.Node(e), loc)
	if constant != nil {
		e.AddChild(ast.Node(constant))
	}
	return e
}
func (e *ConstantExpression) Constant() coerce.Constant { return e.constant }
func (e *ConstantExpression) ExprType() coerce.Type     { return e.constant.ConstantType() }
func (e *ConstantExpression) IsConstant() bool          { return true }
func (e *ConstantExpression) CanCoerceTo(dst coerce.Type) bool {
	if e.ExprType().Equals(dst) {
		return true
	}
	if _, ok := DefaultConstantCoercer.Coerce(e.constant, dst); ok {
		return true
	}
	return DefaultTypeCoercer.CanCoerce(e.ExprType(), dst)
}
func (e *ConstantExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	if e.ExprType().Equals(dst) {
		return e, true
	}
	if coerced, ok := DefaultConstantCoercer.Coerce(e.constant, dst); ok {
		return NewConstantExpression(coerced, e.Location()), true
	}
	return coerceExpr(e, dst, e.Location())
}

// VariableExpression references a declared Variable.
type VariableExpression struct {
	baseExpr
	variable *Variable
}

func NewVariableExpression(v *Variable, loc ast.Location) *VariableExpression {
	e := &VariableExpression{variable: v}
	e.Init(ast.Node(e), loc)
	if v != nil {
		e.AddChild(ast.Node(v))
	}
	return e
}
func (e *VariableExpression) Variable() *Variable { return e.variable }
func (e *VariableExpression) ExprType() coerce.Type { return e.variable.Type() }
func (e *VariableExpression) IsConstant() bool      { return false }
func (e *VariableExpression) CanCoerceTo(dst coerce.Type) bool {
	return canCoerceExpr(e, dst)
}
func (e *VariableExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(e, dst, e.Location())
}

// TypeExpression references a type as a first-class value (its own
// evaluation type is a "meta type" wrapping the referenced type, per
// original_source/ast/expression.h's expression::mixin::Type).
type TypeExpression struct {
	baseExpr
	value coerce.Type
	meta  coerce.Type
}

func NewTypeExpression(value coerce.Type, loc ast.Location) *TypeExpression {
	e := &TypeExpression{value: value, meta: &metaTypeType{baseType: newBaseType("type", true), referenced: value}}
	e.Init(ast.Node(e), loc)
	if value != nil {
		e.AddChild(ast.Node(value))
	}
	return e
}
func (e *TypeExpression) Value() coerce.Type         { return e.value }
func (e *TypeExpression) ExprType() coerce.Type       { return e.meta }
func (e *TypeExpression) IsConstant() bool            { return true }
func (e *TypeExpression) CanCoerceTo(dst coerce.Type) bool {
	return e.ExprType().Equals(dst)
}
func (e *TypeExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	if e.CanCoerceTo(dst) {
		return e, true
	}
	return nil, false
}

// metaTypeType is the "type of a type expression" (spec.md §3.5: referencing
// a type yields a meta-type value, not the type itself).
type metaTypeType struct {
	baseType
	referenced coerce.Type
}

func (t *metaTypeType) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		om, ok := o.(*metaTypeType)
		return ok && sameOrBothNil(t.referenced, om.referenced)
	})
}
func (t *metaTypeType) String() string { return "type<" + typeString(t.referenced) + ">" }

// blockType is the type reported by a BlockExpression (original_source/ast
// /expression.h's BlockType(), always the same singleton kind).
type blockType struct{ baseType }

func (t *blockType) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *blockType) String() string { return "block" }

// BlockExpression references a code block value (used for, e.g., hook
// bodies passed as first-class values).
type BlockExpression struct {
	baseExpr
	block *Block
}

func NewBlockExpression(b *Block, loc ast.Location) *BlockExpression {
	e := &BlockExpression{block: b}
	e.Init(ast.Node(e), loc)
	if b != nil {
		e.AddChild(ast.Node(b))
	}
	return e
}
func (e *BlockExpression) Block() *Block        { return e.block }
func (e *BlockExpression) ExprType() coerce.Type { return &blockType{baseType: newBaseType("block", false)} }
func (e *BlockExpression) IsConstant() bool      { return true }
func (e *BlockExpression) CanCoerceTo(dst coerce.Type) bool {
	return e.ExprType().Equals(dst)
}
func (e *BlockExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	if e.CanCoerceTo(dst) {
		return e, true
	}
	return nil, false
}

// moduleType is the type reported by a ModuleExpression.
type moduleType struct{ baseType }

func (t *moduleType) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *moduleType) String() string { return "module" }

// ModuleExpression references a Module value.
type ModuleExpression struct {
	baseExpr
	module *Module
}

func NewModuleExpression(m *Module, loc ast.Location) *ModuleExpression {
	e := &ModuleExpression{module: m}
	e.Init(ast.Node(e), loc)
	if m != nil {
		e.AddChild(ast.Node(m))
	}
	return e
}
func (e *ModuleExpression) Module() *Module      { return e.module }
func (e *ModuleExpression) ExprType() coerce.Type { return &moduleType{baseType: newBaseType("module", false)} }
func (e *ModuleExpression) IsConstant() bool      { return true }
func (e *ModuleExpression) CanCoerceTo(dst coerce.Type) bool {
	return e.ExprType().Equals(dst)
}
func (e *ModuleExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	if e.CanCoerceTo(dst) {
		return e, true
	}
	return nil, false
}

// FunctionExpression references a declared Function.
type FunctionExpression struct {
	baseExpr
	function *Function
}

func NewFunctionExpression(f *Function, loc ast.Location) *FunctionExpression {
	e := &FunctionExpression{function: f}
	e.Init(ast.Node(e), loc)
	if f != nil {
		e.AddChild(ast.Node(f))
	}
	return e
}
func (e *FunctionExpression) Function() *Function { return e.function }
func (e *FunctionExpression) ExprType() coerce.Type { return e.function.Type() }
func (e *FunctionExpression) IsConstant() bool      { return true }
func (e *FunctionExpression) CanCoerceTo(dst coerce.Type) bool {
	return canCoerceExpr(e, dst)
}
func (e *FunctionExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(e, dst, e.Location())
}

// unknownType stands in for an unresolved identifier's type until a later
// pass replaces the IdentifierExpression with what it actually refers to
// (original_source/ast/expression.h's expression::mixin::ID).
type unknownType struct{ baseType }

func (t *unknownType) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *unknownType) String() string { return "<unknown>" }

// IdentifierExpression references an identifier that has not yet been
// resolved to a concrete declaration; a later pass (ast/visitor-driven
// resolver, outside this module's scope) replaces it with the expression
// the identifier actually refers to.
type IdentifierExpression struct {
	baseExpr
	ID scope.Identifier
}

func NewIdentifierExpression(id scope.Identifier, loc ast.Location) *IdentifierExpression {
	e := &IdentifierExpression{ID: id}
	e.Init(ast.Node(e), loc)
	return e
}
func (e *IdentifierExpression) ExprType() coerce.Type { return &unknownType{baseType: newBaseType("unknown", false)} }
func (e *IdentifierExpression) IsConstant() bool      { return false }
func (e *IdentifierExpression) CanCoerceTo(coerce.Type) bool { return false }
func (e *IdentifierExpression) CoerceTo(coerce.Type) (coerce.Expression, bool) {
	return nil, false
}

// ParameterExpression references a function Parameter from within its body.
type ParameterExpression struct {
	baseExpr
	parameter *Parameter
}

func NewParameterExpression(p *Parameter, loc ast.Location) *ParameterExpression {
	e := &ParameterExpression{parameter: p}
	e.Init(ast.Node(e), loc)
	if p != nil {
		e.AddChild(ast.Node(p))
	}
	return e
}
func (e *ParameterExpression) Parameter() *Parameter { return e.parameter }
func (e *ParameterExpression) ExprType() coerce.Type  { return e.parameter.Type }
func (e *ParameterExpression) IsConstant() bool       { return false }
func (e *ParameterExpression) CanCoerceTo(dst coerce.Type) bool {
	return canCoerceExpr(e, dst)
}
func (e *ParameterExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(e, dst, e.Location())
}

// CodegenExpression is an opaque sentinel carrying a code-generator cookie
// and a declared type, used to thread backend-specific values through
// passes that otherwise only know about hilti.Expression (spec.md §3.5's
// "code-generator sentinel").
type CodegenExpression struct {
	baseExpr
	Cookie any
	typ    coerce.Type
}

func NewCodegenExpression(cookie any, typ coerce.Type, loc ast.Location) *CodegenExpression {
	e := &CodegenExpression{Cookie: cookie, typ: typ}
	e.Init(ast.Node(e), loc)
	if typ != nil {
		e.AddChild(ast.Node(typ))
	}
	return e
}
func (e *CodegenExpression) ExprType() coerce.Type { return e.typ }
func (e *CodegenExpression) IsConstant() bool      { return false }
func (e *CodegenExpression) CanCoerceTo(dst coerce.Type) bool {
	return e.typ != nil && dst != nil && e.typ.Equals(dst)
}
func (e *CodegenExpression) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	if e.CanCoerceTo(dst) {
		return e, true
	}
	return nil, false
}
