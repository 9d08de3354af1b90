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

package coerce

import "github.com/rsmmr/hilti-sub004/ast"

// Expression is implemented by every expression-kind node (spec.md §3.5).
// Concrete variants (list, constant, ctor, variable reference, identifier
// reference, type reference, ...) live in hilti/psl; this package only
// needs the coercion-relevant surface.
type Expression interface {
	ast.Node
	ExprType() Type
	IsConstant() bool
	CanCoerceTo(dst Type) bool
	CoerceTo(dst Type) (Expression, bool)
}

// Constant is implemented by constant-valued nodes (spec.md §3.5); a
// concrete constant type in hilti typically implements both Constant and
// Expression.
type Constant interface {
	ast.Node
	ConstantKind() string
	ConstantType() Type
}

// CoercedExpression wraps an inner expression together with a target type
// (spec.md §3.5: "coerced (wraps an inner expression with a target
// type)"). It is itself an Expression whose type is the target type.
type CoercedExpression struct {
	ast.NodeBase
	inner  Expression
	target Type
}

// NewCoercedExpression builds a CoercedExpression, registering inner and
// target as children so the wrapper participates in the ordinary
// parent/child graph like any other node.
func NewCoercedExpression(inner Expression, target Type, loc ast.Location) *CoercedExpression {
	c := &CoercedExpression{inner: inner, target: target}
	c.Init(ast.Node(c), loc)
	if inner != nil {
		c.AddChild(ast.Node(inner))
	}
	if target != nil {
		c.AddChild(ast.Node(target))
	}
	return c
}

// Inner returns the wrapped expression.
func (c *CoercedExpression) Inner() Expression { return c.inner }

// Target returns the coercion's target type.
func (c *CoercedExpression) Target() Type { return c.target }

// ExprType implements Expression: a coerced expression's type is its target.
func (c *CoercedExpression) ExprType() Type { return c.target }

// IsConstant implements Expression, delegating to the wrapped expression.
func (c *CoercedExpression) IsConstant() bool {
	return c.inner != nil && c.inner.IsConstant()
}

// CanCoerceTo implements Expression: a coerced expression can coerce
// further only to its own (already-fixed) target type.
func (c *CoercedExpression) CanCoerceTo(dst Type) bool {
	return c.target != nil && dst != nil && c.target.Equals(dst)
}

// CoerceTo implements Expression.
func (c *CoercedExpression) CoerceTo(dst Type) (Expression, bool) {
	if c.CanCoerceTo(dst) {
		return c, true
	}
	return nil, false
}

// ExpressionCoercer bundles a TypeCoercer and a ConstantCoercer to
// implement the expression-level coercion contract of spec.md §3.5:
// "Constant-valued expressions first try the constant coercer; other
// expressions delegate to the generic type coercer and wrap in a coerced
// expression."
type ExpressionCoercer struct {
	Types     *TypeCoercer
	Constants *ConstantCoercer
}

// NewExpressionCoercer builds an ExpressionCoercer from the given
// type/constant coercers (typically module-wide singletons assembled once
// the concrete hilti/psl kinds have registered their rules).
func NewExpressionCoercer(types *TypeCoercer, constants *ConstantCoercer) *ExpressionCoercer {
	return &ExpressionCoercer{Types: types, Constants: constants}
}

// CanCoerce implements canCoerceTo for an arbitrary expression: true if
// the expression's type already equals dst (or dst is any-matching), or
// if the underlying type/constant coercer reports the conversion possible.
func (ec *ExpressionCoercer) CanCoerce(expr Expression, dst Type) bool {
	if expr == nil || dst == nil {
		return false
	}
	if expr.ExprType().Equals(dst) || dst.IsAny() {
		return true
	}
	if expr.IsConstant() {
		if c, ok := expr.(Constant); ok {
			_, ok := ec.Constants.Coerce(c, dst)
			if ok {
				return true
			}
		}
	}
	return ec.Types.CanCoerce(expr.ExprType(), dst)
}

// Coerce implements coerceTo for an arbitrary expression, per spec.md
// §3.5: unchanged if already of the target type; otherwise the constant
// coercer for constant-valued expressions, else the type coercer plus a
// CoercedExpression wrapper.
func (ec *ExpressionCoercer) Coerce(expr Expression, dst Type, loc ast.Location) (Expression, bool) {
	if expr == nil || dst == nil {
		return nil, false
	}
	if expr.ExprType().Equals(dst) || dst.IsAny() {
		return expr, true
	}
	if expr.IsConstant() {
		if c, ok := expr.(Constant); ok {
			if newConst, ok := ec.Constants.Coerce(c, dst); ok {
				if asExpr, ok := any(newConst).(Expression); ok {
					return asExpr, true
				}
			}
		}
	}
	if ec.Types.CanCoerce(expr.ExprType(), dst) {
		return NewCoercedExpression(expr, dst, loc), true
	}
	return nil, false
}
