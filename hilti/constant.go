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
)

// baseConstant carries the fields common to every constant kind (spec.md
// §3.5): it is always constant-valued and reports its own type. Concrete
// kinds embed it and only add their literal payload.
type baseConstant struct {
	ast.NodeBase
	kind string
	typ  coerce.Type
}

func (c *baseConstant) ConstantKind() string     { return c.kind }
func (c *baseConstant) ConstantType() coerce.Type { return c.typ }
func (c *baseConstant) ExprType() coerce.Type     { return c.typ }
func (c *baseConstant) IsConstant() bool          { return true }

// canCoerceExpr/coerceExpr are the shared glue every concrete Expression
// kind in this package uses to implement CanCoerceTo/CoerceTo by
// delegating to the module-wide ExpressionCoercer assembled in
// coercion.go (spec.md §3.5's expression-level coercion contract).
func canCoerceExpr(e coerce.Expression, dst coerce.Type) bool {
	return DefaultExpressionCoercer.CanCoerce(e, dst)
}

func coerceExpr(e coerce.Expression, dst coerce.Type, loc ast.Location) (coerce.Expression, bool) {
	return DefaultExpressionCoercer.Coerce(e, dst, loc)
}

// IntegerConstant is a signed or unsigned integer literal.
type IntegerConstant struct {
	baseConstant
	Value int64
}

func NewIntegerConstant(value int64, typ *Integer, loc ast.Location) *IntegerConstant {
	c := &IntegerConstant{baseConstant: baseConstant{kind: "integer", typ: typ}, Value: value}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *IntegerConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *IntegerConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// BoolConstant is a boolean literal.
type BoolConstant struct {
	baseConstant
	Value bool
}

func NewBoolConstant(value bool, typ *Bool, loc ast.Location) *BoolConstant {
	c := &BoolConstant{baseConstant: baseConstant{kind: "bool", typ: typ}, Value: value}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *BoolConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *BoolConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// StringConstant is a string literal.
type StringConstant struct {
	baseConstant
	Value string
}

func NewStringConstant(value string, typ *String, loc ast.Location) *StringConstant {
	c := &StringConstant{baseConstant: baseConstant{kind: "string", typ: typ}, Value: value}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *StringConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *StringConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// DoubleConstant is a floating-point literal.
type DoubleConstant struct {
	baseConstant
	Value float64
}

func NewDoubleConstant(value float64, typ *Double, loc ast.Location) *DoubleConstant {
	c := &DoubleConstant{baseConstant: baseConstant{kind: "double", typ: typ}, Value: value}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *DoubleConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *DoubleConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// AddressConstant, NetworkConstant, PortConstant, IntervalConstant, and
// TimeConstant hold their literal payload as preformatted text, matching
// the grammar-level literals named in spec.md §3.5; parsing/validating
// their concrete representation is a front-end concern out of this
// module's scope (spec.md §1 Non-goals: lexer/parser front-ends).
type (
	AddressConstant  struct{ baseConstant; Text string }
	NetworkConstant  struct{ baseConstant; Text string }
	PortConstant     struct{ baseConstant; Text string }
	IntervalConstant struct{ baseConstant; Text string }
	TimeConstant     struct{ baseConstant; Text string }
)

func NewAddressConstant(text string, typ *Address, loc ast.Location) *AddressConstant {
	c := &AddressConstant{baseConstant: baseConstant{kind: "addr", typ: typ}, Text: text}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *AddressConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *AddressConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

func NewNetworkConstant(text string, typ *Network, loc ast.Location) *NetworkConstant {
	c := &NetworkConstant{baseConstant: baseConstant{kind: "net", typ: typ}, Text: text}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *NetworkConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *NetworkConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

func NewPortConstant(text string, typ *Port, loc ast.Location) *PortConstant {
	c := &PortConstant{baseConstant: baseConstant{kind: "port", typ: typ}, Text: text}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *PortConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *PortConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

func NewIntervalConstant(text string, typ *Interval, loc ast.Location) *IntervalConstant {
	c := &IntervalConstant{baseConstant: baseConstant{kind: "interval", typ: typ}, Text: text}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *IntervalConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *IntervalConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

func NewTimeConstant(text string, typ *Time, loc ast.Location) *TimeConstant {
	c := &TimeConstant{baseConstant: baseConstant{kind: "time", typ: typ}, Text: text}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *TimeConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *TimeConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// EnumLabelConstant names one label of an enum type.
type EnumLabelConstant struct {
	baseConstant
	Label string
}

func NewEnumLabelConstant(label string, typ *EnumType, loc ast.Location) *EnumLabelConstant {
	c := &EnumLabelConstant{baseConstant: baseConstant{kind: "enum", typ: typ}, Label: label}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *EnumLabelConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *EnumLabelConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// BitsetConstant names a set of set bit labels of a bitset type.
type BitsetConstant struct {
	baseConstant
	Labels []string
}

func NewBitsetConstant(labels []string, typ *BitsetType, loc ast.Location) *BitsetConstant {
	c := &BitsetConstant{baseConstant: baseConstant{kind: "bitset", typ: typ}, Labels: append([]string(nil), labels...)}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *BitsetConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *BitsetConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// TupleConstant is a fixed-size, ordered tuple of other constants.
type TupleConstant struct {
	baseConstant
	Elements []coerce.Constant
}

func NewTupleConstant(elements []coerce.Constant, typ *Tuple, loc ast.Location) *TupleConstant {
	c := &TupleConstant{baseConstant: baseConstant{kind: "tuple", typ: typ}, Elements: append([]coerce.Constant(nil), elements...)}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	for _, e := range elements {
		if e != nil {
			c.AddChild(ast.Node(e))
		}
	}
	return c
}
func (c *TupleConstant) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *TupleConstant) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}
