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

// Package psl implements a second, much smaller, language-specific node
// layer on top of the shared ast/ast.coerce framework: grammar-rule
// declarations, unit/field declarations, attribute lists, and a
// field-dispatch switch construct. It exists to demonstrate that the
// coercion/visitor/printer machinery in ast and hilti is genuinely
// shared infrastructure and not accidentally IR-specific — it is kept
// intentionally small, since PSL's own grammar and parsing rules are not
// this repository's concern.
package psl

import (
	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
)

// Attribute is a single `&name=value`-style annotation attached to a
// grammar unit or field (e.g. `&length`, `&convert`).
type Attribute struct {
	Name  string
	Value coerce.Expression
}

// Field is one member of a Unit: a named, typed slot filled in while
// parsing, with zero or more attributes controlling how it's parsed or
// post-processed.
type Field struct {
	ast.NodeBase
	Name       string
	Type       coerce.Type
	Attributes []Attribute
}

// NewField builds a unit field.
func NewField(name string, typ coerce.Type, attrs []Attribute, loc ast.Location) *Field {
	f := &Field{Name: name, Type: typ, Attributes: append([]Attribute(nil), attrs...)}
	f.Init(ast.Node(f), loc)
	if typ != nil {
		f.AddChild(ast.Node(typ))
	}
	for _, a := range attrs {
		if a.Value != nil {
			f.AddChild(ast.Node(a.Value))
		}
	}
	return f
}

// SwitchCase is one arm of a SwitchStatement: a case expression selecting
// a field to parse next, or nil for the default arm.
type SwitchCase struct {
	Expr  coerce.Expression
	Field *Field
}

// SwitchStatement dispatches to one of several fields based on a
// discriminant expression — the PSL analogue of a tagged-union parse
// (e.g. dispatching on a just-parsed type tag to pick the next field's
// shape).
type SwitchStatement struct {
	ast.NodeBase
	Discriminant coerce.Expression
	Cases        []SwitchCase
}

// NewSwitchStatement builds a field-dispatch switch.
func NewSwitchStatement(discriminant coerce.Expression, cases []SwitchCase, loc ast.Location) *SwitchStatement {
	s := &SwitchStatement{Discriminant: discriminant, Cases: append([]SwitchCase(nil), cases...)}
	s.Init(ast.Node(s), loc)
	if discriminant != nil {
		s.AddChild(ast.Node(discriminant))
	}
	for _, c := range cases {
		if c.Expr != nil {
			s.AddChild(ast.Node(c.Expr))
		}
		if c.Field != nil {
			s.AddChild(ast.Node(c.Field))
		}
	}
	return s
}

// DefaultCase reports whether case c is the switch's default arm (no
// discriminating expression).
func (c SwitchCase) DefaultCase() bool { return c.Expr == nil }

// Unit is a named grammar rule: an ordered field list plus the fields'
// collective attributes, compiling down through the IR the way a HILTI
// struct/function pair backs a parsed unit.
type Unit struct {
	ast.NodeBase
	Name       string
	Fields     []*Field
	Attributes []Attribute
}

// NewUnit builds a grammar unit.
func NewUnit(name string, fields []*Field, attrs []Attribute, loc ast.Location) *Unit {
	u := &Unit{Name: name, Fields: append([]*Field(nil), fields...), Attributes: append([]Attribute(nil), attrs...)}
	u.Init(ast.Node(u), loc)
	for _, f := range fields {
		if f != nil {
			u.AddChild(ast.Node(f))
		}
	}
	for _, a := range attrs {
		if a.Value != nil {
			u.AddChild(ast.Node(a.Value))
		}
	}
	return u
}

// FieldByName returns the named field, or nil if the unit has none by
// that name.
func (u *Unit) FieldByName(name string) *Field {
	for _, f := range u.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Grammar is a named collection of units, the PSL counterpart of a
// hilti.Module: one per source file, holding every rule it declares.
type Grammar struct {
	ast.NodeBase
	Name  string
	Units []*Unit
}

// NewGrammar builds a grammar (a PSL "module").
func NewGrammar(name string, units []*Unit, loc ast.Location) *Grammar {
	g := &Grammar{Name: name, Units: append([]*Unit(nil), units...)}
	g.Init(ast.Node(g), loc)
	for _, u := range units {
		if u != nil {
			g.AddChild(ast.Node(u))
		}
	}
	return g
}

// UnitByName returns the named unit, or nil if the grammar has none by
// that name.
func (g *Grammar) UnitByName(name string) *Unit {
	for _, u := range g.Units {
		if u.Name == name {
			return u
		}
	}
	return nil
}
