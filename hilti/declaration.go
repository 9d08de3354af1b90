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

// Linkage is a declaration's visibility attribute (spec.md §3.8).
type Linkage int

const (
	LocalLinkage Linkage = iota
	PrivateLinkage
	ExportedLinkage
	ImportedLinkage
)

func (l Linkage) String() string {
	switch l {
	case LocalLinkage:
		return "local"
	case PrivateLinkage:
		return "private"
	case ExportedLinkage:
		return "exported"
	case ImportedLinkage:
		return "imported"
	default:
		return "unknown"
	}
}

// DeclarationKind identifies which of the five binding variants a
// Declaration holds (spec.md §3.8: variable, constant, type, function, or
// hook).
type DeclarationKind int

const (
	VariableDeclaration DeclarationKind = iota
	ConstantDeclaration
	TypeDeclaration
	FunctionDeclaration
	HookDeclaration
)

// Declaration binds an identifier to one of a variable, a constant
// expression, a type, a function, or a hook. Exactly one of the Variable/
// Constant/TypeValue/FunctionValue/Hook fields is populated, matching Kind.
type Declaration struct {
	ast.NodeBase
	Name    string
	Kind    DeclarationKind
	Linkage Linkage

	Variable      *Variable
	Constant      coerce.Expression
	TypeValue     coerce.Type
	FunctionValue *Function
	Hook          *Function
}

func newDeclaration(name string, kind DeclarationKind, linkage Linkage, loc ast.Location) *Declaration {
	d := &Declaration{Name: name, Kind: kind, Linkage: linkage}
	d.Init(ast.Node(d), loc)
	return d
}

// NewVariableDeclaration binds name to a variable. isConstant is always
// false for this variant (spec.md §3.8).
func NewVariableDeclaration(name string, v *Variable, linkage Linkage, loc ast.Location) *Declaration {
	d := newDeclaration(name, VariableDeclaration, linkage, loc)
	d.Variable = v
	if v != nil {
		d.AddChild(ast.Node(v))
	}
	return d
}

// NewConstantDeclaration binds name to a constant-valued expression.
func NewConstantDeclaration(name string, c coerce.Expression, linkage Linkage, loc ast.Location) *Declaration {
	d := newDeclaration(name, ConstantDeclaration, linkage, loc)
	d.Constant = c
	if c != nil {
		d.AddChild(ast.Node(c))
	}
	return d
}

// NewTypeDeclaration binds name to a type.
func NewTypeDeclaration(name string, t coerce.Type, linkage Linkage, loc ast.Location) *Declaration {
	d := newDeclaration(name, TypeDeclaration, linkage, loc)
	d.TypeValue = t
	if t != nil {
		d.AddChild(ast.Node(t))
	}
	return d
}

// NewFunctionDeclaration binds name to a function.
func NewFunctionDeclaration(name string, f *Function, linkage Linkage, loc ast.Location) *Declaration {
	d := newDeclaration(name, FunctionDeclaration, linkage, loc)
	d.FunctionValue = f
	if f != nil {
		d.AddChild(ast.Node(f))
	}
	return d
}

// NewHookDeclaration binds name to a hook (a function invoked as part of
// a named extension point; represented with the same Function node type).
func NewHookDeclaration(name string, hook *Function, linkage Linkage, loc ast.Location) *Declaration {
	d := newDeclaration(name, HookDeclaration, linkage, loc)
	d.Hook = hook
	if hook != nil {
		d.AddChild(ast.Node(hook))
	}
	return d
}

// IsConstant reports this declaration's per-variant constant-ness (spec.md
// §3.8): only a VariableDeclaration is mutable.
func (d *Declaration) IsConstant() bool {
	return d.Kind != VariableDeclaration
}
