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

// VariableTag distinguishes a global variable (module-level, visible
// across the module's scope) from a local one (function-scoped).
type VariableTag int

const (
	// GlobalVariable is declared at module scope.
	GlobalVariable VariableTag = iota
	// LocalVariable is declared within a function body.
	LocalVariable
)

// Variable is a named, typed storage location with an optional
// initialiser expression (spec.md §3.8). Locals additionally carry a
// post-resolution internal name, unique within the enclosing function,
// assigned by a later naming pass (outside this module's scope).
type Variable struct {
	ast.NodeBase
	Name         string
	typ          coerce.Type
	Initializer  coerce.Expression
	Tag          VariableTag
	internalName string
}

// NewVariable builds a variable declaration.
func NewVariable(name string, typ coerce.Type, init coerce.Expression, tag VariableTag, loc ast.Location) *Variable {
	v := &Variable{Name: name, typ: typ, Initializer: init, Tag: tag}
	v.Init(ast.Node(v), loc)
	if typ != nil {
		v.AddChild(ast.Node(typ))
	}
	if init != nil {
		v.AddChild(ast.Node(init))
	}
	return v
}

// Type returns the variable's declared type.
func (v *Variable) Type() coerce.Type { return v.typ }

// IsGlobal reports whether this is a module-level variable.
func (v *Variable) IsGlobal() bool { return v.Tag == GlobalVariable }

// InternalName returns the post-resolution unique name assigned to a
// local variable (spec.md §3.8), or "" if not yet assigned or this is a
// global.
func (v *Variable) InternalName() string { return v.internalName }

// SetInternalName assigns the post-resolution unique name; it is an error
// for a resolver to call this on anything but a LocalVariable, but that
// invariant is enforced by the resolving pass, not by this type.
func (v *Variable) SetInternalName(name string) { v.internalName = name }
