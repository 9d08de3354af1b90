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
	"fmt"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
)

// Parameter is one formal parameter of a function (named, typed, with an
// optional default value expression).
type Parameter struct {
	ast.NodeBase
	Name    string
	Type    coerce.Type
	Default coerce.Expression
}

// NewParameter builds a function parameter.
func NewParameter(name string, typ coerce.Type, def coerce.Expression, loc ast.Location) *Parameter {
	p := &Parameter{Name: name, Type: typ, Default: def}
	p.Init(ast.Node(p), loc)
	if typ != nil {
		p.AddChild(ast.Node(typ))
	}
	if def != nil {
		p.AddChild(ast.Node(def))
	}
	return p
}

// Function is a named, typed callable with a body (spec.md §3.9). It
// references its owning module but deliberately does NOT add it as a
// child — doing so would create a parent/child cycle (module contains
// function contains... module). The ast.Node graph does not need to
// reach the module through the function; Module() returns it.
type Function struct {
	ast.NodeBase
	Name       string
	Params     []*Parameter
	Result     coerce.Type
	Body       Statement
	owningMod  *Module
	isInit     bool
}

// NewFunction builds a function with the given name, parameter list,
// result type, owning module, and body.
func NewFunction(name string, params []*Parameter, result coerce.Type, owner *Module, body Statement, loc ast.Location) *Function {
	f := &Function{Name: name, Params: append([]*Parameter(nil), params...), Result: result, owningMod: owner, Body: body}
	f.Init(ast.Node(f), loc)
	for _, p := range params {
		if p != nil {
			f.AddChild(ast.Node(p))
		}
	}
	if result != nil {
		f.AddChild(ast.Node(result))
	}
	if body != nil {
		f.AddChild(ast.Node(body))
	}
	// owner is intentionally not added as a child; see the doc comment above.
	return f
}

// Module returns the owning module, without it being part of this node's
// child graph.
func (f *Function) Module() *Module { return f.owningMod }

// Type returns the function's FunctionType (result plus parameter types).
func (f *Function) Type() coerce.Type {
	params := make([]coerce.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return NewFunctionType(f.Result, params, f.Location())
}

// IsInit reports whether this is a module "init function" (invoked at
// module startup).
func (f *Function) IsInit() bool { return f.isInit }

// MarkInit marks this function as an init function; there is no unmark. Per
// spec.md §3.9, an init function must have no parameters and no return
// value; MarkInit returns an error rather than silently violating that
// invariant.
func (f *Function) MarkInit() error {
	if len(f.Params) != 0 {
		return fmt.Errorf("init function %q must take no parameters", f.Name)
	}
	if f.Result != nil && !isVoidResult(f.Result) {
		return fmt.Errorf("init function %q must not return a value", f.Name)
	}
	f.isInit = true
	return nil
}

func isVoidResult(t coerce.Type) bool {
	_, ok := t.(*Unset)
	return t == nil || ok
}
