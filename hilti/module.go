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

// ExportedID names an identifier a module exports, flagged as either
// implicitly exported (e.g. every top-level declaration in a script-style
// module) or explicitly exported (named in an `export` statement).
type ExportedID struct {
	ID       scope.Identifier
	Implicit bool
}

// Module has an unscoped name, an optional file path, a body statement,
// and lists of imported identifiers, exported identifiers, and exported
// types (spec.md §3.7).
type Module struct {
	ast.NodeBase
	Name         string
	Path         string
	Body         *Block
	Imports      []scope.Identifier
	Exports      []ExportedID
	ExportedTypes []coerce.Type
	Scope        *scope.Scope
}

// NewModule builds a module. body may be nil for a module under
// construction (e.g. while the front end is still parsing it).
func NewModule(name string, path string, body *Block, loc ast.Location) *Module {
	m := &Module{Name: name, Path: path, Body: body, Scope: scope.NewScope()}
	m.Init(ast.Node(m), loc)
	if body != nil {
		m.AddChild(ast.Node(body))
	}
	return m
}

// AddImport records an imported identifier (typically another module's
// exported name).
func (m *Module) AddImport(id scope.Identifier) {
	m.Imports = append(m.Imports, id)
}

// Export records id as exported, either implicitly (e.g. top-level
// declarations in a script module) or explicitly (an `export` statement).
func (m *Module) Export(id scope.Identifier, implicit bool) {
	m.Exports = append(m.Exports, ExportedID{ID: id, Implicit: implicit})
}

// ExportType records t as one of the module's exported types.
func (m *Module) ExportType(t coerce.Type) {
	if t != nil {
		m.ExportedTypes = append(m.ExportedTypes, t)
	}
}
