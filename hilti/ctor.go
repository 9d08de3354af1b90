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

// Ctor is implemented by every constructor-literal node (spec.md §3.5):
// bytes/list/vector/set/map literals and a regexp pattern list. Unlike a
// Constant, a Ctor's elements may themselves be arbitrary (non-constant)
// expressions, so it is not itself constant-valued in general.
type Ctor interface {
	coerce.Expression
	CtorKind() string
}

// baseCtor carries the fields common to every ctor kind: its own type and
// whether every element happens to be constant (in which case the ctor as
// a whole is reported constant, per spec.md §3.5's "a ctor all of whose
// elements are constant is itself constant").
type baseCtor struct {
	ast.NodeBase
	kind       string
	typ        coerce.Type
	isConstant bool
}

func (c *baseCtor) CtorKind() string      { return c.kind }
func (c *baseCtor) ExprType() coerce.Type { return c.typ }
func (c *baseCtor) IsConstant() bool      { return c.isConstant }

func allConstant(elems []coerce.Expression) bool {
	for _, e := range elems {
		if e == nil || !e.IsConstant() {
			return false
		}
	}
	return true
}

// wildcardOrElem returns a wildcard instance of the container (built with
// a nil element type, then marked wildcard) when there are no elements
// and no explicit element type was given; otherwise it builds the
// concrete container type (spec.md §3.5: "containers with no elements
// yield a wildcard container type").
func wildcardOrElem(build func(coerce.Type) coerce.Type, elemType coerce.Type, n int) coerce.Type {
	if elemType == nil && n == 0 {
		t := build(nil)
		if w, ok := t.(interface{ SetWildcard(bool) }); ok {
			w.SetWildcard(true)
		}
		return t
	}
	return build(elemType)
}

// BytesCtor constructs a bytes value from a literal octet sequence. The
// general HILTI grammar allows runtime-computed segments; this module
// represents only the fixed-literal form since it does not implement the
// PSL/HILTI lexer/parser front end (spec.md §1 Non-goals).
type BytesCtor struct {
	baseCtor
	Value []byte
}

func NewBytesCtor(value []byte, typ *Bytes, loc ast.Location) *BytesCtor {
	c := &BytesCtor{baseCtor: baseCtor{kind: "bytes", typ: typ, isConstant: true}, Value: append([]byte(nil), value...)}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *BytesCtor) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *BytesCtor) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// ListCtor is a `[e1, e2, ...]` literal.
type ListCtor struct {
	baseCtor
	Elements []coerce.Expression
}

func NewListCtor(elements []coerce.Expression, elemType coerce.Type, loc ast.Location) *ListCtor {
	typ := wildcardOrElem(func(e coerce.Type) coerce.Type { return NewList(e, loc) }, elemType, len(elements))
	c := &ListCtor{baseCtor: baseCtor{kind: "list", typ: typ, isConstant: allConstant(elements)}, Elements: append([]coerce.Expression(nil), elements...)}
	c.Init(ast.Node(c), loc)
	wireElementChildren(&c.NodeBase, typ, elements)
	return c
}
func (c *ListCtor) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *ListCtor) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// VectorCtor is a `vector(e1, e2, ...)` literal.
type VectorCtor struct {
	baseCtor
	Elements []coerce.Expression
}

func NewVectorCtor(elements []coerce.Expression, elemType coerce.Type, loc ast.Location) *VectorCtor {
	typ := wildcardOrElem(func(e coerce.Type) coerce.Type { return NewVector(e, loc) }, elemType, len(elements))
	c := &VectorCtor{baseCtor: baseCtor{kind: "vector", typ: typ, isConstant: allConstant(elements)}, Elements: append([]coerce.Expression(nil), elements...)}
	c.Init(ast.Node(c), loc)
	wireElementChildren(&c.NodeBase, typ, elements)
	return c
}
func (c *VectorCtor) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *VectorCtor) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// SetCtor is a `set(e1, e2, ...)` literal.
type SetCtor struct {
	baseCtor
	Elements []coerce.Expression
}

func NewSetCtor(elements []coerce.Expression, elemType coerce.Type, loc ast.Location) *SetCtor {
	typ := wildcardOrElem(func(e coerce.Type) coerce.Type { return NewSet(e, loc) }, elemType, len(elements))
	c := &SetCtor{baseCtor: baseCtor{kind: "set", typ: typ, isConstant: allConstant(elements)}, Elements: append([]coerce.Expression(nil), elements...)}
	c.Init(ast.Node(c), loc)
	wireElementChildren(&c.NodeBase, typ, elements)
	return c
}
func (c *SetCtor) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *SetCtor) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

func wireElementChildren(n *ast.NodeBase, typ coerce.Type, elements []coerce.Expression) {
	if typ != nil {
		n.AddChild(ast.Node(typ))
	}
	for _, e := range elements {
		if e != nil {
			n.AddChild(ast.Node(e))
		}
	}
}

// MapEntry is one key/value pair of a MapCtor.
type MapEntry struct {
	Key   coerce.Expression
	Value coerce.Expression
}

// MapCtor is a `map(k1: v1, k2: v2, ...)` literal.
type MapCtor struct {
	baseCtor
	Entries []MapEntry
}

func NewMapCtor(entries []MapEntry, keyType, valueType coerce.Type, loc ast.Location) *MapCtor {
	var typ coerce.Type
	if keyType == nil && valueType == nil && len(entries) == 0 {
		m := NewMap(nil, nil, loc)
		m.SetWildcard(true)
		typ = m
	} else {
		typ = NewMap(keyType, valueType, loc)
	}
	constant := true
	for _, e := range entries {
		if e.Key == nil || e.Value == nil || !e.Key.IsConstant() || !e.Value.IsConstant() {
			constant = false
			break
		}
	}
	c := &MapCtor{baseCtor: baseCtor{kind: "map", typ: typ, isConstant: constant}, Entries: append([]MapEntry(nil), entries...)}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	for _, e := range entries {
		if e.Key != nil {
			c.AddChild(ast.Node(e.Key))
		}
		if e.Value != nil {
			c.AddChild(ast.Node(e.Value))
		}
	}
	return c
}
func (c *MapCtor) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *MapCtor) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}

// RegexpCtor is a pattern-list literal (original_source/hilti/instructions
// /regexp.h: a HILTI regexp value may bundle several alternative patterns
// compiled together).
type RegexpCtor struct {
	baseCtor
	Patterns []string
}

func NewRegexpCtor(patterns []string, typ coerce.Type, loc ast.Location) *RegexpCtor {
	c := &RegexpCtor{baseCtor: baseCtor{kind: "regexp", typ: typ, isConstant: true}, Patterns: append([]string(nil), patterns...)}
	c.Init(ast.Node(c), loc)
	if typ != nil {
		c.AddChild(ast.Node(typ))
	}
	return c
}
func (c *RegexpCtor) CanCoerceTo(dst coerce.Type) bool { return canCoerceExpr(c, dst) }
func (c *RegexpCtor) CoerceTo(dst coerce.Type) (coerce.Expression, bool) {
	return coerceExpr(c, dst, c.Location())
}
