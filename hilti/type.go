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

// Package hilti implements the IR-specific node kinds of spec.md §1/§3
// (layer L4/L5): types, constants, ctors, expressions, declarations,
// variables, modules, functions, statements, and the instruction registry.
// It is grounded on original_source/ast/type.h, constant.h, ctor.h,
// expression.h, declaration.h, variable.h, module.h, function.h,
// statement.h, and instruction.h (the hilti/ subset of the source this
// spec distills), rendered as concrete Go structs in the style of
// analyzer/core/mast/common.go — one small struct per concrete kind, a
// shared sealing/base-behavior method set, and type switches (or, here,
// registered coercion rules) instead of virtual dispatch.
package hilti

import (
	"fmt"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/ast/scope"
)

// baseType carries the fields common to every type kind (spec.md §3.4):
// matches-any and wildcard flags, value/heap classification, and an
// optional declared identifier.
type baseType struct {
	ast.NodeBase
	kind      string
	wildcard  bool
	any       bool
	valueType bool
	id        *scope.Identifier
}

func (t *baseType) Kind() string      { return t.kind }
func (t *baseType) IsWildcard() bool  { return t.wildcard }
func (t *baseType) IsAny() bool       { return t.any }
func (t *baseType) IsValueType() bool { return t.valueType }
func (t *baseType) ID() (scope.Identifier, bool) {
	if t.id == nil {
		return scope.Identifier{}, false
	}
	return *t.id, true
}

// SetID declares this type's name (spec.md §3.4: "every type may optionally
// carry an identifier").
func (t *baseType) SetID(id scope.Identifier) { t.id = &id }

// SetWildcard marks this instance as the wildcard of its kind.
func (t *baseType) SetWildcard(w bool) { t.wildcard = w }

// equalsStructural implements the common shell of spec.md §3.4's equality
// predicate (any-matching, then same-kind-and-wildcard short circuits),
// deferring to same for the kind-specific structural comparison.
func equalsStructural(self, other coerce.Type, same func(other coerce.Type) bool) bool {
	if self.IsAny() || other.IsAny() {
		return true
	}
	if self.Kind() != other.Kind() {
		return false
	}
	if self.IsWildcard() || other.IsWildcard() {
		return true
	}
	return same(other)
}

func newBaseType(kind string, valueType bool) baseType {
	return baseType{kind: kind, valueType: valueType}
}

// --- scalar value types ---------------------------------------------------

// Integer is the fixed-width signed/unsigned integer type (spec.md §3.4;
// original_source/hilti/instructions/integer.h: "a single data type
// representing both signed and unsigned integer values").
type Integer struct {
	baseType
	Width  int
	Signed bool
}

// NewInteger builds a width-bit integer type.
func NewInteger(width int, signed bool, loc ast.Location) *Integer {
	t := &Integer{baseType: newBaseType("integer", true), Width: width, Signed: signed}
	t.Init(ast.Node(t), loc)
	return t
}

func (t *Integer) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		oi, ok := o.(*Integer)
		return ok && oi.Width == t.Width
	})
}

// Parameters implements coerce.Parameterised: the single parameter is the width.
func (t *Integer) Parameters() []coerce.Parameter {
	return []coerce.Parameter{{Kind: coerce.ParamInteger, Integer: int64(t.Width)}}
}

func (t *Integer) String() string { return fmt.Sprintf("int<%d>", t.Width) }

// Bool is the boolean type.
type Bool struct{ baseType }

func NewBool(loc ast.Location) *Bool {
	t := &Bool{baseType: newBaseType("bool", true)}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Bool) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Bool) String() string { return "bool" }

// String is HILTI's string type (a heap type: strings are reference-counted).
type String struct{ baseType }

func NewString(loc ast.Location) *String {
	t := &String{baseType: newBaseType("string", false)}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *String) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *String) String() string { return "string" }

// Bytes is the bytes type (an Iterable/Container of raw octets).
type Bytes struct{ baseType }

func NewBytes(loc ast.Location) *Bytes {
	t := &Bytes{baseType: newBaseType("bytes", false)}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Bytes) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Bytes) String() string { return "bytes" }

// Double is the floating-point type.
type Double struct{ baseType }

func NewDouble(loc ast.Location) *Double {
	t := &Double{baseType: newBaseType("double", true)}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Double) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Double) String() string { return "double" }

// Address, Network, Port, Interval, and Time are the remaining scalar
// "protocol analysis" value types named by spec.md §3.5's constant kinds.
type (
	Address  struct{ baseType }
	Network  struct{ baseType }
	Port     struct{ baseType }
	Interval struct{ baseType }
	Time     struct{ baseType }
)

func newScalar(kind string) baseType { return newBaseType(kind, true) }

func NewAddress(loc ast.Location) *Address {
	t := &Address{baseType: newScalar("addr")}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Address) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Address) String() string { return "addr" }

func NewNetwork(loc ast.Location) *Network {
	t := &Network{baseType: newScalar("net")}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Network) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Network) String() string { return "net" }

func NewPort(loc ast.Location) *Port {
	t := &Port{baseType: newScalar("port")}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Port) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Port) String() string { return "port" }

func NewInterval(loc ast.Location) *Interval {
	t := &Interval{baseType: newScalar("interval")}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Interval) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Interval) String() string { return "interval" }

func NewTime(loc ast.Location) *Time {
	t := &Time{baseType: newScalar("time")}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Time) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Time) String() string { return "time" }

// Unset is the type of an uninitialized value (coerces into anything it
// is assigned to, per original_source/ast/type.h's type::Unset).
type Unset struct{ baseType }

func NewUnset(loc ast.Location) *Unset {
	t := &Unset{baseType: newBaseType("unset", true)}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Unset) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(coerce.Type) bool { return true })
}
func (t *Unset) String() string { return "unset" }

// Any is the universal "matches-any" type (spec.md §3.4).
type Any struct{ baseType }

func NewAny(loc ast.Location) *Any {
	t := &Any{baseType: newBaseType("any", true)}
	t.any = true
	t.Init(ast.Node(t), loc)
	return t
}
func (t *Any) Equals(coerce.Type) bool { return true }
func (t *Any) String() string          { return "any" }

// --- parameterised / composite types --------------------------------------

// EnumType is a named set of labels, each with an integer value (spec.md
// §3.5's EnumLabel constant references one).
type EnumType struct {
	baseType
	Labels []string
	Values map[string]int64
}

func NewEnumType(labels []string, values map[string]int64, loc ast.Location) *EnumType {
	t := &EnumType{baseType: newBaseType("enum", true), Labels: labels, Values: values}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *EnumType) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		oe, ok := o.(*EnumType)
		if !ok || len(oe.Labels) != len(t.Labels) {
			return false
		}
		for i, l := range t.Labels {
			if oe.Labels[i] != l {
				return false
			}
		}
		return true
	})
}
func (t *EnumType) String() string { return "enum" }

// BitsetType is a named set of bit positions (original_source/hilti
// instructions/enum.h's sibling, the bitset kind from spec.md §3.5).
type BitsetType struct {
	baseType
	Labels []string
	Bits   map[string]int
}

func NewBitsetType(labels []string, bits map[string]int, loc ast.Location) *BitsetType {
	t := &BitsetType{baseType: newBaseType("bitset", true), Labels: labels, Bits: bits}
	t.Init(ast.Node(t), loc)
	return t
}
func (t *BitsetType) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		ob, ok := o.(*BitsetType)
		return ok && len(ob.Labels) == len(t.Labels)
	})
}
func (t *BitsetType) String() string { return "bitset" }

// Reference is a heap-type handle to a referenced type (spec.md §4.3:
// "reference → reference when referenced types coerce").
type Reference struct {
	baseType
	ref coerce.Type
}

func NewReference(referenced coerce.Type, loc ast.Location) *Reference {
	t := &Reference{baseType: newBaseType("reference", false), ref: referenced}
	t.Init(ast.Node(t), loc)
	if referenced != nil {
		t.AddChild(ast.Node(referenced))
	}
	return t
}
func (t *Reference) Referenced() coerce.Type { return t.ref }
func (t *Reference) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		or, ok := o.(*Reference)
		if !ok || t.ref == nil || or.ref == nil {
			return ok && t.ref == nil && or.ref == nil
		}
		return t.ref.Equals(or.ref)
	})
}
func (t *Reference) String() string { return "ref<" + typeString(t.ref) + ">" }

// Iterator is the trait-carrying iterator-over-container type.
type Iterator struct {
	baseType
	elem coerce.Type
}

func NewIterator(elem coerce.Type, loc ast.Location) *Iterator {
	t := &Iterator{baseType: newBaseType("iterator", true), elem: elem}
	t.Init(ast.Node(t), loc)
	if elem != nil {
		t.AddChild(ast.Node(elem))
	}
	return t
}
func (t *Iterator) ElementType() coerce.Type { return t.elem }
func (t *Iterator) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		oi, ok := o.(*Iterator)
		return ok && sameOrBothNil(t.elem, oi.elem)
	})
}
func (t *Iterator) String() string { return "iterator<" + typeString(t.elem) + ">" }

// containerType is shared by List/Vector/Set: an Iterable+Container over elem.
type containerType struct {
	baseType
	elem    coerce.Type
	mutable bool
}

func (t *containerType) ElementType() coerce.Type { return t.elem }
func (t *containerType) IteratorType() coerce.Type {
	return NewIterator(t.elem, ast.NoLocation)
}
func (t *containerType) IsMutable() bool { return t.mutable }

// List is an ordered, non-mutable-after-construction container.
type List struct{ containerType }

func NewList(elem coerce.Type, loc ast.Location) *List {
	t := &List{containerType{baseType: newBaseType("list", false), elem: elem}}
	t.Init(ast.Node(t), loc)
	if elem != nil {
		t.AddChild(ast.Node(elem))
	}
	return t
}
func (t *List) Equals(other coerce.Type) bool { return equalsContainer(t, "list", t.elem, other) }
func (t *List) String() string                { return "list<" + typeString(t.elem) + ">" }

// Vector is a mutable, index-addressable container.
type Vector struct{ containerType }

func NewVector(elem coerce.Type, loc ast.Location) *Vector {
	t := &Vector{containerType{baseType: newBaseType("vector", false), elem: elem, mutable: true}}
	t.Init(ast.Node(t), loc)
	if elem != nil {
		t.AddChild(ast.Node(elem))
	}
	return t
}
func (t *Vector) Equals(other coerce.Type) bool { return equalsContainer(t, "vector", t.elem, other) }
func (t *Vector) String() string                { return "vector<" + typeString(t.elem) + ">" }

// Set is a mutable, Hashable-element container.
type Set struct{ containerType }

func NewSet(elem coerce.Type, loc ast.Location) *Set {
	t := &Set{containerType{baseType: newBaseType("set", false), elem: elem, mutable: true}}
	t.Init(ast.Node(t), loc)
	if elem != nil {
		t.AddChild(ast.Node(elem))
	}
	return t
}
func (t *Set) Equals(other coerce.Type) bool { return equalsContainer(t, "set", t.elem, other) }
func (t *Set) String() string                { return "set<" + typeString(t.elem) + ">" }

func equalsContainer(self coerce.Type, kind string, elem coerce.Type, other coerce.Type) bool {
	return equalsStructural(self, other, func(o coerce.Type) bool {
		switch v := o.(type) {
		case *List:
			return kind == "list" && sameOrBothNil(elem, v.elem)
		case *Vector:
			return kind == "vector" && sameOrBothNil(elem, v.elem)
		case *Set:
			return kind == "set" && sameOrBothNil(elem, v.elem)
		}
		return false
	})
}

// Map is a Hashable-keyed, mutable, Iterable<value> container (iteration
// over a map yields its values, per original_source/hilti/instructions/map.h).
type Map struct {
	containerType
	key coerce.Type
}

func NewMap(key, value coerce.Type, loc ast.Location) *Map {
	t := &Map{containerType: containerType{baseType: newBaseType("map", false), elem: value, mutable: true}, key: key}
	t.Init(ast.Node(t), loc)
	if key != nil {
		t.AddChild(ast.Node(key))
	}
	if value != nil {
		t.AddChild(ast.Node(value))
	}
	return t
}
func (t *Map) KeyType() coerce.Type   { return t.key }
func (t *Map) ValueType() coerce.Type { return t.elem }
func (t *Map) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		om, ok := o.(*Map)
		return ok && sameOrBothNil(t.key, om.key) && sameOrBothNil(t.elem, om.elem)
	})
}
func (t *Map) String() string { return "map<" + typeString(t.key) + "," + typeString(t.elem) + ">" }

// Tuple is an ordered, fixed-size heterogeneous TypeList.
type Tuple struct {
	baseType
	elems []coerce.Type
}

func NewTuple(elems []coerce.Type, loc ast.Location) *Tuple {
	t := &Tuple{baseType: newBaseType("tuple", true), elems: append([]coerce.Type(nil), elems...)}
	t.Init(ast.Node(t), loc)
	for _, e := range elems {
		if e != nil {
			t.AddChild(ast.Node(e))
		}
	}
	return t
}

// Types implements coerce.TypeList.
func (t *Tuple) Types() []coerce.Type { return append([]coerce.Type(nil), t.elems...) }

func (t *Tuple) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		ot, ok := o.(*Tuple)
		if !ok || len(ot.elems) != len(t.elems) {
			return false
		}
		for i := range t.elems {
			if !sameOrBothNil(t.elems[i], ot.elems[i]) {
				return false
			}
		}
		return true
	})
}
func (t *Tuple) String() string { return "tuple" }

// FunctionType is a function's result plus parameter type list (spec.md §3.9).
type FunctionType struct {
	baseType
	Result     coerce.Type
	Parameters []coerce.Type
}

func NewFunctionType(result coerce.Type, params []coerce.Type, loc ast.Location) *FunctionType {
	t := &FunctionType{baseType: newBaseType("function", true), Result: result, Parameters: append([]coerce.Type(nil), params...)}
	t.Init(ast.Node(t), loc)
	if result != nil {
		t.AddChild(ast.Node(result))
	}
	for _, p := range params {
		if p != nil {
			t.AddChild(ast.Node(p))
		}
	}
	return t
}
func (t *FunctionType) Types() []coerce.Type { return append([]coerce.Type(nil), t.Parameters...) }
func (t *FunctionType) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		of, ok := o.(*FunctionType)
		if !ok || len(of.Parameters) != len(t.Parameters) || !sameOrBothNil(t.Result, of.Result) {
			return false
		}
		for i := range t.Parameters {
			if !sameOrBothNil(t.Parameters[i], of.Parameters[i]) {
				return false
			}
		}
		return true
	})
}
func (t *FunctionType) String() string { return "function" }

// OptionalArgument wraps an operand-contract type to mark that position as
// acceptable when the operand is absent (spec.md §4.6: "a type (...
// possibly an optional-argument wrapper for absent operands)").
type OptionalArgument struct {
	baseType
	inner coerce.Type
}

func NewOptionalArgument(inner coerce.Type, loc ast.Location) *OptionalArgument {
	t := &OptionalArgument{baseType: newBaseType("optional-argument", true), inner: inner}
	t.Init(ast.Node(t), loc)
	if inner != nil {
		t.AddChild(ast.Node(inner))
	}
	return t
}
func (t *OptionalArgument) Inner() coerce.Type { return t.inner }
func (t *OptionalArgument) Equals(other coerce.Type) bool {
	return equalsStructural(t, other, func(o coerce.Type) bool {
		oo, ok := o.(*OptionalArgument)
		return ok && sameOrBothNil(t.inner, oo.inner)
	})
}
func (t *OptionalArgument) String() string { return "optional<" + typeString(t.inner) + ">" }

func sameOrBothNil(a, b coerce.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func typeString(t coerce.Type) string {
	if t == nil {
		return "?"
	}
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return t.Kind()
}
