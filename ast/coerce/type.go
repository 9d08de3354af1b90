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

// Package coerce implements the type model's equality/trait contracts
// (spec.md §3.4) and the coercion subsystem (spec.md §4.3/§4.4): a
// type-to-type coercer, a constant-to-constant coercer, and the
// coerced-expression wrapper used by expression-level coercion (§3.5).
//
// Concrete type and constant kinds live one layer up, in hilti/psl — this
// package only knows the Type/Expression/Constant interfaces they must
// satisfy, plus a kind-keyed rule registry that those packages populate.
// That split mirrors the CommonChecker/LangChecker/Checker
// interface-parameter-passing pattern in
// analyzer/core/check/common.go, where a shared base is generalized over
// a behavior its caller supplies rather than the base importing the
// caller's concrete types.
package coerce

import (
	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/scope"
)

// Type is implemented by every AST type node (spec.md §3.4: "Types are
// nodes"); it embeds ast.Node so a Type participates in the same
// parent/child graph, location, and metadata machinery as any other node.
type Type interface {
	ast.Node
	// Kind names the type's concrete kind ("integer", "tuple", ...),
	// used both for the kind switch in Equals and as the coercion
	// registry key.
	Kind() string
	// Equals implements spec.md §3.4's structural equality: true if
	// either side is any-matching, or both share a kind and (either
	// side is the wildcard of that kind, or the kind-specific
	// structural predicate holds).
	Equals(other Type) bool
	// IsWildcard reports whether this instance is the wildcard of its kind.
	IsWildcard() bool
	// IsAny reports the "matches-any" universal-equality flag.
	IsAny() bool
	// IsValueType reports whether this type is copied by value (true)
	// or manipulated by reference ("heap type", false).
	IsValueType() bool
	// ID returns the type's declared name, if it has one.
	ID() (scope.Identifier, bool)
}

// ParameterKind distinguishes the four Parameterised parameter variants
// of spec.md §3.4.
type ParameterKind int

const (
	ParamType ParameterKind = iota
	ParamInteger
	ParamEnumLabel
	ParamAttributeName
)

// Parameter is one element of a Parameterised type's parameter list. Only
// the field matching Kind is meaningful.
type Parameter struct {
	Kind    ParameterKind
	Type    Type
	Integer int64
	Name    string // enum-label or attribute-name text, per Kind
}

// Equal compares two parameters the way spec.md §3.4 compares
// Parameterised types: element-wise, by kind then by the kind's payload.
func (p Parameter) Equal(other Parameter) bool {
	if p.Kind != other.Kind {
		return false
	}
	switch p.Kind {
	case ParamType:
		if p.Type == nil || other.Type == nil {
			return p.Type == nil && other.Type == nil
		}
		return p.Type.Equals(other.Type)
	case ParamInteger:
		return p.Integer == other.Integer
	default:
		return p.Name == other.Name
	}
}

// ParametersEqual compares two Parameterised parameter lists element-wise.
func ParametersEqual(a, b []Parameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Parameterised is the trait for types with an ordered parameter list
// (spec.md §3.4). Two parameterised types of the same kind are equal iff
// ParametersEqual holds over their parameter lists.
type Parameterised interface {
	Parameters() []Parameter
}

// TypeList is the trait exposing an ordered list of sub-types, used by
// tuples and struct-like field lists.
type TypeList interface {
	Types() []Type
}

// Iterable is the trait for a type that yields an iterator type and an
// element type.
type Iterable interface {
	IteratorType() Type
	ElementType() Type
}

// Container is Iterable plus mutation semantics.
type Container interface {
	Iterable
	IsMutable() bool
}

// Hashable marks a type whose values may be used as hash-collection keys.
type Hashable interface {
	IsHashableType() bool
}

// UnpackFormat is one entry of an Unpackable type's advertised binary
// formats (spec.md §3.4: "format-enum-name, argument-type,
// argument-optional, documentation").
type UnpackFormat struct {
	Format           string
	ArgumentType     Type
	ArgumentOptional bool
	Documentation    string
}

// Unpackable is the trait for binary-format-parseable types.
type Unpackable interface {
	UnpackFormats() []UnpackFormat
}

// Classifiable is the trait for types usable as a classifier field,
// advertising the additional types their values may be matched against.
type Classifiable interface {
	ClassifierTypes() []Type
}

// GarbageCollected marks a type whose instances are managed by the target
// runtime's garbage collector.
type GarbageCollected interface {
	IsGarbageCollected() bool
}
