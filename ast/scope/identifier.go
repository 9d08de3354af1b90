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

// Package scope implements the hierarchical symbol-table system from
// spec.md §3.3/§4.2: identifiers (simple or "::"-scoped) and scopes that
// map a simple name to a value, with scoped lookup of dotted identifiers.
package scope

import "strings"

// Separator is the component separator used by scoped identifiers, e.g. "a::b::c".
const Separator = "::"

// Identifier is either simple (a single component) or scoped (a
// "::"-separated path).
type Identifier struct {
	components []string
}

// New builds an Identifier from its dotted string form, e.g. "a::b::c".
// An empty string yields an Identifier with a single empty component.
func New(path string) Identifier {
	if path == "" {
		return Identifier{components: []string{""}}
	}
	return Identifier{components: strings.Split(path, Separator)}
}

// NewFromComponents builds an Identifier directly from its components.
func NewFromComponents(components []string) Identifier {
	out := make([]string, len(components))
	copy(out, components)
	return Identifier{components: out}
}

// Leaf returns the identifier's final (rightmost) component.
func (id Identifier) Leaf() string {
	if len(id.components) == 0 {
		return ""
	}
	return id.components[len(id.components)-1]
}

// ScopePrefix returns every component but the last, re-joined with "::",
// or "" if the identifier is simple (unscoped).
func (id Identifier) ScopePrefix() string {
	if len(id.components) <= 1 {
		return ""
	}
	return strings.Join(id.components[:len(id.components)-1], Separator)
}

// IsScoped reports whether the identifier has more than one component.
func (id Identifier) IsScoped() bool {
	return len(id.components) > 1
}

// String returns the full dotted representation, e.g. "a::b::c".
func (id Identifier) String() string {
	return strings.Join(id.components, Separator)
}

// Components returns the identifier's components in order.
func (id Identifier) Components() []string {
	out := make([]string, len(id.components))
	copy(out, id.components)
	return out
}

// Equal reports whether two identifiers have the same dotted string
// representation (spec.md §8 testable property 8).
func (id Identifier) Equal(other Identifier) bool {
	return id.String() == other.String()
}
