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

package coerce

// TypeRule decides whether a value of type src can be coerced to dst,
// given that the easy cases (equality, either side any-matching) have
// already been handled by TypeCoercer.CanCoerce.
type TypeRule func(tc *TypeCoercer, src, dst Type) bool

// TypeCoercer implements spec.md §4.3: "a polymorphic visitor keyed on the
// source type's kind." Concrete kinds (defined in hilti/psl, one layer
// above this package) register their own rule via Register instead of
// this package hard-coding them, which would require importing hilti and
// create an import cycle (hilti already imports coerce for the Type
// interface).
type TypeCoercer struct {
	rules map[string]TypeRule
}

// NewTypeCoercer creates an empty coercer; callers register rules for
// every source kind they care about.
func NewTypeCoercer() *TypeCoercer {
	return &TypeCoercer{rules: make(map[string]TypeRule)}
}

// Register binds rule as the coercion predicate for every source type
// whose Kind() equals kind.
func (c *TypeCoercer) Register(kind string, rule TypeRule) {
	c.rules[kind] = rule
}

// CanCoerce implements the full contract of spec.md §4.3's canCoerceTo:
// structural equality or any-matching short-circuit true; otherwise
// dispatch to the registered rule for src's kind, defaulting to false if
// none is registered.
func (c *TypeCoercer) CanCoerce(src, dst Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if src.Equals(dst) {
		return true
	}
	if src.IsAny() || dst.IsAny() {
		return true
	}
	rule, ok := c.rules[src.Kind()]
	if !ok {
		return false
	}
	return rule(c, src, dst)
}

// ConstantRule produces a coerced constant of type dst from src, or
// reports failure. The easy "same type" / "dst is any" cases are handled
// by ConstantCoercer.Coerce before a rule is consulted.
type ConstantRule func(cc *ConstantCoercer, src Constant, dst Type) (Constant, bool)

// ConstantCoercer implements spec.md §4.4: like TypeCoercer, but yields a
// new constant value rather than a boolean. Concrete constant kinds
// (integer, bool, tuple, ...) register their own narrowing/widening rule.
type ConstantCoercer struct {
	rules map[string]ConstantRule
}

// NewConstantCoercer creates an empty constant coercer.
func NewConstantCoercer() *ConstantCoercer {
	return &ConstantCoercer{rules: make(map[string]ConstantRule)}
}

// Register binds rule as the coercion function for every constant whose
// ConstantKind() equals kind.
func (c *ConstantCoercer) Register(kind string, rule ConstantRule) {
	c.rules[kind] = rule
}

// Coerce implements spec.md §4.4's contract: if src's type already equals
// dst (or dst is any-matching), return src unchanged; otherwise dispatch
// on src's kind. Failure returns (nil, false); it never panics for an
// ordinary coercion failure (only a missing src/dst argument is a
// programming error, surfaced as false rather than a panic, since a
// coercion attempt that simply doesn't apply is an expected outcome, not
// a broken invariant).
func (c *ConstantCoercer) Coerce(src Constant, dst Type) (Constant, bool) {
	if src == nil || dst == nil {
		return nil, false
	}
	if src.ConstantType().Equals(dst) || dst.IsAny() {
		return src, true
	}
	rule, ok := c.rules[src.ConstantKind()]
	if !ok {
		return nil, false
	}
	return rule(c, src, dst)
}
