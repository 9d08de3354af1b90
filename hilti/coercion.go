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

import "github.com/rsmmr/hilti-sub004/ast/coerce"

// DefaultTypeCoercer, DefaultConstantCoercer, and DefaultExpressionCoercer
// are the module-wide coercion singletons. ast/coerce ships no built-in
// rules (to avoid importing this package); every concrete kind this
// package defines registers its own rules here, at package-init time, per
// spec.md §4.3/§4.4's built-in coercion table.
var (
	DefaultTypeCoercer       = coerce.NewTypeCoercer()
	DefaultConstantCoercer   = coerce.NewConstantCoercer()
	DefaultExpressionCoercer = coerce.NewExpressionCoercer(DefaultTypeCoercer, DefaultConstantCoercer)
)

func init() {
	registerIntegerTypeRules()
	registerTupleTypeRules()
	registerReferenceTypeRules()
	registerIteratorTypeRules()
	registerUnsetTypeRules()

	registerIntegerConstantRules()
	registerTupleConstantRules()
}

// registerIntegerTypeRules implements spec.md §4.3's "integer → bool
// always; integer → integer when the destination width is no narrower."
func registerIntegerTypeRules() {
	DefaultTypeCoercer.Register("integer", func(_ *coerce.TypeCoercer, src, dst coerce.Type) bool {
		if dst.Kind() == "bool" {
			return true
		}
		if dst.Kind() != "integer" {
			return false
		}
		si, ok1 := src.(*Integer)
		di, ok2 := dst.(*Integer)
		return ok1 && ok2 && si.Width <= di.Width
	})
}

// registerTupleTypeRules implements spec.md §4.3's "tuple → tuple
// element-wise, when both have the same size and every element coerces."
func registerTupleTypeRules() {
	DefaultTypeCoercer.Register("tuple", func(tc *coerce.TypeCoercer, src, dst coerce.Type) bool {
		st, ok1 := src.(*Tuple)
		dt, ok2 := dst.(*Tuple)
		if !ok1 || !ok2 || len(st.elems) != len(dt.elems) {
			return false
		}
		for i := range st.elems {
			if !sameOrBothNil(st.elems[i], dt.elems[i]) && !tc.CanCoerce(st.elems[i], dt.elems[i]) {
				return false
			}
		}
		return true
	})
}

// registerReferenceTypeRules implements spec.md §4.3's "reference →
// reference when referenced types coerce."
func registerReferenceTypeRules() {
	DefaultTypeCoercer.Register("reference", func(tc *coerce.TypeCoercer, src, dst coerce.Type) bool {
		sr, ok1 := src.(*Reference)
		dr, ok2 := dst.(*Reference)
		if !ok1 || !ok2 || sr.ref == nil || dr.ref == nil {
			return false
		}
		return sr.ref.Equals(dr.ref) || tc.CanCoerce(sr.ref, dr.ref)
	})
}

// registerIteratorTypeRules lets an iterator coerce to another iterator
// over a coercible element type.
func registerIteratorTypeRules() {
	DefaultTypeCoercer.Register("iterator", func(tc *coerce.TypeCoercer, src, dst coerce.Type) bool {
		si, ok1 := src.(*Iterator)
		di, ok2 := dst.(*Iterator)
		if !ok1 || !ok2 || si.elem == nil || di.elem == nil {
			return false
		}
		return si.elem.Equals(di.elem) || tc.CanCoerce(si.elem, di.elem)
	})
}

// registerUnsetTypeRules implements original_source/ast/type.h's
// type::Unset: an uninitialized value coerces into whatever it is
// assigned to.
func registerUnsetTypeRules() {
	DefaultTypeCoercer.Register("unset", func(_ *coerce.TypeCoercer, _, _ coerce.Type) bool {
		return true
	})
}

// registerIntegerConstantRules implements spec.md §4.4's constant-folding
// table: integer constants narrow when they fit the destination width,
// and convert to bool via the usual nonzero test.
func registerIntegerConstantRules() {
	DefaultConstantCoercer.Register("integer", func(_ *coerce.ConstantCoercer, src coerce.Constant, dst coerce.Type) (coerce.Constant, bool) {
		ic, ok := src.(*IntegerConstant)
		if !ok {
			return nil, false
		}
		switch dst.Kind() {
		case "bool":
			return NewBoolConstant(ic.Value != 0, NewBool(ic.Location()), ic.Location()), true
		case "integer":
			di, ok := dst.(*Integer)
			if !ok || !fitsInWidth(ic.Value, di.Width) {
				return nil, false
			}
			return NewIntegerConstant(ic.Value, di, ic.Location()), true
		default:
			return nil, false
		}
	})
}

// registerTupleConstantRules implements spec.md scenario S6: tuple
// constants coerce element-wise, failing the whole tuple if any element
// fails to coerce.
func registerTupleConstantRules() {
	DefaultConstantCoercer.Register("tuple", func(cc *coerce.ConstantCoercer, src coerce.Constant, dst coerce.Type) (coerce.Constant, bool) {
		tc, ok := src.(*TupleConstant)
		dtup, ok2 := dst.(*Tuple)
		if !ok || !ok2 || len(tc.Elements) != len(dtup.elems) {
			return nil, false
		}
		coerced := make([]coerce.Constant, len(tc.Elements))
		for i, elem := range tc.Elements {
			dstElemType := dtup.elems[i]
			if elem.ConstantType().Equals(dstElemType) {
				coerced[i] = elem
				continue
			}
			newElem, ok := cc.Coerce(elem, dstElemType)
			if !ok {
				return nil, false
			}
			coerced[i] = newElem
		}
		return NewTupleConstant(coerced, dtup, tc.Location()), true
	})
}

func fitsInWidth(v int64, width int) bool {
	if width >= 63 {
		return true
	}
	max := int64(1) << uint(width-1)
	return v >= -max && v < max
}
