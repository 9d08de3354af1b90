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

// Package instructions is a representative catalogue of concrete HILTI
// instructions, registered into hilti.DefaultRegistry at init time. Each
// instruction here is grounded directly on the corresponding
// original_source/hilti/instructions/*.h definition; the catalogue is
// deliberately a representative slice rather than the original's full
// per-type instruction set (spec.md §1's front-end/codegen non-goals mean
// no parser or C backend ever needs the rest).
package instructions

import (
	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/hilti"
)

func i64() coerce.Type     { return hilti.NewInteger(64, true, ast.NoLocation) }
func boolT() coerce.Type   { return hilti.NewBool(ast.NoLocation) }
func stringT() coerce.Type { return hilti.NewString(ast.NoLocation) }

func wildcardInteger() coerce.Type {
	t := hilti.NewInteger(64, true, ast.NoLocation)
	t.SetWildcard(true)
	return t
}

func wildcardRefList() coerce.Type {
	list := hilti.NewList(nil, ast.NoLocation)
	list.SetWildcard(true)
	ref := hilti.NewReference(list, ast.NoLocation)
	ref.SetWildcard(true)
	return ref
}

func wildcardIterator() coerce.Type {
	t := hilti.NewIterator(nil, ast.NoLocation)
	t.SetWildcard(true)
	return t
}

func init() {
	registerIntegerInstructions()
	registerBoolInstructions()
	registerStringInstructions()
	registerListInstructions()
	registerFlowInstructions()
	registerOperatorInstructions()
	registerExceptionInstructions()
}

// registerIntegerInstructions is grounded on
// original_source/hilti/instructions/integer.h.
func registerIntegerInstructions() {
	r := hilti.DefaultRegistry

	r.Register(&hilti.Instruction{
		Namespace: "integer",
		Name:      "equal",
		Target:    &hilti.OperandContract{Type: boolT()},
		Op1:       &hilti.OperandContract{Type: wildcardInteger(), AllowConstant: true},
		Op2:       &hilti.OperandContract{Type: wildcardInteger(), AllowConstant: true},
		Validate: func(v *hilti.ValidationReporter, target, op1, op2, op3 coerce.Expression) {
			v.CanCoerceTo(op1, op2.ExprType())
		},
		Doc: "Returns true if op1 is equal to op2.",
	})

	r.Register(&hilti.Instruction{
		Namespace: "integer",
		Name:      "incr",
		Target:    &hilti.OperandContract{Type: wildcardInteger()},
		Op1:       &hilti.OperandContract{Type: wildcardInteger(), AllowConstant: true},
		Validate: func(v *hilti.ValidationReporter, target, op1, op2, op3 coerce.Expression) {
			v.CanCoerceTo(op1, target.ExprType())
		},
		Doc: "Increments op1 by one.",
	})

	r.Register(&hilti.Instruction{
		Namespace: "integer",
		Name:      "decr",
		Target:    &hilti.OperandContract{Type: wildcardInteger()},
		Op1:       &hilti.OperandContract{Type: wildcardInteger(), AllowConstant: true},
		Validate: func(v *hilti.ValidationReporter, target, op1, op2, op3 coerce.Expression) {
			v.CanCoerceTo(op1, target.ExprType())
		},
		Doc: "Decrements op1 by one.",
	})

	for name, doc := range map[string]string{
		"add": "Calculates the sum of the two operands, modulo 2^width.",
		"sub": "Subtracts op2 from op1, modulo 2^width.",
		"div": "Divides op1 by op2.",
	} {
		name, doc := name, doc
		r.Register(&hilti.Instruction{
			Namespace: "integer",
			Name:      name,
			Target:    &hilti.OperandContract{Type: wildcardInteger()},
			Op1:       &hilti.OperandContract{Type: wildcardInteger(), AllowConstant: true},
			Op2:       &hilti.OperandContract{Type: wildcardInteger(), AllowConstant: true},
			Validate: func(v *hilti.ValidationReporter, target, op1, op2, op3 coerce.Expression) {
				v.CanCoerceTo(op1, target.ExprType())
				v.CanCoerceTo(op2, target.ExprType())
			},
			Doc: doc,
		})
	}
}

// registerBoolInstructions is grounded on
// original_source/hilti/instructions/bool.h.
func registerBoolInstructions() {
	r := hilti.DefaultRegistry

	r.Register(&hilti.Instruction{
		Namespace: "bool",
		Name:      "not",
		Target:    &hilti.OperandContract{Type: boolT()},
		Op1:       &hilti.OperandContract{Type: boolT(), AllowConstant: true},
		Doc:       "Computes the logical not of op1.",
	})
	for name, doc := range map[string]string{
		"and": "Computes the logical and of op1 and op2.",
		"or":  "Computes the logical or of op1 and op2.",
	} {
		name, doc := name, doc
		r.Register(&hilti.Instruction{
			Namespace: "bool",
			Name:      name,
			Target:    &hilti.OperandContract{Type: boolT()},
			Op1:       &hilti.OperandContract{Type: boolT(), AllowConstant: true},
			Op2:       &hilti.OperandContract{Type: boolT(), AllowConstant: true},
			Doc:       doc,
		})
	}
}

// registerStringInstructions is grounded on
// original_source/hilti/instructions/string.h.
func registerStringInstructions() {
	r := hilti.DefaultRegistry

	r.Register(&hilti.Instruction{
		Namespace: "string",
		Name:      "length",
		Target:    &hilti.OperandContract{Type: i64()},
		Op1:       &hilti.OperandContract{Type: stringT(), AllowConstant: true},
		Doc:       "Returns the number of characters in the string op1.",
	})
	r.Register(&hilti.Instruction{
		Namespace: "string",
		Name:      "lt",
		Target:    &hilti.OperandContract{Type: boolT()},
		Op1:       &hilti.OperandContract{Type: stringT(), AllowConstant: true},
		Op2:       &hilti.OperandContract{Type: stringT(), AllowConstant: true},
		Doc:       "Reports whether op1 sorts lexicographically before op2.",
	})
}

// registerListInstructions is grounded on
// original_source/hilti/instructions/list.h.
func registerListInstructions() {
	hilti.DefaultRegistry.Register(&hilti.Instruction{
		Namespace: "list",
		Name:      "size",
		Target:    &hilti.OperandContract{Type: i64()},
		Op1:       &hilti.OperandContract{Type: wildcardRefList(), AllowConstant: true},
		Doc:       "Returns the current size of the list referenced by op1.",
	})
}

// registerFlowInstructions is grounded on
// original_source/hilti/passes/instruction-normalizer.cc's use of
// instruction::flow::Jump as the unconditional-branch terminator the
// normalizer generates when lowering for-each and try/catch.
func registerFlowInstructions() {
	r := hilti.DefaultRegistry

	r.Register(&hilti.Instruction{
		Namespace:  "flow",
		Name:       "jump",
		Op1:        &hilti.OperandContract{Type: hilti.NewAny(ast.NoLocation), AllowConstant: true},
		Terminator: true,
		Doc:        "Unconditionally transfers control to the block expression named by op1.",
	})

	r.Register(&hilti.Instruction{
		Namespace:  "flow",
		Name:       "return_void",
		Terminator: true,
		Doc:        "Returns from the current function without a value.",
	})

	r.Register(&hilti.Instruction{
		Namespace:  "flow",
		Name:       "return_result",
		Op1:        &hilti.OperandContract{Type: hilti.NewAny(ast.NoLocation), AllowConstant: true},
		Terminator: true,
		Doc:        "Returns from the current function with op1 as the result value.",
	})

	r.Register(&hilti.Instruction{
		Namespace:  "flow",
		Name:       "ifelse",
		Op1:        &hilti.OperandContract{Type: boolT(), AllowConstant: true},
		Op2:        &hilti.OperandContract{Type: hilti.NewAny(ast.NoLocation), AllowConstant: true},
		Op3:        &hilti.OperandContract{Type: hilti.NewAny(ast.NoLocation), AllowConstant: true},
		Terminator: true,
		Doc:        "Transfers control to the block named by op2 if op1 is true, or to the block named by op3 otherwise.",
	})
}

// registerOperatorInstructions is grounded on the generic
// operator_::Begin/End/Equal/Deref/Incr instructions
// original_source/hilti/passes/instruction-normalizer.cc emits while
// lowering a for-each loop: trait-level operations over any iterable
// container and its iterator, rather than a type's own instruction set.
func registerOperatorInstructions() {
	r := hilti.DefaultRegistry

	r.Register(&hilti.Instruction{
		Namespace: "operator",
		Name:      "begin",
		Target:    &hilti.OperandContract{Type: wildcardIterator()},
		Op1:       &hilti.OperandContract{Type: wildcardRefList(), AllowConstant: true},
		Doc:       "Returns an iterator positioned at the first element of op1.",
	})
	r.Register(&hilti.Instruction{
		Namespace: "operator",
		Name:      "end",
		Target:    &hilti.OperandContract{Type: wildcardIterator()},
		Op1:       &hilti.OperandContract{Type: wildcardRefList(), AllowConstant: true},
		Doc:       "Returns an iterator positioned just past the last element of op1.",
	})
	r.Register(&hilti.Instruction{
		Namespace: "operator",
		Name:      "equal",
		Target:    &hilti.OperandContract{Type: boolT()},
		Op1:       &hilti.OperandContract{Type: wildcardIterator(), AllowConstant: true},
		Op2:       &hilti.OperandContract{Type: wildcardIterator(), AllowConstant: true},
		Doc:       "Returns true if the two iterators reference the same position.",
	})
	r.Register(&hilti.Instruction{
		Namespace: "operator",
		Name:      "deref",
		Target:    &hilti.OperandContract{Type: hilti.NewAny(ast.NoLocation)},
		Op1:       &hilti.OperandContract{Type: wildcardIterator(), AllowConstant: true},
		Doc:       "Returns the element the iterator op1 currently references.",
	})
	r.Register(&hilti.Instruction{
		Namespace: "operator",
		Name:      "incr",
		Target:    &hilti.OperandContract{Type: wildcardIterator()},
		Op1:       &hilti.OperandContract{Type: wildcardIterator(), AllowConstant: true},
		Doc:       "Advances the iterator op1 to the next element.",
	})
}

// registerExceptionInstructions is grounded on the
// instruction::exception::__GetAndClear/__Clear/__BeginHandler/__EndHandler
// internal instructions original_source/hilti/passes/instruction-normalizer.cc
// emits while lowering try/catch; the leading underscores mark them as
// compiler-internal, never written by source code directly.
func registerExceptionInstructions() {
	r := hilti.DefaultRegistry

	r.Register(&hilti.Instruction{
		Namespace: "exception",
		Name:      "__get_and_clear",
		Target:    &hilti.OperandContract{Type: hilti.NewAny(ast.NoLocation)},
		Doc:       "Fetches the current exception into the target and clears it.",
	})
	r.Register(&hilti.Instruction{
		Namespace: "exception",
		Name:      "__clear",
		Doc:       "Clears the current exception without retrieving it.",
	})
	r.Register(&hilti.Instruction{
		Namespace: "exception",
		Name:      "__begin_handler",
		Op1:       &hilti.OperandContract{Type: hilti.NewAny(ast.NoLocation), AllowConstant: true},
		Op2:       &hilti.OperandContract{Type: hilti.NewOptionalArgument(hilti.NewAny(ast.NoLocation), ast.NoLocation), AllowConstant: true},
		Doc:       "Registers op2 (a type, or absent for catch-all) as a handler for op1 (a block).",
	})
	r.Register(&hilti.Instruction{
		Namespace: "exception",
		Name:      "__end_handler",
		Doc:       "Unregisters the most recently registered exception handler.",
	})
}
