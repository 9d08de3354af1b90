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
	"sort"
	"strings"

	"github.com/rsmmr/hilti-sub004/ast/coerce"
)

// OperandContract is the operand-type contract for one position of an
// instruction signature (spec.md §4.6): a type (possibly wildcard,
// possibly an OptionalArgument wrapper for an absent operand), a
// constness flag, and — for operand positions 1..3 only — a default
// expression substituted when the operand is omitted.
type OperandContract struct {
	Type          coerce.Type
	AllowConstant bool
	Default       coerce.Expression
}

// FlowInfoFn adjusts an instruction's contribution to flow-sensitive
// analyses (e.g. successor-block computation); its concrete shape is an
// external collaborator from this module's standpoint (spec.md §4.9), so
// it is modeled as an opaque callback hook rather than a fixed type.
type FlowInfoFn func(ops []coerce.Expression) []*Block

// StatementFactory builds the instruction-specific resolved-statement
// subtype once an instruction has matched a set of operands (spec.md
// §4.6 step 3).
type StatementFactory func(instr *Instruction, target, op1, op2, op3 coerce.Expression) *InstructionStatement

// ValidateFn is an instruction's `__validate` hook (spec.md §4.6): it
// inspects the resolved operands and reports errors through the given
// reporter.
type ValidateFn func(v *ValidationReporter, target, op1, op2, op3 coerce.Expression)

// ValidationReporter collects the errors a ValidateFn reports, decoupling
// instruction validation from any one pass implementation.
type ValidationReporter struct {
	Errors []string
}

// Error records a validation failure.
func (r *ValidationReporter) Error(msg string) {
	r.Errors = append(r.Errors, msg)
}

// CanCoerceTo is the canCoerceTo helper named in spec.md §4.6's
// per-instruction validation contract, reporting a validation error
// through the reporter (rather than just returning false) when the
// operand cannot be coerced — mirroring
// original_source/hilti/instruction.h's InstructionHelper::canCoerceTo.
func (r *ValidationReporter) CanCoerceTo(op coerce.Expression, target coerce.Type) bool {
	if op == nil || target == nil {
		r.Error("missing operand for coercion check")
		return false
	}
	if op.CanCoerceTo(target) {
		return true
	}
	r.Error(fmt.Sprintf("cannot coerce operand of type %s to %s", typeString(op.ExprType()), typeString(target)))
	return false
}

// Instruction is a declarative record for one HILTI instruction (spec.md
// §4.6): a name, a namespace/class pair, a factory, operand-type
// contracts for up to three operands plus a target, a terminator flag,
// optional docs, and a flow-info adjustment function.
type Instruction struct {
	Namespace  string
	Name       string
	Mnemonic   string // "namespace.name", the wire-visible instruction mnemonic
	Target     *OperandContract
	Op1        *OperandContract
	Op2        *OperandContract
	Op3        *OperandContract
	Validate   ValidateFn
	Factory    StatementFactory
	Terminator bool
	Doc        string
	FlowInfo   FlowInfoFn
}

func mnemonic(namespace, name string) string {
	return strings.ToLower(namespace) + "." + strings.ToLower(name)
}

// OperandInfo is the documentation-facing view of an OperandContract: the
// contract's type and constness, plus whether a default is available,
// without exposing the default expression itself.
type OperandInfo struct {
	Type          coerce.Type
	AllowConstant bool
	HasDefault    bool
}

func operandInfo(c *OperandContract) *OperandInfo {
	if c == nil {
		return nil
	}
	return &OperandInfo{Type: c.Type, AllowConstant: c.AllowConstant, HasDefault: c.Default != nil}
}

// Info is the stable documentation record for an instruction (spec.md
// §4.6/§6.3): mnemonic, namespace, class, doc, terminator flag, and
// operand types/defaults/constness, decoupled from the contract's
// internal Default expression and factory/validate hooks.
type Info struct {
	Mnemonic   string
	Namespace  string
	Name       string
	Doc        string
	Terminator bool
	Target     *OperandInfo
	Op1        *OperandInfo
	Op2        *OperandInfo
	Op3        *OperandInfo
}

// Info returns instr's documentation record.
func (instr *Instruction) Info() *Info {
	return &Info{
		Mnemonic:   instr.Mnemonic,
		Namespace:  instr.Namespace,
		Name:       instr.Name,
		Doc:        instr.Doc,
		Terminator: instr.Terminator,
		Target:     operandInfo(instr.Target),
		Op1:        operandInfo(instr.Op1),
		Op2:        operandInfo(instr.Op2),
		Op3:        operandInfo(instr.Op3),
	}
}

// InstructionHelper groups the operand-introspection helpers named in
// spec.md §4.6's validation contract (original_source/hilti/instruction.h's
// InstructionHelper: typedType, referencedType, argType, iteratedType,
// mapKeyType, mapValueType). They are free functions here, since Go has no
// use for a base class solely to share methods with no state.

// TypedType returns the type named by a TypeExpression operand.
func TypedType(op coerce.Expression) (coerce.Type, error) {
	te, ok := op.(*TypeExpression)
	if !ok {
		return nil, fmt.Errorf("operand is not a type expression")
	}
	return te.Value(), nil
}

// ReferencedType returns the type a Reference refers to, unwrapping an
// Expression's or a Type's top-level Reference.
func ReferencedType(t coerce.Type) (coerce.Type, error) {
	r, ok := t.(*Reference)
	if !ok {
		return nil, fmt.Errorf("type %s is not a reference", typeString(t))
	}
	return r.Referenced(), nil
}

// ArgType returns the element type of a container, transparently
// unwrapping a Reference to one (original_source/hilti/instruction.h's
// argType, the non-deprecated successor to elementType).
func ArgType(t coerce.Type) (coerce.Type, error) {
	if r, ok := t.(*Reference); ok {
		t = r.Referenced()
	}
	if c, ok := t.(coerce.Iterable); ok {
		return c.ElementType(), nil
	}
	return nil, fmt.Errorf("type %s has no element type", typeString(t))
}

// IteratedType returns the type an Iterator type iterates over.
func IteratedType(t coerce.Type) (coerce.Type, error) {
	it, ok := t.(*Iterator)
	if !ok {
		return nil, fmt.Errorf("type %s is not an iterator", typeString(t))
	}
	return it.ElementType(), nil
}

// MapKeyType and MapValueType return a Map type's key/value types,
// transparently unwrapping a Reference to one.
func MapKeyType(t coerce.Type) (coerce.Type, error) {
	if r, ok := t.(*Reference); ok {
		t = r.Referenced()
	}
	m, ok := t.(*Map)
	if !ok {
		return nil, fmt.Errorf("type %s is not a map", typeString(t))
	}
	return m.KeyType(), nil
}

func MapValueType(t coerce.Type) (coerce.Type, error) {
	if r, ok := t.(*Reference); ok {
		t = r.Referenced()
	}
	m, ok := t.(*Map)
	if !ok {
		return nil, fmt.Errorf("type %s is not a map", typeString(t))
	}
	return m.ValueType(), nil
}

// Registry holds every registered Instruction, keyed by mnemonic, and
// implements the two-pass (no-coercion, then with-coercion) operand
// matching and resolution pipeline of spec.md §4.6.
type Registry struct {
	byMnemonic map[string][]*Instruction
}

// NewRegistry builds an empty instruction registry.
func NewRegistry() *Registry {
	return &Registry{byMnemonic: make(map[string][]*Instruction)}
}

// DefaultRegistry is the module-wide instruction registry that the
// hilti/instructions catalogue package registers into at init time.
var DefaultRegistry = NewRegistry()

// Register adds instr to the registry under its namespace.name mnemonic.
// Multiple instructions may share a mnemonic (overloads distinguished by
// operand types, resolved by getMatching).
func (r *Registry) Register(instr *Instruction) {
	instr.Mnemonic = mnemonic(instr.Namespace, instr.Name)
	r.byMnemonic[instr.Mnemonic] = append(r.byMnemonic[instr.Mnemonic], instr)
}

// operandMatches implements spec.md §4.6's per-position matching rule.
func operandMatches(contract *OperandContract, operand coerce.Expression, allowCoercion bool) bool {
	if contract == nil {
		return operand == nil
	}
	if operand == nil {
		if _, isOptional := contract.Type.(*OptionalArgument); isOptional {
			return true
		}
		return contract.Default != nil
	}
	if !contract.AllowConstant && operand.IsConstant() {
		return false
	}
	if operand.ExprType().Equals(contract.Type) {
		return true
	}
	if allowCoercion {
		return operand.CanCoerceTo(contract.Type)
	}
	return false
}

func instructionMatches(instr *Instruction, target, op1, op2, op3 coerce.Expression, allowCoercion bool) bool {
	return operandMatches(instr.Target, target, allowCoercion) &&
		operandMatches(instr.Op1, op1, allowCoercion) &&
		operandMatches(instr.Op2, op2, allowCoercion) &&
		operandMatches(instr.Op3, op3, allowCoercion)
}

// GetMatching implements spec.md §4.6's two-pass resolution: instructions
// matching without coercion are returned if any exist; otherwise
// instructions matching with coercion allowed are returned.
func (r *Registry) GetMatching(mnem string, target, op1, op2, op3 coerce.Expression) []*Instruction {
	candidates := r.byMnemonic[strings.ToLower(mnem)]

	var exact []*Instruction
	for _, instr := range candidates {
		if instructionMatches(instr, target, op1, op2, op3, false) {
			exact = append(exact, instr)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var coerced []*Instruction
	for _, instr := range candidates {
		if instructionMatches(instr, target, op1, op2, op3, true) {
			coerced = append(coerced, instr)
		}
	}
	return coerced
}

// ResolveStatement implements spec.md §4.6 steps 3-5: given a single
// matching instruction, coerce each operand to its contract type
// (substituting declared defaults for missing operands), allocate the
// resolved statement via the instruction's factory, and carry over the
// source statement's comments.
func (r *Registry) ResolveStatement(mnem string, target, op1, op2, op3 coerce.Expression, source *InstructionStatement) (*InstructionStatement, error) {
	matches := r.GetMatching(mnem, target, op1, op2, op3)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no instruction matches %q for the given operand types", mnem)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%q is ambiguous between %d candidate signatures", mnem, len(matches))
	}
	instr := matches[0]

	rtarget, err := coerceOperand(instr.Target, target)
	if err != nil {
		return nil, err
	}
	rop1, err := coerceOperand(instr.Op1, op1)
	if err != nil {
		return nil, err
	}
	rop2, err := coerceOperand(instr.Op2, op2)
	if err != nil {
		return nil, err
	}
	rop3, err := coerceOperand(instr.Op3, op3)
	if err != nil {
		return nil, err
	}

	var resolved *InstructionStatement
	if instr.Factory != nil {
		resolved = instr.Factory(instr, rtarget, rop1, rop2, rop3)
	} else {
		resolved = NewInstructionStatement(instr.Mnemonic, rtarget, rop1, rop2, rop3, source.Location())
	}
	resolved.SetResolved(instr)
	if source != nil {
		for _, c := range source.Comments() {
			resolved.AddComment(c)
		}
	}
	return resolved, nil
}

func coerceOperand(contract *OperandContract, operand coerce.Expression) (coerce.Expression, error) {
	if contract == nil {
		return nil, nil
	}
	if operand == nil {
		return contract.Default, nil
	}
	if operand.ExprType().Equals(contract.Type) {
		return operand, nil
	}
	coerced, ok := operand.CoerceTo(contract.Type)
	if !ok {
		return nil, fmt.Errorf("operand of type %s cannot be coerced to %s", typeString(operand.ExprType()), typeString(contract.Type))
	}
	return coerced, nil
}

// Has reports whether any instruction is registered under mnem.
func (r *Registry) Has(mnem string) bool {
	return len(r.byMnemonic[strings.ToLower(mnem)]) > 0
}

// ByName returns every overload registered under mnem, unfiltered by
// operand types (unlike GetMatching).
func (r *Registry) ByName(mnem string) []*Instruction {
	return r.byMnemonic[strings.ToLower(mnem)]
}

// All returns every registered instruction, sorted by mnemonic, for
// tooling (the printer's instruction-index, documentation generation).
func (r *Registry) All() []*Instruction {
	var out []*Instruction
	for _, list := range r.byMnemonic {
		out = append(out, list...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mnemonic < out[j].Mnemonic })
	return out
}
