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

// Statement is implemented by every statement-kind node (spec.md §3.10):
// no-op, block, try/catch, for-each, and instruction statements.
type Statement interface {
	ast.Node
	stmt()
}

// baseStmt gives every concrete Statement kind the marker method.
type baseStmt struct{ ast.NodeBase }

func (*baseStmt) stmt() {}

// NoopStatement does nothing; used as a placeholder body or to pad out a
// block without altering control flow.
type NoopStatement struct{ baseStmt }

func NewNoopStatement(loc ast.Location) *NoopStatement {
	s := &NoopStatement{}
	s.Init(ast.Node(s), loc)
	return s
}

// Block owns an optional name, a scope, an ordered declaration list, and
// an ordered statement list (spec.md §3.10).
type Block struct {
	baseStmt
	Name         *scope.Identifier
	Scope        *scope.Scope
	Declarations []*Declaration
	Statements   []Statement
}

// NewBlock builds a block. parent, if non-nil, becomes the block's
// scope's parent, so unresolved identifiers can be looked up outward.
func NewBlock(name *scope.Identifier, parent *scope.Scope, decls []*Declaration, stmts []Statement, loc ast.Location) *Block {
	blockScope := scope.NewScope()
	if parent != nil {
		blockScope.SetParent(parent)
	}
	b := &Block{Name: name, Scope: blockScope, Declarations: append([]*Declaration(nil), decls...), Statements: append([]Statement(nil), stmts...)}
	b.Init(ast.Node(b), loc)
	for _, d := range decls {
		if d != nil {
			b.AddChild(ast.Node(d))
		}
	}
	for _, s := range stmts {
		if s != nil {
			b.AddChild(ast.Node(s))
		}
	}
	return b
}

// AddStatement appends a statement to the block's body and to its child
// list, matching original_source/hilti/statement.h's Block::addStatement.
func (b *Block) AddStatement(s Statement) {
	if s == nil {
		return
	}
	b.Statements = append(b.Statements, s)
	b.AddChild(ast.Node(s))
}

// AddDeclaration appends a declaration to Declarations and to the block's
// child list. The block's Scope is not updated.
func (b *Block) AddDeclaration(d *Declaration) {
	if d == nil {
		return
	}
	b.Declarations = append(b.Declarations, d)
	b.AddChild(ast.Node(d))
}

// Terminated reports whether the block's last statement is itself a
// terminated block, or a terminator instruction (spec.md §3.10). The
// instruction-terminator check is delegated to IsTerminator, supplied by
// the instruction-registry layer; a plain *InstructionStatement with no
// resolved instruction is never terminated.
func (b *Block) Terminated() bool {
	if len(b.Statements) == 0 {
		return false
	}
	switch last := b.Statements[len(b.Statements)-1].(type) {
	case *Block:
		return last.Terminated()
	case *InstructionStatement:
		return last.IsTerminator()
	default:
		return false
	}
}

// Catch is a single catch clause of a Try statement: either a typed catch
// (type plus an optional bound identifier) or a catch-all (both nil).
type Catch struct {
	ast.NodeBase
	ExceptionType coerce.Type
	BoundName     *scope.Identifier
	Body          *Block
}

// NewCatch builds a catch clause. The exception type, if given, must be a
// heap/exception type; that invariant is validated by a later pass
// (outside this module's scope), not enforced here.
func NewCatch(exceptionType coerce.Type, boundName *scope.Identifier, body *Block, loc ast.Location) *Catch {
	c := &Catch{ExceptionType: exceptionType, BoundName: boundName, Body: body}
	c.Init(ast.Node(c), loc)
	if exceptionType != nil {
		c.AddChild(ast.Node(exceptionType))
	}
	if body != nil {
		c.AddChild(ast.Node(body))
	}
	return c
}

// CatchAll reports whether this is a catch-all clause (no type, no bound name).
func (c *Catch) CatchAll() bool { return c.ExceptionType == nil && c.BoundName == nil }

// TryStatement is a try-encapsulated block together with its catch
// clauses; at most one Catches entry may be a catch-all.
type TryStatement struct {
	baseStmt
	Body    *Block
	Catches []*Catch
}

func NewTryStatement(body *Block, catches []*Catch, loc ast.Location) *TryStatement {
	s := &TryStatement{Body: body, Catches: append([]*Catch(nil), catches...)}
	s.Init(ast.Node(s), loc)
	if body != nil {
		s.AddChild(ast.Node(body))
	}
	for _, c := range catches {
		if c != nil {
			s.AddChild(ast.Node(c))
		}
	}
	return s
}

// ForEachStatement iterates a sequence expression (of trait
// coerce.Iterable) binding each element to a named iteration variable
// visible within body.
type ForEachStatement struct {
	baseStmt
	Variable scope.Identifier
	Sequence coerce.Expression
	Body     *Block
}

func NewForEachStatement(variable scope.Identifier, sequence coerce.Expression, body *Block, loc ast.Location) *ForEachStatement {
	s := &ForEachStatement{Variable: variable, Sequence: sequence, Body: body}
	s.Init(ast.Node(s), loc)
	if sequence != nil {
		s.AddChild(ast.Node(sequence))
	}
	if body != nil {
		s.AddChild(ast.Node(body))
	}
	return s
}

// InstructionStatement wraps one resolved (or not-yet-resolved)
// instruction invocation: a target plus up to three operand expressions,
// matched against the instruction registry (spec.md §4.6).
type InstructionStatement struct {
	baseStmt
	Mnemonic string
	Target   coerce.Expression
	Op1      coerce.Expression
	Op2      coerce.Expression
	Op3      coerce.Expression
	resolved *Instruction
}

func NewInstructionStatement(mnemonic string, target, op1, op2, op3 coerce.Expression, loc ast.Location) *InstructionStatement {
	s := &InstructionStatement{Mnemonic: mnemonic, Target: target, Op1: op1, Op2: op2, Op3: op3}
	s.Init(ast.Node(s), loc)
	for _, e := range []coerce.Expression{target, op1, op2, op3} {
		if e != nil {
			s.AddChild(ast.Node(e))
		}
	}
	return s
}

// Resolved returns the instruction this statement was matched against, or
// nil if resolution hasn't run yet.
func (s *InstructionStatement) Resolved() *Instruction { return s.resolved }

// SetResolved records the instruction this statement resolved to (called
// by the instruction-resolution pipeline, spec.md §4.6).
func (s *InstructionStatement) SetResolved(i *Instruction) { s.resolved = i }

// IsTerminator reports whether this statement's resolved instruction ends
// its enclosing block's control flow (spec.md §3.10's block-termination
// rule). An unresolved statement is never a terminator.
func (s *InstructionStatement) IsTerminator() bool {
	return s.resolved != nil && s.resolved.Terminator
}
