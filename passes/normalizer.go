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

package passes

import (
	"fmt"
	"io"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/ast/scope"
	"github.com/rsmmr/hilti-sub004/ast/visitor"
	"github.com/rsmmr/hilti-sub004/hilti"
)

// idLoopBreak and idLoopNext are the well-known labels a for-each body
// uses to request an early exit or next-iteration jump; the Normalizer
// retargets them to the generated loop's end and next blocks.
var (
	idLoopBreak = scope.New("loop-break")
	idLoopNext  = scope.New("loop-next")
)

// Normalizer is a post-order modifier pass (spec.md §4.7.3) that lowers
// ForEachStatement and TryStatement into primitive instruction
// statements and plain blocks, the same way
// original_source/hilti/passes/instruction-normalizer.cc's
// InstructionNormalizer does.
type Normalizer struct {
	logger  *ast.Logger
	counter int
	used    map[*hilti.Function]map[string]bool
	changed bool
}

// NewNormalizer builds a normalizer logging to out (os.Stderr if nil).
func NewNormalizer(out io.Writer) *Normalizer {
	return &Normalizer{logger: ast.NewLogger("normalizer", out), used: map[*hilti.Function]map[string]bool{}}
}

func (n *Normalizer) Name() string     { return "normalizer" }
func (n *Normalizer) IsModifier() bool { return true }
func (n *Normalizer) Errors() int      { return n.logger.Errors() }
func (n *Normalizer) Warnings() int    { return n.logger.Errors() }

func (n *Normalizer) Reset() {
	n.counter = 0
	n.used = map[*hilti.Function]map[string]bool{}
	n.changed = false
	n.logger.Reset()
}

// Changed reports whether the last Run rewrote at least one statement.
func (n *Normalizer) Changed() bool { return n.changed }

func (n *Normalizer) usedSet(fn *hilti.Function) map[string]bool {
	s, ok := n.used[fn]
	if !ok {
		s = map[string]bool{}
		n.used[fn] = s
	}
	return s
}

// freshNames generates len(hints) names sharing one counter suffix (e.g.
// "@__loop_entry_1", "@__loop_cond_1", ...), retrying the whole group
// with the next counter value on any collision against used.
func (n *Normalizer) freshNames(used map[string]bool, hints ...string) []string {
	for {
		n.counter++
		names := make([]string, len(hints))
		collision := false
		for i, h := range hints {
			name := fmt.Sprintf("@__%s_%d", h, n.counter)
			if used[name] {
				collision = true
				break
			}
			names[i] = name
		}
		if collision {
			continue
		}
		for _, name := range names {
			used[name] = true
		}
		return names
	}
}

// replaceInBlock swaps old for replacement in parent's typed Statements
// slice. ast.NodeBase.Replace only rewrites the generic child-graph (the
// shared NodeRef cells), not a concrete type's own typed fields, so the
// lowering passes fix up Block.Statements themselves — the same way
// Printer/Collector walk a block's typed Statements/Declarations rather
// than its generic Children().
func replaceInBlock(parent *hilti.Block, old, replacement hilti.Statement) {
	if parent == nil {
		return
	}
	for i, s := range parent.Statements {
		if s == old {
			parent.Statements[i] = replacement
			return
		}
	}
}

func jumpTo(block *hilti.Block, loc ast.Location) *hilti.InstructionStatement {
	target := hilti.NewBlockExpression(block, loc)
	return hilti.NewInstructionStatement("flow.jump", nil, target, nil, nil, loc)
}

func iterableElemAndIterType(t coerce.Type) (coerce.Type, coerce.Type, error) {
	if r, ok := t.(*hilti.Reference); ok {
		t = r.Referenced()
	}
	it, ok := t.(coerce.Iterable)
	if !ok {
		return nil, nil, fmt.Errorf("type %s is not iterable", t)
	}
	return it.ElementType(), it.IteratorType(), nil
}

// Run walks root post-order, lowering every ForEachStatement and
// TryStatement it finds.
func (n *Normalizer) Run(root ast.Node) (bool, error) {
	v := visitor.New("normalizer", visitor.PostOrder, n.logger)

	visitor.Register(v, func(pv *visitor.Visitor, s *hilti.ForEachStatement) error {
		fn, _ := visitor.Parent[*hilti.Function](pv)
		block, _ := visitor.Parent[*hilti.Block](pv)
		if err := n.lowerForEach(s, fn, block); err != nil {
			n.logger.ErrorNode(err.Error(), s)
		}
		return nil
	})
	visitor.Register(v, func(pv *visitor.Visitor, s *hilti.TryStatement) error {
		fn, _ := visitor.Parent[*hilti.Function](pv)
		block, _ := visitor.Parent[*hilti.Block](pv)
		n.lowerTry(s, fn, block)
		return nil
	})

	ok := v.ProcessAllPostOrder(root, nil, nil)
	return ok, n.logger.Err()
}

func (n *Normalizer) lowerForEach(s *hilti.ForEachStatement, fn *hilti.Function, parent *hilti.Block) error {
	loc := s.Location()
	used := n.usedSet(fn)

	elemType, iterType, err := iterableElemAndIterType(s.Sequence.ExprType())
	if err != nil {
		return fmt.Errorf("for-each: %w", err)
	}

	names := n.freshNames(used, "loop_entry", "loop_cond", "loop_deref", "loop_body", "loop_next", "loop_end")
	entryID, condID, derefID, bodyID, nextID, endID := names[0], names[1], names[2], names[3], names[4], names[5]

	outer := hilti.NewBlock(nil, nil, nil, nil, loc)

	varDecl := hilti.NewVariableDeclaration(s.Variable.Leaf(),
		hilti.NewVariable(s.Variable.Leaf(), elemType, nil, hilti.LocalVariable, loc), hilti.PrivateLinkage, loc)
	endDecl := hilti.NewVariableDeclaration("end",
		hilti.NewVariable("end", iterType, nil, hilti.LocalVariable, loc), hilti.PrivateLinkage, loc)
	iterDecl := hilti.NewVariableDeclaration("iter",
		hilti.NewVariable("iter", iterType, nil, hilti.LocalVariable, loc), hilti.PrivateLinkage, loc)
	cmpDecl := hilti.NewVariableDeclaration("cmp",
		hilti.NewVariable("cmp", hilti.NewBool(loc), nil, hilti.LocalVariable, loc), hilti.PrivateLinkage, loc)
	for _, d := range []*hilti.Declaration{varDecl, endDecl, iterDecl, cmpDecl} {
		outer.AddDeclaration(d)
	}

	varExpr := hilti.NewVariableExpression(varDecl.Variable, loc)
	endExpr := hilti.NewVariableExpression(endDecl.Variable, loc)
	iterExpr := hilti.NewVariableExpression(iterDecl.Variable, loc)
	cmpExpr := hilti.NewVariableExpression(cmpDecl.Variable, loc)

	entryName := scope.New(entryID)
	condName := scope.New(condID)
	derefName := scope.New(derefID)
	bodyName := scope.New(bodyID)
	nextName := scope.New(nextID)
	endName := scope.New(endID)

	entry := hilti.NewBlock(&entryName, outer.Scope, nil, nil, loc)
	cond := hilti.NewBlock(&condName, outer.Scope, nil, nil, loc)
	deref := hilti.NewBlock(&derefName, outer.Scope, nil, nil, loc)
	body := hilti.NewBlock(&bodyName, outer.Scope, nil, nil, loc)
	next := hilti.NewBlock(&nextName, outer.Scope, nil, nil, loc)
	end := hilti.NewBlock(&endName, outer.Scope, nil, nil, loc)

	replaceIDInBody(s.Body, idLoopBreak, endName)
	replaceIDInBody(s.Body, idLoopNext, nextName)

	entry.AddStatement(hilti.NewInstructionStatement("operator.begin", iterExpr, s.Sequence, nil, nil, loc))
	entry.AddStatement(hilti.NewInstructionStatement("operator.end", endExpr, s.Sequence, nil, nil, loc))
	entry.AddStatement(jumpTo(cond, loc))

	cond.AddStatement(hilti.NewInstructionStatement("operator.equal", cmpExpr, iterExpr, endExpr, nil, loc))
	cond.AddStatement(hilti.NewInstructionStatement("flow.ifelse", nil, cmpExpr,
		hilti.NewBlockExpression(end, loc), hilti.NewBlockExpression(deref, loc), loc))

	deref.AddStatement(hilti.NewInstructionStatement("operator.deref", varExpr, iterExpr, nil, nil, loc))
	deref.AddStatement(jumpTo(body, loc))

	body.AddStatement(s.Body)

	next.AddStatement(hilti.NewInstructionStatement("operator.incr", iterExpr, iterExpr, nil, nil, loc))
	next.AddStatement(jumpTo(cond, loc))

	for _, b := range []*hilti.Block{entry, cond, deref, body, next, end} {
		outer.AddStatement(b)
	}

	if err := s.Replace(ast.Node(outer), nil); err != nil {
		return err
	}
	replaceInBlock(parent, s, outer)
	n.changed = true
	return nil
}

func (n *Normalizer) lowerTry(s *hilti.TryStatement, fn *hilti.Function, parent *hilti.Block) {
	loc := s.Location()
	used := n.usedSet(fn)

	outer := hilti.NewBlock(nil, nil, nil, nil, loc)

	contNames := n.freshNames(used, "catch_cont")
	contName := scope.New(contNames[0])
	cont := hilti.NewBlock(&contName, outer.Scope, nil, nil, loc)

	// Catch clauses are registered as handlers in reverse declaration
	// order, as original_source's InstructionNormalizer::visit(Try*) does
	// (s->catches().rbegin()..rend()), so an earlier clause's handler is
	// pushed last and found first by whatever runtime handler search the
	// backend implements.
	handlers := make([]*hilti.Block, len(s.Catches))
	for idx := len(s.Catches) - 1; idx >= 0; idx-- {
		i, c := idx, s.Catches[idx]
		names := n.freshNames(used, "catch")
		handlerName := scope.New(names[0])
		handler := hilti.NewBlock(&handlerName, outer.Scope, nil, nil, loc)

		if c.ExceptionType != nil {
			ref, ok := c.ExceptionType.(*hilti.Reference)
			if !ok {
				n.logger.ErrorNode("catch value must be of ref<exception> type", c)
				continue
			}
			name := "exception"
			if c.BoundName != nil {
				name = c.BoundName.Leaf()
			}
			decl := hilti.NewVariableDeclaration(name,
				hilti.NewVariable(name, ref.Referenced(), nil, hilti.LocalVariable, loc), hilti.PrivateLinkage, loc)
			handler.AddDeclaration(decl)
			target := hilti.NewVariableExpression(decl.Variable, loc)
			handler.AddStatement(hilti.NewInstructionStatement("exception.__get_and_clear", target, nil, nil, nil, loc))
		} else {
			handler.AddStatement(hilti.NewInstructionStatement("exception.__clear", nil, nil, nil, nil, loc))
		}

		handler.AddStatement(c.Body)
		handler.AddStatement(jumpTo(cont, loc))

		var typeOp coerce.Expression
		if c.ExceptionType != nil {
			if ref, ok := c.ExceptionType.(*hilti.Reference); ok {
				typeOp = hilti.NewTypeExpression(ref.Referenced(), loc)
			}
		}
		outer.AddStatement(hilti.NewInstructionStatement("exception.__begin_handler", nil,
			hilti.NewBlockExpression(handler, loc), typeOp, nil, loc))

		handlers[i] = handler
	}

	outer.AddStatement(s.Body)

	for range s.Catches {
		outer.AddStatement(hilti.NewInstructionStatement("exception.__end_handler", nil, nil, nil, nil, loc))
	}
	outer.AddStatement(jumpTo(cont, loc))

	for _, h := range handlers {
		if h != nil {
			outer.AddStatement(h)
		}
	}
	outer.AddStatement(cont)

	if err := s.Replace(ast.Node(outer), nil); err != nil {
		n.logger.ErrorNode(err.Error(), s)
		return
	}
	replaceInBlock(parent, s, outer)
	n.changed = true
}

// replaceIDInBody rewrites every IdentifierExpression in body matching
// old to a fresh reference to newID, via an inline IDReplacer run.
func replaceIDInBody(body *hilti.Block, old, newID scope.Identifier) {
	r := &IDReplacer{Old: old, New: newID, logger: ast.NewLogger("normalizer/id-replacer", io.Discard)}
	_, _ = r.Run(ast.Node(body))
}
