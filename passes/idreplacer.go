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
	"io"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/scope"
	"github.com/rsmmr/hilti-sub004/ast/visitor"
	"github.com/rsmmr/hilti-sub004/hilti"
)

// IDReplacer is a pre-order modifier pass (spec.md §4.7.2) rewriting every
// IdentifierExpression whose ID equals Old to a fresh one carrying New,
// in place. The Normalizer reuses it to retarget loop-break/loop-next
// jumps after renaming a block label.
type IDReplacer struct {
	Old, New scope.Identifier

	logger  *ast.Logger
	changed bool
}

// NewIDReplacer builds a replacer rewriting old to new.
func NewIDReplacer(old, new scope.Identifier, out io.Writer) *IDReplacer {
	return &IDReplacer{Old: old, New: new, logger: ast.NewLogger("id-replacer", out)}
}

func (p *IDReplacer) Name() string     { return "id-replacer" }
func (p *IDReplacer) IsModifier() bool { return true }
func (p *IDReplacer) Errors() int      { return p.logger.Errors() }
func (p *IDReplacer) Warnings() int    { return p.logger.Errors() }

func (p *IDReplacer) Reset() {
	p.changed = false
	p.logger.Reset()
}

// Changed reports whether the last Run replaced at least one occurrence.
func (p *IDReplacer) Changed() bool { return p.changed }

// patchInstructionOperand swaps old for replacement in whichever of
// stmt's typed Target/Op1/Op2/Op3 fields currently holds it.
func patchInstructionOperand(stmt *hilti.InstructionStatement, old, replacement *hilti.IdentifierExpression) {
	switch {
	case stmt.Target == old:
		stmt.Target = replacement
	case stmt.Op1 == old:
		stmt.Op1 = replacement
	case stmt.Op2 == old:
		stmt.Op2 = replacement
	case stmt.Op3 == old:
		stmt.Op3 = replacement
	}
}

// Run rewrites every matching IdentifierExpression under root. Short-
// circuits immediately if Old and New are already equal, since there is
// nothing to do.
func (p *IDReplacer) Run(root ast.Node) (bool, error) {
	if p.Old.Equal(p.New) {
		return true, nil
	}

	v := visitor.New("id-replacer", visitor.PreOrder, p.logger)
	visitor.Register(v, func(pv *visitor.Visitor, e *hilti.IdentifierExpression) error {
		if !e.ID.Equal(p.Old) {
			return nil
		}
		replacement := hilti.NewIdentifierExpression(p.New, e.Location())
		if err := e.Replace(ast.Node(replacement), nil); err != nil {
			return err
		}
		// Replace only rewrites the generic child graph; an
		// InstructionStatement reads its operands from its own typed
		// Target/Op1/Op2/Op3 fields (see Printer), so patch those too
		// when e was one of them.
		if stmt, ok := visitor.Parent[*hilti.InstructionStatement](pv); ok {
			patchInstructionOperand(stmt, e, replacement)
		}
		p.changed = true
		return nil
	})
	ok := v.ProcessAllPreOrder(root, nil, nil)
	return ok, p.logger.Err()
}
