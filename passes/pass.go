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

// Package passes implements the AST transformation/analysis passes of
// spec.md §4.7: a call-driven Printer, a pre-order ID-rewriting
// IDReplacer, a post-order for-each/try-catch lowering Normalizer, and a
// pre-order global-variable Collector, plus a RunSequence helper that
// chains passes the way a compiler pipeline config would.
package passes

import (
	"go.uber.org/multierr"

	"github.com/rsmmr/hilti-sub004/ast"
)

// Pass is implemented by every traversal-driven transformation or
// analysis over an ast.Node tree.
type Pass interface {
	// Name identifies the pass for logging and pipeline configuration.
	Name() string
	// IsModifier reports whether the pass may rewrite the tree (true for
	// IDReplacer/Normalizer; false for Printer/Collector).
	IsModifier() bool
	// Run executes the pass over root, returning whether it completed
	// without errors.
	Run(root ast.Node) (bool, error)
	// Reset clears any accumulated per-run state so the pass can be
	// reused on a different tree.
	Reset()
	// Errors returns the number of errors logged since the pass was
	// built or last Reset; Run does not reset it.
	Errors() int
	// Warnings deliberately reproduces spec.md §9's open-question bug:
	// like ast.Logger.Warnings, it returns the error count since the pass
	// was built or last Reset, not the warning count —
	// ast.Logger.WarningCount is the one that's actually correct.
	// Kept as-is rather than silently fixed; see DESIGN.md.
	Warnings() int
}

// RunSequence runs passes in order over root, stopping at the first pass
// that returns ok=false, and aggregates every error seen via multierr
// (the same library ast.Logger.Err uses, rather than hand-rolling an
// error list).
func RunSequence(passes []Pass, root ast.Node) error {
	var errs error
	for _, p := range passes {
		ok, err := p.Run(root)
		errs = multierr.Append(errs, err)
		if !ok {
			break
		}
	}
	return errs
}
