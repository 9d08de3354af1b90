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
	"sort"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/visitor"
	"github.com/rsmmr/hilti-sub004/hilti"
)

// Collector is a read-only pre-order pass (spec.md §4.7.4) that records
// every global variable declaration reachable from the root, in sorted
// order by identifier, giving a stable, deterministic listing.
type Collector struct {
	logger    *ast.Logger
	Globals   []*hilti.Declaration
}

// NewCollector builds a Collector logging to out (os.Stderr if nil).
func NewCollector(out io.Writer) *Collector {
	return &Collector{logger: ast.NewLogger("collector", out)}
}

func (c *Collector) Name() string      { return "collector" }
func (c *Collector) IsModifier() bool  { return false }
func (c *Collector) Errors() int       { return c.logger.Errors() }
func (c *Collector) Warnings() int     { return c.logger.Warnings() }

// Reset clears the accumulated global list so the collector can run
// again over a different tree.
func (c *Collector) Reset() {
	c.Globals = nil
	c.logger.Reset()
}

// Run walks root pre-order, recording every VariableDeclaration whose
// Variable is global.
func (c *Collector) Run(root ast.Node) (bool, error) {
	v := visitor.New("collector", visitor.PreOrder, c.logger)
	visitor.Register(v, func(_ *visitor.Visitor, d *hilti.Declaration) error {
		if d.Kind == hilti.VariableDeclaration && d.Variable != nil && d.Variable.IsGlobal() {
			c.Globals = append(c.Globals, d)
		}
		return nil
	})
	ok := v.ProcessAllPreOrder(root, nil, nil)
	sort.Slice(c.Globals, func(i, j int) bool {
		return c.Globals[i].Name < c.Globals[j].Name
	})
	return ok, c.logger.Err()
}
