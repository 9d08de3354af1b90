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
	"bytes"

	"github.com/rsmmr/hilti-sub004/ast"
)

// init installs passes as ast's default node renderer, so that any
// ast.Node's String() falls back to printer output instead of a bare
// type name, the way the source's NodeBase::operator string() falls
// back to its own printer when no language-specific render() exists.
func init() {
	ast.RenderHook = renderNode
}

func renderNode(n ast.Node) string {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	if _, err := p.Run(n); err != nil {
		return buf.String()
	}
	return buf.String()
}
