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

package driver

import "github.com/rsmmr/hilti-sub004/ast"

// TokenValue is the minimal carrier a hand-written lexer/parser (not
// part of this repo, spec.md §1's explicit non-goal) would hand back
// across the ParserBridge boundary: a token's textual lexeme plus
// whatever partially-built ast.Node a grammar action has already
// produced for it, if any.
type TokenValue struct {
	Lexeme string
	Node   ast.Node
}

// ParserBridge is the seam a real lexer/parser would implement to hand
// lexer/parser-generator semantic values into this compiler core,
// without this package needing to know anything about the grammar or
// token stream on the other side (spec.md §1's "parser driver bridge
// (token/semantic value carrier only)"). No implementation is provided
// here beyond the interface and TokenValue: building a front end is out
// of scope for this repo.
type ParserBridge interface {
	// NewToken is called by generated lexer/parser code to wrap one
	// token's lexeme and (if the grammar has already reduced it to one)
	// partial AST node into the carrier the parser's value stack holds.
	NewToken(lexeme string, node ast.Node) TokenValue
}
