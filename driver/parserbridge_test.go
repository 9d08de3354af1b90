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

package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/driver"
)

// stubBridge is the kind of minimal ParserBridge a hand-written lexer
// test double would provide; this repo ships no real lexer/parser.
type stubBridge struct{}

func (stubBridge) NewToken(lexeme string, node ast.Node) driver.TokenValue {
	return driver.TokenValue{Lexeme: lexeme, Node: node}
}

func TestStubBridgeSatisfiesParserBridge(t *testing.T) {
	var b driver.ParserBridge = stubBridge{}
	tok := b.NewToken("foo", nil)
	assert.Equal(t, "foo", tok.Lexeme)
	assert.Nil(t, tok.Node)
}
