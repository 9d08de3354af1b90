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

package passes_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/hilti"
	"github.com/rsmmr/hilti-sub004/passes"
)

func TestPrinterRendersModuleHeaderAndBlock(t *testing.T) {
	body := hilti.NewBlock(nil, nil, nil, nil, ast.NoLocation)
	mod := hilti.NewModule("test", "test.hlt", body, ast.NoLocation)

	var buf bytes.Buffer
	p := passes.NewPrinter(&buf, false)
	ok, err := p.Run(ast.Node(mod))
	require.NoError(t, err)
	require.True(t, ok)

	out := buf.String()
	assert.Contains(t, out, "module test;")
	assert.Contains(t, out, "<anonymous> {")
}

func TestPrinterRendersInstructionStatementOperands(t *testing.T) {
	target := hilti.NewVariableExpression(hilti.NewVariable("sum", hilti.NewInteger(32, true, ast.NoLocation), nil, hilti.LocalVariable, ast.NoLocation), ast.NoLocation)
	op1 := hilti.NewConstantExpression(hilti.NewIntegerConstant(1, hilti.NewInteger(32, true, ast.NoLocation), ast.NoLocation), ast.NoLocation)
	op2 := hilti.NewConstantExpression(hilti.NewIntegerConstant(2, hilti.NewInteger(32, true, ast.NoLocation), ast.NoLocation), ast.NoLocation)
	stmt := hilti.NewInstructionStatement("integer.add", target, op1, op2, nil, ast.NoLocation)
	body := hilti.NewBlock(nil, nil, nil, []hilti.Statement{stmt}, ast.NoLocation)

	var buf bytes.Buffer
	p := passes.NewPrinter(&buf, false)
	_, err := p.Run(ast.Node(body))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "sum = integer.add 1 2;")
}

func TestPrinterSingleLineModeCollapsesNewlines(t *testing.T) {
	inner := hilti.NewBlock(nil, nil, nil, nil, ast.NoLocation)
	outer := hilti.NewBlock(nil, nil, nil, []hilti.Statement{inner}, ast.NoLocation)

	var buf bytes.Buffer
	p := passes.NewPrinter(&buf, true)
	_, err := p.Run(ast.Node(outer))
	require.NoError(t, err)

	assert.False(t, strings.Contains(buf.String(), "\n"))
}

func TestPrinterRendersTypeWithoutIDStructurally(t *testing.T) {
	named := hilti.NewInteger(32, true, ast.NoLocation)
	decl := hilti.NewTypeDeclaration("MyInt", named, hilti.ExportedLinkage, ast.NoLocation)
	body := hilti.NewBlock(nil, nil, []*hilti.Declaration{decl}, nil, ast.NoLocation)

	var buf bytes.Buffer
	p := passes.NewPrinter(&buf, false)
	_, err := p.Run(ast.Node(body))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "type MyInt = int<32>;")
}
