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
	"strings"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/ast/coerce"
	"github.com/rsmmr/hilti-sub004/ast/visitor"
	"github.com/rsmmr/hilti-sub004/hilti"
)

// Printer is a call-driven, read-only pass (spec.md §4.7.1) rendering an
// AST back to source-level text. Go has no shift-operator overload, so
// where the original streams "out << node << ..." this instead calls the
// write* helpers directly in sequence — the same linear emission order,
// just spelled as method calls.
type Printer struct {
	out  io.Writer
	v    *visitor.Visitor
	logger *ast.Logger

	indent         int
	atLineStart    bool
	suppressIndent bool
	singleLine     bool

	// printingTypeID guards against infinite recursion when a type's
	// structural rendering would re-print a type that names itself (a
	// struct field referencing its own type through a reference).
	printingTypeID map[coerce.Type]bool

	err error
}

// NewPrinter builds a printer writing to out. singleLine collapses every
// line break to a single space (spec.md §6's printer-output contract).
func NewPrinter(out io.Writer, singleLine bool) *Printer {
	p := &Printer{
		out:            out,
		logger:         ast.NewLogger("printer", out),
		atLineStart:    true,
		singleLine:     singleLine,
		printingTypeID: map[coerce.Type]bool{},
	}
	p.v = visitor.New("printer", visitor.CallDriven, p.logger)
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.Module) error { return p.printModule(n) })
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.Block) error { return p.printBlock(n) })
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.Declaration) error { return p.printDeclaration(n) })
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.Function) error { return p.printFunction(n) })
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.NoopStatement) error { p.writeLine("noop;"); return nil })
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.InstructionStatement) error { return p.printInstructionStatement(n) })
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.ForEachStatement) error { return p.printForEach(n) })
	visitor.Register(p.v, func(_ *visitor.Visitor, n *hilti.TryStatement) error { return p.printTry(n) })
	return p
}

func (p *Printer) Name() string     { return "printer" }
func (p *Printer) IsModifier() bool { return false }
func (p *Printer) Errors() int      { return p.logger.Errors() }
func (p *Printer) Warnings() int    { return p.logger.Errors() }

func (p *Printer) Reset() {
	p.indent = 0
	p.atLineStart = true
	p.suppressIndent = false
	p.printingTypeID = map[coerce.Type]bool{}
	p.err = nil
	p.logger.Reset()
}

// Run prints root, entering the call-driven visitor at its root node.
func (p *Printer) Run(root ast.Node) (bool, error) {
	ok := p.v.ProcessOne(root, nil, nil)
	if p.err != nil {
		return false, p.err
	}
	return ok, p.logger.Err()
}

// print re-enters the visitor for a child node (the Go stand-in for the
// original's `out << child`).
func (p *Printer) print(n ast.Node) {
	if n == nil {
		return
	}
	if err := p.v.Call(n); err != nil {
		p.err = err
	}
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	if p.singleLine {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	if _, err := io.WriteString(p.out, s); err != nil {
		p.err = err
	}
	if len(s) > 0 {
		p.atLineStart = s[len(s)-1] == '\n'
	}
}

// writeIndented writes s at the current indent level, unless indentation
// is currently suppressed (mid-expression printing).
func (p *Printer) writeIndented(s string) {
	if p.atLineStart && !p.suppressIndent {
		p.write(strings.Repeat("  ", p.indent))
	}
	p.write(s)
}

func (p *Printer) writeLine(s string) {
	p.writeIndented(s)
	p.write("\n")
}

// printList writes items separated by ", ", each formatted by fmt, with
// prefix/suffix wrapped around the whole list (spec.md §4.7.1's printList
// helper).
func printList[T any](p *Printer, prefix, suffix string, items []T, fmtFn func(T) string) {
	p.write(prefix)
	for i, it := range items {
		if i > 0 {
			p.write(", ")
		}
		p.write(fmtFn(it))
	}
	p.write(suffix)
}

func (p *Printer) printModule(m *hilti.Module) error {
	p.writeLine(fmt.Sprintf("module %s;", m.Name))
	if m.Body != nil {
		p.print(ast.Node(m.Body))
	}
	return nil
}

func (p *Printer) printBlock(b *hilti.Block) error {
	name := "<anonymous>"
	if b.Name != nil {
		name = b.Name.String()
	}
	p.writeLine(fmt.Sprintf("%s {", name))
	p.indent++
	for _, d := range b.Declarations {
		p.print(ast.Node(d))
	}
	for _, s := range b.Statements {
		p.print(ast.Node(s))
	}
	p.indent--
	p.writeLine("}")
	return nil
}

func (p *Printer) printDeclaration(d *hilti.Declaration) error {
	switch d.Kind {
	case hilti.VariableDeclaration:
		typ := "?"
		if d.Variable != nil && d.Variable.Type() != nil {
			typ = p.typeString(d.Variable.Type())
		}
		p.writeLine(fmt.Sprintf("local %s %s;", typ, d.Name))
	case hilti.ConstantDeclaration:
		p.writeLine(fmt.Sprintf("const %s;", d.Name))
	case hilti.TypeDeclaration:
		p.writeLine(fmt.Sprintf("type %s = %s;", d.Name, p.typeString(d.TypeValue)))
	case hilti.FunctionDeclaration:
		if d.FunctionValue != nil {
			p.print(ast.Node(d.FunctionValue))
		}
	default:
		p.writeLine(fmt.Sprintf("declaration %s;", d.Name))
	}
	return nil
}

func (p *Printer) printFunction(f *hilti.Function) error {
	result := "void"
	if f.Result != nil {
		result = p.typeString(f.Result)
	}
	p.write(strings.Repeat("  ", p.indent))
	p.write(fmt.Sprintf("%s %s", result, f.Name))
	p.suppressIndent = true
	printList(p, "(", ")", f.Params, func(prm *hilti.Parameter) string {
		return fmt.Sprintf("%s %s", p.typeString(prm.Type), prm.Name)
	})
	p.suppressIndent = false
	p.write(" ")
	p.atLineStart = false
	if f.Body != nil {
		p.print(ast.Node(f.Body))
	} else {
		p.write(";\n")
	}
	return nil
}

func (p *Printer) printInstructionStatement(s *hilti.InstructionStatement) error {
	var b strings.Builder
	if s.Target != nil {
		b.WriteString(p.exprString(s.Target))
		b.WriteString(" = ")
	}
	b.WriteString(s.Mnemonic)
	for _, op := range []coerce.Expression{s.Op1, s.Op2, s.Op3} {
		if op == nil {
			continue
		}
		b.WriteString(" ")
		b.WriteString(p.exprString(op))
	}
	b.WriteString(";")
	p.writeLine(b.String())
	return nil
}

func (p *Printer) printForEach(s *hilti.ForEachStatement) error {
	p.writeLine(fmt.Sprintf("for ( %s in %s ) {", s.Variable.String(), p.exprString(s.Sequence)))
	p.indent++
	if s.Body != nil {
		for _, d := range s.Body.Declarations {
			p.print(ast.Node(d))
		}
		for _, stmt := range s.Body.Statements {
			p.print(ast.Node(stmt))
		}
	}
	p.indent--
	p.writeLine("}")
	return nil
}

func (p *Printer) printTry(s *hilti.TryStatement) error {
	p.writeLine("try {")
	p.indent++
	if s.Body != nil {
		p.print(ast.Node(s.Body))
	}
	p.indent--
	for _, c := range s.Catches {
		if c.ExceptionType != nil {
			name := ""
			if c.BoundName != nil {
				name = " " + c.BoundName.String()
			}
			p.writeLine(fmt.Sprintf("} catch ( %s%s ) {", p.typeString(c.ExceptionType), name))
		} else {
			p.writeLine("} catch {")
		}
		p.indent++
		if c.Body != nil {
			p.print(ast.Node(c.Body))
		}
		p.indent--
	}
	p.writeLine("}")
	return nil
}

// typeString renders a type, preferring its declared ID over structural
// rendering, and guarding against a type whose structural rendering
// recurses back into itself.
func (p *Printer) typeString(t coerce.Type) string {
	if t == nil {
		return "?"
	}
	if id, ok := t.ID(); ok {
		return id.String()
	}
	if p.printingTypeID[t] {
		return "<recursive>"
	}
	p.printingTypeID[t] = true
	defer delete(p.printingTypeID, t)

	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return t.Kind()
}

// exprString renders an expression's textual form for instruction
// operand lists; real source-level pretty-printing of every expression
// kind lives outside this representative printer's scope.
func (p *Printer) exprString(e coerce.Expression) string {
	switch v := e.(type) {
	case *hilti.ConstantExpression:
		return p.constantString(v.Constant())
	case *hilti.VariableExpression:
		return v.Variable().Name
	case *hilti.BlockExpression:
		if v.Block() != nil && v.Block().Name != nil {
			return v.Block().Name.String()
		}
		return "<block>"
	case *hilti.TypeExpression:
		return p.typeString(v.Value())
	case *hilti.IdentifierExpression:
		return v.ID.String()
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func (p *Printer) constantString(c coerce.Constant) string {
	switch v := c.(type) {
	case *hilti.IntegerConstant:
		return fmt.Sprintf("%d", v.Value)
	case *hilti.BoolConstant:
		return fmt.Sprintf("%t", v.Value)
	case *hilti.StringConstant:
		return fmt.Sprintf("%q", v.Value)
	case *hilti.DoubleConstant:
		return fmt.Sprintf("%g", v.Value)
	default:
		return fmt.Sprintf("<%T>", c)
	}
}
