package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/modgud/internal/ast"
)

// --- Code Printer (output looks like source code) ---

// CodePrinter renders a statement tree as indented pseudo-code. It is
// used by the CLI to show rewritten trees and by tests as a compact
// structural fingerprint.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// PrintProgram renders every top-level statement.
func (p *CodePrinter) PrintProgram(program *ast.Program) string {
	p.buf.Reset()
	p.indent = 0
	for _, stmt := range program.Statements {
		p.printStmt(stmt)
	}
	return p.buf.String()
}

// PrintFunction renders a single declaration.
func (p *CodePrinter) PrintFunction(fn *ast.FunctionDeclaration) string {
	p.buf.Reset()
	p.indent = 0
	p.printStmt(fn)
	return p.buf.String()
}

func (p *CodePrinter) line(format string, args ...any) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *CodePrinter) printBlock(block []ast.Statement) {
	p.indent++
	if len(block) == 0 {
		p.line("pass")
	}
	for _, stmt := range block {
		p.printStmt(stmt)
	}
	p.indent--
}

func (p *CodePrinter) printStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		p.line("%s", p.expr(s.Value))
	case *ast.AssignStatement:
		p.line("%s = %s", s.Target.Value, p.expr(s.Value))
	case *ast.ConditionalStatement:
		p.line("if %s {", p.expr(s.Test))
		p.printBlock(s.Body)
		if s.Alternate != nil {
			p.line("} else {")
			p.printBlock(s.Alternate)
		}
		p.line("}")
	case *ast.TryStatement:
		p.line("try {")
		p.printBlock(s.Body)
		for _, h := range s.Handlers {
			if h.ErrorName != nil {
				p.line("} catch %s {", h.ErrorName.Value)
			} else {
				p.line("} catch {")
			}
			p.printBlock(h.Body)
		}
		if s.Else != nil {
			p.line("} else {")
			p.printBlock(s.Else)
		}
		if s.Finally != nil {
			p.line("} finally {")
			p.printBlock(s.Finally)
		}
		p.line("}")
	case *ast.MatchStatement:
		p.line("match %s {", p.expr(s.Subject))
		p.indent++
		for _, c := range s.Cases {
			p.line("case %s {", p.expr(c.Pattern))
			p.printBlock(c.Body)
			p.line("}")
		}
		p.indent--
		p.line("}")
	case *ast.WithStatement:
		resources := make([]string, 0, len(s.Resources))
		for _, r := range s.Resources {
			resources = append(resources, p.expr(r))
		}
		p.line("with %s {", strings.Join(resources, ", "))
		p.printBlock(s.Body)
		p.line("}")
	case *ast.LoopStatement:
		if s.Test != nil {
			p.line("%s %s {", s.Token.Lexeme, p.expr(s.Test))
		} else {
			p.line("%s {", s.Token.Lexeme)
		}
		p.printBlock(s.Body)
		p.line("}")
	case *ast.NoOpStatement:
		p.line("pass")
	case *ast.ReturnStatement:
		if s.Value != nil {
			p.line("return %s", p.expr(s.Value))
		} else {
			p.line("return")
		}
	case *ast.RaiseStatement:
		p.line("raise %s", p.expr(s.Value))
	case *ast.FunctionDeclaration:
		params := make([]string, 0, len(s.Params))
		for _, param := range s.Params {
			params = append(params, param.Value)
		}
		for _, dec := range s.Decorators {
			p.line("@%s", p.expr(dec))
		}
		p.line("func %s(%s) {", s.Name.Value, strings.Join(params, ", "))
		p.printBlock(s.Body)
		p.line("}")
	default:
		p.line("<?%T>", stmt)
	}
}

func (p *CodePrinter) expr(e ast.Expression) string {
	switch x := e.(type) {
	case *ast.Identifier:
		return x.Value
	case *ast.IntegerLiteral:
		return strconv.FormatInt(x.Value, 10)
	case *ast.StringLiteral:
		return strconv.Quote(x.Value)
	case *ast.BooleanLiteral:
		return strconv.FormatBool(x.Value)
	case *ast.NilLiteral:
		return "nil"
	case *ast.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", p.expr(x.Left), x.Operator, p.expr(x.Right))
	case *ast.CallExpression:
		args := make([]string, 0, len(x.Arguments))
		for _, a := range x.Arguments {
			args = append(args, p.expr(a))
		}
		return fmt.Sprintf("%s(%s)", p.expr(x.Function), strings.Join(args, ", "))
	case *ast.LambdaLiteral:
		params := make([]string, 0, len(x.Params))
		for _, param := range x.Params {
			params = append(params, param.Value)
		}
		return fmt.Sprintf("lambda(%s) {...}", strings.Join(params, ", "))
	}
	return fmt.Sprintf("<?%T>", e)
}
