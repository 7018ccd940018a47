package rewriter_test

import (
	"testing"

	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/token"
)

// Tree builders shared by the rewriter tests.

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: token.Token{Type: token.IDENT, Lexeme: name}, Value: name}
}

func intLit(v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: token.Token{Type: token.INT}, Value: v}
}

func strLit(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Token: token.Token{Type: token.STRING}, Value: v}
}

func bin(left ast.Expression, op string, right ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Token: token.Token{Lexeme: op}, Left: left, Operator: op, Right: right}
}

func exprStmt(v ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Token: token.Token{}, Value: v}
}

func cond(test ast.Expression, body, alternate []ast.Statement) *ast.ConditionalStatement {
	return &ast.ConditionalStatement{
		Token:     token.Token{Type: token.IF, Lexeme: "if"},
		Test:      test,
		Body:      body,
		Alternate: alternate,
	}
}

func block(stmts ...ast.Statement) []ast.Statement {
	return stmts
}

func funcDecl(name string, params []string, body ...ast.Statement) *ast.FunctionDeclaration {
	ps := make([]*ast.Identifier, 0, len(params))
	for _, p := range params {
		ps = append(ps, ident(p))
	}
	return &ast.FunctionDeclaration{
		Token:  token.Token{Type: token.FUNC, Lexeme: "func"},
		Name:   ident(name),
		Params: ps,
		Body:   body,
	}
}

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{File: "test.tree", Statements: stmts}
}

// expectCode asserts err is a DiagnosticError with the given code.
func expectCode(t *testing.T, err error, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got none", code)
	}
	de, ok := err.(*diagnostics.DiagnosticError)
	if !ok {
		t.Fatalf("expected *DiagnosticError, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %s, got %s: %s", code, de.Code, de.Message)
	}
	return de
}

// resultAssign asserts the statement assigns into the given slot and
// returns the assigned expression.
func resultAssign(t *testing.T, stmt ast.Statement, slot string) ast.Expression {
	t.Helper()
	as, ok := stmt.(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected *AssignStatement, got %T", stmt)
	}
	if as.Target.Value != slot {
		t.Fatalf("expected assignment to %s, got %s", slot, as.Target.Value)
	}
	return as.Value
}

// isAbsentAssign asserts the statement assigns nil into the slot.
func isAbsentAssign(t *testing.T, stmt ast.Statement, slot string) {
	t.Helper()
	v := resultAssign(t, stmt, slot)
	if _, ok := v.(*ast.NilLiteral); !ok {
		t.Fatalf("expected nil literal assignment, got %T", v)
	}
}
