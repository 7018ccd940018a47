package rewriter

import (
	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/token"
)

// returnScanner looks for explicit return statements in the top-level
// body of a function. Conditional, try, match and with bodies are still
// top-level control flow and are descended into; nested function
// declarations and lambda literals keep ordinary return semantics and
// are treated as opaque leaves.
type returnScanner struct {
	ast.BaseVisitor
	found *token.Token
}

// ScanExplicitReturn reports the position of the first explicit return
// in the block, or nil when the block is clean.
func ScanExplicitReturn(block []ast.Statement) *token.Token {
	s := &returnScanner{}
	s.walk(block)
	return s.found
}

func (s *returnScanner) walk(block []ast.Statement) {
	for _, stmt := range block {
		if s.found != nil {
			return
		}
		stmt.Accept(s)
	}
}

func (s *returnScanner) VisitReturnStatement(stmt *ast.ReturnStatement) {
	if s.found == nil {
		tok := stmt.GetToken()
		s.found = &tok
	}
}

func (s *returnScanner) VisitConditionalStatement(stmt *ast.ConditionalStatement) {
	s.walk(stmt.Body)
	s.walk(stmt.Alternate)
}

func (s *returnScanner) VisitTryStatement(stmt *ast.TryStatement) {
	s.walk(stmt.Body)
	for _, h := range stmt.Handlers {
		s.walk(h.Body)
	}
	s.walk(stmt.Else)
	s.walk(stmt.Finally)
}

func (s *returnScanner) VisitMatchStatement(stmt *ast.MatchStatement) {
	for _, c := range stmt.Cases {
		s.walk(c.Body)
	}
}

func (s *returnScanner) VisitWithStatement(stmt *ast.WithStatement) {
	s.walk(stmt.Body)
}

func (s *returnScanner) VisitLoopStatement(stmt *ast.LoopStatement) {
	s.walk(stmt.Body)
}

// FunctionDeclaration and LambdaLiteral fall through to BaseVisitor:
// their bodies are never scanned.
