package rewriter

import (
	"fmt"
	"strings"

	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/token"
)

// TailRewriter rewrites tail positions (the final statement of a block,
// the one that determines the block's value) into assignments to a
// hidden result slot. It is functional: input nodes are never mutated,
// every rewritten statement is a fresh node.
//
// Supported tail forms:
//   - expression   -> assign to result
//   - conditional  -> both branches must set result via their own tails
//   - try          -> body and each handler must set result; else too
//   - match        -> each case body must set result via its tail
//   - with         -> body must set result via its tail
//   - no-op        -> assign the absent value
//   - raise        -> assign the absent value, then raise
type TailRewriter struct {
	resultName string
}

func NewTailRewriter(resultName string) *TailRewriter {
	return &TailRewriter{resultName: resultName}
}

// assign builds `<resultName> = value` positioned at the given token.
func (r *TailRewriter) assign(value ast.Expression, tok token.Token) *ast.AssignStatement {
	return &ast.AssignStatement{
		Token:  token.Token{Type: token.ASSIGN, Lexeme: "=", Line: tok.Line, Column: tok.Column},
		Target: &ast.Identifier{Token: token.Token{Type: token.IDENT, Lexeme: r.resultName}, Value: r.resultName},
		Value:  value,
	}
}

// assignAbsent builds `<resultName> = nil`.
func (r *TailRewriter) assignAbsent(tok token.Token) *ast.AssignStatement {
	return r.assign(&ast.NilLiteral{Token: token.Token{Type: token.NIL, Lexeme: "nil"}}, tok)
}

// RewriteBlock rewrites the tail of a block so every runtime path
// through it stores into the result slot. Statements before the tail
// are kept untouched and in order. An empty block yields the absent
// value. Rewriting is all-or-nothing: on error no partial block is
// returned.
func (r *TailRewriter) RewriteBlock(block []ast.Statement) ([]ast.Statement, error) {
	if len(block) == 0 {
		return []ast.Statement{r.assignAbsent(token.Token{})}, nil
	}
	init, last := block[:len(block)-1], block[len(block)-1]
	newLast, err := r.rewriteTailStmt(last)
	if err != nil {
		return nil, err
	}
	out := make([]ast.Statement, 0, len(init)+len(newLast))
	out = append(out, init...)
	out = append(out, newLast...)
	return out, nil
}

// rewriteTailStmt returns the statements that replace the given tail
// statement, ensuring the result slot is set on all runtime paths.
func (r *TailRewriter) rewriteTailStmt(stmt ast.Statement) ([]ast.Statement, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return []ast.Statement{r.assign(s.Value, s.Token)}, nil

	case *ast.ConditionalStatement:
		return r.rewriteConditional(s)

	case *ast.TryStatement:
		return r.rewriteTry(s)

	case *ast.MatchStatement:
		return r.rewriteMatch(s)

	case *ast.WithStatement:
		return r.rewriteWith(s)

	case *ast.LoopStatement:
		return nil, diagnostics.NewError(diagnostics.ErrT003, s.Token,
			"Loop cannot produce an implicit return value.")

	case *ast.NoOpStatement:
		// A no-op yields the absent value: no statement executed,
		// nothing computed.
		return []ast.Statement{r.assignAbsent(s.Token)}, nil

	case *ast.RaiseStatement:
		// The raise short-circuits execution, so the assignment is dead
		// on the propagating path; it keeps the slot bound for readers
		// in enclosing handlers.
		return []ast.Statement{r.assignAbsent(s.Token), s}, nil
	}

	return nil, diagnostics.NewError(diagnostics.ErrT003, stmt.GetToken(),
		fmt.Sprintf("Unsupported tail construct: %s.", kindName(stmt)))
}

func (r *TailRewriter) rewriteConditional(s *ast.ConditionalStatement) ([]ast.Statement, error) {
	if s.Alternate == nil {
		// A partial conditional cannot guarantee a value on all paths.
		return nil, diagnostics.NewError(diagnostics.ErrT002, s.Token,
			"If without else at tail position must have an else clause.")
	}
	body, err := r.RewriteBlock(s.Body)
	if err != nil {
		return nil, err
	}
	alternate, err := r.RewriteBlock(s.Alternate)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.ConditionalStatement{
		Token:     s.Token,
		Test:      s.Test,
		Body:      body,
		Alternate: alternate,
	}}, nil
}

func (r *TailRewriter) rewriteTry(s *ast.TryStatement) ([]ast.Statement, error) {
	// Body must produce a value on the non-exceptional path.
	body, err := r.RewriteBlock(s.Body)
	if err != nil {
		return nil, err
	}
	// Each handler is a recovery path and must produce a value too.
	handlers := make([]*ast.Handler, 0, len(s.Handlers))
	for _, h := range s.Handlers {
		hb, err := r.RewriteBlock(h.Body)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, &ast.Handler{Token: h.Token, ErrorName: h.ErrorName, Body: hb})
	}
	// Else runs only on non-exceptional completion and replaces the
	// body's value.
	var elseBlock []ast.Statement
	if s.Else != nil {
		elseBlock, err = r.RewriteBlock(s.Else)
		if err != nil {
			return nil, err
		}
	}
	// Finally runs after the result is already determined; it must not
	// be where the result is set, so it stays untouched.
	return []ast.Statement{&ast.TryStatement{
		Token:    s.Token,
		Body:     body,
		Handlers: handlers,
		Else:     elseBlock,
		Finally:  s.Finally,
	}}, nil
}

func (r *TailRewriter) rewriteMatch(s *ast.MatchStatement) ([]ast.Statement, error) {
	cases := make([]*ast.MatchCase, 0, len(s.Cases))
	for _, c := range s.Cases {
		if len(c.Body) == 0 {
			return nil, diagnostics.NewError(diagnostics.ErrT002, s.Token,
				"Empty match case body cannot yield a value.")
		}
		cb, err := r.RewriteBlock(c.Body)
		if err != nil {
			return nil, err
		}
		cases = append(cases, &ast.MatchCase{Token: c.Token, Pattern: c.Pattern, Body: cb})
	}
	return []ast.Statement{&ast.MatchStatement{
		Token:   s.Token,
		Subject: s.Subject,
		Cases:   cases,
	}}, nil
}

func (r *TailRewriter) rewriteWith(s *ast.WithStatement) ([]ast.Statement, error) {
	if len(s.Body) == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrT002, s.Token,
			"Empty with body cannot produce a value.")
	}
	body, err := r.RewriteBlock(s.Body)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.WithStatement{
		Token:     s.Token,
		Resources: s.Resources,
		Body:      body,
	}}, nil
}

// kindName renders a node's concrete kind for diagnostics.
func kindName(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
