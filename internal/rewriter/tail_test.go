package rewriter_test

import (
	"testing"

	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/config"
	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/rewriter"
	"github.com/funvibe/modgud/internal/token"
)

const slot = config.ResultSlotName

func rewriteBlock(t *testing.T, block []ast.Statement) []ast.Statement {
	t.Helper()
	out, err := rewriter.NewTailRewriter(slot).RewriteBlock(block)
	if err != nil {
		t.Fatalf("unexpected rewrite error: %v", err)
	}
	return out
}

func TestExpressionTailBecomesAssignment(t *testing.T) {
	out := rewriteBlock(t, block(exprStmt(bin(intLit(10), "+", intLit(20)))))
	if len(out) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(out))
	}
	v := resultAssign(t, out[0], slot)
	if _, ok := v.(*ast.BinaryExpression); !ok {
		t.Errorf("expected the original expression to be assigned, got %T", v)
	}
}

func TestEmptyBlockSynthesizesAbsentValue(t *testing.T) {
	out := rewriteBlock(t, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(out))
	}
	isAbsentAssign(t, out[0], slot)
}

func TestInitStatementsPreservedInOrder(t *testing.T) {
	first := &ast.AssignStatement{Target: ident("a"), Value: intLit(1)}
	second := &ast.AssignStatement{Target: ident("b"), Value: intLit(2)}
	out := rewriteBlock(t, block(first, second, exprStmt(ident("b"))))
	if len(out) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(out))
	}
	if out[0] != ast.Statement(first) || out[1] != ast.Statement(second) {
		t.Error("init statements were reordered or replaced")
	}
	resultAssign(t, out[2], slot)
}

func TestConditionalRewritesBothBranches(t *testing.T) {
	out := rewriteBlock(t, block(cond(
		bin(ident("x"), ">", intLit(0)),
		block(exprStmt(strLit("pos"))),
		block(exprStmt(strLit("neg"))),
	)))
	if len(out) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(out))
	}
	cs, ok := out[0].(*ast.ConditionalStatement)
	if !ok {
		t.Fatalf("expected *ConditionalStatement, got %T", out[0])
	}
	resultAssign(t, cs.Body[len(cs.Body)-1], slot)
	resultAssign(t, cs.Alternate[len(cs.Alternate)-1], slot)
}

func TestConditionalWithoutElseFails(t *testing.T) {
	c := cond(bin(ident("x"), ">", intLit(0)), block(exprStmt(strLit("pos"))), nil)
	c.Token = token.Token{Type: token.IF, Lexeme: "if", Line: 3, Column: 2}
	_, err := rewriter.NewTailRewriter(slot).RewriteBlock(block(c))
	de := expectCode(t, err, diagnostics.ErrT002)
	if de.Line != 3 || de.Column != 2 {
		t.Errorf("expected location 3:2, got %d:%d", de.Line, de.Column)
	}
}

func TestNestedConditionalTails(t *testing.T) {
	inner := cond(ident("y"),
		block(exprStmt(strLit("a"))),
		block(exprStmt(strLit("b"))),
	)
	out := rewriteBlock(t, block(cond(ident("x"), block(inner), block(exprStmt(strLit("c"))))))
	cs := out[0].(*ast.ConditionalStatement)
	nested, ok := cs.Body[0].(*ast.ConditionalStatement)
	if !ok {
		t.Fatalf("expected nested conditional, got %T", cs.Body[0])
	}
	resultAssign(t, nested.Body[len(nested.Body)-1], slot)
	resultAssign(t, nested.Alternate[len(nested.Alternate)-1], slot)
}

func TestLoopTailRejected(t *testing.T) {
	for _, tt := range []token.TokenType{token.FOR, token.WHILE} {
		loop := &ast.LoopStatement{
			Token: token.Token{Type: tt, Lexeme: "loop", Line: 7, Column: 1},
			Test:  ident("x"),
			Body:  block(exprStmt(intLit(1))),
		}
		_, err := rewriter.NewTailRewriter(slot).RewriteBlock(block(loop))
		de := expectCode(t, err, diagnostics.ErrT003)
		if de.Line != 7 {
			t.Errorf("%s: expected line 7, got %d", tt, de.Line)
		}
	}
}

func TestNoOpTailYieldsAbsentValue(t *testing.T) {
	out := rewriteBlock(t, block(&ast.NoOpStatement{Token: token.Token{Type: token.PASS, Lexeme: "pass"}}))
	if len(out) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(out))
	}
	isAbsentAssign(t, out[0], slot)
}

func TestRaiseTailKeepsRaiseAfterDefensiveAssign(t *testing.T) {
	raise := &ast.RaiseStatement{Token: token.Token{Type: token.RAISE, Lexeme: "raise"}, Value: strLit("boom")}
	out := rewriteBlock(t, block(raise))
	if len(out) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(out))
	}
	isAbsentAssign(t, out[0], slot)
	if out[1] != ast.Statement(raise) {
		t.Errorf("expected the raise to survive unchanged, got %T", out[1])
	}
}

func TestTryRewritesBodyHandlersAndElseButNotFinally(t *testing.T) {
	finallyStmt := exprStmt(ident("cleanup"))
	try := &ast.TryStatement{
		Token: token.Token{Type: token.TRY, Lexeme: "try"},
		Body:  block(exprStmt(intLit(1))),
		Handlers: []*ast.Handler{
			{ErrorName: ident("e"), Body: block(exprStmt(intLit(2)))},
			{Body: block(exprStmt(intLit(3)))},
		},
		Else:    block(exprStmt(intLit(4))),
		Finally: block(finallyStmt),
	}
	out := rewriteBlock(t, block(try))
	ts := out[0].(*ast.TryStatement)
	resultAssign(t, ts.Body[len(ts.Body)-1], slot)
	for i, h := range ts.Handlers {
		resultAssign(t, h.Body[len(h.Body)-1], slot)
		if i == 0 && h.ErrorName == nil {
			t.Error("handler error binding was dropped")
		}
	}
	resultAssign(t, ts.Else[len(ts.Else)-1], slot)
	if len(ts.Finally) != 1 || ts.Finally[0] != ast.Statement(finallyStmt) {
		t.Error("finally block must stay untouched")
	}
}

func TestTryWithoutElseStaysWithoutElse(t *testing.T) {
	try := &ast.TryStatement{
		Token:    token.Token{Type: token.TRY, Lexeme: "try"},
		Body:     block(exprStmt(intLit(1))),
		Handlers: []*ast.Handler{{Body: block(exprStmt(intLit(2)))}},
	}
	out := rewriteBlock(t, block(try))
	ts := out[0].(*ast.TryStatement)
	if ts.Else != nil {
		t.Errorf("expected no else block, got %d statements", len(ts.Else))
	}
}

func TestMatchRewritesEveryCase(t *testing.T) {
	m := &ast.MatchStatement{
		Token:   token.Token{Type: token.MATCH, Lexeme: "match"},
		Subject: ident("x"),
		Cases: []*ast.MatchCase{
			{Pattern: intLit(1), Body: block(exprStmt(strLit("one")))},
			{Pattern: ident("_"), Body: block(exprStmt(strLit("other")))},
		},
	}
	out := rewriteBlock(t, block(m))
	ms := out[0].(*ast.MatchStatement)
	for _, c := range ms.Cases {
		resultAssign(t, c.Body[len(c.Body)-1], slot)
	}
}

func TestEmptyMatchCaseFails(t *testing.T) {
	m := &ast.MatchStatement{
		Token:   token.Token{Type: token.MATCH, Lexeme: "match", Line: 5, Column: 4},
		Subject: ident("x"),
		Cases: []*ast.MatchCase{
			{Pattern: intLit(1), Body: nil},
		},
	}
	_, err := rewriter.NewTailRewriter(slot).RewriteBlock(block(m))
	de := expectCode(t, err, diagnostics.ErrT002)
	if de.Line != 5 {
		t.Errorf("expected line 5, got %d", de.Line)
	}
}

func TestWithBodyRewritten(t *testing.T) {
	w := &ast.WithStatement{
		Token:     token.Token{Type: token.WITH, Lexeme: "with"},
		Resources: []ast.Expression{ident("res")},
		Body:      block(exprStmt(intLit(42))),
	}
	out := rewriteBlock(t, block(w))
	ws := out[0].(*ast.WithStatement)
	resultAssign(t, ws.Body[len(ws.Body)-1], slot)
	if len(ws.Resources) != 1 {
		t.Error("resources must be preserved")
	}
}

func TestEmptyWithBodyFails(t *testing.T) {
	w := &ast.WithStatement{
		Token:     token.Token{Type: token.WITH, Lexeme: "with"},
		Resources: []ast.Expression{ident("res")},
	}
	_, err := rewriter.NewTailRewriter(slot).RewriteBlock(block(w))
	expectCode(t, err, diagnostics.ErrT002)
}

func TestUnsupportedTailConstruct(t *testing.T) {
	assign := &ast.AssignStatement{
		Token:  token.Token{Type: token.ASSIGN, Lexeme: "=", Line: 9, Column: 0},
		Target: ident("x"),
		Value:  intLit(1),
	}
	_, err := rewriter.NewTailRewriter(slot).RewriteBlock(block(assign))
	de := expectCode(t, err, diagnostics.ErrT003)
	if de.Line != 9 {
		t.Errorf("expected line 9, got %d", de.Line)
	}
}

func TestFailedBranchAbortsWholeRewrite(t *testing.T) {
	// The conditional's own branches are valid, but its alternate ends
	// in a loop; nothing of the block may be returned.
	c := cond(ident("x"),
		block(exprStmt(intLit(1))),
		block(&ast.LoopStatement{Token: token.Token{Type: token.WHILE, Lexeme: "while"}, Test: ident("y")}),
	)
	out, err := rewriter.NewTailRewriter(slot).RewriteBlock(block(c))
	expectCode(t, err, diagnostics.ErrT003)
	if out != nil {
		t.Error("no partial result may accompany an error")
	}
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	body := block(exprStmt(strLit("pos")))
	alternate := block(exprStmt(strLit("neg")))
	c := cond(ident("x"), body, alternate)
	input := block(c)

	if _, err := rewriter.NewTailRewriter(slot).RewriteBlock(input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := c.Body[0].(*ast.ExpressionStatement); !ok {
		t.Error("input conditional body was mutated")
	}
	if _, ok := c.Alternate[0].(*ast.ExpressionStatement); !ok {
		t.Error("input conditional alternate was mutated")
	}
}

func TestCustomResultSlotName(t *testing.T) {
	out, err := rewriter.NewTailRewriter("__ret").RewriteBlock(block(exprStmt(intLit(1))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resultAssign(t, out[0], "__ret")
}
