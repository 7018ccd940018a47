package interp_test

import (
	"testing"

	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/interp"
	"github.com/funvibe/modgud/internal/treedoc"
)

func load(t *testing.T, doc string) *ast.Program {
	t.Helper()
	p, err := treedoc.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("bad test document: %v", err)
	}
	return p
}

func run(t *testing.T, doc, name string, args ...any) any {
	t.Helper()
	v, err := interp.New().RunFunction(load(t, doc), name, args...)
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	return v
}

func TestArithmeticAndReturn(t *testing.T) {
	got := run(t, `
statements:
  - kind: func
    name: add
    params: [x, y]
    body:
      - kind: return
        value: { kind: bin, op: "+", left: { kind: ident, name: x }, right: { kind: ident, name: y } }
`, "add", int64(10), int64(20))
	if got != int64(30) {
		t.Errorf("expected 30, got %v", got)
	}
}

func TestFallingOffTheEndYieldsNil(t *testing.T) {
	got := run(t, `
statements:
  - kind: func
    name: f
    body:
      - kind: expr
        value: { kind: int, value: 1 }
`, "f")
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestConditionalBranches(t *testing.T) {
	doc := `
statements:
  - kind: func
    name: sign
    params: [x]
    body:
      - kind: if
        test: { kind: bin, op: ">", left: { kind: ident, name: x }, right: { kind: int, value: 0 } }
        body:
          - kind: return
            value: { kind: str, value: pos }
        else:
          - kind: return
            value: { kind: str, value: neg }
`
	if got := run(t, doc, "sign", int64(1)); got != "pos" {
		t.Errorf("expected pos, got %v", got)
	}
	if got := run(t, doc, "sign", int64(-1)); got != "neg" {
		t.Errorf("expected neg, got %v", got)
	}
}

func TestAssignmentAndWhileLoop(t *testing.T) {
	got := run(t, `
statements:
  - kind: func
    name: sumTo
    params: [n]
    body:
      - kind: assign
        target: total
        value: { kind: int, value: 0 }
      - kind: while
        test: { kind: bin, op: ">", left: { kind: ident, name: n }, right: { kind: int, value: 0 } }
        body:
          - kind: assign
            target: total
            value: { kind: bin, op: "+", left: { kind: ident, name: total }, right: { kind: ident, name: n } }
          - kind: assign
            target: n
            value: { kind: bin, op: "-", left: { kind: ident, name: n }, right: { kind: int, value: 1 } }
      - kind: return
        value: { kind: ident, name: total }
`, "sumTo", int64(4))
	if got != int64(10) {
		t.Errorf("expected 10, got %v", got)
	}
}

func TestRaisePropagatesAsError(t *testing.T) {
	_, err := interp.New().RunFunction(load(t, `
statements:
  - kind: func
    name: boom
    body:
      - kind: raise
        value: { kind: str, value: kaboom }
`), "boom")
	raised, ok := err.(*interp.Raised)
	if !ok {
		t.Fatalf("expected *Raised, got %v", err)
	}
	if raised.Value != "kaboom" {
		t.Errorf("expected kaboom, got %v", raised.Value)
	}
}

func TestTryCatchesAndBindsError(t *testing.T) {
	got := run(t, `
statements:
  - kind: func
    name: safe
    body:
      - kind: try
        body:
          - kind: raise
            value: { kind: str, value: oops }
        handlers:
          - error_name: e
            body:
              - kind: return
                value: { kind: ident, name: e }
`, "safe")
	if got != "oops" {
		t.Errorf("expected the bound raise value, got %v", got)
	}
}

func TestTryElseRunsOnCleanBody(t *testing.T) {
	got := run(t, `
statements:
  - kind: func
    name: f
    body:
      - kind: try
        body:
          - kind: expr
            value: { kind: int, value: 1 }
        handlers:
          - body:
              - kind: return
                value: { kind: str, value: caught }
        else:
          - kind: return
            value: { kind: str, value: clean }
`, "f")
	if got != "clean" {
		t.Errorf("expected clean, got %v", got)
	}
}

func TestFinallyReturnWins(t *testing.T) {
	got := run(t, `
statements:
  - kind: func
    name: f
    body:
      - kind: try
        body:
          - kind: return
            value: { kind: str, value: body }
        finally:
          - kind: return
            value: { kind: str, value: finally }
`, "f")
	if got != "finally" {
		t.Errorf("a returning finally takes precedence, got %v", got)
	}
}

func TestUnhandledRaiseRunsFinallyThenPropagates(t *testing.T) {
	_, err := interp.New().RunFunction(load(t, `
statements:
  - kind: func
    name: f
    body:
      - kind: try
        body:
          - kind: raise
            value: { kind: str, value: oops }
        finally:
          - kind: pass
`), "f")
	if _, ok := err.(*interp.Raised); !ok {
		t.Fatalf("raise must survive a pass-through finally, got %v", err)
	}
}

func TestMatchLiteralWildcardAndBinding(t *testing.T) {
	doc := `
statements:
  - kind: func
    name: describe
    params: [n]
    body:
      - kind: match
        subject: { kind: ident, name: n }
        cases:
          - pattern: { kind: int, value: 0 }
            body:
              - kind: return
                value: { kind: str, value: zero }
          - pattern: { kind: ident, name: other }
            body:
              - kind: return
                value: { kind: ident, name: other }
`
	if got := run(t, doc, "describe", int64(0)); got != "zero" {
		t.Errorf("expected zero, got %v", got)
	}
	if got := run(t, doc, "describe", int64(9)); got != int64(9) {
		t.Errorf("binding pattern must yield the subject, got %v", got)
	}
}

func TestMatchWithoutMatchingCaseRaises(t *testing.T) {
	_, err := interp.New().RunFunction(load(t, `
statements:
  - kind: func
    name: f
    params: [n]
    body:
      - kind: match
        subject: { kind: ident, name: n }
        cases:
          - pattern: { kind: int, value: 0 }
            body: [ { kind: pass } ]
`), "f", int64(5))
	if _, ok := err.(*interp.Raised); !ok {
		t.Fatalf("expected a raise for the unmatched subject, got %v", err)
	}
}

func TestDivisionByZeroRaises(t *testing.T) {
	_, err := interp.New().RunFunction(load(t, `
statements:
  - kind: func
    name: div
    params: [a, b]
    body:
      - kind: return
        value: { kind: bin, op: "/", left: { kind: ident, name: a }, right: { kind: ident, name: b } }
`), "div", int64(1), int64(0))
	raised, ok := err.(*interp.Raised)
	if !ok {
		t.Fatalf("expected *Raised, got %v", err)
	}
	if raised.Value != "division by zero" {
		t.Errorf("unexpected raise value: %v", raised.Value)
	}
}

func TestLambdaClosesOverScope(t *testing.T) {
	got := run(t, `
statements:
  - kind: func
    name: makeAdder
    params: [n]
    body:
      - kind: return
        value:
          kind: lambda
          params: [x]
          body:
            - kind: return
              value: { kind: bin, op: "+", left: { kind: ident, name: x }, right: { kind: ident, name: n } }
  - kind: func
    name: use
    body:
      - kind: assign
        target: add3
        value:
          kind: call
          function: { kind: ident, name: makeAdder }
          arguments: [ { kind: int, value: 3 } ]
      - kind: return
        value:
          kind: call
          function: { kind: ident, name: add3 }
          arguments: [ { kind: int, value: 4 } ]
`, "use")
	if got != int64(7) {
		t.Errorf("expected 7, got %v", got)
	}
}

func TestArityMismatch(t *testing.T) {
	_, err := interp.New().RunFunction(load(t, `
statements:
  - kind: func
    name: f
    params: [a, b]
    body: [ { kind: pass } ]
`), "f", int64(1))
	if err == nil {
		t.Fatal("expected an arity error")
	}
}

func TestUnknownFunction(t *testing.T) {
	_, err := interp.New().RunFunction(load(t, `statements: [ { kind: pass } ]`), "missing")
	if err == nil {
		t.Fatal("expected an error for an undefined function")
	}
}
