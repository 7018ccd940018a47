// Package treedoc decodes YAML-encoded statement trees. The library
// never parses source text; an external producer serializes a parsed
// function body as a tree document and the CLI consumes it here.
//
// A document looks like:
//
//	file: classify.tree
//	statements:
//	  - kind: func
//	    name: classify
//	    params: [x]
//	    body:
//	      - kind: if
//	        test: { kind: bin, op: ">", left: { kind: ident, name: x }, right: { kind: int, value: 0 } }
//	        body:
//	          - kind: expr
//	            value: { kind: str, value: pos }
//	        else:
//	          - kind: expr
//	            value: { kind: str, value: neg }
package treedoc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/token"
)

type document struct {
	File       string    `yaml:"file,omitempty"`
	Statements []stmtDoc `yaml:"statements"`
}

type stmtDoc struct {
	// Kind is the statement discriminator: expr, assign, if, try,
	// match, with, for, while, pass, return, raise, func.
	Kind   string `yaml:"kind"`
	Line   int    `yaml:"line,omitempty"`
	Column int    `yaml:"column,omitempty"`

	Value  *exprDoc `yaml:"value,omitempty"`  // expr, assign, return, raise
	Target string   `yaml:"target,omitempty"` // assign

	Test *exprDoc  `yaml:"test,omitempty"` // if, while
	Body []stmtDoc `yaml:"body,omitempty"`
	Else []stmtDoc `yaml:"else,omitempty"` // if alternate, try else

	Handlers []handlerDoc `yaml:"handlers,omitempty"` // try
	Finally  []stmtDoc    `yaml:"finally,omitempty"`  // try

	Subject *exprDoc  `yaml:"subject,omitempty"` // match
	Cases   []caseDoc `yaml:"cases,omitempty"`   // match

	Resources []exprDoc `yaml:"resources,omitempty"` // with

	Name       string    `yaml:"name,omitempty"`       // func
	Params     []string  `yaml:"params,omitempty"`     // func
	Decorators []exprDoc `yaml:"decorators,omitempty"` // func
}

type handlerDoc struct {
	ErrorName string    `yaml:"error_name,omitempty"`
	Body      []stmtDoc `yaml:"body"`
}

type caseDoc struct {
	Pattern *exprDoc  `yaml:"pattern"`
	Body    []stmtDoc `yaml:"body"`
}

type exprDoc struct {
	// Kind is the expression discriminator: ident, int, str, bool,
	// nil, bin, call, lambda.
	Kind string `yaml:"kind"`

	Name  string `yaml:"name,omitempty"`  // ident
	Value any    `yaml:"value,omitempty"` // int, str, bool

	Op    string   `yaml:"op,omitempty"`    // bin
	Left  *exprDoc `yaml:"left,omitempty"`  // bin
	Right *exprDoc `yaml:"right,omitempty"` // bin

	Function  *exprDoc  `yaml:"function,omitempty"`  // call
	Arguments []exprDoc `yaml:"arguments,omitempty"` // call

	Params []string  `yaml:"params,omitempty"` // lambda
	Body   []stmtDoc `yaml:"body,omitempty"`   // lambda
}

// Load reads and decodes a tree document file.
func Load(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree document: %w", err)
	}
	return Decode(data)
}

// Decode builds a Program from YAML bytes.
func Decode(data []byte) (*ast.Program, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tree document: %w", err)
	}
	stmts, err := decodeBlock(doc.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Program{File: doc.File, Statements: stmts}, nil
}

func decodeBlock(docs []stmtDoc) ([]ast.Statement, error) {
	if docs == nil {
		return nil, nil
	}
	out := make([]ast.Statement, 0, len(docs))
	for i := range docs {
		s, err := decodeStmt(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *stmtDoc) token(t token.TokenType, lexeme string) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Line: d.Line, Column: d.Column}
}

func decodeStmt(d *stmtDoc) (ast.Statement, error) {
	switch d.Kind {
	case "expr":
		v, err := decodeExprReq(d.Value, "expr.value")
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Token: d.token(token.IDENT, ""), Value: v}, nil

	case "assign":
		if d.Target == "" {
			return nil, fmt.Errorf("assign statement requires target")
		}
		v, err := decodeExprReq(d.Value, "assign.value")
		if err != nil {
			return nil, err
		}
		return &ast.AssignStatement{
			Token:  d.token(token.ASSIGN, "="),
			Target: ident(d.Target),
			Value:  v,
		}, nil

	case "if":
		test, err := decodeExprReq(d.Test, "if.test")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(d.Body)
		if err != nil {
			return nil, err
		}
		alt, err := decodeBlock(d.Else)
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalStatement{
			Token:     d.token(token.IF, "if"),
			Test:      test,
			Body:      body,
			Alternate: alt,
		}, nil

	case "try":
		body, err := decodeBlock(d.Body)
		if err != nil {
			return nil, err
		}
		handlers := make([]*ast.Handler, 0, len(d.Handlers))
		for i := range d.Handlers {
			hb, err := decodeBlock(d.Handlers[i].Body)
			if err != nil {
				return nil, err
			}
			var errName *ast.Identifier
			if d.Handlers[i].ErrorName != "" {
				errName = ident(d.Handlers[i].ErrorName)
			}
			handlers = append(handlers, &ast.Handler{
				Token:     token.Token{Type: token.TRY, Lexeme: "catch"},
				ErrorName: errName,
				Body:      hb,
			})
		}
		elseBlock, err := decodeBlock(d.Else)
		if err != nil {
			return nil, err
		}
		finally, err := decodeBlock(d.Finally)
		if err != nil {
			return nil, err
		}
		return &ast.TryStatement{
			Token:    d.token(token.TRY, "try"),
			Body:     body,
			Handlers: handlers,
			Else:     elseBlock,
			Finally:  finally,
		}, nil

	case "match":
		subject, err := decodeExprReq(d.Subject, "match.subject")
		if err != nil {
			return nil, err
		}
		cases := make([]*ast.MatchCase, 0, len(d.Cases))
		for i := range d.Cases {
			pattern, err := decodeExprReq(d.Cases[i].Pattern, "case.pattern")
			if err != nil {
				return nil, err
			}
			cb, err := decodeBlock(d.Cases[i].Body)
			if err != nil {
				return nil, err
			}
			cases = append(cases, &ast.MatchCase{
				Token:   token.Token{Type: token.MATCH, Lexeme: "case"},
				Pattern: pattern,
				Body:    cb,
			})
		}
		return &ast.MatchStatement{
			Token:   d.token(token.MATCH, "match"),
			Subject: subject,
			Cases:   cases,
		}, nil

	case "with":
		resources, err := decodeExprs(d.Resources)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WithStatement{
			Token:     d.token(token.WITH, "with"),
			Resources: resources,
			Body:      body,
		}, nil

	case "for", "while":
		var test ast.Expression
		if d.Test != nil {
			var err error
			test, err = decodeExpr(d.Test)
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeBlock(d.Body)
		if err != nil {
			return nil, err
		}
		tt := token.FOR
		if d.Kind == "while" {
			tt = token.WHILE
		}
		return &ast.LoopStatement{Token: d.token(tt, d.Kind), Test: test, Body: body}, nil

	case "pass":
		return &ast.NoOpStatement{Token: d.token(token.PASS, "pass")}, nil

	case "return":
		var v ast.Expression
		if d.Value != nil {
			var err error
			v, err = decodeExpr(d.Value)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ReturnStatement{Token: d.token(token.RETURN, "return"), Value: v}, nil

	case "raise":
		v, err := decodeExprReq(d.Value, "raise.value")
		if err != nil {
			return nil, err
		}
		return &ast.RaiseStatement{Token: d.token(token.RAISE, "raise"), Value: v}, nil

	case "func":
		if d.Name == "" {
			return nil, fmt.Errorf("func statement requires name")
		}
		body, err := decodeBlock(d.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeExprs(d.Decorators)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDeclaration{
			Token:      d.token(token.FUNC, "func"),
			Name:       ident(d.Name),
			Params:     idents(d.Params),
			Body:       body,
			Decorators: decorators,
		}, nil
	}

	return nil, fmt.Errorf("unknown statement kind %q", d.Kind)
}

func decodeExprs(docs []exprDoc) ([]ast.Expression, error) {
	if docs == nil {
		return nil, nil
	}
	out := make([]ast.Expression, 0, len(docs))
	for i := range docs {
		e, err := decodeExpr(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeExprReq(d *exprDoc, field string) (ast.Expression, error) {
	if d == nil {
		return nil, fmt.Errorf("missing %s", field)
	}
	return decodeExpr(d)
}

func decodeExpr(d *exprDoc) (ast.Expression, error) {
	switch d.Kind {
	case "ident":
		if d.Name == "" {
			return nil, fmt.Errorf("ident requires name")
		}
		return ident(d.Name), nil

	case "int":
		switch v := d.Value.(type) {
		case int:
			return &ast.IntegerLiteral{Token: token.Token{Type: token.INT, Lexeme: fmt.Sprint(v)}, Value: int64(v)}, nil
		case int64:
			return &ast.IntegerLiteral{Token: token.Token{Type: token.INT, Lexeme: fmt.Sprint(v)}, Value: v}, nil
		}
		return nil, fmt.Errorf("int requires integer value, got %T", d.Value)

	case "str":
		s, ok := d.Value.(string)
		if !ok {
			return nil, fmt.Errorf("str requires string value, got %T", d.Value)
		}
		return &ast.StringLiteral{Token: token.Token{Type: token.STRING, Lexeme: s}, Value: s}, nil

	case "bool":
		b, ok := d.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("bool requires boolean value, got %T", d.Value)
		}
		tt := token.FALSE
		if b {
			tt = token.TRUE
		}
		return &ast.BooleanLiteral{Token: token.Token{Type: tt, Lexeme: fmt.Sprint(b)}, Value: b}, nil

	case "nil":
		return &ast.NilLiteral{Token: token.Token{Type: token.NIL, Lexeme: "nil"}}, nil

	case "bin":
		if d.Op == "" {
			return nil, fmt.Errorf("bin requires op")
		}
		left, err := decodeExprReq(d.Left, "bin.left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExprReq(d.Right, "bin.right")
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{
			Token:    token.Token{Type: token.IDENT, Lexeme: d.Op},
			Left:     left,
			Operator: d.Op,
			Right:    right,
		}, nil

	case "call":
		fn, err := decodeExprReq(d.Function, "call.function")
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(d.Arguments)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Token: token.Token{Type: token.IDENT, Lexeme: "("}, Function: fn, Arguments: args}, nil

	case "lambda":
		body, err := decodeBlock(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LambdaLiteral{
			Token:  token.Token{Type: token.LAMBDA, Lexeme: "lambda"},
			Params: idents(d.Params),
			Body:   body,
		}, nil
	}

	return nil, fmt.Errorf("unknown expression kind %q", d.Kind)
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: token.Token{Type: token.IDENT, Lexeme: name}, Value: name}
}

func idents(names []string) []*ast.Identifier {
	if names == nil {
		return nil
	}
	out := make([]*ast.Identifier, 0, len(names))
	for _, n := range names {
		out = append(out, ident(n))
	}
	return out
}
