package ast

import (
	"github.com/funvibe/modgud/internal/token"
)

// Node is the base interface for all tree nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every tree handed to the rewriter.
// Statements is an ordered block; order is execution order.
type Program struct {
	File       string // Source file path, when known
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// ExpressionStatement represents a standalone computed value.
// In tail position its value becomes the block's result.
type ExpressionStatement struct {
	Token token.Token
	Value Expression
}

func (es *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// AssignStatement represents an assignment to a single identifier.
// The rewriter synthesizes these to store into the result slot.
type AssignStatement struct {
	Token  token.Token
	Target *Identifier
	Value  Expression
}

func (as *AssignStatement) Accept(v Visitor)     { v.VisitAssignStatement(as) }
func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}

// ConditionalStatement represents a two-way branch.
// Alternate is nil when no else block was written.
type ConditionalStatement struct {
	Token     token.Token // The 'if' token
	Test      Expression
	Body      []Statement
	Alternate []Statement
}

func (cs *ConditionalStatement) Accept(v Visitor)     { v.VisitConditionalStatement(cs) }
func (cs *ConditionalStatement) statementNode()       {}
func (cs *ConditionalStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *ConditionalStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}

// Handler is one error-recovery arm of a TryStatement.
type Handler struct {
	Token     token.Token // The 'catch' token
	ErrorName *Identifier // Optional binding for the caught error
	Body      []Statement
}

func (h *Handler) GetToken() token.Token {
	if h == nil {
		return token.Token{}
	}
	return h.Token
}

// TryStatement represents an exception-guarded block.
// Else runs only on non-exceptional completion; Finally runs
// unconditionally after the result is already determined.
type TryStatement struct {
	Token    token.Token // The 'try' token
	Body     []Statement
	Handlers []*Handler
	Else     []Statement
	Finally  []Statement
}

func (ts *TryStatement) Accept(v Visitor)     { v.VisitTryStatement(ts) }
func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *TryStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// MatchCase is one arm of a MatchStatement.
type MatchCase struct {
	Token   token.Token
	Pattern Expression // Matched structurally; Identifier "_" is the wildcard
	Body    []Statement
}

func (mc *MatchCase) GetToken() token.Token {
	if mc == nil {
		return token.Token{}
	}
	return mc.Token
}

// MatchStatement represents a pattern match over a subject value.
type MatchStatement struct {
	Token   token.Token // The 'match' token
	Subject Expression
	Cases   []*MatchCase
}

func (ms *MatchStatement) Accept(v Visitor)     { v.VisitMatchStatement(ms) }
func (ms *MatchStatement) statementNode()       {}
func (ms *MatchStatement) TokenLiteral() string { return ms.Token.Lexeme }
func (ms *MatchStatement) GetToken() token.Token {
	if ms == nil {
		return token.Token{}
	}
	return ms.Token
}

// WithStatement represents a block tied to guaranteed-release resource
// acquisition. Release semantics belong to the host's block-exit
// machinery, not to the rewriter.
type WithStatement struct {
	Token     token.Token // The 'with' token
	Resources []Expression
	Body      []Statement
}

func (ws *WithStatement) Accept(v Visitor)     { v.VisitWithStatement(ws) }
func (ws *WithStatement) statementNode()       {}
func (ws *WithStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WithStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// LoopStatement represents an iteration construct. The token type
// distinguishes for-style from while-style loops; the rewriter rejects
// either in tail position.
type LoopStatement struct {
	Token token.Token // FOR or WHILE
	Test  Expression
	Body  []Statement
}

func (ls *LoopStatement) Accept(v Visitor)     { v.VisitLoopStatement(ls) }
func (ls *LoopStatement) statementNode()       {}
func (ls *LoopStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LoopStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}

// NoOpStatement is an explicit "do nothing" marker.
type NoOpStatement struct {
	Token token.Token
}

func (ns *NoOpStatement) Accept(v Visitor)     { v.VisitNoOpStatement(ns) }
func (ns *NoOpStatement) statementNode()       {}
func (ns *NoOpStatement) TokenLiteral() string { return ns.Token.Lexeme }
func (ns *NoOpStatement) GetToken() token.Token {
	if ns == nil {
		return token.Token{}
	}
	return ns.Token
}

// ReturnStatement represents explicit early termination with a value.
// Disallowed at the top level of a function once rewriting is requested;
// the rewriter itself appends exactly one as the terminal yield.
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression
}

func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// RaiseStatement represents explicit failure propagation.
type RaiseStatement struct {
	Token token.Token // The 'raise' token
	Value Expression
}

func (rs *RaiseStatement) Accept(v Visitor)     { v.VisitRaiseStatement(rs) }
func (rs *RaiseStatement) statementNode()       {}
func (rs *RaiseStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *RaiseStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// FunctionDeclaration represents a named callable definition.
// Its body is a rewriting boundary: nested declarations keep ordinary
// early-return semantics and are never descended into.
type FunctionDeclaration struct {
	Token      token.Token // The 'func' token
	Name       *Identifier
	Params     []*Identifier
	Body       []Statement
	Decorators []Expression // Attached behavior-modifier markers
}

func (fd *FunctionDeclaration) Accept(v Visitor)     { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}
