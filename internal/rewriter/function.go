package rewriter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/config"
	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/token"
)

// Rewritten is the result of a successful function rewrite.
type Rewritten struct {
	// Function is the rewritten declaration. Its decorator markers are
	// stripped so re-materializing the body cannot re-apply the
	// transformation.
	Function *ast.FunctionDeclaration

	// Tag is the synthetic name the external materializer uses for
	// error and trace attribution, e.g. "<divide-implicit>".
	Tag string

	// TraceID identifies this rewrite invocation in logs.
	TraceID string
}

// Option configures a rewrite invocation.
type Option func(*options)

type options struct {
	resultName string
}

// WithResultSlot overrides the reserved result identifier.
func WithResultSlot(name string) Option {
	return func(o *options) { o.resultName = name }
}

// RewriteFunction locates the declaration named targetName inside the
// program and rewrites its body to single-materialization-point form:
//
//  1. Verify no explicit return at top level.
//  2. Rewrite the tail of the body to assign into the result slot.
//  3. Append the single terminal `return <slot>` statement.
//
// The input program is left untouched; the returned declaration is a
// fresh node sharing only unrewritten subtrees with the input.
func RewriteFunction(program *ast.Program, targetName string, opts ...Option) (*Rewritten, error) {
	o := options{resultName: config.ResultSlotName}
	for _, opt := range opts {
		opt(&o)
	}

	fn := findFunction(program, targetName)
	if fn == nil {
		return nil, diagnostics.NewError(diagnostics.ErrT004, token.Token{},
			fmt.Sprintf("function '%s' not found in tree", targetName))
	}

	if tok := ScanExplicitReturn(fn.Body); tok != nil {
		return nil, diagnostics.NewError(diagnostics.ErrT001, *tok,
			fmt.Sprintf("Explicit return is disallowed in function '%s' with implicit return enabled.", targetName))
	}

	r := NewTailRewriter(o.resultName)

	// A leading documentation string is metadata, not executable code:
	// keep it at position 0 and rewrite only what follows.
	doc, body := splitDocString(fn.Body)

	newBody, err := r.RewriteBlock(body)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		newBody = append([]ast.Statement{doc}, newBody...)
	}

	newBody = append(newBody, &ast.ReturnStatement{
		Token: token.Token{Type: token.RETURN, Lexeme: "return"},
		Value: &ast.Identifier{Token: token.Token{Type: token.IDENT, Lexeme: o.resultName}, Value: o.resultName},
	})

	return &Rewritten{
		Function: &ast.FunctionDeclaration{
			Token:      fn.Token,
			Name:       fn.Name,
			Params:     fn.Params,
			Body:       newBody,
			Decorators: nil,
		},
		Tag:     "<" + targetName + config.DiagnosticTagSuffix + ">",
		TraceID: uuid.NewString(),
	}, nil
}

// findFunction returns the first top-level declaration with the given
// name, or nil.
func findFunction(program *ast.Program, name string) *ast.FunctionDeclaration {
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok && fn.Name != nil && fn.Name.Value == name {
			return fn
		}
	}
	return nil
}

// splitDocString separates a leading documentation literal from the
// executable body. Returns (nil, body) when there is none.
func splitDocString(body []ast.Statement) (ast.Statement, []ast.Statement) {
	if len(body) == 0 {
		return nil, body
	}
	es, ok := body[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, body
	}
	if _, ok := es.Value.(*ast.StringLiteral); !ok {
		return nil, body
	}
	return es, body[1:]
}
