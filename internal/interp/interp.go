// Package interp is a small tree-walk evaluator for the statement and
// expression subset the rewriter operates on. The external materializer
// stays out of scope; this evaluator exists so the runtime semantics of
// rewritten trees can be exercised directly, without one.
package interp

import (
	"fmt"

	"github.com/funvibe/modgud/internal/ast"
)

// Raised carries a propagating raise value as a Go error.
type Raised struct {
	Value any
}

func (r *Raised) Error() string {
	return fmt.Sprintf("raised: %v", r.Value)
}

// Environment is a lexically scoped variable binding table.
type Environment struct {
	store map[string]any
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]any)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]any), outer: outer}
}

func (e *Environment) Get(name string) (any, bool) {
	if v, ok := e.store[name]; ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

func (e *Environment) Set(name string, value any) {
	e.store[name] = value
}

// Function is a user-defined callable bound to its defining scope.
type Function struct {
	Params []*ast.Identifier
	Body   []ast.Statement
	Env    *Environment
}

// control tells a block's caller how execution left the block.
type control int

const (
	ctlNone control = iota
	ctlReturn
)

// Interp evaluates programs.
type Interp struct{}

func New() *Interp {
	return &Interp{}
}

// RunFunction binds the program's declarations, then calls the named
// function with the given positional arguments.
func (it *Interp) RunFunction(program *ast.Program, name string, args ...any) (any, error) {
	env := NewEnvironment()
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			env.Set(fn.Name.Value, &Function{Params: fn.Params, Body: fn.Body, Env: env})
			continue
		}
		if _, _, err := it.execStmt(stmt, env); err != nil {
			return nil, err
		}
	}
	v, ok := env.Get(name)
	if !ok {
		return nil, fmt.Errorf("function %q is not defined", name)
	}
	fn, ok := v.(*Function)
	if !ok {
		return nil, fmt.Errorf("%q is not a function", name)
	}
	return it.call(fn, args)
}

// Call invokes an already-bound declaration directly.
func (it *Interp) Call(fn *ast.FunctionDeclaration, env *Environment, args ...any) (any, error) {
	if env == nil {
		env = NewEnvironment()
	}
	return it.call(&Function{Params: fn.Params, Body: fn.Body, Env: env}, args)
}

func (it *Interp) call(fn *Function, args []any) (any, error) {
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(fn.Params), len(args))
	}
	env := NewEnclosedEnvironment(fn.Env)
	for i, p := range fn.Params {
		env.Set(p.Value, args[i])
	}
	ctl, value, err := it.execBlock(fn.Body, env)
	if err != nil {
		return nil, err
	}
	if ctl == ctlReturn {
		return value, nil
	}
	// Falling off the end of a function yields the absent value.
	return nil, nil
}

func (it *Interp) execBlock(block []ast.Statement, env *Environment) (control, any, error) {
	for _, stmt := range block {
		ctl, value, err := it.execStmt(stmt, env)
		if err != nil || ctl != ctlNone {
			return ctl, value, err
		}
	}
	return ctlNone, nil, nil
}

func (it *Interp) execStmt(stmt ast.Statement, env *Environment) (control, any, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := it.eval(s.Value, env)
		return ctlNone, nil, err

	case *ast.AssignStatement:
		v, err := it.eval(s.Value, env)
		if err != nil {
			return ctlNone, nil, err
		}
		env.Set(s.Target.Value, v)
		return ctlNone, nil, nil

	case *ast.ConditionalStatement:
		test, err := it.eval(s.Test, env)
		if err != nil {
			return ctlNone, nil, err
		}
		if truthy(test) {
			return it.execBlock(s.Body, env)
		}
		return it.execBlock(s.Alternate, env)

	case *ast.TryStatement:
		return it.execTry(s, env)

	case *ast.MatchStatement:
		return it.execMatch(s, env)

	case *ast.WithStatement:
		// Resource acquisition is evaluated for effect; release is the
		// host's concern and has no observable behavior here.
		for _, r := range s.Resources {
			if _, err := it.eval(r, env); err != nil {
				return ctlNone, nil, err
			}
		}
		return it.execBlock(s.Body, env)

	case *ast.LoopStatement:
		for {
			if s.Test != nil {
				test, err := it.eval(s.Test, env)
				if err != nil {
					return ctlNone, nil, err
				}
				if !truthy(test) {
					return ctlNone, nil, nil
				}
			} else {
				return ctlNone, nil, fmt.Errorf("cannot execute loop without test")
			}
			ctl, value, err := it.execBlock(s.Body, env)
			if err != nil || ctl != ctlNone {
				return ctl, value, err
			}
		}

	case *ast.NoOpStatement:
		return ctlNone, nil, nil

	case *ast.ReturnStatement:
		var v any
		if s.Value != nil {
			var err error
			v, err = it.eval(s.Value, env)
			if err != nil {
				return ctlNone, nil, err
			}
		}
		return ctlReturn, v, nil

	case *ast.RaiseStatement:
		v, err := it.eval(s.Value, env)
		if err != nil {
			return ctlNone, nil, err
		}
		return ctlNone, nil, &Raised{Value: v}

	case *ast.FunctionDeclaration:
		env.Set(s.Name.Value, &Function{Params: s.Params, Body: s.Body, Env: env})
		return ctlNone, nil, nil
	}

	return ctlNone, nil, fmt.Errorf("cannot execute %T", stmt)
}

func (it *Interp) execTry(s *ast.TryStatement, env *Environment) (control, any, error) {
	runFinally := func(ctl control, value any, err error) (control, any, error) {
		if s.Finally == nil {
			return ctl, value, err
		}
		fctl, fvalue, ferr := it.execBlock(s.Finally, env)
		// A finally that itself returns or fails wins.
		if ferr != nil || fctl != ctlNone {
			return fctl, fvalue, ferr
		}
		return ctl, value, err
	}

	ctl, value, err := it.execBlock(s.Body, env)
	if raised, ok := err.(*Raised); ok {
		if len(s.Handlers) == 0 {
			return runFinally(ctlNone, nil, err)
		}
		h := s.Handlers[0]
		henv := env
		if h.ErrorName != nil {
			henv = NewEnclosedEnvironment(env)
			henv.Set(h.ErrorName.Value, raised.Value)
		}
		return runFinally(it.execBlock(h.Body, henv))
	}
	if err != nil || ctl != ctlNone {
		return runFinally(ctl, value, err)
	}
	if s.Else != nil {
		return runFinally(it.execBlock(s.Else, env))
	}
	return runFinally(ctlNone, nil, nil)
}

func (it *Interp) execMatch(s *ast.MatchStatement, env *Environment) (control, any, error) {
	subject, err := it.eval(s.Subject, env)
	if err != nil {
		return ctlNone, nil, err
	}
	for _, c := range s.Cases {
		matched, bindName, err := it.matchPattern(c.Pattern, subject, env)
		if err != nil {
			return ctlNone, nil, err
		}
		if !matched {
			continue
		}
		cenv := env
		if bindName != "" {
			cenv = NewEnclosedEnvironment(env)
			cenv.Set(bindName, subject)
		}
		return it.execBlock(c.Body, cenv)
	}
	return ctlNone, nil, &Raised{Value: fmt.Sprintf("no case matched %v", subject)}
}

// matchPattern supports literal patterns (structural equality), the
// wildcard "_" and identifier patterns, which always match and bind the
// subject.
func (it *Interp) matchPattern(pattern ast.Expression, subject any, env *Environment) (bool, string, error) {
	switch p := pattern.(type) {
	case *ast.Identifier:
		if p.Value == "_" {
			return true, "", nil
		}
		return true, p.Value, nil
	case *ast.IntegerLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NilLiteral:
		v, err := it.eval(pattern, env)
		if err != nil {
			return false, "", err
		}
		return equal(subject, v), "", nil
	}
	return false, "", fmt.Errorf("unsupported pattern %T", pattern)
}
