package interp

import (
	"fmt"

	"github.com/funvibe/modgud/internal/ast"
)

func (it *Interp) eval(e ast.Expression, env *Environment) (any, error) {
	switch x := e.(type) {
	case *ast.Identifier:
		v, ok := env.Get(x.Value)
		if !ok {
			return nil, fmt.Errorf("identifier not found: %s", x.Value)
		}
		return v, nil

	case *ast.IntegerLiteral:
		return x.Value, nil

	case *ast.StringLiteral:
		return x.Value, nil

	case *ast.BooleanLiteral:
		return x.Value, nil

	case *ast.NilLiteral:
		return nil, nil

	case *ast.BinaryExpression:
		return it.evalBinary(x, env)

	case *ast.CallExpression:
		return it.evalCall(x, env)

	case *ast.LambdaLiteral:
		return &Function{Params: x.Params, Body: x.Body, Env: env}, nil
	}

	return nil, fmt.Errorf("cannot evaluate %T", e)
}

func (it *Interp) evalCall(x *ast.CallExpression, env *Environment) (any, error) {
	callee, err := it.eval(x.Function, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*Function)
	if !ok {
		return nil, fmt.Errorf("not a function: %T", callee)
	}
	args := make([]any, 0, len(x.Arguments))
	for _, a := range x.Arguments {
		v, err := it.eval(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return it.call(fn, args)
}

func (it *Interp) evalBinary(x *ast.BinaryExpression, env *Environment) (any, error) {
	// Short-circuit operators evaluate the right side lazily.
	if x.Operator == "&&" || x.Operator == "||" {
		left, err := it.eval(x.Left, env)
		if err != nil {
			return nil, err
		}
		if x.Operator == "&&" && !truthy(left) {
			return false, nil
		}
		if x.Operator == "||" && truthy(left) {
			return true, nil
		}
		right, err := it.eval(x.Right, env)
		if err != nil {
			return nil, err
		}
		return truthy(right), nil
	}

	left, err := it.eval(x.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(x.Right, env)
	if err != nil {
		return nil, err
	}

	switch x.Operator {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	}

	if ls, lok := left.(string); lok {
		rs, rok := right.(string)
		if !rok {
			return nil, fmt.Errorf("type mismatch: %T %s %T", left, x.Operator, right)
		}
		switch x.Operator {
		case "+":
			return ls + rs, nil
		case "<":
			return ls < rs, nil
		case ">":
			return ls > rs, nil
		case "<=":
			return ls <= rs, nil
		case ">=":
			return ls >= rs, nil
		}
		return nil, fmt.Errorf("unknown string operator: %s", x.Operator)
	}

	li, lok := asInt(left)
	ri, rok := asInt(right)
	if !lok || !rok {
		return nil, fmt.Errorf("type mismatch: %T %s %T", left, x.Operator, right)
	}
	switch x.Operator {
	case "+":
		return li + ri, nil
	case "-":
		return li - ri, nil
	case "*":
		return li * ri, nil
	case "/":
		if ri == 0 {
			return nil, &Raised{Value: "division by zero"}
		}
		return li / ri, nil
	case "%":
		if ri == 0 {
			return nil, &Raised{Value: "division by zero"}
		}
		return li % ri, nil
	case "<":
		return li < ri, nil
	case ">":
		return li > ri, nil
	case "<=":
		return li <= ri, nil
	case ">=":
		return li >= ri, nil
	}
	return nil, fmt.Errorf("unknown operator: %s", x.Operator)
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	}
	return true
}

func equal(a, b any) bool {
	if ai, ok := asInt(a); ok {
		if bi, ok := asInt(b); ok {
			return ai == bi
		}
		return false
	}
	return a == b
}
