// Package pipe provides functional-style pipeline composition with
// partial application: a value flows left to right through a chain of
// stages, each stage a function with its remaining arguments pre-bound.
//
//	double := pipe.Stage(func(args ...any) any { return args[0].(int) * 2 })
//	addN := func(n int) pipe.Fn {
//		return pipe.Stage(func(args ...any) any { return args[0].(int) + n })
//	}
//	out := pipe.From(5).Then(addN(3)).Then(double).Value() // 16
package pipe

// Fn is one pipeline stage. The piped value arrives as the first
// argument, followed by any bound arguments.
type Fn func(args ...any) any

// Stage adapts a plain variadic function into a pipeline stage.
func Stage(f func(args ...any) any) Fn { return f }

// Bind pre-binds trailing arguments to a stage, so the piped value is
// prepended at call time.
func (f Fn) Bind(bound ...any) Fn {
	return func(args ...any) any {
		return f(append(args, bound...)...)
	}
}

// Chain is a value mid-flight through a pipeline.
type Chain struct {
	value any
	err   error
}

// From starts a pipeline with the given value.
func From(v any) *Chain {
	return &Chain{value: v}
}

// Then applies the next stage. Once a stage has failed via ThenTry, the
// remaining stages are skipped.
func (c *Chain) Then(f Fn) *Chain {
	if c.err != nil {
		return c
	}
	return &Chain{value: f(c.value)}
}

// ThenTry applies a fallible stage, capturing its error and
// short-circuiting the rest of the pipeline.
func (c *Chain) ThenTry(f func(v any) (any, error)) *Chain {
	if c.err != nil {
		return c
	}
	v, err := f(c.value)
	if err != nil {
		return &Chain{err: err}
	}
	return &Chain{value: v}
}

// Value returns the piped value (nil after a failed stage).
func (c *Chain) Value() any { return c.value }

// Get returns the piped value and any captured error.
func (c *Chain) Get() (any, error) { return c.value, c.err }
