// Package guard implements precondition checks run against call
// arguments before a wrapped callable executes: sequential short-circuit
// evaluation, configurable failure routing, and a registry of reusable
// guard factories.
package guard

import (
	"log/slog"

	"github.com/funvibe/modgud/internal/config"
	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/token"
	"github.com/funvibe/modgud/pkg/maybe"
)

// Verdict is the outcome of one guard: pass, or fail with a message.
type Verdict struct {
	ok      bool
	message string
}

// Pass is the success marker.
func Pass() Verdict { return Verdict{ok: true} }

// Fail rejects with the given message. An empty message falls back to
// the default guard message during evaluation.
func Fail(message string) Verdict { return Verdict{message: message} }

// Func is a single guard predicate evaluated against call arguments.
type Func func(args []any, kwargs map[string]any) Verdict

// Check evaluates guards strictly in order against the call arguments.
// Evaluation stops at the first failure and its message is returned;
// guards after it are never invoked. Zero means all guards passed.
func Check(guards []Func, args []any, kwargs map[string]any) maybe.Maybe[string] {
	for _, g := range guards {
		v := g(args, kwargs)
		if v.ok {
			continue
		}
		msg := v.message
		if msg == "" {
			msg = config.DefaultGuardMessage
		}
		return maybe.Some(msg)
	}
	return maybe.Zero[string]()
}

// ErrorPolicy routes a guard failure into a signalled error.
type ErrorPolicy func(message string) error

// HandlerPolicy routes a guard failure into a substituted value computed
// from the message and the original call arguments.
type HandlerPolicy func(message string, args []any, kwargs map[string]any) any

// HandleFailure routes a guard failure per the configured policy:
//
//   - ErrorPolicy: the constructed error is returned for signalling.
//   - HandlerPolicy: invoked with (message, args, kwargs); its value
//     becomes the call's result.
//   - nil: the default GuardClauseFailure error is signalled.
//   - anything else: the policy value itself becomes the call's result.
//
// When logger is non-nil the failure is logged before routing,
// independent of which branch is taken.
func HandleFailure(message string, policy any, funcName string, args []any, kwargs map[string]any, logger *slog.Logger) (any, error) {
	if logger != nil {
		logger.Info("guard clause failed", "function", funcName, "message", message)
	}

	switch p := policy.(type) {
	case nil:
		return nil, diagnostics.NewError(diagnostics.ErrG001, token.Token{},
			"Guard clause failed in "+funcName+": "+message)
	case ErrorPolicy:
		return nil, p(message)
	case HandlerPolicy:
		return p(message, args, kwargs), nil
	default:
		return policy, nil
	}
}

// Outcome is what the wrapping combinator receives back.
type Outcome struct {
	Passed bool
	Value  any
	Err    error
}

// Evaluate is the combinator-facing entry point: run the guards and, on
// first failure, route it. On success Passed is true and the caller
// proceeds to invoke the wrapped callable.
func Evaluate(guards []Func, args []any, kwargs map[string]any, policy any, funcName string, logger *slog.Logger) Outcome {
	msg, failed := Check(guards, args, kwargs).Get()
	if !failed {
		return Outcome{Passed: true}
	}
	value, err := HandleFailure(msg, policy, funcName, args, kwargs, logger)
	return Outcome{Value: value, Err: err}
}

// Wrap builds a guarded callable: guards run first and short-circuit to
// the failure policy; only when all pass does fn execute.
func Wrap(fn func(args []any, kwargs map[string]any) (any, error), guards []Func, policy any, funcName string, logger *slog.Logger) func(args []any, kwargs map[string]any) (any, error) {
	return func(args []any, kwargs map[string]any) (any, error) {
		out := Evaluate(guards, args, kwargs, policy, funcName, logger)
		if !out.Passed {
			return out.Value, out.Err
		}
		return fn(args, kwargs)
	}
}
