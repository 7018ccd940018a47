// Package result provides an ok/err value wrapper for computations that
// either produce a value or fail with an error.
package result

// Result holds either a value (Ok) or an error (Fail).
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps a failure.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the computation succeeded.
func (r Result[T]) IsOk() bool { return r.err == nil }

// IsFail reports whether the computation failed.
func (r Result[T]) IsFail() bool { return r.err != nil }

// Get returns the value and the error, exactly one of which is set.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// Err returns the error, or nil on success.
func (r Result[T]) Err() error { return r.err }

// Unwrap extracts the value. It panics on Fail; use UnwrapOr or Get
// when failure is expected.
func (r Result[T]) Unwrap() T {
	if r.err != nil {
		panic("result: Unwrap on Fail: " + r.err.Error())
	}
	return r.value
}

// UnwrapOr extracts the value or returns def on failure.
func (r Result[T]) UnwrapOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Map applies f to a successful value, propagating failure.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return Ok(f(r.value))
}

// Then chains a computation that itself may fail.
func Then[T, U any](r Result[T], f func(T) (U, error)) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	v, err := f(r.value)
	if err != nil {
		return Fail[U](err)
	}
	return Ok(v)
}
