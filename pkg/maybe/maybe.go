// Package maybe provides an optional value wrapper: a value that may or
// may not exist, with safe operations for working with the absent case.
package maybe

// Maybe holds either a value (Some) or nothing (Zero).
type Maybe[T any] struct {
	value T
	some  bool
}

// Some wraps a present value.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, some: true}
}

// Zero is the absent value.
func Zero[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool { return m.some }

// IsZero reports whether no value is present.
func (m Maybe[T]) IsZero() bool { return !m.some }

// Get returns the value and whether it was present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.some }

// Unwrap extracts the value. It panics on Zero; use UnwrapOr or Get
// when absence is expected.
func (m Maybe[T]) Unwrap() T {
	if !m.some {
		panic("maybe: Unwrap on Zero")
	}
	return m.value
}

// UnwrapOr extracts the value or returns def when absent.
func (m Maybe[T]) UnwrapOr(def T) T {
	if !m.some {
		return def
	}
	return m.value
}

// Map applies f to a present value, propagating Zero.
func Map[T, U any](m Maybe[T], f func(T) U) Maybe[U] {
	if !m.some {
		return Zero[U]()
	}
	return Some(f(m.value))
}

// Then chains a computation that itself may produce nothing.
func Then[T, U any](m Maybe[T], f func(T) Maybe[U]) Maybe[U] {
	if !m.some {
		return Zero[U]()
	}
	return f(m.value)
}
