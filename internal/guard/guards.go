package guard

import (
	"fmt"
	"reflect"
	"regexp"
)

// Prebuilt guard factories for typical validation scenarios. Each guard
// checks one call parameter, looked up by keyword name with a
// positional fallback.

// extractParam pulls a parameter value from kwargs by name, falling
// back to the positional argument at position. Returns nil when absent.
func extractParam(paramName string, position int, args []any, kwargs map[string]any) any {
	if v, ok := kwargs[paramName]; ok {
		return v
	}
	if position >= 0 && position < len(args) {
		return args[position]
	}
	return nil
}

// asFloat widens any numeric value to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// lengthOf returns the element count of strings, slices, arrays and
// maps.
func lengthOf(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// NotNil ensures the parameter is present and non-nil.
func NotNil(paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		if extractParam(paramName, position, args, kwargs) == nil {
			return Fail(fmt.Sprintf("%s cannot be nil", paramName))
		}
		return Pass()
	}
}

// NotEmpty ensures a string, slice or map parameter has at least one
// element.
func NotEmpty(paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		n, ok := lengthOf(v)
		if !ok || n == 0 {
			return Fail(fmt.Sprintf("%s cannot be empty", paramName))
		}
		return Pass()
	}
}

// Positive ensures a numeric parameter is strictly greater than zero.
func Positive(paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		n, ok := asFloat(v)
		if !ok || n <= 0 {
			return Fail(fmt.Sprintf("%s must be positive, got %v", paramName, v))
		}
		return Pass()
	}
}

// NonNegative ensures a numeric parameter is zero or greater.
func NonNegative(paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		n, ok := asFloat(v)
		if !ok || n < 0 {
			return Fail(fmt.Sprintf("%s must be non-negative, got %v", paramName, v))
		}
		return Pass()
	}
}

// InRange ensures a numeric parameter lies within [min, max].
func InRange(min, max float64, paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		n, ok := asFloat(v)
		if !ok || n < min || n > max {
			return Fail(fmt.Sprintf("%s must be between %v and %v, got %v", paramName, min, max, v))
		}
		return Pass()
	}
}

// MinLength ensures the parameter has at least n elements.
func MinLength(n int, paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		l, ok := lengthOf(v)
		if !ok || l < n {
			return Fail(fmt.Sprintf("%s must have at least %d characters", paramName, n))
		}
		return Pass()
	}
}

// MaxLength ensures the parameter has at most n elements.
func MaxLength(n int, paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		l, ok := lengthOf(v)
		if !ok || l > n {
			return Fail(fmt.Sprintf("%s must have at most %d characters", paramName, n))
		}
		return Pass()
	}
}

// Matches ensures a string parameter matches the regular expression.
// An invalid pattern produces a guard that always fails with the
// compile error, surfacing the mistake at the call site.
func Matches(pattern string, paramName string, position int) Func {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return func([]any, map[string]any) Verdict {
			return Fail(fmt.Sprintf("invalid pattern for %s: %v", paramName, err))
		}
	}
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		s, ok := v.(string)
		if !ok || !re.MatchString(s) {
			return Fail(fmt.Sprintf("%s must match pattern %s", paramName, pattern))
		}
		return Pass()
	}
}

// OneOf ensures a string parameter is one of the allowed values.
func OneOf(allowed []string, paramName string, position int) Func {
	return func(args []any, kwargs map[string]any) Verdict {
		v := extractParam(paramName, position, args, kwargs)
		if s, ok := v.(string); ok {
			for _, a := range allowed {
				if s == a {
					return Pass()
				}
			}
		}
		return Fail(fmt.Sprintf("%s must be one of %v, got %v", paramName, allowed, v))
	}
}
