// Package diagnostics defines the error taxonomy shared by the rewriter
// and the guard runtime. Every error carries a stable code and, when the
// offending node had one, a source position.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/modgud/internal/token"
)

// ErrorCode is a stable, grep-able identifier for a diagnostic kind.
type ErrorCode string

const (
	// Transform errors (T-series).
	ErrT001 ErrorCode = "T001" // explicit return disallowed at top level
	ErrT002 ErrorCode = "T002" // block cannot guarantee an implicit return
	ErrT003 ErrorCode = "T003" // unsupported construct in tail position
	ErrT004 ErrorCode = "T004" // target function not found

	// Guard errors (G-series).
	ErrG001 ErrorCode = "G001" // guard clause failed

	// Container errors (C-series).
	ErrC001 ErrorCode = "C001" // service not found

	// Registry errors (R-series).
	ErrR001 ErrorCode = "R001" // duplicate guard registration
)

// DiagnosticError is a located, coded error. Line/Column are zero when
// the offending node carried no position.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Line    int
	Column  int
}

func (e *DiagnosticError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewError builds a DiagnosticError positioned at the given token.
func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: message,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// CodeOf extracts the error code, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	if de, ok := err.(*DiagnosticError); ok {
		return de.Code
	}
	return ""
}
