package diagnostics

import (
	"fmt"

	"github.com/funvibe/beacontau/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character or malformed literal

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // expected token
	ErrP004 ErrorCode = "P004" // placeholder out of range
	ErrP005 ErrorCode = "P005" // expression too deeply nested
)

// DiagnosticError is a positioned error produced while lexing or parsing an
// expression.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func NewErrorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// Join folds a list of diagnostics into a single error, or nil when empty.
func Join(errs []*DiagnosticError) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &ErrorList{Errors: errs}
}

type ErrorList struct {
	Errors []*DiagnosticError
}

func (l *ErrorList) Error() string {
	msg := l.Errors[0].Error()
	return fmt.Sprintf("%s (and %d more errors)", msg, len(l.Errors)-1)
}

func (l *ErrorList) Unwrap() []error {
	out := make([]error, len(l.Errors))
	for i, e := range l.Errors {
		out[i] = e
	}
	return out
}
