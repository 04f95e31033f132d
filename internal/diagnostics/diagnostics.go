package diagnostics

import (
	"fmt"

	"github.com/pystatic/pystatic/internal/token"
)

// Error codes grouped by subsystem: ErrC* class/hierarchy resolution,
// ErrT* type inference, ErrX* exception control flow, ErrM* modules.
const (
	ErrC001 = "C001" // multiple inheritance unsupported
	ErrC002 = "C002" // missing receiver parameter
	ErrC003 = "C003" // missing parameter annotation
	ErrC004 = "C004" // assignment to undeclared field
	ErrC005 = "C005" // field type mismatch
	ErrC006 = "C006" // undeclared member
	ErrC007 = "C007" // constructor argument mismatch
	ErrC008 = "C008" // method argument mismatch
	ErrC009 = "C009" // unknown super() method
	ErrC010 = "C010" // unknown base class

	ErrT001 = "T001" // heterogeneous container
	ErrT002 = "T002" // uninferable type
	ErrT003 = "T003" // infinite (self-nesting) container type
	ErrT004 = "T004" // type mismatch

	ErrX001 = "X001" // except type is not an exception class
	ErrX002 = "X002" // unreachable handler
	ErrX003 = "X003" // bare raise outside handler

	ErrM001 = "M001" // module not found
	ErrM002 = "M002" // imported name not found
	ErrM003 = "M003" // relative import escapes package root
	ErrM004 = "M004" // circular import
)

// DiagnosticError is a semantic error with a source location and a stable
// code. Compilation halts before code generation if any are present.
type DiagnosticError struct {
	Code    string
	Token   token.Token
	File    string
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// NewError creates a diagnostic at the given token.
func NewError(code string, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// Newf is NewError with formatting.
func Newf(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Collector accumulates diagnostics for batch reporting, deduplicating by
// position and code so re-walked loop bodies do not double-report.
type Collector struct {
	seen     map[string]bool
	errors   []*DiagnosticError
	failFast bool
	aborted  bool
}

func NewCollector(failFast bool) *Collector {
	return &Collector{seen: make(map[string]bool), failFast: failFast}
}

// Add records a diagnostic. Returns false once the collector has aborted
// (fail-fast mode after the first error), letting callers bail out early.
func (c *Collector) Add(err *DiagnosticError) bool {
	if err == nil || c.aborted {
		return !c.aborted
	}
	key := fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
	if !c.seen[key] {
		c.seen[key] = true
		c.errors = append(c.errors, err)
	}
	if c.failFast {
		c.aborted = true
		return false
	}
	return true
}

func (c *Collector) HasErrors() bool { return len(c.errors) > 0 }

// Aborted reports whether fail-fast mode has tripped.
func (c *Collector) Aborted() bool { return c.aborted }

func (c *Collector) Len() int { return len(c.errors) }

// Errors returns the collected diagnostics in insertion order.
func (c *Collector) Errors() []*DiagnosticError { return c.errors }
