// Package exceptions validates try/except/else/finally structure and
// produces the lowering plan the backend needs: which handler catches
// which class, and which finalizers run on each exit path.
package exceptions

import (
	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/symbols"
	"github.com/pystatic/pystatic/internal/token"
)

// PathKind classifies an early exit out of one or more try regions.
type PathKind int

const (
	PathReturn PathKind = iota
	PathBreak
	PathContinue
	PathRaise
)

func (k PathKind) String() string {
	switch k {
	case PathReturn:
		return "return"
	case PathBreak:
		return "break"
	case PathContinue:
		return "continue"
	case PathRaise:
		return "raise"
	}
	return "unknown"
}

// ExitPath is one early exit and the finally blocks it must run,
// innermost first. A break or continue only unwinds trys inside the
// loop it leaves; a return or escaping raise unwinds them all.
type ExitPath struct {
	Token      token.Token
	Kind       PathKind
	Finalizers []*ast.Try
}

// HandlerPlan pairs a handler clause with its resolved class. Class is
// nil for a bare handler, which matches everything.
type HandlerPlan struct {
	Handler *ast.ExceptHandler
	Class   *symbols.Class
}

// TryPlan is the lowering plan for one try statement. Handlers appear
// in source order; matching walks them first-to-last.
type TryPlan struct {
	Try      *ast.Try
	Handlers []*HandlerPlan
}

// Match returns the first handler whose class is the raised class or
// one of its ancestors. Source order decides between multiple matches.
func (p *TryPlan) Match(table *symbols.Table, raised *symbols.Class) (*HandlerPlan, bool) {
	for _, h := range p.Handlers {
		if h.Class == nil || table.IsAncestor(h.Class, raised) {
			return h, true
		}
	}
	return nil, false
}

// FunctionReport is the per-function result: every try plan, every
// early-exit path, and whether an exception may leave the function.
// Propagation past the program entry point is fatal at runtime; the
// backend consults MayPropagate to emit the unwind path.
type FunctionReport struct {
	Name         string
	Tries        []*TryPlan
	Paths        []ExitPath
	MayPropagate bool
}

// Report is the whole-module result of the exception check.
type Report struct {
	Functions []*FunctionReport
}

// Function returns the report for a named function, if present.
func (r *Report) Function(name string) (*FunctionReport, bool) {
	for _, f := range r.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
