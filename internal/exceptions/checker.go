package exceptions

import (
	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/symbols"
	"github.com/pystatic/pystatic/internal/token"
)

// ModuleBodyName names the report covering statements outside any
// function.
const ModuleBodyName = "<module>"

// Check validates every try/except/finally in the module and builds the
// lowering report. Registration must have run first; the class table is
// read-only here.
func Check(mod *ast.Module, table *symbols.Table, col *diagnostics.Collector) *Report {
	report := &Report{}

	var loose []ast.Statement
	for _, stmt := range mod.Body {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			report.Functions = append(report.Functions, checkFunction(s.Name, s.Body, table, col))
		case *ast.ClassDef:
			for _, m := range s.Methods {
				name := s.Name + "." + m.Name
				report.Functions = append(report.Functions, checkFunction(name, m.Body, table, col))
			}
		default:
			loose = append(loose, stmt)
		}
	}
	report.Functions = append(report.Functions, checkFunction(ModuleBodyName, loose, table, col))

	return report
}

func checkFunction(name string, body []ast.Statement, table *symbols.Table, col *diagnostics.Collector) *FunctionReport {
	c := &checker{
		table:  table,
		col:    col,
		report: &FunctionReport{Name: name},
	}
	c.walkBody(body)
	return c.report
}

// tryFrame is one enclosing try on the walk stack. catchActive is set
// only while walking the try body: a raise inside a handler or the
// else block is never caught by the same statement's handlers, it
// replaces the in-flight exception and unwinds outward.
type tryFrame struct {
	plan        *TryPlan
	catchActive bool
	hasFinally  bool
	loopDepth   int
}

type checker struct {
	table  *symbols.Table
	col    *diagnostics.Collector
	report *FunctionReport

	frames       []*tryFrame
	loopDepth    int
	handlerDepth int
}

func (c *checker) walkBody(body []ast.Statement) {
	for _, stmt := range body {
		c.walkStmt(stmt)
	}
}

func (c *checker) walkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Try:
		c.checkTry(s)
	case *ast.Raise:
		c.checkRaise(s)
	case *ast.Return:
		c.recordExit(PathReturn, s.Token, c.finalizersForReturn())
	case *ast.Break:
		c.recordExit(PathBreak, s.Token, c.finalizersForLoopExit())
	case *ast.Continue:
		c.recordExit(PathContinue, s.Token, c.finalizersForLoopExit())
	case *ast.If:
		c.walkBody(s.Then)
		c.walkBody(s.Else)
	case *ast.While:
		c.loopDepth++
		c.walkBody(s.Body)
		c.loopDepth--
	case *ast.For:
		c.loopDepth++
		c.walkBody(s.Body)
		c.loopDepth--
	}
}

func (c *checker) checkTry(t *ast.Try) {
	plan := &TryPlan{Try: t}
	seenBare := false
	var prior []*symbols.Class

	for _, h := range t.Handlers {
		hp := &HandlerPlan{Handler: h}

		if h.ClassName != "" {
			cls, ok := c.table.Class(h.ClassName)
			switch {
			case !ok:
				c.col.Add(diagnostics.Newf(diagnostics.ErrX001, h.Token,
					"unknown class '%s' in except clause", h.ClassName))
			case !cls.IsException():
				c.col.Add(diagnostics.Newf(diagnostics.ErrX001, h.Token,
					"'%s' is not an exception class; except requires a subclass of %s",
					h.ClassName, config.ExceptionRootName))
			default:
				hp.Class = cls
			}
		}

		switch {
		case seenBare:
			c.col.Add(diagnostics.Newf(diagnostics.ErrX002, h.Token,
				"handler is unreachable; an earlier bare except catches everything"))
		case hp.Class != nil:
			for _, p := range prior {
				if c.table.IsAncestor(p, hp.Class) {
					c.col.Add(diagnostics.Newf(diagnostics.ErrX002, h.Token,
						"handler for '%s' is unreachable; '%s' already catches it",
						hp.Class.Name, p.Name))
					break
				}
			}
			prior = append(prior, hp.Class)
		}
		if h.ClassName == "" {
			seenBare = true
		}

		plan.Handlers = append(plan.Handlers, hp)
	}

	c.report.Tries = append(c.report.Tries, plan)

	frame := &tryFrame{
		plan:        plan,
		catchActive: true,
		hasFinally:  len(t.Final) > 0,
		loopDepth:   c.loopDepth,
	}
	c.frames = append(c.frames, frame)

	c.walkBody(t.Body)

	frame.catchActive = false
	for _, h := range t.Handlers {
		c.handlerDepth++
		c.walkBody(h.Body)
		c.handlerDepth--
	}
	c.walkBody(t.OrElse)

	// The finally block itself runs outside this frame: an exit there
	// only unwinds outer finalizers, and this block runs exactly once
	// per path regardless of how the region was left.
	c.frames = c.frames[:len(c.frames)-1]
	c.walkBody(t.Final)
}

func (c *checker) checkRaise(r *ast.Raise) {
	if r.Exc == nil {
		if c.handlerDepth == 0 {
			c.col.Add(diagnostics.Newf(diagnostics.ErrX003, r.Token,
				"bare raise is only valid inside an except block"))
			return
		}
		// Re-raise of the in-flight exception: its class is dynamic,
		// so only a bare handler is a guaranteed catch.
		c.recordRaise(r, nil)
		return
	}

	raised := c.raisedClass(r.Exc)
	if raised != nil && !raised.IsException() {
		c.col.Add(diagnostics.Newf(diagnostics.ErrX001, r.GetToken(),
			"cannot raise '%s'; raise requires a subclass of %s",
			raised.Name, config.ExceptionRootName))
		return
	}
	c.recordRaise(r, raised)
}

// raisedClass resolves the static class of a raise operand when the
// operand is a direct constructor call. Anything else is dynamic.
func (c *checker) raisedClass(exc ast.Expression) *symbols.Class {
	call, ok := exc.(*ast.Call)
	if !ok {
		return nil
	}
	name, ok := call.Func.(*ast.Name)
	if !ok {
		return nil
	}
	cls, ok := c.table.Class(name.Value)
	if !ok {
		return nil
	}
	return cls
}

// recordRaise finds the innermost enclosing try that catches the raise
// and records the exit path with the finalizers crossed on the way. A
// raise with no guaranteed catch marks the function as propagating.
func (c *checker) recordRaise(r *ast.Raise, raised *symbols.Class) {
	catchIdx := -1
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].catchActive && c.catches(c.frames[i].plan, raised) {
			catchIdx = i
			break
		}
	}

	var finalizers []*ast.Try
	for i := len(c.frames) - 1; i > catchIdx; i-- {
		if c.frames[i].hasFinally {
			finalizers = append(finalizers, c.frames[i].plan.Try)
		}
	}
	if catchIdx < 0 {
		c.report.MayPropagate = true
	}
	c.recordExit(PathRaise, r.GetToken(), finalizers)
}

// catches reports whether the plan is guaranteed to catch the class.
// A dynamic raise (raised == nil) is only guaranteed by a bare handler.
func (c *checker) catches(plan *TryPlan, raised *symbols.Class) bool {
	for _, h := range plan.Handlers {
		if h.Class == nil {
			return true
		}
		if raised != nil && c.table.IsAncestor(h.Class, raised) {
			return true
		}
	}
	return false
}

// finalizersForReturn collects every enclosing finally, innermost
// first: a return unwinds the whole frame stack.
func (c *checker) finalizersForReturn() []*ast.Try {
	var out []*ast.Try
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].hasFinally {
			out = append(out, c.frames[i].plan.Try)
		}
	}
	return out
}

// finalizersForLoopExit collects finallys entered inside the innermost
// loop: break and continue stop unwinding at the loop boundary.
func (c *checker) finalizersForLoopExit() []*ast.Try {
	var out []*ast.Try
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].loopDepth < c.loopDepth {
			break
		}
		if c.frames[i].hasFinally {
			out = append(out, c.frames[i].plan.Try)
		}
	}
	return out
}

func (c *checker) recordExit(kind PathKind, tok token.Token, finalizers []*ast.Try) {
	c.report.Paths = append(c.report.Paths, ExitPath{
		Token:      tok,
		Kind:       kind,
		Finalizers: finalizers,
	})
}
