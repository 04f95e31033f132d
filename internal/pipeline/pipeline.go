// Package pipeline chains the semantic stages over a decoded program:
// module resolution feeds class registration, registration feeds
// inference, and inference feeds the exception check. Stages batch
// their diagnostics into one collector; a stage whose output the next
// stage cannot work without halts the chain cleanly.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/exceptions"
	"github.com/pystatic/pystatic/internal/infer"
	"github.com/pystatic/pystatic/internal/modules"
	"github.com/pystatic/pystatic/internal/symbols"
	"github.com/pystatic/pystatic/internal/typesystem"
)

// ErrHalt stops the pipeline without reporting a processor failure:
// the collector already holds the diagnostics that explain why.
var ErrHalt = errors.New("pipeline halted")

// Context carries the state shared between stages.
type Context struct {
	Options   *config.Options
	Collector *diagnostics.Collector

	// Input: decoded modules in dump order.
	Sources []*ast.Module

	// Filled in by the stages.
	Modules *modules.Table
	Tables  map[string]*symbols.Table
	Results map[string]*infer.Result
	Reports map[string]*exceptions.Report
}

func NewContext(opts *config.Options, sources []*ast.Module) *Context {
	return &Context{
		Options:   opts,
		Collector: diagnostics.NewCollector(opts.FailFast),
		Sources:   sources,
		Tables:    make(map[string]*symbols.Table),
		Results:   make(map[string]*infer.Result),
		Reports:   make(map[string]*exceptions.Report),
	}
}

// Processor is one pipeline stage.
type Processor interface {
	Name() string
	Process(ctx *Context) error
}

// Run executes the stages in order. A stage returning ErrHalt ends the
// run cleanly; any other error aborts it. Fail-fast mode stops after
// the stage that tripped the collector.
func Run(ctx *Context, procs ...Processor) error {
	for _, p := range procs {
		if err := p.Process(ctx); err != nil {
			if errors.Is(err, ErrHalt) {
				return nil
			}
			return fmt.Errorf("stage %s: %w", p.Name(), err)
		}
		if ctx.Collector.Aborted() {
			return nil
		}
	}
	return nil
}

// Default returns the standard stage chain.
func Default() []Processor {
	return []Processor{
		&ModuleStage{},
		&RegistrationStage{},
		&InferenceStage{},
		&ExceptionStage{},
	}
}

// ModuleStage builds the module table and validates imports. When a
// cache directory is configured, export sets of unchanged modules are
// served from the sqlite cache instead of re-scanned.
type ModuleStage struct{}

func (s *ModuleStage) Name() string { return "modules" }

func (s *ModuleStage) Process(ctx *Context) error {
	byPath := make(map[string]*ast.Module, len(ctx.Sources))
	for _, m := range ctx.Sources {
		byPath[m.Path] = m
	}

	var cache *modules.Cache
	if dir := ctx.Options.CacheDir; dir != "" {
		// The check runs without a cache when it cannot be opened.
		if err := os.MkdirAll(dir, 0o755); err == nil {
			if c, err := modules.OpenCache(filepath.Join(dir, "exports.db")); err == nil {
				cache = c
				defer cache.Close()
			}
		}
	}

	ctx.Modules = modules.Build(byPath, cache, ctx.Collector)
	return nil
}

// RegistrationStage builds the per-module class and function tables.
// Registration diagnostics leave the tables unusable for the later
// stages, so errors here halt the chain after the stage completes —
// every module still registers, keeping the batch intact.
type RegistrationStage struct{}

func (s *RegistrationStage) Name() string { return "registration" }

func (s *RegistrationStage) Process(ctx *Context) error {
	for _, m := range ctx.Modules.Modules() {
		ctx.Tables[m.Path] = symbols.Register(m.AST, ctx.Collector)
	}

	// Link pass: bind imported classes and functions into the
	// importer's table. Modules come dependency-first, so re-exports
	// chain across the program. Module aliases and imported constants
	// bind at inference, which has the types.
	for _, m := range ctx.Modules.Modules() {
		table := ctx.Tables[m.Path]
		for _, b := range m.Bindings {
			if b.Member == "" {
				continue
			}
			dep, ok := ctx.Tables[b.Module]
			if !ok {
				continue
			}
			if cls, ok := dep.Class(b.Member); ok {
				table.AdoptClass(b.Name, cls, dep)
			} else if fn, ok := dep.Function(b.Member); ok {
				table.AdoptFunction(b.Name, fn)
			}
		}
	}

	if ctx.Collector.HasErrors() {
		return ErrHalt
	}
	return nil
}

// InferenceStage types every function body. Inference diagnostics do
// not stop the exception check: its input is the class hierarchy, not
// the type map.
type InferenceStage struct{}

func (s *InferenceStage) Name() string { return "inference" }

func (s *InferenceStage) Process(ctx *Context) error {
	scopes := make(map[string]*infer.ModuleScope)
	for _, m := range ctx.Modules.Modules() {
		table, ok := ctx.Tables[m.Path]
		if !ok {
			continue
		}

		// Names the module's imports bind: module aliases, and
		// module-level constants re-exported by a dependency. Classes
		// and functions were adopted into the table at registration.
		imp := &infer.Imports{
			Bindings: make(map[string]typesystem.Type),
			Scopes:   scopes,
		}
		for _, b := range m.Bindings {
			if b.Member == "" {
				imp.Bindings[b.Name] = typesystem.TModule{Path: b.Module}
				continue
			}
			dep, ok := scopes[b.Module]
			if !ok {
				continue
			}
			if _, ok := dep.Table.Class(b.Member); ok {
				continue
			}
			if _, ok := dep.Table.Function(b.Member); ok {
				continue
			}
			if t, ok := dep.Globals[b.Member]; ok {
				imp.Bindings[b.Name] = t
			}
		}

		res := infer.InferWith(m.AST, table, imp, ctx.Collector)
		ctx.Results[m.Path] = res
		scopes[m.Path] = &infer.ModuleScope{Table: table, Globals: res.Globals}
	}
	return nil
}

// ExceptionStage validates try/except structure and emits the lowering
// reports.
type ExceptionStage struct{}

func (s *ExceptionStage) Name() string { return "exceptions" }

func (s *ExceptionStage) Process(ctx *Context) error {
	for _, m := range ctx.Modules.Modules() {
		table, ok := ctx.Tables[m.Path]
		if !ok {
			continue
		}
		ctx.Reports[m.Path] = exceptions.Check(m.AST, table, ctx.Collector)
	}
	return nil
}
