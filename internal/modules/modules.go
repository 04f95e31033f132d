// Package modules builds the program's module table: every compiled
// module with its exported names, ordered so that dependencies come
// before their importers.
package modules

import (
	"sort"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/token"
)

// Binding is one local name an import statement introduces, resolved
// against the module table. Member is the exported name in the target
// module; an empty Member binds the module itself as an alias
// (`import x`, `from . import name`).
type Binding struct {
	Name   string // local name in the importer
	Module string // resolved dependency path
	Member string // exported member, "" for a module alias
	Token  token.Token
}

// Module is one compilation unit in the table.
type Module struct {
	Path string // dotted path, e.g. "pkg.geometry"
	AST  *ast.Module

	// Bindings are the names this module's imports introduce, in
	// statement order. Registration and inference consume them.
	Bindings []Binding

	exports map[string]bool
}

// Exports returns the module's exported names in sorted order:
// top-level classes, functions, and module-level bindings.
func (m *Module) Exports() []string {
	out := make([]string, 0, len(m.exports))
	for name := range m.exports {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Exported reports whether the module exports name.
func (m *Module) Exported(name string) bool {
	return m.exports[name]
}

func collectExports(mod *ast.Module) map[string]bool {
	out := make(map[string]bool)
	for _, stmt := range mod.Body {
		switch s := stmt.(type) {
		case *ast.ClassDef:
			out[s.Name] = true
		case *ast.FunctionDef:
			out[s.Name] = true
		case *ast.Assign:
			if n, ok := s.Target.(*ast.Name); ok {
				out[n.Value] = true
			}
		}
	}
	return out
}

// moduleExports loads the export set from the cache when the module's
// content hash hits, scanning the AST otherwise. A scan result is
// written back so the next run with the same content hits. Cache
// errors fall back to the scan.
func moduleExports(mod *ast.Module, cache *Cache) map[string]bool {
	if cache != nil && mod.Hash != "" {
		if names, ok, err := cache.Get(mod.Path, mod.Hash); err == nil && ok {
			out := make(map[string]bool, len(names))
			for _, n := range names {
				out[n] = true
			}
			return out
		}
	}
	out := collectExports(mod)
	if cache != nil && mod.Hash != "" {
		names := make([]string, 0, len(out))
		for n := range out {
			names = append(names, n)
		}
		sort.Strings(names)
		// Best effort; a failed write only misses the next run.
		_ = cache.Put(mod.Path, mod.Hash, names)
	}
	return out
}

// Table is the resolved module set in dependency order: every module
// appears after everything it imports.
type Table struct {
	modules map[string]*Module
	order   []string
}

// Module looks up a module by its dotted path.
func (t *Table) Module(path string) (*Module, bool) {
	m, ok := t.modules[path]
	return m, ok
}

// Order returns module paths in dependency (DAG postorder) order.
func (t *Table) Order() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Modules returns the modules in dependency order.
func (t *Table) Modules() []*Module {
	out := make([]*Module, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, t.modules[p])
	}
	return out
}
