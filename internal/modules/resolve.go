package modules

import (
	"sort"
	"strings"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/diagnostics"
)

// Build resolves every import of the given module set and returns the
// table in dependency order. Import targets must exist (ErrM001),
// from-imported names must be exported (ErrM002), relative imports must
// stay inside the root (ErrM003), and the import graph must be acyclic
// (ErrM004). Each module's resolved bindings are recorded for the
// later stages. A non-nil cache serves export sets for unchanged
// modules.
func Build(mods map[string]*ast.Module, cache *Cache, col *diagnostics.Collector) *Table {
	t := &Table{modules: make(map[string]*Module)}
	for path, m := range mods {
		t.modules[path] = &Module{Path: path, AST: m, exports: moduleExports(m, cache)}
	}

	// Dependency edges, importer -> imported paths, resolved and
	// validated once.
	deps := make(map[string][]string)
	paths := make([]string, 0, len(t.modules))
	for p := range t.modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		m := t.modules[path]
		for _, stmt := range m.AST.Imports() {
			deps[path] = append(deps[path], resolveImport(t, m, stmt, col)...)
		}
	}

	t.order = postorder(t, paths, deps, col)
	return t
}

// resolveImport validates one import statement of module m, records
// the names it binds, and returns every imported module path as a
// dependency edge.
func resolveImport(t *Table, m *Module, stmt ast.Statement, col *diagnostics.Collector) []string {
	switch s := stmt.(type) {
	case *ast.Import:
		if _, ok := t.modules[s.Module]; !ok {
			col.Add(diagnostics.Newf(diagnostics.ErrM001, s.Token,
				"module '%s' not found", s.Module))
			return nil
		}
		m.Bindings = append(m.Bindings, Binding{
			Name: importAlias(s), Module: s.Module, Token: s.Token,
		})
		return []string{s.Module}

	case *ast.ImportFrom:
		target, ok := resolveRelative(m.Path, s, col)
		if !ok {
			return nil
		}

		if s.Module == "" && s.Level > 0 {
			// `from . import name` binds sibling modules, so each name
			// is itself a module under the resolved package and each
			// resolved sibling is a dependency edge.
			var out []string
			for _, n := range s.Names {
				sub := joinPath(target, n.Name)
				if _, ok := t.modules[sub]; !ok {
					col.Add(diagnostics.Newf(diagnostics.ErrM001, n.Token,
						"module '%s' not found", sub))
					continue
				}
				m.Bindings = append(m.Bindings, Binding{
					Name: localName(n), Module: sub, Token: n.Token,
				})
				out = append(out, sub)
			}
			return out
		}

		imported, ok := t.modules[target]
		if !ok {
			col.Add(diagnostics.Newf(diagnostics.ErrM001, s.Token,
				"module '%s' not found", target))
			return nil
		}
		for _, n := range s.Names {
			if !imported.Exported(n.Name) {
				col.Add(diagnostics.Newf(diagnostics.ErrM002, n.Token,
					"module '%s' does not export '%s'", target, n.Name))
				continue
			}
			m.Bindings = append(m.Bindings, Binding{
				Name: localName(n), Module: target, Member: n.Name, Token: n.Token,
			})
		}
		return []string{target}
	}
	return nil
}

// importAlias is the local name `import x [as y]` binds: the alias
// when present, else the last path segment (the table is flat, so
// there is no package object to hang intermediate segments on).
func importAlias(s *ast.Import) string {
	if s.Alias != "" {
		return s.Alias
	}
	if i := strings.LastIndex(s.Module, "."); i >= 0 {
		return s.Module[i+1:]
	}
	return s.Module
}

func localName(n *ast.ImportedName) string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}

// resolveRelative turns a leveled from-import into an absolute path.
// Level 1 is the importer's own package, each further dot one package
// up; walking past the root is an error.
func resolveRelative(importer string, s *ast.ImportFrom, col *diagnostics.Collector) (string, bool) {
	if s.Level == 0 {
		return s.Module, true
	}

	parts := strings.Split(importer, ".")
	// The importer's package is its path minus the module name.
	if len(parts) < s.Level {
		col.Add(diagnostics.Newf(diagnostics.ErrM003, s.Token,
			"relative import escapes the module root"))
		return "", false
	}
	base := parts[:len(parts)-s.Level]
	return joinPath(strings.Join(base, "."), s.Module), true
}

func joinPath(base, name string) string {
	switch {
	case base == "":
		return name
	case name == "":
		return base
	default:
		return base + "." + name
	}
}

// postorder orders modules dependencies-first and reports cycles. The
// roots are visited in sorted path order, so the result is
// deterministic for a given module set.
func postorder(t *Table, paths []string, deps map[string][]string, col *diagnostics.Collector) []string {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)
	var order []string

	var visit func(path string)
	visit = func(path string) {
		switch state[path] {
		case visiting:
			col.Add(diagnostics.Newf(diagnostics.ErrM004, t.modules[path].AST.Imports()[0].GetToken(),
				"circular import involving module '%s'", path))
			return
		case done:
			return
		}
		state[path] = visiting
		for _, d := range deps[path] {
			visit(d)
		}
		state[path] = done
		order = append(order, path)
	}

	for _, p := range paths {
		visit(p)
	}
	return order
}
