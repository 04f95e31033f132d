// Package infer implements flow-sensitive type inference over function
// bodies. Empty container literals get fresh unification variables;
// later use sites (append, add, subscript writes, iteration) constrain
// them, and a final resolution pass rejects anything still unknown.
package infer

import (
	"errors"
	"sort"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/symbols"
	"github.com/pystatic/pystatic/internal/token"
	"github.com/pystatic/pystatic/internal/typesystem"
)

// maxLoopPasses bounds the loop fixed point. Bindings are monotone, so
// the walk stabilizes in practice after two passes; the cap only guards
// against a pathological body.
const maxLoopPasses = 8

// Result is the inference output: a concrete type for every recorded
// expression and binding, plus the resolved types of the module-level
// bindings (what an importer of this module can see).
type Result struct {
	Types   map[ast.Node]typesystem.Type
	Pool    *typesystem.VarPool
	Globals map[string]typesystem.Type
}

// ModuleScope is the importer-visible surface of an already-inferred
// module: its class/function table and the resolved types of its
// module-level bindings.
type ModuleScope struct {
	Table   *symbols.Table
	Globals map[string]typesystem.Type
}

// Imports is what the surrounding program contributes to one module's
// inference: the names its import statements bind (module aliases and
// re-exported constants, already resolved) and the scopes of the
// modules those names came from. Imported classes and functions are
// adopted into the symbol table before inference and need no entry
// here.
type Imports struct {
	Bindings map[string]typesystem.Type
	Scopes   map[string]*ModuleScope
}

// TypeOf returns the resolved type recorded for a node.
func (r *Result) TypeOf(n ast.Node) (typesystem.Type, bool) {
	t, ok := r.Types[n]
	if !ok {
		return nil, false
	}
	return r.Pool.Resolve(t), true
}

type tracked struct {
	node ast.Node
	tok  token.Token
}

type inferrer struct {
	table *symbols.Table
	col   *diagnostics.Collector
	pool  *typesystem.VarPool

	imports    map[string]typesystem.Type
	scopes     map[string]*ModuleScope
	scopePaths []string

	types   map[ast.Node]typesystem.Type
	tracked []tracked

	curClass  *symbols.Class
	curReturn typesystem.Type
}

// Infer types every function body, method body, and module-level
// statement of a standalone module. Registration must have succeeded
// first.
func Infer(mod *ast.Module, table *symbols.Table, col *diagnostics.Collector) *Result {
	return InferWith(mod, table, nil, col)
}

// InferWith is Infer for a module inside a program: imp carries the
// pre-typed names the module's imports bind and the scopes of its
// already-inferred dependencies. Import bindings are visible in every
// body; parameters shadow them.
func InferWith(mod *ast.Module, table *symbols.Table, imp *Imports, col *diagnostics.Collector) *Result {
	in := &inferrer{
		table:   table,
		col:     col,
		pool:    typesystem.NewVarPool(),
		imports: make(map[string]typesystem.Type),
		scopes:  make(map[string]*ModuleScope),
		types:   make(map[ast.Node]typesystem.Type),
	}
	if imp != nil {
		for name, t := range imp.Bindings {
			in.imports[name] = t
		}
		for path, sc := range imp.Scopes {
			in.scopes[path] = sc
			in.scopePaths = append(in.scopePaths, path)
		}
		sort.Strings(in.scopePaths)
	}

	moduleEnv := in.newBodyEnv()
	in.curReturn = typesystem.None
	for _, stmt := range mod.Body {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			in.inferFunction(s, nil)
		case *ast.ClassDef:
			cls, ok := table.Class(s.Name)
			if !ok {
				continue
			}
			for _, m := range s.Methods {
				in.inferFunction(m, cls)
			}
		default:
			in.inferStmt(moduleEnv, stmt)
		}
	}

	in.resolveAll()

	globals := make(map[string]typesystem.Type)
	for _, name := range moduleEnv.Names() {
		t, _ := moduleEnv.Get(name)
		if in.pool.IsResolved(t) {
			globals[name] = in.pool.Resolve(t)
		}
	}
	return &Result{Types: in.types, Pool: in.pool, Globals: globals}
}

// newBodyEnv starts a body scope with the import bindings in place.
func (in *inferrer) newBodyEnv() *Env {
	env := NewEnv()
	for name, t := range in.imports {
		env.Set(name, t)
	}
	return env
}

// lookupClass resolves a nominal instance type to its descriptor and
// the table that can walk its base chain. The local table wins;
// instance types produced by another module's signatures fall back to
// the scopes of the inferred dependencies.
func (in *inferrer) lookupClass(name string) (*symbols.Class, *symbols.Table, bool) {
	if c, ok := in.table.Class(name); ok {
		return c, in.table, true
	}
	for _, path := range in.scopePaths {
		if c, ok := in.scopes[path].Table.Class(name); ok {
			return c, in.scopes[path].Table, true
		}
	}
	return nil, nil, false
}

func (in *inferrer) inferFunction(def *ast.FunctionDef, cls *symbols.Class) {
	env := in.newBodyEnv()

	var sig typesystem.TFunc
	if cls != nil {
		m, ok := cls.OwnMethod(def.Name)
		if !ok {
			return
		}
		sig = m.Sig
		if len(def.Params) > 0 {
			env.Set(def.Params[0].Name, cls.Type())
		}
		for i, p := range def.Params[1:] {
			if i+1 < len(sig.Params) {
				env.Set(p.Name, sig.Params[i+1])
			}
		}
	} else {
		f, ok := in.table.Function(def.Name)
		if !ok {
			return
		}
		sig = f.Sig
		for i, p := range def.Params {
			if i < len(sig.Params) {
				env.Set(p.Name, sig.Params[i])
			}
		}
	}

	prevClass, prevReturn := in.curClass, in.curReturn
	in.curClass, in.curReturn = cls, sig.Return
	in.walkBody(env, def.Body)
	in.curClass, in.curReturn = prevClass, prevReturn
}

func (in *inferrer) walkBody(env *Env, body []ast.Statement) {
	for _, stmt := range body {
		in.inferStmt(env, stmt)
	}
}

// record stores a node's type and queues it for the resolution pass.
func (in *inferrer) record(n ast.Node, tok token.Token, t typesystem.Type) typesystem.Type {
	in.types[n] = t
	in.tracked = append(in.tracked, tracked{node: n, tok: tok})
	return t
}

// resolveAll is the single validation point: every tracked node must
// resolve to a concrete type once the whole module has been walked.
func (in *inferrer) resolveAll() {
	for _, tr := range in.tracked {
		t := in.types[tr.node]
		if in.pool.IsResolved(t) {
			in.types[tr.node] = in.pool.Resolve(t)
			continue
		}
		in.col.Add(diagnostics.Newf(diagnostics.ErrT002, tr.tok,
			"type %s could not be resolved - insufficient type information",
			in.pool.Resolve(t)))
	}
}

// unify wraps typesystem.Unify with diagnostic mapping: a failed occurs
// check is always the self-nesting error, any other failure uses the
// caller's code.
func (in *inferrer) unify(a, b typesystem.Type, tok token.Token, code, context string) bool {
	err := typesystem.Unify(in.pool, a, b)
	if err == nil {
		return true
	}
	if errors.Is(err, typesystem.ErrInfinite) {
		in.col.Add(diagnostics.Newf(diagnostics.ErrT003, tok,
			"%s: a container cannot contain itself", context))
		return false
	}
	in.col.Add(diagnostics.Newf(code, tok, "%s: %v", context, err))
	return false
}

// mergeInto folds a branch env into the join env. A variable bound on
// both sides must unify; divergent container shapes at a join are the
// heterogeneous-container error, scalar divergence the general
// mismatch.
func (in *inferrer) mergeInto(join, branch *Env, tok token.Token) {
	for _, name := range branch.Names() {
		t, _ := branch.Get(name)
		old, ok := join.Get(name)
		if !ok {
			join.Set(name, t)
			continue
		}
		code := diagnostics.ErrT004
		if isContainer(in.pool.Shallow(old)) && isContainer(in.pool.Shallow(t)) {
			code = diagnostics.ErrT001
		}
		in.unify(old, t, tok, code, "variable '"+name+"' has conflicting types at branch join")
	}
}

func isContainer(t typesystem.Type) bool {
	switch t.(type) {
	case typesystem.TList, typesystem.TSet, typesystem.TDict:
		return true
	}
	return false
}
