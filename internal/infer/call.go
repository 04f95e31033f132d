package infer

import (
	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/symbols"
	"github.com/pystatic/pystatic/internal/typesystem"
)

func (in *inferrer) inferCall(env *Env, e *ast.Call) typesystem.Type {
	if name, ok := e.Func.(*ast.Name); ok {
		switch name.Value {
		case config.LenFuncName:
			return in.inferLen(env, e)
		case config.PrintFuncName:
			for _, a := range e.Args {
				in.inferExpr(env, a)
			}
			return in.record(e, e.Token, typesystem.None)
		case config.RangeFuncName:
			return in.inferRange(env, e)
		}
		if cls, ok := in.table.Class(name.Value); ok {
			return in.inferConstructor(env, e, cls, in.table)
		}
		if fn, ok := in.table.Function(name.Value); ok {
			args := in.inferArgs(env, e.Args)
			if !in.checkArgs(fn.Sig.Params, args, e, diagnostics.ErrC008,
				"function '"+fn.Name+"'") {
				return nil
			}
			return in.record(e, e.Token, fn.Sig.Return)
		}
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, name.Token,
			"unknown function '%s'", name.Value))
		return nil
	}

	if attr, ok := e.Func.(*ast.Attribute); ok {
		if _, isSuper := attr.Object.(*ast.SuperCall); isSuper {
			return in.inferSuperCall(env, e, attr)
		}
		return in.inferMethodCall(env, e, attr)
	}

	in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token, "expression is not callable"))
	return nil
}

func (in *inferrer) inferLen(env *Env, e *ast.Call) typesystem.Type {
	if len(e.Args) != 1 {
		in.col.Add(diagnostics.Newf(diagnostics.ErrC008, e.Token,
			"%s() expects 1 argument, got %d", config.LenFuncName, len(e.Args)))
		return nil
	}
	arg := in.inferExpr(env, e.Args[0])
	if arg == nil {
		return nil
	}
	switch t := in.pool.Shallow(arg).(type) {
	case typesystem.TList, typesystem.TSet, typesystem.TDict, typesystem.TVar:
		// Sized; an unresolved variable is checked at resolution.
	case typesystem.TCon:
		switch t.Name {
		case config.StrTypeName, config.BytesTypeName, config.ByteArrayTypeName:
		default:
			in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
				"%s() is not defined for %s", config.LenFuncName, t))
			return nil
		}
	case typesystem.TClass:
		cls, tbl, ok := in.lookupClass(t.Name)
		if !ok {
			return nil
		}
		if _, _, ok := tbl.ResolveMethod(cls, config.LenMethodName); !ok {
			in.col.Add(diagnostics.Newf(diagnostics.ErrC006, e.Token,
				"class '%s' does not define %s", t.Name, config.LenMethodName))
			return nil
		}
	default:
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
			"%s() is not defined for %s", config.LenFuncName, in.pool.Resolve(arg)))
		return nil
	}
	return in.record(e, e.Token, typesystem.Int)
}

func (in *inferrer) inferRange(env *Env, e *ast.Call) typesystem.Type {
	if len(e.Args) < 1 || len(e.Args) > 3 {
		in.col.Add(diagnostics.Newf(diagnostics.ErrC008, e.Token,
			"%s() expects 1 to 3 arguments, got %d", config.RangeFuncName, len(e.Args)))
		return nil
	}
	for _, a := range e.Args {
		if t := in.inferExpr(env, a); t != nil {
			in.unify(t, typesystem.Int, a.GetToken(), diagnostics.ErrT004,
				config.RangeFuncName+"() arguments must be int")
		}
	}
	return in.record(e, e.Token, rangeType)
}

// inferConstructor checks a class instantiation against the resolved
// __init__, receiver excluded from the explicit argument list. A class
// without any __init__ on its chain takes no arguments. tbl is the
// table that registered cls; for a class reached through a module
// alias that is the dependency's table.
func (in *inferrer) inferConstructor(env *Env, e *ast.Call, cls *symbols.Class, tbl *symbols.Table) typesystem.Type {
	args := in.inferArgs(env, e.Args)

	init, _, ok := tbl.ResolveMethod(cls, config.InitMethodName)
	if !ok {
		if len(e.Args) != 0 {
			in.col.Add(diagnostics.Newf(diagnostics.ErrC007, e.Token,
				"constructor of '%s' expects 0 arguments, got %d", cls.Name, len(e.Args)))
			return nil
		}
		return in.record(e, e.Token, cls.Type())
	}

	if !in.checkArgs(init.Sig.Params[1:], args, e, diagnostics.ErrC007,
		"constructor of '"+cls.Name+"'") {
		return nil
	}
	return in.record(e, e.Token, cls.Type())
}

func (in *inferrer) inferSuperCall(env *Env, e *ast.Call, attr *ast.Attribute) typesystem.Type {
	if in.curClass == nil {
		in.col.Add(diagnostics.Newf(diagnostics.ErrC009, attr.Token,
			"super() is only valid inside a method"))
		return nil
	}
	m, _, ok := in.table.ResolveSuper(in.curClass, attr.Name)
	if !ok {
		in.col.Add(diagnostics.Newf(diagnostics.ErrC009, attr.Token,
			"no method '%s' on any base of '%s'", attr.Name, in.curClass.Name))
		return nil
	}
	args := in.inferArgs(env, e.Args)
	if !in.checkArgs(m.Sig.Params[1:], args, e, diagnostics.ErrC008,
		"method '"+attr.Name+"'") {
		return nil
	}
	return in.record(e, e.Token, m.Sig.Return)
}

func (in *inferrer) inferMethodCall(env *Env, e *ast.Call, attr *ast.Attribute) typesystem.Type {
	obj := in.inferExpr(env, attr.Object)
	if obj == nil {
		return nil
	}

	switch t := in.pool.Shallow(obj).(type) {
	case typesystem.TList:
		if attr.Name == config.AppendMethodName {
			return in.inferSlotPush(env, e, t.Elem, "appended list element")
		}
	case typesystem.TSet:
		if attr.Name == config.AddMethodName {
			return in.inferSlotPush(env, e, t.Elem, "added set element")
		}
	case typesystem.TClass:
		cls, tbl, ok := in.lookupClass(t.Name)
		if !ok {
			return nil
		}
		m, _, ok := tbl.ResolveMethod(cls, attr.Name)
		if !ok {
			in.col.Add(diagnostics.Newf(diagnostics.ErrC006, attr.Token,
				"class '%s' has no member '%s'", cls.Name, attr.Name))
			return nil
		}
		args := in.inferArgs(env, e.Args)
		if !in.checkArgs(m.Sig.Params[1:], args, e, diagnostics.ErrC008,
			"method '"+cls.Name+"."+attr.Name+"'") {
			return nil
		}
		return in.record(e, e.Token, m.Sig.Return)
	case typesystem.TModule:
		return in.inferModuleCall(env, e, attr, t)
	}

	in.col.Add(diagnostics.Newf(diagnostics.ErrC006, attr.Token,
		"no method '%s' on %s", attr.Name, in.pool.Resolve(obj)))
	return nil
}

// inferModuleCall types a call through a module alias: the member must
// be a class (constructor call) or a function of the imported module.
func (in *inferrer) inferModuleCall(env *Env, e *ast.Call, attr *ast.Attribute, mod typesystem.TModule) typesystem.Type {
	sc, ok := in.scopes[mod.Path]
	if !ok {
		// The dependency failed an earlier stage; it already reported.
		return nil
	}
	if cls, ok := sc.Table.Class(attr.Name); ok {
		return in.inferConstructor(env, e, cls, sc.Table)
	}
	if fn, ok := sc.Table.Function(attr.Name); ok {
		args := in.inferArgs(env, e.Args)
		if !in.checkArgs(fn.Sig.Params, args, e, diagnostics.ErrC008,
			"function '"+mod.Path+"."+fn.Name+"'") {
			return nil
		}
		return in.record(e, e.Token, fn.Sig.Return)
	}
	in.col.Add(diagnostics.Newf(diagnostics.ErrM002, attr.Token,
		"module '%s' does not export '%s'", mod.Path, attr.Name))
	return nil
}

// inferSlotPush handles the container mutators that bind element
// variables: list.append and set.add. The first push binds an empty
// container's slot permanently; a later mismatch is the heterogeneous
// error. Pushing a container into itself fails the occurs check.
func (in *inferrer) inferSlotPush(env *Env, e *ast.Call, slot typesystem.Type, context string) typesystem.Type {
	if len(e.Args) != 1 {
		in.col.Add(diagnostics.Newf(diagnostics.ErrC008, e.Token,
			"expected 1 argument, got %d", len(e.Args)))
		return nil
	}
	arg := in.inferExpr(env, e.Args[0])
	if arg == nil {
		return nil
	}
	in.unify(slot, arg, e.Args[0].GetToken(), diagnostics.ErrT001, context)
	return in.record(e, e.Token, typesystem.None)
}

func (in *inferrer) inferArgs(env *Env, args []ast.Expression) []typesystem.Type {
	out := make([]typesystem.Type, len(args))
	for i, a := range args {
		out[i] = in.inferExpr(env, a)
	}
	return out
}

// checkArgs validates an argument list against signature parameters:
// exact count, exact per-argument type. nil argument types mean a
// diagnostic already fired for that expression.
func (in *inferrer) checkArgs(params []typesystem.Type, args []typesystem.Type, e *ast.Call, code, what string) bool {
	if len(args) != len(params) {
		in.col.Add(diagnostics.Newf(code, e.Token,
			"%s expects %d arguments, got %d", what, len(params), len(args)))
		return false
	}
	ok := true
	for i, a := range args {
		if a == nil {
			ok = false
			continue
		}
		if !in.unify(params[i], a, e.Args[i].GetToken(), code,
			what+" argument") {
			ok = false
		}
	}
	return ok
}

func (in *inferrer) inferAttributeRead(env *Env, e *ast.Attribute) typesystem.Type {
	obj := in.inferExpr(env, e.Object)
	if obj == nil {
		return nil
	}
	switch t := in.pool.Shallow(obj).(type) {
	case typesystem.TClass:
		cls, tbl, ok := in.lookupClass(t.Name)
		if !ok {
			return nil
		}
		f, ok := tbl.ResolveField(cls, e.Name)
		if !ok {
			in.col.Add(diagnostics.Newf(diagnostics.ErrC006, e.Token,
				"class '%s' has no member '%s'", cls.Name, e.Name))
			return nil
		}
		return in.record(e, e.Token, f.Type)
	case typesystem.TModule:
		return in.inferModuleRead(e, t)
	}
	in.col.Add(diagnostics.Newf(diagnostics.ErrC006, e.Token,
		"no member '%s' on %s", e.Name, in.pool.Resolve(obj)))
	return nil
}

// inferModuleRead types a bare attribute read through a module alias:
// only module-level constants are values. Classes and functions must
// be called.
func (in *inferrer) inferModuleRead(e *ast.Attribute, mod typesystem.TModule) typesystem.Type {
	sc, ok := in.scopes[mod.Path]
	if !ok {
		return nil
	}
	if t, ok := sc.Globals[e.Name]; ok {
		return in.record(e, e.Token, t)
	}
	if _, ok := sc.Table.Class(e.Name); ok {
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
			"'%s.%s' is a class, not a value", mod.Path, e.Name))
		return nil
	}
	if _, ok := sc.Table.Function(e.Name); ok {
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
			"'%s.%s' is a function, not a value", mod.Path, e.Name))
		return nil
	}
	in.col.Add(diagnostics.Newf(diagnostics.ErrM002, e.Token,
		"module '%s' does not export '%s'", mod.Path, e.Name))
	return nil
}

func (in *inferrer) inferSubscriptRead(env *Env, e *ast.Subscript) typesystem.Type {
	obj := in.inferExpr(env, e.Object)
	idx := in.inferExpr(env, e.Index)
	if obj == nil || idx == nil {
		return nil
	}

	switch t := in.pool.Shallow(obj).(type) {
	case typesystem.TList:
		in.unify(idx, typesystem.Int, e.Index.GetToken(), diagnostics.ErrT004, "list index")
		return in.record(e, e.Token, t.Elem)
	case typesystem.TDict:
		in.unify(t.Key, idx, e.Index.GetToken(), diagnostics.ErrT001, "dict key")
		return in.record(e, e.Token, t.Value)
	case typesystem.TCon:
		switch t.Name {
		case config.StrTypeName:
			in.unify(idx, typesystem.Int, e.Index.GetToken(), diagnostics.ErrT004, "string index")
			return in.record(e, e.Token, typesystem.Str)
		case config.BytesTypeName, config.ByteArrayTypeName:
			in.unify(idx, typesystem.Int, e.Index.GetToken(), diagnostics.ErrT004, "byte index")
			return in.record(e, e.Token, typesystem.Int)
		}
	case typesystem.TClass:
		cls, tbl, ok := in.lookupClass(t.Name)
		if !ok {
			return nil
		}
		m, _, ok := tbl.ResolveMethod(cls, config.GetItemMethodName)
		if !ok {
			in.col.Add(diagnostics.Newf(diagnostics.ErrC006, e.Token,
				"class '%s' does not define %s", cls.Name, config.GetItemMethodName))
			return nil
		}
		if len(m.Sig.Params) == 2 {
			in.unify(m.Sig.Params[1], idx, e.Index.GetToken(), diagnostics.ErrC008,
				config.GetItemMethodName+" index")
		}
		return in.record(e, e.Token, m.Sig.Return)
	case typesystem.TVar:
		// An unconstrained subscript stays a variable; the resolution
		// pass rejects it if nothing else pins the container down.
		return in.record(e, e.Token, in.pool.Fresh())
	}

	in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
		"%s is not subscriptable", in.pool.Resolve(obj)))
	return nil
}
