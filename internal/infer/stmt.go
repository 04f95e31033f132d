package infer

import (
	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/typesystem"
)

func (in *inferrer) inferStmt(env *Env, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Assign:
		in.inferAssign(env, s)
	case *ast.AugAssign:
		in.inferAugAssign(env, s)
	case *ast.ExprStmt:
		in.inferExpr(env, s.Value)
	case *ast.Return:
		in.inferReturn(env, s)
	case *ast.If:
		in.inferIf(env, s)
	case *ast.While:
		in.inferExpr(env, s.Cond)
		in.loopFixedPoint(env, s.Body)
	case *ast.For:
		in.inferFor(env, s)
	case *ast.Try:
		in.inferTry(env, s)
	case *ast.Raise:
		if s.Exc != nil {
			in.inferExpr(env, s.Exc)
		}
	case *ast.Break, *ast.Continue, *ast.Pass:
	case *ast.Import, *ast.ImportFrom:
		// Already resolved: the names these bind are seeded into the
		// symbol table and the body envs before the walk.
	}
}

func (in *inferrer) inferAssign(env *Env, s *ast.Assign) {
	value := in.inferExpr(env, s.Value)
	if value == nil {
		return
	}

	switch target := s.Target.(type) {
	case *ast.Name:
		in.assignName(env, s, target, value)
	case *ast.Attribute:
		in.assignField(env, target, value)
	case *ast.Subscript:
		in.assignSubscript(env, target, value)
	default:
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, s.Token,
			"invalid assignment target"))
	}
}

// assignName binds a variable. An annotation pins the declared type and
// the value must match it exactly, which is how `x: list[int] = []`
// resolves an empty literal on the spot. A rebinding must keep the
// established type.
func (in *inferrer) assignName(env *Env, s *ast.Assign, target *ast.Name, value typesystem.Type) {
	if s.Annotation != nil {
		declared, derr := in.table.TypeFromExpr(s.Annotation)
		if derr != nil {
			in.col.Add(derr)
			return
		}
		if !in.unify(declared, value, s.Token, diagnostics.ErrT004,
			"value does not match the declared type of '"+target.Value+"'") {
			return
		}
		env.Set(target.Value, declared)
		in.record(target, target.Token, declared)
		return
	}

	if old, ok := env.Get(target.Value); ok {
		in.unify(old, value, s.Token, diagnostics.ErrT004,
			"variable '"+target.Value+"' already has a type")
		return
	}
	env.Set(target.Value, value)
	in.record(target, target.Token, value)
}

// assignField checks obj.field = value: the field must be declared
// somewhere on the chain and the value must match its declared type
// exactly. bool is not an int here.
func (in *inferrer) assignField(env *Env, target *ast.Attribute, value typesystem.Type) {
	obj := in.inferExpr(env, target.Object)
	if obj == nil {
		return
	}
	t, ok := in.pool.Shallow(obj).(typesystem.TClass)
	if !ok {
		in.col.Add(diagnostics.Newf(diagnostics.ErrC004, target.Token,
			"cannot assign member '%s' on %s", target.Name, in.pool.Resolve(obj)))
		return
	}
	cls, tbl, ok := in.lookupClass(t.Name)
	if !ok {
		return
	}
	f, ok := tbl.ResolveField(cls, target.Name)
	if !ok {
		in.col.Add(diagnostics.Newf(diagnostics.ErrC004, target.Token,
			"assignment to undeclared field '%s' on class '%s'", target.Name, cls.Name))
		return
	}
	in.unify(f.Type, value, target.Token, diagnostics.ErrC005,
		"field '"+cls.Name+"."+target.Name+"'")
}

func (in *inferrer) assignSubscript(env *Env, target *ast.Subscript, value typesystem.Type) {
	obj := in.inferExpr(env, target.Object)
	idx := in.inferExpr(env, target.Index)
	if obj == nil || idx == nil {
		return
	}

	switch t := in.pool.Shallow(obj).(type) {
	case typesystem.TList:
		in.unify(idx, typesystem.Int, target.Index.GetToken(), diagnostics.ErrT004, "list index")
		in.unify(t.Elem, value, target.Token, diagnostics.ErrT001, "assigned list element")
	case typesystem.TDict:
		// The first write through an empty dict binds both slots.
		in.unify(t.Key, idx, target.Index.GetToken(), diagnostics.ErrT001, "dict key")
		in.unify(t.Value, value, target.Token, diagnostics.ErrT001, "dict value")
	case typesystem.TCon:
		if t.Name == config.ByteArrayTypeName {
			in.unify(idx, typesystem.Int, target.Index.GetToken(), diagnostics.ErrT004, "byte index")
			in.unify(typesystem.Int, value, target.Token, diagnostics.ErrT004, "assigned byte")
			return
		}
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, target.Token,
			"%s does not support item assignment", t))
	case typesystem.TClass:
		cls, tbl, ok := in.lookupClass(t.Name)
		if !ok {
			return
		}
		m, _, ok := tbl.ResolveMethod(cls, config.SetItemMethodName)
		if !ok {
			in.col.Add(diagnostics.Newf(diagnostics.ErrC006, target.Token,
				"class '%s' does not define %s", cls.Name, config.SetItemMethodName))
			return
		}
		if len(m.Sig.Params) == 3 {
			in.unify(m.Sig.Params[1], idx, target.Index.GetToken(), diagnostics.ErrC008,
				config.SetItemMethodName+" index")
			in.unify(m.Sig.Params[2], value, target.Token, diagnostics.ErrC008,
				config.SetItemMethodName+" value")
		}
	default:
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, target.Token,
			"%s does not support item assignment", in.pool.Resolve(obj)))
	}
}

func (in *inferrer) inferAugAssign(env *Env, s *ast.AugAssign) {
	// x op= v behaves as x = x op v with the result pinned to x's
	// established type.
	synthetic := &ast.BinOp{Token: s.Token, Left: s.Target, Op: s.Op, Right: s.Value}
	result := in.inferBinOp(env, synthetic)
	if result == nil {
		return
	}
	if name, ok := s.Target.(*ast.Name); ok {
		if old, ok := env.Get(name.Value); ok {
			in.unify(old, result, s.Token, diagnostics.ErrT004,
				"augmented assignment to '"+name.Value+"'")
		}
	}
}

func (in *inferrer) inferReturn(env *Env, s *ast.Return) {
	if s.Value == nil {
		in.unify(in.curReturn, typesystem.None, s.Token, diagnostics.ErrT004,
			"return without value")
		return
	}
	v := in.inferExpr(env, s.Value)
	if v == nil {
		return
	}
	in.unify(in.curReturn, v, s.Token, diagnostics.ErrT004, "return value")
}

// inferIf forks the env per branch and rejoins. Container element
// variables live in the shared pool, so a constraint discovered in one
// branch still binds the other; the join only has to reconcile
// rebindings.
func (in *inferrer) inferIf(env *Env, s *ast.If) {
	in.inferExpr(env, s.Cond)

	thenEnv := env.Clone()
	in.walkBody(thenEnv, s.Then)

	elseEnv := env.Clone()
	in.walkBody(elseEnv, s.Else)

	env.vars = make(map[string]typesystem.Type)
	in.mergeInto(env, thenEnv, s.Token)
	in.mergeInto(env, elseEnv, s.Token)
}

func (in *inferrer) inferFor(env *Env, s *ast.For) {
	iter := in.inferExpr(env, s.Iter)
	if iter == nil {
		return
	}

	var elem typesystem.Type
	switch t := in.pool.Shallow(iter).(type) {
	case typesystem.TList:
		elem = t.Elem
	case typesystem.TSet:
		elem = t.Elem
	case typesystem.TDict:
		elem = t.Key
	case typesystem.TCon:
		switch t.Name {
		case config.StrTypeName:
			elem = typesystem.Str
		case config.BytesTypeName, config.ByteArrayTypeName:
			elem = typesystem.Int
		case rangeType.Name:
			elem = typesystem.Int
		}
	case typesystem.TVar:
		// Iterating an unresolved container constrains it to a list;
		// the element stays open until another site binds it.
		fresh := in.pool.Fresh()
		if in.unify(iter, typesystem.TList{Elem: fresh}, s.Token, diagnostics.ErrT004, "for iteration") {
			elem = fresh
		}
	}
	if elem == nil {
		in.col.Add(diagnostics.Newf(diagnostics.ErrT004, s.Token,
			"%s is not iterable", in.pool.Resolve(iter)))
		return
	}

	if old, ok := env.Get(s.Var.Value); ok {
		in.unify(old, elem, s.Var.Token, diagnostics.ErrT004,
			"loop variable '"+s.Var.Value+"' already has a type")
	} else {
		env.Set(s.Var.Value, elem)
	}
	in.record(s.Var, s.Var.Token, elem)

	in.loopFixedPoint(env, s.Body)
}

// loopFixedPoint re-walks a loop body until the env stops changing.
// Bindings only ever tighten, so the walk terminates; the cap is a
// safety net.
func (in *inferrer) loopFixedPoint(env *Env, body []ast.Statement) {
	for i := 0; i < maxLoopPasses; i++ {
		before := env.Clone()
		in.walkBody(env, body)
		if env.Equal(before, in.pool) {
			return
		}
	}
}

func (in *inferrer) inferTry(env *Env, s *ast.Try) {
	in.walkBody(env, s.Body)
	for _, h := range s.Handlers {
		hEnv := env.Clone()
		if h.Alias != "" && h.ClassName != "" {
			if cls, ok := in.table.Class(h.ClassName); ok {
				hEnv.Set(h.Alias, cls.Type())
			}
		}
		in.walkBody(hEnv, h.Body)
		// The alias is scoped to the handler body.
		delete(hEnv.vars, h.Alias)
		in.mergeInto(env, hEnv, h.Token)
	}
	in.walkBody(env, s.OrElse)
	in.walkBody(env, s.Final)
}
