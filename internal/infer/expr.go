package infer

import (
	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/typesystem"
)

// rangeType is the opaque sequence type produced by range(); iterating
// it yields ints.
var rangeType = typesystem.TCon{Name: config.RangeFuncName}

// inferExpr types an expression. A nil result means a diagnostic was
// already emitted; callers skip dependent checks.
func (in *inferrer) inferExpr(env *Env, e ast.Expression) typesystem.Type {
	switch e := e.(type) {
	case *ast.IntLit:
		return in.record(e, e.Token, typesystem.Int)
	case *ast.FloatLit:
		return in.record(e, e.Token, typesystem.Float)
	case *ast.BoolLit:
		return in.record(e, e.Token, typesystem.Bool)
	case *ast.StringLit:
		return in.record(e, e.Token, typesystem.Str)
	case *ast.BytesLit:
		return in.record(e, e.Token, typesystem.Bytes)
	case *ast.NoneLit:
		return in.record(e, e.Token, typesystem.None)

	case *ast.Name:
		t, ok := env.Get(e.Value)
		if !ok {
			in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
				"unknown name '%s'", e.Value))
			return nil
		}
		return in.record(e, e.Token, t)

	case *ast.ListLit:
		return in.inferListLit(env, e)
	case *ast.SetLit:
		return in.inferSetLit(env, e)
	case *ast.DictLit:
		return in.inferDictLit(env, e)

	case *ast.BinOp:
		return in.inferBinOp(env, e)
	case *ast.UnaryOp:
		return in.inferUnaryOp(env, e)
	case *ast.BoolOp:
		for _, v := range e.Values {
			in.inferExpr(env, v)
		}
		return in.record(e, e.Token, typesystem.Bool)
	case *ast.Compare:
		return in.inferCompare(env, e)

	case *ast.Call:
		return in.inferCall(env, e)
	case *ast.Attribute:
		return in.inferAttributeRead(env, e)
	case *ast.Subscript:
		return in.inferSubscriptRead(env, e)

	case *ast.SuperCall:
		in.col.Add(diagnostics.Newf(diagnostics.ErrC009, e.Token,
			"super() is only valid as the receiver of a method call"))
		return nil
	}
	return nil
}

// inferListLit types a list literal. An empty literal gets a fresh
// element variable; the first element of a non-empty literal binds the
// slot and every later element must match it exactly.
func (in *inferrer) inferListLit(env *Env, e *ast.ListLit) typesystem.Type {
	if len(e.Elems) == 0 {
		return in.record(e, e.Token, typesystem.TList{Elem: in.pool.Fresh()})
	}
	elem := in.inferExpr(env, e.Elems[0])
	if elem == nil {
		return nil
	}
	for _, el := range e.Elems[1:] {
		t := in.inferExpr(env, el)
		if t == nil {
			continue
		}
		in.unify(elem, t, el.GetToken(), diagnostics.ErrT001,
			"list elements must share one type")
	}
	return in.record(e, e.Token, typesystem.TList{Elem: elem})
}

func (in *inferrer) inferSetLit(env *Env, e *ast.SetLit) typesystem.Type {
	if len(e.Elems) == 0 {
		return in.record(e, e.Token, typesystem.TSet{Elem: in.pool.Fresh()})
	}
	elem := in.inferExpr(env, e.Elems[0])
	if elem == nil {
		return nil
	}
	for _, el := range e.Elems[1:] {
		t := in.inferExpr(env, el)
		if t == nil {
			continue
		}
		in.unify(elem, t, el.GetToken(), diagnostics.ErrT001,
			"set elements must share one type")
	}
	return in.record(e, e.Token, typesystem.TSet{Elem: elem})
}

// inferDictLit types a dict literal: the first entry binds both slots
// permanently, later entries must match. int keys never widen to float.
func (in *inferrer) inferDictLit(env *Env, e *ast.DictLit) typesystem.Type {
	if len(e.Keys) == 0 {
		return in.record(e, e.Token, typesystem.TDict{Key: in.pool.Fresh(), Value: in.pool.Fresh()})
	}
	key := in.inferExpr(env, e.Keys[0])
	val := in.inferExpr(env, e.Values[0])
	if key == nil || val == nil {
		return nil
	}
	for i := 1; i < len(e.Keys); i++ {
		if kt := in.inferExpr(env, e.Keys[i]); kt != nil {
			in.unify(key, kt, e.Keys[i].GetToken(), diagnostics.ErrT001,
				"dict keys must share one type")
		}
		if vt := in.inferExpr(env, e.Values[i]); vt != nil {
			in.unify(val, vt, e.Values[i].GetToken(), diagnostics.ErrT001,
				"dict values must share one type")
		}
	}
	return in.record(e, e.Token, typesystem.TDict{Key: key, Value: val})
}

func (in *inferrer) inferBinOp(env *Env, e *ast.BinOp) typesystem.Type {
	left := in.inferExpr(env, e.Left)
	right := in.inferExpr(env, e.Right)
	if left == nil || right == nil {
		return nil
	}
	ls, rs := in.pool.Shallow(left), in.pool.Shallow(right)

	// Arithmetic widens int to float; true division always yields
	// float. This is the only place widening exists: container slots
	// and call arguments stay exact.
	if typesystem.IsNumeric(ls) && typesystem.IsNumeric(rs) {
		switch e.Op {
		case "+", "-", "*", "%", "//":
			w, _ := typesystem.Widen(ls, rs)
			return in.record(e, e.Token, w)
		case "/":
			return in.record(e, e.Token, typesystem.Float)
		}
	}

	if e.Op == "+" {
		switch ls.(type) {
		case typesystem.TCon:
			if typesystem.Equal(ls, typesystem.Str) && typesystem.Equal(rs, typesystem.Str) {
				return in.record(e, e.Token, typesystem.Str)
			}
			if typesystem.Equal(ls, typesystem.Bytes) && typesystem.Equal(rs, typesystem.Bytes) {
				return in.record(e, e.Token, typesystem.Bytes)
			}
		case typesystem.TList:
			if in.unify(left, right, e.Token, diagnostics.ErrT001,
				"concatenated lists must share one element type") {
				return in.record(e, e.Token, ls)
			}
			return nil
		}
	}

	in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
		"operator '%s' is not defined for %s and %s", e.Op, in.pool.Resolve(left), in.pool.Resolve(right)))
	return nil
}

func (in *inferrer) inferUnaryOp(env *Env, e *ast.UnaryOp) typesystem.Type {
	operand := in.inferExpr(env, e.Operand)
	if operand == nil {
		return nil
	}
	switch e.Op {
	case "not":
		return in.record(e, e.Token, typesystem.Bool)
	case "-", "+":
		s := in.pool.Shallow(operand)
		if typesystem.IsNumeric(s) {
			return in.record(e, e.Token, s)
		}
	}
	in.col.Add(diagnostics.Newf(diagnostics.ErrT004, e.Token,
		"operator '%s' is not defined for %s", e.Op, in.pool.Resolve(operand)))
	return nil
}

func (in *inferrer) inferCompare(env *Env, e *ast.Compare) typesystem.Type {
	left := in.inferExpr(env, e.Left)
	right := in.inferExpr(env, e.Right)
	if left != nil && right != nil {
		ls, rs := in.pool.Shallow(left), in.pool.Shallow(right)
		// Mixed-numeric comparison is fine; anything else must agree.
		if !(typesystem.IsNumeric(ls) && typesystem.IsNumeric(rs)) {
			in.unify(left, right, e.Token, diagnostics.ErrT004,
				"comparison operands must share one type")
		}
	}
	return in.record(e, e.Token, typesystem.Bool)
}
