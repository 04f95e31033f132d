package symbols

import (
	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/typesystem"
)

// Register builds the class and function tables for one module. It runs
// in three passes: declare every class name, then resolve bases and
// signatures (so forward references and mutual references work), then
// finalize the exception flags. Classes must be registered before any
// body is inferred.
//
// Registration diagnostics that leave the hierarchy unusable (multiple
// bases, unknown base, base cycle) make the table unsafe for body
// inference; the caller checks Collector.HasErrors before proceeding.
func Register(mod *ast.Module, col *diagnostics.Collector) *Table {
	t := NewTable()

	var classDefs []*ast.ClassDef
	var funcDefs []*ast.FunctionDef
	for _, stmt := range mod.Body {
		switch s := stmt.(type) {
		case *ast.ClassDef:
			classDefs = append(classDefs, s)
			t.addClass(newClass(s.Name, mod.Path, s.Token))
		case *ast.FunctionDef:
			funcDefs = append(funcDefs, s)
		}
	}

	for _, def := range classDefs {
		t.registerClass(def, col)
	}
	for _, def := range funcDefs {
		t.registerFunction(def, mod.Path, col)
	}

	t.finalize(col)
	return t
}

func (t *Table) registerClass(def *ast.ClassDef, col *diagnostics.Collector) {
	c := t.classes[def.Name]

	switch {
	case len(def.Bases) > 1:
		col.Add(diagnostics.Newf(diagnostics.ErrC001, def.GetToken(),
			"class '%s' declares %d base classes; multiple inheritance is not supported",
			def.Name, len(def.Bases)))
	case len(def.Bases) == 1:
		base := def.Bases[0]
		if _, ok := t.classes[base.Name]; !ok {
			col.Add(diagnostics.Newf(diagnostics.ErrC010, base.Token,
				"unknown base class '%s' for class '%s'", base.Name, def.Name))
		} else {
			c.Base = base.Name
		}
	}

	for _, fd := range def.Fields {
		ft, err := t.TypeFromExpr(fd.Type)
		if err != nil {
			col.Add(err)
			continue
		}
		c.Fields = append(c.Fields, &Field{Name: fd.Name, Type: ft, Token: fd.Token})
	}

	for _, md := range def.Methods {
		if m, ok := t.methodSignature(c, md, col); ok {
			c.addMethod(m)
		}
	}
}

// methodSignature builds a method signature. The first declared
// parameter is the implicit receiver and needs no annotation; a method
// declared without it is rejected at registration time, independent of
// any call site. Every other parameter requires a declared type.
func (t *Table) methodSignature(c *Class, def *ast.FunctionDef, col *diagnostics.Collector) (*Method, bool) {
	if len(def.Params) == 0 {
		col.Add(diagnostics.Newf(diagnostics.ErrC002, def.GetToken(),
			"method '%s.%s' is missing the receiver parameter", c.Name, def.Name))
		return nil, false
	}

	params := make([]typesystem.Type, 0, len(def.Params))
	params = append(params, c.Type())
	ok := true
	for _, p := range def.Params[1:] {
		if p.Annotation == nil {
			col.Add(diagnostics.Newf(diagnostics.ErrC003, p.GetToken(),
				"parameter '%s' of '%s.%s' is missing a type annotation", p.Name, c.Name, def.Name))
			ok = false
			continue
		}
		pt, err := t.TypeFromExpr(p.Annotation)
		if err != nil {
			col.Add(err)
			ok = false
			continue
		}
		params = append(params, pt)
	}
	if !ok {
		return nil, false
	}

	ret, retOK := t.returnType(def, col)
	if !retOK {
		return nil, false
	}
	// A constructor produces the instance.
	if def.Name == config.InitMethodName {
		ret = c.Type()
	}

	return &Method{
		Name:  def.Name,
		Sig:   typesystem.TFunc{Params: params, Return: ret},
		Def:   def,
		Token: def.GetToken(),
	}, true
}

func (t *Table) registerFunction(def *ast.FunctionDef, module string, col *diagnostics.Collector) {
	params := make([]typesystem.Type, 0, len(def.Params))
	ok := true
	for _, p := range def.Params {
		if p.Annotation == nil {
			col.Add(diagnostics.Newf(diagnostics.ErrC003, p.GetToken(),
				"parameter '%s' of function '%s' is missing a type annotation", p.Name, def.Name))
			ok = false
			continue
		}
		pt, err := t.TypeFromExpr(p.Annotation)
		if err != nil {
			col.Add(err)
			ok = false
			continue
		}
		params = append(params, pt)
	}
	ret, retOK := t.returnType(def, col)
	if !ok || !retOK {
		return
	}
	t.AddFunction(&Function{
		Name:   def.Name,
		Module: module,
		Sig:    typesystem.TFunc{Params: params, Return: ret},
		Def:    def,
	})
}

func (t *Table) returnType(def *ast.FunctionDef, col *diagnostics.Collector) (typesystem.Type, bool) {
	if def.ReturnType == nil {
		return typesystem.None, true
	}
	rt, err := t.TypeFromExpr(def.ReturnType)
	if err != nil {
		col.Add(err)
		return nil, false
	}
	return rt, true
}

// finalize rejects base cycles and caches the exception flag. A base
// chain is valid only if it reaches a root within the class count.
func (t *Table) finalize(col *diagnostics.Collector) {
	limit := len(t.classes)
	for _, name := range t.classOrder {
		c := t.classes[name]
		steps := 0
		cur := c
		for cur.Base != "" {
			base, ok := t.classes[cur.Base]
			if !ok {
				break
			}
			steps++
			if steps > limit {
				col.Add(diagnostics.Newf(diagnostics.ErrC010, c.Token,
					"base chain of class '%s' is cyclic", c.Name))
				c.Base = ""
				break
			}
			if base.Name == config.ExceptionRootName {
				c.isException = true
			}
			cur = base
		}
	}
}
