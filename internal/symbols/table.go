package symbols

import (
	"fmt"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/typesystem"
)

// Table is the class and function table for one compilation unit.
// Classes must all be registered before any body is inferred; the
// inference engine only reads.
type Table struct {
	classes    map[string]*Class
	classOrder []string
	functions  map[string]*Function
	funcOrder  []string
}

func NewTable() *Table {
	t := &Table{
		classes:   make(map[string]*Class),
		functions: make(map[string]*Function),
	}
	t.registerBuiltins()
	return t
}

// Class looks up a registered class by name.
func (t *Table) Class(name string) (*Class, bool) {
	c, ok := t.classes[name]
	return c, ok
}

// Function looks up a module-level function by name.
func (t *Table) Function(name string) (*Function, bool) {
	f, ok := t.functions[name]
	return f, ok
}

// Classes returns registered classes in registration order.
func (t *Table) Classes() []*Class {
	out := make([]*Class, 0, len(t.classOrder))
	for _, name := range t.classOrder {
		out = append(out, t.classes[name])
	}
	return out
}

func (t *Table) addClass(c *Class) {
	if _, exists := t.classes[c.Name]; !exists {
		t.classOrder = append(t.classOrder, c.Name)
	}
	t.classes[c.Name] = c
}

// AddFunction registers a module-level function.
func (t *Table) AddFunction(f *Function) {
	if _, exists := t.functions[f.Name]; !exists {
		t.funcOrder = append(t.funcOrder, f.Name)
	}
	t.functions[f.Name] = f
}

// AdoptClass re-exports a class registered in another module's table
// under the importer's local name (the exported name, or the import
// alias). The class's own name and its base chain are bound alongside
// it so that method and field resolution on the instance type work in
// this table too. A name the table already binds wins over the import.
func (t *Table) AdoptClass(name string, c *Class, from *Table) {
	if _, exists := t.classes[name]; exists {
		return
	}
	t.classOrder = append(t.classOrder, name)
	t.classes[name] = c

	chain := append([]*Class{c}, from.baseChain(c)...)
	for _, a := range chain {
		if _, exists := t.classes[a.Name]; !exists {
			t.addClass(a)
		}
	}
}

// AdoptFunction re-exports a function from another module's table
// under the importer's local name. A name the table already binds wins
// over the import.
func (t *Table) AdoptFunction(name string, f *Function) {
	if _, exists := t.functions[name]; exists {
		return
	}
	t.funcOrder = append(t.funcOrder, name)
	t.functions[name] = f
}

// TypeFromExpr converts a source annotation to a semantic type. Named
// types that are neither primitives nor registered classes are errors.
func (t *Table) TypeFromExpr(te ast.TypeExpr) (typesystem.Type, *diagnostics.DiagnosticError) {
	switch te := te.(type) {
	case *ast.NamedType:
		switch te.Name {
		case config.IntTypeName:
			return typesystem.Int, nil
		case config.FloatTypeName:
			return typesystem.Float, nil
		case config.BoolTypeName:
			return typesystem.Bool, nil
		case config.StrTypeName:
			return typesystem.Str, nil
		case config.BytesTypeName:
			return typesystem.Bytes, nil
		case config.ByteArrayTypeName:
			return typesystem.ByteArray, nil
		case config.NoneTypeName:
			return typesystem.None, nil
		}
		if _, ok := t.classes[te.Name]; ok {
			return typesystem.TClass{Name: te.Name}, nil
		}
		return nil, diagnostics.Newf(diagnostics.ErrC010, te.GetToken(), "unknown type: '%s'", te.Name)
	case *ast.ListType:
		elem, err := t.TypeFromExpr(te.Elem)
		if err != nil {
			return nil, err
		}
		return typesystem.TList{Elem: elem}, nil
	case *ast.SetType:
		elem, err := t.TypeFromExpr(te.Elem)
		if err != nil {
			return nil, err
		}
		return typesystem.TSet{Elem: elem}, nil
	case *ast.DictType:
		key, err := t.TypeFromExpr(te.Key)
		if err != nil {
			return nil, err
		}
		val, err := t.TypeFromExpr(te.Value)
		if err != nil {
			return nil, err
		}
		return typesystem.TDict{Key: key, Value: val}, nil
	default:
		return nil, diagnostics.Newf(diagnostics.ErrC010, te.GetToken(), "unsupported type annotation %T", te)
	}
}

// baseChain walks from c upward, excluding c itself. The walk is bounded
// by the class count so a (rejected) cycle cannot loop forever.
func (t *Table) baseChain(c *Class) []*Class {
	var chain []*Class
	limit := len(t.classes)
	for cur := c; cur.Base != "" && len(chain) < limit; {
		base, ok := t.classes[cur.Base]
		if !ok {
			break
		}
		chain = append(chain, base)
		cur = base
	}
	return chain
}

// IsAncestor reports whether ancestor is class or one of its bases.
// Used for except-handler matching: a handler matches if its declared
// type is an ancestor (including itself) of the thrown class.
func (t *Table) IsAncestor(ancestor, class *Class) bool {
	if ancestor == class {
		return true
	}
	for _, b := range t.baseChain(class) {
		if b == ancestor {
			return true
		}
	}
	return false
}

// AllFields returns the field layout of c: inherited fields first
// (grandparent before parent), each in its declared order, then c's own
// fields. A field redeclared on a derived class is not a distinct slot.
func (t *Table) AllFields(c *Class) []*Field {
	var out []*Field
	chain := t.baseChain(c)
	seen := make(map[string]bool)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].Fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				out = append(out, f)
			}
		}
	}
	for _, f := range c.Fields {
		if !seen[f.Name] {
			seen[f.Name] = true
			out = append(out, f)
		}
	}
	return out
}

// ResolveField finds a field slot anywhere on c's chain (own first).
func (t *Table) ResolveField(c *Class, name string) (*Field, bool) {
	if f, ok := c.OwnField(name); ok {
		return f, true
	}
	for _, b := range t.baseChain(c) {
		if f, ok := b.OwnField(name); ok {
			return f, true
		}
	}
	return nil, false
}

// ResolveMethod finds a method starting at c's own table and walking the
// single base chain upward; first match wins. The defining class is
// returned alongside the method. Magic-method slots resolve through the
// same path, so overriding one slot leaves siblings inherited.
func (t *Table) ResolveMethod(c *Class, name string) (*Method, *Class, bool) {
	if m, ok := c.OwnMethod(name); ok {
		return m, c, true
	}
	for _, b := range t.baseChain(c) {
		if m, ok := b.OwnMethod(name); ok {
			return m, b, true
		}
	}
	return nil, nil, false
}

// ResolveSuper resolves a super()-qualified call from within class c:
// the calling class's own table is skipped and resolution starts at the
// immediate base. The receiver stays bound as the implicit first
// argument; only the lookup start point moves.
func (t *Table) ResolveSuper(c *Class, name string) (*Method, *Class, bool) {
	for _, b := range t.baseChain(c) {
		if m, ok := b.OwnMethod(name); ok {
			return m, b, true
		}
	}
	return nil, nil, false
}

// DisplayMethod returns the method used for display output: __str__ when
// defined anywhere on the chain, else __repr__, else nil (the engine
// default rendering "<Name object>" applies).
func (t *Table) DisplayMethod(c *Class) (*Method, *Class, bool) {
	if m, def, ok := t.ResolveMethod(c, config.StrMethodName); ok && !def.builtin {
		return m, def, true
	}
	if m, def, ok := t.ResolveMethod(c, config.ReprMethodName); ok && !def.builtin {
		return m, def, true
	}
	return nil, nil, false
}

// DefaultDisplay is the engine-default rendering used when a class
// overrides neither __str__ nor __repr__.
func DefaultDisplay(c *Class) string {
	return fmt.Sprintf("<%s object>", c.Name)
}
