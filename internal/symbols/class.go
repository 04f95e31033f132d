package symbols

import (
	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/token"
	"github.com/pystatic/pystatic/internal/typesystem"
)

// Field is one declared field slot: name plus declared type.
type Field struct {
	Name  string
	Type  typesystem.Type
	Token token.Token
}

// Method is a resolved method signature. Sig.Params[0] is always the
// receiver. Def is nil for builtin methods (the runtime provides the
// body).
type Method struct {
	Name  string
	Sig   typesystem.TFunc
	Def   *ast.FunctionDef
	Token token.Token
}

// Function is a module-level function.
type Function struct {
	Name   string
	Module string
	Sig    typesystem.TFunc
	Def    *ast.FunctionDef
}

// Class is a registered class descriptor. Base is the declared base
// name; the descriptor holds no pointer to it — resolution always goes
// through the table, so the chain cannot form an ownership cycle.
type Class struct {
	Name   string
	Module string
	Base   string // "" for root classes
	Fields []*Field
	Token  token.Token

	methods     map[string]*Method
	methodOrder []string

	// isException caches whether the base chain terminates at the
	// builtin Exception root. Computed once at finalize.
	isException bool
	builtin     bool
}

func newClass(name, module string, tok token.Token) *Class {
	return &Class{
		Name:    name,
		Module:  module,
		Token:   tok,
		methods: make(map[string]*Method),
	}
}

// OwnMethod looks up a method on this class only, no base walk.
func (c *Class) OwnMethod(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// OwnField looks up a declared field on this class only.
func (c *Class) OwnField(name string) (*Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Methods returns own methods in declaration order.
func (c *Class) Methods() []*Method {
	out := make([]*Method, 0, len(c.methodOrder))
	for _, name := range c.methodOrder {
		out = append(out, c.methods[name])
	}
	return out
}

func (c *Class) addMethod(m *Method) {
	if _, exists := c.methods[m.Name]; !exists {
		c.methodOrder = append(c.methodOrder, m.Name)
	}
	c.methods[m.Name] = m
}

// IsException reports whether the class is usable in raise/except.
func (c *Class) IsException() bool { return c.isException }

// Type returns the nominal instance type for the class.
func (c *Class) Type() typesystem.TClass { return typesystem.TClass{Name: c.Name} }

// IsMagic reports whether name is one of the magic-method slots.
func IsMagic(name string) bool {
	switch name {
	case config.InitMethodName, config.StrMethodName, config.ReprMethodName,
		config.LenMethodName, config.GetItemMethodName, config.SetItemMethodName:
		return true
	}
	return false
}
