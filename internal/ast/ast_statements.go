package ast

import (
	"github.com/pystatic/pystatic/internal/token"
)

// Param is a declared function/method parameter. Annotation is required
// by the language subset; a nil Annotation is reported at registration.
type Param struct {
	Token      token.Token
	Name       string
	Annotation TypeExpr
}

func (p *Param) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// FunctionDef is a module-level function or a method inside a ClassDef.
// A nil ReturnType means None.
type FunctionDef struct {
	Token      token.Token
	Name       string
	Params     []*Param
	ReturnType TypeExpr
	Body       []Statement
}

func (fd *FunctionDef) statementNode()       {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDef) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// FieldDecl is a class-level field declaration: name: type.
type FieldDecl struct {
	Token token.Token
	Name  string
	Type  TypeExpr
}

func (fd *FieldDecl) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// BaseRef names a declared base class. Declaring more than one is a
// registration-time error; the slice is kept so the resolver can report
// exactly what was written.
type BaseRef struct {
	Token token.Token
	Name  string
}

// ClassDef declares a class with at most one base.
type ClassDef struct {
	Token   token.Token
	Name    string
	Bases   []*BaseRef
	Fields  []*FieldDecl
	Methods []*FunctionDef
}

func (cd *ClassDef) statementNode()       {}
func (cd *ClassDef) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ClassDef) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// Assign covers plain and annotated assignment: target = value,
// target: T = value. Target is a Name, Attribute or Subscript.
type Assign struct {
	Token      token.Token
	Target     Expression
	Annotation TypeExpr
	Value      Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Lexeme }
func (a *Assign) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// AugAssign is target op= value.
type AugAssign struct {
	Token  token.Token
	Target Expression
	Op     string
	Value  Expression
}

func (a *AugAssign) statementNode()       {}
func (a *AugAssign) TokenLiteral() string { return a.Token.Lexeme }
func (a *AugAssign) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// ExprStmt is an expression evaluated for effect (calls, appends).
type ExprStmt struct {
	Token token.Token
	Value Expression
}

func (es *ExprStmt) statementNode()       {}
func (es *ExprStmt) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExprStmt) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// Return with optional value.
type Return struct {
	Token token.Token
	Value Expression
}

func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Lexeme }
func (r *Return) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// If statement; Else may be empty (no else branch) or hold the lowered
// elif chain.
type If struct {
	Token token.Token
	Cond  Expression
	Then  []Statement
	Else  []Statement
}

func (i *If) statementNode()       {}
func (i *If) TokenLiteral() string { return i.Token.Lexeme }
func (i *If) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// While loop.
type While struct {
	Token token.Token
	Cond  Expression
	Body  []Statement
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Lexeme }
func (w *While) GetToken() token.Token {
	if w == nil {
		return token.Token{}
	}
	return w.Token
}

// For iterates a container or range, binding Var to each element.
type For struct {
	Token token.Token
	Var   *Name
	Iter  Expression
	Body  []Statement
}

func (f *For) statementNode()       {}
func (f *For) TokenLiteral() string { return f.Token.Lexeme }
func (f *For) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// Break statement.
type Break struct {
	Token token.Token
}

func (b *Break) statementNode()       {}
func (b *Break) TokenLiteral() string { return b.Token.Lexeme }
func (b *Break) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// Continue statement.
type Continue struct {
	Token token.Token
}

func (c *Continue) statementNode()       {}
func (c *Continue) TokenLiteral() string { return c.Token.Lexeme }
func (c *Continue) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Pass statement.
type Pass struct {
	Token token.Token
}

func (p *Pass) statementNode()       {}
func (p *Pass) TokenLiteral() string { return p.Token.Lexeme }
func (p *Pass) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// ExceptHandler is one typed (or bare) handler of a Try statement.
// ClassName "" means a bare except; Alias binds the caught object.
type ExceptHandler struct {
	Token     token.Token
	ClassName string
	Alias     string
	Body      []Statement
}

func (eh *ExceptHandler) GetToken() token.Token {
	if eh == nil {
		return token.Token{}
	}
	return eh.Token
}

// Try statement: guarded body, handlers in source order, optional else
// and finally regions.
type Try struct {
	Token    token.Token
	Body     []Statement
	Handlers []*ExceptHandler
	OrElse   []Statement
	Final    []Statement
}

func (t *Try) statementNode()       {}
func (t *Try) TokenLiteral() string { return t.Token.Lexeme }
func (t *Try) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// Raise with optional exception expression; nil means bare re-raise.
type Raise struct {
	Token token.Token
	Exc   Expression
}

func (r *Raise) statementNode()       {}
func (r *Raise) TokenLiteral() string { return r.Token.Lexeme }
func (r *Raise) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// Import is `import pkg.mod [as alias]`.
type Import struct {
	Token  token.Token
	Module string
	Alias  string
}

func (i *Import) statementNode()       {}
func (i *Import) TokenLiteral() string { return i.Token.Lexeme }
func (i *Import) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// ImportedName is one name in a from-import, with optional alias.
type ImportedName struct {
	Token token.Token
	Name  string
	Alias string
}

// ImportFrom is `from [.[.[...]]]mod import a, b`. Level counts leading
// dots: 0 absolute, 1 current package, 2 parent, and so on. Module may
// be empty for `from . import name` (module-alias binding).
type ImportFrom struct {
	Token  token.Token
	Level  int
	Module string
	Names  []*ImportedName
}

func (i *ImportFrom) statementNode()       {}
func (i *ImportFrom) TokenLiteral() string { return i.Token.Lexeme }
func (i *ImportFrom) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}
