package ast

import (
	"github.com/pystatic/pystatic/internal/token"
)

// Name is a variable reference.
type Name struct {
	Token token.Token
	Value string
}

func (n *Name) expressionNode()      {}
func (n *Name) TokenLiteral() string { return n.Token.Lexeme }
func (n *Name) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// IntLit is an integer literal.
type IntLit struct {
	Token token.Token
	Value int64
}

func (l *IntLit) expressionNode()      {}
func (l *IntLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *IntLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// FloatLit is a float literal.
type FloatLit struct {
	Token token.Token
	Value float64
}

func (l *FloatLit) expressionNode()      {}
func (l *FloatLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *FloatLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// StringLit is a string literal (value already unescaped by the parser).
type StringLit struct {
	Token token.Token
	Value string
}

func (l *StringLit) expressionNode()      {}
func (l *StringLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *StringLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// BytesLit is a bytes literal.
type BytesLit struct {
	Token token.Token
	Value []byte
}

func (l *BytesLit) expressionNode()      {}
func (l *BytesLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *BytesLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// BoolLit is True or False.
type BoolLit struct {
	Token token.Token
	Value bool
}

func (l *BoolLit) expressionNode()      {}
func (l *BoolLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *BoolLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// NoneLit is the None constant.
type NoneLit struct {
	Token token.Token
}

func (l *NoneLit) expressionNode()      {}
func (l *NoneLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *NoneLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// ListLit is a list display. An empty one allocates a fresh element
// type variable during inference.
type ListLit struct {
	Token token.Token
	Elems []Expression
}

func (l *ListLit) expressionNode()      {}
func (l *ListLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *ListLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// DictLit is a dict display; Keys and Values are parallel.
type DictLit struct {
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (l *DictLit) expressionNode()      {}
func (l *DictLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *DictLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// SetLit is a set display. The parser lowers `set()` to an empty SetLit.
type SetLit struct {
	Token token.Token
	Elems []Expression
}

func (l *SetLit) expressionNode()      {}
func (l *SetLit) TokenLiteral() string { return l.Token.Lexeme }
func (l *SetLit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// BinOp is an arithmetic or string binary operation: + - * / // %.
type BinOp struct {
	Token token.Token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return b.Token.Lexeme }
func (b *BinOp) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// UnaryOp is -x or not x.
type UnaryOp struct {
	Token   token.Token
	Op      string
	Operand Expression
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Lexeme }
func (u *UnaryOp) GetToken() token.Token {
	if u == nil {
		return token.Token{}
	}
	return u.Token
}

// BoolOp is `and`/`or` over two or more values.
type BoolOp struct {
	Token  token.Token
	Op     string
	Values []Expression
}

func (b *BoolOp) expressionNode()      {}
func (b *BoolOp) TokenLiteral() string { return b.Token.Lexeme }
func (b *BoolOp) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// Compare is a single comparison: == != < <= > >=.
type Compare struct {
	Token token.Token
	Left  Expression
	Op    string
	Right Expression
}

func (c *Compare) expressionNode()      {}
func (c *Compare) TokenLiteral() string { return c.Token.Lexeme }
func (c *Compare) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Call covers function calls, constructor calls (Func is a Name bound to
// a class) and method calls (Func is an Attribute).
type Call struct {
	Token token.Token
	Func  Expression
	Args  []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Lexeme }
func (c *Call) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// SuperCall is the `super()` expression; valid only as the object of a
// method-call attribute inside a method body.
type SuperCall struct {
	Token token.Token
}

func (s *SuperCall) expressionNode()      {}
func (s *SuperCall) TokenLiteral() string { return s.Token.Lexeme }
func (s *SuperCall) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// Attribute is obj.name — a field read, a method reference, or a module
// member reference when obj names an imported module.
type Attribute struct {
	Token  token.Token
	Object Expression
	Name   string
}

func (a *Attribute) expressionNode()      {}
func (a *Attribute) TokenLiteral() string { return a.Token.Lexeme }
func (a *Attribute) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// Subscript is obj[index].
type Subscript struct {
	Token  token.Token
	Object Expression
	Index  Expression
}

func (s *Subscript) expressionNode()      {}
func (s *Subscript) TokenLiteral() string { return s.Token.Lexeme }
func (s *Subscript) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}
