package ast

import (
	"github.com/pystatic/pystatic/internal/token"
)

// TokenProvider is implemented by any node that can report its primary
// token, used for diagnostics.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all syntax-tree nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// TypeExpr is a source-level type annotation (int, list[str], MyClass).
type TypeExpr interface {
	Node
	typeExprNode()
	GetToken() token.Token
}

// Module is the root node the external parser hands over, one per source
// module. Path is the dotted module path ("pkg.sub.mod"); File is the
// source path for diagnostics. Hash fingerprints the dump content the
// module was decoded from; it is empty for synthesized modules.
type Module struct {
	Path string
	File string
	Hash string
	Body []Statement
}

func (m *Module) TokenLiteral() string {
	if len(m.Body) > 0 {
		return m.Body[0].TokenLiteral()
	}
	return ""
}

// Imports returns the import statements of the module body, in order.
func (m *Module) Imports() []Statement {
	var out []Statement
	for _, s := range m.Body {
		switch s.(type) {
		case *Import, *ImportFrom:
			out = append(out, s)
		}
	}
	return out
}

// NamedType is a bare annotation: int, float, bool, str, bytes,
// bytearray, None, or a class name.
type NamedType struct {
	Token token.Token
	Name  string
}

func (t *NamedType) typeExprNode()        {}
func (t *NamedType) TokenLiteral() string { return t.Token.Lexeme }
func (t *NamedType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// ListType is list[T].
type ListType struct {
	Token token.Token
	Elem  TypeExpr
}

func (t *ListType) typeExprNode()        {}
func (t *ListType) TokenLiteral() string { return t.Token.Lexeme }
func (t *ListType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// DictType is dict[K, V].
type DictType struct {
	Token token.Token
	Key   TypeExpr
	Value TypeExpr
}

func (t *DictType) typeExprNode()        {}
func (t *DictType) TokenLiteral() string { return t.Token.Lexeme }
func (t *DictType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// SetType is set[T].
type SetType struct {
	Token token.Token
	Elem  TypeExpr
}

func (t *SetType) typeExprNode()        {}
func (t *SetType) TokenLiteral() string { return t.Token.Lexeme }
func (t *SetType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}
