package token

import "fmt"

// Token carries the source position of a syntax-tree node.
// The parser that produced the tree is an external collaborator; only the
// position and the original lexeme survive into the semantic core, for
// diagnostics.
type Token struct {
	Lexeme string
	Line   int
	Column int
}

// Pos formats the position as "line:col".
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

// At is a convenience constructor used heavily in tests.
func At(line, column int) Token {
	return Token{Line: line, Column: column}
}
