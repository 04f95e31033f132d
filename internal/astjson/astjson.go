// Package astjson decodes the frontend's JSON dump into the ast
// package's node types. The dump is one document per program: a list of
// modules, each a dotted path, a source file name, and a statement
// list. Every node object carries "kind" plus kind-specific fields and
// a source position.
package astjson

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/token"
)

// dump keeps each module as raw JSON so the decoder can fingerprint
// the exact bytes before unpacking them; the hash keys the export
// cache.
type dump struct {
	Modules []json.RawMessage `json:"modules"`
}

type moduleDump struct {
	Path string `json:"path"`
	File string `json:"file"`
	Body []node `json:"body"`
}

// node is the wire shape of every AST node. Only the fields relevant to
// a node's kind are populated; the decoder ignores the rest.
type node struct {
	Kind string `json:"kind"`
	Line int    `json:"line"`
	Col  int    `json:"col"`

	Name  string          `json:"name,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	Op    string          `json:"op,omitempty"`

	Left    *node  `json:"left,omitempty"`
	Right   *node  `json:"right,omitempty"`
	Operand *node  `json:"operand,omitempty"`
	Values  []node `json:"values,omitempty"`
	Keys    []node `json:"keys,omitempty"`
	Elems   []node `json:"elems,omitempty"`

	Target     *node `json:"target,omitempty"`
	Annotation *node `json:"annotation,omitempty"`
	Func       *node `json:"func,omitempty"`
	Args       []node `json:"args,omitempty"`
	Object     *node `json:"object,omitempty"`
	Index      *node `json:"index,omitempty"`

	Params  []paramDump `json:"params,omitempty"`
	Returns *node       `json:"returns,omitempty"`
	Bases   []string    `json:"bases,omitempty"`
	Fields  []fieldDump `json:"fields,omitempty"`
	Methods []node      `json:"methods,omitempty"`

	Cond *node  `json:"cond,omitempty"`
	Then []node `json:"then,omitempty"`
	Else []node `json:"else,omitempty"`
	Var  *node  `json:"var,omitempty"`
	Iter *node  `json:"iter,omitempty"`
	Body []node `json:"body,omitempty"`

	Handlers []handlerDump `json:"handlers,omitempty"`
	OrElse   []node        `json:"orelse,omitempty"`
	Final    []node        `json:"finally,omitempty"`
	Exc      *node         `json:"exc,omitempty"`

	Module string     `json:"module,omitempty"`
	Alias  string     `json:"alias,omitempty"`
	Level  int        `json:"level,omitempty"`
	Names  []nameDump `json:"names,omitempty"`

	Key  *node `json:"key,omitempty"`
	Val  *node `json:"val,omitempty"`
	Elem *node `json:"elem,omitempty"`
}

type paramDump struct {
	Name       string `json:"name"`
	Annotation *node  `json:"annotation,omitempty"`
	Line       int    `json:"line"`
	Col        int    `json:"col"`
}

type fieldDump struct {
	Name string `json:"name"`
	Type node   `json:"type"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

type handlerDump struct {
	Class string `json:"class,omitempty"`
	Alias string `json:"alias,omitempty"`
	Body  []node `json:"body"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

type nameDump struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

func (n *node) token() token.Token {
	return token.Token{Lexeme: n.Kind, Line: n.Line, Column: n.Col}
}

func tokenAt(line, col int, lexeme string) token.Token {
	return token.Token{Lexeme: lexeme, Line: line, Column: col}
}

// valueNode decodes the "value" field as a nested node. Literal kinds
// decode the same field as a scalar instead.
func (n *node) valueNode() (*node, error) {
	if len(n.Value) == 0 || string(n.Value) == "null" {
		return nil, nil
	}
	var out node
	if err := json.Unmarshal(n.Value, &out); err != nil {
		return nil, fmt.Errorf("%s at %d:%d: bad value: %w", n.Kind, n.Line, n.Col, err)
	}
	return &out, nil
}

// Decode reads a JSON dump and returns its modules in dump order, each
// stamped with the sha256 of its raw dump content.
func Decode(r io.Reader) ([]*ast.Module, error) {
	var d dump
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode ast dump: %w", err)
	}

	out := make([]*ast.Module, 0, len(d.Modules))
	for _, raw := range d.Modules {
		var md moduleDump
		mdec := json.NewDecoder(bytes.NewReader(raw))
		mdec.DisallowUnknownFields()
		if err := mdec.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode ast dump: %w", err)
		}
		body, err := decodeBody(md.Body)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", md.Path, err)
		}
		sum := sha256.Sum256(raw)
		out = append(out, &ast.Module{
			Path: md.Path,
			File: md.File,
			Hash: hex.EncodeToString(sum[:]),
			Body: body,
		})
	}
	return out, nil
}

func decodeBody(nodes []node) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(nodes))
	for i := range nodes {
		s, err := decodeStmt(&nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
