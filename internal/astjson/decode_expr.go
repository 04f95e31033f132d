package astjson

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pystatic/pystatic/internal/ast"
)

func decodeExpr(n *node) (ast.Expression, error) {
	if n == nil {
		return nil, fmt.Errorf("missing expression node")
	}
	switch n.Kind {
	case "name":
		return &ast.Name{Token: n.token(), Value: n.Name}, nil

	case "int":
		var v int64
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("int at %d:%d: %w", n.Line, n.Col, err)
		}
		return &ast.IntLit{Token: n.token(), Value: v}, nil

	case "float":
		var v float64
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("float at %d:%d: %w", n.Line, n.Col, err)
		}
		return &ast.FloatLit{Token: n.token(), Value: v}, nil

	case "str":
		var v string
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("str at %d:%d: %w", n.Line, n.Col, err)
		}
		return &ast.StringLit{Token: n.token(), Value: v}, nil

	case "bytes":
		var enc string
		if err := json.Unmarshal(n.Value, &enc); err != nil {
			return nil, fmt.Errorf("bytes at %d:%d: %w", n.Line, n.Col, err)
		}
		raw, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("bytes at %d:%d: %w", n.Line, n.Col, err)
		}
		return &ast.BytesLit{Token: n.token(), Value: raw}, nil

	case "bool":
		var v bool
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("bool at %d:%d: %w", n.Line, n.Col, err)
		}
		return &ast.BoolLit{Token: n.token(), Value: v}, nil

	case "none":
		return &ast.NoneLit{Token: n.token()}, nil

	case "list":
		elems, err := decodeExprs(n.Elems)
		if err != nil {
			return nil, err
		}
		return &ast.ListLit{Token: n.token(), Elems: elems}, nil

	case "set":
		elems, err := decodeExprs(n.Elems)
		if err != nil {
			return nil, err
		}
		return &ast.SetLit{Token: n.token(), Elems: elems}, nil

	case "dict":
		if len(n.Keys) != len(n.Values) {
			return nil, fmt.Errorf("dict at %d:%d: %d keys but %d values",
				n.Line, n.Col, len(n.Keys), len(n.Values))
		}
		keys, err := decodeExprs(n.Keys)
		if err != nil {
			return nil, err
		}
		values, err := decodeExprs(n.Values)
		if err != nil {
			return nil, err
		}
		return &ast.DictLit{Token: n.token(), Keys: keys, Values: values}, nil

	case "binop":
		left, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Token: n.token(), Left: left, Op: n.Op, Right: right}, nil

	case "unaryop":
		operand, err := decodeExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: n.token(), Op: n.Op, Operand: operand}, nil

	case "boolop":
		values, err := decodeExprs(n.Values)
		if err != nil {
			return nil, err
		}
		return &ast.BoolOp{Token: n.token(), Op: n.Op, Values: values}, nil

	case "compare":
		left, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Compare{Token: n.token(), Left: left, Op: n.Op, Right: right}, nil

	case "call":
		fn, err := decodeExpr(n.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Token: n.token(), Func: fn, Args: args}, nil

	case "super":
		return &ast.SuperCall{Token: n.token()}, nil

	case "attribute":
		obj, err := decodeExpr(n.Object)
		if err != nil {
			return nil, err
		}
		return &ast.Attribute{Token: n.token(), Object: obj, Name: n.Name}, nil

	case "subscript":
		obj, err := decodeExpr(n.Object)
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(n.Index)
		if err != nil {
			return nil, err
		}
		return &ast.Subscript{Token: n.token(), Object: obj, Index: idx}, nil
	}
	return nil, fmt.Errorf("unknown expression kind %q at %d:%d", n.Kind, n.Line, n.Col)
}

func decodeExprs(nodes []node) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(nodes))
	for i := range nodes {
		e, err := decodeExpr(&nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// decodeType decodes a type annotation: "named" with a name, or the
// parameterized container forms.
func decodeType(n *node) (ast.TypeExpr, error) {
	switch n.Kind {
	case "named":
		return &ast.NamedType{Token: n.token(), Name: n.Name}, nil
	case "list_type":
		elem, err := decodeType(n.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Token: n.token(), Elem: elem}, nil
	case "set_type":
		elem, err := decodeType(n.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.SetType{Token: n.token(), Elem: elem}, nil
	case "dict_type":
		key, err := decodeType(n.Key)
		if err != nil {
			return nil, err
		}
		val, err := decodeType(n.Val)
		if err != nil {
			return nil, err
		}
		return &ast.DictType{Token: n.token(), Key: key, Value: val}, nil
	}
	return nil, fmt.Errorf("unknown type kind %q at %d:%d", n.Kind, n.Line, n.Col)
}
