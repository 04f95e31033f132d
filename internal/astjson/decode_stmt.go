package astjson

import (
	"fmt"

	"github.com/pystatic/pystatic/internal/ast"
)

func decodeStmt(n *node) (ast.Statement, error) {
	switch n.Kind {
	case "function_def":
		return decodeFunctionDef(n)
	case "class_def":
		return decodeClassDef(n)

	case "assign":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		vn, err := n.valueNode()
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(vn)
		if err != nil {
			return nil, err
		}
		var annotation ast.TypeExpr
		if n.Annotation != nil {
			annotation, err = decodeType(n.Annotation)
			if err != nil {
				return nil, err
			}
		}
		return &ast.Assign{Token: n.token(), Target: target, Annotation: annotation, Value: value}, nil

	case "aug_assign":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		vn, err := n.valueNode()
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(vn)
		if err != nil {
			return nil, err
		}
		return &ast.AugAssign{Token: n.token(), Target: target, Op: n.Op, Value: value}, nil

	case "expr_stmt":
		vn, err := n.valueNode()
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(vn)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Token: n.token(), Value: value}, nil

	case "return":
		ret := &ast.Return{Token: n.token()}
		vn, err := n.valueNode()
		if err != nil {
			return nil, err
		}
		if vn != nil {
			v, err := decodeExpr(vn)
			if err != nil {
				return nil, err
			}
			ret.Value = v
		}
		return ret, nil

	case "if":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeBody(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeBody(n.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Token: n.token(), Cond: cond, Then: then, Else: els}, nil

	case "while":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{Token: n.token(), Cond: cond, Body: body}, nil

	case "for":
		if n.Var == nil || n.Var.Kind != "name" {
			return nil, fmt.Errorf("for at %d:%d: loop variable must be a name", n.Line, n.Col)
		}
		iter, err := decodeExpr(n.Iter)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.For{
			Token: n.token(),
			Var:   &ast.Name{Token: n.Var.token(), Value: n.Var.Name},
			Iter:  iter,
			Body:  body,
		}, nil

	case "break":
		return &ast.Break{Token: n.token()}, nil
	case "continue":
		return &ast.Continue{Token: n.token()}, nil
	case "pass":
		return &ast.Pass{Token: n.token()}, nil

	case "try":
		return decodeTry(n)

	case "raise":
		r := &ast.Raise{Token: n.token()}
		if n.Exc != nil {
			exc, err := decodeExpr(n.Exc)
			if err != nil {
				return nil, err
			}
			r.Exc = exc
		}
		return r, nil

	case "import":
		return &ast.Import{Token: n.token(), Module: n.Module, Alias: n.Alias}, nil

	case "import_from":
		imp := &ast.ImportFrom{Token: n.token(), Level: n.Level, Module: n.Module}
		for _, nm := range n.Names {
			imp.Names = append(imp.Names, &ast.ImportedName{
				Token: tokenAt(nm.Line, nm.Col, nm.Name),
				Name:  nm.Name,
				Alias: nm.Alias,
			})
		}
		return imp, nil
	}
	return nil, fmt.Errorf("unknown statement kind %q at %d:%d", n.Kind, n.Line, n.Col)
}

func decodeFunctionDef(n *node) (*ast.FunctionDef, error) {
	def := &ast.FunctionDef{Token: n.token(), Name: n.Name}
	for _, p := range n.Params {
		param := &ast.Param{Token: tokenAt(p.Line, p.Col, p.Name), Name: p.Name}
		if p.Annotation != nil {
			a, err := decodeType(p.Annotation)
			if err != nil {
				return nil, err
			}
			param.Annotation = a
		}
		def.Params = append(def.Params, param)
	}
	if n.Returns != nil {
		r, err := decodeType(n.Returns)
		if err != nil {
			return nil, err
		}
		def.ReturnType = r
	}
	body, err := decodeBody(n.Body)
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func decodeClassDef(n *node) (*ast.ClassDef, error) {
	def := &ast.ClassDef{Token: n.token(), Name: n.Name}
	for _, b := range n.Bases {
		def.Bases = append(def.Bases, &ast.BaseRef{Token: n.token(), Name: b})
	}
	for _, f := range n.Fields {
		ft, err := decodeType(&f.Type)
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, &ast.FieldDecl{
			Token: tokenAt(f.Line, f.Col, f.Name),
			Name:  f.Name,
			Type:  ft,
		})
	}
	for i := range n.Methods {
		m, err := decodeFunctionDef(&n.Methods[i])
		if err != nil {
			return nil, err
		}
		def.Methods = append(def.Methods, m)
	}
	return def, nil
}

func decodeTry(n *node) (*ast.Try, error) {
	body, err := decodeBody(n.Body)
	if err != nil {
		return nil, err
	}
	try := &ast.Try{Token: n.token(), Body: body}
	for _, h := range n.Handlers {
		hBody, err := decodeBody(h.Body)
		if err != nil {
			return nil, err
		}
		try.Handlers = append(try.Handlers, &ast.ExceptHandler{
			Token:     tokenAt(h.Line, h.Col, "except"),
			ClassName: h.Class,
			Alias:     h.Alias,
			Body:      hBody,
		})
	}
	if try.OrElse, err = decodeBody(n.OrElse); err != nil {
		return nil, err
	}
	if try.Final, err = decodeBody(n.Final); err != nil {
		return nil, err
	}
	return try, nil
}
