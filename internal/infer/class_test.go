package infer

import (
	"testing"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/typesystem"
)

func pointClass() *ast.ClassDef {
	intType := &ast.NamedType{Name: "int"}
	return &ast.ClassDef{
		Token: tok(),
		Name:  "Point",
		Fields: []*ast.FieldDecl{
			{Token: tok(), Name: "x", Type: intType},
			{Token: tok(), Name: "y", Type: intType},
		},
		Methods: []*ast.FunctionDef{
			{
				Token: tok(),
				Name:  "__init__",
				Params: []*ast.Param{
					{Token: tok(), Name: "self"},
					{Token: tok(), Name: "x", Annotation: intType},
					{Token: tok(), Name: "y", Annotation: intType},
				},
				Body: []ast.Statement{
					&ast.Assign{
						Token: tok(),
						Target: &ast.Attribute{
							Token:  tok(),
							Object: &ast.Name{Token: tok(), Value: "self"},
							Name:   "x",
						},
						Value: &ast.Name{Token: tok(), Value: "x"},
					},
					&ast.Assign{
						Token: tok(),
						Target: &ast.Attribute{
							Token:  tok(),
							Object: &ast.Name{Token: tok(), Value: "self"},
							Name:   "y",
						},
						Value: &ast.Name{Token: tok(), Value: "y"},
					},
				},
			},
			{
				Token:      tok(),
				Name:       "sum",
				Params:     []*ast.Param{{Token: tok(), Name: "self"}},
				ReturnType: intType,
				Body: []ast.Statement{
					&ast.Return{Token: tok(), Value: &ast.BinOp{
						Token: tok(),
						Left: &ast.Attribute{Token: tok(),
							Object: &ast.Name{Token: tok(), Value: "self"}, Name: "x"},
						Op: "+",
						Right: &ast.Attribute{Token: tok(),
							Object: &ast.Name{Token: tok(), Value: "self"}, Name: "y"},
					}},
				},
			},
		},
	}
}

func construct(args ...ast.Expression) *ast.Call {
	return &ast.Call{Token: tok(), Func: &ast.Name{Token: tok(), Value: "Point"}, Args: args}
}

func TestConstructorAndMethodCalls(t *testing.T) {
	decl, target := assign("p", construct(intLit(1), intLit(2)))
	callTarget := &ast.Name{Token: tok(), Value: "s"}
	call := &ast.Assign{
		Token:  tok(),
		Target: callTarget,
		Value: &ast.Call{
			Token: tok(),
			Func: &ast.Attribute{Token: tok(),
				Object: &ast.Name{Token: tok(), Value: "p"}, Name: "sum"},
		},
	}
	res, col := run(t, []ast.Statement{pointClass(), decl, call})
	if col.HasErrors() {
		t.Fatalf("unexpected errors: %v", col.Errors())
	}
	got, _ := res.TypeOf(target)
	if !typesystem.Equal(got, typesystem.TClass{Name: "Point"}) {
		t.Errorf("p : %s, want Point", got)
	}
	got, _ = res.TypeOf(callTarget)
	if !typesystem.Equal(got, typesystem.Int) {
		t.Errorf("p.sum() : %s, want int", got)
	}
}

func TestConstructorArgCountMismatch(t *testing.T) {
	decl, _ := assign("p", construct(intLit(1)))
	_, col := run(t, []ast.Statement{pointClass(), decl})
	if !hasCode(col, diagnostics.ErrC007) {
		t.Errorf("want %s for wrong constructor arity, got %v", diagnostics.ErrC007, col.Errors())
	}
}

func TestConstructorArgTypeMismatch(t *testing.T) {
	decl, _ := assign("p", construct(intLit(1), floatLit(2.0)))
	_, col := run(t, []ast.Statement{pointClass(), decl})
	// Arguments are exact: float does not narrow to int.
	if !hasCode(col, diagnostics.ErrC007) {
		t.Errorf("want %s for float where int expected, got %v", diagnostics.ErrC007, col.Errors())
	}
}

func TestMethodArgMismatch(t *testing.T) {
	decl, _ := assign("p", construct(intLit(1), intLit(2)))
	call := &ast.ExprStmt{Value: &ast.Call{
		Token: tok(),
		Func: &ast.Attribute{Token: tok(),
			Object: &ast.Name{Token: tok(), Value: "p"}, Name: "sum"},
		Args: []ast.Expression{intLit(9)},
	}}
	_, col := run(t, []ast.Statement{pointClass(), decl, call})
	if !hasCode(col, diagnostics.ErrC008) {
		t.Errorf("want %s for extra method argument, got %v", diagnostics.ErrC008, col.Errors())
	}
}

func TestUndeclaredFieldAssignment(t *testing.T) {
	decl, _ := assign("p", construct(intLit(1), intLit(2)))
	write := &ast.Assign{
		Token: tok(),
		Target: &ast.Attribute{Token: tok(),
			Object: &ast.Name{Token: tok(), Value: "p"}, Name: "z"},
		Value: intLit(3),
	}
	_, col := run(t, []ast.Statement{pointClass(), decl, write})
	if !hasCode(col, diagnostics.ErrC004) {
		t.Errorf("want %s for undeclared field, got %v", diagnostics.ErrC004, col.Errors())
	}
}

func TestFieldTypeMismatchBoolIsNotInt(t *testing.T) {
	decl, _ := assign("p", construct(intLit(1), intLit(2)))
	write := &ast.Assign{
		Token: tok(),
		Target: &ast.Attribute{Token: tok(),
			Object: &ast.Name{Token: tok(), Value: "p"}, Name: "x"},
		Value: &ast.BoolLit{Token: tok(), Value: true},
	}
	_, col := run(t, []ast.Statement{pointClass(), decl, write})
	if !hasCode(col, diagnostics.ErrC005) {
		t.Errorf("want %s for bool into int field, got %v", diagnostics.ErrC005, col.Errors())
	}
}

func TestUndeclaredMemberRead(t *testing.T) {
	decl, _ := assign("p", construct(intLit(1), intLit(2)))
	read := &ast.ExprStmt{Value: &ast.Call{
		Token: tok(),
		Func:  &ast.Name{Token: tok(), Value: "print"},
		Args: []ast.Expression{&ast.Attribute{Token: tok(),
			Object: &ast.Name{Token: tok(), Value: "p"}, Name: "missing"}},
	}}
	_, col := run(t, []ast.Statement{pointClass(), decl, read})
	if !hasCode(col, diagnostics.ErrC006) {
		t.Errorf("want %s for unknown member, got %v", diagnostics.ErrC006, col.Errors())
	}
}

func TestSuperDispatch(t *testing.T) {
	intType := &ast.NamedType{Name: "int"}
	base := &ast.ClassDef{
		Token: tok(),
		Name:  "Base",
		Methods: []*ast.FunctionDef{{
			Token:      tok(),
			Name:       "value",
			Params:     []*ast.Param{{Token: tok(), Name: "self"}},
			ReturnType: intType,
			Body:       []ast.Statement{&ast.Return{Token: tok(), Value: intLit(1)}},
		}},
	}
	derived := &ast.ClassDef{
		Token: tok(),
		Name:  "Derived",
		Bases: []*ast.BaseRef{{Token: tok(), Name: "Base"}},
		Methods: []*ast.FunctionDef{{
			Token:      tok(),
			Name:       "value",
			Params:     []*ast.Param{{Token: tok(), Name: "self"}},
			ReturnType: intType,
			Body: []ast.Statement{
				&ast.Return{Token: tok(), Value: &ast.BinOp{
					Token: tok(),
					Left: &ast.Call{
						Token: tok(),
						Func: &ast.Attribute{Token: tok(),
							Object: &ast.SuperCall{Token: tok()}, Name: "value"},
					},
					Op:    "+",
					Right: intLit(1),
				}},
			},
		}},
	}
	_, col := run(t, []ast.Statement{base, derived})
	if col.HasErrors() {
		t.Fatalf("super().value() should type-check: %v", col.Errors())
	}
}

func TestUnknownSuperMethod(t *testing.T) {
	base := &ast.ClassDef{Token: tok(), Name: "Base"}
	derived := &ast.ClassDef{
		Token: tok(),
		Name:  "Derived",
		Bases: []*ast.BaseRef{{Token: tok(), Name: "Base"}},
		Methods: []*ast.FunctionDef{{
			Token:  tok(),
			Name:   "go",
			Params: []*ast.Param{{Token: tok(), Name: "self"}},
			Body: []ast.Statement{
				&ast.ExprStmt{Value: &ast.Call{
					Token: tok(),
					Func: &ast.Attribute{Token: tok(),
						Object: &ast.SuperCall{Token: tok()}, Name: "nothing"},
				}},
			},
		}},
	}
	_, col := run(t, []ast.Statement{base, derived})
	if !hasCode(col, diagnostics.ErrC009) {
		t.Errorf("want %s for unknown super method, got %v", diagnostics.ErrC009, col.Errors())
	}
}
