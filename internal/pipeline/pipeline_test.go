package pipeline

import (
	"testing"

	"github.com/pystatic/pystatic/internal/ast"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/token"
	"github.com/pystatic/pystatic/internal/typesystem"
)

func runPipeline(t *testing.T, opts *config.Options, sources ...*ast.Module) *Context {
	t.Helper()
	ctx := NewContext(opts, sources)
	if err := Run(ctx, Default()...); err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	return ctx
}

func cleanProgram() *ast.Module {
	// x = []; x.append(1); raise handling around it.
	target := &ast.Name{Token: token.At(1, 1), Value: "x"}
	return &ast.Module{
		Path: "main",
		File: "main.py",
		Body: []ast.Statement{
			&ast.Assign{Token: token.At(1, 1), Target: target, Value: &ast.ListLit{Token: token.At(1, 5)}},
			&ast.ExprStmt{Token: token.At(2, 1), Value: &ast.Call{
				Token: token.At(2, 1),
				Func: &ast.Attribute{Token: token.At(2, 1),
					Object: &ast.Name{Token: token.At(2, 1), Value: "x"}, Name: "append"},
				Args: []ast.Expression{&ast.IntLit{Token: token.At(2, 10), Value: 1}},
			}},
			&ast.Try{
				Token: token.At(3, 1),
				Body: []ast.Statement{&ast.Raise{Token: token.At(4, 5), Exc: &ast.Call{
					Token: token.At(4, 11),
					Func:  &ast.Name{Token: token.At(4, 11), Value: "Exception"},
					Args:  []ast.Expression{&ast.StringLit{Token: token.At(4, 21), Value: "boom"}},
				}}},
				Handlers: []*ast.ExceptHandler{{
					Token: token.At(5, 1), ClassName: "Exception", Alias: "e",
					Body: []ast.Statement{&ast.Pass{Token: token.At(6, 5)}},
				}},
			},
		},
	}
}

func TestDefaultPipelineCleanProgram(t *testing.T) {
	ctx := runPipeline(t, config.DefaultOptions(), cleanProgram())

	if ctx.Collector.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Collector.Errors())
	}
	if _, ok := ctx.Tables["main"]; !ok {
		t.Error("registration stage did not produce a table")
	}
	res, ok := ctx.Results["main"]
	if !ok {
		t.Fatal("inference stage did not produce a result")
	}
	// The empty list resolved through the append.
	var found bool
	for _, typ := range res.Types {
		if typesystem.Equal(res.Pool.Resolve(typ), typesystem.TList{Elem: typesystem.Int}) {
			found = true
			break
		}
	}
	if !found {
		t.Error("no node typed list[int]; append did not constrain the literal")
	}

	report, ok := ctx.Reports["main"]
	if !ok {
		t.Fatal("exception stage did not produce a report")
	}
	fn, _ := report.Function("<module>")
	if fn == nil || len(fn.Tries) != 1 {
		t.Error("try statement missing from the exception report")
	}
}

func TestRegistrationErrorsHaltBeforeInference(t *testing.T) {
	bad := &ast.Module{
		Path: "main",
		Body: []ast.Statement{
			&ast.ClassDef{Token: token.At(1, 1), Name: "A"},
			&ast.ClassDef{Token: token.At(2, 1), Name: "B"},
			&ast.ClassDef{Token: token.At(3, 1), Name: "C",
				Bases: []*ast.BaseRef{{Token: token.At(3, 9), Name: "A"}, {Token: token.At(3, 12), Name: "B"}}},
			// Would be a type error, but inference never runs.
			&ast.Assign{Token: token.At(4, 1),
				Target: &ast.Name{Token: token.At(4, 1), Value: "x"},
				Value: &ast.ListLit{Token: token.At(4, 5), Elems: []ast.Expression{
					&ast.IntLit{Token: token.At(4, 6), Value: 1},
					&ast.FloatLit{Token: token.At(4, 9), Value: 2.5},
				}}},
		},
	}
	ctx := runPipeline(t, config.DefaultOptions(), bad)

	var codes []string
	for _, e := range ctx.Collector.Errors() {
		codes = append(codes, e.Code)
	}
	if len(codes) != 1 || codes[0] != diagnostics.ErrC001 {
		t.Errorf("want only %s (inference halted), got %v", diagnostics.ErrC001, codes)
	}
	if len(ctx.Results) != 0 {
		t.Error("inference must not run on a broken hierarchy")
	}
}

func TestFailFastStopsAtFirstError(t *testing.T) {
	bad := &ast.Module{
		Path: "main",
		Body: []ast.Statement{
			&ast.Assign{Token: token.At(1, 1),
				Target: &ast.Name{Token: token.At(1, 1), Value: "x"},
				Value: &ast.ListLit{Token: token.At(1, 5), Elems: []ast.Expression{
					&ast.IntLit{Token: token.At(1, 6), Value: 1},
					&ast.FloatLit{Token: token.At(1, 9), Value: 2.5},
				}}},
			&ast.Assign{Token: token.At(2, 1),
				Target: &ast.Name{Token: token.At(2, 1), Value: "y"},
				Value: &ast.ListLit{Token: token.At(2, 5), Elems: []ast.Expression{
					&ast.IntLit{Token: token.At(2, 6), Value: 1},
					&ast.StringLit{Token: token.At(2, 9), Value: "s"},
				}}},
		},
	}
	opts := config.DefaultOptions()
	opts.FailFast = true
	ctx := runPipeline(t, opts, bad)

	if ctx.Collector.Len() != 1 {
		t.Errorf("fail-fast collected %d diagnostics, want 1", ctx.Collector.Len())
	}
}

func TestMultiModuleProgram(t *testing.T) {
	lib := &ast.Module{
		Path: "lib",
		Body: []ast.Statement{
			&ast.ClassDef{Token: token.At(1, 1), Name: "Thing"},
		},
	}
	construct := &ast.Call{
		Token: token.At(2, 5),
		Func:  &ast.Name{Token: token.At(2, 5), Value: "Thing"},
	}
	main := &ast.Module{
		Path: "main",
		Body: []ast.Statement{
			&ast.ImportFrom{Token: token.At(1, 1), Module: "lib",
				Names: []*ast.ImportedName{{Token: token.At(1, 17), Name: "Thing"}}},
			&ast.Assign{Token: token.At(2, 1),
				Target: &ast.Name{Token: token.At(2, 1), Value: "t"},
				Value:  construct},
		},
	}
	ctx := runPipeline(t, config.DefaultOptions(), main, lib)
	if ctx.Collector.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Collector.Errors())
	}
	order := ctx.Modules.Order()
	if order[0] != "lib" {
		t.Errorf("module order %v should put lib first", order)
	}
	typ, ok := ctx.Results["main"].TypeOf(construct)
	if !ok || !typesystem.Equal(typ, typesystem.TClass{Name: "Thing"}) {
		t.Errorf("Thing() typed %v, want Thing", typ)
	}
}

func TestFromImportedClassUsableInBodies(t *testing.T) {
	lib := &ast.Module{
		Path: "lib",
		Body: []ast.Statement{
			&ast.ClassDef{Token: token.At(1, 1), Name: "Thing",
				Methods: []*ast.FunctionDef{{
					Token:      token.At(2, 5),
					Name:       "ping",
					Params:     []*ast.Param{{Token: token.At(2, 14), Name: "self"}},
					ReturnType: &ast.NamedType{Token: token.At(2, 23), Name: "int"},
					Body: []ast.Statement{&ast.Return{Token: token.At(3, 9),
						Value: &ast.IntLit{Token: token.At(3, 16), Value: 1}}},
				}},
			},
		},
	}
	construct := &ast.Call{
		Token: token.At(2, 5),
		Func:  &ast.Name{Token: token.At(2, 5), Value: "Thing"},
	}
	ping := &ast.Call{
		Token: token.At(3, 5),
		Func: &ast.Attribute{Token: token.At(3, 5),
			Object: &ast.Name{Token: token.At(3, 5), Value: "t"}, Name: "ping"},
	}
	main := &ast.Module{
		Path: "main",
		Body: []ast.Statement{
			&ast.ImportFrom{Token: token.At(1, 1), Module: "lib",
				Names: []*ast.ImportedName{{Token: token.At(1, 17), Name: "Thing"}}},
			&ast.Assign{Token: token.At(2, 1),
				Target: &ast.Name{Token: token.At(2, 1), Value: "t"}, Value: construct},
			&ast.Assign{Token: token.At(3, 1),
				Target: &ast.Name{Token: token.At(3, 1), Value: "n"}, Value: ping},
		},
	}
	ctx := runPipeline(t, config.DefaultOptions(), main, lib)
	if ctx.Collector.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Collector.Errors())
	}
	res := ctx.Results["main"]
	if typ, ok := res.TypeOf(construct); !ok || !typesystem.Equal(typ, typesystem.TClass{Name: "Thing"}) {
		t.Errorf("Thing() typed %v, want Thing", typ)
	}
	if typ, ok := res.TypeOf(ping); !ok || !typesystem.Equal(typ, typesystem.Int) {
		t.Errorf("t.ping() typed %v, want int", typ)
	}
}

func TestModuleAliasCall(t *testing.T) {
	lib := &ast.Module{
		Path: "lib",
		Body: []ast.Statement{
			&ast.FunctionDef{
				Token: token.At(1, 1),
				Name:  "helper",
				Params: []*ast.Param{{Token: token.At(1, 12), Name: "n",
					Annotation: &ast.NamedType{Token: token.At(1, 15), Name: "int"}}},
				ReturnType: &ast.NamedType{Token: token.At(1, 24), Name: "int"},
				Body: []ast.Statement{&ast.Return{Token: token.At(2, 5),
					Value: &ast.Name{Token: token.At(2, 12), Value: "n"}}},
			},
		},
	}
	call := &ast.Call{
		Token: token.At(2, 5),
		Func: &ast.Attribute{Token: token.At(2, 5),
			Object: &ast.Name{Token: token.At(2, 5), Value: "lib"}, Name: "helper"},
		Args: []ast.Expression{&ast.IntLit{Token: token.At(2, 16), Value: 3}},
	}
	main := &ast.Module{
		Path: "main",
		Body: []ast.Statement{
			&ast.Import{Token: token.At(1, 1), Module: "lib"},
			&ast.Assign{Token: token.At(2, 1),
				Target: &ast.Name{Token: token.At(2, 1), Value: "x"}, Value: call},
		},
	}
	ctx := runPipeline(t, config.DefaultOptions(), main, lib)
	if ctx.Collector.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Collector.Errors())
	}
	if typ, ok := ctx.Results["main"].TypeOf(call); !ok || !typesystem.Equal(typ, typesystem.Int) {
		t.Errorf("lib.helper(3) typed %v, want int", typ)
	}
}

func TestImportedConstantKeepsItsType(t *testing.T) {
	lib := &ast.Module{
		Path: "lib",
		Body: []ast.Statement{
			&ast.Assign{Token: token.At(1, 1),
				Target: &ast.Name{Token: token.At(1, 1), Value: "MAX"},
				Value:  &ast.IntLit{Token: token.At(1, 7), Value: 10}},
		},
	}
	sum := &ast.BinOp{
		Token: token.At(2, 5),
		Left:  &ast.Name{Token: token.At(2, 5), Value: "MAX"},
		Op:    "+",
		Right: &ast.IntLit{Token: token.At(2, 11), Value: 1},
	}
	main := &ast.Module{
		Path: "main",
		Body: []ast.Statement{
			&ast.ImportFrom{Token: token.At(1, 1), Module: "lib",
				Names: []*ast.ImportedName{{Token: token.At(1, 17), Name: "MAX"}}},
			&ast.Assign{Token: token.At(2, 1),
				Target: &ast.Name{Token: token.At(2, 1), Value: "y"}, Value: sum},
		},
	}
	ctx := runPipeline(t, config.DefaultOptions(), main, lib)
	if ctx.Collector.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Collector.Errors())
	}
	if typ, ok := ctx.Results["main"].TypeOf(sum); !ok || !typesystem.Equal(typ, typesystem.Int) {
		t.Errorf("MAX + 1 typed %v, want int", typ)
	}
}
