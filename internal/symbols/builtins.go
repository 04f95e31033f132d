package symbols

import (
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/token"
	"github.com/pystatic/pystatic/internal/typesystem"
)

// registerBuiltins installs the distinguished exception root. Any class
// whose base chain terminates here is an exception class, usable in
// raise and except clauses.
func (t *Table) registerBuiltins() {
	exc := newClass(config.ExceptionRootName, config.BuiltinModuleName, token.Token{})
	exc.builtin = true
	exc.isException = true
	excType := exc.Type()

	exc.addMethod(&Method{
		Name: config.InitMethodName,
		Sig: typesystem.TFunc{
			Params: []typesystem.Type{excType, typesystem.Str},
			Return: excType,
		},
	})
	exc.addMethod(&Method{
		Name: config.StrMethodName,
		Sig: typesystem.TFunc{
			Params: []typesystem.Type{excType},
			Return: typesystem.Str,
		},
	})
	exc.addMethod(&Method{
		Name: config.ReprMethodName,
		Sig: typesystem.TFunc{
			Params: []typesystem.Type{excType},
			Return: typesystem.Str,
		},
	})

	t.addClass(exc)
}
