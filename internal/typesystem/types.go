package typesystem

import (
	"fmt"
	"strings"

	"github.com/pystatic/pystatic/internal/config"
)

// Type is the interface for all types in the system. A resolved program
// contains no TVar anywhere; TVar exists only between the creation of an
// empty container literal and the end of body inference.
type Type interface {
	String() string
	typeNode()
}

// TCon is a primitive type constant (int, float, bool, str, bytes,
// bytearray, None).
type TCon struct {
	Name string
}

func (t TCon) typeNode()      {}
func (t TCon) String() string { return t.Name }

// Predefined primitives.
var (
	Int       = TCon{Name: config.IntTypeName}
	Float     = TCon{Name: config.FloatTypeName}
	Bool      = TCon{Name: config.BoolTypeName}
	Str       = TCon{Name: config.StrTypeName}
	Bytes     = TCon{Name: config.BytesTypeName}
	ByteArray = TCon{Name: config.ByteArrayTypeName}
	None      = TCon{Name: config.NoneTypeName}
)

// TList is list[Elem]. Elem may be a TVar before resolution.
type TList struct {
	Elem Type
}

func (t TList) typeNode()      {}
func (t TList) String() string { return fmt.Sprintf("list[%s]", t.Elem) }

// TDict is dict[Key, Value].
type TDict struct {
	Key   Type
	Value Type
}

func (t TDict) typeNode()      {}
func (t TDict) String() string { return fmt.Sprintf("dict[%s, %s]", t.Key, t.Value) }

// TSet is set[Elem].
type TSet struct {
	Elem Type
}

func (t TSet) typeNode()      {}
func (t TSet) String() string { return fmt.Sprintf("set[%s]", t.Elem) }

// TClass is a nominal class instance type. The class descriptor itself
// lives in the symbols table; only the name is carried here (weak
// reference, resolved by table lookup).
type TClass struct {
	Name string
}

func (t TClass) typeNode()      {}
func (t TClass) String() string { return t.Name }

// TFunc is a function or method signature. For methods the receiver is
// Params[0].
type TFunc struct {
	Params []Type
	Return Type
}

func (t TFunc) typeNode() {}
func (t TFunc) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Return)
}

// TModule is the type of a module alias binding (`import x`,
// `from . import name`). It is not a value type: the only operation on
// it is attribute access, resolved through the imported module's scope.
type TModule struct {
	Path string
}

func (t TModule) typeNode()      {}
func (t TModule) String() string { return fmt.Sprintf("module '%s'", t.Path) }

// TVar is an unresolved type variable, identified by its pool id.
type TVar struct {
	ID int
}

func (t TVar) typeNode()      {}
func (t TVar) String() string { return fmt.Sprintf("t%d", t.ID) }

// Equal reports exact structural equality between two types containing
// no variables. Variables never compare equal to anything here; resolve
// them first.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TCon:
		b, ok := b.(TCon)
		return ok && a.Name == b.Name
	case TClass:
		b, ok := b.(TClass)
		return ok && a.Name == b.Name
	case TModule:
		b, ok := b.(TModule)
		return ok && a.Path == b.Path
	case TList:
		b, ok := b.(TList)
		return ok && Equal(a.Elem, b.Elem)
	case TSet:
		b, ok := b.(TSet)
		return ok && Equal(a.Elem, b.Elem)
	case TDict:
		b, ok := b.(TDict)
		return ok && Equal(a.Key, b.Key) && Equal(a.Value, b.Value)
	case TFunc:
		b, ok := b.(TFunc)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, b.Return)
	default:
		return false
	}
}

// IsNumeric reports whether t is int or float.
func IsNumeric(t Type) bool {
	return Equal(t, Int) || Equal(t, Float)
}

// Widen is the arithmetic-context promotion: int combined with float
// yields float. It never applies inside container element slots; callers
// outside arithmetic expressions must use Unify instead.
func Widen(a, b Type) (Type, bool) {
	if !IsNumeric(a) || !IsNumeric(b) {
		return nil, false
	}
	if Equal(a, Float) || Equal(b, Float) {
		return Float, true
	}
	return Int, true
}
