package typesystem

import (
	"errors"
	"fmt"
)

// ErrInfinite marks a failed occurs check: a container would contain
// itself. Callers map it to its own diagnostic code.
var ErrInfinite = errors.New("infinite container type")

// Unify makes a and b equal by binding variables in the pool, or fails.
// Unification is structural and exact: containers unify only if their
// element/key/value types unify recursively, class types only by name,
// and int is never widened to float here — appending an int and a float
// to the same list is a type error, not a promotion.
func Unify(pool *VarPool, a, b Type) error {
	a = pool.Shallow(a)
	b = pool.Shallow(b)

	if av, ok := a.(TVar); ok {
		if bv, ok := b.(TVar); ok {
			pool.union(av.ID, bv.ID)
			return nil
		}
		return bindChecked(pool, av, b)
	}
	if bv, ok := b.(TVar); ok {
		return bindChecked(pool, bv, a)
	}

	switch a := a.(type) {
	case TCon:
		if b, ok := b.(TCon); ok && a.Name == b.Name {
			return nil
		}
	case TClass:
		if b, ok := b.(TClass); ok && a.Name == b.Name {
			return nil
		}
	case TModule:
		if b, ok := b.(TModule); ok && a.Path == b.Path {
			return nil
		}
	case TList:
		if b, ok := b.(TList); ok {
			return unifySlot(pool, a.Elem, b.Elem, "list element")
		}
	case TSet:
		if b, ok := b.(TSet); ok {
			return unifySlot(pool, a.Elem, b.Elem, "set element")
		}
	case TDict:
		if b, ok := b.(TDict); ok {
			if err := unifySlot(pool, a.Key, b.Key, "dict key"); err != nil {
				return err
			}
			return unifySlot(pool, a.Value, b.Value, "dict value")
		}
	case TFunc:
		if b, ok := b.(TFunc); ok {
			if len(a.Params) != len(b.Params) {
				return fmt.Errorf("parameter count mismatch: %d vs %d", len(a.Params), len(b.Params))
			}
			for i := range a.Params {
				if err := Unify(pool, a.Params[i], b.Params[i]); err != nil {
					return err
				}
			}
			return Unify(pool, a.Return, b.Return)
		}
	}
	return fmt.Errorf("cannot unify %s with %s", a, b)
}

func unifySlot(pool *VarPool, a, b Type, slot string) error {
	if err := Unify(pool, a, b); err != nil {
		if errors.Is(err, ErrInfinite) {
			return err
		}
		return fmt.Errorf("%s: %w", slot, err)
	}
	return nil
}

func bindChecked(pool *VarPool, v TVar, t Type) error {
	root := pool.Find(v.ID)
	if pool.occurs(root, t) {
		return fmt.Errorf("%w: %s occurs in %s", ErrInfinite, TVar{ID: root}, pool.Resolve(t))
	}
	pool.bind(root, t)
	return nil
}
