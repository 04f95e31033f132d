package typesystem

import (
	"errors"
	"testing"
)

func TestUnifyPrimitives(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Type
		wantErr bool
	}{
		{name: "int with int", a: Int, b: Int},
		{name: "float with float", a: Float, b: Float},
		{name: "int with float is not widened", a: Int, b: Float, wantErr: true},
		{name: "bool with int", a: Bool, b: Int, wantErr: true},
		{name: "str with str", a: Str, b: Str},
		{name: "class with same class", a: TClass{Name: "Dog"}, b: TClass{Name: "Dog"}},
		{name: "class with other class", a: TClass{Name: "Dog"}, b: TClass{Name: "Cat"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewVarPool()
			err := Unify(pool, tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Errorf("Unify(%s, %s) error = %v, wantErr %v", tt.a, tt.b, err, tt.wantErr)
			}
		})
	}
}

func TestUnifyContainersAreExact(t *testing.T) {
	pool := NewVarPool()
	// list[int] vs list[float] must fail: widening never applies to
	// container element slots.
	err := Unify(pool, TList{Elem: Int}, TList{Elem: Float})
	if err == nil {
		t.Fatal("expected list[int] ~ list[float] to fail")
	}

	if err := Unify(pool, TDict{Key: Str, Value: Int}, TDict{Key: Str, Value: Int}); err != nil {
		t.Fatalf("identical dicts should unify: %v", err)
	}
	if err := Unify(pool, TDict{Key: Int, Value: Int}, TDict{Key: Str, Value: Int}); err == nil {
		t.Fatal("expected dict key mismatch to fail")
	}
}

func TestVarBindingAndResolve(t *testing.T) {
	pool := NewVarPool()
	v := pool.Fresh()
	lst := TList{Elem: v}

	if err := Unify(pool, v, Int); err != nil {
		t.Fatalf("binding fresh var: %v", err)
	}
	got := pool.Resolve(lst)
	if !Equal(got, TList{Elem: Int}) {
		t.Errorf("Resolve(list[t0]) = %s, want list[int]", got)
	}

	// Second candidate must match the first binding exactly.
	if err := Unify(pool, v, Float); err == nil {
		t.Error("expected second element type float to conflict with int")
	}
}

func TestVarToVarUnion(t *testing.T) {
	pool := NewVarPool()
	a := pool.Fresh()
	b := pool.Fresh()

	if err := Unify(pool, a, b); err != nil {
		t.Fatalf("var ~ var: %v", err)
	}
	// Binding either one resolves both.
	if err := Unify(pool, b, Str); err != nil {
		t.Fatalf("binding unioned var: %v", err)
	}
	if got := pool.Resolve(a); !Equal(got, Str) {
		t.Errorf("Resolve(a) = %s, want str after union with b", got)
	}
}

func TestNestedContainerFlow(t *testing.T) {
	// outer = []; inner = []; inner.append(10); outer.append(inner)
	// must give outer: list[list[int]].
	pool := NewVarPool()
	outerElem := pool.Fresh()
	innerElem := pool.Fresh()
	outer := TList{Elem: outerElem}
	inner := TList{Elem: innerElem}

	if err := Unify(pool, innerElem, Int); err != nil {
		t.Fatalf("inner.append(10): %v", err)
	}
	if err := Unify(pool, outerElem, inner); err != nil {
		t.Fatalf("outer.append(inner): %v", err)
	}

	got := pool.Resolve(outer)
	want := TList{Elem: TList{Elem: Int}}
	if !Equal(got, want) {
		t.Errorf("outer resolved to %s, want %s", got, want)
	}
}

func TestDeepNesting(t *testing.T) {
	// Three levels: list[list[list[int]]].
	pool := NewVarPool()
	l1 := TList{Elem: pool.Fresh()}
	l2 := TList{Elem: pool.Fresh()}
	l3 := TList{Elem: pool.Fresh()}

	if err := Unify(pool, l3.Elem, Int); err != nil {
		t.Fatal(err)
	}
	if err := Unify(pool, l2.Elem, l3); err != nil {
		t.Fatal(err)
	}
	if err := Unify(pool, l1.Elem, l2); err != nil {
		t.Fatal(err)
	}

	got := pool.Resolve(l1)
	want := TList{Elem: TList{Elem: TList{Elem: Int}}}
	if !Equal(got, want) {
		t.Errorf("resolved %s, want %s", got, want)
	}
}

func TestOccursCheckRejectsSelfNesting(t *testing.T) {
	// container.append(container): the element variable would contain
	// its own list.
	pool := NewVarPool()
	elem := pool.Fresh()
	container := TList{Elem: elem}

	err := Unify(pool, elem, container)
	if err == nil {
		t.Fatal("expected occurs check to reject self-nesting container")
	}
	if !errors.Is(err, ErrInfinite) {
		t.Errorf("error = %v, want ErrInfinite", err)
	}
}

func TestIsResolved(t *testing.T) {
	pool := NewVarPool()
	v := pool.Fresh()

	if pool.IsResolved(TList{Elem: v}) {
		t.Error("list with unbound var should not be resolved")
	}
	if err := Unify(pool, v, Bool); err != nil {
		t.Fatal(err)
	}
	if !pool.IsResolved(TList{Elem: v}) {
		t.Error("list should be resolved after binding")
	}
}

func TestWiden(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want Type
		ok   bool
	}{
		{name: "int int", a: Int, b: Int, want: Int, ok: true},
		{name: "int float", a: Int, b: Float, want: Float, ok: true},
		{name: "float int", a: Float, b: Int, want: Float, ok: true},
		{name: "bool is not numeric", a: Bool, b: Int, ok: false},
		{name: "str is not numeric", a: Str, b: Str, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Widen(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("Widen(%s, %s) ok = %v, want %v", tt.a, tt.b, ok, tt.ok)
			}
			if ok && !Equal(got, tt.want) {
				t.Errorf("Widen(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TList{Elem: Int}, "list[int]"},
		{TDict{Key: Str, Value: Float}, "dict[str, float]"},
		{TSet{Elem: Bool}, "set[bool]"},
		{TFunc{Params: []Type{Int, Str}, Return: None}, "(int, str) -> None"},
		{TClass{Name: "Animal"}, "Animal"},
		{TVar{ID: 3}, "t3"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
