package typesystem

// VarPool owns the type variables of one compilation unit. Variables are
// union-find nodes with path compression: a variable resolves to exactly
// one concrete type, or unification merges it with another variable so
// both share one eventual binding. After resolution there are no chains;
// Find always lands on the representative in amortized near-constant
// time.
type VarPool struct {
	parent  []int
	binding []Type // binding of the representative; nil while unbound
}

func NewVarPool() *VarPool {
	return &VarPool{}
}

// Fresh allocates a new unbound variable.
func (p *VarPool) Fresh() TVar {
	id := len(p.parent)
	p.parent = append(p.parent, id)
	p.binding = append(p.binding, nil)
	return TVar{ID: id}
}

// Find returns the representative id for v, compressing the path.
func (p *VarPool) Find(id int) int {
	root := id
	for p.parent[root] != root {
		root = p.parent[root]
	}
	for p.parent[id] != root {
		p.parent[id], id = root, p.parent[id]
	}
	return root
}

// Binding returns the concrete binding of v's representative, or nil.
func (p *VarPool) Binding(v TVar) Type {
	return p.binding[p.Find(v.ID)]
}

// union merges two unbound variables under one representative.
func (p *VarPool) union(a, b int) {
	ra, rb := p.Find(a), p.Find(b)
	if ra != rb {
		p.parent[rb] = ra
	}
}

// bind attaches a concrete type to v's representative. The caller has
// already run the occurs check and shallow-resolved t.
func (p *VarPool) bind(id int, t Type) {
	root := p.Find(id)
	p.binding[root] = t
}

// Shallow follows variable bindings one level: if t is a bound variable
// the binding is returned (itself shallow-resolved), otherwise t.
func (p *VarPool) Shallow(t Type) Type {
	for {
		v, ok := t.(TVar)
		if !ok {
			return t
		}
		b := p.binding[p.Find(v.ID)]
		if b == nil {
			return TVar{ID: p.Find(v.ID)}
		}
		t = b
	}
}

// Resolve rewrites t with every reachable variable replaced by its
// binding. Unresolved variables survive as canonical TVars; the caller
// decides whether that is an error (it is, for anything that is read).
func (p *VarPool) Resolve(t Type) Type {
	t = p.Shallow(t)
	switch t := t.(type) {
	case TList:
		return TList{Elem: p.Resolve(t.Elem)}
	case TSet:
		return TSet{Elem: p.Resolve(t.Elem)}
	case TDict:
		return TDict{Key: p.Resolve(t.Key), Value: p.Resolve(t.Value)}
	case TFunc:
		params := make([]Type, len(t.Params))
		for i, pt := range t.Params {
			params[i] = p.Resolve(pt)
		}
		return TFunc{Params: params, Return: p.Resolve(t.Return)}
	default:
		return t
	}
}

// IsResolved reports whether t contains no unresolved variables.
func (p *VarPool) IsResolved(t Type) bool {
	switch t := p.Shallow(t).(type) {
	case TVar:
		return false
	case TList:
		return p.IsResolved(t.Elem)
	case TSet:
		return p.IsResolved(t.Elem)
	case TDict:
		return p.IsResolved(t.Key) && p.IsResolved(t.Value)
	case TFunc:
		for _, pt := range t.Params {
			if !p.IsResolved(pt) {
				return false
			}
		}
		return p.IsResolved(t.Return)
	default:
		return true
	}
}

// occurs reports whether the variable rooted at id appears in t.
// Prevents infinite types such as a list whose element type is the list
// itself.
func (p *VarPool) occurs(id int, t Type) bool {
	switch t := p.Shallow(t).(type) {
	case TVar:
		return p.Find(t.ID) == id
	case TList:
		return p.occurs(id, t.Elem)
	case TSet:
		return p.occurs(id, t.Elem)
	case TDict:
		return p.occurs(id, t.Key) || p.occurs(id, t.Value)
	case TFunc:
		for _, pt := range t.Params {
			if p.occurs(id, pt) {
				return true
			}
		}
		return p.occurs(id, t.Return)
	default:
		return false
	}
}
