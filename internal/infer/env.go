package infer

import (
	"sort"

	"github.com/pystatic/pystatic/internal/typesystem"
)

// Env maps variable names to their current types. Envs are scoped per
// function body and forked at control-flow branches; container element
// variables are shared through the pool, so a binding discovered in one
// branch is visible everywhere the same variable flows.
type Env struct {
	vars map[string]typesystem.Type
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]typesystem.Type)}
}

func (e *Env) Get(name string) (typesystem.Type, bool) {
	t, ok := e.vars[name]
	return t, ok
}

func (e *Env) Set(name string, t typesystem.Type) {
	e.vars[name] = t
}

// Clone forks the env for a branch walk.
func (e *Env) Clone() *Env {
	out := NewEnv()
	for k, v := range e.vars {
		out.vars[k] = v
	}
	return out
}

// Names returns the bound names in sorted order, for deterministic
// merge diagnostics.
func (e *Env) Names() []string {
	out := make([]string, 0, len(e.vars))
	for k := range e.vars {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both envs bind the same names to types that
// resolve identically under the pool. Drives the loop fixed point.
func (e *Env) Equal(other *Env, pool *typesystem.VarPool) bool {
	if len(e.vars) != len(other.vars) {
		return false
	}
	for k, v := range e.vars {
		w, ok := other.vars[k]
		if !ok {
			return false
		}
		if !typesystem.Equal(pool.Resolve(v), pool.Resolve(w)) {
			return false
		}
	}
	return true
}
