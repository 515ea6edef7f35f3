// Package env implements Mellifera's lexical scope chain, in the
// structural style of akashmaji946/go-mix's scope package: a Scope-like
// struct holding this level's bindings plus a parent pointer, with
// lookup walking outward. Spec §4.4 asks for the storage itself to be
// a Map value (so it can be introspected like any other Mellifera
// value) rather than a bare Go map, which is the one generalization
// this package makes over the teacher's Variables map[string]GoMixObject.
package env

import (
	"sync/atomic"

	"github.com/ashn-dot-dev/mellifera/value"
)

var idCounter uint64

func nextID() uint64 { return atomic.AddUint64(&idCounter, 1) }

// Environment is one link in the scope chain. Each link owns its
// bindings in a value.Map and points to the enclosing scope; nil
// Parent marks the root (base) environment.
type Environment struct {
	store  value.Map
	Parent *Environment
	label  string
	id     uint64
}

// New creates a root environment with no parent.
func New(label string) *Environment {
	return &Environment{store: value.NewMap(), label: label, id: nextID()}
}

// NewChild creates a scope nested inside parent — used for block
// bodies, function calls, and import module scopes (spec §4.4, §5a).
func NewChild(parent *Environment, label string) *Environment {
	return &Environment{store: value.NewMap(), Parent: parent, label: label, id: nextID()}
}

// Name satisfies value.Env, letting a Function value describe the
// environment it closed over without value importing env.
func (e *Environment) Name() string { return e.label }

// Let binds name to v.Copy() in this scope specifically (spec §4.4:
// "let inserts in the innermost scope"), shadowing any outer binding
// of the same name without disturbing it.
func (e *Environment) Let(name string, v value.Value) {
	e.store.Set(value.String{Value: name}, value.Bind(v))
}

// Get looks up name starting at this scope and walking outward,
// returning ok=false if no scope in the chain binds it.
func (e *Environment) Get(name string) (value.Value, bool) {
	for scope := e; scope != nil; scope = scope.Parent {
		if v, ok := scope.store.Get(value.String{Value: name}); ok {
			return v, true
		}
	}
	return nil, false
}

// Owner returns the innermost scope in the chain that binds name, or
// nil if none does. Assignment (spec §4.4: "re-binding, not shadowing")
// and reference-taking on an identifier both need the owning scope,
// not just the value.
func (e *Environment) Owner(name string) *Environment {
	for scope := e; scope != nil; scope = scope.Parent {
		if _, ok := scope.store.Get(value.String{Value: name}); ok {
			return scope
		}
	}
	return nil
}

// Assign re-binds name in its owning scope. Returns false if name is
// not bound anywhere in the chain (an "undefined name" error at the
// call site).
func (e *Environment) Assign(name string, v value.Value) bool {
	owner := e.Owner(name)
	if owner == nil {
		return false
	}
	owner.store.Set(value.String{Value: name}, value.Bind(v))
	return true
}

// Cell builds a value.Cell aliasing name's binding in its owning
// scope, for `ident.&`. Returns nil if name is unbound.
func (e *Environment) Cell(name string) value.Cell {
	owner := e.Owner(name)
	if owner == nil {
		return nil
	}
	return &cell{scope: owner, name: name}
}

// cell implements value.Cell over one named binding of an owning
// scope's storage map.
type cell struct {
	scope *Environment
	name  string
}

func (c *cell) Get() value.Value {
	v, _ := c.scope.store.Get(value.String{Value: c.name})
	return v
}

func (c *cell) Set(v value.Value) bool {
	return c.scope.store.Set(value.String{Value: c.name}, v)
}

func (c *cell) Identity() uint64 { return c.scope.id*31 + value.ContentHash(value.String{Value: c.name}) }
