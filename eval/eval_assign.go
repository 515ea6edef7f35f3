package eval

import (
	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/value"
)

// evalAssign implements `TARGET = EXPR ;` (spec §4.5 "Assignment"): the
// RHS is evaluated first, then written through whichever lvalue shape
// the parser already validated (identifier, index, dot, scope access).
func (e *Evaluator) evalAssign(node *ast.AssignStmt, scope *env.Environment) value.Value {
	rhs := e.Eval(node.Value, scope)
	if IsError(rhs) {
		return rhs
	}
	if errv := e.assignTo(node.Target, scope, value.Bind(rhs)); errv != nil {
		return errv
	}
	return nil
}

// assignTo writes rhs through target, recursively writing back any
// clone produced by copy-on-write so a mutation several containers
// deep (e.g. `matrix[0][1] = 5;`) still reaches the owning scope slot.
// Returns a value.Error on failure, nil on success.
func (e *Evaluator) assignTo(target ast.Expr, scope *env.Environment, rhs value.Value) value.Value {
	switch t := target.(type) {
	case *ast.Ident:
		if !scope.Assign(t.Name, rhs) {
			return newErrorAt(t.Pos(), "undefined name %q", t.Name)
		}
		return nil
	case *ast.IndexExpr:
		return e.assignIndex(t, scope, rhs)
	case *ast.DotExpr:
		return e.assignDot(t, scope, rhs)
	case *ast.ScopeExpr:
		return e.assignScope(t, scope, rhs)
	default:
		return newErrorAt(target.Pos(), "attempted assignment to non-lvalue")
	}
}

func (e *Evaluator) assignIndex(t *ast.IndexExpr, scope *env.Environment, rhs value.Value) value.Value {
	recv := e.Eval(t.Receiver, scope)
	if IsError(recv) {
		return recv
	}
	idx := e.Eval(t.Index, scope)
	if IsError(idx) {
		return idx
	}
	switch r := recv.(type) {
	case value.Vector:
		i, errv := vectorIndex(t.Pos(), idx, r.Len())
		if IsError(errv) {
			return errv
		}
		r.SetIndex(i, rhs)
		return e.writeBack(t.Receiver, scope, r)
	case value.Map:
		if r.IsMetamap() {
			return newErrorAt(t.Pos(), "attempted write to immutable metamap")
		}
		r.Set(idx, rhs)
		return e.writeBack(t.Receiver, scope, r)
	case value.Reference:
		referent := r.Cell.Get()
		switch rv := referent.(type) {
		case value.Vector:
			i, errv := vectorIndex(t.Pos(), idx, rv.Len())
			if IsError(errv) {
				return errv
			}
			rv.SetIndex(i, rhs)
			r.Cell.Set(rv)
			return nil
		case value.Map:
			if rv.IsMetamap() {
				return newErrorAt(t.Pos(), "attempted write to immutable metamap")
			}
			rv.Set(idx, rhs)
			r.Cell.Set(rv)
			return nil
		default:
			return newErrorAt(t.Pos(), "%s is not indexable", referent.Kind())
		}
	default:
		return newErrorAt(t.Pos(), "%s is not indexable", recv.Kind())
	}
}

// assignDot implements dot-target assignment: a plain Map writes its
// own key; a Reference writes through to the referent's Map storage
// (spec §4.5 "Assignment": "if the target container is a Reference and
// the op is dot-access, write through to the referent").
func (e *Evaluator) assignDot(t *ast.DotExpr, scope *env.Environment, rhs value.Value) value.Value {
	recv := e.Eval(t.Receiver, scope)
	if IsError(recv) {
		return recv
	}
	key := value.String{Value: t.Field}
	switch r := recv.(type) {
	case value.Map:
		if r.IsMetamap() {
			return newErrorAt(t.Pos(), "attempted write to immutable metamap field %q", t.Field)
		}
		r.Set(key, rhs)
		return e.writeBack(t.Receiver, scope, r)
	case value.Reference:
		referent := r.Cell.Get()
		m, ok := referent.(value.Map)
		if !ok {
			return newErrorAt(t.Pos(), "no field %q on %s", t.Field, referent.Kind())
		}
		if m.IsMetamap() {
			return newErrorAt(t.Pos(), "attempted write to immutable metamap field %q", t.Field)
		}
		m.Set(key, rhs)
		r.Cell.Set(m)
		return nil
	default:
		return newErrorAt(t.Pos(), "no field %q on %s", t.Field, recv.Kind())
	}
}

// assignScope implements `x::f = v` — map lookup only, no metamap or
// reference fallback (spec §4.2/§4.5).
func (e *Evaluator) assignScope(t *ast.ScopeExpr, scope *env.Environment, rhs value.Value) value.Value {
	recv := e.Eval(t.Receiver, scope)
	if IsError(recv) {
		return recv
	}
	m, ok := recv.(value.Map)
	if !ok {
		return newErrorAt(t.Pos(), ":: requires a map, found %s", recv.Kind())
	}
	if m.IsMetamap() {
		return newErrorAt(t.Pos(), "attempted write to immutable metamap field %q", t.Field)
	}
	m.Set(value.String{Value: t.Field}, rhs)
	return e.writeBack(t.Receiver, scope, m)
}

// writeBack persists a possibly-cloned container back into the slot it
// came from, recursively, so COW clones triggered partway through a
// nested assignment (spec §4.3) still reach the scope that ultimately
// owns the data. receiver expressions that are not themselves lvalues
// (e.g. a bare function call result) have no slot to update; the write
// landed on that temporary container (cloned first if its storage was
// shared) and is not stored anywhere else.
func (e *Evaluator) writeBack(receiver ast.Expr, scope *env.Environment, newVal value.Value) value.Value {
	switch receiver.(type) {
	case *ast.Ident, *ast.IndexExpr, *ast.DotExpr, *ast.ScopeExpr:
		return e.assignTo(receiver, scope, newVal)
	default:
		return nil
	}
}
