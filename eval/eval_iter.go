package eval

import (
	"math"
	"unicode/utf8"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/value"
)

// evalFor implements `for K (.&)? (, V (.&)?)? in EXPR BLOCK` (spec
// §4.5 "Iteration"), dispatching on the collection's runtime kind. Each
// step runs the body in a fresh child scope; Break exits the loop
// cleanly, Continue moves to the next step, Return/Error propagate.
func (e *Evaluator) evalFor(node *ast.ForStmt, scope *env.Environment) value.Value {
	coll := e.Eval(node.Coll, scope)
	if IsError(coll) {
		return coll
	}
	if hook, ok := value.LookupMeta(coll, value.MetaNext); ok && value.IsCallable(hook) {
		return e.evalForIterator(node, scope, coll, hook)
	}
	switch c := coll.(type) {
	case value.Number:
		return e.evalForNumber(node, scope, c)
	case value.String:
		return e.evalForString(node, scope, c)
	case value.Vector:
		return e.evalForVector(node, scope, c)
	case value.Map:
		return e.evalForMap(node, scope, c)
	case value.Set:
		return e.evalForSet(node, scope, c)
	default:
		return newErrorAt(node.Coll.Pos(), "%s is not iterable", coll.Kind())
	}
}

// evalForString decodes s byte-by-byte as UTF-8, substituting the
// replacement rune for invalid sequences (spec §3: "rune iteration is
// UTF-8 decode with replacement on invalid sequences"), yielding each
// decoded rune as a one-rune String.
func (e *Evaluator) evalForString(node *ast.ForStmt, scope *env.Environment, s value.String) value.Value {
	if node.KeyRef {
		return newErrorAt(node.Pos(), "cannot bind by reference when iterating a string")
	}
	if node.HasValue {
		return newErrorAt(node.Pos(), "V is disallowed when iterating a string")
	}
	bytes := s.Value
	for i := 0; i < len(bytes); {
		r, size := utf8.DecodeRuneInString(bytes[i:])
		loopScope := env.NewChild(scope, "for")
		loopScope.Let(node.KeyName, value.String{Value: string(r)})
		sig := e.evalBlockIn(node.Body, loopScope)
		if stop, out := stepLoop(sig); stop {
			return out
		}
		i += size
	}
	return nil
}

// evalForIterator drives the user-defined iterator protocol: a single
// Reference boxing the iterator value is reused across every call to
// `next` so mutations `next` makes to `self` persist between steps.
func (e *Evaluator) evalForIterator(node *ast.ForStmt, scope *env.Environment, iter value.Value, next value.Value) value.Value {
	if node.KeyRef {
		return newErrorAt(node.Pos(), "cannot bind by reference when iterating a user-defined iterator")
	}
	if node.HasValue {
		return newErrorAt(node.Pos(), "V is disallowed when iterating a user-defined iterator")
	}
	self := value.NewReference(value.NewBoxCell(iter))
	for {
		result := e.invoke(node.Pos(), next, []value.Value{self}, "next")
		if errv, ok := result.(value.Error); ok {
			if errv.IsEndOfIteration() {
				return nil
			}
			return errv
		}
		loopScope := env.NewChild(scope, "for")
		loopScope.Let(node.KeyName, result)
		sig := e.evalBlockIn(node.Body, loopScope)
		if stop, out := stepLoop(sig); stop {
			return out
		}
	}
}

func (e *Evaluator) evalForNumber(node *ast.ForStmt, scope *env.Environment, n value.Number) value.Value {
	if node.KeyRef {
		return newErrorAt(node.Pos(), "cannot bind by reference when iterating a number")
	}
	if node.HasValue {
		return newErrorAt(node.Pos(), "V is disallowed when iterating a number")
	}
	if n.Value != math.Trunc(n.Value) || n.Value < 0 {
		return newErrorAt(node.Coll.Pos(), "for-loop count must be a non-negative integer, found %s", n.String())
	}
	count := int(n.Value)
	for i := 0; i < count; i++ {
		loopScope := env.NewChild(scope, "for")
		loopScope.Let(node.KeyName, value.Number{Value: float64(i)})
		sig := e.evalBlockIn(node.Body, loopScope)
		if stop, out := stepLoop(sig); stop {
			return out
		}
	}
	return nil
}

func (e *Evaluator) evalForVector(node *ast.ForStmt, scope *env.Environment, v value.Vector) value.Value {
	if node.HasValue {
		return newErrorAt(node.Pos(), "V is disallowed when iterating a vector")
	}
	snap := value.Bind(v).(value.Vector)
	for i := 0; i < snap.Len(); i++ {
		loopScope := env.NewChild(scope, "for")
		if node.KeyRef {
			loopScope.Let(node.KeyName, value.NewReference(value.NewVectorCell(snap, i)))
		} else {
			elem, _ := snap.Get(i)
			loopScope.Let(node.KeyName, elem)
		}
		sig := e.evalBlockIn(node.Body, loopScope)
		if stop, out := stepLoop(sig); stop {
			return out
		}
	}
	return nil
}

func (e *Evaluator) evalForMap(node *ast.ForStmt, scope *env.Environment, m value.Map) value.Value {
	if node.KeyRef {
		return newErrorAt(node.Pos(), "cannot bind map keys by reference")
	}
	snap := value.Bind(m).(value.Map)
	for _, entry := range snap.Entries() {
		loopScope := env.NewChild(scope, "for")
		loopScope.Let(node.KeyName, entry.Key)
		if node.HasValue {
			if node.ValRef {
				loopScope.Let(node.ValName, value.NewReference(value.NewMapCell(snap, entry.Key)))
			} else {
				loopScope.Let(node.ValName, entry.Val)
			}
		}
		sig := e.evalBlockIn(node.Body, loopScope)
		if stop, out := stepLoop(sig); stop {
			return out
		}
	}
	return nil
}

func (e *Evaluator) evalForSet(node *ast.ForStmt, scope *env.Environment, s value.Set) value.Value {
	if node.KeyRef {
		return newErrorAt(node.Pos(), "cannot bind set elements by reference")
	}
	if node.HasValue {
		return newErrorAt(node.Pos(), "V is disallowed when iterating a set")
	}
	snap := value.Bind(s).(value.Set)
	for _, elem := range snap.Elements() {
		loopScope := env.NewChild(scope, "for")
		loopScope.Let(node.KeyName, elem)
		sig := e.evalBlockIn(node.Body, loopScope)
		if stop, out := stepLoop(sig); stop {
			return out
		}
	}
	return nil
}

// stepLoop interprets one iteration's control-flow signal: stop=true
// means the loop should return immediately with out (nil for a clean
// Break, the signal itself for Return/Error); stop=false means keep
// looping (nil body result or Continue).
func stepLoop(sig value.Value) (stop bool, out value.Value) {
	if sig == nil {
		return false, nil
	}
	switch sig.(type) {
	case value.Break:
		return true, nil
	case value.Continue:
		return false, nil
	default:
		return true, sig
	}
}
