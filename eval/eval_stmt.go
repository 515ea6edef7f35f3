package eval

import (
	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/value"
)

// evalLet implements `let NAME = EXPR ;` (spec §4.4: "let inserts in
// the innermost scope"). The bind-on-store COW bump happens inside
// env.Environment.Let itself.
func (e *Evaluator) evalLet(node *ast.LetStmt, scope *env.Environment) value.Value {
	v := e.Eval(node.Value, scope)
	if IsError(v) {
		return v
	}
	scope.Let(node.Name, v)
	return nil
}

// evalIf implements `if`/`elif`/`else` (spec §4.5 "Control flow"): each
// clause's condition must evaluate to a Boolean; the first clause whose
// condition is true runs its body in a fresh child scope, else falls
// through to the next clause, else to the else block if present.
func (e *Evaluator) evalIf(node *ast.IfStmt, scope *env.Environment) value.Value {
	for _, clause := range node.Clauses {
		cond := e.Eval(clause.Cond, scope)
		if IsError(cond) {
			return cond
		}
		b, ok := cond.(value.Boolean)
		if !ok {
			return newErrorAt(clause.Cond.Pos(), "if condition requires a boolean, found %s", cond.Kind())
		}
		if b.Value {
			return e.evalBlockNewScope(clause.Body, scope)
		}
	}
	if node.Else != nil {
		return e.evalBlockNewScope(node.Else, scope)
	}
	return nil
}

// evalWhile implements `while COND BLOCK` (spec §4.5 "Control flow"):
// Break stops the loop cleanly, Continue moves to the next condition
// check, Return/Error propagate out immediately.
func (e *Evaluator) evalWhile(node *ast.WhileStmt, scope *env.Environment) value.Value {
	for {
		cond := e.Eval(node.Cond, scope)
		if IsError(cond) {
			return cond
		}
		b, ok := cond.(value.Boolean)
		if !ok {
			return newErrorAt(node.Cond.Pos(), "while condition requires a boolean, found %s", cond.Kind())
		}
		if !b.Value {
			return nil
		}
		sig := e.evalBlockNewScope(node.Body, scope)
		if sig == nil {
			continue
		}
		switch sig.(type) {
		case value.Break:
			return nil
		case value.Continue:
			continue
		default:
			return sig
		}
	}
}

// evalTry implements `try BLOCK catch (IDENT)? BLOCK` (spec §4.5
// "Control flow"): try/catch intercepts only Error; Return/Break/
// Continue pass through untouched.
func (e *Evaluator) evalTry(node *ast.TryStmt, scope *env.Environment) value.Value {
	sig := e.evalBlockNewScope(node.Body, scope)
	if sig == nil {
		return nil
	}
	errv, ok := sig.(value.Error)
	if !ok {
		return sig
	}
	catchScope := env.NewChild(scope, "catch")
	if node.CatchName != "" {
		catchScope.Let(node.CatchName, errv.Payload)
	}
	return e.evalBlockIn(node.CatchBody, catchScope)
}

// evalErrorStmt implements `error EXPR ;` (spec §4.5 "Control flow"):
// raises a fresh value.Error carrying EXPR as its payload. Trace
// entries accumulate as the Error unwinds through invoke (eval_call.go).
func (e *Evaluator) evalErrorStmt(node *ast.ErrorStmt, scope *env.Environment) value.Value {
	payload := e.Eval(node.Value, scope)
	if IsError(payload) {
		return payload
	}
	return value.Error{
		Payload:  payload,
		Location: locString(node.Pos()),
	}
}

// evalReturn implements `return EXPR? ;` (spec §4.5 "Control flow").
// A bare `return;` carries a nil Value, which unwrapReturn (eval_call.go)
// normalizes to value.Null{} at the call boundary.
func (e *Evaluator) evalReturn(node *ast.ReturnStmt, scope *env.Environment) value.Value {
	if node.Value == nil {
		return value.ReturnValue{Value: nil}
	}
	v := e.Eval(node.Value, scope)
	if IsError(v) {
		return v
	}
	return value.ReturnValue{Value: v}
}
