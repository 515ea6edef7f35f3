package eval

import (
	"strconv"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/value"
)

// evalCall implements `f(a, b, c)` (spec §4.5 "Calls"). When the
// callee syntactically is `recv.method`, the method is resolved
// through the same chain evalDot uses, and a Reference aliasing
// recv's storage slot (or, if recv already evaluated to a Reference,
// that same Reference unchanged) is prepended as an implicit `self`.
func (e *Evaluator) evalCall(node *ast.CallExpr, scope *env.Environment) value.Value {
	if dot, ok := node.Callee.(*ast.DotExpr); ok {
		return e.evalMethodCall(node, dot, scope)
	}
	callee := e.Eval(node.Callee, scope)
	if IsError(callee) {
		return callee
	}
	args, errv := e.evalArgs(node.Args, scope)
	if errv != nil {
		return errv
	}
	return e.invoke(node.Pos(), callee, args, calleeLabel(callee))
}

func (e *Evaluator) evalMethodCall(node *ast.CallExpr, dot *ast.DotExpr, scope *env.Environment) value.Value {
	cell, errv := e.cellFor(dot.Receiver, scope)
	if errv != nil {
		return errv
	}
	recvVal := cell.Get()
	method, ok := dotAccess(recvVal, dot.Field)
	if !ok {
		return newErrorAt(node.Pos(), "no method %q on %s", dot.Field, recvVal.Kind())
	}
	var self value.Value
	if ref, isRef := recvVal.(value.Reference); isRef {
		self = ref
	} else {
		self = value.NewReference(cell)
	}
	args, errv := e.evalArgs(node.Args, scope)
	if errv != nil {
		return errv
	}
	all := append([]value.Value{self}, args...)
	return e.invoke(node.Pos(), method, all, dot.Field)
}

func (e *Evaluator) evalArgs(exprs []ast.Expr, scope *env.Environment) ([]value.Value, value.Value) {
	args := make([]value.Value, 0, len(exprs))
	for _, a := range exprs {
		v := e.Eval(a, scope)
		if IsError(v) {
			return nil, v
		}
		args = append(args, v)
	}
	return args, nil
}

func calleeLabel(v value.Value) string {
	switch c := v.(type) {
	case value.Function:
		if c.Name != "" {
			return c.Name
		}
		return "anonymous"
	case value.Builtin:
		return c.Name
	default:
		return string(v.Kind())
	}
}

// invoke calls callee with args, appending a trace entry to any
// resulting Error as it unwinds (spec §4.6). A non-function callee is
// a runtime error, per spec §4.5: "A non-function callee errors."
func (e *Evaluator) invoke(pos ast.Pos, callee value.Value, args []value.Value, label string) value.Value {
	switch c := callee.(type) {
	case value.Function:
		if len(args) != len(c.Params) {
			return newErrorAt(pos, "%s expects %d argument(s), got %d", label, len(c.Params), len(args))
		}
		parentEnv, ok := c.Env.(*env.Environment)
		if !ok {
			return newErrorAt(pos, "corrupt closure environment for %s", label)
		}
		callScope := env.NewChild(parentEnv, label)
		for i, p := range c.Params {
			callScope.Let(p, args[i])
		}
		body, ok := c.Body.(*ast.BlockStmt)
		if !ok {
			return newErrorAt(pos, "corrupt function body for %s", label)
		}
		result := e.evalBlockIn(body, callScope)
		result = unwrapReturn(result)
		if errv, ok := result.(value.Error); ok {
			errv.Trace = append(errv.Trace, value.TraceEntry{CallSite: locString(pos), Callee: label})
			return errv
		}
		return result
	case value.Builtin:
		result := c.Fn(args)
		if errv, ok := result.(value.Error); ok {
			errv.Trace = append(errv.Trace, value.TraceEntry{CallSite: locString(pos), Callee: label})
			return errv
		}
		return result
	default:
		return newErrorAt(pos, "%s is not callable", callee.Kind())
	}
}

// unwrapReturn converts a function body's control-flow result into the
// value callers see: a ReturnValue unwraps to its payload, a falling-
// off-the-end (nil) body produces Null, anything else (an Error, or a
// stray Break/Continue that escaped its loop) passes through unchanged.
func unwrapReturn(v value.Value) value.Value {
	switch r := v.(type) {
	case nil:
		return value.Null{}
	case value.ReturnValue:
		if r.Value == nil {
			return value.Null{}
		}
		return r.Value
	default:
		return v
	}
}

func locString(pos ast.Pos) string {
	if pos.File == "" {
		return ""
	}
	return pos.File + ":" + strconv.Itoa(pos.Line)
}
