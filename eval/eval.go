// Package eval implements the tree-walking evaluator: recursive descent
// over package ast's node tree, in the dispatch style of
// akashmaji946/go-mix's eval.Eval — one big type switch over the node,
// not a visitor. Expression evaluation yields a value.Value that is
// either an ordinary result or a value.Error; statement evaluation
// yields one of {nil, value.ReturnValue, value.Break, value.Continue,
// value.Error}, following the teacher's habit of using ordinary
// GoMixObject-like values (ReturnValue/Break/Continue) as control-flow
// carriers instead of a parallel Go-level control-flow type.
package eval

import (
	"fmt"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/value"
)

// Evaluator holds interpreter-wide state: the base environment and the
// last-regex-match slot (spec §5 "Shared state"). Each Evaluator has its
// own slot; it is not shared across Evaluator instances.
type Evaluator struct {
	Base      *env.Environment
	LastMatch []string // nil if no match has occurred yet
}

// New creates an Evaluator over a freshly assembled base environment.
// Bootstrap (package bootstrap) is responsible for populating Base with
// type metamaps and builtins before user code runs.
func New(base *env.Environment) *Evaluator {
	return &Evaluator{Base: base}
}

func newErrorAt(pos ast.Pos, format string, args ...interface{}) value.Error {
	return value.Error{
		Payload:  value.String{Value: fmt.Sprintf(format, args...)},
		Location: fmt.Sprintf("%s:%d", pos.File, pos.Line),
	}
}

// IsError reports whether v is a propagating value.Error, mirroring
// go-mix's IsError helper.
func IsError(v value.Value) bool {
	_, ok := v.(value.Error)
	return ok
}

// Eval evaluates any expression node, returning the resulting Value or
// a value.Error.
func (e *Evaluator) Eval(n ast.Expr, scope *env.Environment) value.Value {
	switch node := n.(type) {
	case *ast.NullLit:
		return value.Null{}
	case *ast.BoolLit:
		return value.Boolean{Value: node.Value}
	case *ast.NumberLit:
		return value.Number{Value: node.Value}
	case *ast.StringLit:
		return value.String{Value: node.Value}
	case *ast.RegexpLit:
		re, err := value.NewRegexp(node.Source)
		if err != nil {
			return newErrorAt(node.Pos(), "invalid regexp %q: %s", node.Source, err)
		}
		return re
	case *ast.TemplateLit:
		return e.evalTemplate(node, scope)
	case *ast.Ident:
		v, ok := scope.Get(node.Name)
		if !ok {
			return newErrorAt(node.Pos(), "undefined name %q", node.Name)
		}
		return v
	case *ast.VectorLit:
		return e.evalVectorLit(node, scope)
	case *ast.MapLit:
		return e.evalMapLit(node, scope)
	case *ast.SetLit:
		return e.evalSetLit(node, scope)
	case *ast.FunctionLit:
		return value.Function{Name: node.Name, Params: paramNames(node.Params), Body: node.Body, Env: scope}
	case *ast.UnaryExpr:
		return e.evalUnary(node, scope)
	case *ast.BinaryExpr:
		return e.evalBinary(node, scope)
	case *ast.LogicalExpr:
		return e.evalLogical(node, scope)
	case *ast.MatchExpr:
		return e.evalMatch(node, scope)
	case *ast.IndexExpr:
		return e.evalIndex(node, scope)
	case *ast.DotExpr:
		return e.evalDot(node, scope)
	case *ast.ScopeExpr:
		return e.evalScope(node, scope)
	case *ast.RefExpr:
		return e.evalRef(node, scope)
	case *ast.DerefExpr:
		return e.evalDeref(node, scope)
	case *ast.CallExpr:
		return e.evalCall(node, scope)
	case *ast.TypeOfExpr:
		return e.evalTypeOf(node, scope)
	case *ast.NewExpr:
		return e.evalNew(node, scope)
	default:
		return newErrorAt(n.Pos(), "unhandled expression node %T", n)
	}
}

func paramNames(params []ast.FunctionParam) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// EvalStmt evaluates a statement, returning nil for "no control flow
// signal" or one of value.ReturnValue / value.Break / value.Continue /
// value.Error.
func (e *Evaluator) EvalStmt(s ast.Stmt, scope *env.Environment) value.Value {
	switch node := s.(type) {
	case *ast.LetStmt:
		return e.evalLet(node, scope)
	case *ast.IfStmt:
		return e.evalIf(node, scope)
	case *ast.ForStmt:
		return e.evalFor(node, scope)
	case *ast.WhileStmt:
		return e.evalWhile(node, scope)
	case *ast.BreakStmt:
		return value.Break{}
	case *ast.ContinueStmt:
		return value.Continue{}
	case *ast.TryStmt:
		return e.evalTry(node, scope)
	case *ast.ErrorStmt:
		return e.evalErrorStmt(node, scope)
	case *ast.ReturnStmt:
		return e.evalReturn(node, scope)
	case *ast.BlockStmt:
		return e.evalBlockNewScope(node, scope)
	case *ast.AssignStmt:
		return e.evalAssign(node, scope)
	case *ast.ExprStmt:
		v := e.Eval(node.X, scope)
		if IsError(v) {
			return v
		}
		return nil
	default:
		return newErrorAt(s.Pos(), "unhandled statement node %T", s)
	}
}

// evalBlockNewScope runs a block's statements in a fresh child scope
// (spec §4.5: "Blocks create a new child scope"), stopping at the
// first control-flow signal.
func (e *Evaluator) evalBlockNewScope(b *ast.BlockStmt, parent *env.Environment) value.Value {
	return e.evalBlockIn(b, env.NewChild(parent, "block"))
}

// evalBlockIn runs a block's statements directly in scope, without
// allocating a further child — used when the caller already built the
// scope the block body should run in (function calls, for/while
// bodies, catch blocks).
func (e *Evaluator) evalBlockIn(b *ast.BlockStmt, scope *env.Environment) value.Value {
	for _, stmt := range b.Stmts {
		if sig := e.EvalStmt(stmt, scope); sig != nil {
			return sig
		}
	}
	return nil
}

// Program evaluates a top-level statement list in the Evaluator's base
// environment.
func (e *Evaluator) Program(stmts []ast.Stmt) value.Value {
	for _, stmt := range stmts {
		if sig := e.EvalStmt(stmt, e.Base); sig != nil {
			switch sig.(type) {
			case value.Break, value.Continue:
				return newErrorAt(stmt.Pos(), "%s outside of loop", sig.String())
			default:
				return sig
			}
		}
	}
	return nil
}
