package parser

import (
	"testing"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/stretchr/testify/require"
)

func TestParseProgramLetAndExprStmt(t *testing.T) {
	p := New("<test>", `let x = 1 + 2 * 3; x;`)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	let, ok := stmts[0].(*ast.LetStmt)
	require.True(t, ok)
	require.Equal(t, "x", let.Name)

	bin, ok := let.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)

	exprStmt, ok := stmts[1].(*ast.ExprStmt)
	require.True(t, ok)
	ident, ok := exprStmt.X.(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "x", ident.Name)
}

func TestParseProgramPrecedence(t *testing.T) {
	p := New("<test>", `1 + 2 * 3;`)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	exprStmt := stmts[0].(*ast.ExprStmt)
	bin := exprStmt.X.(*ast.BinaryExpr)
	require.Equal(t, "+", bin.Op)
	_, rightIsMul := bin.Right.(*ast.BinaryExpr)
	require.True(t, rightIsMul)
}

func TestParseProgramIfElif(t *testing.T) {
	p := New("<test>", `if x { 1; } elif y { 2; } else { 3; }`)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	ifStmt := stmts[0].(*ast.IfStmt)
	require.Len(t, ifStmt.Clauses, 2)
	require.NotNil(t, ifStmt.Else)
}

func TestParseProgramFunctionLit(t *testing.T) {
	p := New("<test>", `let f = function(a, b) { return a + b; };`)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)

	let := stmts[0].(*ast.LetStmt)
	fn := let.Value.(*ast.FunctionLit)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name)
}

func TestParseProgramCollectsMultipleErrors(t *testing.T) {
	p := New("<test>", `let = ; let = ; let y = 2;`)
	_, err := p.ParseProgram()
	require.Error(t, err)
	require.NotEmpty(t, p.Errors)
	require.Len(t, p.Errors, 2)
}

func TestParseProgramDotAndScopeChain(t *testing.T) {
	p := New("<test>", `a.&.push(1); m::get(a);`)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	call := stmts[0].(*ast.ExprStmt).X.(*ast.CallExpr)
	dot, ok := call.Callee.(*ast.DotExpr)
	require.True(t, ok)
	require.Equal(t, "push", dot.Field)

	call2 := stmts[1].(*ast.ExprStmt).X.(*ast.CallExpr)
	scope, ok := call2.Callee.(*ast.ScopeExpr)
	require.True(t, ok)
	require.Equal(t, "get", scope.Field)
}
