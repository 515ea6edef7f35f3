package bootstrap

import (
	"testing"

	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/parser"
	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/stretchr/testify/require"
)

// runReturn sets up a fresh bootstrapped evaluator and runs src, which
// must end with a top-level `return EXPR;`, returning the produced
// Value. Exercises Setup's whole assembly: host metamaps plus every
// source-defined prototype.
func runReturn(t *testing.T, src string) value.Value {
	t.Helper()
	e, err := Setup()
	require.NoError(t, err)

	p := parser.New("<test>", src)
	stmts, perr := p.ParseProgram()
	require.NoError(t, perr)

	scope := env.NewChild(e.Base, "test")
	for _, stmt := range stmts {
		sig := e.EvalStmt(stmt, scope)
		if sig == nil {
			continue
		}
		rv, ok := sig.(value.ReturnValue)
		require.True(t, ok, "unexpected control-flow signal: %v", sig)
		return rv.Value
	}
	t.Fatal("no return statement reached")
	return nil
}

func TestSetupInstallsEveryKindMetamap(t *testing.T) {
	_, err := Setup()
	require.NoError(t, err)
}

func TestVectorHostMethods(t *testing.T) {
	v := runReturn(t, `
		let xs = [1, 2, 3];
		xs.push(4);
		return xs.count();
	`)
	require.Equal(t, value.Number{Value: 4}, v)
}

func TestVectorSortedIsSourceDefined(t *testing.T) {
	v := runReturn(t, `
		let xs = [3, 1, 2];
		let sorted = xs.sorted();
		return sorted;
	`)
	vec, ok := v.(value.Vector)
	require.True(t, ok)
	require.Equal(t, 3, vec.Len())
	first, _ := vec.Get(0)
	require.Equal(t, value.Number{Value: 1}, first)
}

func TestVectorIteratorProtocol(t *testing.T) {
	v := runReturn(t, `
		let xs = [10, 20, 30];
		let it = xs.iterator();
		return it.count();
	`)
	require.Equal(t, value.Number{Value: 3}, v)
}

func TestMapUnionNamespace(t *testing.T) {
	v := runReturn(t, `
		let a = {.x = 1};
		let b = {.x = 2, .y = 3};
		return map::union(a, b);
	`)
	m, ok := v.(value.Map)
	require.True(t, ok)
	x, _ := m.Get(value.String{Value: "x"})
	require.Equal(t, value.Number{Value: 2}, x)
}

func TestSetAlgebraNamespace(t *testing.T) {
	v := runReturn(t, `
		let a = Set{1, 2};
		let b = Set{2, 3};
		return set::union(a, b).count();
	`)
	require.Equal(t, value.Number{Value: 3}, v)
}

func TestRangeIterator(t *testing.T) {
	v := runReturn(t, `
		let r = range(0, 3);
		return r.into_vector();
	`)
	vec, ok := v.(value.Vector)
	require.True(t, ok)
	require.Equal(t, 3, vec.Len())
}

func TestExtendsPrototype(t *testing.T) {
	v := runReturn(t, `
		let base = {.greet = function(self) { return "hi"; }};
		let child = extends(base, {.name = "child"});
		return child.name;
	`)
	require.Equal(t, value.String{Value: "child"}, v)
}

func TestTyPredicates(t *testing.T) {
	v := runReturn(t, `
		return ty::is_number(1) and ty::is_string("x") and not ty::is_vector(1);
	`)
	require.Equal(t, value.Boolean{Value: true}, v)
}

func TestMathClamp(t *testing.T) {
	v := runReturn(t, `
		return math::clamp(10, 0, 5);
	`)
	require.Equal(t, value.Number{Value: 5}, v)
}

func TestAssertRaisesOnFalse(t *testing.T) {
	v := runReturn(t, `
		try {
			assert(1 == 2);
			return "no error";
		} catch e {
			return "caught";
		}
	`)
	require.Equal(t, value.String{Value: "caught"}, v)
}

func TestNumberMethods(t *testing.T) {
	v := runReturn(t, `
		return (3.7).floor() + (3.2).ceil();
	`)
	require.Equal(t, value.Number{Value: 7}, v)
}

func TestRegexpGroupNamespace(t *testing.T) {
	v := runReturn(t, `
		let matched = "hello world" =~ r"(\\w+) (\\w+)";
		return re::group(1);
	`)
	require.Equal(t, value.String{Value: "hello"}, v)
}

func TestTypeofAndNew(t *testing.T) {
	v := runReturn(t, `
		let Point = type {.x = 0, .y = 0};
		let p = new Point {.x = 1, .y = 2};
		return p.x + p.y;
	`)
	require.Equal(t, value.Number{Value: 3}, v)
}
