package eval

import (
	"testing"

	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/parser"
	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/stretchr/testify/require"
)

// run parses and evaluates src against a fresh base environment with no
// bootstrap builtins installed, exercising only the core evaluator:
// arithmetic, control flow, closures, and containers.
func run(t *testing.T, src string) value.Value {
	t.Helper()
	p := parser.New("<test>", src)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	e := New(env.New("base"))
	return e.Program(stmts)
}

func runExpr(t *testing.T, src string) value.Value {
	t.Helper()
	p := parser.New("<test>", "let __result = "+src+";")
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	e := New(env.New("base"))
	sig := e.Program(stmts)
	if errv, ok := sig.(value.Error); ok {
		return errv
	}
	require.Nil(t, sig)
	v, ok := e.Base.Get("__result")
	require.True(t, ok)
	return v
}

func TestEvalArithmetic(t *testing.T) {
	require.Equal(t, value.Number{Value: 7}, runExpr(t, "1 + 2 * 3"))
	require.Equal(t, value.Number{Value: 1}, runExpr(t, "7 % 3"))
	require.Equal(t, value.String{Value: "ab"}, runExpr(t, `"a" + "b"`))
}

func TestEvalDivisionByZeroIsError(t *testing.T) {
	v := runExpr(t, "1 / 0")
	errv, ok := v.(value.Error)
	require.True(t, ok)
	require.Equal(t, value.String{Value: "division by zero"}, errv.Payload)
}

func TestEvalComparisonAndLogical(t *testing.T) {
	require.Equal(t, value.Boolean{Value: true}, runExpr(t, "1 < 2 and 2 < 3"))
	require.Equal(t, value.Boolean{Value: false}, runExpr(t, "1 > 2 or 3 < 2"))
}

func TestEvalIfElif(t *testing.T) {
	v := run(t, `
		let x = 2;
		let y = 0;
		if x == 1 {
			y = 10;
		} elif x == 2 {
			y = 20;
		} else {
			y = 30;
		}
		return y;
	`)
	rv, ok := v.(value.ReturnValue)
	require.True(t, ok)
	require.Equal(t, value.Number{Value: 20}, rv.Value)
}

func TestEvalWhileLoopWithBreakContinue(t *testing.T) {
	v := run(t, `
		let i = 0;
		let sum = 0;
		while i < 10 {
			i = i + 1;
			if i == 5 {
				continue;
			}
			if i > 8 {
				break;
			}
			sum = sum + i;
		}
		return sum;
	`)
	rv := v.(value.ReturnValue)
	require.Equal(t, value.Number{Value: 1 + 2 + 3 + 4 + 6 + 7 + 8}, rv.Value)
}

func TestEvalClosureCapturesEnvironment(t *testing.T) {
	v := run(t, `
		let make_adder = function(n) {
			return function(x) {
				return x + n;
			};
		};
		let add5 = make_adder(5);
		return add5(10);
	`)
	rv := v.(value.ReturnValue)
	require.Equal(t, value.Number{Value: 15}, rv.Value)
}

func TestEvalRecursion(t *testing.T) {
	v := run(t, `
		let fact = function(n) {
			if n <= 1 {
				return 1;
			}
			return n * fact(n - 1);
		};
		return fact(5);
	`)
	rv := v.(value.ReturnValue)
	require.Equal(t, value.Number{Value: 120}, rv.Value)
}

func TestEvalTryCatch(t *testing.T) {
	v := run(t, `
		let result = 0;
		try {
			error "boom";
		} catch e {
			result = 1;
		}
		return result;
	`)
	rv := v.(value.ReturnValue)
	require.Equal(t, value.Number{Value: 1}, rv.Value)
}

func TestEvalVectorIndexAssign(t *testing.T) {
	v := run(t, `
		let xs = [1, 2, 3];
		xs[1] = 99;
		return xs[1];
	`)
	rv := v.(value.ReturnValue)
	require.Equal(t, value.Number{Value: 99}, rv.Value)
}

func TestEvalUndefinedNameIsError(t *testing.T) {
	v := runExpr(t, "does_not_exist")
	_, ok := v.(value.Error)
	require.True(t, ok)
}

func TestEvalBreakOutsideLoopIsTopLevelError(t *testing.T) {
	p := parser.New("<test>", `break;`)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	e := New(env.New("base"))
	sig := e.Program(stmts)
	errv, ok := sig.(value.Error)
	require.True(t, ok)
	require.Contains(t, errv.Payload.String(), "outside of loop")
}
