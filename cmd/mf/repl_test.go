package main

import (
	"testing"

	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/stretchr/testify/require"
)

// evalLine's result is printed via fatih/color, which writes to a
// package-level Output captured at process init rather than the
// current *os.Stdout value, so these tests exercise it through its
// observable side effect on e.Base instead of scraping stdout.
func TestEvalLineRunsStatementsAcrossCalls(t *testing.T) {
	e := newEvaluator(nil)
	e.Base.Let("module", emptyModule())

	evalLine(e, "let counter = 1;")
	v, ok := e.Base.Get("counter")
	require.True(t, ok)
	require.Equal(t, value.Number{Value: 1}, v)

	evalLine(e, "counter = counter + 1;")
	v, ok = e.Base.Get("counter")
	require.True(t, ok)
	require.Equal(t, value.Number{Value: 2}, v)
}

func TestEvalLineDoesNotPanicOnExpressionOrError(t *testing.T) {
	e := newEvaluator(nil)
	e.Base.Let("module", emptyModule())

	require.NotPanics(t, func() { evalLine(e, "1 + 2;") })
	require.NotPanics(t, func() { evalLine(e, "does_not_exist;") })
}

func TestPromptColorsHasExpectedNames(t *testing.T) {
	for _, name := range []string{"red", "green", "yellow", "blue", "magenta", "cyan", "white"} {
		require.Contains(t, promptColors, name)
	}
}
