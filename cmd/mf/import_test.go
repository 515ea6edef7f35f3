package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/stretchr/testify/require"
)

func TestImportResolvesFileInCurrentModuleDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.mf"), []byte(`return 42;`), 0o644))

	e := newEvaluator(nil)
	setModule(e, filepath.Join(dir, "main.mf"), nil)

	importFn, ok := e.Base.Get("import")
	require.True(t, ok)
	builtin := importFn.(value.Builtin)

	result := builtin.Fn([]value.Value{value.String{Value: "helper.mf"}})
	require.Equal(t, value.Number{Value: 42}, result)
}

func TestImportResolvesDirectoryViaLibConvention(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(libDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(libDir, "lib.mf"), []byte(`return "pkg-loaded";`), 0o644))

	e := newEvaluator(nil)
	setModule(e, filepath.Join(dir, "main.mf"), nil)

	importFn := e.Base.Get
	fnV, _ := importFn("import")
	builtin := fnV.(value.Builtin)

	result := builtin.Fn([]value.Value{value.String{Value: "pkg"}})
	require.Equal(t, value.String{Value: "pkg-loaded"}, result)
}

func TestImportRestoresModuleAfterCompletion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.mf"), []byte(`return null;`), 0o644))

	e := newEvaluator(nil)
	mainPath := filepath.Join(dir, "main.mf")
	setModule(e, mainPath, nil)

	before, _ := e.Base.Get("module")

	fnV, _ := e.Base.Get("import")
	builtin := fnV.(value.Builtin)
	builtin.Fn([]value.Value{value.String{Value: "helper.mf"}})

	after, _ := e.Base.Get("module")
	require.Equal(t, before, after)
}

func TestImportMissingModuleIsError(t *testing.T) {
	dir := t.TempDir()
	e := newEvaluator(nil)
	setModule(e, filepath.Join(dir, "main.mf"), nil)

	fnV, _ := e.Base.Get("import")
	builtin := fnV.(value.Builtin)
	result := builtin.Fn([]value.Value{value.String{Value: "does-not-exist.mf"}})

	_, ok := result.(value.Error)
	require.True(t, ok)
}

func TestEvalModuleDefaultsToNullWithoutReturn(t *testing.T) {
	v := evalModule(newEvaluator(nil), "<inline>", `let x = 1;`)
	require.Equal(t, value.Null{}, v)
}

func TestEvalModulePropagatesError(t *testing.T) {
	v := evalModule(newEvaluator(nil), "<inline>", `error "boom";`)
	errv, ok := v.(value.Error)
	require.True(t, ok)
	require.Equal(t, value.String{Value: "boom"}, errv.Payload)
}
