package main

import (
	"testing"

	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/stretchr/testify/require"
)

func TestSplitSearchPath(t *testing.T) {
	require.Nil(t, splitSearchPath(""))
	require.Equal(t, []string{"a"}, splitSearchPath("a"))
	require.Equal(t, []string{"a", "b", "c"}, splitSearchPath("a:b:c"))
	require.Equal(t, []string{"a", "", "c"}, splitSearchPath("a::c"))
}

func TestSetModulePopulatesPathAndArgv(t *testing.T) {
	e := newEvaluator(nil)
	setModule(e, "script.mf", []string{"--flag", "value"})

	modV, ok := e.Base.Get("module")
	require.True(t, ok)
	mod := modV.(value.Map)
	file, _ := mod.Get(value.String{Value: "file"})
	require.Equal(t, value.String{Value: "script.mf"}, file)

	argvV, ok := e.Base.Get("argv")
	require.True(t, ok)
	argv := argvV.(value.Vector)
	require.Equal(t, 3, argv.Len())
	first, _ := argv.Get(0)
	require.Equal(t, value.String{Value: "script.mf"}, first)
}

func TestEmptyModuleHasDotDirectory(t *testing.T) {
	m := emptyModule().(value.Map)
	dir, ok := m.Get(value.String{Value: "directory"})
	require.True(t, ok)
	require.Equal(t, value.String{Value: "."}, dir)
}

func TestMelliferaHomeFallsBackWhenUnset(t *testing.T) {
	t.Setenv("MELLIFERA_HOME", "")
	home := melliferaHome()
	require.NotEmpty(t, home)
}

func TestMelliferaHomeHonorsEnv(t *testing.T) {
	t.Setenv("MELLIFERA_HOME", "/tmp/custom-home")
	require.Equal(t, "/tmp/custom-home", melliferaHome())
}
