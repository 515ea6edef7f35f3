package env

import (
	"testing"

	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/stretchr/testify/require"
)

func TestLetAndGet(t *testing.T) {
	root := New("base")
	root.Let("x", value.Number{Value: 1})

	v, ok := root.Get("x")
	require.True(t, ok)
	require.Equal(t, value.Number{Value: 1}, v)

	_, ok = root.Get("missing")
	require.False(t, ok)
}

func TestChildSeesParentBindings(t *testing.T) {
	root := New("base")
	root.Let("x", value.Number{Value: 1})

	child := NewChild(root, "block")
	v, ok := child.Get("x")
	require.True(t, ok)
	require.Equal(t, value.Number{Value: 1}, v)
}

func TestLetShadowsWithoutDisturbingParent(t *testing.T) {
	root := New("base")
	root.Let("x", value.Number{Value: 1})

	child := NewChild(root, "block")
	child.Let("x", value.Number{Value: 2})

	childVal, _ := child.Get("x")
	rootVal, _ := root.Get("x")
	require.Equal(t, value.Number{Value: 2}, childVal)
	require.Equal(t, value.Number{Value: 1}, rootVal)
}

func TestAssignRebindsInOwningScope(t *testing.T) {
	root := New("base")
	root.Let("x", value.Number{Value: 1})

	child := NewChild(root, "block")
	ok := child.Assign("x", value.Number{Value: 99})
	require.True(t, ok)

	rootVal, _ := root.Get("x")
	require.Equal(t, value.Number{Value: 99}, rootVal)

	ok = child.Assign("undefined", value.Number{Value: 1})
	require.False(t, ok)
}

func TestCellAliasesOwningSlot(t *testing.T) {
	root := New("base")
	root.Let("x", value.Number{Value: 1})

	cell := root.Cell("x")
	require.NotNil(t, cell)
	require.Equal(t, value.Number{Value: 1}, cell.Get())

	cell.Set(value.Number{Value: 2})
	v, _ := root.Get("x")
	require.Equal(t, value.Number{Value: 2}, v)

	require.Nil(t, root.Cell("missing"))
}
