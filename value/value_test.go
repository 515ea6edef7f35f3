package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualPrimitives(t *testing.T) {
	require.True(t, Equal(Number{Value: 1}, Number{Value: 1}))
	require.False(t, Equal(Number{Value: 1}, Number{Value: 2}))
	require.True(t, Equal(String{Value: "a"}, String{Value: "a"}))
	require.True(t, Equal(Null{}, Null{}))
	require.False(t, Equal(Number{Value: 1}, String{Value: "1"}))
}

func TestEqualContainersByValueNotIdentity(t *testing.T) {
	a := NewVector([]Value{Number{Value: 1}, Number{Value: 2}})
	b := NewVector([]Value{Number{Value: 1}, Number{Value: 2}})
	require.True(t, Equal(a, b))

	c := a.Copy()
	require.True(t, Equal(a, c))
}

func TestVectorCopyOnWrite(t *testing.T) {
	a := NewVector([]Value{Number{Value: 1}})
	b := a.Copy()

	a.Push(Number{Value: 2})
	require.Equal(t, 1, b.Len())
	require.Equal(t, 2, a.Len())
}

func TestMapSetGetRoundtrip(t *testing.T) {
	m := NewMap()
	m.Set(String{Value: "k"}, Number{Value: 42})
	v, ok := m.Get(String{Value: "k"})
	require.True(t, ok)
	require.Equal(t, Number{Value: 42}, v)

	_, ok = m.Get(String{Value: "missing"})
	require.False(t, ok)
}

func TestMapUnionOtherWins(t *testing.T) {
	a := NewMap()
	a.Set(String{Value: "x"}, Number{Value: 1})
	b := NewMap()
	b.Set(String{Value: "x"}, Number{Value: 2})
	b.Set(String{Value: "y"}, Number{Value: 3})

	u := a.Union(b)
	vx, _ := u.Get(String{Value: "x"})
	vy, _ := u.Get(String{Value: "y"})
	require.Equal(t, Number{Value: 2}, vx)
	require.Equal(t, Number{Value: 3}, vy)
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet([]Value{Number{Value: 1}, Number{Value: 2}})
	b := NewSet([]Value{Number{Value: 2}, Number{Value: 3}})

	require.Equal(t, 3, a.Union(b).Len())
	require.Equal(t, 1, a.Intersection(b).Len())
	require.Equal(t, 1, a.Difference(b).Len())
}

func TestNewMetamapAndSetTypeMetamap(t *testing.T) {
	mm := NewMetamap("widget", map[string]Value{
		"greet": Builtin{Name: "greet", Fn: func(args []Value) Value { return String{Value: "hi"} }},
	})
	require.True(t, mm.IsMetamap())
	require.Equal(t, "widget", mm.TypeName())

	fn, ok := mm.Get(String{Value: "greet"})
	require.True(t, ok)
	require.Equal(t, BuiltinKind, fn.Kind())
}

func TestLookupMetaFallsBackToKindMetamap(t *testing.T) {
	SetTypeMetamap(NumberKind, NewMetamap("number", map[string]Value{
		"doubled": Builtin{Name: "doubled", Fn: func(args []Value) Value { return Number{Value: 2} }},
	}))
	v, ok := LookupMeta(Number{Value: 21}, "doubled")
	require.True(t, ok)
	require.Equal(t, BuiltinKind, v.Kind())
}

func TestIsEndOfIteration(t *testing.T) {
	eoi := Error{Payload: Null{}}
	require.True(t, eoi.IsEndOfIteration())

	notEoi := Error{Payload: String{Value: "boom"}}
	require.False(t, notEoi.IsEndOfIteration())
}

func TestDisplayAndInspectStrings(t *testing.T) {
	require.Equal(t, "hello", Display(String{Value: "hello"}))
	require.Equal(t, `"hello"`, Inspect(String{Value: "hello"}))
}

func TestStringQuoteEscapes(t *testing.T) {
	s := String{Value: "a\tb\n\"c\"\\d"}
	require.Equal(t, `"a\tb\n\"c\"\\d"`, s.Quote())
}
