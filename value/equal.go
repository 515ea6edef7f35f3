package value

// Equal implements spec §3's equality rules: structural for containers,
// by-value for scalars, IEEE for numbers, AST identity for functions,
// referent identity for references, type identity for builtins.
// Different kinds are never equal.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Null:
		return true
	case Boolean:
		return x.Value == b.(Boolean).Value
	case Number:
		return x.Value == b.(Number).Value
	case String:
		return x.Value == b.(String).Value
	case Regexp:
		return x.Source == b.(Regexp).Source
	case Vector:
		y := b.(Vector)
		if x.data == y.data {
			return true
		}
		if len(x.data.items) != len(y.data.items) {
			return false
		}
		for i := range x.data.items {
			if !Equal(x.data.items[i], y.data.items[i]) {
				return false
			}
		}
		return true
	case Map:
		y := b.(Map)
		if x.data == y.data {
			return true
		}
		if len(x.data.entries) != len(y.data.entries) {
			return false
		}
		for _, e := range x.data.entries {
			j, ok := y.find(e.key)
			if !ok || !Equal(e.val, y.data.entries[j].val) {
				return false
			}
		}
		return true
	case Set:
		y := b.(Set)
		if x.data == y.data {
			return true
		}
		if len(x.data.elems) != len(y.data.elems) {
			return false
		}
		for _, e := range x.data.elems {
			if _, ok := y.find(e); !ok {
				return false
			}
		}
		return true
	case Reference:
		return x.Cell.Identity() == b.(Reference).Cell.Identity()
	case Function:
		return x.Body == b.(Function).Body
	case Builtin:
		return x.Name == b.(Builtin).Name
	case External:
		y := b.(External)
		return x.Tag == y.Tag && x.Data == y.Data
	default:
		return false
	}
}
