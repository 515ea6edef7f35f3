package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// mapMethods returns Map's host-implemented metamap methods. `union`
// wraps value/container.go's native Map.Union directly — it backs both
// the `m.union(other)` method-call form and the `map::union` namespace
// free function installed by bootstrap/source/algebra.mf, and is what
// the `extends` bootstrap snippet calls to merge a prototype map with
// an override map.
func mapMethods() map[string]value.Value {
	return map[string]value.Value{
		"count":  value.Builtin{Name: "count", Fn: mapCount},
		"get":    value.Builtin{Name: "get", Fn: mapGet},
		"has":    value.Builtin{Name: "has", Fn: mapHas},
		"set":    value.Builtin{Name: "set", Fn: mapSet},
		"delete": value.Builtin{Name: "delete", Fn: mapDelete},
		"keys":   value.Builtin{Name: "keys", Fn: mapKeys},
		"values": value.Builtin{Name: "values", Fn: mapValues},
		"union":  value.Builtin{Name: "union", Fn: mapUnion},
	}
}

func mapCount(args []value.Value) value.Value {
	if errv := checkArity("count", args, 1); errv != nil {
		return errv
	}
	self, errv := selfArg("count", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("count", self.Cell.Get())
	if errv != nil {
		return errv
	}
	return value.Number{Value: float64(m.Len())}
}

func mapGet(args []value.Value) value.Value {
	if errv := checkArity("get", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("get", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("get", self.Cell.Get())
	if errv != nil {
		return errv
	}
	v, ok := m.Get(args[1])
	if !ok {
		return errf("key %s not found in map", value.Inspect(args[1]))
	}
	return v
}

func mapHas(args []value.Value) value.Value {
	if errv := checkArity("has", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("has", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("has", self.Cell.Get())
	if errv != nil {
		return errv
	}
	_, ok := m.Get(args[1])
	return value.Boolean{Value: ok}
}

func mapSet(args []value.Value) value.Value {
	if errv := checkArity("set", args, 3); errv != nil {
		return errv
	}
	self, errv := selfArg("set", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("set", self.Cell.Get())
	if errv != nil {
		return errv
	}
	if m.IsMetamap() {
		return errf("attempted write to immutable metamap")
	}
	m.Set(value.Bind(args[1]), value.Bind(args[2]))
	self.Cell.Set(m)
	return value.Null{}
}

func mapDelete(args []value.Value) value.Value {
	if errv := checkArity("delete", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("delete", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("delete", self.Cell.Get())
	if errv != nil {
		return errv
	}
	if m.IsMetamap() {
		return errf("attempted write to immutable metamap")
	}
	ok := m.Delete(args[1])
	self.Cell.Set(m)
	return value.Boolean{Value: ok}
}

func mapKeys(args []value.Value) value.Value {
	if errv := checkArity("keys", args, 1); errv != nil {
		return errv
	}
	self, errv := selfArg("keys", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("keys", self.Cell.Get())
	if errv != nil {
		return errv
	}
	entries := m.Entries()
	out := make([]value.Value, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return value.NewVector(out)
}

func mapValues(args []value.Value) value.Value {
	if errv := checkArity("values", args, 1); errv != nil {
		return errv
	}
	self, errv := selfArg("values", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("values", self.Cell.Get())
	if errv != nil {
		return errv
	}
	entries := m.Entries()
	out := make([]value.Value, len(entries))
	for i, e := range entries {
		out[i] = e.Val
	}
	return value.NewVector(out)
}

func mapUnion(args []value.Value) value.Value {
	if errv := checkArity("union", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("union", args)
	if errv != nil {
		return errv
	}
	m, errv := wantMap("union", self.Cell.Get())
	if errv != nil {
		return errv
	}
	other, errv := wantMap("union", args[1])
	if errv != nil {
		return errv
	}
	return m.Union(other)
}
