package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// vectorMethods returns the host-implemented portion of Vector's
// metamap (spec §4.7 "Host-implemented methods are installed
// directly"). Mutating methods read self's current Vector, call the
// matching pointer-receiver method on value/container.go's Vector
// (which clones its storage first if shared), then write the
// possibly-cloned result back through self — the same self-as-
// Reference write-through convention spec §4.5 describes for
// dot-access assignment, applied uniformly to method calls.
func vectorMethods() map[string]value.Value {
	return map[string]value.Value{
		"count":    value.Builtin{Name: "count", Fn: vectorCount},
		"push":     value.Builtin{Name: "push", Fn: vectorPush},
		"pop":      value.Builtin{Name: "pop", Fn: vectorPop},
		"insert":   value.Builtin{Name: "insert", Fn: vectorInsert},
		"remove":   value.Builtin{Name: "remove", Fn: vectorRemove},
		"slice":    value.Builtin{Name: "slice", Fn: vectorSlice},
		"contains": value.Builtin{Name: "contains", Fn: vectorContains},
		"concat":   value.Builtin{Name: "concat", Fn: vectorConcat},
	}
}

func vectorCount(args []value.Value) value.Value {
	if errv := checkArity("count", args, 1); errv != nil {
		return errv
	}
	self, errv := selfArg("count", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("count", self.Cell.Get())
	if errv != nil {
		return errv
	}
	return value.Number{Value: float64(vec.Len())}
}

func vectorPush(args []value.Value) value.Value {
	if errv := checkArity("push", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("push", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("push", self.Cell.Get())
	if errv != nil {
		return errv
	}
	vec.Push(value.Bind(args[1]))
	self.Cell.Set(vec)
	return value.Null{}
}

func vectorPop(args []value.Value) value.Value {
	if errv := checkArity("pop", args, 1); errv != nil {
		return errv
	}
	self, errv := selfArg("pop", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("pop", self.Cell.Get())
	if errv != nil {
		return errv
	}
	v, ok := vec.Pop()
	if !ok {
		return errf("pop on empty vector")
	}
	self.Cell.Set(vec)
	return v
}

func vectorInsert(args []value.Value) value.Value {
	if errv := checkArity("insert", args, 3); errv != nil {
		return errv
	}
	self, errv := selfArg("insert", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("insert", self.Cell.Get())
	if errv != nil {
		return errv
	}
	i, errv := wantIndex("insert", args[1])
	if errv != nil {
		return errv
	}
	if i > vec.Len() {
		return errf("insert index %d out of range (length %d)", i, vec.Len())
	}
	vec.Insert(i, value.Bind(args[2]))
	self.Cell.Set(vec)
	return value.Null{}
}

func vectorRemove(args []value.Value) value.Value {
	if errv := checkArity("remove", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("remove", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("remove", self.Cell.Get())
	if errv != nil {
		return errv
	}
	i, errv := wantIndex("remove", args[1])
	if errv != nil {
		return errv
	}
	v, ok := vec.Remove(i)
	if !ok {
		return errf("remove index %d out of range (length %d)", i, vec.Len())
	}
	self.Cell.Set(vec)
	return v
}

func vectorSlice(args []value.Value) value.Value {
	if errv := checkArity("slice", args, 3); errv != nil {
		return errv
	}
	self, errv := selfArg("slice", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("slice", self.Cell.Get())
	if errv != nil {
		return errv
	}
	lo, errv := wantIndex("slice", args[1])
	if errv != nil {
		return errv
	}
	hi, errv := wantIndex("slice", args[2])
	if errv != nil {
		return errv
	}
	if lo > hi || hi > vec.Len() {
		return errf("slice bounds [%d:%d] out of range (length %d)", lo, hi, vec.Len())
	}
	out := make([]value.Value, 0, hi-lo)
	for i := lo; i < hi; i++ {
		v, _ := vec.Get(i)
		out = append(out, v)
	}
	return value.NewVector(out)
}

func vectorContains(args []value.Value) value.Value {
	if errv := checkArity("contains", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("contains", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("contains", self.Cell.Get())
	if errv != nil {
		return errv
	}
	for _, item := range vec.Items() {
		if value.Equal(item, args[1]) {
			return value.Boolean{Value: true}
		}
	}
	return value.Boolean{Value: false}
}

func vectorConcat(args []value.Value) value.Value {
	if errv := checkArity("concat", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("concat", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("concat", self.Cell.Get())
	if errv != nil {
		return errv
	}
	other, errv := wantVector("concat", args[1])
	if errv != nil {
		return errv
	}
	return vec.Concat(other)
}
