package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// setMethods returns Set's host-implemented metamap methods, wrapping
// value/container.go's native Set.Union/Intersection/Difference for
// the same reasons mapMethods wraps Map.Union: the algebra is already
// implemented natively, so the method-call and namespace-function
// entry points both delegate to it rather than re-deriving it in
// Mellifera source.
func setMethods() map[string]value.Value {
	return map[string]value.Value{
		"count":        value.Builtin{Name: "count", Fn: setCount},
		"insert":       value.Builtin{Name: "insert", Fn: setInsert},
		"remove":       value.Builtin{Name: "remove", Fn: setRemove},
		"contains":     value.Builtin{Name: "contains", Fn: setContains},
		"union":        value.Builtin{Name: "union", Fn: setUnion},
		"intersection": value.Builtin{Name: "intersection", Fn: setIntersection},
		"difference":   value.Builtin{Name: "difference", Fn: setDifference},
	}
}

func setCount(args []value.Value) value.Value {
	if errv := checkArity("count", args, 1); errv != nil {
		return errv
	}
	self, errv := selfArg("count", args)
	if errv != nil {
		return errv
	}
	s, errv := wantSet("count", self.Cell.Get())
	if errv != nil {
		return errv
	}
	return value.Number{Value: float64(s.Len())}
}

func setInsert(args []value.Value) value.Value {
	if errv := checkArity("insert", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("insert", args)
	if errv != nil {
		return errv
	}
	s, errv := wantSet("insert", self.Cell.Get())
	if errv != nil {
		return errv
	}
	added := s.Add(value.Bind(args[1]))
	self.Cell.Set(s)
	return value.Boolean{Value: added}
}

func setRemove(args []value.Value) value.Value {
	if errv := checkArity("remove", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("remove", args)
	if errv != nil {
		return errv
	}
	s, errv := wantSet("remove", self.Cell.Get())
	if errv != nil {
		return errv
	}
	removed := s.Remove(args[1])
	self.Cell.Set(s)
	return value.Boolean{Value: removed}
}

func setContains(args []value.Value) value.Value {
	if errv := checkArity("contains", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("contains", args)
	if errv != nil {
		return errv
	}
	s, errv := wantSet("contains", self.Cell.Get())
	if errv != nil {
		return errv
	}
	return value.Boolean{Value: s.Contains(args[1])}
}

func setUnion(args []value.Value) value.Value {
	if errv := checkArity("union", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("union", args)
	if errv != nil {
		return errv
	}
	s, errv := wantSet("union", self.Cell.Get())
	if errv != nil {
		return errv
	}
	other, errv := wantSet("union", args[1])
	if errv != nil {
		return errv
	}
	return s.Union(other)
}

func setIntersection(args []value.Value) value.Value {
	if errv := checkArity("intersection", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("intersection", args)
	if errv != nil {
		return errv
	}
	s, errv := wantSet("intersection", self.Cell.Get())
	if errv != nil {
		return errv
	}
	other, errv := wantSet("intersection", args[1])
	if errv != nil {
		return errv
	}
	return s.Intersection(other)
}

func setDifference(args []value.Value) value.Value {
	if errv := checkArity("difference", args, 2); errv != nil {
		return errv
	}
	self, errv := selfArg("difference", args)
	if errv != nil {
		return errv
	}
	s, errv := wantSet("difference", self.Cell.Get())
	if errv != nil {
		return errv
	}
	other, errv := wantSet("difference", args[1])
	if errv != nil {
		return errv
	}
	return s.Difference(other)
}
