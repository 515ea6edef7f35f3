package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// tyNamespace builds the `ty::*` type-introspection catalog bound at
// base name "ty" (EXPANSION, grounded on original_source/mf.py's
// `ty::is`/`ty::is_null`/`ty::is_boolean`/... family). `ty::is` takes a
// second argument that is either Null (meaning "has no metamap") or a
// metamap compared with value.Equal against the value's own attached
// metamap (the same metamap, or one with equal entries). The `is_*`
// shortcuts instead test the value's runtime kind, so they also answer
// for plain values that carry no metamap of their own.
func tyNamespace() value.Value {
	m := value.NewMap()
	m.Set(value.String{Value: "is"}, value.Builtin{Name: "ty::is", Fn: tyIs})
	for _, k := range []struct {
		name string
		kind value.Kind
	}{
		{"is_null", value.NullKind},
		{"is_boolean", value.BooleanKind},
		{"is_number", value.NumberKind},
		{"is_string", value.StringKind},
		{"is_regexp", value.RegexpKind},
		{"is_vector", value.VectorKind},
		{"is_map", value.MapKind},
		{"is_set", value.SetKind},
		{"is_reference", value.ReferenceKind},
	} {
		kind := k.kind
		name := "ty::" + k.name
		m.Set(value.String{Value: k.name}, value.Builtin{Name: name, Fn: tyIsKind(name, kind)})
	}
	m.Set(value.String{Value: "is_function"}, value.Builtin{Name: "ty::is_function", Fn: tyIsFunction})
	return m
}

func tyIs(args []value.Value) value.Value {
	if errv := checkArity("ty::is", args, 2); errv != nil {
		return errv
	}
	v, t := args[0], args[1]
	if _, isNull := t.(value.Null); isNull {
		return value.Boolean{Value: v.Meta() == nil}
	}
	meta, ok := t.(value.Map)
	if !ok || !meta.IsMetamap() {
		return errf("ty::is expects null or a metamap as its second argument, found %s", t.Kind())
	}
	vm := v.Meta()
	if vm == nil {
		return value.Boolean{Value: false}
	}
	return value.Boolean{Value: value.Equal(*vm, meta)}
}

func tyIsKind(name string, kind value.Kind) value.BuiltinFunc {
	return func(args []value.Value) value.Value {
		if errv := checkArity(name, args, 1); errv != nil {
			return errv
		}
		return value.Boolean{Value: args[0].Kind() == kind}
	}
}

func tyIsFunction(args []value.Value) value.Value {
	if errv := checkArity("ty::is_function", args, 1); errv != nil {
		return errv
	}
	return value.Boolean{Value: value.IsCallable(args[0])}
}
