// Package bootstrap assembles the runtime's type metamaps and base
// environment (spec §4.7 "Bootstrap & builtins"): host-implemented
// methods installed directly, in the fixed order Function, Boolean,
// Number, String, Regexp, Vector, Map, Set, Reference, followed by a
// handful of source-defined builtins evaluated against the assembled
// base environment. Grounded on akashmaji946-go-mix's
// objects/builtins.go + std/builtins.go Builtin{Name,Callback} pair as
// value.Builtin{Name, Fn}. Each host function checks its own arity and
// argument types with the checkArity/selfArg/want* helpers below; there
// is no declarative table of arity or per-argument coercion rules.
package bootstrap

import (
	"fmt"

	"github.com/ashn-dot-dev/mellifera/value"
)

// errf builds a script-visible Error carrying a String payload, the
// same Value|Error convention every other builtin and the evaluator's
// own newErrorAt helper uses.
func errf(format string, args ...interface{}) value.Error {
	return value.Error{Payload: value.String{Value: fmt.Sprintf(format, args...)}}
}

func checkArity(name string, args []value.Value, want int) value.Value {
	if len(args) != want {
		return errf("%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func checkArityRange(name string, args []value.Value, min, max int) value.Value {
	if len(args) < min || len(args) > max {
		return errf("%s expects %d to %d argument(s), got %d", name, min, max, len(args))
	}
	return nil
}

// selfArg extracts the implicit `self` argument every metamap method
// receives (spec §4.5 "Calls": a Reference to the receiver is
// prepended automatically). Builtins installed directly into a type
// metamap always expect args[0] to be this Reference.
func selfArg(name string, args []value.Value) (value.Reference, value.Value) {
	if len(args) == 0 {
		return value.Reference{}, errf("%s requires a receiver", name)
	}
	ref, ok := args[0].(value.Reference)
	if !ok {
		return value.Reference{}, errf("%s requires a reference receiver, found %s", name, args[0].Kind())
	}
	return ref, nil
}

func wantVector(name string, v value.Value) (value.Vector, value.Value) {
	vec, ok := v.(value.Vector)
	if !ok {
		return value.Vector{}, errf("%s requires a vector, found %s", name, v.Kind())
	}
	return vec, nil
}

func wantMap(name string, v value.Value) (value.Map, value.Value) {
	m, ok := v.(value.Map)
	if !ok {
		return value.Map{}, errf("%s requires a map, found %s", name, v.Kind())
	}
	return m, nil
}

func wantSet(name string, v value.Value) (value.Set, value.Value) {
	s, ok := v.(value.Set)
	if !ok {
		return value.Set{}, errf("%s requires a set, found %s", name, v.Kind())
	}
	return s, nil
}

func wantString(name string, v value.Value) (value.String, value.Value) {
	s, ok := v.(value.String)
	if !ok {
		return value.String{}, errf("%s requires a string, found %s", name, v.Kind())
	}
	return s, nil
}

func wantNumber(name string, v value.Value) (value.Number, value.Value) {
	n, ok := v.(value.Number)
	if !ok {
		return value.Number{}, errf("%s requires a number, found %s", name, v.Kind())
	}
	return n, nil
}

// wantIndex validates n as a non-negative integral Number and returns
// it as an int, the same rule eval_expr.go's vectorIndex applies to
// index expressions.
func wantIndex(name string, v value.Value) (int, value.Value) {
	n, errv := wantNumber(name, v)
	if errv != nil {
		return 0, errv
	}
	if n.Value != float64(int(n.Value)) || n.Value < 0 {
		return 0, errf("%s requires a non-negative integer, found %s", name, n.String())
	}
	return int(n.Value), nil
}
