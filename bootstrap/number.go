package bootstrap

import (
	"math"

	"github.com/ashn-dot-dev/mellifera/value"
)

// numberMethods returns Number's host-implemented metamap methods.
// Grounded on original_source/mf.py's `math::*` catalog (trunc/floor/
// ceil/round/abs), narrowed to the handful the bootstrap snippets
// themselves need (`(v.count() / 2).trunc()` in sorted.mf) plus the
// rest of the family for symmetry — dropped from the distilled spec
// but present in the original and cheap to host directly since they
// map 1:1 onto package math.
func numberMethods() map[string]value.Value {
	return map[string]value.Value{
		"trunc": value.Builtin{Name: "trunc", Fn: numberUnary("trunc", math.Trunc)},
		"floor": value.Builtin{Name: "floor", Fn: numberUnary("floor", math.Floor)},
		"ceil":  value.Builtin{Name: "ceil", Fn: numberUnary("ceil", math.Ceil)},
		"round": value.Builtin{Name: "round", Fn: numberUnary("round", math.Round)},
		"abs":   value.Builtin{Name: "abs", Fn: numberUnary("abs", math.Abs)},
	}
}

func numberUnary(name string, fn func(float64) float64) value.BuiltinFunc {
	return func(args []value.Value) value.Value {
		if errv := checkArity(name, args, 1); errv != nil {
			return errv
		}
		self, errv := selfArg(name, args)
		if errv != nil {
			return errv
		}
		n, errv := wantNumber(name, self.Cell.Get())
		if errv != nil {
			return errv
		}
		return value.Number{Value: fn(n.Value)}
	}
}
