package bootstrap

import (
	"github.com/ashn-dot-dev/mellifera/eval"
	"github.com/ashn-dot-dev/mellifera/value"
)

// regexpNamespace builds the `re::*` catalog bound at base name "re"
// (EXPANSION, grounded on original_source/mf.py's `re::group`), backed
// by a closure over e so it can read e's last-match slot (e.LastMatch)
// that `=~` populates (spec §5 "Shared state"). This is the one
// builtin that needs evaluator state, which is why bootstrap.Setup
// constructs the Evaluator before wiring the rest of the base
// environment.
func regexpNamespace(e *eval.Evaluator) value.Value {
	m := value.NewMap()
	m.Set(value.String{Value: "group"}, value.Builtin{Name: "re::group", Fn: func(args []value.Value) value.Value {
		if errv := checkArity("re::group", args, 1); errv != nil {
			return errv
		}
		n, errv := wantIndex("re::group", args[0])
		if errv != nil {
			return errv
		}
		if e.LastMatch == nil {
			return errf("re::group called with no prior match")
		}
		if n < 0 || n >= len(e.LastMatch) {
			return errf("re::group index %d out of range (%d group(s))", n, len(e.LastMatch)-1)
		}
		if e.LastMatch[n] == "" && n != 0 {
			return value.Null{}
		}
		return value.String{Value: e.LastMatch[n]}
	}})
	return m
}
