package bootstrap

import (
	"strings"

	"github.com/ashn-dot-dev/mellifera/value"
)

// stringMethods returns String's host-implemented metamap methods,
// grounded on original_source/mf.py's `string::*` builtin catalog
// (bytes/runes/count/contains/starts_with/ends_with/trim/find/rfind/
// slice/split/join/cut/replace/to_title/to_upper/to_lower) — dropped
// from the distilled spec but present in the original. No
// bootstrap/source/*.mf snippet calls them; they are there for user
// scripts. Strings are byte sequences (spec §3); each
// method is byte-based unless named otherwise (bytes vs runes).
func stringMethods() map[string]value.Value {
	return map[string]value.Value{
		"count":        value.Builtin{Name: "count", Fn: stringCount},
		"bytes":        value.Builtin{Name: "bytes", Fn: stringBytes},
		"runes":        value.Builtin{Name: "runes", Fn: stringRunes},
		"contains":     value.Builtin{Name: "contains", Fn: stringContains},
		"starts_with":  value.Builtin{Name: "starts_with", Fn: stringStartsWith},
		"ends_with":    value.Builtin{Name: "ends_with", Fn: stringEndsWith},
		"trim":         value.Builtin{Name: "trim", Fn: stringTrim},
		"find":         value.Builtin{Name: "find", Fn: stringFind},
		"rfind":        value.Builtin{Name: "rfind", Fn: stringRfind},
		"slice":        value.Builtin{Name: "slice", Fn: stringSlice},
		"split":        value.Builtin{Name: "split", Fn: stringSplit},
		"join":         value.Builtin{Name: "join", Fn: stringJoin},
		"cut":          value.Builtin{Name: "cut", Fn: stringCut},
		"replace":      value.Builtin{Name: "replace", Fn: stringReplace},
		"to_title":     value.Builtin{Name: "to_title", Fn: stringToTitle},
		"to_upper":     value.Builtin{Name: "to_upper", Fn: stringToUpper},
		"to_lower":     value.Builtin{Name: "to_lower", Fn: stringToLower},
	}
}

func stringSelf(name string, args []value.Value) (value.String, value.Value) {
	self, errv := selfArg(name, args)
	if errv != nil {
		return value.String{}, errv
	}
	return wantString(name, self.Cell.Get())
}

func stringCount(args []value.Value) value.Value {
	if errv := checkArity("count", args, 1); errv != nil {
		return errv
	}
	s, errv := stringSelf("count", args)
	if errv != nil {
		return errv
	}
	return value.Number{Value: float64(len(s.Value))}
}

func stringBytes(args []value.Value) value.Value {
	if errv := checkArity("bytes", args, 1); errv != nil {
		return errv
	}
	s, errv := stringSelf("bytes", args)
	if errv != nil {
		return errv
	}
	out := make([]value.Value, len(s.Value))
	for i := 0; i < len(s.Value); i++ {
		out[i] = value.String{Value: s.Value[i : i+1]}
	}
	return value.NewVector(out)
}

func stringRunes(args []value.Value) value.Value {
	if errv := checkArity("runes", args, 1); errv != nil {
		return errv
	}
	s, errv := stringSelf("runes", args)
	if errv != nil {
		return errv
	}
	var out []value.Value
	for _, r := range s.Value {
		out = append(out, value.String{Value: string(r)})
	}
	return value.NewVector(out)
}

func stringContains(args []value.Value) value.Value {
	if errv := checkArity("contains", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("contains", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("contains", args[1])
	if errv != nil {
		return errv
	}
	return value.Boolean{Value: strings.Contains(s.Value, target.Value)}
}

func stringStartsWith(args []value.Value) value.Value {
	if errv := checkArity("starts_with", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("starts_with", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("starts_with", args[1])
	if errv != nil {
		return errv
	}
	return value.Boolean{Value: strings.HasPrefix(s.Value, target.Value)}
}

func stringEndsWith(args []value.Value) value.Value {
	if errv := checkArity("ends_with", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("ends_with", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("ends_with", args[1])
	if errv != nil {
		return errv
	}
	return value.Boolean{Value: strings.HasSuffix(s.Value, target.Value)}
}

func stringTrim(args []value.Value) value.Value {
	if errv := checkArity("trim", args, 1); errv != nil {
		return errv
	}
	s, errv := stringSelf("trim", args)
	if errv != nil {
		return errv
	}
	return value.String{Value: strings.TrimSpace(s.Value)}
}

func stringFind(args []value.Value) value.Value {
	if errv := checkArity("find", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("find", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("find", args[1])
	if errv != nil {
		return errv
	}
	i := strings.Index(s.Value, target.Value)
	if i == -1 {
		return value.Null{}
	}
	return value.Number{Value: float64(i)}
}

func stringRfind(args []value.Value) value.Value {
	if errv := checkArity("rfind", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("rfind", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("rfind", args[1])
	if errv != nil {
		return errv
	}
	i := strings.LastIndex(s.Value, target.Value)
	if i == -1 {
		return value.Null{}
	}
	return value.Number{Value: float64(i)}
}

func stringSlice(args []value.Value) value.Value {
	if errv := checkArity("slice", args, 3); errv != nil {
		return errv
	}
	s, errv := stringSelf("slice", args)
	if errv != nil {
		return errv
	}
	bgn, errv := wantIndex("slice", args[1])
	if errv != nil {
		return errv
	}
	end, errv := wantIndex("slice", args[2])
	if errv != nil {
		return errv
	}
	if bgn > len(s.Value) {
		return errf("slice begin is greater than the string length")
	}
	if end > len(s.Value) {
		return errf("slice end is greater than the string length")
	}
	if end < bgn {
		return errf("slice end is less than slice begin")
	}
	return value.String{Value: s.Value[bgn:end]}
}

func stringSplit(args []value.Value) value.Value {
	if errv := checkArity("split", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("split", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("split", args[1])
	if errv != nil {
		return errv
	}
	if target.Value == "" {
		out := make([]value.Value, 0, len(s.Value))
		for i := 0; i < len(s.Value); i++ {
			out = append(out, value.String{Value: s.Value[i : i+1]})
		}
		return value.NewVector(out)
	}
	parts := strings.Split(s.Value, target.Value)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String{Value: p}
	}
	return value.NewVector(out)
}

func stringJoin(args []value.Value) value.Value {
	if errv := checkArity("join", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("join", args)
	if errv != nil {
		return errv
	}
	vec, errv := wantVector("join", args[1])
	if errv != nil {
		return errv
	}
	var b strings.Builder
	for i, item := range vec.Items() {
		part, ok := item.(value.String)
		if !ok {
			return errf("expected string-like value for vector element at index %d, found %s", i, item.Kind())
		}
		if i != 0 {
			b.WriteString(s.Value)
		}
		b.WriteString(part.Value)
	}
	return value.String{Value: b.String()}
}

func stringCut(args []value.Value) value.Value {
	if errv := checkArity("cut", args, 2); errv != nil {
		return errv
	}
	s, errv := stringSelf("cut", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("cut", args[1])
	if errv != nil {
		return errv
	}
	i := strings.Index(s.Value, target.Value)
	if i == -1 {
		return value.Null{}
	}
	m := value.NewMap()
	m.Set(value.String{Value: "prefix"}, value.String{Value: s.Value[:i]})
	m.Set(value.String{Value: "suffix"}, value.String{Value: s.Value[i+len(target.Value):]})
	return m
}

func stringReplace(args []value.Value) value.Value {
	if errv := checkArity("replace", args, 3); errv != nil {
		return errv
	}
	s, errv := stringSelf("replace", args)
	if errv != nil {
		return errv
	}
	target, errv := wantString("replace", args[1])
	if errv != nil {
		return errv
	}
	replacement, errv := wantString("replace", args[2])
	if errv != nil {
		return errv
	}
	return value.String{Value: strings.ReplaceAll(s.Value, target.Value, replacement.Value)}
}

func stringToTitle(args []value.Value) value.Value {
	if errv := checkArity("to_title", args, 1); errv != nil {
		return errv
	}
	s, errv := stringSelf("to_title", args)
	if errv != nil {
		return errv
	}
	return value.String{Value: strings.ToTitle(s.Value)}
}

func stringToUpper(args []value.Value) value.Value {
	if errv := checkArity("to_upper", args, 1); errv != nil {
		return errv
	}
	s, errv := stringSelf("to_upper", args)
	if errv != nil {
		return errv
	}
	return value.String{Value: strings.ToUpper(s.Value)}
}

func stringToLower(args []value.Value) value.Value {
	if errv := checkArity("to_lower", args, 1); errv != nil {
		return errv
	}
	s, errv := stringSelf("to_lower", args)
	if errv != nil {
		return errv
	}
	return value.String{Value: strings.ToLower(s.Value)}
}
