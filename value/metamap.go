package value

// Well-known metamap method names the evaluator dispatches to
// directly, rather than through ordinary user-level method calls
// (spec §4.5 "Templates", "Iteration").
const (
	MetaIntoString = "into_string"
	MetaNext       = "next"
)

// typeMetamaps holds the process-wide, per-Kind metamap installed by
// bootstrap (spec §4.7: "every value of a given kind starts out backed
// by that kind's metamap"). A literal Vector/Map/Set/Number/etc. never
// carries its own Meta() until `new META EXPR` attaches one explicitly;
// LookupMeta falls back here so ordinary values still resolve host
// methods like `v.push(4)`.
var typeMetamaps = map[Kind]Map{}

// SetTypeMetamap registers m as the default metamap for every value of
// kind k that doesn't already carry its own metamap. Called for every
// kind during bootstrap, in the fixed order spec §4.7 specifies; the
// Vector entry is registered a second time once its source-defined
// methods exist.
func SetTypeMetamap(k Kind, m Map) {
	typeMetamaps[k] = m
}

// LookupMeta looks up field in v's attached metamap, if any, falling
// back to v's kind's registered type metamap. Used by the evaluator's
// dot-access fallback chain (container -> metamap -> referent ->
// referent-metamap, spec §4.5 "Access") and by the template/iterator
// hooks above.
func LookupMeta(v Value, field string) (Value, bool) {
	if m := v.Meta(); m != nil {
		if val, ok := m.Get(String{Value: field}); ok {
			return val, ok
		}
	}
	if m, ok := typeMetamaps[v.Kind()]; ok {
		return m.Get(String{Value: field})
	}
	return nil, false
}

// IsCallable reports whether v is something the evaluator can invoke:
// a Function or a Builtin. Used to decide whether a metamap entry
// found by LookupMeta should be treated as a method (spec: "has a
// metamap entry `next` that is callable").
func IsCallable(v Value) bool {
	switch v.(type) {
	case Function, Builtin:
		return true
	default:
		return false
	}
}
