package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// referenceMethods returns Reference's host-implemented metamap
// methods. Grounded on original_source/mf.py's `_REFERENCE_META`,
// which is likewise an empty MetaMap: a reference is dereferenced with
// `.*`, not by calling a method on it.
func referenceMethods() map[string]value.Value {
	return map[string]value.Value{}
}
