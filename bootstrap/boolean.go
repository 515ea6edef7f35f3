package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// booleanMethods returns Boolean's host-implemented metamap methods.
// The original carries no boolean::* catalog beyond the `and`/`or`/
// `not` operators the evaluator already handles directly, so this
// metamap is installed empty — present for the fixed bootstrap
// ordering (spec §4.7), not because it has entries.
func booleanMethods() map[string]value.Value {
	return map[string]value.Value{}
}
