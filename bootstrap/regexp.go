package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// regexpMethods returns Regexp's host-implemented metamap methods.
// Matching is exposed through the `=~`/`!~` operators and the `re::*`
// namespace (bootstrap/regexpns.go), not through methods on the
// pattern value itself, so this metamap is installed empty.
func regexpMethods() map[string]value.Value {
	return map[string]value.Value{}
}
