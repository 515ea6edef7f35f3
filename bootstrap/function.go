package bootstrap

import "github.com/ashn-dot-dev/mellifera/value"

// functionMethods returns Function's host-implemented metamap methods.
// Installed empty, same as booleanMethods: functions are called, not
// inspected, anywhere the catalog asks for.
func functionMethods() map[string]value.Value {
	return map[string]value.Value{}
}
