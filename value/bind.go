package value

// Bind prepares v for storage into a new slot — a scope binding, a
// container element, a function parameter (spec §4.3: "containers
// behave as values to the script"). Vector/Map/Set increment their
// shared storage's use-count so a later mutation through the new slot
// triggers copy-on-write; every other kind (including Reference, which
// deliberately opts out of COW per spec §4.3) passes through unchanged.
func Bind(v Value) Value {
	switch x := v.(type) {
	case Vector:
		return x.Copy()
	case Map:
		return x.Copy()
	case Set:
		return x.Copy()
	default:
		return v
	}
}
