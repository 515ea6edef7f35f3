package value

import (
	"hash/fnv"
	"reflect"
	"strconv"
)

// ContentHash computes a structural content hash for v (resolved Open
// Question, see DESIGN.md): containers hash a canonical recursive
// encoding of their elements rather than their printed representation,
// so that two structurally-equal containers with differently-ordered
// printed forms (maps or sets holding the same entries in a different
// insertion order, which Equal treats as equal) still collide
// correctly. Scalars
// hash their own content directly; functions/references hash referent
// identity, matching Equal.
func ContentHash(v Value) uint64 {
	h := fnv.New64a()
	writeHash(h, v)
	return h.Sum64()
}

func writeHash(h hashWriter, v Value) {
	h.Write([]byte{byte(len(v.Kind()))})
	h.Write([]byte(v.Kind()))
	switch x := v.(type) {
	case Null:
	case Boolean:
		if x.Value {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case Number:
		h.Write([]byte(strconv.FormatFloat(x.Value, 'b', -1, 64)))
	case String:
		h.Write([]byte(x.Value))
	case Regexp:
		h.Write([]byte(x.Source))
	case Vector:
		for _, e := range x.data.items {
			writeHash(h, e)
		}
	case Map:
		// Order-independent: XOR per-entry hashes so insertion order
		// (which Equal ignores for Map/Set) doesn't affect the hash.
		var acc uint64
		for _, e := range x.data.entries {
			acc ^= ContentHash(e.key)*31 + ContentHash(e.val)
		}
		h.Write(uint64Bytes(acc))
	case Set:
		var acc uint64
		for _, e := range x.data.elems {
			acc ^= ContentHash(e)
		}
		h.Write(uint64Bytes(acc))
	case Reference:
		h.Write(uint64Bytes(x.Cell.Identity()))
	case Function:
		h.Write(uint64Bytes(uint64(reflect.ValueOf(x.Body).Pointer())))
	case Builtin:
		h.Write([]byte(x.Name))
	case External:
		h.Write([]byte(x.Tag))
	}
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
