package value

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber renders a Number the way the universal stringifier does
// (spec §6): IEEE specials as NaN/Inf/-Inf, otherwise the shortest
// round-tripping decimal with trailing zeros and a bare trailing dot
// trimmed. Ground truth is original_source/mf.py's Number.__str__,
// which formats via Python's `str(float)` (itself shortest round-trip)
// and then strips the same way; strconv.FormatFloat with prec -1 is
// Go's equivalent shortest-round-trip formatter.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	end := len(s)
	for end > dot+1 && s[end-1] == '0' {
		end--
	}
	if end == dot+1 {
		end--
	}
	return s[:end]
}

// Display renders v the way it appears bare at the top level (e.g. a
// `print` argument): a String prints its raw bytes, not a quoted
// literal. Every other kind uses its nested representation.
func Display(v Value) string {
	if s, ok := v.(String); ok {
		return s.Value
	}
	return Inspect(v)
}

// Inspect renders v the way it appears nested inside a container (spec
// §6): a String is double-quoted and escaped, everything else uses its
// own String() form.
func Inspect(v Value) string {
	switch x := v.(type) {
	case String:
		return x.Quote()
	default:
		return v.String()
	}
}
