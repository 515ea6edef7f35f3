package value

import (
	"fmt"
	"regexp"
)

// Regexp wraps a compiled pattern plus its original source bytes, so
// round-trip stringification can print `r"…"` rather than Go's own
// regexp.String() form (EXPANSION 3a). Compilation happens eagerly at
// literal-evaluation time in eval, not at lex time; the lexer only
// recognizes the `r"…"` / `` r`…` `` lexeme.
type Regexp struct {
	Source   string
	Compiled *regexp.Regexp
	meta     *Map
}

// NewRegexp compiles src and wraps the result. Returns an error if src
// is not a valid RE2 pattern (a runtime error per spec §4.2/§4.5, not a
// parse error).
func NewRegexp(src string) (Regexp, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return Regexp{}, err
	}
	return Regexp{Source: src, Compiled: re}, nil
}

func (Regexp) Kind() Kind { return RegexpKind }
func (r Regexp) String() string {
	return fmt.Sprintf("r%q", r.Source)
}
func (r Regexp) Meta() *Map         { return r.meta }
func (r Regexp) WithMeta(m *Map) Value { r.meta = m; return r }
