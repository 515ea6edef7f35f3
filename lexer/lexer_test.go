package lexer

import (
	"testing"

	"github.com/ashn-dot-dev/mellifera/token"
	"github.com/stretchr/testify/require"
)

func collect(src string) []token.Token {
	l := New("<test>", src, 0)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

func TestNextTokenOperatorsAndDelimiters(t *testing.T) {
	toks := collect(`let x = 1 + 2; x.&.push(3); m::get(x) =~ /a/;`)
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Contains(t, kinds, token.LET)
	require.Contains(t, kinds, token.PLUS)
	require.Contains(t, kinds, token.DOTAMP)
	require.Contains(t, kinds, token.SCOPE)
	require.Contains(t, kinds, token.MATCH)
	require.Equal(t, token.EOF, kinds[len(kinds)-1])
}

func TestNextTokenStringEscapes(t *testing.T) {
	toks := collect(`"hello\nworld"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello\nworld", toks[0].Literal)
}

func TestNextTokenNumberLiteral(t *testing.T) {
	toks := collect(`3.14`)
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, "3.14", toks[0].Literal)
}

func TestNextTokenKeywordsVsIdents(t *testing.T) {
	toks := collect(`function foo`)
	require.Equal(t, token.FUNCTION, toks[0].Kind)
	require.Equal(t, token.IDENT, toks[1].Kind)
	require.Equal(t, "foo", toks[1].Literal)
}

func TestNextTokenCommentsAreSkipped(t *testing.T) {
	toks := collect("let x = 1; # trailing comment\nlet y = 2;")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	count := 0
	for _, k := range kinds {
		if k == token.LET {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestNextTokenTracksLineNumbers(t *testing.T) {
	toks := collect("let x = 1;\nlet y = 2;")
	var secondLet token.Token
	seen := 0
	for _, tok := range toks {
		if tok.Kind == token.LET {
			seen++
			if seen == 2 {
				secondLet = tok
			}
		}
	}
	require.Equal(t, 2, secondLet.Line)
}
