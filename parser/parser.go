// Package parser implements a Pratt (precedence-climbing) parser over the
// token stream produced by package lexer, in the structural style of
// akashmaji946/go-mix's parser package: prefix/infix function tables keyed
// by token kind, one parse method per construct, and a parser-local error
// list rather than panics.
package parser

import (
	"fmt"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/lexer"
	"github.com/ashn-dot-dev/mellifera/token"
)

// Error is a parse error with source location and a one-line reason.
type Error struct {
	Pos    ast.Pos
	Reason string
}

func (e *Error) Error() string {
	if e.Pos.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.Pos.File, e.Pos.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Pos.Line, e.Reason)
}

func errAt(pos ast.Pos, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// Precedence levels, lowest to highest, per spec §4.2.
const (
	LOWEST int = iota
	OR
	AND
	COMPARE // == != <= >= < > =~ !~
	ADD     // + -
	MUL     // * / %
	PREFIX  // unary - + not
	POSTFIX // call, index, ., ::, .&, .*
)

var precedences = map[token.Kind]int{
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      COMPARE,
	token.NOTEQ:   COMPARE,
	token.LT:      COMPARE,
	token.GT:      COMPARE,
	token.LTEQ:    COMPARE,
	token.GTEQ:    COMPARE,
	token.MATCH:   COMPARE,
	token.NOMATCH: COMPARE,
	token.PLUS:    ADD,
	token.MINUS:   ADD,
	token.STAR:    MUL,
	token.SLASH:   MUL,
	token.PERCENT: MUL,
	token.LPAREN:  POSTFIX,
	token.LBRACKET: POSTFIX,
	token.DOT:     POSTFIX,
	token.SCOPE:   POSTFIX,
	token.DOTAMP:  POSTFIX,
	token.DOTSTAR: POSTFIX,
}

type prefixFn func(p *Parser) (ast.Expr, error)
type infixFn func(p *Parser, left ast.Expr) (ast.Expr, error)

// Parser holds parsing state: the lexer, a one-token lookahead, and the
// accumulated error list (parsing continues after a recoverable error so
// multiple mistakes can be reported from one pass).
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  token.Token
	peek token.Token

	prefixFns map[token.Kind]prefixFn
	infixFns  map[token.Kind]infixFn

	Errors []error
}

// New creates a Parser over source text, attributing diagnostics to file.
func New(file, src string) *Parser {
	return NewFromLexer(file, lexer.New(file, src, 1))
}

// NewFromLexer creates a Parser over an already-constructed lexer. Used by
// the template sub-parser (see parseTemplateLit) so interpolated
// expressions keep the enclosing literal's file/line context.
func NewFromLexer(file string, l *lexer.Lexer) *Parser {
	p := &Parser{l: l, file: file}
	p.registerPrefix()
	p.registerInfix()
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) pos() ast.Pos { return ast.Pos{File: p.file, Line: p.cur.Line} }

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.curIs(k) {
		return token.Token{}, errAt(p.pos(), "expected %s, found %s", k, p.cur.Kind)
	}
	t := p.cur
	p.advance()
	return t, nil
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Kind]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a block of top-level
// statements.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			p.Errors = append(p.Errors, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if len(p.Errors) > 0 {
		return stmts, p.Errors[0]
	}
	return stmts, nil
}

// synchronize discards tokens until a plausible statement boundary so
// ParseProgram can keep collecting further errors instead of stopping dead
// at the first one.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			p.advance()
			return
		}
		if p.curIs(token.RBRACE) {
			p.advance()
			return
		}
		p.advance()
	}
}
