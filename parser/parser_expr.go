package parser

import (
	"strconv"
	"strings"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/lexer"
	"github.com/ashn-dot-dev/mellifera/token"
)

func (p *Parser) registerPrefix() {
	p.prefixFns = map[token.Kind]prefixFn{
		token.NUMBER:   (*Parser).parseNumberLit,
		token.STRING:   (*Parser).parseStringLit,
		token.RAWSTR:   (*Parser).parseStringLit,
		token.REGEXP:   (*Parser).parseRegexpLit,
		token.TEMPLATE: (*Parser).parseTemplateLit,
		token.IDENT:    (*Parser).parseIdent,
		token.TRUE:     (*Parser).parseBoolLit,
		token.FALSE:    (*Parser).parseBoolLit,
		token.NULL:     (*Parser).parseNullLit,
		token.MINUS:    (*Parser).parseUnary,
		token.PLUS:     (*Parser).parseUnary,
		token.NOT:      (*Parser).parseUnary,
		token.LPAREN:   (*Parser).parseGrouped,
		token.LBRACKET: (*Parser).parseVectorLit,
		token.LBRACE:   (*Parser).parseBraceLitUnforced,
		token.MAP:      (*Parser).parseMapLitForced,
		token.SET:      (*Parser).parseSetLitForced,
		token.FUNCTION:  (*Parser).parseFunctionLit,
		token.TYPE:     (*Parser).parseTypeOf,
		token.NEW:      (*Parser).parseNewExpr,
	}
}

func (p *Parser) registerInfix() {
	p.infixFns = map[token.Kind]infixFn{
		token.PLUS:     (*Parser).parseBinary,
		token.MINUS:    (*Parser).parseBinary,
		token.STAR:     (*Parser).parseBinary,
		token.SLASH:    (*Parser).parseBinary,
		token.PERCENT:  (*Parser).parseBinary,
		token.EQ:       (*Parser).parseBinary,
		token.NOTEQ:    (*Parser).parseBinary,
		token.LT:       (*Parser).parseBinary,
		token.GT:       (*Parser).parseBinary,
		token.LTEQ:     (*Parser).parseBinary,
		token.GTEQ:     (*Parser).parseBinary,
		token.AND:      (*Parser).parseLogical,
		token.OR:       (*Parser).parseLogical,
		token.MATCH:    (*Parser).parseMatch,
		token.NOMATCH:  (*Parser).parseMatch,
		token.LPAREN:   (*Parser).parseCall,
		token.LBRACKET: (*Parser).parseIndex,
		token.DOT:      (*Parser).parseDot,
		token.SCOPE:    (*Parser).parseScope,
		token.DOTAMP:   (*Parser).parseRef,
		token.DOTSTAR:  (*Parser).parseDeref,
	}
}

func (p *Parser) parseExpression(precedence int) (ast.Expr, error) {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		return nil, errAt(p.pos(), "unexpected token %s in expression", p.cur.Kind)
	}
	left, err := prefix(p)
	if err != nil {
		return nil, err
	}
	// Prefix and infix parse functions leave cur on the token just past
	// what they consumed, so cur is the candidate operator here.
	for !p.curIs(token.SEMI) {
		prec, ok := precedences[p.cur.Kind]
		if !ok || precedence >= prec {
			return left, nil
		}
		infix, ok := p.infixFns[p.cur.Kind]
		if !ok {
			return left, nil
		}
		left, err = infix(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseNumberLit() (ast.Expr, error) {
	pos := p.pos()
	lit := p.cur.Literal
	var v float64
	var err error
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		var iv int64
		iv, err = strconv.ParseInt(lit[2:], 16, 64)
		v = float64(iv)
	} else {
		v, err = strconv.ParseFloat(lit, 64)
	}
	if err != nil {
		return nil, errAt(pos, "invalid number literal %q", lit)
	}
	p.advance()
	return &ast.NumberLit{Loc: ast.Loc{At: pos}, Value: v}, nil
}

func (p *Parser) parseStringLit() (ast.Expr, error) {
	pos := p.pos()
	v := p.cur.Literal
	p.advance()
	return &ast.StringLit{Loc: ast.Loc{At: pos}, Value: v}, nil
}

func (p *Parser) parseRegexpLit() (ast.Expr, error) {
	pos := p.pos()
	v := p.cur.Literal
	p.advance()
	return &ast.RegexpLit{Loc: ast.Loc{At: pos}, Source: v}, nil
}

func (p *Parser) parseBoolLit() (ast.Expr, error) {
	pos := p.pos()
	v := p.curIs(token.TRUE)
	p.advance()
	return &ast.BoolLit{Loc: ast.Loc{At: pos}, Value: v}, nil
}

func (p *Parser) parseNullLit() (ast.Expr, error) {
	pos := p.pos()
	p.advance()
	return &ast.NullLit{Loc: ast.Loc{At: pos}}, nil
}

func (p *Parser) parseIdent() (ast.Expr, error) {
	pos := p.pos()
	name := p.cur.Literal
	p.advance()
	return &ast.Ident{Loc: ast.Loc{At: pos}, Name: name}, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	pos := p.pos()
	op := string(p.cur.Kind)
	p.advance()
	operand, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Loc: ast.Loc{At: pos}, Op: op, Operand: operand}, nil
}

func (p *Parser) parseGrouped() (ast.Expr, error) {
	p.advance() // consume (
	e, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseVectorLit() (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume [
	var elems []ast.Expr
	for !p.curIs(token.RBRACKET) {
		e, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.VectorLit{Loc: ast.Loc{At: pos}, Elements: elems}, nil
}

func (p *Parser) parseBraceLitUnforced() (ast.Expr, error) {
	return p.parseBraceBody("")
}

func (p *Parser) parseMapLitForced() (ast.Expr, error) {
	p.advance() // consume 'Map'
	if !p.curIs(token.LBRACE) {
		return nil, errAt(p.pos(), "expected '{' after Map")
	}
	return p.parseBraceBody("Map")
}

func (p *Parser) parseSetLitForced() (ast.Expr, error) {
	p.advance() // consume 'Set'
	if !p.curIs(token.LBRACE) {
		return nil, errAt(p.pos(), "expected '{' after Set")
	}
	return p.parseBraceBody("Set")
}

// parseBraceBody implements the Map-vs-Set disambiguation of spec §4.2.
// forced is "" (ambiguous, must be resolved from content), "Map", or "Set".
func (p *Parser) parseBraceBody(forced string) (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume {

	if p.curIs(token.RBRACE) {
		if forced == "" {
			return nil, errAt(pos, "ambiguous empty map or set")
		}
		p.advance()
		if forced == "Map" {
			return &ast.MapLit{Loc: ast.Loc{At: pos}}, nil
		}
		return &ast.SetLit{Loc: ast.Loc{At: pos}}, nil
	}

	kind := forced
	var entries []ast.MapEntry
	var elements []ast.Expr

	parseOne := func() error {
		if p.curIs(token.DOT) {
			// `.ident = expr` or `.ident: expr` shorthand — forces Map.
			if kind == "Set" {
				return errAt(p.pos(), "unexpected field shorthand in set literal")
			}
			kind = "Map"
			p.advance() // consume '.'
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return err
			}
			if p.curIs(token.ASSIGN) || p.curIs(token.COLON) {
				p.advance()
			} else {
				return errAt(p.pos(), "expected '=' or ':' after field shorthand")
			}
			val, err := p.parseExpression(LOWEST)
			if err != nil {
				return err
			}
			entries = append(entries, ast.MapEntry{
				Key:   &ast.StringLit{Loc: ast.Loc{At: p.pos()}, Value: nameTok.Literal},
				Value: val,
			})
			return nil
		}

		first, err := p.parseExpression(LOWEST)
		if err != nil {
			return err
		}
		if p.curIs(token.COLON) || p.curIs(token.ASSIGN) {
			if kind == "Set" {
				return errAt(p.pos(), "unexpected map entry in set literal")
			}
			kind = "Map"
			p.advance()
			val, err := p.parseExpression(LOWEST)
			if err != nil {
				return err
			}
			entries = append(entries, ast.MapEntry{Key: first, Value: val})
			return nil
		}
		if kind == "Map" {
			return errAt(p.pos(), "expected map entry (key: value)")
		}
		kind = "Set"
		elements = append(elements, first)
		return nil
	}

	if err := parseOne(); err != nil {
		return nil, err
	}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RBRACE) {
			break
		}
		if err := parseOne(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	if kind == "Map" {
		return &ast.MapLit{Loc: ast.Loc{At: pos}, Entries: entries}, nil
	}
	return &ast.SetLit{Loc: ast.Loc{At: pos}, Elements: elements}, nil
}

func (p *Parser) parseFunctionLit() (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume 'function'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.FunctionParam
	for !p.curIs(token.RPAREN) {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.FunctionParam{Name: nameTok.Literal})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionLit{Loc: ast.Loc{At: pos}, Params: params, Body: body}, nil
}

func (p *Parser) parseTypeOf() (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume 'type'
	operand, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.TypeOfExpr{Loc: ast.Loc{At: pos}, Operand: operand}, nil
}

func (p *Parser) parseNewExpr() (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume 'new'
	meta, err := p.parseExpression(POSTFIX)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.NewExpr{Loc: ast.Loc{At: pos}, Meta: meta, Value: value}, nil
}

func (p *Parser) parseBinary(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	op := string(p.cur.Kind)
	prec := precedences[p.cur.Kind]
	p.advance()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Loc: ast.Loc{At: pos}, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseLogical(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	op := string(p.cur.Kind)
	prec := precedences[p.cur.Kind]
	p.advance()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.LogicalExpr{Loc: ast.Loc{At: pos}, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseMatch(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	negate := p.curIs(token.NOMATCH)
	p.advance()
	right, err := p.parseExpression(COMPARE)
	if err != nil {
		return nil, err
	}
	return &ast.MatchExpr{Loc: ast.Loc{At: pos}, Negate: negate, Left: left, Right: right}, nil
}

func (p *Parser) parseCall(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume (
	var args []ast.Expr
	for !p.curIs(token.RPAREN) {
		a, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Loc: ast.Loc{At: pos}, Callee: left, Args: args}, nil
}

func (p *Parser) parseIndex(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume [
	idx, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.IndexExpr{Loc: ast.Loc{At: pos}, Receiver: left, Index: idx}, nil
}

func (p *Parser) parseDot(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume .
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.DotExpr{Loc: ast.Loc{At: pos}, Receiver: left, Field: nameTok.Literal}, nil
}

func (p *Parser) parseScope(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume ::
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.ScopeExpr{Loc: ast.Loc{At: pos}, Receiver: left, Field: nameTok.Literal}, nil
}

func (p *Parser) parseRef(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume .&
	return &ast.RefExpr{Loc: ast.Loc{At: pos}, Operand: left}, nil
}

func (p *Parser) parseDeref(left ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	p.advance() // consume .*
	return &ast.DerefExpr{Loc: ast.Loc{At: pos}, Operand: left}, nil
}

// parseTemplateLit decomposes a $"…" / $`…` / $```…``` token's raw body
// into literal chunks and `{expr}` interpolations (spec §4.1/§9): the
// lexer hands the parser the raw, unprocessed body; the parser re-scans it
// for brace-balanced interpolation spans and recursively invokes itself
// (via a fresh sub-lexer/parser pair) on each span's source text.
func (p *Parser) parseTemplateLit() (ast.Expr, error) {
	pos := p.pos()
	raw := p.cur.Literal
	p.advance()

	var chunks []ast.TemplateChunk
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			chunks = append(chunks, ast.TemplateChunk{Text: lit.String()})
			lit.Reset()
		}
	}

	line := pos.Line
	i, n := 0, len(raw)
	for i < n {
		c := raw[i]
		switch {
		case c == '{' && i+1 < n && raw[i+1] == '{':
			lit.WriteByte('{')
			i += 2
		case c == '}' && i+1 < n && raw[i+1] == '}':
			lit.WriteByte('}')
			i += 2
		case c == '{':
			depth := 1
			j := i + 1
			for j < n && depth > 0 {
				if raw[j] == '{' {
					depth++
				} else if raw[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			if depth != 0 {
				return nil, errAt(ast.Pos{File: p.file, Line: line}, "unterminated template interpolation")
			}
			exprSrc := raw[i+1 : j]
			flush()
			sub := NewFromLexer(p.file, lexer.New(p.file, exprSrc, line))
			e, err := sub.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			if !sub.curIs(token.EOF) {
				return nil, errAt(ast.Pos{File: p.file, Line: line}, "unexpected trailing content in template interpolation")
			}
			chunks = append(chunks, ast.TemplateChunk{IsExpr: true, Expr: e})
			line += strings.Count(exprSrc, "\n")
			i = j + 1
		default:
			if c == '\n' {
				line++
			}
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return &ast.TemplateLit{Loc: ast.Loc{At: pos}, Chunks: chunks}, nil
}
