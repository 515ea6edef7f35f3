package parser

import (
	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/token"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.LET:
		return p.parseLetStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.BREAK:
		pos := p.pos()
		p.advance()
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Loc: ast.Loc{At: pos}}, nil
	case token.CONTINUE:
		pos := p.pos()
		p.advance()
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Loc: ast.Loc{At: pos}}, nil
	case token.TRY:
		return p.parseTryStmt()
	case token.ERROR:
		return p.parseErrorStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	pos := p.pos()
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Loc: ast.Loc{At: pos}, Stmts: stmts}, nil
}

func (p *Parser) parseLetStmt() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // consume 'let'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	assignNames(nameTok.Literal, value)
	return &ast.LetStmt{Loc: ast.Loc{At: pos}, Name: nameTok.Literal, Value: value}, nil
}

// assignNames implements the auto-naming pass of spec §4.2: a function
// value bound by `let NAME = ...` takes Name; a map bound the same way has
// each of its string-keyed function-valued entries named
// "NAME::key" recursively, so diagnostics print a readable path instead of
// an anonymous closure.
func assignNames(prefix string, e ast.Expr) {
	switch v := e.(type) {
	case *ast.FunctionLit:
		if v.Name == "" {
			v.Name = prefix
		}
	case *ast.MapLit:
		for _, entry := range v.Entries {
			if key, ok := entry.Key.(*ast.StringLit); ok {
				assignNames(prefix+"::"+key.Value, entry.Value)
			}
		}
	case *ast.TypeOfExpr:
		assignNames(prefix, v.Operand)
	}
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // consume 'if'
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Loc: ast.Loc{At: pos}, Clauses: []ast.IfClause{{Cond: cond, Body: body}}}
	for p.curIs(token.ELIF) {
		p.advance()
		econd, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		ebody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Clauses = append(stmt.Clauses, ast.IfClause{Cond: econd, Body: ebody})
	}
	if p.curIs(token.ELSE) {
		p.advance()
		ebody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = ebody
	}
	return stmt, nil
}

// parseForStmt parses `for K (.&)? (, V (.&)?)? in EXPR BLOCK`.
func (p *Parser) parseForStmt() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // consume 'for'

	keyTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ForStmt{Loc: ast.Loc{At: pos}, KeyName: keyTok.Literal}
	if p.curIs(token.DOTAMP) {
		stmt.KeyRef = true
		p.advance()
	}
	if p.curIs(token.COMMA) {
		p.advance()
		valTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		stmt.HasValue = true
		stmt.ValName = valTok.Literal
		if p.curIs(token.DOTAMP) {
			stmt.ValRef = true
			p.advance()
		}
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	coll, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	stmt.Coll = coll
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // consume 'while'
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Loc: ast.Loc{At: pos}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseTryStmt() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // consume 'try'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CATCH); err != nil {
		return nil, err
	}
	var catchName string
	if p.curIs(token.IDENT) {
		catchName = p.cur.Literal
		p.advance()
	}
	catchBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.TryStmt{
		Loc:       ast.Loc{At: pos},
		Body:      body,
		CatchName: catchName,
		CatchBody: catchBody,
	}, nil
}

func (p *Parser) parseErrorStmt() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // consume 'error'
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ErrorStmt{Loc: ast.Loc{At: pos}, Value: value}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // consume 'return'
	if p.curIs(token.SEMI) {
		p.advance()
		return &ast.ReturnStmt{Loc: ast.Loc{At: pos}}, nil
	}
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Loc: ast.Loc{At: pos}, Value: value}, nil
}

// parseExprOrAssignStmt parses `EXPR ;` or `EXPR = EXPR ;`. An assignment
// target must be an lvalue: identifier, index, dot, or scope access (spec
// §4.2); anything else is rejected once `=` is seen.
func (p *Parser) parseExprOrAssignStmt() (ast.Stmt, error) {
	pos := p.pos()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.curIs(token.ASSIGN) {
		if !isLValue(expr) {
			return nil, errAt(pos, "attempted assignment to non-lvalue")
		}
		p.advance()
		value, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Loc: ast.Loc{At: pos}, Target: expr, Value: value}, nil
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Loc: ast.Loc{At: pos}, X: expr}, nil
}

func isLValue(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.IndexExpr, *ast.DotExpr, *ast.ScopeExpr:
		return true
	default:
		return false
	}
}
