package parser

import (
	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.SEMI:
		tok := p.advance()
		return &ast.EmptyStatement{BaseNode: ast.BaseNode{Token: tok}}
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.DO:
		return p.parseDoWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.BREAK:
		tok := p.advance()
		p.expect(lexer.SEMI)
		return &ast.BreakStatement{BaseNode: ast.BaseNode{Token: tok}}
	case lexer.CONTINUE:
		tok := p.advance()
		p.expect(lexer.SEMI)
		return &ast.ContinueStatement{BaseNode: ast.BaseNode{Token: tok}}
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.SWITCH:
		return p.parseSwitch()
	case lexer.THROW:
		return p.parseThrow()
	case lexer.TRY:
		return p.parseTry()
	case lexer.FUNCTION:
		return p.parseFunctionDeclSugar()
	case lexer.CLASS:
		return p.parseClassDeclSugar()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	tok := p.expect(lexer.LBRACE)
	block := &ast.BlockStatement{BaseNode: ast.BaseNode{Token: tok}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.END) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseFullExpression()
	p.expect(lexer.SEMI)
	return &ast.ExpressionStatement{BaseNode: ast.BaseNode{Token: tok}, Expr: expr}
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	cond := p.parseExpr17()
	p.expect(lexer.RPAREN)
	then := p.parseStatement()
	stmt := &ast.IfStatement{BaseNode: ast.BaseNode{Token: tok}, Cond: cond, Then: then}
	if p.curIs(lexer.ELSE) {
		p.advance()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpr17()
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{BaseNode: ast.BaseNode{Token: tok}, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Statement {
	tok := p.expect(lexer.DO)
	body := p.parseStatement()
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpr17()
	p.expect(lexer.RPAREN)
	p.expect(lexer.SEMI)
	return &ast.DoWhileStatement{BaseNode: ast.BaseNode{Token: tok}, Body: body, Cond: cond}
}

// parseFor disambiguates range-for (`for (k[, v] : expr) body`) from
// C-style for (`for (init; cond; post) body`) by checking whether the
// first token is an identifier followed directly by `:` or `,`.
func (p *Parser) parseFor() ast.Statement {
	tok := p.expect(lexer.FOR)
	p.expect(lexer.LPAREN)

	if p.curIs(lexer.IDENT) && (p.peekIs(lexer.COLON) || p.peekIs(lexer.COMMA)) {
		return p.parseForRange(tok)
	}
	return p.parseForCStyle(tok)
}

func (p *Parser) parseForRange(tok lexer.Token) ast.Statement {
	key := p.expect(lexer.IDENT).Literal
	value := ""
	if p.curIs(lexer.COMMA) {
		p.advance()
		value = p.expect(lexer.IDENT).Literal
	}
	p.expect(lexer.COLON)
	iterable := p.parseExpr17()
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.ForRangeStatement{BaseNode: ast.BaseNode{Token: tok}, KeyName: key, ValueName: value, Iterable: iterable, Body: body}
}

func (p *Parser) parseForCStyle(tok lexer.Token) ast.Statement {
	stmt := &ast.ForCStyleStatement{BaseNode: ast.BaseNode{Token: tok}}
	if !p.curIs(lexer.SEMI) {
		stmt.Init = p.parseFullExpression()
	}
	p.expect(lexer.SEMI)
	if !p.curIs(lexer.SEMI) {
		stmt.Cond = p.parseExpr17()
	}
	p.expect(lexer.SEMI)
	if !p.curIs(lexer.RPAREN) {
		stmt.Post = p.parseFullExpression()
	}
	p.expect(lexer.RPAREN)
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.expect(lexer.RETURN)
	stmt := &ast.ReturnStatement{BaseNode: ast.BaseNode{Token: tok}}
	if !p.curIs(lexer.SEMI) {
		stmt.Value = p.parseExpr17()
	}
	p.expect(lexer.SEMI)
	return stmt
}

func (p *Parser) parseThrow() ast.Statement {
	tok := p.expect(lexer.THROW)
	value := p.parseExpr17()
	p.expect(lexer.SEMI)
	return &ast.ThrowStatement{BaseNode: ast.BaseNode{Token: tok}, Value: value}
}

func (p *Parser) parseTry() ast.Statement {
	tok := p.expect(lexer.TRY)
	body := p.parseStatement()
	stmt := &ast.TryStatement{BaseNode: ast.BaseNode{Token: tok}, Body: body}

	if p.curIs(lexer.CATCH) {
		p.advance()
		p.expect(lexer.LPAREN)
		stmt.CatchName = p.expect(lexer.IDENT).Literal
		p.expect(lexer.RPAREN)
		stmt.CatchBody = p.parseStatement()
	}
	if p.curIs(lexer.FINALLY) {
		p.advance()
		stmt.FinallyBody = p.parseStatement()
	}
	if stmt.CatchBody == nil && stmt.FinallyBody == nil {
		p.errorf(tok.Pos, "try requires a catch and/or finally clause")
	}
	return stmt
}

// parseSwitch rejects pairwise-equal case labels and more than one
// default clause, per spec §4.2.
func (p *Parser) parseSwitch() ast.Statement {
	tok := p.expect(lexer.SWITCH)
	p.expect(lexer.LPAREN)
	subject := p.parseExpr17()
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	stmt := &ast.SwitchStatement{BaseNode: ast.BaseNode{Token: tok}, Subject: subject}
	sawDefault := false
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.END) {
		var c ast.SwitchCase
		switch p.cur().Type {
		case lexer.CASE:
			casePos := p.cur().Pos
			p.advance()
			c.Value = p.parseExpr17()
			if isDuplicateCaseLabel(stmt.Cases, c.Value) {
				p.errorf(casePos, "duplicate switch case label")
			}
		case lexer.DEFAULT:
			if sawDefault {
				p.errorf(p.cur().Pos, "switch may have at most one default clause")
			}
			sawDefault = true
			p.advance()
		default:
			p.errorf(p.cur().Pos, "expected case or default, got %s", p.cur().Type)
			p.advance()
			continue
		}
		p.expect(lexer.COLON)
		for !p.curIs(lexer.CASE) && !p.curIs(lexer.DEFAULT) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.END) {
			s := p.parseStatement()
			if s != nil {
				c.Statements = append(c.Statements, s)
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(lexer.RBRACE)
	return stmt
}

// isDuplicateCaseLabel does a literal-level comparison of case labels; it
// only catches duplicates it can evaluate at parse time (numbers,
// strings, booleans, null), which covers the grammar's `Const` label.
func isDuplicateCaseLabel(cases []ast.SwitchCase, v ast.Expression) bool {
	key, ok := constKey(v)
	if !ok {
		return false
	}
	for _, c := range cases {
		if c.Value == nil {
			continue
		}
		if k2, ok2 := constKey(c.Value); ok2 && k2 == key {
			return true
		}
	}
	return false
}

func constKey(e ast.Expression) (string, bool) {
	switch v := e.(type) {
	case *ast.NumberLiteral:
		return "n:" + v.String(), true
	case *ast.StringLiteral:
		return "s:" + v.Value, true
	case *ast.BoolLiteral:
		return "b:" + v.String(), true
	case *ast.NullLiteral:
		return "null", true
	}
	return "", false
}

// parseFunctionDeclSugar lowers `function f(...) { ... }` into the
// assignment `f = function(...) { ... };`, per spec §4.2.
func (p *Parser) parseFunctionDeclSugar() ast.Statement {
	tok := p.expect(lexer.FUNCTION)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()

	fn := &ast.FunctionLiteral{BaseNode: ast.BaseNode{Token: tok}, Name: name.Literal, Params: params, Body: body}
	target := &ast.Identifier{BaseNode: ast.BaseNode{Token: name}, Name: name.Literal}
	assign := &ast.AssignExpression{BaseNode: ast.BaseNode{Token: tok}, Op: lexer.ASSIGN, Target: target, Value: fn}
	return &ast.ExpressionStatement{BaseNode: ast.BaseNode{Token: tok}, Expr: assign}
}

// parseClassDeclSugar lowers `class C [: Base] { ... }` into the
// assignment `C = { base=Base, ... };`, where the object literal's Base
// field carries the base expression whose members are copied into C's
// map before its own keys are set (spec §4.2).
func (p *Parser) parseClassDeclSugar() ast.Statement {
	tok := p.expect(lexer.CLASS)
	name := p.expect(lexer.IDENT)

	var base ast.Expression
	if p.curIs(lexer.COLON) {
		p.advance()
		base = p.parseExpression(TERNARY)
	}

	objExpr := p.parseObjectLiteral()
	obj := objExpr.(*ast.ObjectLiteral)
	obj.Base = base

	target := &ast.Identifier{BaseNode: ast.BaseNode{Token: name}, Name: name.Literal}
	assign := &ast.AssignExpression{BaseNode: ast.BaseNode{Token: tok}, Op: lexer.ASSIGN, Target: target, Value: obj}
	return &ast.ExpressionStatement{BaseNode: ast.BaseNode{Token: tok}, Expr: assign}
}
