package parser

import (
	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/lexer"
)

// parseExpr17 parses an expression at or above assignment precedence but
// stops before a top-level comma operator; this is the grammar's Expr17
// nonterminal used for if/while/for conditions, return values, case
// labels, array elements, call arguments and object values.
func (p *Parser) parseExpr17() ast.Expression {
	return p.parseExpression(COMMA)
}

// parseFullExpression parses a complete expression including the comma
// operator; used for parenthesized sub-expressions and bare expression
// statements.
func (p *Parser) parseFullExpression() ast.Expression {
	return p.parseExpression(LOWEST)
}

// parseExpression is the precedence-climbing core. minPrec is the
// smallest operator precedence the caller is willing to let bind here;
// the loop consumes infix/postfix operators whose precedence exceeds it.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		opTok := p.cur()
		prec, ok := precedences[opTok.Type]
		if !ok || prec <= minPrec {
			break
		}
		switch {
		case opTok.Type == lexer.COMMA:
			p.advance()
			right := p.parseExpression(COMMA)
			left = &ast.CommaExpression{BaseNode: ast.BaseNode{Token: opTok}, Left: left, Right: right}
		case assignOps[opTok.Type]:
			p.advance()
			right := p.parseExpression(ASSIGN - 1) // right-associative
			left = &ast.AssignExpression{BaseNode: ast.BaseNode{Token: opTok}, Op: opTok.Type, Target: left, Value: right}
		case opTok.Type == lexer.QUESTION:
			p.advance()
			then := p.parseExpression(LOWEST)
			p.expect(lexer.COLON)
			els := p.parseExpression(TERNARY - 1) // right-associative
			left = &ast.TernaryExpression{BaseNode: ast.BaseNode{Token: opTok}, Cond: left, Then: then, Else: els}
		case opTok.Type == lexer.LPAREN:
			p.advance()
			left = p.parseCall(left)
		case opTok.Type == lexer.LBRACKET:
			p.advance()
			left = p.parseIndex(left)
		case opTok.Type == lexer.DOT:
			p.advance()
			left = p.parseMember(left)
		case opTok.Type == lexer.INC || opTok.Type == lexer.DEC:
			p.advance()
			left = &ast.UnaryExpression{BaseNode: ast.BaseNode{Token: opTok}, Op: opTok.Type, Operand: left, Postfix: true}
		default:
			p.advance()
			right := p.parseExpression(precedences[opTok.Type])
			left = &ast.BinaryExpression{BaseNode: ast.BaseNode{Token: opTok}, Op: opTok.Type, Left: left, Right: right}
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.INC, lexer.DEC, lexer.PLUS, lexer.MINUS, lexer.BANG, lexer.TILDE:
		p.advance()
		operand := p.parseExpression(UNARY)
		return &ast.UnaryExpression{BaseNode: ast.BaseNode{Token: tok}, Op: tok.Type, Operand: operand}
	case lexer.NUMBER:
		p.advance()
		return &ast.NumberLiteral{BaseNode: ast.BaseNode{Token: tok}, Value: tok.Number, IsInt: tok.IsInt}
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{BaseNode: ast.BaseNode{Token: tok}, Value: tok.Literal}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.BoolLiteral{BaseNode: ast.BaseNode{Token: tok}, Value: tok.Type == lexer.TRUE}
	case lexer.NULL:
		p.advance()
		return &ast.NullLiteral{BaseNode: ast.BaseNode{Token: tok}}
	case lexer.THIS:
		p.advance()
		return &ast.ThisExpression{BaseNode: ast.BaseNode{Token: tok}}
	case lexer.LOCAL, lexer.GLOBAL:
		return p.parseScopedIdentifier()
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{BaseNode: ast.BaseNode{Token: tok}, Name: tok.Literal}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseFullExpression()
		p.expect(lexer.RPAREN)
		return expr
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseObjectLiteral()
	case lexer.FUNCTION:
		return p.parseFunctionLiteral()
	default:
		p.errorf(tok.Pos, "unexpected token %s in expression", tok.Type)
		p.advance()
		return nil
	}
}

func (p *Parser) parseScopedIdentifier() ast.Expression {
	tok := p.advance() // local or global
	scope := ast.ScopeLocal
	if tok.Type == lexer.GLOBAL {
		scope = ast.ScopeGlobal
	}
	p.expect(lexer.DOT)
	name := p.expect(lexer.IDENT)
	return &ast.Identifier{BaseNode: ast.BaseNode{Token: tok}, Name: name.Literal, Scope: scope}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.tokens[p.pos-1]
	call := &ast.CallExpression{BaseNode: ast.BaseNode{Token: tok}, Callee: callee}
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.END) {
		call.Args = append(call.Args, p.parseExpr17())
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RPAREN)
	return call
}

func (p *Parser) parseIndex(base ast.Expression) ast.Expression {
	tok := p.tokens[p.pos-1]
	idx := p.parseFullExpression()
	p.expect(lexer.RBRACKET)
	return &ast.IndexExpression{BaseNode: ast.BaseNode{Token: tok}, Base: base, Index: idx}
}

func (p *Parser) parseMember(base ast.Expression) ast.Expression {
	tok := p.tokens[p.pos-1]
	name := p.expect(lexer.IDENT)
	return &ast.MemberExpression{BaseNode: ast.BaseNode{Token: tok}, Base: base, Name: name.Literal}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.expect(lexer.LBRACKET)
	arr := &ast.ArrayLiteral{BaseNode: ast.BaseNode{Token: tok}}
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.END) {
		arr.Elements = append(arr.Elements, p.parseExpr17())
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACKET)
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.expect(lexer.LBRACE)
	obj := &ast.ObjectLiteral{BaseNode: ast.BaseNode{Token: tok}}
	seen := map[string]bool{}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.END) {
		keyTok := p.cur()
		var key string
		switch keyTok.Type {
		case lexer.IDENT:
			key = keyTok.Literal
			p.advance()
		case lexer.STRING:
			key = keyTok.Literal
			p.advance()
		default:
			p.errorf(keyTok.Pos, "expected object key, got %s", keyTok.Type)
			p.advance()
			continue
		}
		if seen[key] {
			p.errorf(keyTok.Pos, "duplicate object key %q", key)
		}
		seen[key] = true
		p.expect(lexer.COLON)
		val := p.parseExpr17()
		obj.Keys = append(obj.Keys, key)
		obj.Values = append(obj.Values, val)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return obj
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.expect(lexer.FUNCTION)
	fn := &ast.FunctionLiteral{BaseNode: ast.BaseNode{Token: tok}}
	if p.curIs(lexer.IDENT) {
		fn.Name = p.advance().Literal
	}
	p.expect(lexer.LPAREN)
	fn.Params = p.parseParamList()
	p.expect(lexer.RPAREN)
	fn.Body = p.parseBlock()
	return fn
}

// parseParamList parses a comma-separated parameter name list and
// rejects duplicate names with an O(n^2) scan, per spec §4.2.
func (p *Parser) parseParamList() []string {
	var params []string
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.END) {
		nameTok := p.expect(lexer.IDENT)
		params = append(params, nameTok.Literal)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	for i := 0; i < len(params); i++ {
		for j := i + 1; j < len(params); j++ {
			if params[i] == params[j] {
				p.errorf(p.cur().Pos, "duplicate parameter name %q", params[i])
			}
		}
	}
	return params
}
