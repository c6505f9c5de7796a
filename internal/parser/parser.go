// Package parser implements a precedence-climbing recursive-descent
// parser over the token stream produced by internal/lexer. It builds a
// Script (root Block) AST and lowers `function name(...) {...}` and
// `class Name : Base {...}` surface sugar into assignment expressions
// at parse time.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
)

// Precedence levels, lowest to highest, mirroring spec §4.2. Comma is the
// loosest operator; postfix call/index/member access binds tightest.
const (
	_ int = iota
	LOWEST
	COMMA
	ASSIGN
	TERNARY
	LOGICALOR
	LOGICALAND
	BITOR
	BITXOR
	BITAND
	EQUALITY
	RELATIONAL
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POSTFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.COMMA:     COMMA,
	lexer.ASSIGN:    ASSIGN,
	lexer.PLUSEQ:    ASSIGN,
	lexer.MINUSEQ:   ASSIGN,
	lexer.MULEQ:     ASSIGN,
	lexer.DIVEQ:     ASSIGN,
	lexer.MODEQ:     ASSIGN,
	lexer.SHLEQ:     ASSIGN,
	lexer.SHREQ:     ASSIGN,
	lexer.ANDEQ:     ASSIGN,
	lexer.XOREQ:     ASSIGN,
	lexer.OREQ:      ASSIGN,
	lexer.QUESTION:  TERNARY,
	lexer.LOGOR:     LOGICALOR,
	lexer.LOGAND:    LOGICALAND,
	lexer.PIPE:      BITOR,
	lexer.CARET:     BITXOR,
	lexer.AMP:       BITAND,
	lexer.EQ:        EQUALITY,
	lexer.NEQ:       EQUALITY,
	lexer.LT:        RELATIONAL,
	lexer.LE:        RELATIONAL,
	lexer.GT:        RELATIONAL,
	lexer.GE:        RELATIONAL,
	lexer.SHL:       SHIFT,
	lexer.SHR:       SHIFT,
	lexer.PLUS:      ADDITIVE,
	lexer.MINUS:     ADDITIVE,
	lexer.ASTERISK:  MULTIPLICATIVE,
	lexer.SLASH:     MULTIPLICATIVE,
	lexer.PERCENT:   MULTIPLICATIVE,
	lexer.INC:       POSTFIX,
	lexer.DEC:       POSTFIX,
	lexer.LPAREN:    POSTFIX,
	lexer.LBRACKET:  POSTFIX,
	lexer.DOT:       POSTFIX,
}

var assignOps = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUSEQ: true, lexer.MINUSEQ: true, lexer.MULEQ: true,
	lexer.DIVEQ: true, lexer.MODEQ: true, lexer.SHLEQ: true, lexer.SHREQ: true,
	lexer.ANDEQ: true, lexer.XOREQ: true, lexer.OREQ: true,
}

// Parser consumes a pre-materialized token buffer built from a Lexer.
// Two adjacent STRING tokens are concatenated into one while the buffer
// is built, matching spec §4.2 / §2.
type Parser struct {
	tokens []lexer.Token
	pos    int

	source string
	file   string
	errs   []*errors.ParsingError
}

// New drains l into a token buffer (concatenating adjacent string
// literals) and returns a Parser ready to parse it.
func New(l *lexer.Lexer, source, file string) *Parser {
	p := &Parser{source: source, file: file}
	for {
		tok, err := l.NextToken()
		if err != nil {
			p.errs = append(p.errs, errors.NewParsingError(err.Pos, err.Message, source, file))
			// Skip the offending position by treating it as END to stop
			// the buffer cleanly; ParseScript will see the error list.
			p.tokens = append(p.tokens, lexer.Token{Pos: err.Pos, Type: lexer.END})
			break
		}
		if tok.Type == lexer.STRING && len(p.tokens) > 0 && p.tokens[len(p.tokens)-1].Type == lexer.STRING {
			prev := p.tokens[len(p.tokens)-1]
			p.tokens[len(p.tokens)-1] = lexer.Token{Pos: prev.Pos, Type: lexer.STRING, Literal: prev.Literal + tok.Literal}
			if tok.Type == lexer.END {
				break
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Type == lexer.END {
			break
		}
	}
	return p
}

func (p *Parser) Errors() []*errors.ParsingError { return p.errs }

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}
func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek().Type == t }

func (p *Parser) errorf(pos lexer.Position, format string, args ...interface{}) {
	p.errs = append(p.errs, errors.NewParsingError(pos, fmt.Sprintf(format, args...), p.source, p.file))
}

// expect advances past t if cur() is t, recording a parse error otherwise.
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if p.curIs(t) {
		return p.advance()
	}
	p.errorf(p.cur().Pos, "expected %s, got %s", t, p.cur().Type)
	return p.cur()
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek().Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseScript parses the full token buffer into a Script.
func (p *Parser) ParseScript() *ast.Script {
	script := &ast.Script{}
	for !p.curIs(lexer.END) {
		stmt := p.parseStatement()
		if stmt != nil {
			script.Statements = append(script.Statements, stmt)
		}
	}
	return script
}

// Parse is a convenience wrapper: tokenize source with the lexer and
// parse it into a Script in one call.
func Parse(source, file string) (*ast.Script, []*errors.ParsingError) {
	l := lexer.New(source)
	p := New(l, source, file)
	script := p.ParseScript()
	return script, p.Errors()
}
