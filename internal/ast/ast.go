// Package ast defines the abstract syntax tree produced by the parser.
// Nodes are plain data; the evaluator package walks them with a type
// switch rather than a method on each node, so control-flow signals
// (break/continue/return/throw) stay out of this package entirely.
package ast

import "github.com/cwbudde/go-dws/internal/lexer"

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	Pos() lexer.Position
	String() string
}

// Statement is a Node that executes for effect.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

// BaseNode carries the token every node is anchored to, mostly for its
// Position; it is embedded in every concrete node below.
type BaseNode struct {
	Token lexer.Token
}

func (b BaseNode) TokenLiteral() string  { return b.Token.Literal }
func (b BaseNode) Pos() lexer.Position   { return b.Token.Pos }

// ScopeTag restricts identifier resolution to a named scope, set by the
// `local.x` / `global.x` surface syntax.
type ScopeTag int

const (
	ScopeNone ScopeTag = iota
	ScopeLocal
	ScopeGlobal
)

// Script is the root Block produced by parsing a complete source text.
type Script struct {
	Statements []Statement
}

func (s *Script) TokenLiteral() string {
	if len(s.Statements) > 0 {
		return s.Statements[0].TokenLiteral()
	}
	return ""
}
func (s *Script) Pos() lexer.Position {
	if len(s.Statements) > 0 {
		return s.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}
func (s *Script) String() string {
	out := ""
	for _, st := range s.Statements {
		out += st.String()
	}
	return out
}
