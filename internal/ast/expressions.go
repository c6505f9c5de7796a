package ast

import (
	"strings"

	"github.com/cwbudde/go-dws/internal/lexer"
)

func (*Identifier) expressionNode()      {}
func (*ThisExpression) expressionNode()  {}
func (*NullLiteral) expressionNode()     {}
func (*BoolLiteral) expressionNode()     {}
func (*NumberLiteral) expressionNode()   {}
func (*StringLiteral) expressionNode()   {}
func (*ArrayLiteral) expressionNode()    {}
func (*ObjectLiteral) expressionNode()   {}
func (*FunctionLiteral) expressionNode() {}
func (*CallExpression) expressionNode()  {}
func (*IndexExpression) expressionNode() {}
func (*MemberExpression) expressionNode(){}
func (*UnaryExpression) expressionNode() {}
func (*BinaryExpression) expressionNode(){}
func (*AssignExpression) expressionNode(){}
func (*TernaryExpression) expressionNode(){}
func (*CommaExpression) expressionNode() {}

// Identifier is a bare name, optionally restricted to `local.` or
// `global.` scope by the surface syntax.
type Identifier struct {
	BaseNode
	Name  string
	Scope ScopeTag
}

func (i *Identifier) String() string {
	switch i.Scope {
	case ScopeLocal:
		return "local." + i.Name
	case ScopeGlobal:
		return "global." + i.Name
	default:
		return i.Name
	}
}

// ThisExpression is the `this` keyword.
type ThisExpression struct{ BaseNode }

func (t *ThisExpression) String() string { return "this" }

// NullLiteral is the `null` keyword.
type NullLiteral struct{ BaseNode }

func (n *NullLiteral) String() string { return "null" }

// BoolLiteral is `true`/`false`; the evaluator lowers it to an
// integer-tagged Number(1) or Number(0) since the value taxonomy has no
// Boolean kind.
type BoolLiteral struct {
	BaseNode
	Value bool
}

func (b *BoolLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NumberLiteral is a decimal or hex number literal.
type NumberLiteral struct {
	BaseNode
	Value float64
	IsInt bool
}

func (n *NumberLiteral) String() string { return n.Token.Literal }

// StringLiteral is a (possibly escape-decoded, possibly concatenated)
// string literal.
type StringLiteral struct {
	BaseNode
	Value string
}

func (s *StringLiteral) String() string { return "\"" + s.Value + "\"" }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	BaseNode
	Elements []Expression
}

func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectLiteral is `{k1: v1, k2: v2, ...}`. The parser rejects duplicate
// keys. Base, when non-nil, is the class-sugar base expression whose
// members are copied into the new object before its own keys are set.
type ObjectLiteral struct {
	BaseNode
	Keys   []string
	Values []Expression
	Base   Expression
}

func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Keys))
	for i, k := range o.Keys {
		parts[i] = k + ": " + o.Values[i].String()
	}
	prefix := ""
	if o.Base != nil {
		prefix = "base=" + o.Base.String() + ", "
	}
	return "{" + prefix + strings.Join(parts, ", ") + "}"
}

// FunctionLiteral is `function(p1, p2, ...) { ... }`, used both for
// anonymous functions and (after parser sugar lowering) for
// `function name(...) { ... }` declarations.
type FunctionLiteral struct {
	BaseNode
	Name   string // empty for anonymous functions
	Params []string
	Body   *BlockStatement
}

func (f *FunctionLiteral) String() string {
	return "function " + f.Name + "(" + strings.Join(f.Params, ", ") + ") " + f.Body.String()
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	BaseNode
	Callee Expression
	Args   []Expression
}

func (c *CallExpression) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpression is `base[index]`.
type IndexExpression struct {
	BaseNode
	Base  Expression
	Index Expression
}

func (e *IndexExpression) String() string {
	return e.Base.String() + "[" + e.Index.String() + "]"
}

// MemberExpression is `base.name`.
type MemberExpression struct {
	BaseNode
	Base Expression
	Name string
}

func (m *MemberExpression) String() string { return m.Base.String() + "." + m.Name }

// UnaryExpression is a prefix or postfix unary operator: `++x`, `x++`,
// `-x`, `!x`, `~x`, `+x`.
type UnaryExpression struct {
	BaseNode
	Op      lexer.TokenType
	Operand Expression
	Postfix bool
}

func (u *UnaryExpression) String() string {
	if u.Postfix {
		return u.Operand.String() + u.Op.String()
	}
	return u.Op.String() + u.Operand.String()
}

// BinaryExpression is any binary operator except assignment, comma and
// ternary, which have dedicated node types.
type BinaryExpression struct {
	BaseNode
	Op    lexer.TokenType
	Left  Expression
	Right Expression
}

func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// AssignExpression is `target = value` or a compound form (`+=`, `-=`, …).
type AssignExpression struct {
	BaseNode
	Op     lexer.TokenType
	Target Expression
	Value  Expression
}

func (a *AssignExpression) String() string {
	return a.Target.String() + " " + a.Op.String() + " " + a.Value.String()
}

// TernaryExpression is `cond ? then : else`.
type TernaryExpression struct {
	BaseNode
	Cond Expression
	Then Expression
	Else Expression
}

func (t *TernaryExpression) String() string {
	return t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String()
}

// CommaExpression is `left, right`; evaluates both, yields right.
type CommaExpression struct {
	BaseNode
	Left  Expression
	Right Expression
}

func (c *CommaExpression) String() string { return c.Left.String() + ", " + c.Right.String() }
