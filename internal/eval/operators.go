package eval

import (
	"math"

	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

func (e *Evaluator) evalUnary(u *ast.UnaryExpression) (value.Value, *errors.RuntimeError) {
	switch u.Op {
	case lexer.INC, lexer.DEC:
		return e.evalIncDec(u)
	case lexer.PLUS:
		v, err := e.evalExpr(u.Operand)
		if err != nil {
			return nil, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return nil, errors.TypeError(u.Pos(), "unary + requires a Number, got %s", v.Kind())
		}
		return n, nil
	case lexer.MINUS:
		v, err := e.evalExpr(u.Operand)
		if err != nil {
			return nil, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return nil, errors.TypeError(u.Pos(), "unary - requires a Number, got %s", v.Kind())
		}
		return value.Number{Val: -n.Val, IsInt: n.IsInt}, nil
	case lexer.BANG:
		v, err := e.evalExpr(u.Operand)
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			return value.Int(0), nil
		}
		return value.Int(1), nil
	case lexer.TILDE:
		v, err := e.evalExpr(u.Operand)
		if err != nil {
			return nil, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return nil, errors.TypeError(u.Pos(), "unary ~ requires a Number, got %s", v.Kind())
		}
		return value.Number{Val: float64(^n.Int64()), IsInt: true}, nil
	default:
		return nil, errors.Runtime(u.Pos(), "unsupported unary operator %s", u.Op)
	}
}

// evalIncDec implements ++/-- in both prefix and postfix form: mutates
// the l-value in place, preserves integer tagging, and returns the new
// value (prefix) or the previous value (postfix) per spec §4.3.4.
func (e *Evaluator) evalIncDec(u *ast.UnaryExpression) (value.Value, *errors.RuntimeError) {
	lv, err := e.deriveLValue(u.Operand)
	if err != nil {
		return nil, err
	}
	cur, err := lv.Get()
	if err != nil {
		return nil, err
	}
	n, ok := cur.(value.Number)
	if !ok {
		return nil, errors.TypeError(u.Pos(), "%s requires a Number lvalue, got %s", u.Op, cur.Kind())
	}
	delta := 1.0
	if u.Op == lexer.DEC {
		delta = -1.0
	}
	updated := value.Number{Val: n.Val + delta, IsInt: n.IsInt}
	if err := lv.Set(updated); err != nil {
		return nil, err
	}
	if u.Postfix {
		return n, nil
	}
	return updated, nil
}

func (e *Evaluator) evalBinary(b *ast.BinaryExpression) (value.Value, *errors.RuntimeError) {
	switch b.Op {
	case lexer.LOGAND:
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return nil, err
		}
		if !left.Truthy() {
			return left, nil
		}
		return e.evalExpr(b.Right)
	case lexer.LOGOR:
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return nil, err
		}
		if left.Truthy() {
			return left, nil
		}
		return e.evalExpr(b.Right)
	}

	left, err := e.evalExpr(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(b.Right)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(b.Op, left, right, b.Pos())
}

var compoundToBinary = map[lexer.TokenType]lexer.TokenType{
	lexer.PLUSEQ:  lexer.PLUS,
	lexer.MINUSEQ: lexer.MINUS,
	lexer.MULEQ:   lexer.ASTERISK,
	lexer.DIVEQ:   lexer.SLASH,
	lexer.MODEQ:   lexer.PERCENT,
	lexer.SHLEQ:   lexer.SHL,
	lexer.SHREQ:   lexer.SHR,
	lexer.ANDEQ:   lexer.AMP,
	lexer.XOREQ:   lexer.CARET,
	lexer.OREQ:    lexer.PIPE,
}

// applyBinaryOp implements spec §4.3.4's operator table. PLUS overloads
// number+number, string+string, string+number (single byte append) and
// array+x (append); every other arithmetic/bitwise op requires numbers;
// relational ops work on same-kind number/string pairs; equality uses
// value.Equals across any kind.
func applyBinaryOp(op lexer.TokenType, left, right value.Value, pos lexer.Position) (value.Value, *errors.RuntimeError) {
	switch op {
	case lexer.PLUS:
		return evalPlus(left, right, pos)
	case lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT:
		return evalArith(op, left, right, pos)
	case lexer.SHL, lexer.SHR, lexer.AMP, lexer.CARET, lexer.PIPE:
		return evalBitwise(op, left, right, pos)
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return evalRelational(op, left, right, pos)
	case lexer.EQ:
		return boolNumber(value.Equals(left, right)), nil
	case lexer.NEQ:
		return boolNumber(!value.Equals(left, right)), nil
	default:
		return nil, errors.Runtime(pos, "unsupported binary operator %s", op)
	}
}

func boolNumber(b bool) value.Number {
	if b {
		return value.Int(1)
	}
	return value.Int(0)
}

func evalPlus(left, right value.Value, pos lexer.Position) (value.Value, *errors.RuntimeError) {
	if ln, ok := left.(value.Number); ok {
		if rn, ok := right.(value.Number); ok {
			return value.Number{Val: ln.Val + rn.Val, IsInt: ln.IsInt && rn.IsInt}, nil
		}
	}
	if ls, ok := left.(value.String); ok {
		if rs, ok := right.(value.String); ok {
			return value.String{Val: ls.Val + rs.Val}, nil
		}
		if rn, ok := right.(value.Number); ok {
			if !rn.IsInt {
				return nil, errors.TypeError(pos, "string + non-integer Number is not defined")
			}
			return value.String{Val: ls.Val + string([]byte{byte(int64(rn.Val))})}, nil
		}
	}
	if la, ok := left.(*value.ArrayValue); ok {
		items := make([]value.Value, len(la.Arr.Items)+1)
		copy(items, la.Arr.Items)
		items[len(items)-1] = right
		return value.NewArrayValue(value.NewArray(items...)), nil
	}
	return nil, errors.TypeError(pos, "operator + is not defined for %s and %s", left.Kind(), right.Kind())
}

func bothNumbers(left, right value.Value, pos lexer.Position) (value.Number, value.Number, *errors.RuntimeError) {
	ln, ok := left.(value.Number)
	if !ok {
		return value.Number{}, value.Number{}, errors.TypeError(pos, "expected a Number, got %s", left.Kind())
	}
	rn, ok := right.(value.Number)
	if !ok {
		return value.Number{}, value.Number{}, errors.TypeError(pos, "expected a Number, got %s", right.Kind())
	}
	return ln, rn, nil
}

func evalArith(op lexer.TokenType, left, right value.Value, pos lexer.Position) (value.Value, *errors.RuntimeError) {
	ln, rn, err := bothNumbers(left, right, pos)
	if err != nil {
		return nil, err
	}
	bothInt := ln.IsInt && rn.IsInt
	switch op {
	case lexer.MINUS:
		return value.Number{Val: ln.Val - rn.Val, IsInt: bothInt}, nil
	case lexer.ASTERISK:
		return value.Number{Val: ln.Val * rn.Val, IsInt: bothInt}, nil
	case lexer.SLASH:
		// Division always yields a float-tagged result, per spec §8
		// invariant 7 (6/4 == 1.5 float) even when evenly divisible.
		return value.Number{Val: ln.Val / rn.Val, IsInt: false}, nil
	case lexer.PERCENT:
		return value.Number{Val: math.Mod(ln.Val, rn.Val), IsInt: bothInt}, nil
	}
	return nil, errors.Runtime(pos, "unsupported arithmetic operator %s", op)
}

func evalBitwise(op lexer.TokenType, left, right value.Value, pos lexer.Position) (value.Value, *errors.RuntimeError) {
	ln, rn, err := bothNumbers(left, right, pos)
	if err != nil {
		return nil, err
	}
	li, ri := ln.Int64(), rn.Int64()
	switch op {
	case lexer.SHL:
		shift, err := shiftCount(ri, pos)
		if err != nil {
			return nil, err
		}
		return value.Number{Val: float64(li << shift), IsInt: true}, nil
	case lexer.SHR:
		shift, err := shiftCount(ri, pos)
		if err != nil {
			return nil, err
		}
		return value.Number{Val: float64(li >> shift), IsInt: true}, nil
	case lexer.AMP:
		return value.Number{Val: float64(li & ri), IsInt: true}, nil
	case lexer.CARET:
		return value.Number{Val: float64(li ^ ri), IsInt: true}, nil
	case lexer.PIPE:
		return value.Number{Val: float64(li | ri), IsInt: true}, nil
	}
	return nil, errors.Runtime(pos, "unsupported bitwise operator %s", op)
}

func shiftCount(ri int64, pos lexer.Position) (uint64, *errors.RuntimeError) {
	if ri < 0 {
		return 0, errors.Runtime(pos, "negative shift amount")
	}
	return uint64(ri), nil
}

func evalRelational(op lexer.TokenType, left, right value.Value, pos lexer.Position) (value.Value, *errors.RuntimeError) {
	var cmp int
	switch l := left.(type) {
	case value.Number:
		r, ok := right.(value.Number)
		if !ok {
			return nil, errors.TypeError(pos, "cannot compare Number with %s", right.Kind())
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		default:
			cmp = 0
		}
	case value.String:
		r, ok := right.(value.String)
		if !ok {
			return nil, errors.TypeError(pos, "cannot compare String with %s", right.Kind())
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		default:
			cmp = 0
		}
	default:
		return nil, errors.TypeError(pos, "operator %s is not defined for %s", op, left.Kind())
	}

	var result bool
	switch op {
	case lexer.LT:
		result = cmp < 0
	case lexer.LE:
		result = cmp <= 0
	case lexer.GT:
		result = cmp > 0
	case lexer.GE:
		result = cmp >= 0
	}
	return boolNumber(result), nil
}

// evalAssign implements `=` and the compound assignment forms: the
// right side evaluates first, then the l-value is derived, and compound
// forms additionally read and type-check the slot's current value.
func (e *Evaluator) evalAssign(a *ast.AssignExpression) (value.Value, *errors.RuntimeError) {
	rhs, err := e.evalExpr(a.Value)
	if err != nil {
		return nil, err
	}
	lv, err := e.deriveLValue(a.Target)
	if err != nil {
		return nil, err
	}
	if a.Op == lexer.ASSIGN {
		if err := lv.Set(rhs); err != nil {
			return nil, err
		}
		return rhs, nil
	}

	binOp, ok := compoundToBinary[a.Op]
	if !ok {
		return nil, errors.Runtime(a.Pos(), "unsupported assignment operator %s", a.Op)
	}
	cur, err := lv.Get()
	if err != nil {
		return nil, err
	}
	result, err := applyBinaryOp(binOp, cur, rhs, a.Pos())
	if err != nil {
		return nil, err
	}
	if err := lv.Set(result); err != nil {
		return nil, err
	}
	return result, nil
}
