package builtins

import (
	"math"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// mathNamespace builds the `math` global object, grounded on
// ModuleMath.cpp's Setup (PI/E constants, abs) and supplemented with
// the rest of the one-argument real functions a host math module
// would carry (sqrt/floor/ceil/round/sin/cos/tan/log/exp/pow).
func mathNamespace() *value.Object {
	ns := value.NewObject()
	ns.Set("PI", value.Float(math.Pi))
	ns.Set("E", value.Float(math.E))

	unary := map[string]func(float64) float64{
		"sqrt":  math.Sqrt,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"log":   math.Log,
		"log2":  math.Log2,
		"log10": math.Log10,
		"exp":   math.Exp,
	}
	for name, fn := range unary {
		ns.Set(name, &value.HostFunction{Name: "math." + name, Fn: mathUnary("math."+name, fn)})
	}
	ns.Set("abs", &value.HostFunction{Name: "math.abs", Fn: mathAbs})
	ns.Set("pow", &value.HostFunction{Name: "math.pow", Fn: mathPow})
	return ns
}

func mathUnary(name string, fn func(float64) float64) value.HostFuncImpl {
	return func(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
		l := newArgLoader(name, args)
		n, err := l.number(pos)
		if err != nil {
			return nil, err
		}
		if err := l.end(pos); err != nil {
			return nil, err
		}
		return value.Float(fn(n.Val)), nil
	}
}

// mathAbs preserves integer tagging, matching spec §8 invariant 7's
// general rule that arithmetic on integer-tagged operands stays integer.
func mathAbs(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	l := newArgLoader("math.abs", args)
	n, err := l.number(pos)
	if err != nil {
		return nil, err
	}
	if err := l.end(pos); err != nil {
		return nil, err
	}
	return value.Number{Val: math.Abs(n.Val), IsInt: n.IsInt}, nil
}

func mathPow(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	l := newArgLoader("math.pow", args)
	base, err := l.number(pos)
	if err != nil {
		return nil, err
	}
	exp, err := l.number(pos)
	if err != nil {
		return nil, err
	}
	if err := l.end(pos); err != nil {
		return nil, err
	}
	return value.Float(math.Pow(base.Val, exp.Val)), nil
}
