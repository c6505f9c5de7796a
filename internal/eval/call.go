package eval

import (
	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/builtins"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// evalCall evaluates callee and arguments, then dispatches through
// callValue. The callee is evaluated via evalExprReceiver so that a bare
// method-style call (`obj.method()`, a plain identifier found through
// `this`) binds `this` to the right receiver inside the call.
func (e *Evaluator) evalCall(c *ast.CallExpression) (value.Value, *errors.RuntimeError) {
	callee, receiver, err := e.evalExprReceiver(c.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return e.callValue(c.Pos(), callee, receiver, args)
}

// callValue implements value.CallContext.Call and every call site in the
// evaluator: it dispatches over every callable kind in the taxonomy.
func (e *Evaluator) callValue(pos lexer.Position, callee value.Value, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	switch fn := callee.(type) {
	case *value.Function:
		return e.callFunction(pos, fn, receiver, args)
	case *value.HostFunction:
		return fn.Fn(e, pos, args)
	case *value.MemberMethod:
		return fn.Fn(e, pos, fn.Receiver, args)
	case *value.MemberProperty:
		// A property is invoked immediately on member access, so calling
		// its bound form again just re-reads it, ignoring args.
		return fn.Fn(e, pos, receiver)
	case value.TypeValue:
		return e.callType(pos, fn, args)
	case *value.ObjectValue:
		if init, ok := fn.Obj.Get("__init__"); ok {
			if initFn, ok := init.(*value.Function); ok {
				if _, err := e.callFunction(pos, initFn, callee, args); err != nil {
					return nil, err
				}
				return callee, nil
			}
		}
		return nil, errors.TypeError(pos, "Object has no __init__ method to call")
	default:
		return nil, errors.TypeError(pos, "value of kind %s is not callable", callee.Kind())
	}
}

// callFunction binds params to args in a fresh local scope and runs the
// body, translating the resulting Outcome into a plain return. Spec
// §4.3.6 requires the argument count to match the parameter count
// exactly; there is no padding or discarding.
func (e *Evaluator) callFunction(pos lexer.Position, fn *value.Function, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) != len(fn.Def.Params) {
		return nil, errors.ArgumentError(pos, "function %s expects %d argument(s), got %d", fn.Def.Name, len(fn.Def.Params), len(args))
	}
	scope := value.NewObject()
	for i, name := range fn.Def.Params {
		scope.Set(name, args[i])
	}
	if err := e.pushScope(scope); err != nil {
		return nil, err
	}
	e.pushThis(receiver)
	defer func() {
		e.popThis()
		e.popScope()
	}()

	outcome := e.execBlock(fn.Def.Body)
	switch outcome.Kind {
	case OutcomeNormal:
		return value.Null{}, nil
	case OutcomeReturn:
		return outcome.Value, nil
	case OutcomeThrow:
		return nil, outcome.Err
	default:
		return nil, errors.Runtime(pos, "break/continue escaped function %s", fn.Def.Name)
	}
}

// callType implements the type-constructor surface of spec §4.4: calling
// a Type value as a function (e.g. `Array()`, `Object(o)`) by delegating
// to builtins.Construct.
func (e *Evaluator) callType(pos lexer.Position, t value.TypeValue, args []value.Value) (value.Value, *errors.RuntimeError) {
	return builtins.Construct(e, pos, t.Of, args)
}
