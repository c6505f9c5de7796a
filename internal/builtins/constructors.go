package builtins

import (
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// Construct implements the type-constructor surface of spec §4.4:
// calling a Type value as a function. `Null()` yields Null; `Object()`
// and `Array()` build empty containers, while `Object(o)`, `Array(a)`
// and `String(s)` copy an argument of the same kind (containers
// shallowly); `Number(n)`, `Function(f)` and `Type(t)` return an
// argument of their own kind. Any other argument is rejected.
func Construct(ctx value.CallContext, pos lexer.Position, of value.Kind, args []value.Value) (value.Value, *errors.RuntimeError) {
	switch of {
	case value.KindNull:
		return value.Null{}, nil
	case value.KindNumber:
		if len(args) == 0 {
			return value.Int(0), nil
		}
		n, ok := args[0].(value.Number)
		if !ok {
			return nil, errors.ArgumentError(pos, "Number(...) expects a Number argument, got %s", args[0].Kind())
		}
		return n, nil
	case value.KindString:
		if len(args) == 0 {
			return value.String{}, nil
		}
		s, ok := args[0].(value.String)
		if !ok {
			return nil, errors.ArgumentError(pos, "String(...) expects a String argument, got %s", args[0].Kind())
		}
		return s, nil
	case value.KindArray:
		if len(args) == 0 {
			return value.NewArrayValue(value.NewArray()), nil
		}
		if len(args) != 1 {
			return nil, errors.ArgumentError(pos, "Array(...) expects 1 argument, got %d", len(args))
		}
		a, ok := args[0].(*value.ArrayValue)
		if !ok {
			return nil, errors.ArgumentError(pos, "Array(...) expects an Array argument, got %s", args[0].Kind())
		}
		return value.NewArrayValue(a.Arr.Clone()), nil
	case value.KindObject:
		if len(args) == 0 {
			return value.NewObjectValue(value.NewObject()), nil
		}
		if len(args) != 1 {
			return nil, errors.ArgumentError(pos, "Object(...) expects 1 argument, got %d", len(args))
		}
		o, ok := args[0].(*value.ObjectValue)
		if !ok {
			return nil, errors.ArgumentError(pos, "Object(...) expects an Object argument, got %s", args[0].Kind())
		}
		return value.NewObjectValue(o.Obj.Clone()), nil
	case value.KindFunction:
		if len(args) != 1 {
			return nil, errors.ArgumentError(pos, "Function(...) expects 1 argument, got %d", len(args))
		}
		switch fn := args[0].(type) {
		case *value.Function:
			return fn, nil
		case *value.MemberMethod:
			return fn, nil
		default:
			return nil, errors.ArgumentError(pos, "Function(...) expects a Function or MemberMethod argument, got %s", args[0].Kind())
		}
	case value.KindType:
		if len(args) != 1 {
			return nil, errors.ArgumentError(pos, "Type(...) expects 1 argument, got %d", len(args))
		}
		t, ok := args[0].(value.TypeValue)
		if !ok {
			return nil, errors.ArgumentError(pos, "Type(...) expects a Type argument, got %s", args[0].Kind())
		}
		return t, nil
	default:
		return nil, errors.TypeError(pos, "type %s is not constructible", of)
	}
}
