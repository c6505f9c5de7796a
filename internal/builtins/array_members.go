package builtins

import (
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

var arrayProperties = map[string]value.PropertyImpl{
	"count":  arrayLength,
	"length": arrayLength,
}

var arrayMethods = map[string]value.MethodImpl{
	"push":   arrayPush,
	"add":    arrayPush,
	"pop":    arrayPop,
	"insert": arrayInsert,
	"remove": arrayRemove,
	"each":   arrayEach,
	"map":    arrayMap,
}

// ArrayProperty looks up a nullary Array property accessor by name.
func ArrayProperty(name string) (value.PropertyImpl, bool) {
	p, ok := arrayProperties[name]
	return p, ok
}

// ArrayMethod looks up an Array method implementation by name.
func ArrayMethod(name string) (value.MethodImpl, bool) {
	m, ok := arrayMethods[name]
	return m, ok
}

func asArray(v value.Value, pos lexer.Position) (*value.ArrayValue, *errors.RuntimeError) {
	a, ok := v.(*value.ArrayValue)
	if !ok {
		return nil, errors.TypeError(pos, "expected an Array receiver, got %s", v.Kind())
	}
	return a, nil
}

func arrayLength(ctx value.CallContext, pos lexer.Position, receiver value.Value) (value.Value, *errors.RuntimeError) {
	a, err := asArray(receiver, pos)
	if err != nil {
		return nil, err
	}
	return value.Int(int64(len(a.Arr.Items))), nil
}

// arrayPush appends each argument in order and returns the new length,
// covering both `push` and its `add` alias.
func arrayPush(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	a, err := asArray(receiver, pos)
	if err != nil {
		return nil, err
	}
	for _, arg := range args {
		a.Arr.Push(arg)
	}
	return value.Int(int64(len(a.Arr.Items))), nil
}

func arrayPop(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	a, err := asArray(receiver, pos)
	if err != nil {
		return nil, err
	}
	last, ok := a.Arr.Pop()
	if !ok {
		return nil, errors.IndexError(pos, "pop on an empty Array")
	}
	return last, nil
}

func arrayInsert(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	a, err := asArray(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, errors.ArgumentError(pos, "insert expects 2 arguments, got %d", len(args))
	}
	idx, err := indexFromValue(args[0], pos)
	if err != nil {
		return nil, err
	}
	if !a.Arr.Insert(idx, args[1]) {
		return nil, errors.IndexError(pos, "insert index %d out of range (length %d)", idx, len(a.Arr.Items))
	}
	return value.Null{}, nil
}

func arrayRemove(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	a, err := asArray(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "remove expects 1 argument, got %d", len(args))
	}
	idx, err := indexFromValue(args[0], pos)
	if err != nil {
		return nil, err
	}
	removed, ok := a.Arr.Remove(idx)
	if !ok {
		return nil, errors.IndexError(pos, "remove index %d out of range (length %d)", idx, len(a.Arr.Items))
	}
	return removed, nil
}

// arrayEach invokes f(item) for each element in order, discarding the
// callback's return value, and returns the receiver unchanged.
func arrayEach(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	a, err := asArray(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "each expects 1 argument, got %d", len(args))
	}
	for _, item := range a.Arr.Items {
		if _, callErr := ctx.Call(pos, args[0], nil, []value.Value{item}); callErr != nil {
			return nil, callErr
		}
	}
	return receiver, nil
}

// arrayMap invokes f(item) for each element and returns a new Array
// built from the results; the receiver is left untouched.
func arrayMap(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	a, err := asArray(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "map expects 1 argument, got %d", len(args))
	}
	out := make([]value.Value, len(a.Arr.Items))
	for i, item := range a.Arr.Items {
		mapped, callErr := ctx.Call(pos, args[0], nil, []value.Value{item})
		if callErr != nil {
			return nil, callErr
		}
		out[i] = mapped
	}
	return value.NewArrayValue(value.NewArray(out...)), nil
}
