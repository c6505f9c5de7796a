package builtins

import (
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

var objectProperties = map[string]value.PropertyImpl{
	"count": objectCount,
}

// ObjectProperty looks up a nullary Object property accessor by name.
// Only consulted once the object's own members have been checked, so
// an object with its own `count` member shadows this one.
func ObjectProperty(name string) (value.PropertyImpl, bool) {
	p, ok := objectProperties[name]
	return p, ok
}

func objectCount(ctx value.CallContext, pos lexer.Position, receiver value.Value) (value.Value, *errors.RuntimeError) {
	o, ok := receiver.(*value.ObjectValue)
	if !ok {
		return nil, errors.TypeError(pos, "expected an Object receiver, got %s", receiver.Kind())
	}
	return value.Int(int64(len(o.Obj.Keys()))), nil
}
