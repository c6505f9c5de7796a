// Package builtins implements the built-ins surface named in spec §2/§6:
// globals, type constructors, and the String/Array/Object property and
// method tables the evaluator dispatches member access through.
package builtins

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

var stringProperties = map[string]value.PropertyImpl{
	"count":  stringByteLength,
	"length": stringByteLength,
	"size":   stringByteLength,
	"chars":  stringChars,
	"strip":  stringStrip,
	"lstrip": stringLstrip,
	"rstrip": stringRstrip,
}

var stringMethods = map[string]value.MethodImpl{
	"startsWith": stringStartsWith,
	"endsWith":   stringEndsWith,
	"resize":     stringResize,
	"normalize":  stringNormalize,
	"compare":    stringCompare,
}

// StringProperty looks up a nullary String property accessor by name.
func StringProperty(name string) (value.PropertyImpl, bool) {
	p, ok := stringProperties[name]
	return p, ok
}

// StringMethod looks up a String method implementation by name.
func StringMethod(name string) (value.MethodImpl, bool) {
	m, ok := stringMethods[name]
	return m, ok
}

func asString(v value.Value, pos lexer.Position) (value.String, *errors.RuntimeError) {
	s, ok := v.(value.String)
	if !ok {
		return value.String{}, errors.TypeError(pos, "expected a String receiver, got %s", v.Kind())
	}
	return s, nil
}

func stringByteLength(ctx value.CallContext, pos lexer.Position, receiver value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	return value.Int(int64(len(s.Val))), nil
}

// stringChars returns the array of code-unit (byte) numbers, per spec §4.3.9.
func stringChars(ctx value.CallContext, pos lexer.Position, receiver value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	items := make([]value.Value, len(s.Val))
	for i := 0; i < len(s.Val); i++ {
		items[i] = value.Int(int64(s.Val[i]))
	}
	return value.NewArrayValue(value.NewArray(items...)), nil
}

func stringStrip(ctx value.CallContext, pos lexer.Position, receiver value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	return value.String{Val: strings.TrimSpace(s.Val)}, nil
}

func stringLstrip(ctx value.CallContext, pos lexer.Position, receiver value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	return value.String{Val: strings.TrimLeft(s.Val, " \t\r\n\v\f")}, nil
}

func stringRstrip(ctx value.CallContext, pos lexer.Position, receiver value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	return value.String{Val: strings.TrimRight(s.Val, " \t\r\n\v\f")}, nil
}

func stringStartsWith(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "startsWith expects 1 argument, got %d", len(args))
	}
	prefix, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "startsWith expects a String argument")
	}
	if strings.HasPrefix(s.Val, prefix.Val) {
		return value.Int(1), nil
	}
	return value.Int(0), nil
}

func stringEndsWith(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "endsWith expects 1 argument, got %d", len(args))
	}
	suffix, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "endsWith expects a String argument")
	}
	if strings.HasSuffix(s.Val, suffix.Val) {
		return value.Int(1), nil
	}
	return value.Int(0), nil
}

// stringResize pads with NUL bytes or truncates to exactly n bytes.
func stringResize(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "resize expects 1 argument, got %d", len(args))
	}
	n, ok := args[0].(value.Number)
	if !ok || !n.IsInt || n.Val < 0 {
		return nil, errors.ArgumentError(pos, "resize expects a non-negative integer Number")
	}
	size := int(n.Val)
	bs := []byte(s.Val)
	switch {
	case size <= len(bs):
		return value.String{Val: string(bs[:size])}, nil
	default:
		padded := make([]byte, size)
		copy(padded, bs)
		return value.String{Val: string(padded)}, nil
	}
}

// stringNormalize returns the string in Unicode NFC normal form.
func stringNormalize(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 0 {
		return nil, errors.ArgumentError(pos, "normalize expects 0 arguments, got %d", len(args))
	}
	return value.String{Val: norm.NFC.String(s.Val)}, nil
}

var rootCollator = collate.New(language.Und)

// stringCompare returns -1, 0 or 1 using locale-aware collation rather
// than a byte-wise comparison.
func stringCompare(ctx value.CallContext, pos lexer.Position, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	s, err := asString(receiver, pos)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "compare expects 1 argument, got %d", len(args))
	}
	other, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "compare expects a String argument")
	}
	return value.Int(int64(rootCollator.CompareString(s.Val, other.Val))), nil
}
