package builtins

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// jsonNamespace builds the supplemental `JSON` global object
// (stringify/parse), grounded on std.cpp's value-to-string rendering
// and backed by the gjson/sjson pack entries rather than a hand-rolled
// encoder.
func jsonNamespace() *value.Object {
	ns := value.NewObject()
	ns.Set("stringify", &value.HostFunction{Name: "JSON.stringify", Fn: jsonStringify})
	ns.Set("parse", &value.HostFunction{Name: "JSON.parse", Fn: jsonParse})
	return ns
}

func jsonStringify(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "JSON.stringify expects 1 argument, got %d", len(args))
	}
	out, err := stringifyValue(pos, args[0])
	if err != nil {
		return nil, err
	}
	return value.String{Val: out}, nil
}

// stringifyValue builds a JSON document incrementally with sjson.Set,
// since there is no native Go representation of a Value tree to hand
// to a generic marshaler.
func stringifyValue(pos lexer.Position, v value.Value) (string, *errors.RuntimeError) {
	switch vv := v.(type) {
	case value.Null:
		return "null", nil
	case value.Number:
		if vv.IsInt {
			return sjsonRaw(pos, int64(vv.Val))
		}
		return sjsonRaw(pos, vv.Val)
	case value.String:
		doc, err := sjson.Set("", "x", vv.Val)
		if err != nil {
			return "", errors.Runtime(pos, "JSON.stringify: %s", err)
		}
		return gjson.Get(doc, "x").Raw, nil
	case *value.ArrayValue:
		doc := "[]"
		for i, item := range vv.Arr.Items {
			raw, err := stringifyValue(pos, item)
			if err != nil {
				return "", err
			}
			var setErr error
			doc, setErr = sjson.SetRaw(doc, strconv.Itoa(i), raw)
			if setErr != nil {
				return "", errors.Runtime(pos, "JSON.stringify: %s", setErr)
			}
		}
		return doc, nil
	case *value.ObjectValue:
		doc := "{}"
		for _, k := range vv.Obj.Keys() {
			item, _ := vv.Obj.Get(k)
			raw, err := stringifyValue(pos, item)
			if err != nil {
				return "", err
			}
			var setErr error
			doc, setErr = sjson.SetRaw(doc, k, raw)
			if setErr != nil {
				return "", errors.Runtime(pos, "JSON.stringify: %s", setErr)
			}
		}
		return doc, nil
	default:
		return "", errors.TypeError(pos, "value of kind %s is not JSON-serializable", v.Kind())
	}
}

func sjsonRaw(pos lexer.Position, v interface{}) (string, *errors.RuntimeError) {
	doc, err := sjson.Set("", "x", v)
	if err != nil {
		return "", errors.Runtime(pos, "JSON.stringify: %s", err)
	}
	return gjson.Get(doc, "x").Raw, nil
}

func jsonParse(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "JSON.parse expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "JSON.parse expects a String argument")
	}
	if !gjson.Valid(s.Val) {
		return nil, errors.ArgumentError(pos, "JSON.parse: invalid JSON text")
	}
	return parseResult(gjson.Parse(s.Val)), nil
}

func parseResult(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null{}
	case gjson.True:
		return value.Int(1)
	case gjson.False:
		return value.Int(0)
	case gjson.Number:
		isInt := r.Num == float64(int64(r.Num))
		return value.Number{Val: r.Num, IsInt: isInt}
	case gjson.String:
		return value.String{Val: r.Str}
	case gjson.JSON:
		if r.IsArray() {
			items := []value.Value{}
			r.ForEach(func(_, val gjson.Result) bool {
				items = append(items, parseResult(val))
				return true
			})
			return value.NewArrayValue(value.NewArray(items...))
		}
		obj := value.NewObject()
		r.ForEach(func(key, val gjson.Result) bool {
			obj.Set(key.String(), parseResult(val))
			return true
		})
		return value.NewObjectValue(obj)
	default:
		return value.Null{}
	}
}
