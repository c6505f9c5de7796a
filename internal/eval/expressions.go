package eval

import (
	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/builtins"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/value"
)

// evalExpr evaluates expr to a plain Value, discarding any receiver the
// node carries. It is the channel every expression flows through;
// errors propagate as *errors.RuntimeError, covering both native faults
// and wrapped user `throw` payloads (see errors.KindThrow).
func (e *Evaluator) evalExpr(expr ast.Expression) (value.Value, *errors.RuntimeError) {
	v, _, err := e.evalExprReceiver(expr)
	return v, err
}

// evalExprReceiver evaluates expr and additionally reports the receiver
// a subsequent call should bind `this` to, per spec §9's "receiver side
// channel" design note. Only identifier and member-access nodes ever
// produce a non-nil receiver.
func (e *Evaluator) evalExprReceiver(expr ast.Expression) (value.Value, value.Value, *errors.RuntimeError) {
	switch ex := expr.(type) {
	case *ast.NullLiteral:
		return value.Null{}, nil, nil
	case *ast.BoolLiteral:
		if ex.Value {
			return value.Int(1), nil, nil
		}
		return value.Int(0), nil, nil
	case *ast.NumberLiteral:
		return value.Number{Val: ex.Value, IsInt: ex.IsInt}, nil, nil
	case *ast.StringLiteral:
		return value.String{Val: ex.Value}, nil, nil
	case *ast.ThisExpression:
		if this := e.currentThis(); this != nil {
			return this, nil, nil
		}
		return value.Null{}, nil, nil
	case *ast.Identifier:
		return e.resolveIdentifier(ex)
	case *ast.ArrayLiteral:
		v, err := e.evalArrayLiteral(ex)
		return v, nil, err
	case *ast.ObjectLiteral:
		v, err := e.evalObjectLiteral(ex)
		return v, nil, err
	case *ast.FunctionLiteral:
		return &value.Function{Def: ex}, nil, nil
	case *ast.CallExpression:
		v, err := e.evalCall(ex)
		return v, nil, err
	case *ast.IndexExpression:
		v, err := e.evalIndex(ex)
		return v, nil, err
	case *ast.MemberExpression:
		return e.evalMember(ex)
	case *ast.UnaryExpression:
		v, err := e.evalUnary(ex)
		return v, nil, err
	case *ast.BinaryExpression:
		v, err := e.evalBinary(ex)
		return v, nil, err
	case *ast.AssignExpression:
		v, err := e.evalAssign(ex)
		return v, nil, err
	case *ast.TernaryExpression:
		cond, err := e.evalExpr(ex.Cond)
		if err != nil {
			return nil, nil, err
		}
		if cond.Truthy() {
			v, err := e.evalExpr(ex.Then)
			return v, nil, err
		}
		v, err := e.evalExpr(ex.Else)
		return v, nil, err
	case *ast.CommaExpression:
		if _, err := e.evalExpr(ex.Left); err != nil {
			return nil, nil, err
		}
		v, err := e.evalExpr(ex.Right)
		return v, nil, err
	default:
		return nil, nil, errors.Runtime(expr.Pos(), "cannot evaluate expression of type %T", expr)
	}
}

func (e *Evaluator) evalArrayLiteral(a *ast.ArrayLiteral) (value.Value, *errors.RuntimeError) {
	arr := value.NewArray()
	for _, elExpr := range a.Elements {
		v, err := e.evalExpr(elExpr)
		if err != nil {
			return nil, err
		}
		arr.Push(v)
	}
	return value.NewArrayValue(arr), nil
}

// evalObjectLiteral builds an Object, first copying Base's members (the
// class-sugar lowering's base-expression field) and then setting this
// literal's own keys, so they take precedence over inherited ones.
func (e *Evaluator) evalObjectLiteral(o *ast.ObjectLiteral) (value.Value, *errors.RuntimeError) {
	obj := value.NewObject()
	if o.Base != nil {
		baseVal, err := e.evalExpr(o.Base)
		if err != nil {
			return nil, err
		}
		bo, ok := baseVal.(*value.ObjectValue)
		if !ok {
			return nil, errors.TypeError(o.Pos(), "class base must be an Object, got %s", baseVal.Kind())
		}
		for _, k := range bo.Obj.Keys() {
			v, _ := bo.Obj.Get(k)
			obj.Set(k, v)
		}
	}
	for i, k := range o.Keys {
		v, err := e.evalExpr(o.Values[i])
		if err != nil {
			return nil, err
		}
		obj.Set(k, v)
	}
	return value.NewObjectValue(obj), nil
}

func (e *Evaluator) evalIndex(ix *ast.IndexExpression) (value.Value, *errors.RuntimeError) {
	base, err := e.evalExpr(ix.Base)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.evalExpr(ix.Index)
	if err != nil {
		return nil, err
	}
	switch b := base.(type) {
	case value.String:
		idx, err := indexFromValue(idxVal, ix.Index.Pos())
		if err != nil {
			return nil, err
		}
		bs := []byte(b.Val)
		if idx < 0 || idx >= len(bs) {
			return nil, errors.IndexError(ix.Pos(), "string index %d out of range (length %d)", idx, len(bs))
		}
		return value.String{Val: string(bs[idx : idx+1])}, nil
	case *value.ArrayValue:
		idx, err := indexFromValue(idxVal, ix.Index.Pos())
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(b.Arr.Items) {
			return nil, errors.IndexError(ix.Pos(), "array index %d out of range (length %d)", idx, len(b.Arr.Items))
		}
		return b.Arr.Items[idx], nil
	case *value.ObjectValue:
		key, err := keyFromValue(idxVal, ix.Index.Pos())
		if err != nil {
			return nil, err
		}
		if v, ok := b.Obj.Get(key); ok {
			return v, nil
		}
		return value.Null{}, nil
	default:
		return nil, errors.TypeError(ix.Pos(), "value of kind %s is not indexable", base.Kind())
	}
}

// evalMember implements spec §4.3.9: on Object, own members shadow the
// (only) built-in property (`count`); on String/Array, the property
// table is consulted first (invoked immediately), then the method
// table (returns a bound MemberMethod). The receiver is reported only
// for an Object base whose member is an own member or missing, where a
// subsequent call must bind `this` to the object.
func (e *Evaluator) evalMember(m *ast.MemberExpression) (value.Value, value.Value, *errors.RuntimeError) {
	base, err := e.evalExpr(m.Base)
	if err != nil {
		return nil, nil, err
	}
	switch b := base.(type) {
	case *value.ObjectValue:
		if v, ok := b.Obj.Get(m.Name); ok {
			return v, base, nil
		}
		if prop, ok := builtins.ObjectProperty(m.Name); ok {
			v, err := prop(e, m.Pos(), base)
			return v, nil, err
		}
		return value.Null{}, base, nil
	case value.String:
		if prop, ok := builtins.StringProperty(m.Name); ok {
			v, err := prop(e, m.Pos(), base)
			return v, nil, err
		}
		if meth, ok := builtins.StringMethod(m.Name); ok {
			return &value.MemberMethod{Name: m.Name, Receiver: base, Fn: meth}, nil, nil
		}
		return nil, nil, errors.TypeError(m.Pos(), "String has no member %q", m.Name)
	case *value.ArrayValue:
		if prop, ok := builtins.ArrayProperty(m.Name); ok {
			v, err := prop(e, m.Pos(), base)
			return v, nil, err
		}
		if meth, ok := builtins.ArrayMethod(m.Name); ok {
			return &value.MemberMethod{Name: m.Name, Receiver: base, Fn: meth}, nil, nil
		}
		return nil, nil, errors.TypeError(m.Pos(), "Array has no member %q", m.Name)
	default:
		return nil, nil, errors.TypeError(m.Pos(), "value of kind %s has no members", base.Kind())
	}
}
