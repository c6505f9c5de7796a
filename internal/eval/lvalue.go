package eval

import (
	"math"

	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// LValue is a locator for a writable slot, per spec §4.3.3: one of
// ObjectMember, ArrayItem or StringCharacter. Identifier targets are
// ObjectMember on whichever scope Object the name resolves into.
type LValue interface {
	Get() (value.Value, *errors.RuntimeError)
	Set(value.Value) *errors.RuntimeError
}

type objectMemberLValue struct {
	obj *value.Object
	key string
}

func (l *objectMemberLValue) Get() (value.Value, *errors.RuntimeError) {
	if v, ok := l.obj.Get(l.key); ok {
		return v, nil
	}
	return value.Null{}, nil
}

// Set assigns key=v, or deletes the key if v is Null — spec's rule that
// "deletion is explicit via assignment of Null on member targets".
func (l *objectMemberLValue) Set(v value.Value) *errors.RuntimeError {
	if _, isNull := v.(value.Null); isNull {
		l.obj.Delete(l.key)
		return nil
	}
	l.obj.Set(l.key, v)
	return nil
}

type arrayItemLValue struct {
	arr *value.Array
	idx int
	pos lexer.Position
}

func (l *arrayItemLValue) Get() (value.Value, *errors.RuntimeError) {
	if l.idx < 0 || l.idx >= len(l.arr.Items) {
		return nil, errors.IndexError(l.pos, "array index %d out of range (length %d)", l.idx, len(l.arr.Items))
	}
	return l.arr.Items[l.idx], nil
}

func (l *arrayItemLValue) Set(v value.Value) *errors.RuntimeError {
	if l.idx < 0 || l.idx >= len(l.arr.Items) {
		return errors.IndexError(l.pos, "array index %d out of range (length %d)", l.idx, len(l.arr.Items))
	}
	l.arr.Items[l.idx] = v
	return nil
}

// stringCharacterLValue reads/writes through its parent slot, since
// String is a copied-by-value kind rather than a shared reference: a
// write rebuilds the whole string and stores it back via parent.Set.
type stringCharacterLValue struct {
	parent LValue
	idx    int
	pos    lexer.Position
}

func (l *stringCharacterLValue) Get() (value.Value, *errors.RuntimeError) {
	pv, err := l.parent.Get()
	if err != nil {
		return nil, err
	}
	s, ok := pv.(value.String)
	if !ok {
		return nil, errors.TypeError(l.pos, "string character access on non-String value")
	}
	bs := []byte(s.Val)
	if l.idx < 0 || l.idx >= len(bs) {
		return nil, errors.IndexError(l.pos, "string index %d out of range (length %d)", l.idx, len(bs))
	}
	return value.String{Val: string(bs[l.idx : l.idx+1])}, nil
}

func (l *stringCharacterLValue) Set(v value.Value) *errors.RuntimeError {
	nv, ok := v.(value.String)
	if !ok || len(nv.Val) != 1 {
		return errors.TypeError(l.pos, "string character assignment requires a single-character string")
	}
	pv, err := l.parent.Get()
	if err != nil {
		return err
	}
	s, ok := pv.(value.String)
	if !ok {
		return errors.TypeError(l.pos, "string character access on non-String value")
	}
	bs := []byte(s.Val)
	if l.idx < 0 || l.idx >= len(bs) {
		return errors.IndexError(l.pos, "string index %d out of range (length %d)", l.idx, len(bs))
	}
	bs[l.idx] = nv.Val[0]
	return l.parent.Set(value.String{Val: string(bs)})
}

// isLValueShaped reports whether expr is one of the node kinds
// deriveLValue can turn into a writable slot, without evaluating it.
func isLValueShaped(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
		return true
	default:
		return false
	}
}

// deriveLValue derives the writable slot denoted by expr, per spec
// §4.3.3: identifier, member-access and indexing nodes qualify; anything
// else raises "lvalue required".
func (e *Evaluator) deriveLValue(expr ast.Expression) (LValue, *errors.RuntimeError) {
	switch ex := expr.(type) {
	case *ast.Identifier:
		obj, err := e.identifierTargetObject(ex)
		if err != nil {
			return nil, err
		}
		return &objectMemberLValue{obj: obj, key: ex.Name}, nil

	case *ast.MemberExpression:
		base, err := e.evalExpr(ex.Base)
		if err != nil {
			return nil, err
		}
		ov, ok := base.(*value.ObjectValue)
		if !ok {
			return nil, errors.TypeError(ex.Pos(), "member assignment target must be an Object, got %s", base.Kind())
		}
		return &objectMemberLValue{obj: ov.Obj, key: ex.Name}, nil

	case *ast.IndexExpression:
		// Derive ex.Base's own LValue up front, when it is itself a
		// writable slot, so the String case below can reuse it rather
		// than re-deriving (and re-evaluating) ex.Base a second time.
		var base value.Value
		var baseLV LValue
		if isLValueShaped(ex.Base) {
			lv, err := e.deriveLValue(ex.Base)
			if err != nil {
				return nil, err
			}
			v, err := lv.Get()
			if err != nil {
				return nil, err
			}
			baseLV, base = lv, v
		} else {
			v, err := e.evalExpr(ex.Base)
			if err != nil {
				return nil, err
			}
			base = v
		}

		idxVal, err := e.evalExpr(ex.Index)
		if err != nil {
			return nil, err
		}
		switch b := base.(type) {
		case *value.ArrayValue:
			idx, err := indexFromValue(idxVal, ex.Index.Pos())
			if err != nil {
				return nil, err
			}
			return &arrayItemLValue{arr: b.Arr, idx: idx, pos: ex.Pos()}, nil
		case *value.ObjectValue:
			key, err := keyFromValue(idxVal, ex.Index.Pos())
			if err != nil {
				return nil, err
			}
			return &objectMemberLValue{obj: b.Obj, key: key}, nil
		case value.String:
			if baseLV == nil {
				return nil, errors.Runtime(ex.Pos(), "lvalue required")
			}
			idx, err := indexFromValue(idxVal, ex.Index.Pos())
			if err != nil {
				return nil, err
			}
			return &stringCharacterLValue{parent: baseLV, idx: idx, pos: ex.Pos()}, nil
		default:
			return nil, errors.Runtime(ex.Pos(), "lvalue required")
		}

	default:
		return nil, errors.Runtime(expr.Pos(), "lvalue required")
	}
}

func indexFromValue(v value.Value, pos lexer.Position) (int, *errors.RuntimeError) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, errors.TypeError(pos, "index must be a Number, got %s", v.Kind())
	}
	if math.IsNaN(n.Val) || math.IsInf(n.Val, 0) {
		return 0, errors.IndexError(pos, "index must be finite")
	}
	if n.Val < 0 {
		return 0, errors.IndexError(pos, "negative index %v", n.Val)
	}
	return int(n.Val), nil
}

func keyFromValue(v value.Value, pos lexer.Position) (string, *errors.RuntimeError) {
	s, ok := v.(value.String)
	if !ok {
		return "", errors.TypeError(pos, "object index must be a String, got %s", v.Kind())
	}
	return s.Val, nil
}
