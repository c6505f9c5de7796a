// Package value implements the dynamic value taxonomy: the tagged union
// of Null, Number, String, Function, HostFunction, MemberMethod,
// MemberProperty, Object, Array and Type, plus their equality, truthiness
// and formatting rules.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
)

// Kind tags which alternative of the Value union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindFunction
	KindHostFunction
	KindMemberMethod
	KindMemberProperty
	KindObject
	KindArray
	KindType
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindFunction:
		return "Function"
	case KindHostFunction:
		return "HostFunction"
	case KindMemberMethod:
		return "MemberMethod"
	case KindMemberProperty:
		return "MemberProperty"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindType:
		return "Type"
	}
	return "Unknown"
}

// Value is implemented by every member of the dynamic value taxonomy.
type Value interface {
	Kind() Kind
	Truthy() bool
	// Repr renders the value the way printf's %p / the REPL would: quoted
	// strings, bracketed arrays, braced objects.
	Repr() string
	// Display renders the value the way print/%s/%v would: strings
	// unquoted, everything else the same as Repr.
	Display() string
}

// Equals implements same-kind value equality per the table in the data
// model: Null==Null, numeric equality for Number, bytewise for String,
// identity for Function/Object/Array, tag equality for Type.
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Number:
		return av.Val == b.(Number).Val
	case String:
		return av.Val == b.(String).Val
	case *Function:
		return av == b.(*Function)
	case *HostFunction:
		return av == b.(*HostFunction)
	case *MemberMethod:
		return av == b.(*MemberMethod)
	case *MemberProperty:
		return av == b.(*MemberProperty)
	case *ObjectValue:
		return av.Obj == b.(*ObjectValue).Obj
	case *ArrayValue:
		return av.Arr == b.(*ArrayValue).Arr
	case TypeValue:
		return av.Of == b.(TypeValue).Of
	}
	return false
}

// Null is the singleton absence-of-value.
type Null struct{}

func (Null) Kind() Kind       { return KindNull }
func (Null) Truthy() bool     { return false }
func (Null) Repr() string     { return "null" }
func (Null) Display() string  { return "null" }

// Number is a float64 payload tagged with whether it originated (or
// remained, through arithmetic) integer-valued.
type Number struct {
	Val   float64
	IsInt bool
}

func Int(v int64) Number   { return Number{Val: float64(v), IsInt: true} }
func Float(v float64) Number { return Number{Val: v, IsInt: false} }

func (n Number) Kind() Kind   { return KindNumber }
func (n Number) Truthy() bool { return n.Val != 0 }
func (n Number) Repr() string { return n.Display() }
func (n Number) Display() string {
	if n.IsInt {
		return strconv.FormatInt(int64(n.Val), 10)
	}
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

// Int64 converts n to a 64-bit signed integer for shift/bitwise operators.
func (n Number) Int64() int64 { return int64(n.Val) }

// String is an immutable UTF-8 payload. Strings are copied by value;
// mutation through an l-value writes a new String back into the slot
// that held it (see eval.LValue).
type String struct {
	Val string
}

func (s String) Kind() Kind      { return KindString }
func (s String) Truthy() bool    { return len(s.Val) > 0 }
func (s String) Display() string { return s.Val }
func (s String) Repr() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s.Val {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// TypeValue is the Value of a type expression (e.g. the identifier
// `Number` evaluated outside of any scope binding). Of is any Kind:
// typeOf can also yield host kinds such as HostFunction, which
// Construct rejects.
type TypeValue struct {
	Of Kind
}

func (t TypeValue) Kind() Kind      { return KindType }
func (t TypeValue) Truthy() bool    { return t.Of != KindNull }
func (t TypeValue) Repr() string    { return "Type(" + t.Of.String() + ")" }
func (t TypeValue) Display() string { return t.Of.String() }

// CallContext is the surface a HostFunction, MemberMethod or
// MemberProperty needs from the evaluator: output sink, the ability to
// invoke a callable value (for Array.each/map, etc), and the ability to
// run a fresh chunk of source sharing the global scope (for eval/load).
type CallContext interface {
	Print(s string)
	Call(pos lexer.Position, callee Value, receiver Value, args []Value) (Value, *errors.RuntimeError)
	Global() *Object
	EvalSource(pos lexer.Position, source string) (Value, *errors.RuntimeError)
	// ResolvePath turns a load()-argument path into the file actually
	// read: the path itself if it exists as given, else the first hit
	// among the host's configured module search directories.
	ResolvePath(path string) string
}

// HostFuncImpl is the signature of a native global function such as
// print or typeOf.
type HostFuncImpl func(ctx CallContext, pos lexer.Position, args []Value) (Value, *errors.RuntimeError)

// HostFunction wraps a native callable installed as a global.
type HostFunction struct {
	Name string
	Fn   HostFuncImpl
}

func (h *HostFunction) Kind() Kind      { return KindHostFunction }
func (h *HostFunction) Truthy() bool    { return true }
func (h *HostFunction) Repr() string    { return fmt.Sprintf("<host function %s>", h.Name) }
func (h *HostFunction) Display() string { return h.Repr() }

// MethodImpl is the signature of a native method such as Array.push.
type MethodImpl func(ctx CallContext, pos lexer.Position, receiver Value, args []Value) (Value, *errors.RuntimeError)

// MemberMethod is a bound native method value produced by member access
// on a String/Array/Object built-in method table.
type MemberMethod struct {
	Name     string
	Receiver Value
	Fn       MethodImpl
}

func (m *MemberMethod) Kind() Kind      { return KindMemberMethod }
func (m *MemberMethod) Truthy() bool    { return true }
func (m *MemberMethod) Repr() string    { return fmt.Sprintf("<method %s>", m.Name) }
func (m *MemberMethod) Display() string { return m.Repr() }

// PropertyImpl is the signature of a native nullary property accessor
// such as String.length.
type PropertyImpl func(ctx CallContext, pos lexer.Position, receiver Value) (Value, *errors.RuntimeError)

// MemberProperty is a native property accessor, invoked immediately on
// member access (it never needs to be called explicitly).
type MemberProperty struct {
	Name string
	Fn   PropertyImpl
}

func (p *MemberProperty) Kind() Kind      { return KindMemberProperty }
func (p *MemberProperty) Truthy() bool    { return true }
func (p *MemberProperty) Repr() string    { return fmt.Sprintf("<property %s>", p.Name) }
func (p *MemberProperty) Display() string { return p.Repr() }

// TypeName returns the spec's type-name token for a Kind, or "" if the
// kind has no surface type name (HostFunction/MemberMethod/MemberProperty).
func TypeName(k Kind) string {
	switch k {
	case KindNull, KindNumber, KindString, KindFunction, KindObject, KindArray, KindType:
		return k.String()
	}
	return ""
}
