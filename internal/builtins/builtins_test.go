package builtins

import (
	"bytes"
	"testing"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// fakeCtx is a minimal value.CallContext for exercising builtins
// without spinning up the evaluator.
type fakeCtx struct {
	out *bytes.Buffer
	g   *value.Object
}

var _ value.CallContext = (*fakeCtx)(nil)

func newFakeCtx() *fakeCtx {
	return &fakeCtx{out: &bytes.Buffer{}, g: value.NewObject()}
}

func (f *fakeCtx) Print(s string)                { f.out.WriteString(s) }
func (f *fakeCtx) Global() *value.Object          { return f.g }
func (f *fakeCtx) ResolvePath(path string) string { return path }
func (f *fakeCtx) Call(pos lexer.Position, callee value.Value, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	return value.Null{}, nil
}
func (f *fakeCtx) EvalSource(pos lexer.Position, source string) (value.Value, *errors.RuntimeError) {
	return value.Null{}, nil
}

var zeroPos = lexer.Position{Line: 1, Column: 1}

func TestMathAbsPreservesIntTagging(t *testing.T) {
	ns := mathNamespace()
	abs, _ := ns.Get("abs")
	fn := abs.(*value.HostFunction)

	v, err := fn.Fn(newFakeCtx(), zeroPos, []value.Value{value.Int(-10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := v.(value.Number)
	if !n.IsInt || n.Val != 10 {
		t.Errorf("expected int-tagged 10, got %+v", n)
	}
}

func TestMathAbsTooFewArguments(t *testing.T) {
	ns := mathNamespace()
	abs, _ := ns.Get("abs")
	fn := abs.(*value.HostFunction)

	_, err := fn.Fn(newFakeCtx(), zeroPos, nil)
	if err == nil {
		t.Fatalf("expected an argument error")
	}
	want := "Function math.abs received too few arguments. Number expected as argument 0."
	if err.Message != want {
		t.Errorf("got %q, want %q", err.Message, want)
	}
}

func TestMinMaxSeedFromFirstArgument(t *testing.T) {
	// Regression test for the all-negative-inputs bug: min/max must not
	// seed their accumulator from 0.
	v, err := hostMin(newFakeCtx(), zeroPos, []value.Value{value.Int(-5), value.Int(-1), value.Int(-9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(value.Number).Val != -9 {
		t.Errorf("expected min == -9, got %v", v)
	}

	v, err = hostMax(newFakeCtx(), zeroPos, []value.Value{value.Int(-5), value.Int(-1), value.Int(-9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(value.Number).Val != -1 {
		t.Errorf("expected max == -1, got %v", v)
	}
}

func TestFormatDirectives(t *testing.T) {
	cases := []struct {
		format string
		args   []value.Value
		want   string
	}{
		{"%s", []value.Value{value.String{Val: "hi"}}, "hi"},
		{"%d", []value.Value{value.Int(42)}, "42"},
		{"%%", nil, "%"},
		{"%(1) %(0)", []value.Value{value.Int(1), value.Int(2)}, "2 1"},
	}
	for _, c := range cases {
		got, err := formatDirectives(zeroPos, c.format, c.args)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.format, err)
		}
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.format, got, c.want)
		}
	}
}

func TestArrayPushPopInsertRemove(t *testing.T) {
	a := value.NewArrayValue(value.NewArray(value.Int(1), value.Int(2)))
	ctx := newFakeCtx()

	if _, err := arrayPush(ctx, zeroPos, a, []value.Value{value.Int(3)}); err != nil {
		t.Fatalf("push: unexpected error: %v", err)
	}
	if got := a.Arr.Len(); got != 3 {
		t.Fatalf("expected length 3 after push, got %d", got)
	}

	popped, err := arrayPop(ctx, zeroPos, a, nil)
	if err != nil {
		t.Fatalf("pop: unexpected error: %v", err)
	}
	if popped.(value.Number).Val != 3 {
		t.Errorf("expected popped == 3, got %v", popped)
	}

	if _, err := arrayInsert(ctx, zeroPos, a, []value.Value{value.Int(0), value.Int(99)}); err != nil {
		t.Fatalf("insert: unexpected error: %v", err)
	}
	if a.Arr.Items[0].(value.Number).Val != 99 {
		t.Errorf("expected index 0 == 99 after insert, got %v", a.Arr.Items[0])
	}

	removed, err := arrayRemove(ctx, zeroPos, a, []value.Value{value.Int(0)})
	if err != nil {
		t.Fatalf("remove: unexpected error: %v", err)
	}
	if removed.(value.Number).Val != 99 {
		t.Errorf("expected removed == 99, got %v", removed)
	}
}

func TestStringStartsEndsWith(t *testing.T) {
	s := value.String{Val: "hello world"}
	ctx := newFakeCtx()

	got, err := stringStartsWith(ctx, zeroPos, s, []value.Value{value.String{Val: "hello"}})
	if err != nil || got.(value.Number).Val != 1 {
		t.Errorf("expected startsWith to be true, got %v err %v", got, err)
	}

	got, err = stringEndsWith(ctx, zeroPos, s, []value.Value{value.String{Val: "bye"}})
	if err != nil || got.(value.Number).Val != 0 {
		t.Errorf("expected endsWith to be false, got %v err %v", got, err)
	}
}

func TestStringResizePadsAndTruncates(t *testing.T) {
	s := value.String{Val: "abc"}
	ctx := newFakeCtx()

	got, err := stringResize(ctx, zeroPos, s, []value.Value{value.Int(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.(value.String).Val) != 5 {
		t.Errorf("expected padded length 5, got %d", len(got.(value.String).Val))
	}

	got, err = stringResize(ctx, zeroPos, s, []value.Value{value.Int(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(value.String).Val != "a" {
		t.Errorf("expected truncated 'a', got %q", got.(value.String).Val)
	}
}

func TestConstructArrayShallowCopiesExistingArray(t *testing.T) {
	src := value.NewArrayValue(value.NewArray(value.Int(1), value.Int(2)))
	v, err := Construct(newFakeCtx(), zeroPos, value.KindArray, []value.Value{src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := v.(*value.ArrayValue)
	if arr.Arr.Len() != 2 {
		t.Errorf("expected length 2, got %d", arr.Arr.Len())
	}
	if arr == src {
		t.Errorf("expected a distinct copy, got the same *ArrayValue")
	}
	arr.Arr.Items[0] = value.Int(99)
	if src.Arr.Items[0].(value.Number).Val != 1 {
		t.Errorf("expected the copy to be independent of the source array")
	}
}

func TestConstructArrayRejectsMultipleArguments(t *testing.T) {
	_, err := Construct(newFakeCtx(), zeroPos, value.KindArray, []value.Value{value.Int(1), value.Int(2)})
	if err == nil {
		t.Fatalf("expected an argument error for Array(1, 2)")
	}
}

func TestConstructObjectShallowCopiesExistingObject(t *testing.T) {
	src := value.NewObject()
	src.Set("x", value.Int(1))
	v, err := Construct(newFakeCtx(), zeroPos, value.KindObject, []value.Value{value.NewObjectValue(src)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj := v.(*value.ObjectValue)
	x, _ := obj.Obj.Get("x")
	if x.(value.Number).Val != 1 {
		t.Errorf("expected copied key x == 1, got %v", x)
	}
	obj.Obj.Set("x", value.Int(99))
	srcX, _ := src.Get("x")
	if srcX.(value.Number).Val != 1 {
		t.Errorf("expected the copy to be independent of the source object")
	}
}

func TestConstructStringRejectsNonString(t *testing.T) {
	_, err := Construct(newFakeCtx(), zeroPos, value.KindString, []value.Value{value.Int(42)})
	if err == nil {
		t.Fatalf("expected an argument error for String(42)")
	}
}

func TestConstructTypeRejectsNonType(t *testing.T) {
	_, err := Construct(newFakeCtx(), zeroPos, value.KindType, []value.Value{value.Int(5)})
	if err == nil {
		t.Fatalf("expected an argument error for Type(5)")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	obj := value.NewObject()
	obj.Set("name", value.String{Val: "ada"})
	obj.Set("count", value.Int(3))
	v := value.NewObjectValue(obj)

	text, err := stringifyValue(zeroPos, v)
	if err != nil {
		t.Fatalf("stringify: unexpected error: %v", err)
	}

	ns := jsonNamespace()
	parse, _ := ns.Get("parse")
	parseFn := parse.(*value.HostFunction)
	parsed, perr := parseFn.Fn(newFakeCtx(), zeroPos, []value.Value{value.String{Val: text}})
	if perr != nil {
		t.Fatalf("parse: unexpected error: %v", perr)
	}
	parsedObj := parsed.(*value.ObjectValue)
	name, _ := parsedObj.Obj.Get("name")
	if name.(value.String).Val != "ada" {
		t.Errorf("expected round-tripped name == ada, got %v", name)
	}
}
