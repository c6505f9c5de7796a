package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-dws/internal/parser"
	"github.com/cwbudde/go-dws/internal/value"
)

// run parses and evaluates src against a fresh Evaluator, failing the
// test on parse or runtime errors. It returns the script's value and
// whatever was written to the print sink.
func run(t *testing.T, src string) (value.Value, string) {
	t.Helper()
	script, perrs := parser.Parse(src, "test.msl")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, perrs)
	}
	var out bytes.Buffer
	e := New()
	e.Out = &out
	result, err := e.Evaluate(script)
	if err != nil {
		t.Fatalf("unexpected runtime error for %q: %v", src, err)
	}
	return result, out.String()
}

// runErr parses and evaluates src, expecting a runtime error.
func runErr(t *testing.T, src string) *value.Value {
	t.Helper()
	script, perrs := parser.Parse(src, "test.msl")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, perrs)
	}
	e := New()
	e.Out = &bytes.Buffer{}
	_, err := e.Evaluate(script)
	if err == nil {
		t.Fatalf("expected a runtime error for %q, got none", src)
	}
	return nil
}

func TestScopeInvariants(t *testing.T) {
	// Reading a bare identifier after local.x = 1; x = 2 inside the same
	// frame reads 2.
	src := `
		f = function() {
			local.x = 1;
			x = 2;
			return x;
		};
		result = f();
	`
	script, perrs := parser.Parse(src, "test.msl")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	e := New()
	e.Out = &bytes.Buffer{}
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	v, ok := e.Globals.Get("result")
	if !ok {
		t.Fatalf("expected global 'result' to be bound")
	}
	n, ok := v.(value.Number)
	if !ok || n.Val != 2 {
		t.Fatalf("expected result == 2, got %v", v)
	}
	if _, ok := e.Globals.Get("x"); ok {
		t.Errorf("expected 'x' not to leak into globals after the function returned")
	}
}

func TestLValueIdempotence(t *testing.T) {
	// a[i] = a[i] is a no-op for any in-bounds i.
	v, _ := run(t, `
		a = [10, 20, 30];
		a[1] = a[1];
		return a;
	`)
	arr, ok := v.(*value.ArrayValue)
	if !ok {
		t.Fatalf("expected an Array, got %T", v)
	}
	want := []int64{10, 20, 30}
	if len(arr.Arr.Items) != len(want) {
		t.Fatalf("expected length %d, got %d", len(want), len(arr.Arr.Items))
	}
	for i, w := range want {
		n := arr.Arr.Items[i].(value.Number)
		if int64(n.Val) != w {
			t.Errorf("index %d: got %v, want %d", i, n, w)
		}
	}
}

func TestPostIncrementAndDecrement(t *testing.T) {
	v, _ := run(t, `
		x = 3;
		y = x++;
		return [x, y];
	`)
	arr := v.(*value.ArrayValue)
	x := arr.Arr.Items[0].(value.Number)
	y := arr.Arr.Items[1].(value.Number)
	if x.Val != 4 || y.Val != 3 {
		t.Errorf("expected x==4 && y==3, got x=%v y=%v", x, y)
	}

	v, _ = run(t, `
		x = 3;
		y = x--;
		return [x, y];
	`)
	arr = v.(*value.ArrayValue)
	x = arr.Arr.Items[0].(value.Number)
	y = arr.Arr.Items[1].(value.Number)
	if x.Val != 2 || y.Val != 3 {
		t.Errorf("expected x==2 && y==3, got x=%v y=%v", x, y)
	}
}

func TestPostIncrementRejectsString(t *testing.T) {
	runErr(t, `x = "abc"; x++;`)
}

func TestIntegerTaggingPreservedUnderArithmetic(t *testing.T) {
	v, _ := run(t, `return 6 + 4;`)
	n := v.(value.Number)
	if !n.IsInt || n.Val != 10 {
		t.Errorf("expected int-tagged 10, got %+v", n)
	}

	v, _ = run(t, `return 6 / 4;`)
	n = v.(value.Number)
	if n.IsInt {
		t.Errorf("expected / to always float-tag, got %+v", n)
	}

	v, _ = run(t, `return 7 % 2;`)
	n = v.(value.Number)
	if !n.IsInt || n.Val != 1 {
		t.Errorf("expected int-tagged modulo 1, got %+v", n)
	}

	v, _ = run(t, `return 7.5 + 1;`)
	n = v.(value.Number)
	if n.IsInt {
		t.Errorf("expected mixed addition to float-tag, got %+v", n)
	}
}

func TestTryFinallyThrowAlwaysWins(t *testing.T) {
	// Even when finally itself completes normally, an original throw
	// propagates past a try/finally with no catch.
	runErr(t, `
		try {
			throw "boom";
		} finally {
			x = 1;
		}
	`)
}

func TestTryFinallyReturnOverridesNormalCompletion(t *testing.T) {
	// When the try body completes normally, finally's own Return
	// overrides it.
	v, _ := run(t, `
		f = function() {
			try {
				x = 1;
			} finally {
				return 99;
			}
		};
		return f();
	`)
	n := v.(value.Number)
	if n.Val != 99 {
		t.Errorf("expected finally's return to override normal completion, got %v", v)
	}
}

func TestTryFinallyThrowWinsEvenOverFinallysReturn(t *testing.T) {
	// An original Throw always propagates, even past a finally clause
	// that itself performs a Return.
	v, _ := run(t, `
		f = function() {
			try {
				throw "boom";
			} finally {
				return 99;
			}
		};
		caught = null;
		try {
			f();
		} catch (e) {
			caught = e;
		}
		return caught;
	`)
	if _, isNull := v.(value.Null); isNull {
		t.Errorf("expected the throw to escape f() and be caught by the caller, got Null")
	}
}

func TestTryCatchMaterializesRuntimeError(t *testing.T) {
	v, _ := run(t, `
		caught = null;
		try {
			a = [1, 2];
			x = a[10];
		} catch (e) {
			caught = e;
		}
		return caught.type;
	`)
	s := v.(value.String)
	if s.Val != "IndexError" {
		t.Errorf("expected caught.type == IndexError, got %q", s.Val)
	}
}

func TestForRangeSingleVariableBindsValueNotKey(t *testing.T) {
	v, out := run(t, `
		for (v : [10, 20, 30]) {
			print(v);
		}
		return v;
	`)
	if !strings.Contains(out, "10\n") || !strings.Contains(out, "20\n") || !strings.Contains(out, "30\n") {
		t.Errorf("expected each value printed on its own line, got %q", out)
	}
	if _, isNull := v.(value.Null); !isNull {
		t.Errorf("expected loop variable cleared to Null after the loop, got %v", v)
	}
}

func TestForRangeKeyValueOverObject(t *testing.T) {
	_, out := run(t, `
		o = {};
		o.x = 1;
		o.y = 2;
		for (k, v : o) {
			print(k, "=", v, "\n");
		}
	`)
	if !strings.Contains(out, "x=1") || !strings.Contains(out, "y=2") {
		t.Errorf("expected lines containing x=1 and y=2, got %q", out)
	}
}

func TestSwitchFallthrough(t *testing.T) {
	v, _ := run(t, `
		x = 1;
		r = 0;
		switch (x) {
			case 1:
				r = r + 1;
			case 2:
				r = r + 10;
				break;
			case 3:
				r = r + 100;
		}
		return r;
	`)
	n := v.(value.Number)
	if n.Val != 11 {
		t.Errorf("expected fallthrough from case 1 into case 2 (11), got %v", n)
	}
}

func TestIdentifierResolutionOrder(t *testing.T) {
	// local -> this-as-Object -> global -> type-name -> Null
	v, _ := run(t, `
		Point = {};
		Point.make = function() {
			this.x = 5;
			return x;
		};
		p = Point.make();
		return p;
	`)
	n := v.(value.Number)
	if n.Val != 5 {
		t.Errorf("expected this-as-Object member resolution to find x, got %v", v)
	}

	v, _ = run(t, `return Number;`)
	if v.Kind() != value.KindType {
		t.Errorf("expected bare type-name token 'Number' to resolve to a Type value, got %v", v.Kind())
	}

	v, _ = run(t, `return undefinedName;`)
	if _, isNull := v.(value.Null); !isNull {
		t.Errorf("expected an unresolved identifier to evaluate to Null, got %v", v)
	}
}
