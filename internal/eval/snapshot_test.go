package eval

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-dws/internal/parser"
)

// runOutput evaluates src against a fresh Evaluator and returns whatever
// it wrote to the print sink, for end-to-end output snapshotting in the
// style of the teacher's fixture-driven snapshot tests.
func runOutput(t *testing.T, src string) string {
	t.Helper()
	script, perrs := parser.Parse(src, "test.msl")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, perrs)
	}
	var out bytes.Buffer
	e := New()
	e.Out = &out
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("unexpected runtime error for %q: %v", src, err)
	}
	return out.String()
}

func TestSnapshotScenarioAbsoluteValuePrinting(t *testing.T) {
	out := runOutput(t, `
		a = -10;
		print(a, math.abs(a));
	`)
	snaps.MatchSnapshot(t, out)
}

func TestSnapshotScenarioObjectIteration(t *testing.T) {
	out := runOutput(t, `
		o = {};
		o.x = 1;
		o.y = 2;
		for (k, v : o) {
			print(k, "=", v, "\n");
		}
	`)
	snaps.MatchSnapshot(t, out)
}

func TestSnapshotScenarioFizzBuzz(t *testing.T) {
	out := runOutput(t, `
		for (i = 1; i <= 15; i++) {
			if (i % 15 == 0) {
				print("FizzBuzz");
			} else if (i % 3 == 0) {
				print("Fizz");
			} else if (i % 5 == 0) {
				print("Buzz");
			} else {
				print(i);
			}
		}
	`)
	snaps.MatchSnapshot(t, out)
}
