package builtins

import (
	"math"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// indexFromValue converts a script-level index argument to a Go int,
// rejecting non-Number, non-finite and negative values. Mirrors the
// evaluator's own indexing rule so `array.insert(i, x)` and `a[i]`
// agree on what counts as a valid index.
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
