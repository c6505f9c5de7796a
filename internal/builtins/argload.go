package builtins

import (
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// argLoader mirrors the MINSL_LOAD_ARG_* macro family: it walks args in
// order, producing the exact "Function X received too few arguments...
// / received incorrect argument N..." diagnostics namespace functions
// like math.abs are specified to raise.
type argLoader struct {
	funcName string
	args     []value.Value
	idx      int
}

func newArgLoader(funcName string, args []value.Value) *argLoader {
	return &argLoader{funcName: funcName, args: args}
}

func (l *argLoader) number(pos lexer.Position) (value.Number, *errors.RuntimeError) {
	if l.idx >= len(l.args) {
		return value.Number{}, errors.ArgumentError(pos, "Function %s received too few arguments. Number expected as argument %d.", l.funcName, l.idx)
	}
	n, ok := l.args[l.idx].(value.Number)
	if !ok {
		return value.Number{}, errors.ArgumentError(pos, "Function %s received incorrect argument %d. Expected: Number, actual: %s.", l.funcName, l.idx, l.args[l.idx].Kind())
	}
	l.idx++
	return n, nil
}

func (l *argLoader) str(pos lexer.Position) (value.String, *errors.RuntimeError) {
	if l.idx >= len(l.args) {
		return value.String{}, errors.ArgumentError(pos, "Function %s received too few arguments. String expected as argument %d.", l.funcName, l.idx)
	}
	s, ok := l.args[l.idx].(value.String)
	if !ok {
		return value.String{}, errors.ArgumentError(pos, "Function %s received incorrect argument %d. Expected: String, actual: %s.", l.funcName, l.idx, l.args[l.idx].Kind())
	}
	l.idx++
	return s, nil
}

func (l *argLoader) end(pos lexer.Position) *errors.RuntimeError {
	if l.idx != len(l.args) {
		return errors.ArgumentError(pos, "Function %s requires %d arguments, %d provided.", l.funcName, l.idx, len(l.args))
	}
	return nil
}
