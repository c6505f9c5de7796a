// Package eval is the tree-walking evaluator: scope/this stacks,
// identifier resolution, l-value derivation, operator semantics, call
// dispatch and the try/catch/finally protocol. It walks the plain-data
// internal/ast nodes with type switches rather than a method per node,
// so control-flow signals never leak into the AST package.
package eval

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/builtins"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/parser"
	"github.com/cwbudde/go-dws/internal/value"
)

// maxScopeDepth bounds the local-scope stack per spec §3's invariant;
// exceeding it raises a runtime stack-overflow error.
const maxScopeDepth = 100

// Evaluator walks a Script. It holds the global Object and two parallel
// stacks (local scopes, `this` bindings) that grow and shrink together
// on every function call, per spec §4.3.1.
type Evaluator struct {
	Globals *value.Object
	Out     io.Writer

	// LoadPaths are additional directories load() consults, in
	// order, when a requested path does not exist relative to the
	// current working directory. Populated from .mslrc.yaml.
	LoadPaths []string

	locals    []*value.Object
	thisStack []value.Value // nil entry means `this` is None

	source string
	file   string
}

// New returns an Evaluator with its global scope pre-populated with the
// built-in surface (print, math, File, JSON, ...) and stdout as the
// print sink.
func New(opts ...builtins.Options) *Evaluator {
	e := &Evaluator{Globals: value.NewObject(), Out: os.Stdout}
	builtins.Install(e.Globals, opts...)
	return e
}

var _ value.CallContext = (*Evaluator)(nil)

// Print implements value.CallContext.
func (e *Evaluator) Print(s string) {
	io.WriteString(e.Out, s)
}

// Global implements value.CallContext.
func (e *Evaluator) Global() *value.Object { return e.Globals }

// Call implements value.CallContext, letting builtins (Array.each/map,
// etc.) invoke a callback value the same way the evaluator itself does.
func (e *Evaluator) Call(pos lexer.Position, callee value.Value, receiver value.Value, args []value.Value) (value.Value, *errors.RuntimeError) {
	return e.callValue(pos, callee, receiver, args)
}

// ResolvePath implements value.CallContext. It returns path unchanged
// if it exists as given, else the first candidate found by joining it
// with each of LoadPaths in order; if none exist, path is returned
// unchanged so the caller's os.ReadFile produces a natural not-found
// error.
func (e *Evaluator) ResolvePath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	for _, dir := range e.LoadPaths {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// EvalSource parses and runs source as a fresh script sharing this
// Evaluator's global scope; it backs the `eval`/`load` builtins.
func (e *Evaluator) EvalSource(pos lexer.Position, source string) (value.Value, *errors.RuntimeError) {
	script, perrs := parser.Parse(source, "<eval>")
	if len(perrs) != 0 {
		return nil, errors.Runtime(pos, "%s", errors.FormatErrors(perrs, false))
	}
	return e.Evaluate(script)
}

// Evaluate runs script's top-level Block with the global object as its
// local scope, so top-level bindings are globals that function bodies
// and later eval/load calls can see. A `return` at top level yields its
// value from the whole script.
func (e *Evaluator) Evaluate(script *ast.Script) (value.Value, *errors.RuntimeError) {
	if err := e.pushScope(e.Globals); err != nil {
		return nil, err
	}
	e.pushThis(nil)
	defer func() {
		e.popThis()
		e.popScope()
	}()

	for _, stmt := range script.Statements {
		outcome := e.exec(stmt)
		switch outcome.Kind {
		case OutcomeNormal:
			continue
		case OutcomeReturn:
			return outcome.Value, nil
		case OutcomeThrow:
			return value.Null{}, outcome.Err
		default:
			return value.Null{}, errors.Runtime(stmt.Pos(), "break/continue used outside of a loop")
		}
	}
	return value.Null{}, nil
}

func (e *Evaluator) pushScope(scope *value.Object) *errors.RuntimeError {
	if len(e.locals) >= maxScopeDepth {
		return errors.Runtime(lexer.Position{Line: 1, Column: 1}, "stack overflow: local scope depth exceeds %d", maxScopeDepth)
	}
	e.locals = append(e.locals, scope)
	return nil
}

func (e *Evaluator) popScope() {
	e.locals = e.locals[:len(e.locals)-1]
}

func (e *Evaluator) currentScope() *value.Object {
	if len(e.locals) == 0 {
		return nil
	}
	return e.locals[len(e.locals)-1]
}

func (e *Evaluator) pushThis(v value.Value) {
	e.thisStack = append(e.thisStack, v)
}

func (e *Evaluator) popThis() {
	e.thisStack = e.thisStack[:len(e.thisStack)-1]
}

func (e *Evaluator) currentThis() value.Value {
	if len(e.thisStack) == 0 {
		return nil
	}
	return e.thisStack[len(e.thisStack)-1]
}

var typeNames = map[string]value.Kind{
	"Null":     value.KindNull,
	"Number":   value.KindNumber,
	"String":   value.KindString,
	"Function": value.KindFunction,
	"Object":   value.KindObject,
	"Array":    value.KindArray,
	"Type":     value.KindType,
}

// resolveIdentifier implements spec §4.3.2: local -> this-as-Object ->
// global -> type-name token -> Null. It returns the receiver the value
// was found through (non-nil only for the this-as-Object case), so call
// sites can bind `this` correctly on a subsequent call.
func (e *Evaluator) resolveIdentifier(id *ast.Identifier) (value.Value, value.Value, *errors.RuntimeError) {
	name := id.Name
	switch id.Scope {
	case ast.ScopeLocal:
		scope := e.currentScope()
		if scope == nil {
			return nil, nil, errors.Runtime(id.Pos(), "local.%s used outside of a local scope", name)
		}
		if v, ok := scope.Get(name); ok {
			return v, nil, nil
		}
		return value.Null{}, nil, nil
	case ast.ScopeGlobal:
		if v, ok := e.Globals.Get(name); ok {
			return v, nil, nil
		}
		return value.Null{}, nil, nil
	default:
		if scope := e.currentScope(); scope != nil {
			if v, ok := scope.Get(name); ok {
				return v, nil, nil
			}
		}
		if this := e.currentThis(); this != nil {
			if obj, ok := this.(*value.ObjectValue); ok {
				if v, ok2 := obj.Obj.Get(name); ok2 {
					return v, this, nil
				}
			}
		}
		if v, ok := e.Globals.Get(name); ok {
			return v, nil, nil
		}
		if k, ok := typeNames[name]; ok {
			return value.TypeValue{Of: k}, nil, nil
		}
		return value.Null{}, nil, nil
	}
}

// identifierTargetObject picks the scope Object an assignment to id
// should land in: the scope it already resolves in (local, this-as-
// Object, global, in that order), or the innermost applicable scope
// (local if one exists, else global) to create a new binding.
func (e *Evaluator) identifierTargetObject(id *ast.Identifier) (*value.Object, *errors.RuntimeError) {
	switch id.Scope {
	case ast.ScopeLocal:
		scope := e.currentScope()
		if scope == nil {
			return nil, errors.Runtime(id.Pos(), "local.%s used outside of a local scope", id.Name)
		}
		return scope, nil
	case ast.ScopeGlobal:
		return e.Globals, nil
	default:
		if scope := e.currentScope(); scope != nil && scope.Has(id.Name) {
			return scope, nil
		}
		if this := e.currentThis(); this != nil {
			if obj, ok := this.(*value.ObjectValue); ok && obj.Obj.Has(id.Name) {
				return obj.Obj, nil
			}
		}
		if e.Globals.Has(id.Name) {
			return e.Globals, nil
		}
		if scope := e.currentScope(); scope != nil {
			return scope, nil
		}
		return e.Globals, nil
	}
}

// materializeCaught turns a propagating error into the Value a catch
// clause binds: the raw thrown value for a user `throw`, or the
// `{type, index, line, column, message}` object spec §4.3.7 mandates for
// a native runtime error.
func materializeCaught(err *errors.RuntimeError) value.Value {
	if err.Kind == errors.KindThrow {
		if v, ok := err.Payload.(value.Value); ok {
			return v
		}
	}
	obj := value.NewObject()
	obj.Set("type", value.String{Val: string(err.Kind)})
	obj.Set("index", value.Int(int64(err.Pos.Index)))
	obj.Set("line", value.Int(int64(err.Pos.Line)))
	obj.Set("column", value.Int(int64(err.Pos.Column)))
	obj.Set("message", value.String{Val: err.Message})
	return value.NewObjectValue(obj)
}
