package eval

import (
	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/value"
)

// exec dispatches a single statement to its Outcome. Every statement
// kind in internal/ast has a case here; this is the only place Break,
// Continue, Return and Throw signals are represented as data rather
// than Go control flow, per the package doc.
func (e *Evaluator) exec(stmt ast.Statement) Outcome {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return e.execBlock(s)
	case *ast.ExpressionStatement:
		if _, err := e.evalExpr(s.Expr); err != nil {
			return throwOutcome(err)
		}
		return normal()
	case *ast.EmptyStatement:
		return normal()
	case *ast.IfStatement:
		return e.execIf(s)
	case *ast.WhileStatement:
		return e.execWhile(s)
	case *ast.DoWhileStatement:
		return e.execDoWhile(s)
	case *ast.ForCStyleStatement:
		return e.execForCStyle(s)
	case *ast.ForRangeStatement:
		return e.execForRange(s)
	case *ast.BreakStatement:
		return Outcome{Kind: OutcomeBreak}
	case *ast.ContinueStatement:
		return Outcome{Kind: OutcomeContinue}
	case *ast.ReturnStatement:
		if s.Value == nil {
			return Outcome{Kind: OutcomeReturn, Value: value.Null{}}
		}
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return throwOutcome(err)
		}
		return Outcome{Kind: OutcomeReturn, Value: v}
	case *ast.ThrowStatement:
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return throwOutcome(err)
		}
		return throwOutcome(errors.NewThrow(s.Pos(), v, v.Display()))
	case *ast.TryStatement:
		return e.execTry(s)
	case *ast.SwitchStatement:
		return e.execSwitch(s)
	default:
		return throwOutcome(errors.Runtime(stmt.Pos(), "cannot execute statement of type %T", stmt))
	}
}

// execBlock runs a block's statements in the current scope; blocks do
// not introduce a new scope of their own (only function calls and the
// top-level script do, per spec §4.3.1).
func (e *Evaluator) execBlock(b *ast.BlockStatement) Outcome {
	for _, stmt := range b.Statements {
		outcome := e.exec(stmt)
		if outcome.Kind != OutcomeNormal {
			return outcome
		}
	}
	return normal()
}

func (e *Evaluator) execIf(s *ast.IfStatement) Outcome {
	cond, err := e.evalExpr(s.Cond)
	if err != nil {
		return throwOutcome(err)
	}
	if cond.Truthy() {
		return e.exec(s.Then)
	}
	if s.Else != nil {
		return e.exec(s.Else)
	}
	return normal()
}

func (e *Evaluator) execWhile(s *ast.WhileStatement) Outcome {
	for {
		cond, err := e.evalExpr(s.Cond)
		if err != nil {
			return throwOutcome(err)
		}
		if !cond.Truthy() {
			return normal()
		}
		outcome := e.exec(s.Body)
		switch outcome.Kind {
		case OutcomeNormal, OutcomeContinue:
			continue
		case OutcomeBreak:
			return normal()
		default:
			return outcome
		}
	}
}

func (e *Evaluator) execDoWhile(s *ast.DoWhileStatement) Outcome {
	for {
		outcome := e.exec(s.Body)
		switch outcome.Kind {
		case OutcomeNormal, OutcomeContinue:
			// fall through to condition check below
		case OutcomeBreak:
			return normal()
		default:
			return outcome
		}
		cond, err := e.evalExpr(s.Cond)
		if err != nil {
			return throwOutcome(err)
		}
		if !cond.Truthy() {
			return normal()
		}
	}
}

func (e *Evaluator) execForCStyle(s *ast.ForCStyleStatement) Outcome {
	if s.Init != nil {
		if _, err := e.evalExpr(s.Init); err != nil {
			return throwOutcome(err)
		}
	}
	for {
		if s.Cond != nil {
			cond, err := e.evalExpr(s.Cond)
			if err != nil {
				return throwOutcome(err)
			}
			if !cond.Truthy() {
				return normal()
			}
		}
		outcome := e.exec(s.Body)
		switch outcome.Kind {
		case OutcomeNormal, OutcomeContinue:
			// continue to post-expression below
		case OutcomeBreak:
			return normal()
		default:
			return outcome
		}
		if s.Post != nil {
			if _, err := e.evalExpr(s.Post); err != nil {
				return throwOutcome(err)
			}
		}
	}
}

// execForRange implements spec §4.3.8: iterates String (byte index,
// single-character string), Array (integer index, element) or Object
// (key string, value) depending on the iterable's kind. A bare single
// loop variable binds the value, not the index/key. Both names are
// cleared to Null in the current scope once the loop ends.
func (e *Evaluator) execForRange(s *ast.ForRangeStatement) Outcome {
	iterable, err := e.evalExpr(s.Iterable)
	if err != nil {
		return throwOutcome(err)
	}

	keyName, valueName := s.KeyName, s.ValueName
	singleVar := valueName == ""
	if singleVar {
		valueName = keyName
		keyName = ""
	}
	scope := e.currentScope()

	bind := func(idx value.Value, val value.Value) {
		if keyName != "" {
			scope.Set(keyName, idx)
		}
		scope.Set(valueName, val)
	}
	defer func() {
		if keyName != "" {
			scope.Set(keyName, value.Null{})
		}
		scope.Set(valueName, value.Null{})
	}()

	runBody := func() (Outcome, bool) {
		outcome := e.exec(s.Body)
		switch outcome.Kind {
		case OutcomeNormal, OutcomeContinue:
			return normal(), true
		case OutcomeBreak:
			return normal(), false
		default:
			return outcome, false
		}
	}

	switch it := iterable.(type) {
	case value.String:
		bs := []byte(it.Val)
		for i := 0; i < len(bs); i++ {
			bind(value.Int(int64(i)), value.String{Val: string(bs[i : i+1])})
			outcome, cont := runBody()
			if !cont {
				return outcome
			}
		}
	case *value.ArrayValue:
		for i, item := range it.Arr.Items {
			bind(value.Int(int64(i)), item)
			outcome, cont := runBody()
			if !cont {
				return outcome
			}
		}
	case *value.ObjectValue:
		for _, k := range it.Obj.Keys() {
			v, _ := it.Obj.Get(k)
			bind(value.String{Val: k}, v)
			outcome, cont := runBody()
			if !cont {
				return outcome
			}
		}
	default:
		return throwOutcome(errors.TypeError(s.Pos(), "cannot iterate over value of kind %s", iterable.Kind()))
	}
	return normal()
}

// execTry implements spec §4.3.7. The literal precedence rule: if the
// try body raises and the finally body also raises, the original
// exception wins; if the try body completes normally (or via
// break/continue/return) and finally raises or otherwise overrides,
// finally's outcome wins.
func (e *Evaluator) execTry(s *ast.TryStatement) Outcome {
	outcome := e.exec(s.Body)

	if outcome.Kind == OutcomeThrow && s.CatchBody != nil {
		scope := e.currentScope()
		caught := materializeCaught(outcome.Err)
		if scope != nil && s.CatchName != "" {
			scope.Set(s.CatchName, caught)
		}
		outcome = e.exec(s.CatchBody)
		if scope != nil && s.CatchName != "" {
			scope.Set(s.CatchName, value.Null{})
		}
	}

	if s.FinallyBody == nil {
		return outcome
	}
	return e.runTryFinally(outcome, s.FinallyBody)
}

// runTryFinally runs the finally body against the outcome produced by
// the try/catch above, per spec §4.3.7's literal rule: a Throw outcome
// going into finally always propagates (even if finally itself raises),
// but finally's own Break/Continue/Return overrides any other outcome.
func (e *Evaluator) runTryFinally(original Outcome, finallyBody ast.Statement) Outcome {
	finalOutcome := e.exec(finallyBody)

	if original.Kind == OutcomeThrow {
		return original
	}
	if finalOutcome.Kind != OutcomeNormal {
		return finalOutcome
	}
	return original
}

// execSwitch implements C-style fallthrough: execution starts at the
// first case whose value.Equals the subject (or at default if no case
// matches), then falls through subsequent cases until a break or the
// end of the statement.
func (e *Evaluator) execSwitch(s *ast.SwitchStatement) Outcome {
	subject, err := e.evalExpr(s.Subject)
	if err != nil {
		return throwOutcome(err)
	}

	start := -1
	defaultIdx := -1
	for i, c := range s.Cases {
		if c.Value == nil {
			defaultIdx = i
			continue
		}
		caseVal, err := e.evalExpr(c.Value)
		if err != nil {
			return throwOutcome(err)
		}
		if value.Equals(subject, caseVal) {
			start = i
			break
		}
	}
	if start == -1 {
		start = defaultIdx
	}
	if start == -1 {
		return normal()
	}

	for i := start; i < len(s.Cases); i++ {
		for _, stmt := range s.Cases[i].Statements {
			outcome := e.exec(stmt)
			switch outcome.Kind {
			case OutcomeNormal:
				continue
			case OutcomeBreak:
				return normal()
			default:
				return outcome
			}
		}
	}
	return normal()
}
