package eval

import (
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/value"
)

// OutcomeKind tags which of the four non-local control signals (or plain
// completion) a statement produced, per spec §4.3.6/§9: an explicit
// sum-typed result stands in for exceptions in a language without them.
type OutcomeKind int

const (
	OutcomeNormal OutcomeKind = iota
	OutcomeBreak
	OutcomeContinue
	OutcomeReturn
	OutcomeThrow
)

// Outcome is the result of executing a Statement. Value carries the
// Return payload; Err carries the Throw payload — both user `throw` and
// native runtime errors flow through Err uniformly (see errors.KindThrow),
// so every call boundary only needs to thread one error channel.
type Outcome struct {
	Kind  OutcomeKind
	Value value.Value
	Err   *errors.RuntimeError
}

func normal() Outcome { return Outcome{Kind: OutcomeNormal} }

func throwOutcome(err *errors.RuntimeError) Outcome {
	return Outcome{Kind: OutcomeThrow, Err: err}
}
