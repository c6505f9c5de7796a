// Package errors formats the error taxonomy produced by the lexer, parser
// and evaluator: a ParsingError (fatal, non-catchable) and a RuntimeError
// with subkinds (TypeError, ArgumentError, IndexError, IOError, OSError,
// EOFError). Every error carries a source Position and renders with a
// source line and caret, the way the host CLI prints diagnostics.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-dws/internal/lexer"
)

// Kind tags a RuntimeError with the subkind a script-level catch block
// materializes as `type`.
type Kind string

const (
	KindRuntime  Kind = "RuntimeError"
	KindType     Kind = "TypeError"
	KindArgument Kind = "ArgumentError"
	KindIndex    Kind = "IndexError"
	KindIO       Kind = "IOError"
	KindOS       Kind = "OSError"
	KindEOF      Kind = "EOFError"

	// KindThrow tags a RuntimeError that wraps a script-level `throw expr;`
	// rather than a native fault. Payload carries the raw thrown value
	// (a value.Value, stored as interface{} to avoid an import cycle);
	// Message carries its display form for when it escapes uncaught.
	KindThrow Kind = "Throw"
)

// ParsingError is raised by the lexer or parser. It is fatal and never
// catchable from within a running script.
type ParsingError struct {
	Pos     lexer.Position
	Message string
	Source  string
	File    string
}

func NewParsingError(pos lexer.Position, message, source, file string) *ParsingError {
	return &ParsingError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *ParsingError) Error() string { return e.Format(false) }

// Format renders the error with a source line and caret indicator under
// the offending column. With color true, ANSI codes highlight the caret.
func (e *ParsingError) Format(color bool) string {
	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString("error: " + e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of ParsingErrors, one per line of context.
func FormatErrors(errs []*ParsingError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "parsing failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// RuntimeError is raised by the evaluator. Inside a try block it is caught
// and materialized into a script-visible object; outside any try it aborts
// execution and is returned to the embedding host.
type RuntimeError struct {
	Pos     lexer.Position
	Kind    Kind
	Message string
	Payload interface{} // non-nil only for Kind == KindThrow
}

func NewRuntimeError(kind Kind, pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Pos: pos, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewThrow wraps a script-level `throw expr;` payload so it can travel
// through the same error channel as native runtime errors. display is
// the thrown value's rendered form, used only if it escapes uncaught.
func NewThrow(pos lexer.Position, payload interface{}, display string) *RuntimeError {
	return &RuntimeError{Pos: pos, Kind: KindThrow, Message: display, Payload: payload}
}

// Error renders "(row, column) (Kind) message", the user-visible form
// spec'd for every runtime error that escapes to the host.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("(%d, %d) (%s) %s", e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
}

func TypeError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(KindType, pos, format, args...)
}

func ArgumentError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(KindArgument, pos, format, args...)
}

func IndexError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(KindIndex, pos, format, args...)
}

func IOError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(KindIO, pos, format, args...)
}

func OSError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(KindOS, pos, format, args...)
}

func EOFError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(KindEOF, pos, format, args...)
}

func Runtime(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(KindRuntime, pos, format, args...)
}
