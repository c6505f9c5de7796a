package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-dws/internal/lexer"
)

func TestParsingError_FormatIncludesCaret(t *testing.T) {
	src := "var x = ;\n"
	e := NewParsingError(lexer.Position{Line: 1, Column: 9}, "unexpected ';'", src, "<script>")
	out := e.Format(false)

	if !strings.Contains(out, "var x = ;") {
		t.Errorf("expected source line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected caret in output, got:\n%s", out)
	}
	if !strings.Contains(out, "unexpected ';'") {
		t.Errorf("expected message in output, got:\n%s", out)
	}
}

func TestFormatErrors_MultipleErrorsCounted(t *testing.T) {
	errs := []*ParsingError{
		NewParsingError(lexer.Position{Line: 1, Column: 1}, "first", "", ""),
		NewParsingError(lexer.Position{Line: 2, Column: 1}, "second", "", ""),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected error count in output, got:\n%s", out)
	}
}

func TestRuntimeError_ErrorStringFormat(t *testing.T) {
	e := TypeError(lexer.Position{Line: 3, Column: 7}, "expected number, got %s", "String")
	want := "(3, 7) (TypeError) expected number, got String"
	if e.Error() != want {
		t.Errorf("got %q, want %q", e.Error(), want)
	}
}

func TestRuntimeError_Kinds(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	cases := []struct {
		err  *RuntimeError
		kind Kind
	}{
		{TypeError(pos, "x"), KindType},
		{ArgumentError(pos, "x"), KindArgument},
		{IndexError(pos, "x"), KindIndex},
		{IOError(pos, "x"), KindIO},
		{OSError(pos, "x"), KindOS},
		{EOFError(pos, "x"), KindEOF},
		{Runtime(pos, "x"), KindRuntime},
	}
	for _, c := range cases {
		if c.err.Kind != c.kind {
			t.Errorf("got kind %s, want %s", c.err.Kind, c.kind)
		}
	}
}
