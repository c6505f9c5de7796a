package msl

import (
	"bytes"
	"testing"

	"github.com/cwbudde/go-dws/internal/value"
)

func TestExecuteReturnsValue(t *testing.T) {
	e := New()
	v, err := e.Execute(`return 1 + 2;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := v.(value.Number)
	if !ok || n.Val != 3 {
		t.Errorf("expected 3, got %v", v)
	}
}

func TestExecuteWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithOutput(&buf))
	if _, err := e.Execute(`print("hi");`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "hi" {
		t.Errorf("expected output %q, got %q", "hi", buf.String())
	}
}

func TestSetGlobalGetGlobal(t *testing.T) {
	e := New()
	e.SetGlobal("answer", value.Int(42))
	v, ok := e.GetGlobal("answer")
	if !ok {
		t.Fatalf("expected 'answer' to be bound")
	}
	if v.(value.Number).Val != 42 {
		t.Errorf("expected 42, got %v", v)
	}

	v, err := e.Execute(`return answer;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(value.Number).Val != 42 {
		t.Errorf("expected script to read the host-set global, got %v", v)
	}
}

func TestExecuteParseErrorSurfaces(t *testing.T) {
	_, err := New().Execute(`x = ;`)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestGetTypeName(t *testing.T) {
	e := New()
	if got := e.GetTypeName(value.KindArray); got != "Array" {
		t.Errorf("expected Array, got %q", got)
	}
}
