// Package msl is the embeddable host API: create an Engine, feed it
// source text, read and write its global scope. It is a thin façade
// over internal/eval the way the teacher's pkg/dwscript wraps
// internal/interp for FFI callers.
package msl

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/go-dws/internal/builtins"
	"github.com/cwbudde/go-dws/internal/config"
	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/eval"
	"github.com/cwbudde/go-dws/internal/parser"
	"github.com/cwbudde/go-dws/internal/value"
)

// Engine is a script interpreter instance: a fresh global scope
// pre-populated with built-ins, per spec §6's "Create interpreter" step.
type Engine struct {
	eval *eval.Evaluator
}

// Option configures an Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	out       io.Writer
	opts      builtins.Options
	loadPaths []string
}

// WithOutput redirects the default sink for print/println/printf from
// os.Stdout to w.
func WithOutput(w io.Writer) Option {
	return func(c *engineConfig) { c.out = w }
}

// WithStdlib overrides which optional namespaces (math/File/JSON) get
// installed; the default is all three.
func WithStdlib(opts builtins.Options) Option {
	return func(c *engineConfig) { c.opts = opts }
}

// WithLoadPaths sets the search directories load() consults when
// a requested path does not exist relative to the current directory.
func WithLoadPaths(paths ...string) Option {
	return func(c *engineConfig) { c.loadPaths = paths }
}

// WithConfigFile loads a .mslrc.yaml next to scriptPath and applies its
// stdlib toggles and load paths, mirroring the CLI's automatic lookup.
func WithConfigFile(scriptPath string) Option {
	return func(c *engineConfig) {
		cfg, err := config.Load(scriptPath)
		if err != nil {
			return
		}
		c.opts = builtins.Options{Math: cfg.MathEnabled(), File: cfg.FileEnabled(), JSON: cfg.JSONEnabled()}
		c.loadPaths = cfg.LoadPaths
	}
}

// New creates an Engine with a fresh global scope pre-populated with
// built-ins, applying opts in order.
func New(opts ...Option) *Engine {
	cfg := engineConfig{out: os.Stdout, opts: builtins.DefaultOptions()}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := eval.New(cfg.opts)
	e.Out = cfg.out
	e.LoadPaths = cfg.loadPaths
	return &Engine{eval: e}
}

// SetOutput redirects the print sink after construction.
func (en *Engine) SetOutput(w io.Writer) { en.eval.Out = w }

// Execute runs a complete script and returns its value, per spec §6's
// `execute(source_text [, filename]) -> Value`. filename defaults to
// "<script>" and is used only in diagnostics; it does not affect
// resolution of load()/eval() paths (use WithLoadPaths for that).
func (en *Engine) Execute(source string, filename ...string) (value.Value, error) {
	file := "<script>"
	if len(filename) > 0 && filename[0] != "" {
		file = filename[0]
	}

	script, perrs := parser.Parse(source, file)
	if len(perrs) != 0 {
		return nil, fmt.Errorf("%s", errors.FormatErrors(perrs, false))
	}

	result, runErr := en.eval.Evaluate(script)
	if runErr != nil {
		return result, runErr
	}
	return result, nil
}

// SetGlobal binds name in the engine's global scope.
func (en *Engine) SetGlobal(name string, v value.Value) {
	en.eval.Globals.Set(name, v)
}

// GetGlobal reads name from the engine's global scope.
func (en *Engine) GetGlobal(name string) (value.Value, bool) {
	return en.eval.Globals.Get(name)
}

// GetTypeName returns the spec's type-name token for a Kind, e.g.
// "Number", "Array"; empty for kinds with no surface type name.
func (en *Engine) GetTypeName(k value.Kind) string {
	return value.TypeName(k)
}

// Print writes text to the engine's configured output sink, matching
// spec §6's `print(text)` host entry point.
func (en *Engine) Print(text string) {
	en.eval.Print(text)
}
