package builtins

import (
	"os"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// Options toggles which optional namespaces Install wires in, sourced
// from internal/config's .mslrc.yaml. The zero value installs none of
// them; DefaultOptions installs all three, and Install uses it when no
// Options are passed.
type Options struct {
	Math bool
	File bool
	JSON bool
}

// DefaultOptions enables every optional namespace.
func DefaultOptions() Options { return Options{Math: true, File: true, JSON: true} }

// Install populates globals with every built-in named in spec §6: the
// free functions, the standard I/O handles, and (per opts) the
// math/File/JSON namespace objects.
func Install(globals *value.Object, opts ...Options) {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	for name, fn := range map[string]value.HostFuncImpl{
		"print":   hostPrint,
		"println": hostPrintln,
		"printf":  hostPrintf,
		"sprintf": hostSprintf,
		"min":     hostMin,
		"max":     hostMax,
		"typeOf":  hostTypeOf,
		"eval":    hostEval,
		"load":    hostLoad,
	} {
		globals.Set(name, &value.HostFunction{Name: name, Fn: fn})
	}

	if opt.Math {
		globals.Set("math", value.NewObjectValue(mathNamespace()))
	}
	if opt.File {
		globals.Set("File", value.NewObjectValue(fileNamespace()))
	}
	if opt.JSON {
		globals.Set("JSON", value.NewObjectValue(jsonNamespace()))
	}
	globals.Set("$stdin", value.NewObjectValue(stdioHandle(os.Stdin, nil)))
	globals.Set("$stdout", value.NewObjectValue(stdioHandle(nil, os.Stdout)))
	globals.Set("$stderr", value.NewObjectValue(stdioHandle(nil, os.Stderr)))
}

// displayForPrint renders v the way `print` writes it: a trailing
// newline follows every non-String value (Number, Null, Function,
// Object, Array, Type, ...) so a bare `print(a, b)` of two numbers
// lands each on its own line; String arguments are written as-is so a
// caller can still build one line out of several pieces (as in
// `print(k, "=", v, "\n")`).
func displayForPrint(v value.Value) string {
	if _, isString := v.(value.String); isString {
		return v.Display()
	}
	return v.Display() + "\n"
}

func hostPrint(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	for _, a := range args {
		ctx.Print(displayForPrint(a))
	}
	return value.Null{}, nil
}

func hostPrintln(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	for _, a := range args {
		ctx.Print(displayForPrint(a))
	}
	ctx.Print("\n")
	return value.Null{}, nil
}

func hostPrintf(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) == 0 {
		return nil, errors.ArgumentError(pos, "printf requires a format string argument")
	}
	format, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "printf requires a String format argument")
	}
	s, err := formatDirectives(pos, format.Val, args[1:])
	if err != nil {
		return nil, err
	}
	ctx.Print(s)
	return value.Null{}, nil
}

func hostSprintf(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) == 0 {
		return nil, errors.ArgumentError(pos, "sprintf requires a format string argument")
	}
	format, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "sprintf requires a String format argument")
	}
	s, err := formatDirectives(pos, format.Val, args[1:])
	if err != nil {
		return nil, err
	}
	return value.String{Val: s}, nil
}

// hostMin and hostMax initialize their accumulator from args[0] rather
// than 0.0, per the fix to the source's all-negative-inputs bug.
func hostMin(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	return minMax(pos, args, false)
}

func hostMax(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	return minMax(pos, args, true)
}

func minMax(pos lexer.Position, args []value.Value, wantMax bool) (value.Value, *errors.RuntimeError) {
	if len(args) == 0 {
		return nil, errors.ArgumentError(pos, "min/max require at least 1 argument")
	}
	best, ok := args[0].(value.Number)
	if !ok {
		return nil, errors.ArgumentError(pos, "min/max require Number arguments, got %s", args[0].Kind())
	}
	for _, a := range args[1:] {
		n, ok := a.(value.Number)
		if !ok {
			return nil, errors.ArgumentError(pos, "min/max require Number arguments, got %s", a.Kind())
		}
		if (wantMax && n.Val > best.Val) || (!wantMax && n.Val < best.Val) {
			best = n
		}
	}
	return best, nil
}

func hostTypeOf(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "typeOf expects 1 argument, got %d", len(args))
	}
	return value.TypeValue{Of: args[0].Kind()}, nil
}

// hostEval runs a source string against the caller's evaluator, sharing
// its global scope; `load` additionally reads the source from a file.
func hostEval(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "eval expects 1 argument, got %d", len(args))
	}
	src, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "eval expects a String argument")
	}
	return ctx.EvalSource(pos, src.Val)
}

func hostLoad(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	if len(args) != 1 {
		return nil, errors.ArgumentError(pos, "load expects 1 argument, got %d", len(args))
	}
	path, ok := args[0].(value.String)
	if !ok {
		return nil, errors.ArgumentError(pos, "load expects a String path argument")
	}
	data, readErr := os.ReadFile(ctx.ResolvePath(path.Val))
	if readErr != nil {
		return nil, errors.IOError(pos, "load: %s", readErr)
	}
	return ctx.EvalSource(pos, string(data))
}
