package builtins

import (
	"bufio"
	"io"
	"os"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// stdinReader buffers os.Stdin once so repeated getChar() calls on
// $stdin advance through the stream instead of re-reading from the top.
var stdinReader = bufio.NewReader(os.Stdin)

// stdioHandle builds the `$stdin`/`$stdout`/`$stderr` objects: each
// carries `write(x…)`, `getChar()` and `putChar(n)` methods, per spec
// §6. Exactly one of r/w is non-nil, matching which direction the
// handle supports; calling the wrong method raises an IOError.
func stdioHandle(r io.Reader, w io.Writer) *value.Object {
	h := value.NewObject()
	h.Set("write", &value.HostFunction{Name: "write", Fn: stdioWrite(w)})
	h.Set("getChar", &value.HostFunction{Name: "getChar", Fn: stdioGetChar(r)})
	h.Set("putChar", &value.HostFunction{Name: "putChar", Fn: stdioPutChar(w)})
	return h
}

func stdioWrite(w io.Writer) value.HostFuncImpl {
	return func(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
		if w == nil {
			return nil, errors.IOError(pos, "write is not supported on this handle")
		}
		for _, a := range args {
			if _, err := io.WriteString(w, a.Display()); err != nil {
				return nil, errors.IOError(pos, "write: %s", err)
			}
		}
		return value.Null{}, nil
	}
}

func stdioGetChar(r io.Reader) value.HostFuncImpl {
	return func(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
		if r == nil {
			return nil, errors.IOError(pos, "getChar is not supported on this handle")
		}
		reader := stdinReader
		if r != os.Stdin {
			reader = bufio.NewReader(r)
		}
		b, err := reader.ReadByte()
		if err == io.EOF {
			return nil, errors.EOFError(pos, "getChar: end of file")
		}
		if err != nil {
			return nil, errors.IOError(pos, "getChar: %s", err)
		}
		return value.Int(int64(b)), nil
	}
}

func stdioPutChar(w io.Writer) value.HostFuncImpl {
	return func(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
		if w == nil {
			return nil, errors.IOError(pos, "putChar is not supported on this handle")
		}
		l := newArgLoader("putChar", args)
		n, err := l.number(pos)
		if err != nil {
			return nil, err
		}
		if err := l.end(pos); err != nil {
			return nil, err
		}
		if _, writeErr := w.Write([]byte{byte(int64(n.Val))}); writeErr != nil {
			return nil, errors.IOError(pos, "putChar: %s", writeErr)
		}
		return value.Null{}, nil
	}
}
