package builtins

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// formatDirectives implements the printf/sprintf format language of
// spec §6: %%, %s, %c, %d, %f, %g, %v, %p, and %(N) to select the N-th
// argument (0-based) by index instead of consuming the next one.
func formatDirectives(pos lexer.Position, format string, args []value.Value) (string, *errors.RuntimeError) {
	var sb strings.Builder
	next := 0
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '%' {
			sb.WriteRune(c)
			continue
		}
		i++
		if i >= len(runes) {
			return "", errors.ArgumentError(pos, "format string ends with a bare %%")
		}
		switch runes[i] {
		case '%':
			sb.WriteByte('%')
			continue
		case '(':
			j := i + 1
			for j < len(runes) && runes[j] != ')' {
				j++
			}
			if j >= len(runes) {
				return "", errors.ArgumentError(pos, "unterminated %%(N) directive")
			}
			n, convErr := strconv.Atoi(string(runes[i+1 : j]))
			if convErr != nil {
				return "", errors.ArgumentError(pos, "%%(N) directive requires an integer index")
			}
			if n < 0 || n >= len(args) {
				return "", errors.ArgumentError(pos, "%%(N) index %d out of range (%d arguments)", n, len(args))
			}
			sb.WriteString(args[n].Display())
			i = j
			continue
		}

		if next >= len(args) {
			return "", errors.ArgumentError(pos, "format string requires more arguments than the %d provided", len(args))
		}
		arg := args[next]
		next++
		switch runes[i] {
		case 's':
			sb.WriteString(arg.Display())
		case 'c':
			n, ok := arg.(value.Number)
			if !ok {
				return "", errors.ArgumentError(pos, "%%c requires a Number argument, got %s", arg.Kind())
			}
			sb.WriteRune(rune(int64(n.Val)))
		case 'd':
			n, ok := arg.(value.Number)
			if !ok {
				return "", errors.ArgumentError(pos, "%%d requires a Number argument, got %s", arg.Kind())
			}
			sb.WriteString(strconv.FormatInt(int64(n.Val), 10))
		case 'f':
			n, ok := arg.(value.Number)
			if !ok {
				return "", errors.ArgumentError(pos, "%%f requires a Number argument, got %s", arg.Kind())
			}
			sb.WriteString(strconv.FormatFloat(n.Val, 'f', -1, 64))
		case 'g':
			n, ok := arg.(value.Number)
			if !ok {
				return "", errors.ArgumentError(pos, "%%g requires a Number argument, got %s", arg.Kind())
			}
			sb.WriteString(strconv.FormatFloat(n.Val, 'g', -1, 64))
		case 'v':
			sb.WriteString(arg.Display())
		case 'p':
			sb.WriteString(arg.Repr())
		default:
			return "", errors.ArgumentError(pos, "unknown format directive %%%c", runes[i])
		}
	}
	return sb.String(), nil
}
