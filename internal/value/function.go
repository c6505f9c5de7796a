package value

import (
	"fmt"

	"github.com/cwbudde/go-dws/internal/ast"
)

// Function is a script-defined callable: a reference to its AST
// definition. It is valid only while the owning Script AST is alive.
type Function struct {
	Def *ast.FunctionLiteral
}

func (f *Function) Kind() Kind   { return KindFunction }
func (f *Function) Truthy() bool { return true }
func (f *Function) Repr() string {
	name := f.Def.Name
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("<function %s>", name)
}
func (f *Function) Display() string { return f.Repr() }
