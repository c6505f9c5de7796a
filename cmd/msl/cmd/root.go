// Package cmd implements the msl command-line tool: an `msl <script>`
// interpreter invocation plus lex/parse debug subcommands, structured
// the way the teacher repo lays out cmd/dwscript/cmd.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	evalExpr string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:     "msl [script]",
	Short:   "msl interpreter",
	Version: Version,
	Long: `msl is an embeddable dynamically-typed scripting language: a
tokenizer, recursive-descent parser and tree-walking evaluator with
lexical scoping, exception-style unwind control flow and a small
dynamic value taxonomy (Null, Number, String, Function, Object, Array,
Type).

Running "msl script.msl" executes the file. Per the preserved CLI
contract, the process exits 1 on success and 0 on any error.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runScript,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Callers translate its error into the
// process exit code; see main.go for the inverted-exit-code contract.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func diagnose(err error) {
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
}
