package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/parser"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and print its AST text form",
	Long: `Parse a script and print the text form of its Abstract Syntax Tree.
Useful for debugging the parser; has no effect on script execution.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runParse,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	var input, filename string
	if parseEvalExpr != "" {
		input, filename = parseEvalExpr, "<eval>"
	} else if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			diagnose(err)
			return err
		}
		input, filename = string(data), args[0]
	} else {
		err := fmt.Errorf("either provide a file path or use -e flag for inline code")
		diagnose(err)
		return err
	}

	script, perrs := parser.Parse(input, filename)
	if len(perrs) != 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(perrs, true))
		err := fmt.Errorf("parsing failed with %d error(s)", len(perrs))
		return err
	}

	for _, stmt := range script.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}
