package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-dws/internal/lexer"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a script and print the resulting tokens",
	Long: `Tokenize (lex) a script and print the resulting tokens. Useful for
debugging the lexer; has no effect on script execution.

Examples:
  msl lex script.msl
  msl lex -e "x = 1 + 2;" --show-type --show-pos`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          lexScript,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
	var input string
	if lexEvalExpr != "" {
		input = lexEvalExpr
	} else if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			diagnose(err)
			return err
		}
		input = string(data)
	} else {
		err := fmt.Errorf("either provide a file path or use -e flag for inline code")
		diagnose(err)
		return err
	}

	l := lexer.New(input)
	for {
		tok, lexErr := l.NextToken()
		if lexErr != nil {
			diagnose(lexErr)
			return lexErr
		}
		printToken(tok)
		if tok.Type == lexer.END {
			break
		}
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-8s]", tok.Type)
	}
	if tok.Literal == "" {
		output += fmt.Sprintf(" %s", tok.Type)
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}
