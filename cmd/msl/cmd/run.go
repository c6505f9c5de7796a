package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-dws/pkg/msl"
)

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		diagnose(err)
		return err
	}

	engine := msl.New(msl.WithConfigFile(filename))

	if verbose {
		fmt.Fprintf(os.Stderr, "running %s (%d bytes)\n", filename, len(input))
	}

	if _, err := engine.Execute(input, filename); err != nil {
		diagnose(err)
		return err
	}
	return nil
}

// readSource resolves the script text from either -e inline code or a
// single file argument, matching spec §6's "one positional argument".
func readSource(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
