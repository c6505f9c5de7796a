package main

import (
	"os"

	"github.com/cwbudde/go-dws/cmd/msl/cmd"
)

// Exit code contract is inverted from convention, preserved from the
// source to keep behavioral parity: 1 on success, 0 on any error.
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(0)
	}
	os.Exit(1)
}
