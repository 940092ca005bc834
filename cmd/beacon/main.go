// Command beacon explores BEACON run data from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newCLIContext()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
