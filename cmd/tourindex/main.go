// Command tourindex runs the tourism catalog sync and indexing service.
package main

import (
	"fmt"
	"os"

	"github.com/plan4land/tourindex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
