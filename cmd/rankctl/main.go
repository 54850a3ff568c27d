// Command rankctl is a thin CLI wrapper around the ranking pipeline:
// seed a demo Badger store, run one-off searches against it, or serve
// the POST /search endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "rankctl",
		Short: "fuzzyrank command-line control tool",
		Long:  "rankctl drives the fuzzy, synonym-aware, phonetic-tolerant text ranking engine: seed a demo document store, run one-off searches, or serve the HTTP API.",
	}

	root.AddCommand(newSeedCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
