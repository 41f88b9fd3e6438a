package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "askbench",
		Short:   "askbench — cache-aside QA service and latency benchmark harness",
		Version: version,
	}

	root.AddCommand(
		newServeCmd(),
		newBenchCmd(),
		newRunsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
