package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atod",
	Short: "atod converts decimal floating-point literals to IEEE 754 binary64.",
	Long: "`atod` is the test and measurement harness for the atod parser.\n\n" +
		"It parses literals given on the command line, and can brute-force the\n" +
		"binary64 space round-tripping every value through its decimal expansion\n" +
		"while recording parse latencies.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
