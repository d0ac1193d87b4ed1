package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/kiyot/atod"
)

var parseCmd = &cobra.Command{
	Use:   "parse <literal>...",
	Short: "Parse decimal floating-point literals and print value and bit pattern.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  commandParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func commandParse(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		f, err := atod.Parse(arg)
		if err != nil {
			return fmt.Errorf("parsing %q failed: %w", arg, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g (0x%016x)\n", f, math.Float64bits(f))
	}
	return nil
}
