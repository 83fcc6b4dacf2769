package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags = struct {
	verbose *bool
}{}

// logger reports pipeline stages. It discards its output unless --verbose is given.
var logger = log.New(io.Discard, "chomsky: ", 0)

var rootCmd = &cobra.Command{
	Use:   "chomsky",
	Short: "Normalize context-free grammars and test strings for membership",
	Long: `chomsky provides the following features:
- Simplifies a context-free grammar (removes null rules, unit rules, and useless symbols).
- Converts a grammar into Chomsky normal form.
- Decides whether a grammar generates strings using the CYK algorithm.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if *rootFlags.verbose {
			logger.SetOutput(os.Stderr)
		}
	},
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "report each stage of the pipeline to stderr")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
