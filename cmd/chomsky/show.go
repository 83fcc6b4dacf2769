package main

import (
	"os"

	"github.com/nihei9/chomsky/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show [<grammar file path>]",
		Short:   "Print the vocabulary and the rules of a grammar",
		Example: `  chomsky show grammar.cfg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	g, err := readGrammar(path)
	if err != nil {
		return err
	}

	grammar.Describe(os.Stdout, g)

	return nil
}
