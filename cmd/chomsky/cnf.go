package main

import (
	"fmt"

	"github.com/nihei9/chomsky/grammar"
	"github.com/spf13/cobra"
)

var cnfFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "cnf [<grammar file path>]",
		Short:   "Convert a grammar into Chomsky normal form",
		Example: `  chomsky cnf grammar.cfg -o grammar-cnf.cfg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCNF,
	}
	cnfFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCNF(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	g, err := readGrammar(path)
	if err != nil {
		return err
	}

	cnf, err := grammar.ToCNF(g)
	if err != nil {
		return fmt.Errorf("Cannot convert the grammar into Chomsky normal form: %w", err)
	}
	logger.Printf("converted into Chomsky normal form: %v variables, %v rules", len(cnf.Variables()), len(cnf.Rules()))

	err = writeGrammar(cnf, *cnfFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write a grammar: %w", err)
	}

	return nil
}
