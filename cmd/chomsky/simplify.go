package main

import (
	"fmt"

	"github.com/nihei9/chomsky/grammar"
	"github.com/spf13/cobra"
)

var simplifyFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "simplify [<grammar file path>]",
		Short:   "Remove null rules, unit rules, and useless symbols from a grammar",
		Example: `  chomsky simplify grammar.cfg -o simplified.cfg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runSimplify,
	}
	simplifyFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runSimplify(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	g, err := readGrammar(path)
	if err != nil {
		return err
	}

	g = grammar.RemoveNullRules(g)
	logger.Printf("removed null rules: %v rules", len(g.Rules()))
	g = grammar.RemoveUnitRules(g)
	logger.Printf("removed unit rules: %v rules", len(g.Rules()))
	g = grammar.Reduce(g)
	logger.Printf("removed useless symbols: %v variables, %v rules", len(g.Variables()), len(g.Rules()))

	err = writeGrammar(g, *simplifyFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write a grammar: %w", err)
	}

	return nil
}
