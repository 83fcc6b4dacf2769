package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nihei9/chomsky/cyk"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var acceptsFlags = struct {
	table *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "accepts <grammar file path> [<string>...]",
		Short: "Test whether a grammar generates strings",
		Long: `accepts prints accept or reject for each string.
When no string is given, accepts reads one string per line from stdin.`,
		Example: `  chomsky accepts grammar.cfg aabb aab
  cat strings.txt | chomsky accepts grammar.cfg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAccepts,
	}
	acceptsFlags.table = cmd.Flags().BoolP("table", "t", false, "print the CYK table of each string")
	rootCmd.AddCommand(cmd)
}

func runAccepts(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	inputs := args[1:]
	if len(inputs) == 0 {
		inputs, err = readLines(os.Stdin)
		if err != nil {
			return fmt.Errorf("Cannot read strings: %w", err)
		}
	}

	r := cyk.NewRecognizer(g)
	cnf, err := r.CNF()
	if err != nil {
		return err
	}
	logger.Printf("converted into Chomsky normal form: %v variables, %v rules", len(cnf.Variables()), len(cnf.Rules()))

	if *acceptsFlags.table {
		for _, input := range inputs {
			t, err := r.Table(input)
			if err != nil {
				return err
			}
			err = writeTable(os.Stdout, t)
			if err != nil {
				return fmt.Errorf("Cannot write a table: %w", err)
			}
		}
		return nil
	}

	results, err := r.AcceptsAll(inputs)
	if err != nil {
		return err
	}
	for i, accepted := range results {
		fmt.Fprintf(os.Stdout, "%v\t%v\n", verdict(accepted), inputs[i])
	}

	return nil
}

func verdict(accepted bool) string {
	if accepted {
		return "accept"
	}
	return "reject"
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// writeTable prints the filled triangle of a CYK table. Row i lists the variables deriving the tokens
// i through j in column j.
func writeTable(w io.Writer, t *cyk.Table) error {
	fmt.Fprintf(w, "%v\t%v\n", verdict(t.Accepted), t.Input)
	if len(t.Tokens) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	header := []string{""}
	for j, tok := range t.Tokens {
		header = append(header, strconv.Itoa(j)+": "+tok)
	}
	table.Header(header)
	for i := range t.Tokens {
		row := []string{strconv.Itoa(i)}
		for j := range t.Tokens {
			row = append(row, formatCell(t.Cell(i, j), i > j))
		}
		err := table.Append(row)
		if err != nil {
			return err
		}
	}
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render a table: %w", err)
	}
	return nil
}

func formatCell(vars []string, outside bool) string {
	if outside {
		return ""
	}
	if len(vars) == 0 {
		return "∅"
	}
	return "{" + strings.Join(vars, ", ") + "}"
}
