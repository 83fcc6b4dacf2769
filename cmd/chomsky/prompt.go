package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/nihei9/chomsky/cyk"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "prompt <grammar file path>",
		Short:   "Test strings against a grammar interactively",
		Example: `  chomsky prompt grammar.cfg`,
		Args:    cobra.ExactArgs(1),
		RunE:    runPrompt,
	}
	rootCmd.AddCommand(cmd)
}

const promptExit = "exit"

func runPrompt(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	r := cyk.NewRecognizer(g)

	accept := promptui.Styler(promptui.FGGreen)
	reject := promptui.Styler(promptui.FGRed)
	for {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("String (type '%v' to quit)", promptExit),
		}
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) == promptExit {
			return nil
		}

		accepted, err := r.Accepts(input)
		if err != nil {
			return err
		}
		if accepted {
			fmt.Fprintln(os.Stdout, accept("accept"))
		} else {
			fmt.Fprintln(os.Stdout, reject("reject"))
		}
	}
}
