package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/grammar"
	"github.com/nihei9/chomsky/spec"
)

// readGrammar reads a grammar file. When path is empty, it reads the grammar from stdin.
func readGrammar(path string) (g *grammar.Grammar, retErr error) {
	defer func() {
		if retErr == nil {
			return
		}
		srcName := path
		if path == "" {
			srcName = "stdin"
		}
		var specErrs verr.SpecErrors
		if errors.As(retErr, &specErrs) {
			for _, err := range specErrs {
				err.FilePath = path
				err.SourceName = srcName
			}
			return
		}
		var specErr *verr.SpecError
		if errors.As(retErr, &specErr) {
			specErr.FilePath = path
			specErr.SourceName = srcName
		}
	}()

	var src io.Reader
	if path == "" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	ast, err := spec.Parse(src)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err = b.Build()
	if err != nil {
		return nil, err
	}
	logger.Printf("read a grammar: %v variables, %v terminals, %v rules", len(g.Variables()), len(g.Terminals()), len(g.Rules()))

	return g, nil
}

// openOutput returns stdout when path is empty.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeGrammar(g *grammar.Grammar, path string) (retErr error) {
	w, closeOutput, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("Cannot open an output file: %w", err)
	}
	defer func() {
		err := closeOutput()
		if retErr == nil {
			retErr = err
		}
	}()

	return grammar.Format(w, g)
}
