package symbol

import (
	"fmt"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

// TokenizeError means that an input contains text that no symbol of a vocabulary matches.
type TokenizeError struct {
	Input  string
	Lexeme string
	Col    int
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("cannot tokenize '%v': no symbol matches '%v' at column %v", e.Input, e.Lexeme, e.Col)
}

// Tokenizer splits undelimited text into symbols. It runs a lexer whose lexical entries are the symbol names,
// so each token is one symbol. The non-overlap constraint on names guarantees that at most one name can start
// at a given position; the tokenization is therefore unique. A Tokenizer is safe for concurrent use.
type Tokenizer struct {
	spec     *mlspec.CompiledLexSpec
	kind2Sym []Symbol
}

func NewTokenizer(symTab *SymbolTableReader, syms []Symbol) (*Tokenizer, error) {
	if len(syms) == 0 {
		return nil, fmt.Errorf("a tokenizer needs at least one symbol")
	}

	entries := make([]*mlspec.LexEntry, 0, len(syms))
	kindName2Sym := map[mlspec.LexKindName]Symbol{}
	for i, sym := range syms {
		text, ok := symTab.ToText(sym)
		if !ok {
			return nil, fmt.Errorf("symbol '%v' was not found in a symbol table", sym)
		}
		kind := mlspec.LexKindName(fmt.Sprintf("x_%v", i+1))
		entries = append(entries, &mlspec.LexEntry{
			Kind:    kind,
			Pattern: mlspec.LexPattern(mlspec.EscapePattern(text)),
		})
		kindName2Sym[kind] = sym
	}

	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    "vocabulary",
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("cannot compile a vocabulary: %v", b.String())
		}
		return nil, err
	}

	kind2Sym := make([]Symbol, len(clspec.KindNames))
	for i, k := range clspec.KindNames {
		if k == mlspec.LexKindNameNil {
			kind2Sym[i] = SymbolNil
			continue
		}
		sym, ok := kindName2Sym[k]
		if !ok {
			return nil, fmt.Errorf("lexical kind '%v' has no symbol", k)
		}
		kind2Sym[i] = sym
	}

	return &Tokenizer{
		spec:     clspec,
		kind2Sym: kind2Sym,
	}, nil
}

func (t *Tokenizer) Tokenize(text string) ([]Symbol, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(t.spec), strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	var syms []Symbol
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			break
		}
		if tok.Invalid {
			return nil, &TokenizeError{
				Input:  text,
				Lexeme: string(tok.Lexeme),
				Col:    tok.Col + 1,
			}
		}
		syms = append(syms, t.kind2Sym[tok.KindID])
	}
	return syms, nil
}

func writeCompileError(w *strings.Builder, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
