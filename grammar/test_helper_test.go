package grammar

import (
	"testing"

	"github.com/nihei9/chomsky/grammar/symbol"
)

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbol.SymbolTableReader) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

func newTestProductionGenerator(t *testing.T, genSym testSymbolGenerator) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, genSym(text))
		}
		prod, err := newProduction(genSym(lhs), rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}

		return prod
	}
}

type testGrammar struct {
	variables []string
	terminals []string
	rules     Rules
	start     string
	null      string
}

func newTestGrammar(t *testing.T, src *testGrammar) *Grammar {
	t.Helper()

	null := src.null
	if null == "" {
		null = "λ"
	}
	g, err := New(src.variables, src.terminals, src.rules, src.start, null)
	if err != nil {
		t.Fatalf("failed to create a grammar: %v", err)
	}
	return g
}

// anbn generates a^n b^n for n >= 0.
func anbn(t *testing.T) *Grammar {
	t.Helper()

	return newTestGrammar(t, &testGrammar{
		variables: []string{"S"},
		terminals: []string{"a", "b", "λ"},
		rules: TextRuleMap{
			"S": {"aSb", "λ"},
		},
		start: "S",
	})
}

func testRules(t *testing.T, g *Grammar, expected []string) {
	t.Helper()

	actual := StringifyRules(g)
	if len(actual) != len(expected) {
		t.Fatalf("unexpected rules;\nwant: %q\ngot:  %q", expected, actual)
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Fatalf("unexpected rules;\nwant: %q\ngot:  %q", expected, actual)
		}
	}
}
