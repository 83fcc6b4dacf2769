package cyk

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/nihei9/chomsky/grammar"
	"github.com/stretchr/testify/require"
)

func newGrammar(t *testing.T, vars, terms []string, rules grammar.TextRuleMap, start string) *grammar.Grammar {
	t.Helper()

	g, err := grammar.New(vars, terms, rules, start, "λ")
	if err != nil {
		t.Fatalf("failed to create a grammar: %v", err)
	}
	return g
}

func anbn(t *testing.T) *grammar.Grammar {
	t.Helper()

	return newGrammar(t, []string{"S"}, []string{"a", "b", "λ"}, grammar.TextRuleMap{
		"S": {"aSb", "λ"},
	}, "S")
}

func TestRecognizer_Accepts(t *testing.T) {
	type query struct {
		input  string
		accept bool
	}

	tests := []struct {
		caption string
		g       func(t *testing.T) *grammar.Grammar
		queries []query
	}{
		{
			caption: "a^n b^n",
			g:       anbn,
			queries: []query{
				{input: "aabb", accept: true},
				{input: "ab", accept: true},
				{input: "aab", accept: false},
				{input: "ba", accept: false},
				{input: "", accept: true},
				{input: "  aabb\n", accept: true},
				{input: "λ", accept: false},
				{input: "aλb", accept: false},
				{input: "abc", accept: false},
				{input: "a b", accept: false},
			},
		},
		{
			caption: "a grammar already in CNF",
			g: func(t *testing.T) *grammar.Grammar {
				return newGrammar(t, []string{"S", "A", "B"}, []string{"a", "b", "λ"}, grammar.TextRuleMap{
					"S": {"AB"},
					"A": {"a"},
					"B": {"b"},
				}, "S")
			},
			queries: []query{
				{input: "ab", accept: true},
				{input: "ba", accept: false},
				{input: "a", accept: false},
				{input: "", accept: false},
			},
		},
		{
			caption: "terminals longer than one character",
			g: func(t *testing.T) *grammar.Grammar {
				return newGrammar(t, []string{"E", "T", "F"}, []string{"+", "*", "(", ")", "id", "λ"}, grammar.TextRuleMap{
					"E": {"E+T", "T"},
					"T": {"T*F", "F"},
					"F": {"(E)", "id"},
				}, "E")
			},
			queries: []query{
				{input: "id", accept: true},
				{input: "id+id*id", accept: true},
				{input: "(id+id)*id", accept: true},
				{input: "id+", accept: false},
				{input: "i", accept: false},
				{input: "", accept: false},
			},
		},
		{
			caption: "a grammar generating nothing",
			g: func(t *testing.T) *grammar.Grammar {
				return newGrammar(t, []string{"S"}, []string{"a", "λ"}, grammar.TextRuleMap{
					"S": {"aS"},
				}, "S")
			},
			queries: []query{
				{input: "a", accept: false},
				{input: "aa", accept: false},
				{input: "", accept: false},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			r := NewRecognizer(tt.g(t))
			for _, q := range tt.queries {
				accepted, err := r.Accepts(q.input)
				require.NoError(t, err)
				require.Equal(t, q.accept, accepted, "input: %q", q.input)
			}
		})
	}
}

func TestRecognizer_AcceptsSymbols(t *testing.T) {
	r := NewRecognizer(anbn(t))

	accepted, err := r.AcceptsSymbols([]string{"a", "a", "b", "b"})
	require.NoError(t, err)
	require.True(t, accepted)

	accepted, err = r.AcceptsSymbols([]string{"a", "λ", "b"})
	require.NoError(t, err)
	require.False(t, accepted)

	accepted, err = r.AcceptsSymbols([]string{"a", "x"})
	require.NoError(t, err)
	require.False(t, accepted)

	accepted, err = r.AcceptsSymbols(nil)
	require.NoError(t, err)
	require.True(t, accepted)
}

type language struct {
	caption  string
	vars     []string
	terms    []string
	rules    grammar.TextRuleMap
	start    string
	alphabet []string
	maxLen   int
	member   func(s string) bool
}

var languages = []*language{
	{
		caption:  "a^n b^n",
		vars:     []string{"S"},
		terms:    []string{"a", "b", "λ"},
		rules:    grammar.TextRuleMap{"S": {"aSb", "λ"}},
		start:    "S",
		alphabet: []string{"a", "b"},
		maxLen:   8,
		member: func(s string) bool {
			n := len(s) / 2
			return len(s)%2 == 0 && s == strings.Repeat("a", n)+strings.Repeat("b", n)
		},
	},
	{
		caption:  "balanced parentheses",
		vars:     []string{"S"},
		terms:    []string{"(", ")", "λ"},
		rules:    grammar.TextRuleMap{"S": {"(S)S", "λ"}},
		start:    "S",
		alphabet: []string{"(", ")"},
		maxLen:   8,
		member: func(s string) bool {
			depth := 0
			for _, c := range s {
				if c == '(' {
					depth++
				} else {
					depth--
				}
				if depth < 0 {
					return false
				}
			}
			return depth == 0
		},
	},
	{
		caption:  "palindromes",
		vars:     []string{"S"},
		terms:    []string{"a", "b", "λ"},
		rules:    grammar.TextRuleMap{"S": {"aSa", "bSb", "a", "b", "λ"}},
		start:    "S",
		alphabet: []string{"a", "b"},
		maxLen:   8,
		member: func(s string) bool {
			for i := 0; i < len(s)/2; i++ {
				if s[i] != s[len(s)-1-i] {
					return false
				}
			}
			return true
		},
	},
	{
		caption:  "as many a's as b's",
		vars:     []string{"S"},
		terms:    []string{"a", "b", "λ"},
		rules:    grammar.TextRuleMap{"S": {"aSbS", "bSaS", "λ"}},
		start:    "S",
		alphabet: []string{"a", "b"},
		maxLen:   8,
		member: func(s string) bool {
			return strings.Count(s, "a") == strings.Count(s, "b")
		},
	},
	{
		caption: "unit rules and useless symbols",
		vars:    []string{"S", "A", "B", "C", "D"},
		terms:   []string{"b", "c", "d", "λ"},
		rules: grammar.TextRuleMap{
			"S": {"A", "Bc"},
			"A": {"B"},
			"B": {"b", "D"},
			"C": {"c"},
			"D": {"Dd"},
		},
		start:    "S",
		alphabet: []string{"b", "c", "d"},
		maxLen:   5,
		member: func(s string) bool {
			return s == "b" || s == "bc"
		},
	},
}

func allStrings(alphabet []string, maxLen int) []string {
	strs := []string{""}
	prev := []string{""}
	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, p := range prev {
			for _, a := range alphabet {
				next = append(next, p+a)
			}
		}
		strs = append(strs, next...)
		prev = next
	}
	return strs
}

func TestRecognizer_LanguagePreservation(t *testing.T) {
	for _, lang := range languages {
		t.Run(lang.caption, func(t *testing.T) {
			g := newGrammar(t, lang.vars, lang.terms, lang.rules, lang.start)
			cnf, err := grammar.ToCNF(g)
			require.NoError(t, err)
			recognizers := map[string]*Recognizer{
				"original":   NewRecognizer(g),
				"simplified": NewRecognizer(grammar.Simplify(g)),
				"cnf":        NewRecognizer(cnf),
			}
			for _, s := range allStrings(lang.alphabet, lang.maxLen) {
				for name, r := range recognizers {
					accepted, err := r.Accepts(s)
					require.NoError(t, err)
					require.Equal(t, lang.member(s), accepted, "%v grammar, input: %q", name, s)
				}
			}
		})
	}
}

func TestRecognizer_AcceptsAll(t *testing.T) {
	lang := languages[3]
	g := newGrammar(t, lang.vars, lang.terms, lang.rules, lang.start)
	inputs := allStrings(lang.alphabet, lang.maxLen)

	results, err := NewRecognizer(g).AcceptsAll(inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))
	for i, s := range inputs {
		require.Equal(t, lang.member(s), results[i], "input: %q", s)
	}

	results, err = NewRecognizer(g).AcceptsAll(nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestRecognizer_ConcurrentQueries(t *testing.T) {
	r := NewRecognizer(anbn(t))
	inputs := []string{"ab", "aabb", "aab", "", "ba", "aaabbb"}
	expected := []bool{true, true, false, true, false, true}

	var wg sync.WaitGroup
	errs := make(chan error, 8*len(inputs))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, input := range inputs {
				accepted, err := r.Accepts(input)
				if err != nil {
					errs <- err
					continue
				}
				if accepted != expected[i] {
					errs <- fmt.Errorf("unexpected result; input: %q, want: %v, got: %v", input, expected[i], accepted)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRecognizer_Table(t *testing.T) {
	r := NewRecognizer(anbn(t))

	table, err := r.Table("aabb")
	require.NoError(t, err)
	require.True(t, table.Accepted)
	require.Equal(t, []string{"a", "a", "b", "b"}, table.Tokens)
	require.Equal(t, []string{"A1"}, table.Cell(0, 0))
	require.Equal(t, []string{"A2"}, table.Cell(3, 3))
	require.Equal(t, []string{"S"}, table.Cell(1, 2))
	require.Equal(t, []string{"A3"}, table.Cell(1, 3))
	require.Equal(t, []string{"S"}, table.Cell(0, 3))
	require.Empty(t, table.Cell(0, 1))
	require.Nil(t, table.Cell(2, 1))

	table, err = r.Table("")
	require.NoError(t, err)
	require.True(t, table.Accepted)
	require.Empty(t, table.Tokens)

	table, err = r.Table("abc")
	require.NoError(t, err)
	require.False(t, table.Accepted)
	require.Empty(t, table.Tokens)
}

func TestAccepts(t *testing.T) {
	accepted, err := Accepts(anbn(t), "aaabbb")
	require.NoError(t, err)
	require.True(t, accepted)
}

func TestRecognizer_CNF(t *testing.T) {
	g := anbn(t)
	r := NewRecognizer(g)
	require.Same(t, g, r.Grammar())

	cnf1, err := r.CNF()
	require.NoError(t, err)
	cnf2, err := r.CNF()
	require.NoError(t, err)
	require.Same(t, cnf1, cnf2)
	require.True(t, grammar.IsCNF(cnf1))
}

func TestBitset(t *testing.T) {
	s := newBitset(130)
	require.True(t, s.isEmpty())
	s.add(0)
	s.add(64)
	s.add(129)
	require.False(t, s.isEmpty())
	require.True(t, s.contains(64))
	require.False(t, s.contains(63))
	require.Equal(t, []int{0, 64, 129}, s.members())
}
