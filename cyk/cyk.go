package cyk

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/nihei9/chomsky/grammar"
	"github.com/nihei9/chomsky/grammar/symbol"
)

type binaryRule struct {
	lhs   int
	left  int
	right int
}

// index is a read-only lookup structure over a CNF grammar. Variables are numbered by their position in
// the sorted variable list.
type index struct {
	cnf       *grammar.Grammar
	vars      []string
	start     int
	termRules map[string]bitset
	binRules  []binaryRule
	tokenizer *grammar.InputTokenizer
}

func newIndex(cnf *grammar.Grammar) (*index, error) {
	vars := cnf.Variables()
	varNum := make(map[string]int, len(vars))
	for i, v := range vars {
		varNum[v] = i
	}

	idx := &index{
		cnf:       cnf,
		vars:      vars,
		start:     varNum[cnf.Start()],
		termRules: map[string]bitset{},
	}
	for _, rule := range cnf.Rules() {
		lhs := varNum[rule.LHS]
		switch len(rule.RHS) {
		case 1:
			set, ok := idx.termRules[rule.RHS[0]]
			if !ok {
				set = newBitset(len(vars))
				idx.termRules[rule.RHS[0]] = set
			}
			set.add(lhs)
		case 2:
			idx.binRules = append(idx.binRules, binaryRule{
				lhs:   lhs,
				left:  varNum[rule.RHS[0]],
				right: varNum[rule.RHS[1]],
			})
		default:
			return nil, fmt.Errorf("a rule is not in Chomsky normal form: %v", rule)
		}
	}

	tokenizer, err := cnf.NewInputTokenizer()
	if err != nil {
		return nil, err
	}
	idx.tokenizer = tokenizer

	return idx, nil
}

// fill runs the CYK algorithm. cells[i][j] holds the variables deriving tokens[i..j].
func (idx *index) fill(tokens []string) [][]bitset {
	n := len(tokens)
	cells := make([][]bitset, n)
	for i := range cells {
		cells[i] = make([]bitset, n)
		for j := i; j < n; j++ {
			cells[i][j] = newBitset(len(idx.vars))
		}
	}

	for i, tok := range tokens {
		set, ok := idx.termRules[tok]
		if !ok {
			continue
		}
		copy(cells[i][i], set)
	}

	for span := 2; span <= n; span++ {
		for i := 0; i <= n-span; i++ {
			j := i + span - 1
			for k := i; k < j; k++ {
				left := cells[i][k]
				right := cells[k+1][j]
				if left.isEmpty() || right.isEmpty() {
					continue
				}
				for _, rule := range idx.binRules {
					if left.contains(rule.left) && right.contains(rule.right) {
						cells[i][j].add(rule.lhs)
					}
				}
			}
		}
	}

	return cells
}

// Recognizer answers membership queries for a grammar. The Chomsky normal form of the grammar is computed on
// the first query and shared by the later ones, so a Recognizer is meant to be created once and queried many
// times. A Recognizer is safe for concurrent use.
type Recognizer struct {
	g *grammar.Grammar

	once sync.Once
	idx  *index
	err  error
}

func NewRecognizer(g *grammar.Grammar) *Recognizer {
	return &Recognizer{
		g: g,
	}
}

func (r *Recognizer) index() (*index, error) {
	r.once.Do(func() {
		cnf, err := grammar.ToCNF(r.g)
		if err != nil {
			r.err = err
			return
		}
		r.idx, r.err = newIndex(cnf)
	})
	return r.idx, r.err
}

// Grammar returns the grammar the recognizer was created with.
func (r *Recognizer) Grammar() *grammar.Grammar {
	return r.g
}

// CNF returns the Chomsky normal form the recognizer runs on.
func (r *Recognizer) CNF() (*grammar.Grammar, error) {
	idx, err := r.index()
	if err != nil {
		return nil, err
	}
	return idx.cnf, nil
}

// Accepts reports whether the grammar generates input. Surrounding white spaces are ignored, and the empty
// string is accepted only when the grammar accepts it. The null symbol itself and text that cannot be split
// into terminals of the grammar are rejected.
func (r *Recognizer) Accepts(input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return r.g.AcceptsEmpty(), nil
	}
	if input == r.g.Null() {
		return false, nil
	}

	idx, err := r.index()
	if err != nil {
		return false, err
	}
	tokens, ok, err := idx.tokenize(input)
	if err != nil || !ok {
		return false, err
	}
	return r.accepts(idx, tokens), nil
}

// AcceptsSymbols is Accepts over an input split into terminal names in advance.
func (r *Recognizer) AcceptsSymbols(tokens []string) (bool, error) {
	if len(tokens) == 0 {
		return r.g.AcceptsEmpty(), nil
	}

	idx, err := r.index()
	if err != nil {
		return false, err
	}
	return r.accepts(idx, tokens), nil
}

func (r *Recognizer) accepts(idx *index, tokens []string) bool {
	null := r.g.Null()
	for _, tok := range tokens {
		if tok == null {
			return false
		}
	}
	cells := idx.fill(tokens)
	return cells[0][len(tokens)-1].contains(idx.start)
}

// AcceptsAll runs Accepts for each input concurrently. The results are in the same order as the inputs.
func (r *Recognizer) AcceptsAll(inputs []string) ([]bool, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	_, err := r.index()
	if err != nil {
		return nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(inputs) {
		workers = len(inputs)
	}

	results := make([]bool, len(inputs))
	errs := make([]error, len(inputs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = r.Accepts(inputs[i])
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("input #%v: %w", i+1, err)
		}
	}
	return results, nil
}

// Table runs the CYK algorithm on input and returns the filled table. An input that cannot be split into
// terminals yields a table without tokens.
func (r *Recognizer) Table(input string) (*Table, error) {
	input = strings.TrimSpace(input)
	idx, err := r.index()
	if err != nil {
		return nil, err
	}

	t := &Table{
		Input: input,
		vars:  idx.vars,
	}
	if input == "" {
		t.Accepted = r.g.AcceptsEmpty()
		return t, nil
	}
	if input == r.g.Null() {
		return t, nil
	}
	tokens, ok, err := idx.tokenize(input)
	if err != nil {
		return nil, err
	}
	if !ok {
		return t, nil
	}
	t.Tokens = tokens
	t.cells = idx.fill(tokens)
	t.Accepted = r.accepts(idx, tokens)
	return t, nil
}

// tokenize returns false when the input contains text matching no terminal.
func (idx *index) tokenize(input string) ([]string, bool, error) {
	tokens, err := idx.tokenizer.Tokenize(input)
	if err != nil {
		var tErr *symbol.TokenizeError
		if errors.As(err, &tErr) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return tokens, true, nil
}

// Accepts reports whether g generates input. It converts g into Chomsky normal form on every call; use
// a Recognizer to answer many queries.
func Accepts(g *grammar.Grammar, input string) (bool, error) {
	return NewRecognizer(g).Accepts(input)
}
