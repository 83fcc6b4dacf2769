package grammar

import (
	"github.com/nihei9/chomsky/grammar/symbol"
)

// genNullableSet computes the variables deriving the empty string. Each production keeps a counter of the
// symbols in its RHS that are not yet known to be nullable; when a variable turns out to be nullable, the
// counters of the productions containing it go down, and a production whose counter reaches zero makes its LHS
// nullable. Every variable enters the worklist at most once.
func genNullableSet(prods *productionSet) symbolSet {
	all := prods.getAllProductions()
	nullable := newSymbolSet()
	var queue []symbol.Symbol

	occurrences := map[symbol.Symbol][]int{}
	remaining := make([]int, len(all))
	for i, prod := range all {
		if prod.isNull() {
			if nullable.add(prod.lhs) {
				queue = append(queue, prod.lhs)
			}
			continue
		}

		hasTerminal := false
		for _, sym := range prod.rhs {
			if sym.IsTerminal() {
				hasTerminal = true
				break
			}
		}
		if hasTerminal {
			remaining[i] = -1
			continue
		}

		remaining[i] = prod.rhsLen
		for _, sym := range prod.rhs {
			occurrences[sym] = append(occurrences[sym], i)
		}
	}

	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		for _, i := range occurrences[sym] {
			remaining[i]--
			if remaining[i] > 0 {
				continue
			}
			lhs := all[i].lhs
			if nullable.add(lhs) {
				queue = append(queue, lhs)
			}
		}
	}

	return nullable
}

// RemoveNullRules returns a grammar without rules deriving the null symbol. For every rule, it adds the variants
// in which any combination of nullable variable occurrences is deleted, except the variant deleting everything.
// Whether the language contains the empty string is preserved by AcceptsEmpty.
func RemoveNullRules(g *Grammar) *Grammar {
	nullable := genNullableSet(g.prods)

	var prods []*production
	for _, prod := range g.prods.getAllProductions() {
		if prod.isNull() {
			continue
		}
		for _, rhs := range expandNullable(prod.rhs, nullable) {
			p, err := newProduction(prod.lhs, rhs)
			if err != nil {
				panic(err)
			}
			prods = append(prods, p)
		}
	}

	return g.derive(g.symTab, g.variables.clone(), g.terminals.clone(), prods)
}

// expandNullable returns rhs itself followed by every non-empty sequence obtained by deleting some of the
// nullable occurrences in rhs.
func expandNullable(rhs []symbol.Symbol, nullable symbolSet) [][]symbol.Symbol {
	var positions []int
	for i, sym := range rhs {
		if nullable.contains(sym) {
			positions = append(positions, i)
		}
	}

	seqs := [][]symbol.Symbol{rhs}
	for mask := 1; mask < 1<<len(positions); mask++ {
		deleted := make(map[int]struct{}, len(positions))
		for bit, pos := range positions {
			if mask&(1<<bit) != 0 {
				deleted[pos] = struct{}{}
			}
		}
		seq := make([]symbol.Symbol, 0, len(rhs)-len(deleted))
		for i, sym := range rhs {
			if _, ok := deleted[i]; ok {
				continue
			}
			seq = append(seq, sym)
		}
		if len(seq) == 0 {
			continue
		}
		seqs = append(seqs, seq)
	}
	return seqs
}
