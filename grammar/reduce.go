package grammar

import (
	"github.com/nihei9/chomsky/grammar/symbol"
)

// genGeneratingSet computes the variables deriving some string of terminals. It counts, per production, the
// variable occurrences not yet known to be generating, the same way genNullableSet does.
func genGeneratingSet(prods *productionSet) symbolSet {
	all := prods.getAllProductions()
	generating := newSymbolSet()
	var queue []symbol.Symbol

	occurrences := map[symbol.Symbol][]int{}
	remaining := make([]int, len(all))
	for i, prod := range all {
		for _, sym := range prod.rhs {
			if sym.IsVariable() {
				remaining[i]++
				occurrences[sym] = append(occurrences[sym], i)
			}
		}
		if remaining[i] == 0 && generating.add(prod.lhs) {
			queue = append(queue, prod.lhs)
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
			if generating.add(lhs) {
				queue = append(queue, lhs)
			}
		}
	}

	return generating
}

// genReachableSet computes the variables appearing in some derivation from start.
func genReachableSet(prods *productionSet, start symbol.Symbol) symbolSet {
	reachable := newSymbolSet(start)
	queue := []symbol.Symbol{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		ps, _ := prods.findByLHS(v)
		for _, prod := range ps {
			for _, sym := range prod.rhs {
				if !sym.IsVariable() {
					continue
				}
				if reachable.add(sym) {
					queue = append(queue, sym)
				}
			}
		}
	}
	return reachable
}

// Reduce returns a grammar without useless symbols. Phase 1 keeps only the rules consisting of terminals and
// generating variables. Phase 2 keeps only the variables reachable from the start variable through the rules
// surviving phase 1, and the terminals those rules use. The start variable and the null symbol always remain.
func Reduce(g *Grammar) *Grammar {
	var p1 []*production
	{
		generating := genGeneratingSet(g.prods)
		for _, prod := range g.prods.getAllProductions() {
			ok := true
			for _, sym := range prod.rhs {
				if sym.IsVariable() && !generating.contains(sym) {
					ok = false
					break
				}
			}
			if ok {
				p1 = append(p1, prod)
			}
		}
	}

	ps1 := newProductionSet()
	for _, prod := range p1 {
		ps1.append(prod)
	}
	reachable := genReachableSet(ps1, g.start)

	var p2 []*production
	terms := newSymbolSet(g.null)
	for _, prod := range p1 {
		if !reachable.contains(prod.lhs) {
			continue
		}
		p2 = append(p2, prod)
		for _, sym := range prod.rhs {
			if sym.IsTerminal() {
				terms.add(sym)
			}
		}
	}

	return g.derive(g.symTab, reachable, terms, p2)
}
