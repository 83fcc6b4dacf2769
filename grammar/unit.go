package grammar

import (
	"github.com/nihei9/chomsky/grammar/symbol"
)

// genUnitClosure returns the variables reachable from v through one or more unit rules, in discovery order.
// v itself is excluded even when a cycle leads back to it.
func genUnitClosure(prods *productionSet, v symbol.Symbol) []symbol.Symbol {
	visited := newSymbolSet(v)
	var closure []symbol.Symbol
	stack := []symbol.Symbol{v}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ps, _ := prods.findByLHS(top)
		for _, prod := range ps {
			if !prod.isUnit() {
				continue
			}
			next := prod.rhs[0]
			if !visited.add(next) {
				continue
			}
			closure = append(closure, next)
			stack = append(stack, next)
		}
	}
	return closure
}

// RemoveUnitRules returns a grammar without rules of the form A -> B. Each variable receives its own non-unit
// rules and the non-unit rules of every variable reachable from it through unit rules.
func RemoveUnitRules(g *Grammar) *Grammar {
	var prods []*production
	for _, v := range g.variables.sorted() {
		sources := append([]symbol.Symbol{v}, genUnitClosure(g.prods, v)...)
		for _, src := range sources {
			ps, _ := g.prods.findByLHS(src)
			for _, prod := range ps {
				if prod.isUnit() {
					continue
				}
				if src == v {
					prods = append(prods, prod)
					continue
				}
				p, err := newProduction(v, prod.rhs)
				if err != nil {
					panic(err)
				}
				prods = append(prods, p)
			}
		}
	}

	return g.derive(g.symTab, g.variables.clone(), g.terminals.clone(), prods)
}
