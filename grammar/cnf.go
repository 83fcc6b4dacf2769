package grammar

import (
	"fmt"

	"github.com/nihei9/chomsky/grammar/symbol"
)

// IsCNF reports whether every rule of g has either a single non-null terminal or exactly two variables on its
// right-hand side.
func IsCNF(g *Grammar) bool {
	for _, prod := range g.prods.getAllProductions() {
		if !isCNFProduction(prod) {
			return false
		}
	}
	return true
}

func isCNFProduction(prod *production) bool {
	switch prod.rhsLen {
	case 1:
		return prod.rhs[0].IsTerminal() && !prod.rhs[0].IsNull()
	case 2:
		return prod.rhs[0].IsVariable() && prod.rhs[1].IsVariable()
	}
	return false
}

type cnfConverter struct {
	w       *symbol.SymbolTableWriter
	names   *symbol.NameGenerator
	vars    symbolSet
	termVar map[symbol.Symbol]symbol.Symbol
	prods   []*production
}

func (c *cnfConverter) freshVariable() (symbol.Symbol, error) {
	name, err := c.names.Next()
	if err != nil {
		return symbol.SymbolNil, err
	}
	sym, err := c.w.RegisterVariable(name)
	if err != nil {
		return symbol.SymbolNil, err
	}
	c.vars.add(sym)
	return sym, nil
}

func (c *cnfConverter) emit(lhs symbol.Symbol, rhs ...symbol.Symbol) error {
	prod, err := newProduction(lhs, rhs)
	if err != nil {
		return err
	}
	c.prods = append(c.prods, prod)
	return nil
}

// isolateTerminal returns the variable whose only rule derives the terminal, adding one when there is none.
func (c *cnfConverter) isolateTerminal(term symbol.Symbol) (symbol.Symbol, error) {
	if v, ok := c.termVar[term]; ok {
		return v, nil
	}
	v, err := c.freshVariable()
	if err != nil {
		return symbol.SymbolNil, err
	}
	err = c.emit(v, term)
	if err != nil {
		return symbol.SymbolNil, err
	}
	c.termVar[term] = v
	return v, nil
}

// ToCNF converts g into Chomsky normal form. The conversion simplifies g, replaces terminals in right-hand sides
// longer than one symbol with variables deriving exactly those terminals, and splits right-hand sides longer than
// two variables into chains: A -> X1 X2 X3 becomes A -> X1 N1 and N1 -> X2 X3. Fresh variable names come from a
// generator owned by this call, so converting the same grammar twice yields the same names.
func ToCNF(g *Grammar) (*Grammar, error) {
	if g.inCNF {
		return g, nil
	}

	s := Simplify(g)

	symTab := s.symTab.Clone()
	c := &cnfConverter{
		w:       symTab.Writer(),
		names:   symbol.NewNameGenerator(symTab.Reader().Texts()),
		vars:    s.variables.clone(),
		termVar: map[symbol.Symbol]symbol.Symbol{},
	}

	// Reuse a variable whose only rule derives a terminal. When several variables qualify, the one registered
	// first wins; variables are registered in name order.
	for _, v := range s.variables.sorted() {
		ps, _ := s.prods.findByLHS(v)
		if len(ps) != 1 || ps[0].rhsLen != 1 || !ps[0].rhs[0].IsTerminal() {
			continue
		}
		if _, ok := c.termVar[ps[0].rhs[0]]; ok {
			continue
		}
		c.termVar[ps[0].rhs[0]] = v
	}

	var long []*production
	for _, prod := range s.prods.getAllProductions() {
		if prod.rhsLen == 1 {
			if !isCNFProduction(prod) {
				return nil, fmt.Errorf("a simplified grammar has an unexpected rule; LHS: %v, RHS: %v", prod.lhs, prod.rhs)
			}
			c.prods = append(c.prods, prod)
			continue
		}

		rhs := make([]symbol.Symbol, prod.rhsLen)
		for i, sym := range prod.rhs {
			if sym.IsVariable() {
				rhs[i] = sym
				continue
			}
			v, err := c.isolateTerminal(sym)
			if err != nil {
				return nil, err
			}
			rhs[i] = v
		}

		if len(rhs) == 2 {
			err := c.emit(prod.lhs, rhs...)
			if err != nil {
				return nil, err
			}
			continue
		}
		p, err := newProduction(prod.lhs, rhs)
		if err != nil {
			return nil, err
		}
		long = append(long, p)
	}

	for _, prod := range long {
		lhs := prod.lhs
		for i := 0; i < prod.rhsLen-2; i++ {
			next, err := c.freshVariable()
			if err != nil {
				return nil, err
			}
			err = c.emit(lhs, prod.rhs[i], next)
			if err != nil {
				return nil, err
			}
			lhs = next
		}
		err := c.emit(lhs, prod.rhs[prod.rhsLen-2], prod.rhs[prod.rhsLen-1])
		if err != nil {
			return nil, err
		}
	}

	cnf := s.derive(symTab.Reader(), c.vars, s.terminals.clone(), c.prods)
	cnf.inCNF = true
	return cnf, nil
}
