package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/nihei9/chomsky/grammar/symbol"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs symbol.Symbol, rhs []symbol.Symbol) productionID {
	seq := lhs.Byte()
	for _, sym := range rhs {
		seq = append(seq, sym.Byte()...)
	}
	return productionID(sha256.Sum256(seq))
}

type production struct {
	id     productionID
	lhs    symbol.Symbol
	rhs    []symbol.Symbol
	rhsLen int
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*production, error) {
	if !lhs.IsVariable() {
		return nil, fmt.Errorf("LHS must be a variable; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("RHS must have at least one symbol; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &production{
		id:     genProductionID(lhs, rhs),
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

func (p *production) equals(q *production) bool {
	return q.id == p.id
}

// isNull reports whether the production derives the empty string directly.
func (p *production) isNull() bool {
	return p.rhsLen == 1 && p.rhs[0].IsNull()
}

func (p *production) isUnit() bool {
	return p.rhsLen == 1 && p.rhs[0].IsVariable()
}

// productionSet holds unique productions. Productions are kept in insertion order so that every algorithm
// walking a set behaves deterministically.
type productionSet struct {
	prods     []*production
	lhs2Prods map[symbol.Symbol][]*production
	id2Prod   map[productionID]*production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*production{},
		id2Prod:   map[productionID]*production{},
	}
}

func (ps *productionSet) append(prod *production) bool {
	if _, ok := ps.id2Prod[prod.id]; ok {
		return false
	}

	ps.prods = append(ps.prods, prod)
	if prods, ok := ps.lhs2Prods[prod.lhs]; ok {
		ps.lhs2Prods[prod.lhs] = append(prods, prod)
	} else {
		ps.lhs2Prods[prod.lhs] = []*production{prod}
	}
	ps.id2Prod[prod.id] = prod

	return true
}

func (ps *productionSet) findByID(id productionID) (*production, bool) {
	prod, ok := ps.id2Prod[id]
	return prod, ok
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*production, bool) {
	if lhs.IsNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAllProductions() []*production {
	return ps.prods
}

func (ps *productionSet) len() int {
	return len(ps.prods)
}
