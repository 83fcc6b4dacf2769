package grammar

import (
	"github.com/nihei9/chomsky/grammar/symbol"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type symbolSet map[symbol.Symbol]struct{}

func newSymbolSet(syms ...symbol.Symbol) symbolSet {
	s := make(symbolSet, len(syms))
	for _, sym := range syms {
		s[sym] = struct{}{}
	}
	return s
}

func (s symbolSet) add(sym symbol.Symbol) bool {
	if _, ok := s[sym]; ok {
		return false
	}
	s[sym] = struct{}{}
	return true
}

func (s symbolSet) contains(sym symbol.Symbol) bool {
	_, ok := s[sym]
	return ok
}

// containsAll reports whether every symbol of syms is in s.
func (s symbolSet) containsAll(syms []symbol.Symbol) bool {
	for _, sym := range syms {
		if !s.contains(sym) {
			return false
		}
	}
	return true
}

func (s symbolSet) sorted() []symbol.Symbol {
	syms := maps.Keys(s)
	slices.Sort(syms)
	return syms
}

func (s symbolSet) clone() symbolSet {
	return maps.Clone(s)
}

func (s symbolSet) equals(t symbolSet) bool {
	if len(s) != len(t) {
		return false
	}
	for sym := range s {
		if !t.contains(sym) {
			return false
		}
	}
	return true
}
