package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nihei9/chomsky/grammar/symbol"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Rule is a rule in a textual form. Each element of RHS is the name of one symbol.
type Rule struct {
	LHS string
	RHS []string
}

func (r Rule) String() string {
	return fmt.Sprintf("%v -> %v", r.LHS, strings.Join(r.RHS, ""))
}

// Rules is a collection of rules passed to New. RuleList, RuleMap, and TextRuleMap implement this interface,
// and the same rules expressed in any of them build the same grammar.
type Rules interface {
	resolve(r *ruleResolver) error
}

// RuleList is a list of (variable, right-hand side) pairs.
type RuleList []Rule

func (l RuleList) resolve(r *ruleResolver) error {
	for _, rule := range l {
		err := r.addSeq(rule.LHS, rule.RHS)
		if err != nil {
			return err
		}
	}
	return nil
}

// RuleMap maps a variable to its alternatives.
type RuleMap map[string][][]string

func (m RuleMap) resolve(r *ruleResolver) error {
	lhss := maps.Keys(m)
	slices.Sort(lhss)
	for _, lhs := range lhss {
		for _, alt := range m[lhs] {
			err := r.addSeq(lhs, alt)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// TextRuleMap maps a variable to its alternatives written without delimiters, such as "aSb". Each alternative is
// tokenized over the declared vocabulary when the grammar is built.
type TextRuleMap map[string][]string

func (m TextRuleMap) resolve(r *ruleResolver) error {
	lhss := maps.Keys(m)
	slices.Sort(lhss)
	for _, lhs := range lhss {
		for _, alt := range m[lhs] {
			err := r.addText(lhs, alt)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

type ruleResolver struct {
	symTab    *symbol.SymbolTableReader
	tokenizer *symbol.Tokenizer
	prods     []*production
}

func (r *ruleResolver) lhs(text string) (symbol.Symbol, error) {
	sym, ok := r.symTab.ToSymbol(text)
	if !ok || !sym.IsVariable() {
		return symbol.SymbolNil, &ValidationError{
			Kind:   ErrorKindUndeclaredSymbol,
			Cause:  semErrUndeclaredLHS,
			Detail: text,
		}
	}
	return sym, nil
}

func (r *ruleResolver) addSeq(lhsText string, rhsTexts []string) error {
	lhs, err := r.lhs(lhsText)
	if err != nil {
		return err
	}
	rhs := make([]symbol.Symbol, 0, len(rhsTexts))
	for _, text := range rhsTexts {
		sym, ok := r.symTab.ToSymbol(text)
		if !ok {
			return &ValidationError{
				Kind:   ErrorKindUndeclaredSymbol,
				Cause:  semErrUndeclaredSym,
				Detail: fmt.Sprintf("%v (in a rule of %v)", text, lhsText),
			}
		}
		rhs = append(rhs, sym)
	}
	return r.add(lhs, rhs, lhsText)
}

func (r *ruleResolver) addText(lhsText string, rhsText string) error {
	lhs, err := r.lhs(lhsText)
	if err != nil {
		return err
	}
	if rhsText == "" {
		return &ValidationError{
			Kind:   ErrorKindMalformedRule,
			Cause:  semErrEmptyRHS,
			Detail: lhsText,
		}
	}
	if r.tokenizer == nil {
		syms := append(r.symTab.VariableSymbols(), r.symTab.TerminalSymbols()...)
		tokenizer, err := symbol.NewTokenizer(r.symTab, syms)
		if err != nil {
			return err
		}
		r.tokenizer = tokenizer
	}
	rhs, err := r.tokenizer.Tokenize(rhsText)
	if err != nil {
		return &ValidationError{
			Kind:   ErrorKindMalformedRule,
			Cause:  semErrUntokenizableRHS,
			Detail: fmt.Sprintf("%v -> %v: %v", lhsText, rhsText, err),
		}
	}
	return r.add(lhs, rhs, lhsText)
}

func (r *ruleResolver) add(lhs symbol.Symbol, rhs []symbol.Symbol, lhsText string) error {
	if len(rhs) == 0 {
		return &ValidationError{
			Kind:   ErrorKindMalformedRule,
			Cause:  semErrEmptyRHS,
			Detail: lhsText,
		}
	}
	prod, err := newProduction(lhs, normalizeNull(rhs))
	if err != nil {
		return err
	}
	r.prods = append(r.prods, prod)
	return nil
}

// normalizeNull drops null symbols from a sequence of two or more symbols because the null symbol denotes the
// empty string. A sequence consisting only of null symbols becomes the single null symbol.
func normalizeNull(rhs []symbol.Symbol) []symbol.Symbol {
	if len(rhs) == 1 {
		return rhs
	}
	var null symbol.Symbol
	seq := make([]symbol.Symbol, 0, len(rhs))
	for _, sym := range rhs {
		if sym.IsNull() {
			null = sym
			continue
		}
		seq = append(seq, sym)
	}
	if len(seq) == 0 {
		return []symbol.Symbol{null}
	}
	return seq
}

type Option func(g *Grammar)

// Name gives a grammar a name. The name doesn't affect the language of the grammar.
func Name(name string) Option {
	return func(g *Grammar) {
		g.name = name
	}
}

// Grammar is an immutable context-free grammar. Transformations such as Simplify and ToCNF return a new Grammar
// and never modify their input, so a Grammar can be shared between goroutines.
type Grammar struct {
	name         string
	symTab       *symbol.SymbolTableReader
	variables    symbolSet
	terminals    symbolSet
	prods        *productionSet
	start        symbol.Symbol
	null         symbol.Symbol
	acceptsEmpty bool
	inCNF        bool
}

// New builds a grammar and validates all its invariants. When an invariant is violated, New returns
// a *ValidationError.
func New(variables, terminals []string, rules Rules, start, null string, opts ...Option) (*Grammar, error) {
	vars, err := uniqueNames(variables)
	if err != nil {
		return nil, err
	}
	terms, err := uniqueNames(terminals)
	if err != nil {
		return nil, err
	}

	{
		varSet := map[string]struct{}{}
		for _, v := range vars {
			varSet[v] = struct{}{}
		}
		for _, t := range terms {
			if _, ok := varSet[t]; ok {
				return nil, &ValidationError{
					Kind:   ErrorKindMalformedSymbol,
					Cause:  semErrDuplicateName,
					Detail: t,
				}
			}
		}

		all := append(append([]string{}, vars...), terms...)
		sort.Strings(all)
		if a, b, found := symbol.FindOverlap(all); found {
			return nil, &ValidationError{
				Kind:   ErrorKindMalformedSymbol,
				Cause:  semErrOverlappingNames,
				Detail: fmt.Sprintf("'%v' is a substring of '%v'", a, b),
			}
		}
	}

	if !slices.Contains(vars, start) {
		return nil, &ValidationError{
			Kind:   ErrorKindUndeclaredSymbol,
			Cause:  semErrUndeclaredStart,
			Detail: start,
		}
	}
	if !slices.Contains(terms, null) {
		return nil, &ValidationError{
			Kind:   ErrorKindUndeclaredSymbol,
			Cause:  semErrUndeclaredNull,
			Detail: null,
		}
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	for _, v := range vars {
		_, err := w.RegisterVariable(v)
		if err != nil {
			return nil, err
		}
	}
	for _, t := range terms {
		var err error
		if t == null {
			_, err = w.RegisterNull(t)
		} else {
			_, err = w.RegisterTerminal(t)
		}
		if err != nil {
			return nil, err
		}
	}
	r := symTab.Reader()

	resolver := &ruleResolver{
		symTab: r,
	}
	if rules != nil {
		err := rules.resolve(resolver)
		if err != nil {
			return nil, err
		}
	}

	startSym, _ := r.ToSymbol(start)
	return assemble(r, resolver.prods, startSym, opts...), nil
}

// assemble builds a grammar over every symbol in a symbol table.
func assemble(symTab *symbol.SymbolTableReader, prods []*production, start symbol.Symbol, opts ...Option) *Grammar {
	g := newGrammar(symTab, newSymbolSet(symTab.VariableSymbols()...), newSymbolSet(symTab.TerminalSymbols()...), prods, start)
	g.acceptsEmpty = genNullableSet(g.prods).contains(start)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func uniqueNames(names []string) ([]string, error) {
	set := map[string]struct{}{}
	for _, name := range names {
		err := symbol.ValidateName(name)
		if err != nil {
			return nil, &ValidationError{
				Kind:   ErrorKindMalformedSymbol,
				Cause:  semErrInvalidName,
				Detail: fmt.Sprintf("%q: %v", name, err),
			}
		}
		set[name] = struct{}{}
	}
	uniq := maps.Keys(set)
	sort.Strings(uniq)
	return uniq, nil
}

// newGrammar assembles a grammar from already validated parts. The productions are stored in a canonical order
// so that equal rule sets always yield identical grammars.
func newGrammar(symTab *symbol.SymbolTableReader, vars, terms symbolSet, prods []*production, start symbol.Symbol) *Grammar {
	sorted := append([]*production{}, prods...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareProductions(sorted[i], sorted[j]) < 0
	})
	ps := newProductionSet()
	for _, prod := range sorted {
		ps.append(prod)
	}
	return &Grammar{
		symTab:    symTab,
		variables: vars,
		terminals: terms,
		prods:     ps,
		start:     start,
		null:      symTab.Null(),
	}
}

func compareProductions(p, q *production) int {
	if p.lhs != q.lhs {
		if p.lhs < q.lhs {
			return -1
		}
		return 1
	}
	for i := 0; i < p.rhsLen && i < q.rhsLen; i++ {
		if p.rhs[i] != q.rhs[i] {
			if p.rhs[i] < q.rhs[i] {
				return -1
			}
			return 1
		}
	}
	return p.rhsLen - q.rhsLen
}

// derive returns a grammar sharing the name, the start variable, and the empty-string flag of g.
func (g *Grammar) derive(symTab *symbol.SymbolTableReader, vars, terms symbolSet, prods []*production) *Grammar {
	d := newGrammar(symTab, vars, terms, prods, g.start)
	d.name = g.name
	d.acceptsEmpty = g.acceptsEmpty
	return d
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) Start() string {
	return g.text(g.start)
}

func (g *Grammar) Null() string {
	return g.text(g.null)
}

// AcceptsEmpty reports whether the language of the grammar contains the empty string, that is, whether the start
// variable of the grammar as originally constructed is nullable.
func (g *Grammar) AcceptsEmpty() bool {
	return g.acceptsEmpty
}

// InCNF reports whether the grammar was produced by ToCNF.
func (g *Grammar) InCNF() bool {
	return g.inCNF
}

func (g *Grammar) Variables() []string {
	return g.texts(g.variables)
}

func (g *Grammar) Terminals() []string {
	return g.texts(g.terminals)
}

func (g *Grammar) texts(set symbolSet) []string {
	texts := make([]string, 0, len(set))
	for sym := range set {
		texts = append(texts, g.text(sym))
	}
	sort.Strings(texts)
	return texts
}

func (g *Grammar) text(sym symbol.Symbol) string {
	text, ok := g.symTab.ToText(sym)
	if !ok {
		panic(&ValidationError{
			Kind:   ErrorKindMalformedRule,
			Cause:  semErrInconsistentInternal,
			Detail: sym.String(),
		})
	}
	return text
}

func (g *Grammar) seqTexts(seq []symbol.Symbol) []string {
	texts := make([]string, len(seq))
	for i, sym := range seq {
		texts[i] = g.text(sym)
	}
	return texts
}

// Rules returns the rules grouped by their left-hand side. The start variable comes first, and the other
// variables follow in name order. Within a group, alternatives are ordered by their undelimited text.
func (g *Grammar) Rules() []Rule {
	var rules []Rule
	for _, lhs := range g.orderedLHSs() {
		for _, alt := range g.Alternatives(lhs) {
			rules = append(rules, Rule{
				LHS: lhs,
				RHS: alt,
			})
		}
	}
	return rules
}

// Alternatives returns the right-hand sides of the rules of a variable.
func (g *Grammar) Alternatives(lhs string) [][]string {
	sym, ok := g.symTab.ToSymbol(lhs)
	if !ok || !g.variables.contains(sym) {
		return nil
	}
	prods, _ := g.prods.findByLHS(sym)
	alts := make([][]string, 0, len(prods))
	for _, prod := range prods {
		alts = append(alts, g.seqTexts(prod.rhs))
	}
	sort.SliceStable(alts, func(i, j int) bool {
		return strings.Join(alts[i], "") < strings.Join(alts[j], "")
	})
	return alts
}

// orderedLHSs returns the start variable followed by the other variables having rules in name order.
func (g *Grammar) orderedLHSs() []string {
	var others []string
	for _, sym := range g.variables.sorted() {
		if sym == g.start {
			continue
		}
		if _, ok := g.prods.findByLHS(sym); !ok {
			continue
		}
		others = append(others, g.text(sym))
	}
	sort.Strings(others)
	return append([]string{g.text(g.start)}, others...)
}

// Equal reports whether two grammars have the same vocabulary, the same rules, the same start variable, the same
// null symbol, and agree on the empty string. Symbols are compared by name.
func (g *Grammar) Equal(o *Grammar) bool {
	if g.Start() != o.Start() || g.Null() != o.Null() || g.acceptsEmpty != o.acceptsEmpty {
		return false
	}
	if !slices.Equal(g.Variables(), o.Variables()) || !slices.Equal(g.Terminals(), o.Terminals()) {
		return false
	}
	rs1 := g.Rules()
	rs2 := o.Rules()
	if len(rs1) != len(rs2) {
		return false
	}
	for i := range rs1 {
		if rs1[i].LHS != rs2[i].LHS || !slices.Equal(rs1[i].RHS, rs2[i].RHS) {
			return false
		}
	}
	return true
}

// InputTokenizer splits candidate strings into terminal names of a grammar.
type InputTokenizer struct {
	symTab    *symbol.SymbolTableReader
	tokenizer *symbol.Tokenizer
}

// NewInputTokenizer returns a tokenizer over the terminals of the grammar, including the null symbol.
func (g *Grammar) NewInputTokenizer() (*InputTokenizer, error) {
	tokenizer, err := symbol.NewTokenizer(g.symTab, g.terminals.sorted())
	if err != nil {
		return nil, err
	}
	return &InputTokenizer{
		symTab:    g.symTab,
		tokenizer: tokenizer,
	}, nil
}

func (t *InputTokenizer) Tokenize(input string) ([]string, error) {
	syms, err := t.tokenizer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i], _ = t.symTab.ToText(sym)
	}
	return texts, nil
}
