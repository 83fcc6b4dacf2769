package symbol

import (
	"fmt"
	"sort"
)

type symbolKind string

const (
	symbolKindVariable = symbolKind("variable")
	symbolKindTerminal = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

type Symbol uint16

func (s Symbol) String() string {
	kind, isNull, num := s.describe()
	var prefix string
	switch {
	case s.IsNil():
		prefix = "?"
	case isNull:
		prefix = "e"
	case kind == symbolKindVariable:
		prefix = "v"
	case kind == symbolKindTerminal:
		prefix = "t"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

const (
	maskKindPart = uint16(0x8000) // 1000 0000 0000 0000
	maskVariable = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal = uint16(0x8000) // 1000 0000 0000 0000

	maskNullPart = uint16(0x4000) // 0100 0000 0000 0000
	maskNonNull  = uint16(0x0000) // 0000 0000 0000 0000
	maskNull     = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	SymbolNil = Symbol(0) // 0000 0000 0000 0000

	variableNumMin = SymbolNum(1)
	terminalNumMin = SymbolNum(1)
	symbolNumMax   = SymbolNum(0xffff) >> 2 // 0011 1111 1111 1111
)

func newSymbol(kind symbolKind, isNull bool, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}
	if kind == symbolKindVariable && isNull {
		return SymbolNil, fmt.Errorf("the null symbol must be a terminal symbol")
	}

	kindMask := maskVariable
	if kind == symbolKindTerminal {
		kindMask = maskTerminal
	}
	nullMask := maskNonNull
	if isNull {
		nullMask = maskNull
	}
	return Symbol(kindMask | nullMask | uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	_, _, num := s.describe()
	return num
}

func (s Symbol) Byte() []byte {
	if s.IsNil() {
		return []byte{0, 0}
	}
	return []byte{byte(uint16(s) >> 8), byte(uint16(s) & 0x00ff)}
}

func (s Symbol) IsNil() bool {
	_, _, num := s.describe()
	return num == 0
}

func (s Symbol) IsNull() bool {
	if s.IsNil() {
		return false
	}
	_, isNull, _ := s.describe()
	return isNull
}

func (s Symbol) IsVariable() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _ := s.describe()
	return kind == symbolKindVariable
}

func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	return !s.IsVariable()
}

func (s Symbol) describe() (symbolKind, bool, SymbolNum) {
	kind := symbolKindVariable
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindTerminal
	}
	isNull := uint16(s)&maskNullPart > 0
	num := SymbolNum(uint16(s) & maskNumberPart)
	return kind, isNull, num
}

// SymbolTable maps symbol names to symbols and vice versa. A table only grows; the grammar package hands out
// reader views once construction has finished and clones a table when a transformation needs fresh names.
type SymbolTable struct {
	text2Sym  map[string]Symbol
	sym2Text  map[Symbol]string
	varTexts  []string
	termTexts []string
	varNum    SymbolNum
	termNum   SymbolNum
	null      Symbol
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{},
		sym2Text: map[Symbol]string{},
		varTexts: []string{
			"", // Nil
		},
		termTexts: []string{
			"", // Nil
		},
		varNum:  variableNumMin,
		termNum: terminalNumMin,
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

// Clone returns a table that has the same symbols as t. Registering symbols to the clone doesn't affect t.
func (t *SymbolTable) Clone() *SymbolTable {
	c := &SymbolTable{
		text2Sym:  make(map[string]Symbol, len(t.text2Sym)),
		sym2Text:  make(map[Symbol]string, len(t.sym2Text)),
		varTexts:  append([]string{}, t.varTexts...),
		termTexts: append([]string{}, t.termTexts...),
		varNum:    t.varNum,
		termNum:   t.termNum,
		null:      t.null,
	}
	for text, sym := range t.text2Sym {
		c.text2Sym[text] = sym
	}
	for sym, text := range t.sym2Text {
		c.sym2Text[sym] = text
	}
	return c
}

func (w *SymbolTableWriter) RegisterVariable(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsVariable() {
			return SymbolNil, fmt.Errorf("'%v' is already registered as a terminal symbol", text)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindVariable, false, w.varNum)
	if err != nil {
		return SymbolNil, err
	}
	w.varNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.varTexts = append(w.varTexts, text)
	return sym, nil
}

func (w *SymbolTableWriter) RegisterTerminal(text string) (Symbol, error) {
	return w.registerTerminal(text, false)
}

// RegisterNull registers the terminal symbol denoting the empty string. A table has at most one null symbol.
func (w *SymbolTableWriter) RegisterNull(text string) (Symbol, error) {
	if !w.null.IsNil() {
		if w.sym2Text[w.null] == text {
			return w.null, nil
		}
		return SymbolNil, fmt.Errorf("the null symbol is already registered: %v", w.sym2Text[w.null])
	}
	sym, err := w.registerTerminal(text, true)
	if err != nil {
		return SymbolNil, err
	}
	w.null = sym
	return sym, nil
}

func (w *SymbolTableWriter) registerTerminal(text string, isNull bool) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsTerminal() {
			return SymbolNil, fmt.Errorf("'%v' is already registered as a variable", text)
		}
		if sym.IsNull() != isNull {
			return SymbolNil, fmt.Errorf("'%v' is already registered as a different kind of terminal symbol", text)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindTerminal, isNull, w.termNum)
	if err != nil {
		return SymbolNil, err
	}
	w.termNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.termTexts = append(w.termTexts, text)
	return sym, nil
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := r.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	text, ok := r.sym2Text[sym]
	return text, ok
}

func (r *SymbolTableReader) Null() Symbol {
	return r.null
}

// Texts returns the names of all registered symbols.
func (r *SymbolTableReader) Texts() []string {
	texts := make([]string, 0, len(r.text2Sym))
	texts = append(texts, r.varTexts[1:]...)
	texts = append(texts, r.termTexts[1:]...)
	return texts
}

func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.termNum.Int()-terminalNumMin.Int())
	for sym := range r.sym2Text {
		if !sym.IsTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

func (r *SymbolTableReader) VariableSymbols() []Symbol {
	syms := make([]Symbol, 0, r.varNum.Int()-variableNumMin.Int())
	for sym := range r.sym2Text {
		if !sym.IsVariable() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
