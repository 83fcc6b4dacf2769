package symbol

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptyName      = errors.New("a symbol name must not be empty")
	ErrNameHasSpace   = errors.New("a symbol name must not contain white spaces")
	ErrNamesOverlap   = errors.New("a symbol name must not contain another symbol name")
	ErrNameDuplicated = errors.New("a symbol name must be unique")
)

// ValidateName reports whether a name can be used as a symbol.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return ErrNameHasSpace
	}
	return nil
}

// Overlaps reports whether one of the names equals or contains the other one.
func Overlaps(a, b string) bool {
	if len(a) < len(b) {
		return strings.Contains(b, a)
	}
	return strings.Contains(a, b)
}

// FindOverlap returns the first pair of names violating the non-overlap constraint. The pair is ordered so that
// the first element is the contained name. Passing sorted names makes the result deterministic.
func FindOverlap(names []string) (string, string, bool) {
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			if !Overlaps(a, b) {
				continue
			}
			if len(a) > len(b) {
				a, b = b, a
			}
			return a, b, true
		}
	}
	return "", "", false
}

// CheckOverlap returns an error when the name overlaps any of the known names.
func CheckOverlap(name string, known []string) error {
	for _, k := range known {
		if k == name {
			return fmt.Errorf("%w: %v", ErrNameDuplicated, name)
		}
		if Overlaps(name, k) {
			return fmt.Errorf("%w: %v, %v", ErrNamesOverlap, name, k)
		}
	}
	return nil
}

const nameWidthMax = 3

// fallbackChars are the candidates of marker characters used once the letter-and-number names run out.
const fallbackChars = "_'$@~^!?%&*+=<>.,-ʹ′″"

// NameGenerator generates variable names that don't overlap any name in a vocabulary. Candidates are a letter
// followed by a number: A1, ..., A9, B1, ..., Z9, then A01, ..., Z99, then A001, ..., Z999. A generator is meant
// to be used by one conversion; it remembers the names it has issued and never issues a name overlapping them.
//
// When a vocabulary blocks all of those candidates (for instance, every digit is a terminal), the generator
// picks two characters that no known name contains and issues names of the form m b m, m b b m, and so on.
type NameGenerator struct {
	letter byte
	num    int
	width  int
	max    int
	known  []string

	marker   string
	body     string
	bodyLen  int
	fallback bool
}

func NewNameGenerator(vocabulary []string) *NameGenerator {
	return &NameGenerator{
		letter: 'A',
		num:    1,
		width:  1,
		max:    9,
		known:  append([]string{}, vocabulary...),
	}
}

func (g *NameGenerator) Next() (string, error) {
	for g.width <= nameWidthMax {
		name := fmt.Sprintf("%c%0*d", g.letter, g.width, g.num)
		g.advance()
		if CheckOverlap(name, g.known) != nil {
			continue
		}
		g.known = append(g.known, name)
		return name, nil
	}
	return g.nextFallback()
}

func (g *NameGenerator) advance() {
	if g.num < g.max {
		g.num++
		return
	}
	g.num = 1
	if g.letter < 'Z' {
		g.letter++
		return
	}
	g.letter = 'A'
	g.width++
	g.max = g.max*10 + 9
}

func (g *NameGenerator) nextFallback() (string, error) {
	if !g.fallback {
		var picked []string
		for _, c := range fallbackChars {
			used := false
			for _, k := range g.known {
				if strings.ContainsRune(k, c) {
					used = true
					break
				}
			}
			if used {
				continue
			}
			picked = append(picked, string(c))
			if len(picked) == 2 {
				break
			}
		}
		if len(picked) < 2 {
			return "", fmt.Errorf("cannot generate a fresh variable name: the vocabulary uses all candidate characters")
		}
		g.marker = picked[0]
		g.body = picked[1]
		g.fallback = true
	}
	for {
		g.bodyLen++
		name := g.marker + strings.Repeat(g.body, g.bodyLen) + g.marker
		if CheckOverlap(name, g.known) != nil {
			continue
		}
		g.known = append(g.known, name)
		return name, nil
	}
}
