package grammar

import (
	"fmt"
	"io"
	"strings"
)

type ruleLine struct {
	lhs  string
	alts [][]string
}

// ruleLines groups the rules for presentation. The null symbol is appended to the alternatives of the start
// variable when the language contains the empty string, because simplified grammars don't keep null rules.
func (g *Grammar) ruleLines() []*ruleLine {
	var lines []*ruleLine
	start := g.Start()
	for _, lhs := range g.orderedLHSs() {
		alts := g.Alternatives(lhs)
		if lhs == start && g.acceptsEmpty {
			hasNull := false
			for _, alt := range alts {
				if len(alt) == 1 && alt[0] == g.Null() {
					hasNull = true
					break
				}
			}
			if !hasNull {
				alts = append(alts, []string{g.Null()})
			}
		}
		if len(alts) == 0 {
			continue
		}
		lines = append(lines, &ruleLine{
			lhs:  lhs,
			alts: alts,
		})
	}
	return lines
}

// StringifyRules returns one "Variable -> alt1 | alt2 | ..." line per variable. Alternatives are written without
// delimiters between symbols.
func StringifyRules(g *Grammar) []string {
	var lines []string
	for _, l := range g.ruleLines() {
		alts := make([]string, len(l.alts))
		for i, alt := range l.alts {
			alts[i] = strings.Join(alt, "")
		}
		lines = append(lines, fmt.Sprintf("%v -> %v", l.lhs, strings.Join(alts, " | ")))
	}
	return lines
}

// Describe writes a human-readable summary of a grammar.
func Describe(w io.Writer, g *Grammar) {
	fmt.Fprintf(w, "Variables (V): {%v}\n", strings.Join(g.Variables(), ", "))
	fmt.Fprintf(w, "Terminals (Σ): {%v}\n", strings.Join(g.Terminals(), ", "))
	fmt.Fprintf(w, "Null character: %v\n", g.Null())
	fmt.Fprintf(w, "Start variable (S): %v\n", g.Start())
	fmt.Fprintf(w, "Rules (R):\n")
	for _, line := range StringifyRules(g) {
		fmt.Fprintf(w, "\t%v\n", line)
	}
}

// Format writes a grammar in the grammar file format. Symbols in alternatives are separated by spaces. The output
// can be read back unless a name contains white spaces or one of the characters #:|;/.
func Format(w io.Writer, g *Grammar) error {
	var b strings.Builder
	if g.name != "" {
		fmt.Fprintf(&b, "#name %v;\n", g.name)
	}
	fmt.Fprintf(&b, "#start %v;\n", g.Start())
	fmt.Fprintf(&b, "#null %v;\n", g.Null())
	fmt.Fprintf(&b, "#variables %v;\n", strings.Join(g.Variables(), " "))
	fmt.Fprintf(&b, "#terminals %v;\n", strings.Join(g.Terminals(), " "))
	for _, l := range g.ruleLines() {
		fmt.Fprintf(&b, "\n%v\n", l.lhs)
		for i, alt := range l.alts {
			if i == 0 {
				fmt.Fprintf(&b, "    : %v\n", strings.Join(alt, " "))
			} else {
				fmt.Fprintf(&b, "    | %v\n", strings.Join(alt, " "))
			}
		}
		fmt.Fprintf(&b, "    ;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
