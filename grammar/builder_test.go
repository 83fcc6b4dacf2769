package grammar

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/spec"
	"github.com/stretchr/testify/require"
)

func buildFromSource(t *testing.T, src string) (*Grammar, error) {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse a grammar: %v", err)
	}
	b := &GrammarBuilder{
		AST: ast,
	}
	return b.Build()
}

func TestGrammarBuilder_Build(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		expected *testGrammar
		name     string
	}{
		{
			caption: "undelimited alternatives are tokenized over the declared terminals",
			src: `
#name anbn;
#start S;
#null λ;
#terminals a b λ;

S
    : aSb
    | λ
    ;
`,
			expected: &testGrammar{
				variables: []string{"S"},
				terminals: []string{"a", "b", "λ"},
				rules: TextRuleMap{
					"S": {"aSb", "λ"},
				},
				start: "S",
			},
			name: "anbn",
		},
		{
			caption: "words of an alternative are concatenated before tokenization",
			src: `
#terminals a b;
S: a S b | ;
`,
			expected: &testGrammar{
				variables: []string{"S"},
				terminals: []string{"a", "b", "λ"},
				rules: TextRuleMap{
					"S": {"aSb", "λ"},
				},
				start: "S",
			},
		},
		{
			caption: "without #terminals, every word that is not a variable is a terminal",
			src: `
E: E + T | T;
T: T * F | F;
F: ( E ) | id;
`,
			expected: &testGrammar{
				variables: []string{"E", "T", "F"},
				terminals: []string{"+", "*", "(", ")", "id", "λ"},
				rules: TextRuleMap{
					"E": {"E+T", "T"},
					"T": {"T*F", "F"},
					"F": {"(E)", "id"},
				},
				start: "E",
			},
		},
		{
			caption: "#start, #null and #variables override the defaults",
			src: `
#start T;
#null ε;
#variables U;
S: a;
T: S | ε;
`,
			expected: &testGrammar{
				variables: []string{"S", "T", "U"},
				terminals: []string{"a", "ε"},
				rules: RuleMap{
					"S": {{"a"}},
					"T": {{"S"}, {"ε"}},
				},
				start: "T",
				null:  "ε",
			},
		},
		{
			caption: "productions of the same variable are merged",
			src: `
S: a;
S: b;
`,
			expected: &testGrammar{
				variables: []string{"S"},
				terminals: []string{"a", "b", "λ"},
				rules: RuleMap{
					"S": {{"a"}, {"b"}},
				},
				start: "S",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := buildFromSource(t, tt.src)
			require.NoError(t, err)
			expected := newTestGrammar(t, tt.expected)
			require.True(t, g.Equal(expected), "unexpected grammar;\nwant: %q\ngot:  %q", StringifyRules(expected), StringifyRules(g))
			require.Equal(t, tt.name, g.Name())
		})
	}
}

func TestGrammarBuilder_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
		row     int
	}{
		{
			caption: "an unknown directive",
			src:     `#foo bar;`,
			cause:   semErrDirInvalidName,
			row:     1,
		},
		{
			caption: "a duplicated directive",
			src: `#start S;
#start T;
S: a;
`,
			cause: semErrDuplicateDir,
			row:   2,
		},
		{
			caption: "#start takes just one parameter",
			src: `#start S T;
S: a;
`,
			cause: semErrDirInvalidParam,
			row:   1,
		},
		{
			caption: "#terminals takes at least one parameter",
			src: `#terminals;
S: a;
`,
			cause: semErrDirInvalidParam,
			row:   1,
		},
		{
			caption: "a grammar without productions needs #start",
			src:     `#name empty;`,
			cause:   semErrNoStart,
		},
		{
			caption: "an undeclared start variable",
			src: `#start T;
S: a;
`,
			cause: semErrUndeclaredStart,
			row:   1,
		},
		{
			caption: "overlapping names",
			src:     `S: a | ab;`,
			cause:   semErrOverlappingNames,
		},
		{
			caption: "an alternative containing undeclared text",
			src: `#terminals a b;

S
    : aSb
    | aSc
    ;
`,
			cause: semErrUntokenizableRHS,
			row:   5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := buildFromSource(t, tt.src)
			require.Nil(t, g)
			var specErrs verr.SpecErrors
			require.ErrorAs(t, err, &specErrs)
			require.NotEmpty(t, specErrs)
			require.True(t, errors.Is(specErrs[0], tt.cause), "unexpected error; want: %v, got: %v", tt.cause, specErrs[0])
			require.Equal(t, tt.row, specErrs[0].Row)
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	srcs := []*testGrammar{
		{
			variables: []string{"S"},
			terminals: []string{"a", "b", "λ"},
			rules: TextRuleMap{
				"S": {"aSb", "λ"},
			},
			start: "S",
		},
		{
			variables: []string{"E", "T", "F"},
			terminals: []string{"+", "*", "(", ")", "id", "λ"},
			rules: TextRuleMap{
				"E": {"E+T", "T"},
				"T": {"T*F", "F"},
				"F": {"(E)", "id"},
			},
			start: "E",
		},
	}
	for _, src := range srcs {
		g := newTestGrammar(t, src)
		s := Simplify(g)
		cnf, err := ToCNF(g)
		require.NoError(t, err)
		for _, h := range []*Grammar{g, s, cnf} {
			var b strings.Builder
			err := Format(&b, h)
			require.NoError(t, err)

			r, err := buildFromSource(t, b.String())
			require.NoError(t, err, "failed to read back:\n%v", b.String())
			require.Equal(t, StringifyRules(h), StringifyRules(r))
			require.Equal(t, h.Variables(), r.Variables())
			require.Equal(t, h.Terminals(), r.Terminals())
			require.Equal(t, h.AcceptsEmpty(), r.AcceptsEmpty())
		}
	}
}
