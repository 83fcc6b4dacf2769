package tester

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/chomsky/cyk"
	"github.com/nihei9/chomsky/grammar"
	"github.com/nihei9/chomsky/spec"
	tspec "github.com/nihei9/chomsky/spec/test"
	"github.com/stretchr/testify/require"
)

const grammarSrc = `
#name anbn;
#terminals a b;

S
    : a S b
    |
    ;
`

func newRecognizer(t *testing.T) *cyk.Recognizer {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(grammarSrc))
	if err != nil {
		t.Fatal(err)
	}
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return cyk.NewRecognizer(g)
}

func TestTester_Run(t *testing.T) {
	tests := []struct {
		caption string
		testSrc string
		error   bool
	}{
		{
			caption: "an accepted string",
			testSrc: `
a^2 b^2
---
aabb
---
accept
`,
		},
		{
			caption: "a rejected string",
			testSrc: `
a^2 b^1
---
aab
---
reject
`,
		},
		{
			caption: "the empty string",
			testSrc: `
empty
---
---
accept
`,
		},
		{
			caption: "a wrong expectation fails",
			testSrc: `
a^2 b^1
---
aab
---
accept
`,
			error: true,
		},
		{
			caption: "an untokenizable string is rejected",
			testSrc: `
unknown terminal
---
abc
---
accept
`,
			error: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := tspec.ParseTestCase(strings.NewReader(tt.testSrc))
			if err != nil {
				t.Fatal(err)
			}
			tester := &Tester{
				Recognizer: newRecognizer(t),
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
					},
				},
			}
			rs := tester.Run()
			if tt.error {
				errOccurred := false
				for _, r := range rs {
					if r.Error != nil {
						errOccurred = true
					}
				}
				if !errOccurred {
					t.Fatal("this test must fail, but it passed")
				}
			} else {
				for _, r := range rs {
					if r.Error != nil {
						t.Fatalf("unexpected error occurred: %v", r.Error)
					}
				}
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) {
		t.Helper()
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
	writeFile("1.txt", "ab\n---\nab\n---\naccept\n")
	writeFile("2.txt", "ba\n---\nba\n---\nreject\n")
	writeFile("3.txt", "broken\n---\nab\n")

	cases := ListTestCases(dir)
	require.Len(t, cases, 3)
	require.NoError(t, cases[0].Error)
	require.NoError(t, cases[1].Error)
	require.Error(t, cases[2].Error)

	tester := &Tester{
		Recognizer: newRecognizer(t),
		Cases:      cases,
	}
	rs := tester.Run()
	require.Len(t, rs, 3)
	require.Nil(t, rs[0].Error)
	require.Nil(t, rs[1].Error)
	require.Error(t, rs[2].Error)
	require.True(t, strings.HasPrefix(rs[0].String(), "Passed "))
	require.True(t, strings.HasPrefix(rs[2].String(), "Failed "))

	missing := ListTestCases(filepath.Join(dir, "missing.txt"))
	require.Len(t, missing, 1)
	require.Error(t, missing[0].Error)
}
