package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		tc       *TestCase
		parseErr bool
	}{
		{
			caption: "a test case consists of three parts",
			src: `test
---
aabb
---
accept
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("aabb"),
				Expected:    ExpectationAccept,
			},
		},
		{
			caption: "blank lines are kept in the description and the source",
			src: `
test

---

aab

---

reject

`,
			tc: &TestCase{
				Description: "\ntest\n",
				Source:      []byte("\naab\n"),
				Expected:    ExpectationReject,
			},
		},
		{
			caption: "the length of a part delimiter may be greater than 3",
			src: `test
-----
ab
-----
ACCEPT
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("ab"),
				Expected:    ExpectationAccept,
			},
		},
		{
			caption: "the description and the source may be empty",
			src: `---
---
accept
`,
			tc: &TestCase{
				Description: "",
				Source:      []byte{},
				Expected:    ExpectationAccept,
			},
		},
		{
			caption: "the expectation part is missing",
			src: `test
---
ab
`,
			parseErr: true,
		},
		{
			caption: "too many parts",
			src: `test
---
ab
---
accept
---
reject
`,
			parseErr: true,
		},
		{
			caption: "an unknown expectation",
			src: `test
---
ab
---
maybe
`,
			parseErr: true,
		},
		{
			caption: "the expectation part must be one line",
			src: `test
---
ab
---
accept
reject
`,
			parseErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tc, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.parseErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.tc, tc)
		})
	}
}
