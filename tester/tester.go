package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/chomsky/cyk"
	tspec "github.com/nihei9/chomsky/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "

		msgLines := strings.Split(r.Error.Error(), "\n")
		return fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

// Tester runs membership test cases against the grammar of a recognizer. Test cases that could not be read
// fail with the error that occurred while reading them.
type Tester struct {
	Recognizer *cyk.Recognizer
	Cases      []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Recognizer, c))
	}
	return rs
}

func runTest(r *cyk.Recognizer, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	accepted, err := r.Accepts(string(c.TestCase.Source))
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	actual := tspec.ExpectationReject
	if accepted {
		actual = tspec.ExpectationAccept
	}
	if actual != c.TestCase.Expected {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("unexpected result: expected '%v' but got '%v'; input: '%v'", c.TestCase.Expected, actual, strings.TrimSpace(string(c.TestCase.Source))),
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
