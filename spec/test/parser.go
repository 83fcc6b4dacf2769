package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

type Expectation string

const (
	ExpectationAccept = Expectation("accept")
	ExpectationReject = Expectation("reject")
)

// TestCase is a membership test: Source is a candidate string, and Expected tells whether a grammar must
// accept or reject it.
type TestCase struct {
	Description string
	Source      []byte
	Expected    Expectation
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	lineOffset := parts[0].lineCount + parts[1].lineCount + 2
	exp, err := parseExpectation(parts[2].buf, lineOffset)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Expected:    exp,
	}, nil
}

func parseExpectation(buf []byte, lineOffset int) (Expectation, error) {
	var words []string
	row := 0
	s := bufio.NewScanner(bytes.NewReader(buf))
	for i := 1; s.Scan(); i++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
		if row == 0 {
			row = i
		}
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	if len(words) != 1 {
		return "", fmt.Errorf("the expectation part must consist of one line containing 'accept' or 'reject': %v lines found", len(words))
	}
	switch exp := Expectation(strings.ToLower(words[0])); exp {
	case ExpectationAccept, ExpectationReject:
		return exp, nil
	}
	return "", fmt.Errorf("%v: invalid expectation: '%v'; it must be 'accept' or 'reject'", lineOffset+row, words[0])
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
