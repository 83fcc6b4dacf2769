package spec

import (
	"fmt"
	"io"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindID              = tokenKind("id")
	tokenKindColon           = tokenKind(":")
	tokenKindOr              = tokenKind("|")
	tokenKindSemicolon       = tokenKind(";")
	tokenKindDirectiveMarker = tokenKind("#")
	tokenKindEOF             = tokenKind("eof")
	tokenKindInvalid         = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// An identifier is a run of any characters except white spaces and the characters the format reserves.
var lexEntries = []*mlspec.LexEntry{
	{Kind: "white_space", Pattern: `[\u{0009}\u{0020}]+`},
	{Kind: "newline", Pattern: `\u{000D}?\u{000A}|\u{000D}`},
	{Kind: "line_comment", Pattern: `//[^\u{000A}\u{000D}]*`},
	{Kind: "directive_marker", Pattern: `#`},
	{Kind: "colon", Pattern: `:`},
	{Kind: "or", Pattern: `\|`},
	{Kind: "semicolon", Pattern: `;`},
	{Kind: "id", Pattern: `[^\u{0009}\u{000A}\u{000D}\u{0020}#:|;/]+`},
}

var (
	lexSpec     *mlspec.CompiledLexSpec
	lexSpecErr  error
	lexSpecOnce sync.Once
)

// compiledLexSpec compiles the lexical specification of the grammar file format on the first call.
func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	lexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    "grammar",
			Entries: lexEntries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				lexSpecErr = fmt.Errorf("cannot compile the lexical specification: %v: %v", cErrs[0].Kind, cErrs[0].Cause)
				return
			}
			lexSpecErr = err
			return
		}
		lexSpec = clspec
	})
	return lexSpec, lexSpecErr
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newEOFToken(newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		switch l.s.KindNames[tok.KindID] {
		case "white_space", "newline", "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch l.s.KindNames[tok.KindID] {
	case "directive_marker":
		return newSymbolToken(tokenKindDirectiveMarker, pos), nil
	case "colon":
		return newSymbolToken(tokenKindColon, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "semicolon":
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case "id":
		return newIDToken(string(tok.Lexeme), pos), nil
	default:
		return newInvalidToken(string(tok.Lexeme), pos), nil
	}
}
