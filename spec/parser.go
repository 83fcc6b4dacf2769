package spec

import (
	"io"

	verr "github.com/nihei9/chomsky/error"
)

type RootNode struct {
	Directives  []*DirectiveNode
	Productions []*ProductionNode
}

type DirectiveNode struct {
	Name       string
	Parameters []*ParameterNode
	Pos        Position
}

type ParameterNode struct {
	ID  string
	Pos Position
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

// AlternativeNode is one alternative of a production. An alternative without elements denotes the null symbol.
type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

type ElementNode struct {
	ID  string
	Pos Position
}

func raiseSyntaxError(synErr *SyntaxError, tok *token) {
	err := &verr.SpecError{
		Cause: synErr,
	}
	if tok != nil {
		err.Row = tok.pos.Row
		err.Col = tok.pos.Col
		if tok.kind == tokenKindInvalid || tok.kind == tokenKindID {
			err.Detail = tok.text
		}
	}
	panic(err)
}

func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
			root = nil
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	for {
		if p.consume(tokenKindEOF) {
			break
		}
		if dir := p.parseDirective(); dir != nil {
			root.Directives = append(root.Directives, dir)
			continue
		}
		root.Productions = append(root.Productions, p.parseProduction())
	}
	return root
}

func (p *parser) parseDirective() *DirectiveNode {
	if !p.consume(tokenKindDirectiveMarker) {
		return nil
	}
	dirPos := p.lastTok.pos

	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoDirectiveName, p.peek())
	}
	name := p.lastTok.text

	var params []*ParameterNode
	for p.consume(tokenKindID) {
		params = append(params, &ParameterNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		})
	}

	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(synErrTopLevelDirNoSemicolon, p.peek())
	}

	return &DirectiveNode{
		Name:       name,
		Parameters: params,
		Pos:        dirPos,
	}
}

func (p *parser) parseProduction() *ProductionNode {
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoProductionName, p.peek())
	}
	lhs := p.lastTok.text
	lhsPos := p.lastTok.pos

	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peek())
	}
	rhs := []*AlternativeNode{p.parseAlternative()}
	for p.consume(tokenKindOr) {
		rhs = append(rhs, p.parseAlternative())
	}
	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(synErrNoSemicolon, p.peek())
	}

	return &ProductionNode{
		LHS: lhs,
		RHS: rhs,
		Pos: lhsPos,
	}
}

// parseAlternative must be called right after consuming a colon or an or-token; the position of an empty
// alternative is the position of the token preceding it.
func (p *parser) parseAlternative() *AlternativeNode {
	alt := &AlternativeNode{
		Pos: p.lastTok.pos,
	}
	for p.consume(tokenKindID) {
		alt.Elements = append(alt.Elements, &ElementNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		})
	}
	if len(alt.Elements) > 0 {
		alt.Pos = alt.Elements[0].Pos
	}
	return alt
}

// peek returns the next token without consuming it.
func (p *parser) peek() *token {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(synErrInvalidToken, tok)
	}
	if tok.kind != expected {
		return false
	}
	p.peekedTok = nil
	p.lastTok = tok
	return true
}
