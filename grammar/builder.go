package grammar

import (
	"errors"
	"fmt"
	"strings"

	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/spec"
)

// DefaultNull is the null symbol of a grammar file without the #null directive.
const DefaultNull = "λ"

type directiveSet struct {
	name      string
	start     string
	startPos  spec.Position
	null      string
	nullPos   spec.Position
	variables []string
	terminals []string
	hasTerms  bool
}

// GrammarBuilder builds a grammar from the AST of a grammar file.
type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	dirs := b.readDirectives()
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	if dirs.start == "" {
		if len(b.AST.Productions) == 0 {
			return nil, verr.SpecErrors{
				&verr.SpecError{
					Cause: semErrNoStart,
				},
			}
		}
		dirs.start = b.AST.Productions[0].LHS
		dirs.startPos = b.AST.Productions[0].Pos
	}
	if dirs.null == "" {
		dirs.null = DefaultNull
	}

	vars := append([]string{}, dirs.variables...)
	isVar := map[string]struct{}{}
	for _, v := range dirs.variables {
		isVar[v] = struct{}{}
	}
	for _, prod := range b.AST.Productions {
		vars = append(vars, prod.LHS)
		isVar[prod.LHS] = struct{}{}
	}

	terms := []string{dirs.null}
	if dirs.hasTerms {
		terms = append(terms, dirs.terminals...)
	} else {
		for _, prod := range b.AST.Productions {
			for _, alt := range prod.RHS {
				for _, elem := range alt.Elements {
					if _, ok := isVar[elem.ID]; ok {
						continue
					}
					terms = append(terms, elem.ID)
				}
			}
		}
	}

	voc, err := New(vars, terms, nil, dirs.start, dirs.null)
	if err != nil {
		specErr := &verr.SpecError{
			Cause: err,
		}
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			switch vErr.Cause {
			case semErrUndeclaredStart:
				specErr.Row = dirs.startPos.Row
				specErr.Col = dirs.startPos.Col
			case semErrUndeclaredNull:
				specErr.Row = dirs.nullPos.Row
				specErr.Col = dirs.nullPos.Col
			}
		}
		return nil, verr.SpecErrors{specErr}
	}

	r := &ruleResolver{
		symTab: voc.symTab,
	}
	for _, prod := range b.AST.Productions {
		for _, alt := range prod.RHS {
			var err error
			switch {
			case len(alt.Elements) == 0:
				err = r.addSeq(prod.LHS, []string{dirs.null})
			case dirs.hasTerms:
				var text strings.Builder
				for _, elem := range alt.Elements {
					text.WriteString(elem.ID)
				}
				err = r.addText(prod.LHS, text.String())
			default:
				ids := make([]string, len(alt.Elements))
				for i, elem := range alt.Elements {
					ids[i] = elem.ID
				}
				err = r.addSeq(prod.LHS, ids)
			}
			if err != nil {
				b.errs = append(b.errs, &verr.SpecError{
					Cause: err,
					Row:   alt.Pos.Row,
					Col:   alt.Pos.Col,
				})
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return assemble(voc.symTab, r.prods, voc.start, Name(dirs.name)), nil
}

func (b *GrammarBuilder) readDirectives() *directiveSet {
	dirs := &directiveSet{}
	seen := map[string]struct{}{}
	for _, dir := range b.AST.Directives {
		if _, ok := seen[dir.Name]; ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateDir,
				Detail: dir.Name,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		seen[dir.Name] = struct{}{}

		switch dir.Name {
		case "name", "start", "null":
			if len(dir.Parameters) != 1 {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDirInvalidParam,
					Detail: fmt.Sprintf("'%v' takes just one ID parameter", dir.Name),
					Row:    dir.Pos.Row,
					Col:    dir.Pos.Col,
				})
				continue
			}
			param := dir.Parameters[0]
			switch dir.Name {
			case "name":
				dirs.name = param.ID
			case "start":
				dirs.start = param.ID
				dirs.startPos = param.Pos
			case "null":
				dirs.null = param.ID
				dirs.nullPos = param.Pos
			}
		case "variables", "terminals":
			if len(dir.Parameters) == 0 {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDirInvalidParam,
					Detail: fmt.Sprintf("'%v' takes at least one ID parameter", dir.Name),
					Row:    dir.Pos.Row,
					Col:    dir.Pos.Col,
				})
				continue
			}
			ids := make([]string, len(dir.Parameters))
			for i, param := range dir.Parameters {
				ids[i] = param.ID
			}
			if dir.Name == "variables" {
				dirs.variables = ids
			} else {
				dirs.terminals = ids
				dirs.hasTerms = true
			}
		default:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDirInvalidName,
				Detail: dir.Name,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
		}
	}
	return dirs
}
