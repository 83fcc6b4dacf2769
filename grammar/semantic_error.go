package grammar

import "fmt"

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrInvalidName          = newSemanticError("invalid symbol name")
	semErrOverlappingNames     = newSemanticError("a symbol name must not be a substring of another symbol name")
	semErrDuplicateName        = newSemanticError("duplicate names are not allowed between terminals and variables")
	semErrUndeclaredStart      = newSemanticError("the start variable is not declared as a variable")
	semErrUndeclaredNull       = newSemanticError("the null symbol is not declared as a terminal")
	semErrUndeclaredLHS        = newSemanticError("the left-hand side of a rule is not declared as a variable")
	semErrUndeclaredSym        = newSemanticError("undeclared symbol")
	semErrEmptyRHS             = newSemanticError("the right-hand side of a rule needs at least one symbol")
	semErrUntokenizableRHS     = newSemanticError("the right-hand side of a rule cannot be tokenized")
	semErrInconsistentInternal = newSemanticError("a rule refers to a symbol missing from the symbol table")

	// grammar file errors
	semErrDirInvalidName  = newSemanticError("invalid directive name")
	semErrDirInvalidParam = newSemanticError("invalid directive parameter")
	semErrDuplicateDir    = newSemanticError("a directive must not be duplicated")
	semErrNoStart         = newSemanticError("a grammar without productions needs the #start directive")
)

type ErrorKind string

const (
	ErrorKindMalformedSymbol  = ErrorKind("malformed symbol")
	ErrorKindUndeclaredSymbol = ErrorKind("undeclared symbol")
	ErrorKindMalformedRule    = ErrorKind("malformed rule")
)

// ValidationError reports a violated grammar invariant. Cause is one of the semantic errors above and can be
// matched with errors.Is.
type ValidationError struct {
	Kind   ErrorKind
	Cause  error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("%v: %v: %v", e.Kind, e.Cause, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
