package spec

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	synErrInvalidToken           = newSyntaxError("invalid token")
	synErrNoDirectiveName        = newSyntaxError("a directive needs a name")
	synErrTopLevelDirNoSemicolon = newSyntaxError("a directive must be followed by ;")
	synErrNoProductionName       = newSyntaxError("a production name is missing")
	synErrNoColon                = newSyntaxError("the colon must precede alternatives")
	synErrNoSemicolon            = newSyntaxError("the semicolon is missing at the last of an alternative")
)
