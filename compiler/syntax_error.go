package compiler

import "fmt"

type SyntaxError struct {
	Message string
}

func newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{
		Message: msg,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.Message)
}

var (
	// lexical errors
	synErrIncompletedEscSeq       = newSyntaxError("incompleted escape sequence; unexpected EOF following \\")
	synErrInvalidEscSeq           = newSyntaxError("invalid escape sequence")
	synErrInvalidCodePoint        = newSyntaxError("code points must consist of just 1 to 6 hex digits and must be a Unicode scalar value")
	synErrCodePointExpInvalidForm = newSyntaxError("a code point expression must be of the form \\u{...}")
	synErrCharPropExpInvalidForm  = newSyntaxError("a character property expression must be of the form \\p{...}")

	// syntax errors
	synErrUnexpectedToken        = newSyntaxError("unexpected token")
	synErrNullPattern            = newSyntaxError("a pattern must be a non-empty byte sequence")
	synErrAltLackOfOperand       = newSyntaxError("an alternation expression must have operands")
	synErrRepNoTarget            = newSyntaxError("a repeat expression must have an operand")
	synErrGroupNoElem            = newSyntaxError("a grouping expression must include at least one character")
	synErrGroupUnclosed          = newSyntaxError("unclosed grouping expression")
	synErrGroupNoInitiator       = newSyntaxError(") needs preceding (")
	synErrGroupInvalidForm       = newSyntaxError("invalid grouping expression")
	synErrBExpNoElem             = newSyntaxError("a bracket expression must include at least one character")
	synErrBExpUnclosed           = newSyntaxError("unclosed bracket expression")
	synErrBExpInvalidForm        = newSyntaxError("invalid bracket expression")
	synErrCharClassEmpty         = newSyntaxError("a character class must match at least one character")
	synErrRangeInvalidOrder      = newSyntaxError("a range expression with invalid order")
	synErrRangePropIsUnavailable = newSyntaxError("a property expression is unavailable in a range expression")
	synErrCharPropUnsupported    = newSyntaxError("unsupported character property")
)

// syntaxErrorWithDetail carries the input-dependent part of a syntax error next to its cause.
type syntaxErrorWithDetail struct {
	cause  *SyntaxError
	detail string
}

func newSyntaxErrorWithDetail(cause *SyntaxError, format string, a ...interface{}) *syntaxErrorWithDetail {
	return &syntaxErrorWithDetail{
		cause:  cause,
		detail: fmt.Sprintf(format, a...),
	}
}

func (e *syntaxErrorWithDetail) Error() string {
	if e.detail == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%v: %v", e.cause, e.detail)
}

func (e *syntaxErrorWithDetail) Unwrap() error {
	return e.cause
}
