package harness

import (
	"errors"
	"fmt"
)

const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitIO      = 2
	ExitFailure = 3
)

// UsageError reports an invalid invocation. It is raised before any file is touched.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %v", e.Message)
}

// IOError reports an input file that cannot be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot read %v: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// LexError reports the first run of input the lexer cannot tokenize, or input that ends while a construct is
// still open. Row and Col are 1-origin.
type LexError struct {
	Path string
	Row  int
	Col  int
	Text string

	// Reason is set when the error is not about an invalid token.
	Reason string
}

func (e *LexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v:%v:%v: %v", e.Path, e.Row, e.Col, e.Reason)
	}
	return fmt.Sprintf("%v:%v:%v: invalid token: %q", e.Path, e.Row, e.Col, e.Text)
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ExitIO
	}
	return ExitFailure
}
