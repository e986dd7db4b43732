package harness

import (
	"io"

	"github.com/samx-lang/samxlex/driver"
	"github.com/samx-lang/samxlex/samx"
	"github.com/samx-lang/samxlex/spec"
)

// NewDriverFactory returns a factory of table-driven lexers for clspec.
func NewDriverFactory(clspec *spec.CompiledLexSpec, opts ...driver.LexerOption) LexerFactory {
	return func(src io.Reader) (Lexer, error) {
		lex, err := driver.NewLexer(clspec, src, opts...)
		if err != nil {
			return nil, err
		}
		return lex, nil
	}
}

// NewSamXFactory returns a factory of lexers for the built-in SamX grammar.
func NewSamXFactory(opts ...driver.LexerOption) LexerFactory {
	return func(src io.Reader) (Lexer, error) {
		lex, err := samx.NewLexer(src, opts...)
		if err != nil {
			return nil, err
		}
		return lex, nil
	}
}
