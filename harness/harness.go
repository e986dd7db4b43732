// Package harness drives a lexer over one file: a tokenization pass that drains the lexer, then a cache-reset
// pass on a second, independent lexer over the same file.
package harness

import (
	"fmt"
	"io"
	"os"

	"github.com/samx-lang/samxlex/driver"
	"github.com/samx-lang/samxlex/log"
	"github.com/samx-lang/samxlex/spec"
)

// Lexer is what the harness needs from a lexer. Next must eventually return a token whose EOF is true and
// keep returning such tokens afterwards.
type Lexer interface {
	Next() (*driver.Token, error)
	ClearCache()
}

// modalLexer is implemented by lexers with lexical modes. Reaching the end of input in a mode other than the
// initial one means a construct such as a block comment was left open.
type modalLexer interface {
	InitialMode() spec.LexModeNum
}

// LexerFactory constructs a new lexer over src. The harness calls it once per pass and never shares the
// result between passes.
type LexerFactory func(src io.Reader) (Lexer, error)

type Config struct {
	Verbose    bool
	DumpTokens bool
	Stdout     io.Writer
	Logger     log.Logger
}

type Option func(c *Config)

// Verbose makes Run print one diagnostic line naming the input before tokenizing.
func Verbose(v bool) Option {
	return func(c *Config) {
		c.Verbose = v
	}
}

// DumpTokens makes Tokenize write every token as a JSON line to the stdout writer.
func DumpTokens(v bool) Option {
	return func(c *Config) {
		c.DumpTokens = v
	}
}

func Stdout(w io.Writer) Option {
	return func(c *Config) {
		c.Stdout = w
	}
}

func Logger(l log.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

type Harness struct {
	factory LexerFactory
	config  Config
}

func New(factory LexerFactory, opts ...Option) (*Harness, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory is nil; New() needs a lexer factory")
	}
	config := Config{
		Stdout: os.Stdout,
		Logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Stdout == nil {
		config.Stdout = io.Discard
	}
	if config.Logger == nil {
		config.Logger = log.NewNopLogger()
	}
	return &Harness{
		factory: factory,
		config:  config,
	}, nil
}

// Run expects exactly one argument, the path of the input file. It checks the file is readable, then runs
// the tokenization pass followed by the cache-reset pass.
func (h *Harness) Run(args []string) error {
	path, err := InputPath(args)
	if err != nil {
		return err
	}
	err = checkReadable(path)
	if err != nil {
		return err
	}

	if h.config.Verbose {
		fmt.Fprintf(h.config.Stdout, "Tokenize %v\n", path)
	}

	toks, err := h.Tokenize(path)
	if err != nil {
		return err
	}
	h.config.Logger.Log("Tokenization pass: %v tokens", len(toks))

	err = h.ResetCache(path)
	if err != nil {
		return err
	}
	h.config.Logger.Log("Cache-reset pass: done")
	return nil
}

// InputPath returns the only element of args, or a *UsageError when args does not hold exactly one.
func InputPath(args []string) (string, error) {
	if len(args) != 1 {
		return "", &UsageError{
			Message: fmt.Sprintf("expected exactly one input file; got %v arguments", len(args)),
		}
	}
	return args[0], nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return &IOError{
			Path: path,
			Err:  err,
		}
	}
	if info.IsDir() {
		return &IOError{
			Path: path,
			Err:  fmt.Errorf("is a directory"),
		}
	}
	return nil
}

// Tokenize reads the file through a fresh lexer until the EOF token and returns every token, the EOF token
// included. The first invalid token, or an end of input inside a nested lexical mode, is reported as a
// *LexError.
func (h *Harness) Tokenize(path string) ([]*driver.Token, error) {
	lex, closeFn, err := h.open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	ts := driver.NewTokenStream(lex)
	err = ts.Fill()
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %v: %w", path, err)
	}

	if h.config.DumpTokens {
		for _, tok := range ts.Tokens() {
			err := WriteToken(h.config.Stdout, tok)
			if err != nil {
				return nil, err
			}
		}
	}

	for _, tok := range ts.Tokens() {
		if tok.Invalid {
			return nil, &LexError{
				Path: path,
				Row:  tok.Row + 1,
				Col:  tok.Col + 1,
				Text: string(tok.Lexeme),
			}
		}
	}
	eof := ts.Get(ts.Size() - 1)
	if ml, ok := lex.(modalLexer); ok && eof.ModeID != ml.InitialMode() {
		return nil, &LexError{
			Path:   path,
			Row:    eof.Row + 1,
			Col:    eof.Col + 1,
			Reason: fmt.Sprintf("unexpected end of input in %v mode", eof.ModeName),
		}
	}
	return ts.Tokens(), nil
}

// ResetCache constructs a second lexer over a fresh read of the file and clears its transition cache
// without reading any token.
func (h *Harness) ResetCache(path string) error {
	lex, closeFn, err := h.open(path)
	if err != nil {
		return err
	}
	defer closeFn()

	lex.ClearCache()
	return nil
}

func (h *Harness) open(path string) (Lexer, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &IOError{
			Path: path,
			Err:  err,
		}
	}
	closeFn := func() {
		f.Close()
	}
	in, err := driver.NewInputStream(path, f)
	if err != nil {
		closeFn()
		return nil, nil, &IOError{
			Path: path,
			Err:  err,
		}
	}
	h.config.Logger.Log("Open %v; %v bytes", path, in.Size())
	lex, err := h.factory(in)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to construct a lexer: %w", err)
	}
	if lex == nil {
		closeFn()
		return nil, nil, fmt.Errorf("the lexer factory returned a nil lexer")
	}
	return lex, closeFn, nil
}
