// Package samx provides the built-in lexical grammar of SamX.
package samx

//go:generate go run ../cmd/samxlex compile grammar/samx.toml -o grammar/clexspec.json

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/samx-lang/samxlex/compiler"
	"github.com/samx-lang/samxlex/driver"
	"github.com/samx-lang/samxlex/spec"
)

// grammar holds samx.toml and, once generated, its compiled form clexspec.json.
//
//go:embed grammar
var grammar embed.FS

const (
	lexSpecFileName         = "grammar/samx.toml"
	compiledLexSpecFileName = "grammar/clexspec.json"
)

const (
	KindFloat   = spec.LexKindName("float")
	KindInteger = spec.LexKindName("integer")
	KindString  = spec.LexKindName("string")
	KindName    = spec.LexKindName("name")
)

// LexSpec returns a fresh copy of the SamX lexical specification.
func LexSpec() (*spec.LexSpec, error) {
	src, err := fs.ReadFile(grammar, lexSpecFileName)
	if err != nil {
		return nil, err
	}
	lspec, err := spec.ParseLexSpecTOML(src)
	if err != nil {
		return nil, fmt.Errorf("the embedded SamX specification is broken: %w", err)
	}
	return lspec, nil
}

// readEmbeddedCompiledLexSpec decodes the generated clexspec.json. The second return value is false when the
// file has not been generated.
func readEmbeddedCompiledLexSpec() (*spec.CompiledLexSpec, bool, error) {
	f, err := grammar.Open(compiledLexSpecFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()
	clspec, err := spec.DecodeCompiledLexSpec(f)
	if err != nil {
		return nil, false, fmt.Errorf("the embedded compiled SamX specification is broken: %w", err)
	}
	return clspec, true, nil
}

var (
	compileOnce sync.Once
	compiled    *spec.CompiledLexSpec
	compileErr  error
)

// CompiledLexSpec returns the generated SamX specification, or compiles samx.toml when it has not been
// generated. The work is done on the first call and the same result is returned afterwards. The returned
// specification is shared and must not be modified.
func CompiledLexSpec() (*spec.CompiledLexSpec, error) {
	compileOnce.Do(func() {
		clspec, ok, err := readEmbeddedCompiledLexSpec()
		if err != nil {
			compileErr = err
			return
		}
		if ok {
			compiled = clspec
			return
		}
		lspec, err := LexSpec()
		if err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile(lspec)
	})
	return compiled, compileErr
}

// NewLexer returns a lexer reading src with the SamX grammar. Every call returns an independent lexer.
func NewLexer(src io.Reader, opts ...driver.LexerOption) (*driver.Lexer, error) {
	clspec, err := CompiledLexSpec()
	if err != nil {
		return nil, err
	}
	return driver.NewLexer(clspec, src, opts...)
}
