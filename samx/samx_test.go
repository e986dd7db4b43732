package samx

import (
	"strings"
	"sync"
	"testing"

	"github.com/samx-lang/samxlex/compiler"
	"github.com/samx-lang/samxlex/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindAndText struct {
	kind spec.LexKindName
	text string
}

func lexAll(t *testing.T, src string) []kindAndText {
	t.Helper()

	lex, err := NewLexer(strings.NewReader(src))
	require.NoError(t, err)
	var toks []kindAndText
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.EOF {
			return toks
		}
		if tok.Invalid {
			toks = append(toks, kindAndText{kind: "<invalid>", text: string(tok.Lexeme)})
			continue
		}
		toks = append(toks, kindAndText{kind: tok.Kind, text: string(tok.Lexeme)})
	}
}

func TestLexSpec(t *testing.T) {
	lspec, err := LexSpec()
	require.NoError(t, err)
	assert.Equal(t, "samx", lspec.Name)
	require.NoError(t, lspec.Validate())

	clspec, err := CompiledLexSpec()
	require.NoError(t, err)
	require.NoError(t, clspec.Validate())
	assert.Equal(t, []spec.LexModeName{spec.LexModeNameNil, spec.LexModeNameDefault, "block_comment"}, clspec.Modes)
}

func TestCompiledLexSpec_UpToDate(t *testing.T) {
	embedded, ok, err := readEmbeddedCompiledLexSpec()
	require.NoError(t, err)
	if !ok {
		t.Skip("grammar/clexspec.json has not been generated; run `go generate ./samx`")
	}

	lspec, err := LexSpec()
	require.NoError(t, err)
	clspec, err := compiler.Compile(lspec)
	require.NoError(t, err)
	assert.Equal(t, clspec, embedded, "grammar/clexspec.json is stale; run `go generate ./samx`")

	actual, err := CompiledLexSpec()
	require.NoError(t, err)
	assert.Equal(t, embedded, actual)
}

func TestNewLexer(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		tokens  []kindAndText
	}{
		{
			caption: "a single integer",
			src:     "42\n",
			tokens: []kindAndText{
				{kind: KindInteger, text: "42"},
			},
		},
		{
			caption: "an empty input",
			src:     "",
		},
		{
			caption: "white spaces and comments are skipped",
			src:     "  // line comment\n\t/* block\n * comment */ x /**/ y\r\n",
			tokens: []kindAndText{
				{kind: KindName, text: "x"},
				{kind: KindName, text: "y"},
			},
		},
		{
			caption: "literals",
			src:     `3.14 1.0e-3 007 "a \"quoted\" text" ＳａｍＸ_1 _x`,
			tokens: []kindAndText{
				{kind: KindFloat, text: "3.14"},
				{kind: KindFloat, text: "1.0e-3"},
				{kind: KindInteger, text: "007"},
				{kind: KindString, text: `"a \"quoted\" text"`},
				{kind: KindName, text: "ＳａｍＸ_1"},
				{kind: KindName, text: "_x"},
			},
		},
		{
			caption: "punctuation",
			src:     "a(b)[c]{d}:,.=+-*/<>@#|?",
			tokens: []kindAndText{
				{kind: KindName, text: "a"},
				{kind: "l_paren", text: "("},
				{kind: KindName, text: "b"},
				{kind: "r_paren", text: ")"},
				{kind: "l_bracket", text: "["},
				{kind: KindName, text: "c"},
				{kind: "r_bracket", text: "]"},
				{kind: "l_brace", text: "{"},
				{kind: KindName, text: "d"},
				{kind: "r_brace", text: "}"},
				{kind: "colon", text: ":"},
				{kind: "comma", text: ","},
				{kind: "dot", text: "."},
				{kind: "equal", text: "="},
				{kind: "plus", text: "+"},
				{kind: "minus", text: "-"},
				{kind: "asterisk", text: "*"},
				{kind: "slash", text: "/"},
				{kind: "less", text: "<"},
				{kind: "greater", text: ">"},
				{kind: "at", text: "@"},
				{kind: "hash", text: "#"},
				{kind: "bar", text: "|"},
				{kind: "question", text: "?"},
			},
		},
		{
			caption: "a run of characters no entry matches is one invalid token",
			src:     "a $%^ b",
			tokens: []kindAndText{
				{kind: KindName, text: "a"},
				{kind: "<invalid>", text: "$%^"},
				{kind: KindName, text: "b"},
			},
		},
		{
			caption: "an unclosed string is invalid up to the next token",
			src:     `"abc`,
			tokens: []kindAndText{
				{kind: "<invalid>", text: `"`},
				{kind: KindName, text: "abc"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.tokens, lexAll(t, tt.src))
		})
	}
}

func TestCompiledLexSpec_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*spec.CompiledLexSpec, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clspec, err := CompiledLexSpec()
			assert.NoError(t, err)
			results[i] = clspec
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}
