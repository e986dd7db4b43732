package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind string

const (
	tokenKindChar            = tokenKind("char")
	tokenKindAnyChar         = tokenKind(".")
	tokenKindRepeat          = tokenKind("*")
	tokenKindRepeatOneOrMore = tokenKind("+")
	tokenKindOption          = tokenKind("?")
	tokenKindAlt             = tokenKind("|")
	tokenKindGroupOpen       = tokenKind("(")
	tokenKindGroupClose      = tokenKind(")")
	tokenKindBExpOpen        = tokenKind("[")
	tokenKindInverseBExpOpen = tokenKind("[^")
	tokenKindBExpClose       = tokenKind("]")
	tokenKindCharRange       = tokenKind("-")
	tokenKindCharProp        = tokenKind("\\p")
	tokenKindEOF             = tokenKind("eof")
)

type token struct {
	kind     tokenKind
	char     rune
	propName string
	propVal  string
}

const nullChar = '\u0000'

func newToken(kind tokenKind, char rune) *token {
	return &token{
		kind: kind,
		char: char,
	}
}

func newCharPropToken(propName, propVal string) *token {
	return &token{
		kind:     tokenKindCharProp,
		propName: propName,
		propVal:  propVal,
	}
}

func (t *token) String() string {
	switch t.kind {
	case tokenKindChar:
		return fmt.Sprintf("{kind: %v, char: %q}", t.kind, t.char)
	case tokenKindCharProp:
		return fmt.Sprintf("{kind: %v, name: %v, value: %v}", t.kind, t.propName, t.propVal)
	}
	return fmt.Sprintf("{kind: %v}", t.kind)
}

type lexerMode string

const (
	lexerModeDefault = lexerMode("default")
	lexerModeBExp    = lexerMode("bracket expression")
)

type lexer struct {
	src  []rune
	pos  int
	mode lexerMode

	// bExpHead is true until the first element of a bracket expression is read.
	bExpHead bool
}

func newLexer(src string) *lexer {
	return &lexer{
		src:  []rune(src),
		mode: lexerModeDefault,
	}
}

func (l *lexer) next() (*token, error) {
	c, eof := l.read()
	if eof {
		return newToken(tokenKindEOF, nullChar), nil
	}

	switch l.mode {
	case lexerModeBExp:
		tok, err := l.nextInBExp(c)
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenKindBExpClose {
			l.bExpHead = false
		}
		return tok, nil
	default:
		return l.nextInDefault(c)
	}
}

func (l *lexer) nextInDefault(c rune) (*token, error) {
	switch c {
	case '*':
		return newToken(tokenKindRepeat, nullChar), nil
	case '+':
		return newToken(tokenKindRepeatOneOrMore, nullChar), nil
	case '?':
		return newToken(tokenKindOption, nullChar), nil
	case '.':
		return newToken(tokenKindAnyChar, nullChar), nil
	case '|':
		return newToken(tokenKindAlt, nullChar), nil
	case '(':
		return newToken(tokenKindGroupOpen, nullChar), nil
	case ')':
		return newToken(tokenKindGroupClose, nullChar), nil
	case '[':
		l.mode = lexerModeBExp
		l.bExpHead = true
		// `[^]` is a bracket expression containing only `^`.
		c1, ok1 := l.peek(0)
		c2, ok2 := l.peek(1)
		if ok1 && c1 == '^' && !(ok2 && c2 == ']') {
			l.pos++
			return newToken(tokenKindInverseBExpOpen, nullChar), nil
		}
		return newToken(tokenKindBExpOpen, nullChar), nil
	case '\\':
		return l.readEscapeSequence(`\.*+?|()[]`)
	default:
		return newToken(tokenKindChar, c), nil
	}
}

func (l *lexer) nextInBExp(c rune) (*token, error) {
	switch c {
	case '-':
		// A hyphen at the beginning or the end of a bracket expression is an ordinary character.
		if l.bExpHead {
			return newToken(tokenKindChar, c), nil
		}
		if c1, ok := l.peek(0); ok && c1 == ']' {
			return newToken(tokenKindChar, c), nil
		}
		return newToken(tokenKindCharRange, nullChar), nil
	case ']':
		l.mode = lexerModeDefault
		return newToken(tokenKindBExpClose, nullChar), nil
	case '\\':
		return l.readEscapeSequence(`\^-[]`)
	default:
		return newToken(tokenKindChar, c), nil
	}
}

func (l *lexer) readEscapeSequence(escapable string) (*token, error) {
	c, eof := l.read()
	if eof {
		return nil, newSyntaxErrorWithDetail(synErrIncompletedEscSeq, "")
	}
	switch {
	case strings.ContainsRune(escapable, c):
		return newToken(tokenKindChar, c), nil
	case c == 'n':
		return newToken(tokenKindChar, '\n'), nil
	case c == 'r':
		return newToken(tokenKindChar, '\r'), nil
	case c == 't':
		return newToken(tokenKindChar, '\t'), nil
	case c == 'u':
		body, err := l.readBracedBody(synErrCodePointExpInvalidForm)
		if err != nil {
			return nil, err
		}
		cp, err := parseCodePoint(body)
		if err != nil {
			return nil, err
		}
		return newToken(tokenKindChar, cp), nil
	case c == 'p':
		body, err := l.readBracedBody(synErrCharPropExpInvalidForm)
		if err != nil {
			return nil, err
		}
		name, val := "", body
		if i := strings.IndexRune(body, '='); i >= 0 {
			name, val = body[:i], body[i+1:]
		}
		if val == "" || strings.ContainsRune(val, '=') {
			return nil, newSyntaxErrorWithDetail(synErrCharPropExpInvalidForm, "\\p{%v}", body)
		}
		return newCharPropToken(name, val), nil
	}
	return nil, newSyntaxErrorWithDetail(synErrInvalidEscSeq, "\\%v", string(c))
}

// readBracedBody reads `{...}` and returns the text between the braces.
func (l *lexer) readBracedBody(synErr *SyntaxError) (string, error) {
	c, eof := l.read()
	if eof || c != '{' {
		return "", newSyntaxErrorWithDetail(synErr, "")
	}
	var b strings.Builder
	for {
		c, eof := l.read()
		if eof {
			return "", newSyntaxErrorWithDetail(synErr, "unclosed brace")
		}
		if c == '}' {
			break
		}
		b.WriteRune(c)
	}
	if b.Len() == 0 {
		return "", newSyntaxErrorWithDetail(synErr, "empty braces")
	}
	return b.String(), nil
}

func parseCodePoint(hex string) (rune, error) {
	if len(hex) < 1 || len(hex) > 6 {
		return nullChar, newSyntaxErrorWithDetail(synErrInvalidCodePoint, "\\u{%v}", hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nullChar, newSyntaxErrorWithDetail(synErrInvalidCodePoint, "\\u{%v}", hex)
	}
	cp := rune(n)
	if cp > 0x10ffff || (cp >= 0xd800 && cp <= 0xdfff) {
		return nullChar, newSyntaxErrorWithDetail(synErrInvalidCodePoint, "\\u{%v}", hex)
	}
	return cp, nil
}

func (l *lexer) read() (rune, bool) {
	if l.pos >= len(l.src) {
		return nullChar, true
	}
	c := l.src[l.pos]
	l.pos++
	return c, false
}

func (l *lexer) peek(n int) (rune, bool) {
	if l.pos+n >= len(l.src) {
		return nullChar, false
	}
	return l.src[l.pos+n], true
}
