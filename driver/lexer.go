package driver

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/samx-lang/samxlex/log"
	"github.com/samx-lang/samxlex/spec"
)

type Token struct {
	// ModeID is the lexical mode the token was recognized in.
	ModeID   spec.LexModeNum  `json:"mode_id"`
	ModeName spec.LexModeName `json:"mode_name"`

	// KindID is unique across all modes. ModeKindID is the index of the kind within ModeID.
	KindID     int              `json:"kind_id"`
	ModeKindID int              `json:"mode_kind_id"`
	Kind       spec.LexKindName `json:"kind"`

	Lexeme []byte `json:"lexeme"`

	// Row and Col are the 0-origin position of the first character. Col counts characters, not bytes.
	Row int `json:"row"`
	Col int `json:"col"`

	EOF     bool `json:"eof"`
	Invalid bool `json:"invalid"`
}

func (t *Token) String() string {
	switch {
	case t.EOF:
		return fmt.Sprintf("<eof> %v:%v", t.Row, t.Col)
	case t.Invalid:
		return fmt.Sprintf("<invalid> %v:%v %q", t.Row, t.Col, t.Lexeme)
	}
	return fmt.Sprintf("%v %v:%v %q", t.Kind, t.Row, t.Col, t.Lexeme)
}

type LexerOption func(l *Lexer) error

func EnableLogging(w io.Writer) LexerOption {
	return func(l *Lexer) error {
		logger, err := log.NewLogger(w)
		if err != nil {
			return err
		}
		l.logger = logger
		return nil
	}
}

// DisableModeTransition makes the lexer ignore push and pop attributes of entries. The caller switches
// modes with PushMode and PopMode instead.
func DisableModeTransition() LexerOption {
	return func(l *Lexer) error {
		l.passiveModeTran = true
		return nil
	}
}

type Lexer struct {
	clspec          *spec.CompiledLexSpec
	src             []byte
	srcPtr          int
	row             int
	col             int
	modeStack       []spec.LexModeNum
	kindIDs         [][]int
	kindNames       []spec.LexKindName
	cache           *transitionCache
	tokBuf          []*Token
	pending         *Token
	passiveModeTran bool
	logger          log.Logger
}

func NewLexer(clspec *spec.CompiledLexSpec, src io.Reader, opts ...LexerOption) (*Lexer, error) {
	if clspec == nil {
		return nil, fmt.Errorf("clspec is nil; NewLexer() needs a compiled lexical specification")
	}
	in, ok := src.(*InputStream)
	if !ok {
		var err error
		in, err = NewInputStream("", src)
		if err != nil {
			return nil, err
		}
	}
	kindIDs, kindNames := genKindIDs(clspec)
	l := &Lexer{
		clspec: clspec,
		src:    in.Bytes(),
		modeStack: []spec.LexModeNum{
			clspec.InitialMode,
		},
		kindIDs:   kindIDs,
		kindNames: kindNames,
		cache:     newTransitionCache(),
		logger:    log.NewNopLogger(),
	}
	for _, opt := range opts {
		err := opt(l)
		if err != nil {
			return nil, err
		}
	}
	l.logger.Log("Initializing the lexer; input: %v bytes", len(l.src))
	return l, nil
}

// genKindIDs numbers kinds across modes in the order they first appear. A kind shared by several modes
// gets one ID.
func genKindIDs(clspec *spec.CompiledLexSpec) ([][]int, []spec.LexKindName) {
	names := []spec.LexKindName{
		spec.LexKindNameNil,
	}
	name2ID := map[spec.LexKindName]int{}
	ids := make([][]int, len(clspec.Specs))
	for mode, ms := range clspec.Specs {
		if ms == nil {
			continue
		}
		ids[mode] = make([]int, len(ms.Kinds))
		for i, k := range ms.Kinds {
			if k == spec.LexKindNameNil {
				continue
			}
			id, ok := name2ID[k]
			if !ok {
				id = len(names)
				name2ID[k] = id
				names = append(names, k)
			}
			ids[mode][i] = id
		}
	}
	return ids, names
}

// KindNames returns the kind names indexed by KindID.
func (l *Lexer) KindNames() []spec.LexKindName {
	return l.kindNames
}

// Next returns the next token. Skipped kinds are never returned, and a run of bytes no entry matches is
// returned as one invalid token. Once the input is exhausted, every call returns an EOF token.
func (l *Lexer) Next() (*Token, error) {
	if len(l.tokBuf) > 0 {
		tok := l.tokBuf[0]
		l.tokBuf = l.tokBuf[1:]
		return tok, nil
	}
	return l.produce()
}

func (l *Lexer) Peek1() (*Token, error) {
	return l.peekN(0)
}

func (l *Lexer) Peek2() (*Token, error) {
	return l.peekN(1)
}

func (l *Lexer) Peek3() (*Token, error) {
	return l.peekN(2)
}

func (l *Lexer) peekN(n int) (*Token, error) {
	if n < 0 || n > 2 {
		return nil, fmt.Errorf("peekN() can handle only [0..2]")
	}
	for len(l.tokBuf) < n+1 {
		tok, err := l.produce()
		if err != nil {
			return nil, err
		}
		l.tokBuf = append(l.tokBuf, tok)
	}
	return l.tokBuf[n], nil
}

func (l *Lexer) produce() (*Token, error) {
	if l.pending != nil {
		tok := l.pending
		l.pending = nil
		return tok, nil
	}

	tok, err := l.nextAndTransition()
	if err != nil {
		return nil, err
	}
	if !tok.Invalid {
		return tok, nil
	}
	errTok := tok
	for {
		tok, err = l.nextAndTransition()
		if err != nil {
			return nil, err
		}
		if !tok.Invalid {
			break
		}
		errTok.Lexeme = append(errTok.Lexeme, tok.Lexeme...)
	}
	l.pending = tok
	return errTok, nil
}

func (l *Lexer) nextAndTransition() (*Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.EOF || tok.Invalid {
			return tok, nil
		}
		ms := l.clspec.Specs[tok.ModeID]
		if !l.passiveModeTran {
			switch {
			case ms.Pop[tok.ModeKindID] == 1:
				err := l.PopMode()
				if err != nil {
					return nil, err
				}
			case !ms.Push[tok.ModeKindID].IsNil():
				l.PushMode(ms.Push[tok.ModeKindID])
			}
		}
		if ms.Skip[tok.ModeKindID] == 1 {
			l.logger.Log("Skip: %v", tok)
			continue
		}
		return tok, nil
	}
}

func (l *Lexer) next() (*Token, error) {
	mode := l.Mode()
	dfa := l.clspec.Specs[mode].DFA
	state := dfa.InitialState
	start := l.srcPtr
	ptr := start
	accID := 0
	accEnd := start
	for ptr < len(l.src) {
		nextState, err := l.cache.transition(mode, dfa, state, l.src[ptr])
		if err != nil {
			return nil, err
		}
		if nextState == 0 {
			break
		}
		state = nextState
		ptr++
		if id := dfa.AcceptingStates[state]; id != 0 {
			accID = id
			accEnd = ptr
		}
	}

	row, col := l.row, l.col
	if accID != 0 {
		lexeme := l.src[start:accEnd]
		l.advance(accEnd)
		tok := &Token{
			ModeID:     mode,
			ModeName:   l.clspec.Modes[mode],
			KindID:     l.kindIDs[mode][accID],
			ModeKindID: accID,
			Kind:       l.clspec.Specs[mode].Kinds[accID],
			Lexeme:     copyBytes(lexeme),
			Row:        row,
			Col:        col,
		}
		l.logger.Log("Token: %v", tok)
		return tok, nil
	}
	if start >= len(l.src) {
		return &Token{
			ModeID:   mode,
			ModeName: l.clspec.Modes[mode],
			Row:      row,
			Col:      col,
			EOF:      true,
		}, nil
	}

	// No entry matches; consume one byte.
	l.advance(start + 1)
	return &Token{
		ModeID:   mode,
		ModeName: l.clspec.Modes[mode],
		Lexeme:   copyBytes(l.src[start : start+1]),
		Row:      row,
		Col:      col,
		Invalid:  true,
	}, nil
}

// advance moves the read position to end, updating the row and the column. A byte that is not part of a
// valid UTF-8 sequence counts as one column.
func (l *Lexer) advance(end int) {
	for l.srcPtr < end {
		r, size := utf8.DecodeRune(l.src[l.srcPtr:end])
		if r == '\n' {
			l.row++
			l.col = 0
		} else {
			l.col++
		}
		l.srcPtr += size
	}
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// InitialMode returns the mode the lexer starts in. An EOF token in any other mode means the input ended
// before a pushed mode was popped.
func (l *Lexer) InitialMode() spec.LexModeNum {
	return l.clspec.InitialMode
}

// Mode returns the current lexical mode.
func (l *Lexer) Mode() spec.LexModeNum {
	return l.modeStack[len(l.modeStack)-1]
}

func (l *Lexer) PushMode(mode spec.LexModeNum) {
	l.modeStack = append(l.modeStack, mode)
	l.logger.Log("Push mode: %v", l.clspec.Modes[mode])
}

func (l *Lexer) PopMode() error {
	if len(l.modeStack) <= 1 {
		return fmt.Errorf("cannot pop the initial lexical mode")
	}
	l.logger.Log("Pop mode: %v", l.clspec.Modes[l.Mode()])
	l.modeStack = l.modeStack[:len(l.modeStack)-1]
	return nil
}

// ClearCache discards the decoded transition rows. It affects only speed, never the tokens, and can be
// called at any time, including before the first token is read.
func (l *Lexer) ClearCache() {
	l.logger.Log("Clear the transition cache; %v rows", len(l.cache.rows))
	l.cache.clear()
}

func (l *Lexer) CacheStats() CacheStats {
	return l.cache.stats()
}
