package driver

import "fmt"

type TokenSource interface {
	Next() (*Token, error)
}

// TokenStream buffers every token of a source. Fill drains the source up to and including the EOF token.
type TokenStream struct {
	src    TokenSource
	tokens []*Token
	filled bool
}

func NewTokenStream(src TokenSource) *TokenStream {
	return &TokenStream{
		src: src,
	}
}

func (s *TokenStream) Fill() error {
	if s.filled {
		return nil
	}
	for {
		tok, err := s.src.Next()
		if err != nil {
			return err
		}
		if tok == nil {
			return fmt.Errorf("a token source returned a nil token")
		}
		s.tokens = append(s.tokens, tok)
		if tok.EOF {
			s.filled = true
			return nil
		}
	}
}

// Tokens returns the buffered tokens. The slice must not be modified.
func (s *TokenStream) Tokens() []*Token {
	return s.tokens
}

func (s *TokenStream) Size() int {
	return len(s.tokens)
}

// Get returns the i-th buffered token, or nil when i is out of range.
func (s *TokenStream) Get(i int) *Token {
	if i < 0 || i >= len(s.tokens) {
		return nil
	}
	return s.tokens[i]
}
