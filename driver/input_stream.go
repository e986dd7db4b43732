package driver

import (
	"fmt"
	"io"
)

// InputStream holds the whole text a lexer reads. The source reader is drained once at construction.
type InputStream struct {
	name string
	src  []byte
	off  int
}

var _ io.Reader = &InputStream{}

func NewInputStream(name string, r io.Reader) (*InputStream, error) {
	if r == nil {
		return nil, fmt.Errorf("r is nil; NewInputStream() needs a reader")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", displayName(name), err)
	}
	return &InputStream{
		name: name,
		src:  b,
	}, nil
}

func displayName(name string) string {
	if name == "" {
		return "the input"
	}
	return name
}

// Name returns the name given at construction, typically a file path. It may be empty.
func (s *InputStream) Name() string {
	return s.name
}

// Size returns the length of the input in bytes.
func (s *InputStream) Size() int {
	return len(s.src)
}

func (s *InputStream) Bytes() []byte {
	return s.src
}

func (s *InputStream) Read(p []byte) (int, error) {
	if s.off >= len(s.src) {
		return 0, io.EOF
	}
	n := copy(p, s.src[s.off:])
	s.off += n
	return n, nil
}
