package spec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/pelletier/go-toml/v2"
)

// ReadLexSpec reads a lexical specification from a file. Files with the .toml extension are decoded as TOML,
// all other files as JSON.
func ReadLexSpec(path string) (*LexSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseLexSpecTOML(data)
	}
	return ParseLexSpecJSON(data)
}

func ParseLexSpecJSON(data []byte) (*LexSpec, error) {
	lspec := &LexSpec{}
	err := json.Unmarshal(data, lspec, json.RejectUnknownMembers(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode a lexical specification: %w", err)
	}
	return lspec, nil
}

func ParseLexSpecTOML(data []byte) (*LexSpec, error) {
	lspec := &LexSpec{}
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	err := d.Decode(lspec)
	if err != nil {
		return nil, fmt.Errorf("cannot decode a lexical specification: %w", err)
	}
	return lspec, nil
}

func ReadCompiledLexSpec(path string) (*CompiledLexSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCompiledLexSpec(f)
}

func DecodeCompiledLexSpec(r io.Reader) (*CompiledLexSpec, error) {
	clspec := &CompiledLexSpec{}
	err := json.UnmarshalRead(r, clspec)
	if err != nil {
		return nil, fmt.Errorf("cannot decode a compiled lexical specification: %w", err)
	}
	err = clspec.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid compiled lexical specification: %w", err)
	}
	return clspec, nil
}

// WriteCompiledLexSpec writes clspec as a single line of JSON followed by a newline.
func WriteCompiledLexSpec(w io.Writer, clspec *CompiledLexSpec) error {
	out, err := json.Marshal(clspec, jsontext.Multiline(false))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(out))
	return err
}
