package harness

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/samx-lang/samxlex/driver"
	"github.com/samx-lang/samxlex/spec"
)

type tokenRecord struct {
	Mode    spec.LexModeName `json:"mode"`
	KindID  int              `json:"kind_id"`
	Kind    spec.LexKindName `json:"kind"`
	Text    string           `json:"text"`
	Row     int              `json:"row"`
	Col     int              `json:"col"`
	EOF     bool             `json:"eof,omitzero"`
	Invalid bool             `json:"invalid,omitzero"`
}

// WriteToken writes tok as a single JSON line. Bytes that are not valid UTF-8 are written as U+FFFD.
func WriteToken(w io.Writer, tok *driver.Token) error {
	b, err := json.Marshal(&tokenRecord{
		Mode:    tok.ModeName,
		KindID:  tok.KindID,
		Kind:    tok.Kind,
		Text:    string(tok.Lexeme),
		Row:     tok.Row,
		Col:     tok.Col,
		EOF:     tok.EOF,
		Invalid: tok.Invalid,
	}, jsontext.AllowInvalidUTF8(true))
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
