// Package ldjson reads line-delimited JSON record files such as the fic
// database.
package ldjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/fwojciec/ficbot"
)

// MaxRecordSize is the largest record a Decoder accepts.
const MaxRecordSize = 16 << 20

// Decoder reads one JSON value per line. Blank lines are skipped.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxRecordSize)
	return &Decoder{scanner: scanner}
}

// Decode decodes the next record into v. It returns io.EOF when no
// records remain, and an EINVALID error naming the line for malformed
// records.
func (d *Decoder) Decode(v any) error {
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := json.Unmarshal(line, v); err != nil {
			return ficbot.Errorf(ficbot.EINVALID, "line %d: %v", d.line, err)
		}
		return nil
	}
	if err := d.scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

// Line returns the number of the last line read.
func (d *Decoder) Line() int {
	return d.line
}

// ReadFics decodes every fic record in r.
func ReadFics(r io.Reader) ([]*ficbot.Fic, error) {
	return readAll[ficbot.Fic](r)
}

// ReadAuthors decodes every author record in r.
func ReadAuthors(r io.Reader) ([]*ficbot.Author, error) {
	return readAll[ficbot.Author](r)
}

func readAll[T any](r io.Reader) ([]*T, error) {
	dec := NewDecoder(r)
	var records []*T
	for {
		var v T
		err := dec.Decode(&v)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, &v)
	}
}
