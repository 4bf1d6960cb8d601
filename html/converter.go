// Package html converts HTML fragments into the Markdown dialect understood
// by chat clients. It walks the token stream produced by golang.org/x/net/html
// in a single pass and never builds a document tree.
package html

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/ficbot"
	"golang.org/x/net/html"
)

// Ensure Converter implements ficbot.Converter at compile time.
var _ ficbot.Converter = (*Converter)(nil)

// Converter renders HTML as Markdown.
//
// A Converter holds no per-document state and may be shared between
// goroutines; every call allocates its own line buffer and close-stacks.
type Converter struct {
	logger *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger that receives debug diagnostics about unknown
// tags and unusable style declarations. Diagnostics are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(src string) (string, error) {
	return c.ConvertReader(strings.NewReader(src))
}

// ConvertReader transforms HTML read from r into Markdown.
//
// The only error returned is a read failure from r. In that case the
// Markdown accumulated up to the failure is returned alongside the error.
func (c *Converter) ConvertReader(r io.Reader) (string, error) {
	s := newState(c.logger)
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			err := z.Err()
			if errors.Is(err, io.EOF) {
				return s.finish(), nil
			}
			return s.finish(), err

		case html.StartTagToken:
			tok := z.Token()
			s.start(tok.Data, tok.Attr)
			if isVoid(tok.Data) {
				s.end(tok.Data)
			}

		case html.SelfClosingTagToken:
			tok := z.Token()
			s.start(tok.Data, tok.Attr)
			s.end(tok.Data)

		case html.EndTagToken:
			tok := z.Token()
			s.end(tok.Data)

		case html.TextToken:
			s.addText(string(z.Text()))
		}
	}
}

// voidElements never have an end tag, so their end behavior runs as soon as
// the start tag is seen.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

func isVoid(tag string) bool {
	return voidElements[tag]
}
